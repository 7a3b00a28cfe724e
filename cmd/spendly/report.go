package main

import (
	"context"
	"fmt"

	"spendly/internal/report"
)

func (a *app) reportCmd(ctx context.Context, args []string) error {
	fs := newFlagSet("report")
	category := fs.String("category", report.All, "category name")
	month := fs.String("month", report.All, "month as YYYY-MM")
	roots := fs.Bool("roots", false, "group subcategories under their top-level category")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.load(ctx); err != nil {
		return err
	}

	items := a.spendings.List()
	filter := report.Filter{Category: *category, Month: *month}.Normalize()
	if err := checkOption("category", filter.Category, report.CategoryOptions(items)); err != nil {
		return err
	}
	if err := checkOption("month", filter.Month, report.MonthOptions(items)); err != nil {
		return err
	}

	byCategory := report.ByCategory(items, filter)
	if *roots {
		byCategory = report.ByRootCategory(items, filter, a.categories.Tree())
	}

	fmt.Fprintln(a.out, "By category")
	if err := a.printGroups(byCategory); err != nil {
		return err
	}
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "By month")
	if err := a.printGroups(report.ByMonth(items, filter)); err != nil {
		return err
	}

	sum := report.Summarize(items, filter)
	a.printer.Fprintf(a.out, "\nTotal: %s (%d spendings)\n", a.amount(sum.Total), sum.Count)
	return nil
}

func (a *app) printGroups(agg report.Aggregate) error {
	if agg.Len() == 0 {
		fmt.Fprintln(a.out, "  (nothing to show)")
		return nil
	}
	t := newGrid(a.out, "", "AMOUNT", "COUNT")
	for _, g := range agg.Groups() {
		t.row(g.Label, a.amount(g.Total), a.printer.Sprint(g.Count))
	}
	return t.flush()
}

// checkOption rejects filter values that match no spending.
func checkOption(kind, value string, options []report.Option) error {
	if value == report.All || report.HasOption(value, options) {
		return nil
	}
	values := make([]string, 0, len(options))
	for _, o := range options {
		if o.Value != report.All {
			values = append(values, o.Value)
		}
	}
	return unknown(kind, value, values)
}
