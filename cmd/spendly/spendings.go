package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"spendly/internal/models"
	"spendly/internal/table"
)

var spendingSubcommands = []string{"list", "add", "edit", "delete"}

func (a *app) spendingsCmd(ctx context.Context, args []string) error {
	if err := a.load(ctx); err != nil {
		return err
	}
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return a.listSpendings(args)
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		return a.listSpendings(rest)
	case "add":
		return a.addSpending(ctx, rest)
	case "edit":
		return a.editSpending(ctx, rest)
	case "delete":
		return a.deleteSpending(ctx, rest)
	}
	return unknown("spendings subcommand", sub, spendingSubcommands)
}

func (a *app) listSpendings(args []string) error {
	fs := newFlagSet("spendings")
	page := fs.Int("page", 1, "page to show")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctl, err := table.New(a.spendings, a.cfg.PageSize)
	if err != nil {
		return err
	}
	if ctl.Len() == 0 {
		fmt.Fprintln(a.out, "No spendings yet.")
		return nil
	}
	ctl.GoTo(*page)

	t := newGrid(a.out, "ID", "DATE", "NAME", "CATEGORY", "AMOUNT")
	for _, s := range ctl.Rows() {
		t.row(strconv.FormatUint(uint64(s.ID), 10), s.Date.String(), s.Name, s.DisplayCategory(), a.amount(s.Amount.Decimal))
	}
	if err := t.flush(); err != nil {
		return err
	}
	a.printer.Fprintf(a.out, "Page %d of %d (%d spendings)\n", ctl.CurrentPage(), ctl.TotalPages(), ctl.Len())
	return nil
}

// spendingFlags binds the editable spending fields to fs.
type spendingFlags struct {
	name, description, amount, date, category string
}

func (f *spendingFlags) bind(fs *flag.FlagSet, defaultDate string) {
	fs.StringVar(&f.name, "name", "", "spending name")
	fs.StringVar(&f.description, "description", "", "description (defaults to the name)")
	fs.StringVar(&f.amount, "amount", "", "amount, e.g. 12.50")
	fs.StringVar(&f.date, "date", defaultDate, "date as YYYY-MM-DD")
	fs.StringVar(&f.category, "category", "", "category id or name; - for none")
}

// category resolves the -category flag; "-" and "" mean no category.
func (a *app) category(ref string) (*uint, error) {
	if ref == "" || ref == "-" {
		return nil, nil
	}
	id, err := a.resolveCategory(ref)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (a *app) addSpending(ctx context.Context, args []string) error {
	var f spendingFlags
	fs := newFlagSet("spendings add")
	f.bind(fs, models.DateOf(time.Now()).String())
	if err := fs.Parse(args); err != nil {
		return err
	}

	cat, err := a.category(f.category)
	if err != nil {
		return err
	}
	created, err := a.spendings.Create(ctx, models.SpendingInput{
		Name:        f.name,
		Description: f.description,
		Amount:      models.AmountText(f.amount),
		Date:        f.date,
		Category:    cat,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created spending %d: %s %s on %s.\n", created.ID, created.Name, a.amount(created.Amount.Decimal), created.Date)
	return nil
}

// editSpending goes through the table controller so the edit is applied
// to a copy of the row and only saved as a whole.
func (a *app) editSpending(ctx context.Context, args []string) error {
	var f spendingFlags
	fs := newFlagSet("spendings edit")
	f.bind(fs, "")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: spendings edit [flags] ID")
	}
	id, err := strconv.ParseUint(fs.Arg(0), 10, 32)
	if err != nil {
		return fmt.Errorf("invalid spending id %q", fs.Arg(0))
	}

	ctl, err := table.New(a.spendings, a.cfg.PageSize)
	if err != nil {
		return err
	}
	if err := ctl.Select(uint(id)); err != nil {
		return err
	}

	var cat *uint
	var catErr error
	fs.Visit(func(fl *flag.Flag) {
		if fl.Name == "category" {
			cat, catErr = a.category(f.category)
		}
	})
	if catErr != nil {
		ctl.Cancel()
		return catErr
	}

	ctl.Edit(func(in *models.SpendingInput) {
		fs.Visit(func(fl *flag.Flag) {
			switch fl.Name {
			case "name":
				in.Name = f.name
			case "description":
				in.Description = f.description
			case "amount":
				in.Amount = models.AmountText(f.amount)
			case "date":
				in.Date = f.date
			case "category":
				in.Category = cat
			}
		})
	})

	saved, err := ctl.Save(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated spending %d: %s %s on %s.\n", saved.ID, saved.Name, a.amount(saved.Amount.Decimal), saved.Date)
	return nil
}

func (a *app) deleteSpending(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: spendly spendings delete ID")
	}
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid spending id %q", args[0])
	}
	if err := a.spendings.Delete(ctx, uint(id)); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted spending %d.\n", id)
	return nil
}
