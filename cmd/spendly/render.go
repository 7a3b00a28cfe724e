package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"golang.org/x/text/number"
)

// amount renders d with two decimals and the locale's separators. Only the
// integer part goes through the printer, as an int64, so the digits shown are
// exactly those of d rounded to cents.
func (a *app) amount(d decimal.Decimal) string {
	fixed := d.Round(2)
	whole, frac, _ := strings.Cut(fixed.Abs().StringFixed(2), ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return fixed.StringFixed(2)
	}
	out := a.printer.Sprint(number.Decimal(n)) + a.decimalSeparator() + frac
	if fixed.IsNegative() {
		out = "-" + out
	}
	return out
}

// decimalSeparator returns the locale's decimal mark, e.g. "." or ",".
func (a *app) decimalSeparator() string {
	return strings.Trim(a.printer.Sprint(number.Decimal(1.5, number.Scale(1))), "15")
}

type grid struct {
	w *tabwriter.Writer
}

func newGrid(out io.Writer, headers ...string) *grid {
	t := &grid{w: tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)}
	t.row(headers...)
	return t
}

func (t *grid) row(cells ...string) {
	fmt.Fprintln(t.w, strings.Join(cells, "\t"))
}

func (t *grid) flush() error {
	return t.w.Flush()
}
