// Package report aggregates spendings into per-category and per-month sums.
//
// Every function is pure over its inputs: the same spendings and filter give
// the same groups, in the order each key first appears in the filtered
// sequence. Sums are exact decimals; rounding to two places happens only
// when a total is displayed.
package report

import (
	"github.com/shopspring/decimal"

	"spendly/internal/models"
)

// All is the filter value that matches everything.
const All = "All"

// Uncategorized is the group key of spendings without a category.
const Uncategorized = models.Uncategorized

// Filter selects spendings by category name and month key. Empty fields and
// All match everything; both fields must match.
type Filter struct {
	Category string
	Month    string
}

// Normalize maps empty fields to All.
func (f Filter) Normalize() Filter {
	if f.Category == "" {
		f.Category = All
	}
	if f.Month == "" {
		f.Month = All
	}
	return f
}

// IsAll reports whether the filter matches everything.
func (f Filter) IsAll() bool {
	f = f.Normalize()
	return f.Category == All && f.Month == All
}

// Matches reports whether s passes the filter.
func (f Filter) Matches(s models.Spending) bool {
	f = f.Normalize()
	if f.Category != All && s.DisplayCategory() != f.Category {
		return false
	}
	if f.Month != All && s.Date.Month().String() != f.Month {
		return false
	}
	return true
}

// Apply returns the spendings that pass the filter, in input order.
func Apply(spendings []models.Spending, f Filter) []models.Spending {
	out := make([]models.Spending, 0, len(spendings))
	for _, s := range spendings {
		if f.Matches(s) {
			out = append(out, s)
		}
	}
	return out
}

// Group is one aggregated bucket.
type Group struct {
	Key   string
	Label string
	Total decimal.Decimal
	Count int
}

// Display returns the total rounded to two decimal places.
func (g Group) Display() string {
	return g.Total.StringFixed(2)
}

// Aggregate is an ordered set of groups.
type Aggregate struct {
	groups []Group
	index  map[string]int
}

func newAggregate() *Aggregate {
	return &Aggregate{index: map[string]int{}}
}

func (a *Aggregate) add(key, label string, amount decimal.Decimal) {
	i, ok := a.index[key]
	if !ok {
		i = len(a.groups)
		a.index[key] = i
		a.groups = append(a.groups, Group{Key: key, Label: label, Total: decimal.Zero})
	}
	a.groups[i].Total = a.groups[i].Total.Add(amount)
	a.groups[i].Count++
}

// Groups returns the groups in first-occurrence order.
func (a Aggregate) Groups() []Group {
	out := make([]Group, len(a.groups))
	copy(out, a.groups)
	return out
}

// Keys returns the group keys in first-occurrence order.
func (a Aggregate) Keys() []string {
	out := make([]string, len(a.groups))
	for i, g := range a.groups {
		out[i] = g.Key
	}
	return out
}

// Get returns the group with key.
func (a Aggregate) Get(key string) (Group, bool) {
	i, ok := a.index[key]
	if !ok {
		return Group{}, false
	}
	return a.groups[i], true
}

// Len returns the number of groups.
func (a Aggregate) Len() int {
	return len(a.groups)
}

// Totals returns key to exact total.
func (a Aggregate) Totals() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(a.groups))
	for _, g := range a.groups {
		out[g.Key] = g.Total
	}
	return out
}

// Total returns the sum over all groups.
func (a Aggregate) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, g := range a.groups {
		sum = sum.Add(g.Total)
	}
	return sum
}

// ByCategory sums the filtered spendings per category name, with spendings
// lacking a category under Uncategorized.
func ByCategory(spendings []models.Spending, f Filter) Aggregate {
	agg := newAggregate()
	for _, s := range spendings {
		if !f.Matches(s) {
			continue
		}
		name := s.DisplayCategory()
		agg.add(name, name, s.Amount.Decimal)
	}
	return *agg
}

// ByMonth sums the filtered spendings per YYYY-MM key. Labels such as
// "January 2024" are derived from the key.
func ByMonth(spendings []models.Spending, f Filter) Aggregate {
	agg := newAggregate()
	for _, s := range spendings {
		if !f.Matches(s) {
			continue
		}
		m := s.Date.Month()
		agg.add(m.String(), m.Label(), s.Amount.Decimal)
	}
	return *agg
}

// ByRootCategory sums the filtered spendings per top-level category: a
// subcategory's spendings count towards its root. Categories missing from
// the tree fall back to the spending's own category name.
func ByRootCategory(spendings []models.Spending, f Filter, tree *models.CategoryTree) Aggregate {
	agg := newAggregate()
	for _, s := range spendings {
		if !f.Matches(s) {
			continue
		}
		name := s.DisplayCategory()
		if s.CategoryID != nil && tree != nil {
			if root, ok := tree.Root(*s.CategoryID); ok {
				name = root.Name
			}
		}
		agg.add(name, name, s.Amount.Decimal)
	}
	return *agg
}

// Summary is the grand total of the filtered spendings.
type Summary struct {
	Total decimal.Decimal
	Count int
}

// Display returns the total rounded to two decimal places.
func (s Summary) Display() string {
	return s.Total.StringFixed(2)
}

// Summarize totals the filtered spendings.
func Summarize(spendings []models.Spending, f Filter) Summary {
	sum := Summary{Total: decimal.Zero}
	for _, s := range spendings {
		if f.Matches(s) {
			sum.Total = sum.Total.Add(s.Amount.Decimal)
			sum.Count++
		}
	}
	return sum
}
