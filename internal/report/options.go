package report

import (
	"github.com/agnivade/levenshtein"

	"spendly/internal/models"
)

// Option is one entry of a filter picker.
type Option struct {
	Value string
	Label string
}

// CategoryOptions returns All followed by each category name in
// first-occurrence order.
func CategoryOptions(spendings []models.Spending) []Option {
	opts := []Option{{Value: All, Label: All}}
	seen := map[string]bool{}
	for _, s := range spendings {
		name := s.DisplayCategory()
		if seen[name] {
			continue
		}
		seen[name] = true
		opts = append(opts, Option{Value: name, Label: name})
	}
	return opts
}

// MonthOptions returns All followed by each month key in first-occurrence
// order, labelled like "January 2024".
func MonthOptions(spendings []models.Spending) []Option {
	opts := []Option{{Value: All, Label: All}}
	seen := map[models.Month]bool{}
	for _, s := range spendings {
		m := s.Date.Month()
		if seen[m] {
			continue
		}
		seen[m] = true
		opts = append(opts, Option{Value: m.String(), Label: m.Label()})
	}
	return opts
}

// Suggest returns the option value closest to input by edit distance when it
// is within maxDistance, for "did you mean" hints on unknown filter values.
func Suggest(input string, options []Option, maxDistance int) (string, bool) {
	best, bestDist := "", maxDistance+1
	for _, o := range options {
		if o.Value == All {
			continue
		}
		if d := levenshtein.ComputeDistance(input, o.Value); d < bestDist {
			best, bestDist = o.Value, d
		}
	}
	return best, best != ""
}

// HasOption reports whether value is one of the options.
func HasOption(value string, options []Option) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}
