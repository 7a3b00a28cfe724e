package services

import (
	"context"
	"fmt"
	"strings"

	"spendly/internal/models"
	"spendly/internal/pagination"
	"spendly/internal/report"
)

// summaryAssistant answers every prompt with the user's spending totals. If
// the prompt mentions one of the user's category names, the summary is
// limited to that category.
type summaryAssistant struct {
	spendings SpendingServicer
}

// NewSummaryAssistant returns an Assistant that summarizes spendings locally.
func NewSummaryAssistant(spendings SpendingServicer) Assistant {
	return &summaryAssistant{spendings: spendings}
}

// Answer implements Assistant.
func (a *summaryAssistant) Answer(ctx context.Context, userID uint, prompt string) (string, error) {
	items, _, err := a.spendings.ListSpendings(userID, pagination.PageRequest{})
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	filter := report.Filter{}
	lower := strings.ToLower(prompt)
	for _, opt := range report.CategoryOptions(items) {
		if opt.Value != report.All && strings.Contains(lower, strings.ToLower(opt.Value)) {
			filter.Category = opt.Value
			break
		}
	}

	return summarize(items, filter), nil
}

func summarize(items []models.Spending, filter report.Filter) string {
	sum := report.Summarize(items, filter)
	if sum.Count == 0 {
		return "You have no recorded spendings yet."
	}

	var b strings.Builder
	scope := "in total"
	if filter.Category != "" {
		scope = "on " + filter.Category
	}
	fmt.Fprintf(&b, "You spent %s %s across %d spendings.", sum.Display(), scope, sum.Count)
	for _, g := range report.ByMonth(items, filter).Groups() {
		fmt.Fprintf(&b, "\n%s: %s", g.Label, g.Display())
	}
	if filter.Category == "" {
		for _, g := range report.ByCategory(items, filter).Groups() {
			fmt.Fprintf(&b, "\n%s: %s", g.Label, g.Display())
		}
	}
	return b.String()
}
