package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendly/internal/config"
	"spendly/internal/testutil/testserver"
)

type harness struct {
	t   *testing.T
	cfg *config.ClientConfig
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	srv := testserver.New(t)
	return &harness{t: t, cfg: &config.ClientConfig{
		APIURL:         srv.APIURL(),
		TokenFile:      filepath.Join(t.TempDir(), "token"),
		TokenScheme:    "Bearer",
		PageSize:       2,
		RequestTimeout: 5 * time.Second,
		Locale:         "en-US",
	}}
}

// run executes one invocation, building a fresh app like the binary does.
func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	var out bytes.Buffer
	a, err := newApp(h.cfg, strings.NewReader(""), &out)
	require.NoError(h.t, err)
	err = a.run(context.Background(), args)
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	require.NoError(h.t, err, "spendly %s", strings.Join(args, " "))
	return out
}

func (h *harness) register() {
	h.mustRun("register", "-username", "ana", "-email", "ana@example.com",
		"-first-name", "Ana", "-last-name", "Lee", "-password", "password123")
}

func TestCLI_EndToEnd(t *testing.T) {
	h := newHarness(t)
	h.register()

	h.mustRun("categories", "add", "Food")
	out := h.mustRun("categories", "add", "-parent", "food", "Groceries")
	assert.Contains(t, out, "Food -> Groceries")

	h.mustRun("spendings", "add", "-name", "Lunch", "-amount", "12", "-date", "2024-01-05", "-category", "Food")
	h.mustRun("spendings", "add", "-name", "Taxi", "-amount", "3", "-date", "2024-01-20")
	h.mustRun("spendings", "add", "-name", "Dinner", "-amount", "5", "-date", "2024-02-02", "-category", "Food")
	h.mustRun("spendings", "add", "-name", "Bus", "-amount", "2", "-date", "2024-02-10")

	out = h.mustRun("report")
	assert.Contains(t, out, "Food")
	assert.Contains(t, out, "17.00")
	assert.Contains(t, out, "Uncategorized")
	assert.Contains(t, out, "January 2024")
	assert.Contains(t, out, "Total: 22.00 (4 spendings)")

	out = h.mustRun("report", "-month", "2024-02")
	assert.Contains(t, out, "Total: 7.00 (2 spendings)")

	out = h.mustRun("spendings")
	assert.Contains(t, out, "Page 1 of 2 (4 spendings)")
	assert.Contains(t, out, "Bus")
	assert.NotContains(t, out, "Lunch")

	out = h.mustRun("spendings", "-page", "9")
	assert.Contains(t, out, "Page 2 of 2")
	assert.Contains(t, out, "Lunch")
}

func TestCLI_EditKeepsUntouchedFields(t *testing.T) {
	h := newHarness(t)
	h.register()
	h.mustRun("categories", "add", "Food")
	out := h.mustRun("spendings", "add", "-name", "Lunch", "-amount", "12.5", "-date", "2024-01-05", "-category", "Food")
	require.Contains(t, out, "Created spending 1")

	out = h.mustRun("spendings", "edit", "-amount", "13", "1")
	assert.Contains(t, out, "Lunch 13.00 on 2024-01-05")

	out = h.mustRun("spendings", "edit", "-category", "-", "1")
	assert.Contains(t, out, "Updated spending 1")
	out = h.mustRun("spendings")
	assert.Contains(t, out, "Uncategorized")

	_, err := h.run("spendings", "edit", "-amount", "1.999", "1")
	assert.ErrorContains(t, err, "Ensure that there are no more than 2 decimal places.")
}

func TestCLI_Hints(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("reprot")
	assert.EqualError(t, err, `unknown command "reprot" (did you mean "report"?)`)

	_, err = h.run("categories")
	assert.ErrorContains(t, err, "not logged in")

	h.register()
	h.mustRun("categories", "add", "Food")
	h.mustRun("spendings", "add", "-name", "Lunch", "-amount", "1", "-date", "2024-01-05", "-category", "Food")

	_, err = h.run("report", "-category", "Fod")
	assert.EqualError(t, err, `unknown category "Fod" (did you mean "Food"?)`)

	h.mustRun("logout")
	_, err = h.run("spendings")
	assert.ErrorContains(t, err, "not logged in")
}

func TestCLI_LoginReadsPasswordFromInput(t *testing.T) {
	h := newHarness(t)
	h.register()
	h.mustRun("logout")

	var out bytes.Buffer
	a, err := newApp(h.cfg, strings.NewReader("password123\n"), &out)
	require.NoError(t, err)
	require.NoError(t, a.run(context.Background(), []string{"login", "-username", "ana"}))
	assert.Contains(t, out.String(), "Logged in as ana.")

	h.mustRun("categories")
}
