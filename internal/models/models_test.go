package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"spendly/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func strPtr(v string) *string { return &v }

func TestDateJSON(t *testing.T) {
	var target struct {
		Date models.Date `json:"date"`
	}
	err := json.Unmarshal([]byte(`{"date":"2024-01-05"}`), &target)

	require.NoError(t, err)
	assert.Equal(t, models.NewDate(2024, time.January, 5), target.Date)

	raw, err := json.Marshal(target)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-01-05"}`, string(raw))
}

func TestDateUnmarshalRejectsBadFormat(t *testing.T) {
	var d models.Date
	assert.Error(t, json.Unmarshal([]byte(`"05/01/2024"`), &d))
}

func TestDateScan(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"time", time.Date(2024, 2, 29, 13, 0, 0, 0, time.UTC)},
		{"text", "2024-02-29"},
		{"sqlite_timestamp_text", "2024-02-29 00:00:00+00:00"},
		{"bytes", []byte("2024-02-29")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d models.Date
			require.NoError(t, d.Scan(tt.value))
			assert.Equal(t, "2024-02-29", d.String())
		})
	}

	var d models.Date
	assert.Error(t, d.Scan(42))
}

func TestMonthKeyAndLabel(t *testing.T) {
	m := models.NewDate(2024, time.March, 17).Month()
	assert.Equal(t, "2024-03", m.String())
	assert.Equal(t, "March 2024", m.Label())

	parsed, err := models.ParseMonth("2024-03")
	require.NoError(t, err)
	assert.Equal(t, m, parsed)

	_, err = models.ParseMonth("March 2024")
	assert.Error(t, err)
}

func TestAmountJSON(t *testing.T) {
	var s models.Spending
	require.NoError(t, json.Unmarshal([]byte(`{"amount":12.5}`), &s))
	assert.Equal(t, "12.50", s.Amount.String())

	require.NoError(t, json.Unmarshal([]byte(`{"amount":"7.00"}`), &s))
	raw, err := json.Marshal(s.Amount)
	require.NoError(t, err)
	assert.Equal(t, `"7.00"`, string(raw))
}

func TestAmountTextAcceptsStringAndNumber(t *testing.T) {
	var in models.SpendingInput
	require.NoError(t, json.Unmarshal([]byte(`{"amount":12.5}`), &in))
	assert.Equal(t, models.AmountText("12.5"), in.Amount)

	require.NoError(t, json.Unmarshal([]byte(`{"amount":"3.10"}`), &in))
	assert.Equal(t, models.AmountText("3.10"), in.Amount)

	assert.Error(t, json.Unmarshal([]byte(`{"amount":true}`), &in))
}

func TestCategoryPatchJSON(t *testing.T) {
	tests := []struct {
		name  string
		patch models.CategoryPatch
		want  string
	}{
		{"empty", models.CategoryPatch{}, `{}`},
		{"rename", models.CategoryPatch{Name: strPtr("Groceries")}, `{"name":"Groceries"}`},
		{"clear_parent", models.CategoryPatch{Parent: models.Clear()}, `{"parent":null}`},
		{"move", models.CategoryPatch{Parent: models.SetID(3)}, `{"parent":3}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(tt.patch)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(raw))
		})
	}
}

func TestOptionalIDUnmarshal(t *testing.T) {
	var p models.CategoryPatch
	require.NoError(t, json.Unmarshal([]byte(`{"name":"x"}`), &p))
	assert.False(t, p.Parent.Set)

	require.NoError(t, json.Unmarshal([]byte(`{"parent":null}`), &p))
	assert.True(t, p.Parent.Set)
	assert.Nil(t, p.Parent.ID)

	p = models.CategoryPatch{}
	require.NoError(t, json.Unmarshal([]byte(`{"parent":0}`), &p))
	assert.True(t, p.Parent.Set)
	assert.Nil(t, p.Parent.ID, "zero normalizes to null")
}

func TestDisplayFallbacks(t *testing.T) {
	assert.Equal(t, models.NoParent, models.Category{Name: "Food"}.DisplayParent())
	assert.Equal(t, "Food", models.Category{ParentName: strPtr("Food")}.DisplayParent())

	assert.Equal(t, models.Uncategorized, models.Spending{}.DisplayCategory())
	assert.Equal(t, "Food", models.Spending{CategoryName: strPtr("Food")}.DisplayCategory())
}

func TestInputFromAndNormalize(t *testing.T) {
	s := models.Spending{
		Name:       "Lunch",
		Amount:     models.MustAmount("12.5"),
		Date:       models.NewDate(2024, time.January, 5),
		CategoryID: uintPtr(0),
	}
	in := models.InputFrom(s)
	assert.Equal(t, models.AmountText("12.50"), in.Amount)
	assert.Equal(t, "2024-01-05", in.Date)
	assert.Nil(t, in.Category)

	in.Category = uintPtr(0)
	assert.Nil(t, in.Normalize().Category)
}

func categoryFixture() []models.Category {
	return []models.Category{
		{Base: models.Base{ID: 1}, Name: "Food"},
		{Base: models.Base{ID: 2}, Name: "Groceries", ParentID: uintPtr(1)},
		{Base: models.Base{ID: 3}, Name: "Organic", ParentID: uintPtr(2)},
		{Base: models.Base{ID: 4}, Name: "Travel"},
	}
}

func TestCategoryTree(t *testing.T) {
	tree := models.NewCategoryTree(categoryFixture())

	assert.Equal(t, 4, tree.Len())
	assert.Equal(t, "Food", tree.ParentName(2))
	assert.Equal(t, models.NoParent, tree.ParentName(1))
	assert.Equal(t, []uint{2, 1}, tree.Ancestors(3))
	assert.Equal(t, "Food -> Groceries -> Organic", tree.Path(3))

	root, ok := tree.Root(3)
	require.True(t, ok)
	assert.Equal(t, "Food", root.Name)

	roots := tree.Roots()
	require.Len(t, roots, 2)
	assert.Equal(t, "Food", roots[0].Name)
	assert.Equal(t, "Travel", roots[1].Name)

	children := tree.Children(1)
	require.Len(t, children, 1)
	assert.Equal(t, "Groceries", children[0].Name)
}

func TestCategoryTreeWouldCycle(t *testing.T) {
	tree := models.NewCategoryTree(categoryFixture())

	assert.True(t, tree.WouldCycle(1, 1), "self parent")
	assert.True(t, tree.WouldCycle(1, 3), "descendant as parent")
	assert.False(t, tree.WouldCycle(3, 4))
	assert.False(t, tree.WouldCycle(4, 1))
}

func TestCategoryTreeTerminatesOnCorruptCycle(t *testing.T) {
	tree := models.NewCategoryTree([]models.Category{
		{Base: models.Base{ID: 1}, Name: "A", ParentID: uintPtr(2)},
		{Base: models.Base{ID: 2}, Name: "B", ParentID: uintPtr(1)},
	})

	assert.Equal(t, []uint{2}, tree.Ancestors(1))
	assert.Equal(t, "B -> A", tree.Path(1))
	assert.Empty(t, tree.Roots())
}
