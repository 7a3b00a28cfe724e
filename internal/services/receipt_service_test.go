package services

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "spendly/internal/errors"
	"spendly/internal/models"
	"spendly/internal/pagination"
	"spendly/internal/testutil"
)

// pngHeader is enough for content sniffing to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestSaveReceipt(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	dir := t.TempDir()
	svc := NewReceiptService(db, dir)
	user := testutil.CreateTestUser(t, db)

	receipt, err := svc.SaveReceipt(user.ID, "lunch.png", bytes.NewReader(pngHeader))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(receipt.Image, "receipts/"))
	assert.True(t, strings.HasSuffix(receipt.Image, ".png"))
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(receipt.Image)))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)

	var count int64
	require.NoError(t, db.Model(&models.Receipt{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSaveReceipt_RejectsNonImage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewReceiptService(db, t.TempDir())
	user := testutil.CreateTestUser(t, db)

	_, err := svc.SaveReceipt(user.ID, "notes.txt", strings.NewReader("just some text"))
	testutil.AssertAppError(t, err, apperrors.ErrValidation.Code)
}

type stubSpendings struct {
	SpendingServicer
	items []models.Spending
}

func (s stubSpendings) ListSpendings(uint, pagination.PageRequest) ([]models.Spending, int64, error) {
	return s.items, int64(len(s.items)), nil
}

func TestSummaryAssistant(t *testing.T) {
	food := "Food"
	items := []models.Spending{
		{Amount: models.MustAmount("10"), Date: models.NewDate(2024, 1, 5), CategoryName: &food},
		{Amount: models.MustAmount("5"), Date: models.NewDate(2024, 1, 20)},
	}
	a := NewSummaryAssistant(stubSpendings{items: items})

	answer, err := a.Answer(context.Background(), 1, "How much did I spend?")
	require.NoError(t, err)
	assert.Contains(t, answer, "You spent 15.00 in total across 2 spendings.")
	assert.Contains(t, answer, "January 2024: 15.00")
	assert.Contains(t, answer, "Uncategorized: 5.00")

	answer, err = a.Answer(context.Background(), 1, "what about food?")
	require.NoError(t, err)
	assert.Contains(t, answer, "You spent 10.00 on Food across 1 spendings.")

	empty := NewSummaryAssistant(stubSpendings{})
	answer, err = empty.Answer(context.Background(), 1, "anything")
	require.NoError(t, err)
	assert.Equal(t, "You have no recorded spendings yet.", answer)
}
