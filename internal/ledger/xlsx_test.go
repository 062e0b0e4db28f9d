package ledger

import (
	"bytes"
	"testing"
	"time"

	"forest-funds/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	snap := Snapshot{
		Profile: models.Profile{Currency: "LKR"},
		Transactions: []models.Transaction{
			{ID: "1", Amount: dec("20000"), Type: models.Income, Category: "Salary", Description: "Pay", Date: models.MustParseDate("2024-03-01")},
			{ID: "2", Amount: dec("5000"), Type: models.Expense, Category: "Food", Description: "Groceries", Date: models.MustParseDate("2024-03-10")},
		},
		ExportDate: time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, snap))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, []string{"ID", "Date", "Type", "Category", "Description", "Amount"}, rows[0])
	assert.Equal(t, "2", rows[1][0], "newest first")
	assert.Equal(t, "Groceries", rows[1][4])
	assert.Equal(t, "1", rows[2][0])

	label, err := f.GetCellValue(SheetName, "E6")
	require.NoError(t, err)
	assert.Equal(t, "Balance (LKR)", label)
	balance, err := f.GetCellValue(SheetName, "F6")
	require.NoError(t, err)
	assert.Equal(t, "15000", balance)
}
