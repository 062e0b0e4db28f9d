package ledger

import (
	"fmt"
	"io"

	"forest-funds/internal/models"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the exported ledger.
const SheetName = "Transactions"

// WriteXLSX writes the ledger of snap as a spreadsheet, one row per
// transaction in date order, followed by income, expense and balance rows.
func WriteXLSX(w io.Writer, snap Snapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4DB6AC"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return err
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"FFF176"}, Pattern: 1},
		Border: border,
	})
	if err != nil {
		return err
	}

	widths := map[string]float64{"A": 16, "B": 12, "C": 10, "D": 16, "E": 32, "F": 14}
	for col, width := range widths {
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return err
		}
	}

	headers := []string{"ID", "Date", "Type", "Category", "Description", "Amount"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(SheetName, cell, header); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(SheetName, "A1", "F1", headerStyle); err != nil {
		return err
	}

	txs := ByDateDesc(snap.Transactions)
	for i, tx := range txs {
		row := i + 2
		values := []any{tx.ID, tx.Date.String(), string(tx.Type), tx.Category, tx.Description, tx.Amount.InexactFloat64()}
		for j, v := range values {
			if err := f.SetCellValue(SheetName, fmt.Sprintf("%c%d", 'A'+j, row), v); err != nil {
				return err
			}
		}
	}

	totals := Sum(txs)
	currency := snap.Profile.Currency
	if currency == "" {
		currency = models.DefaultCurrency
	}
	summary := []struct {
		label  string
		amount float64
	}{
		{"Total income", totals.Income.InexactFloat64()},
		{"Total expenses", totals.Expenses.InexactFloat64()},
		{"Balance", totals.Balance.InexactFloat64()},
	}
	for i, line := range summary {
		row := len(txs) + 2 + i
		if err := f.SetCellValue(SheetName, fmt.Sprintf("E%d", row), fmt.Sprintf("%s (%s)", line.label, currency)); err != nil {
			return err
		}
		if err := f.SetCellValue(SheetName, fmt.Sprintf("F%d", row), line.amount); err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetName, fmt.Sprintf("E%d", row), fmt.Sprintf("F%d", row), totalStyle); err != nil {
			return err
		}
	}

	return f.Write(w)
}
