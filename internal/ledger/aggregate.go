package ledger

import (
	"slices"
	"sort"

	"forest-funds/internal/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Totals sums a set of transactions by type.
type Totals struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Balance  decimal.Decimal
}

// CategoryAmount is one row of the category breakdown.
type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
	Share    decimal.Decimal // percent of the month's expenses, one decimal
	Style    models.CategoryStyle
}

// Progress is the month's spending measured against the budget.
type Progress struct {
	Spent   decimal.Decimal
	Budget  decimal.Decimal
	Percent decimal.Decimal // always within [0, 100]
}

// Series holds one value per calendar month, January first.
type Series struct {
	Year     int
	Income   [12]decimal.Decimal
	Expenses [12]decimal.Decimal
}

// InMonth returns the transactions dated inside p, in ledger order.
func InMonth(txs []models.Transaction, p models.Period) []models.Transaction {
	var out []models.Transaction
	for _, tx := range txs {
		if p.Contains(tx.Date) {
			out = append(out, tx)
		}
	}
	return out
}

// Sum totals income and expenses; Balance is always Income - Expenses.
func Sum(txs []models.Transaction) Totals {
	var t Totals
	for _, tx := range txs {
		switch tx.Type {
		case models.Income:
			t.Income = t.Income.Add(tx.Amount)
		case models.Expense:
			t.Expenses = t.Expenses.Add(tx.Amount)
		}
	}
	t.Balance = t.Income.Sub(t.Expenses)
	return t
}

// CategoryTotals sums expenses per category. Income never counts towards a
// category, whatever its category field says.
func CategoryTotals(txs []models.Transaction) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		if tx.Type != models.Expense {
			continue
		}
		totals[tx.Category] = totals[tx.Category].Add(tx.Amount)
	}
	return totals
}

// Breakdown orders category totals from the largest amount down, ties by name.
func Breakdown(totals map[string]decimal.Decimal) []CategoryAmount {
	var sum decimal.Decimal
	for _, amount := range totals {
		sum = sum.Add(amount)
	}

	rows := make([]CategoryAmount, 0, len(totals))
	for category, amount := range totals {
		share := decimal.Zero
		if sum.IsPositive() {
			share = amount.Div(sum).Mul(hundred).Round(1)
		}
		rows = append(rows, CategoryAmount{
			Category: category,
			Amount:   amount,
			Share:    share,
			Style:    models.StyleOf(category),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if c := rows[i].Amount.Cmp(rows[j].Amount); c != 0 {
			return c > 0
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}

// BudgetProgress measures spent against budget, falling back to
// models.DefaultBudget when budget is zero or negative.
func BudgetProgress(spent, budget decimal.Decimal) Progress {
	if !budget.IsPositive() {
		budget = models.DefaultBudget
	}
	percent := spent.Div(budget).Mul(hundred)
	if percent.GreaterThan(hundred) {
		percent = hundred
	}
	if percent.IsNegative() {
		percent = decimal.Zero
	}
	return Progress{Spent: spent, Budget: budget, Percent: percent}
}

// Yearly buckets the year's income and expenses by month. Months without
// transactions stay at zero.
func Yearly(txs []models.Transaction, year int) Series {
	s := Series{Year: year}
	for _, tx := range txs {
		if tx.Date.Year() != year {
			continue
		}
		i := int(tx.Date.Month()) - 1
		switch tx.Type {
		case models.Income:
			s.Income[i] = s.Income[i].Add(tx.Amount)
		case models.Expense:
			s.Expenses[i] = s.Expenses[i].Add(tx.Amount)
		}
	}
	return s
}

// SavingsRate returns (income - expenses) / income as a percentage rounded to
// one decimal. It is 0 when there is no income.
func SavingsRate(income, expenses decimal.Decimal) decimal.Decimal {
	if income.IsZero() {
		return decimal.Zero
	}
	return income.Sub(expenses).Div(income).Mul(hundred).Round(1)
}

// PeriodOverPeriodChange returns the percentage change from previous to
// current rounded to one decimal. It is 0 when previous is 0.
func PeriodOverPeriodChange(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(hundred).Round(1)
}

// BiggestExpense returns the largest single expense amount, 0 without expenses.
func BiggestExpense(txs []models.Transaction) decimal.Decimal {
	biggest := decimal.Zero
	for _, tx := range txs {
		if tx.Type == models.Expense && tx.Amount.GreaterThan(biggest) {
			biggest = tx.Amount
		}
	}
	return biggest
}

// LifetimeSaved is income minus expenses over the whole ledger.
func LifetimeSaved(txs []models.Transaction) decimal.Decimal {
	return Sum(txs).Balance
}

// MonthsTracked counts the distinct months holding at least one transaction.
// An empty ledger reports 1, the month being tracked now.
func MonthsTracked(txs []models.Transaction) int {
	months := make(map[models.Period]struct{})
	for _, tx := range txs {
		months[models.PeriodContaining(tx.Date)] = struct{}{}
	}
	if len(months) == 0 {
		return 1
	}
	return len(months)
}

// ByDateDesc returns a copy of txs sorted most recent date first. The order of
// transactions sharing a date is unspecified.
func ByDateDesc(txs []models.Transaction) []models.Transaction {
	out := slices.Clone(txs)
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

// MostRecent returns up to n transactions, most recent date first.
func MostRecent(txs []models.Transaction, n int) []models.Transaction {
	out := ByDateDesc(txs)
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
