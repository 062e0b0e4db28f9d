package ledger

import (
	"context"
	"time"

	"forest-funds/internal/models"

	"github.com/shopspring/decimal"
)

// Number of recent transactions on the dashboard and on the entry page.
const (
	DashboardRecent = 5
	EntryRecent     = 3
)

// TransactionsInMonth returns the user's transactions dated inside p.
func (s *Store) TransactionsInMonth(userID string, p models.Period) ([]models.Transaction, error) {
	txs, err := s.Transactions(userID)
	if err != nil {
		return nil, err
	}
	return InMonth(txs, p), nil
}

// MonthlyTotals sums the user's income and expenses for p.
func (s *Store) MonthlyTotals(userID string, p models.Period) (Totals, error) {
	txs, err := s.TransactionsInMonth(userID, p)
	if err != nil {
		return Totals{}, err
	}
	return Sum(txs), nil
}

// CategoryTotals sums the user's expenses in p per category.
func (s *Store) CategoryTotals(userID string, p models.Period) (map[string]decimal.Decimal, error) {
	txs, err := s.TransactionsInMonth(userID, p)
	if err != nil {
		return nil, err
	}
	return CategoryTotals(txs), nil
}

// BudgetProgress compares the user's expenses in p with the profile budget.
func (s *Store) BudgetProgress(userID string, p models.Period) (Progress, error) {
	totals, err := s.MonthlyTotals(userID, p)
	if err != nil {
		return Progress{}, err
	}
	profile, err := s.Profile(userID)
	if err != nil {
		return Progress{}, err
	}
	return BudgetProgress(totals.Expenses, profile.MonthlyBudget), nil
}

// YearlySeries returns the user's monthly income and expenses over year.
func (s *Store) YearlySeries(userID string, year int) (Series, error) {
	txs, err := s.Transactions(userID)
	if err != nil {
		return Series{}, err
	}
	return Yearly(txs, year), nil
}

// Dashboard is the current month at a glance.
type Dashboard struct {
	Period   models.Period
	Currency string
	Totals   Totals
	Budget   Progress
	Recent   []models.Transaction
}

// Dashboard derives the dashboard of the user for the current month.
func (s *Store) Dashboard(userID string) (Dashboard, error) {
	txs, err := s.Transactions(userID)
	if err != nil {
		return Dashboard{}, err
	}
	profile, err := s.Profile(userID)
	if err != nil {
		return Dashboard{}, err
	}
	p := models.CurrentPeriod(s.now())
	totals := Sum(InMonth(txs, p))
	return Dashboard{
		Period:   p,
		Currency: profile.Currency,
		Totals:   totals,
		Budget:   BudgetProgress(totals.Expenses, profile.MonthlyBudget),
		Recent:   MostRecent(txs, DashboardRecent),
	}, nil
}

// Analytics is the month-over-month view of a single month.
type Analytics struct {
	Period        models.Period
	Currency      string
	Totals        Totals
	SavingsRate   decimal.Decimal
	IncomeChange  decimal.Decimal
	ExpenseChange decimal.Decimal
	Categories    []CategoryAmount
	Series        Series
}

// Analytics derives the analytics of the user for p, compared with the month
// before it.
func (s *Store) Analytics(userID string, p models.Period) (Analytics, error) {
	txs, err := s.Transactions(userID)
	if err != nil {
		return Analytics{}, err
	}
	profile, err := s.Profile(userID)
	if err != nil {
		return Analytics{}, err
	}

	month := InMonth(txs, p)
	totals := Sum(month)
	prev := Sum(InMonth(txs, p.Previous()))

	return Analytics{
		Period:        p,
		Currency:      profile.Currency,
		Totals:        totals,
		SavingsRate:   SavingsRate(totals.Income, totals.Expenses),
		IncomeChange:  PeriodOverPeriodChange(totals.Income, prev.Income),
		ExpenseChange: PeriodOverPeriodChange(totals.Expenses, prev.Expenses),
		Categories:    Breakdown(CategoryTotals(month)),
		Series:        Yearly(txs, p.Year),
	}, nil
}

// Stats are the lifetime figures of the profile page.
type Stats struct {
	Currency       string
	Count          int
	MonthsTracked  int
	BiggestExpense decimal.Decimal
	TotalSaved     decimal.Decimal
}

// Stats derives the lifetime statistics of the user.
func (s *Store) Stats(userID string) (Stats, error) {
	txs, err := s.Transactions(userID)
	if err != nil {
		return Stats{}, err
	}
	profile, err := s.Profile(userID)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		Currency:       profile.Currency,
		Count:          len(txs),
		MonthsTracked:  MonthsTracked(txs),
		BiggestExpense: BiggestExpense(txs),
		TotalSaved:     LifetimeSaved(txs),
	}, nil
}

// Poll derives the dashboard now and then once every interval, handing each
// result to fn, until ctx is done. It returns ctx.Err() on cancellation or the
// first storage error.
func (s *Store) Poll(ctx context.Context, userID string, interval time.Duration, fn func(Dashboard)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		d, err := s.Dashboard(userID)
		if err != nil {
			return err
		}
		fn(d)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
