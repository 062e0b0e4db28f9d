package report

import (
	"bytes"
	"fmt"
	"time"

	"forest-funds/internal/ledger"
	"forest-funds/internal/models"

	md "github.com/nao1215/markdown"
)

// Signed formats the amount of tx with the sign implied by its type.
func Signed(tx models.Transaction, currency string) string {
	if tx.Type == models.Income {
		return "+" + Money(tx.Amount, currency)
	}
	return "-" + Money(tx.Amount, currency)
}

func transactionRows(txs []models.Transaction, currency string) [][]string {
	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, []string{tx.Date.String(), tx.Category, tx.Description, Signed(tx, currency)})
	}
	return rows
}

// DashboardMarkdown renders the dashboard of the named user.
func DashboardMarkdown(name string, d ledger.Dashboard) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Welcome back, %s", name))
	doc.PlainText(d.Period.String())

	doc.Table(md.TableSet{
		Header: []string{"Income", "Expenses", "Balance"},
		Rows: [][]string{{
			Money(d.Totals.Income, d.Currency),
			Money(d.Totals.Expenses, d.Currency),
			Money(d.Totals.Balance, d.Currency),
		}},
	})

	doc.H2("Budget")
	doc.PlainText(fmt.Sprintf("%s spent of %s (%s)",
		Money(d.Budget.Spent, d.Currency), Money(d.Budget.Budget, d.Currency), Percent(d.Budget.Percent)))

	doc.H2("Recent transactions")
	if len(d.Recent) == 0 {
		doc.PlainText("No transactions yet.")
	} else {
		doc.Table(md.TableSet{
			Header: []string{"Date", "Category", "Description", "Amount"},
			Rows:   transactionRows(d.Recent, d.Currency),
		})
	}
	return doc.String()
}

// AnalyticsMarkdown renders the analytics of one month.
func AnalyticsMarkdown(a ledger.Analytics) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Analytics for %s", a.Period))
	doc.Table(md.TableSet{
		Header: []string{"", "Amount", "vs previous month"},
		Rows: [][]string{
			{"Income", Money(a.Totals.Income, a.Currency), Change(a.IncomeChange)},
			{"Expenses", Money(a.Totals.Expenses, a.Currency), Change(a.ExpenseChange)},
			{"Balance", Money(a.Totals.Balance, a.Currency), ""},
		},
	})
	doc.PlainText(fmt.Sprintf("Savings rate: %s", Percent(a.SavingsRate)))

	doc.H2("Spending by category")
	if len(a.Categories) == 0 {
		doc.PlainText("No expenses this month.")
	} else {
		rows := make([][]string, 0, len(a.Categories))
		for _, c := range a.Categories {
			rows = append(rows, []string{c.Category, Money(c.Amount, a.Currency), Percent(c.Share)})
		}
		doc.Table(md.TableSet{Header: []string{"Category", "Amount", "Share"}, Rows: rows})
	}

	doc.H2(fmt.Sprintf("%d by month", a.Series.Year))
	rows := make([][]string, 0, 12)
	for i := 0; i < 12; i++ {
		rows = append(rows, []string{
			time.Month(i + 1).String(),
			Money(a.Series.Income[i], a.Currency),
			Money(a.Series.Expenses[i], a.Currency),
		})
	}
	doc.Table(md.TableSet{Header: []string{"Month", "Income", "Expenses"}, Rows: rows})
	return doc.String()
}

// TransactionsMarkdown renders txs grouped by day.
func TransactionsMarkdown(txs []models.Transaction, currency string, today time.Time) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Transactions")
	if len(txs) == 0 {
		doc.PlainText("No transactions yet.")
		return doc.String()
	}
	for _, g := range GroupByDate(txs, today) {
		net := Money(g.Net, currency)
		if g.Net.IsPositive() {
			net = "+" + net
		}
		doc.H2(fmt.Sprintf("%s (%s)", g.Title, net))
		rows := make([][]string, 0, len(g.Items))
		for _, it := range g.Items {
			rows = append(rows, []string{it.ID, it.Category, it.Description, Signed(it.Transaction, currency)})
		}
		doc.Table(md.TableSet{Header: []string{"ID", "Category", "Description", "Amount"}, Rows: rows})
	}
	return doc.String()
}

// Profile gathers what the profile page shows.
type Profile struct {
	Profile  models.Profile
	Settings models.Settings
	Avatar   string
	Stats    ledger.Stats
}

// ProfileMarkdown renders the profile page.
func ProfileMarkdown(p Profile) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(p.Profile.Name)
	doc.BulletList(
		fmt.Sprintf("Email: %s", p.Profile.Email),
		fmt.Sprintf("Member since: %s", p.Profile.MemberSince),
		fmt.Sprintf("Monthly budget: %s", Money(p.Profile.MonthlyBudget, p.Profile.Currency)),
		fmt.Sprintf("Avatar: %s", p.Avatar),
	)

	doc.H2("Statistics")
	doc.Table(statsTable(p.Stats))

	doc.H2("Settings")
	doc.BulletList(
		fmt.Sprintf("Theme: %s", p.Settings.Theme),
		fmt.Sprintf("Notifications: %s", onOff(p.Settings.Notifications)),
		fmt.Sprintf("Reminders: %s", onOff(p.Settings.Reminders)),
	)
	return doc.String()
}

// StatsMarkdown renders the lifetime statistics on their own.
func StatsMarkdown(s ledger.Stats) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Statistics")
	doc.Table(statsTable(s))
	return doc.String()
}

func statsTable(s ledger.Stats) md.TableSet {
	return md.TableSet{
		Header: []string{"Transactions", "Months tracked", "Biggest expense", "Total saved"},
		Rows: [][]string{{
			fmt.Sprint(s.Count),
			fmt.Sprint(s.MonthsTracked),
			Money(s.BiggestExpense, s.Currency),
			Money(s.TotalSaved, s.Currency),
		}},
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
