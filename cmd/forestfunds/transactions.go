package main

import (
	"context"
	"flag"
	"fmt"

	"forest-funds/internal/models"
	"forest-funds/internal/report"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type addCmd struct {
	*app
	amount      string
	typ         string
	category    string
	description string
	date        string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record an income or an expense" }
func (*addCmd) Usage() string {
	return `forestfunds add -amount <n> -category <label> -description <text> [-type income|expense] [-date YYYY-MM-DD]

  Adds a transaction to the ledger of the logged in user. The date defaults to
  today. Known categories: Food, Transport, Home, Health, Entertainment, Gifts,
  Other; any other label is accepted too.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "amount", "", "Amount, greater than 0")
	f.StringVar(&c.typ, "type", string(models.Expense), "income or expense")
	f.StringVar(&c.category, "category", "", "Category label")
	f.StringVar(&c.description, "description", "", "Description")
	f.StringVar(&c.date, "date", "", "Date (defaults to today)")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sess, err := c.session()
	if err != nil {
		return c.fail(err)
	}

	d := models.Draft{
		Type:        models.TransactionType(c.typ),
		Category:    c.category,
		Description: c.description,
		Date:        models.DateOf(c.now()),
	}
	if c.amount != "" {
		if d.Amount, err = decimal.NewFromString(c.amount); err != nil {
			return c.usage("invalid amount %q", c.amount)
		}
	}
	if c.date != "" {
		if d.Date, err = models.ParseDate(c.date); err != nil {
			return c.usage("invalid date %q", c.date)
		}
	}

	tx, err := c.ledger.AddTransaction(sess.UserID(), d)
	if err != nil {
		return c.fail(err)
	}
	currency, err := c.currency(sess.UserID())
	if err != nil {
		return c.fail(err)
	}
	fmt.Fprintf(c.stdout, "Added %s %s on %s (id %s)\n", tx.Type, report.Signed(tx, currency), tx.Date, tx.ID)
	return subcommands.ExitSuccess
}

type listCmd struct {
	*app
	month, year int
	recent      int
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list transactions grouped by day" }
func (*listCmd) Usage() string {
	return `forestfunds list [-month <0-11> -year <yyyy>] [-recent <n>]

  Lists the ledger of the logged in user, newest day first. -month uses 0 for
  January.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.month, "month", -1, "Only this month, 0 for January")
	f.IntVar(&c.year, "year", 0, "Year of -month (defaults to the current year)")
	f.IntVar(&c.recent, "recent", 0, "Only the n most recent transactions")
}

func (c *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sess, err := c.session()
	if err != nil {
		return c.fail(err)
	}

	var txs []models.Transaction
	switch {
	case c.month >= 0:
		if c.month > 11 {
			return c.usage("month must be between 0 and 11")
		}
		year := c.year
		if year == 0 {
			year = c.now().Year()
		}
		txs, err = c.ledger.TransactionsInMonth(sess.UserID(), models.PeriodOf(c.month, year))
	case c.recent > 0:
		txs, err = c.ledger.Recent(sess.UserID(), c.recent)
	default:
		txs, err = c.ledger.Transactions(sess.UserID())
	}
	if err != nil {
		return c.fail(err)
	}

	currency, err := c.currency(sess.UserID())
	if err != nil {
		return c.fail(err)
	}
	if err := c.print(report.TransactionsMarkdown(txs, currency, c.now())); err != nil {
		return c.fail(err)
	}
	return subcommands.ExitSuccess
}

type deleteCmd struct{ *app }

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete transactions by id" }
func (*deleteCmd) Usage() string {
	return `forestfunds delete <id>...

  Removes the transactions with the given ids. Unknown ids are ignored.
`
}
func (*deleteCmd) SetFlags(*flag.FlagSet) {}

func (c *deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		return c.usage("delete needs at least one transaction id")
	}
	sess, err := c.session()
	if err != nil {
		return c.fail(err)
	}
	for _, id := range f.Args() {
		if err := c.ledger.DeleteTransaction(sess.UserID(), id); err != nil {
			return c.fail(err)
		}
	}
	fmt.Fprintf(c.stdout, "Deleted %d transaction(s)\n", f.NArg())
	return subcommands.ExitSuccess
}

type resetCmd struct {
	*app
	yes bool
}

func (*resetCmd) Name() string     { return "reset" }
func (*resetCmd) Synopsis() string { return "delete every transaction of the logged in user" }
func (*resetCmd) Usage() string {
	return `forestfunds reset -yes

  Removes the whole ledger. Profile and settings are kept.
`
}

func (c *resetCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "yes", false, "Confirm the reset")
}

func (c *resetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.yes {
		return c.usage("reset deletes all transactions; pass -yes to confirm")
	}
	sess, err := c.session()
	if err != nil {
		return c.fail(err)
	}
	if err := c.ledger.ResetLedger(sess.UserID()); err != nil {
		return c.fail(err)
	}
	fmt.Fprintln(c.stdout, "All transactions have been deleted")
	return subcommands.ExitSuccess
}
