package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"forest-funds/internal/ledger"
	"forest-funds/internal/models"
	"forest-funds/internal/report"

	"github.com/google/subcommands"
)

type dashboardCmd struct {
	*app
	watch bool
}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "show this month's totals, budget and recent transactions" }
func (*dashboardCmd) Usage() string {
	return `forestfunds dashboard [-watch]

  Shows the dashboard of the logged in user. With -watch it is refreshed every
  ledger.refresh_interval until interrupted.
`
}

func (c *dashboardCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.watch, "watch", false, "refresh periodically until interrupted")
}

func (c *dashboardCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sess, err := c.session()
	if err != nil {
		return c.fail(err)
	}
	name := sess.User.FirstName()

	if !c.watch {
		d, err := c.ledger.Dashboard(sess.UserID())
		if err != nil {
			return c.fail(err)
		}
		if err := c.print(report.DashboardMarkdown(name, d)); err != nil {
			return c.fail(err)
		}
		return subcommands.ExitSuccess
	}

	var renderErr error
	err = c.ledger.Poll(ctx, sess.UserID(), c.cfg.Ledger.RefreshInterval, func(d ledger.Dashboard) {
		fmt.Fprint(c.stdout, "\033[2J")
		if err := c.print(report.DashboardMarkdown(name, d)); err != nil && renderErr == nil {
			renderErr = err
		}
	})
	if renderErr != nil {
		return c.fail(renderErr)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return c.fail(err)
	}
	return subcommands.ExitSuccess
}

type analyticsCmd struct {
	*app
	month, year int
}

func (*analyticsCmd) Name() string     { return "analytics" }
func (*analyticsCmd) Synopsis() string { return "compare a month with the previous one" }
func (*analyticsCmd) Usage() string {
	return `forestfunds analytics [-month <0-11>] [-year <yyyy>]

  Shows totals, savings rate, month-over-month changes, the category
  breakdown and the monthly series of the year. -month uses 0 for January and
  defaults to the current month.
`
}

func (c *analyticsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.month, "month", -1, "Month, 0 for January (defaults to the current month)")
	f.IntVar(&c.year, "year", 0, "Year (defaults to the current year)")
}

func (c *analyticsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.month > 11 {
		return c.usage("month must be between 0 and 11")
	}
	sess, err := c.session()
	if err != nil {
		return c.fail(err)
	}

	p := models.CurrentPeriod(c.now())
	if c.month >= 0 {
		p = models.PeriodOf(c.month, p.Year)
	}
	if c.year != 0 {
		p.Year = c.year
	}

	a, err := c.ledger.Analytics(sess.UserID(), p)
	if err != nil {
		return c.fail(err)
	}
	if err := c.print(report.AnalyticsMarkdown(a)); err != nil {
		return c.fail(err)
	}
	return subcommands.ExitSuccess
}

type statsCmd struct{ *app }

func (*statsCmd) Name() string           { return "stats" }
func (*statsCmd) Synopsis() string       { return "show lifetime statistics" }
func (*statsCmd) Usage() string          { return "forestfunds stats\n" }
func (*statsCmd) SetFlags(*flag.FlagSet) {}

func (c *statsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sess, err := c.session()
	if err != nil {
		return c.fail(err)
	}
	s, err := c.ledger.Stats(sess.UserID())
	if err != nil {
		return c.fail(err)
	}
	if err := c.print(report.StatsMarkdown(s)); err != nil {
		return c.fail(err)
	}
	return subcommands.ExitSuccess
}
