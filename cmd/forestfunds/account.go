package main

import (
	"context"
	"flag"
	"fmt"

	"forest-funds/internal/auth"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type registerCmd struct {
	*app
	name, email       string
	password, confirm string
	budget            string
}

func (*registerCmd) Name() string     { return "register" }
func (*registerCmd) Synopsis() string { return "create an account and log in" }
func (*registerCmd) Usage() string {
	return `forestfunds register -name <name> -email <email> [-password <pw> -confirm <pw>] [-budget <amount>]

  Creates an account and logs in. Passwords are prompted for when omitted.
`
}

func (c *registerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Full name")
	f.StringVar(&c.email, "email", "", "Email address")
	f.StringVar(&c.password, "password", "", "Password (optional, will prompt if omitted)")
	f.StringVar(&c.confirm, "confirm", "", "Password confirmation (optional, will prompt if omitted)")
	f.StringVar(&c.budget, "budget", "", "Monthly budget (defaults to ledger.default_budget)")
}

func (c *registerCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	form := auth.Registration{Name: c.name, Email: c.email}
	if c.budget != "" {
		budget, err := decimal.NewFromString(c.budget)
		if err != nil {
			return c.usage("invalid budget %q", c.budget)
		}
		form.MonthlyBudget = budget
	}
	if !form.MonthlyBudget.IsPositive() {
		form.MonthlyBudget = c.cfg.Ledger.Budget()
	}

	var err error
	if form.Password, err = c.promptPassword("Password", c.password); err != nil {
		return c.fail(err)
	}
	if form.Confirm, err = c.promptPassword("Confirm password", c.confirm); err != nil {
		return c.fail(err)
	}

	sess, err := c.auth.Register(form)
	if err != nil {
		return c.fail(err)
	}
	fmt.Fprintf(c.stdout, "Welcome to Forest Funds, %s! Your id is %s\n", sess.User.FirstName(), sess.UserID())
	return subcommands.ExitSuccess
}

type loginCmd struct {
	*app
	email, password string
	provider, name  string
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "log in with email and password, or with a provider" }
func (*loginCmd) Usage() string {
	return `forestfunds login -email <email> [-password <pw>]
forestfunds login -provider <name> [-name <name>] [-email <email>]

  Opens a session. With -provider no password is checked and an account is
  created on first use.
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "Email address")
	f.StringVar(&c.password, "password", "", "Password (optional, will prompt if omitted)")
	f.StringVar(&c.provider, "provider", "", "External identity provider, e.g. google")
	f.StringVar(&c.name, "name", "", "Display name for a provider login")
}

func (c *loginCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var (
		sess auth.Session
		err  error
	)
	if c.provider != "" {
		sess, err = c.auth.LoginWithProvider(c.provider, c.name, c.email)
	} else {
		password, perr := c.promptPassword("Password", c.password)
		if perr != nil {
			return c.fail(perr)
		}
		sess, err = c.auth.Login(c.email, password)
	}
	if err != nil {
		return c.fail(err)
	}
	fmt.Fprintf(c.stdout, "Welcome back, %s!\n", sess.User.FirstName())
	return subcommands.ExitSuccess
}

type demoCmd struct{ *app }

func (*demoCmd) Name() string     { return "demo" }
func (*demoCmd) Synopsis() string { return "log in with the demo account" }
func (*demoCmd) Usage() string {
	return `forestfunds demo

  Creates the demo account on first use and logs in with it.
`
}
func (*demoCmd) SetFlags(*flag.FlagSet) {}

func (c *demoCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if _, err := c.auth.EnsureDemoUser(); err != nil {
		return c.fail(err)
	}
	sess, err := c.auth.Login(auth.DemoEmail, auth.DemoPassword)
	if err != nil {
		return c.fail(err)
	}
	fmt.Fprintf(c.stdout, "Logged in as %s (%s)\n", sess.User.Name, sess.User.Email)
	return subcommands.ExitSuccess
}

type logoutCmd struct{ *app }

func (*logoutCmd) Name() string           { return "logout" }
func (*logoutCmd) Synopsis() string       { return "close the current session" }
func (*logoutCmd) Usage() string          { return "forestfunds logout\n" }
func (*logoutCmd) SetFlags(*flag.FlagSet) {}

func (c *logoutCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.auth.Logout(); err != nil {
		return c.fail(err)
	}
	fmt.Fprintln(c.stdout, "Logged out")
	return subcommands.ExitSuccess
}

type whoamiCmd struct{ *app }

func (*whoamiCmd) Name() string           { return "whoami" }
func (*whoamiCmd) Synopsis() string       { return "show the logged in user" }
func (*whoamiCmd) Usage() string          { return "forestfunds whoami\n" }
func (*whoamiCmd) SetFlags(*flag.FlagSet) {}

func (c *whoamiCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sess, err := c.session()
	if err != nil {
		return c.fail(err)
	}
	u := sess.User
	fmt.Fprintf(c.stdout, "%s <%s> (%s)\n", u.Name, u.Email, u.ID)
	return subcommands.ExitSuccess
}
