package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"forest-funds/internal/avatar"
	"forest-funds/internal/report"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type profileCmd struct {
	*app
	name, email string
	budget      string
	currency    string
}

func (*profileCmd) Name() string     { return "profile" }
func (*profileCmd) Synopsis() string { return "show or edit the profile" }
func (*profileCmd) Usage() string {
	return `forestfunds profile [-name <name>] [-email <email>] [-budget <amount>] [-currency <code>]

  Without flags, shows the profile, lifetime statistics and settings. With
  flags, saves the given fields and keeps the others.
`
}

func (c *profileCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Display name")
	f.StringVar(&c.email, "email", "", "Email address")
	f.StringVar(&c.budget, "budget", "", "Monthly budget")
	f.StringVar(&c.currency, "currency", "", "Currency code, e.g. LKR")
}

func (c *profileCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sess, err := c.session()
	if err != nil {
		return c.fail(err)
	}
	userID := sess.UserID()

	p, err := c.ledger.Profile(userID)
	if err != nil {
		return c.fail(err)
	}

	if f.NFlag() > 0 {
		if c.name != "" {
			p.Name = c.name
		}
		if c.email != "" {
			p.Email = c.email
		}
		if c.currency != "" {
			p.Currency = c.currency
		}
		if c.budget != "" {
			budget, err := decimal.NewFromString(c.budget)
			if err != nil || !budget.IsPositive() {
				return c.usage("invalid budget %q", c.budget)
			}
			p.MonthlyBudget = budget
		}
		if err := c.ledger.SaveProfile(userID, p); err != nil {
			return c.fail(err)
		}
		fmt.Fprintln(c.stdout, "Profile saved")
		return subcommands.ExitSuccess
	}

	st, err := c.ledger.Settings(userID)
	if err != nil {
		return c.fail(err)
	}
	stats, err := c.ledger.Stats(userID)
	if err != nil {
		return c.fail(err)
	}
	av, err := c.avatars.Get(userID)
	if err != nil {
		return c.fail(err)
	}
	view := report.Profile{Profile: p, Settings: st, Avatar: av.Preset, Stats: stats}
	if err := c.print(report.ProfileMarkdown(view)); err != nil {
		return c.fail(err)
	}
	return subcommands.ExitSuccess
}

type settingsCmd struct {
	*app
	theme         string
	notifications string
	reminders     string
}

func (*settingsCmd) Name() string     { return "settings" }
func (*settingsCmd) Synopsis() string { return "show or change preferences" }
func (*settingsCmd) Usage() string {
	return `forestfunds settings [-theme light|dark] [-notifications true|false] [-reminders true|false]
`
}

func (c *settingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.theme, "theme", "", "light or dark")
	f.StringVar(&c.notifications, "notifications", "", "true or false")
	f.StringVar(&c.reminders, "reminders", "", "true or false")
}

func (c *settingsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sess, err := c.session()
	if err != nil {
		return c.fail(err)
	}
	st, err := c.ledger.Settings(sess.UserID())
	if err != nil {
		return c.fail(err)
	}

	if f.NFlag() > 0 {
		if c.theme != "" {
			st.Theme = c.theme
		}
		for _, b := range []struct {
			name  string
			value string
			dst   *bool
		}{
			{"notifications", c.notifications, &st.Notifications},
			{"reminders", c.reminders, &st.Reminders},
		} {
			if b.value == "" {
				continue
			}
			v, err := strconv.ParseBool(b.value)
			if err != nil {
				return c.usage("invalid -%s %q", b.name, b.value)
			}
			*b.dst = v
		}
		if err := c.ledger.SaveSettings(sess.UserID(), st); err != nil {
			return c.fail(err)
		}
	}

	fmt.Fprintf(c.stdout, "theme=%s notifications=%t reminders=%t\n", st.Theme, st.Notifications, st.Reminders)
	return subcommands.ExitSuccess
}

type themeCmd struct{ *app }

func (*themeCmd) Name() string           { return "theme" }
func (*themeCmd) Synopsis() string       { return "toggle between the light and dark theme" }
func (*themeCmd) Usage() string          { return "forestfunds theme\n" }
func (*themeCmd) SetFlags(*flag.FlagSet) {}

func (c *themeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sess, err := c.session()
	if err != nil {
		return c.fail(err)
	}
	st, err := c.ledger.ToggleTheme(sess.UserID())
	if err != nil {
		return c.fail(err)
	}
	fmt.Fprintf(c.stdout, "Theme is now %s\n", st.Theme)
	return subcommands.ExitSuccess
}

type avatarCmd struct {
	*app
	preset string
	image  string
}

func (*avatarCmd) Name() string     { return "avatar" }
func (*avatarCmd) Synopsis() string { return "show or choose the avatar" }
func (*avatarCmd) Usage() string {
	return `forestfunds avatar [-preset 1-6 | -image <file>]

  Without flags, shows the current avatar. An image must be at most
  avatar.max_bytes and is stored in the database.
`
}

func (c *avatarCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.preset, "preset", "", "Preset avatar, 1 to 6")
	f.StringVar(&c.image, "image", "", "Path to an image file")
}

func (c *avatarCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.preset != "" && c.image != "" {
		return c.usage("-preset and -image are mutually exclusive")
	}
	sess, err := c.session()
	if err != nil {
		return c.fail(err)
	}

	switch {
	case c.preset != "":
		if err := c.avatars.SetPreset(sess.UserID(), c.preset); err != nil {
			return c.fail(err)
		}
	case c.image != "":
		data, err := os.ReadFile(c.image)
		if err != nil {
			return c.fail(fmt.Errorf("failed to read image: %w", err))
		}
		if _, err := c.avatars.SetImage(sess.UserID(), data); err != nil {
			return c.fail(err)
		}
	}

	av, err := c.avatars.Get(sess.UserID())
	if err != nil {
		return c.fail(err)
	}
	if av.Preset == avatar.Custom {
		fmt.Fprintf(c.stdout, "Avatar: custom image (%d bytes as data URI)\n", len(av.Image))
	} else {
		fmt.Fprintf(c.stdout, "Avatar: preset %s\n", av.Preset)
	}
	return subcommands.ExitSuccess
}
