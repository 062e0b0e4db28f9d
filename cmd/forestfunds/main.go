package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"forest-funds/internal/auth"
	"forest-funds/internal/avatar"
	"forest-funds/internal/config"
	"forest-funds/internal/ledger"
	"forest-funds/internal/report"
	"forest-funds/internal/storage"

	"github.com/google/subcommands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	if err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("forestfunds", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "Path to a YAML config file")
	dbPath := fs.String("db", "", "Path to database file (overrides storage.path)")
	style := fs.String("style", "", "Report style: auto, dark, light, notty or plain (overrides report.style)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *dbPath != "" {
		cfg.Storage.Path = *dbPath
	}
	if *style != "" {
		cfg.Report.Style = *style
	}

	db, err := storage.NewDB(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	a := newApp(cfg, db, stdin, stdout, log.New(stderr, "", log.LstdFlags))

	commander := subcommands.NewCommander(fs, "forestfunds")
	commander.Output = stdout
	commander.Error = stderr
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	a.register(commander)

	switch status := commander.Execute(ctx); status {
	case subcommands.ExitSuccess:
		return nil
	case subcommands.ExitUsageError:
		if a.err != nil {
			return a.err
		}
		return errors.New("usage: forestfunds [-config file] [-db path] [-style name] <command> [flags]")
	default:
		if a.err != nil {
			return a.err
		}
		return fmt.Errorf("command failed with status %d", status)
	}
}

// app holds what every command needs.
type app struct {
	cfg     *config.Config
	ledger  *ledger.Store
	auth    *auth.Service
	avatars *avatar.Store
	render  *report.Renderer
	stdin   io.Reader
	stdout  io.Writer
	now     func() time.Time

	in  *lineReader
	err error
}

func newApp(cfg *config.Config, db *storage.DB, stdin io.Reader, stdout io.Writer, logger *log.Logger) *app {
	store := ledger.NewStore(db,
		ledger.WithLogger(logger),
		ledger.WithDefaults(cfg.Ledger.Budget(), cfg.Ledger.DefaultCurrency),
	)
	return &app{
		cfg:     cfg,
		ledger:  store,
		auth:    auth.New(db, store, auth.WithLogger(logger), auth.WithMinPasswordLength(cfg.Auth.MinPasswordLength)),
		avatars: avatar.New(db, cfg.Avatar.MaxBytes),
		render:  report.NewRenderer(cfg.Report.Style),
		stdin:   stdin,
		stdout:  stdout,
		now:     time.Now,
		in:      newLineReader(stdin),
	}
}

func (a *app) register(c *subcommands.Commander) {
	c.Register(&registerCmd{app: a}, "account")
	c.Register(&loginCmd{app: a}, "account")
	c.Register(&demoCmd{app: a}, "account")
	c.Register(&logoutCmd{app: a}, "account")
	c.Register(&whoamiCmd{app: a}, "account")

	c.Register(&addCmd{app: a}, "transactions")
	c.Register(&listCmd{app: a}, "transactions")
	c.Register(&deleteCmd{app: a}, "transactions")
	c.Register(&resetCmd{app: a}, "transactions")

	c.Register(&dashboardCmd{app: a}, "views")
	c.Register(&analyticsCmd{app: a}, "views")
	c.Register(&statsCmd{app: a}, "views")

	c.Register(&profileCmd{app: a}, "profile")
	c.Register(&settingsCmd{app: a}, "profile")
	c.Register(&themeCmd{app: a}, "profile")
	c.Register(&avatarCmd{app: a}, "profile")

	c.Register(&exportCmd{app: a}, "data")
	c.Register(&importCmd{app: a}, "data")
}

// fail records err for run to return and maps it to an exit status.
func (a *app) fail(err error) subcommands.ExitStatus {
	a.err = err
	return subcommands.ExitFailure
}

// usage records a usage error for run to return.
func (a *app) usage(format string, args ...any) subcommands.ExitStatus {
	a.err = fmt.Errorf(format, args...)
	return subcommands.ExitUsageError
}

var errNoSession = errors.New("not logged in: run register, login or demo first")

func (a *app) session() (auth.Session, error) {
	sess, ok, err := a.auth.Current()
	if err != nil {
		return auth.Session{}, err
	}
	if !ok {
		return auth.Session{}, errNoSession
	}
	return sess, nil
}

// print renders markdown and writes it to stdout.
func (a *app) print(markdown string) error {
	out, err := a.render.Render(markdown)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(a.stdout, out)
	return err
}

func (a *app) currency(userID string) (string, error) {
	p, err := a.ledger.Profile(userID)
	if err != nil {
		return "", err
	}
	return p.Currency, nil
}
