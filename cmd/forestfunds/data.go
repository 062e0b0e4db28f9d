package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"forest-funds/internal/ledger"

	"github.com/google/subcommands"
)

type exportCmd struct {
	*app
	format string
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "download the user, profile and ledger" }
func (*exportCmd) Usage() string {
	return `forestfunds export [-format json|xlsx] [-o <file>|-]

  Writes a copy of the logged in user's data. The file name defaults to
  forest-funds-<name>-<date>.json (or .xlsx); "-" writes to stdout.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "json", "json or xlsx")
	f.StringVar(&c.output, "o", "", "Output file, - for stdout")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var write func(io.Writer, ledger.Snapshot) error
	switch c.format {
	case "json":
		write = ledger.WriteJSON
	case "xlsx":
		write = ledger.WriteXLSX
	default:
		return c.usage("unknown format %q", c.format)
	}

	sess, err := c.session()
	if err != nil {
		return c.fail(err)
	}
	snap, err := c.ledger.Export(sess.User)
	if err != nil {
		return c.fail(err)
	}

	if c.output == "-" {
		if err := write(c.stdout, snap); err != nil {
			return c.fail(err)
		}
		return subcommands.ExitSuccess
	}

	path := c.output
	if path == "" {
		path = ledger.ExportFileName(sess.User.Name, snap.ExportDate)
		if c.format == "xlsx" {
			path = strings.TrimSuffix(path, ".json") + ".xlsx"
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return c.fail(fmt.Errorf("failed to create export file: %w", err))
	}
	if err := write(file, snap); err != nil {
		file.Close()
		return c.fail(err)
	}
	if err := file.Close(); err != nil {
		return c.fail(err)
	}
	fmt.Fprintf(c.stdout, "Exported %d transactions to %s\n", len(snap.Transactions), path)
	return subcommands.ExitSuccess
}

type importCmd struct{ *app }

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "replace the ledger with the one of an export file" }
func (*importCmd) Usage() string {
	return `forestfunds import <file>

  Replaces the logged in user's ledger with the transactions of a JSON export.
  Nothing is changed when any record is invalid.
`
}
func (*importCmd) SetFlags(*flag.FlagSet) {}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.usage("import needs exactly one file")
	}
	sess, err := c.session()
	if err != nil {
		return c.fail(err)
	}

	file, err := os.Open(f.Arg(0))
	if err != nil {
		return c.fail(fmt.Errorf("failed to open import file: %w", err))
	}
	defer file.Close()

	snap, err := ledger.ReadSnapshot(file)
	if err != nil {
		return c.fail(err)
	}
	n, err := c.ledger.Import(sess.UserID(), snap)
	if err != nil {
		return c.fail(err)
	}
	fmt.Fprintf(c.stdout, "Imported %d transactions\n", n)
	return subcommands.ExitSuccess
}
