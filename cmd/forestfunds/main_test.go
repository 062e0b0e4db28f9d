package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"forest-funds/internal/auth"
	"forest-funds/internal/avatar"
	"forest-funds/internal/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cli runs commands against one database, as separate invocations would.
type cli struct {
	t      *testing.T
	dbPath string
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newCLI(t *testing.T) *cli {
	t.Setenv("DB_PATH", "")
	return &cli{
		t:      t,
		dbPath: filepath.Join(t.TempDir(), "forestfunds.db"),
		stdout: new(bytes.Buffer),
		stderr: new(bytes.Buffer),
	}
}

func (c *cli) runWithInput(stdin string, args ...string) (string, error) {
	c.stdout.Reset()
	c.stderr.Reset()
	full := append([]string{"-db", c.dbPath, "-style", "plain"}, args...)
	err := run(context.Background(), full, strings.NewReader(stdin), c.stdout, c.stderr)
	return c.stdout.String(), err
}

func (c *cli) run(args ...string) (string, error) {
	return c.runWithInput("", args...)
}

func (c *cli) must(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, "forestfunds %s\nstderr: %s", strings.Join(args, " "), c.stderr.String())
	return out
}

func (c *cli) register() {
	c.t.Helper()
	c.must("register", "-name", "Satsuki Kusakabe", "-email", "satsuki@example.com",
		"-password", "totoro123", "-confirm", "totoro123")
}

func TestRun_RegisterAndDashboard(t *testing.T) {
	c := newCLI(t)

	out := c.must("register", "-name", "Satsuki Kusakabe", "-email", "satsuki@example.com",
		"-password", "totoro123", "-confirm", "totoro123", "-budget", "50000")
	assert.Contains(t, out, "Welcome to Forest Funds, Satsuki!")

	out = c.must("add", "-type", "income", "-amount", "20000", "-category", "Salary", "-description", "Pay")
	assert.Contains(t, out, "Added income +LKR 20,000.00")
	c.must("add", "-amount", "5000", "-category", "Food", "-description", "Groceries")

	out = c.must("dashboard")
	assert.Contains(t, out, "# Welcome back, Satsuki")
	assert.Contains(t, out, "LKR 15,000.00")
	assert.Contains(t, out, "LKR 5,000.00 spent of LKR 50,000.00 (10.0%)")
	assert.Contains(t, out, "Groceries")
}

func TestRun_InteractivePassword(t *testing.T) {
	c := newCLI(t)

	out, err := c.runWithInput("interactive1\ninteractive1\n",
		"register", "-name", "Mei", "-email", "mei@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Password: ")
	assert.Contains(t, out, "Confirm password: ")
	assert.Contains(t, out, "Welcome to Forest Funds, Mei!")

	c.must("logout")
	out, err = c.runWithInput("interactive1\n", "login", "-email", "mei@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome back, Mei!")
}

func TestRun_RegisterValidation(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("register", "-name", "Mei", "-email", "mei@example.com", "-password", "short", "-confirm", "short")
	require.ErrorIs(t, err, auth.ErrValidation)
	assert.Contains(t, err.Error(), "Password must be at least 8 characters")

	c.register()
	_, err = c.run("register", "-name", "Other", "-email", "satsuki@example.com",
		"-password", "totoro123", "-confirm", "totoro123")
	require.ErrorIs(t, err, auth.ErrValidation)
	assert.Contains(t, err.Error(), "User with this email already exists")
}

func TestRun_LoginFailure(t *testing.T) {
	c := newCLI(t)
	c.register()
	c.must("logout")

	_, err := c.run("login", "-email", "satsuki@example.com", "-password", "nope-nope")
	require.ErrorIs(t, err, auth.ErrValidation)
	assert.Contains(t, err.Error(), "Invalid email or password")

	_, err = c.run("whoami")
	assert.ErrorIs(t, err, errNoSession)
}

func TestRun_RequiresSession(t *testing.T) {
	c := newCLI(t)
	for _, args := range [][]string{
		{"add", "-amount", "1", "-category", "Food", "-description", "x"},
		{"list"},
		{"dashboard"},
		{"analytics"},
		{"stats"},
		{"profile"},
		{"export", "-o", "-"},
	} {
		_, err := c.run(args...)
		assert.ErrorIs(t, err, errNoSession, "forestfunds %s", strings.Join(args, " "))
	}
}

func TestRun_AddValidation(t *testing.T) {
	c := newCLI(t)
	c.register()

	_, err := c.run("add", "-amount", "0", "-category", "Food", "-description", "Free lunch")
	require.ErrorIs(t, err, ledger.ErrValidation)
	assert.Contains(t, err.Error(), "Amount must be greater than 0")

	_, err = c.run("add", "-amount", "10", "-description", "No category")
	require.ErrorIs(t, err, ledger.ErrValidation)
	assert.Contains(t, err.Error(), "Please fill in all fields")

	_, err = c.run("add", "-amount", "ten", "-category", "Food", "-description", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid amount")

	out := c.must("list")
	assert.Contains(t, out, "No transactions yet.")
}

func TestRun_ListAndDelete(t *testing.T) {
	c := newCLI(t)
	c.register()

	out := c.must("add", "-amount", "12.50", "-category", "Transport", "-description", "Bus pass", "-date", "2024-03-05")
	id := strings.TrimSuffix(strings.TrimSpace(out[strings.Index(out, "(id ")+4:]), ")")
	c.must("add", "-amount", "3", "-category", "Food", "-description", "Tea", "-date", "2024-02-01")

	out = c.must("list", "-month", "2", "-year", "2024")
	assert.Contains(t, out, "Bus pass")
	assert.NotContains(t, out, "Tea")
	assert.Contains(t, out, "TUE, 05 MAR '24")

	out = c.must("delete", id, "no-such-id")
	assert.Contains(t, out, "Deleted 2 transaction(s)")

	out = c.must("list")
	assert.NotContains(t, out, "Bus pass")
	assert.Contains(t, out, "Tea")

	_, err := c.run("delete")
	assert.Error(t, err)
}

func TestRun_ResetRequiresConfirmation(t *testing.T) {
	c := newCLI(t)
	c.register()
	c.must("add", "-amount", "3", "-category", "Food", "-description", "Tea")

	_, err := c.run("reset")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "-yes")
	assert.Contains(t, c.must("list"), "Tea")

	c.must("reset", "-yes")
	assert.Contains(t, c.must("list"), "No transactions yet.")
}

func TestRun_Analytics(t *testing.T) {
	c := newCLI(t)
	c.register()
	c.must("add", "-type", "income", "-amount", "1000", "-category", "Salary", "-description", "Feb pay", "-date", "2024-02-10")
	c.must("add", "-type", "income", "-amount", "1500", "-category", "Salary", "-description", "Mar pay", "-date", "2024-03-10")
	c.must("add", "-amount", "600", "-category", "Food", "-description", "Groceries", "-date", "2024-03-12")

	out := c.must("analytics", "-month", "2", "-year", "2024")
	assert.Contains(t, out, "# Analytics for March 2024")
	assert.Contains(t, out, "+50.0%")
	assert.Contains(t, out, "Savings rate: 60.0%")
	assert.Contains(t, out, "## 2024 by month")

	_, err := c.run("analytics", "-month", "12")
	assert.Error(t, err)
}

func TestRun_ProfileSettingsAndTheme(t *testing.T) {
	c := newCLI(t)
	c.register()

	out := c.must("profile")
	assert.Contains(t, out, "# Satsuki Kusakabe")
	assert.Contains(t, out, "Monthly budget: LKR 100,000.00")
	assert.Contains(t, out, "Avatar: 1")

	c.must("profile", "-currency", "USD", "-budget", "2500")
	out = c.must("profile")
	assert.Contains(t, out, "Monthly budget: USD 2,500.00")
	assert.Contains(t, out, "satsuki@example.com", "unchanged fields are kept")

	out = c.must("settings")
	assert.Contains(t, out, "theme=light notifications=true reminders=true")
	out = c.must("settings", "-reminders", "false")
	assert.Contains(t, out, "theme=light notifications=true reminders=false")

	assert.Contains(t, c.must("theme"), "Theme is now dark")
	assert.Contains(t, c.must("theme"), "Theme is now light")

	_, err := c.run("settings", "-theme", "sepia")
	assert.ErrorIs(t, err, ledger.ErrValidation)
}

func TestRun_Avatar(t *testing.T) {
	c := newCLI(t)
	c.register()

	assert.Contains(t, c.must("avatar"), "Avatar: preset 1")
	assert.Contains(t, c.must("avatar", "-preset", "5"), "Avatar: preset 5")

	_, err := c.run("avatar", "-preset", "9")
	assert.ErrorIs(t, err, avatar.ErrUnknownPreset)

	img := filepath.Join(t.TempDir(), "me.gif")
	require.NoError(t, os.WriteFile(img, []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;"), 0o600))
	assert.Contains(t, c.must("avatar", "-image", img), "Avatar: custom image")

	txt := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("hello"), 0o600))
	_, err = c.run("avatar", "-image", txt)
	assert.ErrorIs(t, err, avatar.ErrNotImage)
}

func TestRun_DemoAndProvider(t *testing.T) {
	c := newCLI(t)

	assert.Contains(t, c.must("demo"), "Logged in as Demo Explorer (demo@forestfunds.com)")
	assert.Contains(t, c.must("whoami"), "Demo Explorer <demo@forestfunds.com>")
	c.must("demo")

	c.must("login", "-provider", "google")
	out := c.must("whoami")
	assert.Contains(t, out, "Google User <google.user@example.com> (google_")
}

func TestRun_ExportImport(t *testing.T) {
	c := newCLI(t)
	c.register()
	c.must("add", "-amount", "42", "-category", "Gifts", "-description", "Flowers", "-date", "2024-03-01")

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "backup.json")
	out := c.must("export", "-o", jsonPath)
	assert.Contains(t, out, "Exported 1 transactions to "+jsonPath)

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"exportDate"`)
	assert.Contains(t, string(data), `"amount": 42`)

	xlsxPath := filepath.Join(dir, "backup.xlsx")
	c.must("export", "-format", "xlsx", "-o", xlsxPath)
	info, err := os.Stat(xlsxPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	c.must("reset", "-yes")
	out = c.must("import", jsonPath)
	assert.Contains(t, out, "Imported 1 transactions")
	assert.Contains(t, c.must("list"), "Flowers")

	_, err = c.run("export", "-format", "csv")
	assert.Error(t, err)
}

func TestRun_ExportToStdout(t *testing.T) {
	c := newCLI(t)
	c.register()

	out := c.must("export", "-o", "-")
	assert.Contains(t, out, `"transactions": []`)
	assert.Contains(t, out, `"email": "satsuki@example.com"`)
}

func TestRun_UnknownCommand(t *testing.T) {
	c := newCLI(t)
	_, err := c.run("fly")
	assert.Error(t, err)

	_, err = c.run()
	assert.Error(t, err)
}

func TestRun_InvalidDBPath(t *testing.T) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	err := run(context.Background(), []string{"-db", t.TempDir(), "whoami"}, strings.NewReader(""), stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open database")
}
