// Command propcap captures canonical lodging property records from
// travel-listing pages.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/propcap"
	"github.com/fwojciec/propcap/fs"
	"github.com/fwojciec/propcap/goquery"
	"github.com/fwojciec/propcap/htmltomarkdown"
	prophttp "github.com/fwojciec/propcap/http"
	"github.com/fwojciec/propcap/rod"
	propslog "github.com/fwojciec/propcap/slog"
	"github.com/fwojciec/propcap/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	Captures propcap.CaptureStore
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("propcap"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'propcap --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set PROPCAP_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.Captures = sqlite.NewCaptureService(m.DB)
	deps.Captures = m.Captures

	// The capturer composes the source readers per page based on the
	// detected vendor layout.
	var capturer propcap.Capturer = NewProfileCapturer(
		goquery.NewRegistry(),
		htmltomarkdown.NewConverter(),
		localTimezone(),
	)
	if cli.Verbose {
		capturer = propslog.NewLoggingCapturer(capturer, deps.Logger)
	}
	deps.Capturer = capturer

	// Wire command-specific dependencies based on command
	if cmd == "capture" {
		var fetcher propcap.Fetcher
		if cli.Capture.Browser {
			f, err := rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			defer f.Close()
			fetcher = f
		} else {
			fetcher = prophttp.NewFetcher(
				prophttp.WithTimeout(cli.Capture.Timeout),
				prophttp.WithRateLimit(cli.Capture.Rate),
			)
		}
		if cli.Verbose {
			fetcher = propslog.NewLoggingFetcher(fetcher, deps.Logger)
		}
		deps.Fetcher = fetcher

		if cli.Capture.Out != "" {
			deps.Writer = fs.NewWriter(cli.Capture.Out)
		}
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("PROPCAP_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "propcap.db"
	}
	dir := filepath.Join(home, ".propcap")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "propcap.db")
}

// localTimezone names the capture environment's timezone. The TZ variable
// wins when set because time.Local reports only the literal name "Local".
func localTimezone() string {
	if tz := os.Getenv("TZ"); tz != "" {
		return tz
	}
	if name := time.Local.String(); name != "" && name != "Local" {
		return name
	}
	name, _ := time.Now().Zone()
	return name
}
