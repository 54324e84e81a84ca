package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/grabdoc"
	"github.com/fwojciec/grabdoc/adapter"
	"github.com/fwojciec/grabdoc/dispatch"
	"github.com/fwojciec/grabdoc/hook"
	grabhttp "github.com/fwojciec/grabdoc/http"
	"github.com/fwojciec/grabdoc/htmltomarkdown"
	"github.com/fwojciec/grabdoc/kooky"
	"github.com/fwojciec/grabdoc/readability"
	"github.com/fwojciec/grabdoc/rod"
	grabslog "github.com/fwojciec/grabdoc/slog"
	"github.com/fwojciec/grabdoc/sqlite"
	"github.com/fwojciec/grabdoc/trafilatura"
	"github.com/fwojciec/grabdoc/ytdlp"
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
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URLs []string `arg:"" optional:"" name:"url" help:"One or more URLs to extract"`

	From          string   `placeholder:"FILE" help:"Read URLs from a file (one per line, # comments and blanks skipped)"`
	OutputDir     string   `default:"output" help:"Base directory for extraction output"`
	SkipResources bool     `help:"Skip extracting linked resources (Notion, Drive, etc.)"`
	Hook          []string `placeholder:"SCRIPT" help:"Hook script to run after each extraction (repeatable)"`
	NoConfigHooks bool     `help:"Disable loading hooks from .grabdoc.toml"`

	Static      bool          `help:"Fetch with plain HTTP instead of a browser"`
	CookiesFrom string        `placeholder:"BROWSER" help:"Reuse cookies from a local browser (chrome, firefox, or empty for any)"`
	Timeout     time.Duration `short:"t" default:"60s" help:"Timeout per upstream call"`
	Delay       time.Duration `default:"1s" help:"Delay between URLs in batch mode"`

	Archive bool   `help:"Treat each URL as a newsletter publication and extract its article archive"`
	Since   string `placeholder:"WINDOW" help:"Only include items newer than this (30d, 4w, 3m, or a date)"`
	Max     int    `help:"Cap archive articles and channel videos per URL"`

	History       string `placeholder:"PATH" help:"Extraction history database (default: <output-dir>/history.db)"`
	NoHistory     bool   `help:"Disable extraction history recording"`
	SkipExtracted bool   `help:"Skip URLs already extracted successfully according to the history"`

	Verbose bool `short:"v" help:"Verbose diagnostics on stderr"`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("grabdoc"),
		kong.Description("Pluggable content extraction from URLs"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no URLs provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	urls, err := collectURLs(cli)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no URLs provided")
	}

	var since time.Time
	if cli.Since != "" {
		since, err = grabdoc.ParseSince(cli.Since, time.Now())
		if err != nil {
			return fmt.Errorf("%s", grabdoc.ErrorMessage(err))
		}
	}
	if cli.SkipExtracted && cli.NoHistory {
		return fmt.Errorf("--skip-extracted requires the extraction history (drop --no-history)")
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Load hooks before starting a browser: explicitly requested scripts
	// are fatal on failure, config-declared ones warn and skip inside
	// LoadConfig.
	var hooks []grabdoc.Hook
	for _, path := range cli.Hook {
		h, err := hook.LoadScript(ctx, path)
		if err != nil {
			return fmt.Errorf("loading hook %s: %s", path, grabdoc.ErrorMessage(err))
		}
		hooks = append(hooks, h)
	}
	if !cli.NoConfigHooks {
		configHooks, err := hook.LoadConfig(ctx, "", logger)
		if err != nil {
			return fmt.Errorf("%s", grabdoc.ErrorMessage(err))
		}
		hooks = append(hooks, configHooks...)
	}

	// Wire dependencies
	var cookies grabdoc.CookieSource
	if cli.CookiesFrom != "" {
		cookies = kooky.NewSource(cli.CookiesFrom)
	}

	var fetcher grabdoc.Fetcher
	if cli.Static {
		opts := []grabhttp.Option{grabhttp.WithTimeout(cli.Timeout)}
		if cookies != nil {
			opts = append(opts, grabhttp.WithCookieSource(cookies))
		}
		fetcher = grabhttp.NewFetcher(opts...)
	} else {
		opts := []rod.Option{}
		if cookies != nil {
			opts = append(opts, rod.WithCookieSource(cookies))
		}
		rodFetcher, err := rod.NewFetcher(opts...)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed (or pass --static)")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = rodFetcher
	}
	defer fetcher.Close()
	fetcher = grabslog.NewLoggingFetcher(fetcher, logger)

	registry := adapter.NewRegistry(adapter.Services{
		Fetcher:    fetcher,
		Extractors: []grabdoc.Extractor{trafilatura.NewExtractor(), readability.NewExtractor()},
		Converter:  htmltomarkdown.NewConverter(),
		Videos:     ytdlp.NewClient(ytdlp.WithTimeout(cli.Timeout)),
		Downloader: grabhttp.NewDownloader(nil),
		Since:      since,
		MaxVideos:  cli.Max,
		Logger:     logger,
	})

	var history grabdoc.HistoryService
	if !cli.NoHistory {
		path := cli.History
		if path == "" {
			path = filepath.Join(cli.OutputDir, "history.db")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating history directory: %w", err)
		}
		db := sqlite.NewDB(path)
		if err := db.Open(); err != nil {
			return fmt.Errorf("opening history database: %w", err)
		}
		defer db.Close()
		history = sqlite.NewHistoryService(db)
	}

	deps := &Dependencies{
		Registry: registry,
		Dispatcher: &dispatch.Dispatcher{
			Registry: registry,
			Limiter:  dispatch.NewDomainLimiter(1.0),
		},
		Runner:        &hook.Runner{Hooks: hooks, Logger: logger},
		History:       history,
		OutputDir:     cli.OutputDir,
		SkipResources: cli.SkipResources,
		SkipExtracted: cli.SkipExtracted,
		Logger:        logger,
		Stdout:        stdout,
		Stderr:        stderr,
	}

	if cli.Archive {
		urls, err = expandArchives(ctx, grabhttp.NewArchiveLister(nil), urls, since, cli.Max, stderr)
		if err != nil {
			return err
		}
	}

	return m.RunBatch(ctx, deps, urls, cli.Delay)
}

// collectURLs merges positional URLs with the --from file. Missing files
// are a hard error; comment and blank lines are skipped.
func collectURLs(cli *CLI) ([]string, error) {
	urls := append([]string{}, cli.URLs...)
	if cli.From == "" {
		return urls, nil
	}

	f, err := os.Open(cli.From)
	if err != nil {
		return nil, fmt.Errorf("file not found: %s", cli.From)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", cli.From, err)
	}
	return urls, nil
}

// expandArchives replaces each publication URL with its archive's
// article URLs, newest first. A publication whose archive cannot be
// listed is reported and skipped; an entirely empty expansion is an
// error so the run does not silently do nothing.
func expandArchives(ctx context.Context, lister grabdoc.ArchiveLister, urls []string, since time.Time, max int, stderr io.Writer) ([]string, error) {
	var expanded []string
	for _, u := range urls {
		entries, err := lister.ListArticles(ctx, u, since)
		if err != nil {
			fmt.Fprintf(stderr, "archive listing failed for %s: %s\n", u, grabdoc.ErrorMessage(err))
			continue
		}
		if max > 0 && len(entries) > max {
			entries = entries[:max]
		}
		fmt.Fprintf(stderr, "Archive: %d articles from %s\n", len(entries), u)
		for _, e := range entries {
			expanded = append(expanded, e.URL)
		}
	}
	if len(expanded) == 0 {
		return nil, fmt.Errorf("no archive articles found")
	}
	return expanded, nil
}
