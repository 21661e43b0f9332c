package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"searchwidget/internal/config"
	"searchwidget/internal/diagnostics"
	"searchwidget/internal/eventbus"
	"searchwidget/internal/htmlview"
	"searchwidget/internal/logging"
	"searchwidget/internal/search"
	"searchwidget/internal/ui"
	"searchwidget/internal/ui/views"
	"searchwidget/internal/widget"
)

// e2eEnv makes the TUI print ui.ReadyMarker for the PTY tests
const e2eEnv = "SEARCHWIDGET_E2E_TEST"

// Exit codes
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

type options struct {
	configPath string
	endpoint   string
	query      string
	oneShot    bool
	format     string
	logPath    string
	debug      bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	level := slog.LevelInfo
	if opts.debug {
		level = slog.LevelDebug
	}
	logger, logFile, err := logging.OpenFile(opts.logPath, level)
	if err != nil {
		fmt.Fprintf(stderr, "Could not open log file: %v\n", err)
		logger = logging.Discard()
	} else {
		defer logFile.Close()
	}
	slog.SetDefault(logger)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	// Create event bus and the diagnostics subscriber
	bus := eventbus.New()
	unsubscribe := diagnostics.Subscribe(bus, logger)
	defer unsubscribe()
	defer bus.Close()

	configSvc := config.NewConfigServiceWithBus(opts.configPath, bus)
	cfg := loadOrCreateConfig(configSvc)
	if opts.endpoint != "" {
		cfg.Endpoint = opts.endpoint
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	client, err := search.NewClientFromConfig(cfg, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	if opts.oneShot {
		return runOnce(ctx, client, bus, cfg, opts, stdout, stderr)
	}

	model := ui.NewModel(client, bus, ui.Options{
		Endpoint:    cfg.Endpoint,
		ShowScore:   cfg.UISettings.ShowScore,
		ReadyMarker: os.Getenv(e2eEnv) == "1",
	})
	model.Widget().Attach(ctx)
	defer model.Widget().Detach()

	slog.Info("starting UI", "endpoint", cfg.Endpoint)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		slog.Error("error running program", "error", err)
		fmt.Fprintf(stderr, "Error running program: %v\n", err)
		return exitFailure
	}
	slog.Info("UI exited normally")
	return exitOK
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("searchwidget", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: searchwidget [flags]\n\n")
		fmt.Fprintf(fs.Output(), "Interactive search client for the %s API.\n", config.DefaultEndpoint)
		fmt.Fprintf(fs.Output(), "With -q it runs a single search and prints the results.\n\nFlags:\n")
		fs.PrintDefaults()
	}

	fs.StringVar(&opts.configPath, "config", config.DefaultPath(), "Path to the TOML config file")
	fs.StringVar(&opts.endpoint, "endpoint", "", "Search endpoint URL (overrides the config file)")
	fs.StringVar(&opts.query, "query", "", "Run one search for this query and print the results")
	fs.StringVar(&opts.query, "q", "", "Run one search for this query (shorthand)")
	fs.StringVar(&opts.format, "format", "text", "Output format for -q: text or html")
	fs.StringVar(&opts.logPath, "log", "searchwidget.log", "Log file path")
	fs.BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "q" || f.Name == "query" {
			opts.oneShot = true
		}
	})
	switch opts.format {
	case "text", "html":
	default:
		return opts, fmt.Errorf("invalid format %q: want text or html", opts.format)
	}
	return opts, nil
}

// runOnce performs a single search through a widget with no UI and prints
// the resulting container
func runOnce(ctx context.Context, client widget.Searcher, bus eventbus.EventBus, cfg *config.Config, opts options, stdout, stderr io.Writer) int {
	alert := widget.AlertFunc(func(message string) {
		fmt.Fprintln(stderr, message)
	})
	w := widget.New(client, widget.NewContainer(), alert, bus)
	w.Attach(ctx)
	defer w.Detach()

	_, err := w.Search(opts.query)
	if errors.Is(err, search.ErrEmptyQuery) {
		return exitUsage
	}

	nodes := w.Container().Nodes()
	switch opts.format {
	case "html":
		if werr := htmlview.Render(stdout, nodes, htmlview.Options{ShowScore: cfg.UISettings.ShowScore}); werr != nil {
			fmt.Fprintf(stderr, "Error: %v\n", werr)
			return exitFailure
		}
		fmt.Fprintln(stdout)
	default:
		fmt.Fprint(stdout, views.RenderPlain(nodes, cfg.UISettings.ShowScore))
	}

	if err != nil {
		return exitFailure
	}
	return exitOK
}

// loadOrCreateConfig loads the config file, or writes one with defaults when
// it does not exist yet. A broken file falls back to defaults.
func loadOrCreateConfig(configSvc config.ConfigService) *config.Config {
	path := configSvc.Path()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		slog.Info("creating new config", "path", path)
		cfg := config.DefaultConfig()
		if err := configSvc.Save(cfg); err != nil {
			slog.Warn("failed to save config", "path", path, "error", err)
		}
		return cfg
	}

	cfg, err := configSvc.Load()
	if err != nil {
		slog.Warn("failed to load config, using defaults", "path", path, "error", err)
		return config.DefaultConfig()
	}
	return cfg
}
