// Package cli provides the powerline command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"svw.info/powerline/internal/catalog"
	"svw.info/powerline/internal/config"
	"svw.info/powerline/internal/generator"
	"svw.info/powerline/internal/hint"
	"svw.info/powerline/internal/infrastructure/storage"
	"svw.info/powerline/internal/usecase"
	"svw.info/powerline/internal/validator"
)

// Version information set at build time.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// App represents the CLI application.
type App struct {
	root   *cobra.Command
	stdout io.Writer
	stderr io.Writer

	configPath string
	logLevel   string

	// set by export flags
	exportDir    string
	exportFormat string
}

// New creates a new CLI application.
func New() *App {
	app := &App{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	app.root = &cobra.Command{
		Use:   "powerline",
		Short: "Conduit sorting puzzle engine and API",
		Long: `powerline serves and inspects the conduit sorting puzzle.

Each level is a set of conduits holding colored power cores. A move carries
the top core of one conduit onto an empty conduit or onto a core of the same
color. A level is solved when every conduit holds a single color.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	app.root.PersistentFlags().StringVarP(&app.configPath, "config", "c", "", "Path to YAML configuration file")
	app.root.PersistentFlags().StringVar(&app.logLevel, "log-level", "", "Override log level: debug|info|warn|error")

	app.root.AddCommand(
		app.newVersionCmd(),
		app.newServeCmd(),
		app.newLevelsCmd(),
		app.newShowCmd(),
		app.newHintCmd(),
		app.newExportCmd(),
	)

	return app
}

// WithOutput sets custom output writers.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)
	return a
}

// Execute runs the CLI application.
func (a *App) Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return a.root.ExecuteContext(ctx)
}

// ExecuteWithArgs runs the CLI with specific arguments.
func (a *App) ExecuteWithArgs(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	return a.Execute(ctx)
}

func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(a.stdout, "powerline version %s\n", Version)
			_, _ = fmt.Fprintf(a.stdout, "  Git commit: %s\n", GitCommit)
			_, _ = fmt.Fprintf(a.stdout, "  Build date: %s\n", BuildDate)
		},
	}
}

// loadConfig reads --config, or the defaults when none is given, and applies
// flag overrides.
func (a *App) loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if a.configPath != "" {
		var err error
		cfg, err = config.Load(a.configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.exportDir != "" {
		cfg.Export.Dir = a.exportDir
	}
	if a.exportFormat != "" {
		cfg.Export.Format = a.exportFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(w io.Writer, level string) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// deps bundles what every command needs.
type deps struct {
	cfg     *config.Config
	logger  *slog.Logger
	catalog *catalog.Catalog
	service *usecase.Service
}

func (a *App) setup() (*deps, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	logger := newLogger(a.stderr, cfg.Log.Level)
	format, err := storage.ParseFormat(cfg.Export.Format)
	if err != nil {
		return nil, err
	}
	cat := catalog.New(generator.NewProceduralGenerator(), cfg.Catalog.GeneratedLevels)
	svc := usecase.NewService(cat, hint.NewSearch(), validator.New(),
		storage.NewFS(cfg.Export.Dir, format),
		usecase.WithLogger(logger),
		usecase.WithMaxSessions(cfg.Sessions.Max),
		usecase.WithHintTimeout(cfg.Hint.Timeout),
	)
	return &deps{cfg: cfg, logger: logger, catalog: cat, service: svc}, nil
}
