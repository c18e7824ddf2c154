package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/glabrego/feedr/internal/app"
	"github.com/glabrego/feedr/internal/config"
	"github.com/glabrego/feedr/internal/feed"
	"github.com/glabrego/feedr/internal/opml"
	"github.com/glabrego/feedr/internal/storage"
	"github.com/glabrego/feedr/internal/tui"
	"github.com/glabrego/feedr/internal/tui/theme"
)

type options struct {
	configFile string
	importPath string
	exportPath string
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:          "feedr",
		Short:        "Terminal RSS and Atom reader",
		Long:         "Read RSS and Atom feeds in the terminal. Subscriptions, categories and read state are kept in the data directory.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&opts.configFile, "config", "", "config file (default: $XDG_CONFIG_HOME/feedr/config.yaml)")
	cmd.Flags().StringVar(&opts.importPath, "import", "", "import subscriptions from an OPML file and exit")
	cmd.Flags().StringVar(&opts.exportPath, "export", "", "export subscriptions to an OPML file and exit")
	cmd.MarkFlagsMutuallyExclusive("import", "export")
	return cmd
}

func run(ctx context.Context, opts options, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("log init error: %w", err)
	}
	defer closeLog()

	openCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	store, err := storage.Open(openCtx, cfg.Store, cfg.DataDir)
	if err != nil {
		return fmt.Errorf("storage init error: %w", err)
	}
	defer store.Close()

	client := feed.NewClient(cfg.FetchTimeout, nil)
	service := app.NewService(client, store, app.WithLogger(logger))
	if err := service.Load(openCtx); err != nil {
		logger.Warn("starting with partial state", "error", err)
	}
	logger.Info("state loaded", "store", cfg.Store, "data_dir", cfg.DataDir, "bookmarks", len(service.Bookmarks()))

	switch {
	case opts.importPath != "":
		return runImport(ctx, service, opts.importPath, out)
	case opts.exportPath != "":
		return runExport(service, opts.exportPath, out)
	}

	th, err := theme.ByName(cfg.Theme)
	if err != nil {
		return err
	}
	model := tui.NewModel(service, client, tui.WithFetchTimeout(cfg.FetchTimeout), tui.WithTheme(th))
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func runImport(ctx context.Context, service *app.Service, path string, out io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open opml: %w", err)
	}
	defer f.Close()

	subs, err := opml.Parse(f)
	if err != nil {
		return err
	}
	summary, err := service.ImportSubscriptions(ctx, subs)
	if err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}
	fmt.Fprintln(out, summary.String())
	return nil
}

func runExport(service *app.Service, path string, out io.Writer) error {
	subs := service.Subscriptions()
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create opml: %w", err)
	}
	if err := opml.Write(f, "feedr subscriptions", subs, time.Now()); err != nil {
		_ = f.Close()
		return fmt.Errorf("write opml: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close opml: %w", err)
	}
	fmt.Fprintf(out, "exported %d feeds to %s\n", len(subs), path)
	return nil
}

// newLogger writes to the configured log file since the TUI owns stdout.
func newLogger(cfg config.Config) (*slog.Logger, func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { _ = f.Close() }, nil
}
