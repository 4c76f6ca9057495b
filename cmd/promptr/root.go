package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/sant0-9/promptr/internal/config"
	"github.com/sant0-9/promptr/internal/metrics"
	"github.com/sant0-9/promptr/internal/pipeline"
	"github.com/sant0-9/promptr/internal/tui"
)

// globals holds the persistent flags shared by every command
type globals struct {
	configPath string
	logLevel   string
	offline    bool
}

func rootCmd() *cobra.Command {
	g := &globals{}

	cmd := &cobra.Command{
		Use:   "promptr",
		Short: "Turn rough requests into optimized LLM prompts",
		Long: `promptr classifies a rough request, flags risks and missing details,
and rewrites it into several domain-specific prompt versions, picking the
best one for you.

Every LLM-backed step has a local fallback, so promptr also works offline.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.runTUI(cmd)
		},
	}

	cmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "Config file path (default ~/.config/promptr/config.yaml)")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&g.offline, "offline", false, "Skip the LLM and use local classification and templates")

	cmd.AddCommand(
		optimizeCmd(g),
		batchCmd(g),
		classifyCmd(g),
		versionsCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "promptr version %s\n", version)
			},
		},
	)

	return cmd
}

func (g *globals) resolvePath() (string, error) {
	if g.configPath != "" {
		return g.configPath, nil
	}
	return config.ConfigPath()
}

// loadConfig returns nil when no config file exists yet
func (g *globals) loadConfig() (*config.Config, error) {
	path, err := g.resolvePath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// configOrDefault lets scripting commands run before setup
func (g *globals) configOrDefault() (*config.Config, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
		cfg.ApplyEnv()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
	}
	return cfg, nil
}

func (g *globals) logger(w io.Writer, cfg *config.Config) *slog.Logger {
	level := g.logLevel
	if level == "" && cfg != nil {
		level = cfg.LogLevel
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(level)}))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// optimizer builds the pipeline for a scripting command. Logs go to
// stderr so stdout stays parseable.
func (g *globals) optimizer(cmd *cobra.Command, reg prometheus.Registerer) (*pipeline.Optimizer, error) {
	cfg, err := g.configOrDefault()
	if err != nil {
		return nil, err
	}
	logger := g.logger(cmd.ErrOrStderr(), cfg)

	var m *metrics.Metrics
	if reg != nil {
		m = metrics.New(reg)
	}

	opt, err := pipeline.FromConfig(cfg, pipeline.BuildOptions{
		Offline: g.offline,
		Metrics: m,
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}
	return opt, nil
}

func (g *globals) runTUI(cmd *cobra.Command) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	path, err := g.resolvePath()
	if err != nil {
		return err
	}

	// The alt screen owns the terminal, so logs go to a file
	logFile, err := openLog(filepath.Dir(path))
	if err != nil {
		return err
	}
	defer logFile.Close()

	app := tui.NewApp(tui.Options{
		Config: cfg,
		Logger: g.logger(logFile, cfg),
		Save: func(c *config.Config) error {
			return c.SaveTo(path)
		},
		Offline: g.offline,
	})

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()),
	)
	_, err = p.Run()
	return err
}

func openLog(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "promptr.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
}
