package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"folio/internal/config"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries what every subcommand needs after the root's pre-run.
type app struct {
	configPath string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "folio",
		Short:         "Serve and drive the interactive portfolio page",
		Long:          `folio serves a static portfolio and runs its page behaviors (navigation, scroll effects, contact form, notifications) against a live browser page.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFile(a.configPath)
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			a.cfg = cfg

			logger, err := newLogger(cmd.ErrOrStderr(), cfg.Log)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			slog.Debug("configuration loaded", "port", cfg.Server.Port, "mode", cfg.Server.Mode, "site", cfg.Site.Dir)
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file (default: ./config.yaml when present)")

	root.AddCommand(newServeCmd(a))
	root.AddCommand(newRunCmd(a))
	root.AddCommand(newCheckCmd(a))
	return root
}

// newLogger builds the slog logger selected by the log section.
func newLogger(w io.Writer, cfg config.LogConfig) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(cfg.Format) {
	case "", "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.Format)
	}
}
