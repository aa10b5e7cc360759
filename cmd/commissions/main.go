// Package main is the entry point for the commissions binary.
// It provides a CLI for rendering the commission board once and for running
// the development server that hosts the browser build.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/polisai/commission-board/pkg/config"
	"github.com/polisai/commission-board/pkg/logging"
	"github.com/spf13/cobra"
)

const defaultLogLevel = "info"

// cli carries state shared by subcommands once the root pre-run has loaded
// configuration.
type cli struct {
	configPath string
	logLevel   string
	pretty     bool

	cfg    *config.Config
	logger *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd creates the root command for commissions
func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:   "commissions",
		Short: "Commission board tooling",
		Long: `Tools for the commission board.

The board itself runs in the browser (see cmd/commissions-web). This binary
renders the board once from the command line for diagnostics, and serves the
page shell, static assets and an /api/ proxy during development.

Example:
  commissions render --api http://127.0.0.1:8000
  commissions serve --upstream http://127.0.0.1:8000 --static-dir ./dist`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Path to configuration file (YAML)")
	rootCmd.PersistentFlags().StringVarP(&c.logLevel, "log-level", "l", defaultLogLevel, "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&c.pretty, "pretty", false, "Enable human-readable log output")

	rootCmd.AddCommand(newRenderCmd(c), newServeCmd(c))
	return rootCmd
}

// setup loads configuration and installs the logger. Explicit flags win over
// the configuration file.
func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = c.logLevel
		if err := cfg.Logging.Validate(); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("pretty") {
		cfg.Logging.Pretty = c.pretty
	}

	c.cfg = cfg
	c.logger = logging.NewLogger(logging.Config{
		Level:  cfg.Logging.Level,
		Pretty: cfg.Logging.Pretty,
		Output: cmd.ErrOrStderr(),
	})
	slog.SetDefault(c.logger)
	return nil
}
