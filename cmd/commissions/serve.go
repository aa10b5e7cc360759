package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/polisai/commission-board/pkg/config"
	"github.com/polisai/commission-board/pkg/server"
	"github.com/polisai/commission-board/pkg/telemetry"
	"github.com/spf13/cobra"
)

func newServeCmd(c *cli) *cobra.Command {
	var (
		listen    string
		upstream  string
		staticDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the development server",
		Long: `Serves the page shell and static assets and proxies /api/ to the
commissions API. With --config the file is watched and the proxy follows
upstream changes without a restart, unless --upstream pins it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("listen") {
				c.cfg.Server.ListenAddress = listen
			}
			if cmd.Flags().Changed("upstream") {
				c.cfg.Server.UpstreamURL = upstream
			}
			if cmd.Flags().Changed("static-dir") {
				c.cfg.Server.StaticDir = staticDir
			}
			if err := c.cfg.Server.Validate(); err != nil {
				return fmt.Errorf("server configuration: %w", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, c, !cmd.Flags().Changed("upstream"))
		},
	}

	cmd.Flags().StringVar(&listen, "listen", config.DefaultListenAddress, "Address to listen on")
	cmd.Flags().StringVar(&upstream, "upstream", "", "Commissions API receiving /api/ requests")
	cmd.Flags().StringVar(&staticDir, "static-dir", "", "Directory layered over the embedded assets (wasm bundle)")
	return cmd
}

func runServe(ctx context.Context, c *cli, followConfig bool) error {
	shutdown, err := telemetry.SetupProvider(ctx, telemetryConfig(c.cfg))
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			c.logger.Warn("Telemetry shutdown failed", "error", err)
		}
	}()

	srv, err := server.New(server.Options{
		Upstream:  c.cfg.Upstream(),
		StaticDir: c.cfg.Server.StaticDir,
		Logger:    c.logger,
	})
	if err != nil {
		return err
	}

	if followConfig && c.configPath != "" {
		provider, err := config.NewFileProvider(c.configPath, c.logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := provider.Close(); err != nil {
				c.logger.Error("Failed to close config provider", "error", err)
			}
		}()
		go srv.Watch(ctx, provider.Subscribe())
	}

	c.logger.Info("Starting commissions dev server",
		"listen", c.cfg.Server.ListenAddress,
		"upstream", srv.Upstream(),
		"static_dir", c.cfg.Server.StaticDir,
	)

	if err := srv.ListenAndServe(ctx, c.cfg.Server.ListenAddress); err != nil {
		return err
	}
	c.logger.Info("Server stopped")
	return nil
}
