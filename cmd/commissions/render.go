package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/polisai/commission-board/pkg/dom"
	"github.com/polisai/commission-board/pkg/loader"
	"github.com/polisai/commission-board/pkg/render"
	"github.com/polisai/commission-board/pkg/telemetry"
	"github.com/spf13/cobra"
)

// containerID matches the display area id in the page shell.
const containerID = "commissions-container"

func newRenderCmd(c *cli) *cobra.Command {
	var (
		apiURL string
		output string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Load the board once and print the display area markup",
		Long: `Performs a single load against the commissions API into an in-memory
display area and prints the resulting markup. Failures are reported the way the
page reports them: the output holds the failure message and the error is logged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("api") {
				c.cfg.API.BaseURL = apiURL
				if err := c.cfg.API.Validate(); err != nil {
					return fmt.Errorf("--api: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer f.Close()
				out = f
			}

			return runRender(cmd.Context(), c, out)
		},
	}

	cmd.Flags().StringVar(&apiURL, "api", "", "Commissions API base URL (overrides api.base_url)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write markup to a file instead of stdout")
	return cmd
}

func runRender(ctx context.Context, c *cli, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	shutdown, err := telemetry.SetupProvider(ctx, telemetryConfig(c.cfg))
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			c.logger.Warn("Telemetry shutdown failed", "error", err)
		}
	}()

	nav := dom.NavigatorFunc(func(path string) {
		c.logger.Info("Navigate", "path", path)
	})
	container := dom.NewContainer(containerID, nav)
	renderer := render.New(container, nav, c.logger)
	client := loader.NewClient(c.cfg.API.BaseURL)

	state := loader.New(client.List, renderer, c.logger).Run(ctx)
	c.logger.Debug("Render finished", "state", string(state), "url", client.URL())

	if _, err := fmt.Fprintln(out, container.HTML()); err != nil {
		return fmt.Errorf("write markup: %w", err)
	}
	return nil
}
