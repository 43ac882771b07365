package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yildizm/HumanizePro/internal/emoji"
	"github.com/yildizm/HumanizePro/internal/server"
)

var serveAddress string

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve analysis and rewriting over HTTP.

Endpoints:
  POST /api/analyze   {"text"}                     -> {"humanPercentage","aiPercentage"}
  POST /api/humanize  {"text","language","tone"}   -> {"text"}
  GET  /api/options                                -> languages, tones, defaults
  GET  /health                                     -> backend health

The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringVarP(&serveAddress, "address", "a", "", "listen address (default: server.address)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()
	if serveAddress != "" {
		cfg.Server.Address = serveAddress
	}

	client, provider, err := newDetector(cfg, rootLogger)
	if err != nil {
		return err
	}
	defer provider.Close()

	srv := server.New(client, server.Options{
		Config:   cfg.Server,
		Provider: provider.Name(),
		Model:    modelName(cfg, provider),
		Health:   provider.HealthCheck,
		Logger:   rootLogger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.ErrOrStderr(), "%s Serving %s/%s on %s\n",
		emoji.GetEmoji("rocket"), provider.Name(), modelName(cfg, provider), cfg.Server.Address)
	return srv.ListenAndServe(ctx)
}
