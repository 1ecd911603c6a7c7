package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/diogo/barbchat/internal/config"
	"github.com/diogo/barbchat/internal/logging"
	"github.com/diogo/barbchat/internal/models"
	"github.com/diogo/barbchat/internal/relay"
)

// NewServeCmd creates the command that runs the relay
func NewServeCmd(deps *Dependencies, flags *globalFlags) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Barb relay server",
		Long: `Run the HTTP relay that injects Barb's persona and streams replies from
the Anthropic Messages API. The API key is read from ` + config.APIKeyEnv + `
(a .env file in the working directory is honoured); the relay refuses to start
without it.

Endpoints:
  POST /api/chat   Forward a conversation, reply streams back as SSE
  GET  /health     Liveness probe
  GET  /metrics    Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := resolveConfig(deps, flags)
			if port != "" {
				cfg.Port = port
			}

			logger := serverLogger(deps, cfg)
			srv, err := buildRelay(deps, cfg, logger)
			if err != nil {
				logger.Error().Err(err).Msg("relay not started")
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info().
				Str("url", fmt.Sprintf("http://localhost%s", srv.Addr())).
				Str("chat", models.PathChat).
				Str("upstream", cfg.UpstreamURL).
				Str("persona", config.Barb.Name).
				Msg("barb relay starting")

			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (default from config or $"+config.EnvPort+")")
	return cmd
}

// buildRelay wires the upstream client, handler and router into a server
func buildRelay(deps *Dependencies, cfg config.Config, logger zerolog.Logger) (*relay.Server, error) {
	apiKey, err := config.LoadAPIKey()
	if err != nil {
		return nil, err
	}
	logger.Info().Msg("API key loaded")

	upstream, err := deps.NewUpstream(cfg.UpstreamTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to create upstream client: %w", err)
	}

	handler := relay.NewHandler(relay.Options{
		Upstream:     upstream,
		UpstreamURL:  cfg.UpstreamURL,
		APIKey:       apiKey,
		SystemPrompt: config.SystemPrompt(),
		Logger:       logger,
	})

	router := relay.NewRouter(logger, handler, cfg.StaticDir)
	return relay.NewServer(":"+cfg.Port, router, logger), nil
}

func serverLogger(deps *Dependencies, cfg config.Config) zerolog.Logger {
	return logging.NewServer(deps.Stdout, cfg.IsDevelopment(), cfg.Verbose)
}
