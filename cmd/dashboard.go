package cmd

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/glbter/capstone/aggregator"
	"github.com/glbter/capstone/config"
	appHttp "github.com/glbter/capstone/http"
	providerHttp "github.com/glbter/capstone/provider/client/http"
)

func newDashboardCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Serve the stock dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := InitLogger(cfg.LogLevel)
			defer logger.Sync()

			if cfg.APIKey == "" {
				logger.Warn("API_KEY is empty, the provider will reject every call")
			}

			renderer, err := appHttp.NewRenderer()
			if err != nil {
				return err
			}

			client := &http.Client{Timeout: cfg.ProviderTimeout}
			dataClient := providerHttp.NewClient(client, cfg.FMPBaseURL, cfg.APIKey, logger)

			handler := appHttp.DashboardHandler{
				Logger:     logger,
				Aggregator: aggregator.New(dataClient, logger),
				Renderer:   renderer,
			}

			r := newRouter(cfg)
			handler.Register(r)

			return serve(cmd.Context(), cfg, r, logger)
		},
	}
}
