package cmd

import (
	"github.com/spf13/cobra"

	"github.com/glbter/capstone/blog/repo/memory"
	"github.com/glbter/capstone/config"
	appHttp "github.com/glbter/capstone/http"
)

func newBlogCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "blog",
		Short: "Serve the in-memory blog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := InitLogger(cfg.LogLevel)
			defer logger.Sync()

			renderer, err := appHttp.NewRenderer()
			if err != nil {
				return err
			}

			handler := appHttp.BlogHandler{
				Logger:   logger,
				Posts:    memory.NewPostRepo(nil),
				Renderer: renderer,
			}

			r := newRouter(cfg)
			handler.Register(r)

			return serve(cmd.Context(), cfg, r, logger)
		},
	}
}
