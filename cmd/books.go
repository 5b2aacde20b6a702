package cmd

import (
	"fmt"
	"net/http"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/spf13/cobra"

	"github.com/glbter/capstone/books/events/rabbit"
	"github.com/glbter/capstone/books/repo/sqlite"
	"github.com/glbter/capstone/config"
	coversHttp "github.com/glbter/capstone/covers/client/http"
	appHttp "github.com/glbter/capstone/http"
)

const coverProbeTimeout = 5 * time.Second

func newBooksCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Serve the book notes library",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := InitLogger(cfg.LogLevel)
			defer logger.Sync()

			repo, err := sqlite.Open(cfg.BooksDBPath)
			if err != nil {
				return err
			}
			defer repo.Close()

			renderer, err := appHttp.NewRenderer()
			if err != nil {
				return err
			}

			handler := appHttp.BooksHandler{
				Logger:   logger,
				Books:    repo,
				Covers:   coversHttp.NewClient(&http.Client{Timeout: coverProbeTimeout}, cfg.CoversBaseURL, logger),
				Renderer: renderer,
			}

			if cfg.RabbitURL != "" {
				conn, err := amqp.Dial(cfg.RabbitURL)
				if err != nil {
					return fmt.Errorf("connect to RabbitMQ: %w", err)
				}
				defer conn.Close()

				ch, err := conn.Channel()
				if err != nil {
					return fmt.Errorf("open a channel: %w", err)
				}
				defer ch.Close()

				if err := rabbit.DeclareQueues(ch); err != nil {
					return err
				}

				handler.Events = rabbit.NewBookEventsClient(ch)
				logger.Info("book events enabled")
			}

			r := newRouter(cfg)
			handler.Register(r)

			return serve(cmd.Context(), cfg, r, logger)
		},
	}

	cmd.Flags().StringVar(&cfg.BooksDBPath, "db", cfg.BooksDBPath, "path of the SQLite database file")

	return cmd
}
