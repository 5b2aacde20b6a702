package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/glbter/capstone/books/events/rabbit"
	"github.com/glbter/capstone/config"
)

func newBookEventsCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "book-events",
		Short: "Consume and log book library change events",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := InitLogger(cfg.LogLevel)
			defer logger.Sync()

			if cfg.RabbitURL == "" {
				return errors.New("rabbit url is empty")
			}

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

			msgs, err := rabbit.NewBookEventsClient(ch).ReceiveEvents()
			if err != nil {
				return fmt.Errorf("initialize a consumer: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("consumer is starting")

			for {
				select {
				case <-ctx.Done():
					logger.Info("consumer is stopping")
					return nil
				case msg, ok := <-msgs:
					if !ok {
						return errors.New("delivery channel closed")
					}
					handleBookEvent(logger, msg)
				}
			}
		},
	}
}

// handleBookEvent logs one delivery. Bodies that do not decode are dropped.
func handleBookEvent(logger *zap.Logger, msg amqp.Delivery) {
	logger = logger.With(zap.String("cid", msg.CorrelationId))

	event, err := rabbit.DecodeEvent(msg)
	if err != nil {
		logger.Error(err.Error())
		if err := msg.Reject(false); err != nil {
			logger.Error(fmt.Errorf("reject message: %w", err).Error())
		}
		return
	}

	logger.Info("book event",
		zap.String("type", string(event.Type)),
		zap.Int64("book_id", event.BookID),
		zap.String("title", event.Title),
		zap.Duration("lag", time.Since(event.At)),
	)
	if err := msg.Ack(false); err != nil {
		logger.Error(fmt.Errorf("ack message: %w", err).Error())
	}
}
