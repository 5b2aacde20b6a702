package rabbit

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/glbter/capstone/entities"
)

const (
	BOOK_EVENTS_QUEUE = "book_events"
)

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// DeclareQueues declares the queues the book events travel through.
func DeclareQueues(ch *amqp.Channel) error {
	if _, err := ch.QueueDeclare(
		BOOK_EVENTS_QUEUE, // name
		true,              // durable
		false,             // delete when unused
		false,             // exclusive
		false,             // noWait
		nil,               // arguments
	); err != nil {
		return fmt.Errorf("declare a queue for book events: %w", err)
	}

	return nil
}

func NewBookEventsClient(ch channel) *BookEventsClient {
	return &BookEventsClient{
		channel: ch,
	}
}

type BookEventsClient struct {
	channel channel
}

func (c *BookEventsClient) Publish(ctx context.Context, event entities.BookEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal book event: %w", err)
	}

	return c.channel.PublishWithContext(ctx,
		"",                // exchange
		BOOK_EVENTS_QUEUE, // routing key
		false,             // mandatory
		false,             // immediate
		amqp.Publishing{
			ContentType:   "application/json",
			CorrelationId: event.ID,
			Type:          string(event.Type),
			Timestamp:     event.At,
			Body:          body,
		})
}

func (c *BookEventsClient) ReceiveEvents() (<-chan amqp.Delivery, error) {
	msgs, err := c.channel.Consume(
		BOOK_EVENTS_QUEUE, // queue
		"",                // consumer
		false,             // auto-ack
		false,             // exclusive
		false,             // no-local
		false,             // no-wait
		nil,               // args
	)
	if err != nil {
		return nil, err
	}

	return msgs, nil
}

// DecodeEvent reads a book event from a delivery body.
func DecodeEvent(d amqp.Delivery) (entities.BookEvent, error) {
	var event entities.BookEvent
	if err := json.Unmarshal(d.Body, &event); err != nil {
		return entities.BookEvent{}, fmt.Errorf("decode book event: %w", err)
	}
	return event, nil
}
