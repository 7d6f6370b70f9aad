package broker

import (
	"context"
	"fmt"
	"log"

	"github.com/Bhargavvz/todoapp/config"
	"github.com/Bhargavvz/todoapp/models"

	"github.com/nats-io/nats.go"
)

// Consumer receives todo events published under a subject prefix.
type Consumer struct {
	conn     *nats.Conn
	sub      *nats.Subscription
	messages chan *nats.Msg
}

// InitConsumer subscribes to every event under cfg.NatsSubjectPrefix.
func InitConsumer(cfg config.Config) (*Consumer, error) {
	if cfg.NatsURL == "" {
		return nil, ErrProducerNotInitialized
	}

	conn, err := nats.Connect(cfg.NatsURL, connectOptions("todoapp-consumer")...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	messages := make(chan *nats.Msg, 256)
	subject := WildcardSubject(cfg.NatsSubjectPrefix)
	sub, err := conn.ChanSubscribe(subject, messages)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", subject, err)
	}
	log.Printf("NATS consumer listening on %s", subject)

	return &Consumer{conn: conn, sub: sub, messages: messages}, nil
}

// GetMessageChannel returns the raw message channel.
func (c *Consumer) GetMessageChannel() <-chan *nats.Msg {
	return c.messages
}

// Consume decodes messages and hands them to handler until ctx is done.
// Undecodable messages are logged and skipped.
func (c *Consumer) Consume(ctx context.Context, handler func(subject string, event models.TodoEvent)) error {
	return consume(ctx, c.messages, handler)
}

func (c *Consumer) Close() {
	if c.sub != nil {
		if err := c.sub.Unsubscribe(); err != nil {
			log.Printf("Failed to unsubscribe: %v", err)
		}
	}
	if c.conn != nil {
		c.conn.Close()
	}
}

func consume(ctx context.Context, messages <-chan *nats.Msg, handler func(string, models.TodoEvent)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			event, err := DecodeMessage(msg)
			if err != nil {
				log.Printf("Skipping message on %s: %v", msg.Subject, err)
				continue
			}
			handler(msg.Subject, event)
		}
	}
}

// DecodeMessage parses the JSON event carried by msg.
func DecodeMessage(msg *nats.Msg) (models.TodoEvent, error) {
	var event models.TodoEvent
	if err := event.FromJSON(msg.Data); err != nil {
		return models.TodoEvent{}, fmt.Errorf("failed to decode event: %w", err)
	}
	return event, nil
}
