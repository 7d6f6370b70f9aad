package broker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Bhargavvz/todoapp/config"
	"github.com/Bhargavvz/todoapp/models"

	"github.com/nats-io/nats.go"
)

var ErrProducerNotInitialized = errors.New("event producer is not initialized")

// Publisher delivers committed todo events to interested parties.
type Publisher interface {
	Publish(ctx context.Context, event models.TodoEvent) error
}

// Conn is the subset of *nats.Conn the producer relies on.
type Conn interface {
	Publish(subj string, data []byte) error
	FlushWithContext(ctx context.Context) error
	Drain() error
}

type NatsPublisher struct {
	conn   Conn
	prefix string
}

func NewNatsPublisher(conn Conn, prefix string) *NatsPublisher {
	return &NatsPublisher{conn: conn, prefix: prefix}
}

// InitProducer connects to the NATS server named by cfg.NatsURL.
func InitProducer(cfg config.Config) (*NatsPublisher, error) {
	if cfg.NatsURL == "" {
		return nil, ErrProducerNotInitialized
	}

	conn, err := nats.Connect(cfg.NatsURL, connectOptions("todoapp-producer")...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	log.Printf("NATS producer connected to %s", conn.ConnectedUrl())

	return NewNatsPublisher(conn, cfg.NatsSubjectPrefix), nil
}

func (p *NatsPublisher) Publish(ctx context.Context, event models.TodoEvent) error {
	if p == nil || p.conn == nil {
		return ErrProducerNotInitialized
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	subject := Subject(p.prefix, EventType(event.Event))
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}
	log.Printf("Published %s for todo %s", subject, event.TodoID)
	return nil
}

// Close flushes pending messages and closes the connection.
func (p *NatsPublisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.conn.FlushWithContext(ctx); err != nil {
		log.Printf("Failed to flush NATS producer: %v", err)
	}
	if err := p.conn.Drain(); err != nil {
		log.Printf("Failed to drain NATS producer: %v", err)
	}
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, models.TodoEvent) error { return nil }

// Publishers fans an event out to every publisher; all are attempted and the
// failures are joined.
type Publishers []Publisher

func (ps Publishers) Publish(ctx context.Context, event models.TodoEvent) error {
	var errs []error
	for _, p := range ps {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func connectOptions(name string) []nats.Option {
	return []nats.Option{
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Printf("NATS disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Printf("NATS reconnected to %s", c.ConnectedUrl())
		}),
	}
}
