package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	// RunCompleted is published after a run wrote its output.
	RunCompleted = "run.completed"
	// RunFailed is published after a run aborted.
	RunFailed = "run.failed"
)

// Publisher publishes JSON events.
type Publisher interface {
	Publish(event string, data any) error
	Close()
}

// conn is the subset of *nats.Conn used by Client.
type conn interface {
	Publish(subject string, data []byte) error
	Close()
}

// Client publishes events to NATS.
type Client struct {
	conn   conn
	prefix string
	logger *zap.Logger
}

// New returns a NATS client, or a no-op publisher when no URL is configured.
func New(cfg Config, logger *zap.Logger) (Publisher, error) {
	if !cfg.Enabled() {
		return Noop{}, nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := []nats.Option{
		nats.Name("record-reconciler"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("NATS reconnected")
		}),
	}
	if cfg.Token != "" {
		opts = append(opts, nats.Token(cfg.Token))
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return newClient(nc, cfg.SubjectPrefix, logger), nil
}

func newClient(c conn, prefix string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{conn: c, prefix: prefix, logger: logger}
}

// Subject returns the full subject for an event name.
func (c *Client) Subject(event string) string {
	if c.prefix == "" {
		return event
	}
	return c.prefix + "." + event
}

// Publish marshals data as JSON and publishes it under the event subject.
func (c *Client) Publish(event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event, err)
	}
	subject := c.Subject(event)
	if err := c.conn.Publish(subject, payload); err != nil {
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}
	c.logger.Debug("Event published", zap.String("subject", subject), zap.Int("bytes", len(payload)))
	return nil
}

// Close closes the NATS connection.
func (c *Client) Close() {
	c.conn.Close()
}

// Noop discards every event.
type Noop struct{}

// Publish does nothing.
func (Noop) Publish(string, any) error { return nil }

// Close does nothing.
func (Noop) Close() {}
