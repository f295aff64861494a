// internal/adapter/events/nats_publisher.go

package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"listingseo/internal/domain/listing"
	"listingseo/internal/logger"
)

// Conn is the subset of *nats.Conn used for publishing
type Conn interface {
	Publish(subject string, data []byte) error
}

// NATSConfig holds NATS connection configuration
type NATSConfig struct {
	URL            string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectTimeout time.Duration
}

// Connect opens a NATS connection that logs its lifecycle
func Connect(cfg NATSConfig, log logger.Logger) (*nats.Conn, error) {
	options := []nats.Option{
		nats.Name("listingseo"),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.ConnectTimeout),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warn("NATS disconnected", logger.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected", logger.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			log.Info("NATS connection closed")
		}),
	}

	nc, err := nats.Connect(cfg.URL, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to NATS: %w", err)
	}

	return nc, nil
}

// NATSPublisher implements listing.EventPublisher over NATS
type NATSPublisher struct {
	conn  Conn
	topic string
}

// NewNATSPublisher creates a publisher emitting on "<topic>.analyzed"
func NewNATSPublisher(conn Conn, topic string) *NATSPublisher {
	return &NATSPublisher{
		conn:  conn,
		topic: topic,
	}
}

// Subject returns the subject analysis events are published on
func (p *NATSPublisher) Subject() string {
	return fmt.Sprintf("%s.analyzed", p.topic)
}

// PublishAnalysis publishes an analysis event as JSON
func (p *NATSPublisher) PublishAnalysis(ctx context.Context, event listing.AnalysisEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("error marshaling analysis event: %w", err)
	}

	if err := p.conn.Publish(p.Subject(), data); err != nil {
		return fmt.Errorf("error publishing analysis event: %w", err)
	}
	return nil
}

// NopPublisher discards events; used when NATS is not configured
type NopPublisher struct{}

// PublishAnalysis does nothing
func (NopPublisher) PublishAnalysis(context.Context, listing.AnalysisEvent) error {
	return nil
}
