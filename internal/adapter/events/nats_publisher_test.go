package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listingseo/internal/domain/listing"
)

type recordingConn struct {
	subject string
	data    []byte
	err     error
}

func (c *recordingConn) Publish(subject string, data []byte) error {
	c.subject = subject
	c.data = data
	return c.err
}

func TestNATSPublisher_PublishAnalysis(t *testing.T) {
	conn := &recordingConn{}
	p := NewNATSPublisher(conn, "listing")

	event := listing.AnalysisEvent{
		ID:              "evt-1",
		SessionID:       "sid-1",
		Category:        "Kitchen",
		SEOScore:        85,
		HasBackendTerms: true,
		CreatedAt:       time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, p.PublishAnalysis(context.Background(), event))

	assert.Equal(t, "listing.analyzed", conn.subject)

	var decoded listing.AnalysisEvent
	require.NoError(t, json.Unmarshal(conn.data, &decoded))
	assert.Equal(t, event, decoded)
}

func TestNATSPublisher_Errors(t *testing.T) {
	conn := &recordingConn{err: errors.New("nats: connection closed")}
	p := NewNATSPublisher(conn, "listing")

	assert.Error(t, p.PublishAnalysis(context.Background(), listing.AnalysisEvent{}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.PublishAnalysis(ctx, listing.AnalysisEvent{}), context.Canceled)
}

func TestNopPublisher(t *testing.T) {
	var p listing.EventPublisher = NopPublisher{}
	assert.NoError(t, p.PublishAnalysis(context.Background(), listing.AnalysisEvent{}))
}
