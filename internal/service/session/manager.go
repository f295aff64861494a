// internal/service/session/manager.go

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"listingseo/internal/domain/listing"
)

// Fixed keys under which a session keeps its last analysis
const (
	ResultsKey  = "seoAnalysisResults"
	OriginalKey = "originalData"
)

var (
	// ErrResultNotFound is returned when a session has no stored analysis
	ErrResultNotFound = errors.New("analysis result not found")

	// ErrResultCorrupt is returned when a stored analysis cannot be decoded
	ErrResultCorrupt = errors.New("analysis result is corrupt")
)

// StoredResult is the analysis and the input it was generated from
type StoredResult struct {
	Input  listing.Input
	Report listing.Report
}

// ManagerConfig contains configuration for the session manager
type ManagerConfig struct {
	TTL time.Duration
}

// Manager persists analyses in a session-scoped result store
type Manager struct {
	store  listing.ResultStore
	config ManagerConfig
}

// NewManager creates a new session manager
func NewManager(store listing.ResultStore, config ManagerConfig) *Manager {
	return &Manager{
		store:  store,
		config: config,
	}
}

// NewSessionID returns a fresh random session identifier
func NewSessionID() string {
	return uuid.New().String()
}

// ValidSessionID reports whether id looks like an identifier we issued
func ValidSessionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Save stores the report and the original input for a session
func (m *Manager) Save(ctx context.Context, sessionID string, input listing.Input, report *listing.Report) error {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("error marshaling report: %w", err)
	}

	inputJSON, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("error marshaling input: %w", err)
	}

	if err := m.store.Set(ctx, key(sessionID, ResultsKey), reportJSON, m.config.TTL); err != nil {
		return fmt.Errorf("error storing report: %w", err)
	}

	if err := m.store.Set(ctx, key(sessionID, OriginalKey), inputJSON, m.config.TTL); err != nil {
		// The new report must not be read back against a previous input
		if delErr := m.store.Delete(ctx, key(sessionID, ResultsKey), key(sessionID, OriginalKey)); delErr != nil {
			return fmt.Errorf("error storing input: %w (cleanup failed: %v)", err, delErr)
		}
		return fmt.Errorf("error storing input: %w", err)
	}

	return nil
}

// Load returns the stored analysis for a session. Both keys must be present
// and decodable; otherwise ErrResultNotFound or ErrResultCorrupt is returned.
func (m *Manager) Load(ctx context.Context, sessionID string) (*StoredResult, error) {
	reportJSON, err := m.get(ctx, sessionID, ResultsKey)
	if err != nil {
		return nil, err
	}

	inputJSON, err := m.get(ctx, sessionID, OriginalKey)
	if err != nil {
		return nil, err
	}

	var result StoredResult
	if err := json.Unmarshal(reportJSON, &result.Report); err != nil {
		return nil, fmt.Errorf("%w: report: %v", ErrResultCorrupt, err)
	}
	if err := json.Unmarshal(inputJSON, &result.Input); err != nil {
		return nil, fmt.Errorf("%w: input: %v", ErrResultCorrupt, err)
	}

	return &result, nil
}

// Clear removes the stored analysis for a session
func (m *Manager) Clear(ctx context.Context, sessionID string) error {
	if err := m.store.Delete(ctx, key(sessionID, ResultsKey), key(sessionID, OriginalKey)); err != nil {
		return fmt.Errorf("error clearing session: %w", err)
	}
	return nil
}

func (m *Manager) get(ctx context.Context, sessionID, name string) ([]byte, error) {
	value, err := m.store.Get(ctx, key(sessionID, name))
	if errors.Is(err, listing.ErrKeyNotFound) {
		return nil, ErrResultNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", name, err)
	}
	return value, nil
}

func key(sessionID, name string) string {
	return sessionID + ":" + name
}
