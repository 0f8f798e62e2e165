package ports

import (
	"context"

	"github.com/dwilkie/tropo-message/internal/domain"
)

// SessionStore keeps inbound session snapshots for later inspection.
type SessionStore interface {
	// Save stores a snapshot under the session id.
	Save(ctx context.Context, sessionID string, snapshot domain.Snapshot) error

	// Get retrieves a snapshot. Returns domain.ErrNotFound when absent.
	Get(ctx context.Context, sessionID string) (domain.Snapshot, error)

	// Delete removes a snapshot.
	Delete(ctx context.Context, sessionID string) error
}
