package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/dwilkie/tropo-message/internal/domain"
	"github.com/dwilkie/tropo-message/internal/ports"
)

// Receiver turns inbound webhook bodies into Messages.
type Receiver struct {
	store  ports.SessionStore
	logger *slog.Logger
}

// NewReceiver creates a Receiver. store may be nil, which disables the
// session journal.
func NewReceiver(store ports.SessionStore, logger *slog.Logger) *Receiver {
	return &Receiver{
		store:  store,
		logger: logger,
	}
}

// Receive decodes a session payload and returns a Message attached to it.
// Journal failures are logged and do not fail the request.
func (r *Receiver) Receive(ctx context.Context, body []byte) (*domain.Message, error) {
	var snapshot domain.Snapshot
	if err := json.Unmarshal(body, &snapshot); err != nil {
		return nil, &domain.SessionError{Op: "Decode", Err: err}
	}

	if snapshot.Session == nil {
		return nil, &domain.SessionError{Op: "Decode", Err: domain.ErrMissingSession}
	}

	msg := domain.NewMessage()
	msg.Parse(snapshot)

	sessionID := snapshot.ID()
	logger := r.logger.With("session_id", sessionID)

	logger.Info("session received",
		"outgoing", msg.Outgoing(),
		"to", msg.To(),
		"channel", msg.Channel(),
		"network", msg.Network(),
	)

	if r.store != nil && sessionID != "" {
		if err := r.store.Save(ctx, sessionID, snapshot); err != nil {
			logger.Warn("failed to journal session", "error", err)
		}
	}

	return msg, nil
}

// Lookup rebuilds the Message for a journaled session.
func (r *Receiver) Lookup(ctx context.Context, sessionID string) (*domain.Message, error) {
	if r.store == nil {
		return nil, &domain.SessionError{SessionID: sessionID, Op: "Lookup", Err: domain.ErrNotFound}
	}

	snapshot, err := r.store.Get(ctx, sessionID)
	if err != nil {
		return nil, &domain.SessionError{SessionID: sessionID, Op: "Lookup", Err: err}
	}

	return domain.NewMessage(domain.WithSnapshot(snapshot)), nil
}
