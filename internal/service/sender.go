package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dwilkie/tropo-message/internal/codec"
	"github.com/dwilkie/tropo-message/internal/domain"
	"github.com/dwilkie/tropo-message/internal/ports"
)

// Receipt describes a launched outbound session.
type Receipt struct {
	RequestID string
	SessionID string
	To        string
}

// Sender builds outbound Messages and launches them through a Dispatcher.
type Sender struct {
	profiles   ports.ProfileLoader
	tokens     ports.TokenProvider
	dispatcher ports.Dispatcher
	logger     *slog.Logger
}

// NewSender creates a new Sender. profiles and tokens may be nil.
func NewSender(
	profiles ports.ProfileLoader,
	tokens ports.TokenProvider,
	dispatcher ports.Dispatcher,
	logger *slog.Logger,
) *Sender {
	return &Sender{
		profiles:   profiles,
		tokens:     tokens,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Compose returns the Message for params layered over the named profile.
// An empty profile name skips the profile. No token is resolved.
func (s *Sender) Compose(ctx context.Context, profile string, params domain.Params) (*domain.Message, error) {
	var merged domain.Params

	if profile != "" {
		if s.profiles == nil {
			return nil, &domain.ConfigError{ConfigName: "profiles", Field: profile, Err: domain.ErrNotFound}
		}
		p, err := s.profiles.LoadProfile(ctx, profile)
		if err != nil {
			return nil, err
		}
		merged = p.Params.Clone()
	}
	merged.Merge(params)

	return domain.NewMessage(domain.WithParams(merged)), nil
}

// Build composes the Message and, when params carry no token, asks the
// TokenProvider for one.
func (s *Sender) Build(ctx context.Context, profile string, params domain.Params) (*domain.Message, error) {
	msg, err := s.Compose(ctx, profile, params)
	if err != nil {
		return nil, err
	}

	if msg.Token() == "" && s.tokens != nil {
		token, err := s.tokens.Token(ctx)
		if err != nil && !errors.Is(err, domain.ErrMissingToken) {
			return nil, fmt.Errorf("resolve token: %w", err)
		}
		if token != "" {
			msg.SetToken(token)
		}
	}

	if msg.Token() == "" {
		return nil, &domain.DispatchError{To: msg.To(), Profile: profile, Err: domain.ErrMissingToken}
	}

	return msg, nil
}

// Send builds the Message and posts its request XML to the platform.
func (s *Sender) Send(ctx context.Context, profile string, params domain.Params) (*Receipt, error) {
	msg, err := s.Build(ctx, profile, params)
	if err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	logger := s.logger.With(
		"request_id", requestID,
		"to", msg.To(),
		"profile", profile,
	)

	logger.Info("launching session", "channel", msg.Channel(), "network", msg.Network())

	launch, err := s.dispatcher.Dispatch(ctx, codec.RequestXML(msg))
	if err != nil {
		logger.Error("session request failed", "error", err)
		return nil, &domain.DispatchError{To: msg.To(), Profile: profile, Err: err}
	}

	if !launch.Success {
		logger.Error("session rejected", "reason", launch.Reason)
		return nil, &domain.DispatchError{
			To:      msg.To(),
			Profile: profile,
			Err:     fmt.Errorf("session not launched: %s", launch.Reason),
		}
	}

	logger.Info("session launched", "session_id", launch.SessionID)

	return &Receipt{
		RequestID: requestID,
		SessionID: launch.SessionID,
		To:        msg.To(),
	}, nil
}
