package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwilkie/tropo-message/internal/config"
	"github.com/dwilkie/tropo-message/internal/domain"
	"github.com/dwilkie/tropo-message/internal/logging"
	"github.com/dwilkie/tropo-message/internal/ports"
)

type fakeDispatcher struct {
	requests []string
}

func (d *fakeDispatcher) Dispatch(_ context.Context, requestXML string) (*ports.Launch, error) {
	d.requests = append(d.requests, requestXML)
	return &ports.Launch{SessionID: "s-1", Success: true}, nil
}

func loadConfig(t *testing.T) (*config.AppConfig, error) {
	t.Helper()
	for _, key := range []string{"HTTP_ADDR", "REDIS_ADDR", "TROPO_SESSION_URL", "TROPO_TIMEOUT", "TROPO_MAX_RETRIES", "TROPO_TOKEN", "TROPO_TOKEN_SECRET", "PROFILES_SOURCE"} {
		t.Setenv(key, "")
	}
	return config.LoadFromEnv()
}

func TestNew_StaticTokenWithoutJournal(t *testing.T) {
	cfg, err := loadConfig(t)
	require.NoError(t, err)
	cfg.Redis.Addr = ""
	cfg.Token = config.TokenConfig{Token: "23932349191932432"}
	cfg.Profiles.Source = ""

	dispatcher := &fakeDispatcher{}
	a, err := New(context.Background(), Options{
		Config:     cfg,
		Logger:     logging.Discard(),
		Dispatcher: dispatcher,
	})
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.Redis())

	receipt, err := a.Sender.Send(context.Background(), "", domain.NewParams("to", "612382211234"))
	require.NoError(t, err)
	assert.Equal(t, "s-1", receipt.SessionID)
	require.Len(t, dispatcher.requests, 1)
	assert.Contains(t, dispatcher.requests[0], "<token>23932349191932432</token>")

	msg, err := a.Receiver.Receive(context.Background(), []byte(`{"session":{"id":"x"}}`))
	require.NoError(t, err)
	assert.False(t, msg.Outgoing())
}

func TestNew_NoTokenConfigured(t *testing.T) {
	cfg, err := loadConfig(t)
	require.NoError(t, err)
	cfg.Redis.Addr = ""
	cfg.Token = config.TokenConfig{}

	a, err := New(context.Background(), Options{
		Config:     cfg,
		Logger:     logging.Discard(),
		Dispatcher: &fakeDispatcher{},
	})
	require.NoError(t, err)

	_, err = a.Sender.Send(context.Background(), "", domain.NewParams("to", "1"))
	assert.ErrorIs(t, err, domain.ErrMissingToken)
}
