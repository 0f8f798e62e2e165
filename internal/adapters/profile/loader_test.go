package profile

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwilkie/tropo-message/internal/config"
	"github.com/dwilkie/tropo-message/internal/domain"
	"github.com/dwilkie/tropo-message/internal/logging"
)

const profilesYAML = `
profiles:
  reminder:
    description: appointment reminders
    params:
      from: "+15550001234"
      network: SMS
  voice:
    params:
      channel: VOICE
      network: PSTN
      timeout: 30
`

func TestLoader_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(profilesYAML), 0o600))

	l := NewLoader(config.ProfileSettings{Source: path}, logging.Discard())

	p, err := l.LoadProfile(context.Background(), "voice")
	require.NoError(t, err)
	assert.Equal(t, []string{"channel", "network", "timeout"}, p.Params.Keys())

	_, err = l.LoadProfile(context.Background(), "missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestLoader_FromURLIsCached(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(profilesYAML))
	}))
	defer srv.Close()

	l := NewLoader(config.ProfileSettings{Source: srv.URL + "/profiles.yaml"}, logging.Discard())

	for _, name := range []string{"reminder", "voice", "reminder"} {
		_, err := l.LoadProfile(context.Background(), name)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), hits.Load())

	l.ClearCache()
	_, err := l.LoadProfile(context.Background(), "voice")
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestLoader_Errors(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	tests := []struct {
		name   string
		source string
	}{
		{"no source", ""},
		{"missing file", filepath.Join(t.TempDir(), "nope.yaml")},
		{"http not found", srv.URL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLoader(config.ProfileSettings{Source: tt.source}, logging.Discard())
			_, err := l.LoadProfile(context.Background(), "reminder")
			assert.Error(t, err)
		})
	}
}

func TestLoader_RejectsInvalidDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profiles:\n  bad:\n    params:\n      token: secret\n"), 0o600))

	l := NewLoader(config.ProfileSettings{Source: path}, logging.Discard())
	_, err := l.LoadProfile(context.Background(), "bad")

	assert.True(t, errors.Is(err, domain.ErrInvalidConfig))
}
