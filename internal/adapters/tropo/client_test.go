package tropo

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwilkie/tropo-message/internal/config"
	"github.com/dwilkie/tropo-message/internal/logging"
)

const requestBody = `<sessions><token>t</token><var name="to" value="612382211234"/></sessions>`

func newTestClient(url string, retries int) *Client {
	return NewClient(config.TropoConfig{
		SessionURL: url,
		Timeout:    2 * time.Second,
		MaxRetries: retries,
		RetryDelay: time.Millisecond,
	}, logging.Discard())
}

func TestClient_Dispatch(t *testing.T) {
	var gotBody, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotType = r.Header.Get("Content-Type")
		w.Write([]byte(`<session><success>true</success><token>t</token><id>abc123</id></session>`))
	}))
	defer srv.Close()

	launch, err := newTestClient(srv.URL, 0).Dispatch(context.Background(), requestBody)
	require.NoError(t, err)

	assert.Equal(t, requestBody, gotBody)
	assert.Equal(t, "application/xml", gotType)
	assert.True(t, launch.Success)
	assert.Equal(t, "abc123", launch.SessionID)
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`<session><success>true</success><id>retry-ok</id></session>`))
	}))
	defer srv.Close()

	launch, err := newTestClient(srv.URL, 3).Dispatch(context.Background(), requestBody)
	require.NoError(t, err)

	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, "retry-ok", launch.SessionID)
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("bad token"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 3).Dispatch(context.Background(), requestBody)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "bad token", apiErr.Body)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 2).Dispatch(context.Background(), requestBody)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed after 2 retries")
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not xml`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 0).Dispatch(context.Background(), requestBody)
	assert.Error(t, err)
}
