package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dwilkie/tropo-message/internal/adapters/profile"
	"github.com/dwilkie/tropo-message/internal/adapters/tropo"
	"github.com/dwilkie/tropo-message/internal/codec"
	"github.com/dwilkie/tropo-message/internal/config"
	"github.com/dwilkie/tropo-message/internal/domain"
	"github.com/dwilkie/tropo-message/internal/logging"
)

func newClient(url string) *tropo.Client {
	return tropo.NewClient(config.TropoConfig{
		SessionURL: url,
		Timeout:    5 * time.Second,
		MaxRetries: 0,
	}, logging.Discard())
}

func TestServer_LaunchesSession(t *testing.T) {
	srv := httptest.NewServer(NewServer(t.TempDir(), logging.Discard()))
	defer srv.Close()

	msg := domain.NewMessage()
	msg.SetToken("23932349191932432")
	msg.SetTo("+85512345678")
	msg.SetText("<hello/>+$#%")

	launch, err := newClient(srv.URL+"/1.0/sessions").Dispatch(context.Background(), codec.RequestXML(msg))
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if !launch.Success {
		t.Errorf("Success = false, reason %q", launch.Reason)
	}
	if launch.SessionID == "" {
		t.Error("expected a session id")
	}
}

func TestServer_RejectsMissingToken(t *testing.T) {
	srv := httptest.NewServer(NewServer(t.TempDir(), logging.Discard()))
	defer srv.Close()

	msg := domain.NewMessage()
	msg.SetTo("1")

	launch, err := newClient(srv.URL).Dispatch(context.Background(), codec.RequestXML(msg))
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if launch.Success {
		t.Error("expected session without token to be rejected")
	}
	if launch.Reason != "missing token" {
		t.Errorf("Reason = %q", launch.Reason)
	}
}

func TestServer_BadRequests(t *testing.T) {
	srv := httptest.NewServer(NewServer(t.TempDir(), logging.Discard()))
	defer srv.Close()

	resp, err := http.Post(srv.URL, "application/xml", strings.NewReader("<sessions>"))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/1.0/sessions")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

func TestServer_ServesProfiles(t *testing.T) {
	dir := t.TempDir()
	doc := "profiles:\n  reminder:\n    description: Appointment reminder\n    params:\n      from: \"1000\"\n      channel: TEXT\n"
	if err := os.WriteFile(filepath.Join(dir, "profiles.yaml"), []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("profiles:\n  leaky:\n    params:\n      token: abc\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(NewServer(dir, logging.Discard()))
	defer srv.Close()

	loader := profile.NewLoader(config.ProfileSettings{Source: srv.URL + "/profiles/profiles.yaml"}, logging.Discard())
	p, err := loader.LoadProfile(context.Background(), "reminder")
	if err != nil {
		t.Fatalf("LoadProfile() error = %v", err)
	}
	if got, _ := p.Params.Get("from"); got != "1000" {
		t.Errorf("from = %q, want 1000", got)
	}

	if err := os.WriteFile(filepath.Join(dir, "empty.yaml"), []byte("profiles: {}\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "garbled.yaml"), []byte("profiles: [\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	for path, want := range map[string]int{
		"/profiles/broken.yaml":  http.StatusUnprocessableEntity,
		"/profiles/empty.yaml":   http.StatusUnprocessableEntity,
		"/profiles/garbled.yaml": http.StatusUnprocessableEntity,
		"/profiles/missing.yaml": http.StatusNotFound,
	} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != want {
			t.Errorf("GET %s status = %d, want %d", path, resp.StatusCode, want)
		}
	}
}
