package main

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/dwilkie/tropo-message/internal/codec"
	"github.com/dwilkie/tropo-message/internal/config"
	"github.com/dwilkie/tropo-message/internal/logging"
)

const (
	defaultPort        = "8081"
	defaultProfilesDir = "./profiles"
	profilesPrefix     = "/profiles/"
)

// Server is a stand-in for the platform's session API. It decodes posted
// session requests, logs them and answers with a launched session. It
// also serves profile documents from profilesDir under /profiles/ so a
// local webhook can point PROFILES_SOURCE at it.
type Server struct {
	profilesDir string
	logger      *slog.Logger
}

type sessionResponse struct {
	XMLName xml.Name `xml:"session"`
	Success bool     `xml:"success"`
	Token   string   `xml:"token"`
	ID      string   `xml:"id"`
	Reason  string   `xml:"reason,omitempty"`
}

func NewServer(profilesDir string, logger *slog.Logger) *Server {
	return &Server{
		profilesDir: profilesDir,
		logger:      logger,
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	s.logger.Info("incoming request",
		"method", r.Method,
		"path", r.URL.Path,
		"remote", r.RemoteAddr,
	)

	if r.URL.Path == "/health" {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
		return
	}

	if r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, profilesPrefix) {
		s.serveProfiles(w, strings.TrimPrefix(r.URL.Path, profilesPrefix))
		return
	}

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		s.logger.Warn("method not allowed",
			"method", r.Method,
			"path", r.URL.Path,
		)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		s.logger.Error("failed to read request body", "error", err)
		return
	}
	defer r.Body.Close()

	msg, err := codec.ParseRequestXML(body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		s.logger.Error("failed to parse session request", "error", err)
		return
	}

	token := msg.Token()
	if token == "" {
		s.writeSession(w, sessionResponse{Success: false, Reason: "missing token"})
		s.logger.Warn("session rejected", "reason", "missing token")
		return
	}

	s.logger.Info("mock session request",
		"to", msg.To(),
		"from", msg.From(),
		"channel", msg.Channel(),
		"network", msg.Network(),
	)
	if text := msg.Text(); text != "" {
		s.logger.Info("message content", "text", text)
	}
	msg.Params().Each(func(key, value string) {
		s.logger.Debug("session var", "name", key, "value", value)
	})

	sessionID := uuid.NewString()
	s.writeSession(w, sessionResponse{Success: true, Token: token, ID: sessionID})

	s.logger.Info("session launched",
		"session_id", sessionID,
		"to", msg.To(),
		"duration", time.Since(start),
	)
}

// serveProfiles writes a profile document after checking that it parses
// and validates.
func (s *Server) serveProfiles(w http.ResponseWriter, filename string) {
	if filename == "" || strings.Contains(filename, "..") {
		w.WriteHeader(http.StatusBadRequest)
		s.logger.Warn("invalid profile filename", "filename", filename)
		return
	}

	data, err := os.ReadFile(filepath.Join(s.profilesDir, filename))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			w.WriteHeader(http.StatusNotFound)
			s.logger.Warn("profile document not found", "filename", filename)
		} else {
			w.WriteHeader(http.StatusInternalServerError)
			s.logger.Error("failed to read profile document", "filename", filename, "error", err)
		}
		return
	}

	var set config.ProfileSet
	err = yaml.Unmarshal(data, &set)
	if err == nil {
		err = config.ValidateProfileSet(&set)
	}
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		s.logger.Error("invalid profile document", "filename", filename, "error", err)
		return
	}

	w.Header().Set("Content-Type", "application/x-yaml")
	w.WriteHeader(http.StatusOK)
	w.Write(data)

	s.logger.Info("profile document served",
		"filename", filename,
		"profiles", len(set.Profiles),
	)
}

func (s *Server) writeSession(w http.ResponseWriter, resp sessionResponse) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	if err := xml.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("failed to write response", "error", err)
	}
}

func main() {
	logger := logging.New(logging.DefaultConfig())

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	profilesDir := os.Getenv("PROFILES_DIR")
	if profilesDir == "" {
		profilesDir = defaultProfilesDir
	}

	server := NewServer(profilesDir, logger)

	addr := fmt.Sprintf(":%s", port)
	logger.Info("starting session API mock",
		"port", port,
		"endpoint", fmt.Sprintf("http://localhost:%s/1.0/sessions", port),
		"profiles_dir", profilesDir,
	)

	if err := http.ListenAndServe(addr, server); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}
