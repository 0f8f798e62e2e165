package profile

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dwilkie/tropo-message/internal/config"
	"github.com/dwilkie/tropo-message/internal/domain"
)

// Loader implements ports.ProfileLoader. The profile document is read from
// a local file or an http(s) URL once and cached.
type Loader struct {
	httpClient *http.Client
	source     string
	logger     *slog.Logger
	cache      *config.ProfileSet
	mu         sync.RWMutex
}

// NewLoader creates a new profile loader.
func NewLoader(cfg config.ProfileSettings, logger *slog.Logger) *Loader {
	return &Loader{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		source: cfg.Source,
		logger: logger,
	}
}

// LoadProfile returns the named profile.
func (l *Loader) LoadProfile(ctx context.Context, name string) (*config.Profile, error) {
	set, err := l.load(ctx)
	if err != nil {
		return nil, err
	}

	p := set.Find(name)
	if p == nil {
		return nil, &domain.ConfigError{ConfigName: "profiles", Field: name, Err: domain.ErrNotFound}
	}
	return p, nil
}

func (l *Loader) load(ctx context.Context) (*config.ProfileSet, error) {
	// Check cache with read lock
	l.mu.RLock()
	if l.cache != nil {
		cached := l.cache
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	// Acquire write lock for loading
	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if l.cache != nil {
		return l.cache, nil
	}

	if l.source == "" {
		return nil, &domain.ConfigError{ConfigName: "profiles", Err: fmt.Errorf("no profile source configured: %w", domain.ErrInvalidConfig)}
	}

	data, err := l.read(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profiles %s: %w", l.source, err)
	}

	var set config.ProfileSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parse profiles %s: %w", l.source, err)
	}

	if err := config.ValidateProfileSet(&set); err != nil {
		return nil, err
	}

	l.cache = &set
	l.logger.Debug("loaded profiles", "source", l.source, "count", len(set.Profiles))

	return &set, nil
}

func (l *Loader) read(ctx context.Context) ([]byte, error) {
	if !strings.HasPrefix(l.source, "http://") && !strings.HasPrefix(l.source, "https://") {
		return os.ReadFile(l.source)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch profiles: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			l.logger.Warn("failed to close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("profiles not found (status %d)", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// ClearCache drops the cached profile document.
func (l *Loader) ClearCache() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = nil
}
