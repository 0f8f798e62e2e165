package tropo

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dwilkie/tropo-message/internal/config"
	"github.com/dwilkie/tropo-message/internal/ports"
)

// Client launches sessions through the platform's session API.
type Client struct {
	config     config.TropoConfig
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new session API client.
func NewClient(cfg config.TropoConfig, logger *slog.Logger) *Client {
	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// sessionResponse is the XML body returned by the session API:
//
//	<session><success>true</success><token>...</token><id>...</id></session>
type sessionResponse struct {
	XMLName xml.Name `xml:"session"`
	Success bool     `xml:"success"`
	Token   string   `xml:"token"`
	ID      string   `xml:"id"`
	Reason  string   `xml:"reason"`
}

// APIError represents a non-2xx answer from the session API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tropo api error (status %d): %s", e.StatusCode, e.Body)
}

// Temporary reports whether retrying the request may succeed.
func (e *APIError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// Dispatch posts requestXML, retrying transport failures and 5xx answers.
func (c *Client) Dispatch(ctx context.Context, requestXML string) (*ports.Launch, error) {
	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Warn("retrying session request", "attempt", attempt, "error", lastErr)
			select {
			case <-time.After(c.config.RetryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		launch, err := c.sendRequest(ctx, requestXML)
		if err == nil {
			return launch, nil
		}

		lastErr = err

		// Don't retry on client errors (4xx)
		var apiErr *APIError
		if errors.As(err, &apiErr) && !apiErr.Temporary() {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, err
		}
	}

	return nil, fmt.Errorf("failed after %d retries: %w", c.config.MaxRetries, lastErr)
}

func (c *Client) sendRequest(ctx context.Context, requestXML string) (*ports.Launch, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.SessionURL, strings.NewReader(requestXML))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/xml")
	req.Header.Set("Accept", "application/xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var session sessionResponse
	if err := xml.Unmarshal(respBody, &session); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	c.logger.Debug("session response", "session_id", session.ID, "success", session.Success)

	return &ports.Launch{
		SessionID: session.ID,
		Success:   session.Success,
		Reason:    session.Reason,
	}, nil
}
