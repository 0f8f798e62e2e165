package redis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Scanner lists journaled sessions.
type Scanner struct {
	client    *Client
	scanCount int64
	logger    *slog.Logger
}

// NewScanner creates a new Redis scanner.
func NewScanner(client *Client, scanCount int64, logger *slog.Logger) *Scanner {
	return &Scanner{
		client:    client,
		scanCount: scanCount,
		logger:    logger,
	}
}

// ScanSessionIDs returns the ids of all journaled sessions.
func (s *Scanner) ScanSessionIDs(ctx context.Context) ([]string, error) {
	var ids []string
	var cursor uint64
	prefix := strings.TrimSuffix(KeyPatternAll, "*")

	for {
		keys, nextCursor, err := s.client.Native().Scan(ctx, cursor, KeyPatternAll, s.scanCount).Result()
		if err != nil {
			return nil, fmt.Errorf("scan redis keys: %w", err)
		}

		for _, key := range keys {
			ids = append(ids, strings.TrimPrefix(key, prefix))
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	s.logger.Debug("scan completed", "pattern", KeyPatternAll, "count", len(ids))
	return ids, nil
}
