package ports

import (
	"context"

	"github.com/dwilkie/tropo-message/internal/config"
)

// ProfileLoader loads outbound message profiles.
type ProfileLoader interface {
	// LoadProfile loads a profile by name. Returns domain.ErrNotFound for
	// unknown names.
	LoadProfile(ctx context.Context, name string) (*config.Profile, error)
}
