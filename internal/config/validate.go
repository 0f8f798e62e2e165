package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/dwilkie/tropo-message/internal/domain"
)

// Validate validates the application configuration.
func (c *AppConfig) Validate() error {
	var errs []error

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server address is required"))
	}

	if c.Server.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("server max body bytes must be positive"))
	}

	if c.Redis.Enabled() {
		if c.Redis.DialTimeout <= 0 {
			errs = append(errs, errors.New("redis dial timeout must be positive"))
		}
		if c.Redis.SessionTTL <= 0 {
			errs = append(errs, errors.New("redis session TTL must be positive"))
		}
	}

	if u, err := url.Parse(c.Tropo.SessionURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("tropo session url %q is not an absolute URL", c.Tropo.SessionURL))
	}

	if c.Tropo.Timeout <= 0 {
		errs = append(errs, errors.New("tropo timeout must be positive"))
	}

	if c.Tropo.MaxRetries < 0 {
		errs = append(errs, errors.New("tropo max retries must not be negative"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %w", errors.Join(errs...))
	}

	return nil
}

// ValidateProfileSet validates an outbound profile document.
func ValidateProfileSet(set *ProfileSet) error {
	var errs []error

	if len(set.Profiles) == 0 {
		errs = append(errs, errors.New("profiles must not be empty"))
	}

	for name, profile := range set.Profiles {
		if name == "" {
			errs = append(errs, errors.New("profile name is required"))
		}
		if profile.Params.Has(string(domain.FieldToken)) {
			errs = append(errs, fmt.Errorf("profiles.%s.params must not contain a token", name))
		}
		for _, key := range profile.Params.Keys() {
			if key == "" {
				errs = append(errs, fmt.Errorf("profiles.%s.params has an empty key", name))
			}
		}
	}

	if len(errs) > 0 {
		return &domain.ConfigError{
			ConfigName: "profiles",
			Err:        fmt.Errorf("%w: %w", domain.ErrInvalidConfig, errors.Join(errs...)),
		}
	}

	return nil
}
