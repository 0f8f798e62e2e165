package config

import (
	"os"
	"strconv"
	"time"
)

// AppConfig holds application-level configuration.
type AppConfig struct {
	Server   ServerConfig
	Redis    RedisConfig
	Tropo    TropoConfig
	Token    TokenConfig
	Profiles ProfileSettings
}

// ServerConfig holds settings for the local webhook server.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxBodyBytes int64
}

// RedisConfig holds Redis connection settings for the session journal.
// An empty Addr disables the journal.
type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int
	MinIdleConns int
	SessionTTL   time.Duration
}

// TropoConfig holds settings for the session API.
type TropoConfig struct {
	SessionURL string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// TokenConfig says where the application token comes from. A SecretName
// takes precedence over a literal Token.
type TokenConfig struct {
	Token      string
	SecretName string
}

// ProfileSettings locates the outbound profile document, either a file
// path or an http(s) URL.
type ProfileSettings struct {
	Source string
}

// Enabled reports whether the session journal is configured.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// LoadFromEnv loads configuration from environment variables with sensible defaults.
func LoadFromEnv() (*AppConfig, error) {
	cfg := &AppConfig{
		Server: ServerConfig{
			Addr:         getEnvOrDefault("HTTP_ADDR", ":8080"),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			MaxBodyBytes: 1 << 20,
		},
		Redis: RedisConfig{
			Addr:         os.Getenv("REDIS_ADDR"),
			Password:     os.Getenv("REDIS_PASSWORD"),
			DB:           parseInt(os.Getenv("REDIS_DB"), 0),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			PoolSize:     10,
			MinIdleConns: 2,
			SessionTTL:   parseDuration(getEnvOrDefault("SESSION_TTL", "24h"), 24*time.Hour),
		},
		Tropo: TropoConfig{
			SessionURL: getEnvOrDefault("TROPO_SESSION_URL", "https://api.tropo.com/1.0/sessions"),
			Timeout:    parseDuration(getEnvOrDefault("TROPO_TIMEOUT", "10s"), 10*time.Second),
			MaxRetries: parseInt(getEnvOrDefault("TROPO_MAX_RETRIES", "3"), 3),
			RetryDelay: parseDuration(getEnvOrDefault("TROPO_RETRY_DELAY", "2s"), 2*time.Second),
		},
		Token: TokenConfig{
			Token:      os.Getenv("TROPO_TOKEN"),
			SecretName: os.Getenv("TROPO_TOKEN_SECRET"),
		},
		Profiles: ProfileSettings{
			Source: os.Getenv("PROFILES_SOURCE"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
