package app

import (
	"context"
	"log/slog"

	"github.com/dwilkie/tropo-message/internal/adapters/profile"
	"github.com/dwilkie/tropo-message/internal/adapters/redis"
	"github.com/dwilkie/tropo-message/internal/adapters/secrets"
	"github.com/dwilkie/tropo-message/internal/adapters/tropo"
	"github.com/dwilkie/tropo-message/internal/config"
	"github.com/dwilkie/tropo-message/internal/handler"
	"github.com/dwilkie/tropo-message/internal/logging"
	"github.com/dwilkie/tropo-message/internal/ports"
	"github.com/dwilkie/tropo-message/internal/service"
)

// App is the main application container.
type App struct {
	cfg      *config.AppConfig
	logger   *slog.Logger
	redis    *redis.Client
	Receiver *service.Receiver
	Sender   *service.Sender
	API      *handler.API
}

// Options configures the App. Zero-valued ports are built from Config.
type Options struct {
	Config     *config.AppConfig
	Logger     *slog.Logger
	Store      ports.SessionStore
	Tokens     ports.TokenProvider
	Profiles   ports.ProfileLoader
	Dispatcher ports.Dispatcher
}

// New creates a new App with all dependencies injected. Ports left nil in
// opts are built from the configuration: the Redis journal when REDIS_ADDR
// is set, Secrets Manager or a static token, the profile document and the
// platform client.
func New(ctx context.Context, opts Options) (*App, error) {
	cfg := opts.Config
	logger := opts.Logger
	a := &App{cfg: cfg, logger: logger}

	store := opts.Store
	if store == nil && cfg.Redis.Enabled() {
		client, err := redis.NewClient(cfg.Redis)
		if err != nil {
			return nil, err
		}
		a.redis = client
		store = redis.NewSessionStore(client, cfg.Redis.SessionTTL)
		logger.Info("connected to redis", "addr", cfg.Redis.Addr)
	}

	tokens := opts.Tokens
	if tokens == nil {
		switch {
		case cfg.Token.SecretName != "":
			provider, err := secrets.NewProvider(ctx, cfg.Token.SecretName)
			if err != nil {
				a.Close()
				return nil, err
			}
			tokens = provider
		case cfg.Token.Token != "":
			tokens = secrets.Static(cfg.Token.Token)
		}
	}

	profiles := opts.Profiles
	if profiles == nil && cfg.Profiles.Source != "" {
		profiles = profile.NewLoader(cfg.Profiles, logging.WithComponent(logger, "profiles"))
	}

	dispatcher := opts.Dispatcher
	if dispatcher == nil {
		dispatcher = tropo.NewClient(cfg.Tropo, logging.WithComponent(logger, "tropo"))
	}

	a.Receiver = service.NewReceiver(store, logging.WithComponent(logger, "receiver"))
	a.Sender = service.NewSender(profiles, tokens, dispatcher, logging.WithComponent(logger, "sender"))
	a.API = handler.NewAPI(a.Receiver, logging.WithComponent(logger, "api"))

	return a, nil
}

// Redis returns the journal client, or nil when the journal is disabled.
func (a *App) Redis() *redis.Client {
	return a.redis
}

// Close releases the Redis connection, if any.
func (a *App) Close() error {
	if a.redis == nil {
		return nil
	}
	return a.redis.Close()
}
