package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/marketplace-client/internal/catalog"
	"github.com/donaldgifford/marketplace-client/internal/config"
	"github.com/donaldgifford/marketplace-client/internal/favorites"
	"github.com/donaldgifford/marketplace-client/internal/meta"
	"github.com/donaldgifford/marketplace-client/internal/transport"
	"github.com/donaldgifford/marketplace-client/pkg/logger"
)

// client bundles the catalog with the favorites backend it was built with.
type client struct {
	catalog   catalog.Catalog
	favorites favorites.Provider
	log       *slog.Logger
	closers   []func()
}

func (c *client) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// newClient loads the configuration and builds the client for a command.
func newClient(cmd *cobra.Command) (*client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return buildClient(cmd.Context(), cfg)
}

func buildClient(ctx context.Context, cfg *config.Config) (*client, error) {
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	limiter := transport.NewRateLimiter(
		cfg.Catalog.RateLimit.PerSecond,
		cfg.Catalog.RateLimit.Burst,
		cfg.Catalog.RateLimit.DailyLimit,
	)
	opts := []transport.Option{
		transport.WithHTTPClient(&http.Client{Timeout: cfg.Catalog.Timeout}),
		transport.WithRateLimiter(limiter),
		transport.WithLogger(log),
	}
	if cfg.Catalog.UserAgent != "" {
		opts = append(opts, transport.WithUserAgent(cfg.Catalog.UserAgent))
	}
	fetcher, err := transport.New(cfg.Catalog.BaseURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating catalog transport: %w", err)
	}

	c := &client{log: log}

	fav, closeFav, err := buildFavorites(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	if closeFav != nil {
		c.closers = append(c.closers, closeFav)
	}
	c.favorites = fav

	svcOpts := []catalog.Option{
		catalog.WithLogger(log),
		catalog.WithMeta(metaParams(&cfg.Meta)),
	}
	if fav != nil {
		svcOpts = append(svcOpts, catalog.WithFavorites(fav))
	}
	svc := catalog.New(fetcher, svcOpts...)

	c.catalog = svc
	if cfg.Cache.Enabled {
		cached := catalog.NewCachingService(svc, cfg.Cache.Size, cfg.Cache.TTL)
		c.catalog = cached
		c.closers = append(c.closers, cached.Purge)
	}
	return c, nil
}

func buildFavorites(
	ctx context.Context,
	cfg *config.Config,
	log *slog.Logger,
) (favorites.Provider, func(), error) {
	f := &cfg.Favorites
	switch f.Backend {
	case config.FavoritesRemote:
		var tokens favorites.TokenProvider = favorites.StaticToken(f.Remote.Token)
		if f.Remote.Token == "" {
			tokens = favorites.NewOAuthTokenProvider(
				f.Remote.TokenURL, f.Remote.ClientID, f.Remote.ClientSecret,
				favorites.WithScope(f.Remote.Scope),
			)
		}
		p, err := favorites.NewRemoteProvider(f.Remote.BaseURL, f.User, tokens,
			favorites.WithHTTPClient(&http.Client{Timeout: cfg.Catalog.Timeout}),
			favorites.WithLogger(log),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("creating favorites client: %w", err)
		}
		return p, nil, nil

	case config.FavoritesPostgres:
		s, err := favorites.NewPostgresStore(ctx, f.Postgres.DSN(), f.User,
			favorites.WithPoolSize(int32(f.Postgres.PoolSize)), //nolint:gosec // small config value
		)
		if err != nil {
			return nil, nil, fmt.Errorf("opening favorites store: %w", err)
		}
		return s, s.Close, nil

	default:
		return nil, nil, nil
	}
}

// metaParams describes this client to the marketplace.
func metaParams(m *config.MetaConfig) meta.Provider {
	version := m.ClientVersion
	if version == "" {
		version = Version
	}
	extra := map[string]string{}
	if m.Product != "" {
		extra[meta.ParamProduct] = m.Product
	}
	if m.ProductVersion != "" {
		extra[meta.ParamProductVersion] = m.ProductVersion
	}
	maps.Copy(extra, m.Extra)
	return meta.Merge(meta.Default(m.Client, version), extra)
}
