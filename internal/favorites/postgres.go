package favorites

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/donaldgifford/marketplace-client/pkg/types"
)

const defaultPoolSize = 4

// PostgresStore keeps favorites lists in PostgreSQL, one list per user name.
// It serves offline setups and the mock server.
type PostgresStore struct {
	pool *pgxpool.Pool
	user string
}

// StoreOption configures a PostgresStore.
type StoreOption func(*pgxpool.Config)

// WithPoolSize caps the number of pooled connections.
func WithPoolSize(n int32) StoreOption {
	return func(cfg *pgxpool.Config) {
		if n > 0 {
			cfg.MaxConns = n
		}
	}
}

// NewPostgresStore connects to connString and serves user's favorites.
func NewPostgresStore(ctx context.Context, connString, user string, opts ...StoreOption) (*PostgresStore, error) {
	if user == "" {
		return nil, fmt.Errorf("favorites user is required")
	}

	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}
	cfg.MaxConns = defaultPoolSize
	for _, opt := range opts {
		opt(cfg)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool, user: user}, nil
}

// Close shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// ForUser returns a store sharing the pool that serves another user's list.
func (s *PostgresStore) ForUser(user string) *PostgresStore {
	return &PostgresStore{pool: s.pool, user: user}
}

// Favorites lists the store user's favorites in insertion order.
func (s *PostgresStore) Favorites(ctx context.Context) ([]domain.FavoriteRef, error) {
	return s.list(ctx, s.user)
}

// FavoritesByURI lists the favorites of the user named in uri.
func (s *PostgresStore) FavoritesByURI(ctx context.Context, uri string) ([]domain.FavoriteRef, error) {
	user, err := UserFromURI(uri)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, user)
}

// FavoriteIDs returns the ids of the store user's favorites.
func (s *PostgresStore) FavoriteIDs(ctx context.Context) (map[string]struct{}, error) {
	refs, err := s.list(ctx, s.user)
	if err != nil {
		return nil, err
	}
	return idSet(refs), nil
}

// Add stores ref. Adding an existing id only refreshes its url.
func (s *PostgresStore) Add(ctx context.Context, ref domain.FavoriteRef) error {
	if ref.ID == "" {
		return fmt.Errorf("favorite id is required")
	}
	_, err := s.pool.Exec(ctx, queryAddFavorite, pgx.NamedArgs{
		"user_name": s.user,
		"node_id":   ref.ID,
		"node_url":  ref.URL,
	})
	if err != nil {
		return fmt.Errorf("adding favorite %s: %w", ref.ID, err)
	}
	return nil
}

// Remove deletes the favorite with the given id. Removing a missing id is
// not an error.
func (s *PostgresStore) Remove(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, queryRemoveFavorite, pgx.NamedArgs{
		"user_name": s.user,
		"node_id":   id,
	})
	if err != nil {
		return fmt.Errorf("removing favorite %s: %w", id, err)
	}
	return nil
}

func (s *PostgresStore) list(ctx context.Context, user string) ([]domain.FavoriteRef, error) {
	rows, err := s.pool.Query(ctx, queryListFavorites, pgx.NamedArgs{"user_name": user})
	if err != nil {
		return nil, fmt.Errorf("listing favorites: %w", err)
	}
	refs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.FavoriteRef, error) {
		var r domain.FavoriteRef
		err := row.Scan(&r.ID, &r.URL)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning favorites: %w", err)
	}
	return refs, nil
}
