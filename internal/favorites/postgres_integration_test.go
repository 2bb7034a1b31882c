//go:build integration

package favorites_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/donaldgifford/marketplace-client/internal/catalog"
	"github.com/donaldgifford/marketplace-client/internal/favorites"
	domain "github.com/donaldgifford/marketplace-client/pkg/types"
)

func setupPostgres(t *testing.T) *favorites.PostgresStore {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("mpc_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, pgContainer.Terminate(ctx))
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := favorites.NewPostgresStore(ctx, connStr, "alice", favorites.WithPoolSize(2))
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	require.NoError(t, s.Migrate(ctx))

	return s
}

func TestPostgresStore_Integration(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	t.Run("migrate is idempotent", func(t *testing.T) {
		require.NoError(t, s.Migrate(ctx))
		require.NoError(t, s.Ping(ctx))
	})

	t.Run("empty list", func(t *testing.T) {
		refs, err := s.Favorites(ctx)
		require.NoError(t, err)
		assert.Empty(t, refs)
	})

	t.Run("add and list in order", func(t *testing.T) {
		require.NoError(t, s.Add(ctx, domain.FavoriteRef{ID: "1", URL: "http://m/content/one"}))
		require.NoError(t, s.Add(ctx, domain.FavoriteRef{ID: "2"}))
		require.NoError(t, s.Add(ctx, domain.FavoriteRef{ID: "1"}))

		refs, err := s.Favorites(ctx)
		require.NoError(t, err)
		assert.Equal(t, []domain.FavoriteRef{
			{ID: "1", URL: "http://m/content/one"},
			{ID: "2"},
		}, refs)

		ids, err := s.FavoriteIDs(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]struct{}{"1": {}, "2": {}}, ids)
	})

	t.Run("lists are per user", func(t *testing.T) {
		bob := s.ForUser("bob")
		require.NoError(t, bob.Add(ctx, domain.FavoriteRef{ID: "9"}))

		refs, err := s.FavoritesByURI(ctx, "http://m/user/bob/favorites")
		require.NoError(t, err)
		assert.Equal(t, []domain.FavoriteRef{{ID: "9"}}, refs)

		_, err = s.FavoritesByURI(ctx, "http://m/content/x")
		assert.ErrorIs(t, err, catalog.ErrInvalidArgument)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, s.Remove(ctx, "1"))
		require.NoError(t, s.Remove(ctx, "missing"))

		refs, err := s.Favorites(ctx)
		require.NoError(t, err)
		assert.Equal(t, []domain.FavoriteRef{{ID: "2"}}, refs)
	})
}
