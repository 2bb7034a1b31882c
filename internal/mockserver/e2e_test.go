package mockserver_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/marketplace-client/internal/catalog"
	"github.com/donaldgifford/marketplace-client/internal/favorites"
	"github.com/donaldgifford/marketplace-client/internal/meta"
	"github.com/donaldgifford/marketplace-client/internal/mockserver"
	"github.com/donaldgifford/marketplace-client/internal/transport"
	domain "github.com/donaldgifford/marketplace-client/pkg/types"
)

// newCatalog wires a real client stack against a fresh mock marketplace
// with remote favorites for alice.
func newCatalog(t *testing.T) (*catalog.Service, *mockserver.Server, string) {
	t.Helper()

	srv, ts := newServer(t)

	fetcher, err := transport.New(ts.URL, transport.WithHTTPClient(ts.Client()))
	require.NoError(t, err)

	tokens := favorites.NewOAuthTokenProvider(ts.URL+"/oauth/token", "mpc", "secret",
		favorites.WithOAuthHTTPClient(ts.Client()),
	)
	remote, err := favorites.NewRemoteProvider(ts.URL+"/api", "alice", tokens,
		favorites.WithHTTPClient(ts.Client()),
	)
	require.NoError(t, err)

	svc := catalog.New(fetcher,
		catalog.WithFavorites(remote),
		catalog.WithMeta(meta.Default("org.example.test", "1.0.0")),
	)
	return svc, srv, ts.URL
}

func TestCatalogAgainstMockServer(t *testing.T) {
	t.Parallel()

	svc, srv, base := newCatalog(t)
	ctx := context.Background()

	t.Run("category by id is re-fetched with nodes", func(t *testing.T) {
		cat, err := svc.Category(ctx, domain.Category{ID: "2"})
		require.NoError(t, err)
		assert.Equal(t, base+"/category/scm", cat.URL)
		assert.Equal(t, []string{"1140"}, nodeIDs(cat.Nodes))
	})

	t.Run("market by id", func(t *testing.T) {
		m, err := svc.Market(ctx, domain.Market{ID: "38"})
		require.NoError(t, err)
		assert.Equal(t, "Themes", m.Name)

		_, err = svc.Market(ctx, domain.Market{ID: "99"})
		assert.ErrorIs(t, err, catalog.ErrNotFound)
	})

	t.Run("node by id and by url agree", func(t *testing.T) {
		byID, err := svc.Node(ctx, domain.Node{ID: "1139"})
		require.NoError(t, err)
		byURL, err := svc.Node(ctx, domain.Node{URL: base + "/content/mylyn"})
		require.NoError(t, err)
		assert.Equal(t, byID, byURL)
		assert.True(t, byID.Installable())

		_, err = svc.Node(ctx, domain.Node{ID: "404"})
		assert.ErrorIs(t, err, catalog.ErrNotFound)
		assert.ErrorIs(t, err, catalog.ErrRetrievalFailure)
	})

	t.Run("search scoped to market and category", func(t *testing.T) {
		res, err := svc.Search(ctx, &domain.Market{ID: "31"}, &domain.Category{ID: "2"}, "git")
		require.NoError(t, err)
		assert.Equal(t, 1, res.MatchCount)
		assert.Equal(t, []string{"1140"}, nodeIDs(res.Nodes))
	})

	t.Run("taxonomy browse without query", func(t *testing.T) {
		res, err := svc.Search(ctx, &domain.Market{ID: "31"}, &domain.Category{ID: "1"}, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"1139", "1142"}, nodeIDs(res.Nodes))
	})

	t.Run("unknown filter is an unsupported query", func(t *testing.T) {
		_, err := svc.Search(ctx, &domain.Market{ID: "999"}, nil, "git")
		var qe *catalog.QueryError
		require.ErrorAs(t, err, &qe)
		assert.Equal(t, "git", qe.Query)
		assert.ErrorIs(t, err, catalog.ErrUnsupportedQuery)
	})

	t.Run("listings", func(t *testing.T) {
		featured, err := svc.Featured(ctx, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"1139", "1141"}, nodeIDs(featured.Nodes))

		related, err := svc.Related(ctx, []domain.Node{{ID: "1139"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"1140"}, nodeIDs(related.Nodes))

		tagged, err := svc.Tagged(ctx, "theme")
		require.NoError(t, err)
		assert.Equal(t, []string{"1141"}, nodeIDs(tagged.Nodes))

		news, err := svc.News(ctx)
		require.NoError(t, err)
		require.NotNil(t, news)
		assert.Equal(t, time.Unix(1700000000, 0).UTC(), news.Timestamp)
	})

	t.Run("user favorites drop non-installable nodes", func(t *testing.T) {
		res, err := svc.UserFavorites(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"1139", "1140"}, nodeIDs(res.Nodes))
		for _, n := range res.Nodes {
			assert.Equal(t, domain.FavoriteYes, n.Favorited)
		}
	})

	t.Run("favorites by uri keep everything, installable first", func(t *testing.T) {
		res, err := svc.UserFavoritesByURI(ctx, base+"/api/user/alice/favorites")
		require.NoError(t, err)
		assert.Equal(t, []string{"1139", "1140", "1142"}, nodeIDs(res.Nodes))
	})

	t.Run("mark favorites", func(t *testing.T) {
		marked, err := svc.MarkFavorites(ctx, []domain.Node{{ID: "1139"}, {ID: "1141"}})
		require.NoError(t, err)
		require.Len(t, marked, 2)
		assert.Equal(t, domain.FavoriteYes, marked[0].Favorited)
		assert.Equal(t, domain.FavoriteNo, marked[1].Favorited)
	})

	t.Run("install reports reach the server", func(t *testing.T) {
		node, err := svc.Node(ctx, domain.Node{ID: "1140"})
		require.NoError(t, err)

		svc.ReportInstallSuccess(ctx, node)
		svc.ReportInstallError(ctx,
			domain.InstallStatus{Severity: domain.SeverityError, Message: "failed"},
			[]domain.Node{node, node},
			[]string{"org.b", "org.a", "org.b"},
			"stack trace",
		)

		assert.Equal(t, []string{"1140"}, srv.Successes())
		reports := srv.ErrorReports()
		require.Len(t, reports, 1)
		assert.Equal(t, "4", reports[0].Get("status"))
		assert.Equal(t, []string{"1140"}, reports[0]["node"])
		assert.Equal(t, []string{"org.a", "org.b"}, reports[0]["iu"])
		assert.Equal(t, "org.example.test", reports[0].Get(meta.ParamClient))
	})
}

func TestCatalogAgainstMockServer_RejectedCredentials(t *testing.T) {
	t.Parallel()

	_, ts := newServer(t)

	fetcher, err := transport.New(ts.URL, transport.WithHTTPClient(ts.Client()))
	require.NoError(t, err)
	remote, err := favorites.NewRemoteProvider(ts.URL+"/api", "alice", favorites.StaticToken("forged"),
		favorites.WithHTTPClient(ts.Client()),
	)
	require.NoError(t, err)
	svc := catalog.New(fetcher, catalog.WithFavorites(remote))

	_, err = svc.UserFavorites(context.Background())
	require.ErrorIs(t, err, catalog.ErrNotAuthorized)
	assert.NotErrorIs(t, err, catalog.ErrRetrievalFailure)

	marked, err := svc.MarkFavorites(context.Background(), []domain.Node{{ID: "1139"}})
	require.ErrorIs(t, err, catalog.ErrNotAuthorized)
	require.Len(t, marked, 1)
	assert.Equal(t, domain.FavoriteUnknown, marked[0].Favorited)
}

func TestCachingServiceAgainstMockServer(t *testing.T) {
	t.Parallel()

	svc, _, _ := newCatalog(t)
	cached := catalog.NewCachingService(svc, 32, time.Minute)
	ctx := context.Background()

	first, err := cached.Node(ctx, domain.Node{ID: "1141"})
	require.NoError(t, err)
	second, err := cached.Node(ctx, domain.Node{URL: first.URL})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	res, err := cached.UserFavorites(ctx)
	require.NoError(t, err)
	assert.Len(t, res.Nodes, 2)
}
