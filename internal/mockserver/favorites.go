package mockserver

import (
	"context"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/marketplace-client/internal/favorites"
	domain "github.com/donaldgifford/marketplace-client/pkg/types"
)

// handleToken implements the OAuth2 client credentials grant. With no
// clients configured any credentials are accepted.
func (s *Server) handleToken(c echo.Context) error {
	id, secret, ok := c.Request().BasicAuth()
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error":             "invalid_client",
			"error_description": "client authentication failed",
		})
	}
	if want, known := s.fixture.Clients[id]; len(s.fixture.Clients) > 0 && (!known || want != secret) {
		s.log.Warn("rejected token request", "client_id", id)
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error":             "invalid_client",
			"error_description": "unknown client or wrong secret",
		})
	}
	if c.FormValue("grant_type") != "client_credentials" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "unsupported_grant_type",
		})
	}

	token := uuid.NewString()
	s.mu.Lock()
	s.tokens[token] = time.Now().Add(tokenTTL)
	s.mu.Unlock()

	s.log.Info("issued mock token", "client_id", id)
	return c.JSON(http.StatusOK, map[string]any{
		"access_token": token,
		"expires_in":   int(tokenTTL.Seconds()),
		"token_type":   "Bearer",
	})
}

// requireToken rejects favorites requests without a live bearer token.
// Fixture tokens never expire.
func (s *Server) requireToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := strings.CutPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
		if !ok || token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
		}
		s.mu.Lock()
		expiry, known := s.tokens[token]
		s.mu.Unlock()
		if !known || (!expiry.IsZero() && time.Now().After(expiry)) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}
		return next(c)
	}
}

func (s *Server) handleFavoritesList(c echo.Context) error {
	user := param(c, "user")
	refs, err := s.backend(user).Favorites(c.Request().Context())
	if err != nil {
		return err
	}
	if refs == nil {
		refs = []domain.FavoriteRef{}
	}
	return c.JSON(http.StatusOK, map[string]any{"user": user, "favorites": refs})
}

func (s *Server) handleFavoritesAdd(c echo.Context) error {
	var ref domain.FavoriteRef
	if err := c.Bind(&ref); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	id := param(c, "id")
	if ref.ID == "" {
		ref.ID = id
	}
	if ref.ID != id {
		return echo.NewHTTPError(http.StatusBadRequest, "id does not match path")
	}
	if err := s.backend(param(c, "user")).Add(c.Request().Context(), ref); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleFavoritesRemove(c echo.Context) error {
	if err := s.backend(param(c, "user")).Remove(c.Request().Context(), param(c, "id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// memoryFavorites holds favorites lists in memory, seeded from a fixture.
type memoryFavorites struct {
	mu    sync.Mutex
	lists map[string][]domain.FavoriteRef
}

func newMemoryFavorites(f *Fixture) *memoryFavorites {
	m := &memoryFavorites{lists: map[string][]domain.FavoriteRef{}}
	for user, ids := range f.Favorites {
		for _, id := range ids {
			m.lists[user] = append(m.lists[user], domain.FavoriteRef{ID: id})
		}
	}
	return m
}

func (m *memoryFavorites) forUser(user string) favorites.Provider {
	return &memoryList{store: m, user: user}
}

// memoryList is one user's view of a memoryFavorites.
type memoryList struct {
	store *memoryFavorites
	user  string
}

func (l *memoryList) Favorites(context.Context) ([]domain.FavoriteRef, error) {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	return slices.Clone(l.store.lists[l.user]), nil
}

func (l *memoryList) FavoritesByURI(ctx context.Context, uri string) ([]domain.FavoriteRef, error) {
	user, err := favorites.UserFromURI(uri)
	if err != nil {
		return nil, err
	}
	return l.store.forUser(user).Favorites(ctx)
}

func (l *memoryList) FavoriteIDs(ctx context.Context) (map[string]struct{}, error) {
	refs, err := l.Favorites(ctx)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]struct{}, len(refs))
	for _, r := range refs {
		ids[r.ID] = struct{}{}
	}
	return ids, nil
}

func (l *memoryList) Add(_ context.Context, ref domain.FavoriteRef) error {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	list := l.store.lists[l.user]
	if slices.ContainsFunc(list, func(r domain.FavoriteRef) bool { return r.ID == ref.ID }) {
		return nil
	}
	l.store.lists[l.user] = append(list, ref)
	return nil
}

func (l *memoryList) Remove(_ context.Context, id string) error {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	l.store.lists[l.user] = slices.DeleteFunc(l.store.lists[l.user], func(r domain.FavoriteRef) bool {
		return r.ID == id
	})
	return nil
}
