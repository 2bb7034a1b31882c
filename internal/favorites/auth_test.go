package favorites_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/marketplace-client/internal/catalog"
	"github.com/donaldgifford/marketplace-client/internal/favorites"
)

func tokenJSON(token string, expiresIn int) []byte {
	return []byte(fmt.Sprintf(
		`{"access_token":%q,"expires_in":%d,"token_type":"Bearer"}`,
		token, expiresIn,
	))
}

func TestStaticToken(t *testing.T) {
	t.Parallel()

	tok, err := favorites.StaticToken("abc").Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	_, err = favorites.StaticToken("").Token(context.Background())
	assert.ErrorIs(t, err, catalog.ErrNotAuthorized)
}

func TestOAuthTokenProvider_Token(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantToken  string
		wantAuth   bool
		errContain string
	}{
		{
			name: "successful token fetch",
			handler: func(w http.ResponseWriter, r *http.Request) {
				user, pass, ok := r.BasicAuth()
				assert.True(t, ok)
				assert.Equal(t, "client", user)
				assert.Equal(t, "secret", pass)
				assert.Equal(t, "client_credentials", r.FormValue("grant_type"))
				assert.Equal(t, "favorites", r.FormValue("scope"))
				_, _ = w.Write(tokenJSON("tok-1", 3600))
			},
			wantToken: "tok-1",
		},
		{
			name: "rejected credentials",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"invalid_client","error_description":"bad secret"}`))
			},
			wantAuth:   true,
			errContain: "status 401",
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			errContain: "status 500",
		},
		{
			name: "invalid JSON",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("not json"))
			},
			errContain: "parsing token response",
		},
		{
			name: "missing access token",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"expires_in":60}`))
			},
			errContain: "no access_token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			p := favorites.NewOAuthTokenProvider(srv.URL, "client", "secret",
				favorites.WithScope("favorites"),
			)
			tok, err := p.Token(context.Background())
			if tt.errContain != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContain)
				assert.Equal(t, tt.wantAuth, errors.Is(err, catalog.ErrNotAuthorized))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, tok)
		})
	}
}

func TestOAuthTokenProvider_CachesAndRefreshes(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		n := calls.Add(1)
		_, _ = w.Write(tokenJSON(fmt.Sprintf("tok-%d", n), 3600))
	}))
	defer srv.Close()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var clock atomic.Pointer[time.Time]
	clock.Store(&now)

	p := favorites.NewOAuthTokenProvider(srv.URL, "c", "s",
		favorites.WithNowFunc(func() time.Time { return *clock.Load() }),
	)
	ctx := context.Background()

	tok, err := p.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)

	tok, err = p.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok, "cached token reused")

	later := now.Add(3590 * time.Second)
	clock.Store(&later)
	tok, err = p.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", tok, "refreshed inside the expiry buffer")

	p.Invalidate()
	tok, err = p.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-3", tok)
	assert.Equal(t, int32(3), calls.Load())
}
