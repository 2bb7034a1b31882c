package transport_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/marketplace-client/internal/transport"
)

const marketsXML = `<?xml version="1.0" encoding="UTF-8"?>
<marketplace>
  <market id="31" name="Tools" url="http://marketplace.example/category/markets/tools">
    <category id="38" name="Build and Deploy" url="http://marketplace.example/category/categories/build-and-deploy" count="7"/>
    <category id="39" name="Editor" url="http://marketplace.example/category/categories/editor"/>
  </market>
</marketplace>`

func newClient(t *testing.T, srv *httptest.Server, opts ...transport.Option) *transport.Client {
	t.Helper()
	c, err := transport.New(srv.URL, opts...)
	require.NoError(t, err)
	return c
}

func TestClient_Fetch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		ref        string
		handler    http.HandlerFunc
		wantErr    error
		errContain string
	}{
		{
			name: "decodes markets",
			ref:  "api/p",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/p", r.URL.Path)
				assert.Equal(t, "application/xml", r.Header.Get("Accept"))
				w.Header().Set("Content-Type", "application/xml")
				_, _ = w.Write([]byte(marketsXML))
			},
		},
		{
			name: "keeps pre-encoded query",
			ref:  "api/p/search/apachesolr_search/Wiki%20Text?filters=tid:31%20tid:38",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/p/search/apachesolr_search/Wiki%20Text", r.URL.EscapedPath())
				assert.Equal(t, "filters=tid:31%20tid:38", r.URL.RawQuery)
				_, _ = w.Write([]byte(`<marketplace><search count="0"/></marketplace>`))
			},
		},
		{
			name: "404 maps to ErrNotFound",
			ref:  "news/api/p",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			wantErr: transport.ErrNotFound,
		},
		{
			name: "500 is a status error",
			ref:  "recent/api/p",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte("boom"))
			},
			errContain: "status 500",
		},
		{
			name: "invalid XML",
			ref:  "recent/api/p",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("<html>not a marketplace"))
			},
			errContain: "parsing catalog response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			doc, err := newClient(t, srv).Fetch(context.Background(), tt.ref)

			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.errContain != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContain)
			default:
				require.NoError(t, err)
				require.NotNil(t, doc)
			}
		})
	}
}

func TestClient_Fetch_Document(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(marketsXML))
	}))
	defer srv.Close()

	doc, err := newClient(t, srv).Fetch(context.Background(), "api/p")
	require.NoError(t, err)

	require.Len(t, doc.Markets, 1)
	assert.Equal(t, "31", doc.Markets[0].ID)
	require.Len(t, doc.Markets[0].Categories, 2)
	assert.Equal(t, "38", doc.Markets[0].Categories[0].ID)
	assert.Equal(t, 7, doc.Markets[0].Categories[0].Count)
	assert.Nil(t, doc.Search)
}

func TestClient_Fetch_StatusError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(" upstream down \n"))
	}))
	defer srv.Close()

	_, err := newClient(t, srv).Fetch(context.Background(), "featured/api/p")

	var se *transport.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.Code)
	assert.Equal(t, "upstream down", se.Body)
	assert.NotErrorIs(t, err, transport.ErrNotFound)
}

func TestClient_Fetch_Canceled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(marketsXML))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newClient(t, srv).Fetch(ctx, "api/p")
	require.ErrorIs(t, err, context.Canceled)
}

func TestClient_Fetch_RateLimited(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(marketsXML))
	}))
	defer srv.Close()

	c := newClient(t, srv, transport.WithRateLimiter(transport.NewRateLimiter(100, 10, 1)))

	_, err := c.Fetch(context.Background(), "api/p")
	require.NoError(t, err)

	_, err = c.Fetch(context.Background(), "api/p")
	require.ErrorIs(t, err, transport.ErrDailyLimitReached)
	assert.Contains(t, err.Error(), "rate limit:")
}

func TestClient_Stream(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/content/mylyn/success", r.URL.Path)
		assert.Equal(t, "mpc", r.URL.Query().Get("client"))
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := newClient(t, srv)
	body, err := c.Stream(context.Background(), srv.URL+"/content/mylyn/success?client=mpc")
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(data))
}

func TestClient_PostForm(t *testing.T) {
	t.Parallel()

	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/install/error/report", r.URL.Path)
		assert.Contains(t, r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
		assert.NoError(t, r.ParseForm())
		got = r.PostForm
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	form := url.Values{"status": {"4"}, "node": {"1", "2"}}
	require.NoError(t, newClient(t, srv).PostForm(context.Background(), "install/error/report", form))

	assert.Equal(t, "4", got.Get("status"))
	assert.Equal(t, []string{"1", "2"}, got["node"])
}

func TestClient_UserAgent(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "mpc-test/1.0", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(marketsXML))
	}))
	defer srv.Close()

	_, err := newClient(t, srv, transport.WithUserAgent("mpc-test/1.0")).Fetch(context.Background(), "api/p")
	require.NoError(t, err)
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		baseURL  string
		wantBase string
		wantErr  bool
	}{
		{name: "default", baseURL: "", wantBase: "http://marketplace.eclipse.org/"},
		{name: "adds trailing slash", baseURL: "https://marketplace.example/mpc", wantBase: "https://marketplace.example/mpc/"},
		{name: "keeps trailing slash", baseURL: "https://marketplace.example/", wantBase: "https://marketplace.example/"},
		{name: "relative rejected", baseURL: "marketplace.example", wantErr: true},
		{name: "unparseable", baseURL: "http://[::1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := transport.New(tt.baseURL)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBase, c.BaseURL())
		})
	}
}

func TestClient_Resolve(t *testing.T) {
	t.Parallel()

	c, err := transport.New("https://marketplace.example/mpc")
	require.NoError(t, err)

	got, err := c.Resolve("node/123/api/p")
	require.NoError(t, err)
	assert.Equal(t, "https://marketplace.example/mpc/node/123/api/p", got)

	got, err = c.Resolve("https://other.example/content/x/api/p")
	require.NoError(t, err)
	assert.Equal(t, "https://other.example/content/x/api/p", got)
}

func TestStatusError_Error(t *testing.T) {
	t.Parallel()

	err := error(&transport.StatusError{URL: "http://x/api/p", Code: 503, Body: "maintenance"})
	assert.Equal(t, "marketplace error (status 503) for http://x/api/p: maintenance", err.Error())
	assert.False(t, errors.Is(err, transport.ErrNotFound))
}
