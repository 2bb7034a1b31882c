package favorites

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/donaldgifford/marketplace-client/pkg/logger"
	domain "github.com/donaldgifford/marketplace-client/pkg/types"
)

// listResponse is the JSON body of a favorites list.
type listResponse struct {
	User      string               `json:"user,omitempty"`
	Favorites []domain.FavoriteRef `json:"favorites"`
}

// RemoteProvider reads and edits a user's favorites on a remote favorites
// service. Requests carry a bearer token; 401 and 403 answers map to
// ErrNotAuthorized.
type RemoteProvider struct {
	baseURL    *url.URL
	user       string
	tokens     TokenProvider
	httpClient *http.Client
	log        *slog.Logger
}

// RemoteOption configures the RemoteProvider.
type RemoteOption func(*RemoteProvider)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) RemoteOption {
	return func(p *RemoteProvider) {
		p.httpClient = hc
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) RemoteOption {
	return func(p *RemoteProvider) {
		p.log = l
	}
}

// NewRemoteProvider creates a provider for user's favorites on the service
// rooted at baseURL.
func NewRemoteProvider(
	baseURL, user string,
	tokens TokenProvider,
	opts ...RemoteOption,
) (*RemoteProvider, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing favorites base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("favorites base URL %q must be absolute", baseURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	if user == "" {
		return nil, fmt.Errorf("favorites user is required")
	}

	p := &RemoteProvider{
		baseURL:    base,
		user:       user,
		tokens:     tokens,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        logger.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// URI returns the absolute uri of the configured user's favorites list.
func (p *RemoteProvider) URI() string {
	return p.resolve(ListPath(p.user))
}

// Favorites lists the configured user's favorites.
func (p *RemoteProvider) Favorites(ctx context.Context) ([]domain.FavoriteRef, error) {
	return p.FavoritesByURI(ctx, p.URI())
}

// FavoritesByURI lists the favorites at uri, which may be relative to the
// service root.
func (p *RemoteProvider) FavoritesByURI(ctx context.Context, uri string) ([]domain.FavoriteRef, error) {
	var resp listResponse
	if err := p.do(ctx, http.MethodGet, p.resolve(uri), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Favorites, nil
}

// FavoriteIDs returns the ids of the configured user's favorites.
func (p *RemoteProvider) FavoriteIDs(ctx context.Context) (map[string]struct{}, error) {
	refs, err := p.Favorites(ctx)
	if err != nil {
		return nil, err
	}
	return idSet(refs), nil
}

// Add marks ref as a favorite.
func (p *RemoteProvider) Add(ctx context.Context, ref domain.FavoriteRef) error {
	return p.do(ctx, http.MethodPut, p.itemURL(ref.ID), ref, nil)
}

// Remove drops the favorite with the given node id.
func (p *RemoteProvider) Remove(ctx context.Context, id string) error {
	return p.do(ctx, http.MethodDelete, p.itemURL(id), nil, nil)
}

func (p *RemoteProvider) itemURL(id string) string {
	return p.resolve(ListPath(p.user) + "/" + url.PathEscape(id))
}

func (p *RemoteProvider) resolve(ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return p.baseURL.ResolveReference(u).String()
}

func (p *RemoteProvider) do(ctx context.Context, method, target string, body, dst any) error {
	token, err := p.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("getting favorites token: %w", err)
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	p.log.Debug("favorites request", "method", method, "url", target)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		if inv, ok := p.tokens.(interface{ Invalidate() }); ok {
			inv.Invalidate()
		}
		return fmt.Errorf("%s %s: %w", method, target, ErrNotAuthorized)
	case resp.StatusCode >= http.StatusBadRequest:
		return fmt.Errorf("favorites error (HTTP %d): %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if dst != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, dst); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}
