package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Tokens are renewed this long before they expire.
const refreshBuffer = 60 * time.Second

// TokenProvider supplies bearer tokens for the favorites service.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a fixed bearer token, typically a personal access token
// taken from the config or environment.
type StaticToken string

// Token implements TokenProvider.
func (t StaticToken) Token(context.Context) (string, error) {
	if t == "" {
		return "", fmt.Errorf("%w: no token configured", ErrNotAuthorized)
	}
	return string(t), nil
}

// grant is an issued access token.
type grant struct {
	value  string
	expiry time.Time
}

func (g grant) usableAt(now time.Time) bool {
	return g.value != "" && now.Before(g.expiry.Add(-refreshBuffer))
}

// OAuthTokenProvider obtains favorites tokens with the OAuth2 client
// credentials grant and reuses each token until it is about to expire or
// the service rejects it. Safe for concurrent use.
type OAuthTokenProvider struct {
	endpoint string
	clientID string
	secret   string
	scope    string
	client   *http.Client
	now      func() time.Time

	mu      sync.Mutex
	current grant
}

// OAuthOption configures the OAuthTokenProvider.
type OAuthOption func(*OAuthTokenProvider)

// WithOAuthHTTPClient overrides the default HTTP client.
func WithOAuthHTTPClient(c *http.Client) OAuthOption {
	return func(p *OAuthTokenProvider) {
		p.client = c
	}
}

// WithScope sets the requested scope.
func WithScope(scope string) OAuthOption {
	return func(p *OAuthTokenProvider) {
		p.scope = scope
	}
}

// WithNowFunc overrides the clock, for tests.
func WithNowFunc(f func() time.Time) OAuthOption {
	return func(p *OAuthTokenProvider) {
		p.now = f
	}
}

// NewOAuthTokenProvider creates a provider that requests tokens from
// tokenURL with the given client credentials.
func NewOAuthTokenProvider(
	tokenURL, clientID, clientSecret string,
	opts ...OAuthOption,
) *OAuthTokenProvider {
	p := &OAuthTokenProvider{
		endpoint: tokenURL,
		clientID: clientID,
		secret:   clientSecret,
		client:   &http.Client{Timeout: 10 * time.Second},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Token returns the current access token, requesting a new one when there
// is none or it expires within a minute.
func (p *OAuthTokenProvider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current.usableAt(p.now()) {
		return p.current.value, nil
	}

	g, err := p.request(ctx)
	if err != nil {
		return "", err
	}
	p.current = g
	return g.value, nil
}

// Invalidate forgets the current token. RemoteProvider calls it when the
// favorites service answers 401 or 403.
func (p *OAuthTokenProvider) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = grant{}
}

// tokenReply covers both the success and the error body of the token
// endpoint.
type tokenReply struct {
	AccessToken      string `json:"access_token"`
	ExpiresIn        int    `json:"expires_in"`
	TokenType        string `json:"token_type"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (p *OAuthTokenProvider) request(ctx context.Context) (grant, error) {
	form := url.Values{"grant_type": {"client_credentials"}}
	if p.scope != "" {
		form.Set("scope", p.scope)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return grant{}, fmt.Errorf("creating token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(url.QueryEscape(p.clientID), url.QueryEscape(p.secret))

	resp, err := p.client.Do(req)
	if err != nil {
		return grant{}, fmt.Errorf("executing token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return grant{}, fmt.Errorf("reading token response: %w", err)
	}

	var reply tokenReply
	if resp.StatusCode != http.StatusOK {
		_ = json.Unmarshal(body, &reply) //nolint:errcheck // error body is optional
		err := fmt.Errorf("token request failed (status %d): %s %s",
			resp.StatusCode, reply.Error, reply.ErrorDescription)
		// RFC 6749 answers bad client credentials with 400 or 401.
		if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
			return grant{}, fmt.Errorf("%w: %w", ErrNotAuthorized, err)
		}
		return grant{}, err
	}

	if err := json.Unmarshal(body, &reply); err != nil {
		return grant{}, fmt.Errorf("parsing token response: %w", err)
	}
	if reply.AccessToken == "" {
		return grant{}, errors.New("token response has no access_token")
	}

	return grant{
		value:  reply.AccessToken,
		expiry: p.now().Add(time.Duration(reply.ExpiresIn) * time.Second),
	}, nil
}
