// Package catalog implements the marketplace catalog client: request path
// construction, response resolution, favorites resolution and the top-level
// search and listing operations.
//
// Transport, favorites storage and caching are collaborators injected into
// Service. Every operation takes a context; cancellation is checked between
// round-trips and surfaces as ErrCancelled.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"slices"
	"strconv"
	"time"

	"github.com/donaldgifford/marketplace-client/internal/meta"
	"github.com/donaldgifford/marketplace-client/internal/metrics"
	"github.com/donaldgifford/marketplace-client/pkg/logger"
	domain "github.com/donaldgifford/marketplace-client/pkg/types"
)

// Fetcher retrieves catalog resources. Fetch must report HTTP 404 with an
// error matching ErrNotFound.
type Fetcher interface {
	Fetch(ctx context.Context, ref string) (*domain.Document, error)
	Stream(ctx context.Context, ref string) (io.ReadCloser, error)
	PostForm(ctx context.Context, ref string, form url.Values) error
}

// FavoritesProvider reads a user's favorite listings. Implementations return
// an error matching ErrNotAuthorized when the user has to sign in again.
type FavoritesProvider interface {
	Favorites(ctx context.Context) ([]domain.FavoriteRef, error)
	FavoritesByURI(ctx context.Context, uri string) ([]domain.FavoriteRef, error)
	FavoriteIDs(ctx context.Context) (map[string]struct{}, error)
}

// NodeResolver resolves a node query (id or url) to a full node.
type NodeResolver interface {
	Node(ctx context.Context, query domain.Node) (domain.Node, error)
}

// Catalog is the set of operations offered by Service and CachingService.
type Catalog interface {
	NodeResolver
	ListMarkets(ctx context.Context) ([]domain.Market, error)
	Market(ctx context.Context, query domain.Market) (domain.Market, error)
	Category(ctx context.Context, query domain.Category) (domain.Category, error)
	Search(ctx context.Context, market *domain.Market, category *domain.Category, query string) (domain.SearchResult, error)
	BrowserSearchPath(market *domain.Market, category *domain.Category, query string) (string, bool)
	Tagged(ctx context.Context, tag string) (domain.SearchResult, error)
	Featured(ctx context.Context, market *domain.Market, category *domain.Category) (domain.SearchResult, error)
	Recent(ctx context.Context) (domain.SearchResult, error)
	TopFavorites(ctx context.Context) (domain.SearchResult, error)
	Popular(ctx context.Context) (domain.SearchResult, error)
	Related(ctx context.Context, basedOn []domain.Node) (domain.SearchResult, error)
	News(ctx context.Context) (*domain.News, error)
	UserFavorites(ctx context.Context) (domain.SearchResult, error)
	UserFavoritesByURI(ctx context.Context, uri string) (domain.SearchResult, error)
	MarkFavorites(ctx context.Context, nodes []domain.Node) ([]domain.Node, error)
	ReportInstallError(ctx context.Context, status domain.InstallStatus, nodes []domain.Node, ius []string, details string)
	ReportInstallSuccess(ctx context.Context, node domain.Node)
}

var (
	_ Catalog = (*Service)(nil)
	_ Catalog = (*CachingService)(nil)
)

// Service talks to one marketplace through a Fetcher.
type Service struct {
	fetcher   Fetcher
	favorites FavoritesProvider
	resolver  NodeResolver
	markets   func(context.Context) ([]domain.Market, error)
	meta      meta.Provider
	log       *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.log = l
	}
}

// WithMeta sets the meta-parameters attached to every request.
func WithMeta(p meta.Provider) Option {
	return func(s *Service) {
		s.meta = p
	}
}

// WithFavorites enables the user favorites operations.
func WithFavorites(p FavoritesProvider) Option {
	return func(s *Service) {
		s.favorites = p
	}
}

// WithNodeResolver sets the resolver used to turn favorite references into
// nodes. Defaults to the service itself.
func WithNodeResolver(r NodeResolver) Option {
	return func(s *Service) {
		s.resolver = r
	}
}

// New creates a Service reading from f.
func New(f Fetcher, opts ...Option) *Service {
	s := &Service{
		fetcher: f,
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithResolver returns a copy of s that resolves favorites through r.
func (s *Service) WithResolver(r NodeResolver) *Service {
	cp := *s
	cp.resolver = r
	return &cp
}

// marketList is the market scan behind id-only category lookups.
func (s *Service) marketList(ctx context.Context) ([]domain.Market, error) {
	if s.markets != nil {
		return s.markets(ctx)
	}
	return s.ListMarkets(ctx)
}

func (s *Service) nodeResolver() NodeResolver {
	if s.resolver != nil {
		return s.resolver
	}
	return s
}

// Search runs a text search, optionally narrowed to a market and category.
// Without a query it browses the taxonomy; with nothing at all it returns
// an empty result without contacting the service.
func (s *Service) Search(
	ctx context.Context,
	market *domain.Market,
	category *domain.Category,
	query string,
) (domain.SearchResult, error) {
	path, ok := SearchPath(market, category, query, true)
	if !ok {
		return domain.SearchResult{Nodes: []domain.Node{}}, nil
	}
	return s.search(ctx, "search", path, query)
}

// BrowserSearchPath returns the relative web page path showing the same
// results as Search.
func (s *Service) BrowserSearchPath(
	market *domain.Market,
	category *domain.Category,
	query string,
) (string, bool) {
	return SearchPath(market, category, query, false)
}

// Tagged lists nodes carrying tag.
func (s *Service) Tagged(ctx context.Context, tag string) (domain.SearchResult, error) {
	if tag == "" {
		return domain.SearchResult{}, fmt.Errorf("%w: tag is required", ErrInvalidArgument)
	}
	return s.search(ctx, "tagged", TaggedPath(tag), tag)
}

// Featured lists featured nodes, optionally scoped to a market and category.
func (s *Service) Featured(
	ctx context.Context,
	market *domain.Market,
	category *domain.Category,
) (domain.SearchResult, error) {
	return s.listing(ctx, "featured", FeaturedPath(market, category), func(d *domain.Document) *domain.Listing {
		return d.Featured
	})
}

// Recent lists recently updated nodes.
func (s *Service) Recent(ctx context.Context) (domain.SearchResult, error) {
	return s.listing(ctx, "recent", RecentPath, func(d *domain.Document) *domain.Listing {
		return d.Recent
	})
}

// TopFavorites lists the nodes favorited by most users.
func (s *Service) TopFavorites(ctx context.Context) (domain.SearchResult, error) {
	return s.listing(ctx, "top_favorites", TopFavoritesPath, func(d *domain.Document) *domain.Listing {
		return d.Favorites
	})
}

// Popular lists the most active nodes.
func (s *Service) Popular(ctx context.Context) (domain.SearchResult, error) {
	return s.listing(ctx, "popular", PopularPath, func(d *domain.Document) *domain.Listing {
		return d.Popular
	})
}

// Related lists recommendations based on the given nodes.
func (s *Service) Related(ctx context.Context, basedOn []domain.Node) (domain.SearchResult, error) {
	return s.listing(ctx, "related", RelatedPath(basedOn), func(d *domain.Document) *domain.Listing {
		return d.Related
	})
}

// News returns the service's news feed. Servers without the optional news
// endpoint yield nil and no error.
func (s *Service) News(ctx context.Context) (*domain.News, error) {
	doc, err := s.fetch(ctx, "news", NewsPath)
	if err != nil {
		if errors.Is(err, ErrNotFound) && !errors.Is(err, ErrCancelled) {
			s.log.Debug("news not supported by marketplace")
			return nil, nil
		}
		return nil, err
	}
	return doc.News, nil
}

// ReportInstallError tells the marketplace that installing nodes failed.
// Delivery is best-effort; failures are logged and dropped.
func (s *Service) ReportInstallError(
	ctx context.Context,
	status domain.InstallStatus,
	nodes []domain.Node,
	ius []string,
	details string,
) {
	err := s.fetcher.PostForm(ctx, InstallErrorReportPath, errorReportForm(s.meta, status, nodes, ius, details))
	if err != nil {
		metrics.InstallReportsTotal.WithLabelValues("error", "failed").Inc()
		s.log.Debug("install error report not delivered", "error", err)
		return
	}
	metrics.InstallReportsTotal.WithLabelValues("error", "ok").Inc()
}

// ReportInstallSuccess pings the node's success beacon. Delivery is
// best-effort; failures are logged and dropped.
func (s *Service) ReportInstallSuccess(ctx context.Context, node domain.Node) {
	if node.URL == "" {
		s.log.Debug("install success not reported, node has no url", "node", node.ID)
		return
	}

	body, err := s.fetcher.Stream(ctx, meta.Append(SuccessURL(node.URL), s.meta))
	if err == nil {
		_, err = io.Copy(io.Discard, body)
		body.Close()
	}
	if err != nil {
		metrics.InstallReportsTotal.WithLabelValues("success", "failed").Inc()
		s.log.Debug("install success report not delivered", "node", node.ID, "error", err)
		return
	}
	metrics.InstallReportsTotal.WithLabelValues("success", "ok").Inc()
}

func errorReportForm(
	p meta.Provider,
	status domain.InstallStatus,
	nodes []domain.Node,
	ius []string,
	details string,
) url.Values {
	form := meta.Form(p)
	form.Set("status", strconv.Itoa(int(status.Severity)))
	form.Set("statusMessage", status.Message)

	seen := make(map[string]struct{}, len(nodes))
	for i := range nodes {
		id := nodes[i].ID
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		form.Add("node", id)
	}
	for _, iu := range sortedUnique(ius) {
		form.Add("iu", iu)
	}
	form.Set("detailedMessage", details)
	return form
}

func sortedUnique(in []string) []string {
	return slices.Compact(slices.Sorted(slices.Values(in)))
}

// fetch issues one catalog request and classifies its failure.
func (s *Service) fetch(ctx context.Context, kind, path string) (*domain.Document, error) {
	if err := cancelled(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	doc, err := s.fetcher.Fetch(ctx, meta.Append(path, s.meta))
	metrics.CatalogRequestDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())

	if err != nil {
		if cerr := cancelled(ctx); cerr != nil {
			metrics.CatalogRequestsTotal.WithLabelValues(kind, "cancelled").Inc()
			return nil, cerr
		}
		outcome := "error"
		if errors.Is(err, ErrNotFound) {
			outcome = "not_found"
		}
		metrics.CatalogRequestsTotal.WithLabelValues(kind, outcome).Inc()
		s.log.Debug("catalog request failed", "kind", kind, "path", path, "error", err)
		return nil, &RetrievalError{Op: kind, Err: err}
	}
	if doc == nil {
		metrics.CatalogRequestsTotal.WithLabelValues(kind, "error").Inc()
		return nil, &RetrievalError{Op: kind, Err: ErrUnexpectedResponse}
	}

	metrics.CatalogRequestsTotal.WithLabelValues(kind, "ok").Inc()
	return doc, nil
}
