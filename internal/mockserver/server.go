// Package mockserver is a fake marketplace for local development and
// end-to-end tests. It serves catalog documents in the marketplace XML
// format from a Fixture, a JSON favorites API behind OAuth2 client
// credentials, and records install reports.
package mockserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/donaldgifford/marketplace-client/internal/favorites"
	"github.com/donaldgifford/marketplace-client/internal/transport"
	"github.com/donaldgifford/marketplace-client/pkg/logger"
	domain "github.com/donaldgifford/marketplace-client/pkg/types"
)

const tokenTTL = time.Hour

// FavoritesBackend returns the favorites list of user.
type FavoritesBackend func(user string) favorites.Provider

// Server is the fake marketplace.
type Server struct {
	echo    *echo.Echo
	fixture *Fixture
	log     *slog.Logger
	backend FavoritesBackend

	mu        sync.Mutex
	tokens    map[string]time.Time
	successes []string
	reports   []url.Values
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.log = l
	}
}

// WithFavoritesBackend serves favorites from backend instead of the
// fixture's in-memory lists.
func WithFavoritesBackend(b FavoritesBackend) Option {
	return func(s *Server) {
		s.backend = b
	}
}

// New builds a server for fixture.
func New(fixture *Fixture, opts ...Option) *Server {
	s := &Server{
		fixture: fixture,
		log:     logger.Discard(),
		tokens:  map[string]time.Time{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.backend == nil {
		s.backend = newMemoryFavorites(fixture).forUser
	}
	for _, t := range fixture.Tokens {
		s.tokens[t] = time.Time{}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(Recovery(s.log))
	e.Use(RequestLog(s.log))
	e.Use(Metrics())
	s.echo = e
	s.routes()
	return s
}

func (s *Server) routes() {
	e := s.echo

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/api/p", s.handleMarkets)
	e.GET("/category/:slug/api/p", s.handleCategory)
	e.GET("/category/free-tagging/:tag/api/p", s.handleTagged)
	e.GET("/taxonomy/term/:terms/api/p", s.handleTaxonomy)
	e.GET("/api/p/search/apachesolr_search/:query", s.handleSearch)
	e.GET("/node/:id/api/p", s.handleNodeByID)
	e.GET("/content/:slug/api/p", s.handleNodeBySlug)
	e.GET("/content/:slug/success", s.handleSuccess)
	e.GET("/featured/api/p", s.handleFeatured)
	e.GET("/featured/:terms/api/p", s.handleFeatured)
	e.GET("/recent/api/p", s.listing(func(f *Fixture) []string { return f.Recent }, func(d *domain.Document, l *domain.Listing) { d.Recent = l }))
	e.GET("/popular/top/api/p", s.listing(func(f *Fixture) []string { return f.Popular }, func(d *domain.Document, l *domain.Listing) { d.Popular = l }))
	e.GET("/favorites/top/api/p", s.listing(func(f *Fixture) []string { return f.TopFavorites }, func(d *domain.Document, l *domain.Listing) { d.Favorites = l }))
	e.GET("/related/api/p", s.handleRelated)
	e.GET("/news/api/p", s.handleNews)
	e.POST("/install/error/report", s.handleErrorReport)

	e.POST("/oauth/token", s.handleToken)
	fav := e.Group("/api/user/:user/favorites", s.requireToken)
	fav.GET("", s.handleFavoritesList)
	fav.PUT("/:id", s.handleFavoritesAdd)
	fav.DELETE("/:id", s.handleFavoritesRemove)
}

// Handler returns the HTTP handler, for httptest servers.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on addr until Shutdown is called.
func (s *Server) Start(addr string, readTimeout, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:         addr,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
	s.log.Info("starting mock marketplace", "addr", addr)
	if err := s.echo.StartServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Successes returns the ids of nodes whose install success beacon was hit.
func (s *Server) Successes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.successes)
}

// ErrorReports returns the install error reports received so far.
func (s *Server) ErrorReports() []url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.reports)
}

func (s *Server) handleMarkets(c echo.Context) error {
	base := baseURL(c)
	doc := &domain.Document{}
	for _, m := range s.fixture.Markets {
		market := domain.Market{ID: m.ID, Name: m.Name, URL: base + "/market/" + m.Slug}
		for _, fc := range m.Categories {
			market.Categories = append(market.Categories, domain.Category{
				ID:   fc.ID,
				Name: fc.Name,
				URL:  base + "/category/" + fc.Slug,
			})
		}
		doc.Markets = append(doc.Markets, market)
	}
	return s.document(c, doc)
}

func (s *Server) handleCategory(c echo.Context) error {
	slug := param(c, "slug")
	fc, ok := s.fixture.category(func(fc *FixtureCategory) bool { return fc.Slug == slug })
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no category "+slug)
	}
	return s.document(c, &domain.Document{
		Categories: []domain.Category{s.categoryDoc(c, fc, []string{fc.ID})},
	})
}

func (s *Server) categoryDoc(c echo.Context, fc *FixtureCategory, terms []string) domain.Category {
	nodes := s.summaries(c, s.fixture.nodesWhere(func(n *FixtureNode) bool {
		return s.fixture.scoped(n, terms)
	}))
	return domain.Category{
		ID:    fc.ID,
		Name:  fc.Name,
		URL:   baseURL(c) + "/category/" + fc.Slug,
		Count: len(nodes),
		Nodes: nodes,
	}
}

// handleTaxonomy answers "taxonomy/term/<category>,<market>" with a single
// category holding the nodes in every given term.
func (s *Server) handleTaxonomy(c echo.Context) error {
	terms := strings.Split(param(c, "terms"), ",")
	for _, t := range terms {
		if !s.fixture.knownTerm(t) {
			return echo.NewHTTPError(http.StatusNotFound, "unknown term "+t)
		}
	}
	fc, ok := s.fixture.category(func(fc *FixtureCategory) bool { return slices.Contains(terms, fc.ID) })
	if !ok {
		m, _ := s.fixture.market(terms[0])
		fc = &FixtureCategory{ID: m.ID, Name: m.Name, Slug: m.Slug}
	}
	return s.document(c, &domain.Document{
		Categories: []domain.Category{s.categoryDoc(c, fc, terms)},
	})
}

func (s *Server) handleSearch(c echo.Context) error {
	term := param(c, "query")
	terms := filterTerms(c.QueryParam("filters"))
	for _, t := range terms {
		if !s.fixture.knownTerm(t) {
			return echo.NewHTTPError(http.StatusNotFound, "unknown term "+t)
		}
	}
	nodes := s.fixture.nodesWhere(func(n *FixtureNode) bool {
		return n.matches(term) && s.fixture.scoped(n, terms)
	})
	summaries := s.summaries(c, nodes)
	return s.document(c, &domain.Document{
		Search: &domain.Listing{Count: len(summaries), Term: term, Nodes: summaries},
	})
}

func (s *Server) handleTagged(c echo.Context) error {
	tag := strings.ToLower(param(c, "tag"))
	nodes := s.fixture.nodesWhere(func(n *FixtureNode) bool { return slices.Contains(n.Tags, tag) })
	if len(nodes) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "no nodes tagged "+tag)
	}
	summaries := s.summaries(c, nodes)
	return s.document(c, &domain.Document{
		Search: &domain.Listing{Count: len(summaries), Term: tag, Nodes: summaries},
	})
}

func (s *Server) handleNodeByID(c echo.Context) error {
	n, ok := s.fixture.node(param(c, "id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no node "+c.Param("id"))
	}
	return s.document(c, &domain.Document{Nodes: []domain.Node{s.fullNode(c, n)}})
}

func (s *Server) handleNodeBySlug(c echo.Context) error {
	n, ok := s.fixture.nodeBySlug(param(c, "slug"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no node "+c.Param("slug"))
	}
	return s.document(c, &domain.Document{Nodes: []domain.Node{s.fullNode(c, n)}})
}

func (s *Server) handleSuccess(c echo.Context) error {
	n, ok := s.fixture.nodeBySlug(param(c, "slug"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no node "+c.Param("slug"))
	}
	s.mu.Lock()
	s.successes = append(s.successes, n.ID)
	s.mu.Unlock()
	s.log.Info("install success", "node", n.ID, "client", c.QueryParam("client"))
	return c.String(http.StatusOK, "ok")
}

func (s *Server) handleFeatured(c echo.Context) error {
	var terms []string
	if raw := param(c, "terms"); raw != "" {
		terms = strings.Split(raw, ",")
	}
	var nodes []*FixtureNode
	for _, id := range s.fixture.Featured {
		if n, ok := s.fixture.node(id); ok && s.fixture.scoped(n, terms) {
			nodes = append(nodes, n)
		}
	}
	summaries := s.summaries(c, nodes)
	return s.document(c, &domain.Document{
		Featured: &domain.Listing{Count: len(summaries), Nodes: summaries},
	})
}

func (s *Server) listing(
	ids func(*Fixture) []string,
	set func(*domain.Document, *domain.Listing),
) echo.HandlerFunc {
	return func(c echo.Context) error {
		summaries := s.summaries(c, s.byID(ids(s.fixture)))
		doc := &domain.Document{}
		set(doc, &domain.Listing{Count: len(summaries), Nodes: summaries})
		return s.document(c, doc)
	}
}

func (s *Server) handleRelated(c echo.Context) error {
	var ids []string
	for _, basedOn := range strings.Fields(c.QueryParam("nodes")) {
		for _, id := range s.fixture.Related[basedOn] {
			if !slices.Contains(ids, id) {
				ids = append(ids, id)
			}
		}
	}
	if c.QueryParam("nodes") == "" {
		ids = s.fixture.Popular
	}
	summaries := s.summaries(c, s.byID(ids))
	return s.document(c, &domain.Document{
		Related: &domain.Listing{Count: len(summaries), Nodes: summaries},
	})
}

func (s *Server) handleNews(c echo.Context) error {
	n := s.fixture.News
	if n == nil {
		return echo.NewHTTPError(http.StatusNotFound, "no news")
	}
	return s.document(c, &domain.Document{News: &domain.News{
		ShortTitle: n.ShortTitle,
		URL:        n.URL,
		Timestamp:  n.Timestamp,
	}})
}

func (s *Server) handleErrorReport(c echo.Context) error {
	form, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	s.mu.Lock()
	s.reports = append(s.reports, form)
	s.mu.Unlock()
	s.log.Info("install error report",
		"status", form.Get("status"),
		"nodes", form["node"],
		"ius", form["iu"],
	)
	return c.NoContent(http.StatusOK)
}

func (s *Server) byID(ids []string) []*FixtureNode {
	out := make([]*FixtureNode, 0, len(ids))
	for _, id := range ids {
		if n, ok := s.fixture.node(id); ok {
			out = append(out, n)
		}
	}
	return out
}

// summaries renders nodes the way listings carry them: without owner,
// update site or installable units.
func (s *Server) summaries(c echo.Context, nodes []*FixtureNode) []domain.Node {
	out := make([]domain.Node, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, domain.Node{
			ID:               n.ID,
			Name:             n.Name,
			URL:              nodeURL(c, n),
			ShortDescription: n.ShortDescription,
			FavoritedCount:   n.Favorited,
		})
	}
	return out
}

func (s *Server) fullNode(c echo.Context, n *FixtureNode) domain.Node {
	out := domain.Node{
		ID:               n.ID,
		Name:             n.Name,
		URL:              nodeURL(c, n),
		ShortDescription: n.ShortDescription,
		Owner:            n.Owner,
		UpdateURL:        n.UpdateURL,
		FavoritedCount:   n.Favorited,
	}
	if len(n.IUs) > 0 {
		out.IUs = &domain.IUs{Elements: slices.Clone(n.IUs)}
	}
	return out
}

func (s *Server) document(c echo.Context, doc *domain.Document) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationXMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return transport.EncodeDocument(c.Response(), doc)
}

func nodeURL(c echo.Context, n *FixtureNode) string {
	return baseURL(c) + "/content/" + n.Slug
}

func baseURL(c echo.Context) string {
	return c.Scheme() + "://" + c.Request().Host
}

// param returns the unescaped path parameter name.
func param(c echo.Context, name string) string {
	raw := c.Param(name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// filterTerms parses a "tid:a tid:b" search filter.
func filterTerms(filters string) []string {
	var terms []string
	for _, f := range strings.Fields(filters) {
		if id, ok := strings.CutPrefix(f, "tid:"); ok && id != "" {
			terms = append(terms, id)
		}
	}
	return terms
}
