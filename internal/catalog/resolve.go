package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/donaldgifford/marketplace-client/internal/progress"
	domain "github.com/donaldgifford/marketplace-client/pkg/types"
)

// ListMarkets returns every market with its category summaries.
func (s *Service) ListMarkets(ctx context.Context) ([]domain.Market, error) {
	doc, err := s.fetch(ctx, "markets", MarketsPath)
	if err != nil {
		return nil, err
	}
	return doc.Markets, nil
}

// Market looks a market up by id. A query carrying only a url is rejected;
// when both id and url are set the id wins.
func (s *Service) Market(ctx context.Context, query domain.Market) (domain.Market, error) {
	if err := validateMarketQuery(query); err != nil {
		return domain.Market{}, err
	}
	markets, err := s.ListMarkets(ctx)
	if err != nil {
		return domain.Market{}, err
	}
	return findMarket(markets, query)
}

func validateMarketQuery(query domain.Market) error {
	if query.ID == "" {
		if query.URL != "" {
			return fmt.Errorf("%w: market lookup by url %q requires an id", ErrInvalidArgument, query.URL)
		}
		return fmt.Errorf("%w: market query has neither id nor url", ErrInvalidArgument)
	}
	return nil
}

func findMarket(markets []domain.Market, query domain.Market) (domain.Market, error) {
	for i := range markets {
		if markets[i].ID == query.ID {
			return markets[i], nil
		}
	}
	return domain.Market{}, fmt.Errorf("market %q: %w", query.ID, ErrNotFound)
}

// Category resolves a category with its nodes. An id-only query is found in
// the market list and then fetched in full by its url; the summary from the
// market list is never returned.
func (s *Service) Category(ctx context.Context, query domain.Category) (domain.Category, error) {
	ctx = progress.Begin(ctx, "Resolving category", 200)
	defer progress.Done(ctx)

	switch {
	case query.ID != "" && query.URL == "":
		lctx := progress.Child(ctx, 50)
		markets, err := s.marketList(lctx)
		if err != nil {
			return domain.Category{}, err
		}
		progress.Done(lctx)

		summary, found := findCategory(markets, &query)
		if err := cancelled(ctx); err != nil {
			return domain.Category{}, err
		}
		if !found {
			return domain.Category{}, fmt.Errorf("category %q: %w", query.ID, ErrNotFound)
		}
		if summary.URL == "" {
			return domain.Category{}, fmt.Errorf("category %q has no url: %w", query.ID, ErrUnexpectedResponse)
		}
		return s.categoryByURL(progress.Child(ctx, 150), summary.URL)

	case query.URL != "":
		return s.categoryByURL(ctx, query.URL)

	default:
		return domain.Category{}, fmt.Errorf("%w: category query has neither id nor url", ErrInvalidArgument)
	}
}

func findCategory(markets []domain.Market, query *domain.Category) (domain.Category, bool) {
	for i := range markets {
		for j := range markets[i].Categories {
			if markets[i].Categories[j].SameID(query) {
				return markets[i].Categories[j], true
			}
		}
	}
	return domain.Category{}, false
}

func (s *Service) categoryByURL(ctx context.Context, categoryURL string) (domain.Category, error) {
	doc, err := s.fetch(ctx, "category", APIURL(categoryURL))
	if err != nil {
		return domain.Category{}, err
	}
	switch len(doc.Categories) {
	case 0:
		return domain.Category{}, fmt.Errorf("category %s: %w", categoryURL, ErrNotFound)
	case 1:
		return doc.Categories[0], nil
	default:
		return domain.Category{}, fmt.Errorf(
			"category %s: %d categories in response: %w",
			categoryURL, len(doc.Categories), ErrUnexpectedResponse,
		)
	}
}

// Node resolves a node by id or, when it has none, by url. The id path is
// preferred because node urls derive from the node name and may change.
func (s *Service) Node(ctx context.Context, query domain.Node) (domain.Node, error) {
	var path, label string
	switch {
	case query.ID != "":
		path, label = NodePath(query.ID), query.ID
	case query.URL != "":
		path, label = APIURL(query.URL), query.URL
	default:
		return domain.Node{}, fmt.Errorf("%w: node query has neither id nor url", ErrInvalidArgument)
	}

	doc, err := s.fetch(ctx, "node", path)
	if err != nil {
		return domain.Node{}, err
	}
	switch len(doc.Nodes) {
	case 0:
		return domain.Node{}, fmt.Errorf("node %s: %w", label, ErrNotFound)
	case 1:
		return doc.Nodes[0], nil
	default:
		return domain.Node{}, fmt.Errorf(
			"node %s: %d nodes in response: %w",
			label, len(doc.Nodes), ErrUnexpectedResponse,
		)
	}
}

// search fetches a search or taxonomy path. A 404 means the service could
// not handle the query and is reported as a QueryError.
func (s *Service) search(ctx context.Context, kind, path, query string) (domain.SearchResult, error) {
	doc, err := s.fetch(ctx, kind, path)
	if err != nil {
		if errors.Is(err, ErrNotFound) && !errors.Is(err, ErrCancelled) {
			return domain.SearchResult{}, &QueryError{Query: query, Err: err}
		}
		return domain.SearchResult{}, err
	}

	switch {
	case doc.Search != nil:
		return domain.SearchResult{MatchCount: doc.Search.Count, Nodes: doc.Search.Nodes}, nil
	case len(doc.Categories) == 1:
		nodes := doc.Categories[0].Nodes
		return domain.SearchResult{MatchCount: len(nodes), Nodes: nodes}, nil
	default:
		return domain.SearchResult{}, fmt.Errorf("%s %q: no search payload: %w", kind, query, ErrUnexpectedResponse)
	}
}

// listing fetches a curated listing and returns it verbatim.
func (s *Service) listing(
	ctx context.Context,
	kind, path string,
	pick func(*domain.Document) *domain.Listing,
) (domain.SearchResult, error) {
	doc, err := s.fetch(ctx, kind, path)
	if err != nil {
		return domain.SearchResult{}, err
	}
	l := pick(doc)
	if l == nil {
		return domain.SearchResult{}, fmt.Errorf("%s: no listing in response: %w", kind, ErrUnexpectedResponse)
	}
	return domain.SearchResult{MatchCount: l.Count, Nodes: l.Nodes}, nil
}
