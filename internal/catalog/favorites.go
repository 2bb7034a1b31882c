package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/donaldgifford/marketplace-client/internal/metrics"
	"github.com/donaldgifford/marketplace-client/internal/progress"
	domain "github.com/donaldgifford/marketplace-client/pkg/types"
)

const (
	favoritesWork        = 10000
	favoritesFetchWork   = 1000
	favoritesResolveWork = favoritesWork - favoritesFetchWork
	nodeResolveWork      = 100
)

// UserFavorites returns the current user's favorites that can be installed,
// in the order the favorites service lists them. ErrNotAuthorized is
// returned as is so callers can trigger a new sign-in; other provider
// failures are wrapped in a RetrievalError.
func (s *Service) UserFavorites(ctx context.Context) (domain.SearchResult, error) {
	if s.favorites == nil {
		return domain.SearchResult{}, fmt.Errorf("user favorites: %w", ErrUnsupported)
	}
	ctx = progress.Begin(ctx, "Retrieving favorites", favoritesWork)
	defer progress.Done(ctx)

	fctx := progress.Child(ctx, favoritesFetchWork)
	refs, err := s.favorites.Favorites(fctx)
	if err != nil {
		if cerr := cancelled(ctx); cerr != nil {
			return domain.SearchResult{}, cerr
		}
		if errors.Is(err, ErrNotAuthorized) {
			metrics.FavoritesAuthFailuresTotal.Inc()
			return domain.SearchResult{}, fmt.Errorf("user favorites: %w", err)
		}
		return domain.SearchResult{}, &RetrievalError{Op: "favorites", Err: err}
	}
	progress.Done(fctx)

	return s.resolveFavorites(progress.Child(ctx, favoritesResolveWork), refs, true)
}

// UserFavoritesByURI returns every favorite of the list at uri, installable
// nodes first. All provider failures are wrapped in a RetrievalError;
// ErrNotAuthorized stays detectable through errors.Is.
func (s *Service) UserFavoritesByURI(ctx context.Context, uri string) (domain.SearchResult, error) {
	if s.favorites == nil {
		return domain.SearchResult{}, fmt.Errorf("user favorites: %w", ErrUnsupported)
	}
	ctx = progress.Begin(ctx, "Retrieving favorites", favoritesWork)
	defer progress.Done(ctx)

	fctx := progress.Child(ctx, favoritesFetchWork)
	refs, err := s.favorites.FavoritesByURI(fctx, uri)
	if err != nil {
		if cerr := cancelled(ctx); cerr != nil {
			return domain.SearchResult{}, cerr
		}
		if errors.Is(err, ErrNotAuthorized) {
			metrics.FavoritesAuthFailuresTotal.Inc()
		}
		return domain.SearchResult{}, &RetrievalError{Op: "favorites " + uri, Err: err}
	}
	progress.Done(fctx)

	return s.resolveFavorites(progress.Child(ctx, favoritesResolveWork), refs, false)
}

// MarkFavorites returns a copy of nodes with every favorite flag set from a
// single lookup of the user's favorite ids. The flags are assigned even when
// the lookup fails, to FavoriteUnknown, and the returned slice is valid
// alongside the error.
func (s *Service) MarkFavorites(ctx context.Context, nodes []domain.Node) ([]domain.Node, error) {
	if s.favorites == nil {
		return nodes, fmt.Errorf("mark favorites: %w", ErrUnsupported)
	}
	if len(nodes) == 0 {
		return nodes, nil
	}
	ctx = progress.Begin(ctx, "Updating favorites", favoritesWork)
	defer progress.Done(ctx)

	ids, err := s.favorites.FavoriteIDs(ctx)

	out := make([]domain.Node, len(nodes))
	for i := range nodes {
		flag := domain.FavoriteUnknown
		if err == nil {
			_, member := ids[nodes[i].ID]
			flag = domain.FavoriteFor(member)
		}
		out[i] = nodes[i].WithFavorite(flag)
	}

	if err != nil {
		if cerr := cancelled(ctx); cerr != nil {
			return out, cerr
		}
		if errors.Is(err, ErrNotAuthorized) {
			metrics.FavoritesAuthFailuresTotal.Inc()
			return out, fmt.Errorf("mark favorites: %w", err)
		}
		return out, &RetrievalError{Op: "favorite ids", Err: err}
	}
	return out, nil
}

// resolveFavorites turns references into full nodes one at a time, in order,
// through the preferred resolver. With filterIncompatible set, nodes without
// installable units are dropped; otherwise they are moved behind the
// installable ones.
func (s *Service) resolveFavorites(
	ctx context.Context,
	refs []domain.FavoriteRef,
	filterIncompatible bool,
) (domain.SearchResult, error) {
	ctx = progress.Begin(ctx, "", len(refs)*nodeResolveWork)
	defer progress.Done(ctx)

	resolver := s.nodeResolver()
	nodes := make([]domain.Node, 0, len(refs))
	for _, ref := range refs {
		if err := cancelled(ctx); err != nil {
			return domain.SearchResult{}, err
		}

		nctx := progress.Child(ctx, nodeResolveWork)
		node, err := resolver.Node(nctx, ref.Node())
		if err != nil {
			if cerr := cancelled(ctx); cerr != nil {
				return domain.SearchResult{}, cerr
			}
			return domain.SearchResult{}, fmt.Errorf("resolving favorite %s: %w", ref.ID, err)
		}
		progress.Done(nctx)
		metrics.FavoritesResolvedTotal.Inc()

		node = node.WithFavorite(domain.FavoriteYes)
		if filterIncompatible && !node.Installable() {
			metrics.FavoritesFilteredTotal.Inc()
			s.log.Debug("dropping favorite without installable units", "node", node.ID)
			continue
		}
		nodes = append(nodes, node)
	}

	if !filterIncompatible {
		nodes = installableFirst(nodes)
	}
	return domain.SearchResult{MatchCount: len(nodes), Nodes: nodes}, nil
}

// installableFirst is a stable partition: installable nodes, then the rest,
// each group in its original order.
func installableFirst(nodes []domain.Node) []domain.Node {
	out := make([]domain.Node, 0, len(nodes))
	var rest []domain.Node
	for i := range nodes {
		if nodes[i].Installable() {
			out = append(out, nodes[i])
		} else {
			rest = append(rest, nodes[i])
		}
	}
	return append(out, rest...)
}
