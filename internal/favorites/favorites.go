// Package favorites implements catalog.FavoritesProvider backends: a remote
// favorites service reached over HTTP with OAuth2 client credentials, and a
// local PostgreSQL store.
package favorites

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/donaldgifford/marketplace-client/internal/catalog"
	domain "github.com/donaldgifford/marketplace-client/pkg/types"
)

// ErrNotAuthorized is catalog.ErrNotAuthorized. Backends return it when the
// credentials were rejected.
var ErrNotAuthorized = catalog.ErrNotAuthorized

// Provider is a favorites backend that can also edit the list.
type Provider interface {
	catalog.FavoritesProvider
	Add(ctx context.Context, ref domain.FavoriteRef) error
	Remove(ctx context.Context, id string) error
}

var (
	_ Provider = (*RemoteProvider)(nil)
	_ Provider = (*PostgresStore)(nil)
)

// UserFromURI extracts the user name from a favorites list URI of the form
// ".../user/<name>/favorites".
func UserFromURI(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("parsing favorites uri: %w", err)
	}
	segments := strings.Split(strings.Trim(u.EscapedPath(), "/"), "/")
	for i := 0; i+2 < len(segments); i++ {
		if segments[i] != "user" || segments[i+2] != "favorites" {
			continue
		}
		name, err := url.PathUnescape(segments[i+1])
		if err != nil {
			return "", fmt.Errorf("parsing favorites uri: %w", err)
		}
		if name != "" {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %q is not a favorites uri", catalog.ErrInvalidArgument, uri)
}

// ListPath is the path of a user's favorites list, relative to the service
// root.
func ListPath(user string) string {
	return "user/" + url.PathEscape(user) + "/favorites"
}

func idSet(refs []domain.FavoriteRef) map[string]struct{} {
	ids := make(map[string]struct{}, len(refs))
	for _, r := range refs {
		ids[r.ID] = struct{}{}
	}
	return ids
}
