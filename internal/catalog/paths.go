package catalog

import (
	"net/url"
	"strings"

	domain "github.com/donaldgifford/marketplace-client/pkg/types"
)

// APISuffix marks the provisional REST API on every catalog resource.
const APISuffix = "api/p"

// Path prefixes and fixed resources of the catalog API.
const (
	apiSearchPrefix     = APISuffix + "/" + browserSearchPrefix
	browserSearchPrefix = "search/apachesolr_search/"
	taxonomyPrefix      = "taxonomy/term/"
	nodePrefix          = "node/"
	featuredPrefix      = "featured/"
	freeTaggingPrefix   = "category/free-tagging/"
	relatedNodesParam   = "nodes"

	MarketsPath            = APISuffix
	RecentPath             = "recent/" + APISuffix
	TopFavoritesPath       = "favorites/top/" + APISuffix
	PopularPath            = "popular/top/" + APISuffix
	RelatedBasePath        = "related/" + APISuffix
	NewsPath               = "news/" + APISuffix
	InstallErrorReportPath = "install/error/report"
)

// escape encodes an id or search term for use in a path segment or query
// value. Spaces become %20 to match the filter separator.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// SearchPath builds the relative request path for a search or taxonomy
// browse. The second result is false for the empty search (no query, no
// market, no category); callers must not issue a request in that case.
//
// With a query the path is the search prefix plus the escaped term, with a
// filters clause when a market or category is given. API paths put the
// market first, browser paths the category. Without a query the path is the
// taxonomy listing "taxonomy/term/<category>,<market>".
func SearchPath(market *domain.Market, category *domain.Category, query string, api bool) (string, bool) {
	query = strings.TrimSpace(query)

	var marketID, categoryID *string
	if market != nil {
		marketID = &market.ID
	}
	if category != nil {
		categoryID = &category.ID
	}

	switch {
	case query != "":
		prefix := browserSearchPrefix
		if api {
			prefix = apiSearchPrefix
		}
		path := prefix + escape(query)
		if marketID == nil && categoryID == nil {
			return path, true
		}

		first, second := categoryID, marketID
		if api {
			first, second = marketID, categoryID
		}
		var filters []string
		for _, id := range []*string{first, second} {
			if id != nil {
				filters = append(filters, "tid:"+escape(*id))
			}
		}
		return path + "?filters=" + strings.Join(filters, "%20"), true

	case marketID != nil || categoryID != nil:
		var terms []string
		if categoryID != nil {
			terms = append(terms, escape(*categoryID))
		}
		if marketID != nil {
			terms = append(terms, escape(*marketID))
		}
		path := taxonomyPrefix + strings.Join(terms, ",")
		if api {
			path += "/" + APISuffix
		}
		return path, true

	default:
		return "", false
	}
}

// NodePath is the stable, id-based path of a node.
func NodePath(id string) string {
	return nodePrefix + escape(id) + "/" + APISuffix
}

// FeaturedPath scopes the featured listing to a market and/or category.
func FeaturedPath(market *domain.Market, category *domain.Category) string {
	var ids []string
	if market != nil {
		ids = append(ids, escape(market.ID))
	}
	if category != nil {
		ids = append(ids, escape(category.ID))
	}
	if len(ids) == 0 {
		return featuredPrefix + APISuffix
	}
	return featuredPrefix + strings.Join(ids, ",") + "/" + APISuffix
}

// RelatedPath asks for recommendations based on the given nodes.
func RelatedPath(basedOn []domain.Node) string {
	if len(basedOn) == 0 {
		return RelatedBasePath
	}
	ids := make([]string, 0, len(basedOn))
	for i := range basedOn {
		ids = append(ids, escape(basedOn[i].ID))
	}
	return RelatedBasePath + "?" + relatedNodesParam + "=" + strings.Join(ids, "+")
}

// TaggedPath lists the nodes carrying a free-form tag.
func TaggedPath(tag string) string {
	return freeTaggingPrefix + escape(tag) + "/" + APISuffix
}

// APIURL turns an absolute node or category URL into its API resource.
func APIURL(resource string) string {
	return joinSegment(resource, APISuffix)
}

// SuccessURL is the install-success beacon of a node.
func SuccessURL(nodeURL string) string {
	return joinSegment(nodeURL, "success")
}

func joinSegment(base, segment string) string {
	if strings.HasSuffix(base, "/") {
		return base + segment
	}
	return base + "/" + segment
}
