// Package domain defines the catalog types returned by the marketplace
// service: markets, categories, listing nodes and result pages.
package domain

import (
	"slices"
	"time"
)

// Favorite is the tri-state "is this node one of the user's favorites" flag.
type Favorite string

// Favorite constants. FavoriteUnknown is the zero value and is used when the
// favorites service could not be asked.
const (
	FavoriteUnknown Favorite = ""
	FavoriteYes     Favorite = "yes"
	FavoriteNo      Favorite = "no"
)

// FavoriteFor maps a known membership answer to a Favorite.
func FavoriteFor(member bool) Favorite {
	if member {
		return FavoriteYes
	}
	return FavoriteNo
}

// Severity is the outcome severity reported back to the marketplace after an
// install attempt. Values match the service's numeric status codes.
type Severity int

// Severity constants.
const (
	SeverityOK      Severity = 0
	SeverityInfo    Severity = 1
	SeverityWarning Severity = 2
	SeverityError   Severity = 4
	SeverityCancel  Severity = 8
)

// Market is a top-level taxonomy entry that owns an ordered list of
// categories.
type Market struct {
	ID         string     `json:"id"`
	URL        string     `json:"url"`
	Name       string     `json:"name"`
	Categories []Category `json:"categories,omitempty"`
}

// Category groups nodes within a market. Copies returned by id lookups carry
// no reference back to their market.
type Category struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Name  string `json:"name"`
	Count int    `json:"count,omitempty"`
	Nodes []Node `json:"nodes,omitempty"`
}

// SameID reports whether c and other identify the same category by id.
func (c *Category) SameID(other *Category) bool {
	return c.ID != "" && c.ID == other.ID
}

// IU is a single installable unit reference of a node.
type IU struct {
	ID       string `json:"id"`
	Optional bool   `json:"optional,omitempty"`
	Selected bool   `json:"selected,omitempty"`
}

// IUs is the installable-units block of a node.
type IUs struct {
	Elements []IU `json:"elements"`
}

// Node is a marketplace listing.
type Node struct {
	ID               string   `json:"id"`
	URL              string   `json:"url"`
	Name             string   `json:"name"`
	ShortDescription string   `json:"short_description,omitempty"`
	Owner            string   `json:"owner,omitempty"`
	UpdateURL        string   `json:"update_url,omitempty"`
	FavoritedCount   int      `json:"favorited_count,omitempty"`
	IUs              *IUs     `json:"ius,omitempty"`
	Favorited        Favorite `json:"favorited,omitempty"`
}

// Installable reports whether the node carries at least one installable unit.
func (n *Node) Installable() bool {
	return n.IUs != nil && len(n.IUs.Elements) > 0
}

// WithFavorite returns a copy of n with the favorite flag set to f.
func (n Node) WithFavorite(f Favorite) Node {
	n.Favorited = f
	return n
}

// Clone returns a copy of n that shares no memory with it.
func (n Node) Clone() Node {
	if n.IUs != nil {
		n.IUs = &IUs{Elements: slices.Clone(n.IUs.Elements)}
	}
	return n
}

// Clone returns a copy of c, its nodes included, that shares no memory
// with it.
func (c Category) Clone() Category {
	if c.Nodes != nil {
		nodes := make([]Node, len(c.Nodes))
		for i := range c.Nodes {
			nodes[i] = c.Nodes[i].Clone()
		}
		c.Nodes = nodes
	}
	return c
}

// Clone returns a copy of m, its categories included, that shares no memory
// with it.
func (m Market) Clone() Market {
	if m.Categories != nil {
		cats := make([]Category, len(m.Categories))
		for i := range m.Categories {
			cats[i] = m.Categories[i].Clone()
		}
		m.Categories = cats
	}
	return m
}

// FavoriteRef points at a node the user marked as favorite. It has to be
// resolved to obtain the full node.
type FavoriteRef struct {
	ID  string `json:"id"`
	URL string `json:"url,omitempty"`
}

// Node returns the lookup query for the referenced node.
func (r FavoriteRef) Node() Node {
	return Node{ID: r.ID, URL: r.URL}
}

// SearchResult is a page of nodes. MatchCount may exceed len(Nodes).
type SearchResult struct {
	MatchCount int    `json:"match_count"`
	Nodes      []Node `json:"nodes"`
}

// Listing is a counted node sequence inside a catalog document (featured,
// recent, search results, ...).
type Listing struct {
	Count int    `json:"count"`
	Term  string `json:"term,omitempty"`
	Nodes []Node `json:"nodes"`
}

// News describes the optional news feed advertised by the service.
type News struct {
	ShortTitle string    `json:"short_title"`
	URL        string    `json:"url"`
	Timestamp  time.Time `json:"timestamp"`
}

// Document is a decoded catalog response. Which fields are populated depends
// on the request that produced it.
type Document struct {
	Markets    []Market   `json:"markets,omitempty"`
	Categories []Category `json:"categories,omitempty"`
	Nodes      []Node     `json:"nodes,omitempty"`

	Search    *Listing `json:"search,omitempty"`
	Featured  *Listing `json:"featured,omitempty"`
	Recent    *Listing `json:"recent,omitempty"`
	Favorites *Listing `json:"favorites,omitempty"`
	Popular   *Listing `json:"popular,omitempty"`
	Related   *Listing `json:"related,omitempty"`

	News *News `json:"news,omitempty"`
}

// InstallStatus is the outcome of an install attempt as reported to the
// marketplace.
type InstallStatus struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}
