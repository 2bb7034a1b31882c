package mockserver

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	domain "github.com/donaldgifford/marketplace-client/pkg/types"
)

// Fixture is the catalog content served by the mock marketplace. Node and
// category URLs are derived from slugs and the request host.
type Fixture struct {
	Markets      []FixtureMarket     `yaml:"markets"`
	Nodes        []FixtureNode       `yaml:"nodes"`
	Featured     []string            `yaml:"featured"`
	Recent       []string            `yaml:"recent"`
	Popular      []string            `yaml:"popular"`
	TopFavorites []string            `yaml:"top_favorites"`
	Related      map[string][]string `yaml:"related"`
	News         *FixtureNews        `yaml:"news"`
	Favorites    map[string][]string `yaml:"favorites"`
	Clients      map[string]string   `yaml:"clients"`
	Tokens       []string            `yaml:"tokens"`
}

// FixtureMarket is a market and its categories.
type FixtureMarket struct {
	ID         string            `yaml:"id"`
	Name       string            `yaml:"name"`
	Slug       string            `yaml:"slug"`
	Categories []FixtureCategory `yaml:"categories"`
}

// FixtureCategory is a category within a market.
type FixtureCategory struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Slug string `yaml:"slug"`
}

// FixtureNode is a listing. Nodes without ius are not installable.
type FixtureNode struct {
	ID               string      `yaml:"id"`
	Name             string      `yaml:"name"`
	Slug             string      `yaml:"slug"`
	Category         string      `yaml:"category"`
	ShortDescription string      `yaml:"short_description"`
	Owner            string      `yaml:"owner"`
	UpdateURL        string      `yaml:"update_url"`
	Favorited        int         `yaml:"favorited"`
	Tags             []string    `yaml:"tags"`
	IUs              []domain.IU `yaml:"ius"`
}

// FixtureNews is the optional news feed.
type FixtureNews struct {
	ShortTitle string    `yaml:"short_title"`
	URL        string    `yaml:"url"`
	Timestamp  time.Time `yaml:"timestamp"`
}

// LoadFixture reads a YAML fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("validating fixture: %w", err)
	}
	return &f, nil
}

func (f *Fixture) validate() error {
	var errs []error
	categories := map[string]bool{}
	for _, m := range f.Markets {
		if m.ID == "" || m.Slug == "" {
			errs = append(errs, fmt.Errorf("market %q needs an id and a slug", m.Name))
		}
		for _, c := range m.Categories {
			if c.ID == "" || c.Slug == "" {
				errs = append(errs, fmt.Errorf("category %q needs an id and a slug", c.Name))
			}
			categories[c.ID] = true
		}
	}
	ids := map[string]bool{}
	for _, n := range f.Nodes {
		if n.ID == "" || n.Slug == "" {
			errs = append(errs, fmt.Errorf("node %q needs an id and a slug", n.Name))
		}
		if ids[n.ID] {
			errs = append(errs, fmt.Errorf("duplicate node id %q", n.ID))
		}
		ids[n.ID] = true
		if n.Category != "" && !categories[n.Category] {
			errs = append(errs, fmt.Errorf("node %q: unknown category %q", n.ID, n.Category))
		}
	}
	return errors.Join(errs...)
}

func (f *Fixture) node(id string) (*FixtureNode, bool) {
	for i := range f.Nodes {
		if f.Nodes[i].ID == id {
			return &f.Nodes[i], true
		}
	}
	return nil, false
}

func (f *Fixture) nodeBySlug(slug string) (*FixtureNode, bool) {
	for i := range f.Nodes {
		if f.Nodes[i].Slug == slug {
			return &f.Nodes[i], true
		}
	}
	return nil, false
}

func (f *Fixture) market(id string) (*FixtureMarket, bool) {
	for i := range f.Markets {
		if f.Markets[i].ID == id {
			return &f.Markets[i], true
		}
	}
	return nil, false
}

func (f *Fixture) category(match func(*FixtureCategory) bool) (*FixtureCategory, bool) {
	for i := range f.Markets {
		for j := range f.Markets[i].Categories {
			if c := &f.Markets[i].Categories[j]; match(c) {
				return c, true
			}
		}
	}
	return nil, false
}

// marketOf returns the market owning category id.
func (f *Fixture) marketOf(categoryID string) string {
	for _, m := range f.Markets {
		for _, c := range m.Categories {
			if c.ID == categoryID {
				return m.ID
			}
		}
	}
	return ""
}

// nodesWhere returns the nodes matching keep in fixture order.
func (f *Fixture) nodesWhere(keep func(*FixtureNode) bool) []*FixtureNode {
	var out []*FixtureNode
	for i := range f.Nodes {
		if keep(&f.Nodes[i]) {
			out = append(out, &f.Nodes[i])
		}
	}
	return out
}

// scoped reports whether n belongs to every given taxonomy term. A term is
// either a market or a category id.
func (f *Fixture) scoped(n *FixtureNode, terms []string) bool {
	for _, t := range terms {
		if n.Category != t && f.marketOf(n.Category) != t {
			return false
		}
	}
	return true
}

// knownTerm reports whether id names a market or a category.
func (f *Fixture) knownTerm(id string) bool {
	if _, ok := f.market(id); ok {
		return true
	}
	_, ok := f.category(func(c *FixtureCategory) bool { return c.ID == id })
	return ok
}

func (n *FixtureNode) matches(term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(n.Name), term) ||
		strings.Contains(strings.ToLower(n.ShortDescription), term) ||
		slices.Contains(n.Tags, term)
}

// DefaultFixture is a small two-market catalog with one non-installable
// node and a favorites list for user "alice".
func DefaultFixture() *Fixture {
	return &Fixture{
		Markets: []FixtureMarket{
			{ID: "31", Name: "Tools", Slug: "tools", Categories: []FixtureCategory{
				{ID: "1", Name: "Editor", Slug: "editor"},
				{ID: "2", Name: "SCM", Slug: "scm"},
			}},
			{ID: "38", Name: "Themes", Slug: "themes", Categories: []FixtureCategory{
				{ID: "3", Name: "Dark", Slug: "dark"},
			}},
		},
		Nodes: []FixtureNode{
			{
				ID: "1139", Name: "Mylyn", Slug: "mylyn", Category: "1",
				ShortDescription: "Task-focused interface.",
				Owner:            "Eclipse Mylyn",
				UpdateURL:        "http://download.example/mylyn/releases/latest",
				Favorited:        412,
				Tags:             []string{"tasks"},
				IUs: []domain.IU{
					{ID: "org.eclipse.mylyn_feature", Selected: true},
					{ID: "org.eclipse.mylyn.bugzilla_feature", Optional: true},
				},
			},
			{
				ID: "1140", Name: "EGit", Slug: "egit", Category: "2",
				ShortDescription: "Git integration.",
				Owner:            "Eclipse EGit",
				UpdateURL:        "http://download.example/egit/updates",
				Favorited:        380,
				Tags:             []string{"git", "scm"},
				IUs:              []domain.IU{{ID: "org.eclipse.egit", Selected: true}},
			},
			{
				ID: "1141", Name: "Darkest Dark", Slug: "darkest-dark", Category: "3",
				ShortDescription: "A dark theme.",
				Owner:            "DevStyle",
				UpdateURL:        "http://download.example/devstyle",
				Favorited:        97,
				Tags:             []string{"theme"},
				IUs:              []domain.IU{{ID: "com.genuitec.eclipse.theming"}},
			},
			{
				ID: "1142", Name: "Eclipse Docs", Slug: "docs", Category: "1",
				ShortDescription: "Documentation only, nothing to install.",
				Owner:            "Eclipse Foundation",
				Tags:             []string{"docs"},
			},
		},
		Featured:     []string{"1139", "1141"},
		Recent:       []string{"1140", "1142"},
		Popular:      []string{"1139", "1140"},
		TopFavorites: []string{"1139"},
		Related:      map[string][]string{"1139": {"1140"}, "1140": {"1139", "1141"}},
		News: &FixtureNews{
			ShortTitle: "News",
			URL:        "http://marketplace.example/news",
			Timestamp:  time.Unix(1700000000, 0).UTC(),
		},
		Favorites: map[string][]string{"alice": {"1142", "1139", "1140"}},
		Clients:   map[string]string{"mpc": "secret"},
	}
}
