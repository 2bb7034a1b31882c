package transport

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	domain "github.com/donaldgifford/marketplace-client/pkg/types"
)

// xmlMarketplace is the <marketplace> envelope returned by every catalog
// endpoint.
type xmlMarketplace struct {
	XMLName    xml.Name      `xml:"marketplace"`
	Markets    []xmlMarket   `xml:"market"`
	Categories []xmlCategory `xml:"category"`
	Nodes      []xmlNode     `xml:"node"`
	Search     *xmlListing   `xml:"search"`
	Featured   *xmlListing   `xml:"featured"`
	Recent     *xmlListing   `xml:"recent"`
	Favorites  *xmlListing   `xml:"favorites"`
	Popular    *xmlListing   `xml:"popular"`
	Related    *xmlListing   `xml:"related"`
	News       *xmlNews      `xml:"news"`
}

type xmlMarket struct {
	ID         string        `xml:"id,attr"`
	Name       string        `xml:"name,attr"`
	URL        string        `xml:"url,attr"`
	Categories []xmlCategory `xml:"category"`
}

type xmlCategory struct {
	ID    string    `xml:"id,attr"`
	Name  string    `xml:"name,attr"`
	URL   string    `xml:"url,attr"`
	Count int       `xml:"count,attr,omitempty"`
	Nodes []xmlNode `xml:"node"`
}

type xmlNode struct {
	ID               string  `xml:"id,attr"`
	Name             string  `xml:"name,attr"`
	URL              string  `xml:"url,attr"`
	ShortDescription string  `xml:"shortdescription,omitempty"`
	Owner            string  `xml:"owner,omitempty"`
	UpdateURL        string  `xml:"updateurl,omitempty"`
	Favorited        int     `xml:"favorited,omitempty"`
	IUs              *xmlIUs `xml:"ius"`
}

type xmlIUs struct {
	IUs []xmlIU `xml:"iu"`
}

type xmlIU struct {
	ID       string `xml:",chardata"`
	Optional bool   `xml:"optional,attr,omitempty"`
	Selected bool   `xml:"selected,attr,omitempty"`
}

type xmlListing struct {
	Count int       `xml:"count,attr"`
	Term  string    `xml:"term,attr,omitempty"`
	Nodes []xmlNode `xml:"node"`
}

type xmlNews struct {
	ShortTitle string `xml:"shorttitle"`
	URL        string `xml:"url"`
	Timestamp  int64  `xml:"timestamp,omitempty"` // unix seconds
}

// DecodeDocument parses a <marketplace> XML document.
func DecodeDocument(r io.Reader) (*domain.Document, error) {
	var m xmlMarketplace
	if err := xml.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decoding marketplace document: %w", err)
	}
	return m.toDomain(), nil
}

// EncodeDocument writes doc as a <marketplace> XML document.
func EncodeDocument(w io.Writer, doc *domain.Document) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("writing xml header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(fromDomain(doc)); err != nil {
		return fmt.Errorf("encoding marketplace document: %w", err)
	}
	return nil
}

func (m *xmlMarketplace) toDomain() *domain.Document {
	doc := &domain.Document{
		Search:    m.Search.toDomain(),
		Featured:  m.Featured.toDomain(),
		Recent:    m.Recent.toDomain(),
		Favorites: m.Favorites.toDomain(),
		Popular:   m.Popular.toDomain(),
		Related:   m.Related.toDomain(),
	}
	for i := range m.Markets {
		doc.Markets = append(doc.Markets, m.Markets[i].toDomain())
	}
	doc.Categories = toCategories(m.Categories)
	doc.Nodes = toNodes(m.Nodes)
	if m.News != nil {
		doc.News = &domain.News{
			ShortTitle: strings.TrimSpace(m.News.ShortTitle),
			URL:        strings.TrimSpace(m.News.URL),
		}
		if m.News.Timestamp > 0 {
			doc.News.Timestamp = time.Unix(m.News.Timestamp, 0).UTC()
		}
	}
	return doc
}

func (m *xmlMarket) toDomain() domain.Market {
	return domain.Market{
		ID:         m.ID,
		URL:        m.URL,
		Name:       m.Name,
		Categories: toCategories(m.Categories),
	}
}

func toCategories(in []xmlCategory) []domain.Category {
	if len(in) == 0 {
		return nil
	}
	out := make([]domain.Category, 0, len(in))
	for i := range in {
		out = append(out, domain.Category{
			ID:    in[i].ID,
			URL:   in[i].URL,
			Name:  in[i].Name,
			Count: in[i].Count,
			Nodes: toNodes(in[i].Nodes),
		})
	}
	return out
}

func toNodes(in []xmlNode) []domain.Node {
	if len(in) == 0 {
		return nil
	}
	out := make([]domain.Node, 0, len(in))
	for i := range in {
		out = append(out, in[i].toDomain())
	}
	return out
}

func (n *xmlNode) toDomain() domain.Node {
	node := domain.Node{
		ID:               n.ID,
		URL:              n.URL,
		Name:             n.Name,
		ShortDescription: strings.TrimSpace(n.ShortDescription),
		Owner:            strings.TrimSpace(n.Owner),
		UpdateURL:        strings.TrimSpace(n.UpdateURL),
		FavoritedCount:   n.Favorited,
	}
	if n.IUs != nil {
		node.IUs = &domain.IUs{Elements: make([]domain.IU, 0, len(n.IUs.IUs))}
		for _, iu := range n.IUs.IUs {
			id := strings.TrimSpace(iu.ID)
			if id == "" {
				continue
			}
			node.IUs.Elements = append(node.IUs.Elements, domain.IU{
				ID:       id,
				Optional: iu.Optional,
				Selected: iu.Selected,
			})
		}
	}
	return node
}

func (l *xmlListing) toDomain() *domain.Listing {
	if l == nil {
		return nil
	}
	return &domain.Listing{Count: l.Count, Term: l.Term, Nodes: toNodes(l.Nodes)}
}

func fromDomain(doc *domain.Document) *xmlMarketplace {
	m := &xmlMarketplace{
		Search:    fromListing(doc.Search),
		Featured:  fromListing(doc.Featured),
		Recent:    fromListing(doc.Recent),
		Favorites: fromListing(doc.Favorites),
		Popular:   fromListing(doc.Popular),
		Related:   fromListing(doc.Related),
	}
	for i := range doc.Markets {
		mk := &doc.Markets[i]
		m.Markets = append(m.Markets, xmlMarket{
			ID:         mk.ID,
			Name:       mk.Name,
			URL:        mk.URL,
			Categories: fromCategories(mk.Categories),
		})
	}
	m.Categories = fromCategories(doc.Categories)
	m.Nodes = fromNodes(doc.Nodes)
	if doc.News != nil {
		m.News = &xmlNews{ShortTitle: doc.News.ShortTitle, URL: doc.News.URL}
		if !doc.News.Timestamp.IsZero() {
			m.News.Timestamp = doc.News.Timestamp.Unix()
		}
	}
	return m
}

func fromCategories(in []domain.Category) []xmlCategory {
	out := make([]xmlCategory, 0, len(in))
	for i := range in {
		out = append(out, xmlCategory{
			ID:    in[i].ID,
			Name:  in[i].Name,
			URL:   in[i].URL,
			Count: in[i].Count,
			Nodes: fromNodes(in[i].Nodes),
		})
	}
	return out
}

func fromNodes(in []domain.Node) []xmlNode {
	out := make([]xmlNode, 0, len(in))
	for i := range in {
		n := &in[i]
		x := xmlNode{
			ID:               n.ID,
			Name:             n.Name,
			URL:              n.URL,
			ShortDescription: n.ShortDescription,
			Owner:            n.Owner,
			UpdateURL:        n.UpdateURL,
			Favorited:        n.FavoritedCount,
		}
		if n.IUs != nil {
			x.IUs = &xmlIUs{}
			for _, iu := range n.IUs.Elements {
				x.IUs.IUs = append(x.IUs.IUs, xmlIU(iu))
			}
		}
		out = append(out, x)
	}
	return out
}

func fromListing(l *domain.Listing) *xmlListing {
	if l == nil {
		return nil
	}
	return &xmlListing{Count: l.Count, Term: l.Term, Nodes: fromNodes(l.Nodes)}
}
