package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	domain "github.com/donaldgifford/marketplace-client/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printMarketsTable(w io.Writer, markets []domain.Market) error {
	tw := newTabWriter(w)
	tw.writef("MARKET\tCATEGORY\tNAME\tURL\n")
	for i := range markets {
		m := &markets[i]
		tw.writef("%s\t\t%s\t%s\n", m.ID, m.Name, m.URL)
		for j := range m.Categories {
			c := &m.Categories[j]
			tw.writef("\t%s\t%s\t%s\n", c.ID, c.Name, c.URL)
		}
	}
	return tw.finish()
}

func printMarketDetail(w io.Writer, m *domain.Market) error {
	tw := newTabWriter(w)
	tw.writef("ID:\t%s\n", m.ID)
	tw.writef("Name:\t%s\n", m.Name)
	tw.writef("URL:\t%s\n", m.URL)
	for i := range m.Categories {
		tw.writef("Category:\t%s %s\n", m.Categories[i].ID, m.Categories[i].Name)
	}
	return tw.finish()
}

func printCategoryDetail(w io.Writer, c *domain.Category) error {
	tw := newTabWriter(w)
	tw.writef("ID:\t%s\n", c.ID)
	tw.writef("Name:\t%s\n", c.Name)
	tw.writef("URL:\t%s\n", c.URL)
	tw.writef("Nodes:\t%d\n", len(c.Nodes))
	if err := tw.finish(); err != nil {
		return err
	}
	if len(c.Nodes) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return printNodesTable(w, c.Nodes)
}

func printNodesTable(w io.Writer, nodes []domain.Node) error {
	tw := newTabWriter(w)
	tw.writef("ID\tNAME\tINSTALLABLE\tFAVORITE\tURL\n")
	for i := range nodes {
		n := &nodes[i]
		tw.writef("%s\t%s\t%s\t%s\t%s\n",
			n.ID,
			truncate(n.Name, 40),
			yesNo(n.Installable()),
			favoriteLabel(n.Favorited),
			n.URL,
		)
	}
	return tw.finish()
}

func printSearchResult(w io.Writer, res domain.SearchResult) error {
	if len(res.Nodes) == 0 {
		_, err := fmt.Fprintln(w, "No nodes found.")
		return err
	}
	if err := printNodesTable(w, res.Nodes); err != nil {
		return err
	}
	if res.MatchCount > len(res.Nodes) {
		_, err := fmt.Fprintf(w, "\nShowing %d of %d matches.\n", len(res.Nodes), res.MatchCount)
		return err
	}
	return nil
}

func printNodeDetail(w io.Writer, n *domain.Node) error {
	tw := newTabWriter(w)
	tw.writef("ID:\t%s\n", n.ID)
	tw.writef("Name:\t%s\n", n.Name)
	tw.writef("URL:\t%s\n", n.URL)
	if n.ShortDescription != "" {
		tw.writef("Description:\t%s\n", truncate(n.ShortDescription, 80))
	}
	if n.Owner != "" {
		tw.writef("Owner:\t%s\n", n.Owner)
	}
	if n.UpdateURL != "" {
		tw.writef("Update Site:\t%s\n", n.UpdateURL)
	}
	tw.writef("Favorited:\t%d\n", n.FavoritedCount)
	tw.writef("Favorite:\t%s\n", favoriteLabel(n.Favorited))
	if n.IUs != nil {
		for _, iu := range n.IUs.Elements {
			var flags string
			switch {
			case iu.Selected:
				flags = " (selected)"
			case iu.Optional:
				flags = " (optional)"
			}
			tw.writef("IU:\t%s%s\n", iu.ID, flags)
		}
	}
	return tw.finish()
}

func printNews(w io.Writer, n *domain.News) error {
	if n == nil {
		_, err := fmt.Fprintln(w, "The marketplace has no news feed.")
		return err
	}
	tw := newTabWriter(w)
	tw.writef("Title:\t%s\n", n.ShortTitle)
	tw.writef("URL:\t%s\n", n.URL)
	if !n.Timestamp.IsZero() {
		tw.writef("Updated:\t%s\n", n.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return tw.finish()
}

func printFavoriteRefs(w io.Writer, refs []domain.FavoriteRef) error {
	tw := newTabWriter(w)
	tw.writef("ID\tURL\n")
	for _, r := range refs {
		tw.writef("%s\t%s\n", r.ID, r.URL)
	}
	return tw.finish()
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func favoriteLabel(f domain.Favorite) string {
	if f == domain.FavoriteUnknown {
		return "-"
	}
	return string(f)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
