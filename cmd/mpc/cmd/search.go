package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/marketplace-client/internal/catalog"
	domain "github.com/donaldgifford/marketplace-client/pkg/types"
)

// scopeFlags narrows a search or listing to a market and category.
type scopeFlags struct {
	market   string
	category string
}

func (f *scopeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.market, "market", "", "market id")
	cmd.Flags().StringVar(&f.category, "category", "", "category id")
}

func (f *scopeFlags) scope() (*domain.Market, *domain.Category) {
	var (
		m *domain.Market
		c *domain.Category
	)
	if f.market != "" {
		m = &domain.Market{ID: f.market}
	}
	if f.category != "" {
		c = &domain.Category{ID: f.category}
	}
	return m, c
}

func searchCmd() *cobra.Command {
	var (
		scope   scopeFlags
		browser bool
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the catalog",
		Long: "Search runs a text search, optionally narrowed to a market and\n" +
			"category. Without a query it browses the given market and category.",
		Example: `  mpc search mylyn
  mpc search "git client" --market 31 --category 2
  mpc search --category 2
  mpc search mylyn --browser`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			market, category := scope.scope()

			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			if browser {
				path, ok := c.catalog.BrowserSearchPath(market, category, query)
				if !ok {
					return fmt.Errorf("%w: nothing to search for", catalog.ErrInvalidArgument)
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			res, err := c.catalog.Search(ctx, market, category, query)
			if err != nil {
				return err
			}
			return writeResult(cmd, res)
		},
	}
	scope.register(cmd)
	cmd.Flags().BoolVar(&browser, "browser", false, "print the web page path instead of searching")

	return cmd
}

func taggedCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "tagged <tag>",
		Short:   "List nodes carrying a tag",
		Example: `  mpc tagged git`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListing(cmd, func(ctx context.Context, cat catalog.Catalog) (domain.SearchResult, error) {
				return cat.Tagged(ctx, args[0])
			})
		},
	}
}

func featuredCmd() *cobra.Command {
	var scope scopeFlags

	cmd := &cobra.Command{
		Use:   "featured",
		Short: "List featured nodes",
		Example: `  mpc featured
  mpc featured --market 31`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			market, category := scope.scope()
			return runListing(cmd, func(ctx context.Context, cat catalog.Catalog) (domain.SearchResult, error) {
				return cat.Featured(ctx, market, category)
			})
		},
	}
	scope.register(cmd)

	return cmd
}

type listingFunc func(ctx context.Context, cat catalog.Catalog) (domain.SearchResult, error)

func recentListing(ctx context.Context, cat catalog.Catalog) (domain.SearchResult, error) {
	return cat.Recent(ctx)
}

func popularListing(ctx context.Context, cat catalog.Catalog) (domain.SearchResult, error) {
	return cat.Popular(ctx)
}

func topFavoritesListing(ctx context.Context, cat catalog.Catalog) (domain.SearchResult, error) {
	return cat.TopFavorites(ctx)
}

func listingCmd(use, short string, list listingFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runListing(cmd, list)
		},
	}
}

func relatedCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "related [node-id...]",
		Short:   "List recommendations based on the given nodes",
		Example: `  mpc related 1139 1140`,
		RunE: func(cmd *cobra.Command, args []string) error {
			basedOn := make([]domain.Node, 0, len(args))
			for _, id := range args {
				basedOn = append(basedOn, domain.Node{ID: id})
			}
			return runListing(cmd, func(ctx context.Context, cat catalog.Catalog) (domain.SearchResult, error) {
				return cat.Related(ctx, basedOn)
			})
		},
	}
}

func newsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "news",
		Short: "Show the marketplace news feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			ctx, cancel := commandContext(cmd)
			defer cancel()

			news, err := c.catalog.News(ctx)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), news)
			}
			return printNews(cmd.OutOrStdout(), news)
		},
	}
}

func runListing(cmd *cobra.Command, list listingFunc) error {
	c, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer c.Close()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	res, err := list(ctx, c.catalog)
	if err != nil {
		return err
	}
	return writeResult(cmd, res)
}

func writeResult(cmd *cobra.Command, res domain.SearchResult) error {
	if jsonOutput() {
		return outputJSON(cmd.OutOrStdout(), res)
	}
	return printSearchResult(cmd.OutOrStdout(), res)
}
