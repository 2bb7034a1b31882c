package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	domain "github.com/donaldgifford/marketplace-client/pkg/types"
)

func marketsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "markets",
		Short: "List markets and their categories",
		Example: `  mpc markets
  mpc markets --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			ctx, cancel := commandContext(cmd)
			defer cancel()

			markets, err := c.catalog.ListMarkets(ctx)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), markets)
			}
			return printMarketsTable(cmd.OutOrStdout(), markets)
		},
	}
}

func marketCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "market <id>",
		Short:   "Show a market",
		Example: `  mpc market 31`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			ctx, cancel := commandContext(cmd)
			defer cancel()

			m, err := c.catalog.Market(ctx, domain.Market{ID: args[0]})
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), m)
			}
			return printMarketDetail(cmd.OutOrStdout(), &m)
		},
	}
}

func categoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "category <id|url>",
		Short: "Show a category and its nodes",
		Example: `  mpc category 2
  mpc category http://marketplace.eclipse.org/category/scm --progress`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			ctx, cancel := commandContext(cmd)
			defer cancel()

			cat, err := c.catalog.Category(ctx, categoryQuery(args[0]))
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), cat)
			}
			return printCategoryDetail(cmd.OutOrStdout(), &cat)
		},
	}
}

func nodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "node <id|url>",
		Short: "Show a node with its installable units",
		Example: `  mpc node 1139
  mpc node http://marketplace.eclipse.org/content/mylyn`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			ctx, cancel := commandContext(cmd)
			defer cancel()

			n, err := c.catalog.Node(ctx, nodeQuery(args[0]))
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), n)
			}
			return printNodeDetail(cmd.OutOrStdout(), &n)
		},
	}
}

// isURL reports whether arg is an absolute URL rather than an id.
func isURL(arg string) bool {
	return strings.Contains(arg, "://")
}

func categoryQuery(arg string) domain.Category {
	if isURL(arg) {
		return domain.Category{URL: arg}
	}
	return domain.Category{ID: arg}
}

func nodeQuery(arg string) domain.Node {
	if isURL(arg) {
		return domain.Node{URL: arg}
	}
	return domain.Node{ID: arg}
}

func nodeQueries(args []string) []domain.Node {
	nodes := make([]domain.Node, 0, len(args))
	for _, a := range args {
		nodes = append(nodes, nodeQuery(a))
	}
	return nodes
}
