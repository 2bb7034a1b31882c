package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/marketplace-client/internal/catalog"
	"github.com/donaldgifford/marketplace-client/internal/favorites"
	domain "github.com/donaldgifford/marketplace-client/pkg/types"
)

var errNoFavorites = errors.New("no favorites backend configured (set favorites.backend)")

func favoritesCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "favorites",
		Short: "Manage the user's favorites",
		Long: "Favorites are kept by the configured backend: the remote favorites\n" +
			"service or a local PostgreSQL store.",
	}

	root.AddCommand(
		favoritesListCmd(),
		favoritesMarkCmd(),
		favoritesAddCmd(),
		favoritesRemoveCmd(),
		favoritesMigrateCmd(),
	)

	return root
}

func favoritesListCmd() *cobra.Command {
	var (
		uri string
		raw bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List favorite nodes",
		Long: "List resolves the user's favorites to full nodes and keeps only\n" +
			"installable ones. With --uri it lists a shared favorites list\n" +
			"instead and keeps every node, installable ones first.",
		Example: `  mpc favorites list
  mpc favorites list --uri http://marketplace.eclipse.org/user/alice/favorites
  mpc favorites list --raw`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			ctx, cancel := commandContext(cmd)
			defer cancel()

			if raw {
				if c.favorites == nil {
					return errNoFavorites
				}
				refs, err := c.favorites.Favorites(ctx)
				if err != nil {
					return err
				}
				if jsonOutput() {
					return outputJSON(cmd.OutOrStdout(), refs)
				}
				return printFavoriteRefs(cmd.OutOrStdout(), refs)
			}

			var res domain.SearchResult
			if uri != "" {
				res, err = c.catalog.UserFavoritesByURI(ctx, uri)
			} else {
				res, err = c.catalog.UserFavorites(ctx)
			}
			if err != nil {
				return favoritesError(err)
			}
			return writeResult(cmd, res)
		},
	}
	cmd.Flags().StringVar(&uri, "uri", "", "favorites list URI")
	cmd.Flags().BoolVar(&raw, "raw", false, "print stored references without resolving them")

	return cmd
}

func favoritesMarkCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "mark <node-id|url>...",
		Short:   "Show which of the given nodes are favorites",
		Example: `  mpc favorites mark 1139 1140`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			ctx, cancel := commandContext(cmd)
			defer cancel()

			nodes, err := c.catalog.MarkFavorites(ctx, nodeQueries(args))
			if err != nil && len(nodes) == 0 {
				return favoritesError(err)
			}
			if err != nil {
				c.log.Warn("favorites unavailable, membership unknown", "error", err)
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), nodes)
			}
			return printNodesTable(cmd.OutOrStdout(), nodes)
		},
	}
}

func favoritesAddCmd() *cobra.Command {
	var nodeURL string

	cmd := &cobra.Command{
		Use:   "add <node-id>",
		Short: "Add a node to the favorites",
		Example: `  mpc favorites add 1139
  mpc favorites add 1139 --url http://marketplace.eclipse.org/content/mylyn`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()
			if c.favorites == nil {
				return errNoFavorites
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			if err := c.favorites.Add(ctx, domain.FavoriteRef{ID: args[0], URL: nodeURL}); err != nil {
				return favoritesError(err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added %s to favorites.\n", args[0])
			return err
		},
	}
	cmd.Flags().StringVar(&nodeURL, "url", "", "node URL")

	return cmd
}

func favoritesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <node-id>",
		Short:   "Remove a node from the favorites",
		Example: `  mpc favorites remove 1139`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()
			if c.favorites == nil {
				return errNoFavorites
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			if err := c.favorites.Remove(ctx, args[0]); err != nil {
				return favoritesError(err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from favorites.\n", args[0])
			return err
		},
	}
}

func favoritesMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the favorites store schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			store, ok := c.favorites.(*favorites.PostgresStore)
			if !ok {
				return errors.New("migrate needs favorites.backend: postgres")
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			if err := store.Migrate(ctx); err != nil {
				return fmt.Errorf("running migrations: %w", err)
			}
			c.log.Info("migrations complete")
			return nil
		},
	}
}

// favoritesError adds a hint to authorization and configuration failures.
func favoritesError(err error) error {
	switch {
	case errors.Is(err, catalog.ErrNotAuthorized):
		return fmt.Errorf("%w (check the favorites credentials)", err)
	case errors.Is(err, catalog.ErrUnsupported):
		return errNoFavorites
	default:
		return err
	}
}
