// Package cmd implements the mpc CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/donaldgifford/marketplace-client/internal/config"
	"github.com/donaldgifford/marketplace-client/internal/progress"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "mpc",
		Short: "Command-line client for the solution marketplace",
		Long: "mpc browses a solution marketplace catalog: markets, categories,\n" +
			"searches and curated listings. It also manages the user's favorites\n" +
			"and reports install outcomes back to the marketplace.",
		SilenceUsage: true,
	}
)

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default $HOME/.mpc.yaml)")
	flags.String("base-url", "", "marketplace URL (default "+config.DefaultBaseURL+")")
	flags.String("output", "table", "output format (table, json)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.Bool("cache", false, "cache catalog lookups for the duration of the command")
	flags.Bool("progress", false, "report progress of long operations on stderr")
	flags.String("user", "", "favorites user")
	flags.String("token", "", "static bearer token for the remote favorites service")

	for _, name := range []string{"base-url", "output", "log-level", "cache", "progress", "user", "token"} {
		cobra.CheckErr(viper.BindPFlag(name, flags.Lookup(name)))
	}

	rootCmd.AddCommand(
		marketsCmd(),
		marketCmd(),
		categoryCmd(),
		nodeCmd(),
		searchCmd(),
		taggedCmd(),
		featuredCmd(),
		listingCmd("recent", "List recently updated nodes", recentListing),
		listingCmd("popular", "List the most active nodes", popularListing),
		listingCmd("top-favorites", "List the nodes favorited by most users", topFavoritesListing),
		relatedCmd(),
		newsCmd(),
		favoritesCmd(),
		reportCmd(),
		versionCmd(),
	)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".mpc")
	}

	viper.SetEnvPrefix("MPC")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig reads the config file found by viper, or the defaults when
// there is none, and applies flag and environment overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if path := viper.ConfigFileUsed(); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	applyOverrides(cfg, viper.GetViper())
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func applyOverrides(cfg *config.Config, v *viper.Viper) {
	if v.IsSet("base-url") {
		cfg.Catalog.BaseURL = v.GetString("base-url")
	}
	if v.IsSet("log-level") {
		cfg.Logging.Level = v.GetString("log-level")
	}
	if v.IsSet("cache") {
		cfg.Cache.Enabled = v.GetBool("cache")
	}
	if v.IsSet("user") {
		cfg.Favorites.User = v.GetString("user")
	}
	if v.IsSet("token") {
		cfg.Favorites.Remote.Token = v.GetString("token")
		if cfg.Favorites.Backend == config.FavoritesNone {
			cfg.Favorites.Backend = config.FavoritesRemote
		}
	}
}

// commandContext is cancelled on SIGINT or SIGTERM and, with --progress,
// reports progress on stderr.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	if viper.GetBool("progress") {
		errOut := cmd.ErrOrStderr()
		ctx = progress.WithReporter(ctx, func(fraction float64, task string) {
			fmt.Fprintf(errOut, "\r%3.0f%% %s\033[K", fraction*100, task)
			if fraction >= 1 {
				fmt.Fprintln(errOut)
			}
		})
	}
	return ctx, cancel
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
