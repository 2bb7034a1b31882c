// Command mpc-mock serves a fake marketplace for local development and
// end-to-end tests of the mpc client.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/marketplace-client/internal/config"
	"github.com/donaldgifford/marketplace-client/internal/favorites"
	"github.com/donaldgifford/marketplace-client/internal/mockserver"
	"github.com/donaldgifford/marketplace-client/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

type options struct {
	config   string
	fixture  string
	host     string
	port     int
	postgres bool
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "mpc-mock",
		Short: "Serve a fake marketplace",
		Long: "mpc-mock serves catalog documents, the favorites service and its\n" +
			"token endpoint from a YAML fixture. Without a fixture it serves a\n" +
			"small built-in catalog.",
		Example: `  mpc-mock
  mpc-mock --fixture testdata/fixture.yaml --port 9000
  mpc-mock --config mpc.yaml --postgres`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), &opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.config, "config", "", "config file")
	flags.StringVar(&opts.fixture, "fixture", "", "fixture file (overrides server.fixtures)")
	flags.StringVar(&opts.host, "host", "", "listen host (overrides server.host)")
	flags.IntVar(&opts.port, "port", 0, "listen port (overrides server.port)")
	flags.BoolVar(&opts.postgres, "postgres", false, "serve favorites from the configured PostgreSQL store")

	return cmd
}

func run(ctx context.Context, opts *options) error {
	cfg := config.Default()
	if opts.config != "" {
		loaded, err := config.Load(opts.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}
	if opts.fixture != "" {
		cfg.Server.Fixtures = opts.fixture
	}
	if opts.host != "" {
		cfg.Server.Host = opts.host
	}
	if opts.port != 0 {
		cfg.Server.Port = opts.port
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	fixture := mockserver.DefaultFixture()
	if cfg.Server.Fixtures != "" {
		loaded, err := mockserver.LoadFixture(cfg.Server.Fixtures)
		if err != nil {
			return err
		}
		fixture = loaded
		log.Info("loaded fixture", "path", cfg.Server.Fixtures, "nodes", len(fixture.Nodes))
	}

	serverOpts := []mockserver.Option{mockserver.WithLogger(log)}
	if opts.postgres {
		store, err := openStore(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer store.Close()
		serverOpts = append(serverOpts, mockserver.WithFavoritesBackend(func(user string) favorites.Provider {
			return store.ForUser(user)
		}))
	}

	srv := mockserver.New(fixture, serverOpts...)
	addr := cfg.Server.Host + ":" + strconv.Itoa(cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(addr, cfg.Server.ReadTimeout, cfg.Server.WriteTimeout)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}

// openStore connects to the favorites database and applies migrations.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (*favorites.PostgresStore, error) {
	db := &cfg.Favorites.Postgres
	user := cfg.Favorites.User
	if user == "" {
		user = "mock"
	}

	store, err := favorites.NewPostgresStore(ctx, db.DSN(), user, favorites.WithPoolSize(int32(db.PoolSize)))
	if err != nil {
		return nil, fmt.Errorf("connecting to favorites store: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	log.Info("favorites store ready", "host", db.Host, "database", db.Name)
	return store, nil
}
