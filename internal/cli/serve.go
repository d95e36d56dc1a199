package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/flowlens/flowlens/pkg/cache"
	"github.com/flowlens/flowlens/pkg/config"
	"github.com/flowlens/flowlens/pkg/server"
	"github.com/flowlens/flowlens/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
// Unset flags fall back to config file values, then to built-in defaults.
type serveOpts struct {
	addr       string // listen address
	redisAddr  string // Redis cache backend
	archiveURI string // MongoDB archive connection string
	noCache    bool   // disable response caching
}

// newServeCmd creates the serve command.
// It runs the HTTP parse API until interrupted.
func newServeCmd() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP parse API",
		Long: `Serve the flowlens HTTP API.

Uploaded workflow documents are parsed, archived, and served back by ID.
By default records live in process memory and results are cached on
disk; configure --redis and --archive-uri for shared deployments.

Examples:
  flowlens serve
  flowlens serve --addr :9090 --redis localhost:6379
  flowlens serve --archive-uri mongodb://localhost:27017`,
		RunE: func(c *cobra.Command, args []string) error {
			return runServe(c.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config, then :8080)")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address for the response cache")
	cmd.Flags().StringVar(&opts.archiveURI, "archive-uri", "", "MongoDB URI for the workflow archive")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable response caching")

	return cmd
}

func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	addr := opts.addr
	if addr == "" {
		addr = cfg.Server.Addr
	}
	redisAddr := opts.redisAddr
	if redisAddr == "" {
		redisAddr = cfg.Cache.RedisAddr
	}

	ttl, err := cfg.CacheTTL()
	if err != nil {
		return err
	}

	c, err := buildCache(ctx, opts.noCache, redisAddr, cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	st, err := buildStore(ctx, opts.archiveURI, logger)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close(context.Background()) }()

	srv := server.New(server.Options{
		Cache:    c,
		Store:    st,
		Logger:   logger,
		CacheTTL: ttl,
	})

	err = srv.ListenAndServe(ctx, addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// buildCache picks the response cache backend: Redis when configured,
// otherwise the file cache, otherwise nothing.
func buildCache(ctx context.Context, disabled bool, redisAddr string, cfg config.Config) (cache.Cache, error) {
	if disabled {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return cache.NewRedisCache(connectCtx, redisAddr)
	}
	dir, err := cfg.CacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// buildStore picks the archive backend: MongoDB when an archive URI is
// given, otherwise process memory.
func buildStore(ctx context.Context, archiveURI string, logger interface{ Infof(string, ...any) }) (store.Store, error) {
	if archiveURI == "" {
		logger.Infof("Archiving workflows in memory (set --archive-uri for persistence)")
		return store.NewMemoryStore(), nil
	}
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return store.NewMongoStore(connectCtx, archiveURI)
}
