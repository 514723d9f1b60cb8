package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/ec-intl/chartly/internal/server"
	"github.com/ec-intl/chartly/pkg/cache"
	"github.com/ec-intl/chartly/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string // listen address
	noCache   bool   // disable artifact caching
	redisAddr string // redis address; empty selects the file cache
	redisPass string // redis password
	redisDB   int    // redis database number
}

// serveCommand creates the serve command running the HTTP rendering service.
// The artifact cache backend is selected by flags: --redis points at a
// Redis instance, --no-cache disables caching, and the default is the
// local file cache.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the rendering pipeline over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "redis address for the artifact cache (e.g. localhost:6379)")
	cmd.Flags().StringVar(&opts.redisPass, "redis-password", "", "redis password")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", 0, "redis database number")

	return cmd
}

// runServe builds the cache backend and blocks serving HTTP until ctx is
// cancelled.
func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	store, backend, err := serveCache(ctx, opts)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(store, nil, c.Logger)
	defer runner.Close()

	printKeyValue("Address", opts.addr)
	printKeyValue("Cache", backend)
	printNextStep("Try it", fmt.Sprintf("curl -X POST localhost%s/render -d @figure.json", opts.addr))
	printNewline()

	srv := server.New(runner, c.Logger, opts.addr)
	err = srv.ListenAndServe(ctx)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// serveCache selects the cache backend for the server.
func serveCache(ctx context.Context, opts *serveOpts) (cache.Cache, string, error) {
	switch {
	case opts.noCache:
		return cache.NewNullCache(), "disabled", nil
	case opts.redisAddr != "":
		store, err := cache.NewRedisCache(ctx, opts.redisAddr, opts.redisPass, opts.redisDB)
		if err != nil {
			return nil, "", fmt.Errorf("connect to redis: %w", err)
		}
		return store, fmt.Sprintf("redis (%s)", opts.redisAddr), nil
	default:
		store, err := newCache(false)
		if err != nil {
			return nil, "", err
		}
		dir, _ := cacheDir()
		return store, fmt.Sprintf("file (%s)", dir), nil
	}
}
