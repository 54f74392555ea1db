package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studiolane/roomcraft/internal/server"
	"github.com/studiolane/roomcraft/pkg/pipeline"
	"github.com/studiolane/roomcraft/pkg/session"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the recommendation engine over HTTP",
		Long: `Serve the recommendation engine over HTTP.

Sessions live in memory by default, so layouts survive only as long as
the process. Pass --redis to keep them in Redis instead, which lets
several server instances share one session space.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisAddr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "redis address for session storage (host:port)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result caching")

	return cmd
}

// runServe assembles the store and runner and blocks until shutdown.
func (c *CLI) runServe(ctx context.Context, addr, redisAddr string, noCache bool) error {
	var store session.Store
	if redisAddr != "" {
		redisStore, err := session.NewRedisStore(ctx, session.RedisConfig{Addr: redisAddr})
		if err != nil {
			return fmt.Errorf("connect redis %s: %w", redisAddr, err)
		}
		defer redisStore.Close()
		store = redisStore
		c.Logger.Info("using redis session store", "addr", redisAddr)
	}

	var runner *pipeline.Runner
	if !noCache {
		r, err := c.newRunner(false)
		if err != nil {
			return fmt.Errorf("initialize runner: %w", err)
		}
		defer r.Close()
		runner = r
	}

	srv := server.New(server.Config{
		Addr:   addr,
		Store:  store,
		Runner: runner,
		Logger: c.Logger,
	})

	printInfo("Listening on %s", addr)
	printDetail("GET  /api/v1/styles")
	printDetail("POST /api/v1/sessions")
	printDetail("POST /api/v1/recommendations")
	printDetail("POST /api/v1/rooms/{id}/items/{itemID}/move")
	printDetail("POST /api/v1/budget/reallocate")
	printDetail("GET  /api/v1/plan.svg")

	err := srv.ListenAndServe(ctx)
	if errors.Is(err, context.Canceled) {
		printNewline()
		printInfo("Shutting down")
		return nil
	}
	return err
}
