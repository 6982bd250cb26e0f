package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/halvard/deckard/internal/server"
	"github.com/halvard/deckard/pkg/library"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string // listen address
	dir       string // deck library directory
	mongoURI  string // mongodb library backend
	redisAddr string // redis artifact cache
	noCache   bool   // disable artifact caching
}

// serveCommand creates the serve command, exposing a deck library over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080", dir: "."}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a deck library over HTTP",
		Long: `Serve exposes a deck library through a JSON API.

By default decks are read from .deck files in a directory. With
--mongo-uri the library is backed by MongoDB instead. Rendered
artifacts are cached on disk, or in Redis with --redis.

Routes:
  GET /healthz
  GET /decks
  GET /decks/{id}?format=json|html|text
  GET /decks/{id}/slides/{path}?fragment=N&format=html

Examples:
  deckard serve --dir ./decks
  deckard serve --mongo-uri mongodb://localhost:27017 --redis localhost:6379`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.dir, "dir", opts.dir, "deck library directory")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "MongoDB connection URI for the deck library")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "redis address for the artifact cache (host:port)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable artifact caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	lib, err := newLibrary(ctx, opts)
	if err != nil {
		return fmt.Errorf("open library: %w", err)
	}
	defer lib.Close()

	runner, err := c.newRunner(ctx, opts.noCache, opts.redisAddr)
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}
	defer runner.Cache.Close()

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           server.New(lib, runner, c.Logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("Serving deck library", "addr", opts.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		c.Logger.Info("Server stopped")
		return nil
	}
}

// newLibrary opens the configured deck library backend.
func newLibrary(ctx context.Context, opts serveOpts) (library.Store, error) {
	if opts.mongoURI != "" {
		return library.NewMongoStore(ctx, library.MongoConfig{URI: opts.mongoURI})
	}
	return library.NewDirStore(opts.dir)
}
