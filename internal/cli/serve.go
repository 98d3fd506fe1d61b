package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gridwerk/gridwerk/pkg/cache"
	"github.com/gridwerk/gridwerk/pkg/document"
	"github.com/gridwerk/gridwerk/pkg/pipeline"
	"github.com/gridwerk/gridwerk/pkg/server"
)

// ============================================================================
// Serve Command
// ============================================================================

// serveOpts holds flags for the serve command.
type serveOpts struct {
	addr     string
	dataDir  string
	mongoURL string
	mongoDB  string
	redisURL string
	noCache  bool
}

// serveCommand creates the serve command for the HTTP preview server.
func (c *CLI) serveCommand() *cobra.Command {
	opts := &serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP preview server",
		Long: `Run an HTTP server exposing grid sheets and documents.

GET /grid.svg (or .png, .pdf, .json, .txt) renders a sheet from query
parameters. /documents offers create, read and delete over stored
documents. Documents live on disk by default, or in MongoDB when
--mongo-url is set. Rendered sheets are cached on disk, or in Redis
when --redis-url is set.

Examples:
  # Local preview on the default port
  gridwerk serve

  # Shared instance with external stores
  gridwerk serve --addr :9000 \
    --mongo-url mongodb://localhost:27017 \
    --redis-url redis://localhost:6379/0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8750", "listen address")
	cmd.Flags().StringVar(&opts.dataDir, "data-dir", "", "document directory (default ~/.local/share/gridwerk/documents)")
	cmd.Flags().StringVar(&opts.mongoURL, "mongo-url", "", "MongoDB connection URL for document storage")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", "gridwerk", "MongoDB database name")
	cmd.Flags().StringVar(&opts.redisURL, "redis-url", "", "Redis URL for the render cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "serve without a render cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	store, err := c.newStore(ctx, opts)
	if err != nil {
		return err
	}
	defer store.Close()

	serveCache, err := c.newServeCache(ctx, opts)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(serveCache, nil, c.Logger)
	defer runner.Close()

	srv := server.New(server.Config{
		Addr:   opts.addr,
		Runner: runner,
		Store:  store,
		Logger: c.Logger,
	})

	printInfo("Listening on %s", StyleLink.Render(listenURL(opts.addr)))
	printDetail("Try " + listenURL(opts.addr) + "/grid.svg?format=A3&grid_cols=4")
	printNewline()

	return srv.Start(ctx)
}

// newStore picks the document backend from the flags.
func (c *CLI) newStore(ctx context.Context, opts *serveOpts) (document.Store, error) {
	if opts.mongoURL != "" {
		c.Logger.Info("using mongodb document store", "db", opts.mongoDB)
		return document.NewMongoStore(ctx, opts.mongoURL, opts.mongoDB)
	}
	store, err := document.NewFileStore(opts.dataDir)
	if err != nil {
		return nil, err
	}
	c.Logger.Info("using file document store", "dir", store.Path())
	return store, nil
}

// newServeCache picks the render cache backend from the flags.
func (c *CLI) newServeCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redisURL != "" {
		c.Logger.Info("using redis render cache")
		return cache.NewRedisCache(ctx, opts.redisURL)
	}
	return newCache(false)
}

// listenURL turns a listen address into something clickable.
func listenURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
