// Package app implements the application layer for the cask dev server.
package app

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"go.trai.ch/cask"
	"go.trai.ch/cask/internal/adapters/detector"
	"go.trai.ch/cask/internal/adapters/telemetry"
	"go.trai.ch/cask/internal/core/domain"
	"go.trai.ch/cask/internal/core/ports"
	"go.trai.ch/cask/sass"
	"go.trai.ch/zerr"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, log ports.Logger) *App {
	return &App{
		configLoader: loader,
		logger:       log,
	}
}

// ServeOptions configuration for the Serve method.
type ServeOptions struct {
	// Listen overrides the configured listen address when set.
	Listen string
	// Debug enables debug logging regardless of the configuration.
	Debug bool
	// LogMode is the user override for log output: auto, pretty, or json.
	LogMode string
	// Dir is the directory config discovery starts from. Defaults to ".".
	Dir string
}

// Serve loads the configuration, builds the stylesheet-compiling handler
// and runs the HTTP server until ctx is canceled.
func (a *App) Serve(ctx context.Context, opts ServeOptions) error {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	mode := detector.ResolveMode(detector.DetectEnvironment(), opts.LogMode)
	a.logger.SetJSON(mode == detector.ModeJSON)

	configPath, err := a.configLoader.DiscoverConfigPath(dir)
	if err != nil {
		return zerr.Wrap(err, "failed to locate configuration")
	}

	cfg, err := a.configLoader.Load(dir)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	if opts.Debug {
		cfg.Debug = true
	}
	a.logger.SetDebug(cfg.Debug)

	if opts.Listen != "" {
		cfg.Listen = opts.Listen
	}

	// Relative paths in the config resolve against the config file's
	// directory, not the server's working directory.
	root := cfg.Root
	if root == "" {
		root = filepath.Dir(configPath)
	} else if !filepath.IsAbs(root) {
		root = filepath.Join(filepath.Dir(configPath), root)
	}

	tp := telemetry.Setup(a.logger)
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = tp.Shutdown(sctx)
	}()

	handler, err := a.Handler(cfg, root)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("serving stylesheets on " + cfg.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Join(domain.ErrServeFailed, err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down")

		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	return g.Wait()
}

// Handler builds the HTTP handler: the stylesheet-compiling middleware in
// front of a static file server rooted at the artifact directory.
func (a *App) Handler(cfg *domain.Config, root string) (http.Handler, error) {
	var sassOpts []sass.Option
	if cfg.SassBinary != "" {
		sassOpts = append(sassOpts, sass.WithBinary(cfg.SassBinary))
	}

	middleware, err := cask.New(cask.Options{
		SrcDir:         cfg.Src,
		DestDir:        cfg.Dest,
		Root:           root,
		Prefix:         cfg.Prefix,
		Force:          cfg.Force,
		Response:       cfg.Response,
		IndentedSyntax: cfg.IndentedSyntax,
		SourceMap:      cfg.SourceMap,
		Debug:          cfg.Debug,
		MaxAge:         cfg.MaxAge,
		IncludePaths:   cfg.IncludePaths,
		Extra:          cfg.CompilerOptions,
		Logger:         a.logger.Slog(),
		OnError:        a.logger.Error,
		Compiler:       sass.New(sassOpts...),
	})
	if err != nil {
		return nil, zerr.Wrap(err, "failed to build middleware")
	}

	// The middleware maps request paths with the prefix stripped; the file
	// server must see them the same way or prefixed artifacts resolve to
	// dest/<prefix>/... and 404.
	var static http.Handler = http.FileServer(http.Dir(filepath.Join(root, cfg.Dest)))
	if cfg.Prefix != "" {
		static = http.StripPrefix(cfg.Prefix, static)
	}
	return middleware(static), nil
}
