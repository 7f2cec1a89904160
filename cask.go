// Package cask is an HTTP middleware that lazily compiles Sass/SCSS sources
// into CSS on request. Compiled artifacts are cached on disk and invalidated
// from file modification times, including the transitive imports reported by
// the compiler. Requests the middleware cannot map to a stylesheet pass
// through to the next handler untouched, so it composes naturally in front of
// a static file server.
package cask

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/cask/internal/graph"
)

// tracerName identifies render spans emitted by the middleware.
const tracerName = "go.trai.ch/cask"

// New validates opts and returns a middleware constructor. Every handler
// produced by the constructor shares one import-graph tracker, scoped to this
// middleware instance; independent instances never share cache state.
func New(opts Options) (func(http.Handler) http.Handler, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	tracker := graph.NewTracker()
	tracer := otel.Tracer(tracerName)

	return func(next http.Handler) http.Handler {
		return &handler{
			opts:    opts,
			next:    next,
			tracker: tracker,
			tracer:  tracer,
		}
	}, nil
}

// handler serves one wrapped route. It implements the per-request pipeline:
// route check, path mapping, staleness decision, compile, persist or stream.
type handler struct {
	opts    Options
	next    http.Handler
	tracker *graph.Tracker
	tracer  trace.Tracer
}
