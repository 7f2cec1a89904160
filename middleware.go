package cask

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/cask/compiler"
	"go.trai.ch/zerr"
)

// mapping is the per-request translation of a URL path onto the filesystem.
type mapping struct {
	srcPath  string // stylesheet source to compile
	srcDir   string // its directory, prepended to the compiler include paths
	destPath string // compiled artifact location
}

// ServeHTTP drives the request through route check, path mapping, the
// staleness decision and, when required, a compile.
func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		h.next.ServeHTTP(w, r)
		return
	}

	urlPath := r.URL.Path
	if !strings.HasSuffix(urlPath, ".css") {
		h.next.ServeHTTP(w, r)
		return
	}

	if h.opts.Prefix != "" {
		rest, ok := strings.CutPrefix(urlPath, h.opts.Prefix)
		if !ok {
			h.debug("skipping request outside prefix", "path", urlPath, "prefix", h.opts.Prefix)
			h.next.ServeHTTP(w, r)
			return
		}
		urlPath = rest
	}

	m := h.mapPaths(urlPath)

	stale, err := h.needsCompile(r, m)
	if err != nil {
		// Filesystem trouble during the staleness check is reported and the
		// request handed on; the downstream handler decides what to serve.
		h.opts.OnError(err)
		h.next.ServeHTTP(w, r)
		return
	}
	if !stale {
		h.debug("serving cached artifact", "path", m.destPath)
		h.next.ServeHTTP(w, r)
		return
	}

	h.compile(w, r, m)
}

// mapPaths derives the source and destination paths for a requested output
// path. The path is normalized first so mapped files cannot escape the
// configured roots.
func (h *handler) mapPaths(urlPath string) mapping {
	rel := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	src := filepath.Join(h.opts.SrcDir, strings.TrimSuffix(rel, ".css")+h.opts.sourceExt())

	return mapping{
		srcPath:  src,
		srcDir:   filepath.Dir(src),
		destPath: filepath.Join(h.opts.DestDir, rel),
	}
}

// compile runs the compiler for the mapped source and persists or streams the
// result. The entry is marked pending before anything can suspend, so a
// concurrent request for the same entry recompiles instead of trusting a
// half-finished record.
func (h *handler) compile(w http.ResponseWriter, r *http.Request, m mapping) {
	h.tracker.RecordPending(m.srcPath)

	if _, err := os.Stat(m.srcPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// No corresponding stylesheet: not our request to handle.
			h.debug("skipping request without source", "source", m.srcPath)
			h.next.ServeHTTP(w, r)
			return
		}
		h.opts.OnError(zerr.With(zerr.Wrap(err, "failed to stat source file"), "path", m.srcPath))
		h.next.ServeHTTP(w, r)
		return
	}

	job := compiler.Job{
		InFile:        m.srcPath,
		OutFile:       m.destPath,
		IncludePaths:  append([]string{m.srcDir}, h.opts.IncludePaths...),
		Indented:      h.opts.IndentedSyntax,
		SourceMap:     h.opts.SourceMap,
		SourceMapPath: m.destPath + ".map",
		Extra:         h.opts.Extra,
	}

	h.debug("compiling stylesheet", "source", m.srcPath, "target", m.destPath)

	ctx, span := h.tracer.Start(r.Context(), "cask.render", trace.WithAttributes(
		attribute.String("cask.source", m.srcPath),
		attribute.String("cask.target", m.destPath),
	))
	result, err := h.opts.Compiler.Render(ctx, job)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.End()
		h.fail(w, r, diagnose(err, m.srcPath))
		return
	}
	span.End()

	h.tracker.RecordDependencies(m.srcPath, result.IncludedFiles)

	if h.opts.Response {
		h.respond(w, result.CSS)
		return
	}

	if err := h.persist(r.Context(), m, result); err != nil {
		h.fail(w, r, err)
		return
	}

	h.debug("rendered stylesheet", "target", m.destPath)
	h.next.ServeHTTP(w, r)
}

// fail funnels a request-consuming failure through the error sink, then hands
// the request to the configured error renderer. Both always fire.
func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.opts.OnError(err)
	h.opts.ErrorHandler(w, r, err)
}

// diagnose attaches a usable location to a compile failure. When the compiler
// could not attribute the error to a file, or reported only a generic
// placeholder, the resolved source path stands in.
func diagnose(err error, srcPath string) error {
	var cerr *compiler.Error
	if !errors.As(err, &cerr) {
		return zerr.With(zerr.Wrap(err, "failed to compile stylesheet"), "file", srcPath)
	}

	if cerr.File == "" || cerr.File == "stdin" {
		located := *cerr
		located.File = srcPath
		cerr = &located
	}
	return zerr.Wrap(cerr, "failed to compile stylesheet")
}

// respond streams compiled CSS directly, never touching the destination file.
func (h *handler) respond(w http.ResponseWriter, css []byte) {
	w.Header().Set("Content-Type", "text/css")
	w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", h.opts.MaxAge))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(css)
}

// debug logs a decision point when debug logging is enabled.
func (h *handler) debug(msg string, args ...any) {
	if h.opts.Debug {
		h.opts.Logger.Debug(msg, args...)
	}
}
