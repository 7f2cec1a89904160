package cask

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"time"

	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// errImportChanged short-circuits the import fan-out as soon as one
// dependency requires a recompile.
var errImportChanged = zerr.New("import changed")

// needsCompile decides whether the mapped artifact must be recompiled. The
// checks short-circuit in order: configuration that forces recompilation, a
// missing import record, the source/artifact mtime pair, then one stat per
// recorded import. A returned error means the decision could not be made and
// the request should be handed on without compiling.
func (h *handler) needsCompile(r *http.Request, m mapping) (bool, error) {
	if h.opts.Force || h.opts.Response {
		return true, nil
	}

	deps, ok := h.tracker.Lookup(m.srcPath)
	if !ok {
		// First request for this entry since process start, or a compile of
		// it is pending or previously failed.
		return true, nil
	}

	srcInfo, err := os.Stat(m.srcPath)
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to stat source file"), "path", m.srcPath)
	}

	destInfo, err := os.Stat(m.destPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return true, nil
		}
		return false, zerr.With(zerr.Wrap(err, "failed to stat compiled artifact"), "path", m.destPath)
	}

	if srcInfo.ModTime().After(destInfo.ModTime()) {
		return true, nil
	}

	return h.importsChanged(r.Context(), deps, destInfo.ModTime()), nil
}

// importsChanged stats every recorded import concurrently and reports whether
// any of them invalidates the artifact. A single changed import decides the
// outcome; "unchanged" requires every check to have reported back. An import
// that can no longer be stat'ed counts as changed, so deleted files trigger a
// recompile instead of silently serving stale output.
func (h *handler) importsChanged(ctx context.Context, deps []string, destMtime time.Time) bool {
	g, _ := errgroup.WithContext(ctx)

	for _, dep := range deps {
		g.Go(func() error {
			info, err := os.Stat(dep)
			if err != nil {
				return errImportChanged
			}
			if !info.ModTime().Before(destMtime) {
				return errImportChanged
			}
			return nil
		})
	}

	return g.Wait() != nil
}
