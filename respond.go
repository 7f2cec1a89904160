package cask

import (
	"context"
	"os"
	"path/filepath"

	"go.trai.ch/cask/compiler"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// artifactDirPerm is the mode for created artifact directories: owner-only.
const artifactDirPerm = 0o700

// persist writes the compiled CSS, and the source map when one was requested,
// to the destination paths. Both writes run concurrently and both must finish
// before the request counts as handled; a failure in either leaves any
// previous artifact for the other path untouched.
func (h *handler) persist(ctx context.Context, m mapping, result *compiler.Result) error {
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		return writeArtifact(m.destPath, result.CSS)
	})

	if h.opts.SourceMap {
		g.Go(func() error {
			return writeArtifact(m.destPath+".map", result.SourceMap)
		})
	}

	return g.Wait()
}

// writeArtifact creates the artifact's directory as needed and writes it.
func writeArtifact(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), artifactDirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create artifact directory"), "path", path)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write artifact"), "path", path)
	}
	return nil
}
