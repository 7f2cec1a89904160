// Package sass implements the compiler contract by shelling out to the
// dart-sass CLI. It is the default compiler used by the cask middleware.
package sass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"

	"go.trai.ch/cask/compiler"
	"go.trai.ch/zerr"
)

// DefaultBinary is the executable invoked when no override is configured.
const DefaultBinary = "sass"

// Compiler runs the dart-sass CLI via os/exec.
//
// The CLI is always invoked with an embedded source map so the adapter can
// recover the list of files the compilation transitively read; the map is
// stripped from the output again unless the job asked for one.
type Compiler struct {
	binary string
}

var _ compiler.Compiler = (*Compiler)(nil)

// Option configures a Compiler.
type Option func(*Compiler)

// WithBinary overrides the sass executable path.
func WithBinary(path string) Option {
	return func(c *Compiler) {
		c.binary = path
	}
}

// New creates a Compiler using the dart-sass CLI.
func New(opts ...Option) *Compiler {
	c := &Compiler{binary: DefaultBinary}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Render compiles the entry described by job by invoking the sass CLI.
// Compile failures reported on stderr are returned as *compiler.Error.
func (c *Compiler) Render(ctx context.Context, job compiler.Job) (*compiler.Result, error) {
	var stdout, stderr bytes.Buffer

	//nolint:gosec // argv is assembled from configuration, not request input
	cmd := exec.CommandContext(ctx, c.binary, buildArgs(job)...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && stderr.Len() > 0 {
			return nil, parseError(stderr.String())
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to run sass compiler"), "binary", c.binary)
	}

	css, embedded, err := splitEmbeddedMap(stdout.Bytes())
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to decode embedded source map"), "file", job.InFile)
	}

	result := &compiler.Result{
		CSS:           css,
		IncludedFiles: embedded.includedFiles(),
	}

	if job.SourceMap {
		result.SourceMap = embedded.raw
		ref := fmt.Sprintf("\n/*# sourceMappingURL=%s */\n", filepath.Base(job.SourceMapPath))
		result.CSS = append(result.CSS, []byte(ref)...)
	}

	return result, nil
}

// buildArgs assembles the CLI argument list for a job.
func buildArgs(job compiler.Job) []string {
	args := []string{
		"--no-color",
		"--stop-on-error",
		"--embed-source-map",
		"--source-map-urls=absolute",
	}

	if job.Indented {
		args = append(args, "--indented")
	}
	for _, path := range job.IncludePaths {
		args = append(args, "--load-path", path)
	}
	args = append(args, extraArgs(job.Extra)...)

	return append(args, job.InFile)
}
