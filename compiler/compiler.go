// Package compiler defines the contract between the cask middleware and the
// stylesheet compiler that renders CSS for it. The middleware never assumes a
// particular implementation; anything satisfying Compiler can be plugged in.
package compiler

import (
	"context"
	"fmt"
)

// Job describes a single render request handed to a Compiler.
type Job struct {
	// InFile is the path of the entry stylesheet to compile.
	InFile string
	// OutFile is the path the output is destined for. It is used only to
	// compute relative source-map references; the compiler never writes it.
	OutFile string
	// IncludePaths are additional lookup roots for resolving imports.
	IncludePaths []string
	// Indented selects the indented (.sass) syntax instead of SCSS.
	Indented bool
	// SourceMap requests a source map in the result.
	SourceMap bool
	// SourceMapPath is the path the source map is destined for. Like OutFile
	// it only influences references emitted into the CSS.
	SourceMapPath string
	// Extra holds unrecognized options forwarded verbatim to the compiler.
	Extra map[string]any
}

// Result is a successful compilation.
type Result struct {
	// CSS is the compiled stylesheet.
	CSS []byte
	// SourceMap is the rendered source map. Empty unless Job.SourceMap was set.
	SourceMap []byte
	// IncludedFiles lists the absolute path of every file the compilation
	// transitively read, the entry file included.
	IncludedFiles []string
}

// Error is a compile failure reported by the compiler, carrying the location
// of the offending input when known.
type Error struct {
	Message string
	// File is the path of the erroring file. May be empty or a generic
	// placeholder such as "stdin" when the compiler could not attribute the
	// failure to a file.
	File   string
	Line   int
	Column int
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.File == "" {
		return e.Message
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
}

// Compiler renders stylesheet entry files to CSS.
//
//go:generate mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks
type Compiler interface {
	// Render compiles the entry described by job. On failure the returned
	// error is an *Error when the compiler could report a location.
	Render(ctx context.Context, job Job) (*Result, error)
}
