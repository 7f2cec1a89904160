package cask

import (
	"log/slog"
	"net/http"
	"path/filepath"

	"go.trai.ch/cask/compiler"
	"go.trai.ch/cask/sass"
	"go.trai.ch/zerr"
)

// ErrMissingSrcDir is returned by New when Options.SrcDir is empty.
var ErrMissingSrcDir = zerr.New("source directory is required")

// Options configures a middleware instance. The zero value is invalid: SrcDir
// must be set.
type Options struct {
	// SrcDir is the directory holding stylesheet sources. Required.
	SrcDir string
	// DestDir is the directory compiled artifacts are written to.
	// Defaults to SrcDir.
	DestDir string
	// Root, when set, is a shared root both SrcDir and DestDir are rebased
	// under.
	Root string
	// Prefix is stripped from the request path before mapping. Requests whose
	// path does not start with it pass through untouched.
	Prefix string

	// Force recompiles on every matching request, bypassing the cache.
	Force bool
	// Response streams compiled CSS directly as the response body instead of
	// persisting it. Implies recompilation on every request.
	Response bool
	// IndentedSyntax selects the indented .sass source syntax instead of .scss.
	IndentedSyntax bool
	// SourceMap additionally persists a companion .map file (file mode only).
	SourceMap bool
	// Debug enables per-request decision logging.
	Debug bool

	// MaxAge is the Cache-Control max-age in seconds for response-mode
	// replies. Defaults to 0.
	MaxAge int
	// IncludePaths are extra lookup roots handed to the compiler. The
	// resolved source's directory is prepended per request.
	IncludePaths []string
	// Extra holds unrecognized options forwarded verbatim to the compiler.
	Extra map[string]any

	// Logger receives debug output. Defaults to slog.Default().
	Logger *slog.Logger
	// OnError is the error sink. It fires for every recovered failure, before
	// any response handling. Defaults to a no-op.
	OnError func(error)
	// ErrorHandler renders failures that consume the request, such as compile
	// errors. Defaults to a plain 500 response.
	ErrorHandler func(http.ResponseWriter, *http.Request, error)
	// Compiler is the compiler implementation to invoke. Defaults to the
	// dart-sass CLI adapter.
	Compiler compiler.Compiler
}

// withDefaults validates the options and fills in defaults.
func (o Options) withDefaults() (Options, error) {
	if o.SrcDir == "" {
		return o, ErrMissingSrcDir
	}
	if o.DestDir == "" {
		o.DestDir = o.SrcDir
	}
	if o.Root != "" {
		o.SrcDir = filepath.Join(o.Root, o.SrcDir)
		o.DestDir = filepath.Join(o.Root, o.DestDir)
	}
	if o.Response {
		// Source maps are persisted artifacts; response mode never writes
		// one, so requesting a map would emit a dangling reference.
		o.SourceMap = false
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.OnError == nil {
		o.OnError = func(error) {}
	}
	if o.ErrorHandler == nil {
		o.ErrorHandler = func(w http.ResponseWriter, _ *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
	if o.Compiler == nil {
		o.Compiler = sass.New()
	}
	return o, nil
}

// sourceExt is the file extension expected for stylesheet sources.
func (o Options) sourceExt() string {
	if o.IndentedSyntax {
		return ".sass"
	}
	return ".scss"
}
