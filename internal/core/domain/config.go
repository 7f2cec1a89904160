package domain

// ConfigFileName is the configuration file the dev server looks for, walking
// up from the working directory.
const ConfigFileName = "cask.yaml"

// DefaultListenAddr is used when the configuration names no listen address.
const DefaultListenAddr = ":4000"

// Config is the dev server configuration parsed from cask.yaml.
type Config struct {
	// Listen is the address the server binds, e.g. ":4000".
	Listen string `yaml:"listen"`
	// Src is the stylesheet source directory. Required.
	Src string `yaml:"src"`
	// Dest is the compiled artifact directory. Defaults to Src.
	Dest string `yaml:"dest"`
	// Root is an optional shared root prefixing both Src and Dest.
	Root string `yaml:"root"`
	// Prefix is the request-path prefix stripped before mapping.
	Prefix string `yaml:"prefix"`
	// Force recompiles on every matching request.
	Force bool `yaml:"force"`
	// Response streams compiled CSS instead of persisting artifacts.
	Response bool `yaml:"response"`
	// IndentedSyntax selects .sass sources instead of .scss.
	IndentedSyntax bool `yaml:"indented_syntax"`
	// SourceMap persists companion .map files.
	SourceMap bool `yaml:"source_map"`
	// Debug enables per-request decision logging.
	Debug bool `yaml:"debug"`
	// MaxAge is the Cache-Control max-age in seconds for response mode.
	MaxAge int `yaml:"max_age"`
	// IncludePaths are extra compiler lookup roots.
	IncludePaths []string `yaml:"include_paths"`
	// SassBinary overrides the sass executable invoked by the default compiler.
	SassBinary string `yaml:"sass_binary"`
	// CompilerOptions is forwarded verbatim to the compiler.
	CompilerOptions map[string]any `yaml:"compiler_options"`
}

// Validate checks the configuration for fatal mistakes. A missing source
// directory is a startup error, never deferred to request time.
func (c *Config) Validate() error {
	if c.Src == "" {
		return ErrMissingSrcDir
	}
	if c.MaxAge < 0 {
		return ErrInvalidMaxAge
	}
	return nil
}

// ApplyDefaults fills unset fields with their defaults.
func (c *Config) ApplyDefaults() {
	if c.Listen == "" {
		c.Listen = DefaultListenAddr
	}
	if c.Dest == "" {
		c.Dest = c.Src
	}
}
