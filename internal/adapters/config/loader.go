// Package config provides the configuration loader for the cask dev server.
package config

import (
	"errors"
	"path/filepath"

	"go.trai.ch/cask/internal/core/domain"
	"go.trai.ch/cask/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	fs     FileSystem
	logger ports.Logger
}

var _ ports.ConfigLoader = (*Loader)(nil)

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{fs: NewOSFS(), logger: logger}
}

// NewLoaderWithFS creates a Loader reading through the given FileSystem.
func NewLoaderWithFS(fsys FileSystem, logger ports.Logger) *Loader {
	return &Loader{fs: fsys, logger: logger}
}

// Load reads the configuration file discovered from cwd, applies defaults and
// validates it. A configuration without a source directory fails here, at
// startup, never at request time.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	path, err := l.DiscoverConfigPath(cwd)
	if err != nil {
		return nil, err
	}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrConfigReadFailed, err), "path", path)
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrConfigParseFailed, err), "path", path)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		// Wrap keeps the sentinel reachable through errors.Is; With on the
		// sentinel itself would copy it and break the identity.
		return nil, zerr.With(zerr.Wrap(err, "invalid configuration"), "path", path)
	}

	l.logger.Debug("loaded configuration", "path", path)
	return &cfg, nil
}

// DiscoverConfigPath walks up from cwd until it finds a cask.yaml.
func (l *Loader) DiscoverConfigPath(cwd string) (string, error) {
	dir := cwd
	for {
		candidate := filepath.Join(dir, domain.ConfigFileName)
		if _, err := l.fs.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			break
		}
		dir = parent
	}

	return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "no configuration file found"), "cwd", cwd)
}
