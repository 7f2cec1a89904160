package ports

import "go.trai.ch/cask/internal/core/domain"

// ConfigLoader defines the interface for loading the dev server configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration starting from the given working directory,
	// walking up until a cask.yaml is found. The returned config has defaults
	// applied and has been validated.
	Load(cwd string) (*domain.Config, error)

	// DiscoverConfigPath finds the configuration file path for cwd without
	// parsing it.
	DiscoverConfigPath(cwd string) (string, error)
}
