// Package domain contains core domain types for the cask dev server.
package domain

import "go.trai.ch/zerr"

var (
	// ErrConfigNotFound is returned when no cask.yaml can be found.
	ErrConfigNotFound = zerr.New("could not find cask.yaml")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrMissingSrcDir is returned when the configuration names no source directory.
	ErrMissingSrcDir = zerr.New("source directory is required")

	// ErrInvalidMaxAge is returned when the configured max-age is negative.
	ErrInvalidMaxAge = zerr.New("max-age cannot be negative")

	// ErrServeFailed is returned when the HTTP server terminates abnormally.
	ErrServeFailed = zerr.New("server terminated abnormally")
)
