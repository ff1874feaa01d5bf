// Package config defines the format-agnostic configuration model for the
// scheduler host process, along with the core Loader interface for
// obtaining one from a concrete source.
//
// The `config.Model` is the single source of truth for internal/app: it
// never parses HCL itself, and a future format would only need a new
// Loader implementation.
package config
