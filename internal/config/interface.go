package config

import "context"

// Loader is the interface for a format-specific configuration loader. The
// scheduler host process (internal/app) only ever talks to a Loader, never
// to a concrete format package directly, the same separation the teacher
// draws between internal/config and internal/hcl.
type Loader interface {
	// Load reads configuration from path and translates it into the
	// format-agnostic Model. An empty path is valid: it yields the zero
	// Model (no seeded priorities, monitor disabled, healthcheck
	// disabled).
	Load(ctx context.Context, path string) (*Model, error)
}
