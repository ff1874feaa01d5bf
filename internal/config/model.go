package config

import "time"

// Model is the unified, format-agnostic representation of everything the
// scheduler host process needs to start: the priority window to seed the
// generator with, the optional live-monitor endpoint, and the healthcheck
// server's port.
type Model struct {
	// Priorities seeds the priority generator's rolling window (spec
	// §4.2) with every level a deployment already knows it will use,
	// rather than discovering them reactively from the first Enqueue
	// of each level.
	Priorities []int
	Monitor    *Monitor
	Healthcheck
}

// Monitor configures the optional live-monitor socket.io client
// (internal/monitor). A nil *Monitor on Model means the monitor is
// disabled; the TaskQueue behaves identically either way.
type Monitor struct {
	URL       string
	Namespace string
	Timeout   time.Duration
}

// Healthcheck configures internal/app's plain-HTTP healthcheck server.
// Port 0 disables it.
type Healthcheck struct {
	Port int
}
