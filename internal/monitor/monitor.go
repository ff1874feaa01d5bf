package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/vk/shaclsched/internal/config"
	"github.com/vk/shaclsched/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Event is one scheduler lifecycle notification.
type Event string

const (
	EventEnqueued  Event = "enqueued"
	EventDequeued  Event = "dequeued"
	EventMerged    Event = "merged"
	EventCompleted Event = "completed"
)

// Monitor emits Events over a socket.io connection. The zero value is not
// usable; construct one with New.
type Monitor struct {
	io     *socket.Socket
	logger *slog.Logger
}

// New connects to cfg, or returns a disabled Monitor if cfg is nil. Dialing
// happens in the background: Emit calls made before the connection
// completes are simply dropped by the underlying socket.io client's
// internal buffering, matching the teacher's "fire and forget" emit in
// modules/socketio.
func New(ctx context.Context, cfg *config.Monitor) (*Monitor, error) {
	logger := ctxlog.FromContext(ctx).With("component", "monitor")
	if cfg == nil {
		logger.Debug("Monitor disabled: no endpoint configured.")
		return &Monitor{}, nil
	}

	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("monitor: failed to parse URL %q: %w", cfg.URL, err)
	}
	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(cfg.Namespace, opts)

	io.On(types.EventName("connect"), func(...any) {
		logger.Info("Monitor connected.", "url", cfg.URL, "namespace", cfg.Namespace, "sid", io.Id())
	})
	io.On(types.EventName("connect_error"), func(errs ...any) {
		logger.Warn("Monitor connection failed.", "error", errs)
	})

	io.Connect()
	return &Monitor{io: io, logger: logger}, nil
}

// Emit pushes event with the given fields to the dashboard. It is a no-op
// on a disabled Monitor.
func (m *Monitor) Emit(event Event, fields map[string]any) {
	if m == nil || m.io == nil {
		return
	}
	m.logger.Debug("Emitting scheduler event.", "event", event, "fields", fields)
	m.io.Emit(string(event), fields)
}

// Close disconnects the underlying socket.io client. It is a no-op on a
// disabled Monitor.
func (m *Monitor) Close() {
	if m == nil || m.io == nil {
		return
	}
	m.io.Disconnect()
}
