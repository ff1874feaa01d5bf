// Package monitor is a thin socket.io client that pushes scheduler
// lifecycle events (enqueued, dequeued, merged, completed) to a live
// dashboard, the same role the editor's live graph view plays for the
// system this scheduler is embedded in. It is built the same way as the
// teacher's modules/socketio runner: a socket.io-client-go Manager over the
// engine.io WebSocket transport.
//
// A *Monitor with no configured endpoint (New(ctx, nil)) is a no-op: every
// method becomes a cheap no-op so callers never need to branch on whether
// monitoring is enabled.
package monitor
