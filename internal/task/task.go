// Package task defines the unit of work the scheduler accepts from
// producers. A Task is immutable once enqueued; the only thing that may
// ever replace it is a fused Task produced by a merger.Rewriter.
package task

import "github.com/vk/shaclsched/internal/component"

// Task carries an opaque payload plus the read/write sets and priority
// the scheduler uses to order it against everything else pending.
//
// Reads and Writes are plain slices, not sets: a producer may list a
// component that fails component.Validate, and the scheduler must be
// able to reject that at Enqueue time without panicking while
// constructing the Task itself. Internally the scheduler builds sets
// from these slices only after validation.
type Task struct {
	// Payload is the work to perform. The scheduler never inspects it.
	Payload any
	// Reads is the set of components this task reads.
	Reads []component.Component
	// Writes is the set of components this task writes.
	Writes []component.Component
	// Priority favors earlier dequeue; higher runs sooner (see ppq).
	Priority int
}

// New is a convenience constructor.
func New(payload any, reads, writes []component.Component, priority int) Task {
	return Task{Payload: payload, Reads: reads, Writes: writes, Priority: priority}
}
