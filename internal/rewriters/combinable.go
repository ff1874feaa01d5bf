// Package rewriters offers a generic merger.Rewriter for payloads that
// know how to fuse themselves, plus concrete rewriters built on it.
package rewriters

import (
	"github.com/vk/shaclsched/internal/component"
	"github.com/vk/shaclsched/internal/task"
)

// Combiner is implemented by a task payload that can describe how to
// fuse itself with another payload of the same kind. A payload that
// does not implement Combiner is simply never offered a merge by
// CombinableRewriter.
type Combiner interface {
	// CombinesWith reports whether this payload can be fused with
	// other, assuming other is known (by the caller) to read from
	// something this payload writes.
	CombinesWith(other any) bool
	// CombineWith returns the fused payload representing "apply this,
	// then apply other".
	CombineWith(other any) any
}

// CombinableRewriter is a merger.Rewriter for any payload implementing
// Combiner. It is interested in every task whose payload is a
// Combiner, and fuses a pair by delegating to the writer's
// CombinesWith/CombineWith, unioning read/write sets and taking the
// higher of the two priorities for the fused task.
type CombinableRewriter struct{}

// IsOfInterest implements merger.Rewriter.
func (CombinableRewriter) IsOfInterest(t task.Task) bool {
	_, ok := t.Payload.(Combiner)
	return ok
}

// MaybeRewrite implements merger.Rewriter.
func (CombinableRewriter) MaybeRewrite(first, second task.Task) (task.Task, bool) {
	writer, ok := first.Payload.(Combiner)
	if !ok {
		return task.Task{}, false
	}
	if !writer.CombinesWith(second.Payload) {
		return task.Task{}, false
	}
	fused := writer.CombineWith(second.Payload)

	priority := first.Priority
	if second.Priority > priority {
		priority = second.Priority
	}

	return task.Task{
		Payload:  fused,
		Reads:    component.Union(first.Reads, second.Reads),
		Writes:   component.Union(first.Writes, second.Writes),
		Priority: priority,
	}, true
}
