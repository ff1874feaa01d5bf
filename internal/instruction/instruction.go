// Package instruction implements the scheduler's internal wrapper around
// a task: an arena of instructions connected by a mutable dependency
// graph (D and its inverse D⁻¹).
//
// The arena owns every live instruction exclusively. Everything else in
// the scheduler — the ready queue, the merger's interest sets — refers
// to instructions only by Handle, a weak reference that becomes
// meaningless (Exists returns false) the moment the arena drops the
// instruction, whether by normal completion or by being superseded in a
// merge. This is the arena-plus-handle strategy: it keeps the
// dependency graph free of ownership cycles and makes completion
// O(|D⁻¹(I)|).
package instruction

import "github.com/vk/shaclsched/internal/task"

// Handle is an opaque, weak reference to a live instruction. The zero
// Handle never refers to a live instruction.
type Handle uint64

// record is the arena's internal representation of one instruction.
type record struct {
	task       task.Task
	deps       map[Handle]struct{} // D(I): instructions I depends on
	dependents map[Handle]struct{} // D⁻¹(I): instructions depending on I
}

// Arena is the exclusive owner of every live instruction. It is not
// safe for concurrent use; the scheduler this package supports is
// single-threaded by design (see the scheduler package).
type Arena struct {
	next    Handle
	records map[Handle]*record
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{records: make(map[Handle]*record)}
}

// New creates a fresh instruction wrapping t and returns its handle.
func (a *Arena) New(t task.Task) Handle {
	a.next++
	h := a.next
	a.records[h] = &record{
		task:       t,
		deps:       make(map[Handle]struct{}),
		dependents: make(map[Handle]struct{}),
	}
	return h
}

// Exists reports whether h still refers to a live instruction.
func (a *Arena) Exists(h Handle) bool {
	_, ok := a.records[h]
	return ok
}

// Len reports the number of live instructions in the arena.
func (a *Arena) Len() int {
	return len(a.records)
}

// Task returns the task wrapped by h, or false if h is not live.
func (a *Arena) Task(h Handle) (task.Task, bool) {
	r, ok := a.records[h]
	if !ok {
		return task.Task{}, false
	}
	return r.task, true
}

// AddEdge records that reader depends on writer: writer is inserted
// into D(reader) and reader into D⁻¹(writer). Both handles must be
// live; a reference to a dead handle is silently ignored since it can
// only arise from a caller racing its own bookkeeping, never from
// correct use of this package.
func (a *Arena) AddEdge(writer, reader Handle) {
	w, ok := a.records[writer]
	if !ok {
		return
	}
	r, ok := a.records[reader]
	if !ok {
		return
	}
	r.deps[writer] = struct{}{}
	w.dependents[reader] = struct{}{}
}

// DependenciesOf returns D(h): the instructions h depends on.
func (a *Arena) DependenciesOf(h Handle) []Handle {
	r, ok := a.records[h]
	if !ok {
		return nil
	}
	out := make([]Handle, 0, len(r.deps))
	for d := range r.deps {
		out = append(out, d)
	}
	return out
}

// DependentsOf returns D⁻¹(h): the instructions depending on h.
func (a *Arena) DependentsOf(h Handle) []Handle {
	r, ok := a.records[h]
	if !ok {
		return nil
	}
	out := make([]Handle, 0, len(r.dependents))
	for d := range r.dependents {
		out = append(out, d)
	}
	return out
}

// Eligible reports whether h has no unmet dependencies, i.e. D(h) = ∅.
func (a *Arena) Eligible(h Handle) bool {
	r, ok := a.records[h]
	return ok && len(r.deps) == 0
}

// RemoveDependency severs the edge from dep to instr: dep is removed
// from D(instr) and instr is removed from D⁻¹(dep).
func (a *Arena) RemoveDependency(instr, dep Handle) {
	if r, ok := a.records[instr]; ok {
		delete(r.deps, dep)
	}
	if r, ok := a.records[dep]; ok {
		delete(r.dependents, instr)
	}
}

// ClearDependents empties D⁻¹(h) without touching any other
// instruction's bookkeeping. The caller must already have severed each
// corresponding edge on the dependent side (see RemoveDependency); this
// is a final cleanup once every dependent has been notified.
func (a *Arena) ClearDependents(h Handle) {
	if r, ok := a.records[h]; ok {
		r.dependents = make(map[Handle]struct{})
	}
}

// Remove drops h from the arena. Any handle still held elsewhere
// becomes stale: Exists(h) reports false from this point on.
func (a *Arena) Remove(h Handle) {
	delete(a.records, h)
}

// NewInstruction satisfies merger.Graph: it is the same operation as
// New, named for that interface.
func (a *Arena) NewInstruction(t task.Task) Handle {
	return a.New(t)
}

// Supersede replaces the instructions in olds with replacement,
// unioning their ancestors onto replacement and redirecting their
// descendants to depend on replacement instead. This is the merge
// scheme's edge rewiring (see merger.Merger.Merge): an ancestor that
// precedes any of olds now precedes replacement, and a descendant that
// depended on any of olds now depends on replacement. Edges between
// members of olds themselves (e.g. the very read-after-write edge
// being merged away) are dropped rather than turned into a
// self-reference.
//
// olds are removed from the arena once rewired; any handle still
// referring to one of them becomes stale.
func (a *Arena) Supersede(olds []Handle, replacement Handle) {
	rep, ok := a.records[replacement]
	if !ok {
		return
	}
	oldSet := make(map[Handle]struct{}, len(olds))
	for _, o := range olds {
		oldSet[o] = struct{}{}
	}

	for _, o := range olds {
		or, ok := a.records[o]
		if !ok {
			continue
		}
		for anc := range or.deps {
			if _, isOld := oldSet[anc]; isOld {
				continue
			}
			rep.deps[anc] = struct{}{}
			if ar, ok := a.records[anc]; ok {
				delete(ar.dependents, o)
				ar.dependents[replacement] = struct{}{}
			}
		}
		for desc := range or.dependents {
			if _, isOld := oldSet[desc]; isOld {
				continue
			}
			rep.dependents[desc] = struct{}{}
			if dr, ok := a.records[desc]; ok {
				delete(dr.deps, o)
				dr.deps[replacement] = struct{}{}
			}
		}
	}

	for _, o := range olds {
		delete(a.records, o)
	}
}
