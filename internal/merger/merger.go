// Package merger implements the instruction merger (IM): it tracks, per
// registered rewriter, which pending instructions that rewriter finds
// interesting, and offers one-step fusions of compatible
// read-after-write pairs.
package merger

import (
	"github.com/vk/shaclsched/internal/component"
	"github.com/vk/shaclsched/internal/instruction"
	"github.com/vk/shaclsched/internal/task"
)

// Rewriter is an external policy object offering fused replacements for
// compatible task pairs. Both methods must be pure: same arguments,
// same result, no side effects. The merger calls IsOfInterest on every
// instruction it introduces and, when it finds a read-after-write pair
// both sides declared interesting, calls MaybeRewrite with the writer
// first and the reader second.
type Rewriter interface {
	// IsOfInterest reports whether the rewriter might want to merge t
	// with some other task.
	IsOfInterest(t task.Task) bool
	// MaybeRewrite either returns a fused task equivalent to executing
	// first then second, or (zero value, false).
	MaybeRewrite(first, second task.Task) (task.Task, bool)
}

// Graph is the view of the dependency graph the merger needs. It is
// satisfied by *instruction.Arena; it exists as an interface so the
// merger stays decoupled from the arena's storage details, the same
// way the teacher's graph.Graph interface decouples its scheduler and
// executor from topologystore/nodestore.
type Graph interface {
	TaskOf(h instruction.Handle) (task.Task, bool)
	DependentsOf(h instruction.Handle) []instruction.Handle
	DependenciesOf(h instruction.Handle) []instruction.Handle
	NewInstruction(t task.Task) instruction.Handle
	Supersede(olds []instruction.Handle, replacement instruction.Handle)
}

// graphArena adapts *instruction.Arena's Task method (whose name
// collides with the Graph interface's TaskOf) to Graph.
type graphArena struct{ *instruction.Arena }

func (g graphArena) TaskOf(h instruction.Handle) (task.Task, bool) { return g.Task(h) }

// Adapt wraps an *instruction.Arena as a Graph.
func Adapt(a *instruction.Arena) Graph { return graphArena{a} }

// Merger is the IM: an ordered list of rewriters plus, per rewriter, an
// interest set of instructions whose tasks it declared interesting.
type Merger struct {
	rewriters []Rewriter
	interest  []map[instruction.Handle]struct{}
}

// New returns an IM with no rewriters registered.
func New() *Merger {
	return &Merger{}
}

// Register adds a rewriter. Rewriters are never removed and
// participate in every subsequent merge decision.
func (m *Merger) Register(r Rewriter) {
	m.rewriters = append(m.rewriters, r)
	m.interest = append(m.interest, make(map[instruction.Handle]struct{}))
}

// IntroduceInstruction inserts h into the interest set of every
// rewriter whose IsOfInterest holds for its task.
func (m *Merger) IntroduceInstruction(g Graph, h instruction.Handle) {
	t, ok := g.TaskOf(h)
	if !ok {
		return
	}
	for i, r := range m.rewriters {
		if r.IsOfInterest(t) {
			m.interest[i][h] = struct{}{}
		}
	}
}

// CompleteInstruction removes h from every interest set.
func (m *Merger) CompleteInstruction(h instruction.Handle) {
	for _, set := range m.interest {
		delete(set, h)
	}
}

// Merge attempts a one-step read-after-write merge of h with a
// candidate drawn from D⁻¹(h). Write-after-write merging is reserved
// but not implemented, per spec.
//
// On success it returns the handle of the new fused instruction, the
// handles of the two instructions it superseded, and true. The fused
// instruction has already been wired into the graph (via Graph.
// Supersede) and introduced to the IM; the caller is only responsible
// for admitting it to the ready queue if it is now eligible.
func (m *Merger) Merge(g Graph, h instruction.Handle) (merged instruction.Handle, superseded []instruction.Handle, ok bool) {
	first, ok := g.TaskOf(h)
	if !ok {
		return 0, nil, false
	}
	for _, j := range g.DependentsOf(h) {
		second, ok := g.TaskOf(j)
		if !ok {
			continue
		}
		for ri, r := range m.rewriters {
			if _, interested := m.interest[ri][h]; !interested {
				continue
			}
			if _, interested := m.interest[ri][j]; !interested {
				continue
			}
			if !m.canMergeRAW(g, h, j) {
				continue
			}
			fused, didRewrite := r.MaybeRewrite(first, second)
			if !didRewrite {
				continue
			}

			newHandle := g.NewInstruction(fused)
			g.Supersede([]instruction.Handle{h, j}, newHandle)
			m.CompleteInstruction(h)
			m.CompleteInstruction(j)
			m.IntroduceInstruction(g, newHandle)
			return newHandle, []instruction.Handle{h, j}, true
		}
	}
	return 0, nil, false
}

// canMergeRAW implements the safety predicate from spec §4.3: merging
// first (the writer) and second (the reader) is safe iff, for every K
// in D⁻¹(first) other than second itself:
//
//	(a) R(K) ∩ W(second) = ∅, and
//	(b) K ∉ D(second).
//
// (a) ensures making second a successor of everything that currently
// reads from K doesn't create a cycle of reads observing writes that
// previously happened-after K. (b) ensures merging doesn't make second
// both an ancestor (via K) and a descendant (via the existing edge) of
// itself.
func (m *Merger) canMergeRAW(g Graph, first, second instruction.Handle) bool {
	secondTask, ok := g.TaskOf(second)
	if !ok {
		return false
	}
	secondDeps := g.DependenciesOf(second)
	secondDepSet := make(map[instruction.Handle]struct{}, len(secondDeps))
	for _, d := range secondDeps {
		secondDepSet[d] = struct{}{}
	}

	for _, k := range g.DependentsOf(first) {
		if k == second {
			continue
		}
		kTask, ok := g.TaskOf(k)
		if !ok {
			continue
		}
		if component.Intersects(kTask.Reads, secondTask.Writes) {
			return false
		}
		if _, blocked := secondDepSet[k]; blocked {
			return false
		}
	}
	return true
}
