package scheduler

import (
	"github.com/vk/shaclsched/internal/component"
	"github.com/vk/shaclsched/internal/instruction"
	"github.com/vk/shaclsched/internal/merger"
	"github.com/vk/shaclsched/internal/ppq"
	"github.com/vk/shaclsched/internal/schedererr"
	"github.com/vk/shaclsched/internal/task"
)

// TaskQueue is the scheduler's producer/consumer surface: enqueue(task),
// registerRewriter(rewriter), dequeue() -> task|none, isEmpty. It runs
// entirely on the caller's goroutine; none of its operations suspend or
// spawn work of their own (see spec §5).
type TaskQueue struct {
	arena   *instruction.Arena
	graph   merger.Graph
	ready   *ppq.Queue
	im      *merger.Merger
	latest  map[component.Component]instruction.Handle
	onMerge func(merged task.Task, superseded int)
}

// New returns an empty TaskQueue.
func New() *TaskQueue {
	arena := instruction.NewArena()
	return &TaskQueue{
		arena:  arena,
		graph:  merger.Adapt(arena),
		ready:  ppq.New(),
		im:     merger.New(),
		latest: make(map[component.Component]instruction.Handle),
	}
}

// RegisterRewriter adds a rewriter to the merger. It may be called at
// any time; the rewriter participates in every subsequent merge
// decision but is never consulted retroactively for instructions
// already completed.
func (q *TaskQueue) RegisterRewriter(r merger.Rewriter) {
	q.im.Register(r)
}

// OnMerge installs a callback invoked whenever a merge succeeds, with the
// fused task and the number of instructions it superseded (always 2, per
// spec §4.3's one-step pairwise merge). It exists so an observer such as
// internal/monitor can report merges without the scheduler core knowing
// anything about monitoring.
func (q *TaskQueue) OnMerge(fn func(merged task.Task, superseded int)) {
	q.onMerge = fn
}

// SeedPriority makes the priority generator aware of a level before any
// task at that level has been enqueued, per spec §4.2's window being
// driven by "every priority level currently in use": a deployment that
// already knows its priority levels up front can seed them so the first
// task at a new maximum doesn't itself cause a visible restart.
func (q *TaskQueue) SeedPriority(priority int) {
	q.ready.SeedPriority(priority)
}

// Enqueue admits t to the scheduler. It fails only with
// schedererr.InvalidArgument if a read or write set contains an
// identifier that cannot be used as a map key; in that case queue
// state is left unchanged. Enqueue never blocks.
func (q *TaskQueue) Enqueue(t task.Task) error {
	for _, c := range t.Reads {
		if err := component.Validate(c); err != nil {
			return schedererr.New(schedererr.InvalidArgument, err)
		}
	}
	for _, c := range t.Writes {
		if err := component.Validate(c); err != nil {
			return schedererr.New(schedererr.InvalidArgument, err)
		}
	}

	h := q.arena.New(t)

	for _, c := range t.Reads {
		if writer, ok := q.latest[c]; ok {
			q.arena.AddEdge(writer, h)
		}
	}
	for _, c := range t.Writes {
		q.latest[c] = h
	}

	if q.arena.Eligible(h) {
		q.ready.Push(t.Priority, h)
	}

	q.im.IntroduceInstruction(q.graph, h)
	q.tryMerge(h)
	return nil
}

// tryMerge offers the instruction merger a chance to fuse h with one of
// its dependents, or h's dependencies with h itself. Merging is a pure
// offer (spec §4.3): whether or not it succeeds, every observable
// scheduling guarantee still holds. This implementation chooses to
// offer a merge right after every enqueue, since spec §9's open
// question 3 leaves the trigger unspecified. h is usually the reader
// half of a freshly-formed RAW pair, so the candidate ancestor (the
// writer role Merge expects) is one of h's own dependencies, not h.
func (q *TaskQueue) tryMerge(h instruction.Handle) {
	candidates := append([]instruction.Handle{h}, q.arena.DependenciesOf(h)...)
	for _, c := range candidates {
		merged, superseded, ok := q.im.Merge(q.graph, c)
		if !ok {
			continue
		}
		mt, exists := q.arena.Task(merged)
		if exists && q.arena.Eligible(merged) {
			q.ready.Push(mt.Priority, merged)
		}
		if q.onMerge != nil {
			q.onMerge(mt, len(superseded))
		}
		return
	}
}

// Dequeue selects the highest-priority eligible instruction, pre-
// emptively completes it (cascading readiness to its dependents and
// unregistering it from the merger), and returns its task. It returns
// (zero, false) when nothing is eligible.
//
// A handle popped from the ready queue may refer to an instruction a
// merge has since superseded (see instruction.Arena.Supersede); such
// handles are stale and are skipped rather than returned.
func (q *TaskQueue) Dequeue() (task.Task, bool) {
	for {
		h, ok := q.ready.Pop()
		if !ok {
			return task.Task{}, false
		}
		if !q.arena.Exists(h) {
			continue
		}
		t, _ := q.arena.Task(h)
		q.complete(h)
		return t, true
	}
}

// complete severs h's outgoing edges, cascading eligibility to every
// instruction that depended on it, clears any latest-writer entries
// still pointing at h, and releases h from the arena. The scheduler
// considers a task "done" the moment it is dequeued (spec §4.1): it
// owns only ordering, not execution, so any producer needing
// happens-after ordering with a successor must encode it via read/write
// sets rather than relying on when the consumer actually finishes.
func (q *TaskQueue) complete(h instruction.Handle) {
	t, _ := q.arena.Task(h)
	q.im.CompleteInstruction(h)

	for _, j := range q.arena.DependentsOf(h) {
		q.arena.RemoveDependency(j, h)
		if q.arena.Eligible(j) {
			jt, _ := q.arena.Task(j)
			q.ready.Push(jt.Priority, j)
		}
	}
	q.arena.ClearDependents(h)

	for _, c := range t.Writes {
		if q.latest[c] == h {
			delete(q.latest, c)
		}
	}

	q.arena.Remove(h)
}

// IsEmpty reports whether the ready queue is empty. See
// ppq.Queue.IsEmpty for the narrow case where this can transiently
// report false for an instant after a merge supersedes everything
// still pending.
func (q *TaskQueue) IsEmpty() bool {
	return q.ready.IsEmpty()
}

// Pending reports the number of instructions currently admitted but not
// yet dequeued, including ones still blocked on an unmet dependency.
func (q *TaskQueue) Pending() int {
	return q.arena.Len()
}
