// Package ppq implements the priority-partitioned ready queue: a family
// of per-priority FIFO sub-queues served by a Generator that favors
// higher priorities while still guaranteeing every sub-queue is
// serviced once per cycle.
package ppq

import "github.com/vk/shaclsched/internal/instruction"

// Queue holds weak references (instruction.Handle values) to eligible
// instructions, partitioned by priority. It does not know anything
// about the dependency graph; instructions are pushed by the scheduler
// exactly when they become eligible and popped in priority order.
type Queue struct {
	gen       *Generator
	subqueues map[int][]instruction.Handle
	nonEmpty  int
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{
		gen:       NewGenerator(),
		subqueues: make(map[int][]instruction.Handle),
	}
}

// SeedPriority makes the generator aware of priority before any
// instruction at that level exists, so the first real Push at a new
// maximum doesn't itself trigger a visible restart of the cycle.
func (q *Queue) SeedPriority(priority int) {
	q.gen.NotifyPriorityExists(priority)
}

// Push admits h into priority's sub-queue, appending to its tail so
// that equal-priority instructions are serviced FIFO.
func (q *Queue) Push(priority int, h instruction.Handle) {
	q.gen.NotifyPriorityExists(priority)
	sub := q.subqueues[priority]
	if len(sub) == 0 {
		q.nonEmpty++
	}
	q.subqueues[priority] = append(sub, h)
}

// Pop advances the generator until it lands on a non-empty sub-queue,
// then pops that sub-queue's front. It returns false only when every
// sub-queue is empty. This terminates because at least one sub-queue is
// non-empty whenever IsEmpty is false, and the generator visits every
// known priority within one cycle.
func (q *Queue) Pop() (instruction.Handle, bool) {
	if q.nonEmpty == 0 {
		return 0, false
	}
	for {
		p := q.gen.Next()
		sub, ok := q.subqueues[p]
		if !ok || len(sub) == 0 {
			continue
		}
		h := sub[0]
		if len(sub) == 1 {
			delete(q.subqueues, p)
			q.nonEmpty--
		} else {
			q.subqueues[p] = sub[1:]
		}
		return h, true
	}
}

// IsEmpty reports whether every sub-queue is empty. A handle made
// stale by a merge (see instruction.Arena.Supersede) still occupies a
// sub-queue slot until Pop reaches it; IsEmpty may therefore report
// non-empty for one beat after the last live instruction was
// superseded. The scheduler resolves this by skipping stale handles as
// it pops them (see scheduler.TaskQueue.Dequeue), so a caller observing
// IsEmpty()==false is always guaranteed that the next Dequeue either
// returns a task or drains straight through to none.
func (q *Queue) IsEmpty() bool {
	return q.nonEmpty == 0
}
