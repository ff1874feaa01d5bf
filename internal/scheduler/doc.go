// Package scheduler implements the task queue (TQ): the top-level,
// single-threaded scheduler that accepts tasks, builds dependency edges
// from their read/write sets, stores them as instructions, admits
// eligible ones to a priority-partitioned ready queue, and on dequeue
// hands the next runnable task to its caller while cascading
// readiness to whatever depended on it.
//
// TQ owns the instruction arena exclusively (see internal/instruction);
// the ready queue (internal/ppq) and the merger (internal/merger) hold
// only weak references (instruction.Handle values) into it.
package scheduler
