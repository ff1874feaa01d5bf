package app

import (
	"github.com/vk/shaclsched/internal/monitor"
	"github.com/vk/shaclsched/internal/task"
)

// Enqueue admits t to the underlying TaskQueue and, if a monitor is
// configured, reports the admission.
func (a *App) Enqueue(t task.Task) error {
	if err := a.queue.Enqueue(t); err != nil {
		return err
	}
	a.monitor.Emit(monitor.EventEnqueued, map[string]any{"payload": t.Payload, "priority": t.Priority})
	return nil
}

// Dequeue pulls the next task, reporting its departure to the monitor.
func (a *App) Dequeue() (task.Task, bool) {
	t, ok := a.queue.Dequeue()
	if !ok {
		return task.Task{}, false
	}
	a.monitor.Emit(monitor.EventDequeued, map[string]any{"payload": t.Payload})
	return t, true
}

// Complete reports a drained task's downstream completion to the monitor.
// The TaskQueue itself treats a task as done the instant Dequeue returns it
// (spec §4.1); Complete exists only so a demo caller that simulates
// "executing" the task can narrate that over the monitor channel too.
func (a *App) Complete(t task.Task) {
	a.monitor.Emit(monitor.EventCompleted, map[string]any{"payload": t.Payload})
}

// Drain dequeues tasks in order, including ones made eligible as earlier
// ones are dequeued, invoking fn for each, until Dequeue reports nothing
// left. It is the demo CLI's main loop.
func (a *App) Drain(fn func(task.Task)) {
	for {
		t, ok := a.Dequeue()
		if !ok {
			return
		}
		fn(t)
		a.Complete(t)
	}
}
