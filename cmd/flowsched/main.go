// Command flowsched is a demo host for the data-flow task scheduler: it
// reads newline-delimited JSON task descriptions from a file or stdin,
// feeds them to a scheduler.TaskQueue, drains it, and logs the dequeue
// order. It is not part of the scheduler's own contract (see internal/app).
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/shaclsched/internal/app"
	"github.com/vk/shaclsched/internal/cli"
	"github.com/vk/shaclsched/internal/component"
	"github.com/vk/shaclsched/internal/hcl"
	"github.com/vk/shaclsched/internal/rewriters"
	"github.com/vk/shaclsched/internal/task"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling.
func run(outW io.Writer, args []string) error {
	cfg, tasksPath, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	a, err := newAppSafely(outW, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	a.StartHealthcheckServer()

	in, closeIn, err := openTasksSource(tasksPath)
	if err != nil {
		return err
	}
	defer closeIn()

	if err := feedTasks(a, in); err != nil {
		return err
	}

	a.Drain(func(t task.Task) {
		fmt.Fprintf(outW, "dequeued: %v\n", t.Payload)
	})
	return nil
}

// newAppSafely recovers app.NewApp's startup panic (a failed config load or
// an unparsable monitor URL) and turns it into an ordinary error, the same conversion
// the teacher's cmd/cli main performs around its own NewApp call.
func newAppSafely(outW io.Writer, cfg *app.Config) (a *app.App, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()
	loader := hcl.NewLoader()
	a = app.NewApp(outW, cfg, loader, rewriters.CombinableRewriter{})
	return a, nil
}

func openTasksSource(path string) (io.Reader, func(), error) {
	if path == "" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open tasks file %q: %w", path, err)
	}
	return f, func() { f.Close() }, nil
}

// taskLine is the newline-delimited JSON wire format for a demo task: a
// string payload tag, its read/write component sets, and its priority.
type taskLine struct {
	Payload  string   `json:"payload"`
	Reads    []string `json:"reads"`
	Writes   []string `json:"writes"`
	Priority int      `json:"priority"`
}

func feedTasks(a *app.App, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var tl taskLine
		if err := json.Unmarshal(line, &tl); err != nil {
			return fmt.Errorf("failed to decode task line %q: %w", line, err)
		}
		if err := a.Enqueue(task.New(tl.Payload, toComponents(tl.Reads), toComponents(tl.Writes), tl.Priority)); err != nil {
			return fmt.Errorf("failed to enqueue task %q: %w", tl.Payload, err)
		}
	}
	return scanner.Err()
}

func toComponents(names []string) []component.Component {
	out := make([]component.Component, len(names))
	for i, n := range names {
		out[i] = n
	}
	return out
}
