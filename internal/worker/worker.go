package worker

import (
	"context"
	"fmt"
	"io"

	"github.com/LUX-YU/cmake-node-editor/internal/compile"
	"github.com/LUX-YU/cmake-node-editor/internal/execute"
)

// Options configures a worker run.
type Options struct {
	// Interpreter runs script steps; empty selects the executor default.
	Interpreter string
	// EnvScript, when set, is sourced before the first task and its
	// resulting environment imported into this process.
	EnvScript string
}

// Run is the worker main loop: read tasks, execute plans, stream events.
// It returns when the quit token arrives or the task stream ends. Every
// plan failure is reported on the event stream; the returned error covers
// only stream-level breakage.
func Run(ctx context.Context, in io.Reader, out io.Writer, opts Options) error {
	events := NewEventEncoder(out)
	emit := func(event Event) error {
		return events.Encode(event)
	}
	logf := func(index int, format string, args ...any) error {
		return emit(Event{Kind: EventLog, Index: index, Text: fmt.Sprintf(format, args...)})
	}

	bootstrapEnv(opts, func(text string) {
		_ = logf(GlobalIndex, "%s", text)
	})

	if err := logf(GlobalIndex, "worker started"); err != nil {
		return err
	}

	executor := execute.New(opts.Interpreter)
	tasks := NewTaskDecoder(in)

	for {
		task, err := tasks.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			_ = logf(GlobalIndex, "malformed task: %v", err)
			return err
		}

		switch task.Kind {
		case TaskQuit:
			if err := logf(GlobalIndex, "received quit, exiting"); err != nil {
				return err
			}
			return logf(GlobalIndex, "worker finished")
		case TaskPlan:
			if task.Plan == nil {
				_ = logf(GlobalIndex, "plan task without plan payload, ignoring")
				continue
			}
			if err := runPlan(ctx, executor, task.Plan, emit, logf); err != nil {
				return err
			}
		default:
			_ = logf(GlobalIndex, "received unknown task kind %q, ignoring", task.Kind)
		}
	}

	return logf(GlobalIndex, "worker finished")
}

// runPlan executes the plan's node groups in order. Steps inside a group run
// strictly sequentially; the first failing step fails its node, and a failed
// node aborts every remaining node. The sentinel whole-plan result is always
// the last result emitted.
func runPlan(ctx context.Context, executor *execute.Executor, plan *compile.Plan, emit func(Event) error, logf func(int, string, ...any) error) error {
	if err := logf(GlobalIndex, "executing build plan: %d nodes", len(plan.Groups)); err != nil {
		return err
	}

	for _, group := range plan.Groups {
		failed := false
		for _, step := range group.Steps {
			outcome := executor.Run(ctx, step)
			for _, line := range outcome.Logs {
				if err := logf(group.Index, "%s", line); err != nil {
					return err
				}
			}
			if !outcome.OK {
				failed = true
				break
			}
		}

		if err := emit(Event{Kind: EventResult, Index: group.Index, OK: !failed}); err != nil {
			return err
		}
		if failed {
			if err := logf(GlobalIndex, "node %q failed, aborting remaining nodes", group.Title); err != nil {
				return err
			}
			return emit(Event{Kind: EventResult, Index: GlobalIndex, OK: false})
		}
	}

	if err := logf(GlobalIndex, "all nodes succeeded"); err != nil {
		return err
	}
	return emit(Event{Kind: EventResult, Index: GlobalIndex, OK: true})
}
