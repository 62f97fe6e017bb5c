// Package coordinator drives a build plan through a worker execution
// context: it submits the plan, consumes the event stream, tracks per
// node progress, and owns the run's state machine.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/LUX-YU/cmake-node-editor/internal/compile"
	"github.com/LUX-YU/cmake-node-editor/internal/worker"
	cneerrors "github.com/LUX-YU/cmake-node-editor/pkg/errors"
)

// State is the lifecycle of a single build run.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateFailed
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether the run can no longer change state.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateFailed || s == StateCancelled
}

// Handle is one live worker execution context. The shipped implementation
// wraps a child OS process; tests substitute an in-memory loop.
type Handle interface {
	// Send delivers one task to the worker.
	Send(task worker.Task) error
	// Receive blocks for the next event. io.EOF means the worker closed
	// its event stream.
	Receive() (worker.Event, error)
	// Wait blocks until the worker exits, up to the deadline on ctx.
	Wait(ctx context.Context) error
	// Kill force-terminates the worker. Safe to call after exit.
	Kill() error
}

// SpawnFunc creates a fresh worker handle for a run.
type SpawnFunc func(ctx context.Context) (Handle, error)

// LogSink receives worker log lines verbatim, in arrival order. The index
// is the plan group index, or worker.GlobalIndex for whole-run lines.
type LogSink func(index int, text string)

// ResultSink receives per-node verdicts as they arrive. The sentinel
// whole-plan result is not forwarded; it is reported through State.
type ResultSink func(index int, ok bool)

// DefaultGraceTimeout bounds how long Cancel and teardown wait for the
// worker to exit on its own before killing it.
const DefaultGraceTimeout = 3 * time.Second

// Options configures a Coordinator.
type Options struct {
	// Spawn creates the worker for each submitted plan. Required.
	Spawn SpawnFunc
	// Logs receives worker log events. Optional.
	Logs LogSink
	// Results receives per-node verdicts. Optional.
	Results ResultSink
	// GraceTimeout overrides DefaultGraceTimeout when positive.
	GraceTimeout time.Duration
}

// Coordinator runs at most one build plan at a time.
type Coordinator struct {
	spawn   SpawnFunc
	sink    LogSink
	results ResultSink
	grace   time.Duration

	mu        sync.Mutex
	state     State
	completed int
	total     int
	handle    Handle
	done      chan struct{}
	runErr    error
}

// New returns an idle coordinator.
func New(opts Options) (*Coordinator, error) {
	if opts.Spawn == nil {
		return nil, cneerrors.NewWorkerError("no spawn function configured", nil)
	}
	sink := opts.Logs
	if sink == nil {
		sink = func(int, string) {}
	}
	results := opts.Results
	if results == nil {
		results = func(int, bool) {}
	}
	grace := opts.GraceTimeout
	if grace <= 0 {
		grace = DefaultGraceTimeout
	}
	return &Coordinator{
		spawn:   opts.Spawn,
		sink:    sink,
		results: results,
		grace:   grace,
		state:   StateIdle,
	}, nil
}

// Submit starts executing the plan. It spawns a worker, hands it the plan
// as a single message, and returns immediately; progress is observed via
// Progress, State and Wait. Submit is rejected unless the coordinator is
// idle.
func (c *Coordinator) Submit(ctx context.Context, plan *compile.Plan) error {
	if plan == nil {
		return cneerrors.NewWorkerError("nil plan submitted", nil)
	}

	c.mu.Lock()
	if c.state != StateIdle {
		state := c.state
		c.mu.Unlock()
		return cneerrors.NewWorkerError(fmt.Sprintf("cannot submit while %s", state), nil)
	}
	c.state = StateRunning
	c.completed = 0
	c.total = len(plan.Groups)
	c.done = make(chan struct{})
	c.runErr = nil
	c.mu.Unlock()

	handle, err := c.spawn(ctx)
	if err != nil {
		werr := cneerrors.NewWorkerError("spawning worker", err)
		c.finish(StateFailed, werr)
		return werr
	}

	if err := handle.Send(worker.Task{Kind: worker.TaskPlan, Plan: plan}); err != nil {
		werr := cneerrors.NewWorkerError("sending plan", err)
		_ = handle.Kill()
		c.finish(StateFailed, werr)
		return werr
	}

	c.mu.Lock()
	if c.state != StateRunning {
		// Cancelled while the worker was being spawned.
		c.mu.Unlock()
		c.teardown(handle, true)
		return nil
	}
	c.handle = handle
	c.mu.Unlock()

	go c.listen(handle)
	return nil
}

// listen is the single suspension point on the controlling side: it blocks
// on the worker's event stream, forwards log events to the sink, counts
// per node results, and transitions on the sentinel whole-plan result.
func (c *Coordinator) listen(handle Handle) {
	for {
		event, err := handle.Receive()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			c.teardown(handle, false)
			c.finish(StateFailed, cneerrors.NewWorkerError("event stream broke", err))
			return
		}

		switch event.Kind {
		case worker.EventLog:
			c.sink(event.Index, event.Text)
		case worker.EventResult:
			if event.Index != worker.GlobalIndex {
				c.mu.Lock()
				c.completed++
				c.mu.Unlock()
				c.results(event.Index, event.OK)
				continue
			}
			c.teardown(handle, true)
			if event.OK {
				c.finish(StateCompleted, nil)
			} else {
				c.finish(StateFailed, nil)
			}
			return
		}
	}
}

// teardown asks the worker to quit, waits up to the grace timeout, and
// kills it if it has not exited by then.
func (c *Coordinator) teardown(handle Handle, sendQuit bool) {
	if sendQuit {
		_ = handle.Send(worker.Task{Kind: worker.TaskQuit})
	}
	ctx, cancel := context.WithTimeout(context.Background(), c.grace)
	defer cancel()
	if err := handle.Wait(ctx); err != nil {
		_ = handle.Kill()
	}
}

// Cancel aborts an in-flight run. The worker only checks for quit between
// plans, so an in-flight plan dies by process termination after the grace
// timeout, not by clean unwind. Cancelling an idle or finished coordinator
// is a no-op.
func (c *Coordinator) Cancel() {
	c.mu.Lock()
	if c.state != StateRunning {
		c.mu.Unlock()
		return
	}
	c.state = StateCancelled
	handle := c.handle
	c.handle = nil
	done := c.done
	c.mu.Unlock()

	if handle != nil {
		c.teardown(handle, true)
	}
	if done != nil {
		close(done)
	}
}

// finish records the terminal state unless the run was already cancelled
// or otherwise finished. The first terminal transition wins.
func (c *Coordinator) finish(state State, err error) {
	c.mu.Lock()
	if c.state.Terminal() {
		c.mu.Unlock()
		return
	}
	c.state = state
	c.runErr = err
	c.handle = nil
	done := c.done
	c.mu.Unlock()

	if done != nil {
		close(done)
	}
}

// Progress returns the number of finished node groups and the plan total.
// The sentinel whole-plan result never increments the completed count.
func (c *Coordinator) Progress() (completed, total int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.completed, c.total
}

// State returns the current run state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the run-level error, if the run failed at the worker
// transport level. A plan that merely built unsuccessfully yields
// StateFailed with a nil Err.
func (c *Coordinator) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.runErr
}

// Wait blocks until the run reaches a terminal state or ctx expires.
func (c *Coordinator) Wait(ctx context.Context) error {
	c.mu.Lock()
	done := c.done
	state := c.state
	c.mu.Unlock()

	if done == nil || state.Terminal() {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
