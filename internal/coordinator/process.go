package coordinator

import (
	"context"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/LUX-YU/cmake-node-editor/internal/worker"
	cneerrors "github.com/LUX-YU/cmake-node-editor/pkg/errors"
)

// ProcessOptions configures worker subprocesses. The worker is this same
// binary re-invoked with its hidden worker subcommand, so a hung or
// crashing build tool can never take the controlling process down with it.
type ProcessOptions struct {
	// Binary is the executable to spawn. Empty resolves to the current
	// executable via os.Executable.
	Binary string
	// Interpreter is forwarded to the worker for script steps.
	Interpreter string
	// EnvScript is forwarded to the worker for environment bootstrap.
	EnvScript string
	// Stderr receives the worker's stderr stream. Nil discards it.
	Stderr io.Writer
}

// SpawnProcess returns a SpawnFunc that starts a worker subprocess with
// its task stream on stdin and its event stream on stdout.
func SpawnProcess(opts ProcessOptions) SpawnFunc {
	return func(ctx context.Context) (Handle, error) {
		binary := opts.Binary
		if binary == "" {
			self, err := os.Executable()
			if err != nil {
				return nil, cneerrors.NewWorkerError("resolving worker binary", err)
			}
			binary = self
		}

		args := []string{"worker"}
		if opts.Interpreter != "" {
			args = append(args, "--interpreter", opts.Interpreter)
		}
		if opts.EnvScript != "" {
			args = append(args, "--env-script", opts.EnvScript)
		}

		cmd := exec.CommandContext(ctx, binary, args...)
		cmd.Stderr = opts.Stderr

		stdin, err := cmd.StdinPipe()
		if err != nil {
			return nil, cneerrors.NewWorkerError("opening worker stdin", err)
		}
		stdout, err := cmd.StdoutPipe()
		if err != nil {
			return nil, cneerrors.NewWorkerError("opening worker stdout", err)
		}
		if err := cmd.Start(); err != nil {
			return nil, cneerrors.NewWorkerError("starting worker process", err)
		}

		h := &processHandle{
			cmd:    cmd,
			stdin:  stdin,
			tasks:  worker.NewTaskEncoder(stdin),
			events: worker.NewEventDecoder(stdout),
			exited: make(chan struct{}),
		}
		go h.reap()
		return h, nil
	}
}

// processHandle adapts a worker subprocess to the Handle interface.
type processHandle struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	events *worker.EventDecoder

	sendMu sync.Mutex
	tasks  *worker.TaskEncoder

	exited  chan struct{}
	waitErr error
}

func (h *processHandle) reap() {
	h.waitErr = h.cmd.Wait()
	close(h.exited)
}

func (h *processHandle) Send(task worker.Task) error {
	h.sendMu.Lock()
	defer h.sendMu.Unlock()
	if err := h.tasks.Encode(task); err != nil {
		return err
	}
	if task.Kind == worker.TaskQuit {
		// Closing stdin unblocks the worker even if the quit token was
		// never read.
		return h.stdin.Close()
	}
	return nil
}

func (h *processHandle) Receive() (worker.Event, error) {
	return h.events.Decode()
}

func (h *processHandle) Wait(ctx context.Context) error {
	select {
	case <-h.exited:
		return h.waitErr
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *processHandle) Kill() error {
	select {
	case <-h.exited:
		return nil
	default:
	}
	return h.cmd.Process.Kill()
}
