// Package execute runs single build plan steps. Script steps hand the
// embedded text to an external interpreter process; this deliberately keeps
// the original tool's arbitrary-script capability, with no sandboxing, so
// project files must be treated as trusted input.
package execute

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime/debug"
	"strings"

	"github.com/LUX-YU/cmake-node-editor/internal/compile"
	cneerrors "github.com/LUX-YU/cmake-node-editor/pkg/errors"
)

// DefaultInterpreter runs script steps when no interpreter is configured.
const DefaultInterpreter = "python3"

// Outcome reports one step's verdict together with the log lines produced
// while running it, in emission order. Err carries the typed failure cause
// (CommandError, ScriptError or UnknownStepKindError) and is nil when OK.
type Outcome struct {
	OK       bool
	ExitCode int
	Logs     []string
	Err      error
}

// Executor runs steps one at a time.
type Executor struct {
	interpreter string
}

// New creates an Executor. An empty interpreter selects DefaultInterpreter.
func New(interpreter string) *Executor {
	if interpreter == "" {
		interpreter = DefaultInterpreter
	}
	return &Executor{interpreter: interpreter}
}

// Run executes exactly one step. It has no error return: every failure mode,
// including panics, is converted into a failed Outcome with the cause logged.
func (e *Executor) Run(ctx context.Context, step compile.Step) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = Outcome{
				OK:       false,
				ExitCode: -1,
				Logs: append(outcome.Logs,
					fmt.Sprintf("panic while executing %s: %v", step.DisplayName, r),
					string(debug.Stack())),
				Err: fmt.Errorf("panic while executing %s: %v", step.DisplayName, r),
			}
		}
	}()

	switch step.Kind {
	case compile.StepCommand:
		return e.runCommand(ctx, step)
	case compile.StepScript:
		return e.runScript(ctx, step)
	default:
		return Outcome{
			OK:       false,
			ExitCode: -1,
			Logs:     []string{fmt.Sprintf("unknown step kind %q for %s", step.Kind, step.DisplayName)},
			Err:      cneerrors.NewUnknownStepKindError(string(step.Kind)),
		}
	}
}

func (e *Executor) runCommand(ctx context.Context, step compile.Step) Outcome {
	logs := []string{fmt.Sprintf("executing command: %s\n%s", step.DisplayName, step.CommandLine())}

	var stdout, stderr strings.Builder
	cmd := exec.CommandContext(ctx, step.Program, step.Args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if stdout.Len() > 0 {
		logs = append(logs, stdout.String())
	}
	if stderr.Len() > 0 {
		logs = append(logs, stderr.String())
	}

	if err == nil {
		logs = append(logs, fmt.Sprintf("command succeeded: %s", step.DisplayName))
		return Outcome{OK: true, Logs: logs}
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
		logs = append(logs, fmt.Sprintf("command failed: %s, returncode=%d", step.DisplayName, exitCode))
		return Outcome{OK: false, ExitCode: exitCode, Logs: logs, Err: cneerrors.NewCommandError(step.DisplayName, exitCode, nil)}
	}
	logs = append(logs, fmt.Sprintf("command failed: %s: %v", step.DisplayName, err))
	return Outcome{OK: false, ExitCode: exitCode, Logs: logs, Err: cneerrors.NewCommandError(step.DisplayName, exitCode, err)}
}

// runScript writes the script text to a temp file and runs the interpreter on
// it. The interpreter's combined output, including any exception message and
// traceback, becomes at most one log event; a literally empty capture emits
// no output event.
func (e *Executor) runScript(ctx context.Context, step compile.Step) Outcome {
	logs := []string{fmt.Sprintf("executing script: %s", step.DisplayName)}

	file, err := os.CreateTemp("", "cne-script-*.py")
	if err != nil {
		logs = append(logs, fmt.Sprintf("script failed: %s: %v", step.DisplayName, err))
		return Outcome{OK: false, ExitCode: -1, Logs: logs, Err: cneerrors.NewScriptError(step.DisplayName, err)}
	}
	defer os.Remove(file.Name())

	if _, err := file.WriteString(step.Script); err != nil {
		file.Close()
		logs = append(logs, fmt.Sprintf("script failed: %s: %v", step.DisplayName, err))
		return Outcome{OK: false, ExitCode: -1, Logs: logs, Err: cneerrors.NewScriptError(step.DisplayName, err)}
	}
	if err := file.Close(); err != nil {
		logs = append(logs, fmt.Sprintf("script failed: %s: %v", step.DisplayName, err))
		return Outcome{OK: false, ExitCode: -1, Logs: logs, Err: cneerrors.NewScriptError(step.DisplayName, err)}
	}

	var combined strings.Builder
	cmd := exec.CommandContext(ctx, e.interpreter, file.Name())
	cmd.Stdout = &combined
	cmd.Stderr = &combined

	runErr := cmd.Run()
	if combined.Len() > 0 {
		logs = append(logs, combined.String())
	}

	if runErr == nil {
		logs = append(logs, fmt.Sprintf("script executed successfully: %s", step.DisplayName))
		return Outcome{OK: true, Logs: logs}
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	logs = append(logs, fmt.Sprintf("script failed: %s: %v", step.DisplayName, runErr))
	return Outcome{OK: false, ExitCode: exitCode, Logs: logs, Err: cneerrors.NewScriptError(step.DisplayName, runErr)}
}
