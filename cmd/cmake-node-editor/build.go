package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/LUX-YU/cmake-node-editor/internal/compile"
	"github.com/LUX-YU/cmake-node-editor/internal/coordinator"
	"github.com/LUX-YU/cmake-node-editor/internal/logger"
	"github.com/LUX-YU/cmake-node-editor/internal/tui"
	"github.com/LUX-YU/cmake-node-editor/internal/worker"
	cneerrors "github.com/LUX-YU/cmake-node-editor/pkg/errors"
)

func newBuildCmd(flags *rootFlags) *cobra.Command {
	pf := &planFlags{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile the build plan and execute it in a worker process",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			interactive := term.IsTerminal(int(os.Stdout.Fd()))
			return runBuild(cmd, flags, pf, interactive)
		},
	}

	addPlanFlags(cmd, pf)
	return cmd
}

func runBuild(cmd *cobra.Command, flags *rootFlags, pf *planFlags, interactive bool) error {
	settings, err := loadSettings(flags)
	if err != nil {
		return err
	}
	log, err := newLog(flags, settings)
	if err != nil {
		return err
	}
	p, err := loadProject(flags, false)
	if err != nil {
		return err
	}

	// Compilation validates every node before any process is spawned; a
	// doomed plan never reaches the worker.
	plan, err := compilePlan(p, pf, settings.CMake, settings.Parallel)
	if err != nil {
		log.Error(err, "plan compilation failed")
		return err
	}
	if len(plan.Groups) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "nothing to build")
		return nil
	}

	spawn := coordinator.SpawnProcess(coordinator.ProcessOptions{
		Interpreter: settings.Interpreter,
		EnvScript:   settings.EnvScript,
		Stderr:      os.Stderr,
	})

	if interactive {
		return runBuildTUI(flags, pf, plan, spawn, settings.GraceTimeout())
	}
	return runBuildPlain(cmd, log, plan, spawn, settings.GraceTimeout())
}

func runBuildPlain(cmd *cobra.Command, log *logger.Logger, plan *compile.Plan, spawn coordinator.SpawnFunc, grace time.Duration) error {
	out := cmd.OutOrStdout()

	coord, err := coordinator.New(coordinator.Options{
		Spawn:        spawn,
		GraceTimeout: grace,
		Logs: func(index int, text string) {
			fmt.Fprintln(out, text)
		},
		Results: func(index int, ok bool) {
			verdict := "succeeded"
			if !ok {
				verdict = "failed"
			}
			if index >= 0 && index < len(plan.Groups) {
				fmt.Fprintf(out, "node %q %s\n", plan.Groups[index].Title, verdict)
			}
		},
	})
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := coord.Submit(ctx, plan); err != nil {
		return err
	}
	if err := coord.Wait(ctx); err != nil {
		return err
	}

	return reportOutcome(out, coord)
}

func runBuildTUI(flags *rootFlags, pf *planFlags, plan *compile.Plan, spawn coordinator.SpawnFunc, grace time.Duration) error {
	var coord *coordinator.Coordinator

	model := tui.NewModel(filepath.Base(flags.projectPath), plan, func() {
		if coord != nil {
			coord.Cancel()
		}
	})
	program := tea.NewProgram(model)

	coord, err := coordinator.New(coordinator.Options{
		Spawn:        spawn,
		GraceTimeout: grace,
		Logs: func(index int, text string) {
			program.Send(tui.LogMsg{Index: index, Text: text})
		},
		Results: func(index int, ok bool) {
			program.Send(tui.NodeResultMsg{Index: index, OK: ok})
		},
	})
	if err != nil {
		return err
	}

	ctx := context.Background()
	go func() {
		if err := coord.Submit(ctx, plan); err != nil {
			program.Send(tui.LogMsg{Index: worker.GlobalIndex, Text: err.Error()})
			program.Send(tui.BuildFinishedMsg{OK: false})
			return
		}
		_ = coord.Wait(ctx)
		program.Send(tui.BuildFinishedMsg{OK: coord.State() == coordinator.StateCompleted})
	}()

	if _, err := program.Run(); err != nil {
		coord.Cancel()
		return err
	}

	return reportOutcome(os.Stdout, coord)
}

func reportOutcome(out io.Writer, coord *coordinator.Coordinator) error {
	completed, total := coord.Progress()
	switch coord.State() {
	case coordinator.StateCompleted:
		fmt.Fprintf(out, "build completed: %d/%d nodes\n", completed, total)
		return nil
	case coordinator.StateCancelled:
		return cneerrors.NewWorkerError("build cancelled", nil)
	default:
		if err := coord.Err(); err != nil {
			return err
		}
		return fmt.Errorf("build failed after %d/%d nodes", completed, total)
	}
}
