package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/LUX-YU/cmake-node-editor/internal/worker"
)

// newWorkerCmd is the hidden entry point the coordinator spawns: the same
// binary re-invoked as a worker, tasks on stdin, events on stdout.
func newWorkerCmd() *cobra.Command {
	var (
		interpreter string
		envScript   string
	)

	cmd := &cobra.Command{
		Use:    "worker",
		Short:  "Run the build worker loop over stdio",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return worker.Run(cmd.Context(), os.Stdin, os.Stdout, worker.Options{
				Interpreter: interpreter,
				EnvScript:   envScript,
			})
		},
	}

	cmd.Flags().StringVar(&interpreter, "interpreter", "", "Interpreter for embedded script steps")
	cmd.Flags().StringVar(&envScript, "env-script", "", "Environment script sourced before building")

	return cmd
}
