package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	projectPath  string
	settingsPath string
	verbose      bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "cmake-node-editor",
		Short:         "Compose and build pipelines of dependent CMake projects",
		Long:          "cmake-node-editor maintains a dependency graph of CMake projects,\ncompiles it into an ordered build plan, and executes the plan in an\nisolated worker process.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.projectPath, "project", "p", "project.json", "Path to the project file")
	cmd.PersistentFlags().StringVar(&flags.settingsPath, "settings", defaultSettingsPath(), "Path to the tool settings file")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(newNodeCmd(flags))
	cmd.AddCommand(newEdgeCmd(flags))
	cmd.AddCommand(newOrderCmd(flags))
	cmd.AddCommand(newPlanCmd(flags))
	cmd.AddCommand(newBuildCmd(flags))
	cmd.AddCommand(newShowCmd(flags))
	cmd.AddCommand(newWorkerCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}
