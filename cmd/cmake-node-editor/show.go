package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newShowCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the project's nodes, edges, and settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(flags, false)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			nodes := p.Graph.Nodes()
			fmt.Fprintf(out, "project: %s (%d nodes, %d edges)\n", flags.projectPath, len(nodes), len(p.Graph.Edges()))
			if p.StartNodeID != 0 {
				fmt.Fprintf(out, "start node: %d\n", p.StartNodeID)
			}

			for _, node := range nodes {
				fmt.Fprintf(out, "\n[%d] %s\n", node.ID, node.Title)
				if node.ProjectPath != "" {
					fmt.Fprintf(out, "  path: %s\n", node.ProjectPath)
				}
				s := node.Settings
				fmt.Fprintf(out, "  build type: %s\n", s.BuildType)
				fmt.Fprintf(out, "  build dir: %s/%s/%s\n", s.BuildDir, node.Title, s.BuildType)
				fmt.Fprintf(out, "  install dir: %s/%s\n", s.InstallDir, s.BuildType)
				if s.Generator != "" {
					fmt.Fprintf(out, "  generator: %s\n", s.Generator)
				}
				if s.ToolchainFile != "" {
					fmt.Fprintf(out, "  toolchain: %s\n", s.ToolchainFile)
				}
				if s.PrefixPath != "" {
					fmt.Fprintf(out, "  prefix path: %s\n", s.PrefixPath)
				}
				if s.CCompiler != "" || s.CXXCompiler != "" {
					fmt.Fprintf(out, "  compilers: C=%s CXX=%s\n", s.CCompiler, s.CXXCompiler)
				}
				if len(node.CMakeOptions) > 0 {
					fmt.Fprintf(out, "  options: %s\n", strings.Join(node.CMakeOptions, " "))
				}
				if node.CodeBeforeBuild != "" {
					fmt.Fprintln(out, "  pre-build script: yes")
				}
				if node.CodeAfterInstall != "" {
					fmt.Fprintln(out, "  post-install script: yes")
				}
			}

			if edges := p.Graph.Edges(); len(edges) > 0 {
				fmt.Fprintln(out, "\nedges:")
				for _, edge := range edges {
					fmt.Fprintf(out, "  %d -> %d\n", edge.SourceID, edge.TargetID)
				}
			}
			return nil
		},
	}
}
