package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newEdgeCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edge",
		Short: "Manage dependency edges between nodes",
	}

	cmd.AddCommand(newEdgeAddCmd(flags))
	cmd.AddCommand(newEdgeRemoveCmd(flags))

	return cmd
}

func newEdgeAddCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "add SOURCE TARGET",
		Short: "Add a \"source must build before target\" edge",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(flags, false)
			if err != nil {
				return err
			}
			source, err := resolveNode(p, args[0])
			if err != nil {
				return err
			}
			target, err := resolveNode(p, args[1])
			if err != nil {
				return err
			}

			if !p.Graph.AddEdge(source, target) {
				// Self loops and duplicates are silently rejected by the
				// graph; tell the user nothing changed.
				fmt.Fprintf(cmd.OutOrStdout(), "edge %d -> %d not added (self loop or already present)\n", source, target)
				return nil
			}
			if err := saveProject(flags, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added edge %d -> %d\n", source, target)
			return nil
		},
	}
}

func newEdgeRemoveCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "remove SOURCE TARGET",
		Short: "Remove a dependency edge",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(flags, false)
			if err != nil {
				return err
			}
			source, err := resolveNode(p, args[0])
			if err != nil {
				return err
			}
			target, err := resolveNode(p, args[1])
			if err != nil {
				return err
			}

			if !p.Graph.RemoveEdge(source, target) {
				fmt.Fprintf(cmd.OutOrStdout(), "no edge %d -> %d\n", source, target)
				return nil
			}
			if err := saveProject(flags, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed edge %d -> %d\n", source, target)
			return nil
		},
	}
}
