package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newOrderCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "order",
		Short: "Print the topological build order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(flags, false)
			if err != nil {
				return err
			}

			nodes, err := p.Graph.SortedNodes()
			if err != nil {
				return err
			}
			for i, node := range nodes {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s (id=%d)\n", i+1, node.Title, node.ID)
			}
			return nil
		},
	}
}
