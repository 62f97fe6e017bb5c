package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LUX-YU/cmake-node-editor/internal/compile"
	"github.com/LUX-YU/cmake-node-editor/internal/project"
)

// planFlags selects which slice of the build order to compile.
type planFlags struct {
	stage     string
	fromNode  string
	toNode    string
	only      bool
	startNode string
}

func addPlanFlags(cmd *cobra.Command, pf *planFlags) {
	cmd.Flags().StringVar(&pf.stage, "stage", "all", "Stage to run: configure, build, install, or all")
	cmd.Flags().StringVar(&pf.fromNode, "from-node", "", "First node of the range (id or title)")
	cmd.Flags().StringVar(&pf.toNode, "to-node", "", "Last node of the range (id or title)")
	cmd.Flags().BoolVar(&pf.only, "only", false, "Compile a single node instead of a range")
	cmd.Flags().StringVar(&pf.startNode, "start-node", "", "Override the project's persisted start node")
}

// compilePlan turns the project into a stage-filtered plan honoring range
// flags and the persisted start node.
func compilePlan(p *project.Project, pf *planFlags, cmake string, parallel int) (*compile.Plan, error) {
	stage, err := compile.ParseStage(pf.stage)
	if err != nil {
		return nil, err
	}

	nodes, err := p.Graph.SortedNodes()
	if err != nil {
		return nil, err
	}

	opts := compile.Options{
		Stage:     stage,
		OnlyFirst: pf.only,
		CMake:     cmake,
		Parallel:  parallel,
	}

	if pf.fromNode != "" {
		id, err := resolveNode(p, pf.fromNode)
		if err != nil {
			return nil, err
		}
		opts.StartID = &id
	} else if pf.startNode != "" {
		id, err := resolveNode(p, pf.startNode)
		if err != nil {
			return nil, err
		}
		opts.StartID = &id
	} else if p.StartNodeID != 0 {
		id := p.StartNodeID
		opts.StartID = &id
	}

	if pf.toNode != "" {
		id, err := resolveNode(p, pf.toNode)
		if err != nil {
			return nil, err
		}
		opts.EndID = &id
	}

	return compile.Compile(nodes, opts)
}

func newPlanCmd(flags *rootFlags) *cobra.Command {
	pf := &planFlags{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compile and print the build plan without executing it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(flags)
			if err != nil {
				return err
			}
			p, err := loadProject(flags, false)
			if err != nil {
				return err
			}

			plan, err := compilePlan(p, pf, settings.CMake, settings.Parallel)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "stage: %s, %d nodes, %d steps\n\n", plan.Stage, len(plan.Groups), plan.StepCount())
			fmt.Fprint(cmd.OutOrStdout(), plan.String())
			return nil
		},
	}

	addPlanFlags(cmd, pf)
	return cmd
}
