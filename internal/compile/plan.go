package compile

import (
	"fmt"
	"strings"
)

// StepKind tags the two step variants. The executor dispatches on this tag in
// a single switch; any other value is rejected there as an unknown kind.
type StepKind string

const (
	// StepCommand is a native program invocation.
	StepCommand StepKind = "command"
	// StepScript is embedded script text run by the configured interpreter.
	StepScript StepKind = "script"
)

// Step is one executable unit of a build plan.
type Step struct {
	Kind        StepKind `json:"kind"`
	DisplayName string   `json:"display_name"`

	// Command fields, set when Kind == StepCommand.
	Program string   `json:"program,omitempty"`
	Args    []string `json:"args,omitempty"`

	// Script text, set when Kind == StepScript.
	Script string `json:"script,omitempty"`
}

// CommandLine renders the program and arguments for display.
func (s Step) CommandLine() string {
	if s.Kind != StepCommand {
		return ""
	}
	return strings.Join(append([]string{s.Program}, s.Args...), " ")
}

// NodeGroup is the ordered step group for one node, tagged with a snapshot of
// the node's identity so execution never re-reads the live graph.
type NodeGroup struct {
	Index  int    `json:"index"`
	NodeID int    `json:"node_id"`
	Title  string `json:"title"`
	Steps  []Step `json:"steps"`
}

// Plan is a compiled, ordered, stage-filtered sequence of node groups.
type Plan struct {
	Stage       string      `json:"stage"`
	StartNodeID int         `json:"start_node_id"`
	Groups      []NodeGroup `json:"groups"`
}

// StepCount returns the total number of steps across all groups.
func (p *Plan) StepCount() int {
	if p == nil {
		return 0
	}
	n := 0
	for _, group := range p.Groups {
		n += len(group.Steps)
	}
	return n
}

// String renders a human readable summary of the plan.
func (p *Plan) String() string {
	if p == nil {
		return ""
	}

	var b strings.Builder
	for _, group := range p.Groups {
		fmt.Fprintf(&b, "%d. %s (ID=%d, %d steps)\n", group.Index+1, group.Title, group.NodeID, len(group.Steps))
		for _, step := range group.Steps {
			if step.Kind == StepScript {
				fmt.Fprintf(&b, "   - %s [script]\n", step.DisplayName)
			} else {
				fmt.Fprintf(&b, "   - %s: %s\n", step.DisplayName, step.CommandLine())
			}
		}
	}
	return b.String()
}
