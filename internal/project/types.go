// Package project persists a node graph and its per-node build
// configuration as a JSON document. Loading tolerates files written by
// older versions: optional fields are default-filled instead of rejected.
package project

import (
	"github.com/LUX-YU/cmake-node-editor/internal/graph"
)

// File is the on-disk schema of a project document.
type File struct {
	Global GlobalRecord `json:"global"`
	Nodes  []NodeRecord `json:"nodes" validate:"dive"`
	Edges  []EdgeRecord `json:"edges" validate:"dive"`
}

// GlobalRecord holds document-wide settings. A zero StartNodeID means no
// start node has been chosen.
type GlobalRecord struct {
	StartNodeID int `json:"start_node_id" validate:"min=0"`
}

// NodeRecord is one persisted node. BuildSettings and the script fields
// are optional for backward compatibility with older project files.
type NodeRecord struct {
	NodeID           int                  `json:"node_id" validate:"min=1"`
	Title            string               `json:"title" validate:"required"`
	PosX             float64              `json:"pos_x"`
	PosY             float64              `json:"pos_y"`
	CMakeOptions     []string             `json:"cmake_options"`
	ProjectPath      string               `json:"project_path"`
	BuildSettings    *graph.BuildSettings `json:"build_settings,omitempty"`
	CodeBeforeBuild  string               `json:"code_before_build"`
	CodeAfterInstall string               `json:"code_after_install"`
}

// EdgeRecord is one persisted dependency edge.
type EdgeRecord struct {
	SourceNodeID int `json:"source_node_id" validate:"min=1"`
	TargetNodeID int `json:"target_node_id" validate:"min=1"`
}

// Project is the loaded, live form of a document.
type Project struct {
	Graph *graph.Graph
	// StartNodeID is the node builds start from by default; zero means
	// unset.
	StartNodeID graph.NodeID
}

// New returns an empty project with a fresh graph.
func New() *Project {
	return &Project{Graph: graph.New()}
}
