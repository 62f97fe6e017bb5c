package project

import (
	"encoding/json"
	"os"

	"github.com/LUX-YU/cmake-node-editor/internal/graph"
	cneerrors "github.com/LUX-YU/cmake-node-editor/pkg/errors"
)

// Load reads, validates, and rebuilds a project from a JSON document.
// Node ids are preserved exactly; missing optional fields are filled with
// defaults so files written by older versions keep loading.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, cneerrors.NewParseError(path, err)
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, cneerrors.NewParseError(path, err)
	}

	if err := validateFile(&file); err != nil {
		return nil, err
	}

	return fromFile(&file)
}

// Save writes the project as indented JSON. Nodes and edges are written in
// the graph's insertion order so repeated saves of an unchanged project are
// byte-identical.
func Save(path string, p *Project) error {
	if p == nil || p.Graph == nil {
		return cneerrors.NewValidationError("project", "nothing to save", nil)
	}

	data, err := json.MarshalIndent(toFile(p), "", "  ")
	if err != nil {
		return cneerrors.NewParseError(path, err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return cneerrors.NewParseError(path, err)
	}
	return nil
}

func fromFile(file *File) (*Project, error) {
	p := New()
	p.StartNodeID = graph.NodeID(file.Global.StartNodeID)

	for _, rec := range file.Nodes {
		settings := graph.DefaultBuildSettings()
		if rec.BuildSettings != nil {
			settings = *rec.BuildSettings
		}
		node := graph.Node{
			ID:               graph.NodeID(rec.NodeID),
			Title:            rec.Title,
			PosX:             rec.PosX,
			PosY:             rec.PosY,
			CMakeOptions:     append([]string(nil), rec.CMakeOptions...),
			ProjectPath:      rec.ProjectPath,
			Settings:         settings,
			CodeBeforeBuild:  rec.CodeBeforeBuild,
			CodeAfterInstall: rec.CodeAfterInstall,
		}
		if err := p.Graph.Restore(node); err != nil {
			return nil, err
		}
	}

	for _, rec := range file.Edges {
		p.Graph.AddEdge(graph.NodeID(rec.SourceNodeID), graph.NodeID(rec.TargetNodeID))
	}

	return p, nil
}

func toFile(p *Project) *File {
	nodes := p.Graph.Nodes()
	file := &File{
		Global: GlobalRecord{StartNodeID: int(p.StartNodeID)},
		Nodes:  make([]NodeRecord, 0, len(nodes)),
		Edges:  make([]EdgeRecord, 0, p.Graph.Len()),
	}

	for _, node := range nodes {
		settings := node.Settings
		file.Nodes = append(file.Nodes, NodeRecord{
			NodeID:           int(node.ID),
			Title:            node.Title,
			PosX:             node.PosX,
			PosY:             node.PosY,
			CMakeOptions:     append([]string(nil), node.CMakeOptions...),
			ProjectPath:      node.ProjectPath,
			BuildSettings:    &settings,
			CodeBeforeBuild:  node.CodeBeforeBuild,
			CodeAfterInstall: node.CodeAfterInstall,
		})
	}

	for _, edge := range p.Graph.Edges() {
		file.Edges = append(file.Edges, EdgeRecord{
			SourceNodeID: int(edge.SourceID),
			TargetNodeID: int(edge.TargetID),
		})
	}

	return file
}
