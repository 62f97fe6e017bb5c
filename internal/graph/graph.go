// Package graph owns the directed node/edge model that the rest of the tool
// operates on. All mutation goes through Graph methods so the invariants
// (unique ids, unique titles, no self loops, no duplicate edges, cascading
// edge removal) hold at every observable instant. The one property that is a
// query rather than an invariant is acyclicity: edges forming a cycle can be
// constructed, and consumers must call TopologicalSort before building.
package graph

import (
	cneerrors "github.com/LUX-YU/cmake-node-editor/pkg/errors"
)

// Graph holds the nodes and edges of one project. It is not safe for
// concurrent mutation; edits are expected to arrive from a single caller.
type Graph struct {
	nodes  map[NodeID]*Node
	order  []NodeID
	edges  []Edge
	nextID NodeID
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{nodes: make(map[NodeID]*Node), nextID: 1}
}

// AddNode allocates a fresh id, constructs a node and inserts it. When
// settings is nil the node receives DefaultBuildSettings. Fails with a
// DuplicateTitleError when the title collides with an existing node.
func (g *Graph) AddNode(title string, options []string, projectPath string, settings *BuildSettings) (NodeID, error) {
	if g.titleTaken(title, 0) {
		return 0, cneerrors.NewDuplicateTitleError(title)
	}

	bs := DefaultBuildSettings()
	if settings != nil {
		bs = *settings
	}

	id := g.nextID
	g.nextID++

	node := &Node{
		ID:           id,
		Title:        title,
		CMakeOptions: append([]string(nil), options...),
		ProjectPath:  projectPath,
		Settings:     bs,
	}
	g.nodes[id] = node
	g.order = append(g.order, id)
	return id, nil
}

// RemoveNode removes the node and every edge incident to it. Removing an
// absent id is a no-op.
func (g *Graph) RemoveNode(id NodeID) {
	if _, ok := g.nodes[id]; !ok {
		return
	}

	delete(g.nodes, id)
	for i, existing := range g.order {
		if existing == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}

	kept := g.edges[:0]
	for _, e := range g.edges {
		if e.SourceID != id && e.TargetID != id {
			kept = append(kept, e)
		}
	}
	g.edges = kept
}

// AddEdge inserts a directed edge. Self loops, duplicate ordered pairs and
// unknown endpoints are rejected silently; the return value reports whether
// the edge was inserted.
func (g *Graph) AddEdge(sourceID, targetID NodeID) bool {
	if sourceID == targetID {
		return false
	}
	if _, ok := g.nodes[sourceID]; !ok {
		return false
	}
	if _, ok := g.nodes[targetID]; !ok {
		return false
	}
	for _, e := range g.edges {
		if e.SourceID == sourceID && e.TargetID == targetID {
			return false
		}
	}

	g.edges = append(g.edges, Edge{SourceID: sourceID, TargetID: targetID})
	return true
}

// RemoveEdge removes the edge with the given ordered endpoint pair. The
// return value reports whether an edge was removed.
func (g *Graph) RemoveEdge(sourceID, targetID NodeID) bool {
	for i, e := range g.edges {
		if e.SourceID == sourceID && e.TargetID == targetID {
			g.edges = append(g.edges[:i], g.edges[i+1:]...)
			return true
		}
	}
	return false
}

// Rename changes a node's title. Fails with a DuplicateTitleError when
// another node already carries the title, and NodeNotFoundError for an
// unknown id.
func (g *Graph) Rename(id NodeID, title string) error {
	node, ok := g.nodes[id]
	if !ok {
		return cneerrors.NewNodeNotFoundError(int(id))
	}
	if g.titleTaken(title, id) {
		return cneerrors.NewDuplicateTitleError(title)
	}
	node.Title = title
	return nil
}

// SetCMakeOptions replaces a node's raw option list. Duplicates are allowed
// and insertion order is preserved.
func (g *Graph) SetCMakeOptions(id NodeID, options []string) error {
	node, ok := g.nodes[id]
	if !ok {
		return cneerrors.NewNodeNotFoundError(int(id))
	}
	node.CMakeOptions = append([]string(nil), options...)
	return nil
}

// SetProjectPath replaces a node's source directory path.
func (g *Graph) SetProjectPath(id NodeID, path string) error {
	node, ok := g.nodes[id]
	if !ok {
		return cneerrors.NewNodeNotFoundError(int(id))
	}
	node.ProjectPath = path
	return nil
}

// SetSettings replaces a node's build settings with a copy of the value.
func (g *Graph) SetSettings(id NodeID, settings BuildSettings) error {
	node, ok := g.nodes[id]
	if !ok {
		return cneerrors.NewNodeNotFoundError(int(id))
	}
	node.Settings = settings
	return nil
}

// SetScripts replaces the pre-build and post-install script text. An empty
// string means the script is absent.
func (g *Graph) SetScripts(id NodeID, beforeBuild, afterInstall string) error {
	node, ok := g.nodes[id]
	if !ok {
		return cneerrors.NewNodeNotFoundError(int(id))
	}
	node.CodeBeforeBuild = beforeBuild
	node.CodeAfterInstall = afterInstall
	return nil
}

// SetPosition moves a node on the canvas. Position is presentation state; the
// build pipeline never reads it.
func (g *Graph) SetPosition(id NodeID, x, y float64) error {
	node, ok := g.nodes[id]
	if !ok {
		return cneerrors.NewNodeNotFoundError(int(id))
	}
	node.PosX = x
	node.PosY = y
	return nil
}

// ApplySettings copies one settings template onto every listed node. Unknown
// ids are skipped; the return value counts the nodes updated.
func (g *Graph) ApplySettings(ids []NodeID, settings BuildSettings) int {
	updated := 0
	for _, id := range ids {
		if node, ok := g.nodes[id]; ok {
			node.Settings = settings
			updated++
		}
	}
	return updated
}

// AppendOptions appends the given raw options to every listed node, keeping
// each node's existing options in place. Unknown ids are skipped.
func (g *Graph) AppendOptions(ids []NodeID, options []string) int {
	updated := 0
	for _, id := range ids {
		if node, ok := g.nodes[id]; ok {
			node.CMakeOptions = append(node.CMakeOptions, options...)
			updated++
		}
	}
	return updated
}

// Node returns a copy of the node with the given id.
func (g *Graph) Node(id NodeID) (Node, bool) {
	node, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}
	return node.clone(), true
}

// NodeByTitle returns a copy of the node carrying the given title.
func (g *Graph) NodeByTitle(title string) (Node, bool) {
	for _, id := range g.order {
		if g.nodes[id].Title == title {
			return g.nodes[id].clone(), true
		}
	}
	return Node{}, false
}

// Nodes returns copies of all nodes in insertion order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id].clone())
	}
	return out
}

// Edges returns a copy of the edge list in insertion order.
func (g *Graph) Edges() []Edge {
	return append([]Edge(nil), g.edges...)
}

// Len reports the number of nodes.
func (g *Graph) Len() int {
	return len(g.order)
}

// Clear removes every node and edge and resets id allocation.
func (g *Graph) Clear() {
	g.nodes = make(map[NodeID]*Node)
	g.order = nil
	g.edges = nil
	g.nextID = 1
}

// restore inserts a node with an explicit id, used when loading a saved
// project. The id allocator is bumped past the restored id.
func (g *Graph) restore(node Node) error {
	if node.ID < 1 {
		return cneerrors.NewValidationError("node_id", "node id must be positive", nil)
	}
	if _, exists := g.nodes[node.ID]; exists {
		return cneerrors.NewValidationError("node_id", "duplicate node id", nil)
	}
	if g.titleTaken(node.Title, 0) {
		return cneerrors.NewDuplicateTitleError(node.Title)
	}

	node.Settings = node.Settings.withDefaults()
	copied := node.clone()
	g.nodes[node.ID] = &copied
	g.order = append(g.order, node.ID)
	if node.ID >= g.nextID {
		g.nextID = node.ID + 1
	}
	return nil
}

// Restore is the load-time entry point for rebuilding a node with a
// preserved id.
func (g *Graph) Restore(node Node) error {
	return g.restore(node)
}

func (g *Graph) titleTaken(title string, except NodeID) bool {
	for id, node := range g.nodes {
		if id != except && node.Title == title {
			return true
		}
	}
	return false
}
