package graph

// NodeID identifies a node for the lifetime of the loaded graph. IDs are
// positive, unique and never reused while the graph is loaded.
type NodeID int

// Node is one unit of work wrapping a single external CMake project.
type Node struct {
	ID               NodeID
	Title            string
	PosX             float64
	PosY             float64
	CMakeOptions     []string
	ProjectPath      string
	Settings         BuildSettings
	CodeBeforeBuild  string
	CodeAfterInstall string
}

// clone returns a deep copy so callers never alias graph-owned state.
func (n *Node) clone() Node {
	out := *n
	out.CMakeOptions = append([]string(nil), n.CMakeOptions...)
	return out
}

// Edge is a directed "source must complete before target starts" dependency.
type Edge struct {
	SourceID NodeID
	TargetID NodeID
}
