package graph

import (
	cneerrors "github.com/LUX-YU/cmake-node-editor/pkg/errors"
)

// TopologicalSort orders the nodes with Kahn's algorithm and reports a
// CycleError when the edge set contains a cycle. The ready queue is FIFO and
// is seeded in node insertion order, so graphs with the same edit history
// always sort the same way. The graph is not mutated.
func (g *Graph) TopologicalSort() ([]NodeID, error) {
	indegree := make(map[NodeID]int, len(g.order))
	adjacency := make(map[NodeID][]NodeID, len(g.order))
	for _, id := range g.order {
		indegree[id] = 0
	}

	for _, e := range g.edges {
		adjacency[e.SourceID] = append(adjacency[e.SourceID], e.TargetID)
		indegree[e.TargetID]++
	}

	queue := make([]NodeID, 0, len(g.order))
	for _, id := range g.order {
		if indegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	result := make([]NodeID, 0, len(g.order))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		result = append(result, id)

		for _, next := range adjacency[id] {
			indegree[next]--
			if indegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if len(result) < len(g.order) {
		return nil, cneerrors.NewCycleError("")
	}
	return result, nil
}

// SortedNodes resolves TopologicalSort ids to node copies in sorted order.
func (g *Graph) SortedNodes() ([]Node, error) {
	ids, err := g.TopologicalSort()
	if err != nil {
		return nil, err
	}

	out := make([]Node, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.nodes[id].clone())
	}
	return out, nil
}
