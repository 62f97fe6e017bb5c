package graph

import (
	"testing"

	"github.com/stretchr/testify/require"

	cneerrors "github.com/LUX-YU/cmake-node-editor/pkg/errors"
)

func TestTopologicalSort_ChainOrders(t *testing.T) {
	t.Parallel()

	g := New()
	a, _ := g.AddNode("A", nil, "", nil)
	b, _ := g.AddNode("B", nil, "", nil)
	c, _ := g.AddNode("C", nil, "", nil)
	require.True(t, g.AddEdge(a, b))
	require.True(t, g.AddEdge(b, c))

	order, err := g.TopologicalSort()
	require.NoError(t, err)
	require.Equal(t, []NodeID{a, b, c}, order)
}

func TestTopologicalSort_EdgesAlwaysPointForward(t *testing.T) {
	t.Parallel()

	g := New()
	ids := make([]NodeID, 0, 6)
	for _, title := range []string{"a", "b", "c", "d", "e", "f"} {
		id, err := g.AddNode(title, nil, "", nil)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	require.True(t, g.AddEdge(ids[3], ids[1]))
	require.True(t, g.AddEdge(ids[1], ids[0]))
	require.True(t, g.AddEdge(ids[5], ids[4]))
	require.True(t, g.AddEdge(ids[3], ids[4]))
	require.True(t, g.AddEdge(ids[2], ids[0]))

	order, err := g.TopologicalSort()
	require.NoError(t, err)
	require.Len(t, order, g.Len())

	position := make(map[NodeID]int, len(order))
	for i, id := range order {
		position[id] = i
	}
	for _, e := range g.Edges() {
		require.Less(t, position[e.SourceID], position[e.TargetID])
	}
}

func TestTopologicalSort_FIFOTieBreakIsInsertionOrder(t *testing.T) {
	t.Parallel()

	// All three nodes are simultaneously ready; they must surface in the
	// order they were added, not in id or title order.
	g := New()
	z, _ := g.AddNode("zeta", nil, "", nil)
	m, _ := g.AddNode("mu", nil, "", nil)
	a, _ := g.AddNode("alpha", nil, "", nil)

	order, err := g.TopologicalSort()
	require.NoError(t, err)
	require.Equal(t, []NodeID{z, m, a}, order)
}

func TestTopologicalSort_DependentsSurfaceFIFO(t *testing.T) {
	t.Parallel()

	// root unblocks late and early together; late was discovered first
	// because root->late was walked first, so late precedes early.
	g := New()
	root, _ := g.AddNode("root", nil, "", nil)
	late, _ := g.AddNode("late", nil, "", nil)
	early, _ := g.AddNode("early", nil, "", nil)
	require.True(t, g.AddEdge(root, late))
	require.True(t, g.AddEdge(root, early))

	order, err := g.TopologicalSort()
	require.NoError(t, err)
	require.Equal(t, []NodeID{root, late, early}, order)
}

func TestTopologicalSort_CycleReturnsNoPartialOrder(t *testing.T) {
	t.Parallel()

	g := New()
	a, _ := g.AddNode("A", nil, "", nil)
	b, _ := g.AddNode("B", nil, "", nil)
	c, _ := g.AddNode("C", nil, "", nil)
	_, err := g.AddNode("D", nil, "", nil)
	require.NoError(t, err)
	require.True(t, g.AddEdge(a, b))
	require.True(t, g.AddEdge(b, c))
	require.True(t, g.AddEdge(c, a))

	order, err := g.TopologicalSort()
	require.Error(t, err)
	require.Nil(t, order)

	var cycleErr *cneerrors.CycleError
	require.ErrorAs(t, err, &cycleErr)
}

func TestTopologicalSort_DoesNotMutateGraph(t *testing.T) {
	t.Parallel()

	g := New()
	a, _ := g.AddNode("A", nil, "", nil)
	b, _ := g.AddNode("B", nil, "", nil)
	require.True(t, g.AddEdge(a, b))

	first, err := g.TopologicalSort()
	require.NoError(t, err)
	second, err := g.TopologicalSort()
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Len(t, g.Edges(), 1)
}

func TestSortedNodes_ResolvesNodeCopies(t *testing.T) {
	t.Parallel()

	g := New()
	a, _ := g.AddNode("A", nil, "/src/a", nil)
	b, _ := g.AddNode("B", nil, "/src/b", nil)
	require.True(t, g.AddEdge(b, a))

	nodes, err := g.SortedNodes()
	require.NoError(t, err)
	require.Equal(t, []string{"B", "A"}, []string{nodes[0].Title, nodes[1].Title})
}
