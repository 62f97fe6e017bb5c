package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LUX-YU/cmake-node-editor/internal/compile"
)

func TestViewListsNodesAndProgress(t *testing.T) {
	t.Parallel()

	m := threeNodeModel(nil)
	out := m.View()

	assert.Contains(t, out, "demo")
	assert.Contains(t, out, "0/3 nodes")
	assert.Contains(t, out, "A")
	assert.Contains(t, out, "B")
	assert.Contains(t, out, "C")
}

func TestViewShowsSummaries(t *testing.T) {
	t.Parallel()

	m := threeNodeModel(nil)
	for i := 0; i < 3; i++ {
		m, _ = apply(t, m, NodeResultMsg{Index: i, OK: true})
	}
	m, _ = apply(t, m, BuildFinishedMsg{OK: true})
	assert.Contains(t, m.View(), "All 3 nodes built successfully.")

	failed := threeNodeModel(nil)
	failed, _ = apply(t, failed, NodeResultMsg{Index: 0, OK: false})
	failed, _ = apply(t, failed, BuildFinishedMsg{OK: false})
	assert.Contains(t, failed.View(), "Build failed.")
}

func TestViewProgressCallsOutFailures(t *testing.T) {
	t.Parallel()

	m := threeNodeModel(nil)
	m, _ = apply(t, m, NodeResultMsg{Index: 0, OK: true})
	m, _ = apply(t, m, NodeResultMsg{Index: 1, OK: false})

	out := m.View()
	assert.Contains(t, out, "2/3 nodes")
	assert.Contains(t, out, "(1 failed)")
}

func TestViewEmptyPlan(t *testing.T) {
	t.Parallel()

	m := NewModel("empty", &compile.Plan{}, nil)
	out := m.View()
	assert.Contains(t, out, "0/0 nodes")
}
