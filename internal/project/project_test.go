package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LUX-YU/cmake-node-editor/internal/graph"
	cneerrors "github.com/LUX-YU/cmake-node-editor/pkg/errors"
)

func writeProjectFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	p := New()
	settings := graph.BuildSettings{
		BuildDir:   "out/build",
		InstallDir: "out/install",
		BuildType:  graph.BuildTypeRelease,
		Generator:  "Ninja",
	}
	idA, err := p.Graph.AddNode("A", []string{"-DFOO=1", "-DBAR=2"}, "/src/a", &settings)
	require.NoError(t, err)
	idB, err := p.Graph.AddNode("B", nil, "/src/b", nil)
	require.NoError(t, err)
	idC, err := p.Graph.AddNode("C", nil, "/src/c", nil)
	require.NoError(t, err)
	require.True(t, p.Graph.AddEdge(idA, idB))
	require.True(t, p.Graph.AddEdge(idB, idC))
	require.NoError(t, p.Graph.SetScripts(idA, "print('before')", "print('after')"))
	require.NoError(t, p.Graph.SetPosition(idB, 120.5, -42.25))
	p.StartNodeID = idB

	path := filepath.Join(t.TempDir(), "project.json")
	require.NoError(t, Save(path, p))

	loaded, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 3, loaded.Graph.Len())
	require.Equal(t, idB, loaded.StartNodeID)

	a, ok := loaded.Graph.Node(idA)
	require.True(t, ok)
	assert.Equal(t, "A", a.Title)
	assert.Equal(t, []string{"-DFOO=1", "-DBAR=2"}, a.CMakeOptions)
	assert.Equal(t, "/src/a", a.ProjectPath)
	assert.Equal(t, "out/build", a.Settings.BuildDir)
	assert.Equal(t, graph.BuildTypeRelease, a.Settings.BuildType)
	assert.Equal(t, "Ninja", a.Settings.Generator)
	assert.Equal(t, "print('before')", a.CodeBeforeBuild)
	assert.Equal(t, "print('after')", a.CodeAfterInstall)

	b, ok := loaded.Graph.Node(idB)
	require.True(t, ok)
	assert.Equal(t, 120.5, b.PosX)
	assert.Equal(t, -42.25, b.PosY)

	assert.Equal(t, []graph.Edge{
		{SourceID: idA, TargetID: idB},
		{SourceID: idB, TargetID: idC},
	}, loaded.Graph.Edges())

	// Saving the reloaded project reproduces the file byte for byte.
	second := filepath.Join(t.TempDir(), "again.json")
	require.NoError(t, Save(second, loaded))
	first, err := os.ReadFile(path)
	require.NoError(t, err)
	again, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(again))
}

func TestLoadDefaultFillsLegacyFile(t *testing.T) {
	t.Parallel()

	// Older files lack build_settings, the script fields, and global.
	path := writeProjectFile(t, `{
		"nodes": [
			{"node_id": 4, "title": "core", "pos_x": 1, "pos_y": 2,
			 "cmake_options": ["-DX=1"], "project_path": "/src/core"}
		],
		"edges": []
	}`)

	p, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, graph.NodeID(0), p.StartNodeID)

	node, ok := p.Graph.Node(4)
	require.True(t, ok)
	assert.Equal(t, graph.DefaultBuildSettings(), node.Settings)
	assert.Empty(t, node.CodeBeforeBuild)
	assert.Empty(t, node.CodeAfterInstall)

	// Id allocation resumes past the highest preserved id.
	next, err := p.Graph.AddNode("fresh", nil, "", nil)
	require.NoError(t, err)
	assert.Equal(t, graph.NodeID(5), next)
}

func TestLoadPartialBuildSettingsGetDefaults(t *testing.T) {
	t.Parallel()

	path := writeProjectFile(t, `{
		"nodes": [
			{"node_id": 1, "title": "app", "project_path": "/src/app",
			 "build_settings": {"build_type": "Release"}}
		],
		"edges": []
	}`)

	p, err := Load(path)
	require.NoError(t, err)

	node, ok := p.Graph.Node(1)
	require.True(t, ok)
	assert.Equal(t, graph.BuildTypeRelease, node.Settings.BuildType)
	assert.Equal(t, graph.DefaultBuildSettings().BuildDir, node.Settings.BuildDir)
	assert.Equal(t, graph.DefaultBuildSettings().InstallDir, node.Settings.InstallDir)
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	t.Parallel()

	path := writeProjectFile(t, `{"nodes": [`)
	_, err := Load(path)
	var perr *cneerrors.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, path, perr.Path)
}

func TestLoadMissingFileIsParseError(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	var perr *cneerrors.ParseError
	require.ErrorAs(t, err, &perr)
}

func TestLoadValidation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		contents string
		field    string
	}{
		{
			name: "duplicate node id",
			contents: `{"nodes": [
				{"node_id": 1, "title": "A"},
				{"node_id": 1, "title": "B"}
			], "edges": []}`,
			field: "nodes[1].node_id",
		},
		{
			name: "duplicate title",
			contents: `{"nodes": [
				{"node_id": 1, "title": "A"},
				{"node_id": 2, "title": "A"}
			], "edges": []}`,
			field: "nodes[1].title",
		},
		{
			name: "self loop edge",
			contents: `{"nodes": [{"node_id": 1, "title": "A"}],
				"edges": [{"source_node_id": 1, "target_node_id": 1}]}`,
			field: "edges[0]",
		},
		{
			name: "edge references unknown node",
			contents: `{"nodes": [{"node_id": 1, "title": "A"}],
				"edges": [{"source_node_id": 1, "target_node_id": 9}]}`,
			field: "edges[0]",
		},
		{
			name: "duplicate edge",
			contents: `{"nodes": [
				{"node_id": 1, "title": "A"},
				{"node_id": 2, "title": "B"}
			], "edges": [
				{"source_node_id": 1, "target_node_id": 2},
				{"source_node_id": 1, "target_node_id": 2}
			]}`,
			field: "edges[1]",
		},
		{
			name: "unknown start node",
			contents: `{"global": {"start_node_id": 7},
				"nodes": [{"node_id": 1, "title": "A"}], "edges": []}`,
			field: "global.start_node_id",
		},
		{
			name:     "non positive node id",
			contents: `{"nodes": [{"node_id": 0, "title": "A"}], "edges": []}`,
			field:    "NodeID",
		},
		{
			name:     "empty title",
			contents: `{"nodes": [{"node_id": 1, "title": ""}], "edges": []}`,
			field:    "Title",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := writeProjectFile(t, tc.contents)
			_, err := Load(path)
			var verr *cneerrors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Field, tc.field)
		})
	}
}
