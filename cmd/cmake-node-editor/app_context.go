package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/LUX-YU/cmake-node-editor/internal/config"
	"github.com/LUX-YU/cmake-node-editor/internal/graph"
	"github.com/LUX-YU/cmake-node-editor/internal/logger"
	"github.com/LUX-YU/cmake-node-editor/internal/project"
	cneerrors "github.com/LUX-YU/cmake-node-editor/pkg/errors"
)

// defaultSettingsPath resolves the per-user settings file location.
func defaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "cmake-node-editor.yaml"
	}
	return filepath.Join(home, ".config", "cmake-node-editor", "settings.yaml")
}

func loadSettings(flags *rootFlags) (config.Settings, error) {
	return config.ParseConfig(flags.settingsPath)
}

func newLog(flags *rootFlags, settings config.Settings) (*logger.Logger, error) {
	level := settings.LogLevel
	if flags.verbose {
		level = "debug"
	}
	return logger.New(logger.Options{Level: level, HumanReadable: true})
}

// loadProject reads the project file. For mutation commands a missing file
// starts an empty project so the first "node add" works against a fresh
// workspace.
func loadProject(flags *rootFlags, allowMissing bool) (*project.Project, error) {
	p, err := project.Load(flags.projectPath)
	if err != nil {
		var perr *cneerrors.ParseError
		if allowMissing && errors.As(err, &perr) && errors.Is(err, fs.ErrNotExist) {
			return project.New(), nil
		}
		return nil, err
	}
	return p, nil
}

func saveProject(flags *rootFlags, p *project.Project) error {
	return project.Save(flags.projectPath, p)
}

// resolveNode accepts either a numeric node id or a node title.
func resolveNode(p *project.Project, ref string) (graph.NodeID, error) {
	if id, err := strconv.Atoi(ref); err == nil {
		if _, ok := p.Graph.Node(graph.NodeID(id)); ok {
			return graph.NodeID(id), nil
		}
		return 0, cneerrors.NewNodeNotFoundError(id)
	}
	if node, ok := p.Graph.NodeByTitle(ref); ok {
		return node.ID, nil
	}
	return 0, cneerrors.NewValidationError("node", "no node with title "+strconv.Quote(ref), nil)
}
