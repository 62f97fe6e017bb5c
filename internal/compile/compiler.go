// Package compile turns a topologically ordered node sequence into a concrete
// build plan: one stage-filtered step group per node, ready for sequential
// execution by the worker.
package compile

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/LUX-YU/cmake-node-editor/internal/graph"
	cneerrors "github.com/LUX-YU/cmake-node-editor/pkg/errors"
)

// MarkerFile must exist at the root of every node's project path.
const MarkerFile = "CMakeLists.txt"

// Options parameterise one compile pass.
type Options struct {
	Stage Stage

	// StartID and EndID slice the ordered node sequence (both inclusive)
	// when non-nil. OnlyFirst truncates the slice to a single node.
	StartID   *graph.NodeID
	EndID     *graph.NodeID
	OnlyFirst bool

	// CMake is the build tool binary; defaults to "cmake".
	CMake string
	// Parallel is the --parallel hint for build invocations; defaults to
	// the number of available processing units.
	Parallel int
}

// Compile validates the (possibly sliced) node sequence and emits the build
// plan. Any validation failure aborts the whole compile; no partial plan is
// ever returned.
func Compile(nodes []graph.Node, opts Options) (*Plan, error) {
	selected, err := sliceNodes(nodes, opts)
	if err != nil {
		return nil, err
	}

	cmake := opts.CMake
	if cmake == "" {
		cmake = "cmake"
	}
	parallel := opts.Parallel
	if parallel <= 0 {
		parallel = runtime.NumCPU()
	}

	plan := &Plan{Stage: opts.Stage.String()}
	if len(selected) > 0 {
		plan.StartNodeID = int(selected[0].ID)
	}

	for i, node := range selected {
		outDir, err := prepareOutputDir(node)
		if err != nil {
			return nil, err
		}

		group := NodeGroup{
			Index:  i,
			NodeID: int(node.ID),
			Title:  node.Title,
			Steps:  compileNode(node, outDir, cmake, parallel, opts.Stage),
		}
		plan.Groups = append(plan.Groups, group)
	}

	return plan, nil
}

func sliceNodes(nodes []graph.Node, opts Options) ([]graph.Node, error) {
	start := 0
	end := len(nodes) - 1

	if opts.StartID != nil {
		idx := indexOf(nodes, *opts.StartID)
		if idx < 0 {
			return nil, cneerrors.NewNodeNotFoundError(int(*opts.StartID))
		}
		start = idx
	}

	if opts.EndID != nil {
		idx := indexOf(nodes, *opts.EndID)
		if idx < 0 {
			return nil, cneerrors.NewNodeNotFoundError(int(*opts.EndID))
		}
		end = idx
	}

	if len(nodes) > 0 && end < start {
		startID, endID := 0, 0
		if opts.StartID != nil {
			startID = int(*opts.StartID)
		}
		if opts.EndID != nil {
			endID = int(*opts.EndID)
		}
		return nil, cneerrors.NewInvalidRangeError(startID, endID)
	}

	selected := nodes[start : end+1]
	if opts.OnlyFirst && len(selected) > 1 {
		selected = selected[:1]
	}
	return selected, nil
}

func indexOf(nodes []graph.Node, id graph.NodeID) int {
	for i := range nodes {
		if nodes[i].ID == id {
			return i
		}
	}
	return -1
}

// prepareOutputDir validates the node's project path and creates the output
// directory. The execution layer assumes the directory already exists, so
// creating it is part of the compile contract.
func prepareOutputDir(node graph.Node) (string, error) {
	if node.ProjectPath == "" {
		return "", cneerrors.NewProjectPathError(node.Title, node.ProjectPath, "no project path set")
	}

	info, err := os.Stat(node.ProjectPath)
	if err != nil || !info.IsDir() {
		return "", cneerrors.NewProjectPathError(node.Title, node.ProjectPath, "directory does not exist")
	}

	marker := filepath.Join(node.ProjectPath, MarkerFile)
	if _, err := os.Stat(marker); err != nil {
		return "", cneerrors.NewProjectPathError(node.Title, node.ProjectPath, MarkerFile+" not found")
	}

	outDir := filepath.Join(node.Settings.BuildDir, node.Title, node.Settings.BuildType)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", cneerrors.NewProjectPathError(node.Title, outDir, fmt.Sprintf("cannot create output directory: %v", err))
	}
	return outDir, nil
}

// compileNode emits the node's step group in fixed order, each step gated by
// stage membership. The flag shapes are a compatibility surface and must not
// be reworded.
func compileNode(node graph.Node, outDir, cmake string, parallel int, stage Stage) []Step {
	steps := make([]Step, 0, 5)
	settings := node.Settings
	installDir := filepath.Join(settings.InstallDir, settings.BuildType)

	if stage.includesConfigure() {
		if strings.TrimSpace(node.CodeBeforeBuild) != "" {
			steps = append(steps, Step{
				Kind:        StepScript,
				DisplayName: fmt.Sprintf("pre-build script %s", node.Title),
				Script:      node.CodeBeforeBuild,
			})
		}

		args := []string{}
		if settings.Generator != "" {
			args = append(args, "-G"+settings.Generator)
		}
		args = append(args,
			"-S", node.ProjectPath,
			"-B", outDir,
			"-DCMAKE_BUILD_TYPE="+settings.BuildType,
			"-DCMAKE_INSTALL_PREFIX="+installDir,
		)
		if settings.CCompiler != "" {
			args = append(args, "-DCMAKE_C_COMPILER="+settings.CCompiler)
		}
		if settings.CXXCompiler != "" {
			args = append(args, "-DCMAKE_CXX_COMPILER="+settings.CXXCompiler)
		}
		if settings.ToolchainFile != "" {
			args = append(args, "-DCMAKE_TOOLCHAIN_FILE="+settings.ToolchainFile)
		}
		if settings.PrefixPath != "" {
			args = append(args, "-DCMAKE_PREFIX_PATH="+settings.PrefixPath)
		}
		args = append(args, node.CMakeOptions...)

		steps = append(steps, Step{
			Kind:        StepCommand,
			DisplayName: fmt.Sprintf("configure %s", node.Title),
			Program:     cmake,
			Args:        args,
		})
	}

	if stage.includesBuild() {
		steps = append(steps, Step{
			Kind:        StepCommand,
			DisplayName: fmt.Sprintf("build %s", node.Title),
			Program:     cmake,
			Args:        []string{"--build", outDir, "--config", settings.BuildType, "--parallel", strconv.Itoa(parallel)},
		})
	}

	if stage.includesInstall() {
		steps = append(steps, Step{
			Kind:        StepCommand,
			DisplayName: fmt.Sprintf("install %s", node.Title),
			Program:     cmake,
			Args:        []string{"--install", outDir, "--config", settings.BuildType},
		})

		if strings.TrimSpace(node.CodeAfterInstall) != "" {
			steps = append(steps, Step{
				Kind:        StepScript,
				DisplayName: fmt.Sprintf("post-install script %s", node.Title),
				Script:      node.CodeAfterInstall,
			})
		}
	}

	return steps
}
