package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LUX-YU/cmake-node-editor/internal/graph"
)

// settingsFlags mirrors the per-node build settings so commands can apply
// exactly the fields the user passed.
type settingsFlags struct {
	buildDir      string
	installDir    string
	buildType     string
	prefixPath    string
	toolchainFile string
	generator     string
	cCompiler     string
	cxxCompiler   string
}

func addSettingsFlags(cmd *cobra.Command, sf *settingsFlags) {
	cmd.Flags().StringVar(&sf.buildDir, "build-dir", "", "Build output root directory")
	cmd.Flags().StringVar(&sf.installDir, "install-dir", "", "Install prefix root directory")
	cmd.Flags().StringVar(&sf.buildType, "build-type", "", "CMake build type (Debug, Release, ...)")
	cmd.Flags().StringVar(&sf.prefixPath, "prefix-path", "", "CMAKE_PREFIX_PATH value")
	cmd.Flags().StringVar(&sf.toolchainFile, "toolchain-file", "", "CMAKE_TOOLCHAIN_FILE value")
	cmd.Flags().StringVar(&sf.generator, "generator", "", "CMake generator")
	cmd.Flags().StringVar(&sf.cCompiler, "c-compiler", "", "CMAKE_C_COMPILER value")
	cmd.Flags().StringVar(&sf.cxxCompiler, "cxx-compiler", "", "CMAKE_CXX_COMPILER value")
}

// apply overlays the flags the user actually set onto base.
func (sf *settingsFlags) apply(cmd *cobra.Command, base graph.BuildSettings) graph.BuildSettings {
	set := func(name string, dst *string, value string) {
		if cmd.Flags().Changed(name) {
			*dst = value
		}
	}
	set("build-dir", &base.BuildDir, sf.buildDir)
	set("install-dir", &base.InstallDir, sf.installDir)
	set("build-type", &base.BuildType, sf.buildType)
	set("prefix-path", &base.PrefixPath, sf.prefixPath)
	set("toolchain-file", &base.ToolchainFile, sf.toolchainFile)
	set("generator", &base.Generator, sf.generator)
	set("c-compiler", &base.CCompiler, sf.cCompiler)
	set("cxx-compiler", &base.CXXCompiler, sf.cxxCompiler)
	return base
}

func newNodeCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Manage the project's nodes",
	}

	cmd.AddCommand(newNodeAddCmd(flags))
	cmd.AddCommand(newNodeRemoveCmd(flags))
	cmd.AddCommand(newNodeRenameCmd(flags))
	cmd.AddCommand(newNodeSetCmd(flags))
	cmd.AddCommand(newNodeBatchCmd(flags))

	return cmd
}

func newNodeAddCmd(flags *rootFlags) *cobra.Command {
	var (
		sf      settingsFlags
		options []string
		path    string
		from    string
	)

	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Add a node wrapping one CMake project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(flags, true)
			if err != nil {
				return err
			}

			settings := graph.DefaultBuildSettings()
			if from != "" {
				// Inheriting settings copies them; the nodes stay
				// independent afterwards.
				sourceID, err := resolveNode(p, from)
				if err != nil {
					return err
				}
				source, _ := p.Graph.Node(sourceID)
				settings = source.Settings
			}
			settings = sf.apply(cmd, settings)

			id, err := p.Graph.AddNode(args[0], options, path, &settings)
			if err != nil {
				return err
			}
			if err := saveProject(flags, p); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "added node %q with id %d\n", args[0], id)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&options, "option", nil, "Raw cmake option, repeatable, order preserved")
	cmd.Flags().StringVar(&path, "path", "", "Path to the CMake project directory")
	cmd.Flags().StringVar(&from, "from", "", "Node whose build settings to copy")
	addSettingsFlags(cmd, &sf)

	return cmd
}

func newNodeRemoveCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove NODE",
		Short: "Remove a node and every edge touching it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(flags, false)
			if err != nil {
				return err
			}
			id, err := resolveNode(p, args[0])
			if err != nil {
				return err
			}
			p.Graph.RemoveNode(id)
			if p.StartNodeID == id {
				p.StartNodeID = 0
			}
			if err := saveProject(flags, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed node %d\n", id)
			return nil
		},
	}
	return cmd
}

func newNodeRenameCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename NODE NEW_TITLE",
		Short: "Rename a node",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(flags, false)
			if err != nil {
				return err
			}
			id, err := resolveNode(p, args[0])
			if err != nil {
				return err
			}
			if err := p.Graph.Rename(id, args[1]); err != nil {
				return err
			}
			if err := saveProject(flags, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "renamed node %d to %q\n", id, args[1])
			return nil
		},
	}
	return cmd
}

func newNodeSetCmd(flags *rootFlags) *cobra.Command {
	var (
		sf            settingsFlags
		options       []string
		appendOptions []string
		path          string
		beforeBuild   string
		afterInstall  string
		posX, posY    float64
	)

	cmd := &cobra.Command{
		Use:   "set NODE",
		Short: "Edit a node's options, path, scripts, or build settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(flags, false)
			if err != nil {
				return err
			}
			id, err := resolveNode(p, args[0])
			if err != nil {
				return err
			}
			node, _ := p.Graph.Node(id)

			if cmd.Flags().Changed("option") {
				if err := p.Graph.SetCMakeOptions(id, options); err != nil {
					return err
				}
			}
			if len(appendOptions) > 0 {
				p.Graph.AppendOptions([]graph.NodeID{id}, appendOptions)
			}
			if cmd.Flags().Changed("path") {
				if err := p.Graph.SetProjectPath(id, path); err != nil {
					return err
				}
			}

			if cmd.Flags().Changed("before-build") || cmd.Flags().Changed("after-install") {
				before, after := node.CodeBeforeBuild, node.CodeAfterInstall
				if cmd.Flags().Changed("before-build") {
					if before, err = readScriptFlag(beforeBuild); err != nil {
						return err
					}
				}
				if cmd.Flags().Changed("after-install") {
					if after, err = readScriptFlag(afterInstall); err != nil {
						return err
					}
				}
				if err := p.Graph.SetScripts(id, before, after); err != nil {
					return err
				}
			}

			if cmd.Flags().Changed("pos-x") || cmd.Flags().Changed("pos-y") {
				x, y := node.PosX, node.PosY
				if cmd.Flags().Changed("pos-x") {
					x = posX
				}
				if cmd.Flags().Changed("pos-y") {
					y = posY
				}
				if err := p.Graph.SetPosition(id, x, y); err != nil {
					return err
				}
			}

			updated := sf.apply(cmd, node.Settings)
			if updated != node.Settings {
				if err := p.Graph.SetSettings(id, updated); err != nil {
					return err
				}
			}

			if err := saveProject(flags, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated node %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&options, "option", nil, "Replace the cmake options with the given list")
	cmd.Flags().StringArrayVar(&appendOptions, "append-option", nil, "Append a cmake option, repeatable")
	cmd.Flags().StringVar(&path, "path", "", "Path to the CMake project directory")
	cmd.Flags().StringVar(&beforeBuild, "before-build", "", "Script file run before configuring; empty clears it")
	cmd.Flags().StringVar(&afterInstall, "after-install", "", "Script file run after installing; empty clears it")
	cmd.Flags().Float64Var(&posX, "pos-x", 0, "Canvas X position")
	cmd.Flags().Float64Var(&posY, "pos-y", 0, "Canvas Y position")
	addSettingsFlags(cmd, &sf)

	return cmd
}

func newNodeBatchCmd(flags *rootFlags) *cobra.Command {
	var (
		sf            settingsFlags
		appendOptions []string
	)

	cmd := &cobra.Command{
		Use:   "batch NODE...",
		Short: "Apply a build settings template to several nodes at once",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(flags, false)
			if err != nil {
				return err
			}

			ids := make([]graph.NodeID, 0, len(args))
			for _, ref := range args {
				id, err := resolveNode(p, ref)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}

			changed := 0
			if settingsFlagsChanged(cmd) {
				// Each node keeps its own copy of the template.
				for _, id := range ids {
					node, _ := p.Graph.Node(id)
					if err := p.Graph.SetSettings(id, sf.apply(cmd, node.Settings)); err != nil {
						return err
					}
				}
				changed = len(ids)
			}
			if len(appendOptions) > 0 {
				if n := p.Graph.AppendOptions(ids, appendOptions); n > changed {
					changed = n
				}
			}

			if err := saveProject(flags, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %d nodes\n", changed)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&appendOptions, "append-option", nil, "Append a cmake option to every listed node")
	addSettingsFlags(cmd, &sf)

	return cmd
}

func settingsFlagsChanged(cmd *cobra.Command) bool {
	for _, name := range []string{
		"build-dir", "install-dir", "build-type", "prefix-path",
		"toolchain-file", "generator", "c-compiler", "cxx-compiler",
	} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// readScriptFlag loads script text from a file path; an empty value clears
// the script.
func readScriptFlag(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
