package graph

// Known CMake build types. BuildType is stored as free text so that values
// outside this set still round-trip through saved projects.
const (
	BuildTypeDebug          = "Debug"
	BuildTypeRelease        = "Release"
	BuildTypeRelWithDebInfo = "RelWithDebInfo"
	BuildTypeMinSizeRel     = "MinSizeRel"
)

// BuildSettings holds the per-node CMake configuration. It is an exclusively
// owned value type: copying a node's settings onto another node is always a
// copy, never a shared reference.
type BuildSettings struct {
	BuildDir      string `json:"build_dir"`
	InstallDir    string `json:"install_dir"`
	BuildType     string `json:"build_type"`
	PrefixPath    string `json:"prefix_path"`
	ToolchainFile string `json:"toolchain_file"`
	Generator     string `json:"generator"`
	CCompiler     string `json:"c_compiler"`
	CXXCompiler   string `json:"cxx_compiler"`
}

// DefaultBuildSettings returns the settings applied to a node created without
// an explicit template.
func DefaultBuildSettings() BuildSettings {
	return BuildSettings{
		BuildDir:   "build",
		InstallDir: "install",
		BuildType:  BuildTypeDebug,
	}
}

// withDefaults fills unset core fields so that records loaded from older
// project files behave like freshly created nodes.
func (s BuildSettings) withDefaults() BuildSettings {
	def := DefaultBuildSettings()
	if s.BuildDir == "" {
		s.BuildDir = def.BuildDir
	}
	if s.InstallDir == "" {
		s.InstallDir = def.InstallDir
	}
	if s.BuildType == "" {
		s.BuildType = def.BuildType
	}
	return s
}
