package compile

import (
	"fmt"
	"strings"
)

// Stage filters which step kinds a compile pass emits.
type Stage int

const (
	// StageAll emits configure, build and install steps.
	StageAll Stage = iota
	// StageConfigure emits the pre-build script and the configure command.
	StageConfigure
	// StageBuild emits only the build command.
	StageBuild
	// StageInstall emits the install command and the post-install script.
	StageInstall
)

// ParseStage maps a user supplied stage name onto a Stage.
func ParseStage(s string) (Stage, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return StageAll, nil
	case "configure":
		return StageConfigure, nil
	case "build":
		return StageBuild, nil
	case "install":
		return StageInstall, nil
	}
	return StageAll, fmt.Errorf("unknown stage %q (expected configure, build, install or all)", s)
}

// String returns the canonical stage name.
func (s Stage) String() string {
	switch s {
	case StageConfigure:
		return "configure"
	case StageBuild:
		return "build"
	case StageInstall:
		return "install"
	default:
		return "all"
	}
}

func (s Stage) includesConfigure() bool {
	return s == StageAll || s == StageConfigure
}

func (s Stage) includesBuild() bool {
	return s == StageAll || s == StageBuild
}

func (s Stage) includesInstall() bool {
	return s == StageAll || s == StageInstall
}
