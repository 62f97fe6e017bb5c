// Package config loads the optional tool settings file. Settings cover
// the external collaborators (cmake binary, script interpreter) and
// runtime knobs; everything has a usable default so the file may be
// absent entirely.
package config

import (
	"runtime"
	"time"
)

// Settings is the YAML tool settings document.
type Settings struct {
	// CMake is the build tool binary to invoke.
	CMake string `yaml:"cmake" validate:"required"`
	// Interpreter runs embedded script steps.
	Interpreter string `yaml:"interpreter" validate:"required"`
	// Parallel is the --parallel hint passed to build invocations.
	Parallel int `yaml:"parallel" validate:"min=1"`
	// LogLevel is a zerolog level name.
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=trace debug info warn error fatal panic"`
	// GraceTimeoutSeconds bounds how long cancellation waits for the
	// worker to exit before killing it.
	GraceTimeoutSeconds int `yaml:"grace_timeout_seconds" validate:"min=0"`
	// EnvScript, when set, is sourced inside the worker process before
	// any build command runs.
	EnvScript string `yaml:"env_script"`
}

// DefaultSettings returns the settings used when no file is present.
func DefaultSettings() Settings {
	return Settings{
		CMake:               "cmake",
		Interpreter:         "python3",
		Parallel:            runtime.NumCPU(),
		LogLevel:            "info",
		GraceTimeoutSeconds: 3,
	}
}

// GraceTimeout returns the grace period as a duration.
func (s Settings) GraceTimeout() time.Duration {
	return time.Duration(s.GraceTimeoutSeconds) * time.Second
}

// withDefaults fills unset fields of a parsed document.
func (s Settings) withDefaults() Settings {
	def := DefaultSettings()
	if s.CMake == "" {
		s.CMake = def.CMake
	}
	if s.Interpreter == "" {
		s.Interpreter = def.Interpreter
	}
	if s.Parallel == 0 {
		s.Parallel = def.Parallel
	}
	if s.LogLevel == "" {
		s.LogLevel = def.LogLevel
	}
	if s.GraceTimeoutSeconds == 0 {
		s.GraceTimeoutSeconds = def.GraceTimeoutSeconds
	}
	return s
}
