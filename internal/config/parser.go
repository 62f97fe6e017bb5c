package config

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	cneerrors "github.com/LUX-YU/cmake-node-editor/pkg/errors"
)

// ParseConfig loads the settings file at path, fills defaults, and
// validates the result. A missing file is not an error: callers get the
// defaults.
func ParseConfig(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return Settings{}, cneerrors.NewParseError(path, err)
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Settings{}, cneerrors.NewParseError(path, err)
	}

	settings = settings.withDefaults()
	if err := ValidateConfig(settings); err != nil {
		return Settings{}, err
	}
	return settings, nil
}
