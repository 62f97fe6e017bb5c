package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cneerrors "github.com/LUX-YU/cmake-node-editor/pkg/errors"
)

func writeSettings(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestParseConfigMissingFileYieldsDefaults(t *testing.T) {
	t.Parallel()

	settings, err := ParseConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)
	assert.Equal(t, "cmake", settings.CMake)
	assert.Equal(t, "python3", settings.Interpreter)
	assert.Equal(t, runtime.NumCPU(), settings.Parallel)
}

func TestParseConfigOverridesAndDefaults(t *testing.T) {
	t.Parallel()

	path := writeSettings(t, `
cmake: /opt/cmake/bin/cmake
parallel: 4
log_level: debug
grace_timeout_seconds: 10
env_script: /etc/profile.d/toolchain.sh
`)

	settings, err := ParseConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/cmake/bin/cmake", settings.CMake)
	assert.Equal(t, 4, settings.Parallel)
	assert.Equal(t, "debug", settings.LogLevel)
	assert.Equal(t, 10*time.Second, settings.GraceTimeout())
	assert.Equal(t, "/etc/profile.d/toolchain.sh", settings.EnvScript)
	// Unset fields still get defaults.
	assert.Equal(t, "python3", settings.Interpreter)
}

func TestParseConfigRejectsMalformedYAML(t *testing.T) {
	t.Parallel()

	path := writeSettings(t, "cmake: [unterminated")
	_, err := ParseConfig(path)
	var perr *cneerrors.ParseError
	require.ErrorAs(t, err, &perr)
}

func TestParseConfigRejectsBadValues(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		contents string
	}{
		{name: "negative parallel", contents: "parallel: -2"},
		{name: "unknown log level", contents: "log_level: loud"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := writeSettings(t, tc.contents)
			_, err := ParseConfig(path)
			var verr *cneerrors.ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}
}

func TestValidateConfigAcceptsDefaults(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidateConfig(DefaultSettings()))
}
