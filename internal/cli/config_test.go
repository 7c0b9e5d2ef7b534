package cli

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/sdkregen/internal/errors"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"SPEC_ROOT", "PROJECTS", "AUTOREST", "MARKER", "PRESERVE", "AWAIT"} {
		t.Setenv(EnvPrefix+key, "")
		require.NoError(t, os.Unsetenv(EnvPrefix+key))
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DefaultSpecRoot, cfg.SpecRoot)
	assert.Equal(t, LatestVersion, cfg.Autorest)
	assert.Equal(t, DefaultMarker, cfg.Marker)
	assert.Empty(t, cfg.Projects)
	assert.False(t, cfg.Preserve)
	assert.False(t, cfg.Await)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("SDKREGEN_SPEC_ROOT", "/specs")
	t.Setenv("SDKREGEN_PROJECTS", "compute,network")
	t.Setenv("SDKREGEN_AUTOREST", "2.0.4413")
	t.Setenv("SDKREGEN_PRESERVE", "true")
	t.Setenv("SDKREGEN_AWAIT", "1")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "/specs", cfg.SpecRoot)
	assert.Equal(t, []string{"compute", "network"}, cfg.Projects)
	assert.Equal(t, "2.0.4413", cfg.Autorest)
	assert.True(t, cfg.Preserve)
	assert.True(t, cfg.Await)
}

func TestLoadConfigInvalidEnvironment(t *testing.T) {
	t.Setenv("SDKREGEN_PRESERVE", "maybe")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ConfigurationErrorCode))
}

func TestConfigValidate(t *testing.T) {
	t.Run("derives values", func(t *testing.T) {
		cfg := &Config{SpecRoot: " /specs ", Autorest: "latest", Marker: DefaultMarker, AutorestArgs: `--a "b c" > gen.log`}
		require.NoError(t, cfg.Validate())

		wd, err := os.Getwd()
		require.NoError(t, err)
		assert.Equal(t, "/specs", cfg.SpecRoot)
		assert.Equal(t, wd, cfg.WorkDir)
		assert.Equal(t, `--a "b c" > gen.log`, cfg.AutorestArgs)
		assert.NotEmpty(t, cfg.RunID)
	})

	tests := []struct {
		name   string
		config Config
	}{
		{"empty spec root", Config{Autorest: "latest", Marker: DefaultMarker}},
		{"empty autorest", Config{SpecRoot: "x", Marker: DefaultMarker}},
		{"empty marker", Config{SpecRoot: "x", Autorest: "latest"}},
		{"unbalanced args", Config{SpecRoot: "x", Autorest: "latest", Marker: DefaultMarker, AutorestArgs: `"open`}},
		{"unbalanced args after redirect", Config{SpecRoot: "x", Autorest: "latest", Marker: DefaultMarker, AutorestArgs: `--a=1 > "open`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.config
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.ConfigurationErrorCode))
		})
	}
}

func TestSplitProjects(t *testing.T) {
	assert.Nil(t, SplitProjects(nil))
	assert.Equal(t,
		[]string{"compute", "network", "dns"},
		SplitProjects([]string{"compute, network", " ,dns,"}))
}
