package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aleister1102/screendiff/internal/errorwrapper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultGlobalConfig(t *testing.T) {
	cfg := NewDefaultGlobalConfig()

	assert.Equal(t, DefaultDiffThreshold, cfg.ComparatorConfig.Threshold)
	assert.Equal(t, DefaultArtifactWaitTimeout, cfg.ComparatorConfig.ArtifactWaitTimeout)
	assert.Equal(t, DefaultArtifactPollInterval, cfg.ComparatorConfig.PollInterval)
	assert.Equal(t, DefaultMinCores, cfg.CaptureConfig.Capability.MinCores)
	assert.Equal(t, float64(DefaultMinClockMHz), cfg.CaptureConfig.Capability.MinClockMHz)
	assert.Equal(t, uint64(DefaultMinFreeMemMB), cfg.CaptureConfig.Capability.MinFreeMemMB)
	assert.Equal(t, DefaultPageLoadTimeoutSecs, cfg.CaptureConfig.Browser.PageLoadTimeoutSecs)
}

func TestLoadGlobalConfig_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
mode: compare
compare_config:
  baseline_dir: /data/baseline
  new_dir: /data/new
comparator_config:
  threshold: 0.2
capture_config:
  jobs:
    - url: http://example.com
      output_dir: /data/new
      name: home.png
      click_steps:
        - selector: "#accept-cookies"
          wait_after_ms: 250
log_config:
  log_level: debug
  log_format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadGlobalConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "compare", cfg.Mode)
	assert.Equal(t, "/data/baseline", cfg.CompareConfig.BaselineDir)
	assert.Equal(t, "/data/new", cfg.CompareConfig.NewDir)
	assert.InDelta(t, 0.2, cfg.ComparatorConfig.Threshold, 1e-9)
	// Unset comparator fields fall back to defaults
	assert.Equal(t, DefaultArtifactWaitTimeout, cfg.ComparatorConfig.ArtifactWaitTimeout)

	require.Len(t, cfg.CaptureConfig.Jobs, 1)
	job := cfg.CaptureConfig.Jobs[0]
	assert.Equal(t, "home.png", job.Name)
	assert.Equal(t, DefaultViewportWidth, job.ViewportWidth)
	assert.Equal(t, DefaultViewportHeight, job.ViewportHeight)
	require.Len(t, job.ClickSteps, 1)
	assert.Equal(t, DefaultMouseButton, job.ClickSteps[0].Button)
	assert.Equal(t, 250, job.ClickSteps[0].WaitAfterMs)

	assert.Equal(t, "debug", cfg.LogConfig.LogLevel)
	assert.Equal(t, "json", cfg.LogConfig.LogFormat)
}

func TestLoadGlobalConfig_InvalidMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: sideways\n"), 0644))

	_, err := LoadGlobalConfig(path)

	require.Error(t, err)
	assert.ErrorIs(t, err, errorwrapper.ErrInvalidConfiguration)
}

func TestLoadGlobalConfig_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("compare_config: [unclosed\n"), 0644))

	_, err := LoadGlobalConfig(path)

	require.Error(t, err)
	assert.ErrorIs(t, err, errorwrapper.ErrInvalidConfiguration)
}

func TestLoadGlobalConfig_NoFileUsesDefaults(t *testing.T) {
	// Point the search away from any real config file
	t.Setenv("SCREENDIFF_CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))
	chdir(t, t.TempDir())

	cfg, err := LoadGlobalConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultDiffThreshold, cfg.ComparatorConfig.Threshold)
}

func TestValidateCompareConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     CompareConfig
		wantErr bool
	}{
		{name: "valid", cfg: CompareConfig{BaselineDir: "/a", NewDir: "/b"}, wantErr: false},
		{name: "missing baseline", cfg: CompareConfig{NewDir: "/b"}, wantErr: true},
		{name: "missing new", cfg: CompareConfig{BaselineDir: "/a"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCompareConfig(&tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, errorwrapper.ErrInvalidConfiguration)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestComparatorConfig_ApplyDefaults(t *testing.T) {
	cfg := ComparatorConfig{Threshold: 0.3, PollInterval: 5 * time.Millisecond}
	cfg.ApplyDefaults()

	assert.InDelta(t, 0.3, cfg.Threshold, 1e-9)
	assert.Equal(t, 5*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, DefaultArtifactWaitTimeout, cfg.ArtifactWaitTimeout)
}

func TestGetConfigPath_FlagPriority(t *testing.T) {
	dir := t.TempDir()
	flagPath := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(flagPath, []byte("mode: compare\n"), 0644))

	assert.Equal(t, flagPath, GetConfigPath(flagPath))
}

func TestGetConfigPath_EnvFallback(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, "env.yaml")
	require.NoError(t, os.WriteFile(envPath, []byte("mode: compare\n"), 0644))
	t.Setenv("SCREENDIFF_CONFIG_PATH", envPath)
	chdir(t, t.TempDir())

	assert.Equal(t, envPath, GetConfigPath(""))
}

// chdir changes the working directory for the duration of the test,
// standing in for testing.T.Chdir which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(prev))
	})
}
