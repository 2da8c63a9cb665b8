package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/aleister1102/screendiff/internal/errorwrapper"
	"github.com/aleister1102/screendiff/internal/logger"
	"gopkg.in/yaml.v3"
)

// GlobalConfig contains all configuration sections for the application
type GlobalConfig struct {
	CompareConfig    CompareConfig        `json:"compare_config,omitempty" yaml:"compare_config,omitempty"`
	ComparatorConfig ComparatorConfig     `json:"comparator_config,omitempty" yaml:"comparator_config,omitempty"`
	CaptureConfig    CaptureConfig        `json:"capture_config,omitempty" yaml:"capture_config,omitempty"`
	LogConfig        logger.FileLogConfig `json:"log_config,omitempty" yaml:"log_config,omitempty"`
	Mode             string               `json:"mode,omitempty" yaml:"mode,omitempty" validate:"omitempty,runmode"`
}

// NewDefaultGlobalConfig creates a new GlobalConfig with default values
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		CompareConfig:    NewDefaultCompareConfig(),
		ComparatorConfig: NewDefaultComparatorConfig(),
		CaptureConfig:    NewDefaultCaptureConfig(),
		LogConfig:        logger.NewDefaultFileLogConfig(),
	}
}

// LoadGlobalConfig loads the configuration from a file or default locations.
// It determines the config file path using GetConfigPath and supports both
// YAML and JSON formats. A missing config file is not an error: defaults
// apply and per-run options come from flags.
func LoadGlobalConfig(providedPath string) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	path := GetConfigPath(providedPath)
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to read config file "+path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errorwrapper.WrapSentinel(errorwrapper.ErrInvalidConfiguration, err, "failed to parse YAML config "+path)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errorwrapper.WrapSentinel(errorwrapper.ErrInvalidConfiguration, err, "failed to parse JSON config "+path)
		}
	default:
		return nil, errorwrapper.NewValidationError("config_path", path, "unsupported config file extension")
	}

	cfg.applyDefaults()

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults fills zero-value fields loaded from file with defaults
func (gc *GlobalConfig) applyDefaults() {
	gc.ComparatorConfig.ApplyDefaults()
	gc.CaptureConfig.Capability.ApplyDefaults()
	if gc.CaptureConfig.Browser.PageLoadTimeoutSecs == 0 {
		gc.CaptureConfig.Browser.PageLoadTimeoutSecs = DefaultPageLoadTimeoutSecs
	}
	for i := range gc.CaptureConfig.Jobs {
		gc.CaptureConfig.Jobs[i].ApplyDefaults()
	}
}
