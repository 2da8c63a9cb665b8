package config

import "time"

// Comparison defaults
const (
	// DefaultDiffThreshold is the fixed perceptual threshold passed to the pixel differ
	DefaultDiffThreshold = 0.1
	// DefaultArtifactWaitTimeout bounds the wait for the differ's raw bitmap to appear
	DefaultArtifactWaitTimeout = 10 * time.Second
	// DefaultArtifactPollInterval is the polling period of that wait
	DefaultArtifactPollInterval = 50 * time.Millisecond
	// DefaultDiffSubdir is appended to the new-image directory when no diff directory is configured
	DefaultDiffSubdir = "diff"
)

// CompareConfig holds the inputs of one batch comparison run
type CompareConfig struct {
	// BaselineDir holds previously accepted reference images
	BaselineDir string `json:"baseline_dir,omitempty" yaml:"baseline_dir,omitempty"`
	// NewDir holds freshly captured images to validate against baseline
	NewDir string `json:"new_dir,omitempty" yaml:"new_dir,omitempty"`
	// DiffDir receives composed diff artifacts; defaults to <NewDir>/diff
	DiffDir string `json:"diff_dir,omitempty" yaml:"diff_dir,omitempty"`
	// Extension optionally narrows the scan to a single file extension
	Extension string `json:"extension,omitempty" yaml:"extension,omitempty"`
}

// NewDefaultCompareConfig creates default comparison configuration
func NewDefaultCompareConfig() CompareConfig {
	return CompareConfig{}
}

// ComparatorConfig tunes the per-image comparison machinery
type ComparatorConfig struct {
	Threshold           float64       `json:"threshold,omitempty" yaml:"threshold,omitempty"`
	ArtifactWaitTimeout time.Duration `json:"artifact_wait_timeout,omitempty" yaml:"artifact_wait_timeout,omitempty"`
	PollInterval        time.Duration `json:"poll_interval,omitempty" yaml:"poll_interval,omitempty"`
}

// NewDefaultComparatorConfig creates default comparator configuration
func NewDefaultComparatorConfig() ComparatorConfig {
	return ComparatorConfig{
		Threshold:           DefaultDiffThreshold,
		ArtifactWaitTimeout: DefaultArtifactWaitTimeout,
		PollInterval:        DefaultArtifactPollInterval,
	}
}

// ApplyDefaults fills zero-value fields with defaults
func (cc *ComparatorConfig) ApplyDefaults() {
	if cc.Threshold == 0 {
		cc.Threshold = DefaultDiffThreshold
	}
	if cc.ArtifactWaitTimeout == 0 {
		cc.ArtifactWaitTimeout = DefaultArtifactWaitTimeout
	}
	if cc.PollInterval == 0 {
		cc.PollInterval = DefaultArtifactPollInterval
	}
}
