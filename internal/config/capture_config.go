package config

// Capture defaults
const (
	DefaultViewportWidth       = 1280
	DefaultViewportHeight      = 800
	DefaultPageLoadTimeoutSecs = 30
	DefaultMouseButton         = "left"
)

// Capability heuristic defaults: a host below any of these runs capture
// jobs sequentially instead of concurrently.
const (
	DefaultMinCores     = 4
	DefaultMinClockMHz  = 2500
	DefaultMinFreeMemMB = 8096
)

// ClickStep describes one click applied before the screenshot is taken.
// Steps execute strictly in configuration order.
type ClickStep struct {
	Selector    string `json:"selector" yaml:"selector" validate:"required"`
	Button      string `json:"button,omitempty" yaml:"button,omitempty" validate:"omitempty,mousebutton"`
	WaitAfterMs int    `json:"wait_after_ms,omitempty" yaml:"wait_after_ms,omitempty" validate:"gte=0"`
}

// CaptureJobConfig describes one screenshot capture job
type CaptureJobConfig struct {
	URL            string `json:"url" yaml:"url" validate:"required,url"`
	ViewportWidth  int    `json:"viewport_width,omitempty" yaml:"viewport_width,omitempty" validate:"gte=0"`
	ViewportHeight int    `json:"viewport_height,omitempty" yaml:"viewport_height,omitempty" validate:"gte=0"`
	OutputDir      string `json:"output_dir" yaml:"output_dir" validate:"required"`
	Name           string `json:"name" yaml:"name" validate:"required"`
	FullPage       bool   `json:"full_page,omitempty" yaml:"full_page,omitempty"`
	// ElementSelector, when set, captures only that element's bounding
	// region instead of the page.
	ElementSelector string      `json:"element_selector,omitempty" yaml:"element_selector,omitempty"`
	ClickSteps      []ClickStep `json:"click_steps,omitempty" yaml:"click_steps,omitempty" validate:"dive"`
}

// ApplyDefaults fills zero-value fields with defaults
func (cj *CaptureJobConfig) ApplyDefaults() {
	if cj.ViewportWidth == 0 {
		cj.ViewportWidth = DefaultViewportWidth
	}
	if cj.ViewportHeight == 0 {
		cj.ViewportHeight = DefaultViewportHeight
	}
	for i := range cj.ClickSteps {
		if cj.ClickSteps[i].Button == "" {
			cj.ClickSteps[i].Button = DefaultMouseButton
		}
	}
}

// BrowserConfig holds headless browser settings shared by all capture jobs
type BrowserConfig struct {
	ChromePath          string `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty"`
	UserDataDir         string `json:"user_data_dir,omitempty" yaml:"user_data_dir,omitempty"`
	PageLoadTimeoutSecs int    `json:"page_load_timeout_secs,omitempty" yaml:"page_load_timeout_secs,omitempty" validate:"gte=0"`
}

// NewDefaultBrowserConfig creates default browser configuration
func NewDefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		PageLoadTimeoutSecs: DefaultPageLoadTimeoutSecs,
	}
}

// CapabilityConfig holds the host-resource thresholds of the serial/parallel heuristic
type CapabilityConfig struct {
	MinCores     int     `json:"min_cores,omitempty" yaml:"min_cores,omitempty"`
	MinClockMHz  float64 `json:"min_clock_mhz,omitempty" yaml:"min_clock_mhz,omitempty"`
	MinFreeMemMB uint64  `json:"min_free_mem_mb,omitempty" yaml:"min_free_mem_mb,omitempty"`
}

// NewDefaultCapabilityConfig creates default capability thresholds
func NewDefaultCapabilityConfig() CapabilityConfig {
	return CapabilityConfig{
		MinCores:     DefaultMinCores,
		MinClockMHz:  DefaultMinClockMHz,
		MinFreeMemMB: DefaultMinFreeMemMB,
	}
}

// ApplyDefaults fills zero-value fields with defaults
func (cc *CapabilityConfig) ApplyDefaults() {
	if cc.MinCores == 0 {
		cc.MinCores = DefaultMinCores
	}
	if cc.MinClockMHz == 0 {
		cc.MinClockMHz = DefaultMinClockMHz
	}
	if cc.MinFreeMemMB == 0 {
		cc.MinFreeMemMB = DefaultMinFreeMemMB
	}
}

// CaptureConfig holds the inputs of one capture run
type CaptureConfig struct {
	Jobs []CaptureJobConfig `json:"jobs,omitempty" yaml:"jobs,omitempty" validate:"dive"`
	// Serial overrides the capability heuristic when set: true forces
	// sequential execution, false forces concurrent execution.
	Serial     *bool            `json:"serial,omitempty" yaml:"serial,omitempty"`
	Browser    BrowserConfig    `json:"browser,omitempty" yaml:"browser,omitempty"`
	Capability CapabilityConfig `json:"capability,omitempty" yaml:"capability,omitempty"`
}

// NewDefaultCaptureConfig creates default capture configuration
func NewDefaultCaptureConfig() CaptureConfig {
	return CaptureConfig{
		Browser:    NewDefaultBrowserConfig(),
		Capability: NewDefaultCapabilityConfig(),
	}
}
