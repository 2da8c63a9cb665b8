package capture

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aleister1102/screendiff/internal/config"
	"github.com/aleister1102/screendiff/internal/errorwrapper"
	"github.com/aleister1102/screendiff/internal/filemanager"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog"
)

// RodCapturer drives a headless Chrome through rod to take screenshots
type RodCapturer struct {
	config      config.BrowserConfig
	logger      zerolog.Logger
	fileManager *filemanager.FileManager
	launcher    *launcher.Launcher
	browser     *rod.Browser
	mutex       sync.Mutex
	isRunning   bool
}

// NewRodCapturer creates a new rod-backed capturer
func NewRodCapturer(cfg config.BrowserConfig, fm *filemanager.FileManager, logger zerolog.Logger) *RodCapturer {
	return &RodCapturer{
		config:      cfg,
		logger:      logger.With().Str("component", "RodCapturer").Logger(),
		fileManager: fm,
	}
}

// Start launches the browser
func (rc *RodCapturer) Start() error {
	rc.mutex.Lock()
	defer rc.mutex.Unlock()

	if rc.isRunning {
		return nil
	}

	l := launcher.New()

	if rc.config.ChromePath != "" {
		l = l.Bin(rc.config.ChromePath)
	}
	if rc.config.UserDataDir != "" {
		l = l.UserDataDir(rc.config.UserDataDir)
	}

	l = l.
		Set("no-sandbox").
		Set("disable-dev-shm-usage").
		Set("disable-gpu").
		Set("no-first-run").
		Set("disable-default-apps").
		Set("disable-sync")

	launcherURL, err := l.Launch()
	if err != nil {
		return errorwrapper.WrapSentinel(errorwrapper.ErrExternalToolFailure, err, "failed to launch browser")
	}
	rc.launcher = l

	browser := rod.New().ControlURL(launcherURL)
	if err := browser.Connect(); err != nil {
		return errorwrapper.WrapSentinel(errorwrapper.ErrExternalToolFailure, err, "failed to connect browser")
	}
	rc.browser = browser

	rc.isRunning = true
	rc.logger.Info().Msg("Headless browser started")
	return nil
}

// Stop closes the browser and the launcher
func (rc *RodCapturer) Stop() {
	rc.mutex.Lock()
	defer rc.mutex.Unlock()

	if !rc.isRunning {
		return
	}

	if rc.browser != nil {
		_ = rc.browser.Close()
	}
	if rc.launcher != nil {
		rc.launcher.Cleanup()
	}

	rc.isRunning = false
	rc.logger.Info().Msg("Headless browser stopped")
}

// Capture navigates to the job URL, applies click steps in order, takes the
// screenshot, and writes it under the job's output directory.
func (rc *RodCapturer) Capture(ctx context.Context, job config.CaptureJobConfig) (*CaptureResult, error) {
	rc.mutex.Lock()
	running := rc.isRunning
	rc.mutex.Unlock()
	if !running {
		return nil, errorwrapper.NewError("capturer not started")
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, time.Duration(rc.config.PageLoadTimeoutSecs)*time.Second)
	defer cancel()

	page, err := rc.browser.Context(timeoutCtx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, errorwrapper.WrapSentinel(errorwrapper.ErrExternalToolFailure, err, "failed to create page")
	}
	defer page.Close()

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:  job.ViewportWidth,
		Height: job.ViewportHeight,
	}); err != nil {
		rc.logger.Warn().Err(err).Msg("Failed to set viewport")
	}

	if err := page.Navigate(job.URL); err != nil {
		return nil, errorwrapper.WrapSentinel(errorwrapper.ErrExternalToolFailure, err, "failed to navigate to "+job.URL)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, errorwrapper.WrapSentinel(errorwrapper.ErrExternalToolFailure, err, "page load timeout for "+job.URL)
	}

	if err := rc.applyClickSteps(page, job.ClickSteps); err != nil {
		return nil, err
	}

	binary, err := rc.takeScreenshot(page, job)
	if err != nil {
		return nil, err
	}

	if err := rc.fileManager.EnsureDirectory(job.OutputDir, 0755); err != nil {
		return nil, err
	}
	outputPath := filepath.Join(job.OutputDir, imageFileName(job.Name))
	if err := rc.fileManager.WriteFile(outputPath, binary); err != nil {
		return nil, err
	}

	rc.logger.Debug().
		Str("url", job.URL).
		Str("path", outputPath).
		Int("bytes", len(binary)).
		Msg("Captured screenshot")

	return &CaptureResult{
		Name:    job.Name,
		Path:    outputPath,
		Element: job.ElementSelector,
		Binary:  binary,
	}, nil
}

// applyClickSteps executes the configured clicks strictly in order
func (rc *RodCapturer) applyClickSteps(page *rod.Page, steps []config.ClickStep) error {
	for _, step := range steps {
		element, err := page.Element(step.Selector)
		if err != nil {
			return errorwrapper.WrapSentinel(errorwrapper.ErrExternalToolFailure, err, "click target not found: "+step.Selector)
		}
		if err := element.Click(mouseButton(step.Button), 1); err != nil {
			return errorwrapper.WrapSentinel(errorwrapper.ErrExternalToolFailure, err, "failed to click "+step.Selector)
		}
		if step.WaitAfterMs > 0 {
			time.Sleep(time.Duration(step.WaitAfterMs) * time.Millisecond)
		}
	}
	return nil
}

// takeScreenshot captures either the configured element's bounding region or the page
func (rc *RodCapturer) takeScreenshot(page *rod.Page, job config.CaptureJobConfig) ([]byte, error) {
	if job.ElementSelector != "" {
		element, err := page.Element(job.ElementSelector)
		if err != nil {
			return nil, errorwrapper.WrapSentinel(errorwrapper.ErrExternalToolFailure, err, "capture element not found: "+job.ElementSelector)
		}
		binary, err := element.Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
		if err != nil {
			return nil, errorwrapper.WrapSentinel(errorwrapper.ErrExternalToolFailure, err, "element screenshot failed for "+job.ElementSelector)
		}
		return binary, nil
	}

	binary, err := page.Screenshot(job.FullPage, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, errorwrapper.WrapSentinel(errorwrapper.ErrExternalToolFailure, err, "page screenshot failed for "+job.URL)
	}
	return binary, nil
}

func mouseButton(name string) proto.InputMouseButton {
	switch strings.ToLower(name) {
	case "right":
		return proto.InputMouseButtonRight
	case "middle":
		return proto.InputMouseButtonMiddle
	default:
		return proto.InputMouseButtonLeft
	}
}

// imageFileName appends a .png extension when the job name carries none
func imageFileName(name string) string {
	if filepath.Ext(name) == "" {
		return name + ".png"
	}
	return name
}
