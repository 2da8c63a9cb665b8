package capture

import (
	"context"

	"github.com/aleister1102/screendiff/internal/config"
)

// CaptureResult is what the capture collaborator produces for one job
type CaptureResult struct {
	// Name is the job's configured image name
	Name string
	// Path is where the screenshot was written
	Path string
	// Element is the element selector used, empty for page captures
	Element string
	// Binary is the raw screenshot bytes
	Binary []byte
}

// Capturer takes a browser screenshot for one job configuration.
// The orchestrator depends only on this signature; the default
// implementation drives a headless Chrome via rod.
type Capturer interface {
	Capture(ctx context.Context, job config.CaptureJobConfig) (*CaptureResult, error)
}
