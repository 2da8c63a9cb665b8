package pixeldiff

import "context"

// Options controls a single pixel comparison
type Options struct {
	// Threshold is the perceptual matching threshold in [0, 1]
	Threshold float64
	// IncludeAntiAliased counts anti-aliased pixels as differences
	IncludeAntiAliased bool
}

// Result holds the outcome of a pixel comparison
type Result struct {
	ImagesAreSame bool
	Width         int
	Height        int
	DiffCount     int
}

// PixelDiffer compares two same-named images pixel by pixel and writes a raw
// diff bitmap to diffOutputPath as a side effect. Implementations may write
// that bitmap asynchronously relative to Diff returning, so callers must wait
// for the file to appear before consuming it.
type PixelDiffer interface {
	Diff(ctx context.Context, actualPath, expectedPath, diffOutputPath string, opts Options) (*Result, error)
}
