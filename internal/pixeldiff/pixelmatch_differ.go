package pixeldiff

import (
	"context"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"

	"github.com/aleister1102/screendiff/internal/errorwrapper"
	"github.com/orisano/pixelmatch"
	"github.com/rs/zerolog"
)

// PixelmatchDiffer is the default PixelDiffer backed by the pixelmatch
// perceptual comparison algorithm.
type PixelmatchDiffer struct {
	logger zerolog.Logger
}

// NewPixelmatchDiffer creates a new pixelmatch-backed differ
func NewPixelmatchDiffer(logger zerolog.Logger) *PixelmatchDiffer {
	return &PixelmatchDiffer{
		logger: logger.With().Str("component", "PixelmatchDiffer").Logger(),
	}
}

// Diff decodes both images, runs the pixelmatch comparison, and writes the
// diff bitmap to diffOutputPath in the background. The returned result is
// valid immediately; the bitmap file may appear slightly later.
func (pd *PixelmatchDiffer) Diff(ctx context.Context, actualPath, expectedPath, diffOutputPath string, opts Options) (*Result, error) {
	actual, err := decodeImage(actualPath)
	if err != nil {
		return nil, err
	}
	expected, err := decodeImage(expectedPath)
	if err != nil {
		return nil, err
	}

	matchOpts := []pixelmatch.MatchOption{
		pixelmatch.Threshold(opts.Threshold),
	}
	if opts.IncludeAntiAliased {
		matchOpts = append(matchOpts, pixelmatch.IncludeAntiAlias)
	}

	var diffImage image.Image
	matchOpts = append(matchOpts, pixelmatch.WriteTo(&diffImage))

	diffCount, err := pixelmatch.MatchPixel(actual, expected, matchOpts...)
	if err != nil {
		return nil, errorwrapper.WrapSentinel(errorwrapper.ErrExternalToolFailure, err,
			"pixelmatch comparison failed for "+actualPath)
	}

	bounds := actual.Bounds()
	result := &Result{
		ImagesAreSame: diffCount == 0,
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		DiffCount:     diffCount,
	}

	// pixelmatch skips the WriteTo assignment when the images are
	// identical, so the bitmap must be synthesized for that case. The
	// file has to exist either way: callers poll for it and delete it.
	if diffImage == nil {
		diffImage = image.NewRGBA(bounds)
	}

	go pd.writeDiffBitmap(diffImage, diffOutputPath)

	return result, nil
}

// writeDiffBitmap encodes the diff bitmap and moves it into place. The write
// goes through a partial file so that the destination only ever exists fully
// written, which is what pollers for its existence rely on.
func (pd *PixelmatchDiffer) writeDiffBitmap(diffImage image.Image, path string) {
	partial := path + ".partial"

	file, err := os.Create(partial)
	if err != nil {
		pd.logger.Error().Err(err).Str("path", partial).Msg("Failed to create diff bitmap file")
		return
	}

	if err := png.Encode(file, diffImage); err != nil {
		file.Close()
		_ = os.Remove(partial)
		pd.logger.Error().Err(err).Str("path", partial).Msg("Failed to encode diff bitmap")
		return
	}

	if err := file.Close(); err != nil {
		pd.logger.Error().Err(err).Str("path", partial).Msg("Failed to close diff bitmap file")
		return
	}

	if err := os.Rename(partial, path); err != nil {
		pd.logger.Error().Err(err).Str("path", path).Msg("Failed to move diff bitmap into place")
	}
}

func decodeImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errorwrapper.WrapSentinel(errorwrapper.ErrExternalToolFailure, err, "cannot open image "+path)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, errorwrapper.WrapSentinel(errorwrapper.ErrExternalToolFailure, err, "cannot decode image "+path)
	}
	return img, nil
}
