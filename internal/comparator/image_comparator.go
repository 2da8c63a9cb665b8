package comparator

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/aleister1102/screendiff/internal/composer"
	"github.com/aleister1102/screendiff/internal/config"
	"github.com/aleister1102/screendiff/internal/errorwrapper"
	"github.com/aleister1102/screendiff/internal/filemanager"
	"github.com/aleister1102/screendiff/internal/pixeldiff"
	"github.com/rs/zerolog"
)

// Anti-aliased pixels count as differences; the differ's AA exclusion
// stays disabled.
const includeAntiAliasedPixels = true

// SingleCompareInput names one baseline/new image pair and where its diff
// artifact should go.
type SingleCompareInput struct {
	BaselineDir string
	NewDir      string
	DiffDir     string
	// ImageName is the shared source file name in both directories
	ImageName string
	// DiffImageName is the desired artifact name; its extension is
	// rewritten to .png since artifacts are always PNG.
	DiffImageName string
}

// ImageComparator orchestrates the pixel differ, diff composer, and the
// transient diff-file lifecycle for one image pair.
type ImageComparator struct {
	config      config.ComparatorConfig
	differ      pixeldiff.PixelDiffer
	composer    *composer.Composer
	fileManager *filemanager.FileManager
	logger      zerolog.Logger
}

// NewImageComparator creates a new single-image comparator
func NewImageComparator(
	cfg config.ComparatorConfig,
	differ pixeldiff.PixelDiffer,
	comp *composer.Composer,
	fm *filemanager.FileManager,
	logger zerolog.Logger,
) *ImageComparator {
	cfg.ApplyDefaults()
	return &ImageComparator{
		config:      cfg,
		differ:      differ,
		composer:    comp,
		fileManager: fm,
		logger:      logger.With().Str("component", "ImageComparator").Logger(),
	}
}

// DiffImages compares one image pair. The differ's raw bitmap goes to a
// temporary path and is deleted before returning, whatever the verdict;
// only the named artifact (or nothing, for identical images) stays in the
// diff directory. Differ failures surface unmodified, and since the differ
// then never produced a temp file, no cleanup is attempted for them.
func (ic *ImageComparator) DiffImages(ctx context.Context, input SingleCompareInput) (*DiffOutcome, error) {
	if err := validateSingleInput(input); err != nil {
		return nil, err
	}

	baselinePath := filepath.Join(input.BaselineDir, input.ImageName)
	newPath := filepath.Join(input.NewDir, input.ImageName)
	tempDiffPath := filepath.Join(input.DiffDir, tempDiffName(input.ImageName))

	result, err := ic.differ.Diff(ctx, newPath, baselinePath, tempDiffPath, pixeldiff.Options{
		Threshold:          ic.config.Threshold,
		IncludeAntiAliased: includeAntiAliasedPixels,
	})
	if err != nil {
		return nil, err
	}

	// The differ writes its bitmap asynchronously relative to returning.
	if err := ic.fileManager.WaitForFile(ctx, tempDiffPath, ic.config.ArtifactWaitTimeout, ic.config.PollInterval); err != nil {
		return nil, err
	}
	defer func() {
		if removeErr := ic.fileManager.RemoveFile(tempDiffPath); removeErr != nil {
			ic.logger.Warn().Err(removeErr).Str("path", tempDiffPath).Msg("Failed to remove temp diff file")
		}
	}()

	outcome := &DiffOutcome{
		TestedImage:    input.ImageName,
		BaselinePath:   baselinePath,
		NewPath:        newPath,
		Width:          result.Width,
		Height:         result.Height,
		ImagesAreSame:  result.ImagesAreSame,
		DiffCount:      result.DiffCount,
		DiffPercentage: computeDiffPercentage(result.DiffCount, result.Width, result.Height),
	}

	if result.ImagesAreSame {
		ic.logger.Debug().Str("image", input.ImageName).Msg("Images are pixel-identical")
		return outcome, nil
	}

	artifactPath := filepath.Join(input.DiffDir, withPNGExtension(input.DiffImageName))
	if err := ic.composer.CreateDiffImage(baselinePath, tempDiffPath, newPath, artifactPath); err != nil {
		return nil, err
	}

	outcome.DiffImagePath = artifactPath

	ic.logger.Debug().
		Str("image", input.ImageName).
		Int("diff_count", result.DiffCount).
		Float64("diff_percentage", outcome.DiffPercentage).
		Str("artifact", artifactPath).
		Msg("Images differ, composed diff artifact")

	return outcome, nil
}

func validateSingleInput(input SingleCompareInput) error {
	if input.BaselineDir == "" {
		return errorwrapper.NewValidationError("baseline_dir", input.BaselineDir, "baseline directory is required")
	}
	if input.NewDir == "" {
		return errorwrapper.NewValidationError("new_dir", input.NewDir, "new directory is required")
	}
	if input.DiffDir == "" {
		return errorwrapper.NewValidationError("diff_dir", input.DiffDir, "diff directory is required")
	}
	if input.ImageName == "" {
		return errorwrapper.NewValidationError("image_name", input.ImageName, "image name is required")
	}
	if input.DiffImageName == "" {
		return errorwrapper.NewValidationError("diff_image_name", input.DiffImageName, "diff image name is required")
	}
	return nil
}

// tempDiffName inserts a .temp infix before the extension:
// screenshot2.jpg -> screenshot2.temp.jpg
func tempDiffName(imageName string) string {
	ext := filepath.Ext(imageName)
	return strings.TrimSuffix(imageName, ext) + ".temp" + ext
}

// withPNGExtension rewrites the file extension to .png
func withPNGExtension(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + ".png"
}
