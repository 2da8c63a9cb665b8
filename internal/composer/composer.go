package composer

import (
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"os"

	"github.com/aleister1102/screendiff/internal/errorwrapper"
	"github.com/rs/zerolog"
	"golang.org/x/image/draw"
)

// Layout constants for the composed artifact
const (
	// PanelGap is the horizontal spacing between adjacent panels in pixels
	PanelGap = 10
	// Margin is the border around the whole composition in pixels
	Margin = 10
)

// Composer joins a baseline image, a raw diff bitmap, and a new image into a
// single three-panel artifact, in that fixed left-to-right order.
type Composer struct {
	logger zerolog.Logger
}

// NewComposer creates a new diff image composer
func NewComposer(logger zerolog.Logger) *Composer {
	return &Composer{
		logger: logger.With().Str("component", "DiffComposer").Logger(),
	}
}

// CreateDiffImage composes baseline | diff | new horizontally with PanelGap
// between panels and Margin on all sides, writing the result as PNG to
// destPath. Sources with mismatched heights are letterboxed top-aligned on
// the canvas; no resizing happens. All three source paths must exist.
func (c *Composer) CreateDiffImage(baselinePath, diffPath, newPath, destPath string) error {
	sources := []string{baselinePath, diffPath, newPath}
	for _, path := range sources {
		if _, err := os.Stat(path); err != nil {
			missing := errorwrapper.WrapSentinel(errorwrapper.ErrMissingSourceFile, err, "source image does not exist: "+path)
			return errorwrapper.WrapSentinel(errorwrapper.ErrCannotCreateDiffImage, missing, "cannot compose diff image "+destPath)
		}
	}

	panels := make([]image.Image, 0, len(sources))
	for _, path := range sources {
		img, err := decodeImage(path)
		if err != nil {
			return errorwrapper.WrapSentinel(errorwrapper.ErrCannotCreateDiffImage, err, "cannot compose diff image "+destPath)
		}
		panels = append(panels, img)
	}

	canvas := composePanels(panels)

	if err := writePNG(canvas, destPath); err != nil {
		return errorwrapper.WrapSentinel(errorwrapper.ErrCannotCreateDiffImage, err, "cannot write diff image "+destPath)
	}

	c.logger.Debug().
		Str("dest", destPath).
		Int("width", canvas.Bounds().Dx()).
		Int("height", canvas.Bounds().Dy()).
		Msg("Composed diff artifact")

	return nil
}

// composePanels lays the panels out on a white canvas
func composePanels(panels []image.Image) *image.RGBA {
	width := Margin * 2
	maxHeight := 0
	for i, panel := range panels {
		if i > 0 {
			width += PanelGap
		}
		width += panel.Bounds().Dx()
		if h := panel.Bounds().Dy(); h > maxHeight {
			maxHeight = h
		}
	}
	height := maxHeight + Margin*2

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	x := Margin
	for _, panel := range panels {
		bounds := panel.Bounds()
		target := image.Rect(x, Margin, x+bounds.Dx(), Margin+bounds.Dy())
		draw.Draw(canvas, target, panel, bounds.Min, draw.Src)
		x += bounds.Dx() + PanelGap
	}

	return canvas
}

func writePNG(img image.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func decodeImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "cannot open image "+path)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "cannot decode image "+path)
	}
	return img, nil
}
