package composer

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/aleister1102/screendiff/internal/errorwrapper"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, path string, width, height int, fill color.Color) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, fill)
		}
	}
	file, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(file, img))
	require.NoError(t, file.Close())
}

func TestComposer_ThreePanelLayout(t *testing.T) {
	dir := t.TempDir()
	baseline := filepath.Join(dir, "baseline.png")
	diff := filepath.Join(dir, "diff.png")
	newImg := filepath.Join(dir, "new.png")
	dest := filepath.Join(dir, "artifact.png")

	writeTestPNG(t, baseline, 40, 30, color.RGBA{R: 255, A: 255})
	writeTestPNG(t, diff, 40, 30, color.RGBA{G: 255, A: 255})
	writeTestPNG(t, newImg, 40, 30, color.RGBA{B: 255, A: 255})

	composer := NewComposer(zerolog.Nop())
	require.NoError(t, composer.CreateDiffImage(baseline, diff, newImg, dest))

	file, err := os.Open(dest)
	require.NoError(t, err)
	defer file.Close()
	composed, err := png.Decode(file)
	require.NoError(t, err)

	// 3 panels of 40px, 2 gaps of 10px, 10px margin on each side
	assert.Equal(t, 40*3+PanelGap*2+Margin*2, composed.Bounds().Dx())
	assert.Equal(t, 30+Margin*2, composed.Bounds().Dy())

	// Panels appear in baseline | diff | new order
	r, _, _, _ := composed.At(Margin+1, Margin+1).RGBA()
	assert.NotZero(t, r, "left panel should be the red baseline")
	_, g, _, _ := composed.At(Margin+40+PanelGap+1, Margin+1).RGBA()
	assert.NotZero(t, g, "middle panel should be the green diff")
	_, _, b, _ := composed.At(Margin+(40+PanelGap)*2+1, Margin+1).RGBA()
	assert.NotZero(t, b, "right panel should be the blue new image")
}

func TestComposer_LetterboxesMismatchedHeights(t *testing.T) {
	dir := t.TempDir()
	baseline := filepath.Join(dir, "baseline.png")
	diff := filepath.Join(dir, "diff.png")
	newImg := filepath.Join(dir, "new.png")
	dest := filepath.Join(dir, "artifact.png")

	writeTestPNG(t, baseline, 20, 50, color.White)
	writeTestPNG(t, diff, 30, 20, color.White)
	writeTestPNG(t, newImg, 25, 35, color.White)

	composer := NewComposer(zerolog.Nop())
	require.NoError(t, composer.CreateDiffImage(baseline, diff, newImg, dest))

	file, err := os.Open(dest)
	require.NoError(t, err)
	defer file.Close()
	composed, err := png.Decode(file)
	require.NoError(t, err)

	assert.Equal(t, 20+30+25+PanelGap*2+Margin*2, composed.Bounds().Dx())
	assert.Equal(t, 50+Margin*2, composed.Bounds().Dy())
}

func TestComposer_MissingSourceFile(t *testing.T) {
	dir := t.TempDir()
	baseline := filepath.Join(dir, "baseline.png")
	newImg := filepath.Join(dir, "new.png")
	writeTestPNG(t, baseline, 10, 10, color.White)
	writeTestPNG(t, newImg, 10, 10, color.White)

	missingDiff := filepath.Join(dir, "never-written.png")
	dest := filepath.Join(dir, "artifact.png")

	composer := NewComposer(zerolog.Nop())
	err := composer.CreateDiffImage(baseline, missingDiff, newImg, dest)

	require.Error(t, err)
	assert.ErrorIs(t, err, errorwrapper.ErrCannotCreateDiffImage)
	assert.ErrorIs(t, err, errorwrapper.ErrMissingSourceFile)
	assert.Contains(t, err.Error(), missingDiff)
	assert.NoFileExists(t, dest)
}
