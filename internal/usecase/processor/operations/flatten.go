package operations

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Flatten composites img onto an opaque bg so that every colour model, alpha
// included, ends up as opaque RGB.
func Flatten(img image.Image, bg color.Color) *image.NRGBA {
	bounds := img.Bounds()
	canvas := imaging.New(bounds.Dx(), bounds.Dy(), bg)
	return imaging.Overlay(canvas, img, image.Pt(0, 0), 1.0)
}
