package operations

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"
)

type Resampler string

const (
	ResamplerLanczos    Resampler = "lanczos"
	ResamplerCatmullRom Resampler = "catmullrom"
)

func ParseResampler(s string) (Resampler, error) {
	switch r := Resampler(s); r {
	case ResamplerLanczos, ResamplerCatmullRom:
		return r, nil
	case "":
		return ResamplerLanczos, nil
	default:
		return "", fmt.Errorf("unknown resampler %q", s)
	}
}

type Resizer struct {
	resampler Resampler
}

func NewResizer(resampler Resampler) *Resizer {
	if resampler == "" {
		resampler = ResamplerLanczos
	}
	return &Resizer{resampler: resampler}
}

// ToWidth scales img to width, keeping the aspect ratio.
func (r *Resizer) ToWidth(img image.Image, width int) image.Image {
	bounds := img.Bounds()
	height := TargetHeight(bounds.Dx(), bounds.Dy(), width)

	if r.resampler == ResamplerCatmullRom {
		return resizeImage(img, width, height)
	}
	return imaging.Resize(img, width, height, imaging.Lanczos)
}

// TargetHeight truncates the scaled height and never returns less than 1.
func TargetHeight(origWidth, origHeight, width int) int {
	if origWidth <= 0 {
		return 1
	}
	ratio := float64(origHeight) / float64(origWidth)
	height := int(float64(width) * ratio)
	if height < 1 {
		height = 1
	}
	return height
}

func resizeImage(img image.Image, width, height int) image.Image {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}
