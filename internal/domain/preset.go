package domain

type SizePreset struct {
	Name  string
	Width int
}

type QualityPreset string

const (
	QualityThumbnail QualityPreset = "thumbnail"
	QualityGallery   QualityPreset = "gallery"
	QualityHero      QualityPreset = "hero"
	QualityPrint     QualityPreset = "print"
)

const (
	DefaultQuality     = QualityGallery
	DefaultJPEGQuality = 85
	DefaultOutputDir   = "./optimized"
)

// sizePresets is kept in ascending width order.
var sizePresets = [...]SizePreset{
	{Name: "small", Width: 320},
	{Name: "medium", Width: 640},
	{Name: "large", Width: 1024},
	{Name: "xlarge", Width: 1920},
}

var qualityPresets = map[QualityPreset]int{
	QualityThumbnail: 70,
	QualityGallery:   85,
	QualityHero:      90,
	QualityPrint:     95,
}

// SizePresets returns a copy of the configured widths, smallest first.
func SizePresets() []SizePreset {
	out := make([]SizePreset, len(sizePresets))
	copy(out, sizePresets[:])
	return out
}

// QualityPresets lists the accepted quality labels in ascending quality.
func QualityPresets() []QualityPreset {
	return []QualityPreset{QualityThumbnail, QualityGallery, QualityHero, QualityPrint}
}

// Value returns the encoder quality for the preset. Unknown labels fall back
// to DefaultJPEGQuality.
func (q QualityPreset) Value() int {
	if v, ok := qualityPresets[q]; ok {
		return v
	}
	return DefaultJPEGQuality
}

func (q QualityPreset) Valid() bool {
	_, ok := qualityPresets[q]
	return ok
}
