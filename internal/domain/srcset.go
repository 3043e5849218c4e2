package domain

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var variantPattern = regexp.MustCompile(`-(\d+)w$`)

type sizedVariant struct {
	path  string
	width int
}

// SrcSet builds an HTML srcset value ("a-320w.webp 320w, a-640w.webp 640w")
// from the sized variants in paths that carry the given format's extension.
// Full-resolution outputs have no width suffix and are left out.
func SrcSet(paths []string, format ImageFormat) string {
	ext := "." + format.Extension()

	var variants []sizedVariant
	for _, p := range paths {
		if !strings.EqualFold(filepath.Ext(p), ext) {
			continue
		}
		m := variantPattern.FindStringSubmatch(Stem(p))
		if m == nil {
			continue
		}
		width, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		variants = append(variants, sizedVariant{path: p, width: width})
	}

	sort.SliceStable(variants, func(i, j int) bool {
		return variants[i].width < variants[j].width
	})

	parts := make([]string, 0, len(variants))
	for _, v := range variants {
		parts = append(parts, fmt.Sprintf("%s %dw", v.path, v.width))
	}
	return strings.Join(parts, ", ")
}

// VariantName is the output file name for stem at the given width. A zero
// width names the full-resolution output.
func VariantName(stem string, width int, format ImageFormat) string {
	if width <= 0 {
		return fmt.Sprintf("%s.%s", stem, format.Extension())
	}
	return fmt.Sprintf("%s-%dw.%s", stem, width, format.Extension())
}
