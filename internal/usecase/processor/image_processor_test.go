package processor

import (
	"bytes"
	"context"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"imgopt/internal/domain"
	"imgopt/internal/repository/image/disk"
	"imgopt/internal/usecase/processor/operations"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/zlog"
)

func newTestProcessor(t *testing.T) *ImageProcessor {
	t.Helper()
	zlog.Init()
	return NewImageProcessor(disk.NewFileRepository(), operations.ResamplerLanczos, &zlog.Logger)
}

func writeFile(t *testing.T, path string, data []byte) string {
	t.Helper()
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

// exifOrientationSegment builds a minimal big-endian APP1 EXIF segment with a
// single Orientation tag.
func exifOrientationSegment(orientation uint16) []byte {
	var payload bytes.Buffer
	payload.WriteString("Exif\x00\x00")
	payload.WriteString("MM\x00\x2a")
	binary.Write(&payload, binary.BigEndian, uint32(8))
	binary.Write(&payload, binary.BigEndian, uint16(1))
	binary.Write(&payload, binary.BigEndian, uint16(0x0112))
	binary.Write(&payload, binary.BigEndian, uint16(3))
	binary.Write(&payload, binary.BigEndian, uint32(1))
	binary.Write(&payload, binary.BigEndian, orientation)
	binary.Write(&payload, binary.BigEndian, uint16(0))
	binary.Write(&payload, binary.BigEndian, uint32(0))

	var seg bytes.Buffer
	seg.Write([]byte{0xff, 0xe1})
	binary.Write(&seg, binary.BigEndian, uint16(payload.Len()+2))
	seg.Write(payload.Bytes())
	return seg.Bytes()
}

func TestLoadFlattensTransparency(t *testing.T) {
	p := newTestProcessor(t)

	src := image.NewNRGBA(image.Rect(0, 0, 100, 50))
	for y := 0; y < 50; y++ {
		for x := 50; x < 100; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))
	path := writeFile(t, filepath.Join(t.TempDir(), "alpha.png"), buf.Bytes())

	img, err := p.Load(context.Background(), path)
	require.NoError(t, err)

	r, g, b, a := img.At(10, 10).RGBA()
	assert.Equal(t, []uint32{0xffff, 0xffff, 0xffff, 0xffff}, []uint32{r, g, b, a})

	r, g, b, a = img.At(80, 10).RGBA()
	assert.Equal(t, []uint32{0xffff, 0, 0, 0xffff}, []uint32{r, g, b, a})
}

func TestLoadAppliesExifOrientation(t *testing.T) {
	p := newTestProcessor(t)

	data := encodeJPEG(t, 200, 100)
	rotated := append([]byte{}, data[:2]...)
	rotated = append(rotated, exifOrientationSegment(6)...)
	rotated = append(rotated, data[2:]...)
	path := writeFile(t, filepath.Join(t.TempDir(), "rotated.jpg"), rotated)

	img, err := p.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestLoadErrors(t *testing.T) {
	p := newTestProcessor(t)
	dir := t.TempDir()

	garbage := writeFile(t, filepath.Join(dir, "garbage.jpg"), []byte("definitely not an image"))
	_, err := p.Load(context.Background(), garbage)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	full := encodeJPEG(t, 64, 64)
	truncated := writeFile(t, filepath.Join(dir, "truncated.jpg"), full[:len(full)/2])
	_, err = p.Load(context.Background(), truncated)
	assert.ErrorIs(t, err, ErrDecode)

	_, err = p.Load(context.Background(), filepath.Join(dir, "missing.jpg"))
	assert.ErrorIs(t, err, ErrReadSource)
}

func TestResizeAndEncode(t *testing.T) {
	p := newTestProcessor(t)
	path := writeFile(t, filepath.Join(t.TempDir(), "in.jpg"), encodeJPEG(t, 300, 150))

	img, err := p.Load(context.Background(), path)
	require.NoError(t, err)

	resized := p.Resize(img, 120)
	assert.Equal(t, image.Pt(120, 60), resized.Bounds().Size())

	r, err := p.Encode(context.Background(), resized, domain.FormatJPEG, 85)
	require.NoError(t, err)
	cfg, err := jpeg.DecodeConfig(r)
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.Width)

	_, err = p.Encode(context.Background(), resized, domain.FormatTIFF, 85)
	assert.ErrorIs(t, err, ErrEncode)
}

// grayTIFF builds an uncompressed little-endian 8-bit grayscale TIFF whose
// first IFD carries the given Orientation tag.
func grayTIFF(w, h int, pix []byte, orientation uint16) []byte {
	type entry struct {
		tag, typ uint16
		value    uint32
	}
	const shortType, longType = 3, 4

	entries := []entry{
		{256, shortType, uint32(w)},
		{257, shortType, uint32(h)},
		{258, shortType, 8},
		{259, shortType, 1},
		{262, shortType, 1},
		{273, longType, 0},
		{274, shortType, uint32(orientation)},
		{277, shortType, 1},
		{278, shortType, uint32(h)},
		{279, longType, uint32(len(pix))},
	}
	dataOffset := uint32(8 + 2 + len(entries)*12 + 4)
	entries[5].value = dataOffset

	var buf bytes.Buffer
	le := binary.LittleEndian
	buf.WriteString("II*\x00")
	binary.Write(&buf, le, uint32(8))
	binary.Write(&buf, le, uint16(len(entries)))
	for _, e := range entries {
		binary.Write(&buf, le, e.tag)
		binary.Write(&buf, le, e.typ)
		binary.Write(&buf, le, uint32(1))
		if e.typ == shortType {
			binary.Write(&buf, le, uint16(e.value))
			binary.Write(&buf, le, uint16(0))
		} else {
			binary.Write(&buf, le, e.value)
		}
	}
	binary.Write(&buf, le, uint32(0))
	buf.Write(pix)
	return buf.Bytes()
}

func TestLoadAppliesTIFFOrientation(t *testing.T) {
	p := newTestProcessor(t)
	dir := t.TempDir()
	pix := []byte{
		0, 50, 100, 150,
		200, 210, 220, 230,
	}

	upright := writeFile(t, filepath.Join(dir, "upright.tif"), grayTIFF(4, 2, pix, 1))
	img, err := p.Load(context.Background(), upright)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(4, 2), img.Bounds().Size())

	rotated := writeFile(t, filepath.Join(dir, "rotated.tiff"), grayTIFF(4, 2, pix, 6))
	img, err = p.Load(context.Background(), rotated)
	require.NoError(t, err)
	require.Equal(t, image.Pt(2, 4), img.Bounds().Size())

	r, _, _, _ := img.At(0, 0).RGBA()
	assert.EqualValues(t, 200, r>>8)
	r, _, _, _ = img.At(1, 0).RGBA()
	assert.EqualValues(t, 0, r>>8)
}
