package operations

import (
	"bytes"
	"encoding/binary"
	"image"

	"github.com/disintegration/imaging"
)

type Orientation uint16

const (
	OrientationUnspecified Orientation = 0
	OrientationNormal      Orientation = 1
	OrientationFlipH       Orientation = 2
	OrientationRotate180   Orientation = 3
	OrientationFlipV       Orientation = 4
	OrientationTranspose   Orientation = 5
	OrientationRotate270   Orientation = 6
	OrientationTransverse  Orientation = 7
	OrientationRotate90    Orientation = 8
)

const tagOrientation = 0x0112

// IsTIFF reports whether data starts with a TIFF header in either byte order.
func IsTIFF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("II*\x00")) || bytes.HasPrefix(data, []byte("MM\x00*"))
}

// TIFFOrientation reads the Orientation tag from the first IFD of a TIFF
// stream. imaging only handles the JPEG/EXIF case.
func TIFFOrientation(data []byte) Orientation {
	if len(data) < 8 || !IsTIFF(data) {
		return OrientationUnspecified
	}

	var order binary.ByteOrder = binary.LittleEndian
	if data[0] == 'M' {
		order = binary.BigEndian
	}

	offset := int(order.Uint32(data[4:8]))
	if offset < 8 || offset+2 > len(data) {
		return OrientationUnspecified
	}

	count := int(order.Uint16(data[offset : offset+2]))
	for i := 0; i < count; i++ {
		entry := offset + 2 + i*12
		if entry+12 > len(data) {
			break
		}
		if order.Uint16(data[entry:entry+2]) != tagOrientation {
			continue
		}
		// SHORT, count 1: value sits in the first two bytes of the value field.
		if order.Uint16(data[entry+2:entry+4]) != 3 || order.Uint32(data[entry+4:entry+8]) != 1 {
			return OrientationUnspecified
		}
		v := Orientation(order.Uint16(data[entry+8 : entry+10]))
		if v < OrientationNormal || v > OrientationRotate90 {
			return OrientationUnspecified
		}
		return v
	}
	return OrientationUnspecified
}

// Orient transforms img so that it displays upright for the given tag value.
func Orient(img image.Image, o Orientation) image.Image {
	switch o {
	case OrientationFlipH:
		return imaging.FlipH(img)
	case OrientationRotate180:
		return imaging.Rotate180(img)
	case OrientationFlipV:
		return imaging.FlipV(img)
	case OrientationTranspose:
		return imaging.Transpose(img)
	case OrientationRotate270:
		return imaging.Rotate270(img)
	case OrientationTransverse:
		return imaging.Transverse(img)
	case OrientationRotate90:
		return imaging.Rotate90(img)
	}
	return img
}
