// Package ico writes Windows ICO containers with PNG-compressed entries.
//
// Modern Windows (Vista and later) accepts PNG payloads for every entry,
// which keeps 256×256 frames small and avoids BMP masking entirely.
package ico

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
	"io"
)

// https://en.wikipedia.org/wiki/ICO_(file_format)
type icondir struct {
	Reserved  uint16
	ImageType uint16 // 1 = icon
	NumImages uint16
}

type icondirentry struct {
	Width        uint8 // 0 means 256
	Height       uint8
	NumColors    uint8
	Reserved     uint8
	ColorPlanes  uint16
	BitsPerPixel uint16
	SizeInBytes  uint32
	Offset       uint32
}

const (
	dirSize   = 6
	entrySize = 16
)

// EncodeAll writes images as a multi-resolution ICO. Frame order is
// preserved. Images larger than 256 in either dimension are rejected:
// the entry size fields are a single byte each.
func EncodeAll(w io.Writer, images []image.Image) error {
	if len(images) == 0 {
		return fmt.Errorf("ico: no images to encode")
	}

	header := new(bytes.Buffer)
	payload := new(bytes.Buffer)
	binary.Write(header, binary.LittleEndian, icondir{ImageType: 1, NumImages: uint16(len(images))})

	offset := uint32(dirSize + entrySize*len(images))
	for _, img := range images {
		b := img.Bounds()
		dx, dy := b.Dx(), b.Dy()
		if dx > 256 || dy > 256 {
			return fmt.Errorf("ico: image %dx%d exceeds 256px limit", dx, dy)
		}

		var pngBuf bytes.Buffer
		if err := png.Encode(&pngBuf, img); err != nil {
			return fmt.Errorf("ico: encode %dx%d frame: %w", dx, dy, err)
		}

		entry := icondirentry{
			Width:        sizeByte(dx),
			Height:       sizeByte(dy),
			ColorPlanes:  1,
			BitsPerPixel: 32,
			SizeInBytes:  uint32(pngBuf.Len()),
			Offset:       offset,
		}
		binary.Write(header, binary.LittleEndian, entry)
		payload.Write(pngBuf.Bytes())
		offset += uint32(pngBuf.Len())
	}

	if _, err := w.Write(header.Bytes()); err != nil {
		return fmt.Errorf("ico: write header: %w", err)
	}
	if _, err := w.Write(payload.Bytes()); err != nil {
		return fmt.Errorf("ico: write image data: %w", err)
	}
	return nil
}

// sizeByte maps a pixel dimension to the one-byte ICONDIRENTRY field,
// where 0 stands for 256.
func sizeByte(n int) uint8 {
	if n >= 256 {
		return 0
	}
	return uint8(n)
}
