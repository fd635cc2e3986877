// Package pngen generates minimal valid PNG files (8-bit RGBA, fully
// transparent black) without depending on image/png for encoding.
package pngen

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"os"

	"github.com/k1LoW/errors"
)

// PNG signature as per the PNG specification.
var signature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

const (
	bitDepth       = 8
	colorTypeRGBA  = 6 // truecolor with alpha
	bytesPerPixel  = 4
	ihdrDataLength = 13
)

// Encode writes a single-frame 8-bit RGBA PNG of the given dimensions to w.
// Every pixel is transparent black (0,0,0,0).
// The output is IHDR, IDAT, IEND in order, with the IDAT payload zlib-compressed
// at the default level, so encoding the same dimensions twice is byte-identical.
func Encode(w io.Writer, width, height int) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if width < 1 || height < 1 {
		return fmt.Errorf("invalid dimensions %dx%d: width and height must be positive", width, height)
	}
	if _, err := w.Write(signature); err != nil {
		return err
	}

	ihdr := make([]byte, ihdrDataLength)
	binary.BigEndian.PutUint32(ihdr[0:4], uint32(width))
	binary.BigEndian.PutUint32(ihdr[4:8], uint32(height))
	ihdr[8] = bitDepth
	ihdr[9] = colorTypeRGBA
	ihdr[10] = 0 // compression method
	ihdr[11] = 0 // filter method
	ihdr[12] = 0 // interlace method
	if err := writeChunk(w, "IHDR", ihdr); err != nil {
		return err
	}

	// Each scanline is a filter-type byte (0, no filtering) followed by
	// width RGBA pixels. All zero.
	raw := make([]byte, height*(1+bytesPerPixel*width))
	var comp bytes.Buffer
	zw := zlib.NewWriter(&comp)
	if _, err := zw.Write(raw); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}
	if err := writeChunk(w, "IDAT", comp.Bytes()); err != nil {
		return err
	}

	return writeChunk(w, "IEND", nil)
}

// WriteFile encodes a transparent width x height PNG and writes it to path,
// creating or overwriting the file.
func WriteFile(path string, width, height int) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	var buf bytes.Buffer
	if err := Encode(&buf, width, height); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if _, err := f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// writeChunk emits one PNG chunk: 4-byte big-endian data length, 4-byte ASCII
// type tag, data, then CRC-32 over type+data.
func writeChunk(w io.Writer, typ string, data []byte) error {
	var header [8]byte
	binary.BigEndian.PutUint32(header[:4], uint32(len(data)))
	copy(header[4:], typ)
	crc := crc32.NewIEEE()
	_, _ = crc.Write(header[4:8])
	_, _ = crc.Write(data)
	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	var footer [4]byte
	binary.BigEndian.PutUint32(footer[:], crc.Sum32())
	if _, err := w.Write(footer[:]); err != nil {
		return err
	}
	return nil
}
