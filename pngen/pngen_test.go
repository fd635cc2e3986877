package pngen

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		width  int
		height int
	}{
		{1, 1},
		{1, 64},
		{64, 1},
		{3, 7},
		{16, 16},
		{64, 64},
	}
	for _, tt := range tests {
		t.Run(dims(tt.width, tt.height), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, tt.width, tt.height); err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			img, err := png.Decode(bytes.NewReader(buf.Bytes()))
			if err != nil {
				t.Fatalf("png.Decode() error = %v", err)
			}
			bounds := img.Bounds()
			if bounds.Dx() != tt.width || bounds.Dy() != tt.height {
				t.Fatalf("decoded dimensions = %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), tt.width, tt.height)
			}
			for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
				for x := bounds.Min.X; x < bounds.Max.X; x++ {
					r, g, b, a := img.At(x, y).RGBA()
					if r != 0 || g != 0 || b != 0 || a != 0 {
						t.Fatalf("pixel (%d,%d) = (%d,%d,%d,%d), want transparent black", x, y, r, g, b, a)
					}
				}
			}
		})
	}
}

func TestEncodeStructure(t *testing.T) {
	const width, height = 5, 9
	var buf bytes.Buffer
	if err := Encode(&buf, width, height); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	b := buf.Bytes()

	if !bytes.Equal(b[:8], []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}) {
		t.Errorf("signature = % x, want PNG signature", b[:8])
	}

	chunks := parseChunks(t, b[8:])
	wantOrder := []string{"IHDR", "IDAT", "IEND"}
	if len(chunks) != len(wantOrder) {
		t.Fatalf("got %d chunks, want %d", len(chunks), len(wantOrder))
	}
	for i, c := range chunks {
		if c.typ != wantOrder[i] {
			t.Errorf("chunk %d type = %s, want %s", i, c.typ, wantOrder[i])
		}
		crc := crc32.NewIEEE()
		crc.Write([]byte(c.typ))
		crc.Write(c.data)
		if crc.Sum32() != c.crc {
			t.Errorf("chunk %s CRC = %08x, want %08x", c.typ, c.crc, crc.Sum32())
		}
	}

	ihdr := chunks[0].data
	if len(ihdr) != 13 {
		t.Fatalf("IHDR data length = %d, want 13", len(ihdr))
	}
	if got := binary.BigEndian.Uint32(ihdr[0:4]); got != width {
		t.Errorf("IHDR width = %d, want %d", got, width)
	}
	if got := binary.BigEndian.Uint32(ihdr[4:8]); got != height {
		t.Errorf("IHDR height = %d, want %d", got, height)
	}
	if ihdr[8] != 8 {
		t.Errorf("IHDR bit depth = %d, want 8", ihdr[8])
	}
	if ihdr[9] != 6 {
		t.Errorf("IHDR color type = %d, want 6", ihdr[9])
	}
	if len(chunks[2].data) != 0 {
		t.Errorf("IEND data length = %d, want 0", len(chunks[2].data))
	}
}

func TestEncodeIdempotent(t *testing.T) {
	var a, b bytes.Buffer
	if err := Encode(&a, 32, 24); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if err := Encode(&b, 32, 24); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("two encodings of the same dimensions are not byte-identical")
	}
}

func TestEncodeInvalidDimensions(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
	}{
		{"zero width", 0, 10},
		{"zero height", 10, 0},
		{"negative width", -1, 10},
		{"negative height", 10, -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, tt.width, tt.height); err == nil {
				t.Errorf("Encode(%d, %d) expected error, got nil", tt.width, tt.height)
			}
		})
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "icon.png")
	if err := WriteFile(path, 12, 8); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open written file: %v", err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("png.DecodeConfig() error = %v", err)
	}
	if cfg.Width != 12 || cfg.Height != 8 {
		t.Errorf("decoded config = %dx%d, want 12x8", cfg.Width, cfg.Height)
	}
}

func TestWriteFileMissingParent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "no-such-dir", "icon.png")
	if err := WriteFile(path, 4, 4); err == nil {
		t.Error("WriteFile() to missing parent directory expected error, got nil")
	}
}

func TestWriteFileOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "icon.png")
	if err := os.WriteFile(path, []byte("not a png"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(path, 4, 4); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := png.Decode(bytes.NewReader(b)); err != nil {
		t.Errorf("overwritten file does not decode as PNG: %v", err)
	}
}

type chunk struct {
	typ  string
	data []byte
	crc  uint32
}

func parseChunks(t *testing.T, b []byte) []chunk {
	t.Helper()
	var chunks []chunk
	for len(b) > 0 {
		if len(b) < 12 {
			t.Fatalf("truncated chunk: %d trailing bytes", len(b))
		}
		length := binary.BigEndian.Uint32(b[:4])
		if int(length)+12 > len(b) {
			t.Fatalf("chunk length %d exceeds remaining %d bytes", length, len(b)-12)
		}
		chunks = append(chunks, chunk{
			typ:  string(b[4:8]),
			data: b[8 : 8+length],
			crc:  binary.BigEndian.Uint32(b[8+length : 12+length]),
		})
		b = b[12+length:]
	}
	return chunks
}

func dims(w, h int) string {
	return fmt.Sprintf("%dx%d", w, h)
}
