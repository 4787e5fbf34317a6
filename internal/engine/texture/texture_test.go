package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

var (
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// tgaHeader builds an 18-byte TGA header.
func tgaHeader(imageType byte, width, height int, bpp byte, topToBottom bool) []byte {
	h := make([]byte, tgaHeaderSize)
	h[2] = imageType
	h[12], h[13] = byte(width), byte(width>>8)
	h[14], h[15] = byte(height), byte(height>>8)
	h[16] = bpp
	if topToBottom {
		h[17] = 0x20
	}
	return h
}

func bgr(c color.RGBA) []byte {
	return []byte{c.B, c.G, c.R}
}

func TestDecodeTGA_Uncompressed(t *testing.T) {
	// Bottom-up 2x2: file rows are bottom row first.
	data := tgaHeader(TGATypeTrueColor, 2, 2, 24, false)
	data = append(data, bgr(red)...)
	data = append(data, bgr(green)...)
	data = append(data, bgr(blue)...)
	data = append(data, bgr(white)...)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA failed: %v", err)
	}

	checks := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 1, red},
		{1, 1, green},
		{0, 0, blue},
		{1, 0, white},
	}
	for _, c := range checks {
		if got := img.RGBAAt(c.x, c.y); got != c.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestDecodeTGA_RLE32(t *testing.T) {
	data := tgaHeader(TGATypeTrueColorRLE, 3, 1, 32, true)
	// Run of 2 half-transparent red pixels, then 1 raw blue pixel.
	data = append(data, 0x81, 0, 0, 255, 128)
	data = append(data, 0x00, 255, 0, 0, 255)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA failed: %v", err)
	}
	halfRed := color.RGBA{R: 255, A: 128}
	if img.RGBAAt(0, 0) != halfRed || img.RGBAAt(1, 0) != halfRed {
		t.Errorf("run pixels = %v %v", img.RGBAAt(0, 0), img.RGBAAt(1, 0))
	}
	if img.RGBAAt(2, 0) != blue {
		t.Errorf("raw pixel = %v", img.RGBAAt(2, 0))
	}
}

func TestDecodeTGA_Gray(t *testing.T) {
	data := tgaHeader(TGATypeGray, 2, 1, 8, true)
	data = append(data, 0, 200)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA failed: %v", err)
	}
	if got := img.RGBAAt(1, 0); got != (color.RGBA{R: 200, G: 200, B: 200, A: 255}) {
		t.Errorf("gray pixel = %v", got)
	}
}

func TestDecodeTGA_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		err  error
	}{
		{"short header", []byte{0, 0, 2}, ErrTGATruncated},
		{"truncated pixels", append(tgaHeader(TGATypeTrueColor, 2, 2, 24, false), 1, 2, 3), ErrTGATruncated},
		{"color mapped", func() []byte { h := tgaHeader(TGATypeTrueColor, 1, 1, 24, false); h[1] = 1; return h }(), ErrTGAUnsupported},
		{"type 1", tgaHeader(1, 1, 1, 8, false), ErrTGAUnsupported},
		{"16 bit", tgaHeader(TGATypeTrueColor, 1, 1, 16, false), ErrTGAUnsupported},
		{"zero size", tgaHeader(TGATypeTrueColor, 0, 0, 24, false), ErrEmptyImage},
		{"zero height", tgaHeader(TGATypeTrueColorRLE, 4, 0, 32, false), ErrEmptyImage},
		{"huge raw header", append(tgaHeader(TGATypeTrueColor, 65535, 65535, 32, false), 1, 2, 3, 4), ErrTGATruncated},
		{"huge rle header", append(tgaHeader(TGATypeTrueColorRLE, 65535, 65535, 32, false), 0xFF, 1, 2, 3, 4), ErrTGATruncated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTGA(tt.data)
			if !errors.Is(err, tt.err) {
				t.Errorf("expected %v, got %v", tt.err, err)
			}
		})
	}
}

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 2))
	img.SetRGBA(0, 0, red)
	img.SetRGBA(0, 1, blue)
	return img
}

func TestDecode_Sniffed(t *testing.T) {
	var pngBuf, bmpBuf bytes.Buffer
	if err := png.Encode(&pngBuf, testImage()); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	if err := bmp.Encode(&bmpBuf, testImage()); err != nil {
		t.Fatalf("bmp encode: %v", err)
	}

	for name, data := range map[string][]byte{"a.png": pngBuf.Bytes(), "a.bmp": bmpBuf.Bytes()} {
		t.Run(name, func(t *testing.T) {
			img, err := Decode(data, name)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if img.RGBAAt(0, 0) != red || img.RGBAAt(0, 1) != blue {
				t.Errorf("unexpected pixels %v %v", img.RGBAAt(0, 0), img.RGBAAt(0, 1))
			}
		})
	}

	if _, err := Decode([]byte("not an image at all"), "x.dat"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestFlipVertical(t *testing.T) {
	img := testImage()
	FlipVertical(img)
	if img.RGBAAt(0, 0) != blue || img.RGBAAt(0, 1) != red {
		t.Errorf("flip failed: %v %v", img.RGBAAt(0, 0), img.RGBAAt(0, 1))
	}
}

func TestLoad(t *testing.T) {
	// Top-to-bottom TGA: red on top. After Load, row 0 is the bottom row.
	data := tgaHeader(TGATypeTrueColor, 1, 2, 24, true)
	data = append(data, bgr(red)...)
	data = append(data, bgr(blue)...)

	path := filepath.Join(t.TempDir(), "skin.TGA")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.RGBAAt(0, 0) != blue || img.RGBAAt(0, 1) != red {
		t.Errorf("unexpected pixels %v %v", img.RGBAAt(0, 0), img.RGBAAt(0, 1))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWhite(t *testing.T) {
	img := White()
	if img.Rect.Dx() != 1 || img.RGBAAt(0, 0) != white {
		t.Errorf("unexpected fallback image %v", img.RGBAAt(0, 0))
	}
}
