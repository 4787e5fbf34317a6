// Package screenshot writes rendered frames to PNG files.
package screenshot

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// Writer saves frames as timestamped PNG files in Dir.
type Writer struct {
	Dir    string
	Prefix string

	now func() time.Time
}

// New creates a writer. An empty dir writes to the working directory.
func New(dir, prefix string) *Writer {
	return &Writer{Dir: dir, Prefix: prefix, now: time.Now}
}

// NextPath returns the file the next capture will be written to. A numeric
// suffix is added when several captures land in the same second.
func (w *Writer) NextPath() string {
	base := fmt.Sprintf("%s_%s", w.Prefix, w.now().Format("2006-01-02_15-04-05"))
	path := filepath.Join(w.Dir, base+".png")
	for i := 1; fileExists(path); i++ {
		path = filepath.Join(w.Dir, fmt.Sprintf("%s_%d.png", base, i))
	}
	return path
}

// SaveBottomUp writes RGBA pixels read back from the framebuffer, whose
// first row is the bottom of the image.
func (w *Writer) SaveBottomUp(pixels []byte, width, height int) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		copy(img.Pix[y*img.Stride:y*img.Stride+rowSize], pixels[src:src+rowSize])
	}
	return w.Save(img)
}

// Save writes img and returns the path it was written to.
func (w *Writer) Save(img image.Image) (string, error) {
	if w.Dir != "" {
		if err := os.MkdirAll(w.Dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	path := w.NextPath()
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return path, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
