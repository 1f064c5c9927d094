package raster

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func gradient(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, color.RGBA{uint8(x * 255 / size), uint8(y * 255 / size), 128, 255})
		}
	}
	return img
}

func TestScaleExactDimensions(t *testing.T) {
	src := gradient(512)
	tests := []struct{ w, h int }{
		{16, 16}, {24, 24}, {256, 256}, {30, 44},
	}
	for _, tt := range tests {
		got := Scale(src, tt.w, tt.h)
		b := got.Bounds()
		if b.Dx() != tt.w || b.Dy() != tt.h {
			t.Errorf("Scale to %dx%d: bounds = %dx%d", tt.w, tt.h, b.Dx(), b.Dy())
		}
	}
}

func TestScaleUpscales(t *testing.T) {
	src := gradient(64)
	got := Scale(src, 512, 512)
	if got.Bounds().Dx() != 512 {
		t.Errorf("bounds = %v", got.Bounds())
	}
}

func TestWritePNGRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	if err := WritePNG(path, gradient(32)); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	if cfg.Width != 32 || cfg.Height != 32 {
		t.Errorf("decoded size = %dx%d, want 32x32", cfg.Width, cfg.Height)
	}
}

func TestWritePNGBadDir(t *testing.T) {
	err := WritePNG(filepath.Join(t.TempDir(), "missing", "out.png"), gradient(8))
	if err == nil {
		t.Fatal("expected error for nonexistent parent directory")
	}
}
