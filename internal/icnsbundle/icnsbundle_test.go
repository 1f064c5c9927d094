package icnsbundle

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func testImage(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 90, 255})
		}
	}
	return img
}

func TestWriteIconset(t *testing.T) {
	dir := t.TempDir()
	if err := writeIconset(dir, testImage(512)); err != nil {
		t.Fatalf("writeIconset: %v", err)
	}

	wantSizes := map[string]int{
		"icon_16x16.png":      16,
		"icon_16x16@2x.png":   32,
		"icon_32x32.png":      32,
		"icon_32x32@2x.png":   64,
		"icon_64x64.png":      64,
		"icon_64x64@2x.png":   128,
		"icon_128x128.png":    128,
		"icon_128x128@2x.png": 256,
		"icon_256x256.png":    256,
		"icon_256x256@2x.png": 512,
		"icon_512x512.png":    512,
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != len(wantSizes) {
		t.Errorf("staged %d files, want %d", len(entries), len(wantSizes))
	}

	for name, size := range wantSizes {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		cfg, err := png.DecodeConfig(f)
		f.Close()
		if err != nil {
			t.Errorf("%s: decode: %v", name, err)
			continue
		}
		if cfg.Width != size || cfg.Height != size {
			t.Errorf("%s = %dx%d, want %dx%d", name, cfg.Width, cfg.Height, size, size)
		}
	}
}

func TestBuildProducesICNS(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "icon.icns")
	if err := Build(testImage(512), outPath); err != nil {
		t.Fatalf("Build: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) < 8 || string(data[:4]) != "icns" {
		t.Errorf("output does not start with icns magic, got %q", data[:min(4, len(data))])
	}
}

func TestBuildCleansStaging(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("TMPDIR redirection is unix-only")
	}
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)

	outPath := filepath.Join(t.TempDir(), "icon.icns")
	if err := Build(testImage(512), outPath); err != nil {
		t.Fatalf("Build: %v", err)
	}

	leftover, err := filepath.Glob(filepath.Join(tmp, "*.iconset"))
	if err != nil {
		t.Fatal(err)
	}
	if len(leftover) != 0 {
		t.Errorf("staging dirs left behind: %v", leftover)
	}
}
