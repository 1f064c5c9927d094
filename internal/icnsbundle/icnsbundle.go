// Package icnsbundle builds macOS .icns containers from a single
// high-resolution raster.
//
// When the iconutil tool is available (macOS) it is used to compile a
// staged .iconset directory, matching what Xcode produces. Elsewhere
// the container is encoded in-process, so the output still exists on
// every platform.
package icnsbundle

import (
	"fmt"
	"image"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/jackmordaunt/icns/v3"

	"iconmill/internal/raster"
)

// iconsetSizes are the base point sizes staged for iconutil. Each size
// up to 256 also gets a @2x variant.
var iconsetSizes = []int{16, 32, 64, 128, 256, 512}

const maxRetinaBase = 256

// Build writes an .icns container to outPath, with every iconset size
// resized from src. The staging directory is removed on every return
// path.
func Build(src image.Image, outPath string) error {
	if _, err := exec.LookPath("iconutil"); err != nil {
		return buildFallback(src, outPath)
	}

	staging, err := os.MkdirTemp("", "iconmill-*.iconset")
	if err != nil {
		return fmt.Errorf("create iconset staging dir: %w", err)
	}
	defer os.RemoveAll(staging)

	if err := writeIconset(staging, src); err != nil {
		return err
	}

	cmd := exec.Command("iconutil", "-c", "icns", staging, "-o", outPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("iconutil: %w\n%s", err, out)
	}
	return nil
}

// writeIconset fills dir with the icon_NxN.png and icon_NxN@2x.png
// variants iconutil expects.
func writeIconset(dir string, src image.Image) error {
	for _, size := range iconsetSizes {
		name := filepath.Join(dir, fmt.Sprintf("icon_%dx%d.png", size, size))
		if err := raster.WritePNG(name, raster.Scale(src, size, size)); err != nil {
			return fmt.Errorf("stage iconset: %w", err)
		}
		if size <= maxRetinaBase {
			name = filepath.Join(dir, fmt.Sprintf("icon_%dx%d@2x.png", size, size))
			if err := raster.WritePNG(name, raster.Scale(src, size*2, size*2)); err != nil {
				return fmt.Errorf("stage iconset: %w", err)
			}
		}
	}
	return nil
}

// buildFallback encodes the container without iconutil.
func buildFallback(src image.Image, outPath string) error {
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	if err := icns.Encode(f, src); err != nil {
		f.Close()
		os.Remove(outPath)
		return fmt.Errorf("encode icns: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", outPath, err)
	}
	return nil
}
