// Package pipeline runs the icon batch conversion: one SVG in, a fixed
// set of PNG, ICO and ICNS assets out.
package pipeline

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"iconmill/internal/config"
	"iconmill/internal/icnsbundle"
	"iconmill/internal/ico"
	"iconmill/internal/paths"
	"iconmill/internal/raster"
	"iconmill/internal/svgrender"
)

// ErrMissingSource marks a run aborted because the source SVG does not
// exist. Nothing is written in that case.
var ErrMissingSource = errors.New("source svg not found")

// CanonicalSize is the side length of the intermediate raster the
// bundles are built from.
const CanonicalSize = 512

// icoSizes are the frame sizes packed into icon.ico.
var icoSizes = []int{16, 24, 32, 48, 64, 128, 256}

// Target names one PNG output and its exact pixel dimensions.
type Target struct {
	Name          string
	Width, Height int
}

// baseTargets are the application icon PNGs, icon.png first so the
// canonical raster is always written before anything else.
var baseTargets = []Target{
	{"icon.png", CanonicalSize, CanonicalSize},
	{"32x32.png", 32, 32},
	{"128x128.png", 128, 128},
	{"128x128@2x.png", 256, 256},
}

// storeTargets are the Windows store tile PNGs.
var storeTargets = []Target{
	{"Square30x30Logo.png", 30, 30},
	{"Square44x44Logo.png", 44, 44},
	{"Square71x71Logo.png", 71, 71},
	{"Square89x89Logo.png", 89, 89},
	{"Square107x107Logo.png", 107, 107},
	{"Square142x142Logo.png", 142, 142},
	{"Square150x150Logo.png", 150, 150},
	{"Square284x284Logo.png", 284, 284},
	{"Square310x310Logo.png", 310, 310},
	{"StoreLogo.png", 50, 50},
}

// Output records one file written during a run.
type Output struct {
	Name          string
	Width, Height int
	Path          string
}

// Warning is a non-fatal bundle failure. The run still succeeds; the
// caller decides how loudly to report it.
type Warning struct {
	Bundle string // "icns" or "ico"
	Err    error
}

func (w Warning) Error() string { return fmt.Sprintf("could not create %s bundle: %v", w.Bundle, w.Err) }

func (w Warning) Unwrap() error { return w.Err }

// Report summarizes one conversion run.
type Report struct {
	Source   string
	Outputs  []Output
	Warnings []Warning
	Duration time.Duration
}

// Targets returns the full PNG output table for cfg: base icons, store
// tiles unless disabled, then any configured extra square sizes. Extra
// sizes whose NxN.png name collides with an existing target are skipped.
func Targets(cfg config.Config) []Target {
	out := make([]Target, 0, len(baseTargets)+len(storeTargets)+len(cfg.ExtraSizes))
	out = append(out, baseTargets...)
	if cfg.WantStoreTiles() {
		out = append(out, storeTargets...)
	}
	seen := make(map[string]bool, len(out))
	for _, t := range out {
		seen[t.Name] = true
	}
	for _, s := range cfg.ExtraSizes {
		name := fmt.Sprintf("%dx%d.png", s, s)
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, Target{name, s, s})
	}
	return out
}

// Run converts the SVG at sourcePath into every configured output under
// outDir. All PNGs are rasterized directly from the SVG at their exact
// size and written before bundle construction starts; the two bundles
// are then built best-effort from the 512×512 canonical raster, with
// failures collected as warnings rather than aborting the run.
func Run(sourcePath, outDir string, cfg config.Config) (*Report, error) {
	start := time.Now()

	if _, err := os.Stat(sourcePath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingSource, sourcePath)
	}

	icon, err := svgrender.Load(sourcePath)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outDir, paths.DirPerm); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	rep := &Report{Source: sourcePath}

	var canonical image.Image
	for _, t := range Targets(cfg) {
		img := icon.Render(t.Width, t.Height)
		path := filepath.Join(outDir, t.Name)
		if err := raster.WritePNG(path, img); err != nil {
			return rep, err
		}
		rep.Outputs = append(rep.Outputs, Output{t.Name, t.Width, t.Height, path})
		if t.Name == "icon.png" {
			canonical = img
		}
	}

	icnsPath := filepath.Join(outDir, "icon.icns")
	if err := icnsbundle.Build(canonical, icnsPath); err != nil {
		rep.Warnings = append(rep.Warnings, Warning{"icns", err})
	} else {
		rep.Outputs = append(rep.Outputs, Output{"icon.icns", CanonicalSize, CanonicalSize, icnsPath})
	}

	icoPath := filepath.Join(outDir, "icon.ico")
	if err := writeICO(canonical, icoPath); err != nil {
		rep.Warnings = append(rep.Warnings, Warning{"ico", err})
	} else {
		rep.Outputs = append(rep.Outputs, Output{"icon.ico", icoSizes[len(icoSizes)-1], icoSizes[len(icoSizes)-1], icoPath})
	}

	rep.Duration = time.Since(start)
	return rep, nil
}

// writeICO packs resized copies of the canonical raster into a
// multi-resolution ICO file.
func writeICO(canonical image.Image, path string) error {
	images := make([]image.Image, len(icoSizes))
	for i, s := range icoSizes {
		images[i] = raster.Scale(canonical, s, s)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := ico.EncodeAll(f, images); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
