package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"iconmill/internal/config"
	"iconmill/internal/genlog"
	"iconmill/internal/paths"
	"iconmill/internal/pipeline"
)

func generateCmd(sourcePath, outDir, configPath string) {
	cfg, err := config.Load(configPath)
	if err != nil {
		fatal("%v", err)
	}

	sourcePath, outDir = resolvePaths(sourcePath, outDir, cfg)

	fmt.Printf("Converting %s to icon assets...\n", sourcePath)

	rep, err := pipeline.Run(sourcePath, outDir, cfg)
	if err != nil {
		if errors.Is(err, pipeline.ErrMissingSource) {
			fatal("SVG file not found at %s", sourcePath)
		}
		fatal("%v", err)
	}

	for _, out := range rep.Outputs {
		fmt.Printf("  Created: %s (%dx%d)\n", out.Name, out.Width, out.Height)
	}
	for _, w := range rep.Warnings {
		fmt.Fprintf(os.Stderr, "  Warning: %v\n", w)
	}

	logRun(cfg, rep)

	fmt.Printf("\nIcon generation complete.\nIcons saved to: %s\n", outDir)
}

// resolvePaths fills in the source and output locations.
// Source priority: --source > icons/app-icon.svg next to the binary.
// Output priority: --out > config output_dir > directory of the source.
func resolvePaths(sourcePath, outDir string, cfg config.Config) (string, string) {
	if sourcePath == "" {
		sourcePath = filepath.Join(paths.DefaultIconsDir(), paths.SourceFileName)
	}
	if outDir == "" {
		outDir = cfg.OutputDir
	}
	if outDir == "" {
		outDir = filepath.Dir(sourcePath)
	}
	return sourcePath, outDir
}

// logRun records the run in the history store. Best-effort: failures go
// to stderr and never change the exit status.
func logRun(cfg config.Config, rep *pipeline.Report) {
	store, err := genlog.Open(cfg.History, paths.DataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "genlog: %v\n", err)
		return
	}
	if store == nil {
		return
	}
	defer closeStore(store)

	err = store.Log(genlog.Entry{
		Time:     time.Now(),
		Source:   rep.Source,
		Outputs:  len(rep.Outputs),
		Warnings: len(rep.Warnings),
		Duration: rep.Duration,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "genlog: %v\n", err)
	}
}

func historyCmd(args []string, configPath string) {
	days := 0
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			fatal("days must be a non-negative integer")
		}
		days = n
	}

	store := openStore(configPath)
	defer closeStore(store)

	entries, err := store.Entries(days)
	if err != nil {
		fatal("%v", err)
	}
	if len(entries) == 0 {
		fmt.Println("No generation runs recorded.")
		return
	}

	for _, e := range entries {
		line := fmt.Sprintf("%s  %s  outputs=%d  duration=%s",
			e.Time.Format("2006-01-02 15:04:05"), e.Source, e.Outputs,
			e.Duration.Round(time.Millisecond))
		if e.Warnings > 0 {
			line += fmt.Sprintf("  warnings=%d", e.Warnings)
		}
		fmt.Println(line)
	}
}

func cleanCmd(args []string, configPath string) {
	if len(args) < 1 {
		fatal("usage: iconmill clean <days|all>")
	}

	store := openStore(configPath)
	defer closeStore(store)

	if args[0] == "all" {
		if err := store.Clear(); err != nil {
			fatal("%v", err)
		}
		fmt.Println("History cleared.")
		return
	}

	days, err := strconv.Atoi(args[0])
	if err != nil || days <= 0 {
		fatal("days must be a positive integer (or \"all\")")
	}

	removed, err := store.Clean(days)
	if err != nil {
		fatal("%v", err)
	}
	fmt.Printf("Removed %d entries older than %d days.\n", removed, days)
}

func openStore(configPath string) genlog.Store {
	cfg, err := config.Load(configPath)
	if err != nil {
		fatal("%v", err)
	}
	if cfg.History == config.HistoryOff {
		fatal("history is disabled in config")
	}
	store, err := genlog.Open(cfg.History, paths.DataDir())
	if err != nil {
		fatal("%v", err)
	}
	return store
}

func closeStore(store genlog.Store) {
	if c, ok := store.(*genlog.SQLiteStore); ok {
		c.Close()
	}
}
