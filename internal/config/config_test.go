package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestUnmarshalDefaults(t *testing.T) {
	var cfg Config
	if err := json.Unmarshal([]byte(`{}`), &cfg); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if cfg.History != HistorySQLite {
		t.Errorf("History = %q, want %q", cfg.History, HistorySQLite)
	}
	if !cfg.WantStoreTiles() {
		t.Error("WantStoreTiles() = false, want true by default")
	}
	if cfg.OutputDir != "" {
		t.Errorf("OutputDir = %q, want empty", cfg.OutputDir)
	}
}

func TestUnmarshalOverrides(t *testing.T) {
	data := []byte(`{
		"output_dir": "assets/icons",
		"store_tiles": false,
		"extra_sizes": [20, 40],
		"history": "file"
	}`)

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if cfg.OutputDir != "assets/icons" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.WantStoreTiles() {
		t.Error("WantStoreTiles() = true, want false")
	}
	if len(cfg.ExtraSizes) != 2 || cfg.ExtraSizes[0] != 20 || cfg.ExtraSizes[1] != 40 {
		t.Errorf("ExtraSizes = %v", cfg.ExtraSizes)
	}
	if cfg.History != HistoryFile {
		t.Errorf("History = %q, want %q", cfg.History, HistoryFile)
	}
}

func TestLoadExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	if err := os.WriteFile(path, []byte(`{"history": "off"}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.History != HistoryOff {
		t.Errorf("History = %q, want %q", cfg.History, HistoryOff)
	}
}

func TestLoadExplicitPathMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	if err := os.WriteFile(path, []byte(`{"history":`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for malformed config")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Errorf("error = %v, want parse error", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"sqlite", Config{History: HistorySQLite}, false},
		{"file", Config{History: HistoryFile}, false},
		{"off", Config{History: HistoryOff}, false},
		{"unknown backend", Config{History: "postgres"}, true},
		{"size zero", Config{History: HistoryOff, ExtraSizes: []int{0}}, true},
		{"size too large", Config{History: HistoryOff, ExtraSizes: []int{2048}}, true},
		{"sizes ok", Config{History: HistoryOff, ExtraSizes: []int{20, 512}}, false},
	}
	for _, tt := range tests {
		err := Validate(tt.cfg)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() error = %v, wantErr %t", tt.name, err, tt.wantErr)
		}
	}
}
