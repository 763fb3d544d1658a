package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/flc-lang/flc/internal/config"
)

func TestLoadParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	content := "include:\n  - ./lib\n  - ./vendor\nmax_depth: 2048\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Include) != 2 || cfg.Include[0] != "./lib" || cfg.Include[1] != "./vendor" {
		t.Fatalf("unexpected Include: %v", cfg.Include)
	}
	if cfg.MaxDepth != 2048 {
		t.Fatalf("expected MaxDepth 2048, got %d", cfg.MaxDepth)
	}
}

func TestLoadDefaultMissingFileReturnsDefault(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.LoadDefault(dir)
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	if cfg.MaxDepth != config.DefaultMaxDepth {
		t.Fatalf("expected default MaxDepth %d, got %d", config.DefaultMaxDepth, cfg.MaxDepth)
	}
	if len(cfg.Include) != 0 {
		t.Fatalf("expected no include paths by default, got %v", cfg.Include)
	}
}

func TestOverridePrefersCLIFlags(t *testing.T) {
	base := &config.Config{Include: []string{"./lib"}, MaxDepth: 1000}

	merged := base.Override([]string{"./extra"}, 5000)
	if merged.MaxDepth != 5000 {
		t.Fatalf("expected CLI max-depth to win, got %d", merged.MaxDepth)
	}
	if len(merged.Include) != 2 {
		t.Fatalf("expected file and CLI include paths combined, got %v", merged.Include)
	}

	untouched := base.Override(nil, 0)
	if untouched.MaxDepth != 1000 || len(untouched.Include) != 1 {
		t.Fatalf("expected omitted flags to keep file values, got %+v", untouched)
	}
}
