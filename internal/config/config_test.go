// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Validation.MaxProbeDepth != 4 {
		t.Errorf("MaxProbeDepth = %d, want 4", cfg.Validation.MaxProbeDepth)
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("ColorScheme = %q, want auto", cfg.UI.ColorScheme)
	}
	if cfg.UI.Verbose {
		t.Error("Verbose should default to false")
	}
}

func TestLoad_FromConfigDir(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
sources: ["core.phi", "finance.phi"]
validation: {
	max_probe_depth: 8
	trail: true
}
ui: {
	color_scheme: "dark"
}
`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Sources) != 2 || cfg.Sources[0] != "core.phi" {
		t.Errorf("unexpected sources: %v", cfg.Sources)
	}
	if cfg.Validation.MaxProbeDepth != 8 || !cfg.Validation.Trail {
		t.Errorf("unexpected validation config: %+v", cfg.Validation)
	}
	if cfg.UI.ColorScheme != ColorSchemeDark {
		t.Errorf("ColorScheme = %q, want dark", cfg.UI.ColorScheme)
	}
	// Unset fields keep their defaults.
	if cfg.UI.Verbose {
		t.Error("Verbose should remain default false")
	}
}

func TestLoad_ExplicitFilePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.cue")
	if err := os.WriteFile(path, []byte(`validation: {max_probe_depth: 2}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Validation.MaxProbeDepth != 2 {
		t.Errorf("MaxProbeDepth = %d, want 2", cfg.Validation.MaxProbeDepth)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := NewProvider().Load(context.Background(), LoadOptions{
		ConfigFilePath: filepath.Join(t.TempDir(), "nope.cue"),
	})
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
	if !strings.Contains(err.Error(), "load configuration") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_SchemaViolation(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `ui: {color_scheme: "neon"}`)

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err == nil {
		t.Fatal("expected schema violation error")
	}
}

func TestLoad_OutOfRangeProbeDepth(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `validation: {max_probe_depth: 500}`)

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err == nil {
		t.Fatal("expected range error")
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProvider().Load(ctx, LoadOptions{ConfigDirPath: t.TempDir()})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestGenerateCUE_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	orig := DefaultConfig()
	orig.Sources = []string{"core.phi"}
	orig.Validation.MaxProbeDepth = 6
	orig.UI.ColorScheme = ColorSchemeLight

	writeConfig(t, dir, GenerateCUE(orig))

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Validation.MaxProbeDepth != 6 || cfg.UI.ColorScheme != ColorSchemeLight {
		t.Errorf("round trip lost values: %+v", cfg)
	}
	if len(cfg.Sources) != 1 || cfg.Sources[0] != "core.phi" {
		t.Errorf("round trip lost sources: %v", cfg.Sources)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	cfg.UI.ColorScheme = "neon"
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidColorScheme) {
		t.Errorf("expected ErrInvalidColorScheme, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Validation.MaxProbeDepth = 0
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidProbeDepth) {
		t.Errorf("expected ErrInvalidProbeDepth, got %v", err)
	}
}

func TestConfigDir_Override(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir: %v", err)
	}
	if got != dir {
		t.Errorf("ConfigDir() = %q, want %q", got, dir)
	}
}
