package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// captureGenerate swaps the generate runner for one that records the
// resolved config instead of writing files.
func captureGenerate(t *testing.T) *[]*GenerateConfig {
	t.Helper()
	orig := generateRunner
	t.Cleanup(func() { generateRunner = orig })
	var captured []*GenerateConfig
	generateRunner = func(ctx context.Context, cfg *GenerateConfig) error {
		captured = append(captured, cfg)
		return nil
	}
	return &captured
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestGenerate_Defaults(t *testing.T) {
	captured := captureGenerate(t)

	if _, err := execute(t, "generate"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(*captured) != 1 {
		t.Fatalf("runner called %d times", len(*captured))
	}
	cfg := (*captured)[0]
	if cfg.Out != "." {
		t.Errorf("out: got %q", cfg.Out)
	}
	if cfg.Formats != nil {
		t.Errorf("formats should default to nil (emitter picks both), got %v", cfg.Formats)
	}
	if cfg.DryRun || cfg.Force || cfg.Verbose {
		t.Errorf("boolean defaults: %+v", cfg)
	}
}

func TestGenerate_FlagOverrides(t *testing.T) {
	captured := captureGenerate(t)

	_, err := execute(t, "generate",
		"--out", "./dist",
		"--format", "json",
		"--title", "Internal Scraper",
		"--api-version", "2.0.0",
		"--server-url", "https://scraper.internal",
		"--dry-run",
		"--force",
	)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	cfg := (*captured)[0]
	if cfg.Out != "./dist" {
		t.Errorf("out: got %q", cfg.Out)
	}
	if !reflect.DeepEqual(cfg.Formats, []string{"json"}) {
		t.Errorf("formats: got %v", cfg.Formats)
	}
	if cfg.Title != "Internal Scraper" || cfg.APIVersion != "2.0.0" || cfg.ServerURL != "https://scraper.internal" {
		t.Errorf("metadata: %+v", cfg)
	}
	if !cfg.DryRun || !cfg.Force {
		t.Errorf("booleans: %+v", cfg)
	}
}

func TestGenerate_ConfigFileMerge(t *testing.T) {
	captured := captureGenerate(t)

	path := filepath.Join(t.TempDir(), "contract.yaml")
	content := strings.Join([]string{
		"out: ./from-config",
		"formats: json, yaml",
		"title: Configured Title",
		"apiVersion: 3.1.4",
		"serverUrl: https://config.example",
		"dryRun: true",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := execute(t, "--config", path, "generate"); err != nil {
		t.Fatalf("execute: %v", err)
	}

	cfg := (*captured)[0]
	if cfg.Out != "./from-config" {
		t.Errorf("out: got %q", cfg.Out)
	}
	if !reflect.DeepEqual(cfg.Formats, []string{"json", "yaml"}) {
		t.Errorf("formats: got %v", cfg.Formats)
	}
	if cfg.Title != "Configured Title" || cfg.APIVersion != "3.1.4" || cfg.ServerURL != "https://config.example" {
		t.Errorf("metadata: %+v", cfg)
	}
	if !cfg.DryRun {
		t.Errorf("dryRun should come from the config file")
	}
	if cfg.ConfigPath != path {
		t.Errorf("config path: got %q", cfg.ConfigPath)
	}
}

func TestGenerate_FlagsBeatConfigFile(t *testing.T) {
	captured := captureGenerate(t)

	path := filepath.Join(t.TempDir(), "contract.yaml")
	if err := os.WriteFile(path, []byte("out: ./from-config\ntitle: Configured Title\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := execute(t, "--config", path, "generate", "--out", "./from-flag"); err != nil {
		t.Fatalf("execute: %v", err)
	}

	cfg := (*captured)[0]
	if cfg.Out != "./from-flag" {
		t.Errorf("flag should override config: got %q", cfg.Out)
	}
	if cfg.Title != "Configured Title" {
		t.Errorf("untouched config value should survive: got %q", cfg.Title)
	}
}

func TestGenerate_UnknownConfigKey(t *testing.T) {
	captureGenerate(t)

	path := filepath.Join(t.TempDir(), "contract.yaml")
	if err := os.WriteFile(path, []byte("outputs: ./dist\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := execute(t, "--config", path, "generate")
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if !strings.Contains(err.Error(), `unknown field "outputs"`) {
		t.Fatalf("error should name the offending key: %v", err)
	}
}

func TestGenerate_MissingConfigFile(t *testing.T) {
	captureGenerate(t)

	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "generate")
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestGenerate_RejectsUnknownFormat(t *testing.T) {
	captureGenerate(t)

	_, err := execute(t, "generate", "--format", "toml")
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if !strings.Contains(err.Error(), `"toml"`) {
		t.Fatalf("error should name the format: %v", err)
	}
}

func TestGenerate_WritesDocument(t *testing.T) {
	dir := t.TempDir()

	if _, err := execute(t, "generate", "--out", dir); err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, name := range []string{"openapi.json", "openapi.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}

	// A second run without --force must refuse to clobber the outputs.
	_, err := execute(t, "generate", "--out", dir)
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error on overwrite, got %v", err)
	}
	if _, err := execute(t, "generate", "--out", dir, "--force"); err != nil {
		t.Fatalf("forced run: %v", err)
	}
}
