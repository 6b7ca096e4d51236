// SPDX-License-Identifier: MPL-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	SetConfigDirOverride(t.TempDir())
	t.Cleanup(Reset)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Image != DefaultImage {
		t.Errorf("Image = %q, want %q", cfg.Image, DefaultImage)
	}
	if cfg.BuildDir != DefaultBuildDir {
		t.Errorf("BuildDir = %q, want %q", cfg.BuildDir, DefaultBuildDir)
	}
	if cfg.Manifest != DefaultManifest {
		t.Errorf("Manifest = %q, want %q", cfg.Manifest, DefaultManifest)
	}
	if cfg.CarTarget != DefaultCarTarget || cfg.FobTarget != DefaultFobTarget {
		t.Errorf("targets = %q/%q, want %q/%q", cfg.CarTarget, cfg.FobTarget, DefaultCarTarget, DefaultFobTarget)
	}
	if cfg.Engine != "" {
		t.Errorf("Engine = %q, want auto-detect (empty)", cfg.Engine)
	}
	if cfg.Verbose {
		t.Error("Verbose = true, want false by default")
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	content := `image = "ectf"
build_dir = "env"
car_target = "build_car"
engine = "podman"
verbose = true
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Image != "ectf" {
		t.Errorf("Image = %q, want ectf", cfg.Image)
	}
	if cfg.BuildDir != "env" {
		t.Errorf("BuildDir = %q, want env", cfg.BuildDir)
	}
	if cfg.CarTarget != "build_car" {
		t.Errorf("CarTarget = %q, want build_car", cfg.CarTarget)
	}
	if cfg.Engine != "podman" {
		t.Errorf("Engine = %q, want podman", cfg.Engine)
	}
	if !cfg.Verbose {
		t.Error("Verbose = false, want true")
	}
	// Unset keys keep their defaults.
	if cfg.FobTarget != DefaultFobTarget {
		t.Errorf("FobTarget = %q, want default %q", cfg.FobTarget, DefaultFobTarget)
	}
}

func TestLoad_MalformedConfigFile(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("image = [broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("Load() succeeded with a malformed config file")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	SetConfigDirOverride(t.TempDir())
	t.Cleanup(Reset)
	t.Setenv("FPBUILD_IMAGE", "envimage")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Image != "envimage" {
		t.Errorf("Image = %q, want the FPBUILD_IMAGE override", cfg.Image)
	}
}

func TestConfigDir_XDG(t *testing.T) {
	Reset()
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg", AppName) {
		t.Errorf("ConfigDir() = %q", dir)
	}
}
