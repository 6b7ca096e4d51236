// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name, used for the config directory.
	AppName = "fpbuild"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"

	// DefaultImage is the default environment image repository.
	DefaultImage = "fpb"
	// DefaultBuildDir is the design subdirectory holding the build context.
	DefaultBuildDir = "docker_env"
	// DefaultManifest is the default build manifest filename.
	DefaultManifest = "build_image.Dockerfile"
	// DefaultCarTarget is the make target for the car role.
	DefaultCarTarget = "car"
	// DefaultFobTarget is the make target for the fob role.
	DefaultFobTarget = "fob"
	// DefaultCarInputDir is the default car source directory within a design.
	DefaultCarInputDir = "car"
	// DefaultFobInputDir is the default fob source directory within a design.
	DefaultFobInputDir = "fob"
)

// Config holds the resolved build defaults.
type Config struct {
	// Image is the environment image repository.
	Image string `mapstructure:"image"`
	// BuildDir is the design subdirectory used as the build context.
	BuildDir string `mapstructure:"build_dir"`
	// Manifest is the build manifest filename inside BuildDir.
	Manifest string `mapstructure:"manifest"`
	// CarTarget is the make target for car builds.
	CarTarget string `mapstructure:"car_target"`
	// FobTarget is the make target for fob builds.
	FobTarget string `mapstructure:"fob_target"`
	// CarInputDir is the default car source directory within a design.
	CarInputDir string `mapstructure:"car_input_dir"`
	// FobInputDir is the default fob source directory within a design.
	FobInputDir string `mapstructure:"fob_input_dir"`
	// Engine is the preferred container engine ("docker" or "podman").
	// Empty means auto-detect.
	Engine string `mapstructure:"engine"`
	// Verbose enables verbose logging by default.
	Verbose bool `mapstructure:"verbose"`
}

// configDirOverride allows tests to override the config directory.
var configDirOverride string

// Reset clears test overrides. Call from test cleanup to restore defaults.
func Reset() {
	configDirOverride = ""
}

// SetConfigDirOverride sets a custom config directory path.
// This is primarily intended for testing.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// ConfigDir returns the fpbuild configuration directory, following
// $XDG_CONFIG_HOME (defaulting to ~/.config).
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}

	return filepath.Join(configDir, AppName), nil
}

// Load reads the config file (if present) and FPBUILD_* environment
// variables, falling back to the documented defaults for anything unset.
// A missing config file is not an error.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType(ConfigFileExt)

	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	v.AddConfigPath(dir)

	v.SetEnvPrefix("FPBUILD")
	v.AutomaticEnv()

	v.SetDefault("image", DefaultImage)
	v.SetDefault("build_dir", DefaultBuildDir)
	v.SetDefault("manifest", DefaultManifest)
	v.SetDefault("car_target", DefaultCarTarget)
	v.SetDefault("fob_target", DefaultFobTarget)
	v.SetDefault("car_input_dir", DefaultCarInputDir)
	v.SetDefault("fob_input_dir", DefaultFobInputDir)
	v.SetDefault("engine", "")
	v.SetDefault("verbose", false)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
