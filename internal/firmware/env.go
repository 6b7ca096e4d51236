// SPDX-License-Identifier: MPL-2.0

package firmware

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fpbuild/internal/container"
)

// EnvironmentSpec identifies a reproducible build environment derived from a
// design's build directory. The resolved tag Image:Name is unique per
// (design, name) pair and safe to rebuild with identical inputs.
type EnvironmentSpec struct {
	// Design is the path to the design repository on the host.
	Design string
	// Name is the environment name, used as the image tag suffix.
	Name string
	// Image is the image repository (e.g., "fpb").
	Image string
	// BuildDir is the subdirectory of Design holding the build context.
	BuildDir string
	// Manifest is the build manifest filename inside BuildDir.
	Manifest string
}

// Tag returns the full image tag for the environment.
func (s EnvironmentSpec) Tag() string {
	return fmt.Sprintf("%s:%s", s.Image, s.Name)
}

// validate checks the spec's paths before any engine call is made.
func (s EnvironmentSpec) validate() error {
	if s.Name == "" || s.Image == "" {
		return &ConfigError{Reason: "environment image and name are required"}
	}

	buildDir := filepath.Join(s.Design, s.BuildDir)
	if info, err := os.Stat(buildDir); err != nil || !info.IsDir() {
		return &ConfigError{Path: buildDir, Reason: "build directory not found", Cause: err}
	}

	manifest := filepath.Join(buildDir, s.Manifest)
	if _, err := os.Stat(manifest); err != nil {
		return &ConfigError{Path: manifest, Reason: "build manifest not found", Cause: err}
	}

	return nil
}

// BuildEnvironment builds the tagged environment image from the design's
// build directory. The image is a process-wide side effect shared by all
// subsequent device builds that reference the tag; rebuilding with identical
// inputs is safe to repeat.
//
// On success the returned Result carries the full build log as stdout and an
// empty stderr. On failure the partial log received so far is logged and an
// *EnvBuildError carrying it is returned.
func BuildEnvironment(ctx context.Context, engine container.Engine, spec EnvironmentSpec) (Result, error) {
	if err := spec.validate(); err != nil {
		return Result{}, err
	}

	tag := spec.Tag()
	slog.Info("building environment image", "tag", tag, "design", spec.Design)

	var buildLog bytes.Buffer
	opts := container.BuildOptions{
		ContextDir: filepath.Join(spec.Design, spec.BuildDir),
		Dockerfile: spec.Manifest,
		Tag:        tag,
		Stdout:     &buildLog,
		Stderr:     &buildLog,
	}

	if err := engine.Build(ctx, opts); err != nil {
		// Surface the partial log before propagating; the caller may only
		// render the error itself.
		slog.Error("environment image build failed", "tag", tag, "log", buildLog.String())
		return Result{}, &EnvBuildError{Tag: tag, Log: buildLog.Bytes(), Cause: err}
	}

	slog.Info("built environment image", "tag", tag)
	return Result{Stdout: buildLog.Bytes()}, nil
}
