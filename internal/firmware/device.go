// SPDX-License-Identifier: MPL-2.0

package firmware

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"fpbuild/internal/container"
	"fpbuild/internal/image"
)

// Fixed in-container paths. The firmware build system inside the environment
// image only ever sees these; host locations are supplied as mounts.
const (
	// MountInput is where the device source tree is mounted read-only.
	MountInput = "/dev_in"
	// MountOutput is where compiled artifacts are written.
	MountOutput = "/dev_out"
	// MountSecrets is where the deployment's secrets volume is mounted.
	MountSecrets = "/secrets"
	// buildRoot is the in-container working directory the source tree is
	// copied into before invoking make.
	buildRoot = "/root"
)

const outputDirMode = 0o755

// DeviceRequest describes one compile invocation for one physical device
// role (car or fob).
type DeviceRequest struct {
	// Image and Name select the environment image tag (Image:Name).
	Image string
	Name  string
	// Design is the path to the design repository on the host.
	Design string
	// Deployment scopes the secrets volume.
	Deployment string
	// Device is the device name; artifacts are named <Device>.bin/.elf/.eeprom/.img.
	Device string
	// InputDir is the device source directory, relative to Design.
	InputDir string
	// OutputDir is the host directory receiving compiled artifacts. It is
	// created if absent and reused across repeated builds.
	OutputDir string
	// Defines are compile-time make variables (e.g., CAR_ID).
	Defines map[string]string
	// Target is the make target to invoke (e.g., "car", "fob").
	Target string
}

// Tag returns the environment image tag the device is built against.
func (r DeviceRequest) Tag() string {
	return fmt.Sprintf("%s:%s", r.Image, r.Name)
}

// validate rejects requests that would produce a malformed container
// invocation, before anything runs.
func (r DeviceRequest) validate() error {
	if r.Image == "" || r.Name == "" {
		return &ConfigError{Reason: "environment image and name are required"}
	}
	if r.Deployment == "" {
		return &ConfigError{Reason: "deployment is required"}
	}
	if r.Device == "" || strings.ContainsAny(r.Device, "/ \t") {
		return &ConfigError{Reason: fmt.Sprintf("invalid device name %q", r.Device)}
	}
	if r.Target == "" {
		return &ConfigError{Reason: "make target is required"}
	}
	for k := range r.Defines {
		if k == "" || strings.ContainsAny(k, "= \t") {
			return &ConfigError{Reason: fmt.Sprintf("invalid compile define %q", k)}
		}
	}
	return nil
}

// BuildDevice compiles one device inside the tagged environment image and
// packages the resulting artifacts into a flashable image.
//
// The compile is a single container invocation: the device source tree is
// mounted read-only, copied into the build root, and built with make against
// the deployment's secrets volume. A non-zero exit yields a *CompileError
// carrying the captured streams; the output directory may then hold partial
// artifacts, but packaging is never reached, so no stale image is
// overwritten.
func BuildDevice(ctx context.Context, engine container.Engine, req DeviceRequest) (Result, error) {
	if err := req.validate(); err != nil {
		return Result{}, err
	}

	tag := req.Tag()

	inputDir, err := filepath.Abs(filepath.Join(req.Design, req.InputDir))
	if err != nil {
		return Result{}, &ConfigError{Path: req.InputDir, Reason: "cannot resolve input directory", Cause: err}
	}
	outputDir, err := filepath.Abs(req.OutputDir)
	if err != nil {
		return Result{}, &ConfigError{Path: req.OutputDir, Reason: "cannot resolve output directory", Cause: err}
	}
	if err := os.MkdirAll(outputDir, outputDirMode); err != nil {
		return Result{}, &ConfigError{Path: outputDir, Reason: "cannot create output directory", Cause: err}
	}

	script, err := compileScript(req)
	if err != nil {
		return Result{}, err
	}

	slog.Info("building device",
		"tag", tag, "deployment", req.Deployment, "device", req.Device, "target", req.Target)

	var stdout, stderr bytes.Buffer
	opts := container.RunOptions{
		Image:  tag,
		Remove: true,
		Volumes: []container.VolumeMount{
			{Source: container.MountSource(inputDir), Target: MountInput, ReadOnly: true},
			{Source: container.MountSource(outputDir), Target: MountOutput},
			{Source: container.MountSource(SecretsVolume(req.Image, req.Name, req.Deployment)), Target: MountSecrets},
		},
		WorkDir: buildRoot,
		Command: []string{"/bin/bash", "-c", script},
		Stdout:  &stdout,
		Stderr:  &stderr,
	}

	res, err := engine.Run(ctx, opts)
	if err != nil {
		return Result{}, &ProcessError{Cause: err}
	}
	if res.Error != nil {
		return Result{}, &ProcessError{Stdout: stdout.Bytes(), Stderr: stderr.Bytes(), Cause: res.Error}
	}
	if res.ExitCode != 0 {
		return Result{}, &CompileError{
			Device:   req.Device,
			ExitCode: res.ExitCode,
			Stdout:   stdout.Bytes(),
			Stderr:   stderr.Bytes(),
		}
	}

	slog.Info("built device", "tag", tag, "deployment", req.Deployment, "device", req.Device)

	imagePath := filepath.Join(outputDir, req.Device+".img")
	if err := image.Package(
		filepath.Join(outputDir, req.Device+".bin"),
		filepath.Join(outputDir, req.Device+".eeprom"),
		imagePath,
	); err != nil {
		return Result{}, err
	}

	slog.Info("packaged device image",
		"tag", tag, "deployment", req.Deployment, "device", req.Device, "image", imagePath)

	return Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}, nil
}

// compileScript renders the in-container build script. Every interpolated
// value is shell-quoted and defines are emitted in sorted key order, so the
// same request always renders the same invocation.
func compileScript(req DeviceRequest) (string, error) {
	makeArgs := []string{"make", req.Target}

	keys := make([]string, 0, len(req.Defines))
	for k := range req.Defines {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		quoted, err := syntax.Quote(req.Defines[k], syntax.LangBash)
		if err != nil {
			return "", &ConfigError{Reason: fmt.Sprintf("unquotable value for define %s", k), Cause: err}
		}
		makeArgs = append(makeArgs, k+"="+quoted)
	}

	device, err := syntax.Quote(req.Device, syntax.LangBash)
	if err != nil {
		return "", &ConfigError{Reason: "unquotable device name", Cause: err}
	}

	makeArgs = append(makeArgs,
		"SECRETS_DIR="+MountSecrets,
		"BIN_PATH="+MountOutput+"/"+device+".bin",
		"ELF_PATH="+MountOutput+"/"+device+".elf",
		"EEPROM_PATH="+MountOutput+"/"+device+".eeprom",
	)

	return fmt.Sprintf("cp -r %s/. %s/ && %s", MountInput, buildRoot, strings.Join(makeArgs, " ")), nil
}
