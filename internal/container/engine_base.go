// SPDX-License-Identifier: MPL-2.0

package container

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
)

var (
	// ErrInvalidBuildOptions is the sentinel error wrapped by InvalidBuildOptionsError.
	ErrInvalidBuildOptions = errors.New("invalid build options")

	// ErrInvalidRunOptions is the sentinel error wrapped by InvalidRunOptionsError.
	ErrInvalidRunOptions = errors.New("invalid run options")
)

type (
	// ExecCommandFunc is the function signature for creating exec.Cmd.
	// This allows injection of mock implementations for testing.
	ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

	// VolumeFormatFunc is a function that formats a volume mount as a -v
	// argument. Podman uses this to add SELinux labels (:z/:Z) which are
	// required in SELinux-enforcing environments — without them, container
	// processes cannot access bind-mounted host paths.
	VolumeFormatFunc func(mount VolumeMount) string

	// BaseCLIEngineOption configures a BaseCLIEngine.
	BaseCLIEngineOption func(*BaseCLIEngine)

	// BaseCLIEngine provides common implementation for CLI-based container
	// engines. Docker and Podman engines embed this struct. Methods that are
	// identical across all CLI engines (Build, Run, RemoveImage) are
	// implemented here; engine-specific methods (Available, Version,
	// ImageExists) remain on the concrete types.
	BaseCLIEngine struct {
		name            string // Engine name for error messages (e.g., "docker", "podman")
		binaryPath      string // Resolved at construction via exec.LookPath
		execCommand     ExecCommandFunc
		volumeFormatter VolumeFormatFunc
	}

	// InvalidBuildOptionsError is returned when BuildOptions are missing
	// required fields.
	InvalidBuildOptionsError struct {
		Reason string
	}

	// InvalidRunOptionsError is returned when RunOptions are missing required
	// fields or carry an invalid volume mount.
	InvalidRunOptionsError struct {
		Reason string
		Cause  error
	}
)

// Error implements the error interface for InvalidBuildOptionsError.
func (e *InvalidBuildOptionsError) Error() string {
	return "invalid build options: " + e.Reason
}

// Unwrap returns ErrInvalidBuildOptions for errors.Is() compatibility.
func (e *InvalidBuildOptionsError) Unwrap() error { return ErrInvalidBuildOptions }

// Error implements the error interface for InvalidRunOptionsError.
func (e *InvalidRunOptionsError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid run options: %s: %v", e.Reason, e.Cause)
	}
	return "invalid run options: " + e.Reason
}

// Unwrap returns the underlying cause when present, else ErrInvalidRunOptions.
func (e *InvalidRunOptionsError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return ErrInvalidRunOptions
}

// Validate returns an error if required build fields are missing.
func (o BuildOptions) Validate() error {
	if o.ContextDir == "" {
		return &InvalidBuildOptionsError{Reason: "context directory is required"}
	}
	if o.Tag == "" {
		return &InvalidBuildOptionsError{Reason: "image tag is required"}
	}
	return nil
}

// Validate returns an error if required run fields are missing or any
// volume mount is invalid.
func (o RunOptions) Validate() error {
	if o.Image == "" {
		return &InvalidRunOptionsError{Reason: "image is required"}
	}
	for _, v := range o.Volumes {
		if err := v.Validate(); err != nil {
			return &InvalidRunOptionsError{Reason: "volume mount", Cause: err}
		}
	}
	return nil
}

// --- Option Functions ---

// WithName sets the engine name used in error messages.
func WithName(name string) BaseCLIEngineOption {
	return func(e *BaseCLIEngine) {
		e.name = name
	}
}

// WithExecCommand sets a custom exec command function for testing.
func WithExecCommand(fn ExecCommandFunc) BaseCLIEngineOption {
	return func(e *BaseCLIEngine) {
		e.execCommand = fn
	}
}

// WithVolumeFormatter sets a custom volume formatter function.
// This is used by Podman to add SELinux labels on Linux.
func WithVolumeFormatter(fn VolumeFormatFunc) BaseCLIEngineOption {
	return func(e *BaseCLIEngine) {
		e.volumeFormatter = fn
	}
}

// --- Constructor ---

// NewBaseCLIEngine creates a new base engine with the given binary path.
func NewBaseCLIEngine(binaryPath string, opts ...BaseCLIEngineOption) *BaseCLIEngine {
	e := &BaseCLIEngine{
		binaryPath:      binaryPath,
		execCommand:     exec.CommandContext,
		volumeFormatter: FormatVolumeMount,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// --- Accessor Methods ---

// BinaryPath returns the path to the container engine binary.
func (e *BaseCLIEngine) BinaryPath() string {
	return e.binaryPath
}

// --- Argument Builders ---

// BuildArgs constructs arguments for a container build command.
// Map-valued options are emitted in sorted key order so that repeated
// builds produce identical invocations.
//
// Generated command: <binary> build [options] <context>
func (e *BaseCLIEngine) BuildArgs(opts BuildOptions) []string {
	args := []string{"build"}

	if opts.Dockerfile != "" {
		// Resolve the manifest path relative to the context directory.
		// If ContextDir is empty, the path is used as-is.
		dockerfilePath := opts.Dockerfile
		if !filepath.IsAbs(dockerfilePath) && opts.ContextDir != "" {
			dockerfilePath = filepath.Join(opts.ContextDir, dockerfilePath)
		}
		args = append(args, "-f", dockerfilePath)
	}

	if opts.Tag != "" {
		args = append(args, "-t", opts.Tag)
	}

	if opts.NoCache {
		args = append(args, "--no-cache")
	}

	for _, k := range sortedKeys(opts.BuildArgs) {
		args = append(args, "--build-arg", fmt.Sprintf("%s=%s", k, opts.BuildArgs[k]))
	}

	args = append(args, opts.ContextDir)

	return args
}

// RunArgs constructs arguments for a container run command.
//
// Generated command: <binary> run [options] <image> [command...]
func (e *BaseCLIEngine) RunArgs(opts RunOptions) []string {
	args := []string{"run"}

	if opts.Remove {
		args = append(args, "--rm")
	}

	if opts.Name != "" {
		args = append(args, "--name", opts.Name)
	}

	if opts.WorkDir != "" {
		args = append(args, "-w", opts.WorkDir)
	}

	for _, k := range sortedKeys(opts.Env) {
		args = append(args, "-e", fmt.Sprintf("%s=%s", k, opts.Env[k]))
	}

	for _, v := range opts.Volumes {
		args = append(args, "-v", e.volumeFormatter(v))
	}

	args = append(args, opts.Image)
	args = append(args, opts.Command...)

	return args
}

// RemoveImageArgs constructs arguments for an image remove command.
func (e *BaseCLIEngine) RemoveImageArgs(image string, force bool) []string {
	args := []string{"rmi"}
	if force {
		args = append(args, "-f")
	}
	args = append(args, image)
	return args
}

// --- Command Execution ---

// RunCommandStatus executes a command and returns only the error status.
func (e *BaseCLIEngine) RunCommandStatus(ctx context.Context, args ...string) error {
	cmd := e.CreateCommand(ctx, args...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("command %s %v failed: %w", e.binaryPath, args, err)
	}
	return nil
}

// RunCommandWithOutput executes a command with stdout captured to a buffer.
func (e *BaseCLIEngine) RunCommandWithOutput(ctx context.Context, args ...string) (string, error) {
	cmd := e.CreateCommand(ctx, args...)
	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("command %s %v failed: %w", e.binaryPath, args, err)
	}

	return out.String(), nil
}

// CreateCommand creates an exec.Cmd for the given arguments.
// This is useful when the caller needs to customize stdin/stdout/stderr.
func (e *BaseCLIEngine) CreateCommand(ctx context.Context, args ...string) *exec.Cmd {
	return e.execCommand(ctx, e.binaryPath, args...)
}

// --- Promoted Engine Methods (shared by Docker and Podman) ---

// Build builds an image from a build context and manifest.
// It validates BuildOptions before executing to catch invalid fields early.
func (e *BaseCLIEngine) Build(ctx context.Context, opts BuildOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	args := e.BuildArgs(opts)

	cmd := e.CreateCommand(ctx, args...)
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr

	if err := cmd.Run(); err != nil {
		return buildContainerError(e.name, opts, err)
	}

	return nil
}

// Run runs a command in a container and returns the result.
// A non-zero exit code is captured in RunResult.ExitCode (not returned as
// error). Only infrastructure failures (binary not found, etc.) set
// RunResult.Error. RunOptions are validated before executing.
func (e *BaseCLIEngine) Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	args := e.RunArgs(opts)

	cmd := e.CreateCommand(ctx, args...)
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr

	err := cmd.Run()

	result := &RunResult{}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = 1
			result.Error = err
		}
	}

	return result, nil
}

// RemoveImage removes an image.
func (e *BaseCLIEngine) RemoveImage(ctx context.Context, image string, force bool) error {
	args := e.RemoveImageArgs(image, force)
	return e.RunCommandStatus(ctx, args...)
}

// sortedKeys returns the map keys in ascending order.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
