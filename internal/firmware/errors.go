// SPDX-License-Identifier: MPL-2.0

package firmware

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig is the sentinel error wrapped by ConfigError.
	ErrConfig = errors.New("invalid build configuration")

	// ErrEnvBuild is the sentinel error wrapped by EnvBuildError.
	ErrEnvBuild = errors.New("environment image build failed")

	// ErrCompile is the sentinel error wrapped by CompileError.
	ErrCompile = errors.New("device compile failed")

	// ErrProcess is the sentinel error wrapped by ProcessError.
	ErrProcess = errors.New("container invocation failed")
)

type (
	// ConfigError reports a missing or invalid path, manifest, or request
	// field. It is always raised before any container engine call is made
	// and is never retried.
	ConfigError struct {
		Path   string
		Reason string
		Cause  error
	}

	// EnvBuildError reports a failed environment image build. Log carries
	// the partial build log received before the failure so diagnostics are
	// never lost.
	EnvBuildError struct {
		Tag   string
		Log   []byte
		Cause error
	}

	// CompileError reports a device compile step that exited non-zero.
	// The captured streams are preserved for the caller to display; the
	// packaging step is never reached, so no corrupted image results.
	CompileError struct {
		Device   string
		ExitCode int
		Stdout   []byte
		Stderr   []byte
	}

	// ProcessError reports that the container invocation itself could not
	// run (engine unavailable, binary missing). The cause is surfaced
	// verbatim alongside whatever output was captured.
	ProcessError struct {
		Stdout []byte
		Stderr []byte
		Cause  error
	}
)

// Error implements the error interface for ConfigError.
func (e *ConfigError) Error() string {
	msg := e.Reason
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Path, e.Reason)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause when present, else ErrConfig.
func (e *ConfigError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return ErrConfig
}

// Is reports whether target is ErrConfig, so wrapped causes do not hide
// the error's kind from errors.Is.
func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

// Error implements the error interface for EnvBuildError.
func (e *EnvBuildError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("build of %s failed: %v", e.Tag, e.Cause)
	}
	return fmt.Sprintf("build of %s failed", e.Tag)
}

// Unwrap returns the underlying cause when present, else ErrEnvBuild.
func (e *EnvBuildError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return ErrEnvBuild
}

// Is reports whether target is ErrEnvBuild.
func (e *EnvBuildError) Is(target error) bool { return target == ErrEnvBuild }

// Error implements the error interface for CompileError.
func (e *CompileError) Error() string {
	return fmt.Sprintf("compile of device %s exited with code %d", e.Device, e.ExitCode)
}

// Unwrap returns ErrCompile for errors.Is() compatibility.
func (e *CompileError) Unwrap() error { return ErrCompile }

// Error implements the error interface for ProcessError.
func (e *ProcessError) Error() string {
	return fmt.Sprintf("container invocation failed: %v", e.Cause)
}

// Unwrap returns the underlying cause when present, else ErrProcess.
func (e *ProcessError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return ErrProcess
}

// Is reports whether target is ErrProcess.
func (e *ProcessError) Is(target error) bool { return target == ErrProcess }
