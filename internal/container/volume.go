// SPDX-License-Identifier: MPL-2.0

package container

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// SELinuxLabelNone means no SELinux label is applied to volume mounts.
	SELinuxLabelNone SELinuxLabel = ""
	// SELinuxLabelShared allows sharing the volume between containers.
	SELinuxLabelShared SELinuxLabel = "z"
	// SELinuxLabelPrivate restricts the volume to a single container.
	SELinuxLabelPrivate SELinuxLabel = "Z"
)

var (
	// ErrInvalidSELinuxLabel is the sentinel error wrapped by InvalidSELinuxLabelError.
	ErrInvalidSELinuxLabel = errors.New("invalid SELinux label")

	// ErrInvalidMountSource is the sentinel error wrapped by InvalidMountSourceError.
	ErrInvalidMountSource = errors.New("invalid mount source")

	// ErrInvalidMountTarget is the sentinel error wrapped by InvalidMountTargetError.
	ErrInvalidMountTarget = errors.New("invalid container filesystem path")

	// ErrInvalidVolumeMount is the sentinel error wrapped by InvalidVolumeMountError.
	ErrInvalidVolumeMount = errors.New("invalid volume mount")
)

type (
	// SELinuxLabel represents an SELinux volume labeling option.
	// The zero value ("") means no SELinux label is applied.
	SELinuxLabel string

	// InvalidSELinuxLabelError is returned when a SELinuxLabel is not a recognized label.
	InvalidSELinuxLabelError struct {
		Value SELinuxLabel
	}

	// MountSource identifies what is mounted into a container: either an
	// absolute host directory or the name of a runtime-managed volume.
	// Named volumes never touch the host filesystem, which is how
	// per-deployment secret material stays out of the host tree.
	MountSource string

	// InvalidMountSourceError is returned when a MountSource is empty,
	// relative without being a valid volume name, or contains a ':' that
	// would corrupt the rendered -v flag.
	InvalidMountSourceError struct {
		Value MountSource
	}

	// MountTarget represents a filesystem path inside a container.
	// A valid target must be absolute.
	MountTarget string

	// InvalidMountTargetError is returned when a MountTarget is not an absolute path.
	InvalidMountTargetError struct {
		Value MountTarget
	}

	// VolumeMount represents a volume mount specification.
	VolumeMount struct {
		Source   MountSource
		Target   MountTarget
		ReadOnly bool
		SELinux  SELinuxLabel
	}

	// InvalidVolumeMountError is returned when a VolumeMount has one or more
	// invalid fields. It wraps the individual field validation errors.
	InvalidVolumeMountError struct {
		Value     VolumeMount
		FieldErrs []error
	}
)

// Error implements the error interface.
func (e *InvalidSELinuxLabelError) Error() string {
	return fmt.Sprintf("invalid SELinux label %q (valid: empty, z, Z)", e.Value)
}

// Unwrap returns ErrInvalidSELinuxLabel so callers can use errors.Is for detection.
func (e *InvalidSELinuxLabelError) Unwrap() error { return ErrInvalidSELinuxLabel }

// Validate returns an error if the SELinuxLabel is not one of the defined labels.
// The zero value ("") is valid and means no SELinux label.
func (s SELinuxLabel) Validate() error {
	switch s {
	case SELinuxLabelNone, SELinuxLabelShared, SELinuxLabelPrivate:
		return nil
	default:
		return &InvalidSELinuxLabelError{Value: s}
	}
}

// String returns the string representation of the SELinuxLabel.
func (s SELinuxLabel) String() string { return string(s) }

// String returns the string representation of the MountSource.
func (s MountSource) String() string { return string(s) }

// IsNamedVolume reports whether the source refers to a runtime-managed
// volume rather than a host directory. Anything that is not an absolute
// host path is treated as a volume name, matching docker/podman semantics.
func (s MountSource) IsNamedVolume() bool {
	return !filepath.IsAbs(string(s))
}

// Validate returns an error if the MountSource is invalid.
// A valid source is either an absolute host path or a volume name; both
// must be non-empty and colon-free.
func (s MountSource) Validate() error {
	v := string(s)
	if strings.TrimSpace(v) == "" || strings.Contains(v, ":") {
		return &InvalidMountSourceError{Value: s}
	}
	return nil
}

// Error implements the error interface for InvalidMountSourceError.
func (e *InvalidMountSourceError) Error() string {
	return fmt.Sprintf("invalid mount source %q: must be a non-empty, colon-free host path or volume name", e.Value)
}

// Unwrap returns ErrInvalidMountSource for errors.Is() compatibility.
func (e *InvalidMountSourceError) Unwrap() error { return ErrInvalidMountSource }

// String returns the string representation of the MountTarget.
func (t MountTarget) String() string { return string(t) }

// Validate returns an error if the MountTarget is not an absolute path.
func (t MountTarget) Validate() error {
	v := string(t)
	if !strings.HasPrefix(v, "/") || strings.Contains(v, ":") {
		return &InvalidMountTargetError{Value: t}
	}
	return nil
}

// Error implements the error interface for InvalidMountTargetError.
func (e *InvalidMountTargetError) Error() string {
	return fmt.Sprintf("invalid container filesystem path %q: must be absolute and colon-free", e.Value)
}

// Unwrap returns ErrInvalidMountTarget for errors.Is() compatibility.
func (e *InvalidMountTargetError) Unwrap() error { return ErrInvalidMountTarget }

// Error implements the error interface for InvalidVolumeMountError.
func (e *InvalidVolumeMountError) Error() string {
	return fmt.Sprintf("invalid volume mount %s:%s: %d field error(s)",
		e.Value.Source, e.Value.Target, len(e.FieldErrs))
}

// Unwrap returns ErrInvalidVolumeMount for errors.Is() compatibility.
func (e *InvalidVolumeMountError) Unwrap() error { return ErrInvalidVolumeMount }

// Validate returns an error if any typed field of the VolumeMount is invalid.
// ReadOnly is a bool and requires no validation.
func (v VolumeMount) Validate() error {
	var errs []error
	if err := v.Source.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := v.Target.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := v.SELinux.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return &InvalidVolumeMountError{Value: v, FieldErrs: errs}
	}
	return nil
}

// FormatVolumeMount formats a volume mount as a string for the -v flag,
// in "source:target[:options]" format.
func FormatVolumeMount(mount VolumeMount) string {
	var result strings.Builder
	result.WriteString(string(mount.Source))
	result.WriteString(":")
	result.WriteString(string(mount.Target))

	var options []string
	if mount.ReadOnly {
		options = append(options, "ro")
	}
	if mount.SELinux != "" {
		options = append(options, string(mount.SELinux))
	}

	if len(options) > 0 {
		result.WriteString(":")
		result.WriteString(strings.Join(options, ","))
	}

	return result.String()
}
