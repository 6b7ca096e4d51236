// SPDX-License-Identifier: MPL-2.0

package container

import (
	"errors"
	"testing"
)

func TestFormatVolumeMount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mount    VolumeMount
		expected string
	}{
		{
			name:     "bind mount",
			mount:    VolumeMount{Source: "/out", Target: "/dev_out"},
			expected: "/out:/dev_out",
		},
		{
			name:     "read-only bind mount",
			mount:    VolumeMount{Source: "/design/car", Target: "/dev_in", ReadOnly: true},
			expected: "/design/car:/dev_in:ro",
		},
		{
			name:     "named secrets volume",
			mount:    VolumeMount{Source: "fpb.latest.team1.secrets.vol", Target: "/secrets"},
			expected: "fpb.latest.team1.secrets.vol:/secrets",
		},
		{
			name:     "selinux shared label",
			mount:    VolumeMount{Source: "/out", Target: "/dev_out", SELinux: SELinuxLabelShared},
			expected: "/out:/dev_out:z",
		},
		{
			name:     "read-only with selinux label",
			mount:    VolumeMount{Source: "/design/car", Target: "/dev_in", ReadOnly: true, SELinux: SELinuxLabelPrivate},
			expected: "/design/car:/dev_in:ro,Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatVolumeMount(tt.mount); got != tt.expected {
				t.Errorf("FormatVolumeMount() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestMountSource_IsNamedVolume(t *testing.T) {
	t.Parallel()

	tests := []struct {
		source MountSource
		named  bool
	}{
		{"/home/user/out", false},
		{"fpb.latest.team1.secrets.vol", true},
		{"secrets", true},
	}

	for _, tt := range tests {
		if got := tt.source.IsNamedVolume(); got != tt.named {
			t.Errorf("IsNamedVolume(%q) = %v, want %v", tt.source, got, tt.named)
		}
	}
}

func TestVolumeMount_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mount    VolumeMount
		sentinel error
	}{
		{
			name:  "valid bind mount",
			mount: VolumeMount{Source: "/out", Target: "/dev_out"},
		},
		{
			name:  "valid named volume",
			mount: VolumeMount{Source: "fpb.latest.team1.secrets.vol", Target: "/secrets"},
		},
		{
			name:     "empty source",
			mount:    VolumeMount{Source: "", Target: "/dev_out"},
			sentinel: ErrInvalidVolumeMount,
		},
		{
			name:     "source with colon",
			mount:    VolumeMount{Source: "bad:name", Target: "/dev_out"},
			sentinel: ErrInvalidVolumeMount,
		},
		{
			name:     "relative target",
			mount:    VolumeMount{Source: "/out", Target: "dev_out"},
			sentinel: ErrInvalidVolumeMount,
		},
		{
			name:     "bad selinux label",
			mount:    VolumeMount{Source: "/out", Target: "/dev_out", SELinux: "x"},
			sentinel: ErrInvalidVolumeMount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.mount.Validate()
			if tt.sentinel == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.sentinel) {
				t.Fatalf("Validate() = %v, want errors.Is(%v)", err, tt.sentinel)
			}
		})
	}
}

func TestVolumeMount_ValidateFieldErrors(t *testing.T) {
	t.Parallel()

	err := VolumeMount{Source: "", Target: "relative", SELinux: "q"}.Validate()

	var mountErr *InvalidVolumeMountError
	if !errors.As(err, &mountErr) {
		t.Fatalf("Validate() = %T, want *InvalidVolumeMountError", err)
	}
	if len(mountErr.FieldErrs) != 3 {
		t.Errorf("got %d field errors, want 3: %v", len(mountErr.FieldErrs), mountErr.FieldErrs)
	}
}
