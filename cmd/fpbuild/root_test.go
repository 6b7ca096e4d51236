// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"fpbuild/internal/firmware"
)

func TestParseDefines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		entries  []string
		expected map[string]string
		wantErr  bool
	}{
		{
			name:     "empty",
			entries:  nil,
			expected: nil,
		},
		{
			name:     "single define",
			entries:  []string{"CAR_ID=42"},
			expected: map[string]string{"CAR_ID": "42"},
		},
		{
			name:     "value containing equals",
			entries:  []string{"FLAGS=-DDEBUG=1"},
			expected: map[string]string{"FLAGS": "-DDEBUG=1"},
		},
		{
			name:     "empty value",
			entries:  []string{"EMPTY="},
			expected: map[string]string{"EMPTY": ""},
		},
		{
			name:    "missing equals",
			entries: []string{"CAR_ID"},
			wantErr: true,
		},
		{
			name:    "empty key",
			entries: []string{"=42"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseDefines(tt.entries)
			if tt.wantErr {
				if err == nil {
					t.Fatal("parseDefines() succeeded, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDefines() error: %v", err)
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("parseDefines() = %v, want %v", got, tt.expected)
			}
			for k, v := range tt.expected {
				if got[k] != v {
					t.Errorf("defines[%q] = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}

func TestExitError(t *testing.T) {
	t.Parallel()

	cause := errors.New("compile failed")
	err := &ExitError{Code: 1, Err: cause}

	if err.Error() != "compile failed" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("ExitError must unwrap to its cause")
	}

	bare := &ExitError{Code: 3}
	if bare.Error() != "exit status 3" {
		t.Errorf("Error() = %q, want exit status 3", bare.Error())
	}
}

func TestRenderBuildError_Compile(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cause := &firmware.CompileError{
		Device:   "car0",
		ExitCode: 2,
		Stderr:   []byte("make: *** [car] Error 2"),
	}

	err := renderBuildError(&out, cause)

	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("renderBuildError() = %v, want *ExitError with code 1", err)
	}
	if !errors.Is(err, firmware.ErrCompile) {
		t.Error("returned error must still unwrap to the compile sentinel")
	}
	if !strings.Contains(out.String(), "Error 2") {
		t.Errorf("rendered output missing compiler diagnostics:\n%s", out.String())
	}
}

func TestRenderBuildError_EnvBuildLog(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cause := &firmware.EnvBuildError{
		Tag: "fpb:latest",
		Log: []byte("Step 2/3 : RUN false"),
	}

	_ = renderBuildError(&out, cause)
	if !strings.Contains(out.String(), "Step 2/3 : RUN false") {
		t.Errorf("rendered output missing the partial build log:\n%s", out.String())
	}
}

func TestStringOr(t *testing.T) {
	t.Parallel()

	if got := stringOr("explicit", "fallback"); got != "explicit" {
		t.Errorf("stringOr() = %q, want explicit", got)
	}
	if got := stringOr("", "fallback"); got != "fallback" {
		t.Errorf("stringOr() = %q, want fallback", got)
	}
}
