// SPDX-License-Identifier: MPL-2.0

package firmware

import (
	"context"
	"fmt"
	"io"

	"fpbuild/internal/container"
)

// fakeEngine is an in-memory container.Engine. Build writes BuildLog to the
// configured writers; Run writes RunStdout/RunStderr and reports RunExit.
// OnRun, when set, simulates the container's side effects (e.g., the
// firmware build writing artifacts into the mounted output directory).
type fakeEngine struct {
	BuildCalls []container.BuildOptions
	BuildLog   string
	BuildErr   error

	RunCalls  []container.RunOptions
	RunExit   int
	RunStdout string
	RunStderr string
	RunErr    error
	OnRun     func(opts container.RunOptions) error
}

func (f *fakeEngine) Name() string      { return "fake" }
func (f *fakeEngine) Available() bool   { return true }
func (f *fakeEngine) Version(context.Context) (string, error) { return "0.0.0-fake", nil }

func (f *fakeEngine) Build(_ context.Context, opts container.BuildOptions) error {
	f.BuildCalls = append(f.BuildCalls, opts)
	if opts.Stdout != nil {
		io.WriteString(opts.Stdout, f.BuildLog)
	}
	return f.BuildErr
}

func (f *fakeEngine) Run(_ context.Context, opts container.RunOptions) (*container.RunResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	f.RunCalls = append(f.RunCalls, opts)
	if opts.Stdout != nil {
		io.WriteString(opts.Stdout, f.RunStdout)
	}
	if opts.Stderr != nil {
		io.WriteString(opts.Stderr, f.RunStderr)
	}
	if f.OnRun != nil {
		if err := f.OnRun(opts); err != nil {
			return nil, fmt.Errorf("fake run side effect: %w", err)
		}
	}
	return &container.RunResult{ExitCode: f.RunExit, Error: f.RunErr}, nil
}

func (f *fakeEngine) ImageExists(context.Context, string) (bool, error) { return true, nil }

func (f *fakeEngine) RemoveImage(context.Context, string, bool) error { return nil }
