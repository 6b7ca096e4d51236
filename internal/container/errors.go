// SPDX-License-Identifier: MPL-2.0

package container

import (
	"fpbuild/internal/issue"
)

// buildContainerError creates an actionable error for image build failures.
func buildContainerError(engine string, opts BuildOptions, cause error) error {
	ctx := issue.NewErrorContext().
		WithOperation("build environment image")

	switch {
	case opts.Tag != "":
		ctx.WithResource(opts.Tag)
	case opts.ContextDir != "":
		ctx.WithResource(opts.ContextDir)
	}

	ctx.WithSuggestion("Check the build manifest for syntax errors")
	ctx.WithSuggestion("Verify the build context path exists and is accessible")
	ctx.WithSuggestion("Ensure base images are available (try: " + engine + " pull <base-image>)")

	return ctx.Wrap(cause).Build()
}
