// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"fpbuild/internal/firmware"
)

var (
	envDesign   string
	envName     string
	envImage    string
	envBuildDir string
	envManifest string

	envCmd = &cobra.Command{
		Use:   "env",
		Short: "Build a tagged firmware build environment image",
		Long: `Build a reproducible build environment image from a design's build
directory. The resulting image is tagged <image>:<name> and is shared by all
subsequent device builds referencing that tag. Rebuilding with identical
inputs is safe to repeat.`,
		RunE: runEnv,
	}
)

func init() {
	envCmd.Flags().StringVar(&envDesign, "design", "", "path to the design repository (required)")
	envCmd.Flags().StringVar(&envName, "name", "", "environment name, used as the image tag suffix (required)")
	envCmd.Flags().StringVar(&envImage, "image", "", "environment image repository (default from config)")
	envCmd.Flags().StringVar(&envBuildDir, "build-dir", "", "build context subdirectory of the design (default from config)")
	envCmd.Flags().StringVar(&envManifest, "manifest", "", "build manifest filename (default from config)")
	_ = envCmd.MarkFlagRequired("design")
	_ = envCmd.MarkFlagRequired("name")
}

func runEnv(cobraCmd *cobra.Command, _ []string) error {
	engine, err := newEngine()
	if err != nil {
		return renderBuildError(cobraCmd.ErrOrStderr(), err)
	}

	spec := firmware.EnvironmentSpec{
		Design:   envDesign,
		Name:     envName,
		Image:    stringOr(envImage, cfg.Image),
		BuildDir: stringOr(envBuildDir, cfg.BuildDir),
		Manifest: stringOr(envManifest, cfg.Manifest),
	}

	result, err := firmware.BuildEnvironment(cobraCmd.Context(), engine, spec)
	if err != nil {
		return renderBuildError(cobraCmd.ErrOrStderr(), err)
	}

	if verbose && len(result.Stdout) > 0 {
		fmt.Fprintln(cobraCmd.OutOrStdout(), string(result.Stdout))
	}
	fmt.Fprintln(cobraCmd.OutOrStdout(), SuccessStyle.Render("Built environment image ")+spec.Tag())
	return nil
}

// stringOr returns value if non-empty, else fallback.
func stringOr(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
