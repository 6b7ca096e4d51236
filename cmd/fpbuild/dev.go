// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fpbuild/internal/firmware"
)

var (
	devDesign     string
	devName       string
	devImage      string
	devDeployment string
	devDevice     string
	devInput      string
	devOutput     string
	devTarget     string
	devDefines    []string

	devCmd = &cobra.Command{
		Use:   "dev",
		Short: "Build and package a single device",
		Long: `Build one device (car or fob) inside a previously built environment
image and package the compiled artifacts into a flashable image.

The device source directory is mounted read-only into the build container,
compiled with the given make target and defines, and the resulting
<device>.bin/.elf/.eeprom artifacts land in the output directory together
with the packaged <device>.img.`,
		RunE: runDev,
	}
)

func init() {
	devCmd.Flags().StringVar(&devDesign, "design", "", "path to the design repository (required)")
	devCmd.Flags().StringVar(&devName, "name", "", "environment name (required)")
	devCmd.Flags().StringVar(&devImage, "image", "", "environment image repository (default from config)")
	devCmd.Flags().StringVar(&devDeployment, "deployment", "", "deployment the device belongs to (required)")
	devCmd.Flags().StringVar(&devDevice, "device", "", "device name (required)")
	devCmd.Flags().StringVar(&devInput, "input", "", "device source directory, relative to the design (required)")
	devCmd.Flags().StringVar(&devOutput, "output", "", "host directory for compiled artifacts (required)")
	devCmd.Flags().StringVar(&devTarget, "target", "", "make target to invoke (required)")
	devCmd.Flags().StringArrayVar(&devDefines, "define", nil, "compile-time define as KEY=VALUE (repeatable)")
	for _, f := range []string{"design", "name", "deployment", "device", "input", "output", "target"} {
		_ = devCmd.MarkFlagRequired(f)
	}
}

func runDev(cobraCmd *cobra.Command, _ []string) error {
	engine, err := newEngine()
	if err != nil {
		return renderBuildError(cobraCmd.ErrOrStderr(), err)
	}

	defines, err := parseDefines(devDefines)
	if err != nil {
		return renderBuildError(cobraCmd.ErrOrStderr(), err)
	}

	req := firmware.DeviceRequest{
		Image:      stringOr(devImage, cfg.Image),
		Name:       devName,
		Design:     devDesign,
		Deployment: devDeployment,
		Device:     devDevice,
		InputDir:   devInput,
		OutputDir:  devOutput,
		Defines:    defines,
		Target:     devTarget,
	}

	if _, err := firmware.BuildDevice(cobraCmd.Context(), engine, req); err != nil {
		return renderBuildError(cobraCmd.ErrOrStderr(), err)
	}

	fmt.Fprintln(cobraCmd.OutOrStdout(), SuccessStyle.Render("Built and packaged device ")+devDevice)
	return nil
}

// parseDefines converts repeated KEY=VALUE flags into a define map.
func parseDefines(entries []string) (map[string]string, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	defines := make(map[string]string, len(entries))
	for _, entry := range entries {
		key, value, found := strings.Cut(entry, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid define %q: expected KEY=VALUE", entry)
		}
		defines[key] = value
	}
	return defines, nil
}
