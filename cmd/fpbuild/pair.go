// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"fpbuild/internal/firmware"
)

var (
	pairDesign     string
	pairName       string
	pairImage      string
	pairDeployment string

	pairCarName string
	pairCarID   uint32
	pairCarIn   string
	pairCarOut  string

	pairFobName string
	pairPin     string
	pairFobIn   string
	pairFobOut  string

	pairCmd = &cobra.Command{
		Use:   "pair",
		Short: "Build a car and its paired fob",
		Long: `Build a car and its paired fob as one logical operation. Both devices
are built against the same environment image and share the deployment's
secrets volume, so the builds run strictly sequentially: car first, then fob.

The fob flags are optional; omitting --fob-name builds only the car.`,
		RunE: runPair,
	}
)

func init() {
	pairCmd.Flags().StringVar(&pairDesign, "design", "", "path to the design repository (required)")
	pairCmd.Flags().StringVar(&pairName, "name", "", "environment name (required)")
	pairCmd.Flags().StringVar(&pairImage, "image", "", "environment image repository (default from config)")
	pairCmd.Flags().StringVar(&pairDeployment, "deployment", "", "deployment the pair belongs to (required)")

	pairCmd.Flags().StringVar(&pairCarName, "car-name", "", "car device name (required)")
	pairCmd.Flags().Uint32Var(&pairCarID, "car-id", 0, "car identity baked into both firmwares (required)")
	pairCmd.Flags().StringVar(&pairCarIn, "car-in", "", "car source directory, relative to the design")
	pairCmd.Flags().StringVar(&pairCarOut, "car-out", "", "host directory for car artifacts (required)")

	pairCmd.Flags().StringVar(&pairFobName, "fob-name", "", "fob device name (omit to build only the car)")
	pairCmd.Flags().StringVar(&pairPin, "pair-pin", "", "pairing PIN baked into the fob firmware")
	pairCmd.Flags().StringVar(&pairFobIn, "fob-in", "", "fob source directory, relative to the design")
	pairCmd.Flags().StringVar(&pairFobOut, "fob-out", "", "host directory for fob artifacts")

	for _, f := range []string{"design", "name", "deployment", "car-name", "car-id", "car-out"} {
		_ = pairCmd.MarkFlagRequired(f)
	}
	pairCmd.MarkFlagsRequiredTogether("fob-name", "pair-pin", "fob-out")
}

func runPair(cobraCmd *cobra.Command, _ []string) error {
	engine, err := newEngine()
	if err != nil {
		return renderBuildError(cobraCmd.ErrOrStderr(), err)
	}

	imageRepo := stringOr(pairImage, cfg.Image)
	carID := strconv.FormatUint(uint64(pairCarID), 10)

	req := firmware.PairRequest{
		Car: firmware.DeviceRequest{
			Image:      imageRepo,
			Name:       pairName,
			Design:     pairDesign,
			Deployment: pairDeployment,
			Device:     pairCarName,
			InputDir:   stringOr(pairCarIn, cfg.CarInputDir),
			OutputDir:  pairCarOut,
			Defines:    map[string]string{"CAR_ID": carID},
			Target:     cfg.CarTarget,
		},
	}

	if pairFobName != "" {
		req.Fob = &firmware.DeviceRequest{
			Image:      imageRepo,
			Name:       pairName,
			Design:     pairDesign,
			Deployment: pairDeployment,
			Device:     pairFobName,
			InputDir:   stringOr(pairFobIn, cfg.FobInputDir),
			OutputDir:  pairFobOut,
			Defines:    map[string]string{"CAR_ID": carID, "PAIR_PIN": pairPin},
			Target:     cfg.FobTarget,
		}
	}

	if _, err := firmware.BuildPair(cobraCmd.Context(), engine, req); err != nil {
		return renderBuildError(cobraCmd.ErrOrStderr(), err)
	}

	msg := SuccessStyle.Render("Built and packaged car ") + pairCarName
	if req.Fob != nil {
		msg += SuccessStyle.Render(" and fob ") + pairFobName
	}
	fmt.Fprintln(cobraCmd.OutOrStdout(), msg)
	return nil
}
