// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"fpbuild/internal/image"
)

var (
	packageBin    string
	packageEEPROM string
	packageOut    string

	packageCmd = &cobra.Command{
		Use:   "package",
		Short: "Package compiled artifacts into a flashable device image",
		Long: fmt.Sprintf(`Compose a flashable device image from an already compiled firmware
binary and EEPROM contents. The binary is padded with 0xFF to the %#x-byte
flash region and the EEPROM contents to the %#x-byte EEPROM region; the
output is always exactly %#x bytes.`,
			image.FlashSize, image.EEPROMSize, image.FlashSize+image.EEPROMSize),
		RunE: runPackage,
	}
)

func init() {
	packageCmd.Flags().StringVar(&packageBin, "bin", "", "path to the compiled firmware binary (required)")
	packageCmd.Flags().StringVar(&packageEEPROM, "eeprom", "", "path to the EEPROM contents (required)")
	packageCmd.Flags().StringVar(&packageOut, "out", "", "path for the packaged device image (required)")
	for _, f := range []string{"bin", "eeprom", "out"} {
		_ = packageCmd.MarkFlagRequired(f)
	}
}

func runPackage(cobraCmd *cobra.Command, _ []string) error {
	if err := image.Package(packageBin, packageEEPROM, packageOut); err != nil {
		return renderBuildError(cobraCmd.ErrOrStderr(), err)
	}

	fmt.Fprintln(cobraCmd.OutOrStdout(), SuccessStyle.Render("Packaged device image ")+packageOut)
	return nil
}
