// SPDX-License-Identifier: MPL-2.0

package image

import (
	"errors"
	"fmt"
	"os"
)

const (
	// FlashSize is the size of the firmware flash region in bytes.
	FlashSize = 0x8000
	// EEPROMSize is the size of the EEPROM region in bytes.
	EEPROMSize = 0x800

	// padByte is the erased-flash fill value.
	padByte = 0xFF

	imageFileMode = 0o644
)

// ErrTooLarge is the sentinel error wrapped by TooLargeError.
var ErrTooLarge = errors.New("artifact exceeds its image region")

// TooLargeError is returned when a compiled artifact does not fit its
// fixed-size image region. It signals a firmware/hardware size mismatch,
// never a transient fault.
type TooLargeError struct {
	Path  string
	Size  int
	Limit int
}

// Error implements the error interface.
func (e *TooLargeError) Error() string {
	return fmt.Sprintf("%s is %d bytes, exceeds region size %d", e.Path, e.Size, e.Limit)
}

// Unwrap returns ErrTooLarge for errors.Is() compatibility.
func (e *TooLargeError) Unwrap() error { return ErrTooLarge }

// Pad right-pads data with 0xFF to exactly size bytes.
// The input slice is not modified.
func Pad(data []byte, size int) []byte {
	out := make([]byte, size)
	copy(out, data)
	for i := len(data); i < size; i++ {
		out[i] = padByte
	}
	return out
}

// Package reads the compiled binary and EEPROM contents, pads each to its
// fixed region size, and writes the concatenated device image to imagePath
// as a full overwrite. The output is always exactly FlashSize+EEPROMSize
// bytes. Package is pure with respect to its three path arguments and
// idempotent: unchanged inputs produce byte-identical output.
func Package(binPath, eepromPath, imagePath string) error {
	binData, err := os.ReadFile(binPath)
	if err != nil {
		return fmt.Errorf("read firmware binary: %w", err)
	}
	if len(binData) > FlashSize {
		return &TooLargeError{Path: binPath, Size: len(binData), Limit: FlashSize}
	}

	eepromData, err := os.ReadFile(eepromPath)
	if err != nil {
		return fmt.Errorf("read eeprom contents: %w", err)
	}
	if len(eepromData) > EEPROMSize {
		return &TooLargeError{Path: eepromPath, Size: len(eepromData), Limit: EEPROMSize}
	}

	imageData := make([]byte, 0, FlashSize+EEPROMSize)
	imageData = append(imageData, Pad(binData, FlashSize)...)
	imageData = append(imageData, Pad(eepromData, EEPROMSize)...)

	if err := os.WriteFile(imagePath, imageData, imageFileMode); err != nil {
		return fmt.Errorf("write device image: %w", err)
	}
	return nil
}
