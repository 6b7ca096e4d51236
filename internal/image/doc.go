// SPDX-License-Identifier: MPL-2.0

// Package image composes flashable device images from compiled firmware
// artifacts. An image is a flat byte sequence of exactly FlashSize+EEPROMSize
// bytes: the program binary padded to the flash region, followed by the
// EEPROM contents padded to the EEPROM region. Padding uses 0xFF, the erased
// state of the target's non-volatile memory.
package image
