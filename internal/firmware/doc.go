// SPDX-License-Identifier: MPL-2.0

// Package firmware orchestrates containerized firmware builds for paired
// car/fob devices. It builds tagged environment images from a design's
// build directory, drives per-device compile invocations inside those
// environments with deployment-scoped secret volumes, and packages the
// compiled artifacts into flashable device images.
//
// The package never prints; every operation returns captured build output
// as a Result, and every failure preserves the diagnostics collected up to
// that point. No operation retries: all failure modes here are
// configuration or build-logic errors that would recur unchanged.
package firmware
