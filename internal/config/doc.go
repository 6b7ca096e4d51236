// SPDX-License-Identifier: MPL-2.0

// Package config resolves build defaults: the environment image repository,
// the design's build directory and manifest filename, and the per-role make
// targets. Values come from an optional TOML config file and FPBUILD_*
// environment variables; the core packages receive them as plain parameters
// and never consult configuration themselves.
package config
