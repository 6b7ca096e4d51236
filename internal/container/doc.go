// SPDX-License-Identifier: MPL-2.0

// Package container provides an abstraction layer for container runtimes
// (Docker/Podman) used to host reproducible firmware build environments.
//
// Invocations are never assembled as interpolated command strings: build and
// run requests are described by structured option types whose fields are
// validated and then rendered into an argument slice for the engine binary.
// This makes the exact CLI invocation testable without executing anything.
package container
