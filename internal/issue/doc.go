// SPDX-License-Identifier: MPL-2.0

// Package issue builds user-facing errors that carry enough context to be
// actionable: the operation that failed, the resource involved, and
// suggestions for fixing it. The CLI layer renders these; internal packages
// only construct them.
package issue
