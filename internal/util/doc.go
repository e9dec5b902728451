// Copyright (c) 2025 Plume Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across plume packages.
//
// String utilities:
//   - TruncateRunes: UTF-8 safe truncation with ellipsis
//   - TruncateWidth: display-width aware truncation for TUI layout
//
// File operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
package util
