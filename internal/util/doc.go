// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util holds small helpers shared by the config, prefs and ui
// packages.
//
// # Key Functions
//
//   - AtomicWriteFile: crash-safe file replacement with fsync
//   - Truncate: display-width aware truncation with an ellipsis
//   - SingleLine: collapses whitespace runs for one-line previews
package util
