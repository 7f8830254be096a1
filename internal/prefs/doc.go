// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package prefs persists user preferences behind a two-method Store.
//
// The only preference is the color theme. FileStore keeps it in a small TOML
// file next to the config and can watch that file so a change made from a
// second terminal reaches a running TUI. MemoryStore backs tests.
//
// # Usage
//
//	store, _ := prefs.NewFileStore("")
//	theme := prefs.LoadTheme(store, termenv.HasDarkBackground)
//	theme = theme.Toggle()
//	_ = prefs.SaveTheme(store, theme)
package prefs
