// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the softhub TUI.
//
// Colors are lipgloss.AdaptiveColor values. Which half is used follows the
// persisted theme preference rather than terminal detection: NewTheme sets
// lipgloss' dark-background flag before building styles, so toggling the
// theme is a matter of building a new Theme.
//
// # Key Types
//
//   - Theme: every lipgloss.Style the screens use
//
// # Usage
//
//	theme := styles.NewTheme(true) // dark
//	fmt.Println(theme.CardTitle.Render("MATLAB"))
package styles
