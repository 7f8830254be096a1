// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app is the Bubble Tea root model of the softhub TUI.
//
// The model owns one viewstate.Controller for the list and detail pages,
// one chat.Controller per opened detail, the active styles.Theme and the
// preference store the theme is persisted in. All network work runs as
// tea.Cmd values; results come back as messages and are applied in Update.
//
// # Screens
//
//   - List: search box, category tabs, software cards
//   - Detail: header, tags and features, versions/description/guide tabs
//   - Assistant: a panel next to the detail page
//
// # Usage
//
//	m := app.New(ctx, app.Options{Catalog: client, Assistant: helper, Bundle: bundle})
//	err := app.Run(ctx, m)
package app
