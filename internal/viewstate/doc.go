// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package viewstate derives what the catalog screens show from the fetched
// collections plus the user's transient inputs.
//
// The Controller owns the current page, search term and category filter,
// and the detail record for the active slug. It never fetches anything
// itself. Callers fetch on EnterDetail and hand the result back through
// ApplyDetail together with the Generation they were given, which lets the
// controller drop results that arrive after the user has moved on.
//
// # Filtering
//
// A summary is visible when its title contains the search term ignoring
// case, or its short description contains the term exactly, and the
// category filter passes. Summaries carry their category as a title, so a
// selected category id is first resolved to a title. An id that does not
// resolve lets everything through.
//
// The Controller is not safe for concurrent use; it belongs to the UI
// event loop.
package viewstate
