// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package catalog is the client for the software portal's REST API.
//
// The portal exposes three read-only endpoints:
//
//	GET /software/categories/       -> []Category
//	GET /software/list/             -> {count, results: []SoftwareSummary}
//	GET /software/detail/{slug}/    -> SoftwareDetail (404 when missing)
//
// The client never returns transport or decoding errors to its callers.
// Every failure is logged and degrades to an empty value (an empty slice,
// a zero SoftwareList or a nil detail), leaving the caller to render the
// empty state.
//
// # Key Types
//
//   - Client: HTTP client bound to one portal origin
//   - Category, SoftwareSummary, SoftwareDetail: wire types
//   - Rating: tolerant numeric type for the rating field
package catalog
