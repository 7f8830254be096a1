// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging wraps zap with the small surface softhub needs.
//
// The TUI owns stdout and stderr while it runs, so log output goes to a file
// sink under the config directory. Key/value pairs pass through a sanitizer
// that redacts credentials before they reach any encoder.
//
// # Usage
//
//	log, err := logging.New(logging.Options{Level: "info", File: path})
//	if err != nil {
//	    return err
//	}
//	defer log.Sync()
//	log.Info("catalog loaded", "categories", 12, "software", 240)
//
// Tests use Nop, which discards everything.
package logging
