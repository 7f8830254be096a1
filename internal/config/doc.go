// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for softhub.
//
// Configuration is TOML, with defaults for every field, environment
// variable overrides and validation.
//
// # Key Types
//
//   - Config: top-level configuration
//   - CatalogConfig: portal origin and request timeout
//   - AssistantConfig: LLM provider, model and credential
//   - UIConfig: locale and rendering options
//   - LoggingConfig: log level and sink
//
// # Configuration Precedence
//
// Highest first:
//   - Command-line flags (applied by package cli)
//   - Environment variables (SOFTHUB_*, GEMINI_API_KEY, API_KEY), including
//     those loaded from a .env file at startup
//   - ~/.softhub/config.toml
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    // cfg still holds usable defaults
//	}
//	fmt.Println(cfg.Catalog.BaseURL)
package config
