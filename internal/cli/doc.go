// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the non-interactive
// commands of softhub.
//
// # Key Types
//
//   - Command: Enumeration of all available CLI commands
//   - Args: Parsed command-line arguments with global and command-specific flags
//   - Env: Clients, locale and writers shared by the handlers
//   - JSONResponse: The envelope printed by every --json command
//
// # Usage
//
//	cmd, args, err := cli.Parse(os.Args[1:])
//	if err != nil {
//	    cli.DisplayError(os.Stderr, cmd.String(), err, args.JSON)
//	    os.Exit(cli.GetExitCode(err))
//	}
//	err = cli.Run(ctx, env, cmd, args)
//
// # Commands Overview
//
//   - list: Filtered catalog table
//   - show: One software entry with releases and download links
//   - ask: Single assistant question
//   - chat: Interactive assistant session
//   - theme: Saved TUI theme
//   - config: Configuration file management
//   - doctor: Health checks for config, portal, assistant and paths
package cli
