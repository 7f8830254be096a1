// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/iust/softhub/internal/config"
)

// HandleConfig shows the effective configuration, prints the file path or
// writes a default file.
func HandleConfig(env *Env, args Args) error {
	path := env.ConfigPath
	if path == "" {
		p, err := config.ConfigPathTOML()
		if err != nil {
			return &CommandError{Command: "config", Action: "locate", Err: err}
		}
		path = p
	}

	switch args.Subcommand {
	case "path":
		if args.JSON {
			return NewJSONResponse("config", map[string]string{"path": path}).Write(env.Out)
		}
		fmt.Fprintln(env.Out, path)
		return nil

	case "init":
		if _, err := os.Stat(path); err == nil {
			ok, err := RequireConfirmation(env, args, "overwrite "+path)
			if err != nil {
				return &CommandError{Command: "config", Action: "init", Err: err}
			}
			if !ok {
				fmt.Fprintln(env.Out, DimStyle.Render("Cancelled."))
				return nil
			}
		}
		if err := config.SaveTOML(config.Default(), path); err != nil {
			return &CommandError{Command: "config", Action: "init", Err: err}
		}
		env.Log.Info("config file written", "path", path)
		if args.JSON {
			return NewJSONResponse("config", map[string]string{"path": path}).Write(env.Out)
		}
		fmt.Fprintf(env.Out, "%s %s\n", SuccessStyle.Render("Wrote"), path)
		return nil

	default:
		// String redacts the API key.
		text := env.Config.String()
		if args.JSON {
			return NewJSONResponse("config", json.RawMessage(text)).Write(env.Out)
		}
		fmt.Fprintln(env.Out, DimStyle.Render("# "+path))
		fmt.Fprintln(env.Out, text)
		return nil
	}
}
