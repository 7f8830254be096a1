// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"

	"github.com/iust/softhub/internal/prefs"
)

// HandleTheme shows or changes the saved TUI theme.
func HandleTheme(env *Env, args Args) error {
	current := env.theme()
	next := current

	switch args.Subcommand {
	case "", "show":
	case "toggle":
		next = current.Toggle()
	default:
		t, err := prefs.ParseTheme(args.Subcommand)
		if err != nil {
			return &UsageError{Msg: err.Error()}
		}
		next = t
	}

	changed := args.Subcommand != "" && args.Subcommand != "show"
	if changed {
		if env.Store == nil {
			return &CommandError{Command: "theme", Action: "save", Err: errors.New("no preference store")}
		}
		if err := prefs.SaveTheme(env.Store, next); err != nil {
			return &CommandError{Command: "theme", Action: "save", Err: err}
		}
		env.Log.Info("theme saved", "theme", string(next))
	}

	if args.JSON {
		return NewJSONResponse("theme", map[string]interface{}{
			"theme":   string(next),
			"changed": changed,
		}).Write(env.Out)
	}
	if changed {
		fmt.Fprintf(env.Out, "%s %s\n", SuccessStyle.Render("Theme set to"), next)
		return nil
	}
	fmt.Fprintln(env.Out, string(next))
	return nil
}
