// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// confirm.go - confirmation for overwriting commands.
//
// The pattern:
//  1. --force proceeds without prompting
//  2. --json never prompts, so --force is required
//  3. a non-terminal stdin cannot answer, so --force is required
//  4. otherwise ask [y/N] on the terminal

package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// RequireConfirmation reports whether action may proceed. An error means the
// question could not be asked; false with no error means the user declined.
func RequireConfirmation(env *Env, args Args, action string) (bool, error) {
	if args.Force {
		return true, nil
	}
	if args.JSON {
		return false, fmt.Errorf("confirmation required to %s: use --force in JSON mode", action)
	}
	if !env.Interactive {
		return false, fmt.Errorf("confirmation required to %s but stdin is not a terminal; use --force", action)
	}
	return askYesNo(env.In, env.Out, fmt.Sprintf("Are you sure you want to %s?", action))
}

// askYesNo prints question with a [y/N] suffix and reads one line.
func askYesNo(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s %s ", question, PromptStyle.Render("[y/N]:"))

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		if err == io.EOF {
			return false, nil
		}
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
