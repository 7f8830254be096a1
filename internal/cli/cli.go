// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdList
	CmdShow
	CmdAsk
	CmdChat
	CmdTheme
	CmdConfig
	CmdDoctor
	CmdVersion
	CmdHelp
)

var commandNames = map[Command]string{
	CmdTUI:     "tui",
	CmdList:    "list",
	CmdShow:    "show",
	CmdAsk:     "ask",
	CmdChat:    "chat",
	CmdTheme:   "theme",
	CmdConfig:  "config",
	CmdDoctor:  "doctor",
	CmdVersion: "version",
	CmdHelp:    "help",
}

// String returns the command name.
func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	API     string // Catalog origin override
	Locale  string // fa or en
	Verbose bool
	JSON    bool

	// Command-specific
	Query      string
	Slug       string
	Search     string
	Category   string
	Subcommand string
	Force      bool

	// Raw args (positional arguments after the command)
	Raw []string
}

// boolFlags never consume the following argument.
var boolFlags = []string{"json", "verbose", "v", "help", "h", "version", "force"}

const usageText = `softhub - IUST software center in the terminal

Browse the university software catalog, read install guides, copy download
links and ask the assistant about a package.

Usage:
  softhub                          Start the TUI (default)
  softhub tui                      Start the TUI
  softhub list                     List software
    --search TEXT                  Filter by title or description
    --category ID|SLUG|TITLE       Filter by category ("all" for every one)
  softhub show <slug>              Show one software entry with its downloads
  softhub ask "question"           Ask the assistant once
    --slug SLUG                    Use a software page as context
  softhub chat                     Chat with the assistant
    --slug SLUG                    Use a software page as context
  softhub theme [show|light|dark|toggle]
                                   Show or change the TUI theme
  softhub config [show|path|init]  Show, locate or create the config file
    --force                        Overwrite an existing file (init)
  softhub doctor                   Check config, portal, assistant and paths
  softhub version                  Show version information
  softhub help                     Show this help

Global flags:
  --api URL                        Portal origin (default https://apitest.fpna.ir)
  --locale fa|en                   Interface and assistant language
  -v, --verbose                    Debug logging
  --json                           Machine-readable output

TUI keys:
  /            search             tab, S-tab   change category
  up/down      move               enter        open
  1 2 3        detail tabs        c            copy download link
  a            assistant          t            toggle theme
  r            reload             esc          back
  q, C-c       quit

Environment:
  SOFTHUB_API_URL, SOFTHUB_LOCALE, SOFTHUB_PROVIDER, SOFTHUB_MODEL,
  SOFTHUB_ASSISTANT_KEY (or GEMINI_API_KEY, API_KEY), SOFTHUB_ASSISTANT_URL,
  SOFTHUB_LOG_LEVEL, SOFTHUB_LOG_FILE, SOFTHUB_DEV

Examples:
  softhub list --category 1 --search cad
  softhub show autocad --json
  softhub ask "Which MATLAB toolboxes are included?" --slug matlab
`

// PrintUsage writes the help text.
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, usageText)
}

// PrintVersion writes version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "softhub version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "  Go:         %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Parse parses command-line arguments (without the program name) and
// returns the command and args. Missing required input is reported as a
// *MissingArgumentError, anything unparseable as a *UsageError.
func Parse(argv []string) (Command, Args, error) {
	p := NewArgParser(argv, boolFlags...)

	args := Args{
		API:      p.Flag("api"),
		Locale:   p.Flag("locale"),
		Verbose:  p.BoolFlag("verbose", "v"),
		JSON:     p.BoolFlag("json"),
		Search:   p.Flag("search"),
		Category: p.Flag("category"),
		Slug:     p.Flag("slug"),
		Force:    p.BoolFlag("force"),
		Raw:      p.PositionalFrom(1),
	}

	if p.BoolFlag("help", "h") {
		return CmdHelp, args, nil
	}
	if p.BoolFlag("version") {
		return CmdVersion, args, nil
	}

	switch strings.ToLower(p.Subcommand()) {
	case "", "tui":
		return CmdTUI, args, nil

	case "list", "ls":
		return CmdList, args, nil

	case "show":
		args.Slug = p.Positional(1)
		if args.Slug == "" {
			return CmdShow, args, &MissingArgumentError{Command: "show", Argument: "a slug", Usage: "softhub show <slug>"}
		}
		return CmdShow, args, nil

	case "ask":
		args.Query = strings.TrimSpace(JoinPositionalArgs(p, 1))
		if args.Query == "" {
			return CmdAsk, args, &MissingArgumentError{Command: "ask", Argument: "a question", Usage: `softhub ask "question" [--slug SLUG]`}
		}
		return CmdAsk, args, nil

	case "chat":
		return CmdChat, args, nil

	case "theme":
		args.Subcommand = strings.ToLower(p.Positional(1))
		switch args.Subcommand {
		case "":
			args.Subcommand = "show"
		case "show", "light", "dark", "toggle":
		default:
			return CmdTheme, args, &UsageError{Msg: fmt.Sprintf("unknown theme subcommand %q (want show, light, dark or toggle)", args.Subcommand)}
		}
		return CmdTheme, args, nil

	case "config":
		args.Subcommand = strings.ToLower(p.Positional(1))
		switch args.Subcommand {
		case "":
			args.Subcommand = "show"
		case "show", "path", "init":
		default:
			return CmdConfig, args, &UsageError{Msg: fmt.Sprintf("unknown config subcommand %q (want show, path or init)", args.Subcommand)}
		}
		return CmdConfig, args, nil

	case "doctor", "diag":
		return CmdDoctor, args, nil

	case "version":
		return CmdVersion, args, nil

	case "help":
		return CmdHelp, args, nil

	default:
		return CmdHelp, args, &UsageError{Msg: fmt.Sprintf("unknown command %q, run 'softhub help'", p.Subcommand())}
	}
}
