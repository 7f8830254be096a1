// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/glamour"

	"github.com/iust/softhub/internal/catalog"
	"github.com/iust/softhub/internal/chat"
	"github.com/iust/softhub/internal/config"
	"github.com/iust/softhub/internal/locale"
	"github.com/iust/softhub/internal/logging"
	"github.com/iust/softhub/internal/prefs"
)

// CatalogSource is the part of catalog.Client the commands use.
type CatalogSource interface {
	LoadCatalog(ctx context.Context) ([]catalog.Category, catalog.SoftwareList)
	FetchSoftwareDetail(ctx context.Context, slug string) *catalog.SoftwareDetail
	ResolveAssetURL(path string) string
}

// Env carries everything a command handler needs.
type Env struct {
	Config     *config.Config
	ConfigPath string
	Catalog    CatalogSource
	Assistant  chat.Asker
	Bundle     *locale.Bundle
	Store      prefs.Store
	DetectDark func() bool
	Log        *logging.Logger

	In  io.Reader
	Out io.Writer
	Err io.Writer

	// Interactive is set when In is a terminal that can answer prompts.
	Interactive bool

	// Color enables ANSI output: markdown rendering and JSON highlighting.
	Color bool
}

// normalize fills unset fields with process defaults.
func (e *Env) normalize() {
	if e.Config == nil {
		e.Config = config.Default()
	}
	if e.Bundle == nil {
		e.Bundle = locale.For(e.Config.UI.Locale)
	}
	if e.Log == nil {
		e.Log = logging.Nop()
	}
	if e.In == nil {
		e.In = os.Stdin
	}
	if e.Out == nil {
		e.Out = os.Stdout
	}
	if e.Err == nil {
		e.Err = os.Stderr
	}
}

// theme returns the saved theme, falling back to terminal detection.
func (e *Env) theme() prefs.Theme {
	return prefs.LoadTheme(e.Store, e.DetectDark)
}

// wrapWidth is the markdown word-wrap column.
func (e *Env) wrapWidth() int {
	if e.Config != nil && e.Config.UI.WordWrap > 0 {
		return e.Config.UI.WordWrap
	}
	return GetTerminalWidth() - 2
}

// renderMarkdown renders content for terminal display. Plain output is
// returned unchanged so piped output stays clean.
func (e *Env) renderMarkdown(content string) string {
	if !e.Color {
		return content
	}
	style := "light"
	if e.theme().IsDark() {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(e.wrapWidth()),
	)
	if err != nil {
		return content
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// Run dispatches every non-TUI command.
func Run(ctx context.Context, env *Env, cmd Command, args Args) error {
	env.normalize()
	env.Log.Debug("running command", "command", cmd.String())

	switch cmd {
	case CmdList:
		return HandleList(ctx, env, args)
	case CmdShow:
		return HandleShow(ctx, env, args)
	case CmdAsk:
		return HandleAsk(ctx, env, args)
	case CmdChat:
		return HandleChat(ctx, env, args)
	case CmdTheme:
		return HandleTheme(env, args)
	case CmdConfig:
		return HandleConfig(env, args)
	case CmdDoctor:
		return HandleDoctor(ctx, env, args)
	case CmdVersion:
		PrintVersion(env.Out)
		return nil
	default:
		PrintUsage(env.Out)
		return nil
	}
}
