// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// markdown caches a glamour renderer for one width and color scheme.
type markdown struct {
	width    int
	dark     bool
	renderer *glamour.TermRenderer
}

// render renders content as markdown, falling back to the raw text when
// glamour fails.
func (md *markdown) render(content string, width int, dark bool) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	if width < 20 {
		width = 20
	}
	if md.renderer == nil || md.width != width || md.dark != dark {
		style := "light"
		if dark {
			style = "dark"
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return content
		}
		md.renderer, md.width, md.dark = r, width, dark
	}

	out, err := md.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}
