// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
type Theme struct {
	IsDark       bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// HEADER
	// ==========================================================================

	App            lipgloss.Style
	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// ==========================================================================
	// LIST PAGE
	// ==========================================================================

	SearchBox        lipgloss.Style
	SearchBoxFocused lipgloss.Style
	Tab              lipgloss.Style
	TabActive        lipgloss.Style
	Card             lipgloss.Style
	CardSelected     lipgloss.Style
	CardTitle        lipgloss.Style
	CardMeta         lipgloss.Style
	CardDescription  lipgloss.Style
	Badge            lipgloss.Style
	Rating           lipgloss.Style
	EmptyTitle       lipgloss.Style
	EmptyHint        lipgloss.Style

	// ==========================================================================
	// DETAIL PAGE
	// ==========================================================================

	DetailTitle  lipgloss.Style
	DetailMeta   lipgloss.Style
	SectionTitle lipgloss.Style
	Tag          lipgloss.Style
	Release      lipgloss.Style
	Version      lipgloss.Style
	Part         lipgloss.Style
	PartSelected lipgloss.Style
	InstallNote  lipgloss.Style
	Link         lipgloss.Style

	// ==========================================================================
	// ASSISTANT PANEL
	// ==========================================================================

	ChatPanel       lipgloss.Style
	ChatHeader      lipgloss.Style
	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	InputPrompt     lipgloss.Style
	Spinner         lipgloss.Style
	ThinkingText    lipgloss.Style

	// ==========================================================================
	// STATUS BAR
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	Muted        lipgloss.Style
}

// NewTheme builds a Theme for the given color scheme.
func NewTheme(dark bool) *Theme {
	lipgloss.SetHasDarkBackground(dark)

	t := &Theme{
		IsDark:       dark,
		ColorProfile: termenv.ColorProfile(),
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle().Padding(0, 1)

	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Teal).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Teal)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// List page
	t.SearchBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.SearchBoxFocused = t.SearchBox.
		BorderForeground(Teal)

	t.Tab = lipgloss.NewStyle().
		Foreground(TextMuted).
		Padding(0, 1)

	t.TabActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(Teal).
		Padding(0, 1)

	t.Card = lipgloss.NewStyle().
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true).
		PaddingLeft(1)

	t.CardSelected = lipgloss.NewStyle().
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(Teal).
		Background(SurfaceBright).
		PaddingLeft(1)

	t.CardTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.CardMeta = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.CardDescription = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.Badge = lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true)

	t.Rating = lipgloss.NewStyle().
		Foreground(Amber)

	t.EmptyTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextSecondary).
		MarginTop(1)

	t.EmptyHint = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Detail page
	t.DetailTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary).
		Underline(true)

	t.DetailMeta = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.SectionTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Blue).
		MarginTop(1)

	t.Tag = lipgloss.NewStyle().
		Foreground(Blue).
		Background(SurfaceDim).
		Padding(0, 1)

	t.Release = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1).
		MarginBottom(1)

	t.Version = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.Part = lipgloss.NewStyle().
		Foreground(TextSecondary).
		PaddingLeft(2)

	t.PartSelected = lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true).
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(Teal)

	t.InstallNote = lipgloss.NewStyle().
		Foreground(Amber).
		Italic(true)

	t.Link = lipgloss.NewStyle().
		Foreground(Blue).
		Underline(true)

	// Assistant panel
	t.ChatPanel = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Blue).
		Padding(0, 1)

	t.ChatHeader = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(BlueDeep).
		Padding(0, 1)

	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		Padding(0, 1).
		MarginLeft(4)

	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(AssistantBubbleFg).
		Background(AssistantBubbleBg).
		Padding(0, 1).
		MarginRight(4)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Blue).
		Bold(true)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Teal)

	t.ThinkingText = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(Emerald)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.Muted = lipgloss.NewStyle().
		Foreground(TextMuted)
}

// Shortcut renders a "key desc" hint for the status bar.
func (t *Theme) Shortcut(key, desc string) string {
	return t.ShortcutKey.Render(key) + " " + t.ShortcutDesc.Render(desc)
}
