// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iust/softhub/internal/viewstate"
)

// View renders the model.
func (m Model) View() string {
	var body string
	if m.view.Page() == viewstate.PageDetail {
		body = m.renderDetailPage()
	} else {
		body = m.renderListPage()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		lipgloss.NewStyle().Height(m.bodyHeight()).MaxHeight(m.bodyHeight()).Render(body),
		m.renderStatusBar(),
	)
}

func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render(m.bundle.AppTitle)
	subtitle := m.theme.HeaderSubtitle.Render(m.bundle.AppSubtitle)
	return m.theme.Header.Width(max(20, m.width-2)).Render(title + "\n" + subtitle)
}

func (m Model) renderStatusBar() string {
	t := m.theme

	var hints []string
	switch {
	case m.focus == focusSearch:
		hints = []string{t.Shortcut("enter", "done"), t.Shortcut("esc", "close")}
	case m.focus == focusChat:
		hints = []string{t.Shortcut("enter", "send"), t.Shortcut("esc", "leave input")}
	case m.view.Page() == viewstate.PageDetail:
		hints = []string{
			t.Shortcut("esc", "back"),
			t.Shortcut("1/2/3", "tabs"),
			t.Shortcut("c", "copy"),
			t.Shortcut("a", "assistant"),
			t.Shortcut("t", "theme"),
			t.Shortcut("q", "quit"),
		}
	default:
		hints = []string{
			t.Shortcut("/", "search"),
			t.Shortcut("tab", "category"),
			t.Shortcut("enter", "open"),
			t.Shortcut("r", "reload"),
			t.Shortcut("t", "theme"),
			t.Shortcut("q", "quit"),
		}
	}

	line := strings.Join(hints, "  ")
	if m.status != "" {
		style := t.SuccessStyle
		if m.statusErr {
			style = t.ErrorStyle
		}
		line = style.Render(m.status) + "  " + line
	}
	return t.StatusBar.Width(max(20, m.width)).MaxHeight(statusBarHeight).Render(line)
}
