// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iust/softhub/internal/util"
)

// =============================================================================
// ASSISTANT PANEL
// =============================================================================

func (m Model) renderChatPanel() string {
	t := m.theme
	_, _, w, h := m.panelSize()

	thinking := ""
	if m.conv != nil && m.conv.Waiting() {
		thinking = m.spinner.View() + " " + t.ThinkingText.Render(m.bundle.Thinking)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		t.ChatHeader.Render(m.bundle.AssistantTitle),
		m.chatView.View(),
		thinking,
		t.InputPrompt.Render(m.input.View()),
	)
	return t.ChatPanel.Width(max(10, w-2)).MaxHeight(max(1, h)).Render(content)
}

// refreshChat re-renders the transcript into its viewport and scrolls to
// the newest message.
func (m *Model) refreshChat() {
	if m.conv == nil {
		m.chatView.SetContent("")
		return
	}
	width := m.chatView.Width
	bubble := max(10, width-6)

	var parts []string
	for _, msg := range m.conv.Transcript() {
		if msg.IsUser() {
			style := m.theme.UserBubble
			if util.Width(msg.Content) > bubble {
				style = style.Width(bubble)
			}
			parts = append(parts, lipgloss.PlaceHorizontal(width, lipgloss.Right, style.Render(msg.Content)))
			continue
		}
		rendered := m.chatMD.render(msg.Content, bubble, m.theme.IsDark)
		if rendered == "" {
			rendered = msg.Content
		}
		parts = append(parts, m.theme.AssistantBubble.Render(rendered))
	}
	m.chatView.SetContent(strings.Join(parts, "\n\n"))
	m.chatView.GotoBottom()
}
