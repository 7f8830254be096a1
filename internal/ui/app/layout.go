// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

// Fixed heights of the chrome around the body. They must match what
// renderHeader, renderListChrome and renderStatusBar produce.
const (
	headerHeight    = 4 // border + title + subtitle
	statusBarHeight = 1
	searchHeight    = 3 // bordered single line
	tabsHeight      = 1
	countHeight     = 1
	cardHeight      = 3

	// splitWidth is the terminal width from which the assistant panel sits
	// beside the detail page instead of below it.
	splitWidth = 100

	// chatChrome is the panel border, header, thinking line and input.
	chatChrome = 5
)

func (m Model) bodyHeight() int {
	h := m.height - headerHeight - statusBarHeight
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) cardsPerPage() int {
	n := (m.bodyHeight() - searchHeight - tabsHeight - countHeight) / cardHeight
	if n < 1 {
		n = 1
	}
	return n
}

// panelSize returns the detail and assistant panel sizes. The assistant
// size is zero while the panel is hidden.
func (m Model) panelSize() (detailW, detailH, chatW, chatH int) {
	width := m.width
	if width <= 0 {
		width = 80
	}
	body := m.bodyHeight()
	if !m.showAssistant {
		return width, body, 0, 0
	}
	if width >= splitWidth {
		chatW = width * 2 / 5
		return width - chatW, body, chatW, body
	}
	chatH = body / 2
	return width, body - chatH, width, chatH
}

// layout resizes the viewports and input to the current window and
// re-renders their content.
func (m *Model) layout() {
	detailW, detailH, chatW, chatH := m.panelSize()

	m.detailView.Width = detailW
	m.detailView.Height = detailH
	m.search.Width = max(10, m.width-8)

	if chatW > 0 {
		m.chatView.Width = max(10, chatW-4)
		m.chatView.Height = max(1, chatH-chatChrome)
		m.input.Width = max(10, chatW-8)
	}

	m.clampCursor()
	m.refreshDetail()
	m.refreshChat()
}
