// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iust/softhub/internal/catalog"
	"github.com/iust/softhub/internal/util"
	"github.com/iust/softhub/internal/viewstate"
)

// =============================================================================
// LIST PAGE
// =============================================================================

func (m Model) renderListPage() string {
	var b strings.Builder
	b.WriteString(m.renderSearchBox())
	b.WriteString("\n")
	b.WriteString(m.renderCategoryTabs())
	b.WriteString("\n")

	if m.loading && !m.view.Loaded() {
		b.WriteString(m.spinner.View() + " " + m.theme.Muted.Render(m.bundle.Loading))
		return b.String()
	}

	visible := m.view.VisibleSoftware()
	b.WriteString(m.theme.Muted.Render(fmt.Sprintf("%s / %s",
		m.bundle.FormatCount(len(visible)),
		m.bundle.FormatCount(m.view.Total()),
	)))
	b.WriteString("\n")

	if len(visible) == 0 {
		b.WriteString(m.theme.EmptyTitle.Render(m.bundle.NoResults))
		b.WriteString("\n")
		b.WriteString(m.theme.EmptyHint.Render(m.bundle.NoResultsHint))
		return b.String()
	}

	end := min(len(visible), m.offset+m.cardsPerPage())
	cards := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		cards = append(cards, m.renderCard(visible[i], i == m.cursor))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, cards...))
	return b.String()
}

func (m Model) renderSearchBox() string {
	style := m.theme.SearchBox
	if m.focus == focusSearch {
		style = m.theme.SearchBoxFocused
	}
	return style.Width(max(20, m.width-4)).Render(m.search.View())
}

func (m Model) renderCategoryTabs() string {
	selected := m.view.SelectedCategory()

	tabs := make([]string, 0, len(m.view.Categories())+1)
	tabs = append(tabs, m.renderTab(m.bundle.All, selected.IsAll()))
	for _, c := range m.view.Categories() {
		id, ok := selected.ID()
		tabs = append(tabs, m.renderTab(c.Title, ok && id == c.ID))
	}
	return lipgloss.NewStyle().MaxWidth(max(20, m.width)).Render(strings.Join(tabs, " "))
}

func (m Model) renderTab(label string, active bool) string {
	if active {
		return m.theme.TabActive.Render(label)
	}
	return m.theme.Tab.Render(label)
}

// renderCard renders one software entry as three lines.
func (m Model) renderCard(s catalog.SoftwareSummary, selected bool) string {
	t := m.theme
	inner := max(20, m.width-6)

	title := t.CardTitle.Render(util.Truncate(s.Title, inner/2))
	if s.Category != "" {
		title += "  " + t.Badge.Render(s.Category)
	}

	var meta []string
	if s.LatestVersion != "" {
		meta = append(meta, "v"+s.LatestVersion)
	}
	meta = append(meta, m.bundle.FormatCount(s.DownloadCount)+" "+m.bundle.Downloads)
	meta = append(meta, t.Rating.Render("★ "+s.Rating.String()))

	desc := t.CardDescription.Render(util.Truncate(util.SingleLine(s.ShortDescription), inner))

	body := title + "\n" + t.CardMeta.Render(strings.Join(meta, " · ")) + "\n" + desc
	if selected {
		return t.CardSelected.Width(inner + 2).Render(body)
	}
	return t.Card.Width(inner + 2).Render(body)
}

// selectedSlug returns the slug under the cursor on the list page.
func (m Model) selectedSlug() string {
	if m.view.Page() != viewstate.PageList {
		return m.view.ActiveSlug()
	}
	visible := m.view.VisibleSoftware()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return ""
	}
	return visible[m.cursor].Slug
}
