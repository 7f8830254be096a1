// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iust/softhub/internal/catalog"
)

// =============================================================================
// DETAIL PAGE
// =============================================================================

// detailParts flattens the parts of every release in display order.
func detailParts(d *catalog.SoftwareDetail) []catalog.DownloadPart {
	if d == nil {
		return nil
	}
	var parts []catalog.DownloadPart
	for _, r := range d.Releases {
		parts = append(parts, r.Parts...)
	}
	return parts
}

func (m Model) renderDetailPage() string {
	t := m.theme

	if !m.view.DetailLoaded() {
		return m.spinner.View() + " " + t.Muted.Render(m.bundle.Loading)
	}
	if m.view.Detail() == nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			t.ErrorStyle.Render(m.bundle.NotFound),
			"",
			t.Shortcut("esc", m.bundle.Back),
		)
	}

	page := m.detailView.View()
	if !m.showAssistant {
		return page
	}
	panel := m.renderChatPanel()
	if m.width >= splitWidth {
		return lipgloss.JoinHorizontal(lipgloss.Top, page, panel)
	}
	return lipgloss.JoinVertical(lipgloss.Left, page, panel)
}

// refreshDetail re-renders the detail page into its viewport.
func (m *Model) refreshDetail() {
	d := m.view.Detail()
	if d == nil {
		m.detailView.SetContent("")
		return
	}
	m.detailView.SetContent(m.renderDetailContent(d, max(20, m.detailView.Width-2)))
}

func (m Model) renderDetailContent(d *catalog.SoftwareDetail, width int) string {
	t := m.theme
	var b strings.Builder

	b.WriteString(t.DetailTitle.Render(d.Title))
	b.WriteString("\n")

	var meta []string
	if d.Developer != "" {
		meta = append(meta, m.bundle.Developer+": "+d.Developer)
	}
	if d.Category.Title != "" {
		meta = append(meta, m.bundle.Category+": "+d.Category.Title)
	}
	meta = append(meta, t.Rating.Render("★ "+d.Rating.String()))
	meta = append(meta, m.bundle.FormatCount(d.DownloadCount)+" "+m.bundle.Downloads)
	b.WriteString(t.DetailMeta.Render(strings.Join(meta, " · ")))
	b.WriteString("\n")

	if d.CoverImage != "" {
		b.WriteString(t.Link.Render(m.assetURL(d.CoverImage)))
		b.WriteString("\n")
	}

	if len(d.Tags) > 0 {
		tags := make([]string, 0, len(d.Tags))
		for _, tag := range d.Tags {
			tags = append(tags, t.Tag.Render(tag))
		}
		b.WriteString(t.SectionTitle.Render(m.bundle.Tags))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(width).Render(strings.Join(tags, " ")))
		b.WriteString("\n")
	}

	if len(d.Features) > 0 {
		b.WriteString(t.SectionTitle.Render(m.bundle.Features))
		b.WriteString("\n")
		for _, f := range d.Features {
			b.WriteString(lipgloss.NewStyle().Width(width).Render("• " + f.Text))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderDetailTabs())
	b.WriteString("\n\n")

	switch m.tab {
	case tabDescription:
		b.WriteString(m.md.render(d.Description, width, m.theme.IsDark))
	case tabGuide:
		guide := d.InstallationGuide
		if strings.TrimSpace(guide) == "" {
			guide = m.bundle.FallbackGuide
		}
		b.WriteString(m.md.render(guide, width, m.theme.IsDark))
	default:
		b.WriteString(m.renderReleases(d, width))
	}
	return b.String()
}

func (m Model) renderDetailTabs() string {
	labels := []string{m.bundle.TabVersions, m.bundle.TabDescription, m.bundle.TabGuide}
	tabs := make([]string, len(labels))
	for i, label := range labels {
		tabs[i] = m.renderTab(fmt.Sprintf("%d %s", i+1, label), detailTab(i) == m.tab)
	}
	return strings.Join(tabs, " ")
}

func (m Model) renderReleases(d *catalog.SoftwareDetail, width int) string {
	t := m.theme
	if len(d.Releases) == 0 {
		return t.Muted.Render(m.bundle.NoReleases)
	}

	boxes := make([]string, 0, len(d.Releases)+1)
	index := 0
	for _, r := range d.Releases {
		var b strings.Builder
		b.WriteString(t.Version.Render(r.Version))
		if r.Platform != "" {
			b.WriteString(t.Muted.Render("  " + r.Platform))
		}
		b.WriteString("\n")
		if d.UpdatedAt != "" {
			b.WriteString(t.Muted.Render(m.bundle.LastUpdate + ": " + m.bundle.FormatDate(d.UpdatedAt)))
			b.WriteString("\n")
		}

		for _, p := range r.Parts {
			line := fmt.Sprintf("%s %d", m.bundle.Part, p.PartNumber)
			if p.FileSize != "" {
				line += " · " + p.FileSize
			}
			line += "\n" + m.assetURL(p.DownloadURL)
			if index == m.part {
				b.WriteString(t.PartSelected.Render(line))
			} else {
				b.WriteString(t.Part.Render(line))
			}
			b.WriteString("\n")
			index++
		}

		if note := strings.TrimSpace(r.SpecificInstallGuide); note != "" {
			b.WriteString(t.InstallNote.Width(max(10, width-4)).Render(m.bundle.InstallNote + " " + note))
			b.WriteString("\n")
		}
		boxes = append(boxes, t.Release.Width(max(10, width-2)).Render(strings.TrimRight(b.String(), "\n")))
	}
	boxes = append(boxes, t.Muted.Render(m.bundle.BrokenLinkNotice))
	return lipgloss.JoinVertical(lipgloss.Left, boxes...)
}
