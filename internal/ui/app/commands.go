// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iust/softhub/internal/catalog"
	"github.com/iust/softhub/internal/chat"
	"github.com/iust/softhub/internal/prefs"
	"github.com/iust/softhub/internal/viewstate"
)

// =============================================================================
// COMMANDS
// =============================================================================

// loadCatalog fetches categories and the software list.
func (m Model) loadCatalog() tea.Cmd {
	if m.catalog == nil {
		return func() tea.Msg { return catalogLoadedMsg{} }
	}
	ctx, src := m.ctx, m.catalog
	return func() tea.Msg {
		categories, list := src.LoadCatalog(ctx)
		return catalogLoadedMsg{categories: categories, list: list}
	}
}

// fetchDetail fetches slug and tags the result with gen.
func (m Model) fetchDetail(gen viewstate.Generation, slug string) tea.Cmd {
	if m.catalog == nil {
		return func() tea.Msg { return detailLoadedMsg{gen: gen} }
	}
	ctx, src := m.ctx, m.catalog
	return func() tea.Msg {
		return detailLoadedMsg{gen: gen, detail: src.FetchSoftwareDetail(ctx, slug)}
	}
}

// ask runs the assistant round trip begun on conv.
func (m Model) ask(conv *chat.Controller, query string) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return chatReplyMsg{conv: conv, reply: conv.Ask(ctx, query)}
	}
}

// copySelectedPart copies the selected download URL.
func (m Model) copySelectedPart() tea.Cmd {
	if m.tab != tabVersions {
		return nil
	}
	parts := detailParts(m.view.Detail())
	if m.part < 0 || m.part >= len(parts) {
		return nil
	}
	url := m.assetURL(parts[m.part].DownloadURL)
	write := m.clipboard
	return func() tea.Msg {
		return copiedMsg{url: url, err: write(url)}
	}
}

// watchPrefs starts watching the preference store when it supports it and
// delivers the first change.
func (m Model) watchPrefs() tea.Cmd {
	w, ok := m.store.(prefs.Watcher)
	if !ok {
		return nil
	}
	ctx, ch, log := m.ctx, m.prefCh, m.log
	return func() tea.Msg {
		go func() {
			err := w.Watch(ctx, func(key, value string) {
				select {
				case ch <- prefChangedMsg{key: key, value: value}:
				case <-ctx.Done():
				}
			}, func(err error) {
				log.Warn("preference watch error", "error", err)
			})
			if err != nil {
				log.Warn("preference watch stopped", "error", err)
			}
		}()
		return waitForPref(ctx, ch)
	}
}

// waitForPref delivers the next preference change.
func (m Model) waitForPref() tea.Cmd {
	if _, ok := m.store.(prefs.Watcher); !ok {
		return nil
	}
	ctx, ch := m.ctx, m.prefCh
	return func() tea.Msg {
		return waitForPref(ctx, ch)
	}
}

func waitForPref(ctx context.Context, ch <-chan prefChangedMsg) tea.Msg {
	select {
	case msg := <-ch:
		return msg
	case <-ctx.Done():
		return nil
	}
}

func (m Model) assetURL(path string) string {
	if m.catalog == nil {
		return catalog.ResolveAssetURL(catalog.DefaultBaseURL, path)
	}
	return m.catalog.ResolveAssetURL(path)
}

// =============================================================================
// PROGRAM
// =============================================================================

// Run starts the TUI in the alternate screen and blocks until it exits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
