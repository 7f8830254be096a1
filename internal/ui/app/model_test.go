// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iust/softhub/internal/catalog"
	"github.com/iust/softhub/internal/catalog/catalogtest"
	"github.com/iust/softhub/internal/locale"
	"github.com/iust/softhub/internal/logging"
	"github.com/iust/softhub/internal/prefs"
	"github.com/iust/softhub/internal/viewstate"
)

// =============================================================================
// HELPERS
// =============================================================================

type recordingAsker struct {
	mu      sync.Mutex
	queries []string
	context []string
	reply   string
}

func (a *recordingAsker) Ask(_ context.Context, query, contextText string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.queries = append(a.queries, query)
	a.context = append(a.context, contextText)
	return a.reply
}

type fakeClipboard struct {
	written []string
	err     error
}

func (c *fakeClipboard) write(s string) error {
	c.written = append(c.written, s)
	return c.err
}

type harness struct {
	server    *catalogtest.Server
	asker     *recordingAsker
	clipboard *fakeClipboard
	store     *prefs.MemoryStore
	bundle    *locale.Bundle
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		server:    catalogtest.NewServer(),
		asker:     &recordingAsker{reply: "Use the **installer**."},
		clipboard: &fakeClipboard{},
		store:     prefs.NewMemoryStore(),
		bundle:    locale.For("en"),
	}
	t.Cleanup(h.server.Close)
	return h
}

func (h *harness) model() Model {
	client := catalog.NewClient(&catalog.ClientConfig{
		BaseURL: h.server.URL,
		Timeout: 5 * time.Second,
	}, logging.Nop())
	m := New(context.Background(), Options{
		Catalog:    client,
		Assistant:  h.asker,
		Bundle:     h.bundle,
		Store:      h.store,
		DetectDark: func() bool { return false },
		Clipboard:  h.clipboard.write,
	})
	m, _ = send(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

// loaded returns a model with the catalog already applied.
func (h *harness) loaded(t *testing.T) Model {
	t.Helper()
	m := h.model()
	m, _ = send(m, m.loadCatalog()())
	require.True(t, m.ViewState().Loaded())
	return m
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func press(m Model, k string) (Model, tea.Cmd) {
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		msg = tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	return send(m, msg)
}

// run executes cmd and feeds its message back into the model.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	m, _ = send(m, cmd())
	return m
}

func visibleTitles(m Model) []string {
	var out []string
	for _, s := range m.ViewState().VisibleSoftware() {
		out = append(out, s.Title)
	}
	return out
}

// openAutoCAD opens the first card and applies its detail.
func openAutoCAD(t *testing.T, m Model) Model {
	t.Helper()
	m, cmd := press(m, "enter")
	require.Equal(t, viewstate.PageDetail, m.ViewState().Page())
	require.Equal(t, "autocad", m.ViewState().ActiveSlug())
	m = run(t, m, cmd)
	require.NotNil(t, m.ViewState().Detail())
	return m
}

// =============================================================================
// LIST PAGE
// =============================================================================

func TestInitLoadsCatalog(t *testing.T) {
	h := newHarness(t)
	m := h.model()

	assert.True(t, m.loading)
	assert.Contains(t, m.View(), h.bundle.Loading)
	assert.NotNil(t, m.Init())

	m, _ = send(m, m.loadCatalog()())
	assert.False(t, m.loading)
	assert.Equal(t, []string{"AutoCAD 2024", "Visual Studio Code", "MATLAB R2023b"}, visibleTitles(m))

	view := m.View()
	assert.Contains(t, view, h.bundle.AppTitle)
	assert.Contains(t, view, "AutoCAD 2024")
	assert.Contains(t, view, "Engineering")
}

func TestCategoryTabsCycle(t *testing.T) {
	h := newHarness(t)
	m := h.loaded(t)

	m, _ = press(m, "tab")
	id, ok := m.ViewState().SelectedCategory().ID()
	require.True(t, ok)
	assert.Equal(t, 1, id)
	assert.Equal(t, []string{"AutoCAD 2024", "MATLAB R2023b"}, visibleTitles(m))

	m, _ = press(m, "shift+tab")
	assert.True(t, m.ViewState().SelectedCategory().IsAll())
	assert.Len(t, visibleTitles(m), 3)
}

func TestSearchFiltersLive(t *testing.T) {
	h := newHarness(t)
	m := h.loaded(t)

	m, _ = press(m, "/")
	assert.Equal(t, focusSearch, m.focus)

	m, _ = press(m, "visual")
	assert.Equal(t, "visual", m.ViewState().SearchTerm())
	assert.Equal(t, []string{"Visual Studio Code"}, visibleTitles(m))

	// q is typed into the box, not treated as quit.
	m, cmd := press(m, "q")
	assert.Equal(t, "visualq", m.ViewState().SearchTerm())
	if cmd != nil {
		_, isQuit := cmd().(tea.QuitMsg)
		assert.False(t, isQuit)
	}

	m, _ = press(m, "esc")
	assert.Equal(t, focusNone, m.focus)
	assert.Equal(t, "visualq", m.ViewState().SearchTerm())
	assert.Contains(t, m.View(), h.bundle.NoResults)

	// esc on the list clears the search.
	m, _ = press(m, "esc")
	assert.Empty(t, m.ViewState().SearchTerm())
	assert.Len(t, visibleTitles(m), 3)
}

func TestCursorStaysInRange(t *testing.T) {
	h := newHarness(t)
	m := h.loaded(t)

	m, _ = press(m, "up")
	assert.Equal(t, 0, m.cursor)
	for i := 0; i < 5; i++ {
		m, _ = press(m, "down")
	}
	assert.Equal(t, 2, m.cursor)
	assert.Equal(t, "matlab", m.selectedSlug())

	m, _ = press(m, "tab") // Engineering: 2 entries
	assert.Equal(t, 0, m.cursor)
}

// =============================================================================
// DETAIL PAGE
// =============================================================================

func TestOpenDetail(t *testing.T) {
	h := newHarness(t)
	m := h.loaded(t)

	m, cmd := press(m, "enter")
	assert.Contains(t, m.View(), h.bundle.Loading)

	m = run(t, m, cmd)
	d := m.ViewState().Detail()
	require.NotNil(t, d)
	assert.Equal(t, "AutoCAD 2024", d.Title)
	assert.Equal(t, tabVersions, m.tab)

	require.NotNil(t, m.Chat())
	transcript := m.Chat().Transcript()
	require.Len(t, transcript, 1)
	assert.Equal(t, h.bundle.Greeting, transcript[0].Content)

	content := m.renderDetailContent(d, 100)
	assert.Contains(t, content, "Autodesk")
	assert.Contains(t, content, "2024.1")
	assert.Contains(t, content, "https://dl.example.edu/autocad/2024.1.part1.rar")
	assert.Contains(t, content, "Run setup.exe as administrator.")
	assert.Contains(t, content, h.server.URL+"/media/covers/autocad.png")
	assert.Contains(t, content, "2024-03-20")
}

func TestDetailNotFound(t *testing.T) {
	h := newHarness(t)
	m := h.loaded(t)

	m, _ = press(m, "down")
	m, cmd := press(m, "enter")
	require.Equal(t, "vscode", m.ViewState().ActiveSlug())
	m = run(t, m, cmd)

	assert.True(t, m.ViewState().DetailLoaded())
	assert.Nil(t, m.ViewState().Detail())
	assert.Nil(t, m.Chat())
	assert.Contains(t, m.View(), h.bundle.NotFound)

	m, _ = press(m, "esc")
	assert.Equal(t, viewstate.PageList, m.ViewState().Page())
}

func TestStaleDetailIsDropped(t *testing.T) {
	h := newHarness(t)
	m := h.loaded(t)

	m, first := press(m, "enter")
	m, _ = press(m, "esc")
	m, _ = press(m, "down")
	m, _ = press(m, "down")
	m, second := press(m, "enter")
	require.Equal(t, "matlab", m.ViewState().ActiveSlug())

	m = run(t, m, first)
	assert.False(t, m.ViewState().DetailLoaded())
	assert.Nil(t, m.Chat())

	m = run(t, m, second)
	assert.True(t, m.ViewState().DetailLoaded())
}

func TestDetailTabs(t *testing.T) {
	h := newHarness(t)
	m := openAutoCAD(t, h.loaded(t))

	m, _ = press(m, "2")
	assert.Equal(t, tabDescription, m.tab)
	m, _ = press(m, "right")
	assert.Equal(t, tabGuide, m.tab)
	assert.Contains(t, m.renderDetailContent(m.ViewState().Detail(), 100), "Setup")
	m, _ = press(m, "right")
	assert.Equal(t, tabVersions, m.tab)
	m, _ = press(m, "left")
	assert.Equal(t, tabGuide, m.tab)
	m, _ = press(m, "1")
	assert.Equal(t, tabVersions, m.tab)
}

func TestCopySelectedPart(t *testing.T) {
	h := newHarness(t)
	m := openAutoCAD(t, h.loaded(t))

	m, _ = press(m, "down")
	assert.Equal(t, 1, m.part)
	m, _ = press(m, "down")
	m, _ = press(m, "down")
	assert.Equal(t, 2, m.part, "selection stops at the last part")
	m, _ = press(m, "up")

	m, cmd := press(m, "c")
	m = run(t, m, cmd)
	assert.Equal(t, []string{"https://dl.example.edu/autocad/2024.1.part2.rar"}, h.clipboard.written)
	assert.Equal(t, h.bundle.Copied, m.status)
	assert.False(t, m.statusErr)

	h.clipboard.err = errors.New("no clipboard")
	m, cmd = press(m, "c")
	m = run(t, m, cmd)
	assert.True(t, m.statusErr)

	m, _ = press(m, "2")
	_, cmd = press(m, "c")
	assert.Nil(t, cmd, "copy only works on the versions tab")
}

// =============================================================================
// ASSISTANT
// =============================================================================

func TestAssistantRoundTrip(t *testing.T) {
	h := newHarness(t)
	m := openAutoCAD(t, h.loaded(t))

	m, _ = press(m, "a")
	require.True(t, m.showAssistant)
	require.Equal(t, focusChat, m.focus)

	// Empty input is ignored.
	m, cmd := press(m, "enter")
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.Chat().Len())

	m, _ = press(m, "How do I install it?")
	m, cmd = press(m, "enter")
	require.NotNil(t, cmd)
	assert.True(t, m.Chat().Waiting())
	assert.Empty(t, m.input.Value())
	assert.Contains(t, m.View(), h.bundle.Thinking)

	// A second question while waiting is rejected.
	m, _ = press(m, "again")
	_, blocked := press(m, "enter")
	assert.Nil(t, blocked)

	m = run(t, m, cmd)
	assert.False(t, m.Chat().Waiting())
	transcript := m.Chat().Transcript()
	require.Len(t, transcript, 3)
	assert.Equal(t, "How do I install it?", transcript[1].Content)
	assert.Equal(t, "Use the **installer**.", transcript[2].Content)

	require.Len(t, h.asker.context, 1)
	assert.Equal(t, m.ViewState().Detail().Context(), h.asker.context[0])

	m, _ = press(m, "esc")
	assert.Equal(t, focusNone, m.focus)
	m, _ = press(m, "esc")
	assert.False(t, m.showAssistant)
	assert.Equal(t, viewstate.PageDetail, m.ViewState().Page())
}

func TestLateReplyAfterLeavingDetail(t *testing.T) {
	h := newHarness(t)
	m := openAutoCAD(t, h.loaded(t))

	m, _ = press(m, "a")
	m, _ = press(m, "hello")
	m, cmd := press(m, "enter")
	conv := m.Chat()

	m, _ = press(m, "esc")
	m, _ = press(m, "esc")
	m, _ = press(m, "esc")
	require.Equal(t, viewstate.PageList, m.ViewState().Page())
	assert.Nil(t, m.Chat())

	m = run(t, m, cmd)
	assert.False(t, conv.Waiting())
	assert.Nil(t, m.Chat())
}

// =============================================================================
// THEME AND GLOBAL KEYS
// =============================================================================

func TestThemeTogglePersists(t *testing.T) {
	h := newHarness(t)
	m := h.loaded(t)
	require.Equal(t, prefs.ThemeLight, m.Theme())

	m, _ = press(m, "t")
	assert.Equal(t, prefs.ThemeDark, m.Theme())
	assert.True(t, m.theme.IsDark)
	saved, ok := h.store.Get(prefs.KeyTheme)
	require.True(t, ok)
	assert.Equal(t, "dark", saved)

	m, _ = press(m, "t")
	assert.Equal(t, prefs.ThemeLight, m.Theme())
}

func TestSavedThemeWins(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.store.Set(prefs.KeyTheme, "dark"))
	assert.Equal(t, prefs.ThemeDark, h.model().Theme())
}

func TestPreferenceChangeAppliesTheme(t *testing.T) {
	h := newHarness(t)
	m := h.loaded(t)

	m, _ = send(m, prefChangedMsg{key: prefs.KeyTheme, value: "dark"})
	assert.Equal(t, prefs.ThemeDark, m.Theme())

	m, _ = send(m, prefChangedMsg{key: prefs.KeyTheme, value: "sepia"})
	assert.Equal(t, prefs.ThemeDark, m.Theme())

	m, _ = send(m, prefChangedMsg{key: "other", value: "light"})
	assert.Equal(t, prefs.ThemeDark, m.Theme())
}

func TestReload(t *testing.T) {
	h := newHarness(t)
	m := h.loaded(t)
	before := h.server.Hits.Load()

	m, cmd := press(m, "r")
	assert.True(t, m.loading)
	m = run(t, m, cmd)
	assert.False(t, m.loading)
	assert.Equal(t, before+2, h.server.Hits.Load())
}

func TestQuit(t *testing.T) {
	h := newHarness(t)
	m := h.loaded(t)

	for _, k := range []string{"q", "ctrl+c"} {
		_, cmd := press(m, k)
		require.NotNil(t, cmd, k)
		_, ok := cmd().(tea.QuitMsg)
		assert.True(t, ok, k)
	}
}

func TestNarrowLayoutStacksAssistant(t *testing.T) {
	h := newHarness(t)
	m := openAutoCAD(t, h.loaded(t))
	m, _ = send(m, tea.WindowSizeMsg{Width: 80, Height: 40})
	m, _ = press(m, "a")

	detailW, detailH, chatW, chatH := m.panelSize()
	assert.Equal(t, 80, detailW)
	assert.Equal(t, 80, chatW)
	assert.Equal(t, m.bodyHeight(), detailH+chatH)

	m, _ = send(m, tea.WindowSizeMsg{Width: 150, Height: 40})
	detailW, _, chatW, _ = m.panelSize()
	assert.Equal(t, 150, detailW+chatW)
	assert.True(t, strings.Contains(m.View(), h.bundle.AssistantTitle))
}
