// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iust/softhub/internal/catalog"
	"github.com/iust/softhub/internal/chat"
	"github.com/iust/softhub/internal/locale"
	"github.com/iust/softhub/internal/logging"
	"github.com/iust/softhub/internal/prefs"
	"github.com/iust/softhub/internal/ui/styles"
	"github.com/iust/softhub/internal/viewstate"
)

// =============================================================================
// STATE TYPES
// =============================================================================

// focus is the widget receiving key presses.
type focus int

const (
	focusNone focus = iota
	focusSearch
	focusChat
)

// detailTab is the active section of the detail page.
type detailTab int

const (
	tabVersions detailTab = iota
	tabDescription
	tabGuide
	tabCount
)

// CatalogSource is the part of catalog.Client the TUI uses.
type CatalogSource interface {
	LoadCatalog(ctx context.Context) ([]catalog.Category, catalog.SoftwareList)
	FetchSoftwareDetail(ctx context.Context, slug string) *catalog.SoftwareDetail
	ResolveAssetURL(path string) string
}

// Options configures New.
type Options struct {
	Catalog    CatalogSource
	Assistant  chat.Asker
	Bundle     *locale.Bundle
	Store      prefs.Store
	DetectDark func() bool
	Logger     *logging.Logger

	// Clipboard writes text to the system clipboard. Defaults to
	// clipboard.WriteAll.
	Clipboard func(string) error
}

// Model is the root Bubble Tea model.
type Model struct {
	ctx       context.Context
	catalog   CatalogSource
	asker     chat.Asker
	bundle    *locale.Bundle
	store     prefs.Store
	log       *logging.Logger
	clipboard func(string) error
	keys      KeyMap

	view *viewstate.Controller
	conv *chat.Controller

	themeName prefs.Theme
	theme     *styles.Theme
	md        *markdown
	chatMD    *markdown

	search     textinput.Model
	input      textinput.Model
	detailView viewport.Model
	chatView   viewport.Model
	spinner    spinner.Model

	width  int
	height int

	focus         focus
	loading       bool
	cursor        int
	offset        int
	tab           detailTab
	part          int
	showAssistant bool

	status    string
	statusErr bool

	prefCh chan prefChangedMsg
}

// New creates the root model. The catalog is not fetched until Init.
func New(ctx context.Context, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	bundle := opts.Bundle
	if bundle == nil {
		bundle = locale.For("")
	}
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	themeName := prefs.LoadTheme(opts.Store, opts.DetectDark)

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = bundle.SearchHint
	search.CharLimit = 128

	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = bundle.AssistantHint
	input.CharLimit = 2048

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:        ctx,
		catalog:    opts.Catalog,
		asker:      opts.Assistant,
		bundle:     bundle,
		store:      opts.Store,
		log:        log.With("component", "tui"),
		clipboard:  copyFn,
		keys:       DefaultKeyMap(),
		view:       viewstate.New(),
		themeName:  themeName,
		theme:      styles.NewTheme(themeName.IsDark()),
		md:         &markdown{},
		chatMD:     &markdown{},
		search:     search,
		input:      input,
		detailView: viewport.New(80, 20),
		chatView:   viewport.New(40, 10),
		spinner:    sp,
		loading:    true,
		prefCh:     make(chan prefChangedMsg, 1),
	}
	m.spinner.Style = m.theme.Spinner
	return m
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts the catalog load and the preference watch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadCatalog(),
		m.watchPrefs(),
	)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case catalogLoadedMsg:
		return m.handleCatalogLoaded(msg)

	case detailLoadedMsg:
		return m.handleDetailLoaded(msg)

	case chatReplyMsg:
		msg.conv.Complete(msg.reply)
		if msg.conv == m.conv {
			m.refreshChat()
		}
		return m, nil

	case prefChangedMsg:
		m.handlePrefChanged(msg)
		return m, m.waitForPref()

	case copiedMsg:
		if msg.err != nil {
			m.log.Warn("clipboard write failed", "error", msg.err)
			m.setError(msg.err.Error())
		} else {
			m.log.Debug("copied download link", "url", msg.url)
			m.setStatus(m.bundle.Copied)
		}
		return m, nil
	}

	return m, nil
}

// =============================================================================
// MESSAGE HANDLERS
// =============================================================================

func (m Model) handleCatalogLoaded(msg catalogLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	m.view.SetCatalog(msg.categories, msg.list)
	m.clampCursor()
	m.log.Debug("catalog loaded",
		"categories", len(msg.categories),
		"software", len(msg.list.Results),
		"count", msg.list.Count,
	)
	return m, nil
}

func (m Model) handleDetailLoaded(msg detailLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.view.ApplyDetail(msg.gen, msg.detail) {
		m.log.Debug("discarding stale detail", "generation", uint64(msg.gen))
		return m, nil
	}
	m.tab = tabVersions
	m.part = 0
	if msg.detail != nil {
		m.conv = chat.New(m.asker, msg.detail.Context(), m.bundle.Greeting)
	}
	m.layout()
	return m, nil
}

func (m *Model) handlePrefChanged(msg prefChangedMsg) {
	if msg.key != prefs.KeyTheme {
		return
	}
	t, err := prefs.ParseTheme(msg.value)
	if err != nil {
		m.log.Warn("ignoring invalid theme preference", "value", msg.value)
		return
	}
	if t != m.themeName {
		m.applyTheme(t)
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	switch m.focus {
	case focusSearch:
		return m.handleSearchKey(msg)
	case focusChat:
		return m.handleChatKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Theme):
		m.toggleTheme()
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		m.clearStatus()
		return m, m.loadCatalog()
	}

	if m.view.Page() == viewstate.PageDetail {
		return m.handleDetailKey(msg)
	}
	return m.handleListKey(msg)
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.focus = focusNone
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.view.SearchTerm() {
		m.view.SetSearchTerm(m.search.Value())
		m.cursor, m.offset = 0, 0
	}
	return m, cmd
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.focus = focusNone
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		return m.sendChat()
	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.chatView, cmd = m.chatView.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		m.focus = focusSearch
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.NextTab):
		m.view.CycleCategory(1)
		m.cursor, m.offset = 0, 0

	case key.Matches(msg, m.keys.PrevTab):
		m.view.CycleCategory(-1)
		m.cursor, m.offset = 0, 0

	case key.Matches(msg, m.keys.Up):
		m.cursor--
		m.clampCursor()

	case key.Matches(msg, m.keys.Down):
		m.cursor++
		m.clampCursor()

	case key.Matches(msg, m.keys.Open):
		slug := m.selectedSlug()
		if slug == "" {
			return m, nil
		}
		return m.openDetail(slug)

	case key.Matches(msg, m.keys.Back):
		if m.view.SearchTerm() != "" {
			m.search.Reset()
			m.view.SetSearchTerm("")
			m.cursor, m.offset = 0, 0
		}
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		if m.showAssistant {
			m.showAssistant = false
			m.layout()
			return m, nil
		}
		m.leaveDetail()
		return m, nil

	case key.Matches(msg, m.keys.Versions):
		m.setTab(tabVersions)
	case key.Matches(msg, m.keys.Description):
		m.setTab(tabDescription)
	case key.Matches(msg, m.keys.Guide):
		m.setTab(tabGuide)
	case key.Matches(msg, m.keys.Left):
		m.setTab((m.tab + tabCount - 1) % tabCount)
	case key.Matches(msg, m.keys.Right):
		m.setTab((m.tab + 1) % tabCount)

	case key.Matches(msg, m.keys.Up):
		if m.tab == tabVersions && m.part > 0 {
			m.part--
			m.refreshDetail()
		} else {
			m.detailView.LineUp(1)
		}
	case key.Matches(msg, m.keys.Down):
		if m.tab == tabVersions && m.part < len(detailParts(m.view.Detail()))-1 {
			m.part++
			m.refreshDetail()
		} else {
			m.detailView.LineDown(1)
		}

	case key.Matches(msg, m.keys.Copy):
		return m, m.copySelectedPart()

	case key.Matches(msg, m.keys.Assistant):
		if m.conv == nil {
			return m, nil
		}
		m.showAssistant = !m.showAssistant
		m.layout()
		if m.showAssistant {
			m.focus = focusChat
			return m, m.input.Focus()
		}

	default:
		var cmd tea.Cmd
		m.detailView, cmd = m.detailView.Update(msg)
		return m, cmd
	}
	return m, nil
}

// =============================================================================
// ACTIONS
// =============================================================================

func (m Model) openDetail(slug string) (tea.Model, tea.Cmd) {
	gen := m.view.EnterDetail(slug)
	m.conv = nil
	m.showAssistant = false
	m.tab = tabVersions
	m.part = 0
	m.clearStatus()
	m.layout()
	return m, m.fetchDetail(gen, slug)
}

func (m *Model) leaveDetail() {
	m.view.LeaveDetail()
	m.conv = nil
	m.showAssistant = false
	m.focus = focusNone
	m.input.Blur()
	m.input.Reset()
	m.clearStatus()
	m.clampCursor()
}

func (m Model) sendChat() (tea.Model, tea.Cmd) {
	if m.conv == nil {
		return m, nil
	}
	query, ok := m.conv.Begin(m.input.Value())
	if !ok {
		return m, nil
	}
	m.input.Reset()
	m.refreshChat()
	return m, m.ask(m.conv, query)
}

func (m *Model) setTab(t detailTab) {
	if t == m.tab {
		return
	}
	m.tab = t
	m.detailView.GotoTop()
	m.refreshDetail()
}

func (m *Model) toggleTheme() {
	next := m.themeName.Toggle()
	m.applyTheme(next)
	if m.store == nil {
		return
	}
	if err := prefs.SaveTheme(m.store, next); err != nil {
		m.log.Warn("failed to save theme", "theme", string(next), "error", err)
		m.setError(err.Error())
	}
}

func (m *Model) applyTheme(t prefs.Theme) {
	m.themeName = t
	m.theme = styles.NewTheme(t.IsDark())
	m.spinner.Style = m.theme.Spinner
	m.refreshDetail()
	m.refreshChat()
}

func (m *Model) clampCursor() {
	n := len(m.view.VisibleSoftware())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	per := m.cardsPerPage()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+per {
		m.offset = m.cursor - per + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusErr = false
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Theme returns the active theme preference.
func (m Model) Theme() prefs.Theme {
	return m.themeName
}

// ViewState returns the list/detail controller.
func (m Model) ViewState() *viewstate.Controller {
	return m.view
}

// Chat returns the assistant conversation of the open detail, if any.
func (m Model) Chat() *chat.Controller {
	return m.conv
}
