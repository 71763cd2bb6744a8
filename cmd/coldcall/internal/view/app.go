// Package view implements the terminal interface: one root model that
// routes every keystroke through the command table and renders the
// current screen from the query pipeline's output.
package view

import (
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"coldcall/internal/command"
	"coldcall/internal/crm"
	"coldcall/internal/export"
	"coldcall/internal/importer"
)

const (
	toastDuration = 2500 * time.Millisecond
	searchIdle    = 1500 * time.Millisecond
)

type mode int

const (
	modeBrowse mode = iota
	modeForm
	modeFilePick
	modeDetail
	modeHelp
)

// toastLine is the notification hand-off between the service layer and
// the model. It lives behind a pointer because bubbletea copies models
// by value on every update.
type toastLine struct {
	msg string
}

func (t *toastLine) push(s string) { t.msg = s }

func (t *toastLine) take() string {
	s := t.msg
	t.msg = ""

	return s
}

type App struct {
	crm       *crm.Service
	parser    *importer.Parser
	exporter  *export.Service
	exportDir string

	toasts *toastLine

	view           crm.View
	sort           crm.SortKey
	search         string
	searchGen      int
	analyticsRange crm.AnalyticsRange

	items []crm.Item
	table table.Model

	mode       mode
	form       *huh.Form
	formKind   formKind
	filePicker filepicker.Model

	// f is shared by every copy of the model so huh's bound pointers
	// stay valid across updates.
	f         *formFields
	editingID string

	detailLead *crm.Lead

	toast    string
	toastGen int

	width  int
	height int
}

func New(svc *crm.Service, parser *importer.Parser, exporter *export.Service, exportDir string) App {
	t := table.New(
		table.WithColumns(columnsFor(crm.ViewLeads)),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	toasts := &toastLine{}
	svc.SetNotifier(toasts.push)

	m := App{
		crm:            svc,
		parser:         parser,
		exporter:       exporter,
		exportDir:      exportDir,
		toasts:         toasts,
		view:           crm.ViewDashboard,
		sort:           crm.SortNewest,
		analyticsRange: crm.RangeWeek,
		table:          t,
	}
	m.refresh()

	return m
}

func (m App) Init() tea.Cmd {
	return nil
}

// Messages

type toastClearMsg struct{ gen int }

type searchClearMsg struct{ gen int }

func toastTick(gen int) tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastClearMsg{gen: gen}
	})
}

func searchTick(gen int) tea.Cmd {
	return tea.Tick(searchIdle, func(time.Time) tea.Msg {
		return searchClearMsg{gen: gen}
	})
}

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if msg.Height > 12 {
			m.table.SetHeight(msg.Height - 9)
		}

		return m, nil

	case toastClearMsg:
		// Stale ticks from an earlier toast must not clear a newer one.
		if msg.gen == m.toastGen {
			m.toast = ""
		}

		return m, nil

	case searchClearMsg:
		if msg.gen == m.searchGen && m.search != "" {
			m.search = ""
			m.refresh()
		}

		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeFilePick:
			return m.updateFilePick(msg)
		case modeDetail:
			return m.updateDetail(msg)
		case modeHelp:
			if msg.String() == "esc" || msg.String() == "enter" {
				m.mode = modeBrowse
			}

			return m, nil
		}

		return m.updateBrowse(msg)
	}

	if m.mode == modeForm && m.form != nil {
		return m.updateForm(msg)
	}

	if m.mode == modeFilePick {
		return m.updateFilePick(msg)
	}

	return m, nil
}

func (m App) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "esc":
		if m.search != "" {
			m.search = ""
			m.refresh()

			return m, nil
		}

		m.view = crm.ViewDashboard
		m.refresh()

		return m, nil

	case "backspace":
		if m.search != "" {
			runes := []rune(m.search)
			m.search = string(runes[:len(runes)-1])
			m.searchGen++
			m.refresh()

			return m, searchTick(m.searchGen)
		}

		return m, nil
	}

	// Analytics range keys live outside the command table since they only
	// mean anything on that one screen.
	if m.view == crm.ViewAnalytics {
		switch key {
		case "w":
			m.analyticsRange = crm.RangeWeek
			return m, nil
		case "m":
			m.analyticsRange = crm.RangeMonth
			return m, nil
		case "e":
			m.analyticsRange = crm.RangeAll
			return m, nil
		}
	}

	cmd, ok := command.Resolve(key, m.view)
	if !ok {
		return m, nil
	}

	return m.apply(cmd)
}

func (m App) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "5":
		m.mode = modeBrowse
		m.detailLead = nil

		return m, nil
	case "e":
		if m.detailLead != nil {
			lead := *m.detailLead
			m.detailLead = nil

			return m.openLeadForm(&lead)
		}
	case "$":
		if m.detailLead != nil {
			lead := *m.detailLead
			m.detailLead = nil

			return m.openSaleForm(&lead)
		}
	}

	return m, nil
}

// drainToast moves any service notification into the footer and arms its
// expiry tick.
func (m *App) drainToast() tea.Cmd {
	msg := m.toasts.take()
	if msg == "" {
		return nil
	}

	m.toast = msg
	m.toastGen++

	return toastTick(m.toastGen)
}

// retreat steps the cursor back one row, clamped at the top, so the
// selection follows the predecessor after a removal.
func (m *App) retreat() {
	if cursor := m.table.Cursor(); cursor > 0 {
		m.table.SetCursor(cursor - 1)
	}
}

// refresh re-runs the query pipeline and rebuilds the table, keeping the
// cursor inside the new bounds.
func (m *App) refresh() {
	m.items = m.crm.CurrentList(crm.Query{View: m.view, Search: m.search, Sort: m.sort})

	cursor := m.table.Cursor()

	m.table.SetColumns(columnsFor(m.view))
	m.table.SetRows(rowsFor(m.view, m.items))

	if cursor >= len(m.items) {
		cursor = len(m.items) - 1
	}

	if cursor < 0 {
		cursor = 0
	}

	m.table.SetCursor(cursor)
}

// selected returns the record under the cursor, or nil on empty lists.
func (m *App) selected() crm.Item {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) {
		return nil
	}

	return m.items[idx]
}

func (m *App) selectedLead() *crm.Lead {
	if lead, ok := m.selected().(crm.Lead); ok {
		return &lead
	}

	return nil
}
