package view

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coldcall/internal/command"
	"coldcall/internal/crm"
	"coldcall/internal/export"
	"coldcall/internal/importer"
)

func newTestApp(t *testing.T) App {
	t.Helper()

	svc := crm.NewService(nil)

	return New(svc, importer.New(), export.NewService(svc), t.TempDir())
}

// seedLeads adds leads oldest-first; the default sort lists them
// newest-first, so the last name ends up at the top of the table.
func seedLeads(m *App, names ...string) {
	for _, name := range names {
		m.crm.AddLead(crm.LeadParams{BusinessName: name, Phone: "555-0000"})
	}

	m.view = crm.ViewLeads
	m.refresh()
}

func TestEnterOnLeadOpensDetail(t *testing.T) {
	m := newTestApp(t)
	seedLeads(&m, "Acme")

	model, _ := m.apply(command.Command{Action: command.ActionPrimary})
	got := model.(App)

	assert.Equal(t, modeDetail, got.mode)
	require.NotNil(t, got.detailLead)
	assert.Equal(t, "Acme", got.detailLead.BusinessName)

	// No lead left the active collection.
	assert.Len(t, got.crm.Leads(), 1)
	assert.Empty(t, got.crm.ConvertedLeads())
}

func TestDetailConvertKeyOpensSaleForm(t *testing.T) {
	m := newTestApp(t)
	seedLeads(&m, "Acme")

	model, _ := m.apply(command.Command{Action: command.ActionPrimary})
	got := model.(App)
	require.Equal(t, modeDetail, got.mode)

	model, _ = got.updateDetail(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("$")})
	got = model.(App)

	assert.Equal(t, modeForm, got.mode)
	assert.Equal(t, formSale, got.formKind)
}

func TestRemovalMovesCursorToPredecessor(t *testing.T) {
	m := newTestApp(t)
	seedLeads(&m, "Old", "Mid", "New") // listed New, Mid, Old

	m.table.SetCursor(1)
	require.Equal(t, "Mid", m.selectedLead().BusinessName)

	model, _ := m.apply(command.Command{Action: command.ActionMoveDNC})
	got := model.(App)

	assert.Equal(t, 0, got.table.Cursor())
	require.NotNil(t, got.selectedLead())
	assert.Equal(t, "New", got.selectedLead().BusinessName)
}

func TestRemovalAtTopKeepsCursorClamped(t *testing.T) {
	m := newTestApp(t)
	seedLeads(&m, "Old", "New")

	m.table.SetCursor(0)
	model, _ := m.apply(command.Command{Action: command.ActionDelete})
	got := model.(App)

	assert.Equal(t, 0, got.table.Cursor())
	require.NotNil(t, got.selectedLead())
	assert.Equal(t, "Old", got.selectedLead().BusinessName)
	assert.Len(t, got.crm.Trash(), 1)
}
