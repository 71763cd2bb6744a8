package view

import (
	tea "github.com/charmbracelet/bubbletea"

	"coldcall/internal/command"
	"coldcall/internal/crm"
)

// apply executes a resolved command against the service and re-renders.
// Every branch runs synchronously; persistence is cheap enough that the
// single-threaded update loop is the whole concurrency story.
func (m App) apply(cmd command.Command) (tea.Model, tea.Cmd) {
	switch cmd.Action {
	case command.ActionNavigate:
		m.view = cmd.Target
		m.search = ""
		m.sort = crm.SortNewest
		m.table.SetCursor(0)
		m.refresh()

		return m, nil

	case command.ActionSearchChar:
		m.search += string(cmd.Rune)
		m.searchGen++
		m.refresh()

		return m, searchTick(m.searchGen)

	case command.ActionCursorDown:
		m.table.MoveDown(1)
		return m, nil

	case command.ActionCursorUp:
		m.table.MoveUp(1)
		return m, nil

	case command.ActionTally:
		leadID := ""
		if m.view.LeadLike() {
			if lead := m.selectedLead(); lead != nil {
				leadID = lead.ID
			}
		}

		m.crm.TallyCall(leadID, "", "")
		m.refresh()

		return m, m.drainToast()

	case command.ActionMoveDNC:
		if lead := m.selectedLead(); lead != nil {
			m.crm.MoveToDNC(lead.ID)
			m.retreat()
			m.refresh()
		}

		return m, m.drainToast()

	case command.ActionMoveDead:
		if lead := m.selectedLead(); lead != nil {
			m.crm.MoveToDead(lead.ID)
			m.retreat()
			m.refresh()
		}

		return m, m.drainToast()

	case command.ActionPrimary:
		return m.applyPrimary()

	case command.ActionDetail:
		if course, ok := m.selected().(crm.GolfCourse); ok {
			return m.openCourseForm(&course)
		}

		if lead := m.selectedLead(); lead != nil {
			m.mode = modeDetail
			m.detailLead = lead
		}

		return m, nil

	case command.ActionDelete:
		return m.applyDelete()

	case command.ActionQuickEmail:
		if lead := m.selectedLead(); lead != nil {
			m.crm.QuickLogEmail(lead.ID)
			m.refresh()
		}

		return m, m.drainToast()

	case command.ActionAddLead:
		return m.openLeadForm(nil)

	case command.ActionImport:
		return m.openImportChoice()

	case command.ActionExport:
		return m.openExportForm()

	case command.ActionSettings:
		return m.openSettingsForm()

	case command.ActionListOptions:
		return m.openListOptionsForm()

	case command.ActionHelp:
		m.mode = modeHelp
		return m, nil
	}

	return m, nil
}

// applyPrimary is Enter: what it does depends entirely on where you are.
func (m App) applyPrimary() (tea.Model, tea.Cmd) {
	switch m.view {
	case crm.ViewLeads, crm.ViewFollowUps:
		// Same as key 5; converting happens from inside the detail panel.
		if lead := m.selectedLead(); lead != nil {
			m.mode = modeDetail
			m.detailLead = lead
		}

		return m, nil

	case crm.ViewDNC:
		if lead := m.selectedLead(); lead != nil {
			m.crm.RestoreFromDNC(lead.ID)
			m.retreat()
			m.refresh()
		}

		return m, m.drainToast()

	case crm.ViewDead:
		if lead := m.selectedLead(); lead != nil {
			m.crm.RestoreFromDead(lead.ID)
			m.retreat()
			m.refresh()
		}

		return m, m.drainToast()

	case crm.ViewConverted:
		if lead := m.selectedLead(); lead != nil {
			m.crm.UnconvertLead(lead.ID)
			m.retreat()
			m.refresh()
		}

		return m, m.drainToast()

	case crm.ViewTrash:
		if entry, ok := m.selected().(crm.TrashEntry); ok {
			m.crm.RestoreFromTrash(entry.ItemID(), entry.Type)
			m.retreat()
			m.refresh()
		}

		return m, m.drainToast()

	case crm.ViewCallLog:
		if call, ok := m.selected().(crm.CallLogEntry); ok {
			return m.openCallForm(call)
		}

	case crm.ViewSales:
		return m.openSaleForm(nil)
	}

	return m, nil
}

func (m App) applyDelete() (tea.Model, tea.Cmd) {
	switch m.view {
	case crm.ViewLeads:
		return m.trashSelected(crm.TrashLead)
	case crm.ViewDNC:
		return m.trashSelected(crm.TrashDNC)
	case crm.ViewDead:
		return m.trashSelected(crm.TrashDead)
	case crm.ViewConverted:
		return m.trashSelected(crm.TrashConverted)

	case crm.ViewCallLog:
		if call, ok := m.selected().(crm.CallLogEntry); ok {
			m.crm.DeleteCall(call.ID)
			m.retreat()
			m.refresh()
		}

		return m, m.drainToast()

	case crm.ViewEmails:
		if email, ok := m.selected().(crm.EmailEntry); ok {
			m.crm.DeleteEmail(email.ID)
			m.retreat()
			m.refresh()
		}

		return m, m.drainToast()

	case crm.ViewGolfCourses:
		if course, ok := m.selected().(crm.GolfCourse); ok {
			return m.openConfirm(confirmDeleteCourse, course.ID,
				"Delete golf course "+course.Name+"?")
		}

	case crm.ViewTrash:
		if len(m.crm.Trash()) > 0 {
			return m.openConfirm(confirmEmptyTrash, "", "Empty the trash for good?")
		}
	}

	return m, nil
}

func (m App) trashSelected(origin crm.TrashType) (tea.Model, tea.Cmd) {
	if lead := m.selectedLead(); lead != nil {
		m.crm.DeleteToTrash(lead.ID, origin)
		m.retreat()
		m.refresh()
	}

	return m, m.drainToast()
}
