// Package command maps single keystrokes to CRM actions. Bindings and
// their view applicability are data, so the whole surface is testable
// without a terminal.
package command

import (
	"unicode"

	"coldcall/internal/crm"
)

// Action is what a keystroke asks the application to do.
type Action int

const (
	ActionNone Action = iota

	// Navigate switches to Command.Target.
	ActionNavigate

	// Tally records a call, against the selection in lead-like views.
	ActionTally

	// Cursor movement within the current list.
	ActionCursorDown
	ActionCursorUp

	// Lead lifecycle on the selected record.
	ActionMoveDNC
	ActionMoveDead

	// Primary is Enter: restore, unconvert, open detail or edit a call,
	// depending on the current view.
	ActionPrimary

	// Detail opens the detail/edit panel for the selection (key 5).
	ActionDetail

	// Delete trashes the selection, or deletes outright where no trash
	// path exists (emails).
	ActionDelete

	ActionQuickEmail
	ActionAddLead
	ActionImport
	ActionExport
	ActionSettings
	ActionHelp
	ActionListOptions

	// SearchChar appends Command.Rune to the incremental search query.
	ActionSearchChar
)

// Command is a resolved keystroke.
type Command struct {
	Action Action
	Target crm.View // set for ActionNavigate
	Rune   rune     // set for ActionSearchChar
}

// navTargets maps fixed navigation keys to views, valid in any context.
var navTargets = map[string]crm.View{
	"1": crm.ViewDashboard,
	"3": crm.ViewLeads,
	"7": crm.ViewDNC,
	"9": crm.ViewDead,
	"f": crm.ViewFollowUps,
	"c": crm.ViewCallLog,
	"g": crm.ViewGolfCourses,
	"t": crm.ViewTrash,
	"a": crm.ViewAnalytics,
	"-": crm.ViewEmails,
	"v": crm.ViewConverted,
	"$": crm.ViewSales,
}

// binding is one contextual entry of the command table.
type binding struct {
	action Action
	// views restricts where the binding applies; empty means everywhere.
	views []crm.View
}

var leadViews = []crm.View{crm.ViewLeads, crm.ViewFollowUps}

// bindings is the flat command table keyed by normalized key name.
var bindings = map[string]binding{
	" ":      {action: ActionTally},
	"0":      {action: ActionTally},
	"2":      {action: ActionCursorDown},
	"down":   {action: ActionCursorDown},
	"8":      {action: ActionCursorUp},
	"up":     {action: ActionCursorUp},
	"4":      {action: ActionMoveDNC, views: leadViews},
	"left":   {action: ActionMoveDNC, views: leadViews},
	"6":      {action: ActionMoveDead, views: leadViews},
	"right":  {action: ActionMoveDead, views: leadViews},
	"5":      {action: ActionDetail, views: []crm.View{crm.ViewLeads, crm.ViewFollowUps, crm.ViewGolfCourses}},
	"e":      {action: ActionQuickEmail, views: leadViews},
	"enter":  {action: ActionPrimary},
	"delete": {action: ActionDelete},
	".":      {action: ActionDelete},
	"+":      {action: ActionAddLead},
	"=":      {action: ActionAddLead},
	"i":      {action: ActionImport},
	"x":      {action: ActionExport},
	"s":      {action: ActionSettings},
	"/":      {action: ActionHelp},
	"?":      {action: ActionHelp},
	"p":      {action: ActionListOptions},
}

// deleteViews enumerates where ActionDelete has meaning, with its origin
// resolved by the executor.
var deleteViews = []crm.View{
	crm.ViewLeads, crm.ViewDNC, crm.ViewDead, crm.ViewConverted,
	crm.ViewCallLog, crm.ViewEmails, crm.ViewGolfCourses, crm.ViewTrash,
}

// primaryViews enumerates where Enter has a contextual behavior.
var primaryViews = []crm.View{
	crm.ViewLeads, crm.ViewFollowUps, crm.ViewDNC, crm.ViewDead,
	crm.ViewConverted, crm.ViewTrash, crm.ViewCallLog, crm.ViewSales,
}

func applies(views []crm.View, v crm.View) bool {
	if len(views) == 0 {
		return true
	}

	for _, allowed := range views {
		if allowed == v {
			return true
		}
	}

	return false
}

// Resolve turns a normalized key name (bubbletea's msg.String(), lowered)
// plus the current view into a command. Unresolvable keys return ok=false
// and are a silent no-op by contract.
func Resolve(key string, view crm.View) (Command, bool) {
	if target, ok := navTargets[key]; ok {
		return Command{Action: ActionNavigate, Target: target}, true
	}

	if b, ok := bindings[key]; ok {
		if !applies(b.views, view) {
			return Command{}, false
		}

		switch b.action {
		case ActionPrimary:
			if !applies(primaryViews, view) {
				return Command{}, false
			}
		case ActionDelete:
			if !applies(deleteViews, view) {
				return Command{}, false
			}
		}

		return Command{Action: b.action}, true
	}

	// Any free letter feeds the incremental search in lead-like views.
	if view.LeadLike() {
		runes := []rune(key)
		if len(runes) == 1 && unicode.IsLetter(runes[0]) {
			return Command{Action: ActionSearchChar, Rune: runes[0]}, true
		}
	}

	return Command{}, false
}
