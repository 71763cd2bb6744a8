package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
	toastStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	searchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	hotStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	panelStyle  = lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63"))
	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
)

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatDatePtr formats an optional date, blank when unset.
func FormatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}

	return FormatDate(*t)
}

// FormatMoney renders whole-dollar amounts.
func FormatMoney(amount int) string {
	return fmt.Sprintf("$%d", amount)
}
