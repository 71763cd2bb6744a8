package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"coldcall/internal/crm"
)

var viewTitles = map[crm.View]string{
	crm.ViewDashboard:   "Dashboard",
	crm.ViewLeads:       "Leads",
	crm.ViewFollowUps:   "Follow-ups",
	crm.ViewDNC:         "Do Not Call",
	crm.ViewDead:        "Dead Leads",
	crm.ViewConverted:   "Converted",
	crm.ViewTrash:       "Trash",
	crm.ViewCallLog:     "Call Log",
	crm.ViewSales:       "Sales",
	crm.ViewEmails:      "Email Log",
	crm.ViewGolfCourses: "Golf Courses",
	crm.ViewAnalytics:   "Analytics",
}

func (m App) View() string {
	var body string

	switch m.view {
	case crm.ViewDashboard:
		body = m.renderDashboard()
	case crm.ViewAnalytics:
		body = m.renderAnalytics()
	default:
		body = borderStyle.Render(m.table.View())
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderFooter(),
	)

	switch m.mode {
	case modeForm:
		if m.form != nil {
			content = lipgloss.JoinHorizontal(lipgloss.Top,
				content, panelStyle.Render(m.form.View()))
		}
	case modeFilePick:
		content = lipgloss.JoinVertical(lipgloss.Left,
			m.renderHeader(),
			panelStyle.Render("Pick a file to import\n\n"+m.filePicker.View()),
			m.renderFooter(),
		)
	case modeDetail:
		if m.detailLead != nil {
			content = lipgloss.JoinHorizontal(lipgloss.Top,
				content, panelStyle.Render(renderLeadDetail(*m.detailLead)))
		}
	case modeHelp:
		content = lipgloss.JoinVertical(lipgloss.Left,
			m.renderHeader(),
			panelStyle.Render(helpText),
		)
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m App) renderHeader() string {
	title := viewTitles[m.view]
	if title == "" {
		title = string(m.view)
	}

	parts := []string{titleStyle.Render("COLD CALL  ") + title}

	if m.view != crm.ViewDashboard && m.view != crm.ViewAnalytics {
		parts = append(parts, faintStyle.Render(fmt.Sprintf("%d records", len(m.items))))
	}

	if course := m.crm.ActiveGolfCourse(); course != nil {
		parts = append(parts, faintStyle.Render("Course: "+course.Name))
	}

	if m.search != "" {
		parts = append(parts, searchStyle.Render("Search: "+m.search))
	}

	return strings.Join(parts, "   ")
}

func (m App) renderFooter() string {
	lines := []string{faintStyle.Render(shortHelp(m.view))}

	if m.toast != "" {
		lines = append(lines, toastStyle.Render(m.toast))
	}

	return strings.Join(lines, "\n")
}

func shortHelp(v crm.View) string {
	switch v {
	case crm.ViewDashboard:
		return "space: tally | 3: leads | f: follow-ups | a: analytics | /: help | ctrl+c: quit"
	case crm.ViewLeads, crm.ViewFollowUps:
		return "space: tally | enter/5: detail | 4: dnc | 6: dead | e: email | type to search"
	case crm.ViewDNC, crm.ViewDead:
		return "enter: restore | .: trash | type to search"
	case crm.ViewConverted:
		return "enter: unconvert | .: trash"
	case crm.ViewTrash:
		return "enter: restore | .: empty trash"
	case crm.ViewCallLog:
		return "enter: edit call | .: delete | p: sort/filter"
	case crm.ViewSales:
		return "enter: record sale | p: sort/filter"
	case crm.ViewGolfCourses:
		return "5: edit | .: delete | +: add lead | s: settings"
	case crm.ViewAnalytics:
		return "w: week | m: month | e: everything | 1: dashboard"
	}

	return "1: dashboard | /: help"
}

func (m App) renderDashboard() string {
	settings := m.crm.Settings()
	today := m.crm.TodaysCalls()
	todaySales := m.crm.TodaysSales()
	weekSales := m.crm.WeekSales()

	var sb strings.Builder

	fmt.Fprintf(&sb, "Calls today     %d / %d  %s\n",
		today, settings.DailyGoal, progressBar(m.crm.GoalProgress(), 24))
	fmt.Fprintf(&sb, "Sales today     %d / %d units, %s\n",
		todaySales.Count, settings.DailySalesGoal, FormatMoney(todaySales.Revenue))
	fmt.Fprintf(&sb, "Sales this week %d units in %d deals, %s\n\n",
		weekSales.Count, weekSales.Deals, FormatMoney(weekSales.Revenue))

	fmt.Fprintf(&sb, "Active leads    %d\n", len(m.crm.Leads()))
	fmt.Fprintf(&sb, "Hot leads       %s\n", hotStyle.Render(fmt.Sprintf("%d", m.crm.HotLeads())))
	fmt.Fprintf(&sb, "Follow-ups due  %d", len(m.crm.FollowUps()))

	if overdue := m.crm.OverdueCount(); overdue > 0 {
		fmt.Fprintf(&sb, "  (%s)", hotStyle.Render(fmt.Sprintf("%d overdue", overdue)))
	}

	fmt.Fprintf(&sb, "\nConverted       %d\n", len(m.crm.ConvertedLeads()))

	return panelStyle.Render(sb.String())
}

func progressBar(percent, width int) string {
	filled := percent * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

var rangeLabels = map[crm.AnalyticsRange]string{
	crm.RangeWeek:  "Last 7 days",
	crm.RangeMonth: "Last month",
	crm.RangeAll:   "All time",
}

func (m App) renderAnalytics() string {
	report := m.crm.Analytics(m.analyticsRange)

	var sb strings.Builder

	fmt.Fprintf(&sb, "%s\n\n", titleStyle.Render(rangeLabels[m.analyticsRange]))
	fmt.Fprintf(&sb, "Total calls     %d\n", report.TotalCalls)
	fmt.Fprintf(&sb, "Avg per day     %d\n", report.AvgPerDay)

	if report.BestDay.Count > 0 {
		fmt.Fprintf(&sb, "Best day        %s (%d calls)\n", report.BestDay.Day, report.BestDay.Count)
	}

	fmt.Fprintf(&sb, "Leads contacted %d\n", report.LeadsContacted)
	fmt.Fprintf(&sb, "Revenue         %s in %d deals\n", FormatMoney(report.TotalRevenue), report.SalesCount)
	fmt.Fprintf(&sb, "Conversion      %.1f%%\n\n", report.ConversionRate)

	if len(report.Outcomes) > 0 {
		sb.WriteString("Outcomes\n")

		for _, o := range crm.Outcomes {
			if n := report.Outcomes[o]; n > 0 {
				fmt.Fprintf(&sb, "  %-15s %d\n", o, n)
			}
		}

		sb.WriteString("\n")
	}

	sb.WriteString("Trailing week\n")

	for _, day := range report.DailyBreakdown {
		fmt.Fprintf(&sb, "  %s %s %d\n", day.Label, strings.Repeat("#", day.Calls), day.Calls)
	}

	return panelStyle.Render(sb.String())
}

func renderLeadDetail(lead crm.Lead) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s\n\n", titleStyle.Render(lead.DisplayName()))

	writeField := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&sb, "%-10s %s\n", label, value)
		}
	}

	writeField("Contact", lead.ContactName)
	writeField("Phone", lead.Phone)
	writeField("Email", lead.Email)
	writeField("Address", lead.Address)
	writeField("Website", lead.Website)
	writeField("Industry", lead.Industry)
	writeField("Source", lead.Source)
	writeField("Priority", string(lead.Priority))
	writeField("Follow-up", FormatDatePtr(lead.FollowUp))
	writeField("Notes", lead.Notes)

	fmt.Fprintf(&sb, "%-10s %d calls", "History", lead.CallCount)

	if lead.LastCalled != nil {
		fmt.Fprintf(&sb, ", last %s", FormatDate(*lead.LastCalled))
	}

	if lead.EmailCount > 0 {
		fmt.Fprintf(&sb, "\n%-10s %d emails", "Emails", lead.EmailCount)
	}

	sb.WriteString("\n")

	// Most recent calls first; history is stored oldest first.
	history := lead.CallHistory
	if len(history) > 0 {
		sb.WriteString("\nRecent calls\n")

		shown := 0
		for i := len(history) - 1; i >= 0 && shown < 5; i-- {
			entry := history[i]
			fmt.Fprintf(&sb, "  %s %s\n", FormatDate(entry.Timestamp), entry.Outcome)
			shown++
		}
	}

	sb.WriteString(faintStyle.Render("\ne: edit | $: convert / sale | esc: close"))

	return sb.String()
}

const helpText = `Keys

1 dashboard    3 leads        f follow-ups   7 do not call
9 dead         v converted    c call log     $ sales
- emails       g golf courses t trash        a analytics

space/0  tally a call           enter  detail / restore / edit
2/8      move cursor            5      detail
4/6      do not call / dead     e      quick email log
+        add lead               .      delete to trash
i        import                 x      export
s        settings               p      sort and filters
letters  search (lead views)    esc    clear search / close

ctrl+c quits.`
