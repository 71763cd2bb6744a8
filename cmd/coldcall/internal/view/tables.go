package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"

	"coldcall/internal/crm"
)

// columnsFor returns the table layout for a list view.
func columnsFor(v crm.View) []table.Column {
	switch v {
	case crm.ViewLeads, crm.ViewFollowUps:
		return []table.Column{
			{Title: "Business", Width: 26},
			{Title: "Contact", Width: 16},
			{Title: "Phone", Width: 14},
			{Title: "Pri", Width: 6},
			{Title: "Calls", Width: 5},
			{Title: "Follow-up", Width: 10},
		}
	case crm.ViewDNC, crm.ViewDead:
		return []table.Column{
			{Title: "Business", Width: 26},
			{Title: "Contact", Width: 16},
			{Title: "Phone", Width: 14},
			{Title: "Since", Width: 10},
			{Title: "Calls", Width: 5},
		}
	case crm.ViewConverted:
		return []table.Column{
			{Title: "Business", Width: 26},
			{Title: "Contact", Width: 16},
			{Title: "Phone", Width: 14},
			{Title: "Converted", Width: 10},
		}
	case crm.ViewCallLog:
		return []table.Column{
			{Title: "Lead", Width: 26},
			{Title: "Phone", Width: 14},
			{Title: "Outcome", Width: 14},
			{Title: "When", Width: 16},
			{Title: "Notes", Width: 24},
		}
	case crm.ViewSales:
		return []table.Column{
			{Title: "Lead", Width: 26},
			{Title: "Date", Width: 10},
			{Title: "Type", Width: 10},
			{Title: "Amount", Width: 8},
			{Title: "Units", Width: 5},
		}
	case crm.ViewEmails:
		return []table.Column{
			{Title: "Lead", Width: 26},
			{Title: "To", Width: 26},
			{Title: "Sent", Width: 16},
		}
	case crm.ViewGolfCourses:
		return []table.Column{
			{Title: "Course", Width: 26},
			{Title: "Region", Width: 14},
			{Title: "Contact", Width: 16},
			{Title: "Phone", Width: 14},
		}
	case crm.ViewTrash:
		return []table.Column{
			{Title: "Type", Width: 10},
			{Title: "Name", Width: 30},
			{Title: "Deleted", Width: 16},
		}
	}

	return []table.Column{{Title: "", Width: 40}}
}

// rowsFor renders the queried items into table rows, mirroring columnsFor.
func rowsFor(v crm.View, items []crm.Item) []table.Row {
	rows := make([]table.Row, 0, len(items))

	for _, it := range items {
		if row := rowFor(v, it); row != nil {
			rows = append(rows, row)
		}
	}

	return rows
}

func rowFor(v crm.View, it crm.Item) table.Row {
	switch rec := it.(type) {
	case crm.Lead:
		switch v {
		case crm.ViewDNC, crm.ViewDead:
			since := rec.DNCDate
			if v == crm.ViewDead {
				since = rec.DeadDate
			}

			return table.Row{
				rec.BusinessName, rec.ContactName, rec.Phone,
				FormatDatePtr(since), fmt.Sprintf("%d", rec.CallCount),
			}
		case crm.ViewConverted:
			return table.Row{
				rec.BusinessName, rec.ContactName, rec.Phone,
				FormatDatePtr(rec.ConvertedAt),
			}
		}

		return table.Row{
			rec.BusinessName, rec.ContactName, rec.Phone,
			string(rec.Priority), fmt.Sprintf("%d", rec.CallCount),
			FormatDatePtr(rec.FollowUp),
		}
	case crm.CallLogEntry:
		return table.Row{
			rec.LeadName, rec.Phone, string(rec.Outcome),
			rec.Timestamp.Format("2006-01-02 15:04"),
			clip(rec.Notes, 24),
		}
	case crm.Sale:
		return table.Row{
			rec.LeadName, FormatDate(rec.SaleDate), string(rec.SaleType),
			FormatMoney(rec.Amount), fmt.Sprintf("%d", rec.SaleCount),
		}
	case crm.EmailEntry:
		return table.Row{rec.LeadName, rec.To, rec.SentAt.Format("2006-01-02 15:04")}
	case crm.GolfCourse:
		return table.Row{rec.Name, rec.Region, rec.ContactName, rec.Phone}
	case crm.TrashEntry:
		return table.Row{
			string(rec.Type), rec.DisplayName(),
			rec.DeletedAt.Format("2006-01-02 15:04"),
		}
	}

	return nil
}

func clip(s string, width int) string {
	runes := []rune(strings.ReplaceAll(s, "\n", " "))
	if len(runes) <= width {
		return string(runes)
	}

	return string(runes[:width-1]) + "…"
}
