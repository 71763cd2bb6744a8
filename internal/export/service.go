// Package export renders collections as CSV and the whole dataset as a
// JSON backup, and writes either to disk.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"coldcall/internal/crm"
)

// Service renders and writes exports for one CRM instance.
type Service struct {
	crm *crm.Service
	now func() time.Time
}

func NewService(c *crm.Service) *Service {
	return &Service{crm: c, now: time.Now}
}

// CSV renders the named collection. Unknown views are an error rather
// than an empty file, so a typo cannot silently export nothing.
func (s *Service) CSV(view crm.View) (string, error) {
	switch view {
	case crm.ViewLeads:
		return leadCSV(s.crm.Leads()), nil
	case crm.ViewDNC:
		return leadCSV(s.crm.DNCList()), nil
	case crm.ViewDead:
		return leadCSV(s.crm.DeadLeads()), nil
	case crm.ViewConverted:
		return leadCSV(s.crm.ConvertedLeads()), nil
	case crm.ViewCallLog:
		return callCSV(s.crm.CallLog()), nil
	case crm.ViewSales:
		return saleCSV(s.crm.Sales()), nil
	case crm.ViewGolfCourses:
		return courseCSV(s.crm.GolfCourses()), nil
	case crm.ViewEmails:
		return emailCSV(s.crm.Emails()), nil
	}

	return "", fmt.Errorf("view %q has no CSV export", view)
}

// Backup renders the full dataset as indented JSON.
func (s *Service) Backup() (string, error) {
	raw, err := json.MarshalIndent(s.crm.Snapshot(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("rendering backup: %w", err)
	}

	return string(raw), nil
}

// WriteCSV writes the collection's CSV into dir and returns the path.
func (s *Service) WriteCSV(dir string, view crm.View) (string, error) {
	content, err := s.CSV(view)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("coldcall-%s-%s.csv", view, s.now().Format(time.DateOnly))

	return writeFile(dir, name, content)
}

// WriteBackup writes the JSON backup into dir and returns the path.
func (s *Service) WriteBackup(dir string) (string, error) {
	content, err := s.Backup()
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("coldcall-backup-%s.json", s.now().Format(time.DateOnly))

	return writeFile(dir, name, content)
}

func writeFile(dir, name, content string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing export: %w", err)
	}

	return path, nil
}

// rows joins a header and quoted rows into a CSV document. Every field is
// quoted, with internal quotes doubled, so the output round-trips through
// the importer's tokenizer even when empty.
func rows(header []string, body [][]string) string {
	var sb strings.Builder

	writeRow(&sb, header)

	for _, row := range body {
		writeRow(&sb, row)
	}

	return sb.String()
}

func writeRow(sb *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			sb.WriteByte(',')
		}

		sb.WriteByte('"')
		sb.WriteString(strings.ReplaceAll(f, `"`, `""`))
		sb.WriteByte('"')
	}

	sb.WriteByte('\n')
}

func leadCSV(leads []crm.Lead) string {
	body := make([][]string, len(leads))
	for i, l := range leads {
		body[i] = []string{l.BusinessName, l.ContactName, l.Phone, l.Email, l.Industry}
	}

	return rows([]string{"Business", "Contact", "Phone", "Email", "Industry"}, body)
}

func callCSV(calls []crm.CallLogEntry) string {
	body := make([][]string, len(calls))
	for i, c := range calls {
		body[i] = []string{
			c.LeadName, c.Phone, string(c.Outcome), c.Notes,
			c.Timestamp.Format(time.DateOnly),
		}
	}

	return rows([]string{"Lead", "Phone", "Outcome", "Notes", "Date"}, body)
}

func saleCSV(sales []crm.Sale) string {
	body := make([][]string, len(sales))
	for i, s := range sales {
		body[i] = []string{
			s.LeadName, s.SaleDate.Format(time.DateOnly),
			string(s.SaleType), fmt.Sprintf("%d", s.Amount),
		}
	}

	return rows([]string{"Lead", "Date", "Type", "Amount"}, body)
}

func courseCSV(courses []crm.GolfCourse) string {
	body := make([][]string, len(courses))
	for i, g := range courses {
		body[i] = []string{g.Name, g.ContactName, g.Phone, g.Email, g.Region}
	}

	return rows([]string{"Name", "Contact", "Phone", "Email", "Region"}, body)
}

func emailCSV(emails []crm.EmailEntry) string {
	body := make([][]string, len(emails))
	for i, e := range emails {
		body[i] = []string{e.LeadName, e.To, e.SentAt.Format(time.DateOnly)}
	}

	return rows([]string{"Lead", "To", "Date"}, body)
}
