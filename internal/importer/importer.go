// Package importer parses pasted or file-loaded lead data. It accepts two
// shapes: a JSON backup previously produced by the export side, or a CSV
// lead list with loosely named columns.
package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"coldcall/internal/crm"
	"coldcall/internal/encoding"
)

// Format tells which shape the parser recognized.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ErrNoRecords means the input parsed but contained nothing importable.
var ErrNoRecords = errors.New("no importable records found")

// Parser turns raw import bytes into collection batches.
type Parser struct {
	now          func() time.Time
	newID        func() string
	activeCourse string
}

func New() *Parser {
	return &Parser{
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
}

// WithActiveCourse sets the golf course stamped on CSV-imported leads,
// mirroring how manually added leads pick up the active course.
func (p *Parser) WithActiveCourse(id string) *Parser {
	p.activeCourse = id
	return p
}

// Parse normalizes the input to UTF-8 and tries the JSON backup shape
// first, falling back to CSV.
func (p *Parser) Parse(data []byte) (crm.ImportedData, Format, error) {
	text, err := encoding.Normalize(data)
	if err != nil {
		return crm.ImportedData{}, "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return crm.ImportedData{}, "", ErrNoRecords
	}

	if strings.HasPrefix(text, "{") {
		out, err := p.parseBackup(text)
		return out, FormatJSON, err
	}

	out, err := p.parseCSV(text)

	return out, FormatCSV, err
}

// backup is the subset of the full-backup wire shape the importer takes
// in. Converted leads, sales and counters stay with the machine that
// produced them.
type backup struct {
	Leads       []crm.Lead         `json:"leads"`
	DNCList     []crm.Lead         `json:"dncList"`
	DeadLeads   []crm.Lead         `json:"deadLeads"`
	CallLog     []crm.CallLogEntry `json:"callLog"`
	GolfCourses []crm.GolfCourse   `json:"golfCourses"`
}

func (p *Parser) parseBackup(text string) (crm.ImportedData, error) {
	var b backup

	if err := json.Unmarshal([]byte(text), &b); err != nil {
		return crm.ImportedData{}, fmt.Errorf("reading backup: %w", err)
	}

	out := crm.ImportedData{
		Leads:       p.fillLeads(b.Leads),
		DNCList:     p.fillLeads(b.DNCList),
		DeadLeads:   p.fillLeads(b.DeadLeads),
		CallLog:     b.CallLog,
		GolfCourses: b.GolfCourses,
	}

	for i := range out.CallLog {
		if out.CallLog[i].ID == "" {
			out.CallLog[i].ID = p.newID()
		}
	}

	for i := range out.GolfCourses {
		out.GolfCourses[i].ID = p.newID()

		if out.GolfCourses[i].CreatedAt.IsZero() {
			out.GolfCourses[i].CreatedAt = p.now()
		}
	}

	if count(out) == 0 {
		return crm.ImportedData{}, ErrNoRecords
	}

	return out, nil
}

// fillLeads regenerates identifiers so re-importing a backup of the same
// machine can never put two records with one ID into a collection, and
// backstops the created stamp for hand-edited files.
func (p *Parser) fillLeads(leads []crm.Lead) []crm.Lead {
	for i := range leads {
		leads[i].ID = p.newID()

		if leads[i].CreatedAt.IsZero() {
			leads[i].CreatedAt = p.now()
		}
	}

	return leads
}

func count(d crm.ImportedData) int {
	return len(d.Leads) + len(d.DNCList) + len(d.DeadLeads) +
		len(d.CallLog) + len(d.GolfCourses)
}

// columnRules maps fuzzy header names to lead fields, checked in order so
// "business name" claims business before "name" can claim contact.
var columnRules = []struct {
	field      string
	substrings []string
}{
	{"business", []string{"business", "company"}},
	{"contact", []string{"contact", "name"}},
	{"phone", []string{"phone"}},
	{"email", []string{"email"}},
	{"address", []string{"address"}},
	{"website", []string{"website"}},
	{"industry", []string{"industry"}},
	{"source", []string{"source"}},
	{"notes", []string{"note"}},
	{"priority", []string{"priority"}},
}

func (p *Parser) parseCSV(text string) (crm.ImportedData, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	cols := mapHeader(splitLine(lines[0]))
	if _, ok := cols["business"]; !ok {
		if _, ok := cols["phone"]; !ok {
			return crm.ImportedData{}, fmt.Errorf("no business or phone column in header %q", lines[0])
		}
	}

	var leads []crm.Lead

	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := splitLine(line)
		get := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(fields) {
				return ""
			}

			return fields[idx]
		}

		business := get("business")
		phone := get("phone")

		// A row with neither identity field is a stray line, not a lead.
		if business == "" && phone == "" {
			continue
		}

		leads = append(leads, crm.Lead{
			ID:           p.newID(),
			BusinessName: business,
			ContactName:  get("contact"),
			Phone:        phone,
			Email:        get("email"),
			Address:      get("address"),
			Website:      get("website"),
			Industry:     get("industry"),
			Source:       get("source"),
			Notes:        get("notes"),
			Priority:     parsePriority(get("priority")),
			Status:       "active",
			CreatedAt:    p.now(),
			GolfCourseID: p.activeCourse,
		})
	}

	if len(leads) == 0 {
		return crm.ImportedData{}, ErrNoRecords
	}

	return crm.ImportedData{Leads: leads}, nil
}

// mapHeader assigns each recognized header cell to a lead field. The
// first cell matching a rule wins; later duplicates are ignored.
func mapHeader(cells []string) map[string]int {
	cols := map[string]int{}

	for i, cell := range cells {
		name := strings.ToLower(cell)

		for _, rule := range columnRules {
			if _, taken := cols[rule.field]; taken {
				continue
			}

			if containsAny(name, rule.substrings) {
				cols[rule.field] = i
				break
			}
		}
	}

	return cols
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}

	return false
}

// splitLine tokenizes one CSV line. Quoted fields may carry commas and
// doubled quotes; empty fields keep their position so columns stay
// aligned with the header.
func splitLine(line string) []string {
	var (
		fields   []string
		b        strings.Builder
		inQuotes bool
	)

	for i := 0; i < len(line); i++ {
		c := line[i]

		switch {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				b.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(b.String()))
			b.Reset()
		default:
			b.WriteByte(c)
		}
	}

	fields = append(fields, strings.TrimSpace(b.String()))

	return fields
}

func parsePriority(s string) crm.Priority {
	switch crm.Priority(strings.ToLower(s)) {
	case crm.PriorityHot:
		return crm.PriorityHot
	case crm.PriorityLow:
		return crm.PriorityLow
	}

	return crm.PriorityNormal
}
