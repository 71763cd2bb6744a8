package crm

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"coldcall/internal/store"
)

// Storage keys. One serialized JSON document per logical collection.
const (
	keyLeads       = "crm_leads"
	keyDNC         = "crm_dnc"
	keyDead        = "crm_dead"
	keyConverted   = "crm_converted"
	keyTrash       = "crm_trash"
	keyEmails      = "crm_emails"
	keyCallLog     = "crm_call_log"
	keyStats       = "crm_stats"
	keyGolfCourses = "crm_golf_courses"
	keySales       = "crm_sales"
	keySettings    = "crm_settings"
	keyFilters     = "crm_filters"
)

// callLogCap bounds the call log; tallying past it drops the oldest entry.
const callLogCap = 1000

// Service owns every collection and is their only mutator. All methods are
// synchronous and must be called from a single goroutine (the UI event
// loop); the query and analytics methods read the same state.
//
// Each mutation persists the affected collections through the store.
// Persistence is best-effort: a failed write leaves the in-memory state
// authoritative for the rest of the session.
type Service struct {
	store *store.Store

	now   func() time.Time
	newID func() string

	// notify receives short user-facing messages describing what an
	// operation did or why it was rejected.
	notify func(string)

	leads       []Lead
	dncList     []Lead
	deadLeads   []Lead
	converted   []Lead
	trash       []TrashEntry
	emails      []EmailEntry
	callLog     []CallLogEntry
	dailyStats  map[string]int
	golfCourses []GolfCourse
	sales       []Sale
	settings    Settings
	filters     Filters
}

// NewService loads every collection from the store, applying defaults for
// anything absent or unreadable.
func NewService(st *store.Store) *Service {
	s := &Service{
		store:      st,
		now:        time.Now,
		newID:      func() string { return uuid.NewString() },
		notify:     func(string) {},
		dailyStats: map[string]int{},
		settings:   DefaultSettings,
		filters:    DefaultFilters,
	}

	st.Load(keyLeads, &s.leads)
	st.Load(keyDNC, &s.dncList)
	st.Load(keyDead, &s.deadLeads)
	st.Load(keyConverted, &s.converted)
	st.Load(keyTrash, &s.trash)
	st.Load(keyEmails, &s.emails)
	st.Load(keyCallLog, &s.callLog)
	st.Load(keyStats, &s.dailyStats)
	st.Load(keyGolfCourses, &s.golfCourses)
	st.Load(keySales, &s.sales)
	st.Load(keySettings, &s.settings)
	st.Load(keyFilters, &s.filters)

	return s
}

// SetNotifier registers the toast sink. A nil handler silences messages.
func (s *Service) SetNotifier(fn func(string)) {
	if fn == nil {
		fn = func(string) {}
	}

	s.notify = fn
}

// Read-only accessors. Callers must not mutate the returned slices.

func (s *Service) Leads() []Lead             { return s.leads }
func (s *Service) DNCList() []Lead           { return s.dncList }
func (s *Service) DeadLeads() []Lead         { return s.deadLeads }
func (s *Service) ConvertedLeads() []Lead    { return s.converted }
func (s *Service) Trash() []TrashEntry       { return s.trash }
func (s *Service) Emails() []EmailEntry      { return s.emails }
func (s *Service) CallLog() []CallLogEntry   { return s.callLog }
func (s *Service) GolfCourses() []GolfCourse { return s.golfCourses }
func (s *Service) Sales() []Sale             { return s.sales }
func (s *Service) Settings() Settings        { return s.settings }
func (s *Service) Filters() Filters          { return s.filters }

// DailyStats returns the per-day call counter map.
func (s *Service) DailyStats() map[string]int { return s.dailyStats }

func (s *Service) saveLeads()       { s.store.Save(keyLeads, s.leads) }
func (s *Service) saveDNC()         { s.store.Save(keyDNC, s.dncList) }
func (s *Service) saveDead()        { s.store.Save(keyDead, s.deadLeads) }
func (s *Service) saveConverted()   { s.store.Save(keyConverted, s.converted) }
func (s *Service) saveTrash()       { s.store.Save(keyTrash, s.trash) }
func (s *Service) saveEmails()      { s.store.Save(keyEmails, s.emails) }
func (s *Service) saveCallLog()     { s.store.Save(keyCallLog, s.callLog) }
func (s *Service) saveStats()       { s.store.Save(keyStats, s.dailyStats) }
func (s *Service) saveGolfCourses() { s.store.Save(keyGolfCourses, s.golfCourses) }
func (s *Service) saveSales()       { s.store.Save(keySales, s.sales) }
func (s *Service) saveSettings()    { s.store.Save(keySettings, s.settings) }
func (s *Service) saveFilters()     { s.store.Save(keyFilters, s.filters) }

// UpdateSettings replaces the settings singleton.
func (s *Service) UpdateSettings(settings Settings) {
	s.settings = settings
	s.saveSettings()
}

// UpdateFilters patches the active filter set.
func (s *Service) UpdateFilters(f Filters) {
	s.filters = f
	s.saveFilters()
}

// ClearFilters resets every filter to the inactive sentinel.
func (s *Service) ClearFilters() {
	s.filters = DefaultFilters
	s.saveFilters()
}

// LeadParams carries the caller-supplied fields for a new lead.
type LeadParams struct {
	BusinessName string
	ContactName  string
	Phone        string
	Email        string
	Address      string
	Website      string
	Industry     string
	Source       string
	Priority     Priority
	Notes        string
	FollowUp     *time.Time
	GolfCourseID string
}

// AddLead creates a lead at the head of the active collection. A lead
// needs at least a business name or a phone number; anything else is
// rejected with a toast.
func (s *Service) AddLead(p LeadParams) bool {
	if p.BusinessName == "" && p.Phone == "" {
		s.notify("Name or phone required")
		return false
	}

	courseID := p.GolfCourseID
	if courseID == "" {
		courseID = s.settings.ActiveGolfCourse
	}

	priority := p.Priority
	if priority == "" {
		priority = PriorityNormal
	}

	lead := Lead{
		ID:           s.newID(),
		BusinessName: p.BusinessName,
		ContactName:  p.ContactName,
		Phone:        p.Phone,
		Email:        p.Email,
		Address:      p.Address,
		Website:      p.Website,
		Industry:     p.Industry,
		Source:       p.Source,
		Priority:     priority,
		Notes:        p.Notes,
		CreatedAt:    s.now(),
		FollowUp:     p.FollowUp,
		CallHistory:  []CallHistoryEntry{},
		GolfCourseID: courseID,
	}

	s.leads = append([]Lead{lead}, s.leads...)
	s.saveLeads()
	s.notify(fmt.Sprintf("%s added!", lead.DisplayName()))

	return true
}

// UpdateLead replaces the active lead with the matching identifier.
// No-op if the lead is not in the active collection.
func (s *Service) UpdateLead(lead Lead) {
	for i := range s.leads {
		if s.leads[i].ID == lead.ID {
			s.leads[i] = lead
			s.saveLeads()
			s.notify("Lead updated")

			return
		}
	}
}

// findLead returns the index of an active lead, or -1.
func findLead(leads []Lead, id string) int {
	for i := range leads {
		if leads[i].ID == id {
			return i
		}
	}

	return -1
}

func removeLead(leads []Lead, id string) ([]Lead, *Lead) {
	i := findLead(leads, id)
	if i < 0 {
		return leads, nil
	}

	lead := leads[i]

	return append(leads[:i:i], leads[i+1:]...), &lead
}

// MoveToDNC moves an active lead to the do-not-call list.
func (s *Service) MoveToDNC(id string) {
	leads, lead := removeLead(s.leads, id)
	if lead == nil {
		return
	}

	now := s.now()
	lead.DNCDate = &now

	s.leads = leads
	s.dncList = append(s.dncList, *lead)
	s.saveLeads()
	s.saveDNC()
	s.notify(fmt.Sprintf("%s -> DNC", lead.DisplayName()))
}

// MoveToDead moves an active lead to the dead list.
func (s *Service) MoveToDead(id string) {
	leads, lead := removeLead(s.leads, id)
	if lead == nil {
		return
	}

	now := s.now()
	lead.DeadDate = &now

	s.leads = leads
	s.deadLeads = append(s.deadLeads, *lead)
	s.saveLeads()
	s.saveDead()
	s.notify(fmt.Sprintf("%s -> Dead", lead.DisplayName()))
}

// RestoreFromDNC moves a lead from the do-not-call list back to active.
func (s *Service) RestoreFromDNC(id string) {
	dnc, lead := removeLead(s.dncList, id)
	if lead == nil {
		return
	}

	now := s.now()
	lead.RestoredAt = &now

	s.dncList = dnc
	s.leads = append(s.leads, *lead)
	s.saveDNC()
	s.saveLeads()
	s.notify(fmt.Sprintf("%s restored", lead.DisplayName()))
}

// RestoreFromDead moves a lead from the dead list back to active.
func (s *Service) RestoreFromDead(id string) {
	dead, lead := removeLead(s.deadLeads, id)
	if lead == nil {
		return
	}

	now := s.now()
	lead.RestoredAt = &now

	s.deadLeads = dead
	s.leads = append(s.leads, *lead)
	s.saveDead()
	s.saveLeads()
	s.notify(fmt.Sprintf("%s restored", lead.DisplayName()))
}

// SaleParams carries sale details for conversions and direct sales.
type SaleParams struct {
	Type      SaleType
	Amount    int
	SaleCount int
	LeadID    string
	LeadName  string
	Notes     string
}

// ConvertLead moves an active lead to the converted collection, and when
// sale details are supplied also records the linked sale.
func (s *Service) ConvertLead(id string, sale *SaleParams) {
	leads, lead := removeLead(s.leads, id)
	if lead == nil {
		return
	}

	now := s.now()
	lead.ConvertedAt = &now
	lead.Status = "converted"

	s.leads = leads
	s.converted = append([]Lead{*lead}, s.converted...)
	s.saveLeads()
	s.saveConverted()

	if sale == nil {
		s.notify(fmt.Sprintf("%s converted!", lead.DisplayName()))
		return
	}

	count := sale.SaleCount
	if count == 0 {
		count = 1
	}

	s.sales = append([]Sale{{
		ID:           s.newID(),
		LeadID:       lead.ID,
		LeadName:     lead.DisplayName(),
		SaleDate:     now,
		SaleType:     sale.Type,
		Amount:       sale.Amount,
		SaleCount:    count,
		Notes:        sale.Notes,
		GolfCourseID: lead.GolfCourseID,
	}}, s.sales...)
	s.saveSales()
	s.notify(fmt.Sprintf("SALE! %s - $%d!", lead.DisplayName(), sale.Amount))
}

// UnconvertLead moves a converted lead back to active and discards any
// sale linked to it. The sale is dropped outright rather than trashed.
func (s *Service) UnconvertLead(id string) {
	converted, lead := removeLead(s.converted, id)
	if lead == nil {
		return
	}

	now := s.now()
	lead.Status = "active"
	lead.UnconvertedAt = &now

	s.converted = converted
	s.leads = append(s.leads, *lead)

	kept := s.sales[:0:0]
	for _, sale := range s.sales {
		if sale.LeadID != id {
			kept = append(kept, sale)
		}
	}

	s.sales = kept
	s.saveConverted()
	s.saveLeads()
	s.saveSales()
	s.notify(fmt.Sprintf("%s moved back to leads", lead.DisplayName()))
}

// DeleteToTrash removes a lead-shaped record from its origin collection
// and parks it in the trash under the origin tag.
func (s *Service) DeleteToTrash(id string, origin TrashType) {
	var (
		from *[]Lead
		save func()
	)

	switch origin {
	case TrashLead:
		from, save = &s.leads, s.saveLeads
	case TrashDNC:
		from, save = &s.dncList, s.saveDNC
	case TrashDead:
		from, save = &s.deadLeads, s.saveDead
	case TrashConverted:
		from, save = &s.converted, s.saveConverted
	default:
		return
	}

	remaining, lead := removeLead(*from, id)
	if lead == nil {
		return
	}

	*from = remaining
	s.trash = append(s.trash, TrashEntry{Type: origin, DeletedAt: s.now(), Lead: lead})
	save()
	s.saveTrash()
	s.notify("Moved to trash")
}

// RestoreFromTrash routes a trashed record back to its origin collection.
// For calls it also reverses the counter corrections deleteCall applied.
func (s *Service) RestoreFromTrash(id string, typ TrashType) {
	idx := -1

	for i, entry := range s.trash {
		if entry.Type == typ && entry.ItemID() == id {
			idx = i
			break
		}
	}

	if idx < 0 {
		return
	}

	entry := s.trash[idx]
	s.trash = append(s.trash[:idx:idx], s.trash[idx+1:]...)

	switch entry.Type {
	case TrashCall:
		s.restoreCall(*entry.Call)
	case TrashLead:
		s.leads = append(s.leads, *entry.Lead)
		s.saveLeads()
	case TrashDNC:
		s.dncList = append(s.dncList, *entry.Lead)
		s.saveDNC()
	case TrashDead:
		s.deadLeads = append(s.deadLeads, *entry.Lead)
		s.saveDead()
	case TrashConverted:
		s.converted = append(s.converted, *entry.Lead)
		s.saveConverted()
	}

	s.saveTrash()
	s.notify("Restored from trash")
}

// EmptyTrash discards every trashed record. Irreversible; callers are
// expected to confirm with the user first.
func (s *Service) EmptyTrash() {
	if len(s.trash) == 0 {
		return
	}

	s.trash = nil
	s.saveTrash()
	s.notify("Trash emptied")
}

// AddGolfCourse registers a course. Name is required.
func (s *Service) AddGolfCourse(course GolfCourse) bool {
	if course.Name == "" {
		s.notify("Name required")
		return false
	}

	course.ID = s.newID()
	course.CreatedAt = s.now()
	s.golfCourses = append(s.golfCourses, course)
	s.saveGolfCourses()
	s.notify("Course added")

	return true
}

// UpdateGolfCourse replaces the course with the matching identifier.
func (s *Service) UpdateGolfCourse(course GolfCourse) {
	for i := range s.golfCourses {
		if s.golfCourses[i].ID == course.ID {
			s.golfCourses[i] = course
			s.saveGolfCourses()
			s.notify("Course updated")

			return
		}
	}
}

// DeleteGolfCourse removes a course outright (no trash path). If it was
// the active course the settings reference is cleared. Callers confirm.
func (s *Service) DeleteGolfCourse(id string) {
	kept := s.golfCourses[:0:0]
	for _, gc := range s.golfCourses {
		if gc.ID != id {
			kept = append(kept, gc)
		}
	}

	if len(kept) == len(s.golfCourses) {
		return
	}

	s.golfCourses = kept
	s.saveGolfCourses()

	if s.settings.ActiveGolfCourse == id {
		s.settings.ActiveGolfCourse = ""
		s.saveSettings()
	}

	s.notify("Course deleted")
}

// QuickLogEmail appends an email-log entry for the lead and bumps its
// denormalized email counters.
func (s *Service) QuickLogEmail(id string) {
	i := findLead(s.leads, id)
	if i < 0 {
		return
	}

	lead := &s.leads[i]
	now := s.now()

	s.emails = append([]EmailEntry{{
		ID:       s.newID(),
		LeadID:   lead.ID,
		LeadName: lead.DisplayName(),
		To:       lead.Email,
		SentAt:   now,
	}}, s.emails...)

	lead.LastEmailed = &now
	lead.EmailCount++
	s.saveEmails()
	s.saveLeads()
	s.notify(fmt.Sprintf("Email logged for %s", lead.DisplayName()))
}

// DeleteEmail removes an email-log entry outright; emails have no trash
// path.
func (s *Service) DeleteEmail(id string) {
	kept := s.emails[:0:0]
	for _, e := range s.emails {
		if e.ID != id {
			kept = append(kept, e)
		}
	}

	if len(kept) == len(s.emails) {
		return
	}

	s.emails = kept
	s.saveEmails()
	s.notify("Deleted")
}

// ClearAllData wipes every collection except settings and golf courses.
// Callers confirm.
func (s *Service) ClearAllData() {
	s.leads = nil
	s.dncList = nil
	s.deadLeads = nil
	s.converted = nil
	s.trash = nil
	s.emails = nil
	s.callLog = nil
	s.dailyStats = map[string]int{}
	s.sales = nil

	s.saveLeads()
	s.saveDNC()
	s.saveDead()
	s.saveConverted()
	s.saveTrash()
	s.saveEmails()
	s.saveCallLog()
	s.saveStats()
	s.saveSales()
	s.notify("Data cleared")
}

// ImportedData is a batch of records produced by the importer, appended
// to the matching collections as-is.
type ImportedData struct {
	Leads       []Lead
	DNCList     []Lead
	DeadLeads   []Lead
	CallLog     []CallLogEntry
	GolfCourses []GolfCourse
}

// AppendImported merges an import batch into the collections and returns
// the number of records taken in.
func (s *Service) AppendImported(data ImportedData) int {
	n := len(data.Leads) + len(data.DNCList) + len(data.DeadLeads) +
		len(data.CallLog) + len(data.GolfCourses)
	if n == 0 {
		return 0
	}

	if len(data.Leads) > 0 {
		s.leads = append(s.leads, data.Leads...)
		s.saveLeads()
	}

	if len(data.DNCList) > 0 {
		s.dncList = append(s.dncList, data.DNCList...)
		s.saveDNC()
	}

	if len(data.DeadLeads) > 0 {
		s.deadLeads = append(s.deadLeads, data.DeadLeads...)
		s.saveDead()
	}

	if len(data.CallLog) > 0 {
		s.callLog = append(s.callLog, data.CallLog...)
		s.saveCallLog()
	}

	if len(data.GolfCourses) > 0 {
		s.golfCourses = append(s.golfCourses, data.GolfCourses...)
		s.saveGolfCourses()
	}

	return n
}

func (s *Service) lookupGolfCourse(id string) *GolfCourse {
	for i := range s.golfCourses {
		if s.golfCourses[i].ID == id {
			return &s.golfCourses[i]
		}
	}

	return nil
}

// ActiveGolfCourse resolves the settings reference, or nil when unset or
// dangling.
func (s *Service) ActiveGolfCourse() *GolfCourse {
	if s.settings.ActiveGolfCourse == "" {
		return nil
	}

	return s.lookupGolfCourse(s.settings.ActiveGolfCourse)
}
