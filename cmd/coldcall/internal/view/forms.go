package view

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"coldcall/internal/crm"
)

type formKind int

const (
	formNone formKind = iota
	formLead
	formSale
	formSettings
	formCourse
	formCall
	formListOptions
	formImportChoice
	formImportPaste
	formExport
	formConfirm
)

type confirmKind int

const (
	confirmEmptyTrash confirmKind = iota
	confirmDeleteCourse
)

// formFields holds every form binding. huh needs stable addresses for
// the duration of a form, and the model is copied on each update, so the
// fields live together in one struct that moves with it.
type formFields struct {
	business, contact, phone, email, address, website string
	industry, source, notes, followUp                 string
	priority, courseID                                string

	saleTier, saleAmount, saleNotes, saleLead string

	dailyGoal, salesGoal, activeCourse string
	wipe                               bool

	courseName, courseRegion, courseContact string
	coursePhone, courseEmail, courseNotes   string

	callOutcome, callNotes string

	sortKey                                            string
	fCourse, fIndustry, fPriority, fSource             string
	fOutcome, fSaleType                                string

	importMode, importText string

	exportTarget string

	confirm     bool
	confirmKind confirmKind
	confirmID   string
}

func (m App) startForm(kind formKind, form *huh.Form) (tea.Model, tea.Cmd) {
	m.mode = modeForm
	m.formKind = kind
	m.form = form.WithWidth(52).WithShowHelp(false)

	return m, m.form.Init()
}

func (m App) closeForm() App {
	m.mode = modeBrowse
	m.formKind = formNone
	m.form = nil
	m.editingID = ""
	m.refresh()

	return m
}

func (m App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		return m.closeForm(), nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m.submitForm()
}

func (m App) submitForm() (tea.Model, tea.Cmd) {
	kind := m.formKind

	switch kind {
	case formLead:
		return m.submitLead()
	case formSale:
		return m.submitSale()
	case formSettings:
		return m.submitSettings()
	case formCourse:
		return m.submitCourse()
	case formCall:
		return m.submitCall()
	case formListOptions:
		return m.submitListOptions()
	case formImportChoice:
		return m.submitImportChoice()
	case formImportPaste:
		return m.submitImportPaste()
	case formExport:
		return m.submitExport()
	case formConfirm:
		return m.submitConfirm()
	}

	return m.closeForm(), nil
}

// setToast shows a message that did not come through the service
// notifier, on the same expiry clock.
func (m *App) setToast(s string) tea.Cmd {
	m.toast = s
	m.toastGen++

	return toastTick(m.toastGen)
}

// Lead add / edit

func (m App) openLeadForm(lead *crm.Lead) (tea.Model, tea.Cmd) {
	m.f = &formFields{priority: string(crm.PriorityNormal)}
	m.editingID = ""

	if lead != nil {
		m.editingID = lead.ID
		m.f.business = lead.BusinessName
		m.f.contact = lead.ContactName
		m.f.phone = lead.Phone
		m.f.email = lead.Email
		m.f.address = lead.Address
		m.f.website = lead.Website
		m.f.industry = lead.Industry
		m.f.source = lead.Source
		m.f.notes = lead.Notes
		m.f.followUp = FormatDatePtr(lead.FollowUp)
		m.f.courseID = lead.GolfCourseID

		if lead.Priority != "" {
			m.f.priority = string(lead.Priority)
		}
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Business").Value(&m.f.business),
			huh.NewInput().Title("Contact").Value(&m.f.contact),
			huh.NewInput().Title("Phone").Value(&m.f.phone),
			huh.NewInput().Title("Email").Value(&m.f.email),
			huh.NewInput().Title("Website").Value(&m.f.website),
		),
		huh.NewGroup(
			huh.NewInput().Title("Address").Value(&m.f.address),
			huh.NewInput().Title("Industry").Suggestions(crm.Industries).Value(&m.f.industry),
			huh.NewInput().Title("Source").Suggestions(crm.Sources).Value(&m.f.source),
			huh.NewSelect[string]().Title("Priority").
				Options(
					huh.NewOption("Hot", string(crm.PriorityHot)),
					huh.NewOption("Normal", string(crm.PriorityNormal)),
					huh.NewOption("Low", string(crm.PriorityLow)),
				).
				Value(&m.f.priority),
			huh.NewInput().Title("Follow-up (YYYY-MM-DD)").
				Value(&m.f.followUp).
				Validate(validateOptionalDate),
			huh.NewSelect[string]().Title("Golf course").
				Options(m.courseOptions(true)...).
				Value(&m.f.courseID),
			huh.NewText().Title("Notes").Value(&m.f.notes),
		),
	)

	return m.startForm(formLead, form)
}

func (m App) submitLead() (tea.Model, tea.Cmd) {
	followUp := parseOptionalDate(m.f.followUp)

	if m.editingID == "" {
		m.crm.AddLead(crm.LeadParams{
			BusinessName: strings.TrimSpace(m.f.business),
			ContactName:  strings.TrimSpace(m.f.contact),
			Phone:        strings.TrimSpace(m.f.phone),
			Email:        strings.TrimSpace(m.f.email),
			Address:      strings.TrimSpace(m.f.address),
			Website:      strings.TrimSpace(m.f.website),
			Industry:     m.f.industry,
			Source:       m.f.source,
			Priority:     crm.Priority(m.f.priority),
			Notes:        m.f.notes,
			FollowUp:     followUp,
			GolfCourseID: m.f.courseID,
		})

		m = m.closeForm()

		return m, m.drainToast()
	}

	for _, lead := range m.crm.Leads() {
		if lead.ID != m.editingID {
			continue
		}

		lead.BusinessName = strings.TrimSpace(m.f.business)
		lead.ContactName = strings.TrimSpace(m.f.contact)
		lead.Phone = strings.TrimSpace(m.f.phone)
		lead.Email = strings.TrimSpace(m.f.email)
		lead.Address = strings.TrimSpace(m.f.address)
		lead.Website = strings.TrimSpace(m.f.website)
		lead.Industry = m.f.industry
		lead.Source = m.f.source
		lead.Priority = crm.Priority(m.f.priority)
		lead.Notes = m.f.notes
		lead.FollowUp = followUp
		lead.GolfCourseID = m.f.courseID

		m.crm.UpdateLead(lead)

		break
	}

	m = m.closeForm()

	return m, m.drainToast()
}

// Sale: convert a lead, or record a freestanding sale.

func (m App) openSaleForm(lead *crm.Lead) (tea.Model, tea.Cmd) {
	m.f = &formFields{saleTier: string(crm.SaleSingle)}
	m.editingID = ""

	title := "Record sale"
	options := make([]huh.Option[string], 0, len(crm.SaleTiers)+1)

	if lead != nil {
		m.editingID = lead.ID
		title = "Convert " + lead.DisplayName()
		options = append(options, huh.NewOption("No sale, just convert", "none"))
	}

	for _, tier := range crm.SaleTiers {
		label := tier.Label
		if tier.Price > 0 {
			label = fmt.Sprintf("%s %s", tier.Label, FormatMoney(tier.Price))
		}

		options = append(options, huh.NewOption(label, string(tier.Key)))
	}

	group := []huh.Field{
		huh.NewSelect[string]().Title(title).Options(options...).Value(&m.f.saleTier),
		huh.NewInput().Title("Custom amount").
			Value(&m.f.saleAmount).
			Validate(validateOptionalInt),
		huh.NewText().Title("Notes").Value(&m.f.saleNotes),
	}

	if lead == nil {
		group = append([]huh.Field{
			huh.NewInput().Title("Customer").Placeholder("Walk-in").Value(&m.f.saleLead),
		}, group...)
	}

	return m.startForm(formSale, huh.NewForm(huh.NewGroup(group...)))
}

func (m App) submitSale() (tea.Model, tea.Cmd) {
	if m.f.saleTier == "none" {
		m.crm.ConvertLead(m.editingID, nil)
		m = m.closeForm()

		return m, m.drainToast()
	}

	tier := crm.TierFor(crm.SaleType(m.f.saleTier))

	amount := tier.Price
	if tier.Key == crm.SaleCustom {
		amount, _ = strconv.Atoi(strings.TrimSpace(m.f.saleAmount))
	}

	params := crm.SaleParams{
		Type:      tier.Key,
		Amount:    amount,
		SaleCount: tier.SaleCount,
		Notes:     m.f.saleNotes,
	}

	if m.editingID != "" {
		m.crm.ConvertLead(m.editingID, &params)
	} else {
		params.LeadName = strings.TrimSpace(m.f.saleLead)
		m.crm.RecordSale(params)
	}

	m = m.closeForm()

	return m, m.drainToast()
}

// Settings

func (m App) openSettingsForm() (tea.Model, tea.Cmd) {
	settings := m.crm.Settings()
	m.f = &formFields{
		dailyGoal:    strconv.Itoa(settings.DailyGoal),
		salesGoal:    strconv.Itoa(settings.DailySalesGoal),
		activeCourse: settings.ActiveGolfCourse,
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Daily call goal").
				Value(&m.f.dailyGoal).
				Validate(validateInt),
			huh.NewInput().Title("Daily sales goal").
				Value(&m.f.salesGoal).
				Validate(validateInt),
			huh.NewSelect[string]().Title("Active golf course").
				Options(m.courseOptions(true)...).
				Value(&m.f.activeCourse),
			huh.NewConfirm().Title("Erase all data?").
				Description("Leads, calls, sales and emails. Courses and settings stay.").
				Affirmative("Erase").Negative("Keep").
				Value(&m.f.wipe),
		),
	)

	return m.startForm(formSettings, form)
}

func (m App) submitSettings() (tea.Model, tea.Cmd) {
	if m.f.wipe {
		m.crm.ClearAllData()
		m = m.closeForm()

		return m, m.drainToast()
	}

	daily, _ := strconv.Atoi(strings.TrimSpace(m.f.dailyGoal))
	sales, _ := strconv.Atoi(strings.TrimSpace(m.f.salesGoal))

	m.crm.UpdateSettings(crm.Settings{
		DailyGoal:        daily,
		DailySalesGoal:   sales,
		ActiveGolfCourse: m.f.activeCourse,
	})

	m = m.closeForm()

	return m, m.drainToast()
}

// Golf course add / edit

func (m App) openCourseForm(course *crm.GolfCourse) (tea.Model, tea.Cmd) {
	m.f = &formFields{}
	m.editingID = ""

	if course != nil {
		m.editingID = course.ID
		m.f.courseName = course.Name
		m.f.courseRegion = course.Region
		m.f.courseContact = course.ContactName
		m.f.coursePhone = course.Phone
		m.f.courseEmail = course.Email
		m.f.courseNotes = course.Notes
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").
				Value(&m.f.courseName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}

					return nil
				}),
			huh.NewInput().Title("Region").Value(&m.f.courseRegion),
			huh.NewInput().Title("Contact").Value(&m.f.courseContact),
			huh.NewInput().Title("Phone").Value(&m.f.coursePhone),
			huh.NewInput().Title("Email").Value(&m.f.courseEmail),
			huh.NewText().Title("Notes").Value(&m.f.courseNotes),
		),
	)

	return m.startForm(formCourse, form)
}

func (m App) submitCourse() (tea.Model, tea.Cmd) {
	course := crm.GolfCourse{
		ID:          m.editingID,
		Name:        strings.TrimSpace(m.f.courseName),
		Region:      m.f.courseRegion,
		ContactName: m.f.courseContact,
		Phone:       m.f.coursePhone,
		Email:       m.f.courseEmail,
		Notes:       m.f.courseNotes,
	}

	if m.editingID == "" {
		m.crm.AddGolfCourse(course)
	} else {
		for _, existing := range m.crm.GolfCourses() {
			if existing.ID == m.editingID {
				course.CreatedAt = existing.CreatedAt
				break
			}
		}

		m.crm.UpdateGolfCourse(course)
	}

	m = m.closeForm()

	return m, m.drainToast()
}

// Call edit

func (m App) openCallForm(call crm.CallLogEntry) (tea.Model, tea.Cmd) {
	m.editingID = call.ID
	m.f = &formFields{
		callOutcome: string(call.Outcome),
		callNotes:   call.Notes,
	}

	options := make([]huh.Option[string], len(crm.Outcomes))
	for i, o := range crm.Outcomes {
		options[i] = huh.NewOption(string(o), string(o))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Outcome").Options(options...).Value(&m.f.callOutcome),
			huh.NewText().Title("Notes").Value(&m.f.callNotes),
		),
	)

	return m.startForm(formCall, form)
}

func (m App) submitCall() (tea.Model, tea.Cmd) {
	for _, call := range m.crm.CallLog() {
		if call.ID == m.editingID {
			call.Outcome = crm.Outcome(m.f.callOutcome)
			call.Notes = m.f.callNotes
			m.crm.UpdateCall(call)

			break
		}
	}

	m = m.closeForm()

	return m, m.drainToast()
}

// Sort and filters

func (m App) openListOptionsForm() (tea.Model, tea.Cmd) {
	filters := m.crm.Filters()
	m.f = &formFields{
		sortKey:   string(m.sort),
		fCourse:   filters.GolfCourseID,
		fIndustry: filters.Industry,
		fPriority: filters.Priority,
		fSource:   filters.Source,
		fOutcome:  filters.Outcome,
		fSaleType: filters.SaleType,
	}

	sortOptions := make([]huh.Option[string], len(crm.SortKeys))
	for i, k := range crm.SortKeys {
		sortOptions[i] = huh.NewOption(string(k), string(k))
	}

	fields := []huh.Field{
		huh.NewSelect[string]().Title("Sort").Options(sortOptions...).Value(&m.f.sortKey),
		huh.NewSelect[string]().Title("Golf course").
			Options(m.filterCourseOptions()...).
			Value(&m.f.fCourse),
	}

	switch m.view {
	case crm.ViewCallLog:
		fields = append(fields,
			huh.NewSelect[string]().Title("Outcome").
				Options(allPlus(outcomeStrings())...).
				Value(&m.f.fOutcome),
		)
	case crm.ViewSales:
		fields = append(fields,
			huh.NewSelect[string]().Title("Sale type").
				Options(allPlus(saleTypeStrings())...).
				Value(&m.f.fSaleType),
		)
	default:
		fields = append(fields,
			huh.NewSelect[string]().Title("Industry").
				Options(allPlus(crm.Industries)...).
				Value(&m.f.fIndustry),
			huh.NewSelect[string]().Title("Priority").
				Options(allPlus([]string{"hot", "normal", "low"})...).
				Value(&m.f.fPriority),
			huh.NewSelect[string]().Title("Source").
				Options(allPlus(crm.Sources)...).
				Value(&m.f.fSource),
		)
	}

	return m.startForm(formListOptions, huh.NewForm(huh.NewGroup(fields...)))
}

func (m App) submitListOptions() (tea.Model, tea.Cmd) {
	m.sort = crm.SortKey(m.f.sortKey)

	m.crm.UpdateFilters(crm.Filters{
		GolfCourseID: m.f.fCourse,
		Industry:     orAll(m.f.fIndustry),
		Priority:     orAll(m.f.fPriority),
		Source:       orAll(m.f.fSource),
		Outcome:      orAll(m.f.fOutcome),
		SaleType:     orAll(m.f.fSaleType),
	})

	return m.closeForm(), nil
}

// Import

func (m App) openImportChoice() (tea.Model, tea.Cmd) {
	m.f = &formFields{importMode: "paste"}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Import leads").
				Options(
					huh.NewOption("Paste CSV or backup JSON", "paste"),
					huh.NewOption("Pick a file", "file"),
				).
				Value(&m.f.importMode),
		),
	)

	return m.startForm(formImportChoice, form)
}

func (m App) submitImportChoice() (tea.Model, tea.Cmd) {
	if m.f.importMode == "file" {
		fp := filepicker.New()
		fp.CurrentDirectory, _ = os.Getwd()
		fp.DirAllowed = false
		fp.FileAllowed = true
		fp.SetHeight(15)

		m.form = nil
		m.formKind = formNone
		m.filePicker = fp
		m.mode = modeFilePick

		return m, m.filePicker.Init()
	}

	m.f.importText = ""

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().Title("Paste data").
				Description("First line is the header for CSV.").
				Value(&m.f.importText),
		),
	)

	return m.startForm(formImportPaste, form)
}

func (m App) submitImportPaste() (tea.Model, tea.Cmd) {
	text := m.f.importText
	m = m.closeForm()

	return m, m.runImport([]byte(text))
}

func (m App) updateFilePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.mode = modeBrowse
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.mode = modeBrowse

		data, err := os.ReadFile(path)
		if err != nil {
			return m, m.setToast(fmt.Sprintf("Import failed: %v", err))
		}

		return m, m.runImport(data)
	}

	return m, cmd
}

func (m *App) runImport(data []byte) tea.Cmd {
	parsed, _, err := m.parser.
		WithActiveCourse(m.crm.Settings().ActiveGolfCourse).
		Parse(data)
	if err != nil {
		return m.setToast(fmt.Sprintf("Import failed: %v", err))
	}

	n := m.crm.AppendImported(parsed)
	m.refresh()

	return m.setToast(fmt.Sprintf("Imported %d records", n))
}

// Export

func (m App) openExportForm() (tea.Model, tea.Cmd) {
	m.f = &formFields{exportTarget: "backup"}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Export").
				Options(
					huh.NewOption("Full JSON backup", "backup"),
					huh.NewOption("Leads CSV", string(crm.ViewLeads)),
					huh.NewOption("Do-not-call CSV", string(crm.ViewDNC)),
					huh.NewOption("Dead leads CSV", string(crm.ViewDead)),
					huh.NewOption("Converted CSV", string(crm.ViewConverted)),
					huh.NewOption("Call log CSV", string(crm.ViewCallLog)),
					huh.NewOption("Sales CSV", string(crm.ViewSales)),
					huh.NewOption("Golf courses CSV", string(crm.ViewGolfCourses)),
					huh.NewOption("Email log CSV", string(crm.ViewEmails)),
				).
				Value(&m.f.exportTarget),
		),
	)

	return m.startForm(formExport, form)
}

func (m App) submitExport() (tea.Model, tea.Cmd) {
	target := m.f.exportTarget
	m = m.closeForm()

	var (
		path string
		err  error
	)

	if target == "backup" {
		path, err = m.exporter.WriteBackup(m.exportDir)
	} else {
		path, err = m.exporter.WriteCSV(m.exportDir, crm.View(target))
	}

	if err != nil {
		return m, m.setToast(fmt.Sprintf("Export failed: %v", err))
	}

	return m, m.setToast("Saved " + path)
}

// Confirmations

func (m App) openConfirm(kind confirmKind, id, prompt string) (tea.Model, tea.Cmd) {
	m.f = &formFields{confirmKind: kind, confirmID: id}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Title(prompt).
				Affirmative("Yes").Negative("No").
				Value(&m.f.confirm),
		),
	)

	return m.startForm(formConfirm, form)
}

func (m App) submitConfirm() (tea.Model, tea.Cmd) {
	confirmed := m.f.confirm
	kind := m.f.confirmKind
	id := m.f.confirmID
	m = m.closeForm()

	if !confirmed {
		return m, nil
	}

	switch kind {
	case confirmEmptyTrash:
		m.crm.EmptyTrash()
	case confirmDeleteCourse:
		m.crm.DeleteGolfCourse(id)
		m.retreat()
	}

	m.refresh()

	return m, m.drainToast()
}

// Option helpers

// courseOptions lists golf courses, optionally with a leading "none".
func (m App) courseOptions(withNone bool) []huh.Option[string] {
	courses := m.crm.GolfCourses()
	options := make([]huh.Option[string], 0, len(courses)+1)

	if withNone {
		options = append(options, huh.NewOption("None", ""))
	}

	for _, c := range courses {
		options = append(options, huh.NewOption(c.Name, c.ID))
	}

	return options
}

func (m App) filterCourseOptions() []huh.Option[string] {
	options := []huh.Option[string]{
		huh.NewOption("All", crm.FilterAll),
		huh.NewOption("Unassigned", crm.FilterUnassigned),
	}

	for _, c := range m.crm.GolfCourses() {
		options = append(options, huh.NewOption(c.Name, c.ID))
	}

	return options
}

func allPlus(values []string) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(values)+1)
	options = append(options, huh.NewOption("All", crm.FilterAll))

	for _, v := range values {
		options = append(options, huh.NewOption(v, v))
	}

	return options
}

func orAll(s string) string {
	if s == "" {
		return crm.FilterAll
	}

	return s
}

func outcomeStrings() []string {
	out := make([]string, len(crm.Outcomes))
	for i, o := range crm.Outcomes {
		out[i] = string(o)
	}

	return out
}

func saleTypeStrings() []string {
	out := make([]string, len(crm.SaleTiers))
	for i, t := range crm.SaleTiers {
		out[i] = string(t.Key)
	}

	return out
}

// Validation and parsing

func validateInt(s string) error {
	if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("enter a whole number")
	}

	return nil
}

func validateOptionalInt(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	return validateInt(s)
}

func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	if _, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), time.Local); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}

	return nil
}

func parseOptionalDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return nil
	}

	return &t
}
