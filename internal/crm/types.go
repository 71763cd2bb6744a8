package crm

import (
	"time"
)

// Priority ranks how aggressively a lead should be worked.
type Priority string

const (
	PriorityHot    Priority = "hot"
	PriorityNormal Priority = "normal"
	PriorityLow    Priority = "low"
)

// Rank returns the fixed sort order for a priority (hot first).
// Unknown values rank as normal.
func (p Priority) Rank() int {
	switch p {
	case PriorityHot:
		return 0
	case PriorityLow:
		return 2
	}

	return 1
}

// Outcome is the result of a single call.
type Outcome string

const (
	OutcomeCompleted     Outcome = "completed"
	OutcomeVoicemail     Outcome = "voicemail"
	OutcomeNoAnswer      Outcome = "no-answer"
	OutcomeCallback      Outcome = "callback"
	OutcomeInterested    Outcome = "interested"
	OutcomeNotInterested Outcome = "not-interested"
)

// Outcomes lists every call outcome in display order.
var Outcomes = []Outcome{
	OutcomeCompleted, OutcomeVoicemail, OutcomeNoAnswer,
	OutcomeCallback, OutcomeInterested, OutcomeNotInterested,
}

// SaleType identifies a canonical product tier.
type SaleType string

const (
	SaleSingle SaleType = "single"
	SaleDouble SaleType = "double"
	SaleTriple SaleType = "triple"
	SaleQuad   SaleType = "quad"
	SaleCustom SaleType = "custom"
)

// SaleTier describes a sale type's canonical price and unit multiplier.
type SaleTier struct {
	Key       SaleType
	Label     string
	Price     int
	SaleCount int
}

// SaleTiers is the fixed product table for the scorecard banner business.
var SaleTiers = []SaleTier{
	{Key: SaleSingle, Label: "Single Banner", Price: 395, SaleCount: 1},
	{Key: SaleDouble, Label: "Double Banner", Price: 790, SaleCount: 2},
	{Key: SaleTriple, Label: "Triple Banner", Price: 1185, SaleCount: 3},
	{Key: SaleQuad, Label: "Quad Banner", Price: 1580, SaleCount: 4},
	{Key: SaleCustom, Label: "Custom Amount", Price: 0, SaleCount: 1},
}

// TierFor returns the tier for a sale type, or the custom tier if unknown.
func TierFor(t SaleType) SaleTier {
	for _, tier := range SaleTiers {
		if tier.Key == t {
			return tier
		}
	}

	return SaleTiers[len(SaleTiers)-1]
}

// Industries and Sources are suggested values only; both fields accept
// arbitrary strings.
var Industries = []string{
	"Restaurant", "Bar / Nightclub", "Auto Detail Service", "Law Firm",
	"Realtor / Real Estate", "Medical / Healthcare", "Dental Office",
	"Fitness / Gym", "Salon / Spa", "Retail Store", "Professional Services",
	"Construction / Trades", "Financial Services", "Insurance",
	"Tech / Software", "Other",
}

var Sources = []string{
	"Google Maps", "Referral", "Cold Call", "Website", "Social Media",
	"Trade Show", "Yelp", "Yellow Pages", "Door to Door", "Other",
}

// CallHistoryEntry is one call recorded against a lead. Its ID matches the
// corresponding call log entry so a deleted call can be removed from both.
type CallHistoryEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Outcome   Outcome   `json:"outcome"`
	Notes     string    `json:"notes,omitempty"`
}

// Lead is the central entity tracked through the calling pipeline. The same
// shape moves between the active, DNC, dead and converted collections; the
// optional transition stamps record how it got where it is.
type Lead struct {
	ID           string             `json:"id"`
	BusinessName string             `json:"businessName"`
	ContactName  string             `json:"contactName,omitempty"`
	Phone        string             `json:"phone,omitempty"`
	Email        string             `json:"email,omitempty"`
	Address      string             `json:"address,omitempty"`
	Website      string             `json:"website,omitempty"`
	Industry     string             `json:"industry,omitempty"`
	Source       string             `json:"source,omitempty"`
	Priority     Priority           `json:"priority,omitempty"`
	Notes        string             `json:"notes,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
	FollowUp     *time.Time         `json:"followUp,omitempty"`
	LastCalled   *time.Time         `json:"lastCalled,omitempty"`
	CallCount    int                `json:"callCount"`
	CallHistory  []CallHistoryEntry `json:"callHistory,omitempty"`
	EmailCount   int                `json:"emailCount,omitempty"`
	LastEmailed  *time.Time         `json:"lastEmailed,omitempty"`
	GolfCourseID string             `json:"golfCourseId,omitempty"`
	Status       string             `json:"status,omitempty"`

	DNCDate       *time.Time `json:"dncDate,omitempty"`
	DeadDate      *time.Time `json:"deadDate,omitempty"`
	ConvertedAt   *time.Time `json:"convertedAt,omitempty"`
	RestoredAt    *time.Time `json:"restoredAt,omitempty"`
	UnconvertedAt *time.Time `json:"unconvertedAt,omitempty"`
}

func (l Lead) ItemID() string { return l.ID }

// DisplayName prefers the business name, falling back to the contact.
func (l Lead) DisplayName() string {
	if l.BusinessName != "" {
		return l.BusinessName
	}

	if l.ContactName != "" {
		return l.ContactName
	}

	return l.Phone
}

// CallLogEntry is an append-only record of a tallied call. Lead name and
// phone are denormalized so the entry survives the lead's deletion.
type CallLogEntry struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	LeadID       string    `json:"leadId,omitempty"`
	LeadName     string    `json:"leadName"`
	Phone        string    `json:"phone,omitempty"`
	Outcome      Outcome   `json:"outcome"`
	Notes        string    `json:"notes,omitempty"`
	GolfCourseID string    `json:"golfCourseId,omitempty"`
}

func (c CallLogEntry) ItemID() string { return c.ID }

// Sale records revenue, either linked to a lead or freestanding.
type Sale struct {
	ID           string    `json:"id"`
	LeadID       string    `json:"leadId,omitempty"`
	LeadName     string    `json:"leadName"`
	SaleDate     time.Time `json:"saleDate"`
	SaleType     SaleType  `json:"saleType"`
	Amount       int       `json:"amount"`
	SaleCount    int       `json:"saleCount"`
	Notes        string    `json:"notes,omitempty"`
	GolfCourseID string    `json:"golfCourseId,omitempty"`
}

func (s Sale) ItemID() string { return s.ID }

// GolfCourse is a referenced (never owned) default context for leads,
// calls and sales.
type GolfCourse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	ContactName string    `json:"contactName,omitempty"`
	Email       string    `json:"email,omitempty"`
	Region      string    `json:"region,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (g GolfCourse) ItemID() string { return g.ID }

// EmailEntry marks that a lead was emailed.
type EmailEntry struct {
	ID       string    `json:"id"`
	LeadID   string    `json:"leadId"`
	LeadName string    `json:"leadName"`
	To       string    `json:"to,omitempty"`
	SentAt   time.Time `json:"sentAt"`
}

func (e EmailEntry) ItemID() string { return e.ID }

// TrashType tags which collection a trashed record came from.
type TrashType string

const (
	TrashLead      TrashType = "lead"
	TrashDNC       TrashType = "dnc"
	TrashDead      TrashType = "dead"
	TrashConverted TrashType = "converted"
	TrashCall      TrashType = "call"
)

// TrashEntry holds a deleted record of any origin. Exactly one of Lead or
// Call is set, according to Type. Restores match on identifier AND type,
// since identifiers are only unique within an origin collection.
type TrashEntry struct {
	Type      TrashType     `json:"type"`
	DeletedAt time.Time     `json:"deletedAt"`
	Lead      *Lead         `json:"lead,omitempty"`
	Call      *CallLogEntry `json:"call,omitempty"`
}

func (t TrashEntry) ItemID() string {
	if t.Call != nil {
		return t.Call.ID
	}

	if t.Lead != nil {
		return t.Lead.ID
	}

	return ""
}

// DisplayName names the trashed record for lists and toasts.
func (t TrashEntry) DisplayName() string {
	if t.Call != nil {
		return t.Call.LeadName
	}

	if t.Lead != nil {
		return t.Lead.DisplayName()
	}

	return ""
}

// Settings is the process-wide singleton, loaded at startup and persisted
// on every change.
type Settings struct {
	DailyGoal        int    `json:"dailyGoal"`
	DailySalesGoal   int    `json:"dailySalesGoal"`
	ActiveGolfCourse string `json:"activeGolfCourse,omitempty"`
}

// DefaultSettings are applied when nothing has been persisted yet.
var DefaultSettings = Settings{DailyGoal: 150, DailySalesGoal: 2}

// FilterAll is the sentinel meaning a filter is inactive.
const FilterAll = "all"

// FilterUnassigned matches records with no golf course reference.
const FilterUnassigned = "unassigned"

// Filters is transient UI state: equality predicates applied by the query
// pipeline, each skipped while set to FilterAll.
type Filters struct {
	GolfCourseID string `json:"golfCourseId"`
	Industry     string `json:"industry"`
	Priority     string `json:"priority"`
	Source       string `json:"source"`
	Outcome      string `json:"outcome"`
	SaleType     string `json:"saleType"`
}

// DefaultFilters has every filter inactive.
var DefaultFilters = Filters{
	GolfCourseID: FilterAll,
	Industry:     FilterAll,
	Priority:     FilterAll,
	Source:       FilterAll,
	Outcome:      FilterAll,
	SaleType:     FilterAll,
}

// Item is any record the query pipeline can return.
type Item interface {
	ItemID() string
}
