package crm

import "time"

// Snapshot is the full-backup shape: every collection plus the export
// timestamp. The field names are the wire format for backup and import.
type Snapshot struct {
	Leads          []Lead          `json:"leads"`
	DNCList        []Lead          `json:"dncList"`
	DeadLeads      []Lead          `json:"deadLeads"`
	ConvertedLeads []Lead          `json:"convertedLeads"`
	CallLog        []CallLogEntry  `json:"callLog"`
	DailyStats     map[string]int  `json:"dailyStats"`
	GolfCourses    []GolfCourse    `json:"golfCourses"`
	Sales          []Sale          `json:"sales"`
	Settings       Settings        `json:"settings"`
	ExportedAt     time.Time       `json:"exportedAt"`
}

// Snapshot captures the current state for a full JSON backup.
func (s *Service) Snapshot() Snapshot {
	return Snapshot{
		Leads:          s.leads,
		DNCList:        s.dncList,
		DeadLeads:      s.deadLeads,
		ConvertedLeads: s.converted,
		CallLog:        s.callLog,
		DailyStats:     s.dailyStats,
		GolfCourses:    s.golfCourses,
		Sales:          s.sales,
		Settings:       s.settings,
		ExportedAt:     s.now(),
	}
}
