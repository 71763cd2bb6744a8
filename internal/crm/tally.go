package crm

import (
	"fmt"
	"time"
)

// TallyCall records that a call happened right now. Today's counter always
// goes up and a call log entry is prepended; when a lead is given, its
// last-called stamp, call count and call history are updated too. The call
// history entry shares the log entry's identifier so a later delete can
// correct both.
func (s *Service) TallyCall(leadID string, outcome Outcome, notes string) *CallLogEntry {
	if outcome == "" {
		outcome = OutcomeCompleted
	}

	now := s.now()
	today := dayKey(now)
	s.dailyStats[today]++

	entry := CallLogEntry{
		ID:           s.newID(),
		Timestamp:    now,
		LeadName:     "Manual Tally",
		Outcome:      outcome,
		Notes:        notes,
		GolfCourseID: s.settings.ActiveGolfCourse,
	}

	if i := findLead(s.leads, leadID); i >= 0 {
		lead := &s.leads[i]
		entry.LeadID = lead.ID
		entry.LeadName = lead.DisplayName()
		entry.Phone = lead.Phone

		lead.LastCalled = &now
		lead.CallCount++
		lead.CallHistory = append(lead.CallHistory, CallHistoryEntry{
			ID:        entry.ID,
			Timestamp: now,
			Outcome:   outcome,
			Notes:     notes,
		})
		s.saveLeads()
	}

	s.callLog = append([]CallLogEntry{entry}, s.callLog...)
	if len(s.callLog) > callLogCap {
		s.callLog = s.callLog[:callLogCap]
	}

	s.saveStats()
	s.saveCallLog()
	s.notify(fmt.Sprintf("Call tallied! Today: %d", s.dailyStats[today]))

	return &s.callLog[0]
}

// DeleteCall moves a call log entry to the trash and undoes every side
// effect of its tally: the day's counter and, if linked, the lead's call
// count and call history entry. Counters never go below zero.
func (s *Service) DeleteCall(callID string) {
	idx := -1

	for i := range s.callLog {
		if s.callLog[i].ID == callID {
			idx = i
			break
		}
	}

	if idx < 0 {
		return
	}

	call := s.callLog[idx]
	s.callLog = append(s.callLog[:idx:idx], s.callLog[idx+1:]...)
	s.trash = append(s.trash, TrashEntry{Type: TrashCall, DeletedAt: s.now(), Call: &call})

	day := dayKey(call.Timestamp)
	if s.dailyStats[day] > 0 {
		s.dailyStats[day]--
	}

	if call.LeadID != "" {
		if i := findLead(s.leads, call.LeadID); i >= 0 {
			lead := &s.leads[i]
			if lead.CallCount > 0 {
				lead.CallCount--
			}

			history := lead.CallHistory[:0:0]
			for _, h := range lead.CallHistory {
				if h.ID != call.ID {
					history = append(history, h)
				}
			}

			lead.CallHistory = history
			s.saveLeads()
		}
	}

	s.saveCallLog()
	s.saveTrash()
	s.saveStats()
	s.notify("Call deleted")
}

// restoreCall is the trash-restore branch for calls: the exact inverse of
// DeleteCall.
func (s *Service) restoreCall(call CallLogEntry) {
	s.callLog = append([]CallLogEntry{call}, s.callLog...)
	s.dailyStats[dayKey(call.Timestamp)]++

	if call.LeadID != "" {
		if i := findLead(s.leads, call.LeadID); i >= 0 {
			lead := &s.leads[i]
			lead.CallCount++
			lead.CallHistory = append(lead.CallHistory, CallHistoryEntry{
				ID:        call.ID,
				Timestamp: call.Timestamp,
				Outcome:   call.Outcome,
				Notes:     call.Notes,
			})
			s.saveLeads()
		}
	}

	s.saveCallLog()
	s.saveStats()
}

// UpdateCall replaces the call log entry with the matching identifier.
func (s *Service) UpdateCall(call CallLogEntry) {
	for i := range s.callLog {
		if s.callLog[i].ID == call.ID {
			s.callLog[i] = call
			s.saveCallLog()
			s.notify("Call updated")

			return
		}
	}
}

// RecordSale records revenue directly, outside the conversion flow.
func (s *Service) RecordSale(p SaleParams) bool {
	if p.Amount == 0 {
		s.notify("Amount required")
		return false
	}

	count := p.SaleCount
	if count == 0 {
		count = 1
	}

	name := p.LeadName
	if name == "" {
		name = "Walk-in"
	}

	s.sales = append([]Sale{{
		ID:           s.newID(),
		LeadID:       p.LeadID,
		LeadName:     name,
		SaleDate:     s.now(),
		SaleType:     p.Type,
		Amount:       p.Amount,
		SaleCount:    count,
		Notes:        p.Notes,
		GolfCourseID: s.settings.ActiveGolfCourse,
	}}, s.sales...)
	s.saveSales()
	s.notify(fmt.Sprintf("SALE recorded! $%d", p.Amount))

	return true
}

// TodaysCalls returns the tally counter for the current day.
func (s *Service) TodaysCalls() int {
	return s.dailyStats[dayKey(s.now())]
}

// GoalProgress is today's calls as a percentage of the daily goal,
// capped at 100.
func (s *Service) GoalProgress() int {
	if s.settings.DailyGoal <= 0 {
		return 0
	}

	p := s.TodaysCalls() * 100 / s.settings.DailyGoal
	if p > 100 {
		p = 100
	}

	return p
}

// HotLeads counts active leads with hot priority.
func (s *Service) HotLeads() int {
	n := 0

	for _, l := range s.leads {
		if l.Priority == PriorityHot {
			n++
		}
	}

	return n
}

// FollowUps returns active leads whose follow-up is due, ordered by
// follow-up date ascending.
func (s *Service) FollowUps() []Lead {
	now := s.now()

	var due []Lead

	for _, l := range s.leads {
		if l.FollowUp != nil && IsTodayOrPast(*l.FollowUp, now) {
			due = append(due, l)
		}
	}

	sortStable(due, func(a, b Lead) int {
		return a.FollowUp.Compare(*b.FollowUp)
	})

	return due
}

// OverdueCount counts active leads whose follow-up slipped past its day.
func (s *Service) OverdueCount() int {
	now := s.now()
	n := 0

	for _, l := range s.leads {
		if l.FollowUp != nil && IsOverdue(*l.FollowUp, now) {
			n++
		}
	}

	return n
}

// SalesSummary aggregates sales over a window.
type SalesSummary struct {
	Count   int // units sold
	Revenue int
	Deals   int // number of sale records
}

func summarize(sales []Sale, from time.Time) SalesSummary {
	var sum SalesSummary

	for _, s := range sales {
		if s.SaleDate.Before(from) {
			continue
		}

		count := s.SaleCount
		if count == 0 {
			count = 1
		}

		sum.Count += count
		sum.Revenue += s.Amount
		sum.Deals++
	}

	return sum
}

// TodaysSales summarizes sales recorded today.
func (s *Service) TodaysSales() SalesSummary {
	now := s.now().Local()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	return summarize(s.sales, start)
}

// WeekSales summarizes sales since the start of the week (Sunday).
func (s *Service) WeekSales() SalesSummary {
	now := s.now().Local()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start = start.AddDate(0, 0, -int(now.Weekday()))

	return summarize(s.sales, start)
}
