package crm

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTallyCall_Manual(t *testing.T) {
	s := newTestService()

	var toast string
	s.SetNotifier(func(msg string) { toast = msg })

	entry := s.TallyCall("", "", "")

	require.NotNil(t, entry)
	assert.Equal(t, "Manual Tally", entry.LeadName)
	assert.Equal(t, OutcomeCompleted, entry.Outcome, "outcome defaults to completed")
	assert.Empty(t, entry.LeadID)
	assert.Equal(t, 1, s.TodaysCalls())
	assert.Equal(t, "Call tallied! Today: 1", toast)
}

func TestTallyCall_LinkedLead(t *testing.T) {
	s := newTestService()
	lead := addLead(t, s, "Acme")

	entry := s.TallyCall(lead.ID, OutcomeVoicemail, "left message")

	assert.Equal(t, "Acme", entry.LeadName)
	assert.Equal(t, lead.ID, entry.LeadID)

	updated := s.Leads()[0]
	assert.Equal(t, 1, updated.CallCount)
	require.NotNil(t, updated.LastCalled)
	require.Len(t, updated.CallHistory, 1)
	assert.Equal(t, entry.ID, updated.CallHistory[0].ID, "history entry shares the log identifier")
	assert.Equal(t, OutcomeVoicemail, updated.CallHistory[0].Outcome)
	assert.Equal(t, "left message", updated.CallHistory[0].Notes)
}

func TestTallyCall_PrependsAndCaps(t *testing.T) {
	s := newTestService()

	for i := 0; i < callLogCap; i++ {
		s.callLog = append(s.callLog, CallLogEntry{ID: fmt.Sprintf("old-%d", i)})
	}

	entry := s.TallyCall("", "", "")

	assert.Len(t, s.CallLog(), callLogCap)
	assert.Equal(t, entry.ID, s.CallLog()[0].ID)
	assert.Equal(t, "old-998", s.CallLog()[callLogCap-1].ID, "oldest entry falls off")
}

func TestDeleteCall_UndoesTallyAndRestoreReapplies(t *testing.T) {
	s := newTestService()
	lead := addLead(t, s, "Acme")

	s.TallyCall(lead.ID, "", "")
	second := s.TallyCall(lead.ID, "", "")
	s.TallyCall(lead.ID, "", "")

	require.Equal(t, 3, s.Leads()[0].CallCount)
	require.Equal(t, 3, s.TodaysCalls())
	require.Len(t, s.Leads()[0].CallHistory, 3)

	s.DeleteCall(second.ID)

	assert.Equal(t, 2, s.Leads()[0].CallCount)
	assert.Equal(t, 2, s.TodaysCalls())
	assert.Len(t, s.Leads()[0].CallHistory, 2)
	assert.Len(t, s.CallLog(), 2)
	require.Len(t, s.Trash(), 1)
	assert.Equal(t, TrashCall, s.Trash()[0].Type)

	s.RestoreFromTrash(second.ID, TrashCall)

	assert.Equal(t, 3, s.Leads()[0].CallCount)
	assert.Equal(t, 3, s.TodaysCalls())
	assert.Len(t, s.Leads()[0].CallHistory, 3)
	assert.Len(t, s.CallLog(), 3)
	assert.Empty(t, s.Trash())
}

func TestDeleteCall_CountersFloorAtZero(t *testing.T) {
	s := newTestService()
	lead := addLead(t, s, "Acme")
	entry := s.TallyCall(lead.ID, "", "")

	// Simulate drift: counters already at zero before the delete.
	s.dailyStats[dayKey(testTime)] = 0
	s.leads[0].CallCount = 0

	s.DeleteCall(entry.ID)

	assert.Zero(t, s.TodaysCalls())
	assert.Zero(t, s.Leads()[0].CallCount)
}

func TestDeleteCall_UnknownIDIsNoop(t *testing.T) {
	s := newTestService()
	s.TallyCall("", "", "")

	s.DeleteCall("nope")

	assert.Len(t, s.CallLog(), 1)
	assert.Empty(t, s.Trash())
}

func TestUpdateCall(t *testing.T) {
	s := newTestService()
	entry := s.TallyCall("", "", "")

	updated := *entry
	updated.Outcome = OutcomeInterested
	updated.Notes = "call back friday"
	s.UpdateCall(updated)

	assert.Equal(t, OutcomeInterested, s.CallLog()[0].Outcome)
	assert.Equal(t, "call back friday", s.CallLog()[0].Notes)
}

func TestRecordSale(t *testing.T) {
	s := newTestService()

	assert.False(t, s.RecordSale(SaleParams{}), "amount is required")
	assert.Empty(t, s.Sales())

	require.True(t, s.RecordSale(SaleParams{Type: SaleCustom, Amount: 250}))
	sale := s.Sales()[0]
	assert.Equal(t, "Walk-in", sale.LeadName)
	assert.Equal(t, 1, sale.SaleCount)
	assert.Equal(t, 250, sale.Amount)
}

func TestGoalProgress(t *testing.T) {
	s := newTestService()
	s.UpdateSettings(Settings{DailyGoal: 10, DailySalesGoal: 2})

	assert.Zero(t, s.GoalProgress())

	for i := 0; i < 5; i++ {
		s.TallyCall("", "", "")
	}

	assert.Equal(t, 50, s.GoalProgress())

	for i := 0; i < 20; i++ {
		s.TallyCall("", "", "")
	}

	assert.Equal(t, 100, s.GoalProgress(), "progress caps at 100")

	s.UpdateSettings(Settings{DailyGoal: 0})
	assert.Zero(t, s.GoalProgress(), "zero goal never divides")
}

func TestHotLeads(t *testing.T) {
	s := newTestService()
	s.AddLead(LeadParams{BusinessName: "A", Priority: PriorityHot})
	s.AddLead(LeadParams{BusinessName: "B"})
	s.AddLead(LeadParams{BusinessName: "C", Priority: PriorityHot})

	assert.Equal(t, 2, s.HotLeads())
}

func TestFollowUps_DueSortedAscending(t *testing.T) {
	s := newTestService()

	yesterday := testTime.AddDate(0, 0, -1)
	lastWeek := testTime.AddDate(0, 0, -7)
	tomorrow := testTime.AddDate(0, 0, 1)

	s.AddLead(LeadParams{BusinessName: "Yesterday", FollowUp: &yesterday})
	s.AddLead(LeadParams{BusinessName: "LastWeek", FollowUp: &lastWeek})
	s.AddLead(LeadParams{BusinessName: "Tomorrow", FollowUp: &tomorrow})
	s.AddLead(LeadParams{BusinessName: "NoDate"})

	due := s.FollowUps()

	require.Len(t, due, 2)
	assert.Equal(t, "LastWeek", due[0].BusinessName)
	assert.Equal(t, "Yesterday", due[1].BusinessName)

	assert.Equal(t, 2, s.OverdueCount())
}

func TestWeekSales_StartsSunday(t *testing.T) {
	s := newTestService()

	// testTime is Wednesday 2026-03-18; the week began Sunday 2026-03-15.
	saturday := time.Date(2026, 3, 14, 12, 0, 0, 0, time.Local)
	sunday := time.Date(2026, 3, 15, 12, 0, 0, 0, time.Local)

	s.sales = []Sale{
		{ID: "s1", SaleDate: saturday, Amount: 395, SaleCount: 1},
		{ID: "s2", SaleDate: sunday, Amount: 790, SaleCount: 2},
		{ID: "s3", SaleDate: testTime, Amount: 1185, SaleCount: 3},
	}

	week := s.WeekSales()
	assert.Equal(t, 2, week.Deals)
	assert.Equal(t, 5, week.Count)
	assert.Equal(t, 1975, week.Revenue)

	today := s.TodaysSales()
	assert.Equal(t, 1, today.Deals)
	assert.Equal(t, 3, today.Count)
	assert.Equal(t, 1185, today.Revenue)
}

func TestSalesSummary_UnitsDefaultToOne(t *testing.T) {
	s := newTestService()
	s.sales = []Sale{{ID: "s1", SaleDate: testTime, Amount: 100}}

	assert.Equal(t, 1, s.TodaysSales().Count)
}

func TestTallyCall_PhoneOnlyLeadFallsBackToPhone(t *testing.T) {
	s := newTestService()
	require.True(t, s.AddLead(LeadParams{Phone: "555-9999"}))
	lead := s.Leads()[0]

	entry := s.TallyCall(lead.ID, "", "")

	require.NotNil(t, entry)
	assert.Equal(t, "555-9999", entry.LeadName, "log entries must never be nameless")
}
