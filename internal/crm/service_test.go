package crm

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTime is a Wednesday; week-window tests rely on that.
var testTime = time.Date(2026, 3, 18, 10, 0, 0, 0, time.Local)

// newTestService builds a memory-only service with a frozen clock and
// sequential identifiers.
func newTestService() *Service {
	s := NewService(nil)
	s.now = func() time.Time { return testTime }

	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}

	return s
}

func addLead(t *testing.T, s *Service, name string) Lead {
	t.Helper()
	require.True(t, s.AddLead(LeadParams{BusinessName: name, Phone: "555-0000"}))

	return s.Leads()[0]
}

func TestAddLead_RequiresNameOrPhone(t *testing.T) {
	s := newTestService()

	var toast string
	s.SetNotifier(func(msg string) { toast = msg })

	assert.False(t, s.AddLead(LeadParams{Email: "a@b.c"}))
	assert.Empty(t, s.Leads())
	assert.Equal(t, "Name or phone required", toast)

	assert.True(t, s.AddLead(LeadParams{Phone: "555-1111"}))
	assert.Len(t, s.Leads(), 1)
}

func TestAddLead_DefaultsAndPrepends(t *testing.T) {
	s := newTestService()
	s.UpdateSettings(Settings{DailyGoal: 150, DailySalesGoal: 2, ActiveGolfCourse: "gc-1"})

	s.AddLead(LeadParams{BusinessName: "First"})
	s.AddLead(LeadParams{BusinessName: "Second"})

	leads := s.Leads()
	require.Len(t, leads, 2)
	assert.Equal(t, "Second", leads[0].BusinessName)
	assert.Equal(t, PriorityNormal, leads[0].Priority)
	assert.Equal(t, "gc-1", leads[0].GolfCourseID)
	assert.Equal(t, testTime, leads[0].CreatedAt)
	assert.NotEmpty(t, leads[0].ID)
	assert.Zero(t, leads[0].CallCount)
}

func TestMoveToDNC_ExclusiveMembership(t *testing.T) {
	s := newTestService()
	lead := addLead(t, s, "Acme")

	s.MoveToDNC(lead.ID)

	assert.Empty(t, s.Leads())
	require.Len(t, s.DNCList(), 1)
	require.NotNil(t, s.DNCList()[0].DNCDate)
	assert.Equal(t, testTime, *s.DNCList()[0].DNCDate)

	s.RestoreFromDNC(lead.ID)

	assert.Empty(t, s.DNCList())
	require.Len(t, s.Leads(), 1)
	require.NotNil(t, s.Leads()[0].RestoredAt)
}

func TestMoveToDead_AndRestore(t *testing.T) {
	s := newTestService()
	lead := addLead(t, s, "Acme")

	s.MoveToDead(lead.ID)

	assert.Empty(t, s.Leads())
	require.Len(t, s.DeadLeads(), 1)
	require.NotNil(t, s.DeadLeads()[0].DeadDate)

	s.RestoreFromDead(lead.ID)

	assert.Empty(t, s.DeadLeads())
	assert.Len(t, s.Leads(), 1)
}

func TestMoveToDNC_UnknownIDIsNoop(t *testing.T) {
	s := newTestService()
	addLead(t, s, "Acme")

	s.MoveToDNC("nope")

	assert.Len(t, s.Leads(), 1)
	assert.Empty(t, s.DNCList())
}

func TestConvertLead_WithSale(t *testing.T) {
	s := newTestService()
	lead := addLead(t, s, "Acme")

	s.ConvertLead(lead.ID, &SaleParams{Type: SaleSingle, Amount: 395, SaleCount: 1})

	assert.Empty(t, s.Leads())
	require.Len(t, s.ConvertedLeads(), 1)

	converted := s.ConvertedLeads()[0]
	assert.Equal(t, "converted", converted.Status)
	require.NotNil(t, converted.ConvertedAt)

	require.Len(t, s.Sales(), 1)
	sale := s.Sales()[0]
	assert.Equal(t, lead.ID, sale.LeadID)
	assert.Equal(t, "Acme", sale.LeadName)
	assert.Equal(t, 395, sale.Amount)
	assert.Equal(t, 1, sale.SaleCount)
}

func TestConvertLead_NoSale(t *testing.T) {
	s := newTestService()
	lead := addLead(t, s, "Acme")

	s.ConvertLead(lead.ID, nil)

	assert.Len(t, s.ConvertedLeads(), 1)
	assert.Empty(t, s.Sales())
}

func TestConvertLead_SaleCountDefaultsToOne(t *testing.T) {
	s := newTestService()
	lead := addLead(t, s, "Acme")

	s.ConvertLead(lead.ID, &SaleParams{Type: SaleCustom, Amount: 250})

	require.Len(t, s.Sales(), 1)
	assert.Equal(t, 1, s.Sales()[0].SaleCount)
}

func TestUnconvertLead_DiscardsSales(t *testing.T) {
	s := newTestService()
	lead := addLead(t, s, "Acme")

	s.ConvertLead(lead.ID, &SaleParams{Type: SaleSingle, Amount: 395, SaleCount: 1})
	s.UnconvertLead(lead.ID)

	assert.Empty(t, s.ConvertedLeads())
	assert.Empty(t, s.Sales(), "linked sale is dropped, not trashed")
	require.Len(t, s.Leads(), 1)
	assert.Equal(t, "active", s.Leads()[0].Status)
	assert.NotNil(t, s.Leads()[0].UnconvertedAt)
	assert.Empty(t, s.Trash())
}

func TestDeleteToTrash_AndRestore(t *testing.T) {
	s := newTestService()
	lead := addLead(t, s, "Acme")

	s.DeleteToTrash(lead.ID, TrashLead)

	assert.Empty(t, s.Leads())
	require.Len(t, s.Trash(), 1)
	assert.Equal(t, TrashLead, s.Trash()[0].Type)
	assert.Equal(t, testTime, s.Trash()[0].DeletedAt)

	s.RestoreFromTrash(lead.ID, TrashLead)

	assert.Empty(t, s.Trash())
	assert.Len(t, s.Leads(), 1)
}

func TestRestoreFromTrash_MatchesType(t *testing.T) {
	s := newTestService()
	lead := addLead(t, s, "Acme")

	s.MoveToDNC(lead.ID)
	s.DeleteToTrash(lead.ID, TrashDNC)

	// Same identifier, wrong origin type: nothing moves.
	s.RestoreFromTrash(lead.ID, TrashLead)
	assert.Len(t, s.Trash(), 1)
	assert.Empty(t, s.DNCList())

	s.RestoreFromTrash(lead.ID, TrashDNC)
	assert.Empty(t, s.Trash())
	assert.Len(t, s.DNCList(), 1)
}

func TestDeleteToTrash_FromEachOrigin(t *testing.T) {
	tests := []struct {
		name   string
		origin TrashType
		move   func(s *Service, id string)
		count  func(s *Service) int
	}{
		{
			name:   "dnc",
			origin: TrashDNC,
			move:   func(s *Service, id string) { s.MoveToDNC(id) },
			count:  func(s *Service) int { return len(s.DNCList()) },
		},
		{
			name:   "dead",
			origin: TrashDead,
			move:   func(s *Service, id string) { s.MoveToDead(id) },
			count:  func(s *Service) int { return len(s.DeadLeads()) },
		},
		{
			name:   "converted",
			origin: TrashConverted,
			move:   func(s *Service, id string) { s.ConvertLead(id, nil) },
			count:  func(s *Service) int { return len(s.ConvertedLeads()) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestService()
			lead := addLead(t, s, "Acme")

			tt.move(s, lead.ID)
			require.Equal(t, 1, tt.count(s))

			s.DeleteToTrash(lead.ID, tt.origin)
			assert.Zero(t, tt.count(s))
			require.Len(t, s.Trash(), 1)

			s.RestoreFromTrash(lead.ID, tt.origin)
			assert.Equal(t, 1, tt.count(s))
			assert.Empty(t, s.Trash())
		})
	}
}

func TestEmptyTrash(t *testing.T) {
	s := newTestService()
	lead := addLead(t, s, "Acme")
	s.DeleteToTrash(lead.ID, TrashLead)

	s.EmptyTrash()

	assert.Empty(t, s.Trash())
	assert.Empty(t, s.Leads())
}

func TestUpdateLead(t *testing.T) {
	s := newTestService()
	lead := addLead(t, s, "Acme")

	lead.BusinessName = "Acme Corp"
	lead.Priority = PriorityHot
	s.UpdateLead(lead)

	assert.Equal(t, "Acme Corp", s.Leads()[0].BusinessName)
	assert.Equal(t, PriorityHot, s.Leads()[0].Priority)
}

func TestGolfCourseLifecycle(t *testing.T) {
	s := newTestService()

	assert.False(t, s.AddGolfCourse(GolfCourse{Region: "North"}))
	require.True(t, s.AddGolfCourse(GolfCourse{Name: "Pine Valley"}))

	course := s.GolfCourses()[0]
	assert.NotEmpty(t, course.ID)
	assert.Equal(t, testTime, course.CreatedAt)

	course.Region = "North"
	s.UpdateGolfCourse(course)
	assert.Equal(t, "North", s.GolfCourses()[0].Region)

	s.UpdateSettings(Settings{DailyGoal: 150, DailySalesGoal: 2, ActiveGolfCourse: course.ID})
	s.DeleteGolfCourse(course.ID)

	assert.Empty(t, s.GolfCourses())
	assert.Empty(t, s.Settings().ActiveGolfCourse, "deleting the active course clears the reference")
}

func TestActiveGolfCourse(t *testing.T) {
	s := newTestService()
	require.True(t, s.AddGolfCourse(GolfCourse{Name: "Pine Valley"}))
	course := s.GolfCourses()[0]

	assert.Nil(t, s.ActiveGolfCourse())

	s.UpdateSettings(Settings{DailyGoal: 150, DailySalesGoal: 2, ActiveGolfCourse: course.ID})
	require.NotNil(t, s.ActiveGolfCourse())
	assert.Equal(t, "Pine Valley", s.ActiveGolfCourse().Name)
}

func TestQuickLogEmail(t *testing.T) {
	s := newTestService()
	s.AddLead(LeadParams{BusinessName: "Acme", Email: "acme@example.com", Phone: "555-1111"})
	lead := s.Leads()[0]

	s.QuickLogEmail(lead.ID)
	s.QuickLogEmail(lead.ID)

	require.Len(t, s.Emails(), 2)
	assert.Equal(t, "acme@example.com", s.Emails()[0].To)
	assert.Equal(t, 2, s.Leads()[0].EmailCount)
	require.NotNil(t, s.Leads()[0].LastEmailed)

	s.DeleteEmail(s.Emails()[0].ID)
	assert.Len(t, s.Emails(), 1)
}

func TestClearAllData_KeepsSettingsAndCourses(t *testing.T) {
	s := newTestService()
	s.AddGolfCourse(GolfCourse{Name: "Pine Valley"})
	s.UpdateSettings(Settings{DailyGoal: 99, DailySalesGoal: 3})

	lead := addLead(t, s, "Acme")
	s.TallyCall(lead.ID, "", "")
	s.RecordSale(SaleParams{Amount: 100})

	s.ClearAllData()

	assert.Empty(t, s.Leads())
	assert.Empty(t, s.CallLog())
	assert.Empty(t, s.Sales())
	assert.Empty(t, s.DailyStats())
	assert.Len(t, s.GolfCourses(), 1)
	assert.Equal(t, 99, s.Settings().DailyGoal)
}

func TestAppendImported(t *testing.T) {
	s := newTestService()
	addLead(t, s, "Existing")

	n := s.AppendImported(ImportedData{
		Leads:       []Lead{{ID: "i-1", BusinessName: "Imported"}},
		DNCList:     []Lead{{ID: "i-2", BusinessName: "Blocked"}},
		GolfCourses: []GolfCourse{{ID: "i-3", Name: "Dunes"}},
	})

	assert.Equal(t, 3, n)
	assert.Len(t, s.Leads(), 2)
	assert.Equal(t, "Imported", s.Leads()[1].BusinessName, "imported leads append after existing")
	assert.Len(t, s.DNCList(), 1)
	assert.Len(t, s.GolfCourses(), 1)

	assert.Zero(t, s.AppendImported(ImportedData{}))
}

func TestFiltersRoundTrip(t *testing.T) {
	s := newTestService()

	f := DefaultFilters
	f.Priority = "hot"
	s.UpdateFilters(f)
	assert.Equal(t, "hot", s.Filters().Priority)

	s.ClearFilters()
	assert.Equal(t, DefaultFilters, s.Filters())
}
