package crm

import (
	"math"
	"time"
)

// AnalyticsRange selects the rolling window analytics aggregate over.
type AnalyticsRange string

const (
	RangeWeek  AnalyticsRange = "week"
	RangeMonth AnalyticsRange = "month"
	RangeAll   AnalyticsRange = "all"
)

// DayCount is one bar of the trailing seven-day breakdown.
type DayCount struct {
	Label string // abbreviated weekday
	Calls int
}

// BestDay is the highest-volume calling day in the window.
type BestDay struct {
	Day   string
	Count int
}

// Report holds the derived analytics for one window.
type Report struct {
	TotalCalls     int
	AvgPerDay      int
	BestDay        BestDay
	Outcomes       map[Outcome]int
	LeadsContacted int
	DailyBreakdown []DayCount
	TotalRevenue   int
	TotalSaleCount int
	SalesCount     int
	ConversionRate float64 // sale units per 100 calls, one decimal
}

// Analytics aggregates the call log, daily counters and sales over the
// requested rolling window.
func (s *Service) Analytics(r AnalyticsRange) Report {
	now := s.now()

	var start time.Time

	switch r {
	case RangeWeek:
		start = now.AddDate(0, 0, -7)
	case RangeMonth:
		start = now.AddDate(0, -1, 0)
	}

	report := Report{Outcomes: map[Outcome]int{}}
	contacted := map[string]struct{}{}

	for _, c := range s.callLog {
		if c.Timestamp.Before(start) {
			continue
		}

		report.TotalCalls++
		report.Outcomes[c.Outcome]++

		if c.LeadID != "" {
			contacted[c.LeadID] = struct{}{}
		}
	}

	report.LeadsContacted = len(contacted)

	activeDays := 0

	for day, count := range s.dailyStats {
		if count <= 0 {
			continue
		}

		d, err := time.ParseInLocation(time.DateOnly, day, now.Location())
		if err != nil || d.Before(truncateDay(start)) {
			continue
		}

		activeDays++

		if count > report.BestDay.Count {
			report.BestDay = BestDay{Day: day, Count: count}
		}
	}

	if activeDays > 0 {
		report.AvgPerDay = int(math.Round(float64(report.TotalCalls) / float64(activeDays)))
	}

	for i := 6; i >= 0; i-- {
		d := now.AddDate(0, 0, -i)
		report.DailyBreakdown = append(report.DailyBreakdown, DayCount{
			Label: d.Format("Mon"),
			Calls: s.dailyStats[dayKey(d)],
		})
	}

	for _, sale := range s.sales {
		if sale.SaleDate.Before(start) {
			continue
		}

		count := sale.SaleCount
		if count == 0 {
			count = 1
		}

		report.SalesCount++
		report.TotalSaleCount += count
		report.TotalRevenue += sale.Amount
	}

	if report.TotalCalls > 0 {
		rate := float64(report.TotalSaleCount) / float64(report.TotalCalls) * 100
		report.ConversionRate = math.Round(rate*10) / 10
	}

	return report
}

func truncateDay(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
