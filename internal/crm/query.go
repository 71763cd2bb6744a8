package crm

import (
	"slices"
	"strings"
	"time"
)

// View identifies a screen whose list the query pipeline can produce.
type View string

const (
	ViewDashboard   View = "dashboard"
	ViewLeads       View = "leads"
	ViewFollowUps   View = "followups"
	ViewDNC         View = "dnc"
	ViewDead        View = "dead"
	ViewConverted   View = "converted"
	ViewTrash       View = "trash"
	ViewCallLog     View = "calllog"
	ViewSales       View = "sales"
	ViewEmails      View = "emails"
	ViewGolfCourses View = "golfcourses"
	ViewAnalytics   View = "analytics"
)

// LeadLike reports whether the view lists lead-shaped records that lead
// actions (tally, DNC, dead, search typing) apply to.
func (v View) LeadLike() bool {
	switch v {
	case ViewLeads, ViewFollowUps, ViewDNC, ViewDead:
		return true
	}

	return false
}

// SortKey selects the ordering comparator for the current list.
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortAlpha     SortKey = "alpha"
	SortAlphaDesc SortKey = "alpha-desc"
	SortFollowUp  SortKey = "followup"
	SortCalls     SortKey = "calls"
	SortIndustry  SortKey = "industry"
	SortPriority  SortKey = "priority"
)

// SortKeys lists every sort option in display order. In the sales view the
// "calls" key doubles as highest-amount.
var SortKeys = []SortKey{
	SortNewest, SortOldest, SortAlpha, SortAlphaDesc,
	SortFollowUp, SortCalls, SortIndustry, SortPriority,
}

// callLogViewCap bounds the call log view after sorting.
const callLogViewCap = 100

// Query captures the transient list state the pipeline runs under.
type Query struct {
	View   View
	Search string
	Sort   SortKey
}

func sortStable[T any](items []T, cmp func(a, b T) int) {
	slices.SortStableFunc(items, cmp)
}

// searchText concatenates a record's searchable fields.
func searchText(it Item) string {
	switch v := it.(type) {
	case Lead:
		return strings.Join([]string{v.BusinessName, v.ContactName, v.Phone, v.Email, v.Website}, " ")
	case CallLogEntry:
		return strings.Join([]string{v.LeadName, v.Phone}, " ")
	case Sale:
		return v.LeadName
	case EmailEntry:
		return strings.Join([]string{v.LeadName, v.To}, " ")
	case GolfCourse:
		return v.Name
	case TrashEntry:
		if v.Call != nil {
			return searchText(*v.Call)
		}

		if v.Lead != nil {
			return searchText(*v.Lead)
		}
	}

	return ""
}

func matchesSearch(it Item, query string) bool {
	if query == "" {
		return true
	}

	return strings.Contains(strings.ToLower(searchText(it)), strings.ToLower(query))
}

func matchesGolfCourse(courseID, want string) bool {
	switch want {
	case "", FilterAll:
		return true
	case FilterUnassigned:
		return courseID == ""
	}

	return courseID == want
}

func active(want string) bool { return want != "" && want != FilterAll }

// matchesFilters applies every active filter predicate to the fields the
// record actually has; filters for absent fields are equality checks
// against the record's zero value, mirroring defensive field access.
func matchesFilters(it Item, f Filters) bool {
	switch v := it.(type) {
	case Lead:
		if !matchesGolfCourse(v.GolfCourseID, f.GolfCourseID) {
			return false
		}

		if active(f.Industry) && v.Industry != f.Industry {
			return false
		}

		if active(f.Priority) {
			priority := v.Priority
			if priority == "" {
				priority = PriorityNormal
			}

			if string(priority) != f.Priority {
				return false
			}
		}

		if active(f.Source) && v.Source != f.Source {
			return false
		}

		return true
	case CallLogEntry:
		if !matchesGolfCourse(v.GolfCourseID, f.GolfCourseID) {
			return false
		}

		return !active(f.Outcome) || string(v.Outcome) == f.Outcome
	case Sale:
		if !matchesGolfCourse(v.GolfCourseID, f.GolfCourseID) {
			return false
		}

		return !active(f.SaleType) || string(v.SaleType) == f.SaleType
	}

	return true
}

func compareTimes(a, b time.Time) int { return a.Compare(b) }

// leadCompare is the comparator family for lead-shaped lists.
func leadCompare(sort SortKey) func(a, b Lead) int {
	switch sort {
	case SortOldest:
		return func(a, b Lead) int { return compareTimes(a.CreatedAt, b.CreatedAt) }
	case SortAlpha:
		return func(a, b Lead) int { return strings.Compare(a.BusinessName, b.BusinessName) }
	case SortAlphaDesc:
		return func(a, b Lead) int { return strings.Compare(b.BusinessName, a.BusinessName) }
	case SortFollowUp:
		// Leads without a follow-up sort last.
		return func(a, b Lead) int {
			switch {
			case a.FollowUp == nil && b.FollowUp == nil:
				return 0
			case a.FollowUp == nil:
				return 1
			case b.FollowUp == nil:
				return -1
			}

			return a.FollowUp.Compare(*b.FollowUp)
		}
	case SortCalls:
		return func(a, b Lead) int { return b.CallCount - a.CallCount }
	case SortIndustry:
		return func(a, b Lead) int { return strings.Compare(a.Industry, b.Industry) }
	case SortPriority:
		return func(a, b Lead) int { return a.Priority.Rank() - b.Priority.Rank() }
	}

	// newest first
	return func(a, b Lead) int { return compareTimes(b.CreatedAt, a.CreatedAt) }
}

func convertedCompare(sort SortKey) func(a, b Lead) int {
	switch sort {
	case SortOldest:
		return func(a, b Lead) int { return compareTimes(deref(a.ConvertedAt), deref(b.ConvertedAt)) }
	case SortAlpha:
		return func(a, b Lead) int { return strings.Compare(a.BusinessName, b.BusinessName) }
	case SortAlphaDesc:
		return func(a, b Lead) int { return strings.Compare(b.BusinessName, a.BusinessName) }
	}

	return func(a, b Lead) int { return compareTimes(deref(b.ConvertedAt), deref(a.ConvertedAt)) }
}

func callCompare(sort SortKey) func(a, b CallLogEntry) int {
	switch sort {
	case SortAlpha:
		return func(a, b CallLogEntry) int { return strings.Compare(a.LeadName, b.LeadName) }
	case SortAlphaDesc:
		return func(a, b CallLogEntry) int { return strings.Compare(b.LeadName, a.LeadName) }
	case SortOldest:
		return func(a, b CallLogEntry) int { return compareTimes(a.Timestamp, b.Timestamp) }
	}

	return func(a, b CallLogEntry) int { return compareTimes(b.Timestamp, a.Timestamp) }
}

func saleCompare(sort SortKey) func(a, b Sale) int {
	switch sort {
	case SortAlpha:
		return func(a, b Sale) int { return strings.Compare(a.LeadName, b.LeadName) }
	case SortAlphaDesc:
		return func(a, b Sale) int { return strings.Compare(b.LeadName, a.LeadName) }
	case SortCalls: // highest amount in the sales view
		return func(a, b Sale) int { return b.Amount - a.Amount }
	case SortOldest:
		return func(a, b Sale) int { return compareTimes(a.SaleDate, b.SaleDate) }
	}

	return func(a, b Sale) int { return compareTimes(b.SaleDate, a.SaleDate) }
}

func trashCompare(sort SortKey) func(a, b TrashEntry) int {
	if sort == SortOldest {
		return func(a, b TrashEntry) int { return compareTimes(a.DeletedAt, b.DeletedAt) }
	}

	return func(a, b TrashEntry) int { return compareTimes(b.DeletedAt, a.DeletedAt) }
}

func deref(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}

	return *t
}

// pipeline runs membership filter -> search -> filter set -> sort over a
// concrete slice and boxes the survivors as Items.
func pipeline[T Item](src []T, q Query, f Filters, cmp func(a, b T) int) []Item {
	kept := make([]T, 0, len(src))

	for _, it := range src {
		if matchesSearch(it, q.Search) && matchesFilters(it, f) {
			kept = append(kept, it)
		}
	}

	sortStable(kept, cmp)

	items := make([]Item, len(kept))
	for i, it := range kept {
		items[i] = it
	}

	return items
}

// CurrentList produces the ordered, filtered list for a view. The result
// is always a subset of the view's source collection and the comparator
// never depends on the filter set, so filtering cannot reorder survivors.
func (s *Service) CurrentList(q Query) []Item {
	switch q.View {
	case ViewLeads:
		return pipeline(s.leads, q, s.filters, leadCompare(q.Sort))
	case ViewFollowUps:
		return pipeline(s.FollowUps(), q, s.filters, leadCompare(q.Sort))
	case ViewDNC:
		return pipeline(s.dncList, q, s.filters, leadCompare(q.Sort))
	case ViewDead:
		return pipeline(s.deadLeads, q, s.filters, leadCompare(q.Sort))
	case ViewConverted:
		return pipeline(s.converted, q, s.filters, convertedCompare(q.Sort))
	case ViewCallLog:
		items := pipeline(s.callLog, q, s.filters, callCompare(q.Sort))
		if len(items) > callLogViewCap {
			items = items[:callLogViewCap]
		}

		return items
	case ViewSales:
		return pipeline(s.sales, q, s.filters, saleCompare(q.Sort))
	case ViewTrash:
		return pipeline(s.trash, q, s.filters, trashCompare(q.Sort))
	case ViewEmails:
		items := make([]Item, 0, len(s.emails))
		for _, e := range s.emails {
			if matchesSearch(e, q.Search) {
				items = append(items, e)
			}
		}

		return items
	case ViewGolfCourses:
		items := make([]Item, 0, len(s.golfCourses))
		for _, gc := range s.golfCourses {
			if matchesSearch(gc, q.Search) {
				items = append(items, gc)
			}
		}

		return items
	}

	return nil
}
