package classroom

import (
	"sort"
	"strings"

	"github.com/einsteinium08/class-bloom-space/core"
)

// Storage keeps insertion order; these let callers re-sort copies for display.

var (
	AssignmentOrderingFields   = []string{"title", "subject", "due_date", "status", "created_by", "points"}
	AnnouncementOrderingFields = []string{"title", "created_at", "created_by", "pinned"}
)

var statusRank = map[Status]int{StatusPending: 0, StatusSubmitted: 1, StatusGraded: 2}

func compareAssignments(a, b Assignment, field string) int {
	switch field {
	case "title":
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	case "subject":
		return strings.Compare(strings.ToLower(a.Subject), strings.ToLower(b.Subject))
	case "due_date":
		return a.DueDate.Compare(b.DueDate)
	case "status":
		return statusRank[a.Status] - statusRank[b.Status]
	case "created_by":
		return strings.Compare(a.CreatedBy, b.CreatedBy)
	case "points":
		return a.Points.Int - b.Points.Int
	}
	return 0
}

func compareAnnouncements(a, b Announcement, field string) int {
	switch field {
	case "title":
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	case "created_at":
		return a.CreatedAt.Compare(b.CreatedAt)
	case "created_by":
		return strings.Compare(a.CreatedBy, b.CreatedBy)
	case "pinned":
		switch {
		case a.Pinned == b.Pinned:
			return 0
		case a.Pinned:
			return 1
		}
		return -1
	}
	return 0
}

// SortAssignments returns a sorted copy of assignments. Unknown fields are ignored; ties keep insertion order.
func SortAssignments(assignments []Assignment, orderings []core.Ordering) []Assignment {
	sorted := append([]Assignment(nil), assignments...)
	sort.SliceStable(sorted, func(i, j int) bool {
		for _, ord := range orderings {
			c := compareAssignments(sorted[i], sorted[j], ord.Field)
			if c == 0 {
				continue
			}
			if ord.Ascending {
				return c < 0
			}
			return c > 0
		}
		return false
	})
	return sorted
}

// SortAnnouncements returns a sorted copy of announcements. Unknown fields are ignored; ties keep insertion order.
func SortAnnouncements(announcements []Announcement, orderings []core.Ordering) []Announcement {
	sorted := append([]Announcement(nil), announcements...)
	sort.SliceStable(sorted, func(i, j int) bool {
		for _, ord := range orderings {
			c := compareAnnouncements(sorted[i], sorted[j], ord.Field)
			if c == 0 {
				continue
			}
			if ord.Ascending {
				return c < 0
			}
			return c > 0
		}
		return false
	})
	return sorted
}
