package classroom

import (
	"math"
	"time"
)

const (
	day           = 24 * time.Hour
	dueSoonWithin = 2 // days
	recentWithin  = 7 * day
)

// Progress is derived from the current Assignments; it is never stored.
type Progress struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Submitted int `json:"submitted"`
	Graded    int `json:"graded"`
	// Completed counts submitted and graded Assignments.
	Completed int `json:"completed"`
	// CompletionRate is the rounded percentage of completed Assignments, 0 when there are none.
	CompletionRate int `json:"completion_rate"`
}

// ComputeProgress partitions assignments by status.
// Assignments whose status was overwritten with an unknown value only count toward Total.
func ComputeProgress(assignments []Assignment) Progress {
	p := Progress{Total: len(assignments)}
	for _, a := range assignments {
		switch a.Status {
		case StatusPending:
			p.Pending++
		case StatusSubmitted:
			p.Submitted++
		case StatusGraded:
			p.Graded++
		}
	}
	p.Completed = p.Submitted + p.Graded
	p.CompletionRate = percent(p.Completed, p.Total)
	return p
}

// percent rounds 100*n/total half up using integers only.
func percent(n, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*n + total) / (2 * total)
}

type AnnouncementStats struct {
	Total    int `json:"total"`
	Pinned   int `json:"pinned"`
	ThisWeek int `json:"this_week"`
}

// ComputeAnnouncementStats counts pinned Announcements and the ones created in the 7 days before now.
func ComputeAnnouncementStats(announcements []Announcement, now time.Time) AnnouncementStats {
	s := AnnouncementStats{Total: len(announcements)}
	for _, a := range announcements {
		if a.Pinned {
			s.Pinned++
		}
		if now.Sub(a.CreatedAt) < recentWithin {
			s.ThisWeek++
		}
	}
	return s
}

type DueInfo struct {
	// DaysLeft is the number of started days until the due date, negative once overdue.
	DaysLeft int  `json:"days_left"`
	Overdue  bool `json:"overdue"`
	DueSoon  bool `json:"due_soon"`
}

// DueState tells how close a is to its due date. Only pending Assignments can be overdue or due soon.
func DueState(a Assignment, now time.Time) DueInfo {
	days := int(math.Ceil(float64(a.DueDate.Sub(now)) / float64(day)))
	info := DueInfo{DaysLeft: days}
	if a.Status == StatusPending {
		info.Overdue = days < 0
		info.DueSoon = days >= 0 && days <= dueSoonWithin
	}
	return info
}
