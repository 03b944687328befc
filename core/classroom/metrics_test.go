package classroom

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func withStatuses(statuses ...Status) []Assignment {
	as := make([]Assignment, 0, len(statuses))
	for _, s := range statuses {
		as = append(as, Assignment{Status: s})
	}
	return as
}

func TestComputeProgress(t *testing.T) {
	p, s, g := StatusPending, StatusSubmitted, StatusGraded
	tests := []struct {
		name        string
		assignments []Assignment
		want        Progress
	}{
		{name: "empty", want: Progress{}},
		{name: "all pending", assignments: withStatuses(p, p), want: Progress{Total: 2, Pending: 2}},
		{name: "half", assignments: withStatuses(p, s), want: Progress{Total: 2, Pending: 1, Submitted: 1, Completed: 1, CompletionRate: 50}},
		{name: "one third", assignments: withStatuses(p, p, g), want: Progress{Total: 3, Pending: 2, Graded: 1, Completed: 1, CompletionRate: 33}},
		{name: "two thirds", assignments: withStatuses(p, s, g), want: Progress{Total: 3, Pending: 1, Submitted: 1, Graded: 1, Completed: 2, CompletionRate: 67}},
		{name: "half up", assignments: withStatuses(s, p, p, p, p, p, p, p), want: Progress{Total: 8, Pending: 7, Submitted: 1, Completed: 1, CompletionRate: 13}},
		{name: "all done", assignments: withStatuses(s, g), want: Progress{Total: 2, Submitted: 1, Graded: 1, Completed: 2, CompletionRate: 100}},
		{name: "unknown status", assignments: withStatuses(Status("lost"), s), want: Progress{Total: 2, Submitted: 1, Completed: 1, CompletionRate: 50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeProgress(tt.assignments))
		})
	}
}

func TestComputeProgress_rateBounds(t *testing.T) {
	all := []Status{StatusPending, StatusSubmitted, StatusGraded}
	for n := 0; n <= 30; n++ {
		statuses := make([]Status, n)
		for i := range statuses {
			statuses[i] = all[(i*7+n)%len(all)]
		}
		rate := ComputeProgress(withStatuses(statuses...)).CompletionRate
		assert.GreaterOrEqual(t, rate, 0)
		assert.LessOrEqual(t, rate, 100)
	}
}

func TestComputeAnnouncementStats(t *testing.T) {
	now := time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)
	anns := []Announcement{
		{ID: "1", CreatedAt: now, Pinned: true},
		{ID: "2", CreatedAt: now.Add(-6 * day)},
		{ID: "3", CreatedAt: now.Add(-7 * day), Pinned: true},
		{ID: "4", CreatedAt: now.Add(-30 * day)},
	}
	assert.Equal(t, AnnouncementStats{Total: 4, Pinned: 2, ThisWeek: 2}, ComputeAnnouncementStats(anns, now))
	assert.Equal(t, AnnouncementStats{}, ComputeAnnouncementStats(nil, now))
}

func TestDueState(t *testing.T) {
	now := time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		status Status
		due    time.Time
		want   DueInfo
	}{
		{name: "next week", status: StatusPending, due: now.Add(7 * day), want: DueInfo{DaysLeft: 7}},
		{name: "in two days", status: StatusPending, due: now.Add(2 * day), want: DueInfo{DaysLeft: 2, DueSoon: true}},
		{name: "in a few hours", status: StatusPending, due: now.Add(3 * time.Hour), want: DueInfo{DaysLeft: 1, DueSoon: true}},
		{name: "right now", status: StatusPending, due: now, want: DueInfo{DaysLeft: 0, DueSoon: true}},
		{name: "a day late", status: StatusPending, due: now.Add(-day - time.Hour), want: DueInfo{DaysLeft: -1, Overdue: true}},
		{name: "submitted late", status: StatusSubmitted, due: now.Add(-3 * day), want: DueInfo{DaysLeft: -3}},
		{name: "graded soon", status: StatusGraded, due: now.Add(day), want: DueInfo{DaysLeft: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DueState(Assignment{Status: tt.status, DueDate: tt.due}, now))
		})
	}
}
