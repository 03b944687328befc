package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/einsteinium08/class-bloom-space/core/classroom"
)

// Now is the fixed instant tests run at.
var Now = time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)

// FreezeTime makes classroom.NowFunc return ts until the test ends.
func FreezeTime(t *testing.T, ts time.Time) {
	t.Helper()
	orig := classroom.NowFunc
	classroom.NowFunc = func() time.Time { return ts }
	t.Cleanup(func() { classroom.NowFunc = orig })
}

func CreateAssignment(
	t *testing.T,
	repo classroom.AssignmentRepository,
	id, title string,
	status classroom.Status,
	dueDate time.Time,
	points ...int,
) classroom.Assignment {
	t.Helper()
	a := classroom.Assignment{
		ID:          id,
		Title:       title,
		Description: title + " description",
		Subject:     "Mathematics",
		DueDate:     dueDate.UTC(),
		CreatedBy:   "Ms. Johnson",
		Status:      status,
	}
	if len(points) > 0 {
		a.Points = null.IntFrom(points[0])
	}
	a, err := repo.CreateAssignment(context.Background(), a)
	if err != nil {
		t.Fatalf("CreateAssignment() failed: %v", err)
	}
	return a
}

func CreateAnnouncement(
	t *testing.T,
	repo classroom.AnnouncementRepository,
	id, title string,
	pinned bool,
	createdAt time.Time,
) classroom.Announcement {
	t.Helper()
	a := classroom.Announcement{
		ID:        id,
		Title:     title,
		Message:   title + " message",
		CreatedAt: createdAt.UTC(),
		CreatedBy: "Mr. Smith",
		Pinned:    pinned,
	}
	a, err := repo.CreateAnnouncement(context.Background(), a)
	if err != nil {
		t.Fatalf("CreateAnnouncement() failed: %v", err)
	}
	return a
}

func AssignmentIDs(assignments []classroom.Assignment) []string {
	ids := make([]string, 0, len(assignments))
	for _, a := range assignments {
		ids = append(ids, a.ID)
	}
	return ids
}

func AnnouncementIDs(announcements []classroom.Announcement) []string {
	ids := make([]string, 0, len(announcements))
	for _, a := range announcements {
		ids = append(ids, a.ID)
	}
	return ids
}
