package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/einsteinium08/class-bloom-space/core/classroom"
)

// Repos opens a fresh, empty pair of repositories.
type Repos func(t *testing.T) (classroom.AssignmentRepository, classroom.AnnouncementRepository)

// RunRepositoryContract checks the behaviour every storage driver must share.
func RunRepositoryContract(t *testing.T, open Repos) {
	t.Run("assignments", func(t *testing.T) { assignmentContract(t, open) })
	t.Run("announcements", func(t *testing.T) { announcementContract(t, open) })
}

var errAbort = errors.New("abort")

func assignmentContract(t *testing.T, open Repos) {
	ctx := context.Background()

	t.Run("insertion order and round trip", func(t *testing.T) {
		repo, _ := open(t)
		a := CreateAssignment(t, repo, "b", "Second letter", classroom.StatusPending, Now.Add(48*time.Hour), 10)
		CreateAssignment(t, repo, "a", "First letter", classroom.StatusPending, Now.Add(24*time.Hour))

		all, err := repo.QueryAllAssignments(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "a"}, AssignmentIDs(all))

		got, err := repo.GetAssignmentByID(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, a, got)
		assert.True(t, got.DueDate.Equal(Now.Add(48*time.Hour)))
		assert.Equal(t, null.IntFrom(10), got.Points)
		assert.False(t, got.SubmittedAt.Valid)
		assert.False(t, got.Grade.Valid)
	})

	t.Run("dates outside the nanosecond range", func(t *testing.T) {
		repo, _ := open(t)
		far := time.Date(2300, time.January, 1, 8, 30, 0, 0, time.UTC)

		tests := []struct {
			name        string
			dueDate     time.Time
			submittedAt null.Time
		}{
			{name: "zero due date", dueDate: time.Time{}},
			{name: "year 2300", dueDate: far, submittedAt: null.TimeFrom(far.Add(time.Hour))},
			{name: "year 1", dueDate: time.Date(1, time.February, 3, 0, 0, 0, 0, time.UTC), submittedAt: null.TimeFrom(time.Time{})},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				added, err := repo.CreateAssignment(ctx, classroom.Assignment{
					Title:       tt.name,
					Status:      classroom.StatusSubmitted,
					DueDate:     tt.dueDate,
					SubmittedAt: tt.submittedAt,
				})
				require.NoError(t, err)
				assert.True(t, added.DueDate.Equal(tt.dueDate), "added due date %s", added.DueDate)

				stored, err := repo.GetAssignmentByID(ctx, added.ID)
				require.NoError(t, err)
				assert.Equal(t, added, stored)
				assert.True(t, stored.DueDate.Equal(tt.dueDate), "stored due date %s", stored.DueDate)
				assert.Equal(t, tt.dueDate.IsZero(), stored.DueDate.IsZero())
				assert.Equal(t, tt.submittedAt.Valid, stored.SubmittedAt.Valid)
				assert.True(t, stored.SubmittedAt.Time.Equal(tt.submittedAt.Time))
			})
		}

		all, err := repo.QueryAllAssignments(ctx)
		require.NoError(t, err)
		require.Len(t, all, len(tests))
		for i, tt := range tests {
			assert.True(t, all[i].DueDate.Equal(tt.dueDate), "%s: listed due date %s", tt.name, all[i].DueDate)
		}
	})

	t.Run("generated ids are unique", func(t *testing.T) {
		repo, _ := open(t)
		seen := make(map[string]bool)
		for i := 0; i < 20; i++ {
			a, err := repo.CreateAssignment(ctx, classroom.Assignment{Title: "x", Status: classroom.StatusPending, DueDate: Now})
			require.NoError(t, err)
			require.NotEmpty(t, a.ID)
			assert.False(t, seen[a.ID], "duplicate id %s", a.ID)
			seen[a.ID] = true
		}
	})

	t.Run("duplicate id", func(t *testing.T) {
		repo, _ := open(t)
		CreateAssignment(t, repo, "1", "One", classroom.StatusPending, Now)
		_, err := repo.CreateAssignment(ctx, classroom.Assignment{ID: "1", Title: "Again", DueDate: Now})
		assert.Equal(t, classroom.ErrDuplicateID, err)

		all, err := repo.QueryAllAssignments(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("not found", func(t *testing.T) {
		repo, _ := open(t)
		_, err := repo.GetAssignmentByID(ctx, "nope")
		assert.Equal(t, classroom.ErrNotFound, err)
		_, err = repo.ModifyAssignment(ctx, "nope", func(a *classroom.Assignment) error { return nil })
		assert.Equal(t, classroom.ErrNotFound, err)
	})

	t.Run("modify", func(t *testing.T) {
		repo, _ := open(t)
		CreateAssignment(t, repo, "1", "One", classroom.StatusPending, Now)
		submittedAt := Now.Add(time.Hour)

		got, err := repo.ModifyAssignment(ctx, "1", func(a *classroom.Assignment) error {
			a.ID = "hijacked"
			a.Title = "Uno"
			a.Status = classroom.StatusGraded
			a.SubmittedAt = null.TimeFrom(submittedAt)
			a.Grade = null.Float64From(92.5)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, "1", got.ID)

		stored, err := repo.GetAssignmentByID(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, got, stored)
		assert.Equal(t, "Uno", stored.Title)
		assert.Equal(t, classroom.StatusGraded, stored.Status)
		assert.True(t, stored.SubmittedAt.Time.Equal(submittedAt))
		assert.Equal(t, null.Float64From(92.5), stored.Grade)
	})

	t.Run("failed modify writes nothing", func(t *testing.T) {
		repo, _ := open(t)
		orig := CreateAssignment(t, repo, "1", "One", classroom.StatusPending, Now)

		_, err := repo.ModifyAssignment(ctx, "1", func(a *classroom.Assignment) error {
			a.Title = "changed"
			return errAbort
		})
		assert.Equal(t, errAbort, err)

		stored, err := repo.GetAssignmentByID(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, orig, stored)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		repo, _ := open(t)
		CreateAssignment(t, repo, "1", "One", classroom.StatusPending, Now)
		CreateAssignment(t, repo, "2", "Two", classroom.StatusPending, Now)
		CreateAssignment(t, repo, "3", "Three", classroom.StatusPending, Now)

		require.NoError(t, repo.DeleteAssignmentsByID(ctx, "2", "unknown"))
		require.NoError(t, repo.DeleteAssignmentsByID(ctx, "2"))
		require.NoError(t, repo.DeleteAssignmentsByID(ctx))

		all, err := repo.QueryAllAssignments(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "3"}, AssignmentIDs(all))
	})

	t.Run("truncate", func(t *testing.T) {
		repo, _ := open(t)
		CreateAssignment(t, repo, "1", "One", classroom.StatusPending, Now)
		require.NoError(t, repo.TruncateAssignments(ctx))

		all, err := repo.QueryAllAssignments(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("returned slices are copies", func(t *testing.T) {
		repo, _ := open(t)
		CreateAssignment(t, repo, "1", "One", classroom.StatusPending, Now)

		all, err := repo.QueryAllAssignments(ctx)
		require.NoError(t, err)
		all[0].Title = "mutated"

		stored, err := repo.GetAssignmentByID(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, "One", stored.Title)
	})

	t.Run("concurrent modify", func(t *testing.T) {
		repo, _ := open(t)
		CreateAssignment(t, repo, "1", "One", classroom.StatusPending, Now, 0)

		var wg sync.WaitGroup
		for i := 0; i < 25; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.ModifyAssignment(ctx, "1", func(a *classroom.Assignment) error {
					a.Points = null.IntFrom(a.Points.Int + 1)
					return nil
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		stored, err := repo.GetAssignmentByID(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, 25, stored.Points.Int)
	})
}

func announcementContract(t *testing.T, open Repos) {
	ctx := context.Background()

	t.Run("insertion order and round trip", func(t *testing.T) {
		_, repo := open(t)
		a := CreateAnnouncement(t, repo, "2", "Second", true, Now)
		CreateAnnouncement(t, repo, "1", "First", false, Now.Add(-time.Hour))

		all, err := repo.QueryAllAnnouncements(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"2", "1"}, AnnouncementIDs(all))

		got, err := repo.GetAnnouncementByID(ctx, "2")
		require.NoError(t, err)
		assert.Equal(t, a, got)
		assert.True(t, got.Pinned)
	})

	t.Run("dates outside the nanosecond range", func(t *testing.T) {
		_, repo := open(t)
		far := time.Date(2300, time.January, 1, 0, 0, 0, 0, time.UTC)

		zero, err := repo.CreateAnnouncement(ctx, classroom.Announcement{Title: "zero"})
		require.NoError(t, err)
		future := CreateAnnouncement(t, repo, "future", "Future", false, far)

		got, err := repo.GetAnnouncementByID(ctx, zero.ID)
		require.NoError(t, err)
		assert.Equal(t, zero, got)
		assert.True(t, got.CreatedAt.IsZero())

		got, err = repo.GetAnnouncementByID(ctx, future.ID)
		require.NoError(t, err)
		assert.Equal(t, future, got)
		assert.True(t, got.CreatedAt.Equal(far))
	})

	t.Run("generated id and duplicates", func(t *testing.T) {
		_, repo := open(t)
		a, err := repo.CreateAnnouncement(ctx, classroom.Announcement{Title: "x", CreatedAt: Now})
		require.NoError(t, err)
		require.NotEmpty(t, a.ID)

		_, err = repo.CreateAnnouncement(ctx, classroom.Announcement{ID: a.ID, Title: "y", CreatedAt: Now})
		assert.Equal(t, classroom.ErrDuplicateID, err)
	})

	t.Run("modify keeps created_at", func(t *testing.T) {
		_, repo := open(t)
		CreateAnnouncement(t, repo, "1", "One", false, Now)

		got, err := repo.ModifyAnnouncement(ctx, "1", func(a *classroom.Announcement) error {
			a.Pinned = true
			a.Message = "updated"
			a.CreatedAt = Now.Add(time.Hour)
			return nil
		})
		require.NoError(t, err)
		assert.True(t, got.CreatedAt.Equal(Now))

		stored, err := repo.GetAnnouncementByID(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, got, stored)
		assert.True(t, stored.Pinned)
		assert.Equal(t, "updated", stored.Message)
	})

	t.Run("failed modify writes nothing", func(t *testing.T) {
		_, repo := open(t)
		orig := CreateAnnouncement(t, repo, "1", "One", false, Now)

		_, err := repo.ModifyAnnouncement(ctx, "1", func(a *classroom.Announcement) error {
			a.Pinned = true
			return errAbort
		})
		assert.Equal(t, errAbort, err)

		stored, err := repo.GetAnnouncementByID(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, orig, stored)
	})

	t.Run("not found", func(t *testing.T) {
		_, repo := open(t)
		_, err := repo.GetAnnouncementByID(ctx, "nope")
		assert.Equal(t, classroom.ErrNotFound, err)
		_, err = repo.ModifyAnnouncement(ctx, "nope", func(a *classroom.Announcement) error { return nil })
		assert.Equal(t, classroom.ErrNotFound, err)
	})

	t.Run("delete and truncate", func(t *testing.T) {
		_, repo := open(t)
		CreateAnnouncement(t, repo, "1", "One", false, Now)
		CreateAnnouncement(t, repo, "2", "Two", false, Now)

		require.NoError(t, repo.DeleteAnnouncementsByID(ctx, "1", "1", "unknown"))
		all, err := repo.QueryAllAnnouncements(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"2"}, AnnouncementIDs(all))

		require.NoError(t, repo.TruncateAnnouncements(ctx))
		all, err = repo.QueryAllAnnouncements(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}
