package classroom

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"
)

func TestParseStatus(t *testing.T) {
	for _, s := range AllStatuses {
		got, ok := ParseStatus(string(s))
		assert.True(t, ok)
		assert.Equal(t, s, got)
	}
	_, ok := ParseStatus("late")
	assert.False(t, ok)
}

func TestAssignmentPatch_apply(t *testing.T) {
	orig := Assignment{
		ID:          "1",
		Title:       "Math",
		Description: "Problems",
		Subject:     "Mathematics",
		DueDate:     time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC),
		CreatedBy:   "Ms. Johnson",
		Status:      StatusPending,
		Points:      null.IntFrom(10),
	}

	t.Run("empty patch", func(t *testing.T) {
		a := orig
		patch := AssignmentPatch{}
		assert.True(t, patch.IsEmpty())
		patch.apply(&a)
		assert.Equal(t, orig, a)
	})

	t.Run("clears nullable fields", func(t *testing.T) {
		a := orig
		cleared := null.Int{}
		patch := AssignmentPatch{Points: &cleared}
		assert.False(t, patch.IsEmpty())
		patch.apply(&a)
		assert.False(t, a.Points.Valid)
	})

	t.Run("stores due date in utc", func(t *testing.T) {
		a := orig
		due := time.Date(2024, time.March, 12, 9, 0, 0, 0, time.FixedZone("EAT", 3*60*60))
		AssignmentPatch{DueDate: &due}.apply(&a)
		assert.Equal(t, time.UTC, a.DueDate.Location())
		assert.True(t, a.DueDate.Equal(due))
	})
}

func TestAnnouncementPatch_apply(t *testing.T) {
	a := Announcement{ID: "1", Title: "Hi", Message: "Hello"}
	title, pinned := "Hey", true
	patch := AnnouncementPatch{Title: &title, Pinned: &pinned}
	assert.False(t, patch.IsEmpty())
	patch.apply(&a)
	assert.Equal(t, Announcement{ID: "1", Title: "Hey", Message: "Hello", Pinned: true}, a)
	assert.True(t, AnnouncementPatch{}.IsEmpty())
}
