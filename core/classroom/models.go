package classroom

import (
	"time"

	"github.com/volatiletech/null/v8"
)

type Status string

// Assignment lifecycle states
const (
	StatusPending   Status = "pending"
	StatusSubmitted Status = "submitted"
	StatusGraded    Status = "graded"
)

var AllStatuses = []Status{StatusPending, StatusSubmitted, StatusGraded}

func (s Status) Valid() bool {
	for _, status := range AllStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func (s Status) String() string { return string(s) }

func ParseStatus(s string) (Status, bool) {
	status := Status(s)
	return status, status.Valid()
}

type Assignment struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Subject     string       `json:"subject"`
	DueDate     time.Time    `json:"due_date"`
	CreatedBy   string       `json:"created_by"`
	Status      Status       `json:"status"`
	Points      null.Int     `json:"points"`
	SubmittedAt null.Time    `json:"submitted_at"`
	Grade       null.Float64 `json:"grade"`
}

// IsCompleted reports whether the work was handed in (submitted or graded).
func (a Assignment) IsCompleted() bool {
	return a.Status == StatusSubmitted || a.Status == StatusGraded
}

// NewAssignment contains information needed to create a new Assignment.
// Status, SubmittedAt and Grade are accepted but ignored: a new Assignment is always pending.
type NewAssignment struct {
	Title       string       `json:"title" validate:"notblank"`
	Description string       `json:"description" validate:"notblank"`
	Subject     string       `json:"subject" validate:"notblank"`
	DueDate     time.Time    `json:"due_date" validate:"required"`
	CreatedBy   string       `json:"created_by"`
	Status      Status       `json:"status"`
	Points      null.Int     `json:"points"`
	SubmittedAt null.Time    `json:"submitted_at"`
	Grade       null.Float64 `json:"grade"`
}

// AssignmentPatch defines what may be merged over an existing Assignment.
// Only non-nil fields are applied; a non-nil pointer to an invalid null value clears the field.
// Status, SubmittedAt and Grade bypass the lifecycle; see SubmitAssignment and GradeAssignment.
type AssignmentPatch struct {
	Title       *string
	Description *string
	Subject     *string
	DueDate     *time.Time
	CreatedBy   *string
	Points      *null.Int
	Status      *Status
	SubmittedAt *null.Time
	Grade       *null.Float64
}

func (p AssignmentPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Subject == nil && p.DueDate == nil &&
		p.CreatedBy == nil && p.Points == nil && p.Status == nil && p.SubmittedAt == nil && p.Grade == nil
}

func (p AssignmentPatch) apply(a *Assignment) {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.Subject != nil {
		a.Subject = *p.Subject
	}
	if p.DueDate != nil {
		a.DueDate = p.DueDate.UTC()
	}
	if p.CreatedBy != nil {
		a.CreatedBy = *p.CreatedBy
	}
	if p.Points != nil {
		a.Points = *p.Points
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.SubmittedAt != nil {
		a.SubmittedAt = *p.SubmittedAt
	}
	if p.Grade != nil {
		a.Grade = *p.Grade
	}
}

type Announcement struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by"`
	Pinned    bool      `json:"pinned"`
}

// NewAnnouncement contains information needed to create a new Announcement.
// A zero CreatedAt is set to the creation time.
type NewAnnouncement struct {
	Title     string    `json:"title" validate:"notblank"`
	Message   string    `json:"message" validate:"notblank"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by"`
	Pinned    bool      `json:"pinned"`
}

// AnnouncementPatch defines what may be merged over an existing Announcement.
// CreatedAt is immutable.
type AnnouncementPatch struct {
	Title   *string
	Message *string
	Pinned  *bool
}

func (p AnnouncementPatch) IsEmpty() bool {
	return p.Title == nil && p.Message == nil && p.Pinned == nil
}

func (p AnnouncementPatch) apply(a *Announcement) {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Message != nil {
		a.Message = *p.Message
	}
	if p.Pinned != nil {
		a.Pinned = *p.Pinned
	}
}
