package classroom

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/einsteinium08/class-bloom-space/core"
)

var NowFunc = time.Now // mockable

func now() time.Time { return NowFunc().UTC() }

type (
	AssignmentRepository interface {
		// QueryAllAssignments returns every Assignment in insertion order.
		QueryAllAssignments(ctx context.Context) ([]Assignment, error)
		GetAssignmentByID(ctx context.Context, id string) (Assignment, error)
		// CreateAssignment appends a. A fresh ID is generated when a.ID is empty.
		CreateAssignment(ctx context.Context, a Assignment) (Assignment, error)
		// ModifyAssignment applies fn to the stored Assignment atomically.
		// Nothing is written when fn returns an error, which is returned as is.
		ModifyAssignment(ctx context.Context, id string, fn func(a *Assignment) error) (Assignment, error)
		// DeleteAssignmentsByID ignores unknown ids.
		DeleteAssignmentsByID(ctx context.Context, ids ...string) error
		TruncateAssignments(ctx context.Context) error
	}

	AnnouncementRepository interface {
		QueryAllAnnouncements(ctx context.Context) ([]Announcement, error)
		GetAnnouncementByID(ctx context.Context, id string) (Announcement, error)
		CreateAnnouncement(ctx context.Context, a Announcement) (Announcement, error)
		ModifyAnnouncement(ctx context.Context, id string, fn func(a *Announcement) error) (Announcement, error)
		DeleteAnnouncementsByID(ctx context.Context, ids ...string) error
		TruncateAnnouncements(ctx context.Context) error
	}

	// Service is the classroom entity store. It is the only owner of
	// Assignment and Announcement state; every mutation goes through it.
	Service struct {
		assignments   AssignmentRepository
		announcements AnnouncementRepository
		log           core.Logger
	}
)

func NewService(assignments AssignmentRepository, announcements AnnouncementRepository, logger core.Logger) *Service {
	return &Service{
		assignments:   assignments,
		announcements: announcements,
		log:           logger,
	}
}

// Seed loads the demo dataset.
func (svc *Service) Seed(ctx context.Context) error {
	ts := now()
	for _, a := range SeedAssignments(ts) {
		if _, err := svc.assignments.CreateAssignment(ctx, a); err != nil {
			return errors.Wrapf(err, "seeding assignment %s", a.ID)
		}
	}
	for _, a := range SeedAnnouncements(ts) {
		if _, err := svc.announcements.CreateAnnouncement(ctx, a); err != nil {
			return errors.Wrapf(err, "seeding announcement %s", a.ID)
		}
	}
	svc.log.Debug("classroom seeded")
	return nil
}

// Reset drops every entity and loads the demo dataset again.
func (svc *Service) Reset(ctx context.Context) error {
	if err := svc.assignments.TruncateAssignments(ctx); err != nil {
		return errors.Wrap(err, "truncating assignments")
	}
	if err := svc.announcements.TruncateAnnouncements(ctx); err != nil {
		return errors.Wrap(err, "truncating announcements")
	}
	return svc.Seed(ctx)
}

// Assignments

func (svc *Service) Assignments(ctx context.Context) ([]Assignment, error) {
	return svc.assignments.QueryAllAssignments(ctx)
}

func (svc *Service) GetAssignment(ctx context.Context, id string) (Assignment, error) {
	return svc.assignments.GetAssignmentByID(ctx, id)
}

// AddAssignment stores na as a new pending Assignment.
// Input is stored as given: validation is up to the caller (see NewAssignment.Validate).
func (svc *Service) AddAssignment(ctx context.Context, na NewAssignment) (Assignment, error) {
	a := Assignment{
		Title:       na.Title,
		Description: na.Description,
		Subject:     na.Subject,
		DueDate:     na.DueDate.UTC(),
		CreatedBy:   na.CreatedBy,
		Status:      StatusPending,
		Points:      na.Points,
	}
	a, err := svc.assignments.CreateAssignment(ctx, a)
	if err != nil {
		return Assignment{}, errors.Wrap(err, "creating assignment")
	}
	svc.log.Info("assignment created", "id", a.ID, "title", a.Title)
	return a, nil
}

// UpdateAssignment merges patch over the Assignment with id. Unknown ids are ignored.
// This is not lifecycle aware: a patch may set Status or Grade directly.
func (svc *Service) UpdateAssignment(ctx context.Context, id string, patch AssignmentPatch) error {
	_, err := svc.assignments.ModifyAssignment(ctx, id, func(a *Assignment) error {
		patch.apply(a)
		return nil
	})
	if errors.Cause(err) == ErrNotFound {
		svc.log.Debug("update of unknown assignment ignored", "id", id)
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "updating assignment")
	}
	if patch.Status != nil || patch.Grade != nil || patch.SubmittedAt != nil {
		svc.log.Warn("assignment lifecycle fields set through generic update", "id", id)
	}
	return nil
}

// DeleteAssignment removes the Assignment with id. Unknown ids are ignored.
func (svc *Service) DeleteAssignment(ctx context.Context, id string) error {
	if err := svc.assignments.DeleteAssignmentsByID(ctx, id); err != nil {
		return errors.Wrap(err, "deleting assignment")
	}
	return nil
}

// SubmitAssignment is the sanctioned pending -> submitted move.
// Submitting again re-stamps SubmittedAt and leaves the status alone.
func (svc *Service) SubmitAssignment(ctx context.Context, id string) (Assignment, error) {
	ts := now()
	a, err := svc.assignments.ModifyAssignment(ctx, id, func(a *Assignment) error {
		return submit(a, ts)
	})
	if err != nil {
		return Assignment{}, errors.Wrapf(err, "submitting assignment %s", id)
	}
	svc.log.Info("assignment submitted", "id", a.ID, "status", a.Status)
	return a, nil
}

// GradeAssignment is the sanctioned submitted -> graded move; grade must be within [0, 100].
func (svc *Service) GradeAssignment(ctx context.Context, id string, g float64) (Assignment, error) {
	a, err := svc.assignments.ModifyAssignment(ctx, id, func(a *Assignment) error {
		return grade(a, g)
	})
	if err != nil {
		return Assignment{}, errors.Wrapf(err, "grading assignment %s", id)
	}
	svc.log.Info("assignment graded", "id", a.ID, "grade", g)
	return a, nil
}

// Announcements

func (svc *Service) Announcements(ctx context.Context) ([]Announcement, error) {
	return svc.announcements.QueryAllAnnouncements(ctx)
}

func (svc *Service) GetAnnouncement(ctx context.Context, id string) (Announcement, error) {
	return svc.announcements.GetAnnouncementByID(ctx, id)
}

func (svc *Service) AddAnnouncement(ctx context.Context, na NewAnnouncement) (Announcement, error) {
	createdAt := na.CreatedAt.UTC()
	if na.CreatedAt.IsZero() {
		createdAt = now()
	}
	a := Announcement{
		Title:     na.Title,
		Message:   na.Message,
		CreatedAt: createdAt,
		CreatedBy: na.CreatedBy,
		Pinned:    na.Pinned,
	}
	a, err := svc.announcements.CreateAnnouncement(ctx, a)
	if err != nil {
		return Announcement{}, errors.Wrap(err, "creating announcement")
	}
	svc.log.Info("announcement created", "id", a.ID, "pinned", a.Pinned)
	return a, nil
}

// UpdateAnnouncement merges patch over the Announcement with id. Unknown ids are ignored.
func (svc *Service) UpdateAnnouncement(ctx context.Context, id string, patch AnnouncementPatch) error {
	_, err := svc.announcements.ModifyAnnouncement(ctx, id, func(a *Announcement) error {
		patch.apply(a)
		return nil
	})
	if errors.Cause(err) == ErrNotFound {
		svc.log.Debug("update of unknown announcement ignored", "id", id)
		return nil
	}
	return errors.Wrap(err, "updating announcement")
}

// DeleteAnnouncement removes the Announcement with id. Unknown ids are ignored.
func (svc *Service) DeleteAnnouncement(ctx context.Context, id string) error {
	if err := svc.announcements.DeleteAnnouncementsByID(ctx, id); err != nil {
		return errors.Wrap(err, "deleting announcement")
	}
	return nil
}

// Derived metrics, recomputed on every call.

func (svc *Service) Progress(ctx context.Context) (Progress, error) {
	assignments, err := svc.assignments.QueryAllAssignments(ctx)
	if err != nil {
		return Progress{}, errors.Wrap(err, "querying assignments")
	}
	return ComputeProgress(assignments), nil
}

func (svc *Service) AnnouncementStats(ctx context.Context) (AnnouncementStats, error) {
	announcements, err := svc.announcements.QueryAllAnnouncements(ctx)
	if err != nil {
		return AnnouncementStats{}, errors.Wrap(err, "querying announcements")
	}
	return ComputeAnnouncementStats(announcements, now()), nil
}
