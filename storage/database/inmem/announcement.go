package inmemdb

import (
	"context"

	"github.com/einsteinium08/class-bloom-space/core/classroom"
)

type announcementRepository struct {
	db *announcementTable
}

var _ classroom.AnnouncementRepository = (*announcementRepository)(nil) // interface compliance check

func NewAnnouncementRepository(db *DB) classroom.AnnouncementRepository {
	return &announcementRepository{db: db.announcement}
}

// indexOf must be called with the lock held.
func (repo *announcementRepository) indexOf(id string) int {
	for i, a := range repo.db.rows {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func (repo *announcementRepository) QueryAllAnnouncements(_ context.Context) ([]classroom.Announcement, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	announcements := make([]classroom.Announcement, len(repo.db.rows))
	copy(announcements, repo.db.rows)
	return announcements, nil
}

func (repo *announcementRepository) GetAnnouncementByID(_ context.Context, id string) (classroom.Announcement, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if i := repo.indexOf(id); i >= 0 {
		return repo.db.rows[i], nil
	}
	return classroom.Announcement{}, classroom.ErrNotFound
}

func (repo *announcementRepository) CreateAnnouncement(_ context.Context, a classroom.Announcement) (classroom.Announcement, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if a.ID == "" {
		a.ID = generateID(func(id string) bool { return repo.indexOf(id) >= 0 })
	} else if repo.indexOf(a.ID) >= 0 {
		return classroom.Announcement{}, classroom.ErrDuplicateID
	}
	repo.db.rows = append(repo.db.rows, a)
	return a, nil
}

func (repo *announcementRepository) ModifyAnnouncement(
	_ context.Context,
	id string,
	fn func(a *classroom.Announcement) error,
) (classroom.Announcement, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	i := repo.indexOf(id)
	if i < 0 {
		return classroom.Announcement{}, classroom.ErrNotFound
	}
	a := repo.db.rows[i] // work on a copy, only save on success
	if err := fn(&a); err != nil {
		return classroom.Announcement{}, err
	}
	a.ID = id
	a.CreatedAt = repo.db.rows[i].CreatedAt // immutable
	repo.db.rows[i] = a
	return a, nil
}

func (repo *announcementRepository) DeleteAnnouncementsByID(_ context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if len(ids) == 0 {
		return nil
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := repo.db.rows[:0]
	for _, a := range repo.db.rows {
		if _, ok := drop[a.ID]; !ok {
			kept = append(kept, a)
		}
	}
	repo.db.rows = kept
	return nil
}

func (repo *announcementRepository) TruncateAnnouncements(_ context.Context) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.rows = nil
	return nil
}
