package inmemdb

import (
	"context"

	"github.com/einsteinium08/class-bloom-space/core/classroom"
)

type assignmentRepository struct {
	db *assignmentTable
}

var _ classroom.AssignmentRepository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(db *DB) classroom.AssignmentRepository {
	return &assignmentRepository{db: db.assignment}
}

// indexOf must be called with the lock held.
func (repo *assignmentRepository) indexOf(id string) int {
	for i, a := range repo.db.rows {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func (repo *assignmentRepository) QueryAllAssignments(_ context.Context) ([]classroom.Assignment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	assignments := make([]classroom.Assignment, len(repo.db.rows))
	copy(assignments, repo.db.rows)
	return assignments, nil
}

func (repo *assignmentRepository) GetAssignmentByID(_ context.Context, id string) (classroom.Assignment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if i := repo.indexOf(id); i >= 0 {
		return repo.db.rows[i], nil
	}
	return classroom.Assignment{}, classroom.ErrNotFound
}

func (repo *assignmentRepository) CreateAssignment(_ context.Context, a classroom.Assignment) (classroom.Assignment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if a.ID == "" {
		a.ID = generateID(func(id string) bool { return repo.indexOf(id) >= 0 })
	} else if repo.indexOf(a.ID) >= 0 {
		return classroom.Assignment{}, classroom.ErrDuplicateID
	}
	repo.db.rows = append(repo.db.rows, a)
	return a, nil
}

func (repo *assignmentRepository) ModifyAssignment(
	_ context.Context,
	id string,
	fn func(a *classroom.Assignment) error,
) (classroom.Assignment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	i := repo.indexOf(id)
	if i < 0 {
		return classroom.Assignment{}, classroom.ErrNotFound
	}
	a := repo.db.rows[i] // work on a copy, only save on success
	if err := fn(&a); err != nil {
		return classroom.Assignment{}, err
	}
	a.ID = id
	repo.db.rows[i] = a
	return a, nil
}

func (repo *assignmentRepository) DeleteAssignmentsByID(_ context.Context, ids ...string) error {
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

func (repo *assignmentRepository) TruncateAssignments(_ context.Context) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.rows = nil
	return nil
}
