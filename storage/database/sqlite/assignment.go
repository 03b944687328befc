package sqlitedb

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/einsteinium08/class-bloom-space/core/classroom"
)

const (
	assignmentTable   = "assignment"
	assignmentColumns = "id, title, description, subject, due_date, created_by, status, points, submitted_at, grade"
)

// assignmentRow stores instants as RFC 3339 text.
type assignmentRow struct {
	ID          string       `db:"id"`
	Title       string       `db:"title"`
	Description string       `db:"description"`
	Subject     string       `db:"subject"`
	DueDate     string       `db:"due_date"`
	CreatedBy   string       `db:"created_by"`
	Status      string       `db:"status"`
	Points      null.Int     `db:"points"`
	SubmittedAt null.String  `db:"submitted_at"`
	Grade       null.Float64 `db:"grade"`
}

func newAssignmentRow(a classroom.Assignment) assignmentRow {
	row := assignmentRow{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Subject:     a.Subject,
		DueDate:     formatTime(a.DueDate),
		CreatedBy:   a.CreatedBy,
		Status:      string(a.Status),
		Points:      a.Points,
		Grade:       a.Grade,
	}
	if a.SubmittedAt.Valid {
		row.SubmittedAt = null.StringFrom(formatTime(a.SubmittedAt.Time))
	}
	return row
}

func (row assignmentRow) toAssignment() (classroom.Assignment, error) {
	dueDate, err := parseTime(row.DueDate)
	if err != nil {
		return classroom.Assignment{}, err
	}
	a := classroom.Assignment{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Subject:     row.Subject,
		DueDate:     dueDate,
		CreatedBy:   row.CreatedBy,
		Status:      classroom.Status(row.Status),
		Points:      row.Points,
		Grade:       row.Grade,
	}
	if row.SubmittedAt.Valid {
		submittedAt, err := parseTime(row.SubmittedAt.String)
		if err != nil {
			return classroom.Assignment{}, err
		}
		a.SubmittedAt = null.TimeFrom(submittedAt)
	}
	return a, nil
}

type assignmentRepository struct {
	db *DB
}

var _ classroom.AssignmentRepository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(db *DB) classroom.AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (repo *assignmentRepository) QueryAllAssignments(ctx context.Context) ([]classroom.Assignment, error) {
	var rows []assignmentRow
	q := "SELECT " + assignmentColumns + " FROM assignment ORDER BY seq"
	if err := repo.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, errors.Wrap(err, "querying assignments")
	}
	assignments := make([]classroom.Assignment, 0, len(rows))
	for _, row := range rows {
		a, err := row.toAssignment()
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, nil
}

func getAssignment(ctx context.Context, q sqlx.QueryerContext, id string) (classroom.Assignment, error) {
	var row assignmentRow
	err := sqlx.GetContext(ctx, q, &row, "SELECT "+assignmentColumns+" FROM assignment WHERE id = ?", id)
	if err == sql.ErrNoRows {
		return classroom.Assignment{}, classroom.ErrNotFound
	}
	if err != nil {
		return classroom.Assignment{}, errors.Wrap(err, "getting assignment")
	}
	return row.toAssignment()
}

func (repo *assignmentRepository) GetAssignmentByID(ctx context.Context, id string) (classroom.Assignment, error) {
	return getAssignment(ctx, repo.db, id)
}

func (repo *assignmentRepository) CreateAssignment(ctx context.Context, a classroom.Assignment) (classroom.Assignment, error) {
	err := repo.db.inTx(ctx, func(tx *sqlx.Tx) error {
		if a.ID == "" {
			id, err := generateID(ctx, tx, assignmentTable)
			if err != nil {
				return err
			}
			a.ID = id
		} else if exists, err := idExists(ctx, tx, assignmentTable, a.ID); err != nil {
			return err
		} else if exists {
			return classroom.ErrDuplicateID
		}

		_, err := tx.NamedExecContext(ctx,
			`INSERT INTO assignment (`+assignmentColumns+`)
			VALUES (:id, :title, :description, :subject, :due_date, :created_by, :status, :points, :submitted_at, :grade)`,
			newAssignmentRow(a),
		)
		if err != nil {
			return errors.Wrap(err, "inserting assignment")
		}
		a, err = newAssignmentRow(a).toAssignment()
		return err
	})
	if err != nil {
		return classroom.Assignment{}, err
	}
	return a, nil
}

func (repo *assignmentRepository) ModifyAssignment(
	ctx context.Context,
	id string,
	fn func(a *classroom.Assignment) error,
) (classroom.Assignment, error) {
	var a classroom.Assignment
	err := repo.db.inTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		if a, err = getAssignment(ctx, tx, id); err != nil {
			return err
		}
		if err = fn(&a); err != nil {
			return err
		}
		a.ID = id

		_, err = tx.NamedExecContext(ctx,
			`UPDATE assignment SET
				title = :title, description = :description, subject = :subject, due_date = :due_date,
				created_by = :created_by, status = :status, points = :points,
				submitted_at = :submitted_at, grade = :grade
			WHERE id = :id`,
			newAssignmentRow(a),
		)
		if err != nil {
			return errors.Wrap(err, "updating assignment")
		}
		a, err = newAssignmentRow(a).toAssignment()
		return err
	})
	if err != nil {
		return classroom.Assignment{}, err
	}
	return a, nil
}

func (repo *assignmentRepository) DeleteAssignmentsByID(ctx context.Context, ids ...string) error {
	return deleteByID(ctx, repo.db.DB, assignmentTable, ids)
}

func (repo *assignmentRepository) TruncateAssignments(ctx context.Context) error {
	if _, err := repo.db.ExecContext(ctx, "DELETE FROM assignment"); err != nil {
		return errors.Wrap(err, "truncating assignments")
	}
	return nil
}
