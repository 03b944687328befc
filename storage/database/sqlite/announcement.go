package sqlitedb

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/einsteinium08/class-bloom-space/core/classroom"
)

const (
	announcementTable   = "announcement"
	announcementColumns = "id, title, message, created_at, created_by, pinned"
)

type announcementRow struct {
	ID        string `db:"id"`
	Title     string `db:"title"`
	Message   string `db:"message"`
	CreatedAt string `db:"created_at"`
	CreatedBy string `db:"created_by"`
	Pinned    bool   `db:"pinned"`
}

func newAnnouncementRow(a classroom.Announcement) announcementRow {
	return announcementRow{
		ID:        a.ID,
		Title:     a.Title,
		Message:   a.Message,
		CreatedAt: formatTime(a.CreatedAt),
		CreatedBy: a.CreatedBy,
		Pinned:    a.Pinned,
	}
}

func (row announcementRow) toAnnouncement() (classroom.Announcement, error) {
	createdAt, err := parseTime(row.CreatedAt)
	if err != nil {
		return classroom.Announcement{}, err
	}
	return classroom.Announcement{
		ID:        row.ID,
		Title:     row.Title,
		Message:   row.Message,
		CreatedAt: createdAt,
		CreatedBy: row.CreatedBy,
		Pinned:    row.Pinned,
	}, nil
}

type announcementRepository struct {
	db *DB
}

var _ classroom.AnnouncementRepository = (*announcementRepository)(nil) // interface compliance check

func NewAnnouncementRepository(db *DB) classroom.AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (repo *announcementRepository) QueryAllAnnouncements(ctx context.Context) ([]classroom.Announcement, error) {
	var rows []announcementRow
	q := "SELECT " + announcementColumns + " FROM announcement ORDER BY seq"
	if err := repo.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, errors.Wrap(err, "querying announcements")
	}
	announcements := make([]classroom.Announcement, 0, len(rows))
	for _, row := range rows {
		a, err := row.toAnnouncement()
		if err != nil {
			return nil, err
		}
		announcements = append(announcements, a)
	}
	return announcements, nil
}

func getAnnouncement(ctx context.Context, q sqlx.QueryerContext, id string) (classroom.Announcement, error) {
	var row announcementRow
	err := sqlx.GetContext(ctx, q, &row, "SELECT "+announcementColumns+" FROM announcement WHERE id = ?", id)
	if err == sql.ErrNoRows {
		return classroom.Announcement{}, classroom.ErrNotFound
	}
	if err != nil {
		return classroom.Announcement{}, errors.Wrap(err, "getting announcement")
	}
	return row.toAnnouncement()
}

func (repo *announcementRepository) GetAnnouncementByID(ctx context.Context, id string) (classroom.Announcement, error) {
	return getAnnouncement(ctx, repo.db, id)
}

func (repo *announcementRepository) CreateAnnouncement(ctx context.Context, a classroom.Announcement) (classroom.Announcement, error) {
	err := repo.db.inTx(ctx, func(tx *sqlx.Tx) error {
		if a.ID == "" {
			id, err := generateID(ctx, tx, announcementTable)
			if err != nil {
				return err
			}
			a.ID = id
		} else if exists, err := idExists(ctx, tx, announcementTable, a.ID); err != nil {
			return err
		} else if exists {
			return classroom.ErrDuplicateID
		}

		_, err := tx.NamedExecContext(ctx,
			`INSERT INTO announcement (`+announcementColumns+`)
			VALUES (:id, :title, :message, :created_at, :created_by, :pinned)`,
			newAnnouncementRow(a),
		)
		if err != nil {
			return errors.Wrap(err, "inserting announcement")
		}
		a, err = newAnnouncementRow(a).toAnnouncement()
		return err
	})
	if err != nil {
		return classroom.Announcement{}, err
	}
	return a, nil
}

// ModifyAnnouncement never writes created_at.
func (repo *announcementRepository) ModifyAnnouncement(
	ctx context.Context,
	id string,
	fn func(a *classroom.Announcement) error,
) (classroom.Announcement, error) {
	var a classroom.Announcement
	err := repo.db.inTx(ctx, func(tx *sqlx.Tx) error {
		orig, err := getAnnouncement(ctx, tx, id)
		if err != nil {
			return err
		}
		a = orig
		if err = fn(&a); err != nil {
			return err
		}
		a.ID = id
		a.CreatedAt = orig.CreatedAt

		_, err = tx.NamedExecContext(ctx,
			`UPDATE announcement SET title = :title, message = :message, created_by = :created_by, pinned = :pinned
			WHERE id = :id`,
			newAnnouncementRow(a),
		)
		if err != nil {
			return errors.Wrap(err, "updating announcement")
		}
		a, err = newAnnouncementRow(a).toAnnouncement()
		return err
	})
	if err != nil {
		return classroom.Announcement{}, err
	}
	return a, nil
}

func (repo *announcementRepository) DeleteAnnouncementsByID(ctx context.Context, ids ...string) error {
	return deleteByID(ctx, repo.db.DB, announcementTable, ids)
}

func (repo *announcementRepository) TruncateAnnouncements(ctx context.Context) error {
	if _, err := repo.db.ExecContext(ctx, "DELETE FROM announcement"); err != nil {
		return errors.Wrap(err, "truncating announcements")
	}
	return nil
}
