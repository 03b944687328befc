package database

import (
	"context"
	"io"

	"github.com/pkg/errors"

	"github.com/einsteinium08/class-bloom-space/core"
	"github.com/einsteinium08/class-bloom-space/core/classroom"
	inmemdb "github.com/einsteinium08/class-bloom-space/storage/database/inmem"
	sqlitedb "github.com/einsteinium08/class-bloom-space/storage/database/sqlite"
)

const (
	DriverInMem  = "inmem"
	DriverSQLite = "sqlite"
)

var ErrUnknownDriver = errors.New("unknown storage driver")

// Store bundles the repositories of one backing database.
type Store struct {
	Assignments   classroom.AssignmentRepository
	Announcements classroom.AnnouncementRepository

	closer io.Closer
}

func (s *Store) Close() error {
	if s == nil || s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Open builds the repositories for conf.Storage.Driver.
func Open(ctx context.Context, conf *core.Config) (*Store, error) {
	switch conf.Storage.Driver {
	case DriverInMem, "":
		db, err := inmemdb.Open()
		if err != nil {
			return nil, errors.Wrap(err, "opening in-memory store")
		}
		return &Store{
			Assignments:   inmemdb.NewAssignmentRepository(db),
			Announcements: inmemdb.NewAnnouncementRepository(db),
			closer:        db,
		}, nil

	case DriverSQLite:
		db, err := sqlitedb.Open(ctx, conf.Storage.DSN)
		if err != nil {
			return nil, errors.Wrap(err, "opening sqlite store")
		}
		return &Store{
			Assignments:   sqlitedb.NewAssignmentRepository(db),
			Announcements: sqlitedb.NewAnnouncementRepository(db),
			closer:        db,
		}, nil
	}
	return nil, errors.Wrap(ErrUnknownDriver, conf.Storage.Driver)
}
