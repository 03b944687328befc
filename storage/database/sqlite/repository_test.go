package sqlitedb

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/einsteinium08/class-bloom-space/core/classroom"
	"github.com/einsteinium08/class-bloom-space/testutil"
)

func openDB(t *testing.T) *DB {
	db, err := Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func setup(t *testing.T) (classroom.AssignmentRepository, classroom.AnnouncementRepository) {
	db := openDB(t)
	return NewAssignmentRepository(db), NewAnnouncementRepository(db)
}

func TestRepositoryContract(t *testing.T) {
	testutil.RunRepositoryContract(t, setup)
}

func TestOpen(t *testing.T) {
	tests := []struct {
		name    string
		dsn     string
		wantErr error
	}{
		{name: "empty dsn", dsn: ""},
		{name: "memory", dsn: ":memory:"},
		{name: "memory uri", dsn: "file::memory:?cache=private"},
		{name: "memory mode", dsn: "file:classroom?mode=memory"},
		{name: "file", dsn: "classroom.db", wantErr: ErrPersistentDSN},
		{name: "file uri", dsn: "file:classroom.db", wantErr: ErrPersistentDSN},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := Open(context.Background(), tt.dsn)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, errors.Cause(err))
				assert.Nil(t, db)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, db.Close())
		})
	}
}

func TestOpen_databasesAreIsolated(t *testing.T) {
	ctx := context.Background()
	first, second := openDB(t), openDB(t)
	testutil.CreateAssignment(t, NewAssignmentRepository(first), "1", "One", classroom.StatusPending, testutil.Now)

	all, err := NewAssignmentRepository(second).QueryAllAssignments(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func Test_generateID_skipsTakenIDs(t *testing.T) {
	orig := newID
	t.Cleanup(func() { newID = orig })
	ids := []string{"1", "2"}
	newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	repo, _ := setup(t)
	testutil.CreateAssignment(t, repo, "1", "Taken", classroom.StatusPending, testutil.Now)

	a, err := repo.CreateAssignment(context.Background(), classroom.Assignment{Title: "Fresh", Status: classroom.StatusPending})
	require.NoError(t, err)
	assert.Equal(t, "2", a.ID)
}
