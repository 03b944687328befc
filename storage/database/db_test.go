package database

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/einsteinium08/class-bloom-space/core"
	"github.com/einsteinium08/class-bloom-space/core/classroom"
	sqlitedb "github.com/einsteinium08/class-bloom-space/storage/database/sqlite"
	"github.com/einsteinium08/class-bloom-space/testutil"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name    string
		driver  string
		dsn     string
		wantErr error
	}{
		{name: "default driver", driver: ""},
		{name: "inmem", driver: DriverInMem},
		{name: "sqlite", driver: DriverSQLite, dsn: ":memory:"},
		{name: "sqlite on disk", driver: DriverSQLite, dsn: "classroom.db", wantErr: sqlitedb.ErrPersistentDSN},
		{name: "unknown driver", driver: "postgres", wantErr: ErrUnknownDriver},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := &core.Config{}
			conf.Storage.Driver = tt.driver
			conf.Storage.DSN = tt.dsn

			store, err := Open(context.Background(), conf)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, errors.Cause(err))
				return
			}
			require.NoError(t, err)
			defer func() { assert.NoError(t, store.Close()) }()

			testutil.CreateAssignment(t, store.Assignments, "1", "One", classroom.StatusPending, testutil.Now)
			testutil.CreateAnnouncement(t, store.Announcements, "1", "One", true, testutil.Now)

			assignments, err := store.Assignments.QueryAllAssignments(context.Background())
			require.NoError(t, err)
			assert.Len(t, assignments, 1)
		})
	}
}

func TestStore_Close_nil(t *testing.T) {
	var store *Store
	assert.NoError(t, store.Close())
}
