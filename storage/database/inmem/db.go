// Package inmemdb keeps classroom entities in process memory.
// Each table holds its rows in insertion order behind its own lock.
package inmemdb

import (
	"sync"

	"github.com/google/uuid"

	"github.com/einsteinium08/class-bloom-space/core/classroom"
)

type (
	DB struct {
		assignment   *assignmentTable
		announcement *announcementTable
	}

	assignmentTable struct {
		sync.RWMutex
		rows []classroom.Assignment
	}

	announcementTable struct {
		sync.RWMutex
		rows []classroom.Announcement
	}
)

func Open() (*DB, error) {
	db := &DB{
		assignment:   &assignmentTable{},
		announcement: &announcementTable{},
	}
	return db, nil
}

// Close drops every row; the DB must not be used afterwards.
func (db *DB) Close() error {
	db.assignment.Lock()
	db.assignment.rows = nil
	db.assignment.Unlock()

	db.announcement.Lock()
	db.announcement.rows = nil
	db.announcement.Unlock()
	return nil
}

var newID = uuid.NewString // mockable

// generateID returns a fresh id that is not taken yet.
func generateID(taken func(id string) bool) string {
	for {
		if id := newID(); !taken(id) {
			return id
		}
	}
}
