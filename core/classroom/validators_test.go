package classroom_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/einsteinium08/class-bloom-space/core"
	"github.com/einsteinium08/class-bloom-space/core/classroom"
)

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	if err == nil {
		return nil
	}
	vErr, ok := err.(*core.ValidationError)
	require.True(t, ok, "want *core.ValidationError, got %T", err)
	flds := make(map[string]string, len(vErr.Fields))
	for _, fld := range vErr.Fields {
		flds[fld.Field] = fld.Error
	}
	return flds
}

func TestNewAssignment_Validate(t *testing.T) {
	validate, translator := core.NewValidator()
	due := time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		input      classroom.NewAssignment
		wantFields map[string]string
	}{
		{
			name:  "valid",
			input: classroom.NewAssignment{Title: " Essay ", Description: "500 words", Subject: "English", DueDate: due, Points: null.IntFrom(0)},
		},
		{
			name:  "everything missing",
			input: classroom.NewAssignment{},
			wantFields: map[string]string{
				"title":       "this field cannot be blank",
				"description": "this field cannot be blank",
				"subject":     "this field cannot be blank",
				"due_date":    "this field is required",
			},
		},
		{
			name:       "blank title",
			input:      classroom.NewAssignment{Title: "   ", Description: "d", Subject: "s", DueDate: due},
			wantFields: map[string]string{"title": "this field cannot be blank"},
		},
		{
			name:       "negative points",
			input:      classroom.NewAssignment{Title: "t", Description: "d", Subject: "s", DueDate: due, Points: null.IntFrom(-5)},
			wantFields: map[string]string{"points": "points cannot be negative"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			na := tt.input
			err := na.Validate(validate, translator)
			assert.Equal(t, tt.wantFields, fieldErrors(t, err))
		})
	}

	t.Run("cleans strings", func(t *testing.T) {
		na := classroom.NewAssignment{Title: "  Essay ", Description: " d ", Subject: "English\n", CreatedBy: " Ms. Johnson ", DueDate: due}
		require.NoError(t, na.Validate(validate, translator))
		assert.Equal(t, "Essay", na.Title)
		assert.Equal(t, "d", na.Description)
		assert.Equal(t, "English", na.Subject)
		assert.Equal(t, "Ms. Johnson", na.CreatedBy)
	})
}

func TestNewAnnouncement_Validate(t *testing.T) {
	validate, translator := core.NewValidator()

	tests := []struct {
		name       string
		input      classroom.NewAnnouncement
		wantFields map[string]string
	}{
		{name: "valid", input: classroom.NewAnnouncement{Title: "Hi", Message: "Test", CreatedBy: "T"}},
		{
			name:  "blank",
			input: classroom.NewAnnouncement{Title: " ", Message: ""},
			wantFields: map[string]string{
				"title":   "this field cannot be blank",
				"message": "this field cannot be blank",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			na := tt.input
			assert.Equal(t, tt.wantFields, fieldErrors(t, na.Validate(validate, translator)))
		})
	}
}
