package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in     string
		want   Role
		wantOk bool
	}{
		{in: "teacher", want: RoleTeacher, wantOk: true},
		{in: " Student ", want: RoleStudent, wantOk: true},
		{in: "admin", want: Role("admin")},
		{in: "", want: Role("")},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseRole(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOk, ok)
		})
	}
}

func TestNew(t *testing.T) {
	usr := New("  Amani Juma ", RoleTeacher, " Amani@School.cd ")
	assert.NotEmpty(t, usr.ID)
	assert.Equal(t, "Amani Juma", usr.Name)
	assert.Equal(t, "amani@school.cd", usr.Email)
	assert.True(t, usr.IsTeacher())
	assert.False(t, usr.IsStudent())
	assert.NotEqual(t, usr.ID, New("Amani Juma", RoleTeacher, "").ID)
}

func TestUser_Initials(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "", want: ""},
		{name: "amani", want: "A"},
		{name: "Amani Juma", want: "AJ"},
		{name: "Ms. Grace Johnson", want: "MG"},
		{name: "élodie ñúñez", want: "ÉÑ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, User{Name: tt.name}.Initials())
		})
	}
}

func TestFromContext(t *testing.T) {
	_, err := FromContext(context.Background())
	assert.Equal(t, ErrNoSession, err)

	usr := New("Amani", RoleStudent, "")
	got, err := FromContext(WithUser(context.Background(), usr))
	require.NoError(t, err)
	assert.Equal(t, usr, got)
}
