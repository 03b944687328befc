package user

import (
	"strings"

	"github.com/google/uuid"

	"github.com/einsteinium08/class-bloom-space/core"
)

type Role string

// Roles
const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

var (
	AllRoles = []Role{RoleTeacher, RoleStudent}

	Roles = []RoleInfo{
		{Name: "Teacher", Value: RoleTeacher},
		{Name: "Student", Value: RoleStudent},
	}
)

func (r Role) Valid() bool {
	for _, role := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

func ParseRole(s string) (Role, bool) {
	role := Role(core.CleanString(s, true /* lower */))
	return role, role.Valid()
}

type RoleInfo struct {
	Name  string `json:"name"`
	Value Role   `json:"value"`
}

// User is the self-declared identity of the current session.
// Nothing in the store checks it: the role only drives what a front end offers.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
	Email  string `json:"email,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

func New(name string, role Role, email string) User {
	return User{
		ID:    uuid.NewString(),
		Name:  core.CleanString(name),
		Role:  role,
		Email: core.CleanString(email, true /* lower */),
	}
}

func (u User) IsTeacher() bool {
	return u.Role == RoleTeacher
}

func (u User) IsStudent() bool {
	return u.Role == RoleStudent
}

// Initials is used by front ends for avatars.
func (u User) Initials() string {
	var (
		b strings.Builder
		n int
	)
	for _, part := range strings.Fields(u.Name) {
		b.WriteString(strings.ToUpper(string([]rune(part)[0])))
		if n++; n == 2 {
			break
		}
	}
	return b.String()
}
