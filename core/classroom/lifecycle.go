package classroom

import (
	"math"
	"time"

	"github.com/volatiletech/null/v8"
)

// transitions lists the forward moves of the assignment lifecycle.
// Nothing leaves graded.
var transitions = map[Status][]Status{
	StatusPending:   {StatusSubmitted},
	StatusSubmitted: {StatusGraded},
	StatusGraded:    nil,
}

// CanTransition reports whether the lifecycle allows moving from s to next.
func (s Status) CanTransition(next Status) bool {
	for _, to := range transitions[s] {
		if to == next {
			return true
		}
	}
	return false
}

// submit moves a pending Assignment to submitted and stamps SubmittedAt.
// An already submitted or graded Assignment keeps its status but gets a new SubmittedAt.
func submit(a *Assignment, now time.Time) error {
	switch a.Status {
	case StatusPending:
		a.Status = StatusSubmitted
	case StatusSubmitted, StatusGraded:
	default:
		return ErrInvalidTransition
	}
	a.SubmittedAt = null.TimeFrom(now)
	return nil
}

// ValidGrade reports whether g is a grade between 0 and 100.
func ValidGrade(g float64) bool {
	return !math.IsNaN(g) && g >= 0 && g <= 100
}

// grade moves a submitted Assignment to graded. A graded Assignment may be re-graded.
func grade(a *Assignment, g float64) error {
	if !ValidGrade(g) {
		return ErrGradeOutOfRange
	}
	switch a.Status {
	case StatusSubmitted:
		a.Status = StatusGraded
	case StatusGraded:
	default:
		return ErrInvalidTransition
	}
	a.Grade = null.Float64From(g)
	return nil
}
