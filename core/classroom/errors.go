package classroom

import "errors"

var (
	// errors
	ErrNotFound          = errors.New("not found")
	ErrDuplicateID       = errors.New("an entity with this id already exists")
	ErrNotInitialized    = errors.New("classroom store used outside of its scope")
	ErrInvalidTransition = errors.New("invalid assignment status transition")
	ErrGradeOutOfRange   = errors.New("grade must be between 0 and 100")
)
