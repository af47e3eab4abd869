package question

import "errors"

var (
	// validation failures, reported as 400
	ErrInvalidContent = errors.New("question must be between 2 and 1000 characters")
	ErrInvalidStatus  = errors.New("invalid status value")
	ErrInvalidID      = errors.New("invalid id format")

	ErrNotFound = errors.New("question not found")
)

// IsValidation reports whether err is one of the input validation errors.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidContent) || errors.Is(err, ErrInvalidStatus) || errors.Is(err, ErrInvalidID)
}
