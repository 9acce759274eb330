package lifecycle

import "strings"

// Rating bounds accepted for a review.
const (
	MinRating = 1
	MaxRating = 5
)

// FieldError describes a validation failure on a single input field.
// Handlers return these verbatim so clients can attach the message to
// the offending form field instead of showing a generic failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e FieldError) Error() string { return e.Field + ": " + e.Message }

// ValidateReview checks the rating and comment of a review submission.
// The rating must be an integer in [MinRating, MaxRating] and the
// comment must be non-empty after trimming whitespace.  All violations
// are collected so the caller can report every bad field at once; an
// empty slice means the submission is valid.
func ValidateReview(rating int, comment string) []FieldError {
	var errs []FieldError
	if rating < MinRating || rating > MaxRating {
		errs = append(errs, FieldError{Field: "ratingPoint", Message: "rating must be between 1 and 5"})
	}
	if strings.TrimSpace(comment) == "" {
		errs = append(errs, FieldError{Field: "reviewComment", Message: "comment must not be empty"})
	}
	return errs
}

// CanReview reports whether the owner of an application in the given
// state may author a review.  Only a completed application unlocks
// reviewing, and completed is terminal, so once unlocked the ability
// never goes away.
func CanReview(s State) bool {
	return ActionsFor(s).Review
}
