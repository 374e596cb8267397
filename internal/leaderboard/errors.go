package leaderboard

import "errors"

// Sentinel errors callers can match with errors.Is to distinguish
// "no data" from hard failures.
var (
	ErrLocationNotFound = errors.New("location not found")
	ErrNoEventsFound    = errors.New("no events found")
)

// ValidationError reports bad request parameters. It is detected before any
// network call is made.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// IsValidation reports whether err is a parameter-validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
