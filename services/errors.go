package services

import (
	"errors"
	"fmt"
)

// ErrDuplicateDay is returned by CheckinStore.Create when the storage-level
// (user, civil day) uniqueness constraint rejects the insert.
var ErrDuplicateDay = errors.New("checkin already recorded for this day")

// WeekendError is the business outcome for check-in attempts on Saturday or
// Sunday. It is not an infrastructure fault and maps to an informative response.
type WeekendError struct {
	Date string
}

func (e *WeekendError) Error() string {
	return "check-ins are allowed Monday through Friday only"
}

// DuplicateCheckinError is the business outcome for a second check-in attempt
// on the same civil day. CheckinTime carries the existing record's formatted
// time so callers can report it.
type DuplicateCheckinError struct {
	Username    string
	CheckinTime string
}

func (e *DuplicateCheckinError) Error() string {
	return fmt.Sprintf("user %s already checked in today at %s", e.Username, e.CheckinTime)
}

// DatabaseError wraps a store failure with an operation-specific code. These
// surface as 5xx; business outcomes above never do.
type DatabaseError struct {
	Code string
	Err  error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}
