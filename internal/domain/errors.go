package domain

import "errors"

// Domain errors.
var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrProgramNotFound  = errors.New("program not found")
	ErrEditorNotFound   = errors.New("editor not found")
	ErrTaskIncomplete   = errors.New("show, editor, start date and end date are required")
	ErrMissingDate      = errors.New("start or end date missing")
	ErrInvalidDate      = errors.New("invalid date (want YYYY-MM-DD)")
	ErrInvertedInterval = errors.New("start date is after end date")
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrNegativeWorkDays = errors.New("work days cannot be negative")
	ErrInvalidMonth     = errors.New("invalid month (want YYYY-MM)")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrNotInitialized   = errors.New("editflow not initialized (run 'editflow init' first)")
	ErrUnknownStore     = errors.New("unknown store type")
	ErrConfigExists     = errors.New("config file already exists")
	ErrNoFieldsToUpdate = errors.New("no fields to update")
	ErrStoreClosed      = errors.New("store closed")
)

// IsValidationError reports whether err is caused by bad input rather than a failure of the store.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrTaskIncomplete, ErrMissingDate, ErrInvalidDate, ErrInvertedInterval,
		ErrEmptyName, ErrNegativeWorkDays, ErrInvalidMonth, ErrInvalidStatus, ErrNoFieldsToUpdate,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err means the requested document does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrTaskNotFound) || errors.Is(err, ErrProgramNotFound) || errors.Is(err, ErrEditorNotFound)
}
