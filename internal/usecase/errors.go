package usecase

import "errors"

// Domain rejection kinds. The menu layer matches these with errors.Is and
// keeps the session alive; store errors (jsonstore.ErrCorrupted,
// jsonstore.ErrSaveFailed) pass through wrapped.
var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidIndex       = errors.New("invalid index")
	ErrAlreadyAssigned    = errors.New("patient is already assigned to that practitioner")
	ErrIllegalTransition  = errors.New("illegal status transition")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAuthFailed         = errors.New("login attempts exhausted")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrSlotTaken          = errors.New("that time slot is already booked")
	ErrUnassigned         = errors.New("patient has no assigned practitioner")
	ErrInvalidMoodLevel   = errors.New("mood level must be between 1 and 6")
)
