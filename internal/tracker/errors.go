package tracker

import "errors"

// Error taxonomy surfaced to controllers. Every failure mode of the
// tracker wraps one of these sentinels, so callers branch with errors.Is
// and map the rest of the message to user-facing text.
var (
	ErrValidation       = errors.New("tracker: validation failed")
	ErrNotFound         = errors.New("tracker: not found")
	ErrDuplicateName    = errors.New("tracker: duplicate name")
	ErrOutOfRange       = errors.New("tracker: date outside task window")
	ErrAlreadyCompleted = errors.New("tracker: task already completed")
	ErrMoodLabelInUse   = errors.New("tracker: mood label still referenced")
)
