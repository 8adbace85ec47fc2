package errorvalues

import "errors"

var (
	ErrStepRecordNotFound = errors.New("step record doesn't exist")
	ErrGoalNotFound       = errors.New("weight goal doesn't exist")
	ErrNegativeSteps      = errors.New("steps count must be non-negative")
)
