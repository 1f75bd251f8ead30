package vacation

import "errors"

var (
	ErrDateConflict        = errors.New("selected dates conflict with a holiday, weekend, or existing request")
	ErrInvalidTransition   = errors.New("request is not in a state that allows this action")
	ErrInsufficientBalance = errors.New("insufficient vacation day balance")
	ErrCycleNotFound       = errors.New("no vacation cycles found for employee")
	ErrRequestNotFound     = errors.New("vacation request not found")
	ErrNotRequestOwner     = errors.New("only the requesting employee may cancel a pending request")
)
