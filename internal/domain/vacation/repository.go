package vacation

import (
	"context"
	"time"
)

// CycleRepository - interface for the vacation_cycles table
type CycleRepository interface {
	Create(ctx context.Context, cycle Cycle) (Cycle, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]Cycle, error)

	// GetActiveByEmployee returns the employee's cycles whose window is
	// still open as of the given date, soonest end date first.
	GetActiveByEmployee(ctx context.Context, employeeID string, asOf time.Time) ([]Cycle, error)

	// ApplyDebit moves days from available to used on one cycle. The
	// write is conditional on days_available >= days so two concurrent
	// approvals cannot drain the same cycle twice; it returns
	// ErrInsufficientBalance when the condition fails.
	ApplyDebit(ctx context.Context, cycleID string, days int) error

	// ApplyCredit moves days back from used to available, conditional
	// on days_used >= days.
	ApplyCredit(ctx context.Context, cycleID string, days int) error
}

// RequestRepository - interface for the vacation_requests table
type RequestRepository interface {
	Create(ctx context.Context, request Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	ListByEmployee(ctx context.Context, employeeID string, year int) ([]Request, error)

	// ListOpenByOfficeRange returns every pending/approved request in
	// the office whose range intersects [from, to].
	ListOpenByOfficeRange(ctx context.Context, officeID string, from, to time.Time) ([]Request, error)

	// CheckOverlapping reports whether the employee already has a
	// pending or approved request whose range intersects [start, end].
	CheckOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error)

	Update(ctx context.Context, params UpdateRequestParams) error
}

// UpdateRequestParams carries the partial update applied on lifecycle
// transitions. Nil fields are left untouched.
type UpdateRequestParams struct {
	ID             string
	Status         *RequestStatus
	RejectedReason *string
	ApprovedBy     *string
	ApprovedAt     *time.Time
	CancelledAt    *time.Time
}

// TxRunner executes fn inside one storage transaction; the ctx passed
// to fn routes repository calls through that transaction. The approval
// path relies on it so a status flip and its ledger debit commit or
// roll back together.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
