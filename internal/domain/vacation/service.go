package vacation

import (
	"context"
	"time"
)

// LedgerService answers "how many days can this employee use" and
// applies debits and credits against accrual cycles.
type LedgerService interface {
	AvailableDays(ctx context.Context, employeeID string, asOf time.Time) (int, error)
	Balance(ctx context.Context, employeeID string, asOf time.Time) (BalanceResponse, error)

	// Debit reduces days_available across one or more non-expired
	// cycles, all-or-nothing. Fails with ErrInsufficientBalance when
	// the eligible cycles together hold fewer than count days.
	Debit(ctx context.Context, employeeID string, count int) error

	// Credit reverses a prior debit, e.g. when an approved request is
	// later cancelled through the administrative path.
	Credit(ctx context.Context, employeeID string, count int) error

	// EnsureCycle creates the accrual cycle for the employee's current
	// service year if it does not exist yet.
	EnsureCycle(ctx context.Context, employeeID string, asOf time.Time) (Cycle, error)
}

// RequestService owns the request lifecycle:
// pending -> approved | rejected | cancelled.
type RequestService interface {
	Create(ctx context.Context, req CreateRequestRequest) (RequestResponse, error)
	Cancel(ctx context.Context, requestID string, actorID string) error
	Approve(ctx context.Context, requestID string, approverID string) error
	Reject(ctx context.Context, req RejectRequestRequest, approverID string) error

	ListByEmployee(ctx context.Context, employeeID string, year int) ([]RequestResponse, error)
	ListByOffice(ctx context.Context, officeID string, from, to time.Time) ([]RequestResponse, error)
}
