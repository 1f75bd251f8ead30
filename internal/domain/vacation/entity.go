package vacation

import (
	"time"
)

// Cycle is one accrual period of an employee's vacation-day ledger,
// typically anniversary-to-anniversary plus a grace period. Cycles are
// never deleted; they age out when their end date passes.
//
// Ledger invariant: DaysUsed + DaysAvailable == DaysEarned, both >= 0.
type Cycle struct {
	ID         string
	EmployeeID string

	StartDate time.Time
	EndDate   time.Time

	DaysEarned    int
	DaysUsed      int
	DaysAvailable int

	YearsOfService int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Expired reports whether the cycle window has closed as of the given
// date. Expired cycles keep their history but no longer back debits.
func (c Cycle) Expired(asOf time.Time) bool {
	return c.EndDate.Before(asOf)
}

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusApproved  RequestStatus = "approved"
	RequestStatusRejected  RequestStatus = "rejected"
	RequestStatusCancelled RequestStatus = "cancelled"

	// Derived read-only projections of an approved request's range
	// relative to "today". Never stored, never a transition target.
	RequestStatusInProgress RequestStatus = "in_progress"
	RequestStatusCompleted  RequestStatus = "completed"
)

// Request is a single time-off request. Non-contiguous day selections
// collapse to the min/max range; DaysRequested keeps the true count of
// selected days.
type Request struct {
	ID         string
	EmployeeID string
	OfficeID   string

	StartDate     time.Time
	EndDate       time.Time
	DaysRequested int

	Status         RequestStatus
	Reason         *string
	RejectedReason *string

	ApprovedBy  *string
	ApprovedAt  *time.Time
	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	EmployeeName *string
}

// EffectiveStatus projects the stored status against asOf: an approved
// request whose range has started reads as in_progress, one whose
// range has passed reads as completed.
func (r Request) EffectiveStatus(asOf time.Time) RequestStatus {
	if r.Status != RequestStatusApproved {
		return r.Status
	}
	day := asOf.Truncate(24 * time.Hour)
	if day.After(r.EndDate) {
		return RequestStatusCompleted
	}
	if !day.Before(r.StartDate) {
		return RequestStatusInProgress
	}
	return RequestStatusApproved
}

// Covers reports whether date falls inside the request's inclusive
// range.
func (r Request) Covers(date time.Time) bool {
	return !date.Before(r.StartDate) && !date.After(r.EndDate)
}

// Open reports whether the request still occupies its date range from
// a scheduling point of view (pending or approved).
func (r Request) Open() bool {
	return r.Status == RequestStatusPending || r.Status == RequestStatusApproved
}
