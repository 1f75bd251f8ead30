package employee

import (
	"time"
)

// Employee is the roster entry the calendar and attendance views hang
// off. Administrative edits happen in another system; from here it is
// immutable after creation.
type Employee struct {
	ID       string
	OfficeID string
	FullName string
	HireDate time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Role gates the approval and bulk-marking surfaces. Regular employees
// only manage their own requests.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleApprover Role = "approver"
)

// YearsOfService returns completed service years as of the given date.
func (e Employee) YearsOfService(asOf time.Time) int {
	years := asOf.Year() - e.HireDate.Year()
	anniversary := e.HireDate.AddDate(years, 0, 0)
	if anniversary.After(asOf) {
		years--
	}
	if years < 0 {
		years = 0
	}
	return years
}
