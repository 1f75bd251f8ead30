package attendance

import (
	"context"
	"time"
)

// RecordRepository defines data access for attendance records. Records
// are keyed by (employee, date); Upsert overwrites any existing mark
// for that cell.
type RecordRepository interface {
	Get(ctx context.Context, employeeID string, date time.Time) (Record, error)
	Upsert(ctx context.Context, record Record) (Record, error)
	Delete(ctx context.Context, employeeID string, date time.Time) error

	// ListByEmployeesRange loads all records for the given employees
	// with from <= date <= to. This is the grid's bulk read.
	ListByEmployeesRange(ctx context.Context, employeeIDs []string, from, to time.Time) ([]Record, error)
}

// TypeRepository - interface for the attendance_types catalog
type TypeRepository interface {
	List(ctx context.Context) ([]Type, error)
	GetByID(ctx context.Context, id string) (Type, error)
	GetByCode(ctx context.Context, code string) (Type, error)
}
