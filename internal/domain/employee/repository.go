package employee

import (
	"context"
)

// EmployeeRepository - interface for the employees table
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)

	// ListByOffice returns the office roster in stable grid order:
	// full name ascending, id as tie break. Row indices in the
	// attendance grid are positions in this slice.
	ListByOffice(ctx context.Context, officeID string) ([]Employee, error)
}
