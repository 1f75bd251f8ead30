package holiday

import (
	"time"
)

// Holiday is read-mostly reference data owned by an office.
type Holiday struct {
	ID       string
	OfficeID string
	Date     time.Time
	Name     string
	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
