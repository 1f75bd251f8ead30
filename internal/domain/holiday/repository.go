package holiday

import (
	"context"
	"time"
)

// HolidayRepository - interface for the holidays table. The core only
// ever reads holidays; maintenance is an administrative concern.
type HolidayRepository interface {
	// ListByOfficeRange returns active holidays for the office with
	// from <= date <= to.
	ListByOfficeRange(ctx context.Context, officeID string, from, to time.Time) ([]Holiday, error)
}
