package postgresql

import (
	"context"
	"time"

	"github.com/Laredoboynvl/timecardpro-sub002/internal/domain/holiday"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/pkg/database"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

// ListByOfficeRange implements holiday.HolidayRepository. Inactive
// holidays are invisible to the calendar.
func (r *holidayRepositoryImpl) ListByOfficeRange(ctx context.Context, officeID string, from, to time.Time) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, office_id, holiday_date, name, is_active, created_at, updated_at
		FROM holidays
		WHERE office_id = $1
		  AND is_active
		  AND holiday_date BETWEEN $2 AND $3
		ORDER BY holiday_date
	`

	rows, err := q.Query(ctx, query, officeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holidays := make([]holiday.Holiday, 0)
	for rows.Next() {
		var h holiday.Holiday
		if err := rows.Scan(
			&h.ID, &h.OfficeID, &h.Date, &h.Name, &h.IsActive,
			&h.CreatedAt, &h.UpdatedAt,
		); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}

	return holidays, nil
}
