package postgresql

import (
	"context"
	"time"

	"github.com/Laredoboynvl/timecardpro-sub002/internal/domain/vacation"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type cycleRepositoryImpl struct {
	db *database.DB
}

func NewCycleRepository(db *database.DB) vacation.CycleRepository {
	return &cycleRepositoryImpl{db: db}
}

// Create implements vacation.CycleRepository.
func (r *cycleRepositoryImpl) Create(ctx context.Context, cycle vacation.Cycle) (vacation.Cycle, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO vacation_cycles (
			employee_id, start_date, end_date,
			days_earned, days_used, days_available, years_of_service
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, employee_id, start_date, end_date,
			days_earned, days_used, days_available, years_of_service,
			created_at, updated_at
	`

	var created vacation.Cycle
	err := q.QueryRow(ctx, query,
		cycle.EmployeeID, cycle.StartDate, cycle.EndDate,
		cycle.DaysEarned, cycle.DaysUsed, cycle.DaysAvailable, cycle.YearsOfService,
	).Scan(
		&created.ID, &created.EmployeeID, &created.StartDate, &created.EndDate,
		&created.DaysEarned, &created.DaysUsed, &created.DaysAvailable, &created.YearsOfService,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return vacation.Cycle{}, err
	}
	return created, nil
}

// GetByEmployee implements vacation.CycleRepository.
func (r *cycleRepositoryImpl) GetByEmployee(ctx context.Context, employeeID string) ([]vacation.Cycle, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, start_date, end_date,
			days_earned, days_used, days_available, years_of_service,
			created_at, updated_at
		FROM vacation_cycles
		WHERE employee_id = $1
		ORDER BY start_date
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCycles(rows)
}

// GetActiveByEmployee implements vacation.CycleRepository. The soonest
// expiry comes first, matching the default debit order.
func (r *cycleRepositoryImpl) GetActiveByEmployee(ctx context.Context, employeeID string, asOf time.Time) ([]vacation.Cycle, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, start_date, end_date,
			days_earned, days_used, days_available, years_of_service,
			created_at, updated_at
		FROM vacation_cycles
		WHERE employee_id = $1
		  AND start_date <= $2
		  AND end_date >= $2
		ORDER BY end_date
	`

	rows, err := q.Query(ctx, query, employeeID, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCycles(rows)
}

// ApplyDebit implements vacation.CycleRepository. The WHERE clause is
// the balance guard: an update touching zero rows means another writer
// got there first or the cycle cannot cover the days.
func (r *cycleRepositoryImpl) ApplyDebit(ctx context.Context, cycleID string, days int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE vacation_cycles
		SET days_used = days_used + $1,
			days_available = days_available - $1,
			updated_at = NOW()
		WHERE id = $2
		  AND days_available >= $1
	`

	result, err := q.Exec(ctx, query, days, cycleID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return vacation.ErrInsufficientBalance
	}
	return nil
}

// ApplyCredit implements vacation.CycleRepository.
func (r *cycleRepositoryImpl) ApplyCredit(ctx context.Context, cycleID string, days int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE vacation_cycles
		SET days_used = days_used - $1,
			days_available = days_available + $1,
			updated_at = NOW()
		WHERE id = $2
		  AND days_used >= $1
	`

	result, err := q.Exec(ctx, query, days, cycleID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return vacation.ErrInsufficientBalance
	}
	return nil
}

func scanCycles(rows pgx.Rows) ([]vacation.Cycle, error) {
	cycles := make([]vacation.Cycle, 0)
	for rows.Next() {
		var c vacation.Cycle
		if err := rows.Scan(
			&c.ID, &c.EmployeeID, &c.StartDate, &c.EndDate,
			&c.DaysEarned, &c.DaysUsed, &c.DaysAvailable, &c.YearsOfService,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		cycles = append(cycles, c)
	}
	return cycles, nil
}
