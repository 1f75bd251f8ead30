package postgresql

import (
	"context"
	"time"

	"github.com/Laredoboynvl/timecardpro-sub002/internal/domain/attendance"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type recordRepositoryImpl struct {
	db *database.DB
}

func NewRecordRepository(db *database.DB) attendance.RecordRepository {
	return &recordRepositoryImpl{db: db}
}

// Get implements attendance.RecordRepository.
func (r *recordRepositoryImpl) Get(ctx context.Context, employeeID string, date time.Time) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, attendance_date, attendance_type_id, hours_worked, note,
			created_at, updated_at
		FROM attendance_records
		WHERE employee_id = $1 AND attendance_date = $2
	`

	var rec attendance.Record
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&rec.EmployeeID, &rec.Date, &rec.Mark.TypeID, &rec.Mark.ExtraHours, &rec.Note,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, err
	}
	return rec, nil
}

// Upsert implements attendance.RecordRepository. One mark per
// (employee, date); a second write replaces the first.
func (r *recordRepositoryImpl) Upsert(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			employee_id, attendance_date, attendance_type_id, hours_worked, note
		) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, attendance_date) DO UPDATE
		SET attendance_type_id = EXCLUDED.attendance_type_id,
			hours_worked = EXCLUDED.hours_worked,
			note = EXCLUDED.note,
			updated_at = NOW()
		RETURNING employee_id, attendance_date, attendance_type_id, hours_worked, note,
			created_at, updated_at
	`

	var saved attendance.Record
	err := q.QueryRow(ctx, query,
		record.EmployeeID, record.Date, record.Mark.TypeID, record.Mark.ExtraHours, record.Note,
	).Scan(
		&saved.EmployeeID, &saved.Date, &saved.Mark.TypeID, &saved.Mark.ExtraHours, &saved.Note,
		&saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return attendance.Record{}, err
	}
	return saved, nil
}

// Delete implements attendance.RecordRepository.
func (r *recordRepositoryImpl) Delete(ctx context.Context, employeeID string, date time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM attendance_records
		WHERE employee_id = $1 AND attendance_date = $2
	`

	result, err := q.Exec(ctx, query, employeeID, date)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}
	return nil
}

// ListByEmployeesRange implements attendance.RecordRepository.
func (r *recordRepositoryImpl) ListByEmployeesRange(ctx context.Context, employeeIDs []string, from, to time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, attendance_date, attendance_type_id, hours_worked, note,
			created_at, updated_at
		FROM attendance_records
		WHERE employee_id = ANY($1)
		  AND attendance_date BETWEEN $2 AND $3
		ORDER BY employee_id, attendance_date
	`

	rows, err := q.Query(ctx, query, employeeIDs, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]attendance.Record, 0)
	for rows.Next() {
		var rec attendance.Record
		if err := rows.Scan(
			&rec.EmployeeID, &rec.Date, &rec.Mark.TypeID, &rec.Mark.ExtraHours, &rec.Note,
			&rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

type typeRepositoryImpl struct {
	db *database.DB
}

func NewTypeRepository(db *database.DB) attendance.TypeRepository {
	return &typeRepositoryImpl{db: db}
}

// List implements attendance.TypeRepository.
func (r *typeRepositoryImpl) List(ctx context.Context) ([]attendance.Type, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, code, name, color, is_system
		FROM attendance_types
		ORDER BY code
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]attendance.Type, 0)
	for rows.Next() {
		var t attendance.Type
		if err := rows.Scan(&t.ID, &t.Code, &t.Name, &t.Color, &t.IsSystem); err != nil {
			return nil, err
		}
		types = append(types, t)
	}

	return types, nil
}

// GetByID implements attendance.TypeRepository.
func (r *typeRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Type, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, code, name, color, is_system
		FROM attendance_types
		WHERE id = $1
	`

	var t attendance.Type
	err := q.QueryRow(ctx, query, id).Scan(&t.ID, &t.Code, &t.Name, &t.Color, &t.IsSystem)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Type{}, attendance.ErrTypeNotFound
		}
		return attendance.Type{}, err
	}
	return t, nil
}

// GetByCode implements attendance.TypeRepository.
func (r *typeRepositoryImpl) GetByCode(ctx context.Context, code string) (attendance.Type, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, code, name, color, is_system
		FROM attendance_types
		WHERE code = $1
	`

	var t attendance.Type
	err := q.QueryRow(ctx, query, code).Scan(&t.ID, &t.Code, &t.Name, &t.Color, &t.IsSystem)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Type{}, attendance.ErrTypeNotFound
		}
		return attendance.Type{}, err
	}
	return t, nil
}
