package postgresql

import (
	"context"
	"time"

	"github.com/Laredoboynvl/timecardpro-sub002/internal/domain/vacation"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type requestRepositoryImpl struct {
	db *database.DB
}

func NewRequestRepository(db *database.DB) vacation.RequestRepository {
	return &requestRepositoryImpl{db: db}
}

const requestColumns = `
	vr.id, vr.employee_id, vr.office_id, vr.start_date, vr.end_date,
	vr.days_requested, vr.status, vr.reason, vr.rejected_reason,
	vr.approved_by, vr.approved_at, vr.cancelled_at,
	vr.created_at, vr.updated_at
`

// Create implements vacation.RequestRepository.
func (r *requestRepositoryImpl) Create(ctx context.Context, request vacation.Request) (vacation.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO vacation_requests (
			employee_id, office_id, start_date, end_date,
			days_requested, status, reason
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, employee_id, office_id, start_date, end_date,
			days_requested, status, reason, rejected_reason,
			approved_by, approved_at, cancelled_at,
			created_at, updated_at
	`

	var created vacation.Request
	err := q.QueryRow(ctx, query,
		request.EmployeeID, request.OfficeID, request.StartDate, request.EndDate,
		request.DaysRequested, request.Status, request.Reason,
	).Scan(
		&created.ID, &created.EmployeeID, &created.OfficeID, &created.StartDate, &created.EndDate,
		&created.DaysRequested, &created.Status, &created.Reason, &created.RejectedReason,
		&created.ApprovedBy, &created.ApprovedAt, &created.CancelledAt,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return vacation.Request{}, err
	}
	return created, nil
}

// GetByID implements vacation.RequestRepository.
func (r *requestRepositoryImpl) GetByID(ctx context.Context, id string) (vacation.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + requestColumns + `, e.full_name AS employee_name
		FROM vacation_requests vr
		JOIN employees e ON vr.employee_id = e.id
		WHERE vr.id = $1
	`

	var req vacation.Request
	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.EmployeeID, &req.OfficeID, &req.StartDate, &req.EndDate,
		&req.DaysRequested, &req.Status, &req.Reason, &req.RejectedReason,
		&req.ApprovedBy, &req.ApprovedAt, &req.CancelledAt,
		&req.CreatedAt, &req.UpdatedAt,
		&req.EmployeeName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return vacation.Request{}, vacation.ErrRequestNotFound
		}
		return vacation.Request{}, err
	}
	return req, nil
}

// ListByEmployee implements vacation.RequestRepository.
func (r *requestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, year int) ([]vacation.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + requestColumns + `, e.full_name AS employee_name
		FROM vacation_requests vr
		JOIN employees e ON vr.employee_id = e.id
		WHERE vr.employee_id = $1
		  AND (EXTRACT(YEAR FROM vr.start_date) = $2 OR EXTRACT(YEAR FROM vr.end_date) = $2)
		ORDER BY vr.start_date DESC
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRequests(rows)
}

// ListOpenByOfficeRange implements vacation.RequestRepository.
func (r *requestRepositoryImpl) ListOpenByOfficeRange(ctx context.Context, officeID string, from, to time.Time) ([]vacation.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + requestColumns + `, e.full_name AS employee_name
		FROM vacation_requests vr
		JOIN employees e ON vr.employee_id = e.id
		WHERE vr.office_id = $1
		  AND vr.status IN ('pending', 'approved')
		  AND vr.start_date <= $3
		  AND vr.end_date >= $2
		ORDER BY vr.start_date
	`

	rows, err := q.Query(ctx, query, officeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRequests(rows)
}

// CheckOverlapping implements vacation.RequestRepository.
func (r *requestRepositoryImpl) CheckOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM vacation_requests
			WHERE employee_id = $1
			  AND status IN ('pending', 'approved')
			  AND start_date <= $3
			  AND end_date >= $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, start, end).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Update implements vacation.RequestRepository. COALESCE keeps any
// field whose parameter came in NULL.
func (r *requestRepositoryImpl) Update(ctx context.Context, params vacation.UpdateRequestParams) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE vacation_requests
		SET status = COALESCE($2, status),
			rejected_reason = COALESCE($3, rejected_reason),
			approved_by = COALESCE($4, approved_by),
			approved_at = COALESCE($5, approved_at),
			cancelled_at = COALESCE($6, cancelled_at),
			updated_at = NOW()
		WHERE id = $1
	`

	result, err := q.Exec(ctx, query,
		params.ID, params.Status, params.RejectedReason,
		params.ApprovedBy, params.ApprovedAt, params.CancelledAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return vacation.ErrRequestNotFound
	}
	return nil
}

func scanRequests(rows pgx.Rows) ([]vacation.Request, error) {
	requests := make([]vacation.Request, 0)
	for rows.Next() {
		var req vacation.Request
		if err := rows.Scan(
			&req.ID, &req.EmployeeID, &req.OfficeID, &req.StartDate, &req.EndDate,
			&req.DaysRequested, &req.Status, &req.Reason, &req.RejectedReason,
			&req.ApprovedBy, &req.ApprovedAt, &req.CancelledAt,
			&req.CreatedAt, &req.UpdatedAt,
			&req.EmployeeName,
		); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, nil
}
