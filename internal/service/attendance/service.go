package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Laredoboynvl/timecardpro-sub002/internal/domain/attendance"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/pkg/validator"
)

// GridRow pairs an employee with their marks for the month, in column
// (day) order. Days without a record carry a nil entry.
type GridRow struct {
	EmployeeID   string                       `json:"employee_id"`
	EmployeeName string                       `json:"employee_name"`
	Cells        []*attendance.RecordResponse `json:"cells"`
}

// GridResponse is the full month view for the attendance table.
type GridResponse struct {
	OfficeID string    `json:"office_id"`
	Year     int       `json:"year"`
	Month    int       `json:"month"`
	Days     []string  `json:"days"`
	Rows     []GridRow `json:"rows"`
}

// LoadGrid builds the month table for an office: roster rows in stable
// order, one column per day, with current marks filled in. It also
// refreshes the editor's record cache.
func (m *MarkerService) LoadGrid(ctx context.Context, officeID string, year int, month time.Month) (GridResponse, error) {
	roster, err := m.EmployeeRepository.ListByOffice(ctx, officeID)
	if err != nil {
		return GridResponse{}, fmt.Errorf("failed to load roster for office %s: %w", officeID, err)
	}

	ids := make([]string, 0, len(roster))
	for _, emp := range roster {
		ids = append(ids, emp.ID)
	}
	grid := NewGrid(officeID, year, month, ids)

	records, err := m.RecordRepository.ListByEmployeesRange(ctx, ids, grid.Dates[0], grid.Dates[len(grid.Dates)-1])
	if err != nil {
		return GridResponse{}, fmt.Errorf("failed to load attendance records for office %s: %w", officeID, err)
	}
	snapshot := attendance.BuildSnapshot(records)

	m.mu.Lock()
	if m.phase == phaseIdle {
		m.snapshot = snapshot
	}
	m.mu.Unlock()

	resp := GridResponse{
		OfficeID: officeID,
		Year:     year,
		Month:    int(month),
		Days:     make([]string, 0, len(grid.Dates)),
		Rows:     make([]GridRow, 0, len(roster)),
	}
	for _, d := range grid.Dates {
		resp.Days = append(resp.Days, validator.FormatDate(d))
	}
	for _, emp := range roster {
		row := GridRow{
			EmployeeID:   emp.ID,
			EmployeeName: emp.FullName,
			Cells:        make([]*attendance.RecordResponse, len(grid.Dates)),
		}
		for i, d := range grid.Dates {
			if rec, ok := snapshot.Get(emp.ID, d); ok {
				cell := rec.ToResponse()
				row.Cells[i] = &cell
			}
		}
		resp.Rows = append(resp.Rows, row)
	}
	return resp, nil
}

// SetMark writes one cell directly, bypassing the gesture flow. Used
// for the single-click path and for overtime marks that carry hours.
func (m *MarkerService) SetMark(ctx context.Context, req attendance.MarkCellRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	date, _ := validator.ParseDate(req.Date)

	markType, err := m.TypeRepository.GetByID(ctx, req.TypeID)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("attendance type %s: %w", req.TypeID, attendance.ErrTypeNotFound)
	}
	if markType.IsSystem {
		return attendance.RecordResponse{}, fmt.Errorf("attendance type %s is derived and cannot be applied manually: %w", markType.Code, attendance.ErrTypeNotFound)
	}

	emp, err := m.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to get employee %s: %w", req.EmployeeID, err)
	}

	view, err := m.resolver.View(ctx, emp.OfficeID, date, date)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if view.MarkBlocked(emp.ID, date) {
		return attendance.RecordResponse{}, fmt.Errorf("%s is %s for %s: marking is blocked",
			req.Date, view.Classify(emp.ID, date), emp.FullName)
	}

	var hours *float64
	if markType.Code == attendance.TypeCodeOvertime {
		hours = req.ExtraHours
	}

	rec, err := m.RecordRepository.Upsert(ctx, attendance.Record{
		EmployeeID: emp.ID,
		Date:       date,
		Mark:       attendance.Mark{TypeID: req.TypeID, ExtraHours: hours},
		Note:       req.Note,
	})
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("%w: %v", attendance.ErrPersistenceFailure, err)
	}

	m.mu.Lock()
	m.snapshot = m.snapshot.With(rec)
	m.mu.Unlock()

	return rec.ToResponse(), nil
}

// ClearMark removes one cell's record. Clearing an already-empty cell
// is a no-op.
func (m *MarkerService) ClearMark(ctx context.Context, employeeID string, dateStr string) error {
	date, ok := validator.ParseDate(dateStr)
	if !ok {
		return validator.ValidationErrors{{Field: "date", Message: "date must use the YYYY-MM-DD format"}}
	}

	err := m.RecordRepository.Delete(ctx, employeeID, date)
	if err != nil && !errors.Is(err, attendance.ErrRecordNotFound) {
		return fmt.Errorf("%w: %v", attendance.ErrPersistenceFailure, err)
	}

	m.mu.Lock()
	m.snapshot = m.snapshot.Without(employeeID, date)
	m.mu.Unlock()
	return nil
}

// FillMonthRegular writes a regular-day mark into every empty, markable
// cell of the month: cells already carrying any record keep it, and
// holidays, Sundays, and vacation days are skipped. It runs through the
// same batching path as a gesture and is mutually exclusive with one.
func (m *MarkerService) FillMonthRegular(ctx context.Context, officeID string, year int, month time.Month) (attendance.OutcomeResponse, error) {
	m.mu.Lock()
	if m.phase != phaseIdle {
		m.mu.Unlock()
		return attendance.OutcomeResponse{}, attendance.ErrGestureInFlight
	}
	m.phase = phaseCommitting
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.phase = phaseIdle
		m.mu.Unlock()
	}()

	regular, err := m.TypeRepository.GetByCode(ctx, attendance.TypeCodeRegular)
	if err != nil {
		return attendance.OutcomeResponse{}, fmt.Errorf("attendance type %s: %w", attendance.TypeCodeRegular, attendance.ErrTypeNotFound)
	}

	grid, view, snapshot, err := m.loadGrid(ctx, officeID, year, month)
	if err != nil {
		return attendance.OutcomeResponse{}, err
	}

	var outcome attendance.OutcomeResponse
	var cells []Cell
	for _, id := range grid.EmployeeIDs {
		for _, d := range grid.Dates {
			if view.MarkBlocked(id, d) {
				outcome.Skipped++
				continue
			}
			// Existing marks of any type win over the fill.
			if _, ok := snapshot.Get(id, d); ok {
				outcome.Skipped++
				continue
			}
			cells = append(cells, Cell{EmployeeID: id, Date: d})
		}
	}

	results := m.applyBatch(ctx, ModeMark, regular.ID, cells, &outcome)

	next := make(attendance.Snapshot, len(snapshot)+len(results))
	for k, v := range snapshot {
		next[k] = v
	}
	for _, res := range results {
		next[res.record.Key()] = res.record
	}

	m.mu.Lock()
	m.snapshot = next
	m.mu.Unlock()

	slog.Info("month filled with regular marks",
		"office_id", officeID,
		"year", year,
		"month", int(month),
		"succeeded", outcome.Succeeded,
		"failed", outcome.Failed,
		"skipped", outcome.Skipped,
	)
	return outcome, nil
}

// ListTypes returns the attendance-type catalog.
func (m *MarkerService) ListTypes(ctx context.Context) ([]attendance.TypeResponse, error) {
	types, err := m.TypeRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance types: %w", err)
	}

	responses := make([]attendance.TypeResponse, 0, len(types))
	for _, t := range types {
		responses = append(responses, t.ToResponse())
	}
	return responses, nil
}
