package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Laredoboynvl/timecardpro-sub002/internal/domain/attendance"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/domain/employee"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/pkg/validator"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/service/calendar"
	"golang.org/x/sync/errgroup"
)

// Mode is fixed for a whole gesture at drag start and never
// re-evaluated per cell.
type Mode string

const (
	ModeMark   Mode = "mark"
	ModeUnmark Mode = "unmark"
)

type gesturePhase int

const (
	phaseIdle gesturePhase = iota
	phaseSelecting
	phaseCommitting
)

type gesture struct {
	grid    Grid
	view    *calendar.View
	mode    Mode
	typeID  string
	anchor  Cell
	current Cell
}

// MarkerService is the grid editor: drag-rectangle multi-select over
// (employee row x date column) cells with chunked batch persistence
// and toggle semantics. One gesture at a time; writes already
// dispatched always run to completion.
type MarkerService struct {
	attendance.RecordRepository
	attendance.TypeRepository
	employee.EmployeeRepository
	resolver *calendar.Resolver

	batchSize  int
	batchPause time.Duration

	mu       sync.Mutex
	snapshot attendance.Snapshot
	phase    gesturePhase
	gesture  *gesture
}

func NewMarkerService(recordRepository attendance.RecordRepository, typeRepository attendance.TypeRepository, employeeRepository employee.EmployeeRepository, resolver *calendar.Resolver, batchSize int, batchPause time.Duration) *MarkerService {
	if batchSize < 1 {
		batchSize = 15
	}
	return &MarkerService{
		RecordRepository:   recordRepository,
		TypeRepository:     typeRepository,
		EmployeeRepository: employeeRepository,
		resolver:           resolver,
		batchSize:          batchSize,
		batchPause:         batchPause,
		snapshot:           attendance.Snapshot{},
	}
}

// Snapshot returns the current immutable record cache.
func (m *MarkerService) Snapshot() attendance.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot
}

// loadGrid builds the month grid, its calendar view, and a fresh
// record snapshot for the office roster.
func (m *MarkerService) loadGrid(ctx context.Context, officeID string, year int, month time.Month) (Grid, *calendar.View, attendance.Snapshot, error) {
	roster, err := m.EmployeeRepository.ListByOffice(ctx, officeID)
	if err != nil {
		return Grid{}, nil, nil, fmt.Errorf("failed to load roster for office %s: %w", officeID, err)
	}

	ids := make([]string, 0, len(roster))
	for _, emp := range roster {
		ids = append(ids, emp.ID)
	}
	grid := NewGrid(officeID, year, month, ids)

	view, err := m.resolver.MonthView(ctx, officeID, year, month)
	if err != nil {
		return Grid{}, nil, nil, err
	}

	records, err := m.RecordRepository.ListByEmployeesRange(ctx, ids, grid.Dates[0], grid.Dates[len(grid.Dates)-1])
	if err != nil {
		return Grid{}, nil, nil, fmt.Errorf("failed to load attendance records for office %s: %w", officeID, err)
	}

	return grid, view, attendance.BuildSnapshot(records), nil
}

// StartDrag opens a gesture anchored at the given cell. The mode is
// inferred once from the anchor's existing state: a cell already
// carrying the type about to be applied flips the whole gesture to
// unmark.
func (m *MarkerService) StartDrag(ctx context.Context, officeID string, year int, month time.Month, anchor Cell, typeID string) error {
	m.mu.Lock()
	if m.phase != phaseIdle {
		m.mu.Unlock()
		return attendance.ErrGestureInFlight
	}
	m.phase = phaseSelecting
	m.mu.Unlock()

	fail := func(err error) error {
		m.mu.Lock()
		m.phase = phaseIdle
		m.gesture = nil
		m.mu.Unlock()
		return err
	}

	markType, err := m.TypeRepository.GetByID(ctx, typeID)
	if err != nil {
		return fail(fmt.Errorf("attendance type %s: %w", typeID, attendance.ErrTypeNotFound))
	}
	if markType.IsSystem {
		return fail(fmt.Errorf("attendance type %s is derived and cannot be applied manually: %w", markType.Code, attendance.ErrTypeNotFound))
	}

	grid, view, snapshot, err := m.loadGrid(ctx, officeID, year, month)
	if err != nil {
		return fail(err)
	}
	if !grid.Contains(anchor) {
		return fail(fmt.Errorf("anchor cell (%s, %s) is outside the grid", anchor.EmployeeID, validator.FormatDate(anchor.Date)))
	}

	mode := ModeMark
	if rec, ok := snapshot.Get(anchor.EmployeeID, anchor.Date); ok && rec.Mark.TypeID == typeID {
		mode = ModeUnmark
	}

	m.mu.Lock()
	m.snapshot = snapshot
	m.gesture = &gesture{
		grid:    grid,
		view:    view,
		mode:    mode,
		typeID:  typeID,
		anchor:  anchor,
		current: anchor,
	}
	m.mu.Unlock()
	return nil
}

// ExtendDrag moves the selection corner opposite the anchor.
func (m *MarkerService) ExtendDrag(current Cell) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != phaseSelecting || m.gesture == nil {
		return attendance.ErrNoGesture
	}
	if !m.gesture.grid.Contains(current) {
		return fmt.Errorf("cell (%s, %s) is outside the grid", current.EmployeeID, validator.FormatDate(current.Date))
	}
	m.gesture.current = current
	return nil
}

// CancelDrag discards an open gesture without writing anything.
func (m *MarkerService) CancelDrag() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != phaseSelecting || m.gesture == nil {
		return attendance.ErrNoGesture
	}
	m.phase = phaseIdle
	m.gesture = nil
	return nil
}

// Mode reports the active gesture's inferred mode.
func (m *MarkerService) Mode() (Mode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gesture == nil {
		return "", attendance.ErrNoGesture
	}
	return m.gesture.mode, nil
}

// CommitDrag applies the gesture. Blocked cells (holiday, Sunday, the
// employee's own vacation) are skipped, never written. A single-cell
// gesture writes synchronously and updates the cache immediately; a
// multi-cell gesture issues all writes in chunks and replaces the
// cache in one step at the end, so the grid never shows a half-applied
// rectangle.
func (m *MarkerService) CommitDrag(ctx context.Context) (attendance.OutcomeResponse, error) {
	m.mu.Lock()
	if m.phase != phaseSelecting || m.gesture == nil {
		m.mu.Unlock()
		return attendance.OutcomeResponse{}, attendance.ErrNoGesture
	}
	m.phase = phaseCommitting
	g := m.gesture
	base := m.snapshot
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.phase = phaseIdle
		m.gesture = nil
		m.mu.Unlock()
	}()

	var outcome attendance.OutcomeResponse
	var cells []Cell
	for _, cell := range g.grid.Rectangle(g.anchor, g.current) {
		if g.view.MarkBlocked(cell.EmployeeID, cell.Date) {
			outcome.Skipped++
			continue
		}
		cells = append(cells, cell)
	}

	if len(cells) == 0 {
		return outcome, nil
	}

	if len(cells) == 1 {
		cell := cells[0]
		rec, removed, err := m.applyCell(ctx, g.mode, g.typeID, cell)
		if err != nil {
			outcome.Failed++
			outcome.Failures = append(outcome.Failures, cellFailure(cell, err))
			return outcome, nil
		}
		outcome.Succeeded++

		m.mu.Lock()
		if removed {
			m.snapshot = m.snapshot.Without(cell.EmployeeID, cell.Date)
		} else {
			m.snapshot = m.snapshot.With(rec)
		}
		m.mu.Unlock()
		return outcome, nil
	}

	results := m.applyBatch(ctx, g.mode, g.typeID, cells, &outcome)

	// Single-assignment cache replacement after every batch completed.
	next := make(attendance.Snapshot, len(base)+len(results))
	for k, v := range base {
		next[k] = v
	}
	for _, res := range results {
		if res.removed {
			delete(next, attendance.CellKey(res.cell.EmployeeID, res.cell.Date))
		} else {
			next[res.record.Key()] = res.record
		}
	}

	m.mu.Lock()
	m.snapshot = next
	m.mu.Unlock()

	slog.Info("attendance gesture committed",
		"office_id", g.grid.OfficeID,
		"mode", string(g.mode),
		"succeeded", outcome.Succeeded,
		"failed", outcome.Failed,
		"skipped", outcome.Skipped,
	)
	return outcome, nil
}

type cellResult struct {
	cell    Cell
	record  attendance.Record
	removed bool
}

// applyBatch issues writes in fixed-size chunks with a small pause
// between chunks. Each cell succeeds or fails on its own; one bad cell
// never aborts the gesture.
func (m *MarkerService) applyBatch(ctx context.Context, mode Mode, typeID string, cells []Cell, outcome *attendance.OutcomeResponse) []cellResult {
	var (
		resMu   sync.Mutex
		results []cellResult
	)

	for start := 0; start < len(cells); start += m.batchSize {
		end := start + m.batchSize
		if end > len(cells) {
			end = len(cells)
		}

		var g errgroup.Group
		for _, cell := range cells[start:end] {
			cell := cell
			g.Go(func() error {
				rec, removed, err := m.applyCell(ctx, mode, typeID, cell)
				resMu.Lock()
				defer resMu.Unlock()
				if err != nil {
					outcome.Failed++
					outcome.Failures = append(outcome.Failures, cellFailure(cell, err))
					return nil
				}
				outcome.Succeeded++
				results = append(results, cellResult{cell: cell, record: rec, removed: removed})
				return nil
			})
		}
		_ = g.Wait()

		// Pause between chunks so the store is not flooded; not a
		// correctness measure.
		if end < len(cells) && m.batchPause > 0 {
			time.Sleep(m.batchPause)
		}
	}

	return results
}

func (m *MarkerService) applyCell(ctx context.Context, mode Mode, typeID string, cell Cell) (attendance.Record, bool, error) {
	switch mode {
	case ModeUnmark:
		err := m.RecordRepository.Delete(ctx, cell.EmployeeID, cell.Date)
		if err != nil && !errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.Record{}, false, fmt.Errorf("%w: %v", attendance.ErrPersistenceFailure, err)
		}
		return attendance.Record{}, true, nil
	default:
		rec, err := m.RecordRepository.Upsert(ctx, attendance.Record{
			EmployeeID: cell.EmployeeID,
			Date:       cell.Date,
			Mark:       attendance.Mark{TypeID: typeID},
		})
		if err != nil {
			return attendance.Record{}, false, fmt.Errorf("%w: %v", attendance.ErrPersistenceFailure, err)
		}
		return rec, false, nil
	}
}

func cellFailure(cell Cell, err error) attendance.CellFailure {
	return attendance.CellFailure{
		EmployeeID: cell.EmployeeID,
		Date:       validator.FormatDate(cell.Date),
		Message:    err.Error(),
	}
}
