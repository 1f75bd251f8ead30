package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Laredoboynvl/timecardpro-sub002/internal/domain/attendance"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/domain/employee"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/domain/holiday"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/domain/vacation"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/repository/memory"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/service/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

type markerFixture struct {
	employees *memory.EmployeeRepository
	holidays  *memory.HolidayRepository
	requests  *memory.RequestRepository
	records   *memory.RecordRepository
	types     *memory.TypeRepository
	marker    *MarkerService
}

// newMarkerFixture wires a marker over in-memory stores with no pause
// between chunks so tests stay fast.
func newMarkerFixture(batchSize int) *markerFixture {
	employees := memory.NewEmployeeRepository()
	holidays := memory.NewHolidayRepository()
	requests := memory.NewRequestRepository()
	records := memory.NewRecordRepository()
	types := memory.NewTypeRepository()

	resolver := calendar.NewResolver(holidays, requests)
	return &markerFixture{
		employees: employees,
		holidays:  holidays,
		requests:  requests,
		records:   records,
		types:     types,
		marker:    NewMarkerService(records, types, employees, resolver, batchSize, 0),
	}
}

// seedRoster creates employees whose names fix the grid row order.
func (f *markerFixture) seedRoster(names ...string) []employee.Employee {
	roster := make([]employee.Employee, 0, len(names))
	for _, name := range names {
		roster = append(roster, f.employees.Seed(employee.Employee{
			OfficeID: "office-1",
			FullName: name,
			HireDate: day("2020-01-15"),
		}))
	}
	return roster
}

func TestGestureMarksRectangle(t *testing.T) {
	t.Parallel()
	f := newMarkerFixture(15)
	ctx := context.Background()
	roster := f.seedRoster("Alice", "Bob", "Carol", "Dave", "Erin", "Frank")
	absID := f.types.MustID(attendance.TypeCodeAbsence)

	// Carol is on approved vacation on June 2; her cell must be skipped.
	f.requests.Seed(vacation.Request{
		EmployeeID: roster[2].ID, OfficeID: "office-1",
		StartDate: day("2026-06-02"), EndDate: day("2026-06-02"),
		Status: vacation.RequestStatusApproved,
	})

	// Drag from (Bob, Jun 3) down-left to (Erin, Jun 1): rows 1..4,
	// days 1..3, direction must not matter.
	anchor := Cell{EmployeeID: roster[1].ID, Date: day("2026-06-03")}
	release := Cell{EmployeeID: roster[4].ID, Date: day("2026-06-01")}

	require.NoError(t, f.marker.StartDrag(ctx, "office-1", 2026, time.June, anchor, absID))

	mode, err := f.marker.Mode()
	require.NoError(t, err)
	assert.Equal(t, ModeMark, mode, "empty anchor cell means mark mode")

	require.NoError(t, f.marker.ExtendDrag(release))

	outcome, err := f.marker.CommitDrag(ctx)
	require.NoError(t, err)

	assert.Equal(t, 11, outcome.Succeeded, "4 rows x 3 days minus the vacation cell")
	assert.Equal(t, 1, outcome.Skipped)
	assert.Equal(t, 0, outcome.Failed)
	assert.Equal(t, 11, f.records.Len())

	// Alice and Frank sit outside the rectangle.
	_, err = f.records.Get(ctx, roster[0].ID, day("2026-06-02"))
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
	_, err = f.records.Get(ctx, roster[5].ID, day("2026-06-02"))
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)

	// The skipped vacation cell stays empty.
	_, err = f.records.Get(ctx, roster[2].ID, day("2026-06-02"))
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)

	rec, err := f.records.Get(ctx, roster[2].ID, day("2026-06-01"))
	require.NoError(t, err)
	assert.Equal(t, absID, rec.Mark.TypeID)

	// The cache was replaced with the committed state.
	snap := f.marker.Snapshot()
	_, ok := snap.Get(roster[4].ID, day("2026-06-03"))
	assert.True(t, ok)
}

func TestGestureUnmarkModeInferredFromAnchor(t *testing.T) {
	t.Parallel()
	f := newMarkerFixture(15)
	ctx := context.Background()
	roster := f.seedRoster("Alice", "Bob")
	absID := f.types.MustID(attendance.TypeCodeAbsence)

	f.records.Seed(attendance.Record{
		EmployeeID: roster[0].ID, Date: day("2026-06-01"),
		Mark: attendance.Mark{TypeID: absID},
	})
	f.records.Seed(attendance.Record{
		EmployeeID: roster[1].ID, Date: day("2026-06-02"),
		Mark: attendance.Mark{TypeID: absID},
	})

	anchor := Cell{EmployeeID: roster[0].ID, Date: day("2026-06-01")}
	release := Cell{EmployeeID: roster[1].ID, Date: day("2026-06-03")}

	require.NoError(t, f.marker.StartDrag(ctx, "office-1", 2026, time.June, anchor, absID))

	mode, err := f.marker.Mode()
	require.NoError(t, err)
	assert.Equal(t, ModeUnmark, mode, "anchor already carrying the type flips the gesture")

	require.NoError(t, f.marker.ExtendDrag(release))

	outcome, err := f.marker.CommitDrag(ctx)
	require.NoError(t, err)

	// 2 rows x 3 days; clearing already-empty cells counts as success.
	assert.Equal(t, 6, outcome.Succeeded)
	assert.Equal(t, 0, outcome.Failed)
	assert.Equal(t, 0, f.records.Len())
}

func TestGestureModeFixedAtAnchorNotPerCell(t *testing.T) {
	t.Parallel()
	f := newMarkerFixture(15)
	ctx := context.Background()
	roster := f.seedRoster("Alice")
	absID := f.types.MustID(attendance.TypeCodeAbsence)
	otID := f.types.MustID(attendance.TypeCodeOvertime)

	// Jun 2 already carries a different type; a mark gesture overwrites
	// it rather than toggling it off.
	f.records.Seed(attendance.Record{
		EmployeeID: roster[0].ID, Date: day("2026-06-02"),
		Mark: attendance.Mark{TypeID: otID},
	})

	anchor := Cell{EmployeeID: roster[0].ID, Date: day("2026-06-01")}
	release := Cell{EmployeeID: roster[0].ID, Date: day("2026-06-03")}

	require.NoError(t, f.marker.StartDrag(ctx, "office-1", 2026, time.June, anchor, absID))
	require.NoError(t, f.marker.ExtendDrag(release))

	outcome, err := f.marker.CommitDrag(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, outcome.Succeeded)

	rec, err := f.records.Get(ctx, roster[0].ID, day("2026-06-02"))
	require.NoError(t, err)
	assert.Equal(t, absID, rec.Mark.TypeID, "existing mark overwritten, not toggled")
}

func TestSingleCellGestureWritesSynchronously(t *testing.T) {
	t.Parallel()
	f := newMarkerFixture(15)
	ctx := context.Background()
	roster := f.seedRoster("Alice")
	absID := f.types.MustID(attendance.TypeCodeAbsence)

	cell := Cell{EmployeeID: roster[0].ID, Date: day("2026-06-01")}
	require.NoError(t, f.marker.StartDrag(ctx, "office-1", 2026, time.June, cell, absID))

	outcome, err := f.marker.CommitDrag(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Succeeded)

	snap := f.marker.Snapshot()
	_, ok := snap.Get(roster[0].ID, day("2026-06-01"))
	assert.True(t, ok)
}

func TestOnlyOneGestureAtATime(t *testing.T) {
	t.Parallel()
	f := newMarkerFixture(15)
	ctx := context.Background()
	roster := f.seedRoster("Alice")
	absID := f.types.MustID(attendance.TypeCodeAbsence)

	cell := Cell{EmployeeID: roster[0].ID, Date: day("2026-06-01")}
	require.NoError(t, f.marker.StartDrag(ctx, "office-1", 2026, time.June, cell, absID))

	err := f.marker.StartDrag(ctx, "office-1", 2026, time.June, cell, absID)
	require.ErrorIs(t, err, attendance.ErrGestureInFlight)

	require.NoError(t, f.marker.CancelDrag())

	// After cancelling, a new gesture may start and nothing was written.
	assert.Equal(t, 0, f.records.Len())
	require.NoError(t, f.marker.StartDrag(ctx, "office-1", 2026, time.June, cell, absID))
	_, err = f.marker.CommitDrag(ctx)
	require.NoError(t, err)
}

func TestCommitWithoutGesture(t *testing.T) {
	t.Parallel()
	f := newMarkerFixture(15)

	_, err := f.marker.CommitDrag(context.Background())
	require.ErrorIs(t, err, attendance.ErrNoGesture)

	err = f.marker.ExtendDrag(Cell{})
	require.ErrorIs(t, err, attendance.ErrNoGesture)
}

func TestGestureRejectsSystemTypes(t *testing.T) {
	t.Parallel()
	f := newMarkerFixture(15)
	ctx := context.Background()
	roster := f.seedRoster("Alice")
	vacID := f.types.MustID(attendance.TypeCodeVacation)

	cell := Cell{EmployeeID: roster[0].ID, Date: day("2026-06-01")}
	err := f.marker.StartDrag(ctx, "office-1", 2026, time.June, cell, vacID)
	require.ErrorIs(t, err, attendance.ErrTypeNotFound)

	// The failed start must not leave the machine stuck.
	require.NoError(t, f.marker.StartDrag(ctx, "office-1", 2026, time.June, cell, f.types.MustID(attendance.TypeCodeAbsence)))
}

func TestGesturePartialFailureTally(t *testing.T) {
	t.Parallel()
	f := newMarkerFixture(2)
	ctx := context.Background()
	roster := f.seedRoster("Alice", "Bob")
	absID := f.types.MustID(attendance.TypeCodeAbsence)

	// One cell's write fails; the rest of the batch still lands.
	f.records.FailFor[attendance.CellKey(roster[1].ID, day("2026-06-02"))] = errors.New("connection reset")

	anchor := Cell{EmployeeID: roster[0].ID, Date: day("2026-06-01")}
	release := Cell{EmployeeID: roster[1].ID, Date: day("2026-06-03")}

	require.NoError(t, f.marker.StartDrag(ctx, "office-1", 2026, time.June, anchor, absID))
	require.NoError(t, f.marker.ExtendDrag(release))

	outcome, err := f.marker.CommitDrag(ctx)
	require.NoError(t, err, "partial failure is reported, not returned")

	assert.Equal(t, 5, outcome.Succeeded)
	assert.Equal(t, 1, outcome.Failed)
	require.Len(t, outcome.Failures, 1)
	assert.Equal(t, roster[1].ID, outcome.Failures[0].EmployeeID)
	assert.Equal(t, "2026-06-02", outcome.Failures[0].Date)
	assert.Contains(t, outcome.Failures[0].Message, attendance.ErrPersistenceFailure.Error())

	assert.Equal(t, 5, f.records.Len())

	// The failed cell is absent from the refreshed cache too.
	snap := f.marker.Snapshot()
	_, ok := snap.Get(roster[1].ID, day("2026-06-02"))
	assert.False(t, ok)
}

func TestFillMonthRegular(t *testing.T) {
	t.Parallel()
	f := newMarkerFixture(15)
	ctx := context.Background()
	roster := f.seedRoster("Alice")
	otID := f.types.MustID(attendance.TypeCodeOvertime)

	// June 2026: 30 days, Sundays on the 7th, 14th, 21st and 28th.
	f.holidays.Seed(holiday.Holiday{
		OfficeID: "office-1", Date: day("2026-06-05"), Name: "Founders Day", IsActive: true,
	})
	hours := 2.5
	f.records.Seed(attendance.Record{
		EmployeeID: roster[0].ID, Date: day("2026-06-10"),
		Mark: attendance.Mark{TypeID: otID, ExtraHours: &hours},
	})
	f.records.Seed(attendance.Record{
		EmployeeID: roster[0].ID, Date: day("2026-06-11"),
		Mark: attendance.Mark{TypeID: otID, ExtraHours: &hours},
	})

	outcome, err := f.marker.FillMonthRegular(ctx, "office-1", 2026, time.June)
	require.NoError(t, err)

	// 30 days minus 4 Sundays, 1 holiday and 2 existing marks.
	assert.Equal(t, 23, outcome.Succeeded)
	assert.Equal(t, 7, outcome.Skipped)
	assert.Equal(t, 0, outcome.Failed)
	assert.Equal(t, 25, f.records.Len())

	// Existing overtime marks survive untouched.
	rec, err := f.records.Get(ctx, roster[0].ID, day("2026-06-10"))
	require.NoError(t, err)
	assert.Equal(t, otID, rec.Mark.TypeID)
	require.NotNil(t, rec.Mark.ExtraHours)

	// Sundays and the holiday stay empty.
	_, err = f.records.Get(ctx, roster[0].ID, day("2026-06-07"))
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
	_, err = f.records.Get(ctx, roster[0].ID, day("2026-06-05"))
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)

	regular, err := f.records.Get(ctx, roster[0].ID, day("2026-06-01"))
	require.NoError(t, err)
	regType, err := f.types.GetByCode(ctx, attendance.TypeCodeRegular)
	require.NoError(t, err)
	assert.Equal(t, regType.ID, regular.Mark.TypeID)

	// Running the fill again changes nothing.
	again, err := f.marker.FillMonthRegular(ctx, "office-1", 2026, time.June)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Succeeded)
	assert.Equal(t, 30, again.Skipped)
	assert.Equal(t, 25, f.records.Len())
}

func TestFillMonthSkipsVacationDays(t *testing.T) {
	t.Parallel()
	f := newMarkerFixture(15)
	ctx := context.Background()
	roster := f.seedRoster("Alice")

	f.requests.Seed(vacation.Request{
		EmployeeID: roster[0].ID, OfficeID: "office-1",
		StartDate: day("2026-06-01"), EndDate: day("2026-06-03"),
		Status: vacation.RequestStatusApproved,
	})

	outcome, err := f.marker.FillMonthRegular(ctx, "office-1", 2026, time.June)
	require.NoError(t, err)

	// 30 days minus 4 Sundays and 3 vacation days.
	assert.Equal(t, 23, outcome.Succeeded)
	assert.Equal(t, 7, outcome.Skipped)

	_, err = f.records.Get(ctx, roster[0].ID, day("2026-06-02"))
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}

func TestSetMarkRespectsBlockedCells(t *testing.T) {
	t.Parallel()
	f := newMarkerFixture(15)
	ctx := context.Background()
	roster := f.seedRoster("Alice")
	otID := f.types.MustID(attendance.TypeCodeOvertime)

	hours := 3.0
	rec, err := f.marker.SetMark(ctx, attendance.MarkCellRequest{
		EmployeeID: roster[0].ID,
		Date:       "2026-06-01",
		TypeID:     otID,
		ExtraHours: &hours,
	})
	require.NoError(t, err)
	assert.Equal(t, otID, rec.TypeID)
	require.NotNil(t, rec.ExtraHours)
	assert.Equal(t, 3.0, *rec.ExtraHours)

	// Sunday is blocked even on the single-cell path.
	_, err = f.marker.SetMark(ctx, attendance.MarkCellRequest{
		EmployeeID: roster[0].ID,
		Date:       "2026-06-07",
		TypeID:     otID,
	})
	require.Error(t, err)
}

func TestClearMarkIsIdempotent(t *testing.T) {
	t.Parallel()
	f := newMarkerFixture(15)
	ctx := context.Background()
	roster := f.seedRoster("Alice")
	absID := f.types.MustID(attendance.TypeCodeAbsence)

	f.records.Seed(attendance.Record{
		EmployeeID: roster[0].ID, Date: day("2026-06-01"),
		Mark: attendance.Mark{TypeID: absID},
	})

	require.NoError(t, f.marker.ClearMark(ctx, roster[0].ID, "2026-06-01"))
	assert.Equal(t, 0, f.records.Len())

	require.NoError(t, f.marker.ClearMark(ctx, roster[0].ID, "2026-06-01"),
		"clearing an empty cell is a no-op")
}

func TestLoadGridRendersRosterRows(t *testing.T) {
	t.Parallel()
	f := newMarkerFixture(15)
	ctx := context.Background()
	roster := f.seedRoster("Bob", "Alice")
	absID := f.types.MustID(attendance.TypeCodeAbsence)

	f.records.Seed(attendance.Record{
		EmployeeID: roster[0].ID, Date: day("2026-06-01"),
		Mark: attendance.Mark{TypeID: absID},
	})

	grid, err := f.marker.LoadGrid(ctx, "office-1", 2026, time.June)
	require.NoError(t, err)

	require.Len(t, grid.Rows, 2)
	assert.Equal(t, "Alice", grid.Rows[0].EmployeeName, "rows sorted by name")
	assert.Equal(t, "Bob", grid.Rows[1].EmployeeName)
	require.Len(t, grid.Days, 30)
	assert.Equal(t, "2026-06-01", grid.Days[0])

	require.NotNil(t, grid.Rows[1].Cells[0], "Bob's mark shows in the first column")
	assert.Equal(t, absID, grid.Rows[1].Cells[0].TypeID)
	assert.Nil(t, grid.Rows[0].Cells[0])
}

func TestRectangleIsDirectionAgnostic(t *testing.T) {
	t.Parallel()

	grid := NewGrid("office-1", 2026, time.June, []string{"e1", "e2", "e3"})
	a := Cell{EmployeeID: "e1", Date: day("2026-06-01")}
	b := Cell{EmployeeID: "e3", Date: day("2026-06-04")}

	forward := grid.Rectangle(a, b)
	backward := grid.Rectangle(b, a)

	assert.Len(t, forward, 12)
	assert.Equal(t, forward, backward)
}
