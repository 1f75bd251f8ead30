package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/Laredoboynvl/timecardpro-sub002/internal/domain/holiday"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/domain/vacation"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/repository/memory"
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

type resolverFixture struct {
	holidays *memory.HolidayRepository
	requests *memory.RequestRepository
	resolver *Resolver
}

func newResolverFixture() *resolverFixture {
	holidays := memory.NewHolidayRepository()
	requests := memory.NewRequestRepository()
	return &resolverFixture{
		holidays: holidays,
		requests: requests,
		resolver: NewResolver(holidays, requests),
	}
}

func (f *resolverFixture) view(t *testing.T, from, to string) *View {
	t.Helper()
	view, err := f.resolver.View(context.Background(), "office-1", day(from), day(to))
	require.NoError(t, err)
	return view
}

func TestClassifyPrecedence(t *testing.T) {
	t.Parallel()
	f := newResolverFixture()

	// June 2026: the 7th is a Sunday.
	f.holidays.Seed(holiday.Holiday{
		OfficeID: "office-1", Date: day("2026-06-02"), Name: "Founders Day", IsActive: true,
	})
	// Alice has a pending request covering the holiday and the Sunday.
	f.requests.Seed(vacation.Request{
		EmployeeID: "alice", OfficeID: "office-1",
		StartDate: day("2026-06-01"), EndDate: day("2026-06-08"),
		Status: vacation.RequestStatusPending,
	})
	// Bob has approved days mid-month.
	f.requests.Seed(vacation.Request{
		EmployeeID: "bob", OfficeID: "office-1",
		StartDate: day("2026-06-15"), EndDate: day("2026-06-16"),
		Status: vacation.RequestStatusApproved,
	})

	view := f.view(t, "2026-06-01", "2026-06-30")

	t.Run("holiday beats everything", func(t *testing.T) {
		assert.Equal(t, CategoryHoliday, view.Classify("alice", day("2026-06-02")))
		assert.Equal(t, CategoryHoliday, view.Classify("bob", day("2026-06-02")))
	})

	t.Run("own pending beats the Sunday rule", func(t *testing.T) {
		assert.Equal(t, CategoryOwnPending, view.Classify("alice", day("2026-06-07")))
	})

	t.Run("sunday blocks when nothing else applies", func(t *testing.T) {
		assert.Equal(t, CategoryWeekendBlocked, view.Classify("bob", day("2026-06-07")))
	})

	t.Run("saturday is a working day", func(t *testing.T) {
		assert.Equal(t, CategoryFree, view.Classify("bob", day("2026-06-13")))
	})

	t.Run("someone else's approved day", func(t *testing.T) {
		assert.Equal(t, CategoryOthersApproved, view.Classify("alice", day("2026-06-15")))
		assert.Equal(t, CategoryOwnApproved, view.Classify("bob", day("2026-06-15")))
	})

	t.Run("plain weekday is free", func(t *testing.T) {
		assert.Equal(t, CategoryFree, view.Classify("alice", day("2026-06-22")))
	})
}

func TestInactiveHolidayIsInvisible(t *testing.T) {
	t.Parallel()
	f := newResolverFixture()

	f.holidays.Seed(holiday.Holiday{
		OfficeID: "office-1", Date: day("2026-06-03"), Name: "Retired holiday", IsActive: false,
	})

	view := f.view(t, "2026-06-01", "2026-06-30")
	assert.Equal(t, CategoryFree, view.Classify("alice", day("2026-06-03")))
}

func TestClosedRequestsDoNotOccupyDays(t *testing.T) {
	t.Parallel()
	f := newResolverFixture()

	f.requests.Seed(vacation.Request{
		EmployeeID: "alice", OfficeID: "office-1",
		StartDate: day("2026-06-01"), EndDate: day("2026-06-05"),
		Status: vacation.RequestStatusRejected,
	})
	f.requests.Seed(vacation.Request{
		EmployeeID: "alice", OfficeID: "office-1",
		StartDate: day("2026-06-08"), EndDate: day("2026-06-12"),
		Status: vacation.RequestStatusCancelled,
	})

	view := f.view(t, "2026-06-01", "2026-06-30")
	assert.Equal(t, CategoryFree, view.Classify("alice", day("2026-06-03")))
	assert.Equal(t, CategoryFree, view.Classify("alice", day("2026-06-10")))
}

func TestSelectableAndBlockedSets(t *testing.T) {
	t.Parallel()
	f := newResolverFixture()

	f.holidays.Seed(holiday.Holiday{
		OfficeID: "office-1", Date: day("2026-06-02"), Name: "Founders Day", IsActive: true,
	})
	f.requests.Seed(vacation.Request{
		EmployeeID: "alice", OfficeID: "office-1",
		StartDate: day("2026-06-10"), EndDate: day("2026-06-11"),
		Status: vacation.RequestStatusApproved,
	})
	f.requests.Seed(vacation.Request{
		EmployeeID: "bob", OfficeID: "office-1",
		StartDate: day("2026-06-15"), EndDate: day("2026-06-16"),
		Status: vacation.RequestStatusApproved,
	})

	view := f.view(t, "2026-06-01", "2026-06-30")

	// Selectable for a new request: free days and contested days only.
	assert.True(t, view.IsSelectable("alice", day("2026-06-01")))
	assert.True(t, view.IsSelectable("alice", day("2026-06-15")), "contested day stays selectable")
	assert.False(t, view.IsSelectable("alice", day("2026-06-02")), "holiday")
	assert.False(t, view.IsSelectable("alice", day("2026-06-07")), "Sunday")
	assert.False(t, view.IsSelectable("alice", day("2026-06-10")), "own approved day")

	// The attendance editor skips a different set: another employee's
	// vacation does not block marking.
	assert.True(t, view.MarkBlocked("alice", day("2026-06-02")))
	assert.True(t, view.MarkBlocked("alice", day("2026-06-07")))
	assert.True(t, view.MarkBlocked("alice", day("2026-06-10")))
	assert.False(t, view.MarkBlocked("alice", day("2026-06-15")), "bob's vacation does not block alice's cell")
	assert.False(t, view.MarkBlocked("alice", day("2026-06-01")))
}

func TestClassifyRangeRendersEveryDay(t *testing.T) {
	t.Parallel()
	f := newResolverFixture()

	f.holidays.Seed(holiday.Holiday{
		OfficeID: "office-1", Date: day("2026-06-02"), Name: "Founders Day", IsActive: true,
	})

	view := f.view(t, "2026-06-01", "2026-06-07")
	days := view.ClassifyRange("alice")

	require.Len(t, days, 7)
	assert.Equal(t, "2026-06-01", days[0].Date)
	assert.Equal(t, string(CategoryHoliday), days[1].Category)
	assert.Equal(t, "Founders Day", days[1].Holiday)
	assert.False(t, days[1].Selectable)
	assert.Equal(t, string(CategoryWeekendBlocked), days[6].Category)
}
