package vacation

import (
	"context"
	"testing"
	"time"

	"github.com/Laredoboynvl/timecardpro-sub002/internal/domain/employee"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/domain/vacation"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ledgerFixture struct {
	cycles    *memory.CycleRepository
	employees *memory.EmployeeRepository
	ledger    *LedgerServiceImpl
}

func newLedgerFixture(opts ...LedgerOption) *ledgerFixture {
	cycles := memory.NewCycleRepository()
	employees := memory.NewEmployeeRepository()
	return &ledgerFixture{
		cycles:    cycles,
		employees: employees,
		ledger:    NewLedgerService(memory.NewTxRunner(), cycles, employees, opts...),
	}
}

func (f *ledgerFixture) seedCycle(employeeID string, earned, used int, endsIn time.Duration) vacation.Cycle {
	now := time.Now()
	return f.cycles.Seed(vacation.Cycle{
		EmployeeID:    employeeID,
		StartDate:     now.Add(-30 * 24 * time.Hour),
		EndDate:       now.Add(endsIn),
		DaysEarned:    earned,
		DaysUsed:      used,
		DaysAvailable: earned - used,
	})
}

func assertLedgerInvariant(t *testing.T, f *ledgerFixture, employeeID string) {
	t.Helper()
	cycles, err := f.cycles.GetByEmployee(context.Background(), employeeID)
	require.NoError(t, err)
	for _, c := range cycles {
		assert.Equal(t, c.DaysEarned, c.DaysUsed+c.DaysAvailable,
			"cycle %s: used + available must equal earned", c.ID)
		assert.GreaterOrEqual(t, c.DaysUsed, 0)
		assert.GreaterOrEqual(t, c.DaysAvailable, 0)
	}
}

func TestDebitDrainsSoonestExpiryFirst(t *testing.T) {
	t.Parallel()
	f := newLedgerFixture()
	ctx := context.Background()

	soon := f.seedCycle("emp-1", 15, 12, 30*24*time.Hour) // 3 left, expires first
	late := f.seedCycle("emp-1", 12, 0, 180*24*time.Hour) // 12 left

	err := f.ledger.Debit(ctx, "emp-1", 8)
	require.NoError(t, err)

	cycles, err := f.cycles.GetByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	byID := map[string]vacation.Cycle{}
	for _, c := range cycles {
		byID[c.ID] = c
	}

	assert.Equal(t, 0, byID[soon.ID].DaysAvailable, "soonest-expiring cycle drained first")
	assert.Equal(t, 15, byID[soon.ID].DaysUsed)
	assert.Equal(t, 7, byID[late.ID].DaysAvailable, "remainder comes from the later cycle")
	assert.Equal(t, 5, byID[late.ID].DaysUsed)
	assertLedgerInvariant(t, f, "emp-1")

	total, err := f.ledger.AvailableDays(ctx, "emp-1", time.Now())
	require.NoError(t, err)
	assert.Equal(t, 7, total)
}

func TestDebitInsufficientBalanceLeavesLedgerUntouched(t *testing.T) {
	t.Parallel()
	f := newLedgerFixture()
	ctx := context.Background()

	f.seedCycle("emp-1", 15, 12, 30*24*time.Hour)
	f.seedCycle("emp-1", 12, 10, 180*24*time.Hour)

	err := f.ledger.Debit(ctx, "emp-1", 8)
	require.ErrorIs(t, err, vacation.ErrInsufficientBalance)

	total, err := f.ledger.AvailableDays(ctx, "emp-1", time.Now())
	require.NoError(t, err)
	assert.Equal(t, 5, total, "failed debit must not change any cycle")
	assertLedgerInvariant(t, f, "emp-1")
}

func TestDebitIgnoresExpiredCycles(t *testing.T) {
	t.Parallel()
	f := newLedgerFixture()
	ctx := context.Background()

	f.seedCycle("emp-1", 15, 0, -24*time.Hour) // expired, 15 stranded
	f.seedCycle("emp-1", 10, 0, 90*24*time.Hour)

	err := f.ledger.Debit(ctx, "emp-1", 12)
	require.ErrorIs(t, err, vacation.ErrInsufficientBalance)

	require.NoError(t, f.ledger.Debit(ctx, "emp-1", 10))
	assertLedgerInvariant(t, f, "emp-1")
}

func TestDebitCustomAllocationOrder(t *testing.T) {
	t.Parallel()
	f := newLedgerFixture(WithAllocationOrder(vacation.LatestExpiryFirst))
	ctx := context.Background()

	soon := f.seedCycle("emp-1", 5, 0, 30*24*time.Hour)
	late := f.seedCycle("emp-1", 5, 0, 180*24*time.Hour)

	require.NoError(t, f.ledger.Debit(ctx, "emp-1", 3))

	cycles, err := f.cycles.GetByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	for _, c := range cycles {
		switch c.ID {
		case late.ID:
			assert.Equal(t, 2, c.DaysAvailable, "injected order drains latest expiry first")
		case soon.ID:
			assert.Equal(t, 5, c.DaysAvailable)
		}
	}
}

func TestCreditRestoresLatestExpiryFirst(t *testing.T) {
	t.Parallel()
	f := newLedgerFixture()
	ctx := context.Background()

	soon := f.seedCycle("emp-1", 10, 4, 30*24*time.Hour)
	late := f.seedCycle("emp-1", 10, 6, 180*24*time.Hour)

	require.NoError(t, f.ledger.Credit(ctx, "emp-1", 8))

	cycles, err := f.cycles.GetByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	for _, c := range cycles {
		switch c.ID {
		case late.ID:
			assert.Equal(t, 0, c.DaysUsed, "credit lands on the cycle with most life left")
		case soon.ID:
			assert.Equal(t, 2, c.DaysUsed)
		}
	}
	assertLedgerInvariant(t, f, "emp-1")
}

func TestCreditWithoutMatchingDebitsFails(t *testing.T) {
	t.Parallel()
	f := newLedgerFixture()
	ctx := context.Background()

	f.seedCycle("emp-1", 10, 2, 90*24*time.Hour)

	err := f.ledger.Credit(ctx, "emp-1", 5)
	require.Error(t, err)
}

func TestAvailableDaysDistinguishesMissingFromExhausted(t *testing.T) {
	t.Parallel()
	f := newLedgerFixture()
	ctx := context.Background()

	_, err := f.ledger.AvailableDays(ctx, "emp-none", time.Now())
	require.ErrorIs(t, err, vacation.ErrCycleNotFound)

	f.seedCycle("emp-1", 15, 0, -24*time.Hour)
	total, err := f.ledger.AvailableDays(ctx, "emp-1", time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, total, "all-expired ledger is valid with zero to spend")
}

func TestBalanceIncludesExpiredCycleHistory(t *testing.T) {
	t.Parallel()
	f := newLedgerFixture()
	ctx := context.Background()

	f.seedCycle("emp-1", 15, 15, -24*time.Hour)
	f.seedCycle("emp-1", 20, 3, 120*24*time.Hour)

	balance, err := f.ledger.Balance(ctx, "emp-1", time.Now())
	require.NoError(t, err)
	assert.Equal(t, 17, balance.AvailableDays)
	assert.Len(t, balance.Cycles, 2)
}

func TestEnsureCycleTenureLadder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		yearsAgo   int
		wantEarned int
	}{
		{"junior", 2, 15},
		{"mid tenure", 6, 20},
		{"long tenure", 11, 25},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newLedgerFixture()
			ctx := context.Background()

			hire := time.Now().AddDate(-tt.yearsAgo, 0, -10)
			emp := f.employees.Seed(employee.Employee{OfficeID: "office-1", FullName: "Test", HireDate: hire})

			cycle, err := f.ledger.EnsureCycle(ctx, emp.ID, time.Now())
			require.NoError(t, err)
			assert.Equal(t, tt.wantEarned, cycle.DaysEarned)
			assert.Equal(t, tt.wantEarned, cycle.DaysAvailable)
			assert.Equal(t, tt.yearsAgo, cycle.YearsOfService)
			assert.True(t, cycle.StartDate.Equal(hire.AddDate(tt.yearsAgo, 0, 0)))
			assert.True(t, cycle.EndDate.Equal(cycle.StartDate.AddDate(1, 3, -1)),
				"cycle carries the grace months past the next anniversary")
		})
	}
}

func TestEnsureCycleIsIdempotent(t *testing.T) {
	t.Parallel()
	f := newLedgerFixture()
	ctx := context.Background()

	hire := time.Now().AddDate(-3, 0, -10)
	emp := f.employees.Seed(employee.Employee{OfficeID: "office-1", FullName: "Test", HireDate: hire})

	first, err := f.ledger.EnsureCycle(ctx, emp.ID, time.Now())
	require.NoError(t, err)
	second, err := f.ledger.EnsureCycle(ctx, emp.ID, time.Now())
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "repeated provisioning returns the existing cycle")

	cycles, err := f.cycles.GetByEmployee(ctx, emp.ID)
	require.NoError(t, err)
	assert.Len(t, cycles, 1)
}
