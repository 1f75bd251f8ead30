package vacation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Laredoboynvl/timecardpro-sub002/internal/domain/employee"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/domain/vacation"
)

// cycleGraceMonths extends each service-year cycle past the next
// anniversary before its days lapse.
const cycleGraceMonths = 3

type LedgerServiceImpl struct {
	tx vacation.TxRunner
	vacation.CycleRepository
	employee.EmployeeRepository

	allocate    vacation.AllocationOrder
	creditOrder vacation.AllocationOrder
	entitlement vacation.EntitlementTable
}

// LedgerOption customizes ledger policy.
type LedgerOption func(*LedgerServiceImpl)

// WithAllocationOrder overrides the order cycles are drained on debit.
// Credits always use the reverse notion: latest expiry first.
func WithAllocationOrder(order vacation.AllocationOrder) LedgerOption {
	return func(l *LedgerServiceImpl) { l.allocate = order }
}

// WithEntitlementTable overrides the tenure-to-days ladder used when
// provisioning cycles.
func WithEntitlementTable(table vacation.EntitlementTable) LedgerOption {
	return func(l *LedgerServiceImpl) { l.entitlement = table }
}

func NewLedgerService(tx vacation.TxRunner, cycleRepository vacation.CycleRepository, employeeRepository employee.EmployeeRepository, opts ...LedgerOption) *LedgerServiceImpl {
	l := &LedgerServiceImpl{
		tx:                 tx,
		CycleRepository:    cycleRepository,
		EmployeeRepository: employeeRepository,
		allocate:           vacation.SoonestExpiryFirst,
		creditOrder:        vacation.LatestExpiryFirst,
		entitlement:        vacation.DefaultEntitlement,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// AvailableDays implements vacation.LedgerService.
func (l *LedgerServiceImpl) AvailableDays(ctx context.Context, employeeID string, asOf time.Time) (int, error) {
	active, err := l.CycleRepository.GetActiveByEmployee(ctx, employeeID, asOf)
	if err != nil {
		return 0, fmt.Errorf("failed to get active cycles for employee %s: %w", employeeID, err)
	}

	if len(active) == 0 {
		all, err := l.CycleRepository.GetByEmployee(ctx, employeeID)
		if err != nil {
			return 0, fmt.Errorf("failed to get cycles for employee %s: %w", employeeID, err)
		}
		if len(all) == 0 {
			return 0, fmt.Errorf("employee %s: %w", employeeID, vacation.ErrCycleNotFound)
		}
		// Every cycle expired: a valid ledger with nothing left to spend.
		return 0, nil
	}

	total := 0
	for _, c := range active {
		total += c.DaysAvailable
	}
	return total, nil
}

// Balance implements vacation.LedgerService.
func (l *LedgerServiceImpl) Balance(ctx context.Context, employeeID string, asOf time.Time) (vacation.BalanceResponse, error) {
	cycles, err := l.CycleRepository.GetByEmployee(ctx, employeeID)
	if err != nil {
		return vacation.BalanceResponse{}, fmt.Errorf("failed to get cycles for employee %s: %w", employeeID, err)
	}
	if len(cycles) == 0 {
		return vacation.BalanceResponse{}, fmt.Errorf("employee %s: %w", employeeID, vacation.ErrCycleNotFound)
	}

	resp := vacation.BalanceResponse{EmployeeID: employeeID}
	for _, c := range cycles {
		if !c.Expired(asOf) {
			resp.AvailableDays += c.DaysAvailable
		}
		resp.Cycles = append(resp.Cycles, c.ToResponse(asOf))
	}
	return resp, nil
}

// Debit implements vacation.LedgerService. The whole debit commits or
// rolls back as one unit: a partial spread across cycles never leaks.
func (l *LedgerServiceImpl) Debit(ctx context.Context, employeeID string, count int) error {
	if count <= 0 {
		return fmt.Errorf("debit count must be positive, got %d", count)
	}

	return l.tx.RunInTx(ctx, func(ctx context.Context) error {
		cycles, err := l.CycleRepository.GetActiveByEmployee(ctx, employeeID, time.Now())
		if err != nil {
			return fmt.Errorf("failed to get active cycles for employee %s: %w", employeeID, err)
		}
		if len(cycles) == 0 {
			return fmt.Errorf("employee %s: %w", employeeID, vacation.ErrCycleNotFound)
		}

		total := 0
		for _, c := range cycles {
			total += c.DaysAvailable
		}
		if total < count {
			return fmt.Errorf("employee %s has %d days available, requested %d: %w",
				employeeID, total, count, vacation.ErrInsufficientBalance)
		}

		l.allocate(cycles)

		remaining := count
		for _, c := range cycles {
			if remaining == 0 {
				break
			}
			take := c.DaysAvailable
			if take == 0 {
				continue
			}
			if take > remaining {
				take = remaining
			}
			// The conditional write is the serialization point against
			// concurrent approvals; a lost race surfaces here and
			// aborts the transaction.
			if err := l.CycleRepository.ApplyDebit(ctx, c.ID, take); err != nil {
				return fmt.Errorf("failed to debit %d days from cycle %s: %w", take, c.ID, err)
			}
			remaining -= take
		}

		slog.Info("vacation ledger debit",
			"employee_id", employeeID,
			"days", count,
		)
		return nil
	})
}

// Credit implements vacation.LedgerService.
func (l *LedgerServiceImpl) Credit(ctx context.Context, employeeID string, count int) error {
	if count <= 0 {
		return fmt.Errorf("credit count must be positive, got %d", count)
	}

	return l.tx.RunInTx(ctx, func(ctx context.Context) error {
		cycles, err := l.CycleRepository.GetActiveByEmployee(ctx, employeeID, time.Now())
		if err != nil {
			return fmt.Errorf("failed to get active cycles for employee %s: %w", employeeID, err)
		}

		l.creditOrder(cycles)

		remaining := count
		for _, c := range cycles {
			if remaining == 0 {
				break
			}
			give := c.DaysUsed
			if give == 0 {
				continue
			}
			if give > remaining {
				give = remaining
			}
			if err := l.CycleRepository.ApplyCredit(ctx, c.ID, give); err != nil {
				return fmt.Errorf("failed to credit %d days to cycle %s: %w", give, c.ID, err)
			}
			remaining -= give
		}

		if remaining > 0 {
			return fmt.Errorf("could not restore %d of %d days for employee %s: no matching debits", remaining, count, employeeID)
		}

		slog.Info("vacation ledger credit",
			"employee_id", employeeID,
			"days", count,
		)
		return nil
	})
}

// EnsureCycle implements vacation.LedgerService. Cycles run from one
// hire-date anniversary to the next plus a grace period, with earned
// days from the tenure ladder.
func (l *LedgerServiceImpl) EnsureCycle(ctx context.Context, employeeID string, asOf time.Time) (vacation.Cycle, error) {
	emp, err := l.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return vacation.Cycle{}, fmt.Errorf("failed to get employee %s: %w", employeeID, err)
	}

	years := emp.YearsOfService(asOf)
	start := emp.HireDate.AddDate(years, 0, 0)
	end := start.AddDate(1, cycleGraceMonths, -1)

	existing, err := l.CycleRepository.GetByEmployee(ctx, employeeID)
	if err != nil {
		return vacation.Cycle{}, fmt.Errorf("failed to get cycles for employee %s: %w", employeeID, err)
	}
	for _, c := range existing {
		if c.StartDate.Equal(start) {
			return c, nil
		}
	}

	earned := l.entitlement(years)
	cycle := vacation.Cycle{
		EmployeeID:     employeeID,
		StartDate:      start,
		EndDate:        end,
		DaysEarned:     earned,
		DaysUsed:       0,
		DaysAvailable:  earned,
		YearsOfService: years,
	}

	created, err := l.CycleRepository.Create(ctx, cycle)
	if err != nil {
		return vacation.Cycle{}, fmt.Errorf("failed to create cycle for employee %s: %w", employeeID, err)
	}

	slog.Info("vacation cycle provisioned",
		"employee_id", employeeID,
		"years_of_service", years,
		"days_earned", earned,
	)
	return created, nil
}
