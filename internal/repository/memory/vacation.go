package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Laredoboynvl/timecardpro-sub002/internal/domain/vacation"
	"github.com/google/uuid"
)

type CycleRepository struct {
	mu     sync.Mutex
	cycles map[string]vacation.Cycle
}

func NewCycleRepository() *CycleRepository {
	return &CycleRepository{cycles: make(map[string]vacation.Cycle)}
}

// Seed stores a cycle as-is, assigning an ID when missing.
func (r *CycleRepository) Seed(c vacation.Cycle) vacation.Cycle {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	r.cycles[c.ID] = c
	return c
}

func (r *CycleRepository) Create(ctx context.Context, cycle vacation.Cycle) (vacation.Cycle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cycle.ID = uuid.NewString()
	now := time.Now()
	cycle.CreatedAt = now
	cycle.UpdatedAt = now
	r.cycles[cycle.ID] = cycle
	return cycle, nil
}

func (r *CycleRepository) GetByEmployee(ctx context.Context, employeeID string) ([]vacation.Cycle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cycles := make([]vacation.Cycle, 0)
	for _, c := range r.cycles {
		if c.EmployeeID == employeeID {
			cycles = append(cycles, c)
		}
	}
	sort.Slice(cycles, func(i, j int) bool {
		return cycles[i].StartDate.Before(cycles[j].StartDate)
	})
	return cycles, nil
}

func (r *CycleRepository) GetActiveByEmployee(ctx context.Context, employeeID string, asOf time.Time) ([]vacation.Cycle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cycles := make([]vacation.Cycle, 0)
	for _, c := range r.cycles {
		if c.EmployeeID != employeeID {
			continue
		}
		if c.StartDate.After(asOf) || c.EndDate.Before(asOf) {
			continue
		}
		cycles = append(cycles, c)
	}
	sort.Slice(cycles, func(i, j int) bool {
		return cycles[i].EndDate.Before(cycles[j].EndDate)
	})
	return cycles, nil
}

// ApplyDebit mirrors the SQL conditional update: it fails without
// side effects when the cycle cannot cover the days.
func (r *CycleRepository) ApplyDebit(ctx context.Context, cycleID string, days int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.cycles[cycleID]
	if !ok {
		return vacation.ErrCycleNotFound
	}
	if c.DaysAvailable < days {
		return vacation.ErrInsufficientBalance
	}
	c.DaysUsed += days
	c.DaysAvailable -= days
	c.UpdatedAt = time.Now()
	r.cycles[cycleID] = c
	return nil
}

func (r *CycleRepository) ApplyCredit(ctx context.Context, cycleID string, days int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.cycles[cycleID]
	if !ok {
		return vacation.ErrCycleNotFound
	}
	if c.DaysUsed < days {
		return vacation.ErrInsufficientBalance
	}
	c.DaysUsed -= days
	c.DaysAvailable += days
	c.UpdatedAt = time.Now()
	r.cycles[cycleID] = c
	return nil
}

type RequestRepository struct {
	mu       sync.Mutex
	requests map[string]vacation.Request
}

func NewRequestRepository() *RequestRepository {
	return &RequestRepository{requests: make(map[string]vacation.Request)}
}

// Seed stores a request as-is, assigning an ID when missing.
func (r *RequestRepository) Seed(req vacation.Request) vacation.Request {
	r.mu.Lock()
	defer r.mu.Unlock()

	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	r.requests[req.ID] = req
	return req
}

func (r *RequestRepository) Create(ctx context.Context, request vacation.Request) (vacation.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	request.ID = uuid.NewString()
	now := time.Now()
	request.CreatedAt = now
	request.UpdatedAt = now
	r.requests[request.ID] = request
	return request, nil
}

func (r *RequestRepository) GetByID(ctx context.Context, id string) (vacation.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[id]
	if !ok {
		return vacation.Request{}, vacation.ErrRequestNotFound
	}
	return req, nil
}

func (r *RequestRepository) ListByEmployee(ctx context.Context, employeeID string, year int) ([]vacation.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	requests := make([]vacation.Request, 0)
	for _, req := range r.requests {
		if req.EmployeeID != employeeID {
			continue
		}
		if req.StartDate.Year() != year && req.EndDate.Year() != year {
			continue
		}
		requests = append(requests, req)
	}
	sort.Slice(requests, func(i, j int) bool {
		return requests[j].StartDate.Before(requests[i].StartDate)
	})
	return requests, nil
}

func (r *RequestRepository) ListOpenByOfficeRange(ctx context.Context, officeID string, from, to time.Time) ([]vacation.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	requests := make([]vacation.Request, 0)
	for _, req := range r.requests {
		if req.OfficeID != officeID || !req.Open() {
			continue
		}
		if req.StartDate.After(to) || req.EndDate.Before(from) {
			continue
		}
		requests = append(requests, req)
	}
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].StartDate.Before(requests[j].StartDate)
	})
	return requests, nil
}

func (r *RequestRepository) CheckOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, req := range r.requests {
		if req.EmployeeID != employeeID || !req.Open() {
			continue
		}
		if !req.StartDate.After(end) && !req.EndDate.Before(start) {
			return true, nil
		}
	}
	return false, nil
}

func (r *RequestRepository) Update(ctx context.Context, params vacation.UpdateRequestParams) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[params.ID]
	if !ok {
		return vacation.ErrRequestNotFound
	}
	if params.Status != nil {
		req.Status = *params.Status
	}
	if params.RejectedReason != nil {
		req.RejectedReason = params.RejectedReason
	}
	if params.ApprovedBy != nil {
		req.ApprovedBy = params.ApprovedBy
	}
	if params.ApprovedAt != nil {
		req.ApprovedAt = params.ApprovedAt
	}
	if params.CancelledAt != nil {
		req.CancelledAt = params.CancelledAt
	}
	req.UpdatedAt = time.Now()
	r.requests[params.ID] = req
	return nil
}
