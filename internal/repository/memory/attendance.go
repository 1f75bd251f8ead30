package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Laredoboynvl/timecardpro-sub002/internal/domain/attendance"
	"github.com/google/uuid"
)

type RecordRepository struct {
	mu      sync.Mutex
	records map[string]attendance.Record

	// FailFor makes writes for the listed cell keys fail, for
	// partial-failure tests.
	FailFor map[string]error
}

func NewRecordRepository() *RecordRepository {
	return &RecordRepository{
		records: make(map[string]attendance.Record),
		FailFor: make(map[string]error),
	}
}

// Seed stores a record as-is.
func (r *RecordRepository) Seed(rec attendance.Record) attendance.Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[rec.Key()] = rec
	return rec
}

// Len reports the number of stored records.
func (r *RecordRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

func (r *RecordRepository) Get(ctx context.Context, employeeID string, date time.Time) (attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[attendance.CellKey(employeeID, date)]
	if !ok {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	return rec, nil
}

func (r *RecordRepository) Upsert(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := record.Key()
	if err, ok := r.FailFor[key]; ok {
		return attendance.Record{}, err
	}

	now := time.Now()
	if existing, ok := r.records[key]; ok {
		record.CreatedAt = existing.CreatedAt
	} else {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	r.records[key] = record
	return record, nil
}

func (r *RecordRepository) Delete(ctx context.Context, employeeID string, date time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := attendance.CellKey(employeeID, date)
	if err, ok := r.FailFor[key]; ok {
		return err
	}
	if _, ok := r.records[key]; !ok {
		return attendance.ErrRecordNotFound
	}
	delete(r.records, key)
	return nil
}

func (r *RecordRepository) ListByEmployeesRange(ctx context.Context, employeeIDs []string, from, to time.Time) ([]attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wanted := make(map[string]bool, len(employeeIDs))
	for _, id := range employeeIDs {
		wanted[id] = true
	}

	records := make([]attendance.Record, 0)
	for _, rec := range r.records {
		if !wanted[rec.EmployeeID] {
			continue
		}
		if rec.Date.Before(from) || rec.Date.After(to) {
			continue
		}
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].EmployeeID != records[j].EmployeeID {
			return records[i].EmployeeID < records[j].EmployeeID
		}
		return records[i].Date.Before(records[j].Date)
	})
	return records, nil
}

type TypeRepository struct {
	mu    sync.RWMutex
	types map[string]attendance.Type
}

// NewTypeRepository starts with the standard type catalog seeded.
func NewTypeRepository() *TypeRepository {
	r := &TypeRepository{types: make(map[string]attendance.Type)}
	for _, t := range []attendance.Type{
		{Code: attendance.TypeCodeRegular, Name: "Regular day", Color: "#4caf50"},
		{Code: attendance.TypeCodeOvertime, Name: "Overtime", Color: "#ff9800"},
		{Code: attendance.TypeCodeAbsence, Name: "Absence", Color: "#f44336"},
		{Code: attendance.TypeCodeUnpaid, Name: "Unpaid leave", Color: "#9e9e9e"},
		{Code: attendance.TypeCodeVacation, Name: "Vacation", Color: "#2196f3", IsSystem: true},
		{Code: attendance.TypeCodeHoliday, Name: "Public holiday", Color: "#9c27b0", IsSystem: true},
	} {
		t.ID = uuid.NewString()
		r.types[t.ID] = t
	}
	return r
}

func (r *TypeRepository) List(ctx context.Context) ([]attendance.Type, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]attendance.Type, 0, len(r.types))
	for _, t := range r.types {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i].Code < types[j].Code })
	return types, nil
}

func (r *TypeRepository) GetByID(ctx context.Context, id string) (attendance.Type, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.types[id]
	if !ok {
		return attendance.Type{}, attendance.ErrTypeNotFound
	}
	return t, nil
}

func (r *TypeRepository) GetByCode(ctx context.Context, code string) (attendance.Type, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.types {
		if t.Code == code {
			return t, nil
		}
	}
	return attendance.Type{}, attendance.ErrTypeNotFound
}

// MustID resolves a type ID by code for test setup.
func (r *TypeRepository) MustID(code string) string {
	t, err := r.GetByCode(context.Background(), code)
	if err != nil {
		panic(errors.New("unknown attendance type code " + code))
	}
	return t.ID
}
