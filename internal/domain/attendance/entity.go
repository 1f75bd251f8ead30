package attendance

import (
	"time"
)

// Well-known type codes. Vacation and holiday marks are derived from
// the calendar rather than chosen by an operator.
const (
	TypeCodeRegular  = "REG"
	TypeCodeOvertime = "OT"
	TypeCodeAbsence  = "ABS"
	TypeCodeVacation = "VAC"
	TypeCodeHoliday  = "HOL"
	TypeCodeUnpaid   = "UNP"
)

// Type is one entry of the small closed attendance-type catalog.
type Type struct {
	ID    string
	Code  string
	Name  string
	Color string

	// IsSystem marks derived/auto-applied entries (vacation, holiday)
	// that the grid editor never writes directly.
	IsSystem bool
}

// Mark is the value carried by one attendance cell. ExtraHours is only
// meaningful for the overtime type.
type Mark struct {
	TypeID     string
	ExtraHours *float64
}

// Record is one attendance mark, at most one per (employee, date).
type Record struct {
	EmployeeID string
	Date       time.Time
	Mark       Mark
	Note       *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Key returns the record's snapshot key.
func (r Record) Key() string {
	return CellKey(r.EmployeeID, r.Date)
}

// CellKey builds the canonical (employee, date) key used by snapshots
// and the grid editor.
func CellKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

// Snapshot is an immutable view of the record cache keyed by CellKey.
// Mutating operations return a new snapshot so grid consumers can diff
// cheaply and a batch commit is a single assignment.
type Snapshot map[string]Record

// Get looks up the record for a cell.
func (s Snapshot) Get(employeeID string, date time.Time) (Record, bool) {
	rec, ok := s[CellKey(employeeID, date)]
	return rec, ok
}

// With returns a copy of the snapshot with rec upserted.
func (s Snapshot) With(rec Record) Snapshot {
	next := make(Snapshot, len(s)+1)
	for k, v := range s {
		next[k] = v
	}
	next[rec.Key()] = rec
	return next
}

// Without returns a copy of the snapshot with the cell removed.
func (s Snapshot) Without(employeeID string, date time.Time) Snapshot {
	next := make(Snapshot, len(s))
	key := CellKey(employeeID, date)
	for k, v := range s {
		if k == key {
			continue
		}
		next[k] = v
	}
	return next
}

// BuildSnapshot indexes records into a fresh snapshot.
func BuildSnapshot(records []Record) Snapshot {
	s := make(Snapshot, len(records))
	for _, rec := range records {
		s[rec.Key()] = rec
	}
	return s
}
