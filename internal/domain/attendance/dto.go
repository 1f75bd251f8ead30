package attendance

import (
	"github.com/Laredoboynvl/timecardpro-sub002/internal/pkg/validator"
)

// CellRef addresses one grid cell on the wire.
type CellRef struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
}

func (c CellRef) validate(field string, errs validator.ValidationErrors) validator.ValidationErrors {
	if validator.IsEmpty(c.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: field + ".employee_id", Message: "employee ID is required"})
	}
	if _, ok := validator.ParseDate(c.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: field + ".date", Message: "date must use the YYYY-MM-DD format"})
	}
	return errs
}

type MarkCellRequest struct {
	EmployeeID string   `json:"employee_id"`
	Date       string   `json:"date"`
	TypeID     string   `json:"attendance_type_id"`
	ExtraHours *float64 `json:"hours_worked,omitempty"`
	Note       *string  `json:"note,omitempty"`
}

func (r MarkCellRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee ID is required"})
	}
	if _, ok := validator.ParseDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must use the YYYY-MM-DD format"})
	}
	if validator.IsEmpty(r.TypeID) {
		errs = append(errs, validator.ValidationError{Field: "attendance_type_id", Message: "attendance type is required"})
	}
	if r.ExtraHours != nil && (*r.ExtraHours <= 0 || *r.ExtraHours > 24) {
		errs = append(errs, validator.ValidationError{Field: "hours_worked", Message: "worked hours must be between 0 and 24"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// GestureRequest is one completed drag-select gesture: the anchor cell
// where the drag started and the cell where it was released.
type GestureRequest struct {
	OfficeID string  `json:"-"`
	Year     int     `json:"year"`
	Month    int     `json:"month"`
	Anchor   CellRef `json:"anchor"`
	Current  CellRef `json:"current"`
	TypeID   string  `json:"attendance_type_id"`
}

func (r GestureRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year is out of range"})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12"})
	}
	errs = r.Anchor.validate("anchor", errs)
	errs = r.Current.validate("current", errs)
	if validator.IsEmpty(r.TypeID) {
		errs = append(errs, validator.ValidationError{Field: "attendance_type_id", Message: "attendance type is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type FillMonthRequest struct {
	OfficeID string `json:"-"`
	Year     int    `json:"year"`
	Month    int    `json:"month"`
}

func (r FillMonthRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year is out of range"})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CellFailure names one cell whose write failed, for user-visible
// partial-failure reporting.
type CellFailure struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Message    string `json:"message"`
}

// OutcomeResponse is the aggregate result of a batch gesture. Partial
// success is expected and surfaced, not treated as fatal.
type OutcomeResponse struct {
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Skipped   int           `json:"skipped"`
	Failures  []CellFailure `json:"failures,omitempty"`
}

type RecordResponse struct {
	EmployeeID string   `json:"employee_id"`
	Date       string   `json:"attendance_date"`
	TypeID     string   `json:"attendance_type_id"`
	ExtraHours *float64 `json:"hours_worked,omitempty"`
	Note       *string  `json:"note,omitempty"`
}

func (r Record) ToResponse() RecordResponse {
	return RecordResponse{
		EmployeeID: r.EmployeeID,
		Date:       validator.FormatDate(r.Date),
		TypeID:     r.Mark.TypeID,
		ExtraHours: r.Mark.ExtraHours,
		Note:       r.Note,
	}
}

type TypeResponse struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	IsSystem bool   `json:"is_system"`
}

func (t Type) ToResponse() TypeResponse {
	return TypeResponse{
		ID:       t.ID,
		Code:     t.Code,
		Name:     t.Name,
		Color:    t.Color,
		IsSystem: t.IsSystem,
	}
}
