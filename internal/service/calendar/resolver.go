package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/Laredoboynvl/timecardpro-sub002/internal/domain/holiday"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/domain/vacation"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/pkg/validator"
)

// Category classifies one (employee, date) calendar cell.
type Category string

const (
	CategoryHoliday        Category = "holiday"
	CategoryOwnPending     Category = "own_pending"
	CategoryOwnApproved    Category = "own_approved"
	CategoryWeekendBlocked Category = "weekend_blocked"
	CategoryOthersApproved Category = "others_approved"
	CategoryFree           Category = "free"
)

// Resolver loads calendar views. Classification itself is pure; all
// I/O happens up front in View so grid rendering and request
// validation never touch the store per cell.
type Resolver struct {
	holiday.HolidayRepository
	vacation.RequestRepository
}

func NewResolver(holidayRepository holiday.HolidayRepository, requestRepository vacation.RequestRepository) *Resolver {
	return &Resolver{
		HolidayRepository: holidayRepository,
		RequestRepository: requestRepository,
	}
}

// View snapshots everything needed to classify any cell of an office's
// calendar in [from, to]: active holidays plus every open (pending or
// approved) request intersecting the range.
type View struct {
	From, To time.Time

	holidays map[string]holiday.Holiday
	requests []vacation.Request
}

func (r *Resolver) View(ctx context.Context, officeID string, from, to time.Time) (*View, error) {
	holidays, err := r.HolidayRepository.ListByOfficeRange(ctx, officeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load holidays for office %s: %w", officeID, err)
	}

	requests, err := r.RequestRepository.ListOpenByOfficeRange(ctx, officeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load open requests for office %s: %w", officeID, err)
	}

	view := &View{
		From:     from,
		To:       to,
		holidays: make(map[string]holiday.Holiday, len(holidays)),
		requests: requests,
	}
	for _, h := range holidays {
		view.holidays[validator.FormatDate(h.Date)] = h
	}
	return view, nil
}

// MonthView is a convenience wrapper for the grid's month range.
func (r *Resolver) MonthView(ctx context.Context, officeID string, year int, month time.Month) (*View, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	return r.View(ctx, officeID, from, to)
}

// Classify resolves the category of one cell. Precedence: holiday is
// an absolute block, then the employee's own pending range, then their
// own approved range, then Sunday (the only blocked weekday; Saturday
// works), then another employee's approved range, else free.
func (v *View) Classify(employeeID string, date time.Time) Category {
	if _, ok := v.holidays[validator.FormatDate(date)]; ok {
		return CategoryHoliday
	}

	var othersApproved bool
	for _, req := range v.requests {
		if !req.Covers(date) {
			continue
		}
		if req.EmployeeID == employeeID {
			switch req.Status {
			case vacation.RequestStatusPending:
				return CategoryOwnPending
			case vacation.RequestStatusApproved:
				return CategoryOwnApproved
			}
			continue
		}
		if req.Status == vacation.RequestStatusApproved {
			othersApproved = true
		}
	}

	if date.Weekday() == time.Sunday {
		return CategoryWeekendBlocked
	}
	if othersApproved {
		return CategoryOthersApproved
	}
	return CategoryFree
}

// IsSelectable reports whether the employee may pick the date for a new
// request. Another employee's approved day stays selectable on purpose:
// one day may be contested by several pending requests until an
// approver resolves the conflict.
func (v *View) IsSelectable(employeeID string, date time.Time) bool {
	switch v.Classify(employeeID, date) {
	case CategoryFree, CategoryOthersApproved:
		return true
	}
	return false
}

// MarkBlocked reports whether the attendance editor must skip the cell:
// holidays, Sundays, and days covered by the employee's own pending or
// approved vacation are never written.
func (v *View) MarkBlocked(employeeID string, date time.Time) bool {
	switch v.Classify(employeeID, date) {
	case CategoryHoliday, CategoryWeekendBlocked, CategoryOwnPending, CategoryOwnApproved:
		return true
	}
	return false
}

// HolidayName returns the holiday name for a date, if any.
func (v *View) HolidayName(date time.Time) (string, bool) {
	h, ok := v.holidays[validator.FormatDate(date)]
	if !ok {
		return "", false
	}
	return h.Name, true
}

// DayClassification is the per-day payload the calendar UI renders.
type DayClassification struct {
	Date       string `json:"date"`
	Category   string `json:"category"`
	Selectable bool   `json:"selectable"`
	Holiday    string `json:"holiday,omitempty"`
}

// ClassifyRange renders the employee's day-by-day classification over
// the view's full range.
func (v *View) ClassifyRange(employeeID string) []DayClassification {
	var days []DayClassification
	for d := v.From; !d.After(v.To); d = d.AddDate(0, 0, 1) {
		dc := DayClassification{
			Date:       validator.FormatDate(d),
			Category:   string(v.Classify(employeeID, d)),
			Selectable: v.IsSelectable(employeeID, d),
		}
		if name, ok := v.HolidayName(d); ok {
			dc.Holiday = name
		}
		days = append(days, dc)
	}
	return days
}
