package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Laredoboynvl/timecardpro-sub002/internal/domain/holiday"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/handler/http/middleware"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/handler/http/response"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/pkg/validator"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/service/calendar"
)

type CalendarHandler interface {
	GetMyMonth(w http.ResponseWriter, r *http.Request)
	ListHolidays(w http.ResponseWriter, r *http.Request)
}

type CalendarHandlerImpl struct {
	resolver *calendar.Resolver
	holidays holiday.HolidayRepository
}

func NewCalendarHandler(resolver *calendar.Resolver, holidays holiday.HolidayRepository) CalendarHandler {
	return &CalendarHandlerImpl{resolver: resolver, holidays: holidays}
}

// GetMyMonth implements CalendarHandler. It renders the caller's
// day-by-day availability for the vacation picker.
func (h *CalendarHandlerImpl) GetMyMonth(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.EmployeeID(r.Context())
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}
	officeID, err := middleware.OfficeID(r.Context())
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	year, month, err := parseMonthQuery(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	view, err := h.resolver.MonthView(r.Context(), officeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, view.ClassifyRange(employeeID))
}

// ListHolidays implements CalendarHandler. Active holidays for the
// caller's office over ?from/?to, default current month.
func (h *CalendarHandlerImpl) ListHolidays(w http.ResponseWriter, r *http.Request) {
	officeID, err := middleware.OfficeID(r.Context())
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	from, to, err := parseRangeQuery(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	holidays, err := h.holidays.ListByOfficeRange(r.Context(), officeID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]holiday.HolidayResponse, 0, len(holidays))
	for i := range holidays {
		out = append(out, holidays[i].ToResponse())
	}
	response.Success(w, out)
}

// parseMonthQuery reads ?year= and ?month=, defaulting to the current
// month.
func parseMonthQuery(r *http.Request) (int, time.Month, error) {
	now := time.Now()
	year, month := now.Year(), now.Month()

	if y := r.URL.Query().Get("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil || parsed < 2000 || parsed > 2100 {
			return 0, 0, errors.New("invalid year")
		}
		year = parsed
	}
	if m := r.URL.Query().Get("month"); m != "" {
		parsed, err := strconv.Atoi(m)
		if err != nil || parsed < 1 || parsed > 12 {
			return 0, 0, errors.New("invalid month")
		}
		month = time.Month(parsed)
	}
	return year, month, nil
}

// parseRangeQuery reads ?from= and ?to= dates, defaulting to the
// current month.
func parseRangeQuery(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	if f := r.URL.Query().Get("from"); f != "" {
		parsed, ok := validator.ParseDate(f)
		if !ok {
			return time.Time{}, time.Time{}, errors.New("invalid from date")
		}
		from = parsed
	}
	if t := r.URL.Query().Get("to"); t != "" {
		parsed, ok := validator.ParseDate(t)
		if !ok {
			return time.Time{}, time.Time{}, errors.New("invalid to date")
		}
		to = parsed
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, errors.New("to date is before from date")
	}
	return from, to, nil
}
