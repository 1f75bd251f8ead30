package vacation

import (
	"time"

	"github.com/Laredoboynvl/timecardpro-sub002/internal/pkg/validator"
)

type CreateRequestRequest struct {
	EmployeeID string   `json:"-"`
	OfficeID   string   `json:"-"`
	Dates      []string `json:"dates"`
	Reason     *string  `json:"reason,omitempty"`
}

func (r CreateRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Dates) == 0 {
		errs = append(errs, validator.ValidationError{Field: "dates", Message: "at least one date is required"})
	}
	for _, d := range r.Dates {
		if _, ok := validator.ParseDate(d); !ok {
			errs = append(errs, validator.ValidationError{Field: "dates", Message: "dates must use the YYYY-MM-DD format"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RejectRequestRequest struct {
	RequestID string `json:"request_id"`
	Reason    string `json:"reason"`
}

func (r RejectRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{Field: "request_id", Message: "request ID is required"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "a rejection reason is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RequestResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	OfficeID       string  `json:"office_id"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	DaysRequested  int     `json:"days_requested"`
	Status         string  `json:"status"`
	Reason         *string `json:"reason,omitempty"`
	RejectedReason *string `json:"rejected_reason,omitempty"`
	EmployeeName   *string `json:"employee_name,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

// ToResponse renders the request with its effective (projected) status.
func (r Request) ToResponse(asOf time.Time) RequestResponse {
	return RequestResponse{
		ID:             r.ID,
		EmployeeID:     r.EmployeeID,
		OfficeID:       r.OfficeID,
		StartDate:      validator.FormatDate(r.StartDate),
		EndDate:        validator.FormatDate(r.EndDate),
		DaysRequested:  r.DaysRequested,
		Status:         string(r.EffectiveStatus(asOf)),
		Reason:         r.Reason,
		RejectedReason: r.RejectedReason,
		EmployeeName:   r.EmployeeName,
		CreatedAt:      r.CreatedAt.Format(time.RFC3339),
	}
}

type CycleResponse struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employee_id"`
	CycleStartDate string `json:"cycle_start_date"`
	CycleEndDate   string `json:"cycle_end_date"`
	DaysEarned     int    `json:"days_earned"`
	DaysUsed       int    `json:"days_used"`
	DaysAvailable  int    `json:"days_available"`
	YearsOfService int    `json:"years_of_service"`
	IsExpired      bool   `json:"is_expired"`
}

func (c Cycle) ToResponse(asOf time.Time) CycleResponse {
	return CycleResponse{
		ID:             c.ID,
		EmployeeID:     c.EmployeeID,
		CycleStartDate: validator.FormatDate(c.StartDate),
		CycleEndDate:   validator.FormatDate(c.EndDate),
		DaysEarned:     c.DaysEarned,
		DaysUsed:       c.DaysUsed,
		DaysAvailable:  c.DaysAvailable,
		YearsOfService: c.YearsOfService,
		IsExpired:      c.Expired(asOf),
	}
}

type BalanceResponse struct {
	EmployeeID    string          `json:"employee_id"`
	AvailableDays int             `json:"available_days"`
	Cycles        []CycleResponse `json:"cycles"`
}
