package vacation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Laredoboynvl/timecardpro-sub002/internal/domain/employee"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/domain/vacation"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/pkg/validator"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/service/calendar"
)

type RequestServiceImpl struct {
	tx vacation.TxRunner
	vacation.RequestRepository
	employee.EmployeeRepository
	ledger   vacation.LedgerService
	resolver *calendar.Resolver
}

func NewRequestService(tx vacation.TxRunner, requestRepository vacation.RequestRepository, employeeRepository employee.EmployeeRepository, ledger vacation.LedgerService, resolver *calendar.Resolver) *RequestServiceImpl {
	return &RequestServiceImpl{
		tx:                 tx,
		RequestRepository:  requestRepository,
		EmployeeRepository: employeeRepository,
		ledger:             ledger,
		resolver:           resolver,
	}
}

// Create implements vacation.RequestService. The selected day set may
// be non-contiguous; it collapses to the min/max range while
// days_requested keeps the true selected-day count. No ledger effect:
// a pending request has never debited anything.
func (r *RequestServiceImpl) Create(ctx context.Context, req vacation.CreateRequestRequest) (vacation.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return vacation.RequestResponse{}, err
	}

	dates, ok := validator.ParseDateSet(req.Dates)
	if !ok || len(dates) == 0 {
		return vacation.RequestResponse{}, fmt.Errorf("invalid date selection: %w", vacation.ErrDateConflict)
	}

	emp, err := r.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return vacation.RequestResponse{}, fmt.Errorf("failed to get employee %s: %w", req.EmployeeID, err)
	}

	officeID := req.OfficeID
	if officeID == "" {
		officeID = emp.OfficeID
	}

	start := dates[0]
	end := dates[len(dates)-1]

	view, err := r.resolver.View(ctx, officeID, start, end)
	if err != nil {
		return vacation.RequestResponse{}, fmt.Errorf("failed to load calendar view: %w", err)
	}

	// Every selected day must be individually selectable. Other
	// employees' approved days pass on purpose; an approver resolves
	// contested days later.
	for _, d := range dates {
		if view.IsSelectable(emp.ID, d) {
			continue
		}
		return vacation.RequestResponse{}, fmt.Errorf("%s is not available for %s (%s): %w",
			validator.FormatDate(d), emp.FullName, view.Classify(emp.ID, d), vacation.ErrDateConflict)
	}

	// The collapsed range must not overlap an open request either,
	// even where no selected day falls inside the existing one.
	hasOverlap, err := r.RequestRepository.CheckOverlapping(ctx, emp.ID, start, end)
	if err != nil {
		return vacation.RequestResponse{}, fmt.Errorf("failed to check overlapping requests: %w", err)
	}
	if hasOverlap {
		return vacation.RequestResponse{}, fmt.Errorf("range %s to %s overlaps an open request for %s: %w",
			validator.FormatDate(start), validator.FormatDate(end), emp.FullName, vacation.ErrDateConflict)
	}

	request := vacation.Request{
		EmployeeID:    emp.ID,
		OfficeID:      officeID,
		StartDate:     start,
		EndDate:       end,
		DaysRequested: len(dates),
		Status:        vacation.RequestStatusPending,
		Reason:        req.Reason,
	}

	created, err := r.RequestRepository.Create(ctx, request)
	if err != nil {
		return vacation.RequestResponse{}, fmt.Errorf("failed to create vacation request: %w", err)
	}

	slog.Info("vacation request created",
		"request_id", created.ID,
		"employee_id", emp.ID,
		"days_requested", created.DaysRequested,
	)
	return created.ToResponse(time.Now()), nil
}

// Cancel implements vacation.RequestService. Only the owner may cancel
// and only while pending; nothing was ever debited, so there is no
// ledger effect.
func (r *RequestServiceImpl) Cancel(ctx context.Context, requestID string, actorID string) error {
	request, err := r.RequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return fmt.Errorf("failed to get vacation request %s: %w", requestID, err)
	}

	if request.EmployeeID != actorID {
		return fmt.Errorf("request %s: %w", requestID, vacation.ErrNotRequestOwner)
	}
	if request.Status != vacation.RequestStatusPending {
		return fmt.Errorf("request %s is %s: %w", requestID, request.Status, vacation.ErrInvalidTransition)
	}

	now := time.Now()
	status := vacation.RequestStatusCancelled
	err = r.RequestRepository.Update(ctx, vacation.UpdateRequestParams{
		ID:          request.ID,
		Status:      &status,
		CancelledAt: &now,
	})
	if err != nil {
		return fmt.Errorf("failed to cancel vacation request %s: %w", requestID, err)
	}

	slog.Info("vacation request cancelled", "request_id", requestID, "employee_id", actorID)
	return nil
}

// Approve implements vacation.RequestService. The ledger debit and the
// status flip are one logical transaction: if the debit fails with
// ErrInsufficientBalance the request stays pending untouched.
func (r *RequestServiceImpl) Approve(ctx context.Context, requestID string, approverID string) error {
	request, err := r.RequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return fmt.Errorf("failed to get vacation request %s: %w", requestID, err)
	}

	if request.Status != vacation.RequestStatusPending {
		return fmt.Errorf("request %s is %s: %w", requestID, request.Status, vacation.ErrInvalidTransition)
	}

	err = r.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := r.ledger.Debit(ctx, request.EmployeeID, request.DaysRequested); err != nil {
			return err
		}

		now := time.Now()
		status := vacation.RequestStatusApproved
		return r.RequestRepository.Update(ctx, vacation.UpdateRequestParams{
			ID:         request.ID,
			Status:     &status,
			ApprovedBy: &approverID,
			ApprovedAt: &now,
		})
	})
	if err != nil {
		return fmt.Errorf("failed to approve vacation request %s: %w", requestID, err)
	}

	slog.Info("vacation request approved",
		"request_id", requestID,
		"employee_id", request.EmployeeID,
		"approved_by", approverID,
		"days", request.DaysRequested,
	)
	return nil
}

// Reject implements vacation.RequestService. No ledger effect.
func (r *RequestServiceImpl) Reject(ctx context.Context, req vacation.RejectRequestRequest, approverID string) error {
	if err := req.Validate(); err != nil {
		return err
	}

	request, err := r.RequestRepository.GetByID(ctx, req.RequestID)
	if err != nil {
		return fmt.Errorf("failed to get vacation request %s: %w", req.RequestID, err)
	}

	if request.Status != vacation.RequestStatusPending {
		return fmt.Errorf("request %s is %s: %w", req.RequestID, request.Status, vacation.ErrInvalidTransition)
	}

	now := time.Now()
	status := vacation.RequestStatusRejected
	err = r.RequestRepository.Update(ctx, vacation.UpdateRequestParams{
		ID:             request.ID,
		Status:         &status,
		RejectedReason: &req.Reason,
		ApprovedBy:     &approverID,
		ApprovedAt:     &now,
	})
	if err != nil {
		return fmt.Errorf("failed to reject vacation request %s: %w", req.RequestID, err)
	}

	slog.Info("vacation request rejected",
		"request_id", req.RequestID,
		"employee_id", request.EmployeeID,
		"rejected_by", approverID,
	)
	return nil
}

// ListByEmployee implements vacation.RequestService.
func (r *RequestServiceImpl) ListByEmployee(ctx context.Context, employeeID string, year int) ([]vacation.RequestResponse, error) {
	requests, err := r.RequestRepository.ListByEmployee(ctx, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests for employee %s: %w", employeeID, err)
	}

	now := time.Now()
	responses := make([]vacation.RequestResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, req.ToResponse(now))
	}
	return responses, nil
}

// ListByOffice implements vacation.RequestService.
func (r *RequestServiceImpl) ListByOffice(ctx context.Context, officeID string, from, to time.Time) ([]vacation.RequestResponse, error) {
	requests, err := r.RequestRepository.ListOpenByOfficeRange(ctx, officeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests for office %s: %w", officeID, err)
	}

	now := time.Now()
	responses := make([]vacation.RequestResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, req.ToResponse(now))
	}
	return responses, nil
}
