package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Laredoboynvl/timecardpro-sub002/internal/domain/vacation"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/handler/http/middleware"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type VacationHandler interface {
	GetMyBalance(w http.ResponseWriter, r *http.Request)
	EnsureMyCycle(w http.ResponseWriter, r *http.Request)

	CreateRequest(w http.ResponseWriter, r *http.Request)
	CancelRequest(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	ListOfficeRequests(w http.ResponseWriter, r *http.Request)
}

type VacationHandlerImpl struct {
	ledgerService  vacation.LedgerService
	requestService vacation.RequestService
}

func NewVacationHandler(ledgerService vacation.LedgerService, requestService vacation.RequestService) VacationHandler {
	return &VacationHandlerImpl{
		ledgerService:  ledgerService,
		requestService: requestService,
	}
}

// GetMyBalance implements VacationHandler.
func (h *VacationHandlerImpl) GetMyBalance(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.EmployeeID(r.Context())
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	balance, err := h.ledgerService.Balance(r.Context(), employeeID, time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balance)
}

// EnsureMyCycle implements VacationHandler.
func (h *VacationHandlerImpl) EnsureMyCycle(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.EmployeeID(r.Context())
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	cycle, err := h.ledgerService.EnsureCycle(r.Context(), employeeID, time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, cycle.ToResponse(time.Now()))
}

// CreateRequest implements VacationHandler.
func (h *VacationHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.EmployeeID(r.Context())
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req vacation.CreateRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID

	created, err := h.requestService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Vacation request created successfully", created)
}

// CancelRequest implements VacationHandler.
func (h *VacationHandlerImpl) CancelRequest(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.EmployeeID(r.Context())
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	if err := h.requestService.Cancel(r.Context(), requestID, employeeID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Vacation request cancelled successfully", nil)
}

// ApproveRequest implements VacationHandler.
func (h *VacationHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	approverID, err := middleware.EmployeeID(r.Context())
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	if err := h.requestService.Approve(r.Context(), requestID, approverID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Vacation request approved successfully", nil)
}

// RejectRequest implements VacationHandler.
func (h *VacationHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	approverID, err := middleware.EmployeeID(r.Context())
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req vacation.RejectRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RejectRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RequestID = chi.URLParam(r, "id")

	if err := h.requestService.Reject(r.Context(), req, approverID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Vacation request rejected successfully", nil)
}

// GetMyRequests implements VacationHandler.
func (h *VacationHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.EmployeeID(r.Context())
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	year := time.Now().Year()
	if y := r.URL.Query().Get("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			response.BadRequest(w, "Invalid year", nil)
			return
		}
		year = parsed
	}

	requests, err := h.requestService.ListByEmployee(r.Context(), employeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// ListOfficeRequests implements VacationHandler.
func (h *VacationHandlerImpl) ListOfficeRequests(w http.ResponseWriter, r *http.Request) {
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

	requests, err := h.requestService.ListByOffice(r.Context(), officeID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}
