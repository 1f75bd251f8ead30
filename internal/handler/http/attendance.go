package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/Laredoboynvl/timecardpro-sub002/internal/domain/attendance"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/handler/http/middleware"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/handler/http/response"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/pkg/validator"
	attendanceService "github.com/Laredoboynvl/timecardpro-sub002/internal/service/attendance"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	GetGrid(w http.ResponseWriter, r *http.Request)
	ListTypes(w http.ResponseWriter, r *http.Request)

	ApplyGesture(w http.ResponseWriter, r *http.Request)
	FillMonth(w http.ResponseWriter, r *http.Request)
	MarkCell(w http.ResponseWriter, r *http.Request)
	ClearCell(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	marker *attendanceService.MarkerService
}

func NewAttendanceHandler(marker *attendanceService.MarkerService) AttendanceHandler {
	return &AttendanceHandlerImpl{marker: marker}
}

// GetGrid implements AttendanceHandler.
func (h *AttendanceHandlerImpl) GetGrid(w http.ResponseWriter, r *http.Request) {
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

	grid, err := h.marker.LoadGrid(r.Context(), officeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, grid)
}

// ListTypes implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.marker.ListTypes(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, types)
}

// ApplyGesture implements AttendanceHandler. The UI tracks the drag
// locally and submits the finished gesture as anchor plus release
// cell; the server replays it through the same state machine.
func (h *AttendanceHandlerImpl) ApplyGesture(w http.ResponseWriter, r *http.Request) {
	officeID, err := middleware.OfficeID(r.Context())
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req attendance.GestureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ApplyGesture decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.OfficeID = officeID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	anchorDate, _ := validator.ParseDate(req.Anchor.Date)
	currentDate, _ := validator.ParseDate(req.Current.Date)
	anchor := attendanceService.Cell{EmployeeID: req.Anchor.EmployeeID, Date: anchorDate}
	current := attendanceService.Cell{EmployeeID: req.Current.EmployeeID, Date: currentDate}

	ctx := r.Context()
	if err := h.marker.StartDrag(ctx, officeID, req.Year, time.Month(req.Month), anchor, req.TypeID); err != nil {
		response.HandleError(w, err)
		return
	}
	if err := h.marker.ExtendDrag(current); err != nil {
		if cancelErr := h.marker.CancelDrag(); cancelErr != nil {
			slog.Error("failed to cancel aborted gesture", "error", cancelErr)
		}
		response.BadRequest(w, err.Error(), nil)
		return
	}

	outcome, err := h.marker.CommitDrag(ctx)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, outcome)
}

// FillMonth implements AttendanceHandler.
func (h *AttendanceHandlerImpl) FillMonth(w http.ResponseWriter, r *http.Request) {
	officeID, err := middleware.OfficeID(r.Context())
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req attendance.FillMonthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("FillMonth decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.OfficeID = officeID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	outcome, err := h.marker.FillMonthRegular(r.Context(), officeID, req.Year, time.Month(req.Month))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, outcome)
}

// MarkCell implements AttendanceHandler.
func (h *AttendanceHandlerImpl) MarkCell(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkCellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("MarkCell decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	rec, err := h.marker.SetMark(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rec)
}

// ClearCell implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ClearCell(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	date := chi.URLParam(r, "date")
	if employeeID == "" || date == "" {
		response.BadRequest(w, "Employee ID and date are required", nil)
		return
	}

	if err := h.marker.ClearMark(r.Context(), employeeID, date); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance mark cleared", nil)
}
