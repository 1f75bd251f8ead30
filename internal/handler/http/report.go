package http

import (
	"net/http"
	"strconv"

	"github.com/Laredoboynvl/timecardpro-sub002/internal/handler/http/middleware"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/handler/http/response"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/service/report"
)

type ReportHandler interface {
	ExportMonth(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService *report.ServiceImpl
}

func NewReportHandler(reportService *report.ServiceImpl) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

// ExportMonth implements ReportHandler. It streams the month's
// attendance grid as an XLSX download.
func (h *ReportHandlerImpl) ExportMonth(w http.ResponseWriter, r *http.Request) {
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

	data, filename, err := h.reportService.ExportMonth(r.Context(), officeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
