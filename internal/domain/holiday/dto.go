package holiday

import (
	"github.com/Laredoboynvl/timecardpro-sub002/internal/pkg/validator"
)

// HolidayResponse - wire shape for the holiday listing.
type HolidayResponse struct {
	ID       string `json:"id"`
	OfficeID string `json:"office_id"`
	Date     string `json:"date"`
	Name     string `json:"name"`
}

func (h *Holiday) ToResponse() HolidayResponse {
	return HolidayResponse{
		ID:       h.ID,
		OfficeID: h.OfficeID,
		Date:     validator.FormatDate(h.Date),
		Name:     h.Name,
	}
}
