package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Laredoboynvl/timecardpro-sub002/internal/domain/holiday"
	"github.com/google/uuid"
)

type HolidayRepository struct {
	mu       sync.RWMutex
	holidays map[string]holiday.Holiday
}

func NewHolidayRepository() *HolidayRepository {
	return &HolidayRepository{holidays: make(map[string]holiday.Holiday)}
}

// Seed stores a holiday, assigning an ID when missing. Holidays seeded
// without IsActive set are treated as active.
func (r *HolidayRepository) Seed(h holiday.Holiday) holiday.Holiday {
	r.mu.Lock()
	defer r.mu.Unlock()

	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	r.holidays[h.ID] = h
	return h
}

func (r *HolidayRepository) ListByOfficeRange(ctx context.Context, officeID string, from, to time.Time) ([]holiday.Holiday, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	holidays := make([]holiday.Holiday, 0)
	for _, h := range r.holidays {
		if h.OfficeID != officeID || !h.IsActive {
			continue
		}
		if h.Date.Before(from) || h.Date.After(to) {
			continue
		}
		holidays = append(holidays, h)
	}
	sort.Slice(holidays, func(i, j int) bool {
		return holidays[i].Date.Before(holidays[j].Date)
	})
	return holidays, nil
}
