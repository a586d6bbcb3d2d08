package slotgrid

import (
	"fmt"

	"github.com/m04kA/SMC-CourtSlotService/internal/domain"
)

// BuildSlotRequests формирует запросы на создание слотов из выбора.
// Слоты упорядочены по времени начала, каждый длится SlotDurationMinutes.
// Цена (если указана) применяется ко всем слотам одинаково.
func BuildSlotRequests(selection *domain.Selection, rate *float64) ([]domain.NewTimeSlot, error) {
	if selection == nil || selection.IsEmpty() {
		return nil, ErrNoSelection
	}

	if rate != nil && *rate < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRate, *rate)
	}

	times := selection.Times()
	requests := make([]domain.NewTimeSlot, 0, len(times))

	for _, start := range times {
		end, err := start.AddMinutes(domain.SlotDurationMinutes)
		if err != nil {
			return nil, fmt.Errorf("slotgrid: failed to compute end of slot %s: %w", start, err)
		}

		req := domain.NewTimeSlot{
			StartTime: start,
			EndTime:   end,
		}
		if rate != nil {
			r := *rate
			req.Rate = &r
		}

		requests = append(requests, req)
	}

	return requests, nil
}
