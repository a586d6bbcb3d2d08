package slotgrid

import (
	"fmt"

	"github.com/m04kA/SMC-CourtSlotService/internal/domain"
	"github.com/m04kA/SMC-CourtSlotService/pkg/types"
)

// GenerateGrid генерирует фиксированную сетку кандидатов на день:
// по одному на каждый целый час с GridStartHour до GridEndHour включительно.
// Сетка не зависит от существующих бронирований.
func GenerateGrid() []domain.TimeSlotCandidate {
	grid := make([]domain.TimeSlotCandidate, 0, domain.GridSize)

	for hour := domain.GridStartHour; hour <= domain.GridEndHour; hour++ {
		t, err := types.FromHour(hour)
		if err != nil {
			// Часы сетки - константы в пределах суток
			continue
		}
		grid = append(grid, domain.TimeSlotCandidate{
			Time:        t,
			DisplayTime: t.Display(),
		})
	}

	return grid
}

// Annotate размечает сетку по существующим слотам. Исходная сетка не изменяется.
//
// IsBooked: есть активный слот, интервал которого содержит время кандидата
// (начало включительно, конец исключительно с точностью до минуты).
//
// Rate: берется у первого слота, который начинается ровно во время кандидата.
// При RateMatchAny активность слота не проверяется, при RateMatchActiveOnly
// учитываются только активные слоты.
func Annotate(grid []domain.TimeSlotCandidate, slots []*domain.TimeSlot, policy domain.RateMatchPolicy) []domain.TimeSlotCandidate {
	result := make([]domain.TimeSlotCandidate, len(grid))

	for i, candidate := range grid {
		annotated := domain.TimeSlotCandidate{
			Time:        candidate.Time,
			DisplayTime: candidate.DisplayTime,
		}

		for _, slot := range slots {
			if slot == nil {
				continue
			}
			if slot.BlocksSelection(candidate.Time) {
				annotated.IsBooked = true
				break
			}
		}

		if existing := findRateSlot(candidate.Time, slots, policy); existing != nil && existing.Rate != nil {
			rate := *existing.Rate
			annotated.Rate = &rate
		}

		result[i] = annotated
	}

	return result
}

// findRateSlot ищет первый слот, начинающийся во время t
func findRateSlot(t types.TimeString, slots []*domain.TimeSlot, policy domain.RateMatchPolicy) *domain.TimeSlot {
	for _, slot := range slots {
		if slot == nil {
			continue
		}
		if policy == domain.RateMatchActiveOnly && !slot.IsActive {
			continue
		}
		if slot.StartsAt(t) {
			return slot
		}
	}
	return nil
}

// Reconcile убирает из выбора времена, которые стали недоступны или пропали из сетки.
// Возвращает удаленные времена.
func Reconcile(grid []domain.TimeSlotCandidate, selection *domain.Selection) []types.TimeString {
	removed := make([]types.TimeString, 0)

	for _, t := range selection.Times() {
		candidate, err := FindCandidate(grid, t)
		if err != nil || candidate.IsUnavailable() {
			selection.Remove(t)
			removed = append(removed, t)
		}
	}

	return removed
}

// MarkSelected возвращает новый снимок сетки с проставленным IsSelected.
// Недоступные кандидаты никогда не отмечаются выбранными.
func MarkSelected(grid []domain.TimeSlotCandidate, selection *domain.Selection) []domain.TimeSlotCandidate {
	result := make([]domain.TimeSlotCandidate, len(grid))

	for i, candidate := range grid {
		candidate.IsSelected = candidate.IsAvailable() && selection.Contains(candidate.Time)
		result[i] = candidate
	}

	return result
}

// FindCandidate ищет кандидата по времени
func FindCandidate(grid []domain.TimeSlotCandidate, t types.TimeString) (domain.TimeSlotCandidate, error) {
	for _, candidate := range grid {
		if candidate.Time.Equal(t) {
			return candidate, nil
		}
	}
	return domain.TimeSlotCandidate{}, fmt.Errorf("%w: %s", ErrCandidateNotFound, t)
}

// Build генерирует и размечает сетку, затем применяет выбор.
// Выбор сверяется с новой сеткой и может измениться.
func Build(slots []*domain.TimeSlot, selection *domain.Selection, policy domain.RateMatchPolicy) ([]domain.TimeSlotCandidate, []types.TimeString) {
	grid := Annotate(GenerateGrid(), slots, policy)
	removed := Reconcile(grid, selection)
	return MarkSelected(grid, selection), removed
}
