package toggle_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourtSlotService/internal/domain"
	"github.com/m04kA/SMC-CourtSlotService/internal/infra/session"
	"github.com/m04kA/SMC-CourtSlotService/internal/usecase/slotgrid"
)

// UseCase use case для переключения выбора одного кандидата
type UseCase struct {
	availabilityAPI AvailabilityAPI
	store           SelectionStore
	ratePolicy      domain.RateMatchPolicy
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityAPI AvailabilityAPI,
	store SelectionStore,
	ratePolicy domain.RateMatchPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityAPI: availabilityAPI,
		store:           store,
		ratePolicy:      ratePolicy,
		logger:          logger,
	}
}

// Execute переключает кандидата в выборе.
// Занятые и оцененные кандидаты не переключаются, выбор при этом не меняется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ToggleSlot: validation failed: %v", err)
		return nil, err
	}

	key := domain.SelectionKey{SessionID: req.SessionID, CourtID: req.CourtID, Date: req.Date}

	uc.logger.Info("ToggleSlot: selection=%s, time=%s", key, req.Time)

	// 2. Во время отправки выбор менять нельзя
	locked, err := uc.store.IsSubmitLocked(ctx, key)
	if err != nil {
		uc.logger.Error("ToggleSlot: failed to check submit lock %s: %v", key, err)
		return nil, fmt.Errorf("%w: failed to check submit lock: %v", ErrInternal, err)
	}
	if locked {
		uc.logger.Warn("ToggleSlot: selection %s is being submitted", key)
		return nil, ErrSubmissionInProgress
	}

	// 3. Свежий снимок слотов
	slots, err := uc.availabilityAPI.ListTimeSlots(ctx, req.CourtID, req.Date)
	if err != nil {
		uc.logger.Error("ToggleSlot: failed to fetch time slots for court=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: court=%d: %v", ErrFetchFailure, req.CourtID, err)
	}

	// 4. Текущий выбор
	selection, err := uc.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, session.ErrDecode) {
			uc.logger.Error("ToggleSlot: failed to load selection %s: %v", key, err)
			return nil, fmt.Errorf("%w: failed to load selection: %v", ErrInternal, err)
		}
		uc.logger.Warn("ToggleSlot: discarding unreadable selection %s: %v", key, err)
		selection = domain.NewSelection()
	}

	// Выбор привязывается к пользователю при первом запросе с X-User-ID
	owner := selection.Owner()
	if !selection.Bind(req.UserID) {
		uc.logger.Warn("ToggleSlot: selection %s belongs to user=%d, not user=%d", key, owner, req.UserID)
		return nil, ErrNotSelectionOwner
	}
	bound := owner != selection.Owner()

	// 5. Строим сетку и ищем кандидата
	grid, dropped := slotgrid.Build(slots, selection, uc.ratePolicy)
	if len(dropped) > 0 {
		uc.logger.Info("ToggleSlot: dropped %d unavailable times from selection %s: %v", len(dropped), key, dropped)
	}

	candidate, err := slotgrid.FindCandidate(grid, req.Time)
	if err != nil {
		uc.logger.Warn("ToggleSlot: %v", err)
		return nil, fmt.Errorf("%w: %s", ErrCandidateNotFound, req.Time)
	}

	// 6. Переключаем
	changed := selection.Toggle(candidate)
	if !changed {
		uc.logger.Info("ToggleSlot: candidate %s is %s, selection unchanged", candidate.Time, candidate.State())
	}

	if changed || bound || len(dropped) > 0 {
		if err := uc.store.Save(ctx, key, selection); err != nil {
			uc.logger.Error("ToggleSlot: failed to save selection %s: %v", key, err)
			return nil, fmt.Errorf("%w: failed to save selection: %v", ErrInternal, err)
		}
	}

	return &Response{
		SessionID:  req.SessionID,
		CourtID:    req.CourtID,
		Date:       req.Date,
		Changed:    changed,
		Candidates: slotgrid.MarkSelected(grid, selection),
		Selected:   selection.Times(),
	}, nil
}
