package get_slot_grid

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtSlotService/internal/domain"
	"github.com/m04kA/SMC-CourtSlotService/internal/infra/session"
	"github.com/m04kA/SMC-CourtSlotService/internal/usecase/slotgrid"
)

// UseCase use case для получения сетки слотов корта на день
type UseCase struct {
	availabilityAPI AvailabilityAPI
	store           SelectionStore
	metrics         Metrics
	ratePolicy      domain.RateMatchPolicy
	newSessionID    func() string
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityAPI AvailabilityAPI,
	store SelectionStore,
	metrics Metrics,
	ratePolicy domain.RateMatchPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityAPI: availabilityAPI,
		store:           store,
		metrics:         metrics,
		ratePolicy:      ratePolicy,
		newSessionID:    uuid.NewString,
		logger:          logger,
	}
}

// Execute строит сетку по свежему снимку слотов и накладывает на нее выбор сессии
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	defer func() { uc.metrics.IncGridBuild(err) }()

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetSlotGrid: validation failed: %v", err)
		return nil, err
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uc.newSessionID()
		uc.logger.Info("GetSlotGrid: started new session %s", sessionID)
	}

	uc.logger.Info("GetSlotGrid: session=%s, court=%d, date=%s",
		sessionID, req.CourtID, req.Date.Format(domain.DateFormat))

	// 2. Получаем существующие слоты. Без них сетку не строим.
	slots, err := uc.availabilityAPI.ListTimeSlots(ctx, req.CourtID, req.Date)
	if err != nil {
		uc.logger.Error("GetSlotGrid: failed to fetch time slots for court=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: court=%d: %v", ErrFetchFailure, req.CourtID, err)
	}

	// 3. Загружаем выбор сессии
	key := domain.SelectionKey{SessionID: sessionID, CourtID: req.CourtID, Date: req.Date}

	selection, err := uc.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, session.ErrDecode) {
			uc.logger.Error("GetSlotGrid: failed to load selection %s: %v", key, err)
			return nil, fmt.Errorf("%w: failed to load selection: %v", ErrInternal, err)
		}
		uc.logger.Warn("GetSlotGrid: discarding unreadable selection %s: %v", key, err)
		selection = domain.NewSelection()
	}

	// 4. Строим сетку и сверяем выбор
	grid, dropped := slotgrid.Build(slots, selection, uc.ratePolicy)

	if len(dropped) > 0 {
		uc.logger.Info("GetSlotGrid: dropped %d unavailable times from selection %s: %v", len(dropped), key, dropped)
		if err := uc.store.Save(ctx, key, selection); err != nil {
			uc.logger.Warn("GetSlotGrid: failed to save reconciled selection %s: %v", key, err)
		}
	}

	// 5. Флаг незавершенной отправки
	locked, err := uc.store.IsSubmitLocked(ctx, key)
	if err != nil {
		uc.logger.Warn("GetSlotGrid: failed to check submit lock %s: %v", key, err)
	}

	return &Response{
		SessionID:            sessionID,
		CourtID:              req.CourtID,
		Date:                 req.Date,
		Candidates:           grid,
		Selected:             selection.Times(),
		Dropped:              dropped,
		SubmissionInProgress: locked,
	}, nil
}
