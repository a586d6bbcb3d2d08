package clear_selection

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourtSlotService/internal/domain"
	"github.com/m04kA/SMC-CourtSlotService/internal/infra/session"
)

// UseCase use case для сброса выбора сессии
type UseCase struct {
	store  SelectionStore
	logger Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(store SelectionStore, logger Logger) *UseCase {
	return &UseCase{
		store:  store,
		logger: logger,
	}
}

// Execute удаляет выбор сессии для корта и даты
func (uc *UseCase) Execute(ctx context.Context, req *Request) error {
	if req.SessionID == "" || req.CourtID <= 0 || req.Date.IsZero() {
		uc.logger.Warn("ClearSelection: invalid request session=%q court=%d", req.SessionID, req.CourtID)
		return fmt.Errorf("%w: sessionID, courtID and date are required", ErrInvalidInput)
	}

	key := domain.SelectionKey{SessionID: req.SessionID, CourtID: req.CourtID, Date: req.Date}

	locked, err := uc.store.IsSubmitLocked(ctx, key)
	if err != nil {
		uc.logger.Error("ClearSelection: failed to check submit lock %s: %v", key, err)
		return fmt.Errorf("%w: failed to check submit lock: %v", ErrInternal, err)
	}
	if locked {
		uc.logger.Warn("ClearSelection: selection %s is being submitted", key)
		return ErrSubmissionInProgress
	}

	// Нечитаемую запись удаляем без проверки владельца
	selection, err := uc.store.Get(ctx, key)
	switch {
	case err == nil:
		if !selection.Bind(req.UserID) {
			uc.logger.Warn("ClearSelection: selection %s belongs to user=%d, not user=%d", key, selection.Owner(), req.UserID)
			return ErrNotSelectionOwner
		}
	case !errors.Is(err, session.ErrDecode):
		uc.logger.Error("ClearSelection: failed to load selection %s: %v", key, err)
		return fmt.Errorf("%w: failed to load selection: %v", ErrInternal, err)
	}

	if err := uc.store.Delete(ctx, key); err != nil {
		uc.logger.Error("ClearSelection: failed to delete selection %s: %v", key, err)
		return fmt.Errorf("%w: failed to delete selection: %v", ErrInternal, err)
	}

	uc.logger.Info("ClearSelection: selection %s cleared", key)

	return nil
}
