package submit_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtSlotService/internal/domain"
	timeslotRepo "github.com/m04kA/SMC-CourtSlotService/internal/infra/storage/timeslot"
	"github.com/m04kA/SMC-CourtSlotService/internal/integrations/availabilityapi"
	"github.com/m04kA/SMC-CourtSlotService/internal/usecase/slotgrid"
)

// UseCase use case для пакетной отправки выбранных слотов
type UseCase struct {
	availabilityAPI AvailabilityAPI
	store           SelectionStore
	metrics         Metrics
	timeout         time.Duration
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// timeout ограничивает всю отправку целиком; 0 - без ограничения.
func NewUseCase(
	availabilityAPI AvailabilityAPI,
	store SelectionStore,
	metrics Metrics,
	timeout time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityAPI: availabilityAPI,
		store:           store,
		metrics:         metrics,
		timeout:         timeout,
		logger:          logger,
	}
}

// Execute отправляет выбор: по одному запросу на слот, последовательно, в порядке времени.
//
// При ошибке хотя бы одного запроса возвращает ответ с итогами по каждому слоту
// и ErrSubmissionFailure. Успешные слоты не откатываются, в выборе остаются только неудачные.
// При полном успехе выбор очищается.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	defer func() { uc.metrics.IncSubmission(string(req.Mode), err) }()

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitSlots: validation failed: %v", err)
		return nil, err
	}

	if err := validateRole(req.Mode, req.Role); err != nil {
		uc.logger.Warn("SubmitSlots: user=%d: %v", req.UserID, err)
		return nil, err
	}

	key := domain.SelectionKey{SessionID: req.SessionID, CourtID: req.CourtID, Date: req.Date}

	// 2. Блокировка от повторной отправки того же выбора
	token, acquired, err := uc.store.AcquireSubmitLock(ctx, key)
	if err != nil {
		uc.logger.Error("SubmitSlots: failed to acquire submit lock %s: %v", key, err)
		return nil, fmt.Errorf("%w: failed to acquire submit lock: %v", ErrInternal, err)
	}
	if !acquired {
		uc.logger.Warn("SubmitSlots: selection %s is already being submitted", key)
		return nil, ErrSubmissionInProgress
	}

	// Снимаем блокировку и сохраняем выбор даже после отмены запроса клиентом
	storeCtx := context.WithoutCancel(ctx)
	defer func() {
		if err := uc.store.ReleaseSubmitLock(storeCtx, key, token); err != nil {
			uc.logger.Error("SubmitSlots: failed to release submit lock %s: %v", key, err)
		}
	}()

	// 3. Выбор читаем только под блокировкой. Пустой выбор - ошибка без запросов к API.
	selection, err := uc.store.Get(ctx, key)
	if err != nil {
		uc.logger.Error("SubmitSlots: failed to load selection %s: %v", key, err)
		return nil, fmt.Errorf("%w: failed to load selection: %v", ErrInternal, err)
	}

	if !selection.Bind(req.UserID) {
		uc.logger.Warn("SubmitSlots: selection %s belongs to user=%d, not user=%d", key, selection.Owner(), req.UserID)
		return nil, ErrNotSelectionOwner
	}

	requests, err := slotgrid.BuildSlotRequests(selection, req.Rate)
	if err != nil {
		if errors.Is(err, slotgrid.ErrNoSelection) {
			uc.logger.Warn("SubmitSlots: selection %s is empty", key)
			return nil, ErrNoSelection
		}
		uc.logger.Warn("SubmitSlots: failed to build slot requests: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if uc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}

	uc.logger.Info("SubmitSlots: selection=%s, user=%d, mode=%s, slots=%d",
		key, req.UserID, req.Mode, len(requests))

	// 4. Отправляем слоты по одному
	resp = &Response{
		SessionID: req.SessionID,
		CourtID:   req.CourtID,
		Date:      req.Date,
		Mode:      req.Mode,
		Results:   make([]SlotResult, 0, len(requests)),
	}

	for _, slotReq := range requests {
		result := SlotResult{
			StartTime: slotReq.StartTime,
			EndTime:   slotReq.EndTime,
			Rate:      slotReq.Rate,
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			// Время на отправку вышло, оставшиеся слоты не отправляем
			result.Err = fmt.Errorf("%w: %w", ErrSlotTimeout, ctxErr)
		} else {
			slot, err := uc.submitOne(ctx, req, slotReq)
			if err != nil {
				result.Err = classifySlotError(err)
			} else {
				result.SlotID = &slot.ID
			}
		}

		uc.metrics.IncSlotRequest(string(req.Mode), result.Err)

		if result.OK() {
			resp.Succeeded++
			selection.Remove(slotReq.StartTime)
		} else {
			resp.Failed++
			uc.logger.Warn("SubmitSlots: slot %s-%s failed: %v", slotReq.StartTime, slotReq.EndTime, result.Err)
		}

		resp.Results = append(resp.Results, result)
	}

	// 5. Итог
	if resp.Failed > 0 {
		if err := uc.store.Save(storeCtx, key, selection); err != nil {
			uc.logger.Error("SubmitSlots: failed to save remaining selection %s: %v", key, err)
		}
		uc.logger.Error("SubmitSlots: selection=%s: %d of %d slots failed",
			key, resp.Failed, len(requests))
		return resp, fmt.Errorf("%w: %d of %d slots failed", ErrSubmissionFailure, resp.Failed, len(requests))
	}

	if err := uc.store.Delete(storeCtx, key); err != nil {
		uc.logger.Warn("SubmitSlots: failed to clear selection %s: %v", key, err)
	}

	uc.logger.Info("SubmitSlots: selection=%s: all %d slots submitted", key, resp.Succeeded)

	return resp, nil
}

func (uc *UseCase) submitOne(ctx context.Context, req *Request, slot domain.NewTimeSlot) (*domain.TimeSlot, error) {
	switch req.Mode {
	case domain.SubmitModeCreate:
		return uc.availabilityAPI.CreateTimeSlot(ctx, req.CourtID, req.Date, slot)
	default:
		return uc.availabilityAPI.BookTimeSlot(ctx, req.CourtID, req.Date, req.UserID, slot)
	}
}

// classifySlotError приводит ошибку API к итогу слота. Исходная ошибка сохраняется в цепочке.
func classifySlotError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %w", ErrSlotTimeout, err)
	case errors.Is(err, availabilityapi.ErrSlotConflict), errors.Is(err, timeslotRepo.ErrSlotConflict):
		return fmt.Errorf("%w: %w", ErrSlotConflict, err)
	case errors.Is(err, availabilityapi.ErrRejected), errors.Is(err, availabilityapi.ErrTimeSlotNotFound):
		return fmt.Errorf("%w: %w", ErrSlotRejected, err)
	default:
		return fmt.Errorf("%w: %w", ErrSlotUpstream, err)
	}
}
