package timeslots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtSlotService/internal/domain"
	timeslotRepo "github.com/m04kA/SMC-CourtSlotService/internal/infra/storage/timeslot"
	"github.com/m04kA/SMC-CourtSlotService/internal/integrations/availabilityapi"
	"github.com/m04kA/SMC-CourtSlotService/internal/service/timeslots/models"
)

// Service сервис для работы со слотами кортов
type Service struct {
	availabilityAPI AvailabilityAPI
	logger          Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(availabilityAPI AvailabilityAPI, logger Logger) *Service {
	return &Service{
		availabilityAPI: availabilityAPI,
		logger:          logger,
	}
}

// List получает слоты корта на дату
func (s *Service) List(ctx context.Context, courtID int64, date time.Time) (*models.TimeSlotListResponse, error) {
	s.logger.Info("List: fetching time slots for court=%d, date=%s", courtID, date.Format(domain.DateFormat))

	if courtID <= 0 {
		return nil, fmt.Errorf("%w: courtID must be positive", ErrInvalidInput)
	}

	slots, err := s.availabilityAPI.ListTimeSlots(ctx, courtID, date)
	if err != nil {
		s.logger.Error("List: failed to fetch time slots for court=%d: %v", courtID, err)
		return nil, mapBackendError("List", err)
	}

	s.logger.Info("List: found %d time slots for court=%d", len(slots), courtID)
	return models.FromDomainTimeSlots(slots), nil
}

// Create создает запись о слоте (владелец площадки или администратор)
func (s *Service) Create(ctx context.Context, courtID int64, req *models.CreateTimeSlotRequest) (*models.TimeSlotResponse, error) {
	if courtID <= 0 {
		return nil, fmt.Errorf("%w: courtID must be positive", ErrInvalidInput)
	}

	date, slot, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("Create: invalid request for court=%d: %v", courtID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.logger.Info("Create: court=%d, date=%s, %s-%s", courtID, req.Date, slot.StartTime, slot.EndTime)

	created, err := s.availabilityAPI.CreateTimeSlot(ctx, courtID, date, slot)
	if err != nil {
		s.logger.Warn("Create: failed for court=%d: %v", courtID, err)
		return nil, mapBackendError("Create", err)
	}

	s.logger.Info("Create: time slot id=%d created", created.ID)
	return models.FromDomainTimeSlot(created), nil
}

// Book бронирует слот.
// Пользователь бронирует для себя; бронировать за другого может только администратор.
func (s *Service) Book(ctx context.Context, courtID int64, callerID int64, callerRole string, req *models.BookTimeSlotRequest) (*models.TimeSlotResponse, error) {
	if courtID <= 0 {
		return nil, fmt.Errorf("%w: courtID must be positive", ErrInvalidInput)
	}

	userID := req.UserID
	if userID == 0 {
		userID = callerID
	}
	if userID != callerID && callerRole != domain.RoleAdmin {
		s.logger.Warn("Book: user=%d is not allowed to book for user=%d", callerID, userID)
		return nil, ErrAccessDenied
	}
	if req.Rate != nil && callerRole != domain.RoleAdmin {
		s.logger.Warn("Book: user=%d is not allowed to set rate", callerID)
		return nil, fmt.Errorf("%w: rate can only be set by admin", ErrAccessDenied)
	}

	date, slot, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("Book: invalid request for court=%d: %v", courtID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.logger.Info("Book: court=%d, date=%s, %s-%s, user=%d", courtID, req.Date, slot.StartTime, slot.EndTime, userID)

	booked, err := s.availabilityAPI.BookTimeSlot(ctx, courtID, date, userID, slot)
	if err != nil {
		s.logger.Warn("Book: failed for court=%d, user=%d: %v", courtID, userID, err)
		return nil, mapBackendError("Book", err)
	}

	s.logger.Info("Book: time slot id=%d booked by user=%d", booked.ID, userID)
	return models.FromDomainTimeSlot(booked), nil
}

// Update частично обновляет слот (владелец площадки или администратор)
func (s *Service) Update(ctx context.Context, slotID int64, req *models.UpdateTimeSlotRequest) (*models.TimeSlotResponse, error) {
	if slotID <= 0 {
		return nil, fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	patch, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("Update: invalid request for slot id=%d: %v", slotID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, err := s.availabilityAPI.UpdateTimeSlot(ctx, slotID, patch)
	if err != nil {
		s.logger.Warn("Update: failed for slot id=%d: %v", slotID, err)
		return nil, mapBackendError("Update", err)
	}

	s.logger.Info("Update: time slot id=%d updated", slotID)
	return models.FromDomainTimeSlot(updated), nil
}

// mapBackendError переводит ошибки удаленного API и локального репозитория в ошибки сервиса
func mapBackendError(op string, err error) error {
	switch {
	case errors.Is(err, timeslotRepo.ErrTimeSlotNotFound), errors.Is(err, availabilityapi.ErrTimeSlotNotFound):
		return ErrTimeSlotNotFound
	case errors.Is(err, timeslotRepo.ErrSlotConflict), errors.Is(err, availabilityapi.ErrSlotConflict):
		return fmt.Errorf("%w: %v", ErrSlotConflict, err)
	case errors.Is(err, timeslotRepo.ErrNothingToUpdate), errors.Is(err, availabilityapi.ErrRejected):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, availabilityapi.ErrInternal), errors.Is(err, availabilityapi.ErrInvalidResponse):
		return fmt.Errorf("%w: %s - %v", ErrUpstream, op, err)
	default:
		return fmt.Errorf("%w: %s - backend error: %v", ErrInternal, op, err)
	}
}
