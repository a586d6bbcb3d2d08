package timeslots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtSlotService/internal/domain"
)

// AvailabilityAPI интерфейс хранилища слотов: удаленный API или локальная БД
type AvailabilityAPI interface {
	ListTimeSlots(ctx context.Context, courtID int64, date time.Time) ([]*domain.TimeSlot, error)
	CreateTimeSlot(ctx context.Context, courtID int64, date time.Time, slot domain.NewTimeSlot) (*domain.TimeSlot, error)
	BookTimeSlot(ctx context.Context, courtID int64, date time.Time, userID int64, slot domain.NewTimeSlot) (*domain.TimeSlot, error)
	UpdateTimeSlot(ctx context.Context, slotID int64, patch domain.TimeSlotPatch) (*domain.TimeSlot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
