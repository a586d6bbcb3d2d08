package get_slot_grid

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtSlotService/internal/domain"
)

// AvailabilityAPI интерфейс источника существующих слотов
type AvailabilityAPI interface {
	ListTimeSlots(ctx context.Context, courtID int64, date time.Time) ([]*domain.TimeSlot, error)
}

// SelectionStore интерфейс хранилища выбора пользователя
type SelectionStore interface {
	Get(ctx context.Context, key domain.SelectionKey) (*domain.Selection, error)
	Save(ctx context.Context, key domain.SelectionKey, selection *domain.Selection) error
	IsSubmitLocked(ctx context.Context, key domain.SelectionKey) (bool, error)
}

// Metrics интерфейс метрик построения сетки
type Metrics interface {
	IncGridBuild(err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
