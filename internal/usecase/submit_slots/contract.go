package submit_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtSlotService/internal/domain"
)

// AvailabilityAPI интерфейс API, принимающего новые слоты
type AvailabilityAPI interface {
	CreateTimeSlot(ctx context.Context, courtID int64, date time.Time, slot domain.NewTimeSlot) (*domain.TimeSlot, error)
	BookTimeSlot(ctx context.Context, courtID int64, date time.Time, userID int64, slot domain.NewTimeSlot) (*domain.TimeSlot, error)
}

// SelectionStore интерфейс хранилища выбора пользователя
type SelectionStore interface {
	Get(ctx context.Context, key domain.SelectionKey) (*domain.Selection, error)
	Save(ctx context.Context, key domain.SelectionKey, selection *domain.Selection) error
	Delete(ctx context.Context, key domain.SelectionKey) error
	AcquireSubmitLock(ctx context.Context, key domain.SelectionKey) (string, bool, error)
	ReleaseSubmitLock(ctx context.Context, key domain.SelectionKey, token string) error
}

// Metrics интерфейс метрик отправки
type Metrics interface {
	IncSubmission(mode string, err error)
	IncSlotRequest(mode string, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
