package clear_selection

import (
	"context"

	"github.com/m04kA/SMC-CourtSlotService/internal/domain"
)

// SelectionStore интерфейс хранилища выбора пользователя
type SelectionStore interface {
	Get(ctx context.Context, key domain.SelectionKey) (*domain.Selection, error)
	Delete(ctx context.Context, key domain.SelectionKey) error
	IsSubmitLocked(ctx context.Context, key domain.SelectionKey) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
