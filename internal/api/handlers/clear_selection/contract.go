package clear_selection

import (
	"context"

	clearSelection "github.com/m04kA/SMC-CourtSlotService/internal/usecase/clear_selection"
)

type ClearSelectionUseCase interface {
	Execute(ctx context.Context, req *clearSelection.Request) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
