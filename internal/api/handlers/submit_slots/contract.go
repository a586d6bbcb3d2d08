package submit_slots

import (
	"context"

	submitSlots "github.com/m04kA/SMC-CourtSlotService/internal/usecase/submit_slots"
)

type SubmitSlotsUseCase interface {
	Execute(ctx context.Context, req *submitSlots.Request) (*submitSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
