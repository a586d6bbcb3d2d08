package update_timeslot

import (
	"context"

	"github.com/m04kA/SMC-CourtSlotService/internal/service/timeslots/models"
)

type TimeSlotService interface {
	Update(ctx context.Context, slotID int64, req *models.UpdateTimeSlotRequest) (*models.TimeSlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
