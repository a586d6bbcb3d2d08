package create_timeslot

import (
	"context"

	"github.com/m04kA/SMC-CourtSlotService/internal/service/timeslots/models"
)

type TimeSlotService interface {
	Create(ctx context.Context, courtID int64, req *models.CreateTimeSlotRequest) (*models.TimeSlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
