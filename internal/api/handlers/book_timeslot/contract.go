package book_timeslot

import (
	"context"

	"github.com/m04kA/SMC-CourtSlotService/internal/service/timeslots/models"
)

type TimeSlotService interface {
	Book(ctx context.Context, courtID int64, callerID int64, callerRole string, req *models.BookTimeSlotRequest) (*models.TimeSlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
