package list_timeslots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtSlotService/internal/service/timeslots/models"
)

type TimeSlotService interface {
	List(ctx context.Context, courtID int64, date time.Time) (*models.TimeSlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
