package timeslot

import (
	"github.com/m04kA/SMC-CourtSlotService/pkg/dbmetrics"
)

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
