package get_slot_grid

import (
	"time"

	"github.com/m04kA/SMC-CourtSlotService/internal/domain"
	"github.com/m04kA/SMC-CourtSlotService/pkg/types"
)

// Request модель запроса сетки слотов
type Request struct {
	SessionID string    // ID сессии выбора; пустой - будет создан новый
	CourtID   int64     // ID корта
	Date      time.Time // Дата (без времени)
}

// Response модель ответа с сеткой слотов
type Response struct {
	SessionID            string                     // ID сессии выбора
	CourtID              int64                      // ID корта
	Date                 time.Time                  // Дата
	Candidates           []domain.TimeSlotCandidate // Сетка в хронологическом порядке
	Selected             []types.TimeString         // Текущий выбор после сверки с сеткой
	Dropped              []types.TimeString         // Времена, снятые с выбора, т.к. стали недоступны
	SubmissionInProgress bool                       // Идет отправка выбора
}
