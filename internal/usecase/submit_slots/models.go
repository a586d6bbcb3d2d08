package submit_slots

import (
	"time"

	"github.com/m04kA/SMC-CourtSlotService/internal/domain"
	"github.com/m04kA/SMC-CourtSlotService/pkg/types"
)

// Request модель запроса на отправку выбора
type Request struct {
	SessionID string            // ID сессии выбора
	CourtID   int64             // ID корта
	Date      time.Time         // Дата (без времени)
	UserID    int64             // ID пользователя
	Role      string            // Роль пользователя
	Mode      domain.SubmitMode // create - создать слоты, book - забронировать
	Rate      *float64          // Цена для всех слотов (опционально)
}

// SlotResult итог запроса по одному слоту
type SlotResult struct {
	StartTime types.TimeString // Время начала
	EndTime   types.TimeString // Время окончания
	Rate      *float64         // Цена
	SlotID    *int64           // ID созданного слота, если запрос успешен
	Err       error            // Ошибка запроса
}

// OK возвращает true, если слот создан
func (r SlotResult) OK() bool {
	return r.Err == nil
}

// Response модель ответа с итогами отправки
type Response struct {
	SessionID string
	CourtID   int64
	Date      time.Time
	Mode      domain.SubmitMode
	Results   []SlotResult // В хронологическом порядке
	Succeeded int
	Failed    int
}
