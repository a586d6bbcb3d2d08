package toggle_slot

import (
	"time"

	"github.com/m04kA/SMC-CourtSlotService/internal/domain"
	"github.com/m04kA/SMC-CourtSlotService/pkg/types"
)

// Request модель запроса на переключение выбора слота
type Request struct {
	SessionID string           // ID сессии выбора
	CourtID   int64            // ID корта
	Date      time.Time        // Дата (без времени)
	Time      types.TimeString // Время кандидата (например, "14:00")
	UserID    int64            // ID пользователя, 0 для анонимной сессии
}

// Response модель ответа с обновленной сеткой
type Response struct {
	SessionID  string                     // ID сессии выбора
	CourtID    int64                      // ID корта
	Date       time.Time                  // Дата
	Changed    bool                       // false, если кандидат недоступен и выбор не изменился
	Candidates []domain.TimeSlotCandidate // Сетка после переключения
	Selected   []types.TimeString         // Текущий выбор
}
