package clear_selection

import "time"

// Request модель запроса на сброс выбора
type Request struct {
	SessionID string    // ID сессии выбора
	CourtID   int64     // ID корта
	Date      time.Time // Дата (без времени)
	UserID    int64     // ID пользователя, 0 для анонимной сессии
}
