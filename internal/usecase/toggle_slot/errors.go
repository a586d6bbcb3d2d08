package toggle_slot

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("toggle_slot: invalid input data")

	// ErrCandidateNotFound возвращается, когда указанного времени нет в сетке
	ErrCandidateNotFound = errors.New("toggle_slot: time is not on the grid")

	// ErrNotSelectionOwner возвращается, когда выбор сессии принадлежит другому пользователю
	ErrNotSelectionOwner = errors.New("toggle_slot: selection belongs to another user")

	// ErrSubmissionInProgress возвращается, когда выбор уже отправляется
	ErrSubmissionInProgress = errors.New("toggle_slot: submission in progress")

	// ErrFetchFailure возвращается, когда не удалось получить существующие слоты
	ErrFetchFailure = errors.New("toggle_slot: failed to fetch existing time slots")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("toggle_slot: internal error")
)
