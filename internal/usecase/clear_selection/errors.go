package clear_selection

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("clear_selection: invalid input data")

	// ErrNotSelectionOwner возвращается, когда выбор сессии принадлежит другому пользователю
	ErrNotSelectionOwner = errors.New("clear_selection: selection belongs to another user")

	// ErrSubmissionInProgress возвращается, когда выбор уже отправляется
	ErrSubmissionInProgress = errors.New("clear_selection: submission in progress")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("clear_selection: internal error")
)
