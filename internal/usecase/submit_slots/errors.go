package submit_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_slots: invalid input data")

	// ErrNoSelection возвращается при отправке пустого выбора. Запросы к API не выполняются.
	ErrNoSelection = errors.New("submit_slots: no slots selected")

	// ErrForbidden возвращается, когда роль пользователя не позволяет создавать слоты
	ErrForbidden = errors.New("submit_slots: role is not allowed to create time slots")

	// ErrNotSelectionOwner возвращается, когда выбор сессии принадлежит другому пользователю
	ErrNotSelectionOwner = errors.New("submit_slots: selection belongs to another user")

	// ErrSubmissionInProgress возвращается, когда этот выбор уже отправляется
	ErrSubmissionInProgress = errors.New("submit_slots: submission in progress")

	// ErrSubmissionFailure возвращается, когда хотя бы один запрос на слот не выполнен.
	// Успешно созданные слоты не откатываются.
	ErrSubmissionFailure = errors.New("submit_slots: failed to add time slots")

	// ErrSlotConflict итог слота: время уже занято
	ErrSlotConflict = errors.New("submit_slots: slot conflict")

	// ErrSlotRejected итог слота: API отклонил данные слота
	ErrSlotRejected = errors.New("submit_slots: slot rejected")

	// ErrSlotTimeout итог слота: время на отправку вышло
	ErrSlotTimeout = errors.New("submit_slots: slot timed out")

	// ErrSlotUpstream итог слота: API недоступен или ответил некорректно
	ErrSlotUpstream = errors.New("submit_slots: slot request failed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_slots: internal error")
)
