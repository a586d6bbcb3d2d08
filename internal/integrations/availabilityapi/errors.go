package availabilityapi

import "errors"

var (
	// ErrTimeSlotNotFound возвращается, когда слот не найден
	ErrTimeSlotNotFound = errors.New("availabilityapi client: time slot not found")

	// ErrSlotConflict возвращается, когда слот на это время уже существует или занят
	ErrSlotConflict = errors.New("availabilityapi client: slot conflict")

	// ErrRejected возвращается, когда API отклонило запрос как некорректный
	ErrRejected = errors.New("availabilityapi client: request rejected")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("availabilityapi client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("availabilityapi client: invalid response")
)
