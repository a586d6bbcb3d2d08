package get_slot_grid

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_slot_grid: invalid input data")

	// ErrFetchFailure возвращается, когда не удалось получить существующие слоты.
	// Сетка в этом случае не строится.
	ErrFetchFailure = errors.New("get_slot_grid: failed to fetch existing time slots")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_slot_grid: internal error")
)
