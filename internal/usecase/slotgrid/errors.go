package slotgrid

import "errors"

var (
	// ErrNoSelection возвращается при попытке отправить пустой выбор
	ErrNoSelection = errors.New("slotgrid: no slots selected")

	// ErrCandidateNotFound возвращается, когда времени нет в сетке
	ErrCandidateNotFound = errors.New("slotgrid: time is not on the grid")

	// ErrInvalidRate возвращается при отрицательной цене
	ErrInvalidRate = errors.New("slotgrid: rate must not be negative")
)
