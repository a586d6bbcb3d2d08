package session

import "errors"

var (
	// ErrStore возвращается при ошибках хранилища сессий
	ErrStore = errors.New("session.store: storage error")

	// ErrDecode возвращается, когда сохраненный выбор не удается прочитать
	ErrDecode = errors.New("session.store: failed to decode selection")
)
