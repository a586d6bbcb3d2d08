package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtSlotService/internal/domain"
)

// SessionHeader заголовок с ID сессии выбора слотов
const SessionHeader = "X-Session-ID"

var (
	// ErrInvalidPathParam возвращается при некорректном параметре пути
	ErrInvalidPathParam = errors.New("invalid path parameter")

	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
)

// PathInt64 читает положительный int64 параметр пути
func PathInt64(r *http.Request, name string) (int64, error) {
	value, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || value <= 0 {
		return 0, ErrInvalidPathParam
	}
	return value, nil
}

// ParseDate разбирает дату в формате YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	date, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return date, nil
}

// QueryDate читает обязательный параметр ?date=YYYY-MM-DD
func QueryDate(r *http.Request) (time.Time, error) {
	return ParseDate(r.URL.Query().Get("date"))
}

// SessionID читает ID сессии выбора из заголовка
func SessionID(r *http.Request) string {
	return r.Header.Get(SessionHeader)
}
