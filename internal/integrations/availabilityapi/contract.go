package availabilityapi

import "time"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics интерфейс для метрик исходящих запросов
type Metrics interface {
	ObserveUpstream(operation string, started time.Time, err error)
}
