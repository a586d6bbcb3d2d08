package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-CourtSlotService/internal/domain"
)

const (
	// AvailabilityModeRemote слоты берутся из внешнего Availability/Booking API
	AvailabilityModeRemote = "remote"
	// AvailabilityModeLocal слоты хранятся в собственной базе PostgreSQL
	AvailabilityModeLocal = "local"
)

var (
	// ErrReadConfig возвращается, если файл конфигурации не удалось прочитать
	ErrReadConfig = errors.New("config: failed to read file")

	// ErrDecodeConfig возвращается при ошибке разбора TOML
	ErrDecodeConfig = errors.New("config: failed to decode toml")

	// ErrInvalidConfig возвращается при некорректных значениях
	ErrInvalidConfig = errors.New("config: invalid value")
)

// Config конфигурация сервиса
type Config struct {
	Server          ServerConfig          `toml:"server"`
	Logs            LogsConfig            `toml:"logs"`
	Metrics         MetricsConfig         `toml:"metrics"`
	Database        DatabaseConfig        `toml:"database"`
	AvailabilityAPI AvailabilityAPIConfig `toml:"availability_api"`
	Redis           RedisConfig           `toml:"redis"`
	Session         SessionConfig         `toml:"session"`
	Submission      SubmissionConfig      `toml:"submission"`
	Grid            GridConfig            `toml:"grid"`
}

// ServerConfig настройки HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // пустой - stdout
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// DatabaseConfig настройки PostgreSQL (нужна только в режиме local)
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// AvailabilityAPIConfig настройки источника слотов
type AvailabilityAPIConfig struct {
	Mode         string  `toml:"mode"` // remote или local
	URL          string  `toml:"url"`
	Timeout      int     `toml:"timeout"` // секунды
	RateLimitRPS float64 `toml:"rate_limit_rps"`
	RateBurst    int     `toml:"rate_burst"`
	CacheTTL     int     `toml:"cache_ttl"` // секунды, 0 - без кеша
	ServiceUser  int64   `toml:"service_user_id"`
	ServiceRole  string  `toml:"service_role"`
}

// RedisConfig настройки Redis для сессий выбора и кеша
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// SessionConfig время жизни выбора и блокировки отправки, в секундах
type SessionConfig struct {
	SelectionTTL int `toml:"selection_ttl"`
	LockTTL      int `toml:"lock_ttl"`
}

// SubmissionConfig настройки пакетной отправки
type SubmissionConfig struct {
	Timeout int `toml:"timeout"` // секунды на всю отправку
}

// GridConfig настройки сетки
type GridConfig struct {
	RateMatchPolicy string `toml:"rate_match_policy"` // any или active_only
}

// Load читает .env (если есть), подставляет ${VAR} и разбирает TOML
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	return Parse(os.ExpandEnv(string(data)))
}

// Parse разбирает TOML, применяет значения по умолчанию и проверяет конфигурацию
func Parse(data string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeConfig, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	setDefault(&c.Server.HTTPPort, 8080)
	setDefault(&c.Server.ReadTimeout, 10)
	setDefault(&c.Server.WriteTimeout, 30)
	setDefault(&c.Server.IdleTimeout, 60)
	setDefault(&c.Server.ShutdownTimeout, 15)

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "court_slot_service"
	}

	setDefault(&c.Database.Port, 5432)
	setDefault(&c.Database.MaxOpenConns, 25)
	setDefault(&c.Database.MaxIdleConns, 5)
	setDefault(&c.Database.ConnMaxLifetime, 300)
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	if c.AvailabilityAPI.Mode == "" {
		c.AvailabilityAPI.Mode = AvailabilityModeRemote
	}
	setDefault(&c.AvailabilityAPI.Timeout, 5)
	setDefault(&c.AvailabilityAPI.RateBurst, 1)
	if c.AvailabilityAPI.ServiceRole == "" {
		c.AvailabilityAPI.ServiceRole = domain.RoleAdmin
	}

	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}

	setDefault(&c.Session.SelectionTTL, 1800)
	setDefault(&c.Session.LockTTL, 60)
	setDefault(&c.Submission.Timeout, 30)

	if c.Grid.RateMatchPolicy == "" {
		c.Grid.RateMatchPolicy = string(domain.RateMatchAny)
	}
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.AvailabilityAPI.Mode {
	case AvailabilityModeRemote:
		if c.AvailabilityAPI.URL == "" {
			return fmt.Errorf("%w: availability_api.url is required in remote mode", ErrInvalidConfig)
		}
	case AvailabilityModeLocal:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required in local mode", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: availability_api.mode=%q", ErrInvalidConfig, c.AvailabilityAPI.Mode)
	}

	if c.AvailabilityAPI.RateLimitRPS < 0 {
		return fmt.Errorf("%w: availability_api.rate_limit_rps must not be negative", ErrInvalidConfig)
	}

	if c.AvailabilityAPI.CacheTTL > 0 && !c.Redis.Enabled {
		return fmt.Errorf("%w: availability_api.cache_ttl requires redis.enabled", ErrInvalidConfig)
	}

	// Блокировка должна пережить отправку, иначе возможна повторная отправка того же выбора
	if c.Session.LockTTL < c.Submission.Timeout {
		return fmt.Errorf("%w: session.lock_ttl=%d must be >= submission.timeout=%d",
			ErrInvalidConfig, c.Session.LockTTL, c.Submission.Timeout)
	}

	if !domain.RateMatchPolicy(c.Grid.RateMatchPolicy).IsValid() {
		return fmt.Errorf("%w: grid.rate_match_policy=%q", ErrInvalidConfig, c.Grid.RateMatchPolicy)
	}

	return nil
}

// Durations

func (a AvailabilityAPIConfig) TimeoutDuration() time.Duration {
	return time.Duration(a.Timeout) * time.Second
}

func (a AvailabilityAPIConfig) CacheTTLDuration() time.Duration {
	return time.Duration(a.CacheTTL) * time.Second
}

func (s SessionConfig) SelectionTTLDuration() time.Duration {
	return time.Duration(s.SelectionTTL) * time.Second
}

func (s SessionConfig) LockTTLDuration() time.Duration {
	return time.Duration(s.LockTTL) * time.Second
}

func (s SubmissionConfig) TimeoutDuration() time.Duration {
	return time.Duration(s.Timeout) * time.Second
}

func setDefault(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}
