package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	bookTimeSlotHandler "github.com/m04kA/SMC-CourtSlotService/internal/api/handlers/book_timeslot"
	clearSelectionHandler "github.com/m04kA/SMC-CourtSlotService/internal/api/handlers/clear_selection"
	createTimeSlotHandler "github.com/m04kA/SMC-CourtSlotService/internal/api/handlers/create_timeslot"
	getSlotGridHandler "github.com/m04kA/SMC-CourtSlotService/internal/api/handlers/get_slot_grid"
	listTimeSlotsHandler "github.com/m04kA/SMC-CourtSlotService/internal/api/handlers/list_timeslots"
	submitSlotsHandler "github.com/m04kA/SMC-CourtSlotService/internal/api/handlers/submit_slots"
	toggleSlotHandler "github.com/m04kA/SMC-CourtSlotService/internal/api/handlers/toggle_slot"
	updateTimeSlotHandler "github.com/m04kA/SMC-CourtSlotService/internal/api/handlers/update_timeslot"
	"github.com/m04kA/SMC-CourtSlotService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtSlotService/internal/config"
	"github.com/m04kA/SMC-CourtSlotService/internal/domain"
	"github.com/m04kA/SMC-CourtSlotService/internal/infra/session"
	timeslotRepo "github.com/m04kA/SMC-CourtSlotService/internal/infra/storage/timeslot"
	"github.com/m04kA/SMC-CourtSlotService/internal/integrations/availabilityapi"
	timeslotsService "github.com/m04kA/SMC-CourtSlotService/internal/service/timeslots"
	clearSelectionUC "github.com/m04kA/SMC-CourtSlotService/internal/usecase/clear_selection"
	getSlotGridUC "github.com/m04kA/SMC-CourtSlotService/internal/usecase/get_slot_grid"
	submitSlotsUC "github.com/m04kA/SMC-CourtSlotService/internal/usecase/submit_slots"
	toggleSlotUC "github.com/m04kA/SMC-CourtSlotService/internal/usecase/toggle_slot"
	"github.com/m04kA/SMC-CourtSlotService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtSlotService/pkg/logger"
	"github.com/m04kA/SMC-CourtSlotService/pkg/metrics"
)

// selectionStore хранилище выбора: Redis или память процесса
type selectionStore interface {
	Get(ctx context.Context, key domain.SelectionKey) (*domain.Selection, error)
	Save(ctx context.Context, key domain.SelectionKey, selection *domain.Selection) error
	Delete(ctx context.Context, key domain.SelectionKey) error
	AcquireSubmitLock(ctx context.Context, key domain.SelectionKey) (string, bool, error)
	ReleaseSubmitLock(ctx context.Context, key domain.SelectionKey, token string) error
	IsSubmitLocked(ctx context.Context, key domain.SelectionKey) (bool, error)
}

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-CourtSlotService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Redis: сессии выбора и кеш списка слотов
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}
		log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)
	}

	// Источник слотов: внешний API или собственная база
	var availabilityAPI timeslotsService.AvailabilityAPI

	switch cfg.AvailabilityAPI.Mode {
	case config.AvailabilityModeLocal:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		// Проверяем соединение
		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		if cfg.Metrics.Enabled {
			wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
			log.Info("Database metrics collection started")
			availabilityAPI = timeslotRepo.NewRepository(wrappedDB)
		} else {
			availabilityAPI = timeslotRepo.NewRepository(db)
		}

	default:
		client := availabilityapi.NewClient(
			cfg.AvailabilityAPI.URL,
			cfg.AvailabilityAPI.TimeoutDuration(),
			log,
		).
			WithRateLimit(cfg.AvailabilityAPI.RateLimitRPS, cfg.AvailabilityAPI.RateBurst).
			WithServiceIdentity(cfg.AvailabilityAPI.ServiceUser, cfg.AvailabilityAPI.ServiceRole).
			WithMetrics(metricsCollector)

		if redisClient != nil && cfg.AvailabilityAPI.CacheTTL > 0 {
			client.WithCache(redisClient, cfg.AvailabilityAPI.CacheTTLDuration())
			log.Info("Time slot cache enabled (ttl=%ds)", cfg.AvailabilityAPI.CacheTTL)
		}

		availabilityAPI = client
		log.Info("Availability API client initialized (url=%s, timeout=%ds, rps=%.1f)",
			cfg.AvailabilityAPI.URL, cfg.AvailabilityAPI.Timeout, cfg.AvailabilityAPI.RateLimitRPS)
	}

	// Хранилище выбора
	var store selectionStore
	if redisClient != nil {
		store = session.NewRedisStore(redisClient, cfg.Session.SelectionTTLDuration(), cfg.Session.LockTTLDuration())
		log.Info("Selection store: redis")
	} else {
		store = session.NewMemoryStore(cfg.Session.SelectionTTLDuration(), cfg.Session.LockTTLDuration())
		log.Warn("Selection store: in-memory, selections are lost on restart")
	}

	ratePolicy := domain.RateMatchPolicy(cfg.Grid.RateMatchPolicy)

	// Инициализируем сервисы
	timeSlotSvc := timeslotsService.NewService(availabilityAPI, log)

	// Инициализируем use cases
	getSlotGridUseCase := getSlotGridUC.NewUseCase(availabilityAPI, store, metricsCollector, ratePolicy, log)
	toggleSlotUseCase := toggleSlotUC.NewUseCase(availabilityAPI, store, ratePolicy, log)
	clearSelectionUseCase := clearSelectionUC.NewUseCase(store, log)
	submitSlotsUseCase := submitSlotsUC.NewUseCase(
		availabilityAPI,
		store,
		metricsCollector,
		cfg.Submission.TimeoutDuration(),
		log,
	)

	// Инициализируем handlers
	getSlotGrid := getSlotGridHandler.NewHandler(getSlotGridUseCase, log)
	toggleSlot := toggleSlotHandler.NewHandler(toggleSlotUseCase, log)
	clearSelection := clearSelectionHandler.NewHandler(clearSelectionUseCase, log)
	submitSlots := submitSlotsHandler.NewHandler(submitSlotsUseCase, log)
	listTimeSlots := listTimeSlotsHandler.NewHandler(timeSlotSvc, log)
	createTimeSlot := createTimeSlotHandler.NewHandler(timeSlotSvc, log)
	bookTimeSlot := bookTimeSlotHandler.NewHandler(timeSlotSvc, log)
	updateTimeSlot := updateTimeSlotHandler.NewHandler(timeSlotSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации, сессия по X-Session-ID)
	// ============================================================

	// Сетка слотов на дату с текущим выбором
	api.HandleFunc("/courts/{courtId}/slot-grid", getSlotGrid.Handle).Methods(http.MethodGet)

	// Слоты корта на дату
	api.HandleFunc("/courts/{courtId}/timeslots", listTimeSlots.Handle).Methods(http.MethodGet)

	// Изменение выбора: анонимно или с X-User-ID, тогда выбор привязывается к пользователю
	selection := api.PathPrefix("").Subrouter()
	selection.Use(middleware.OptionalAuth)

	// Переключение выбора слота
	selection.HandleFunc("/courts/{courtId}/slot-grid/toggle", toggleSlot.Handle).Methods(http.MethodPost)

	// Сброс выбора
	selection.HandleFunc("/courts/{courtId}/slot-grid/selection", clearSelection.Handle).Methods(http.MethodDelete)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Отправка выбора
	protected.HandleFunc("/courts/{courtId}/slot-grid/submit", submitSlots.Handle).Methods(http.MethodPost)

	// Бронирование одного слота
	protected.HandleFunc("/courts/{courtId}/bookings", bookTimeSlot.Handle).Methods(http.MethodPost)

	// --- Управление слотами (владелец площадки, администратор) ---
	owner := api.PathPrefix("").Subrouter()
	owner.Use(middleware.Auth, middleware.RequireRole(domain.RoleOwner, domain.RoleAdmin))

	// Создание записи о слоте
	owner.HandleFunc("/courts/{courtId}/timeslots", createTimeSlot.Handle).Methods(http.MethodPost)

	// Обновление слота
	owner.HandleFunc("/timeslots/{slotId}", updateTimeSlot.Handle).Methods(http.MethodPatch)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
