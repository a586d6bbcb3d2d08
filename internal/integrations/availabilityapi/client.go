package availabilityapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-CourtSlotService/internal/domain"
)

const (
	cacheKeyPrefix = "availabilityapi:timeslots:"

	userIDHeader   = "X-User-ID"
	userRoleHeader = "X-User-Role"
)

// Client клиент для работы с Availability/Booking API
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      redis.Cmdable
	cacheTTL   time.Duration
	metrics    Metrics
	userID     int64
	role       string
	log        Logger
}

// NewClient создает новый экземпляр клиента Availability/Booking API
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// WithRateLimit ограничивает частоту исходящих запросов
func (c *Client) WithRateLimit(rps float64, burst int) *Client {
	if rps > 0 {
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
	return c
}

// WithCache включает кеширование списка слотов в Redis
func (c *Client) WithCache(cache redis.Cmdable, ttl time.Duration) *Client {
	if cache != nil && ttl > 0 {
		c.cache = cache
		c.cacheTTL = ttl
	}
	return c
}

// WithServiceIdentity задает пользователя и роль, от имени которых сервис ходит в API.
// Бронирование за другого пользователя требует роли admin.
func (c *Client) WithServiceIdentity(userID int64, role string) *Client {
	c.userID = userID
	c.role = role
	return c
}

// WithMetrics подключает метрики исходящих запросов
func (c *Client) WithMetrics(m Metrics) *Client {
	c.metrics = m
	return c
}

// ListTimeSlots получает слоты корта на дату
func (c *Client) ListTimeSlots(ctx context.Context, courtID int64, date time.Time) (slots []*domain.TimeSlot, err error) {
	started := time.Now()
	defer func() { c.observe("list_timeslots", started, err) }()

	key := cacheKey(courtID, date)
	if cached, ok := c.readCache(ctx, key); ok {
		return toDomainList(cached)
	}

	query := url.Values{}
	query.Set("date", date.Format(domain.DateFormat))
	endpoint := fmt.Sprintf("%s/api/v1/courts/%d/timeslots?%s", c.baseURL, courtID, query.Encode())

	var list TimeSlotList
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &list); err != nil {
		return nil, err
	}

	c.writeCache(ctx, key, &list)

	return toDomainList(&list)
}

// CreateTimeSlot создает запись о слоте (режим владельца площадки)
func (c *Client) CreateTimeSlot(ctx context.Context, courtID int64, date time.Time, slot domain.NewTimeSlot) (created *domain.TimeSlot, err error) {
	started := time.Now()
	defer func() { c.observe("create_timeslot", started, err) }()

	endpoint := fmt.Sprintf("%s/api/v1/courts/%d/timeslots", c.baseURL, courtID)
	body := CreateTimeSlotRequest{
		Date:      date.Format(domain.DateFormat),
		StartTime: slot.StartTime.String(),
		EndTime:   slot.EndTime.String(),
		Rate:      slot.Rate,
	}

	var resp TimeSlot
	if err := c.do(ctx, http.MethodPost, endpoint, body, &resp); err != nil {
		return nil, err
	}

	c.invalidate(ctx, courtID, date)

	return toDomain(&resp)
}

// BookTimeSlot бронирует слот для пользователя (режим клиента)
func (c *Client) BookTimeSlot(ctx context.Context, courtID int64, date time.Time, userID int64, slot domain.NewTimeSlot) (booked *domain.TimeSlot, err error) {
	started := time.Now()
	defer func() { c.observe("book_timeslot", started, err) }()

	endpoint := fmt.Sprintf("%s/api/v1/courts/%d/bookings", c.baseURL, courtID)
	body := BookTimeSlotRequest{
		UserID:    userID,
		Date:      date.Format(domain.DateFormat),
		StartTime: slot.StartTime.String(),
		EndTime:   slot.EndTime.String(),
		Rate:      slot.Rate,
	}

	var resp TimeSlot
	if err := c.do(ctx, http.MethodPost, endpoint, body, &resp); err != nil {
		return nil, err
	}

	c.invalidate(ctx, courtID, date)

	return toDomain(&resp)
}

// UpdateTimeSlot частично обновляет слот
func (c *Client) UpdateTimeSlot(ctx context.Context, slotID int64, patch domain.TimeSlotPatch) (updated *domain.TimeSlot, err error) {
	started := time.Now()
	defer func() { c.observe("update_timeslot", started, err) }()

	endpoint := fmt.Sprintf("%s/api/v1/timeslots/%d", c.baseURL, slotID)

	var resp TimeSlot
	if err := c.do(ctx, http.MethodPatch, endpoint, ToUpdateRequest(patch), &resp); err != nil {
		return nil, err
	}

	slot, err := toDomain(&resp)
	if err != nil {
		return nil, err
	}

	c.invalidate(ctx, slot.CourtID, slot.Date)

	return slot, nil
}

// do выполняет запрос и декодирует ответ в out
func (c *Client) do(ctx context.Context, method, endpoint string, in, out interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: rate limiter: %v", ErrInternal, err)
		}
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userID > 0 {
		req.Header.Set(userIDHeader, strconv.FormatInt(c.userID, 10))
	}
	if c.role != "" {
		req.Header.Set(userRoleHeader, c.role)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", ErrRejected, readErrorMessage(resp.Body))
	case http.StatusNotFound:
		return ErrTimeSlotNotFound
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrSlotConflict, readErrorMessage(resp.Body))
	default:
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, readErrorMessage(resp.Body))
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}

func (c *Client) readCache(ctx context.Context, key string) (*TimeSlotList, bool) {
	if c.cache == nil {
		return nil, false
	}

	raw, err := c.cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("Failed to read timeslots cache key=%s: %v", key, err)
		}
		return nil, false
	}

	var list TimeSlotList
	if err := json.Unmarshal(raw, &list); err != nil {
		c.log.Warn("Corrupted timeslots cache key=%s: %v", key, err)
		return nil, false
	}

	return &list, true
}

func (c *Client) writeCache(ctx context.Context, key string, list *TimeSlotList) {
	if c.cache == nil {
		return
	}

	raw, err := json.Marshal(list)
	if err != nil {
		return
	}

	if err := c.cache.Set(ctx, key, raw, c.cacheTTL).Err(); err != nil {
		c.log.Warn("Failed to write timeslots cache key=%s: %v", key, err)
	}
}

func (c *Client) invalidate(ctx context.Context, courtID int64, date time.Time) {
	if c.cache == nil {
		return
	}

	key := cacheKey(courtID, date)
	if err := c.cache.Del(ctx, key).Err(); err != nil {
		c.log.Warn("Failed to invalidate timeslots cache key=%s: %v", key, err)
	}
}

func (c *Client) observe(operation string, started time.Time, err error) {
	if c.metrics != nil {
		c.metrics.ObserveUpstream(operation, started, err)
	}
}

func cacheKey(courtID int64, date time.Time) string {
	return fmt.Sprintf("%s%d:%s", cacheKeyPrefix, courtID, date.Format(domain.DateFormat))
}

func readErrorMessage(r io.Reader) string {
	body, _ := io.ReadAll(io.LimitReader(r, 4096))

	var apiErr ErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		return apiErr.Message
	}

	return string(body)
}

func toDomain(s *TimeSlot) (*domain.TimeSlot, error) {
	slot, err := s.ToDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return slot, nil
}

func toDomainList(list *TimeSlotList) ([]*domain.TimeSlot, error) {
	slots := make([]*domain.TimeSlot, 0, len(list.TimeSlots))
	for i := range list.TimeSlots {
		slot, err := toDomain(&list.TimeSlots[i])
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, nil
}
