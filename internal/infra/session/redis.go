package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-CourtSlotService/internal/domain"
	"github.com/m04kA/SMC-CourtSlotService/pkg/types"
)

const (
	selectionPrefix = "slotgrid:selection:"
	lockPrefix      = "slotgrid:submit-lock:"
)

// selectionRecord формат хранения выбора в Redis
type selectionRecord struct {
	Times []string `json:"times"`
	Owner int64    `json:"owner,omitempty"`
}

// releaseLockScript удаляет блокировку, только если она поставлена тем же токеном
var releaseLockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisStore хранит выбор пользователя в Redis с TTL
type RedisStore struct {
	client       *redis.Client
	selectionTTL time.Duration
	lockTTL      time.Duration
}

// NewRedisStore создает хранилище выбора поверх Redis
func NewRedisStore(client *redis.Client, selectionTTL, lockTTL time.Duration) *RedisStore {
	return &RedisStore{
		client:       client,
		selectionTTL: selectionTTL,
		lockTTL:      lockTTL,
	}
}

// Get возвращает выбор по ключу; отсутствие записи - пустой выбор
func (s *RedisStore) Get(ctx context.Context, key domain.SelectionKey) (*domain.Selection, error) {
	raw, err := s.client.Get(ctx, selectionPrefix+key.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.NewSelection(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - %v", ErrStore, err)
	}

	var record selectionRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	times := make([]types.TimeString, 0, len(record.Times))
	for _, t := range record.Times {
		times = append(times, types.TimeString(t))
	}

	selection := domain.NewSelection(times...)
	selection.Bind(record.Owner)

	return selection, nil
}

// Save сохраняет выбор. Пустой выбор удаляет запись.
func (s *RedisStore) Save(ctx context.Context, key domain.SelectionKey, selection *domain.Selection) error {
	if selection == nil || selection.IsEmpty() {
		return s.Delete(ctx, key)
	}

	times := selection.Times()
	record := selectionRecord{Times: make([]string, len(times)), Owner: selection.Owner()}
	for i, t := range times {
		record.Times[i] = t.String()
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("%w: Save - marshal: %v", ErrStore, err)
	}

	if err := s.client.Set(ctx, selectionPrefix+key.String(), data, s.selectionTTL).Err(); err != nil {
		return fmt.Errorf("%w: Save - %v", ErrStore, err)
	}

	return nil
}

// Delete удаляет выбор
func (s *RedisStore) Delete(ctx context.Context, key domain.SelectionKey) error {
	if err := s.client.Del(ctx, selectionPrefix+key.String()).Err(); err != nil {
		return fmt.Errorf("%w: Delete - %v", ErrStore, err)
	}
	return nil
}

// AcquireSubmitLock ставит блокировку отправки и возвращает ее токен.
// Возвращает false, если отправка уже идет. Блокировка истекает сама через lockTTL.
func (s *RedisStore) AcquireSubmitLock(ctx context.Context, key domain.SelectionKey) (string, bool, error) {
	token := uuid.NewString()
	ok, err := s.client.SetNX(ctx, lockPrefix+key.String(), token, s.lockTTL).Result()
	if err != nil {
		return "", false, fmt.Errorf("%w: AcquireSubmitLock - %v", ErrStore, err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// ReleaseSubmitLock снимает блокировку отправки, если она все еще принадлежит token.
// Истекшую и перехваченную другой отправкой блокировку не трогает.
func (s *RedisStore) ReleaseSubmitLock(ctx context.Context, key domain.SelectionKey, token string) error {
	if err := releaseLockScript.Run(ctx, s.client, []string{lockPrefix + key.String()}, token).Err(); err != nil {
		return fmt.Errorf("%w: ReleaseSubmitLock - %v", ErrStore, err)
	}
	return nil
}

// IsSubmitLocked возвращает true, если по ключу идет отправка
func (s *RedisStore) IsSubmitLocked(ctx context.Context, key domain.SelectionKey) (bool, error) {
	n, err := s.client.Exists(ctx, lockPrefix+key.String()).Result()
	if err != nil {
		return false, fmt.Errorf("%w: IsSubmitLocked - %v", ErrStore, err)
	}
	return n > 0, nil
}
