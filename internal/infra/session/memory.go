package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtSlotService/internal/domain"
	"github.com/m04kA/SMC-CourtSlotService/pkg/types"
)

type memoryEntry struct {
	times     []types.TimeString
	owner     int64
	expiresAt time.Time
}

type memoryLock struct {
	token     string
	expiresAt time.Time
}

// MemoryStore хранилище выбора в памяти процесса. Используется, когда Redis не настроен
// (один инстанс сервиса, локальная разработка).
type MemoryStore struct {
	mu           sync.Mutex
	selections   map[string]memoryEntry
	locks        map[string]memoryLock
	selectionTTL time.Duration
	lockTTL      time.Duration
	now          func() time.Time
}

// NewMemoryStore создает хранилище выбора в памяти
func NewMemoryStore(selectionTTL, lockTTL time.Duration) *MemoryStore {
	return &MemoryStore{
		selections:   make(map[string]memoryEntry),
		locks:        make(map[string]memoryLock),
		selectionTTL: selectionTTL,
		lockTTL:      lockTTL,
		now:          time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, key domain.SelectionKey) (*domain.Selection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.selections[key.String()]
	if !ok || s.expired(entry.expiresAt) {
		delete(s.selections, key.String())
		return domain.NewSelection(), nil
	}

	selection := domain.NewSelection(entry.times...)
	selection.Bind(entry.owner)

	return selection, nil
}

func (s *MemoryStore) Save(_ context.Context, key domain.SelectionKey, selection *domain.Selection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if selection == nil || selection.IsEmpty() {
		delete(s.selections, key.String())
		return nil
	}

	s.selections[key.String()] = memoryEntry{
		times:     selection.Times(),
		owner:     selection.Owner(),
		expiresAt: s.deadline(s.selectionTTL),
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key domain.SelectionKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.selections, key.String())
	return nil
}

func (s *MemoryStore) AcquireSubmitLock(_ context.Context, key domain.SelectionKey) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if lock, ok := s.locks[key.String()]; ok && !s.expired(lock.expiresAt) {
		return "", false, nil
	}
	token := uuid.NewString()
	s.locks[key.String()] = memoryLock{token: token, expiresAt: s.deadline(s.lockTTL)}
	return token, true, nil
}

// ReleaseSubmitLock снимает блокировку, только если она поставлена тем же токеном
func (s *MemoryStore) ReleaseSubmitLock(_ context.Context, key domain.SelectionKey, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if lock, ok := s.locks[key.String()]; ok && lock.token == token {
		delete(s.locks, key.String())
	}
	return nil
}

func (s *MemoryStore) IsSubmitLocked(_ context.Context, key domain.SelectionKey) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[key.String()]
	if !ok {
		return false, nil
	}
	if s.expired(lock.expiresAt) {
		delete(s.locks, key.String())
		return false, nil
	}
	return true, nil
}

// deadline нулевой TTL означает запись без срока действия
func (s *MemoryStore) deadline(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return s.now().Add(ttl)
}

func (s *MemoryStore) expired(until time.Time) bool {
	return !until.IsZero() && !s.now().Before(until)
}
