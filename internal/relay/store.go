package relay

import (
	"context"
	"fmt"
	"sync"
	"time"

	"telegram-relay-bot/internal/domain"
)

type mapping struct {
	correspondent domain.Identity
	recordedAt    time.Time
}

// Store - потокобезопасное in-memory хранилище соответствий
// "идентификатор пересланной копии -> собеседник".
// Ключ записывается один раз и никогда не переназначается.
// Без TTL записи живут до перезапуска процесса.
type Store struct {
	mu      sync.RWMutex
	entries map[domain.MessageID]mapping
	ttl     time.Duration
	clock   func() time.Time
}

// StoreOption определяет функциональную опцию для Store.
type StoreOption func(*Store)

// WithTTL ограничивает срок жизни записи. Нулевое значение отключает устаревание.
func WithTTL(ttl time.Duration) StoreOption {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock подменяет источник времени (используется в тестах).
func WithClock(clock func() time.Time) StoreOption {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewStore создает пустое хранилище.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		entries: make(map[domain.MessageID]mapping),
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record сохраняет соответствие. Если ключ уже есть (даже устаревший, но не очищенный),
// возвращает ErrDuplicateKey и не меняет существующую запись.
func (s *Store) Record(relayed domain.MessageID, correspondent domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.entries[relayed]; ok {
		return fmt.Errorf("%w: message %d already maps to %d", ErrDuplicateKey, relayed, existing.correspondent)
	}
	s.entries[relayed] = mapping{correspondent: correspondent, recordedAt: s.clock()}
	return nil
}

// Resolve возвращает собеседника для пересланной копии или ErrNotFound.
func (s *Store) Resolve(relayed domain.MessageID) (domain.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.entries[relayed]
	if !ok || s.expired(m) {
		return 0, fmt.Errorf("%w: message %d", ErrNotFound, relayed)
	}
	return m.correspondent, nil
}

// Len возвращает количество записей, включая устаревшие, но еще не очищенные.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// CleanupExpired удаляет устаревшие записи и возвращает их количество.
func (s *Store) CleanupExpired() int {
	if s.ttl == 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, m := range s.entries {
		if s.expired(m) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// StartCleanupTicker запускает периодическую очистку до отмены контекста.
// Без TTL ничего не делает.
func (s *Store) StartCleanupTicker(ctx context.Context, interval time.Duration) {
	if s.ttl == 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.CleanupExpired()
			}
		}
	}()
}

func (s *Store) expired(m mapping) bool {
	return s.ttl > 0 && s.clock().Sub(m.recordedAt) >= s.ttl
}
