// Package session - потокобезопасное in-memory хранилище с истечением записей по TTL.
package session

import (
	"sync"
	"time"
)

type Clock func() time.Time

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

type Store[K comparable, V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     Clock
	entries map[K]entry[V]
}

func New[K comparable, V any](ttl time.Duration) *Store[K, V] {
	return NewWithClock[K, V](ttl, time.Now)
}

func NewWithClock[K comparable, V any](ttl time.Duration, now Clock) *Store[K, V] {
	return &Store[K, V]{
		ttl:     ttl,
		now:     now,
		entries: make(map[K]entry[V]),
	}
}

// Get не возвращает истекшие записи, даже если Prune еще не успел их удалить.
func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || !s.now().Before(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set сохраняет значение и продлевает срок жизни записи.
func (s *Store[K, V]) Set(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry[V]{value: value, expiresAt: s.now().Add(s.ttl)}
}

func (s *Store[K, V]) Delete(key K) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
}

// Prune удаляет истекшие записи и возвращает их количество.
func (s *Store[K, V]) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

func (s *Store[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}
