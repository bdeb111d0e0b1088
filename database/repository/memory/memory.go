// Package memory provides in-process implementations of the repositories.
// They back the "memory://" development mode and the package tests.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type store[T any] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
}

func newStore[T any]() *store[T] {
	return &store[T]{items: make(map[string]T)}
}

// values returns copies of all items in insertion order, filtered by keep.
func (s *store[T]) values(keep func(*T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.items))
	for _, id := range s.order {
		v, ok := s.items[id]
		if !ok {
			continue
		}
		if keep == nil || keep(&v) {
			out = append(out, v)
		}
	}
	return out
}

func (s *store[T]) put(id string, v T) {
	if _, exists := s.items[id]; !exists {
		s.order = append(s.order, id)
	}
	s.items[id] = v
}

func (s *store[T]) remove(id string) bool {
	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func newID(id string) string {
	if id != "" {
		return id
	}
	return uuid.New().String()
}

func sortByTimeDesc[T any](items []T, key func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool { return key(items[i]).After(key(items[j])) })
}
