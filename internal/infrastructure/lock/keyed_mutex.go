package lock

import (
	"sort"
	"sync"
)

// KeyedMutex serializes operations per entity key so operations on unrelated
// entities never wait on each other. Multi-key acquisition locks keys in
// sorted order, so a purchase against product A and a trade offering A for B
// cannot deadlock.
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		entries: make(map[string]*entry),
	}
}

// Lock acquires the mutex for every given key and returns the release
// function. Callers must defer the release so the lock is dropped on every
// exit path.
func (m *KeyedMutex) Lock(keys ...string) func() {
	ordered := dedupeSorted(keys)

	acquired := make([]*entry, 0, len(ordered))
	for _, key := range ordered {
		e := m.acquire(key)
		e.mu.Lock()
		acquired = append(acquired, e)
	}

	released := false
	return func() {
		if released {
			return
		}
		released = true
		for i := len(acquired) - 1; i >= 0; i-- {
			acquired[i].mu.Unlock()
			m.release(ordered[i])
		}
	}
}

func (m *KeyedMutex) acquire(key string) *entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		e = &entry{}
		m.entries[key] = e
	}
	e.refs++
	return e
}

func (m *KeyedMutex) release(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return
	}
	e.refs--
	if e.refs <= 0 {
		delete(m.entries, key)
	}
}

func dedupeSorted(keys []string) []string {
	ordered := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		ordered = append(ordered, key)
	}
	sort.Strings(ordered)
	return ordered
}
