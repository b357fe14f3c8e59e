package workflow

import "sync"

// table is the one storage abstraction backing all three record kinds:
// a mutex-guarded map keyed by user ID. No ordering, no persistence;
// rebuilt empty on every process start.
type table[V any] struct {
	mu sync.RWMutex
	m  map[string]V
}

func newTable[V any]() *table[V] {
	return &table[V]{m: make(map[string]V)}
}

func (t *table[V]) get(userID string) (V, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.m[userID]
	return v, ok
}

// set inserts or replaces.
func (t *table[V]) set(userID string, v V) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.m[userID] = v
}

// delete is a no-op for an absent key.
func (t *table[V]) delete(userID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.m, userID)
}

func (t *table[V]) has(userID string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.m[userID]
	return ok
}

func (t *table[V]) len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.m)
}

// items returns a copy of the map so callers can iterate and delete
// without holding the table lock.
func (t *table[V]) items() map[string]V {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]V, len(t.m))
	for k, v := range t.m {
		out[k] = v
	}
	return out
}
