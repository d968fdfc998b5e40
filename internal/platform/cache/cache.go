// Package cache provides the resource-keyed list cache with explicit
// per-mutation invalidation. A mutation invalidates exactly the resource
// keys it affects, replacing the old refetch-everything habit.
package cache

import (
	"context"
	"sync"
	"time"
)

// Store is a read-through cache for encoded list responses.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
}

// Key builds the cache key for a resource in a branch scope. An empty
// branchID addresses the central-warehouse view.
func Key(resource, branchID string) string {
	if branchID == "" {
		return resource
	}
	return resource + ":" + branchID
}

// Affected lists the keys a mutation on resource invalidates, in both the
// branch and the central scope. Stock-moving mutations also invalidate the
// stock lists they touch.
func Affected(resource, branchID string) []string {
	resources := []string{resource}
	switch resource {
	case "shipments":
		// Accepting a shipment moves stock into the branch.
		resources = append(resources, "medicines", "medical_devices")
	case "transfers":
		resources = append(resources, "medicines")
	case "arrivals":
		resources = append(resources, "medicines")
	case "device_arrivals":
		resources = append(resources, "medical_devices")
	case "dispensing_records":
		resources = append(resources, "medicines", "medical_devices")
	}
	keys := make([]string, 0, len(resources)*2)
	for _, r := range resources {
		keys = append(keys, Key(r, ""))
		if branchID != "" {
			keys = append(keys, Key(r, branchID))
		}
	}
	return keys
}

type memoryEntry struct {
	value   []byte
	expires time.Time
}

// Memory is the in-process Store used when no Redis address is configured.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemory builds an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry), now: time.Now}
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !entry.expires.IsZero() && m.now().After(entry.expires) {
		delete(m.entries, key)
		return nil, false, nil
	}
	return entry.value, true, nil
}

func (m *Memory) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expires = m.now().Add(ttl)
	}
	m.entries[key] = entry
	return nil
}

func (m *Memory) Invalidate(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.entries, key)
	}
	return nil
}
