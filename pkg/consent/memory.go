package consent

import (
	"context"
	"sync"
)

// MemorySettings is an in-memory SettingStore. Nothing survives the process.
type MemorySettings struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemorySettings makes an empty in-memory settings store
func NewMemorySettings() *MemorySettings {
	return &MemorySettings{values: make(map[string]string)}
}

// GetSetting returns the value for key, or empty string if not set
func (m *MemorySettings) GetSetting(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key], nil
}

// SetSetting stores value under key, replacing any previous value
func (m *MemorySettings) SetSetting(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
