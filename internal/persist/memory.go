package persist

import "sync"

// Memory is an in-process KV for tests.
type Memory struct {
	mu sync.RWMutex
	m  map[string]string
}

func NewMemory() *Memory { return &Memory{m: map[string]string{}} }

func (m *Memory) Get(sessionID, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.m[sessionID+"\x00"+key]
	return v, ok, nil
}

func (m *Memory) Set(sessionID, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.m[sessionID+"\x00"+key] = value
	return nil
}

func (m *Memory) Delete(sessionID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.m, sessionID+"\x00"+key)
	return nil
}
