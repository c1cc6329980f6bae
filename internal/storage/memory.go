package storage

// Memory is a map-backed Slot for tests and ephemeral runs.
type Memory struct {
	slots map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{slots: map[string][]byte{}}
}

func (m *Memory) Read(key string) ([]byte, bool, error) {
	data, ok := m.slots[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, true, nil
}

func (m *Memory) Write(key string, data []byte) error {
	stored := make([]byte, len(data))
	copy(stored, data)
	m.slots[key] = stored
	return nil
}
