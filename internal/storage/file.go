package storage

import (
	"errors"
	"os"
	"path/filepath"
)

// FileSlots stores each slot as <dir>/<key>.json, overwritten whole on every
// write.
type FileSlots struct {
	dir string
}

func NewFileSlots(dir string) (*FileSlots, error) {
	if dir == "" {
		return nil, errors.New("slot directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	return &FileSlots{dir: dir}, nil
}

func (f *FileSlots) Read(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (f *FileSlots) Write(key string, data []byte) error {
	return os.WriteFile(f.path(key), data, 0o644)
}

func (f *FileSlots) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}
