// Package app wires the configured storage backend to the three feature
// stores.
package app

import (
	"fmt"
	"path/filepath"

	"carelink/internal/config"
	"carelink/internal/record"
	"carelink/internal/storage"
	"carelink/internal/store"
)

// Storage slot keys, one per feature.
const (
	NotesKey = "carelink_notes_v2"
	TasksKey = "carelink_tasks"
	MedsKey  = "carelink_medications"
)

// App holds the opened stores for one run of the program.
type App struct {
	Cfg   config.Config
	Notes *store.Store[record.Note]
	Tasks *store.Store[record.Task]
	Meds  *store.Store[record.Medication]

	sqlite *storage.SQLiteSlots
}

// Open builds the slot backend named by the config and the stores on top of
// it, and loads all three collections.
func Open(cfg config.Config) (*App, error) {
	a := &App{Cfg: cfg}

	var slot storage.Slot
	switch cfg.StorageBackend {
	case "", "file":
		slots, err := storage.NewFileSlots(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open file storage: %w", err)
		}
		slot = slots
	case "sqlite":
		slots, err := storage.OpenSQLite(filepath.Join(cfg.DataDir, config.DefaultDBName))
		if err != nil {
			return nil, fmt.Errorf("open sqlite storage: %w", err)
		}
		a.sqlite = slots
		slot = slots
	case "memory":
		slot = storage.NewMemory()
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	a.Notes = store.New(slot, NotesKey, record.DecodeNote)
	a.Tasks = store.New(slot, TasksKey, record.DecodeTask)
	a.Meds = store.New(slot, MedsKey, record.DecodeMedication)

	a.Notes.Load()
	a.Tasks.Load()
	a.Meds.Load()
	return a, nil
}

func (a *App) Close() error {
	if a.sqlite != nil {
		return a.sqlite.Close()
	}
	return nil
}
