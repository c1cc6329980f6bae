// Package editor tracks which record is being edited and the draft field
// values bound to the form. The draft is always a copy of the record's
// values; the store sees nothing until an explicit save.
package editor

import "carelink/internal/store"

// Config wires an Editor to its domain type.
type Config[T store.Record[T]] struct {
	// Blank produces the draft used when creating a new record.
	Blank func() T

	// Valid gates Save. An invalid draft makes Save a no-op.
	Valid func(T) bool

	// Normalize, if set, is applied to the draft before commit (trimming,
	// placeholder titles).
	Normalize func(T) T
}

// Editor is the selection/draft state machine for one record store. An empty
// selection means Creating; otherwise the editor is Editing the selected id.
type Editor[T store.Record[T]] struct {
	st       *store.Store[T]
	cfg      Config[T]
	selected string
	draft    T
}

func New[T store.Record[T]](st *store.Store[T], cfg Config[T]) *Editor[T] {
	e := &Editor[T]{st: st, cfg: cfg}
	e.draft = cfg.Blank()
	return e
}

// Editing reports whether a record is selected.
func (e *Editor[T]) Editing() bool {
	return e.selected != ""
}

func (e *Editor[T]) SelectedID() string {
	return e.selected
}

func (e *Editor[T]) Draft() T {
	return e.draft
}

func (e *Editor[T]) SetDraft(draft T) {
	e.draft = draft
}

// Select loads the record's current values into the draft and moves to
// Editing(id). If the id no longer exists the editor falls back to Creating.
func (e *Editor[T]) Select(id string) bool {
	rec, ok := e.st.Get(id)
	if !ok {
		e.StartNew()
		return false
	}
	e.selected = id
	e.draft = rec
	return true
}

// StartNew clears the selection and resets the draft to blanks.
func (e *Editor[T]) StartNew() {
	e.selected = ""
	e.draft = e.cfg.Blank()
}

// Save commits the draft: insert when creating, update when editing. The
// editor ends up editing the committed record. An invalid draft is a no-op.
// If the selected record vanished underneath the editor, the draft is
// inserted as a new record instead of being dropped.
func (e *Editor[T]) Save() (T, bool) {
	draft := e.draft
	if e.cfg.Normalize != nil {
		draft = e.cfg.Normalize(draft)
	}
	if !e.cfg.Valid(draft) {
		var zero T
		return zero, false
	}

	if e.selected != "" {
		if rec, ok := e.st.Update(e.selected, draft); ok {
			e.draft = rec
			return rec, true
		}
	}

	rec := e.st.Insert(draft)
	e.selected = rec.RecordID()
	e.draft = rec
	return rec, true
}

// Delete removes a record from the store. Deleting the current selection
// returns the editor to Creating.
func (e *Editor[T]) Delete(id string) {
	e.st.Delete(id)
	if e.selected == id {
		e.StartNew()
	}
}

// DeleteSelected removes the selected record, if any, and returns to
// Creating.
func (e *Editor[T]) DeleteSelected() (string, bool) {
	if e.selected == "" {
		return "", false
	}
	id := e.selected
	e.Delete(id)
	return id, true
}
