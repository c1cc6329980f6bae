package editor

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carelink/internal/record"
	"carelink/internal/storage"
	"carelink/internal/store"
)

func fixedClock(milli int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(milli) }
}

func noteConfig() Config[record.Note] {
	return Config[record.Note]{
		Blank: func() record.Note { return record.Note{Tag: record.TagGeneral} },
		Valid: func(n record.Note) bool { return n.Title != "" || n.Content != "" },
		Normalize: func(n record.Note) record.Note {
			n.Title = strings.TrimSpace(n.Title)
			n.Content = strings.TrimSpace(n.Content)
			if n.Title == "" && n.Content != "" {
				n.Title = record.UntitledTitle
			}
			return n
		},
	}
}

func newEditor(t *testing.T, payload string, nowMilli int64) (*Editor[record.Note], *store.Store[record.Note]) {
	t.Helper()
	slot := storage.NewMemory()
	if payload != "" {
		require.NoError(t, slot.Write("carelink_notes_v2", []byte(payload)))
	}
	st := store.New(slot, "carelink_notes_v2", record.DecodeNote,
		store.WithClock[record.Note](fixedClock(nowMilli)))
	st.Load()
	return New(st, noteConfig()), st
}

func TestStartsCreatingWithBlankDraft(t *testing.T) {
	ed, _ := newEditor(t, "", 1700000000000)

	assert.False(t, ed.Editing())
	assert.Equal(t, record.TagGeneral, ed.Draft().Tag)
	assert.Empty(t, ed.Draft().Title)
}

func TestSelectCopiesRecordIntoDraft(t *testing.T) {
	ed, st := newEditor(t, `[{"id":"n1","title":"Old Title","content":"body","tag":"Mood","updatedAt":1600000000000}]`, 1700000000000)

	require.True(t, ed.Select("n1"))
	assert.True(t, ed.Editing())
	assert.Equal(t, "n1", ed.SelectedID())
	assert.Equal(t, "Old Title", ed.Draft().Title)

	// The draft is a copy: editing it leaves the store untouched until save.
	draft := ed.Draft()
	draft.Title = "scratch"
	ed.SetDraft(draft)
	stored, _ := st.Get("n1")
	assert.Equal(t, "Old Title", stored.Title)
}

func TestSelectUnknownIDFallsBackToCreating(t *testing.T) {
	ed, _ := newEditor(t, "", 1700000000000)

	assert.False(t, ed.Select("ghost"))
	assert.False(t, ed.Editing())
}

func TestSaveFromCreatingInsertsAndSelects(t *testing.T) {
	ed, st := newEditor(t, "", 1700000000000)

	draft := ed.Draft()
	draft.Title = "Doctor appointment"
	draft.Tag = record.TagMedical
	ed.SetDraft(draft)

	saved, ok := ed.Save()
	require.True(t, ok)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, int64(1700000000000), saved.UpdatedAt)
	assert.True(t, ed.Editing())
	assert.Equal(t, saved.ID, ed.SelectedID())
	assert.Equal(t, 1, st.Len())
}

func TestSaveFromEditingUpdatesInPlace(t *testing.T) {
	ed, st := newEditor(t, `[{"id":"n1","title":"Old Title","tag":"General","updatedAt":1600000000000}]`, 1700000000000)
	require.True(t, ed.Select("n1"))

	draft := ed.Draft()
	draft.Title = "Updated Title"
	ed.SetDraft(draft)

	saved, ok := ed.Save()
	require.True(t, ok)
	assert.Equal(t, "n1", saved.ID)
	assert.Equal(t, int64(1700000000000), saved.UpdatedAt)

	require.Equal(t, 1, st.Len())
	stored, _ := st.Get("n1")
	assert.Equal(t, "Updated Title", stored.Title)
}

func TestBlankSaveIsNoop(t *testing.T) {
	ed, st := newEditor(t, "", 1700000000000)

	draft := ed.Draft()
	draft.Title = "   "
	draft.Content = "\n\t"
	ed.SetDraft(draft)

	_, ok := ed.Save()
	assert.False(t, ok)
	assert.Equal(t, 0, st.Len())
	assert.False(t, ed.Editing())
}

func TestSaveWithOnlyContentGetsPlaceholderTitle(t *testing.T) {
	ed, _ := newEditor(t, "", 1700000000000)

	draft := ed.Draft()
	draft.Content = "just some content"
	ed.SetDraft(draft)

	saved, ok := ed.Save()
	require.True(t, ok)
	assert.Equal(t, record.UntitledTitle, saved.Title)
}

func TestSaveAfterSelectionVanishedInsertsFresh(t *testing.T) {
	ed, st := newEditor(t, `[{"id":"n1","title":"Old Title","tag":"General","updatedAt":1600000000000}]`, 1700000000000)
	require.True(t, ed.Select("n1"))

	// The record disappears underneath the editor.
	st.Delete("n1")

	draft := ed.Draft()
	draft.Title = "Rescued"
	ed.SetDraft(draft)

	saved, ok := ed.Save()
	require.True(t, ok)
	assert.NotEqual(t, "n1", saved.ID)
	assert.Equal(t, saved.ID, ed.SelectedID())
	assert.Equal(t, 1, st.Len())
}

func TestDeleteSelectedReturnsToCreating(t *testing.T) {
	ed, st := newEditor(t, `[{"id":"n1","title":"T","tag":"General","updatedAt":1600000000000}]`, 1700000000000)
	require.True(t, ed.Select("n1"))

	id, ok := ed.DeleteSelected()
	require.True(t, ok)
	assert.Equal(t, "n1", id)
	assert.False(t, ed.Editing())
	assert.Empty(t, ed.Draft().Title)
	assert.Equal(t, 0, st.Len())
}

func TestDeleteUnselectedKeepsSelection(t *testing.T) {
	ed, st := newEditor(t, `[
		{"id":"n1","title":"keep","tag":"General","updatedAt":2000},
		{"id":"n2","title":"drop","tag":"General","updatedAt":1000}
	]`, 1700000000000)
	require.True(t, ed.Select("n1"))

	ed.Delete("n2")
	assert.True(t, ed.Editing())
	assert.Equal(t, "n1", ed.SelectedID())
	assert.Equal(t, 1, st.Len())
}

func TestDeleteSelectedWithoutSelection(t *testing.T) {
	ed, _ := newEditor(t, "", 1700000000000)

	_, ok := ed.DeleteSelected()
	assert.False(t, ok)
}
