package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slotContract exercises the behavior every backend must share.
func slotContract(t *testing.T, slot Slot) {
	t.Helper()

	_, ok, err := slot.Read("carelink_notes_v2")
	require.NoError(t, err)
	assert.False(t, ok, "unwritten key must read as absent")

	require.NoError(t, slot.Write("carelink_notes_v2", []byte(`[{"id":"n1"}]`)))
	data, ok, err := slot.Read("carelink_notes_v2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[{"id":"n1"}]`, string(data))

	// Writes overwrite the whole slot.
	require.NoError(t, slot.Write("carelink_notes_v2", []byte(`[]`)))
	data, ok, err = slot.Read("carelink_notes_v2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[]`, string(data))

	// Keys are independent.
	require.NoError(t, slot.Write("carelink_tasks", []byte(`[{"id":"t1"}]`)))
	data, ok, err = slot.Read("carelink_notes_v2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[]`, string(data))
}

func TestMemorySlots(t *testing.T) {
	slotContract(t, NewMemory())
}

func TestMemoryCopiesData(t *testing.T) {
	m := NewMemory()
	payload := []byte(`[1]`)
	require.NoError(t, m.Write("k", payload))
	payload[1] = '2'

	data, ok, err := m.Read("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[1]`, string(data))
}

func TestFileSlots(t *testing.T) {
	slots, err := NewFileSlots(t.TempDir())
	require.NoError(t, err)
	slotContract(t, slots)
}

func TestFileSlotsLayout(t *testing.T) {
	dir := t.TempDir()
	slots, err := NewFileSlots(dir)
	require.NoError(t, err)

	require.NoError(t, slots.Write("carelink_notes_v2", []byte(`[]`)))
	data, err := os.ReadFile(filepath.Join(dir, "carelink_notes_v2.json"))
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}

func TestFileSlotsCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	_, err := NewFileSlots(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFileSlotsEmptyDir(t *testing.T) {
	_, err := NewFileSlots("")
	assert.Error(t, err)
}

func TestSQLiteSlots(t *testing.T) {
	slots, err := OpenSQLite(filepath.Join(t.TempDir(), "carelink.db"))
	require.NoError(t, err)
	defer slots.Close()

	slotContract(t, slots)
}

func TestSQLiteSlotsPersistAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carelink.db")

	slots, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, slots.Write("carelink_notes_v2", []byte(`[{"id":"n1"}]`)))
	require.NoError(t, slots.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	data, ok, err := reopened.Read("carelink_notes_v2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[{"id":"n1"}]`, string(data))
}

func TestSQLiteEmptyPath(t *testing.T) {
	_, err := OpenSQLite("")
	assert.Error(t, err)
}
