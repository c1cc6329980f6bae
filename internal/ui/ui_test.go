package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carelink/internal/app"
	"carelink/internal/config"
	"carelink/internal/record"
)

func testModel(t *testing.T) Model {
	t.Helper()
	cfg, err := config.LoadOrCreate(t.TempDir() + "/config.toml")
	require.NoError(t, err)
	cfg.StorageBackend = "memory"

	a, err := app.Open(cfg)
	require.NoError(t, err)
	return New(a)
}

func pressEnter(m Model) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model), cmd
}

func pressKey(m Model, key rune) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{key}})
	return next.(Model), cmd
}

func TestLoginProceedsToDashboard(t *testing.T) {
	m := testModel(t)
	assert.Equal(t, pageLogin, m.page)

	m, _ = pressEnter(m)
	assert.Equal(t, pageDashboard, m.page)
	assert.Equal(t, "Jennifer Chen", m.caregiver)
}

func TestDashboardNavigation(t *testing.T) {
	m := testModel(t)
	m, _ = pressEnter(m)

	m, _ = pressKey(m, 't')
	assert.Equal(t, pageTasks, m.page)

	m, _ = pressKey(m, 'b')
	assert.Equal(t, pageDashboard, m.page)

	m, _ = pressKey(m, 'o')
	assert.Equal(t, pageNotes, m.page)
}

func TestNoteFormSaveSetsBadgeAndInsertsRecord(t *testing.T) {
	m := testModel(t)
	m, _ = pressEnter(m)
	m, _ = pressKey(m, 'o')

	m, _ = pressKey(m, 'n')
	require.Equal(t, modeForm, m.mode)
	require.NotNil(t, m.form)

	m.form.fields[0].value = "Doctor appointment"
	m.form.fields[1].value = "Medical"
	m.form.index = len(m.form.fields) - 1
	m.input.SetValue("Visit at 3pm")

	m, cmd := pressEnter(m)
	assert.Equal(t, modeList, m.mode)
	assert.True(t, m.savedShown)
	assert.NotNil(t, cmd, "a badge-clear timer must be scheduled")

	require.Equal(t, 1, m.notes.Len())
	saved := m.notes.Records()[0]
	assert.Equal(t, "Doctor appointment", saved.Title)
	assert.Equal(t, record.TagMedical, saved.Tag)
	assert.Equal(t, "Visit at 3pm", saved.Content)
}

func TestBlankNoteSaveIsNoop(t *testing.T) {
	m := testModel(t)
	m, _ = pressEnter(m)
	m, _ = pressKey(m, 'o')
	m, _ = pressKey(m, 'n')

	m.form.index = len(m.form.fields) - 1
	m.input.SetValue("   ")

	m, _ = pressEnter(m)
	assert.Equal(t, 0, m.notes.Len())
	assert.False(t, m.savedShown)
	assert.Contains(t, m.status, "Nothing to save")
}

func TestStaleBadgeTimerIsIgnored(t *testing.T) {
	m := testModel(t)
	m.savedShown = true
	m.savedSeq = 2

	next, _ := m.Update(savedClearMsg{seq: 1})
	m = next.(Model)
	assert.True(t, m.savedShown, "older timer must not clear a newer badge")

	next, _ = m.Update(savedClearMsg{seq: 2})
	m = next.(Model)
	assert.False(t, m.savedShown)
}

func TestLeavingPageInvalidatesBadgeTimer(t *testing.T) {
	m := testModel(t)
	m.savedShown = true
	seq := m.savedSeq

	m = m.gotoPage(pageDashboard)
	assert.False(t, m.savedShown)
	assert.Greater(t, m.savedSeq, seq)

	// The timer scheduled before navigation fires into the old sequence.
	next, _ := m.Update(savedClearMsg{seq: seq})
	m = next.(Model)
	assert.False(t, m.savedShown)
}

func TestMedicationToggleStampsCaregiver(t *testing.T) {
	m := testModel(t)
	m, _ = pressEnter(m)
	m, _ = pressKey(m, 'm')

	m.meds.Insert(record.Medication{Name: "Metformin", Dosage: "500mg", Time: "08:00 AM"})

	m, _ = pressKey(m, ' ')
	require.Equal(t, 1, m.meds.Len())
	med := m.meds.Records()[0]
	assert.True(t, med.Taken)
	require.NotNil(t, med.TakenBy)
	assert.Equal(t, "Jennifer Chen", *med.TakenBy)

	m, _ = pressKey(m, ' ')
	med = m.meds.Records()[0]
	assert.False(t, med.Taken)
	assert.Nil(t, med.TakenAt)
	assert.Nil(t, med.TakenBy)
}

func TestClampCursor(t *testing.T) {
	assert.Equal(t, 0, clampCursor(-1, 3))
	assert.Equal(t, 2, clampCursor(5, 3))
	assert.Equal(t, 1, clampCursor(1, 3))
	assert.Equal(t, 0, clampCursor(2, 0))
}

func TestWrapIndex(t *testing.T) {
	assert.Equal(t, 0, wrapIndex(3, 3))
	assert.Equal(t, 2, wrapIndex(-1, 3))
	assert.Equal(t, 1, wrapIndex(4, 3))
	assert.Equal(t, 0, wrapIndex(1, 0))
}

func TestNormalizeNotePlaceholderTitle(t *testing.T) {
	n := normalizeNote(record.Note{Content: "  body  "})
	assert.Equal(t, record.UntitledTitle, n.Title)
	assert.Equal(t, "body", n.Content)

	blank := normalizeNote(record.Note{Title: "  ", Content: " "})
	assert.Empty(t, blank.Title)
	assert.Empty(t, blank.Content)
}
