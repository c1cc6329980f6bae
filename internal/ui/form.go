package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"carelink/internal/record"
)

// formState is the field-cycling editor used by all three feature forms: one
// text input shared across the fields, tab/enter to move, enter on the last
// field to commit.
type formState struct {
	heading string
	fields  []formField
	index   int
}

type formField struct {
	label string
	value string
}

func (f *formState) current() *formField {
	return &f.fields[f.index]
}

func (f *formState) value(i int) string {
	return strings.TrimSpace(f.fields[i].value)
}

func (m Model) openForm(f *formState) Model {
	m.form = f
	m.mode = modeForm
	m.input.SetValue(f.current().value)
	m.input.Placeholder = f.current().label
	m.input.CursorEnd()
	m.input.Focus()
	m.status = m.formPrompt()
	return m
}

func (m Model) openTaskForm(heading string) Model {
	draft := m.taskEd.Draft()
	return m.openForm(&formState{
		heading: heading,
		fields: []formField{
			{label: "title", value: draft.Title},
			{label: "description", value: draft.Description},
			{label: "time (e.g. 08:00 AM)", value: draft.Time},
			{label: taskCategoryLabel(), value: string(draft.Category)},
		},
	})
}

func (m Model) openMedForm(heading string) Model {
	draft := m.medEd.Draft()
	return m.openForm(&formState{
		heading: heading,
		fields: []formField{
			{label: "name", value: draft.Name},
			{label: "dosage (e.g. 500mg)", value: draft.Dosage},
			{label: "time (e.g. 08:00 AM)", value: draft.Time},
		},
	})
}

func (m Model) openNoteForm(heading string) Model {
	draft := m.noteEd.Draft()
	return m.openForm(&formState{
		heading: heading,
		fields: []formField{
			{label: "title", value: draft.Title},
			{label: noteTagLabel(), value: string(draft.Tag)},
			{label: "content", value: draft.Content},
		},
	})
}

func (m Model) updateFormMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		m.mode = modeList
		return m, nil
	}
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.form = nil
		m.mode = modeList
		m.input.Blur()
		m.status = "Edit cancelled."
		return m, nil
	case m.cfg.Keys.NextField, "down":
		m.form.current().value = m.input.Value()
		m.form.index = wrapIndex(m.form.index+1, len(m.form.fields))
		return m.refreshFormInput(), nil
	case m.cfg.Keys.PrevField, "up":
		m.form.current().value = m.input.Value()
		m.form.index = wrapIndex(m.form.index-1, len(m.form.fields))
		return m.refreshFormInput(), nil
	case m.cfg.Keys.Confirm, "enter":
		m.form.current().value = m.input.Value()
		if m.form.index < len(m.form.fields)-1 {
			m.form.index++
			return m.refreshFormInput(), nil
		}
		return m.submitForm()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) refreshFormInput() Model {
	m.input.SetValue(m.form.current().value)
	m.input.Placeholder = m.form.current().label
	m.input.CursorEnd()
	m.status = m.formPrompt()
	return m
}

func (m Model) formPrompt() string {
	return fmt.Sprintf("Editing %s (field %d of %d). Enter to advance, Esc to cancel.",
		m.form.current().label, m.form.index+1, len(m.form.fields))
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	switch m.page {
	case pageTasks:
		return m.submitTaskForm(), nil
	case pageMeds:
		return m.submitMedForm(), nil
	case pageNotes:
		return m.submitNoteForm()
	}
	m.form = nil
	m.mode = modeList
	return m, nil
}

func (m Model) submitTaskForm() Model {
	draft := m.taskEd.Draft()
	draft.Title = m.form.value(0)
	draft.Description = m.form.value(1)
	draft.Time = m.form.value(2)
	draft.Category = record.ParseTaskCategory(m.form.value(3))
	m.taskEd.SetDraft(draft)

	saved, ok := m.taskEd.Save()
	m.closeForm()
	if !ok {
		m.status = "Nothing to save: task needs a title."
		return m
	}
	m.cursor = m.cursorForTask(saved.ID)
	m.status = fmt.Sprintf("Saved %q.", saved.Title)
	return m
}

func (m Model) submitMedForm() Model {
	draft := m.medEd.Draft()
	draft.Name = m.form.value(0)
	draft.Dosage = m.form.value(1)
	draft.Time = m.form.value(2)
	m.medEd.SetDraft(draft)

	saved, ok := m.medEd.Save()
	m.closeForm()
	if !ok {
		m.status = "Nothing to save: medication needs a name."
		return m
	}
	m.cursor = m.cursorForMed(saved.ID)
	m.status = fmt.Sprintf("Saved %s.", saved.Name)
	return m
}

func (m Model) submitNoteForm() (tea.Model, tea.Cmd) {
	draft := m.noteEd.Draft()
	draft.Title = m.form.value(0)
	draft.Tag = record.ParseNoteTag(m.form.value(1))
	draft.Content = m.form.value(2)
	m.noteEd.SetDraft(draft)

	saved, ok := m.noteEd.Save()
	m.closeForm()
	if !ok {
		m.status = "Nothing to save: write a title or some content."
		return m, nil
	}
	m.cursor = m.cursorForNote(saved.ID)
	m.status = fmt.Sprintf("Saved %q.", saved.Title)

	m.savedShown = true
	m.savedSeq++
	seq := m.savedSeq
	return m, tea.Tick(savedBadgeDuration, func(time.Time) tea.Msg {
		return savedClearMsg{seq: seq}
	})
}

func (m *Model) closeForm() {
	m.form = nil
	m.mode = modeList
	m.input.Blur()
}

func (m Model) cursorForTask(id string) int {
	for i, rec := range m.tasks.Records() {
		if rec.ID == id {
			return i
		}
	}
	return clampCursor(m.cursor, m.tasks.Len())
}

func (m Model) cursorForMed(id string) int {
	for i, rec := range m.meds.Records() {
		if rec.ID == id {
			return i
		}
	}
	return clampCursor(m.cursor, m.meds.Len())
}

func (m Model) cursorForNote(id string) int {
	for i, rec := range m.notes.Records() {
		if rec.ID == id {
			return i
		}
	}
	return clampCursor(m.cursor, m.notes.Len())
}

func taskCategoryLabel() string {
	names := make([]string, 0, len(record.ValidTaskCategories()))
	for _, cat := range record.ValidTaskCategories() {
		names = append(names, string(cat))
	}
	return "category (" + strings.Join(names, "/") + ")"
}

func noteTagLabel() string {
	names := make([]string, 0, len(record.ValidNoteTags()))
	for _, tag := range record.ValidNoteTags() {
		names = append(names, string(tag))
	}
	return "tag (" + strings.Join(names, "/") + ")"
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}
