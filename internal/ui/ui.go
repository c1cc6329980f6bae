// Package ui implements the CareLink terminal interface: a login gate, the
// dashboard, and the task, medication and notes pages, all driven by one
// Bubble Tea model.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"carelink/internal/app"
	"carelink/internal/config"
	"carelink/internal/editor"
	"carelink/internal/record"
	"carelink/internal/store"
)

type page int

const (
	pageLogin page = iota
	pageDashboard
	pageTasks
	pageMeds
	pageNotes
)

type mode int

const (
	modeList mode = iota
	modeForm
	modeConfirmDelete
)

// savedBadgeDuration is how long the Saved badge stays visible after a
// successful note save.
const savedBadgeDuration = 5 * time.Second

// savedClearMsg clears the Saved badge. The sequence number ties the message
// to the save that scheduled it, so a stale timer cannot clear a newer badge.
type savedClearMsg struct {
	seq int
}

type Model struct {
	cfg config.Config

	notes *store.Store[record.Note]
	tasks *store.Store[record.Task]
	meds  *store.Store[record.Medication]

	noteEd *editor.Editor[record.Note]
	taskEd *editor.Editor[record.Task]
	medEd  *editor.Editor[record.Medication]

	caregiver string

	page   page
	mode   mode
	cursor int
	input  textinput.Model
	form   *formState
	status string

	pendingDelID   string
	pendingDelName string

	savedSeq   int
	savedShown bool

	width int
}

func New(a *app.App) Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 48
	ti.Placeholder = "Caregiver name"
	ti.SetValue(a.Cfg.Caregiver.Name)
	ti.Focus()

	return Model{
		cfg:   a.Cfg,
		notes: a.Notes,
		tasks: a.Tasks,
		meds:  a.Meds,
		noteEd: editor.New(a.Notes, editor.Config[record.Note]{
			Blank:     func() record.Note { return record.Note{Tag: record.TagGeneral} },
			Valid:     func(n record.Note) bool { return n.Title != "" || n.Content != "" },
			Normalize: normalizeNote,
		}),
		taskEd: editor.New(a.Tasks, editor.Config[record.Task]{
			Blank:     func() record.Task { return record.Task{Category: record.CategoryGeneral} },
			Valid:     func(t record.Task) bool { return t.Title != "" },
			Normalize: normalizeTask,
		}),
		medEd: editor.New(a.Meds, editor.Config[record.Medication]{
			Blank:     func() record.Medication { return record.Medication{} },
			Valid:     func(m record.Medication) bool { return m.Name != "" },
			Normalize: normalizeMedication,
		}),
		caregiver: a.Cfg.Caregiver.Name,
		page:      pageLogin,
		mode:      modeList,
		input:     ti,
		status:    "Welcome to CareLink. Press Enter to sign in.",
	}
}

// Run starts the TUI over the opened stores and blocks until the user quits.
func Run(a *app.App) error {
	program := tea.NewProgram(New(a))
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case savedClearMsg:
		if msg.seq == m.savedSeq {
			m.savedShown = false
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}
	if m.page == pageLogin {
		return m.updateLogin(key, msg)
	}
	switch m.mode {
	case modeForm:
		return m.updateFormMode(key, msg)
	case modeConfirmDelete:
		return m.updateDeleteConfirm(key)
	}
	if m.page == pageDashboard {
		return m.updateDashboard(key)
	}
	return m.updateListMode(key)
}

func (m Model) updateLogin(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Confirm, "enter":
		name := strings.TrimSpace(m.input.Value())
		if name == "" {
			name = m.cfg.Caregiver.Name
		}
		m.caregiver = name
		m.input.Blur()
		m.page = pageDashboard
		m.status = fmt.Sprintf("Signed in as %s.", name)
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateDashboard(key string) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Tasks:
		return m.gotoPage(pageTasks), nil
	case m.cfg.Keys.Meds:
		return m.gotoPage(pageMeds), nil
	case m.cfg.Keys.Notes:
		return m.gotoPage(pageNotes), nil
	}
	return m, nil
}

func (m Model) gotoPage(p page) Model {
	// Leaving a page invalidates any outstanding badge timer.
	m.savedShown = false
	m.savedSeq++
	m.page = p
	m.mode = modeList
	m.cursor = 0
	m.form = nil
	switch p {
	case pageTasks:
		m.status = "Tasks: a add, e edit, space toggle, d delete, b back."
	case pageMeds:
		m.status = "Medications: a add, e edit, space mark taken, d delete, b back."
	case pageNotes:
		m.status = "Notes: n new, enter edit, d delete, b back."
	default:
		m.status = "Dashboard: t tasks, m medications, o notes, q quit."
	}
	return m
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Dashboard:
		return m.gotoPage(pageDashboard), nil
	case m.cfg.Keys.Down, "down":
		m.cursor = clampCursor(m.cursor+1, m.listLen())
		return m, nil
	case m.cfg.Keys.Up, "up":
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, m.listLen())
		}
		return m, nil
	}

	switch m.page {
	case pageTasks:
		return m.updateTaskKeys(key)
	case pageMeds:
		return m.updateMedKeys(key)
	case pageNotes:
		return m.updateNoteKeys(key)
	}
	return m, nil
}

func (m Model) listLen() int {
	switch m.page {
	case pageTasks:
		return m.tasks.Len()
	case pageMeds:
		return m.meds.Len()
	case pageNotes:
		return m.notes.Len()
	}
	return 0
}

func (m Model) updateTaskKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Add:
		m.taskEd.StartNew()
		return m.openTaskForm("New Task"), nil
	case m.cfg.Keys.Edit, m.cfg.Keys.Open:
		task, ok := m.cursorTask()
		if !ok {
			m.status = "No tasks yet."
			return m, nil
		}
		if !m.taskEd.Select(task.ID) {
			m.status = "Task is gone."
			return m, nil
		}
		return m.openTaskForm("Edit Task"), nil
	case m.cfg.Keys.Toggle:
		task, ok := m.cursorTask()
		if !ok {
			return m, nil
		}
		if done, ok := m.tasks.Apply(task.ID, record.Task.ToggleCompleted); ok {
			m.status = fmt.Sprintf("%q marked %s.", done.Title, completionWord(done.Completed))
		}
		return m, nil
	case m.cfg.Keys.Delete:
		task, ok := m.cursorTask()
		if !ok {
			return m, nil
		}
		m.mode = modeConfirmDelete
		m.pendingDelID = task.ID
		m.pendingDelName = task.Title
		m.status = fmt.Sprintf("Delete %q? y/n", task.Title)
		return m, nil
	}
	return m, nil
}

func (m Model) updateMedKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Add:
		m.medEd.StartNew()
		return m.openMedForm("New Medication"), nil
	case m.cfg.Keys.Edit, m.cfg.Keys.Open:
		med, ok := m.cursorMed()
		if !ok {
			m.status = "No medications scheduled."
			return m, nil
		}
		if !m.medEd.Select(med.ID) {
			m.status = "Entry is gone."
			return m, nil
		}
		return m.openMedForm("Edit Medication"), nil
	case m.cfg.Keys.Toggle:
		med, ok := m.cursorMed()
		if !ok {
			return m, nil
		}
		at := time.Now()
		by := m.caregiver
		if toggled, ok := m.meds.Apply(med.ID, func(entry record.Medication) record.Medication {
			return entry.Toggle(at, by)
		}); ok {
			if toggled.Taken {
				m.status = fmt.Sprintf("%s marked taken by %s.", toggled.Name, by)
			} else {
				m.status = fmt.Sprintf("%s marked not taken.", toggled.Name)
			}
		}
		return m, nil
	case m.cfg.Keys.Delete:
		med, ok := m.cursorMed()
		if !ok {
			return m, nil
		}
		m.mode = modeConfirmDelete
		m.pendingDelID = med.ID
		m.pendingDelName = med.Name
		m.status = fmt.Sprintf("Delete %q? y/n", med.Name)
		return m, nil
	}
	return m, nil
}

func (m Model) updateNoteKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.New, m.cfg.Keys.Add:
		m.noteEd.StartNew()
		return m.openNoteForm("New Note"), nil
	case m.cfg.Keys.Edit, m.cfg.Keys.Open:
		note, ok := m.cursorNote()
		if !ok {
			m.status = "No notes yet. Press 'n' and write something."
			return m, nil
		}
		if !m.noteEd.Select(note.ID) {
			m.status = "Note is gone."
			return m, nil
		}
		return m.openNoteForm("Edit Note"), nil
	case m.cfg.Keys.Delete:
		note, ok := m.cursorNote()
		if !ok {
			return m, nil
		}
		m.mode = modeConfirmDelete
		m.pendingDelID = note.ID
		m.pendingDelName = note.Title
		m.status = fmt.Sprintf("Delete %q? y/n", note.Title)
		return m, nil
	}
	return m, nil
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", m.cfg.Keys.Cancel:
		m.mode = modeList
		m.pendingDelID = ""
		m.pendingDelName = ""
		m.status = "Delete cancelled."
		return m, nil
	case "y", "Y":
		name := m.pendingDelName
		switch m.page {
		case pageTasks:
			m.taskEd.Delete(m.pendingDelID)
		case pageMeds:
			m.medEd.Delete(m.pendingDelID)
		case pageNotes:
			m.noteEd.Delete(m.pendingDelID)
		}
		m.mode = modeList
		m.pendingDelID = ""
		m.pendingDelName = ""
		m.cursor = clampCursor(m.cursor, m.listLen())
		m.status = fmt.Sprintf("Deleted %q.", name)
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) cursorTask() (record.Task, bool) {
	recs := m.tasks.Records()
	if len(recs) == 0 {
		return record.Task{}, false
	}
	return recs[clampCursor(m.cursor, len(recs))], true
}

func (m Model) cursorMed() (record.Medication, bool) {
	recs := m.meds.Records()
	if len(recs) == 0 {
		return record.Medication{}, false
	}
	return recs[clampCursor(m.cursor, len(recs))], true
}

// cursorNote resolves the cursor against the timeline's flattened order,
// which matches store recency order.
func (m Model) cursorNote() (record.Note, bool) {
	recs := m.notes.Records()
	if len(recs) == 0 {
		return record.Note{}, false
	}
	return recs[clampCursor(m.cursor, len(recs))], true
}

func normalizeNote(n record.Note) record.Note {
	n.Title = strings.TrimSpace(n.Title)
	n.Content = strings.TrimSpace(n.Content)
	if n.Title == "" && n.Content != "" {
		n.Title = record.UntitledTitle
	}
	if !n.Tag.IsValid() {
		n.Tag = record.TagGeneral
	}
	return n
}

func normalizeTask(t record.Task) record.Task {
	t.Title = strings.TrimSpace(t.Title)
	t.Description = strings.TrimSpace(t.Description)
	t.Time = strings.TrimSpace(t.Time)
	if !t.Category.IsValid() {
		t.Category = record.CategoryGeneral
	}
	return t
}

func normalizeMedication(med record.Medication) record.Medication {
	med.Name = strings.TrimSpace(med.Name)
	med.Dosage = strings.TrimSpace(med.Dosage)
	med.Time = strings.TrimSpace(med.Time)
	return med
}

func completionWord(done bool) string {
	if done {
		return "completed"
	}
	return "pending"
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
