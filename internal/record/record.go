// Package record defines the CareLink domain records (notes, tasks and
// medication schedule entries) along with their closed enumerations and the
// pure reducers that mutate them.
package record

import (
	"time"

	"github.com/google/uuid"
)

// UntitledTitle is the display placeholder for a note or task saved without
// a title.
const UntitledTitle = "(Untitled)"

// UnnamedMedication is the display placeholder for a medication entry saved
// without a name.
const UnnamedMedication = "(Unnamed)"

// NewID returns a fresh record identifier.
func NewID() string {
	return uuid.NewString()
}

// NoteTag categorizes a care note.
type NoteTag string

const (
	TagMedical   NoteTag = "Medical"
	TagVitals    NoteTag = "Vitals"
	TagMood      NoteTag = "Mood"
	TagNutrition NoteTag = "Nutrition"
	TagActivity  NoteTag = "Activity"
	TagGeneral   NoteTag = "General"
)

// ValidNoteTags returns all note tags in display order.
func ValidNoteTags() []NoteTag {
	return []NoteTag{TagMedical, TagVitals, TagMood, TagNutrition, TagActivity, TagGeneral}
}

// IsValid reports whether the tag is a known value.
func (t NoteTag) IsValid() bool {
	for _, valid := range ValidNoteTags() {
		if t == valid {
			return true
		}
	}
	return false
}

// TaskCategory categorizes a care task.
type TaskCategory string

const (
	CategoryGeneral    TaskCategory = "General"
	CategoryVitals     TaskCategory = "Vitals"
	CategoryMedication TaskCategory = "Medication"
	CategoryPersonal   TaskCategory = "Personal"
	CategoryNutrition  TaskCategory = "Nutrition"
	CategoryTherapy    TaskCategory = "Therapy"
	CategoryActivity   TaskCategory = "Activity"
)

// ValidTaskCategories returns all task categories in display order.
func ValidTaskCategories() []TaskCategory {
	return []TaskCategory{
		CategoryGeneral, CategoryVitals, CategoryMedication, CategoryPersonal,
		CategoryNutrition, CategoryTherapy, CategoryActivity,
	}
}

// IsValid reports whether the category is a known value.
func (c TaskCategory) IsValid() bool {
	for _, valid := range ValidTaskCategories() {
		if c == valid {
			return true
		}
	}
	return false
}

// Note is a free-text care note shown on the day-grouped timeline.
type Note struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	Tag       NoteTag `json:"tag"`
	UpdatedAt int64   `json:"updatedAt"`
}

func (n Note) RecordID() string { return n.ID }
func (n Note) Updated() int64   { return n.UpdatedAt }

// Stamp returns a copy with the given identity and mutation time.
func (n Note) Stamp(id string, updatedAt int64) Note {
	n.ID = id
	n.UpdatedAt = updatedAt
	return n
}

// Task is a care task with a completion flag.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    TaskCategory `json:"category"`
	Time        string       `json:"time,omitempty"`
	Completed   bool         `json:"completed"`
	UpdatedAt   int64        `json:"updatedAt"`
}

func (t Task) RecordID() string { return t.ID }
func (t Task) Updated() int64   { return t.UpdatedAt }

func (t Task) Stamp(id string, updatedAt int64) Task {
	t.ID = id
	t.UpdatedAt = updatedAt
	return t
}

// ToggleCompleted flips the completion flag.
func (t Task) ToggleCompleted() Task {
	t.Completed = !t.Completed
	return t
}

// Medication is one entry in the daily medication schedule. TakenAt and
// TakenBy are set only while Taken is true.
type Medication struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Dosage    string     `json:"dosage"`
	Time      string     `json:"time"`
	Taken     bool       `json:"taken"`
	TakenAt   *time.Time `json:"takenAt"`
	TakenBy   *string    `json:"takenBy"`
	UpdatedAt int64      `json:"updatedAt"`
}

func (m Medication) RecordID() string { return m.ID }
func (m Medication) Updated() int64   { return m.UpdatedAt }

func (m Medication) Stamp(id string, updatedAt int64) Medication {
	m.ID = id
	m.UpdatedAt = updatedAt
	return m
}

// Toggle flips the taken flag. Marking a medication taken stamps when and by
// whom; unmarking clears both, so a double toggle restores the entry exactly.
func (m Medication) Toggle(at time.Time, by string) Medication {
	if m.Taken {
		m.Taken = false
		m.TakenAt = nil
		m.TakenBy = nil
		return m
	}
	m.Taken = true
	m.TakenAt = &at
	m.TakenBy = &by
	return m
}
