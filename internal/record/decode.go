package record

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrMissingID marks a persisted entry that cannot be identified. Entries
// failing with it are dropped on load rather than surfaced to the user.
var ErrMissingID = errors.New("record has no usable id")

// DecodeNote validates one persisted note entry. Malformed fields fall back
// to documented defaults; only a missing id rejects the entry.
func DecodeNote(raw []byte, now time.Time) (Note, error) {
	var w struct {
		ID        json.RawMessage `json:"id"`
		Title     json.RawMessage `json:"title"`
		Content   json.RawMessage `json:"content"`
		Tag       json.RawMessage `json:"tag"`
		UpdatedAt json.RawMessage `json:"updatedAt"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return Note{}, err
	}

	id, ok := coerceID(w.ID)
	if !ok {
		return Note{}, ErrMissingID
	}
	return Note{
		ID:        id,
		Title:     coerceString(w.Title, UntitledTitle),
		Content:   coerceString(w.Content, ""),
		Tag:       ParseNoteTag(coerceString(w.Tag, "")),
		UpdatedAt: coerceMillis(w.UpdatedAt, now),
	}, nil
}

// DecodeTask validates one persisted task entry.
func DecodeTask(raw []byte, now time.Time) (Task, error) {
	var w struct {
		ID          json.RawMessage `json:"id"`
		Title       json.RawMessage `json:"title"`
		Description json.RawMessage `json:"description"`
		Category    json.RawMessage `json:"category"`
		Time        json.RawMessage `json:"time"`
		Completed   json.RawMessage `json:"completed"`
		UpdatedAt   json.RawMessage `json:"updatedAt"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return Task{}, err
	}

	id, ok := coerceID(w.ID)
	if !ok {
		return Task{}, ErrMissingID
	}
	return Task{
		ID:          id,
		Title:       coerceString(w.Title, UntitledTitle),
		Description: coerceString(w.Description, ""),
		Category:    ParseTaskCategory(coerceString(w.Category, "")),
		Time:        coerceString(w.Time, ""),
		Completed:   coerceBool(w.Completed),
		UpdatedAt:   coerceMillis(w.UpdatedAt, now),
	}, nil
}

// DecodeMedication validates one persisted medication entry. The taken
// metadata is forced back to null when the entry is not marked taken.
func DecodeMedication(raw []byte, now time.Time) (Medication, error) {
	var w struct {
		ID        json.RawMessage `json:"id"`
		Name      json.RawMessage `json:"name"`
		Dosage    json.RawMessage `json:"dosage"`
		Time      json.RawMessage `json:"time"`
		Taken     json.RawMessage `json:"taken"`
		TakenAt   json.RawMessage `json:"takenAt"`
		TakenBy   json.RawMessage `json:"takenBy"`
		UpdatedAt json.RawMessage `json:"updatedAt"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return Medication{}, err
	}

	id, ok := coerceID(w.ID)
	if !ok {
		return Medication{}, ErrMissingID
	}
	med := Medication{
		ID:        id,
		Name:      coerceString(w.Name, UnnamedMedication),
		Dosage:    coerceString(w.Dosage, ""),
		Time:      coerceString(w.Time, ""),
		Taken:     coerceBool(w.Taken),
		UpdatedAt: coerceMillis(w.UpdatedAt, now),
	}
	if med.Taken {
		if at, ok := coerceTime(w.TakenAt); ok {
			med.TakenAt = &at
		}
		if by := coerceString(w.TakenBy, ""); by != "" {
			med.TakenBy = &by
		}
	}
	return med, nil
}

// ParseNoteTag maps free-form input onto the closed tag enumeration,
// defaulting to General.
func ParseNoteTag(s string) NoteTag {
	for _, tag := range ValidNoteTags() {
		if strings.EqualFold(s, string(tag)) {
			return tag
		}
	}
	return TagGeneral
}

// ParseTaskCategory maps free-form input onto the closed category
// enumeration, defaulting to General.
func ParseTaskCategory(s string) TaskCategory {
	for _, cat := range ValidTaskCategories() {
		if strings.EqualFold(s, string(cat)) {
			return cat
		}
	}
	return CategoryGeneral
}

// isNull reports an absent or JSON-null value. Unmarshal treats null as a
// silent no-op, so the helpers below check it up front.
func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// coerceID accepts a string or numeric id and renders it as a non-empty
// string. Anything else is unusable.
func coerceID(raw json.RawMessage) (string, bool) {
	if isNull(raw) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		return s, s != ""
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), true
	}
	return "", false
}

func coerceString(raw json.RawMessage, fallback string) string {
	if isNull(raw) {
		return fallback
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return fallback
	}
	return s
}

func coerceBool(raw json.RawMessage) bool {
	if isNull(raw) {
		return false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false
	}
	return b
}

func coerceMillis(raw json.RawMessage, now time.Time) int64 {
	if isNull(raw) {
		return now.UnixMilli()
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int64(f)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if ms, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			return ms
		}
	}
	return now.UnixMilli()
}

func coerceTime(raw json.RawMessage) (time.Time, bool) {
	if isNull(raw) {
		return time.Time{}, false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
