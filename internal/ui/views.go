package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"carelink/internal/record"
	"carelink/internal/timeline"
)

var (
	appTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	headingStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	savedStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("42")).Padding(0, 1)
	bannerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("27")).Padding(0, 1)
	dangerTag      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successTag     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	infoTag        = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	dayHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245"))
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(appTitleStyle.Render("CareLink"))
	b.WriteString(mutedStyle.Render("  Home Care Dashboard"))
	b.WriteString("\n\n")

	switch m.page {
	case pageLogin:
		b.WriteString(m.viewLogin())
	case pageDashboard:
		b.WriteString(m.viewDashboard())
	case pageTasks:
		b.WriteString(m.viewTasks())
	case pageMeds:
		b.WriteString(m.viewMeds())
	case pageNotes:
		b.WriteString(m.viewNotes())
	}

	b.WriteString("\n\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) viewLogin() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Sign in"))
	b.WriteString("\n\n")
	b.WriteString("Who is caring today?\n")
	b.WriteString(m.input.View())
	return b.String()
}

func (m Model) viewDashboard() string {
	var b strings.Builder

	b.WriteString(headingStyle.Render(m.caregiver))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.cfg.Caregiver.Role))
	b.WriteString("\n\n")

	p := m.cfg.Patient
	b.WriteString(bannerStyle.Render(fmt.Sprintf(" %s • %s ", p.Name, p.Meta)))
	b.WriteString("\n")
	if len(p.Conditions) > 0 {
		b.WriteString(mutedStyle.Render("Conditions: " + strings.Join(p.Conditions, ", ")))
		b.WriteString("\n")
	}
	if p.EmergencyContact != "" {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("Emergency: %s %s", p.EmergencyContact, p.EmergencyPhone)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	tasksDone, tasksTotal := timeline.Counts(m.tasks.Records(), func(t record.Task) bool { return t.Completed })
	medsTaken, medsTotal := timeline.Counts(m.meds.Records(), func(med record.Medication) bool { return med.Taken })

	b.WriteString(headingStyle.Render("Today"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Tasks        %d / %d  (%d remaining)\n", tasksDone, tasksTotal, tasksTotal-tasksDone))
	b.WriteString(fmt.Sprintf("  Medications  %d / %d  (%d pending)\n", medsTaken, medsTotal, medsTotal-medsTaken))
	b.WriteString(fmt.Sprintf("  Care Notes   %d\n", m.notes.Len()))

	if activity := m.recentActivity(5); len(activity) > 0 {
		b.WriteString("\n")
		b.WriteString(headingStyle.Render("Recent Activity"))
		b.WriteString("\n")
		for _, line := range activity {
			b.WriteString("  " + line + "\n")
		}
	}
	return b.String()
}

// recentActivity merges the latest records across all three stores into a
// short feed, most recent first.
func (m Model) recentActivity(limit int) []string {
	type item struct {
		at   int64
		text string
	}
	var items []item
	for _, t := range m.tasks.Records() {
		items = append(items, item{t.UpdatedAt, fmt.Sprintf("Task %s: %s", completionWord(t.Completed), t.Title)})
	}
	for _, med := range m.meds.Records() {
		state := "scheduled"
		if med.Taken {
			state = "taken"
		}
		items = append(items, item{med.UpdatedAt, fmt.Sprintf("Medication %s: %s %s", state, med.Name, med.Dosage)})
	}
	for _, n := range m.notes.Records() {
		items = append(items, item{n.UpdatedAt, fmt.Sprintf("Note added: %s [%s]", n.Title, n.Tag)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].at > items[j].at })
	if len(items) > limit {
		items = items[:limit]
	}
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.text
	}
	return out
}

func (m Model) viewTasks() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Task Manager"))
	b.WriteString("\n\n")

	if m.mode == modeForm {
		b.WriteString(m.renderForm())
		return b.String()
	}

	tasks := m.tasks.Records()
	if len(tasks) == 0 {
		b.WriteString(mutedStyle.Render("No tasks yet. Press 'a' to add one."))
		return b.String()
	}
	for i, t := range tasks {
		cursor := " "
		if i == m.cursor {
			cursor = ">"
		}
		checkbox := "[ ]"
		if t.Completed {
			checkbox = "[x]"
		}
		line := fmt.Sprintf("%s %s %s", cursor, checkbox, t.Title)
		if t.Time != "" {
			line += mutedStyle.Render("  @ " + t.Time)
		}
		line += "  " + categoryStyle(t.Category).Render("["+string(t.Category)+"]")
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if t, ok := m.cursorTask(); ok {
		detail := "updated " + formatWhen(t.UpdatedAt)
		if d := firstLine(t.Description); d != "" {
			detail = d + " • " + detail
		}
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(detail))
	}
	return b.String()
}

func (m Model) viewMeds() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Medication Tracker"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("Today's schedule • %d scheduled item(s)", m.meds.Len())))
	b.WriteString("\n\n")

	if m.mode == modeForm {
		b.WriteString(m.renderForm())
		return b.String()
	}

	meds := m.meds.Records()
	if len(meds) == 0 {
		b.WriteString(mutedStyle.Render("No medications scheduled. Press 'a' to add one."))
		return b.String()
	}
	for i, med := range meds {
		cursor := " "
		if i == m.cursor {
			cursor = ">"
		}
		checkbox := "[ ]"
		if med.Taken {
			checkbox = "[x]"
		}
		line := fmt.Sprintf("%s %s %s (%s)", cursor, checkbox, med.Name, med.Dosage)
		if med.Time != "" {
			line += mutedStyle.Render("  scheduled " + med.Time)
		}
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
		if med.Taken {
			detail := "    taken"
			if med.TakenAt != nil {
				detail += " at " + med.TakenAt.Format("15:04")
			}
			if med.TakenBy != nil {
				detail += " by " + *med.TakenBy
			}
			b.WriteString(successTag.Render(detail))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) viewNotes() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Care Timeline"))
	if m.savedShown {
		b.WriteString("  " + savedStyle.Render("Saved"))
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("Showing %d note(s)", m.notes.Len())))
	b.WriteString("\n\n")

	if m.mode == modeForm {
		b.WriteString(m.renderForm())
		return b.String()
	}

	notes := m.notes.Records()
	if len(notes) == 0 {
		b.WriteString(mutedStyle.Render("No notes yet. Press 'n' and write something."))
		return b.String()
	}

	// The flattened group order matches store recency order, so the cursor
	// index lines up with Records().
	i := 0
	for _, group := range timeline.GroupByDay(notes, time.Local) {
		b.WriteString(dayHeaderStyle.Render(timeline.DayLabel(group.Day)))
		b.WriteString("\n")
		for _, n := range group.Records {
			cursor := " "
			if i == m.cursor {
				cursor = ">"
			}
			line := fmt.Sprintf("%s %s %s %s", cursor, n.Title,
				tagStyle(n.Tag).Render("["+string(n.Tag)+"]"),
				mutedStyle.Render(formatWhen(n.UpdatedAt)))
			if i == m.cursor {
				line = selectedStyle.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
			i++
		}
	}

	if n, ok := m.cursorNote(); ok && n.Content != "" {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(firstLine(n.Content)))
	}
	return b.String()
}

func (m Model) renderForm() string {
	if m.form == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(headingStyle.Render(m.form.heading))
	b.WriteString("\n\n")
	for i, field := range m.form.fields {
		prefix := " "
		value := field.value
		if i == m.form.index {
			prefix = ">"
			value = m.input.Value()
		}
		if strings.TrimSpace(value) == "" {
			value = mutedStyle.Render("(empty)")
		}
		b.WriteString(fmt.Sprintf("%s %-28s : %s\n", prefix, field.label, value))
	}
	b.WriteString("\n")
	b.WriteString("Field: " + m.form.current().label)
	b.WriteString("\n")
	b.WriteString(m.input.View())
	return b.String()
}

func (m Model) helpLine() string {
	k := m.cfg.Keys
	switch {
	case m.page == pageLogin:
		return "enter sign in • ctrl+c quit"
	case m.mode == modeForm:
		return fmt.Sprintf("%s/%s move field • %s next/save • %s cancel", k.NextField, k.PrevField, k.Confirm, k.Cancel)
	case m.mode == modeConfirmDelete:
		return "y confirm • n cancel"
	case m.page == pageDashboard:
		return fmt.Sprintf("%s tasks • %s medications • %s notes • %s quit", k.Tasks, k.Meds, k.Notes, k.Quit)
	case m.page == pageNotes:
		return fmt.Sprintf("%s/%s move • %s new • %s edit • %s delete • %s dashboard • %s quit",
			k.Up, k.Down, k.New, k.Open, k.Delete, k.Dashboard, k.Quit)
	default:
		return fmt.Sprintf("%s/%s move • %s add • %s edit • space toggle • %s delete • %s dashboard • %s quit",
			k.Up, k.Down, k.Add, k.Edit, k.Delete, k.Dashboard, k.Quit)
	}
}

// tagStyle follows the badge colors of the web timeline: red for
// Medical/Vitals, green for Nutrition/Activity, blue otherwise.
func tagStyle(tag record.NoteTag) lipgloss.Style {
	switch tag {
	case record.TagMedical, record.TagVitals:
		return dangerTag
	case record.TagNutrition, record.TagActivity:
		return successTag
	default:
		return infoTag
	}
}

func categoryStyle(cat record.TaskCategory) lipgloss.Style {
	switch cat {
	case record.CategoryVitals, record.CategoryMedication:
		return dangerTag
	case record.CategoryNutrition, record.CategoryActivity:
		return successTag
	default:
		return infoTag
	}
}

func formatWhen(ms int64) string {
	return time.UnixMilli(ms).Format("2006-01-02 15:04")
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 80 {
		s = s[:77] + "..."
	}
	return s
}
