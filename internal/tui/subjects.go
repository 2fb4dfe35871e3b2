package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/studyplanner/internal/planner"
	"github.com/sadopc/studyplanner/internal/store"
)

type subjectsModel struct {
	store  *store.Store
	width  int
	height int

	subjects    []store.Subject
	assignments []store.Assignment
	cursor      int

	formActive bool
	form       *huh.Form
	editingID  string

	// Form field pointers (survive value copies)
	formName     *string
	formTeacher  *string
	formCredits  *string
	formColor    *string
	formCurrent  *string
	formTarget   *string
	formRoom     *string
	formSchedule *string
	formSyllabus *string
}

func newSubjectsModel(s *store.Store) subjectsModel {
	m := subjectsModel{store: s}
	for _, p := range []**string{&m.formName, &m.formTeacher, &m.formCredits, &m.formColor, &m.formCurrent, &m.formTarget, &m.formRoom, &m.formSchedule, &m.formSyllabus} {
		*p = new(string)
	}
	return m
}

func (m *subjectsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type subjectsDataMsg struct {
	subjects    []store.Subject
	assignments []store.Assignment
}

func (m subjectsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return subjectsDataMsg{subjects: m.store.Subjects(), assignments: m.store.Assignments()}
	}
}

func (m subjectsModel) update(msg tea.Msg) (subjectsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case subjectsDataMsg:
		m.subjects = msg.subjects
		m.assignments = msg.assignments
		if m.cursor >= len(m.subjects) {
			m.cursor = max(0, len(m.subjects)-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.subjects)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.New):
			sub := planner.NewSubject(time.Now())
			sub.Color = planner.SubjectColors[len(m.subjects)%len(planner.SubjectColors)]
			return m.showForm(sub)
		case key.Matches(msg, keys.Edit), key.Matches(msg, keys.Enter):
			if len(m.subjects) > 0 {
				return m.showForm(m.subjects[m.cursor])
			}
		case key.Matches(msg, keys.Delete):
			if len(m.subjects) > 0 {
				m.store.DeleteSubject(m.subjects[m.cursor].ID)
				return m, tea.Batch(dataChanged, statusCmd("Subject deleted"))
			}
		}
	}
	return m, nil
}

func (m subjectsModel) showForm(sub store.Subject) (subjectsModel, tea.Cmd) {
	m.editingID = sub.ID
	*m.formName = sub.Name
	*m.formTeacher = sub.Teacher
	*m.formCredits = strconv.Itoa(sub.Credits)
	*m.formColor = sub.Color
	*m.formCurrent = formatOptionalFloat(sub.CurrentGrade)
	*m.formTarget = formatOptionalFloat(sub.TargetGrade)
	*m.formRoom = sub.Room
	*m.formSchedule = formatSchedule(sub.Schedule)
	*m.formSyllabus = sub.Syllabus

	colorOptions := make([]huh.Option[string], len(planner.SubjectColors))
	for i, c := range planner.SubjectColors {
		colorOptions[i] = huh.NewOption(colorDot(c)+" "+c, c)
	}
	creditOptions := make([]huh.Option[string], 0, 6)
	for c := 1; c <= 6; c++ {
		creditOptions = append(creditOptions, huh.NewOption(strconv.Itoa(c), strconv.Itoa(c)))
	}

	gradeField := func(title, field string) *huh.Input {
		return huh.NewInput().Title(title).Validate(func(v string) error {
			g, err := parseOptionalFloat(v)
			if err != nil {
				return err
			}
			probe := store.Subject{CurrentGrade: g, TargetGrade: g}
			return planner.FieldError(planner.ValidateSubject(probe), field)
		})
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Subject name").Value(m.formName).
				Validate(func(v string) error {
					return planner.FieldError(planner.ValidateSubject(store.Subject{Name: v}), "name")
				}),
			huh.NewInput().Title("Teacher").Value(m.formTeacher).
				Validate(func(v string) error {
					return planner.FieldError(planner.ValidateSubject(store.Subject{Teacher: v}), "teacher")
				}),
			huh.NewSelect[string]().Title("Credits").Options(creditOptions...).Value(m.formCredits),
			huh.NewSelect[string]().Title("Color").Options(colorOptions...).Value(m.formColor),
		).Title("Subject"),
		huh.NewGroup(
			gradeField("Current grade (optional)", "currentGrade").Value(m.formCurrent),
			gradeField("Target grade (optional)", "targetGrade").Value(m.formTarget),
			huh.NewInput().Title("Room").Value(m.formRoom),
			huh.NewText().Title("Schedule (one class per line: Monday 09:00-10:30 Lab 2)").
				Value(m.formSchedule).
				Validate(func(v string) error {
					_, err := parseSchedule(v)
					return err
				}),
			huh.NewText().Title("Syllabus").Value(m.formSyllabus),
		).Title("Details"),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m subjectsModel) updateForm(msg tea.Msg) (subjectsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		return m.save()
	}
	return m, cmd
}

func (m subjectsModel) save() (subjectsModel, tea.Cmd) {
	sub := planner.NewSubject(time.Now())
	editing := false
	for _, s := range m.subjects {
		if s.ID == m.editingID {
			sub = s
			editing = true
			break
		}
	}
	if !editing && m.editingID != "" {
		sub.ID = m.editingID
	}

	sub.Name = strings.TrimSpace(*m.formName)
	sub.Teacher = strings.TrimSpace(*m.formTeacher)
	sub.Credits, _ = strconv.Atoi(*m.formCredits)
	sub.Color = *m.formColor
	sub.Room = strings.TrimSpace(*m.formRoom)
	sub.Syllabus = *m.formSyllabus

	var err error
	if sub.CurrentGrade, err = parseOptionalFloat(*m.formCurrent); err != nil {
		return m, errorCmd("Not saved: current grade: " + err.Error())
	}
	if sub.TargetGrade, err = parseOptionalFloat(*m.formTarget); err != nil {
		return m, errorCmd("Not saved: target grade: " + err.Error())
	}
	if sub.Schedule, err = parseSchedule(*m.formSchedule); err != nil {
		return m, errorCmd("Not saved: " + err.Error())
	}
	if err := planner.ValidateSubject(sub); err != nil {
		return m, errorCmd("Not saved: " + err.Error())
	}

	m.store.SaveSubject(sub)
	text := "Subject created"
	if editing {
		text = "Subject updated"
	}
	return m, tea.Batch(dataChanged, statusCmd(text))
}

// parseSchedule reads one class per line as "<day> HH:MM-HH:MM [location]".
// Day names may be abbreviated to three letters.
func parseSchedule(text string) ([]store.ClassSchedule, error) {
	var out []store.ClassSchedule
	for n, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: expected a day and a time range", n+1)
		}
		day, ok := matchDay(fields[0])
		if !ok {
			return nil, fmt.Errorf("line %d: unknown day %q", n+1, fields[0])
		}
		start, end, ok := strings.Cut(fields[1], "-")
		if !ok || !validClock(start) || !validClock(end) {
			return nil, fmt.Errorf("line %d: time range must look like 09:00-10:30", n+1)
		}
		out = append(out, store.ClassSchedule{
			Day:       day,
			StartTime: start,
			EndTime:   end,
			Location:  strings.Join(fields[2:], " "),
		})
	}
	return out, nil
}

func matchDay(s string) (string, bool) {
	if len(s) < 3 {
		return "", false
	}
	for _, d := range planner.DaysOfWeek {
		if strings.HasPrefix(strings.ToLower(d), strings.ToLower(s)) {
			return d, true
		}
	}
	return "", false
}

func validClock(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}

func formatSchedule(classes []store.ClassSchedule) string {
	lines := make([]string, 0, len(classes))
	for _, c := range classes {
		line := fmt.Sprintf("%s %s-%s", c.Day, c.StartTime, c.EndTime)
		if c.Location != "" {
			line += " " + c.Location
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m subjectsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Subject")
		for _, s := range m.subjects {
			if s.ID == m.editingID {
				title = titleStyle.Render("Edit Subject")
			}
		}
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()))
	}

	title := titleStyle.Render("Subjects")
	gpa := highlightStyle.Render(fmt.Sprintf("GPA %.2f", planner.CalculateGPA(m.subjects)))
	header := fmt.Sprintf("%s  %s", title, gpa)

	if len(m.subjects) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			mutedStyle.Render("No subjects yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, header, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("    %-20s %-18s %7s %8s %6s %7s %6s", "Name", "Teacher", "Credits", "Current", "Points", "Target", "Done")))

	start, end := window(m.cursor, len(m.subjects), max(3, m.height-14))
	for i := start; i < end; i++ {
		s := m.subjects[i]
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		current, points := "-", "-"
		if s.CurrentGrade != nil {
			current = fmt.Sprintf("%.1f", *s.CurrentGrade)
			points = fmt.Sprintf("%.1f", planner.GradeToGPA(*s.CurrentGrade))
		}
		target := "-"
		if s.TargetGrade != nil {
			target = fmt.Sprintf("%.1f", *s.TargetGrade)
		}
		done := planner.SubjectCompletionRate(s.Name, m.assignments)
		row := style.Render(fmt.Sprintf("%s%s %-20s %-18s %7d ",
			cursor, colorDot(s.Color), truncate(s.Name, 20), truncate(s.Teacher, 18), s.Credits))
		row += gradeStyle(s).Render(fmt.Sprintf("%8s", current))
		row += style.Render(fmt.Sprintf(" %6s %7s %5d%%", points, target, done))
		rows = append(rows, row)
	}

	sel := m.subjects[m.cursor]
	var detail []string
	if sel.Room != "" {
		detail = append(detail, "Room "+sel.Room)
	}
	for _, c := range sel.Schedule {
		line := fmt.Sprintf("%s %s–%s", c.Day, c.StartTime, c.EndTime)
		if c.Location != "" {
			line += " @ " + c.Location
		}
		detail = append(detail, line)
	}
	if len(detail) > 0 {
		rows = append(rows, "", mutedStyle.Render("  "+strings.Join(detail, "\n  ")))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
