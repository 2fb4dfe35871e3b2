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
	"github.com/sadopc/studyplanner/internal/reminder"
	"github.com/sadopc/studyplanner/internal/store"
)

var (
	statusFilters   = []string{planner.All, string(store.StatusPending), string(store.StatusInProgress), string(store.StatusCompleted)}
	priorityFilters = []string{planner.All, string(store.PriorityHigh), string(store.PriorityMedium), string(store.PriorityLow)}
)

// assignmentFields holds form values behind pointers so they survive the
// model being copied through Update.
type assignmentFields struct {
	title       *string
	subject     *string
	due         *string
	priority    *string
	status      *string
	estimate    *string
	grade       *string
	description *string
	notes       *string
	tags        *string
	reminder    *bool
	search      *string
}

func newAssignmentFields() assignmentFields {
	f := assignmentFields{}
	for _, p := range []**string{&f.title, &f.subject, &f.due, &f.priority, &f.status, &f.estimate, &f.grade, &f.description, &f.notes, &f.tags, &f.search} {
		*p = new(string)
	}
	f.reminder = new(bool)
	return f
}

func (f assignmentFields) load(a store.Assignment) {
	*f.title = a.Title
	*f.subject = a.Subject
	*f.due = ""
	if !a.DueDate.IsZero() {
		*f.due = a.DueDate.Local().Format(dueLayout)
	}
	*f.priority = string(a.Priority)
	*f.status = string(a.Status)
	*f.estimate = strconv.Itoa(a.EstimatedTime)
	*f.grade = formatOptionalFloat(a.Grade)
	*f.description = a.Description
	*f.notes = a.Notes
	*f.tags = strings.Join(a.Tags, ", ")
	*f.reminder = a.ReminderSet
}

// apply copies the form values onto a.
func (f assignmentFields) apply(a store.Assignment) (store.Assignment, error) {
	due, err := parseDue(*f.due)
	if err != nil {
		return a, err
	}
	est, err := strconv.Atoi(strings.TrimSpace(*f.estimate))
	if err != nil {
		return a, fmt.Errorf("estimated time: %w", err)
	}
	grade, err := parseOptionalFloat(*f.grade)
	if err != nil {
		return a, fmt.Errorf("grade: %w", err)
	}

	a.Title = strings.TrimSpace(*f.title)
	a.Subject = strings.TrimSpace(*f.subject)
	a.DueDate = due
	a.Priority = store.Priority(*f.priority)
	a.Status = store.Status(*f.status)
	a.EstimatedTime = est
	a.Grade = grade
	a.Description = *f.description
	a.Notes = *f.notes
	a.Tags = splitTags(*f.tags)
	a.ReminderSet = *f.reminder
	return a, nil
}

func checkAssignmentField(field string, a store.Assignment) error {
	return planner.FieldError(planner.ValidateAssignment(a, time.Now()), field)
}

type assignmentsModel struct {
	store  *store.Store
	sched  *reminder.Scheduler
	width  int
	height int

	all        []store.Assignment
	subjects   []store.Subject
	visible    []store.Assignment
	cursor     int
	timeFormat string

	query      planner.Query
	sortKey    planner.SortKey
	descending bool

	formActive bool
	form       *huh.Form
	formType   string // "new", "edit", "search"
	editingID  string
	fields     assignmentFields
}

func newAssignmentsModel(s *store.Store, sched *reminder.Scheduler) assignmentsModel {
	return assignmentsModel{
		store:   s,
		sched:   sched,
		query:   planner.Query{Subject: planner.All, Status: planner.All, Priority: planner.All},
		sortKey: planner.SortDueDate,
		fields:  newAssignmentFields(),
	}
}

func (m *assignmentsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type assignmentsDataMsg struct {
	assignments []store.Assignment
	subjects    []store.Subject
	timeFormat  string
}

func (m assignmentsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return assignmentsDataMsg{
			assignments: m.store.Assignments(),
			subjects:    m.store.Subjects(),
			timeFormat:  m.store.Settings().TimeFormat,
		}
	}
}

func (m *assignmentsModel) applyQuery() {
	m.visible = planner.SortAssignments(planner.Filter(m.all, m.query), m.sortKey, m.descending)
	if m.cursor >= len(m.visible) {
		m.cursor = max(0, len(m.visible)-1)
	}
}

func (m assignmentsModel) selected() (store.Assignment, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return store.Assignment{}, false
	}
	return m.visible[m.cursor], true
}

func (m assignmentsModel) update(msg tea.Msg) (assignmentsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case assignmentsDataMsg:
		m.all = msg.assignments
		m.subjects = msg.subjects
		m.timeFormat = msg.timeFormat
		m.applyQuery()
		return m, nil

	case tea.KeyMsg:
		return m.updateList(msg)
	}
	return m, nil
}

func (m assignmentsModel) updateList(msg tea.KeyMsg) (assignmentsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.New):
		return m.showForm(planner.NewAssignment(time.Now()), "new")
	case key.Matches(msg, keys.Edit), key.Matches(msg, keys.Enter):
		if a, ok := m.selected(); ok {
			return m.showForm(a, "edit")
		}
	case key.Matches(msg, keys.Delete):
		if a, ok := m.selected(); ok {
			m.store.DeleteAssignment(a.ID)
			if m.sched != nil {
				m.sched.Cancel(a.ID)
			}
			return m, tea.Batch(dataChanged, statusCmd("Assignment deleted"))
		}
	case key.Matches(msg, keys.Complete):
		if a, ok := m.selected(); ok {
			return m.toggle(a)
		}
	case key.Matches(msg, keys.Search):
		return m.showSearch()
	case key.Matches(msg, keys.Status):
		m.query.Status = next(statusFilters, m.query.Status)
		m.applyQuery()
	case key.Matches(msg, keys.Priority):
		m.query.Priority = next(priorityFilters, m.query.Priority)
		m.applyQuery()
	case key.Matches(msg, keys.Subject):
		names := []string{planner.All}
		for _, s := range m.subjects {
			names = append(names, s.Name)
		}
		m.query.Subject = next(names, m.query.Subject)
		m.applyQuery()
	case key.Matches(msg, keys.Sort):
		sortKeys := make([]string, len(planner.SortKeys))
		for i, k := range planner.SortKeys {
			sortKeys[i] = string(k)
		}
		m.sortKey = planner.SortKey(next(sortKeys, string(m.sortKey)))
		m.applyQuery()
	case key.Matches(msg, keys.Reverse):
		m.descending = !m.descending
		m.applyQuery()
	case key.Matches(msg, keys.Back):
		m.query = planner.Query{Subject: planner.All, Status: planner.All, Priority: planner.All}
		m.applyQuery()
	}
	return m, nil
}

// next returns the element after cur in opts, wrapping around.
func next(opts []string, cur string) string {
	for i, o := range opts {
		if o == cur {
			return opts[(i+1)%len(opts)]
		}
	}
	return opts[0]
}

func (m assignmentsModel) toggle(a store.Assignment) (assignmentsModel, tea.Cmd) {
	a = planner.ToggleStatus(a, time.Now())
	m.store.SaveAssignment(a)
	m.reschedule(a)

	text := "Assignment marked pending"
	if a.Status == store.StatusCompleted {
		text = "Assignment completed"
	}
	return m, tea.Batch(dataChanged, statusCmd(text))
}

func (m assignmentsModel) reschedule(a store.Assignment) {
	if m.sched == nil {
		return
	}
	if a.Status == store.StatusCompleted {
		m.sched.Cancel(a.ID)
		return
	}
	m.sched.Schedule(a)
}

func (m assignmentsModel) showForm(a store.Assignment, formType string) (assignmentsModel, tea.Cmd) {
	m.fields.load(a)
	m.formType = formType
	m.editingID = a.ID

	f := m.fields
	var subjectField huh.Field
	if len(m.subjects) > 0 {
		opts := make([]huh.Option[string], 0, len(m.subjects))
		for _, s := range m.subjects {
			opts = append(opts, huh.NewOption(s.Name, s.Name))
		}
		if *f.subject == "" {
			*f.subject = m.subjects[0].Name
		}
		subjectField = huh.NewSelect[string]().Title("Subject").Options(opts...).Value(f.subject).
			Validate(func(v string) error {
				return checkAssignmentField("subject", store.Assignment{Subject: v})
			})
	} else {
		subjectField = huh.NewInput().Title("Subject").Value(f.subject).
			Validate(func(v string) error {
				return checkAssignmentField("subject", store.Assignment{Subject: strings.TrimSpace(v)})
			})
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(f.title).
				Validate(func(v string) error {
					return checkAssignmentField("title", store.Assignment{Title: v})
				}),
			subjectField,
			huh.NewInput().Title("Due").Placeholder(dueLayout).Value(f.due).
				Validate(func(v string) error {
					due, err := parseDue(v)
					if err != nil {
						return err
					}
					return checkAssignmentField("dueDate", store.Assignment{DueDate: due})
				}),
			huh.NewSelect[string]().Title("Priority").
				Options(huh.NewOptions(string(store.PriorityLow), string(store.PriorityMedium), string(store.PriorityHigh))...).
				Value(f.priority),
			huh.NewSelect[string]().Title("Status").
				Options(huh.NewOptions(string(store.StatusPending), string(store.StatusInProgress), string(store.StatusCompleted))...).
				Value(f.status),
		).Title("Assignment"),
		huh.NewGroup(
			huh.NewInput().Title("Estimated time (min)").Value(f.estimate).
				Validate(func(v string) error {
					n, err := strconv.Atoi(strings.TrimSpace(v))
					if err != nil {
						return fmt.Errorf("Enter a whole number of minutes")
					}
					return checkAssignmentField("estimatedTime", store.Assignment{EstimatedTime: n})
				}),
			huh.NewInput().Title("Grade (optional)").Value(f.grade).
				Validate(func(v string) error {
					_, err := parseOptionalFloat(v)
					return err
				}),
			huh.NewText().Title("Description").Value(f.description),
			huh.NewText().Title("Notes").Value(f.notes),
			huh.NewInput().Title("Tags (comma-separated)").Value(f.tags),
			huh.NewConfirm().Title("Remind me before it is due").Value(f.reminder),
		).Title("Details"),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m assignmentsModel) showSearch() (assignmentsModel, tea.Cmd) {
	*m.fields.search = m.query.Search
	m.formType = "search"
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Search title, subject or description").Value(m.fields.search),
		),
	).WithShowHelp(true)
	m.formActive = true
	return m, m.form.Init()
}

func (m assignmentsModel) updateForm(msg tea.Msg) (assignmentsModel, tea.Cmd) {
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
		if m.formType == "search" {
			m.query.Search = strings.TrimSpace(*m.fields.search)
			m.applyQuery()
			return m, nil
		}
		return m.save()
	}

	return m, cmd
}

func (m assignmentsModel) save() (assignmentsModel, tea.Cmd) {
	base := planner.NewAssignment(time.Now())
	for _, a := range m.all {
		if a.ID == m.editingID {
			base = a
			break
		}
	}

	a, err := m.fields.apply(base)
	if err == nil {
		err = planner.ValidateAssignment(a, time.Now())
	}
	if err != nil {
		return m, errorCmd("Not saved: " + err.Error())
	}

	m.store.SaveAssignment(a)
	m.reschedule(a)

	text := "Assignment created"
	if m.formType == "edit" {
		text = "Assignment updated"
	}
	return m, tea.Batch(dataChanged, statusCmd(text))
}

func (m assignmentsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := "New Assignment"
		switch m.formType {
		case "edit":
			title = "Edit Assignment"
		case "search":
			title = "Search"
		}
		content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), "", m.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render(fmt.Sprintf("Assignments (%d)", len(m.all)))
	filters := m.renderFilters()

	if len(m.visible) == 0 {
		hint := "No assignments yet. Press n to create one."
		if len(m.all) > 0 {
			hint = "No assignments match the current filters. Press esc to clear them."
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, filters, "", mutedStyle.Render(hint))
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title, filters, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("    %-28s %-14s %-22s %-12s %-6s", "Title", "Subject", "Due", "Left", "Prio")))

	now := time.Now()
	start, end := window(m.cursor, len(m.visible), max(3, m.height-14))
	for i := start; i < end; i++ {
		a := m.visible[i]
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}

		left := planner.TimeUntilDue(a.DueDate, now)
		leftStyle := dueStyle(a, now)
		if a.Status == store.StatusCompleted {
			left = "done"
		}

		row := style.Render(fmt.Sprintf("%s%s %-28s %-14s %-22s ",
			cursor, statusIcon(a.Status), truncate(a.Title, 28), truncate(a.Subject, 14), formatDue(a.DueDate, m.timeFormat)))
		row += leftStyle.Render(fmt.Sprintf("%-12s ", left))
		row += priorityStyle(a.Priority).Render(string(a.Priority))
		rows = append(rows, row)
	}

	if a, ok := m.selected(); ok {
		rows = append(rows, "", m.renderDetail(a, w))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete  c: done  /: search  f/p/u: filter  o: sort  r: reverse  esc: clear"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m assignmentsModel) renderFilters() string {
	dir := "↑"
	if m.descending {
		dir = "↓"
	}
	parts := []string{
		fmt.Sprintf("status:%s", m.query.Status),
		fmt.Sprintf("priority:%s", m.query.Priority),
		fmt.Sprintf("subject:%s", m.query.Subject),
		fmt.Sprintf("sort:%s%s", m.sortKey, dir),
	}
	if m.query.Search != "" {
		parts = append([]string{fmt.Sprintf("search:%q", m.query.Search)}, parts...)
	}
	return subtitleStyle.Render(strings.Join(parts, "  "))
}

func (m assignmentsModel) renderDetail(a store.Assignment, w int) string {
	var lines []string
	meta := fmt.Sprintf("Estimated %s", planner.FormatDuration(a.EstimatedTime))
	if a.Grade != nil {
		meta += fmt.Sprintf("  ·  Grade %.1f", *a.Grade)
	}
	if a.ReminderSet {
		meta += "  ·  reminder on"
		if m.sched != nil {
			if at, ok := m.sched.Pending(a.ID); ok {
				meta += " (" + formatDue(at, m.timeFormat) + ")"
			}
		}
	}
	if a.CompletedAt != nil {
		meta += "  ·  completed " + formatDue(*a.CompletedAt, m.timeFormat)
	}
	lines = append(lines, highlightStyle.Render(meta))
	if a.Description != "" {
		lines = append(lines, truncate(a.Description, max(10, w-8)))
	}
	if len(a.Tags) > 0 {
		lines = append(lines, mutedStyle.Render("#"+strings.Join(a.Tags, " #")))
	}
	return "  " + strings.Join(lines, "\n  ")
}
