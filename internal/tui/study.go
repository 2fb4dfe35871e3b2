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
	"github.com/sadopc/studyplanner/internal/timer"
)

func tickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

type studyModel struct {
	store    *store.Store
	recorder *timer.Recorder
	width    int
	height   int

	// gen is bumped each time the recorder starts so ticks armed by an
	// earlier run are dropped.
	gen int

	assignments []store.Assignment
	target      int // index into assignments, -1 for none
	presets     []time.Duration
	presetIdx   int
	today       []store.StudySession
	allSessions []store.StudySession
	goals       []store.StudyGoal
	goalCursor  int
	notifyGoals bool

	formActive bool
	form       *huh.Form
	editingID  string

	goalTitle    *string
	goalDesc     *string
	goalTarget   *string
	goalUnit     *string
	goalType     *string
	goalDeadline *string
}

func newStudyModel(s *store.Store) studyModel {
	m := studyModel{
		store:    s,
		recorder: timer.New(s, nil),
		target:   -1,
		presets:  timer.Presets,
	}
	for _, p := range []**string{&m.goalTitle, &m.goalDesc, &m.goalTarget, &m.goalUnit, &m.goalType, &m.goalDeadline} {
		*p = new(string)
	}
	return m
}

func (m *studyModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type studyDataMsg struct {
	assignments []store.Assignment
	sessions    []store.StudySession
	goals       []store.StudyGoal
	settings    store.UserSettings
}

func (m studyModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return studyDataMsg{
			assignments: m.store.Assignments(),
			sessions:    m.store.StudySessions(),
			goals:       m.store.StudyGoals(),
			settings:    m.store.Settings(),
		}
	}
}

func (m studyModel) running() bool { return m.recorder.Running() }
func (m studyModel) paused() bool  { return m.recorder.State() == timer.Paused }

func (m studyModel) assignmentID() string {
	if m.target < 0 || m.target >= len(m.assignments) {
		return ""
	}
	return m.assignments[m.target].ID
}

func (m studyModel) assignmentTitle(id string) string {
	for _, a := range m.assignments {
		if a.ID == id {
			return a.Title
		}
	}
	return ""
}

func (m studyModel) update(msg tea.Msg) (studyModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case studyDataMsg:
		selected := m.assignmentID()
		m.assignments = nil
		for _, a := range msg.assignments {
			if a.Status != store.StatusCompleted {
				m.assignments = append(m.assignments, a)
			}
		}
		m.target = -1
		for i, a := range m.assignments {
			if a.ID == selected {
				m.target = i
			}
		}
		now := time.Now()
		m.allSessions = msg.sessions
		m.today = nil
		for _, s := range msg.sessions {
			if planner.IsSameDay(s.Date, now) {
				m.today = append(m.today, s)
			}
		}
		m.goals = msg.goals
		if m.goalCursor >= len(m.goals) {
			m.goalCursor = max(0, len(m.goals)-1)
		}
		m.presets = presetsFrom(msg.settings.StudyPreferences)
		m.notifyGoals = msg.settings.Notifications.Goals
		return m, nil

	case tickMsg:
		if msg.gen != m.gen || !m.recorder.Running() {
			return m, nil
		}
		m.recorder.Tick()
		return m, tickCmd(m.gen)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Start), key.Matches(msg, keys.Pause):
			if m.recorder.Running() {
				m.recorder.Pause()
				return m, nil
			}
			m.recorder.Start(m.assignmentID())
			m.gen++
			return m, tickCmd(m.gen)

		case key.Matches(msg, keys.Stop):
			return m.commit()

		case key.Matches(msg, keys.Preset):
			if len(m.presets) > 0 {
				m.recorder.Preload(m.presets[m.presetIdx])
				m.presetIdx = (m.presetIdx + 1) % len(m.presets)
			}

		case key.Matches(msg, keys.Left):
			if m.recorder.Session() == nil && len(m.assignments) > 0 {
				m.target--
				if m.target < -1 {
					m.target = len(m.assignments) - 1
				}
			}
		case key.Matches(msg, keys.Right):
			if m.recorder.Session() == nil && len(m.assignments) > 0 {
				m.target++
				if m.target >= len(m.assignments) {
					m.target = -1
				}
			}

		case key.Matches(msg, keys.Up):
			if m.goalCursor > 0 {
				m.goalCursor--
			}
		case key.Matches(msg, keys.Down):
			if m.goalCursor < len(m.goals)-1 {
				m.goalCursor++
			}
		case key.Matches(msg, keys.Goal):
			return m.showGoalForm(planner.NewGoal(time.Now()))
		case key.Matches(msg, keys.Edit):
			if len(m.goals) > 0 {
				return m.showGoalForm(m.goals[m.goalCursor])
			}
		case key.Matches(msg, keys.Delete):
			if len(m.goals) > 0 {
				m.store.DeleteStudyGoal(m.goals[m.goalCursor].ID)
				return m, tea.Batch(dataChanged, statusCmd("Goal deleted"))
			}
		case key.Matches(msg, keys.Inc):
			return m.adjustGoal(1)
		case key.Matches(msg, keys.Dec):
			return m.adjustGoal(-1)
		}
	}
	return m, nil
}

// presetsFrom turns the saved study preferences into timer presets.
func presetsFrom(p store.StudyPreferences) []time.Duration {
	out := make([]time.Duration, 0, len(timer.Presets))
	for i, mins := range []int{p.PomodoroLength, p.ShortBreakLength, p.LongBreakLength} {
		d := time.Duration(mins) * time.Minute
		if mins <= 0 {
			d = timer.Presets[i]
		}
		out = append(out, d)
	}
	return append(out, timer.Presets[3:]...)
}

func (m studyModel) commit() (studyModel, tea.Cmd) {
	session := m.recorder.Reset()
	if session == nil {
		return m, nil
	}
	text := fmt.Sprintf("Study session saved (%s)", planner.FormatElapsed(session.Duration))
	return m, tea.Batch(dataChanged, statusCmd(text))
}

func (m studyModel) adjustGoal(delta float64) (studyModel, tea.Cmd) {
	if len(m.goals) == 0 {
		return m, nil
	}
	g := m.goals[m.goalCursor]
	wasDone := g.IsCompleted
	g.CurrentValue = max(0, g.CurrentValue+delta)
	g.IsCompleted = g.CurrentValue >= g.TargetValue
	m.store.SaveStudyGoal(g)

	cmds := []tea.Cmd{m.refresh()}
	if g.IsCompleted && !wasDone && m.notifyGoals {
		cmds = append(cmds, statusCmd("Goal reached: "+g.Title+" \a"))
	}
	return m, tea.Batch(cmds...)
}

func (m studyModel) showGoalForm(g store.StudyGoal) (studyModel, tea.Cmd) {
	m.editingID = g.ID
	*m.goalTitle = g.Title
	*m.goalDesc = g.Description
	*m.goalTarget = strconv.FormatFloat(g.TargetValue, 'f', -1, 64)
	*m.goalUnit = g.Unit
	*m.goalType = string(g.Type)
	*m.goalDeadline = g.Deadline.Local().Format("2006-01-02")

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Goal").Value(m.goalTitle).
				Validate(func(v string) error {
					return planner.FieldError(planner.ValidateGoal(store.StudyGoal{Title: v}), "title")
				}),
			huh.NewInput().Title("Description").Value(m.goalDesc),
			huh.NewInput().Title("Target").Value(m.goalTarget).
				Validate(func(v string) error {
					n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
					if err != nil {
						return fmt.Errorf("Enter a number")
					}
					return planner.FieldError(planner.ValidateGoal(store.StudyGoal{TargetValue: n}), "targetValue")
				}),
			huh.NewInput().Title("Unit").Placeholder("hours, chapters, problems").Value(m.goalUnit),
			huh.NewSelect[string]().Title("Type").
				Options(huh.NewOptions(string(store.GoalDaily), string(store.GoalWeekly), string(store.GoalMonthly), string(store.GoalCustom))...).
				Value(m.goalType),
			huh.NewInput().Title("Deadline").Placeholder("2006-01-02").Value(m.goalDeadline).
				Validate(func(v string) error {
					_, err := parseDue(v)
					return err
				}),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m studyModel) updateForm(msg tea.Msg) (studyModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}
	if msg, ok := msg.(tickMsg); ok {
		// Keep the recorder counting behind the form.
		if msg.gen == m.gen && m.recorder.Running() {
			m.recorder.Tick()
			return m, tickCmd(m.gen)
		}
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		return m.saveGoal()
	}
	return m, cmd
}

func (m studyModel) saveGoal() (studyModel, tea.Cmd) {
	g := planner.NewGoal(time.Now())
	g.ID = m.editingID
	for _, existing := range m.goals {
		if existing.ID == m.editingID {
			g = existing
		}
	}

	g.Title = strings.TrimSpace(*m.goalTitle)
	g.Description = *m.goalDesc
	g.Unit = strings.TrimSpace(*m.goalUnit)
	g.Type = store.GoalType(*m.goalType)
	g.TargetValue, _ = strconv.ParseFloat(strings.TrimSpace(*m.goalTarget), 64)
	if d, err := parseDue(*m.goalDeadline); err == nil && !d.IsZero() {
		g.Deadline = d
	}
	g.IsCompleted = g.TargetValue > 0 && g.CurrentValue >= g.TargetValue

	if err := planner.ValidateGoal(g); err != nil {
		return m, errorCmd("Not saved: " + err.Error())
	}
	m.store.SaveStudyGoal(g)
	return m, tea.Batch(dataChanged, statusCmd("Goal saved"))
}

func (m studyModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Study Goal"), "", m.form.View()),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTimer(w),
		m.renderToday(w),
		m.renderGoals(w),
	)
}

func (m studyModel) renderTimer(w int) string {
	elapsed := planner.FormatElapsed(m.recorder.Elapsed())

	var display, indicator string
	panel := panelStyle
	state := m.recorder.State()
	display = timerStyles[state].Width(w - 6).Render(elapsed)
	switch state {
	case timer.Running:
		indicator = successStyle.Render("●  RUNNING")
		panel = activePanelStyle
	case timer.Paused:
		indicator = warningStyle.Render("⏸  PAUSED")
		panel = activePanelStyle
	default:
		indicator = mutedStyle.Render("■  IDLE")
	}

	target := "No assignment"
	if s := m.recorder.Session(); s != nil {
		if t := m.assignmentTitle(s.AssignmentID); t != "" {
			target = t
		}
	} else if m.target >= 0 && m.target < len(m.assignments) {
		a := m.assignments[m.target]
		target = fmt.Sprintf("%s · %s", a.Title, a.Subject)
	}
	targetLine := highlightStyle.Render(target)
	if m.recorder.Session() == nil {
		targetLine = mutedStyle.Render("← ") + targetLine + mutedStyle.Render(" →")
	}

	presets := make([]string, len(m.presets))
	for i, p := range m.presets {
		presets[i] = fmt.Sprintf("%dm", int(p.Minutes()))
	}
	hint := mutedStyle.Render("s/space: start/pause  x: stop & save  t: preset (" + strings.Join(presets, "/") + ")")

	content := lipgloss.JoinVertical(lipgloss.Center, display, indicator, targetLine, "", hint)
	return panel.Width(w).Render(content)
}

func (m studyModel) renderToday(w int) string {
	var total int64
	for _, s := range m.today {
		total += s.Duration
	}
	title := titleStyle.Render("Today")
	header := fmt.Sprintf("%s  %s  %s", title,
		highlightStyle.Render(planner.FormatElapsed(total)),
		mutedStyle.Render(fmt.Sprintf("streak %d days", planner.StudyStreak(m.allSessions, time.Now()))))

	if len(m.today) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, header, mutedStyle.Render("No sessions today")))
	}

	rows := []string{header}
	start := max(0, len(m.today)-5)
	for _, s := range m.today[start:] {
		name := m.assignmentTitle(s.AssignmentID)
		if name == "" {
			name = string(s.Type)
		}
		rows = append(rows, fmt.Sprintf("  ✓ %s  %-28s %s", s.Date.Local().Format("15:04"), truncate(name, 28), planner.FormatElapsed(s.Duration)))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m studyModel) renderGoals(w int) string {
	title := titleStyle.Render("Goals")
	if len(m.goals) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, mutedStyle.Render("No goals. Press g to add one.")))
	}

	rows := []string{title}
	barWidth := max(10, min(30, w-60))
	for i, g := range m.goals {
		cursor := "  "
		style := normalItemStyle
		if i == m.goalCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		pct := 0
		if g.TargetValue > 0 {
			pct = int(g.CurrentValue / g.TargetValue * 100)
		}
		mark := " "
		if g.IsCompleted {
			mark = successStyle.Render("✓")
		}
		rows = append(rows, fmt.Sprintf("%s%s %s %s %s",
			style.Render(cursor+truncate(g.Title, 24)),
			mark,
			progressBar(pct, barWidth),
			mutedStyle.Render(fmt.Sprintf("%g/%g %s", g.CurrentValue, g.TargetValue, g.Unit)),
			mutedStyle.Render(fmt.Sprintf("%s · due %s", g.Type, g.Deadline.Local().Format("Jan 02"))),
		))
	}
	rows = append(rows, "", mutedStyle.Render("  g: new goal  e: edit  +/-: progress  d: delete"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
