package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/studyplanner/internal/planner"
	"github.com/sadopc/studyplanner/internal/store"
)

type dashboardModel struct {
	store  *store.Store
	width  int
	height int

	assignments []store.Assignment
	subjects    []store.Subject
	sessions    []store.StudySession
	timeFormat  string
}

func newDashboardModel(s *store.Store) dashboardModel {
	return dashboardModel{store: s}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type dashboardDataMsg struct {
	assignments []store.Assignment
	subjects    []store.Subject
	sessions    []store.StudySession
	timeFormat  string
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		return dashboardDataMsg{
			assignments: d.store.Assignments(),
			subjects:    d.store.Subjects(),
			sessions:    d.store.StudySessions(),
			timeFormat:  d.store.Settings().TimeFormat,
		}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if msg, ok := msg.(dashboardDataMsg); ok {
		d.assignments = msg.assignments
		d.subjects = msg.subjects
		d.sessions = msg.sessions
		d.timeFormat = msg.timeFormat
	}
	return d, nil
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4
	now := time.Now()

	return lipgloss.JoinVertical(lipgloss.Left,
		d.renderStats(contentWidth, now),
		d.renderToday(contentWidth, now),
		d.renderUpcoming(contentWidth, now),
	)
}

func (d dashboardModel) renderStats(w int, now time.Time) string {
	total := len(d.assignments)
	done := planner.CountByStatus(d.assignments, store.StatusCompleted)
	pending := total - done
	overdue := planner.OverdueCount(d.assignments, now)
	gpa := planner.CalculateGPA(d.subjects)

	gpaText := "N/A"
	if gpa > 0 {
		gpaText = fmt.Sprintf("%.2f", gpa)
	}
	overdueText := successStyle.Render("0 overdue")
	if overdue > 0 {
		overdueText = errorStyle.Render(fmt.Sprintf("%d overdue", overdue))
	}

	cards := []string{
		statCard("Assignments", fmt.Sprintf("%d", total), fmt.Sprintf("%d pending", pending)),
		statCard("Completed", fmt.Sprintf("%d%%", planner.CompletionRate(d.assignments)), fmt.Sprintf("%d done", done)),
		statCard("GPA", gpaText, fmt.Sprintf("%d subjects", len(d.subjects))),
		statCard("Due", fmt.Sprintf("%d", overdue), overdueText),
	}

	cardWidth := max(16, (w-2)/len(cards)-2)
	for i, c := range cards {
		cards[i] = panelStyle.Width(cardWidth).Padding(0, 1).Render(c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func statCard(label, value, sub string) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		mutedStyle.Render(label),
		titleStyle.Render(value),
		subtitleStyle.Render(sub),
	)
}

func (d dashboardModel) renderToday(w int, now time.Time) string {
	today := planner.TodayStudySeconds(d.sessions, now)
	pct := planner.DailyStudyProgress(today, planner.DefaultDailyGoal)
	streak := planner.StudyStreak(d.sessions, now)

	title := titleStyle.Render("Today's Study")
	header := fmt.Sprintf("%s  %s  %s", title,
		highlightStyle.Render(planner.FormatElapsed(today)),
		mutedStyle.Render(fmt.Sprintf("of %s goal", planner.FormatDuration(int(planner.DefaultDailyGoal.Minutes())))))

	streakText := mutedStyle.Render("Start studying to build a streak")
	if streak > 0 {
		streakText = streakStyle.Render(fmt.Sprintf("🔥 %d day streak", streak))
	}

	bar := fmt.Sprintf("%s %3d%%", progressBar(pct, max(10, w-16)), pct)
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, header, bar, streakText))
}

func (d dashboardModel) renderUpcoming(w int, now time.Time) string {
	title := titleStyle.Render("Upcoming")
	upcoming := planner.Upcoming(d.assignments, 5)
	if len(upcoming) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("Nothing due. Press 2 to add assignments."),
		))
	}

	colors := make(map[string]string, len(d.subjects))
	for _, s := range d.subjects {
		if _, ok := colors[s.Name]; !ok {
			colors[s.Name] = s.Color
		}
	}

	rows := []string{title}
	for _, a := range upcoming {
		dot := mutedStyle.Render("●")
		if c, ok := colors[a.Subject]; ok {
			dot = colorDot(c)
		}
		left := planner.TimeUntilDue(a.DueDate, now)
		leftStyle := dueStyle(a, now)
		rows = append(rows, fmt.Sprintf("  %s %s %-28s %-14s %s  %s",
			statusIcon(a.Status),
			dot,
			truncate(a.Title, 28),
			truncate(a.Subject, 14),
			leftStyle.Render(fmt.Sprintf("%-12s", left)),
			priorityStyle(a.Priority).Render(string(a.Priority)),
		))
	}
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", max(0, min(w-8, 60)))))
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  next: %s", formatDue(upcoming[0].DueDate, d.timeFormat))))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
