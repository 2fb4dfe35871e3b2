package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/studyplanner/internal/planner"
	"github.com/sadopc/studyplanner/internal/store"
)

type chartMode int

const (
	chartBySubject chartMode = iota
	chartByDay
)

type analyticsModel struct {
	store  *store.Store
	width  int
	height int

	mode         chartMode
	offset       int // weeks back from the current week
	assignments  []store.Assignment
	subjects     []store.Subject
	sessions     []store.StudySession
	weekStartsOn int

	chart barchart.Model
	// empty is set when no bar has a value worth drawing.
	empty bool
}

func newAnalyticsModel(s *store.Store) analyticsModel {
	return analyticsModel{
		store: s,
		chart: barchart.New(60, 12),
		empty: true,
	}
}

func (r *analyticsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

type analyticsDataMsg struct {
	assignments  []store.Assignment
	subjects     []store.Subject
	sessions     []store.StudySession
	weekStartsOn int
}

func (r analyticsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return analyticsDataMsg{
			assignments:  r.store.Assignments(),
			subjects:     r.store.Subjects(),
			sessions:     r.store.StudySessions(),
			weekStartsOn: r.store.Settings().WeekStartsOn,
		}
	}
}

func (r analyticsModel) update(msg tea.Msg) (analyticsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case analyticsDataMsg:
		r.assignments = msg.assignments
		r.subjects = msg.subjects
		r.sessions = msg.sessions
		r.weekStartsOn = msg.weekStartsOn
		r.buildChart()
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Mode):
			if r.mode == chartBySubject {
				r.mode = chartByDay
			} else {
				r.mode = chartBySubject
			}
			r.offset = 0
			r.buildChart()
		case key.Matches(msg, keys.Left):
			if r.mode == chartByDay {
				r.offset++
				r.buildChart()
			}
		case key.Matches(msg, keys.Right):
			if r.mode == chartByDay && r.offset > 0 {
				r.offset--
				r.buildChart()
			}
		}
	}
	return r, nil
}

func (r analyticsModel) week() []time.Time {
	return planner.WeekDates(time.Now().AddDate(0, 0, -7*r.offset), r.weekStartsOn)
}

func (r *analyticsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if r.height > 36 {
		chartHeight = 14
	}

	r.chart = barchart.New(chartWidth, chartHeight)
	r.empty = true

	var bars []barchart.BarData
	switch r.mode {
	case chartByDay:
		for _, day := range r.week() {
			var secs int64
			for _, s := range r.sessions {
				if planner.IsSameDay(s.Date, day) {
					secs += s.Duration
				}
			}
			bars = append(bars, barchart.BarData{
				Label: day.Format("Mon 02"),
				Values: []barchart.BarValue{{
					Name:  day.Format("Mon"),
					Value: float64(secs) / 3600,
					Style: studyBarStyle,
				}},
			})
		}
	default:
		for _, st := range planner.StudySecondsBySubject(r.subjects, r.assignments, r.sessions) {
			bars = append(bars, barchart.BarData{
				Label: truncate(st.Subject.Name, 8),
				Values: []barchart.BarValue{{
					Name:  st.Subject.Name,
					Value: float64(st.Seconds) / 3600,
					Style: subjectStyle(st.Subject.Color),
				}},
			})
		}
	}

	for _, b := range bars {
		if b.Values[0].Value > 0 {
			r.empty = false
		}
	}
	if r.empty {
		return
	}
	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r analyticsModel) view() string {
	w := r.width - 4

	subjectTab := inactiveTabStyle.Render("By subject")
	dayTab := inactiveTabStyle.Render("By day")
	var rangeLabel string
	if r.mode == chartBySubject {
		subjectTab = activeTabStyle.Render("By subject")
	} else {
		dayTab = activeTabStyle.Render("By day")
		week := r.week()
		rangeLabel = mutedStyle.Render(fmt.Sprintf("%s – %s", week[0].Format("Jan 02"), week[6].Format("Jan 02, 2006")))
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Analytics"), "  ", subjectTab, dayTab, "  ", rangeLabel,
	)

	var chartView string
	switch {
	case r.mode == chartBySubject && len(r.subjects) == 0:
		chartView = mutedStyle.Render("  No subjects to analyze. Add subjects to see study time breakdown.")
	case r.empty:
		chartView = mutedStyle.Render("  No study time recorded for this range.")
	default:
		chartView = r.chart.View()
	}

	nav := mutedStyle.Render("  m: switch chart  ←/→: previous/next week")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, "", r.renderSummary(), "", r.renderSubjectTable(w), "", r.renderInsights(w), "", nav,
		),
	)
}

func (r analyticsModel) renderSummary() string {
	var total int64
	for _, s := range r.sessions {
		total += s.Duration
	}
	avg := "N/A"
	if g := planner.AverageGrade(r.assignments); g > 0 {
		avg = fmt.Sprintf("%.1f%%", g)
	}
	gpa := "N/A"
	if g := planner.CalculateGPA(r.subjects); g > 0 {
		gpa = fmt.Sprintf("%.2f", g)
	}

	parts := []string{
		fmt.Sprintf("Total study %s", planner.FormatHours(total)),
		fmt.Sprintf("Sessions %d", len(r.sessions)),
		fmt.Sprintf("Average score %s", avg),
		fmt.Sprintf("GPA %s", gpa),
		fmt.Sprintf("Streak %d days", planner.StudyStreak(r.sessions, time.Now())),
		fmt.Sprintf("Pending %d · In progress %d · Completed %d",
			planner.CountByStatus(r.assignments, store.StatusPending),
			planner.CountByStatus(r.assignments, store.StatusInProgress),
			planner.CountByStatus(r.assignments, store.StatusCompleted)),
	}
	return "  " + highlightStyle.Render(strings.Join(parts[:5], "  ·  ")) + "\n  " + mutedStyle.Render(parts[5])
}

func (r analyticsModel) renderSubjectTable(w int) string {
	if len(r.subjects) == 0 {
		return ""
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-22s %10s %10s", "Subject", "Studied", "Completed")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", max(0, min(w-6, 44)))))
	for _, st := range planner.StudySecondsBySubject(r.subjects, r.assignments, r.sessions) {
		rows = append(rows, fmt.Sprintf("  %s %-20s %10s %9d%%",
			colorDot(st.Subject.Color),
			truncate(st.Subject.Name, 20),
			planner.FormatHours(st.Seconds),
			planner.SubjectCompletionRate(st.Subject.Name, r.assignments),
		))
	}
	return strings.Join(rows, "\n")
}

func (r analyticsModel) renderInsights(w int) string {
	insights := planner.Insights(r.assignments, r.sessions, time.Now())
	if len(insights) == 0 {
		return mutedStyle.Render("  No data to analyze yet. Complete some assignments to see insights.")
	}

	var rows []string
	for _, in := range insights {
		rows = append(rows, "  "+insightStyles[in.Kind].Bold(true).Render(in.Title))
		rows = append(rows, "  "+lipgloss.NewStyle().Width(max(20, w-8)).Render(in.Text))
	}
	return strings.Join(rows, "\n")
}
