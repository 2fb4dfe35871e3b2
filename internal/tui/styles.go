package tui

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/studyplanner/internal/planner"
	"github.com/sadopc/studyplanner/internal/store"
	"github.com/sadopc/studyplanner/internal/timer"
)

var (
	colorPrimary   = lipgloss.Color("#6C63FF")
	colorStudy     = lipgloss.Color("#2EC4B6")
	colorStreak    = lipgloss.Color("#FF6B6B")
	colorMuted     = lipgloss.Color("#666666")
	colorDone      = lipgloss.Color("#2ECC71")
	colorDueSoon   = lipgloss.Color("#F39C12")
	colorOverdue   = lipgloss.Color("#E74C3C")
	colorFg        = lipgloss.AdaptiveColor{Light: "#1A1B26", Dark: "#C0CAF5"}
	colorSubtle    = lipgloss.AdaptiveColor{Light: "#A9B1D6", Dark: "#414868"}
	colorHighlight = lipgloss.Color("#7AA2F7")
)

// Layout
var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorPrimary).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(0, 2)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	activePanelStyle = panelStyle.BorderForeground(colorPrimary)

	headerStyle = lipgloss.NewStyle().Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)

	selectedItemStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	normalItemStyle   = lipgloss.NewStyle().Foreground(colorFg)
)

// Text
var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorFg)
	subtitleStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	mutedStyle     = subtitleStyle
	highlightStyle = lipgloss.NewStyle().Foreground(colorHighlight)
	successStyle   = lipgloss.NewStyle().Foreground(colorDone)
	warningStyle   = lipgloss.NewStyle().Foreground(colorDueSoon)
	errorStyle     = lipgloss.NewStyle().Foreground(colorOverdue)
	streakStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorStreak)
	studyBarStyle  = lipgloss.NewStyle().Foreground(colorStudy)
)

var priorityStyles = map[store.Priority]lipgloss.Style{
	store.PriorityHigh:   errorStyle,
	store.PriorityMedium: warningStyle,
	store.PriorityLow:    successStyle,
}

func priorityStyle(p store.Priority) lipgloss.Style {
	if st, ok := priorityStyles[p]; ok {
		return st
	}
	return mutedStyle
}

var statusIcons = map[store.Status]string{
	store.StatusCompleted:  successStyle.Render("✓"),
	store.StatusInProgress: highlightStyle.Render("◐"),
	store.StatusPending:    mutedStyle.Render("○"),
}

func statusIcon(s store.Status) string {
	if icon, ok := statusIcons[s]; ok {
		return icon
	}
	return mutedStyle.Render("○")
}

// dueStyle colours time-until-due text: overdue, due within a day, later.
func dueStyle(a store.Assignment, now time.Time) lipgloss.Style {
	switch {
	case a.Status == store.StatusCompleted:
		return mutedStyle
	case planner.IsOverdue(a, now):
		return errorStyle
	case a.DueDate.Sub(now) < 24*time.Hour:
		return warningStyle
	}
	return highlightStyle
}

// gradeStyle compares a subject's current grade against its target.
func gradeStyle(s store.Subject) lipgloss.Style {
	switch {
	case s.CurrentGrade == nil:
		return mutedStyle
	case s.TargetGrade == nil || *s.CurrentGrade >= *s.TargetGrade:
		return successStyle
	}
	return warningStyle
}

func subjectStyle(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}

func colorDot(hex string) string {
	return subjectStyle(hex).Render("●")
}

var insightStyles = map[planner.InsightKind]lipgloss.Style{
	planner.InsightProgress: successStyle,
	planner.InsightPattern:  highlightStyle,
	planner.InsightWarning:  errorStyle,
	planner.InsightTip:      warningStyle,
}

// timerStyles render the elapsed counter per recorder state.
var timerStyles = map[timer.State]lipgloss.Style{
	timer.Idle:    lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Align(lipgloss.Center),
	timer.Running: lipgloss.NewStyle().Bold(true).Foreground(colorDone).Align(lipgloss.Center),
	timer.Paused:  lipgloss.NewStyle().Bold(true).Foreground(colorDueSoon).Align(lipgloss.Center),
}

var systemDark *bool

// applyTheme switches adaptive colors between their light and dark variants.
func applyTheme(theme string) {
	if systemDark == nil {
		d := lipgloss.HasDarkBackground()
		systemDark = &d
	}
	switch theme {
	case "light":
		lipgloss.SetHasDarkBackground(false)
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	default:
		lipgloss.SetHasDarkBackground(*systemDark)
	}
}
