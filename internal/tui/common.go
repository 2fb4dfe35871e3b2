package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewAssignments
	viewSubjects
	viewStudy
	viewAnalytics
	viewSettings
)

var viewNames = []string{"Dashboard", "Assignments", "Subjects", "Study", "Analytics", "Settings"}

// viewByName resolves a settings defaultView value to a tab.
func viewByName(name string) viewState {
	for i, n := range viewNames {
		if strings.EqualFold(n, name) {
			return viewState(i)
		}
	}
	return viewDashboard
}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

// tickMsg drives the study recorder. gen ties a tick to the run that armed it.
type tickMsg struct {
	gen int
}

type exportDoneMsg struct {
	path string
}

// dataChangedMsg asks every view to reload from the store.
type dataChangedMsg struct{}

type reminderMsg struct {
	title string
	body  string
	tag   string
}

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func errorCmd(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text, isError: true} }
}

func dataChanged() tea.Msg {
	return dataChangedMsg{}
}

// --- Helpers ---

const dueLayout = "2006-01-02 15:04"

// parseDue accepts "YYYY-MM-DD HH:MM" or a bare date, which means the end
// of that day. Times are local.
func parseDue(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.ParseInLocation(dueLayout, s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t.Add(23*time.Hour + 59*time.Minute), nil
	}
	return time.Time{}, fmt.Errorf("Use YYYY-MM-DD or YYYY-MM-DD HH:MM")
}

func formatDue(t time.Time, timeFormat string) string {
	if timeFormat == "24h" {
		return t.Local().Format("Mon Jan 02 15:04")
	}
	return t.Local().Format("Mon Jan 02 3:04 PM")
}

// parseOptionalFloat returns nil for blank input.
func parseOptionalFloat(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("Enter a number")
	}
	return &v, nil
}

func formatOptionalFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func splitTags(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}


func progressBar(pct, width int) string {
	if width < 1 {
		width = 1
	}
	pct = max(0, min(pct, 100))
	filled := pct * width / 100
	return successStyle.Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", width-filled))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

// window returns the [start, end) slice bounds that keep cursor visible in
// a list of n rows showing at most size at a time.
func window(cursor, n, size int) (int, int) {
	if size < 1 {
		size = 1
	}
	if n <= size {
		return 0, n
	}
	start := cursor - size/2
	start = max(0, min(start, n-size))
	return start, start + size
}
