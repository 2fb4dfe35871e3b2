package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/studyplanner/internal/export"
	"github.com/sadopc/studyplanner/internal/reminder"
	"github.com/sadopc/studyplanner/internal/store"
)

type settingsModel struct {
	store  *store.Store
	sched  *reminder.Scheduler
	width  int
	height int

	settings store.UserSettings
	counts   [4]int // assignments, subjects, sessions, goals

	formActive bool
	form       *huh.Form
	formType   string // "settings", "import", "clear"

	// Form values as pointers (survive value copies)
	theme         *string
	defaultView   *string
	timeFormat    *string
	weekStartsOn  *int
	language      *string
	notifyAssign  *bool
	notifyStudy   *bool
	notifyGoals   *bool
	pomodoro      *string
	shortBreak    *string
	longBreak     *string
	autoBreaks    *bool
	autoPomodoros *bool
	importPath    *string
	confirmClear  *bool
}

func newSettingsModel(s *store.Store, sched *reminder.Scheduler) settingsModel {
	m := settingsModel{
		store:        s,
		sched:        sched,
		settings:     store.DefaultSettings(),
		weekStartsOn: new(int),
	}
	for _, p := range []**string{&m.theme, &m.defaultView, &m.timeFormat, &m.language, &m.pomodoro, &m.shortBreak, &m.longBreak, &m.importPath} {
		*p = new(string)
	}
	for _, p := range []**bool{&m.notifyAssign, &m.notifyStudy, &m.notifyGoals, &m.autoBreaks, &m.autoPomodoros, &m.confirmClear} {
		*p = new(bool)
	}
	return m
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings store.UserSettings
	counts   [4]int
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return settingsDataMsg{
			settings: s.store.Settings(),
			counts: [4]int{
				len(s.store.Assignments()),
				len(s.store.Subjects()),
				len(s.store.StudySessions()),
				len(s.store.StudyGoals()),
			},
		}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		s.counts = msg.counts
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return s.showForm()
		case key.Matches(msg, keys.Import):
			return s.showImport()
		case key.Matches(msg, keys.Clear):
			return s.showClear()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	cur := s.settings
	*s.theme = cur.Theme
	*s.defaultView = strings.ToLower(cur.DefaultView)
	*s.timeFormat = cur.TimeFormat
	*s.weekStartsOn = cur.WeekStartsOn
	*s.language = cur.Language
	*s.notifyAssign = cur.Notifications.Assignments
	*s.notifyStudy = cur.Notifications.StudyReminders
	*s.notifyGoals = cur.Notifications.Goals
	*s.pomodoro = strconv.Itoa(cur.StudyPreferences.PomodoroLength)
	*s.shortBreak = strconv.Itoa(cur.StudyPreferences.ShortBreakLength)
	*s.longBreak = strconv.Itoa(cur.StudyPreferences.LongBreakLength)
	*s.autoBreaks = cur.StudyPreferences.AutoStartBreaks
	*s.autoPomodoros = cur.StudyPreferences.AutoStartPomodoros

	var views []huh.Option[string]
	for _, n := range viewNames {
		views = append(views, huh.NewOption(n, strings.ToLower(n)))
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Theme").
				Options(
					huh.NewOption("Light", "light"),
					huh.NewOption("Dark", "dark"),
					huh.NewOption("System", "system"),
				).Value(s.theme),
			huh.NewSelect[string]().Title("Default view").Options(views...).Value(s.defaultView),
			huh.NewSelect[string]().Title("Time format").
				Options(
					huh.NewOption("12-hour", "12h"),
					huh.NewOption("24-hour", "24h"),
				).Value(s.timeFormat),
			huh.NewSelect[int]().Title("Week starts on").
				Options(
					huh.NewOption("Sunday", 0),
					huh.NewOption("Monday", 1),
				).Value(s.weekStartsOn),
			huh.NewInput().Title("Language").Value(s.language),
		).Title("General"),
		huh.NewGroup(
			huh.NewConfirm().Title("Assignment reminders").Value(s.notifyAssign),
			huh.NewConfirm().Title("Study reminders").Value(s.notifyStudy),
			huh.NewConfirm().Title("Goal notifications").Value(s.notifyGoals),
		).Title("Notifications"),
		huh.NewGroup(
			huh.NewInput().Title("Pomodoro length (min)").Value(s.pomodoro).Validate(minutesField),
			huh.NewInput().Title("Short break (min)").Value(s.shortBreak).Validate(minutesField),
			huh.NewInput().Title("Long break (min)").Value(s.longBreak).Validate(minutesField),
			huh.NewConfirm().Title("Auto-start breaks").Value(s.autoBreaks),
			huh.NewConfirm().Title("Auto-start pomodoros").Value(s.autoPomodoros),
		).Title("Study"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formType = "settings"
	s.formActive = true
	return s, s.form.Init()
}

func minutesField(v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 || n > 180 {
		return errors.New("enter minutes between 1 and 180")
	}
	return nil
}

func (s settingsModel) showImport() (settingsModel, tea.Cmd) {
	*s.importPath = ""
	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Backup file").
				Description("Path to a JSON backup").
				Value(s.importPath).
				Validate(func(v string) error {
					if strings.TrimSpace(v) == "" {
						return errors.New("path is required")
					}
					return nil
				}),
		).Title("Import Data"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formType = "import"
	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) showClear() (settingsModel, tea.Cmd) {
	*s.confirmClear = false
	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Clear all data?").
				Description("This permanently deletes all assignments, subjects, sessions, goals and settings.").
				Affirmative("Clear").
				Negative("Cancel").
				Value(s.confirmClear),
		),
	).WithShowHelp(true)

	s.formType = "clear"
	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		switch s.formType {
		case "import":
			return s, s.importData(strings.TrimSpace(*s.importPath))
		case "clear":
			if !*s.confirmClear {
				return s, nil
			}
			return s, s.clearData()
		default:
			return s, s.saveSettings()
		}
	}

	return s, cmd
}

func (s settingsModel) saveSettings() tea.Cmd {
	next := s.settings
	next.Theme = *s.theme
	next.DefaultView = *s.defaultView
	next.TimeFormat = *s.timeFormat
	next.WeekStartsOn = *s.weekStartsOn
	next.Language = strings.TrimSpace(*s.language)
	next.Notifications.Assignments = *s.notifyAssign
	next.Notifications.StudyReminders = *s.notifyStudy
	next.Notifications.Goals = *s.notifyGoals
	next.StudyPreferences.PomodoroLength, _ = strconv.Atoi(strings.TrimSpace(*s.pomodoro))
	next.StudyPreferences.ShortBreakLength, _ = strconv.Atoi(strings.TrimSpace(*s.shortBreak))
	next.StudyPreferences.LongBreakLength, _ = strconv.Atoi(strings.TrimSpace(*s.longBreak))
	next.StudyPreferences.AutoStartBreaks = *s.autoBreaks
	next.StudyPreferences.AutoStartPomodoros = *s.autoPomodoros

	s.store.SaveSettings(next)
	applyTheme(next.Theme)
	s.rescheduleAll()
	return tea.Batch(dataChanged, statusCmd("Settings saved"))
}

// rescheduleAll re-evaluates every reminder against the current
// notification permission.
func (s settingsModel) rescheduleAll() {
	if s.sched == nil {
		return
	}
	s.sched.ScheduleAll(s.store.Assignments())
}

func (s settingsModel) importData(path string) tea.Cmd {
	text, err := export.ReadFile(path)
	if err != nil || !s.store.ImportSnapshot(text) {
		return errorCmd("Failed to import data. Please check the file format.")
	}
	applyTheme(s.store.Settings().Theme)
	s.rescheduleAll()
	return tea.Batch(dataChanged, statusCmd("Data imported successfully!"))
}

func (s settingsModel) clearData() tea.Cmd {
	if s.sched != nil {
		for _, a := range s.store.Assignments() {
			s.sched.Cancel(a.ID)
		}
	}
	s.store.Clear()
	applyTheme(store.DefaultSettings().Theme)
	return tea.Batch(dataChanged, statusCmd("All data cleared"))
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		switch s.formType {
		case "import":
			title = titleStyle.Render("Import Data")
		case "clear":
			title = errorStyle.Bold(true).Render("Clear All Data")
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	cur := s.settings
	weekStart := "Sunday"
	if cur.WeekStartsOn == 1 {
		weekStart = "Monday"
	}
	prefs := cur.StudyPreferences

	rows := []string{titleStyle.Render("Settings"), ""}
	rows = append(rows, settingRows([][2]string{
		{"Theme", cur.Theme},
		{"Default view", cur.DefaultView},
		{"Time format", cur.TimeFormat},
		{"Week starts on", weekStart},
		{"Language", cur.Language},
	})...)

	rows = append(rows, "", subtitleStyle.Render("Notifications"))
	rows = append(rows, settingRows([][2]string{
		{"Assignment reminders", onOff(cur.Notifications.Assignments)},
		{"Study reminders", onOff(cur.Notifications.StudyReminders)},
		{"Goal notifications", onOff(cur.Notifications.Goals)},
	})...)

	rows = append(rows, "", subtitleStyle.Render("Study"))
	rows = append(rows, settingRows([][2]string{
		{"Pomodoro", fmt.Sprintf("%d min", prefs.PomodoroLength)},
		{"Short break", fmt.Sprintf("%d min", prefs.ShortBreakLength)},
		{"Long break", fmt.Sprintf("%d min", prefs.LongBreakLength)},
		{"Auto-start breaks", onOff(prefs.AutoStartBreaks)},
		{"Auto-start pomodoros", onOff(prefs.AutoStartPomodoros)},
	})...)

	rows = append(rows, "", subtitleStyle.Render("Data"))
	rows = append(rows, settingRows([][2]string{
		{"Stored", fmt.Sprintf("%d assignments, %d subjects, %d sessions, %d goals",
			s.counts[0], s.counts[1], s.counts[2], s.counts[3])},
	})...)

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("enter: edit settings  i: import backup  E: export  X: clear all data"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func settingRows(pairs [][2]string) []string {
	rows := make([]string, 0, len(pairs))
	for _, p := range pairs {
		label := lipgloss.NewStyle().Width(24).Render(p[0])
		rows = append(rows, fmt.Sprintf("  %s %s", label, highlightStyle.Render(p[1])))
	}
	return rows
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
