package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/studyplanner/internal/export"
	"github.com/sadopc/studyplanner/internal/planner"
	"github.com/sadopc/studyplanner/internal/reminder"
	"github.com/sadopc/studyplanner/internal/store"
)

// Options configures NewApp.
type Options struct {
	// Scheduler receives assignment reminders. Nil disables reminders.
	Scheduler *reminder.Scheduler
	// ExportDir is where exports are written. Empty means the home directory.
	ExportDir string
}

var exportFormats = []string{"JSON backup", "Assignments CSV", "Subjects CSV", "Excel workbook"}

// App is the root Bubble Tea model.
type App struct {
	store     *store.Store
	exportDir string
	width     int
	height    int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	dashboard   dashboardModel
	assignments assignmentsModel
	subjects    subjectsModel
	study       studyModel
	analytics   analyticsModel
	settings    settingsModel

	help      help.Model
	status    string
	statusErr bool
}

func NewApp(s *store.Store, opts Options) App {
	h := help.New()
	h.ShowAll = false

	return App{
		store:       s,
		exportDir:   opts.ExportDir,
		activeView:  viewByName(s.Settings().DefaultView),
		dashboard:   newDashboardModel(s),
		assignments: newAssignmentsModel(s, opts.Scheduler),
		subjects:    newSubjectsModel(s),
		study:       newStudyModel(s),
		analytics:   newAnalyticsModel(s),
		settings:    newSettingsModel(s, opts.Scheduler),
		help:        h,
	}
}

func (a App) Init() tea.Cmd {
	applyTheme(a.store.Settings().Theme)
	return a.refreshAll()
}

func (a App) refreshAll() tea.Cmd {
	return tea.Batch(
		a.dashboard.loadData(),
		a.assignments.refresh(),
		a.subjects.refresh(),
		a.study.refresh(),
		a.analytics.refresh(),
		a.settings.refresh(),
	)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.assignments.setSize(a.width, contentHeight)
		a.subjects.setSize(a.width, contentHeight)
		a.study.setSize(a.width, contentHeight)
		a.analytics.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		// The chart is sized at build time.
		return a, a.analytics.refresh()

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchTo(viewDashboard)
		case key.Matches(msg, keys.Tab2):
			return a.switchTo(viewAssignments)
		case key.Matches(msg, keys.Tab3):
			return a.switchTo(viewSubjects)
		case key.Matches(msg, keys.Tab4):
			return a.switchTo(viewStudy)
		case key.Matches(msg, keys.Tab5):
			return a.switchTo(viewAnalytics)
		case key.Matches(msg, keys.Tab6):
			return a.switchTo(viewSettings)
		case key.Matches(msg, keys.Tab):
			return a.switchTo((a.activeView + 1) % viewState(len(viewNames)))
		}

	// Ticks belong to the study recorder whichever view is showing.
	case tickMsg:
		a.study, cmd = a.study.update(msg)
		return a, cmd

	case dashboardDataMsg:
		a.dashboard, cmd = a.dashboard.update(msg)
		return a, cmd
	case assignmentsDataMsg:
		a.assignments, cmd = a.assignments.update(msg)
		return a, cmd
	case subjectsDataMsg:
		a.subjects, cmd = a.subjects.update(msg)
		return a, cmd
	case studyDataMsg:
		a.study, cmd = a.study.update(msg)
		return a, cmd
	case analyticsDataMsg:
		a.analytics, cmd = a.analytics.update(msg)
		return a, cmd
	case settingsDataMsg:
		a.settings, cmd = a.settings.update(msg)
		return a, cmd

	case dataChangedMsg:
		return a, a.refreshAll()

	case statusMsg:
		a.status = msg.text
		a.statusErr = msg.isError
		return a, nil

	case reminderMsg:
		a.status = fmt.Sprintf("🔔 %s: %s", msg.title, msg.body)
		a.statusErr = false
		return a, a.assignments.refresh()

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusErr = false
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) switchTo(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	return a, a.refreshCurrentView()
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewAssignments:
		a.assignments, cmd = a.assignments.update(msg)
	case viewSubjects:
		a.subjects, cmd = a.subjects.update(msg)
	case viewStudy:
		a.study, cmd = a.study.update(msg)
	case viewAnalytics:
		a.analytics, cmd = a.analytics.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewAssignments:
		return a.assignments.formActive
	case viewSubjects:
		return a.subjects.formActive
	case viewStudy:
		return a.study.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.loadData()
	case viewAssignments:
		return a.assignments.refresh()
	case viewSubjects:
		return a.subjects.refresh()
	case viewStudy:
		return a.study.refresh()
	case viewAnalytics:
		return a.analytics.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewAssignments:
		content = a.assignments.view()
	case viewSubjects:
		content = a.subjects.view()
	case viewStudy:
		content = a.study.view()
	case viewAnalytics:
		content = a.analytics.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(1, a.height-headerHeight-footerHeight)

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("studyplanner")
	gap := max(1, a.width-lipgloss.Width(title)-lipgloss.Width(tabRow)-4)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.statusErr {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	// Timer indicator in footer
	timerInfo := ""
	if a.study.recorder.Session() != nil {
		elapsed := planner.FormatElapsed(a.study.recorder.Elapsed())
		timerInfo = successStyle.Render(" ● " + elapsed)
		if a.study.paused() {
			timerInfo = warningStyle.Render(" ⏸ " + elapsed)
		}
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := max(1, a.width-lipgloss.Width(left)-lipgloss.Width(right)-2)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	rows := []string{titleStyle.Render("Export"), ""}
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  files are written to "+a.exportPath("")))
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) exportPath(name string) string {
	dir := a.exportDir
	if dir == "" {
		dir, _ = os.UserHomeDir()
	}
	return filepath.Join(dir, name)
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		now := time.Now()

		var (
			path    string
			content string
			err     error
		)
		switch format {
		case 0:
			path = a.exportPath(export.BundleFileName(now))
			content = a.store.ExportSnapshot()
		case 1:
			path = a.exportPath(export.CSVFileName(store.KeyAssignments))
			content, err = export.AssignmentsCSV(a.store.Assignments())
		case 2:
			path = a.exportPath(export.CSVFileName(store.KeySubjects))
			content, err = export.SubjectsCSV(a.store.Subjects())
		default:
			path = a.exportPath(fmt.Sprintf("studyplanner-%s.xlsx", now.Format("2006-01-02")))
			if err := export.ToXLSX(a.store.Assignments(), a.store.Subjects(), path, now); err != nil {
				return statusMsg{text: fmt.Sprintf("Excel error: %v", err), isError: true}
			}
			return exportDoneMsg{path: path}
		}

		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		if content == "" {
			return statusMsg{text: "Nothing to export", isError: true}
		}
		if err := export.WriteFile(path, content); err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}

// StorageErrorHook returns a store error callback that surfaces failures in
// the status bar of p.
func StorageErrorHook(p *tea.Program) func(error) {
	return func(err error) {
		// Store calls happen inside Update; Send would block the loop.
		go p.Send(statusMsg{text: fmt.Sprintf("Storage error: %v", err), isError: true})
	}
}
