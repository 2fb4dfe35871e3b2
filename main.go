package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/studyplanner/internal/config"
	"github.com/sadopc/studyplanner/internal/export"
	"github.com/sadopc/studyplanner/internal/reminder"
	"github.com/sadopc/studyplanner/internal/store"
	"github.com/sadopc/studyplanner/internal/tui"
)

func main() {
	envFile := flag.String("env", "", "path to a .env file (default ./.env)")
	dbPath := flag.String("db", "", "database path (overrides STUDYPLANNER_DB_PATH)")
	exportPath := flag.String("export", "", "write a JSON backup to this path (- for stdout) and exit")
	importPath := flag.String("import", "", "restore a JSON backup from this path and exit")
	csvCollection := flag.String("csv", "", "print assignments or subjects as CSV and exit")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fatal(err)
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	s, err := store.New(cfg.DBPath)
	if err != nil {
		fatal(fmt.Errorf("opening database: %w", err))
	}
	defer s.Close()

	switch {
	case *exportPath != "":
		err = runExport(s, *exportPath)
	case *importPath != "":
		err = runImport(s, *importPath)
	case *csvCollection != "":
		err = runCSV(s, *csvCollection)
	default:
		err = runTUI(s, cfg)
	}
	if err != nil {
		s.Close()
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

func runExport(s *store.Store, path string) error {
	data := s.ExportSnapshot()
	if path == "-" {
		_, err := fmt.Println(data)
		return err
	}
	if err := export.WriteFile(path, data); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "exported to %s\n", path)
	return nil
}

func runImport(s *store.Store, path string) error {
	text, err := export.ReadFile(path)
	if err != nil {
		return err
	}
	if !s.ImportSnapshot(text) {
		return fmt.Errorf("%s is not a valid backup", path)
	}
	if err := s.LastError(); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	fmt.Fprintln(os.Stderr, "Data imported successfully!")
	return nil
}

func runCSV(s *store.Store, collection string) error {
	var (
		out string
		err error
	)
	switch collection {
	case store.KeyAssignments:
		out, err = export.AssignmentsCSV(s.Assignments())
	case store.KeySubjects:
		out, err = export.SubjectsCSV(s.Subjects())
	default:
		return fmt.Errorf("unknown collection %q (want assignments or subjects)", collection)
	}
	if err != nil {
		return err
	}
	if out != "" {
		fmt.Println(out)
	}
	return nil
}

func runTUI(s *store.Store, cfg config.Config) error {
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)

	notifier := tui.NewNotifier(s)
	sched := reminder.NewScheduler(notifier, cfg.ReminderLead)
	defer sched.Stop()

	if notifier.RequestPermission() == reminder.Granted {
		n := sched.ScheduleAll(s.Assignments())
		log.Printf("scheduled %d reminders", n)
	}

	app := tui.NewApp(s, tui.Options{Scheduler: sched, ExportDir: cfg.ExportDir})
	p := tea.NewProgram(app, tea.WithAltScreen())
	notifier.Attach(p)
	s.OnError(tui.StorageErrorHook(p))

	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
