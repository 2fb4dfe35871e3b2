package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/studyplanner/internal/store"
	"github.com/xuri/excelize/v2"
)

var fixedNow = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func sampleData() ([]store.Assignment, []store.Subject) {
	assignments := []store.Assignment{
		{
			ID:            "a1",
			Title:         "Essay",
			Subject:       "English",
			DueDate:       fixedNow.Add(25 * time.Hour),
			Priority:      store.PriorityHigh,
			Status:        store.StatusCompleted,
			EstimatedTime: 90,
			Tags:          []string{"draft", "final"},
			CreatedAt:     fixedNow,
			UpdatedAt:     fixedNow,
		},
		{
			ID:            "a2",
			Title:         "Reading, ch. 4",
			Subject:       "English",
			DueDate:       fixedNow.Add(-time.Hour),
			Priority:      store.PriorityLow,
			Status:        store.StatusPending,
			EstimatedTime: 30,
			Grade:         ptr(88.0),
			Tags:          []string{},
			CreatedAt:     fixedNow,
			UpdatedAt:     fixedNow,
		},
	}
	subjects := []store.Subject{
		{ID: "s1", Name: "English", Teacher: "Ms. Woolf", Credits: 3, CurrentGrade: ptr(90.0), CreatedAt: fixedNow},
		{ID: "s2", Name: "Art", Teacher: "Mr. Klee", Credits: 1, CreatedAt: fixedNow},
	}
	return assignments, subjects
}

// ============================================================
// CSV
// ============================================================

type csvRow struct {
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Tags  []string `json:"tags"`
	Note  *string  `json:"note"`
}

func TestCSVEmpty(t *testing.T) {
	got, err := CSV([]csvRow{})
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestCSVRules(t *testing.T) {
	rows := []csvRow{
		{Name: "Smith, J", Count: 3, Tags: []string{"a", "b"}},
		{Name: `Say "hi"`, Count: 0, Note: ptr("x")},
	}
	got, err := CSV(rows)
	if err != nil {
		t.Fatal(err)
	}
	want := "name,count,tags,note\n" +
		`"Smith, J",3,a,b,` + "\n" +
		`Say "hi",0,,x`
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestCSVHeaderFromFirstRecord(t *testing.T) {
	rows := []map[string]any{
		{"b": 1, "a": "x"},
		{"a": "y", "c": true},
	}
	got, err := CSV(rows)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "a,b" {
		t.Errorf("header: got %q", lines[0])
	}
	if lines[2] != "y," {
		t.Errorf("missing field should render empty, got %q", lines[2])
	}
}

func TestAssignmentsCSV(t *testing.T) {
	assignments, _ := sampleData()
	got, err := AssignmentsCSV(assignments)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}

	header := "id,title,subject,dueDate,priority,status,description,estimatedTime,tags,createdAt,updatedAt,notes,reminderSet"
	if lines[0] != header {
		t.Errorf("header:\n got %s\nwant %s", lines[0], header)
	}
	if !strings.HasPrefix(lines[1], "a1,Essay,English,2026-03-11T10:30:00Z,high,completed,,90,draft,final,") {
		t.Errorf("row 1: %s", lines[1])
	}
	if !strings.HasPrefix(lines[2], `a2,"Reading, ch. 4",English,`) {
		t.Errorf("row 2: %s", lines[2])
	}
	if strings.Contains(got, "88") {
		t.Error("grade is not a column of the first record and should be dropped")
	}
}

func TestSubjectsCSV(t *testing.T) {
	_, subjects := sampleData()
	got, err := SubjectsCSV(subjects)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "id,name,color,teacher,credits,currentGrade,createdAt\n") {
		t.Errorf("unexpected header in %q", got)
	}
	if !strings.Contains(got, "s2,Art,,Mr. Klee,1,,") {
		t.Errorf("expected empty currentGrade for Art, got %q", got)
	}
}

// ============================================================
// Files
// ============================================================

func TestBundleFileName(t *testing.T) {
	if got := BundleFileName(fixedNow); got != "studyplanner-backup-2026-03-10.json" {
		t.Errorf("got %q", got)
	}
	late := time.Date(2026, 3, 10, 22, 0, 0, 0, time.FixedZone("EST", -5*3600))
	if got := BundleFileName(late); got != "studyplanner-backup-2026-03-11.json" {
		t.Errorf("expected UTC date, got %q", got)
	}
	if got := CSVFileName("subjects"); got != "subjects.csv" {
		t.Errorf("got %q", got)
	}
}

func TestWriteAndReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.json")
	if err := WriteFile(path, `{"assignments":[]}`); err != nil {
		t.Fatal(err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != `{"assignments":[]}` {
		t.Errorf("got %q", got)
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error")
	}
}

func TestWriteFileInvalidPath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	os.WriteFile(blocker, []byte("x"), 0o644)
	if err := WriteFile(filepath.Join(blocker, "out.csv"), "x"); err == nil {
		t.Fatal("expected error writing beneath a regular file")
	}
}

// ============================================================
// XLSX
// ============================================================

func TestToXLSX(t *testing.T) {
	assignments, subjects := sampleData()
	path := filepath.Join(t.TempDir(), "planner.xlsx")

	if err := ToXLSX(assignments, subjects, path, fixedNow); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != AssignmentsSheet || sheets[1] != SubjectsSheet {
		t.Fatalf("unexpected sheets %v", sheets)
	}

	rows, err := f.GetRows(AssignmentsSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "Title" || rows[1][0] != "Essay" || rows[2][0] != "Reading, ch. 4" {
		t.Errorf("unexpected titles %v", rows)
	}
	if rows[1][6] != "1 day" || rows[2][6] != "Overdue" {
		t.Errorf("unexpected time until due: %q, %q", rows[1][6], rows[2][6])
	}
	if rows[1][5] != "1h 30m" {
		t.Errorf("unexpected estimate %q", rows[1][5])
	}

	subjectRows, err := f.GetRows(SubjectsSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(subjectRows) != 3 {
		t.Fatalf("expected 3 subject rows, got %d", len(subjectRows))
	}
	if subjectRows[1][0] != "English" || subjectRows[1][4] != "3.3" || subjectRows[1][6] != "50" {
		t.Errorf("unexpected English row %v", subjectRows[1])
	}
}

func TestToXLSXEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	if err := ToXLSX(nil, nil, path, fixedNow); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected workbook on disk: %v", err)
	}
}
