package planner

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/sadopc/studyplanner/internal/store"
)

var fixedNow = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func assignment(id string, status store.Status, due time.Time) store.Assignment {
	return store.Assignment{
		ID:            id,
		Title:         "Task " + id,
		Subject:       "Math",
		DueDate:       due,
		Priority:      store.PriorityMedium,
		Status:        status,
		EstimatedTime: 60,
	}
}

func ids(list []store.Assignment) []string {
	out := make([]string, len(list))
	for i, a := range list {
		out[i] = a.ID
	}
	return out
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// ============================================================
// Formatting
// ============================================================

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		secs int64
		want string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{3725, "01:02:05"},
		{360000, "100:00:00"},
	}
	for _, tt := range tests {
		if got := FormatElapsed(tt.secs); got != tt.want {
			t.Errorf("FormatElapsed(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		mins int
		want string
	}{
		{0, "0m"},
		{45, "45m"},
		{120, "2h"},
		{165, "2h 45m"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.mins); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.mins, got, tt.want)
		}
	}
}

func TestFormatHours(t *testing.T) {
	if got := FormatHours(5400); got != "1.5h" {
		t.Errorf("expected 1.5h, got %q", got)
	}
}

func TestTimeUntilDue(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want string
	}{
		{"25 hours", 25 * time.Hour, "1 day"},
		{"two days", 49 * time.Hour, "2 days"},
		{"90 minutes", 90 * time.Minute, "1 hour"},
		{"three hours", 3*time.Hour + 59*time.Minute, "3 hours"},
		{"10 minutes", 10 * time.Minute, "10 minutes"},
		{"one minute", time.Minute + 30*time.Second, "1 minute"},
		{"under a minute", 30 * time.Second, "0 minutes"},
		{"due now", 0, "0 minutes"},
		{"past", -time.Second, "Overdue"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TimeUntilDue(fixedNow.Add(tt.in), fixedNow); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// ============================================================
// Grades
// ============================================================

func TestGradeToGPABreakpoints(t *testing.T) {
	tests := []struct {
		grade float64
		want  float64
	}{
		{100, 4.0}, {97, 4.0}, {96.9, 3.7}, {93, 3.7}, {90, 3.3}, {87, 3.0},
		{83, 2.7}, {80, 2.3}, {77, 2.0}, {73, 1.7}, {70, 1.3}, {67, 1.0},
		{65, 0.7}, {64, 0.0}, {0, 0.0},
	}
	for _, tt := range tests {
		if got := GradeToGPA(tt.grade); got != tt.want {
			t.Errorf("GradeToGPA(%v) = %v, want %v", tt.grade, got, tt.want)
		}
	}
}

func TestGradeToGPAMonotonic(t *testing.T) {
	prev := GradeToGPA(0)
	for g := 0.0; g <= 100; g += 0.1 {
		cur := GradeToGPA(g)
		if cur < prev {
			t.Fatalf("GradeToGPA decreased at %v: %v < %v", g, cur, prev)
		}
		prev = cur
	}
}

func TestCalculateGPA(t *testing.T) {
	if got := CalculateGPA(nil); got != 0 {
		t.Errorf("empty: expected 0, got %v", got)
	}

	subjects := []store.Subject{
		{Name: "Math", Credits: 3, CurrentGrade: ptr(90.0)},
		{Name: "Art", Credits: 1, CurrentGrade: ptr(70.0)},
		{Name: "History", Credits: 4},
	}
	want := (3.3*3 + 1.3*1) / 4
	if got := CalculateGPA(subjects); !approx(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	ungraded := []store.Subject{{Name: "History", Credits: 4}}
	if got := CalculateGPA(ungraded); got != 0 {
		t.Errorf("ungraded: expected 0, got %v", got)
	}
}

func TestAverageGrade(t *testing.T) {
	list := []store.Assignment{
		{Grade: ptr(80.0)},
		{Grade: ptr(90.0)},
		{Grade: ptr(0.0)},
		{},
	}
	if got := AverageGrade(list); got != 85 {
		t.Errorf("expected 85, got %v", got)
	}
	if got := AverageGrade(nil); got != 0 {
		t.Errorf("expected 0 for no grades, got %v", got)
	}
}

// ============================================================
// Assignment statistics
// ============================================================

func TestCompletionRate(t *testing.T) {
	if got := CompletionRate(nil); got != 0 {
		t.Errorf("empty: expected 0, got %d", got)
	}

	list := []store.Assignment{
		assignment("1", store.StatusCompleted, fixedNow),
		assignment("2", store.StatusPending, fixedNow),
		assignment("3", store.StatusInProgress, fixedNow),
	}
	if got := CompletionRate(list); got != 33 {
		t.Errorf("expected 33, got %d", got)
	}

	list = append(list, assignment("4", store.StatusCompleted, fixedNow))
	if got := CompletionRate(list); got != 50 {
		t.Errorf("expected 50, got %d", got)
	}

	list[1].Status = store.StatusCompleted
	if got := CompletionRate(list); got != 75 {
		t.Errorf("expected 75, got %d", got)
	}
}

func TestCompletionRateRoundsHalfUp(t *testing.T) {
	list := make([]store.Assignment, 8)
	for i := range list {
		list[i].Status = store.StatusPending
	}
	list[0].Status = store.StatusCompleted
	// 1/8 = 12.5%
	if got := CompletionRate(list); got != 13 {
		t.Errorf("expected 13, got %d", got)
	}
}

func TestOverdueCount(t *testing.T) {
	list := []store.Assignment{
		assignment("past", store.StatusPending, fixedNow.Add(-time.Hour)),
		assignment("past-done", store.StatusCompleted, fixedNow.Add(-time.Hour)),
		assignment("exact", store.StatusInProgress, fixedNow),
		assignment("future", store.StatusPending, fixedNow.Add(time.Hour)),
	}
	if got := OverdueCount(list, fixedNow); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
}

func TestUpcoming(t *testing.T) {
	list := []store.Assignment{
		assignment("c", store.StatusPending, fixedNow.Add(3*time.Hour)),
		assignment("done", store.StatusCompleted, fixedNow.Add(time.Hour)),
		assignment("a", store.StatusPending, fixedNow.Add(time.Hour)),
		assignment("b", store.StatusInProgress, fixedNow.Add(2*time.Hour)),
	}
	got := ids(Upcoming(list, 2))
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("expected [a b], got %v", got)
	}
	if n := len(Upcoming(list, 10)); n != 3 {
		t.Errorf("expected 3 unfinished, got %d", n)
	}
}

func TestSubjectCompletionRate(t *testing.T) {
	list := []store.Assignment{
		assignment("1", store.StatusCompleted, fixedNow),
		assignment("2", store.StatusPending, fixedNow),
		{ID: "3", Subject: "Art", Status: store.StatusCompleted},
	}
	if got := SubjectCompletionRate("Math", list); got != 50 {
		t.Errorf("Math: expected 50, got %d", got)
	}
	if got := SubjectCompletionRate("Art", list); got != 100 {
		t.Errorf("Art: expected 100, got %d", got)
	}
	if got := SubjectCompletionRate("Music", list); got != 0 {
		t.Errorf("Music: expected 0, got %d", got)
	}
}

func TestHasLargeAssignments(t *testing.T) {
	list := []store.Assignment{{EstimatedTime: 120}}
	if HasLargeAssignments(list) {
		t.Error("120 minutes should not count as large")
	}
	list = append(list, store.Assignment{EstimatedTime: 121})
	if !HasLargeAssignments(list) {
		t.Error("121 minutes should count as large")
	}
}

// ============================================================
// Study time
// ============================================================

func TestTodayStudySeconds(t *testing.T) {
	sessions := []store.StudySession{
		{Duration: 600, Date: time.Date(2026, 3, 10, 0, 0, 1, 0, time.UTC)},
		{Duration: 300, Date: time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)},
		{Duration: 900, Date: time.Date(2026, 3, 9, 23, 59, 59, 0, time.UTC)},
	}
	if got := TodayStudySeconds(sessions, fixedNow); got != 900 {
		t.Errorf("expected 900, got %d", got)
	}
}

func TestTodayStudySecondsUsesCalendarDay(t *testing.T) {
	// Eight hours ago falls on the previous calendar day.
	now := time.Date(2026, 3, 10, 2, 0, 0, 0, time.UTC)
	sessions := []store.StudySession{{Duration: 60, Date: now.Add(-8 * time.Hour)}}
	if got := TodayStudySeconds(sessions, now); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestDailyStudyProgress(t *testing.T) {
	if got := DailyStudyProgress(7200, DefaultDailyGoal); got != 50 {
		t.Errorf("expected 50, got %d", got)
	}
	if got := DailyStudyProgress(6*3600, DefaultDailyGoal); got != 100 {
		t.Errorf("expected cap at 100, got %d", got)
	}
	if got := DailyStudyProgress(100, 0); got != 0 {
		t.Errorf("expected 0 for zero goal, got %d", got)
	}
}

func TestStudySecondsBySubject(t *testing.T) {
	subjects := []store.Subject{{ID: "s1", Name: "Math"}, {ID: "s2", Name: "Art"}}
	assignments := []store.Assignment{
		{ID: "a1", Subject: "Math"},
		{ID: "a2", Subject: "Art"},
		{ID: "a3", Subject: "Deleted"},
	}
	sessions := []store.StudySession{
		{AssignmentID: "a1", Duration: 100},
		{AssignmentID: "a1", Duration: 50},
		{AssignmentID: "a2", Duration: 30},
		{AssignmentID: "a3", Duration: 999},
		{AssignmentID: "missing", Duration: 999},
		{Duration: 999},
	}

	got := StudySecondsBySubject(subjects, assignments, sessions)
	if len(got) != 2 {
		t.Fatalf("expected one row per subject, got %d", len(got))
	}
	if got[0].Subject.Name != "Math" || got[0].Seconds != 150 {
		t.Errorf("Math row: %+v", got[0])
	}
	if got[1].Subject.Name != "Art" || got[1].Seconds != 30 {
		t.Errorf("Art row: %+v", got[1])
	}
}

func TestStudyStreak(t *testing.T) {
	day := func(d int) store.StudySession {
		return store.StudySession{Date: time.Date(2026, 3, d, 15, 0, 0, 0, time.UTC), Duration: 60}
	}

	tests := []struct {
		name     string
		sessions []store.StudySession
		want     int
	}{
		{"none", nil, 0},
		{"ending today", []store.StudySession{day(10), day(9), day(8), day(6)}, 3},
		{"ending yesterday", []store.StudySession{day(9), day(8)}, 2},
		{"broken", []store.StudySession{day(7)}, 0},
		{"several today", []store.StudySession{day(10), day(10)}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StudyStreak(tt.sessions, fixedNow); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

// ============================================================
// Calendar helpers
// ============================================================

func TestWeekDates(t *testing.T) {
	// fixedNow is a Tuesday.
	sunday := WeekDates(fixedNow, 0)
	if len(sunday) != 7 {
		t.Fatalf("expected 7 days, got %d", len(sunday))
	}
	if sunday[0].Day() != 8 || sunday[0].Weekday() != time.Sunday {
		t.Errorf("expected week to start Sunday 8th, got %v", sunday[0])
	}
	if sunday[6].Day() != 14 {
		t.Errorf("expected week to end on 14th, got %v", sunday[6])
	}

	monday := WeekDates(fixedNow, 1)
	if monday[0].Day() != 9 || monday[0].Weekday() != time.Monday {
		t.Errorf("expected week to start Monday 9th, got %v", monday[0])
	}
	if monday[0].Hour() != 0 || monday[0].Minute() != 0 {
		t.Errorf("expected midnight, got %v", monday[0])
	}
}

func TestIsSameDay(t *testing.T) {
	if !IsSameDay(fixedNow.Add(-9*time.Hour), fixedNow) {
		t.Error("expected same day")
	}
	if IsSameDay(fixedNow.Add(-10*time.Hour), fixedNow) {
		t.Error("expected previous day")
	}
}

// ============================================================
// Filtering and sorting
// ============================================================

func TestQueryMatches(t *testing.T) {
	a := store.Assignment{
		Title:       "Lab Report",
		Subject:     "Chemistry",
		Description: "Titration results",
		Status:      store.StatusPending,
		Priority:    store.PriorityHigh,
	}

	tests := []struct {
		name string
		q    Query
		want bool
	}{
		{"empty", Query{}, true},
		{"title case-insensitive", Query{Search: "lab rep"}, true},
		{"subject", Query{Search: "CHEM"}, true},
		{"description", Query{Search: "titration"}, true},
		{"no match", Query{Search: "essay"}, false},
		{"subject all", Query{Subject: All, Status: All, Priority: All}, true},
		{"subject exact", Query{Subject: "Chemistry"}, true},
		{"subject not substring", Query{Subject: "Chem"}, false},
		{"status mismatch", Query{Status: string(store.StatusCompleted)}, false},
		{"priority match", Query{Priority: string(store.PriorityHigh)}, true},
		{"combined", Query{Search: "lab", Priority: string(store.PriorityLow)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.q.Matches(a); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFilterKeepsOrder(t *testing.T) {
	list := []store.Assignment{
		{ID: "1", Title: "Essay draft"},
		{ID: "2", Title: "Problem set"},
		{ID: "3", Title: "Essay final"},
	}
	got := ids(Filter(list, Query{Search: "essay"}))
	if !reflect.DeepEqual(got, []string{"1", "3"}) {
		t.Errorf("expected [1 3], got %v", got)
	}
}

func TestSortByPriorityDescendingIsStable(t *testing.T) {
	list := []store.Assignment{
		{ID: "l1", Priority: store.PriorityLow},
		{ID: "h1", Priority: store.PriorityHigh},
		{ID: "m1", Priority: store.PriorityMedium},
		{ID: "h2", Priority: store.PriorityHigh},
		{ID: "l2", Priority: store.PriorityLow},
		{ID: "m2", Priority: store.PriorityMedium},
	}
	got := ids(SortAssignments(list, SortPriority, true))
	want := []string{"h1", "h2", "m1", "m2", "l1", "l2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	got = ids(SortAssignments(list, SortPriority, false))
	want = []string{"l1", "l2", "m1", "m2", "h1", "h2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ascending: expected %v, got %v", want, got)
	}

	if list[0].ID != "l1" {
		t.Error("SortAssignments must not reorder its input")
	}
}

func TestSortByTitleAndSubject(t *testing.T) {
	list := []store.Assignment{
		{ID: "1", Title: "beta", Subject: "Physics"},
		{ID: "2", Title: "Alpha", Subject: "art"},
		{ID: "3", Title: "gamma", Subject: "Biology"},
	}
	if got := ids(SortAssignments(list, SortTitle, false)); !reflect.DeepEqual(got, []string{"2", "1", "3"}) {
		t.Errorf("title: got %v", got)
	}
	if got := ids(SortAssignments(list, SortSubject, true)); !reflect.DeepEqual(got, []string{"1", "3", "2"}) {
		t.Errorf("subject desc: got %v", got)
	}
}

func TestSortByDueDate(t *testing.T) {
	list := []store.Assignment{
		{ID: "late", DueDate: fixedNow.Add(48 * time.Hour)},
		{ID: "soon", DueDate: fixedNow.Add(time.Hour)},
		{ID: "mid", DueDate: fixedNow.Add(24 * time.Hour)},
	}
	if got := ids(SortAssignments(list, SortDueDate, false)); !reflect.DeepEqual(got, []string{"soon", "mid", "late"}) {
		t.Errorf("got %v", got)
	}
}

func TestSortUnknownKeyKeepsOrder(t *testing.T) {
	list := []store.Assignment{{ID: "b"}, {ID: "a"}}
	if got := ids(SortAssignments(list, SortKey("color"), false)); !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Errorf("got %v", got)
	}
}

func TestSubjectNames(t *testing.T) {
	list := []store.Assignment{{Subject: "Math"}, {Subject: ""}, {Subject: "Art"}, {Subject: "Math"}}
	if got := SubjectNames(list); !reflect.DeepEqual(got, []string{"Math", "Art"}) {
		t.Errorf("got %v", got)
	}
}

// ============================================================
// Validation
// ============================================================

func validAssignment() store.Assignment {
	a := NewAssignment(fixedNow)
	a.Title = "Essay"
	a.Subject = "English"
	a.DueDate = fixedNow.Add(24 * time.Hour)
	return a
}

func TestValidateAssignmentOK(t *testing.T) {
	if err := ValidateAssignment(validAssignment(), fixedNow); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}

	// Earlier today is still allowed.
	a := validAssignment()
	a.DueDate = StartOfDay(fixedNow)
	if err := ValidateAssignment(a, fixedNow); err != nil {
		t.Fatalf("expected start of today to be valid, got %v", err)
	}
}

func TestValidateAssignmentMessages(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*store.Assignment)
		field  string
		want   string
	}{
		{"title", func(a *store.Assignment) { a.Title = "  " }, "title", "Title is required"},
		{"subject", func(a *store.Assignment) { a.Subject = "" }, "subject", "Subject is required"},
		{"due missing", func(a *store.Assignment) { a.DueDate = time.Time{} }, "dueDate", "Due date is required"},
		{"due past", func(a *store.Assignment) { a.DueDate = fixedNow.AddDate(0, 0, -1) }, "dueDate", "Due date cannot be in the past"},
		{"estimate", func(a *store.Assignment) { a.EstimatedTime = 0 }, "estimatedTime", "Estimated time must be at least 1 minute"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validAssignment()
			tt.mutate(&a)
			err := ValidateAssignment(a, fixedNow)
			if err == nil {
				t.Fatal("expected validation error")
			}
			ferr := FieldError(err, tt.field)
			if ferr == nil || ferr.Error() != tt.want {
				t.Errorf("expected %q, got %v", tt.want, ferr)
			}
		})
	}
}

func TestValidateAssignmentListsEveryFailure(t *testing.T) {
	err := ValidateAssignment(store.Assignment{}, fixedNow)
	verrs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	for _, f := range []string{"title", "subject", "dueDate", "estimatedTime"} {
		if _, ok := verrs[f]; !ok {
			t.Errorf("missing error for %s", f)
		}
	}
	if FieldError(err, "description") != nil {
		t.Error("unrelated field should have no error")
	}
}

func TestValidateSubject(t *testing.T) {
	s := NewSubject(fixedNow)
	s.Name = "Physics"
	s.Teacher = "Dr. Curie"
	if err := ValidateSubject(s); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*store.Subject)
		field  string
		want   string
	}{
		{"name", func(s *store.Subject) { s.Name = "" }, "name", "Subject name is required"},
		{"teacher", func(s *store.Subject) { s.Teacher = "" }, "teacher", "Teacher name is required"},
		{"credits low", func(s *store.Subject) { s.Credits = 0 }, "credits", "Credits must be between 1 and 6"},
		{"credits high", func(s *store.Subject) { s.Credits = 7 }, "credits", "Credits must be between 1 and 6"},
		{"current grade", func(s *store.Subject) { s.CurrentGrade = ptr(101.0) }, "currentGrade", "Current grade must be between 0 and 100"},
		{"target grade", func(s *store.Subject) { s.TargetGrade = ptr(-1.0) }, "targetGrade", "Target grade must be between 0 and 100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := s
			tt.mutate(&sub)
			ferr := FieldError(ValidateSubject(sub), tt.field)
			if ferr == nil || ferr.Error() != tt.want {
				t.Errorf("expected %q, got %v", tt.want, ferr)
			}
		})
	}
}

func TestValidateGoal(t *testing.T) {
	g := NewGoal(fixedNow)
	if err := ValidateGoal(g); err == nil {
		t.Fatal("expected error for blank goal")
	}
	g.Title = "Read chapters"
	g.TargetValue = 5
	if err := ValidateGoal(g); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
}

func TestValidationErrorsString(t *testing.T) {
	e := ValidationErrors{"title": "Title is required", "subject": "Subject is required"}
	if got := e.Error(); got != "Subject is required; Title is required" {
		t.Errorf("got %q", got)
	}
}

// ============================================================
// Entity helpers
// ============================================================

func TestNewAssignmentDefaults(t *testing.T) {
	a := NewAssignment(fixedNow)
	if a.ID == "" {
		t.Fatal("expected id")
	}
	if a.Priority != store.PriorityMedium || a.Status != store.StatusPending || a.EstimatedTime != 60 {
		t.Errorf("unexpected defaults: %+v", a)
	}
	if b := NewAssignment(fixedNow); b.ID == a.ID {
		t.Error("ids should be unique")
	}
}

func TestNewSubjectDefaults(t *testing.T) {
	s := NewSubject(fixedNow)
	if s.Credits != 3 || s.Color != SubjectColors[0] || s.ID == "" {
		t.Errorf("unexpected defaults: %+v", s)
	}
}

func TestToggleStatus(t *testing.T) {
	a := assignment("1", store.StatusInProgress, fixedNow)

	done := ToggleStatus(a, fixedNow)
	if done.Status != store.StatusCompleted || done.CompletedAt == nil || !done.CompletedAt.Equal(fixedNow) {
		t.Fatalf("expected completed with timestamp, got %+v", done)
	}

	back := ToggleStatus(done, fixedNow.Add(time.Hour))
	if back.Status != store.StatusPending || back.CompletedAt != nil {
		t.Fatalf("expected pending without timestamp, got %+v", back)
	}
}

func TestAddTag(t *testing.T) {
	tags := AddTag(nil, "exam")
	tags = AddTag(tags, "exam")
	tags = AddTag(tags, "")
	tags = AddTag(tags, "lab")
	if !reflect.DeepEqual(tags, []string{"exam", "lab"}) {
		t.Errorf("got %v", tags)
	}
}

// ============================================================
// Insights
// ============================================================

func TestInsightsEmpty(t *testing.T) {
	if got := Insights(nil, []store.StudySession{{Duration: 60}}, fixedNow); got != nil {
		t.Fatalf("expected no insights without assignments, got %v", got)
	}
}

func TestInsights(t *testing.T) {
	list := []store.Assignment{
		assignment("1", store.StatusCompleted, fixedNow.Add(time.Hour)),
		assignment("2", store.StatusPending, fixedNow.Add(-time.Hour)),
	}
	list[1].EstimatedTime = 180
	sessions := []store.StudySession{{Duration: 1200}, {Duration: 2400}}

	got := Insights(list, sessions, fixedNow)
	if len(got) != 4 {
		t.Fatalf("expected 4 insights, got %d: %+v", len(got), got)
	}
	if got[0].Text != "You've completed 50% of your assignments. Keep pushing forward!" {
		t.Errorf("progress: %q", got[0].Text)
	}
	if got[1].Text != "Your average study session is 30m. Great focus duration!" {
		t.Errorf("pattern: %q", got[1].Text)
	}
	if got[2].Kind != InsightWarning || got[2].Text != "You have 1 overdue assignment. Consider prioritizing these to stay on track." {
		t.Errorf("warning: %+v", got[2])
	}
	if got[3].Text != "Break down large assignments into smaller tasks for better time management." {
		t.Errorf("tip: %q", got[3].Text)
	}
}

func TestInsightsWithoutSessionsOrOverdue(t *testing.T) {
	list := []store.Assignment{assignment("1", store.StatusCompleted, fixedNow)}
	got := Insights(list, nil, fixedNow)
	if len(got) != 2 {
		t.Fatalf("expected progress and tip only, got %+v", got)
	}
	if got[0].Text != "You've completed 100% of your assignments. Excellent work!" {
		t.Errorf("progress: %q", got[0].Text)
	}
	if got[1].Text != "Consider setting more specific time estimates for your assignments." {
		t.Errorf("tip: %q", got[1].Text)
	}
}

func TestAverageSessionSeconds(t *testing.T) {
	if AverageSessionSeconds(nil) != 0 {
		t.Error("expected 0 for no sessions")
	}
	if got := AverageSessionSeconds([]store.StudySession{{Duration: 100}, {Duration: 201}}); got != 150 {
		t.Errorf("expected 150, got %d", got)
	}
}
