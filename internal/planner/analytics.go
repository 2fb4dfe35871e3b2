package planner

import (
	"math"
	"sort"
	"time"

	"github.com/sadopc/studyplanner/internal/store"
)

// gpaScale maps inclusive lower grade bounds to grade points, highest first.
var gpaScale = []struct {
	min    float64
	points float64
}{
	{97, 4.0},
	{93, 3.7},
	{90, 3.3},
	{87, 3.0},
	{83, 2.7},
	{80, 2.3},
	{77, 2.0},
	{73, 1.7},
	{70, 1.3},
	{67, 1.0},
	{65, 0.7},
}

// DefaultDailyGoal is the study time the dashboard measures progress against.
const DefaultDailyGoal = 4 * time.Hour

// CompletionRate returns the rounded percentage of completed assignments.
func CompletionRate(list []store.Assignment) int {
	if len(list) == 0 {
		return 0
	}
	done := CountByStatus(list, store.StatusCompleted)
	return int(math.Round(float64(done) / float64(len(list)) * 100))
}

func GradeToGPA(grade float64) float64 {
	for _, step := range gpaScale {
		if grade >= step.min {
			return step.points
		}
	}
	return 0
}

// CalculateGPA returns the credit-weighted grade point average of subjects
// that carry a current grade.
func CalculateGPA(subjects []store.Subject) float64 {
	var points, credits float64
	for _, s := range subjects {
		if s.CurrentGrade == nil {
			continue
		}
		points += GradeToGPA(*s.CurrentGrade) * float64(s.Credits)
		credits += float64(s.Credits)
	}
	if credits == 0 {
		return 0
	}
	return points / credits
}

// AverageGrade averages the non-zero grades recorded on assignments.
func AverageGrade(list []store.Assignment) float64 {
	var sum float64
	var n int
	for _, a := range list {
		if a.Grade == nil || *a.Grade == 0 {
			continue
		}
		sum += *a.Grade
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func CountByStatus(list []store.Assignment, status store.Status) int {
	n := 0
	for _, a := range list {
		if a.Status == status {
			n++
		}
	}
	return n
}

// OverdueCount counts unfinished assignments due strictly before now.
func OverdueCount(list []store.Assignment, now time.Time) int {
	n := 0
	for _, a := range list {
		if IsOverdue(a, now) {
			n++
		}
	}
	return n
}

func IsOverdue(a store.Assignment, now time.Time) bool {
	return a.Status != store.StatusCompleted && a.DueDate.Before(now)
}

// Upcoming returns up to n unfinished assignments ordered by due date.
func Upcoming(list []store.Assignment, n int) []store.Assignment {
	var out []store.Assignment
	for _, a := range list {
		if a.Status != store.StatusCompleted {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate.Before(out[j].DueDate)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// SubjectCompletionRate is CompletionRate restricted to assignments whose
// subject field equals name.
func SubjectCompletionRate(name string, list []store.Assignment) int {
	var matched []store.Assignment
	for _, a := range list {
		if a.Subject == name {
			matched = append(matched, a)
		}
	}
	return CompletionRate(matched)
}

func HasLargeAssignments(list []store.Assignment) bool {
	for _, a := range list {
		if a.EstimatedTime > 120 {
			return true
		}
	}
	return false
}

// TodayStudySeconds sums sessions dated on now's calendar day.
func TodayStudySeconds(sessions []store.StudySession, now time.Time) int64 {
	var total int64
	for _, s := range sessions {
		if IsSameDay(s.Date, now) {
			total += s.Duration
		}
	}
	return total
}

// DailyStudyProgress returns studied/goal as a percentage capped at 100.
func DailyStudyProgress(studied int64, goal time.Duration) int {
	if goal <= 0 {
		return 0
	}
	pct := float64(studied) / goal.Seconds() * 100
	if pct > 100 {
		return 100
	}
	return int(pct)
}

type SubjectStudyTime struct {
	Subject store.Subject
	Seconds int64
}

// StudySecondsBySubject totals session time per subject. Sessions reach a
// subject through their assignment's subject name; sessions without a
// resolvable assignment contribute nothing.
func StudySecondsBySubject(subjects []store.Subject, assignments []store.Assignment, sessions []store.StudySession) []SubjectStudyTime {
	subjectOf := make(map[string]string, len(assignments))
	for _, a := range assignments {
		if _, seen := subjectOf[a.ID]; !seen {
			subjectOf[a.ID] = a.Subject
		}
	}

	byName := make(map[string]int64)
	for _, s := range sessions {
		if s.AssignmentID == "" {
			continue
		}
		name, ok := subjectOf[s.AssignmentID]
		if !ok {
			continue
		}
		byName[name] += s.Duration
	}

	out := make([]SubjectStudyTime, 0, len(subjects))
	for _, sub := range subjects {
		out = append(out, SubjectStudyTime{Subject: sub, Seconds: byName[sub.Name]})
	}
	return out
}

// StudyStreak counts consecutive calendar days with at least one session,
// ending today, or yesterday when nothing has been logged today yet.
func StudyStreak(sessions []store.StudySession, now time.Time) int {
	days := make(map[string]bool, len(sessions))
	for _, s := range sessions {
		days[dayKey(s.Date.In(now.Location()))] = true
	}

	day := StartOfDay(now)
	if !days[dayKey(day)] {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for days[dayKey(day)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// WeekDates returns the seven days of the week containing t, starting on
// weekStartsOn (0 = Sunday).
func WeekDates(t time.Time, weekStartsOn int) []time.Time {
	start := StartOfDay(t)
	offset := (int(start.Weekday()) - weekStartsOn + 7) % 7
	start = start.AddDate(0, 0, -offset)

	dates := make([]time.Time, 7)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}
	return dates
}

// IsSameDay reports whether a and b share a calendar date in b's location.
func IsSameDay(a, b time.Time) bool {
	return dayKey(a.In(b.Location())) == dayKey(b)
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
