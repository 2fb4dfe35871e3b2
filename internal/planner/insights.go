package planner

import (
	"fmt"
	"time"

	"github.com/sadopc/studyplanner/internal/store"
)

type InsightKind int

const (
	InsightProgress InsightKind = iota
	InsightPattern
	InsightWarning
	InsightTip
)

// Insight is one piece of feedback shown alongside the analytics.
type Insight struct {
	Kind  InsightKind
	Title string
	Text  string
}

// AverageSessionSeconds is the mean duration of sessions, or 0 when empty.
func AverageSessionSeconds(sessions []store.StudySession) int64 {
	if len(sessions) == 0 {
		return 0
	}
	var total int64
	for _, s := range sessions {
		total += s.Duration
	}
	return total / int64(len(sessions))
}

// Insights derives feedback from the current assignments and sessions. It
// returns nothing until at least one assignment exists.
func Insights(assignments []store.Assignment, sessions []store.StudySession, now time.Time) []Insight {
	if len(assignments) == 0 {
		return nil
	}

	rate := CompletionRate(assignments)
	progress := fmt.Sprintf("You've completed %d%% of your assignments.", rate)
	if rate >= 80 {
		progress += " Excellent work!"
	} else {
		progress += " Keep pushing forward!"
	}
	out := []Insight{{Kind: InsightProgress, Title: "Great Progress!", Text: progress}}

	if len(sessions) > 0 {
		avg := AverageSessionSeconds(sessions)
		text := fmt.Sprintf("Your average study session is %s.", FormatDuration(int(avg/60)))
		if avg > 1500 {
			text += " Great focus duration!"
		} else {
			text += " Consider longer focus sessions for better productivity."
		}
		out = append(out, Insight{Kind: InsightPattern, Title: "Study Pattern", Text: text})
	}

	if n := OverdueCount(assignments, now); n > 0 {
		noun := "assignment"
		if n > 1 {
			noun = "assignments"
		}
		out = append(out, Insight{
			Kind:  InsightWarning,
			Title: "Attention Needed",
			Text:  fmt.Sprintf("You have %d overdue %s. Consider prioritizing these to stay on track.", n, noun),
		})
	}

	tip := "Consider setting more specific time estimates for your assignments."
	if HasLargeAssignments(assignments) {
		tip = "Break down large assignments into smaller tasks for better time management."
	}
	out = append(out, Insight{Kind: InsightTip, Title: "Recommendation", Text: tip})
	return out
}
