package planner

import (
	"time"

	"github.com/google/uuid"
	"github.com/sadopc/studyplanner/internal/store"
)

// SubjectColors are the swatches offered when creating a subject.
var SubjectColors = []string{
	"#3b82f6", "#ef4444", "#10b981", "#f59e0b", "#8b5cf6",
	"#ec4899", "#06b6d4", "#84cc16", "#f97316", "#6366f1",
}

// DaysOfWeek lists the days a class can be scheduled on.
var DaysOfWeek = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func NewID() string {
	return uuid.NewString()
}

// NewAssignment returns a pending, medium-priority assignment with a fresh id.
func NewAssignment(now time.Time) store.Assignment {
	return store.Assignment{
		ID:            NewID(),
		Priority:      store.PriorityMedium,
		Status:        store.StatusPending,
		EstimatedTime: 60,
		Tags:          []string{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func NewSubject(now time.Time) store.Subject {
	return store.Subject{
		ID:        NewID(),
		Color:     SubjectColors[0],
		Credits:   3,
		CreatedAt: now,
	}
}

func NewGoal(now time.Time) store.StudyGoal {
	return store.StudyGoal{
		ID:        NewID(),
		Type:      store.GoalWeekly,
		Deadline:  now.AddDate(0, 0, 7),
		CreatedAt: now,
	}
}

// ToggleStatus flips a between completed and pending. CompletedAt is set on
// the way to completed and cleared on the way back.
func ToggleStatus(a store.Assignment, now time.Time) store.Assignment {
	if a.Status == store.StatusCompleted {
		a.Status = store.StatusPending
		a.CompletedAt = nil
		return a
	}
	a.Status = store.StatusCompleted
	a.CompletedAt = &now
	return a
}

// AddTag appends tag unless it is blank or already present.
func AddTag(tags []string, tag string) []string {
	if tag == "" {
		return tags
	}
	for _, t := range tags {
		if t == tag {
			return tags
		}
	}
	return append(tags, tag)
}
