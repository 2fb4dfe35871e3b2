package planner

import (
	"sort"
	"strings"

	"github.com/sadopc/studyplanner/internal/store"
)

// All matches every value of a filter field.
const All = "all"

type SortKey string

const (
	SortTitle    SortKey = "title"
	SortDueDate  SortKey = "dueDate"
	SortPriority SortKey = "priority"
	SortSubject  SortKey = "subject"
)

// SortKeys lists the keys in the order the assignment list cycles through them.
var SortKeys = []SortKey{SortDueDate, SortPriority, SortTitle, SortSubject}

// Query narrows an assignment list. Empty filter fields behave like All.
type Query struct {
	Search   string
	Subject  string
	Status   string
	Priority string
}

func (q Query) Matches(a store.Assignment) bool {
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(a.Title), needle) &&
			!strings.Contains(strings.ToLower(a.Subject), needle) &&
			!strings.Contains(strings.ToLower(a.Description), needle) {
			return false
		}
	}
	return exact(q.Subject, a.Subject) &&
		exact(q.Status, string(a.Status)) &&
		exact(q.Priority, string(a.Priority))
}

func exact(filter, value string) bool {
	return filter == "" || filter == All || filter == value
}

// Filter returns the assignments matching q in their original order.
func Filter(list []store.Assignment, q Query) []store.Assignment {
	out := make([]store.Assignment, 0, len(list))
	for _, a := range list {
		if q.Matches(a) {
			out = append(out, a)
		}
	}
	return out
}

func priorityWeight(p store.Priority) int {
	switch p {
	case store.PriorityHigh:
		return 3
	case store.PriorityMedium:
		return 2
	case store.PriorityLow:
		return 1
	}
	return 0
}

// SortAssignments returns a stably sorted copy of list. Equal keys keep
// their input order in both directions. Unknown keys leave the order alone.
func SortAssignments(list []store.Assignment, key SortKey, descending bool) []store.Assignment {
	out := make([]store.Assignment, len(list))
	copy(out, list)

	var cmp func(a, b store.Assignment) int
	switch key {
	case SortTitle:
		cmp = func(a, b store.Assignment) int {
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		}
	case SortSubject:
		cmp = func(a, b store.Assignment) int {
			return strings.Compare(strings.ToLower(a.Subject), strings.ToLower(b.Subject))
		}
	case SortDueDate:
		cmp = func(a, b store.Assignment) int {
			return a.DueDate.Compare(b.DueDate)
		}
	case SortPriority:
		cmp = func(a, b store.Assignment) int {
			return priorityWeight(a.Priority) - priorityWeight(b.Priority)
		}
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(out[i], out[j])
		if descending {
			return c > 0
		}
		return c < 0
	})
	return out
}

// SubjectNames returns the distinct subject names referenced by list, in first
// seen order.
func SubjectNames(list []store.Assignment) []string {
	seen := make(map[string]bool)
	var names []string
	for _, a := range list {
		if a.Subject == "" || seen[a.Subject] {
			continue
		}
		seen[a.Subject] = true
		names = append(names, a.Subject)
	}
	return names
}
