package planner

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sadopc/studyplanner/internal/store"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidationErrors maps a form field's JSON name to the constraint it failed.
type ValidationErrors map[string]string

func (e ValidationErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, e[f])
	}
	return strings.Join(msgs, "; ")
}

// For returns the error recorded against field, or nil.
func (e ValidationErrors) For(field string) error {
	if msg, ok := e[field]; ok {
		return errors.New(msg)
	}
	return nil
}

// FieldError extracts field's message from an error returned by one of the
// Validate functions. Any other non-nil error is returned unchanged.
func FieldError(err error, field string) error {
	if err == nil {
		return nil
	}
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return verrs.For(field)
	}
	return err
}

type assignmentInput struct {
	Title         string    `json:"title" validate:"required"`
	Subject       string    `json:"subject" validate:"required"`
	DueDate       time.Time `json:"dueDate" validate:"required"`
	EstimatedTime int       `json:"estimatedTime" validate:"gte=1"`
}

var assignmentMessages = map[string]string{
	"title":         "Title is required",
	"subject":       "Subject is required",
	"dueDate":       "Due date is required",
	"estimatedTime": "Estimated time must be at least 1 minute",
}

// ValidateAssignment checks the fields the assignment form collects. Due
// dates earlier than the start of now's day are rejected.
func ValidateAssignment(a store.Assignment, now time.Time) error {
	in := assignmentInput{
		Title:         strings.TrimSpace(a.Title),
		Subject:       strings.TrimSpace(a.Subject),
		DueDate:       a.DueDate,
		EstimatedTime: a.EstimatedTime,
	}
	errs := check(in, assignmentMessages)
	if _, failed := errs["dueDate"]; !failed && !a.DueDate.IsZero() && a.DueDate.Before(StartOfDay(now)) {
		errs["dueDate"] = "Due date cannot be in the past"
	}
	return result(errs)
}

type subjectInput struct {
	Name         string   `json:"name" validate:"required"`
	Teacher      string   `json:"teacher" validate:"required"`
	Credits      int      `json:"credits" validate:"gte=1,lte=6"`
	CurrentGrade *float64 `json:"currentGrade" validate:"omitempty,gte=0,lte=100"`
	TargetGrade  *float64 `json:"targetGrade" validate:"omitempty,gte=0,lte=100"`
}

var subjectMessages = map[string]string{
	"name":         "Subject name is required",
	"teacher":      "Teacher name is required",
	"credits":      "Credits must be between 1 and 6",
	"currentGrade": "Current grade must be between 0 and 100",
	"targetGrade":  "Target grade must be between 0 and 100",
}

func ValidateSubject(s store.Subject) error {
	in := subjectInput{
		Name:         strings.TrimSpace(s.Name),
		Teacher:      strings.TrimSpace(s.Teacher),
		Credits:      s.Credits,
		CurrentGrade: s.CurrentGrade,
		TargetGrade:  s.TargetGrade,
	}
	return result(check(in, subjectMessages))
}

type goalInput struct {
	Title       string  `json:"title" validate:"required"`
	TargetValue float64 `json:"targetValue" validate:"gt=0"`
}

var goalMessages = map[string]string{
	"title":       "Goal title is required",
	"targetValue": "Target must be greater than 0",
}

func ValidateGoal(g store.StudyGoal) error {
	in := goalInput{
		Title:       strings.TrimSpace(g.Title),
		TargetValue: g.TargetValue,
	}
	return result(check(in, goalMessages))
}

func check(in any, messages map[string]string) ValidationErrors {
	errs := ValidationErrors{}
	err := validate.Struct(in)
	if err == nil {
		return errs
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		errs["_"] = fmt.Sprintf("validate: %v", err)
		return errs
	}
	for _, fe := range fieldErrs {
		field := fe.Field()
		if _, seen := errs[field]; seen {
			continue
		}
		msg, ok := messages[field]
		if !ok {
			msg = fmt.Sprintf("%s failed %s", field, fe.Tag())
		}
		errs[field] = msg
	}
	return errs
}

func result(errs ValidationErrors) error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}
