package export

import (
	"fmt"
	"time"

	"github.com/sadopc/studyplanner/internal/planner"
	"github.com/sadopc/studyplanner/internal/store"
	"github.com/xuri/excelize/v2"
)

const (
	AssignmentsSheet = "Assignments"
	SubjectsSheet    = "Subjects"
)

var (
	assignmentColumns = []any{"Title", "Subject", "Due", "Priority", "Status", "Estimated", "Time Until Due", "Grade"}
	subjectColumns    = []any{"Name", "Teacher", "Credits", "Current Grade", "Grade Points", "Target Grade", "Completion %"}
)

// ToXLSX writes a workbook with one sheet of assignments and one of
// subjects to path. Derived columns are computed against now.
func ToXLSX(assignments []store.Assignment, subjects []store.Subject, path string, now time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", AssignmentsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SubjectsSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	if err := writeRow(f, AssignmentsSheet, 1, assignmentColumns); err != nil {
		return err
	}
	for i, a := range assignments {
		row := []any{
			a.Title,
			a.Subject,
			a.DueDate.Local().Format("2006-01-02 15:04"),
			string(a.Priority),
			string(a.Status),
			planner.FormatDuration(a.EstimatedTime),
			planner.TimeUntilDue(a.DueDate, now),
			optional(a.Grade),
		}
		if err := writeRow(f, AssignmentsSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := writeRow(f, SubjectsSheet, 1, subjectColumns); err != nil {
		return err
	}
	for i, s := range subjects {
		points := any("")
		if s.CurrentGrade != nil {
			points = planner.GradeToGPA(*s.CurrentGrade)
		}
		row := []any{
			s.Name,
			s.Teacher,
			s.Credits,
			optional(s.CurrentGrade),
			points,
			optional(s.TargetGrade),
			planner.SubjectCompletionRate(s.Name, assignments),
		}
		if err := writeRow(f, SubjectsSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func optional(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}
