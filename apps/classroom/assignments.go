package main

import (
	"flag"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/volatiletech/null/v8"

	"github.com/einsteinium08/class-bloom-space/core"
	"github.com/einsteinium08/class-bloom-space/core/classroom"
)

const (
	clearValue = "none"
	blankText  = "this field cannot be blank"
)

func optInt(n null.Int) string {
	if !n.Valid {
		return "-"
	}
	return strconv.Itoa(n.Int)
}

func optFloat(f null.Float64) string {
	if !f.Valid {
		return "-"
	}
	return strconv.FormatFloat(f.Float64, 'f', -1, 64)
}

func dueLabel(a classroom.Assignment) string {
	label := a.DueDate.Format(dateLayout)
	due := classroom.DueState(a, classroom.NowFunc().UTC())
	switch {
	case due.Overdue:
		label += " (overdue)"
	case due.DueSoon:
		label += " (due soon)"
	}
	return label
}

func (cli *commandLine) listAssignments(args []string) error {
	fs := cli.newFlagSet("assignments", "assignments [-ordering FIELDS] [-status STATUS]")
	ordering := fs.String("ordering", "due_date",
		"comma separated fields, prefix with - for descending: "+strings.Join(classroom.AssignmentOrderingFields, ", "))
	status := fs.String("status", "", "only list assignments with this status")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	svc, err := cli.service()
	if err != nil {
		return err
	}
	assignments, err := svc.Assignments(cli.ctx)
	if err != nil {
		return err
	}
	if *status != "" {
		s, ok := classroom.ParseStatus(core.CleanString(*status, true /* lower */))
		if !ok {
			return core.NewValidationError(nil, core.FieldError{Field: "status", Error: "must be pending, submitted or graded"})
		}
		filtered := assignments[:0]
		for _, a := range assignments {
			if a.Status == s {
				filtered = append(filtered, a)
			}
		}
		assignments = filtered
	}
	if len(assignments) == 0 {
		cli.printf("no assignments\n")
		return nil
	}

	tw := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	_, _ = tw.Write([]byte("ID\tTITLE\tSUBJECT\tDUE\tSTATUS\tPOINTS\tGRADE\tBY\n"))
	for _, a := range classroom.SortAssignments(assignments, core.ParseOrdering(*ordering)) {
		_, _ = tw.Write([]byte(strings.Join([]string{
			a.ID, a.Title, a.Subject, dueLabel(a), a.Status.String(), optInt(a.Points), optFloat(a.Grade), a.CreatedBy,
		}, "\t") + "\n"))
	}
	return tw.Flush()
}

func (cli *commandLine) addAssignment(args []string) error {
	fs := cli.newFlagSet("add-assignment", "add-assignment -title T -description D -subject S -due DATE [-points N] [-by NAME]")
	title := fs.String("title", "", "title")
	description := fs.String("description", "", "instructions")
	subject := fs.String("subject", "", "subject, e.g. "+strings.Join(classroom.Subjects[:3], ", "))
	due := fs.String("due", "", "due date, YYYY-MM-DD or RFC3339")
	points := fs.String("points", "", "optional points")
	by := fs.String("by", "", "author, defaults to the logged in user")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	na := classroom.NewAssignment{
		Title:       *title,
		Description: *description,
		Subject:     *subject,
		CreatedBy:   *by,
	}
	if core.CleanString(na.CreatedBy) == "" {
		na.CreatedBy = cli.author()
	}

	var flds []core.FieldError
	if *due != "" {
		t, err := parseDate(*due)
		if err != nil {
			flds = append(flds, core.FieldError{Field: "due_date", Error: "must be YYYY-MM-DD or RFC3339"})
		} else {
			na.DueDate = t
		}
	}
	if *points != "" {
		n, err := strconv.Atoi(*points)
		if err != nil {
			flds = append(flds, core.FieldError{Field: "points", Error: "must be an integer"})
		} else {
			na.Points = null.IntFrom(n)
		}
	}
	if len(flds) > 0 {
		return core.NewValidationError(nil, flds...)
	}
	if err := na.Validate(cli.validate, cli.translator); err != nil {
		return err
	}

	svc, err := cli.service()
	if err != nil {
		return err
	}
	a, err := svc.AddAssignment(cli.ctx, na)
	if err != nil {
		return err
	}
	cli.printf("assignment %s created\n", a.ID)
	return nil
}

// assignmentPatch builds a patch from the flags that were set on the command line.
func assignmentPatch(fs *flag.FlagSet) (classroom.AssignmentPatch, []core.FieldError) {
	var (
		patch classroom.AssignmentPatch
		flds  []core.FieldError
	)
	notBlank := func(field, v string) *string {
		v = core.CleanString(v)
		if v == "" {
			flds = append(flds, core.FieldError{Field: field, Error: blankText})
		}
		return &v
	}

	fs.Visit(func(f *flag.Flag) {
		v := f.Value.String()
		switch f.Name {
		case "title":
			patch.Title = notBlank("title", v)
		case "description":
			patch.Description = notBlank("description", v)
		case "subject":
			patch.Subject = notBlank("subject", v)
		case "by":
			patch.CreatedBy = notBlank("created_by", v)
		case "due":
			t, err := parseDate(v)
			if err != nil {
				flds = append(flds, core.FieldError{Field: "due_date", Error: "must be YYYY-MM-DD or RFC3339"})
				return
			}
			patch.DueDate = &t
		case "points":
			var n null.Int
			if v != clearValue {
				i, err := strconv.Atoi(v)
				if err != nil || i < 0 {
					flds = append(flds, core.FieldError{Field: "points", Error: "must be a non-negative integer or none"})
					return
				}
				n = null.IntFrom(i)
			}
			patch.Points = &n
		case "status":
			s, ok := classroom.ParseStatus(core.CleanString(v, true /* lower */))
			if !ok {
				flds = append(flds, core.FieldError{Field: "status", Error: "must be pending, submitted or graded"})
				return
			}
			patch.Status = &s
		case "grade":
			var g null.Float64
			if v != clearValue {
				n, err := strconv.ParseFloat(v, 64)
				if err != nil || !classroom.ValidGrade(n) {
					flds = append(flds, core.FieldError{Field: "grade", Error: "must be a number between 0 and 100 or none"})
					return
				}
				g = null.Float64From(n)
			}
			patch.Grade = &g
		}
	})
	return patch, flds
}

func (cli *commandLine) updateAssignment(args []string) error {
	fs := cli.newFlagSet("update-assignment", "update-assignment -id ID [fields...]")
	id := fs.String("id", "", "assignment id")
	fs.String("title", "", "new title")
	fs.String("description", "", "new instructions")
	fs.String("subject", "", "new subject")
	fs.String("due", "", "new due date, YYYY-MM-DD or RFC3339")
	fs.String("points", "", "new points, none to clear")
	fs.String("by", "", "new author")
	fs.String("status", "", "overwrite the status (bypasses submit/grade)")
	fs.String("grade", "", "overwrite the grade, none to clear (bypasses grade)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *id == "" {
		fs.Usage()
		return errHelp
	}

	patch, flds := assignmentPatch(fs)
	if len(flds) > 0 {
		return core.NewValidationError(nil, flds...)
	}
	if patch.IsEmpty() {
		cli.printf("nothing to update\n")
		return nil
	}

	svc, err := cli.service()
	if err != nil {
		return err
	}
	if err = svc.UpdateAssignment(cli.ctx, *id, patch); err != nil {
		return err
	}
	cli.printf("assignment %s updated\n", *id)
	return nil
}

func (cli *commandLine) deleteAssignment(args []string) error {
	fs := cli.newFlagSet("delete-assignment", "delete-assignment -id ID")
	id := fs.String("id", "", "assignment id")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *id == "" {
		fs.Usage()
		return errHelp
	}

	svc, err := cli.service()
	if err != nil {
		return err
	}
	if err = svc.DeleteAssignment(cli.ctx, *id); err != nil {
		return err
	}
	cli.printf("assignment %s deleted\n", *id)
	return nil
}

func (cli *commandLine) submitAssignment(args []string) error {
	fs := cli.newFlagSet("submit", "submit -id ID")
	id := fs.String("id", "", "assignment id")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *id == "" {
		fs.Usage()
		return errHelp
	}

	svc, err := cli.service()
	if err != nil {
		return err
	}
	a, err := svc.SubmitAssignment(cli.ctx, *id)
	if err != nil {
		return err
	}
	cli.printf("assignment %s %s at %s\n", a.ID, a.Status, a.SubmittedAt.Time.Format("2006-01-02 15:04"))
	return nil
}

func (cli *commandLine) gradeAssignment(args []string) error {
	fs := cli.newFlagSet("grade", "grade -id ID -grade G")
	id := fs.String("id", "", "assignment id")
	g := fs.Float64("grade", -1, "grade between 0 and 100")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	var gradeSet bool
	fs.Visit(func(f *flag.Flag) { gradeSet = gradeSet || f.Name == "grade" })
	if *id == "" || !gradeSet {
		fs.Usage()
		return errHelp
	}

	svc, err := cli.service()
	if err != nil {
		return err
	}
	a, err := svc.GradeAssignment(cli.ctx, *id, *g)
	if err != nil {
		return err
	}
	cli.printf("assignment %s graded %s\n", a.ID, optFloat(a.Grade))
	return nil
}
