package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/shlex"
	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/term"

	"github.com/einsteinium08/class-bloom-space/core"
	"github.com/einsteinium08/class-bloom-space/core/classroom"
	"github.com/einsteinium08/class-bloom-space/core/user"
	metricsvc "github.com/einsteinium08/class-bloom-space/services/metrics"
)

var (
	isTerminalFunc = term.IsTerminal // mockable

	errHelp = errors.New("help provided")
	errQuit = errors.New("quit")

	commandNames = []string{
		"login", "logout", "whoami",
		"assignments", "add-assignment", "update-assignment", "delete-assignment", "submit", "grade",
		"announcements", "announce", "pin", "delete-announcement",
		"progress", "metrics", "subjects", "reset", "help", "quit",
	}
)

const (
	unknownTeacher = "Unknown Teacher"
	minSuggestRate = 0.6
	dateLayout     = "2006-01-02"
)

type commandLine struct {
	base       context.Context // store scope only
	ctx        context.Context // store scope + session user
	registry   prometheus.Gatherer
	validate   *validator.Validate
	translator ut.Translator
	log        core.Logger
	out        io.Writer
}

func (cli *commandLine) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(cli.out, format, args...)
}

func (cli *commandLine) printUsage() {
	cli.printf("Usage:\n")
	cli.printf("  login -name NAME [-role teacher|student] [-email EMAIL] - start a session\n")
	cli.printf("  logout                                          - end the session\n")
	cli.printf("  whoami                                          - show the session user\n")
	cli.printf("  assignments [-ordering FIELDS] [-status STATUS] - list assignments\n")
	cli.printf("  add-assignment -title T -description D -subject S -due DATE [-points N] [-by NAME]\n")
	cli.printf("  update-assignment -id ID [-title T] [-description D] [-subject S] [-due DATE] [-points N|none]\n")
	cli.printf("                    [-by NAME] [-status STATUS] [-grade G|none]\n")
	cli.printf("  delete-assignment -id ID\n")
	cli.printf("  submit -id ID                                   - hand in an assignment\n")
	cli.printf("  grade -id ID -grade G                           - grade a submitted assignment (0-100)\n")
	cli.printf("  announcements [-ordering FIELDS]                - list announcements\n")
	cli.printf("  announce -title T -message M [-pinned] [-by NAME]\n")
	cli.printf("  pin -id ID [-unpin]\n")
	cli.printf("  delete-announcement -id ID\n")
	cli.printf("  progress                                        - completion and announcement stats\n")
	cli.printf("  metrics                                         - prometheus text exposition\n")
	cli.printf("  subjects                                        - suggested subjects\n")
	cli.printf("  reset                                           - restore the demo data\n")
	cli.printf("  help | quit\n")
}

// serve runs commands read line by line from in until EOF or quit.
func (cli *commandLine) serve(in io.Reader, interactive bool) error {
	scanner := bufio.NewScanner(in)
	for {
		if interactive {
			cli.printf("> ")
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		args, err := shlex.Split(scanner.Text())
		if err != nil {
			cli.printf("error: %v\n", err)
			continue
		}
		if err = cli.run(args); err != nil {
			switch err {
			case errQuit:
				return nil
			case errHelp:
			default:
				cli.printError(err)
			}
		}
	}
}

func (cli *commandLine) printError(err error) {
	var vErr *core.ValidationError
	if errors.As(err, &vErr) && vErr.Err == nil {
		cli.printf("invalid input:\n")
		for _, fld := range vErr.Fields {
			cli.printf("  %s: %s\n", fld.Field, fld.Error)
		}
		return
	}
	cli.log.Debug("command failed", err)
	cli.printf("error: %v\n", err)
}

// run executes one command; args[0] is the command name.
func (cli *commandLine) run(args []string) error {
	if len(args) == 0 {
		return nil
	}
	name, args := strings.ToLower(args[0]), args[1:]

	switch name {
	case "login":
		return cli.login(args)
	case "logout":
		cli.ctx = cli.base
		cli.printf("logged out\n")
		return nil
	case "whoami":
		return cli.whoami()
	case "assignments":
		return cli.listAssignments(args)
	case "add-assignment":
		return cli.addAssignment(args)
	case "update-assignment":
		return cli.updateAssignment(args)
	case "delete-assignment":
		return cli.deleteAssignment(args)
	case "submit":
		return cli.submitAssignment(args)
	case "grade":
		return cli.gradeAssignment(args)
	case "announcements":
		return cli.listAnnouncements(args)
	case "announce":
		return cli.addAnnouncement(args)
	case "pin":
		return cli.pinAnnouncement(args)
	case "delete-announcement":
		return cli.deleteAnnouncement(args)
	case "progress":
		return cli.progress()
	case "metrics":
		return cli.metrics()
	case "subjects":
		for _, s := range classroom.Subjects {
			cli.printf("%s\n", s)
		}
		return nil
	case "reset":
		return cli.reset()
	case "help", "-h", "--help":
		cli.printUsage()
		return errHelp
	case "quit", "exit":
		return errQuit
	}

	cli.printf("unknown command %q", name)
	if s := suggest(name, commandNames); s != "" {
		cli.printf(", did you mean %q?", s)
	}
	cli.printf(" (try help)\n")
	return errHelp
}

// suggest returns the candidate closest to name, or "" when none is close enough.
func suggest(name string, candidates []string) string {
	var (
		best     string
		bestRate float64
	)
	a := strings.Split(name, "")
	for _, c := range candidates {
		rate := difflib.NewMatcher(a, strings.Split(c, "")).Ratio()
		if rate >= minSuggestRate && rate > bestRate {
			best, bestRate = c, rate
		}
	}
	return best
}

func (cli *commandLine) newFlagSet(name, usage string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	fs.Usage = func() {
		cli.printf("Usage: %s\n", usage)
		fs.PrintDefaults()
	}
	return fs
}

// parseFlags returns errHelp when the flag package already printed the usage.
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return errHelp
	}
	return nil
}

func (cli *commandLine) service() (*classroom.Service, error) {
	return classroom.FromContext(cli.ctx)
}

// author is the name used for CreatedBy when none is given.
func (cli *commandLine) author() string {
	if usr, err := user.FromContext(cli.ctx); err == nil && usr.Name != "" {
		return usr.Name
	}
	return unknownTeacher
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Parse(dateLayout, s)
}

func (cli *commandLine) login(args []string) error {
	fs := cli.newFlagSet("login", "login -name NAME [-role teacher|student] [-email EMAIL]")
	name := fs.String("name", "", "display name")
	role := fs.String("role", string(user.RoleStudent), "teacher or student")
	email := fs.String("email", "", "optional email")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if core.CleanString(*name) == "" {
		fs.Usage()
		return errHelp
	}
	r, ok := user.ParseRole(*role)
	if !ok {
		return core.NewValidationError(nil, core.FieldError{Field: "role", Error: "must be teacher or student"})
	}

	usr := user.New(*name, r, *email)
	cli.ctx = user.WithUser(cli.base, usr)
	cli.log.Info("session opened", usr)
	cli.printf("logged in as %s (%s)\n", usr.Name, usr.Role)
	return nil
}

func (cli *commandLine) whoami() error {
	usr, err := user.FromContext(cli.ctx)
	if err == user.ErrNoSession {
		cli.printf("not logged in\n")
		return nil
	}
	if err != nil {
		return err
	}
	cli.printf("%s [%s] (%s)\n", usr.Name, usr.Initials(), usr.Role)
	return nil
}

func (cli *commandLine) progress() error {
	svc, err := cli.service()
	if err != nil {
		return err
	}
	p, err := svc.Progress(cli.ctx)
	if err != nil {
		return err
	}
	stats, err := svc.AnnouncementStats(cli.ctx)
	if err != nil {
		return err
	}
	cli.printf("assignments: %d total, %d pending, %d submitted, %d graded\n", p.Total, p.Pending, p.Submitted, p.Graded)
	cli.printf("completion: %d%% (%d/%d)\n", p.CompletionRate, p.Completed, p.Total)
	cli.printf("announcements: %d total, %d pinned, %d this week\n", stats.Total, stats.Pinned, stats.ThisWeek)
	return nil
}

func (cli *commandLine) metrics() error {
	return metricsvc.WriteText(cli.out, cli.registry)
}

func (cli *commandLine) reset() error {
	svc, err := cli.service()
	if err != nil {
		return err
	}
	if err = svc.Reset(cli.ctx); err != nil {
		return err
	}
	cli.printf("classroom reset to the demo data\n")
	return nil
}
