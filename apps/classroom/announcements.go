package main

import (
	"strings"

	"github.com/einsteinium08/class-bloom-space/core"
	"github.com/einsteinium08/class-bloom-space/core/classroom"
)

func (cli *commandLine) listAnnouncements(args []string) error {
	fs := cli.newFlagSet("announcements", "announcements [-ordering FIELDS]")
	ordering := fs.String("ordering", "-pinned,-created_at",
		"comma separated fields, prefix with - for descending: "+strings.Join(classroom.AnnouncementOrderingFields, ", "))
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	svc, err := cli.service()
	if err != nil {
		return err
	}
	announcements, err := svc.Announcements(cli.ctx)
	if err != nil {
		return err
	}
	if len(announcements) == 0 {
		cli.printf("no announcements\n")
		return nil
	}

	for _, a := range classroom.SortAnnouncements(announcements, core.ParseOrdering(*ordering)) {
		pin := ""
		if a.Pinned {
			pin = " (pinned)"
		}
		cli.printf("[%s] %s%s\n", a.ID, a.Title, pin)
		cli.printf("    by %s on %s\n", a.CreatedBy, a.CreatedAt.Format("2006-01-02 15:04"))
		cli.printf("    %s\n", a.Message)
	}
	return nil
}

func (cli *commandLine) addAnnouncement(args []string) error {
	fs := cli.newFlagSet("announce", "announce -title T -message M [-pinned] [-by NAME]")
	title := fs.String("title", "", "title")
	message := fs.String("message", "", "message")
	pinned := fs.Bool("pinned", false, "keep on top of the list")
	by := fs.String("by", "", "author, defaults to the logged in user")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	na := classroom.NewAnnouncement{
		Title:     *title,
		Message:   *message,
		CreatedBy: *by,
		Pinned:    *pinned,
	}
	if core.CleanString(na.CreatedBy) == "" {
		na.CreatedBy = cli.author()
	}
	if err := na.Validate(cli.validate, cli.translator); err != nil {
		return err
	}

	svc, err := cli.service()
	if err != nil {
		return err
	}
	a, err := svc.AddAnnouncement(cli.ctx, na)
	if err != nil {
		return err
	}
	cli.printf("announcement %s posted\n", a.ID)
	return nil
}

func (cli *commandLine) pinAnnouncement(args []string) error {
	fs := cli.newFlagSet("pin", "pin -id ID [-unpin]")
	id := fs.String("id", "", "announcement id")
	unpin := fs.Bool("unpin", false, "unpin instead")
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
	pinned := !*unpin
	if err = svc.UpdateAnnouncement(cli.ctx, *id, classroom.AnnouncementPatch{Pinned: &pinned}); err != nil {
		return err
	}
	if pinned {
		cli.printf("announcement %s pinned\n", *id)
	} else {
		cli.printf("announcement %s unpinned\n", *id)
	}
	return nil
}

func (cli *commandLine) deleteAnnouncement(args []string) error {
	fs := cli.newFlagSet("delete-announcement", "delete-announcement -id ID")
	id := fs.String("id", "", "announcement id")
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
	if err = svc.DeleteAnnouncement(cli.ctx, *id); err != nil {
		return err
	}
	cli.printf("announcement %s deleted\n", *id)
	return nil
}
