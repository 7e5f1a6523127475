package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yigit/hostelmess/internal/app/models"
	"github.com/yigit/hostelmess/internal/client"
	"github.com/yigit/hostelmess/internal/client/flows"
	"github.com/yigit/hostelmess/internal/client/hooks"
)

func (a *app) complaintsCommand() *cli.Command {
	return &cli.Command{
		Name:  "complaints",
		Usage: "list complaints with their status counts",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "status", Value: "all", Usage: "all, pending or resolved"},
			&cli.BoolFlag{Name: "mine", Usage: "only the session user's complaints"},
		},
		Action: func(c *cli.Context) error {
			query := client.ComplaintQuery{Mine: c.Bool("mine")}
			switch status := c.String("status"); status {
			case "all", "":
			case string(models.StatusPending), string(models.StatusResolved):
				query.Status = models.ComplaintStatus(status)
			default:
				return fmt.Errorf("unknown status filter %q", status)
			}

			defaultRole := models.RoleCommittee
			if query.Mine {
				defaultRole = models.RoleStudent
			}
			s, err := a.signIn(c, defaultRole)
			if err != nil {
				return err
			}

			complaints := hooks.UseComplaints(s.api, query)
			complaints.Mount(c.Context)

			ok := section(a.out, "Complaint Management", complaints.State(), func(data []models.Complaint) {
				pending, resolved := complaints.Counts()
				printf(a.out, "Total: %d  Pending: %d  Resolved: %d\n", len(data), pending, resolved)
				renderComplaints(a.out, data, a.now())
			})
			if !ok {
				return errSectionFailed
			}
			return nil
		},
	}
}

func (a *app) statusCommand(name string, status models.ComplaintStatus) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     "mark a complaint " + string(status),
		ArgsUsage: "<complaint-id>",
		Action: func(c *cli.Context) error {
			id := c.Args().First()
			if id == "" {
				return fmt.Errorf("%s needs a complaint id", name)
			}

			s, err := a.signIn(c, models.RoleCommittee)
			if err != nil {
				return err
			}

			complaints := hooks.UseComplaints(s.api, client.ComplaintQuery{})
			if err := complaints.UpdateComplaintStatus(c.Context, id, status); err != nil {
				printf(a.out, "Error: %s\n", complaints.State().Err)
				return errSectionFailed
			}
			printf(a.out, "Complaint %s marked %s\n", id, status)
			return nil
		},
	}
}

func (a *app) toggleCommand() *cli.Command {
	return &cli.Command{
		Name:      "toggle",
		Usage:     "flip a complaint between pending and resolved",
		ArgsUsage: "<complaint-id>",
		Action: func(c *cli.Context) error {
			id := c.Args().First()
			if id == "" {
				return fmt.Errorf("toggle needs a complaint id")
			}

			s, err := a.signIn(c, models.RoleCommittee)
			if err != nil {
				return err
			}

			complaint, err := s.api.ToggleComplaint(c.Context, id)
			if err != nil {
				return err
			}
			printf(a.out, "Complaint %s marked %s\n", complaint.ID, complaint.Status)
			return nil
		},
	}
}

// menuEditCommand edits one day. Edits apply in the order --set, --remove,
// --add and are saved together.
func (a *app) menuEditCommand() *cli.Command {
	return &cli.Command{
		Name:  "menu-edit",
		Usage: "edit one meal of one day of the weekly menu",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "day", Required: true, Usage: "weekday to edit, e.g. Monday"},
			&cli.StringFlag{Name: "meal", Required: true, Usage: "breakfast, lunch, snacks or dinner"},
			&cli.StringSliceFlag{Name: "add", Usage: "append an entry"},
			&cli.IntSliceFlag{Name: "remove", Usage: "remove the entry at this index"},
			&cli.StringSliceFlag{Name: "set", Usage: "replace an entry, as index=value"},
		},
		Action: func(c *cli.Context) error {
			meal := models.MealType(strings.ToLower(c.String("meal")))

			s, err := a.signIn(c, models.RoleCommittee)
			if err != nil {
				return err
			}

			menu := hooks.UseMenu(s.api)
			if st := menu.Mount(c.Context); st.Err != "" {
				printf(a.out, "Error: %s\n", st.Err)
				return errSectionFailed
			}

			var item *models.MenuItem
			for _, it := range menu.State().Data {
				if strings.EqualFold(it.Day, c.String("day")) {
					item = &it
					break
				}
			}
			if item == nil {
				return fmt.Errorf("no menu for %q", c.String("day"))
			}

			editor := flows.NewMenuEditor(menu)
			editor.Start(*item)

			for _, set := range c.StringSlice("set") {
				idx, value, ok := strings.Cut(set, "=")
				if !ok {
					return fmt.Errorf("--set wants index=value, got %q", set)
				}
				i, err := strconv.Atoi(idx)
				if err != nil {
					return fmt.Errorf("--set index %q: %w", idx, err)
				}
				if err := editor.Edit(meal, i, value); err != nil {
					return err
				}
			}

			removals := append([]int(nil), c.IntSlice("remove")...)
			sort.Sort(sort.Reverse(sort.IntSlice(removals)))
			for _, i := range removals {
				if err := editor.Remove(meal, i); err != nil {
					return err
				}
			}

			for _, entry := range c.StringSlice("add") {
				if err := editor.Add(meal); err != nil {
					return err
				}
				scratch, _ := editor.Editing()
				if err := editor.Edit(meal, len(scratch.Meal(meal))-1, entry); err != nil {
					return err
				}
			}

			if err := editor.Save(c.Context); err != nil {
				printf(a.out, "Error: %s\n", hooks.Message(err, "Failed to update menu"))
				return errSectionFailed
			}

			updated, _ := menu.Today(item.Day)
			printf(a.out, "Saved.\n")
			renderMenuEditable(a.out, updated)
			return nil
		},
	}
}

func (a *app) announceCommand() *cli.Command {
	return &cli.Command{
		Name:  "announce",
		Usage: "post an announcement to the student dashboard",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Required: true},
			&cli.StringFlag{Name: "content", Required: true, Usage: "markdown body"},
			&cli.StringFlag{Name: "priority", Value: string(models.PriorityMedium), Usage: "low, medium or high"},
		},
		Action: func(c *cli.Context) error {
			priority := models.Priority(c.String("priority"))
			if !priority.Valid() {
				return fmt.Errorf("unknown priority %q", priority)
			}

			s, err := a.signIn(c, models.RoleCommittee)
			if err != nil {
				return err
			}

			board := hooks.UseAnnouncements(s.api)
			if err := board.CreateAnnouncement(c.Context, c.String("title"), c.String("content"), priority); err != nil {
				printf(a.out, "Error: %s\n", board.State().Err)
				return errSectionFailed
			}

			printf(a.out, "Announcement posted.\n\n")
			section(a.out, "Announcements", board.State(), func(data []models.Announcement) {
				renderAnnouncements(a.out, data, a.now())
			})
			return nil
		},
	}
}
