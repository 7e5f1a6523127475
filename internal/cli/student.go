package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/yigit/hostelmess/internal/app/models"
	"github.com/yigit/hostelmess/internal/client"
	"github.com/yigit/hostelmess/internal/client/flows"
	"github.com/yigit/hostelmess/internal/client/hooks"
)

func (a *app) menuCommand() *cli.Command {
	return &cli.Command{
		Name:  "menu",
		Usage: "show today's menu, or the whole week",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "week", Usage: "show all seven days"},
			&cli.StringFlag{Name: "day", Usage: "show this weekday instead of today"},
		},
		Action: func(c *cli.Context) error {
			s, err := a.signIn(c, models.RoleStudent)
			if err != nil {
				return err
			}

			if day := c.String("day"); day != "" && !c.Bool("week") {
				return a.renderDay(c, s, day)
			}

			menu := hooks.UseMenu(s.api)
			menu.Mount(c.Context)

			if c.Bool("week") {
				return a.renderWeek(menu)
			}
			return a.renderToday(menu, "")
		},
	}
}

// renderDay asks the server for one weekday; an unknown day falls back to
// the first menu row there.
func (a *app) renderDay(c *cli.Context, s *session, day string) error {
	printf(a.out, "== Menu ==\n")
	item, err := s.api.MenuForDay(c.Context, day)
	if err != nil {
		printf(a.out, "Error: %s\n", hooks.Message(err, "Failed to fetch menu"))
		return errSectionFailed
	}
	renderMenuDay(a.out, *item)
	return nil
}

func (a *app) renderWeek(menu *hooks.MenuHook) error {
	ok := section(a.out, "Weekly Menu", menu.State(), func(items []models.MenuItem) {
		for _, item := range items {
			renderMenuDay(a.out, item)
		}
	})
	if !ok {
		return errSectionFailed
	}
	return nil
}

func (a *app) renderToday(menu *hooks.MenuHook, day string) error {
	if day == "" {
		day = a.now().Weekday().String()
	}
	ok := section(a.out, "Today's Menu", menu.State(), func([]models.MenuItem) {
		item, found := menu.Today(day)
		if !found {
			printf(a.out, "No menu published.\n")
			return
		}
		renderMenuDay(a.out, item)
	})
	if !ok {
		return errSectionFailed
	}
	return nil
}

func (a *app) categoriesCommand() *cli.Command {
	return &cli.Command{
		Name:  "categories",
		Usage: "list complaint categories",
		Action: func(c *cli.Context) error {
			s, err := a.signIn(c, models.RoleStudent)
			if err != nil {
				return err
			}
			categories, err := s.api.Categories(c.Context)
			if err != nil {
				return err
			}
			for _, cat := range categories {
				printf(a.out, "%s\n", cat)
			}
			return nil
		},
	}
}

func (a *app) complainCommand() *cli.Command {
	return &cli.Command{
		Name:  "complain",
		Usage: "file a complaint about the mess",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "category", Required: true},
			&cli.StringFlag{Name: "description", Required: true},
			&cli.PathFlag{Name: "image", Usage: "photo to attach"},
		},
		Action: func(c *cli.Context) error {
			s, err := a.signIn(c, models.RoleStudent)
			if err != nil {
				return err
			}

			complaints := hooks.UseComplaints(s.api, client.ComplaintQuery{Mine: true})
			form := flows.NewComplaintForm(complaints)
			form.SetCategory(c.String("category"))
			form.SetDescription(c.String("description"))

			if path := c.Path("image"); path != "" {
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("failed to open image: %w", err)
				}
				defer f.Close()
				form.SetPhoto(&client.Photo{Filename: filepath.Base(path), Body: f})
			}

			if err := form.Submit(c.Context); err != nil {
				_, msg := form.State()
				printf(a.out, "Error: %s\n", msg)
				return errSectionFailed
			}

			printf(a.out, "Complaint Submitted! The committee will review it shortly.\n\n")
			section(a.out, "My Complaints", complaints.State(), func(data []models.Complaint) {
				renderComplaints(a.out, data, a.now())
			})
			return nil
		},
	}
}

func (a *app) attachCommand() *cli.Command {
	return &cli.Command{
		Name:      "attach",
		Usage:     "attach a photo to one of your complaints",
		ArgsUsage: "<complaint-id>",
		Flags: []cli.Flag{
			&cli.PathFlag{Name: "image", Required: true},
		},
		Action: func(c *cli.Context) error {
			id := c.Args().First()
			if id == "" {
				return fmt.Errorf("attach needs a complaint id")
			}

			s, err := a.signIn(c, models.RoleStudent)
			if err != nil {
				return err
			}

			path := c.Path("image")
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open image: %w", err)
			}
			defer f.Close()

			complaint, err := s.api.AttachPhoto(c.Context, id, client.Photo{Filename: filepath.Base(path), Body: f})
			if err != nil {
				return err
			}
			if complaint.Image != nil {
				printf(a.out, "Photo attached: %s\n", *complaint.Image)
			}
			return nil
		},
	}
}

func (a *app) tipCommand() *cli.Command {
	return &cli.Command{
		Name:  "tip",
		Usage: "list mess workers or build a UPI tip link",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "worker", Usage: "worker id to tip"},
			&cli.StringFlag{Name: "amount", Usage: "amount in rupees"},
			&cli.BoolFlag{Name: "pay", Usage: "open the link in the UPI app"},
		},
		Action: func(c *cli.Context) error {
			s, err := a.signIn(c, models.RoleStudent)
			if err != nil {
				return err
			}

			workers := hooks.UseWorkers(s.api)
			workers.Mount(c.Context)

			id := c.String("worker")
			if id == "" {
				ok := section(a.out, "Tip Mess Workers", workers.State(), func(data []models.Worker) {
					renderWorkers(a.out, data)
				})
				if !ok {
					return errSectionFailed
				}
				return nil
			}

			if st := workers.State(); st.Err != "" {
				printf(a.out, "Error: %s\n", st.Err)
				return errSectionFailed
			}
			worker, found := workers.Find(id)
			if !found {
				return fmt.Errorf("worker %q not found", id)
			}

			tip := flows.NewTipping(s.api, a.open)
			tip.Select(worker)
			tip.SetAmount(c.String("amount"))

			if c.Bool("pay") {
				link, err := tip.Pay(c.Context)
				if err != nil {
					return err
				}
				printf(a.out, "Opened %s\n", link.Link)
				return nil
			}

			link, err := tip.Link(c.Context)
			if err != nil {
				return err
			}
			printf(a.out, "Tip %s\n  upi: %s\n  link: %s\n", link.Name, link.UpiID, link.Link)
			return nil
		},
	}
}

func (a *app) announcementsCommand() *cli.Command {
	return &cli.Command{
		Name:  "announcements",
		Usage: "show committee announcements",
		Action: func(c *cli.Context) error {
			s, err := a.signIn(c, models.RoleStudent)
			if err != nil {
				return err
			}

			board := hooks.UseAnnouncements(s.api)
			board.Mount(c.Context)
			ok := section(a.out, "Announcements", board.State(), func(data []models.Announcement) {
				renderAnnouncements(a.out, data, a.now())
			})
			if !ok {
				return errSectionFailed
			}
			return nil
		},
	}
}

// dashboardCommand mounts every section of the signed in role's dashboard
// at once. A failing section shows its error; the others still render.
func (a *app) dashboardCommand() *cli.Command {
	return &cli.Command{
		Name:  "dashboard",
		Usage: "show every section of the dashboard",
		Action: func(c *cli.Context) error {
			s, err := a.signIn(c, models.RoleStudent)
			if err != nil {
				return err
			}

			menu := hooks.UseMenu(s.api)
			workers := hooks.UseWorkers(s.api)
			board := hooks.UseAnnouncements(s.api)
			query := client.ComplaintQuery{Mine: true}
			if s.user.Role == models.RoleCommittee {
				query = client.ComplaintQuery{}
			}
			complaints := hooks.UseComplaints(s.api, query)

			g, ctx := errgroup.WithContext(c.Context)
			g.Go(func() error { menu.Mount(ctx); return nil })
			g.Go(func() error { complaints.Mount(ctx); return nil })
			g.Go(func() error { board.Mount(ctx); return nil })
			if s.user.Role == models.RoleStudent {
				g.Go(func() error { workers.Mount(ctx); return nil })
			}
			_ = g.Wait()

			printf(a.out, "Welcome, %s\n\n", s.user.Name)

			if s.user.Role == models.RoleCommittee {
				pending, resolved := complaints.Counts()
				section(a.out, "Complaint Management", complaints.State(), func(data []models.Complaint) {
					printf(a.out, "Total: %d  Pending: %d  Resolved: %d\n", len(data), pending, resolved)
					renderComplaints(a.out, data, a.now())
				})
				section(a.out, "Menu Management", menu.State(), func(items []models.MenuItem) {
					for _, item := range items {
						renderMenuDay(a.out, item)
					}
				})
				section(a.out, "Announcements", board.State(), func(data []models.Announcement) {
					renderAnnouncements(a.out, data, a.now())
				})
				return nil
			}

			_ = a.renderToday(menu, "")
			section(a.out, "Tip Mess Workers", workers.State(), func(data []models.Worker) {
				renderWorkers(a.out, data)
			})
			section(a.out, "My Complaints", complaints.State(), func(data []models.Complaint) {
				renderComplaints(a.out, data, a.now())
			})
			section(a.out, "Announcements", board.State(), func(data []models.Announcement) {
				renderAnnouncements(a.out, data, a.now())
			})
			return nil
		},
	}
}
