package cli

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yigit/hostelmess/internal/app/models"
	"github.com/yigit/hostelmess/internal/app/services"
	"github.com/yigit/hostelmess/internal/client"
	"github.com/yigit/hostelmess/internal/client/hooks"
	"github.com/yigit/hostelmess/internal/pkg/logger"
)

var errRealtimeClosed = errors.New("realtime connection closed")

// watchedSection is one section kept live by watch.
type watchedSection struct {
	table   string
	refetch func(c *cli.Context)
	render  func()
}

// watchCommand renders a section and re-reads it after every change event
// on its table.
func (a *app) watchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "keep a section up to date with realtime changes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "section",
				Value: "complaints",
				Usage: "menu, workers, complaints or announcements",
			},
		},
		Action: func(c *cli.Context) error {
			s, err := a.signIn(c, models.RoleCommittee)
			if err != nil {
				return err
			}

			sec, err := a.watched(s, c.String("section"))
			if err != nil {
				return err
			}

			events, err := s.api.Subscribe(c.Context, sec.table)
			if err != nil {
				return err
			}

			sec.refetch(c)
			sec.render()

			for ev := range events {
				if ev.Table != sec.table {
					continue
				}
				logger.Debug().Str("table", ev.Table).Str("action", string(ev.Action)).Str("id", ev.ID).Msg("Change received")
				printf(a.out, "-- %s %s --\n", ev.Action, ev.ID)
				sec.refetch(c)
				sec.render()
			}

			if c.Context.Err() != nil {
				return nil
			}
			return errRealtimeClosed
		},
	}
}

func (a *app) watched(s *session, name string) (*watchedSection, error) {
	switch name {
	case "menu":
		menu := hooks.UseMenu(s.api)
		return &watchedSection{
			table:   services.TableMenuItems,
			refetch: func(c *cli.Context) { menu.Refetch(c.Context) },
			render: func() {
				section(a.out, "Weekly Menu", menu.State(), func(items []models.MenuItem) {
					for _, item := range items {
						renderMenuDay(a.out, item)
					}
				})
			},
		}, nil
	case "workers":
		workers := hooks.UseWorkers(s.api)
		return &watchedSection{
			table:   services.TableWorkers,
			refetch: func(c *cli.Context) { workers.Refetch(c.Context) },
			render: func() {
				section(a.out, "Tip Mess Workers", workers.State(), func(data []models.Worker) {
					renderWorkers(a.out, data)
				})
			},
		}, nil
	case "complaints":
		query := client.ComplaintQuery{}
		if s.user.Role == models.RoleStudent {
			query.Mine = true
		}
		complaints := hooks.UseComplaints(s.api, query)
		return &watchedSection{
			table:   services.TableComplaints,
			refetch: func(c *cli.Context) { complaints.Refetch(c.Context) },
			render: func() {
				section(a.out, "Complaints", complaints.State(), func(data []models.Complaint) {
					renderComplaints(a.out, data, a.now())
				})
			},
		}, nil
	case "announcements":
		board := hooks.UseAnnouncements(s.api)
		return &watchedSection{
			table:   services.TableAnnouncements,
			refetch: func(c *cli.Context) { board.Refetch(c.Context) },
			render: func() {
				section(a.out, "Announcements", board.State(), func(data []models.Announcement) {
					renderAnnouncements(a.out, data, a.now())
				})
			},
		}, nil
	}
	return nil, fmt.Errorf("unknown section %q", name)
}
