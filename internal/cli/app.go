// Package cli is the messctl terminal front end: the login screen, the
// student and committee dashboards, and a realtime watch mode.
package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yigit/hostelmess/internal/app/models"
	"github.com/yigit/hostelmess/internal/client"
	"github.com/yigit/hostelmess/internal/client/flows"
	"github.com/yigit/hostelmess/internal/pkg/logger"
)

// errSectionFailed is returned after a section has printed its own error.
var errSectionFailed = errors.New("section failed to load")

// Options configures the app. Zero values are replaced with the real
// terminal, browser and clock.
type Options struct {
	Out    io.Writer
	Opener flows.Opener
	Now    func() time.Time
}

type app struct {
	out  io.Writer
	open flows.Opener
	now  func() time.Time
}

// session is one signed in invocation. Nothing is persisted.
type session struct {
	api  *client.Client
	user *models.User
}

// NewApp builds the messctl command tree.
func NewApp(opts Options) *cli.App {
	a := &app{out: opts.Out, open: opts.Opener, now: opts.Now}
	if a.out == nil {
		a.out = os.Stdout
	}
	if a.open == nil {
		a.open = flows.DefaultOpener
	}
	if a.now == nil {
		a.now = time.Now
	}

	return &cli.App{
		Name:                 "messctl",
		Usage:                "hostel mess menu, complaints, tips and announcements",
		Writer:               a.out,
		EnableBashCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-url",
				Usage:   "base URL of the mess API",
				EnvVars: []string{client.EnvURL},
			},
			&cli.StringFlag{
				Name:    "anon-key",
				Usage:   "public API key",
				EnvVars: []string{client.EnvAnonKey},
			},
			&cli.StringFlag{
				Name:  "role",
				Usage: "sign in as student or committee",
			},
			&cli.StringFlag{
				Name:  "email",
				Usage: "override the pre-filled demo email",
			},
			&cli.StringFlag{
				Name:  "password",
				Usage: "override the pre-filled demo password",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				EnvVars: []string{"MESS_LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			logger.Configure(logger.Config{
				Level:  logger.LogLevel(c.String("log-level")),
				Pretty: true,
				Output: os.Stderr,
			})
			return nil
		},
		Commands: []*cli.Command{
			a.loginCommand(),
			a.menuCommand(),
			a.categoriesCommand(),
			a.complainCommand(),
			a.attachCommand(),
			a.tipCommand(),
			a.announcementsCommand(),
			a.dashboardCommand(),
			a.complaintsCommand(),
			a.statusCommand("resolve", models.StatusResolved),
			a.statusCommand("reopen", models.StatusPending),
			a.toggleCommand(),
			a.menuEditCommand(),
			a.announceCommand(),
			a.watchCommand(),
		},
	}
}

// signIn logs in with the --role flag, or defaultRole when it is not set.
func (a *app) signIn(c *cli.Context, defaultRole models.Role) (*session, error) {
	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}

	api := client.New(client.Config{
		URL:     c.String("api-url"),
		AnonKey: c.String("anon-key"),
	})
	if err := api.Configured(); err != nil {
		return nil, err
	}

	role := defaultRole
	if c.IsSet("role") {
		role = models.Role(c.String("role"))
	}

	login := flows.NewLogin(api)
	if err := login.SelectRole(ctx, role); err != nil {
		return nil, err
	}

	_, email, password := login.Credentials()
	if c.IsSet("email") {
		email = c.String("email")
	}
	if c.IsSet("password") {
		password = c.String("password")
	}
	login.SetCredentials(email, password)

	user, err := login.Submit(ctx)
	if err != nil {
		return nil, err
	}

	logger.Debug().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("Signed in")
	return &session{api: api, user: user}, nil
}

func (a *app) loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "sign in and show the session user",
		Action: func(c *cli.Context) error {
			s, err := a.signIn(c, models.RoleStudent)
			if err != nil {
				return err
			}
			printf(a.out, "Signed in as %s (%s) <%s>\n", s.user.Name, s.user.Role, s.user.Email)
			return nil
		},
	}
}
