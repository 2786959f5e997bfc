package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/activityhub/internal/app/features/signup"
	"github.com/dalemusser/activityhub/internal/app/system/storeclient"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const (
	urlFlagName     = "url"
	timeoutFlagName = "timeout"
	debugFlagName   = "debug"

	// cliVisitor keys the message board for this process.
	cliVisitor = "activityctl"
)

func createApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "activityctl",
		Usage:     "List activities and manage signups from the terminal",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    urlFlagName,
				EnvVars: []string{"ACTIVITYCTL_URL"},
				Value:   "http://localhost:8080",
				Usage:   "Base URL of the ActivityStore API",
			},
			&cli.DurationFlag{
				Name:  timeoutFlagName,
				Value: 10 * time.Second,
				Usage: "Timeout for each request",
			},
			&cli.BoolFlag{
				Name:  debugFlagName,
				Usage: "Log requests to stderr",
			},
		},
		Commands: []*cli.Command{
			listCommand(),
			signupCommand(),
			removeCommand(),
		},
	}
}

// widget bundles the renderer and controller a command runs against.
type widget struct {
	renderer   *signup.Renderer
	controller *signup.Controller
	timeout    time.Duration
}

func widgetFromCLI(c *cli.Context) (*widget, error) {
	logger := zap.NewNop()
	if c.Bool(debugFlagName) {
		l, err := zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
		logger = l
	}

	client, err := storeclient.New(c.String(urlFlagName), nil, logger)
	if err != nil {
		return nil, err
	}
	renderer := signup.NewRenderer(client, logger)
	board := signup.NewBoard(nil)
	return &widget{
		renderer:   renderer,
		controller: signup.NewController(client, renderer, board, logger),
		timeout:    c.Duration(timeoutFlagName),
	}, nil
}

func (w *widget) context(c *cli.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Context, w.timeout)
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List activities with their participants",
		Action: func(c *cli.Context) error {
			w, err := widgetFromCLI(c)
			if err != nil {
				return err
			}
			ctx, cancel := w.context(c)
			defer cancel()

			view := w.renderer.Refresh(ctx)
			if view.LoadFailed() {
				color.New(color.FgRed).Fprintln(c.App.ErrWriter, view.Notice)
				return cli.Exit("", 1)
			}
			printView(c.App.Writer, view)
			return nil
		},
	}
}

func signupCommand() *cli.Command {
	return &cli.Command{
		Name:      "signup",
		Usage:     "Sign a student up for an activity",
		ArgsUsage: "<activity> <email>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit("usage: activityctl signup <activity> <email>", 2)
			}
			w, err := widgetFromCLI(c)
			if err != nil {
				return err
			}
			ctx, cancel := w.context(c)
			defer cancel()

			res := w.controller.Signup(ctx, cliVisitor, c.Args().Get(0), c.Args().Get(1))
			return report(c, w, res)
		},
	}
}

func removeCommand() *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Aliases:   []string{"rm"},
		Usage:     "Remove a participant from an activity",
		ArgsUsage: "<activity> <email>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit("usage: activityctl remove <activity> <email>", 2)
			}
			w, err := widgetFromCLI(c)
			if err != nil {
				return err
			}
			ctx, cancel := w.context(c)
			defer cancel()

			res := w.controller.RemoveParticipant(ctx, cliVisitor, c.Args().Get(0), c.Args().Get(1))
			return report(c, w, res)
		},
	}
}

// report prints the operation's message and, after a successful mutation,
// the refreshed list.
func report(c *cli.Context, w *widget, res signup.Result) error {
	if res.Message.Status == signup.StatusError {
		color.New(color.FgRed).Fprintln(c.App.ErrWriter, res.Message.Text)
		return cli.Exit("", 1)
	}
	color.New(color.FgGreen).Fprintln(c.App.Writer, res.Message.Text)
	if res.Refreshed {
		printView(c.App.Writer, w.renderer.Current())
	}
	return nil
}

func printView(out io.Writer, view signup.View) {
	table := tablewriter.NewWriter(out)
	table.SetRowLine(true)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"activity", "schedule", "spots left", "participants"})

	for _, card := range view.Cards {
		participants := signup.NoParticipantsText
		if card.HasParticipants() {
			emails := make([]string, 0, len(card.Participants))
			for _, p := range card.Participants {
				emails = append(emails, p.Email)
			}
			participants = strings.Join(emails, "\n")
		}
		table.Append([]string{card.Name, card.Schedule, strconv.Itoa(card.SpotsLeft), participants})
	}
	table.Render()
	fmt.Fprintf(out, "%d activities\n", len(view.Cards))
}
