// Command cancelwizard walks through the cancellation flow in a terminal
// against a running server.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/go-openapi/strfmt"

	"cancelflow/internal/client"
	"cancelflow/internal/entity"
	"cancelflow/internal/flow"
	"cancelflow/internal/repository/cancellation/memory"
)

type prompter struct {
	in *bufio.Scanner
}

func (p prompter) line(question string) string {
	color.Cyan("%s", question)
	fmt.Print("> ")
	if !p.in.Scan() {
		return ""
	}
	return strings.TrimSpace(p.in.Text())
}

func (p prompter) yesNo(question string) bool {
	for {
		switch strings.ToLower(p.line(question + " [y/n]")) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
		color.Yellow("please answer y or n")
	}
}

func (p prompter) choice(question string, options []string) string {
	for {
		color.Cyan("%s", question)
		for i, o := range options {
			fmt.Printf("  %d) %s\n", i+1, o)
		}
		n, err := strconv.Atoi(p.line(""))
		if err == nil && n >= 1 && n <= len(options) {
			return options[n-1]
		}
		color.Yellow("pick a number between 1 and %d", len(options))
	}
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "server base URL")
	user := flag.String("user", memory.DemoUserID.String(), "user id sent as identity")
	sub := flag.String("subscription", memory.DemoSubscriptionID.String(), "subscription to cancel")
	verbose := flag.Bool("v", false, "log failed saves")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	level := slog.LevelError
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	api, err := client.New(*baseURL, *user, client.WithLogger(log))
	if err != nil {
		color.Red("client: %v", err)
		os.Exit(1)
	}

	c := flow.New(api, strfmt.UUID(*sub), flow.WithLogger(log))
	if err := c.Begin(ctx); err != nil {
		color.Red("Could not start the cancellation: %v", err)
		os.Exit(1)
	}

	if err := run(ctx, c, prompter{in: bufio.NewScanner(os.Stdin)}); err != nil {
		color.Red("%v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, c *flow.Controller, p prompter) error {
	for !c.Step().Terminal() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		step, total := c.Progress()
		color.New(color.Faint).Printf("\nStep %d of %d\n", step, total)

		var err error
		switch c.Step() {
		case flow.Entry:
			err = c.AnswerFoundJob(ctx, p.yesNo("Have you found a job yet?"))
		case flow.JobCongrats:
			color.Green("Congrats on the new role!")
			err = c.AnswerFoundViaPlatform(ctx, p.yesNo("Did you find this job with MigrateMate?"))
		case flow.JobFeedback:
			fb := flow.JobAnswers{
				VisaType: p.line("Which visa will you be on? (leave empty to skip)"),
				Feedback: p.line("Anything we could have done better? (optional)"),
			}
			if p.yesNo("Is your employer helping with immigration?") {
				fb.EmployerImmigrationSupport = entity.ImmigrationSupportYes
			} else {
				fb.EmployerImmigrationSupport = entity.ImmigrationSupportNo
			}
			err = c.SubmitJobFeedback(ctx, fb)
		case flow.Downsell:
			color.Magenta("Stay for $%.2f/month instead of $%.2f",
				float64(c.OfferPriceCents())/100, float64(c.State().PlanPriceCents)/100)
			if p.yesNo("Accept the offer?") {
				err = c.AcceptOffer(ctx)
			} else {
				err = c.DeclineOffer(ctx)
			}
		case flow.Improve:
			err = c.SubmitImprovement(ctx, p.line("What could we improve? (optional)"))
		case flow.MainReason:
			keys := make([]string, len(entity.ReasonKeys))
			for i, k := range entity.ReasonKeys {
				keys[i] = string(k)
			}
			r := flow.Reason{Key: entity.ReasonKey(p.choice("Main reason for cancelling:", keys))}
			if r.Key == entity.ReasonTooExpensive {
				if d, perr := strconv.ParseInt(p.line("What would you be willing to pay per month, in dollars?"), 10, 64); perr == nil {
					r.WillingToPayDollars = &d
				}
			}
			err = c.SubmitMainReason(ctx, r)
		case flow.JobDone, flow.StillLookingDone:
			p.line("Press enter to finish cancelling.")
			err = c.Finish(ctx)
		}
		if err != nil {
			return err
		}
	}

	if c.Step() == flow.OfferAccepted {
		color.Green("Great, your discount is on its way. Your subscription stays active.")
	} else {
		color.Green("Your cancellation is complete.")
	}
	return nil
}
