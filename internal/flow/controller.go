// Package flow drives the cancellation wizard. Step state lives only here;
// every forward move saves the answers just collected, and save failures are
// logged without holding the user back.
package flow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/go-openapi/strfmt"

	"cancelflow/internal/client"
	"cancelflow/internal/entity"
	"cancelflow/internal/entity/generated"
)

// DownsellDiscountCents is taken off the monthly price by the retention offer.
const DownsellDiscountCents = 1000

var (
	ErrNotStarted   = errors.New("flow: not started")
	ErrWrongStep    = errors.New("flow: action not allowed at this step")
	ErrInvalidInput = errors.New("flow: invalid input")
)

// API is the part of the HTTP client the wizard needs.
type API interface {
	Start(ctx context.Context, subscriptionID strfmt.UUID) (*client.StartResult, error)
	Patch(ctx context.Context, id strfmt.UUID, p generated.PatchCancellationRequest) error
	Complete(ctx context.Context, id strfmt.UUID) error
	AcceptDownsell(ctx context.Context, id strfmt.UUID) error
}

// State is a snapshot of the wizard.
type State struct {
	Step           Step
	CancellationID strfmt.UUID
	Variant        entity.Variant
	PlanPriceCents int64
	FoundJob       *bool
	FoundViaUs     *bool
}

// JobAnswers is collected on the job branch; empty fields are not sent.
type JobAnswers struct {
	VisaType                   string
	EmployerImmigrationSupport entity.ImmigrationSupport
	Feedback                   string
}

// Reason is collected on the still-looking branch.
type Reason struct {
	Key                 entity.ReasonKey
	WillingToPayDollars *int64
}

type Controller struct {
	api            API
	log            *slog.Logger
	subscriptionID strfmt.UUID
	state          State
}

func New(api API, subscriptionID strfmt.UUID, options ...func(*Controller)) *Controller {
	c := &Controller{
		api:            api,
		log:            slog.New(slog.NewTextHandler(io.Discard, nil)),
		subscriptionID: subscriptionID,
	}
	for _, o := range options {
		o(c)
	}
	return c
}

func WithLogger(l *slog.Logger) func(*Controller) {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// Begin starts or resumes the cancellation and renders from Entry. It is the
// only call whose API failure is returned.
func (c *Controller) Begin(ctx context.Context) error {
	res, err := c.api.Start(ctx, c.subscriptionID)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	c.state = State{
		Step:           Entry,
		CancellationID: res.CancellationID,
		Variant:        res.Variant,
		PlanPriceCents: res.PlanPriceCents,
	}
	return nil
}

// AnswerFoundJob leaves Entry for the job branch, the offer (variant B) or the survey.
func (c *Controller) AnswerFoundJob(ctx context.Context, found bool) error {
	if err := c.expect(Entry); err != nil {
		return err
	}
	c.save(ctx, "found_job", generated.PatchCancellationRequest{FoundJob: &found})
	c.state.FoundJob = &found

	switch {
	case found:
		return c.advance(JobCongrats)
	case c.state.Variant == entity.VariantB:
		return c.advance(Downsell)
	default:
		return c.advance(Improve)
	}
}

func (c *Controller) AnswerFoundViaPlatform(ctx context.Context, viaUs bool) error {
	if err := c.expect(JobCongrats); err != nil {
		return err
	}
	c.save(ctx, "found_via_migratemate", generated.PatchCancellationRequest{FoundViaMigratemate: &viaUs})
	c.state.FoundViaUs = &viaUs
	return c.advance(JobFeedback)
}

func (c *Controller) SubmitJobFeedback(ctx context.Context, fb JobAnswers) error {
	if err := c.expect(JobFeedback); err != nil {
		return err
	}
	if fb.EmployerImmigrationSupport != "" && !fb.EmployerImmigrationSupport.Valid() {
		return fmt.Errorf("%w: employer immigration support %q", ErrInvalidInput, fb.EmployerImmigrationSupport)
	}

	var p generated.PatchCancellationRequest
	if v := strings.TrimSpace(fb.VisaType); v != "" {
		p.VisaType = &v
	}
	if fb.EmployerImmigrationSupport != "" {
		s := string(fb.EmployerImmigrationSupport)
		p.EmployerImmigrationSupport = &s
	}
	if f := strings.TrimSpace(fb.Feedback); f != "" {
		p.FreeformFeedback = &f
	}
	if !emptyPatch(p) {
		c.save(ctx, "job feedback", p)
	}
	return c.advance(JobDone)
}

// AcceptOffer ends the wizard without completing the cancellation.
func (c *Controller) AcceptOffer(ctx context.Context) error {
	if err := c.expect(Downsell); err != nil {
		return err
	}
	if err := c.api.AcceptDownsell(ctx, c.state.CancellationID); err != nil {
		c.log.Warn("accept downsell failed",
			slog.String("cancellation_id", c.state.CancellationID.String()),
			slog.Any("err", err),
		)
	}
	return c.advance(OfferAccepted)
}

func (c *Controller) DeclineOffer(_ context.Context) error {
	if err := c.expect(Downsell); err != nil {
		return err
	}
	return c.advance(Improve)
}

func (c *Controller) SubmitImprovement(ctx context.Context, feedback string) error {
	if err := c.expect(Improve); err != nil {
		return err
	}
	if f := strings.TrimSpace(feedback); f != "" {
		c.save(ctx, "improvement", generated.PatchCancellationRequest{FreeformFeedback: &f})
	}
	return c.advance(MainReason)
}

func (c *Controller) SubmitMainReason(ctx context.Context, r Reason) error {
	if err := c.expect(MainReason); err != nil {
		return err
	}
	if !r.Key.Valid() {
		return fmt.Errorf("%w: reason %q", ErrInvalidInput, r.Key)
	}
	key := string(r.Key)
	c.save(ctx, "main reason", generated.PatchCancellationRequest{
		ReasonKey:           &key,
		WillingToPayDollars: r.WillingToPayDollars,
	})
	return c.advance(StillLookingDone)
}

// Finish completes the cancellation from either branch's last step.
func (c *Controller) Finish(ctx context.Context) error {
	if err := c.expect(JobDone, StillLookingDone); err != nil {
		return err
	}
	if err := c.api.Complete(ctx, c.state.CancellationID); err != nil {
		c.log.Warn("complete failed",
			slog.String("cancellation_id", c.state.CancellationID.String()),
			slog.Any("err", err),
		)
	}
	return c.advance(Completed)
}

func (c *Controller) Step() Step {
	return c.state.Step
}

func (c *Controller) State() State {
	return c.state
}

// OfferPriceCents is the monthly price with the retention discount applied.
func (c *Controller) OfferPriceCents() int64 {
	if p := c.state.PlanPriceCents - DownsellDiscountCents; p > 0 {
		return p
	}
	return 0
}

// Progress returns the 1-based position and the length of the current path.
// The job branch has 4 screens, the still-looking branch 4 (A) or 5 (B).
func (c *Controller) Progress() (int, int) {
	switch c.state.Step {
	case JobCongrats:
		return 2, 4
	case JobFeedback:
		return 3, 4
	case JobDone:
		return 4, 4
	}

	order := []Step{Entry, Improve, MainReason, StillLookingDone}
	if c.state.Variant == entity.VariantB {
		order = []Step{Entry, Downsell, Improve, MainReason, StillLookingDone}
	}
	if c.state.Step.Terminal() {
		if c.state.FoundJob != nil && *c.state.FoundJob {
			return 4, 4
		}
		return len(order), len(order)
	}
	for i, s := range order {
		if s == c.state.Step {
			return i + 1, len(order)
		}
	}
	return 1, len(order)
}

func (c *Controller) expect(steps ...Step) error {
	if c.state.Step == "" {
		return ErrNotStarted
	}
	for _, s := range steps {
		if c.state.Step == s {
			return nil
		}
	}
	return fmt.Errorf("%w: at %s", ErrWrongStep, c.state.Step)
}

func (c *Controller) advance(to Step) error {
	if !CanTransition(c.state.Step, to) {
		return fmt.Errorf("%w: %s -> %s", ErrWrongStep, c.state.Step, to)
	}
	c.state.Step = to
	return nil
}

// save is best-effort: the wizard moves on even when the server refuses.
func (c *Controller) save(ctx context.Context, what string, p generated.PatchCancellationRequest) {
	if err := c.api.Patch(ctx, c.state.CancellationID, p); err != nil {
		c.log.Warn("save answers failed",
			slog.String("cancellation_id", c.state.CancellationID.String()),
			slog.String("answers", what),
			slog.Any("err", err),
		)
	}
}

func emptyPatch(p generated.PatchCancellationRequest) bool {
	return p == generated.PatchCancellationRequest{}
}
