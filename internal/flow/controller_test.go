package flow

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cancelflow/internal/client"
	cfg "cancelflow/internal/config"
	"cancelflow/internal/entity"
	"cancelflow/internal/entity/generated"
	gw "cancelflow/internal/gateways/http"
	"cancelflow/internal/repository/cancellation/memory"
	"cancelflow/internal/usecase"
)

const cancID = strfmt.UUID("0b8e6c2e-0f5e-4a0e-9d77-3b8f5b3c1a11")

type fakeAPI struct {
	variant     entity.Variant
	startErr    error
	patchErr    error
	completeErr error
	acceptErr   error

	starts    int
	patches   []generated.PatchCancellationRequest
	completes int
	accepts   int
}

func (f *fakeAPI) Start(_ context.Context, _ strfmt.UUID) (*client.StartResult, error) {
	f.starts++
	if f.startErr != nil {
		return nil, f.startErr
	}
	return &client.StartResult{CancellationID: cancID, Variant: f.variant, PlanPriceCents: 2500}, nil
}

func (f *fakeAPI) Patch(_ context.Context, id strfmt.UUID, p generated.PatchCancellationRequest) error {
	if id != cancID {
		return errors.New("wrong id")
	}
	f.patches = append(f.patches, p)
	return f.patchErr
}

func (f *fakeAPI) Complete(context.Context, strfmt.UUID) error {
	f.completes++
	return f.completeErr
}

func (f *fakeAPI) AcceptDownsell(context.Context, strfmt.UUID) error {
	f.accepts++
	return f.acceptErr
}

func ptr[T any](v T) *T { return &v }

func begin(t *testing.T, api *fakeAPI) *Controller {
	t.Helper()
	c := New(api, memory.DemoSubscriptionID)
	require.NoError(t, c.Begin(context.Background()))
	require.Equal(t, Entry, c.Step())
	return c
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(Entry, JobCongrats))
	assert.True(t, CanTransition(Downsell, OfferAccepted))
	assert.False(t, CanTransition(Entry, Completed))
	assert.False(t, CanTransition(Completed, Entry))
	assert.False(t, CanTransition(JobDone, StillLookingDone))
	assert.True(t, Completed.Terminal())
	assert.False(t, Downsell.Terminal())
}

func TestController_NotStarted(t *testing.T) {
	c := New(&fakeAPI{variant: entity.VariantA}, memory.DemoSubscriptionID)
	assert.ErrorIs(t, c.AnswerFoundJob(context.Background(), true), ErrNotStarted)
	assert.ErrorIs(t, c.Finish(context.Background()), ErrNotStarted)
}

func TestController_BeginFails(t *testing.T) {
	api := &fakeAPI{startErr: errors.New("down")}
	c := New(api, memory.DemoSubscriptionID)
	assert.Error(t, c.Begin(context.Background()))
	assert.Equal(t, Step(""), c.Step())
}

func TestController_JobBranch(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{variant: entity.VariantB}
	c := begin(t, api)

	step, total := c.Progress()
	assert.Equal(t, 1, step)
	assert.Equal(t, 5, total)

	require.NoError(t, c.AnswerFoundJob(ctx, true))
	assert.Equal(t, JobCongrats, c.Step())
	step, total = c.Progress()
	assert.Equal(t, []int{2, 4}, []int{step, total})

	require.NoError(t, c.AnswerFoundViaPlatform(ctx, true))
	require.NoError(t, c.SubmitJobFeedback(ctx, JobAnswers{
		VisaType:                   " H1B ",
		EmployerImmigrationSupport: entity.ImmigrationSupportYes,
	}))
	assert.Equal(t, JobDone, c.Step())
	step, total = c.Progress()
	assert.Equal(t, []int{4, 4}, []int{step, total})

	require.NoError(t, c.Finish(ctx))
	assert.Equal(t, Completed, c.Step())
	assert.Equal(t, 1, api.completes)
	assert.Equal(t, 0, api.accepts)

	require.Len(t, api.patches, 3)
	assert.Equal(t, ptr(true), api.patches[0].FoundJob)
	assert.Equal(t, ptr(true), api.patches[1].FoundViaMigratemate)
	assert.Equal(t, ptr("H1B"), api.patches[2].VisaType)
	assert.Equal(t, ptr("yes"), api.patches[2].EmployerImmigrationSupport)
	assert.Nil(t, api.patches[2].FreeformFeedback)

	step, total = c.Progress()
	assert.Equal(t, []int{4, 4}, []int{step, total})
}

func TestController_VariantASkipsOffer(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{variant: entity.VariantA}
	c := begin(t, api)

	require.NoError(t, c.AnswerFoundJob(ctx, false))
	assert.Equal(t, Improve, c.Step())
	step, total := c.Progress()
	assert.Equal(t, []int{2, 4}, []int{step, total})

	assert.ErrorIs(t, c.AcceptOffer(ctx), ErrWrongStep)
}

func TestController_VariantBDecline(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{variant: entity.VariantB}
	c := begin(t, api)

	require.NoError(t, c.AnswerFoundJob(ctx, false))
	assert.Equal(t, Downsell, c.Step())
	require.NoError(t, c.DeclineOffer(ctx))
	require.NoError(t, c.SubmitImprovement(ctx, "  "))
	assert.ErrorIs(t, c.SubmitMainReason(ctx, Reason{Key: "bored"}), ErrInvalidInput)
	assert.Equal(t, MainReason, c.Step())
	step, total := c.Progress()
	assert.Equal(t, []int{4, 5}, []int{step, total})

	require.NoError(t, c.SubmitMainReason(ctx, Reason{Key: entity.ReasonTooExpensive, WillingToPayDollars: ptr(int64(10))}))
	require.NoError(t, c.Finish(ctx))
	assert.Equal(t, Completed, c.Step())

	// blank improvement text is not sent
	require.Len(t, api.patches, 2)
	assert.Equal(t, ptr("too_expensive"), api.patches[1].ReasonKey)
	assert.Equal(t, ptr(int64(10)), api.patches[1].WillingToPayDollars)
	assert.Equal(t, 0, api.accepts)
	assert.Equal(t, 1, api.completes)
}

func TestController_AcceptOffer(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{variant: entity.VariantB}
	c := begin(t, api)

	require.NoError(t, c.AnswerFoundJob(ctx, false))
	require.NoError(t, c.AcceptOffer(ctx))
	assert.Equal(t, OfferAccepted, c.Step())
	assert.Equal(t, 1, api.accepts)
	assert.Equal(t, 0, api.completes)
	assert.ErrorIs(t, c.Finish(ctx), ErrWrongStep)
}

func TestController_FailuresDoNotBlock(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{
		variant:     entity.VariantB,
		patchErr:    errors.New("patch down"),
		completeErr: errors.New("complete down"),
		acceptErr:   errors.New("accept down"),
	}
	c := New(api, memory.DemoSubscriptionID, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, c.Begin(ctx))

	require.NoError(t, c.AnswerFoundJob(ctx, false))
	require.NoError(t, c.DeclineOffer(ctx))
	require.NoError(t, c.SubmitImprovement(ctx, "cheaper please"))
	require.NoError(t, c.SubmitMainReason(ctx, Reason{Key: entity.ReasonOther}))
	require.NoError(t, c.Finish(ctx))
	assert.Equal(t, Completed, c.Step())
	assert.Len(t, api.patches, 3)
}

func TestController_ResumeRendersFromEntry(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{variant: entity.VariantA}
	c := begin(t, api)
	require.NoError(t, c.AnswerFoundJob(ctx, true))

	require.NoError(t, c.Begin(ctx))
	assert.Equal(t, Entry, c.Step())
	assert.Equal(t, cancID, c.State().CancellationID)
	assert.Nil(t, c.State().FoundJob)
	assert.Equal(t, 2, api.starts)
}

// oddReader makes every new cancellation variant B.
type oddReader struct{}

func (oddReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 1
	}
	return len(p), nil
}

func TestController_AgainstServer(t *testing.T) {
	store := memory.NewStore()
	store.Seed(memory.DemoSubscription())
	h := gw.SetupGin(cfg.Config{Env: "local"}, gw.UseCases{
		Cancel: usecase.NewCancellation(store, usecase.WithRandom(oddReader{})),
	}, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	srv := httptest.NewServer(h)
	defer srv.Close()

	api, err := client.New(srv.URL, string(memory.DemoUserID))
	require.NoError(t, err)

	ctx := context.Background()
	c := New(api, memory.DemoSubscriptionID)
	require.NoError(t, c.Begin(ctx))
	require.Equal(t, entity.VariantB, c.State().Variant)

	require.NoError(t, c.AnswerFoundJob(ctx, false))
	require.NoError(t, c.DeclineOffer(ctx))
	require.NoError(t, c.SubmitImprovement(ctx, "more roles in Berlin"))
	require.NoError(t, c.SubmitMainReason(ctx, Reason{Key: entity.ReasonTooExpensive, WillingToPayDollars: ptr(int64(10))}))
	require.NoError(t, c.Finish(ctx))

	sub, err := store.GetSubscriptionByID(ctx, memory.DemoSubscriptionID)
	require.NoError(t, err)
	assert.Equal(t, entity.SubscriptionPendingCancellation, sub.Status)

	got, err := store.GetCancellationByID(ctx, c.State().CancellationID)
	require.NoError(t, err)
	assert.Equal(t, entity.CancellationCompleted, got.Status)
	assert.False(t, got.AcceptedDownsell)
	assert.Equal(t, int64(1000), *got.WillingToPayCents)
	assert.Equal(t, "more roles in Berlin", *got.FreeformFeedback)
}

func TestController_OfferPrice(t *testing.T) {
	c := begin(t, &fakeAPI{variant: entity.VariantB})
	assert.Equal(t, int64(1500), c.OfferPriceCents())

	c.state.PlanPriceCents = 500
	assert.Equal(t, int64(0), c.OfferPriceCents())
}
