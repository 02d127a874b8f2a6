package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cancelflow/internal/entity"
	"cancelflow/internal/usecase"
)

func TestStore_Subscriptions(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	s.Seed(DemoSubscription())

	got, err := s.GetSubscriptionByID(ctx, DemoSubscriptionID)
	require.NoError(t, err)
	assert.Equal(t, DemoSubscription(), *got)

	got.Status = entity.SubscriptionCancelled
	again, err := s.GetSubscriptionByID(ctx, DemoSubscriptionID)
	require.NoError(t, err)
	assert.Equal(t, entity.SubscriptionActive, again.Status, "returned value must be a copy")

	require.NoError(t, s.UpdateSubscriptionStatus(ctx, DemoSubscriptionID, entity.SubscriptionPendingCancellation))
	again, err = s.GetSubscriptionByID(ctx, DemoSubscriptionID)
	require.NoError(t, err)
	assert.Equal(t, entity.SubscriptionPendingCancellation, again.Status)

	_, err = s.GetSubscriptionByID(ctx, "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb")
	assert.ErrorIs(t, err, usecase.ErrSubscriptionNotFound)
	assert.ErrorIs(t, s.UpdateSubscriptionStatus(ctx, "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb", entity.SubscriptionCancelled), usecase.ErrSubscriptionNotFound)
}

func TestStore_GetLatestCancellation(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	frozen := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return frozen }

	_, err := s.GetLatestCancellation(ctx, DemoUserID, DemoSubscriptionID)
	require.ErrorIs(t, err, usecase.ErrCancellationNotFound)

	_, err = s.CreateCancellation(ctx, DemoUserID, DemoSubscriptionID, entity.VariantA)
	require.NoError(t, err)
	second, err := s.CreateCancellation(ctx, DemoUserID, DemoSubscriptionID, entity.VariantB)
	require.NoError(t, err)
	_, err = s.CreateCancellation(ctx, "550e8400-e29b-41d4-a716-446655440002", DemoSubscriptionID, entity.VariantA)
	require.NoError(t, err)

	latest, err := s.GetLatestCancellation(ctx, DemoUserID, DemoSubscriptionID)
	require.NoError(t, err)
	assert.Equal(t, second, latest.ID, "creation order breaks timestamp ties")
	assert.Equal(t, entity.VariantB, latest.DownsellVariant)
	assert.Equal(t, entity.CancellationInProgress, latest.Status)
	assert.Equal(t, frozen, latest.CreatedAt)
}

func TestStore_UpdateCancellation(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	id, err := s.CreateCancellation(ctx, DemoUserID, DemoSubscriptionID, entity.VariantA)
	require.NoError(t, err)

	yes := true
	_, err = s.UpdateCancellation(ctx, id, entity.CancellationChanges{FoundJob: &yes})
	require.NoError(t, err)
	_, err = s.UpdateCancellation(ctx, id, entity.CancellationChanges{VisaType: &entity.NullString{String: "H1B", Valid: true}})
	require.NoError(t, err)

	got, err := s.GetCancellationByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got.FoundJob)
	assert.True(t, *got.FoundJob)
	require.NotNil(t, got.VisaType)
	assert.Equal(t, "H1B", *got.VisaType)
	assert.Nil(t, got.ReasonKey)
	assert.False(t, got.AcceptedDownsell)

	_, err = s.UpdateCancellation(ctx, strfmt.UUID("00000000-0000-4000-8000-000000000000"), entity.CancellationChanges{FoundJob: &yes})
	assert.ErrorIs(t, err, usecase.ErrCancellationNotFound)
}

func TestStore_ConcurrentDisjointPatches(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	id, err := s.CreateCancellation(ctx, DemoUserID, DemoSubscriptionID, entity.VariantB)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			yes := true
			_, _ = s.UpdateCancellation(ctx, id, entity.CancellationChanges{FoundJob: &yes})
		}()
		go func() {
			defer wg.Done()
			rk := entity.ReasonOther
			_, _ = s.UpdateCancellation(ctx, id, entity.CancellationChanges{ReasonKey: &rk})
		}()
	}
	wg.Wait()

	got, err := s.GetCancellationByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got.FoundJob)
	require.NotNil(t, got.ReasonKey)
}

func TestStore_WithService(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	s.Seed(DemoSubscription())
	uc := usecase.NewCancellation(s)

	started, err := uc.Start(ctx, DemoUserID, DemoSubscriptionID)
	require.NoError(t, err)
	require.NoError(t, uc.Patch(ctx, DemoUserID, started.CancellationID, usecase.PatchInput{FoundJob: ptr(false)}))
	require.NoError(t, uc.Patch(ctx, DemoUserID, started.CancellationID, usecase.PatchInput{
		ReasonKey:           ptr("too_expensive"),
		WillingToPayDollars: ptr(int64(10)),
	}))
	require.NoError(t, uc.Complete(ctx, DemoUserID, started.CancellationID))

	sub, err := s.GetSubscriptionByID(ctx, DemoSubscriptionID)
	require.NoError(t, err)
	assert.Equal(t, entity.SubscriptionPendingCancellation, sub.Status)

	c, err := s.GetCancellationByID(ctx, started.CancellationID)
	require.NoError(t, err)
	assert.Equal(t, entity.CancellationCompleted, c.Status)
	assert.False(t, c.AcceptedDownsell)
	require.NotNil(t, c.WillingToPayCents)
	assert.Equal(t, int64(1000), *c.WillingToPayCents)

	err = uc.Patch(ctx, DemoUserID, started.CancellationID, usecase.PatchInput{FoundJob: ptr(true)})
	assert.ErrorIs(t, err, usecase.ErrInvalidState)
	after, err := s.GetCancellationByID(ctx, started.CancellationID)
	require.NoError(t, err)
	assert.Equal(t, c, after)
}

func ptr[T any](v T) *T { return &v }
