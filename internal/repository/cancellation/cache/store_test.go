package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-openapi/strfmt"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cancelflow/internal/entity"
	"cancelflow/internal/repository/cancellation/memory"
	"cancelflow/internal/usecase"
)

type countingStore struct {
	usecase.Store
	subReads int
}

func (c *countingStore) GetSubscriptionByID(ctx context.Context, id strfmt.UUID) (*entity.Subscription, error) {
	c.subReads++
	return c.Store.GetSubscriptionByID(ctx, id)
}

type txCountingStore struct {
	*countingStore
	txCalls int
}

func (t *txCountingStore) InTx(_ context.Context, fn func(usecase.Store) error) error {
	t.txCalls++
	return fn(t.countingStore)
}

func setup(t *testing.T) (*Store, *countingStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	mem := memory.NewStore()
	mem.Seed(memory.DemoSubscription())
	inner := &countingStore{Store: mem}
	return NewStore(inner, rdb, WithTTL(time.Minute)), inner, mr
}

func TestStore_ReadThrough(t *testing.T) {
	ctx := context.Background()
	s, inner, mr := setup(t)

	first, err := s.GetSubscriptionByID(ctx, memory.DemoSubscriptionID)
	require.NoError(t, err)
	assert.True(t, mr.Exists(subscriptionKey(memory.DemoSubscriptionID)))

	second, err := s.GetSubscriptionByID(ctx, memory.DemoSubscriptionID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.subReads)

	mr.FastForward(2 * time.Minute)
	assert.False(t, mr.Exists(subscriptionKey(memory.DemoSubscriptionID)))
	_, err = s.GetSubscriptionByID(ctx, memory.DemoSubscriptionID)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.subReads)
}

func TestStore_StatusUpdateEvicts(t *testing.T) {
	ctx := context.Background()
	s, inner, mr := setup(t)

	_, err := s.GetSubscriptionByID(ctx, memory.DemoSubscriptionID)
	require.NoError(t, err)
	require.NoError(t, s.UpdateSubscriptionStatus(ctx, memory.DemoSubscriptionID, entity.SubscriptionPendingCancellation))
	assert.False(t, mr.Exists(subscriptionKey(memory.DemoSubscriptionID)))

	got, err := s.GetSubscriptionByID(ctx, memory.DemoSubscriptionID)
	require.NoError(t, err)
	assert.Equal(t, entity.SubscriptionPendingCancellation, got.Status)
	assert.Equal(t, 2, inner.subReads)
}

func TestStore_NotFoundIsNotCached(t *testing.T) {
	ctx := context.Background()
	s, _, mr := setup(t)
	missing := strfmt.UUID("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb")

	_, err := s.GetSubscriptionByID(ctx, missing)
	assert.ErrorIs(t, err, usecase.ErrSubscriptionNotFound)
	assert.False(t, mr.Exists(subscriptionKey(missing)))
}

func TestStore_RedisDown(t *testing.T) {
	ctx := context.Background()
	s, inner, mr := setup(t)
	mr.Close()

	got, err := s.GetSubscriptionByID(ctx, memory.DemoSubscriptionID)
	require.NoError(t, err)
	assert.Equal(t, memory.DemoSubscriptionID, got.ID)
	assert.Equal(t, 1, inner.subReads)
	assert.NoError(t, s.UpdateSubscriptionStatus(ctx, memory.DemoSubscriptionID, entity.SubscriptionPendingCancellation))
}

func TestStore_InTx(t *testing.T) {
	ctx := context.Background()

	t.Run("delegates and evicts afterwards", func(t *testing.T) {
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		mem := memory.NewStore()
		mem.Seed(memory.DemoSubscription())
		inner := &txCountingStore{countingStore: &countingStore{Store: mem}}
		s := NewStore(inner, rdb)

		_, err := s.GetSubscriptionByID(ctx, memory.DemoSubscriptionID)
		require.NoError(t, err)

		err = s.InTx(ctx, func(tx usecase.Store) error {
			return tx.UpdateSubscriptionStatus(ctx, memory.DemoSubscriptionID, entity.SubscriptionPendingCancellation)
		})
		require.NoError(t, err)
		assert.Equal(t, 1, inner.txCalls)
		assert.False(t, mr.Exists(subscriptionKey(memory.DemoSubscriptionID)))
	})

	t.Run("service completes through the decorator", func(t *testing.T) {
		s, _, _ := setup(t)
		uc := usecase.NewCancellation(s)

		started, err := uc.Start(ctx, memory.DemoUserID, memory.DemoSubscriptionID)
		require.NoError(t, err)
		require.NoError(t, uc.Complete(ctx, memory.DemoUserID, started.CancellationID))

		sub, err := s.GetSubscriptionByID(ctx, memory.DemoSubscriptionID)
		require.NoError(t, err)
		assert.Equal(t, entity.SubscriptionPendingCancellation, sub.Status)
	})
}
