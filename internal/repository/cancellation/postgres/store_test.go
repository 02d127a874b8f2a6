package postgres

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"cancelflow/internal/entity"
	"cancelflow/internal/usecase"
)

var pgContainer *postgres.PostgresContainer

func cleanup() {
	if pgContainer != nil {
		_ = pgContainer.Terminate(context.Background())
	}
}

func TestMain(m *testing.M) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cleanup()
		os.Exit(1)
	}()

	c, err := postgres.Run(
		ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("cancel_db"),
		postgres.WithUsername("cancel_user"),
		postgres.WithPassword("cancel_password"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "run container: %v\n", err)
		cleanup()
		os.Exit(1)
	}
	pgContainer = c

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "conn string: %v\n", err)
		cleanup()
		os.Exit(1)
	}
	if err := Migrate(connStr, "../../../../migrations"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		cleanup()
		os.Exit(1)
	}

	code := m.Run()

	cleanup()
	os.Exit(code)
}

func newStore(t *testing.T) (*Store, *pgxpool.Pool) {
	t.Helper()
	ctx := context.Background()
	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return NewStore(pool), pool
}

// seedSubscription inserts an active subscription for a fresh user
func seedSubscription(t *testing.T, pool *pgxpool.Pool) (subID, userID strfmt.UUID) {
	t.Helper()
	subID = strfmt.UUID(uuid.NewString())
	userID = strfmt.UUID(uuid.NewString())
	_, err := pool.Exec(context.Background(),
		`INSERT INTO subscriptions (id, user_id, monthly_price, status) VALUES ($1, $2, $3, 'active')`,
		subID.String(), userID.String(), 2500)
	require.NoError(t, err)
	return subID, userID
}

func TestStore_GetSubscriptionByID(t *testing.T) {
	ctx := context.Background()
	s, pool := newStore(t)
	subID, userID := seedSubscription(t, pool)

	t.Run("ok", func(t *testing.T) {
		got, err := s.GetSubscriptionByID(ctx, subID)
		require.NoError(t, err)
		assert.Equal(t, entity.Subscription{
			ID:           subID,
			UserID:       userID,
			MonthlyPrice: 2500,
			Status:       entity.SubscriptionActive,
		}, *got)
	})

	t.Run("demo seed is migrated", func(t *testing.T) {
		got, err := s.GetSubscriptionByID(ctx, "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
		require.NoError(t, err)
		assert.Equal(t, int64(2500), got.MonthlyPrice)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := s.GetSubscriptionByID(ctx, strfmt.UUID(uuid.NewString()))
		assert.ErrorIs(t, err, usecase.ErrSubscriptionNotFound)
	})
}

func TestStore_CancellationLifecycle(t *testing.T) {
	ctx := context.Background()
	s, pool := newStore(t)
	subID, userID := seedSubscription(t, pool)

	_, err := s.GetLatestCancellation(ctx, userID, subID)
	require.ErrorIs(t, err, usecase.ErrCancellationNotFound)

	first, err := s.CreateCancellation(ctx, userID, subID, entity.VariantA)
	require.NoError(t, err)
	second, err := s.CreateCancellation(ctx, userID, subID, entity.VariantB)
	require.NoError(t, err)

	latest, err := s.GetLatestCancellation(ctx, userID, subID)
	require.NoError(t, err)
	assert.Equal(t, second, latest.ID)
	assert.Equal(t, entity.VariantB, latest.DownsellVariant)
	assert.Equal(t, entity.CancellationInProgress, latest.Status)
	assert.False(t, latest.AcceptedDownsell)

	t.Run("partial merge", func(t *testing.T) {
		yes := true
		_, err := s.UpdateCancellation(ctx, first, entity.CancellationChanges{FoundJob: &yes})
		require.NoError(t, err)
		got, err := s.UpdateCancellation(ctx, first, entity.CancellationChanges{
			VisaType: &entity.NullString{String: "H1B", Valid: true},
		})
		require.NoError(t, err)

		require.NotNil(t, got.FoundJob)
		assert.True(t, *got.FoundJob)
		require.NotNil(t, got.VisaType)
		assert.Equal(t, "H1B", *got.VisaType)
		assert.Nil(t, got.FreeformFeedback)
		assert.Nil(t, got.ReasonKey)
		assert.Nil(t, got.WillingToPayCents)
		assert.Equal(t, entity.VariantA, got.DownsellVariant)
		assert.Equal(t, entity.CancellationInProgress, got.Status)
	})

	t.Run("explicit null clears", func(t *testing.T) {
		got, err := s.UpdateCancellation(ctx, first, entity.CancellationChanges{VisaType: &entity.NullString{}})
		require.NoError(t, err)
		assert.Nil(t, got.VisaType)
		require.NotNil(t, got.FoundJob)
	})

	t.Run("enums and money", func(t *testing.T) {
		rk := entity.ReasonTooExpensive
		sup := entity.ImmigrationSupportNo
		cents := int64(1000)
		got, err := s.UpdateCancellation(ctx, second, entity.CancellationChanges{
			ReasonKey:                  &rk,
			EmployerImmigrationSupport: &sup,
			WillingToPayCents:          &cents,
		})
		require.NoError(t, err)
		require.NotNil(t, got.ReasonKey)
		assert.Equal(t, rk, *got.ReasonKey)
		require.NotNil(t, got.EmployerImmigrationSupport)
		assert.Equal(t, sup, *got.EmployerImmigrationSupport)
		require.NotNil(t, got.WillingToPayCents)
		assert.Equal(t, cents, *got.WillingToPayCents)
	})

	t.Run("update unknown id", func(t *testing.T) {
		yes := true
		_, err := s.UpdateCancellation(ctx, strfmt.UUID(uuid.NewString()), entity.CancellationChanges{FoundJob: &yes})
		assert.ErrorIs(t, err, usecase.ErrCancellationNotFound)
	})

	t.Run("get by id", func(t *testing.T) {
		got, err := s.GetCancellationByID(ctx, second)
		require.NoError(t, err)
		assert.Equal(t, userID, got.UserID)
		assert.Equal(t, subID, got.SubscriptionID)

		_, err = s.GetCancellationByID(ctx, strfmt.UUID(uuid.NewString()))
		assert.ErrorIs(t, err, usecase.ErrCancellationNotFound)
	})
}

func TestStore_InTx(t *testing.T) {
	ctx := context.Background()
	s, pool := newStore(t)
	subID, userID := seedSubscription(t, pool)
	id, err := s.CreateCancellation(ctx, userID, subID, entity.VariantA)
	require.NoError(t, err)

	t.Run("rollback on error", func(t *testing.T) {
		err := s.InTx(ctx, func(tx usecase.Store) error {
			require.NoError(t, tx.UpdateSubscriptionStatus(ctx, subID, entity.SubscriptionPendingCancellation))
			_, err := tx.UpdateCancellation(ctx, strfmt.UUID(uuid.NewString()), entity.CancellationChanges{})
			return err
		})
		assert.ErrorIs(t, err, usecase.ErrCancellationNotFound)

		sub, err := s.GetSubscriptionByID(ctx, subID)
		require.NoError(t, err)
		assert.Equal(t, entity.SubscriptionActive, sub.Status)
	})

	t.Run("commit", func(t *testing.T) {
		done := entity.CancellationCompleted
		err := s.InTx(ctx, func(tx usecase.Store) error {
			if err := tx.UpdateSubscriptionStatus(ctx, subID, entity.SubscriptionPendingCancellation); err != nil {
				return err
			}
			_, err := tx.UpdateCancellation(ctx, id, entity.CancellationChanges{Status: &done})
			return err
		})
		require.NoError(t, err)

		sub, err := s.GetSubscriptionByID(ctx, subID)
		require.NoError(t, err)
		assert.Equal(t, entity.SubscriptionPendingCancellation, sub.Status)
		c, err := s.GetCancellationByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, entity.CancellationCompleted, c.Status)
	})

	t.Run("status update on unknown subscription", func(t *testing.T) {
		err := s.UpdateSubscriptionStatus(ctx, strfmt.UUID(uuid.NewString()), entity.SubscriptionCancelled)
		assert.ErrorIs(t, err, usecase.ErrSubscriptionNotFound)
	})
}

func TestStore_EndToEndWithService(t *testing.T) {
	ctx := context.Background()
	s, pool := newStore(t)
	subID, userID := seedSubscription(t, pool)
	uc := usecase.NewCancellation(s)

	started, err := uc.Start(ctx, userID, subID)
	require.NoError(t, err)
	again, err := uc.Start(ctx, userID, subID)
	require.NoError(t, err)
	assert.Equal(t, started.CancellationID, again.CancellationID)
	assert.Equal(t, started.Variant, again.Variant)

	require.NoError(t, uc.Complete(ctx, userID, started.CancellationID))
	require.NoError(t, uc.Complete(ctx, userID, started.CancellationID))

	sub, err := s.GetSubscriptionByID(ctx, subID)
	require.NoError(t, err)
	assert.Equal(t, entity.SubscriptionPendingCancellation, sub.Status)
}
