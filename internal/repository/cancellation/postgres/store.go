package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cancelflow/internal/entity"
	"cancelflow/internal/repository/cancellation/postgres/sqlc"
	"cancelflow/internal/usecase"
)

// Store keeps subscriptions and cancellations in Postgres
type Store struct {
	pool    *pgxpool.Pool
	queries *sqlc.Queries
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool:    pool,
		queries: sqlc.New(pool),
	}
}

// InTx runs fn against a store bound to one transaction; any error rolls it back
func (r *Store) InTx(ctx context.Context, fn func(usecase.Store) error) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(&Store{pool: r.pool, queries: r.queries.WithTx(tx)})
	})
}

func (r *Store) GetSubscriptionByID(ctx context.Context, id strfmt.UUID) (*entity.Subscription, error) {
	sub, err := r.queries.GetSubscription(ctx, id.String())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, usecase.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("get subscription id=%s: %w", id, err)
	}
	return toSubscription(sub), nil
}

func (r *Store) GetLatestCancellation(ctx context.Context, userID, subscriptionID strfmt.UUID) (*entity.Cancellation, error) {
	c, err := r.queries.GetLatestCancellation(ctx, sqlc.GetLatestCancellationParams{
		UserID:         userID.String(),
		SubscriptionID: subscriptionID.String(),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, usecase.ErrCancellationNotFound
		}
		return nil, fmt.Errorf("get latest cancellation: %w", err)
	}
	return toCancellation(c), nil
}

func (r *Store) CreateCancellation(ctx context.Context, userID, subscriptionID strfmt.UUID, variant entity.Variant) (strfmt.UUID, error) {
	id, err := r.queries.CreateCancellation(ctx, sqlc.CreateCancellationParams{
		ID:              uuid.NewString(),
		UserID:          userID.String(),
		SubscriptionID:  subscriptionID.String(),
		DownsellVariant: string(variant),
	})
	if err != nil {
		return "", fmt.Errorf("create cancellation: %w", err)
	}
	return strfmt.UUID(id), nil
}

func (r *Store) GetCancellationByID(ctx context.Context, id strfmt.UUID) (*entity.Cancellation, error) {
	c, err := r.queries.GetCancellation(ctx, id.String())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, usecase.ErrCancellationNotFound
		}
		return nil, fmt.Errorf("get cancellation id=%s: %w", id, err)
	}
	return toCancellation(c), nil
}

func (r *Store) UpdateCancellation(ctx context.Context, id strfmt.UUID, ch entity.CancellationChanges) (*entity.Cancellation, error) {
	c, err := r.queries.UpdateCancellation(ctx, toUpdateParams(id, ch))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, usecase.ErrCancellationNotFound
		}
		return nil, fmt.Errorf("update cancellation id=%s: %w", id, err)
	}
	return toCancellation(c), nil
}

func (r *Store) UpdateSubscriptionStatus(ctx context.Context, id strfmt.UUID, status entity.SubscriptionStatus) error {
	rows, err := r.queries.UpdateSubscriptionStatus(ctx, sqlc.UpdateSubscriptionStatusParams{
		ID:     id.String(),
		Status: string(status),
	})
	if err != nil {
		return fmt.Errorf("update subscription status id=%s: %w", id, err)
	}
	if rows == 0 {
		return usecase.ErrSubscriptionNotFound
	}
	return nil
}

func toUpdateParams(id strfmt.UUID, ch entity.CancellationChanges) sqlc.UpdateCancellationParams {
	p := sqlc.UpdateCancellationParams{ID: id.String()}
	if ch.Status != nil {
		p.SetStatus = true
		p.Status = string(*ch.Status)
	}
	if ch.AcceptedDownsell != nil {
		p.SetAcceptedDownsell = true
		p.AcceptedDownsell = *ch.AcceptedDownsell
	}
	if ch.FoundJob != nil {
		p.SetFoundJob = true
		p.FoundJob = ch.FoundJob
	}
	if ch.FoundViaMigrateMate != nil {
		p.SetFoundViaMigratemate = true
		p.FoundViaMigratemate = ch.FoundViaMigrateMate
	}
	if ch.VisaType != nil {
		p.SetVisaType = true
		p.VisaType = ch.VisaType.Ptr()
	}
	if ch.FreeformFeedback != nil {
		p.SetFreeformFeedback = true
		p.FreeformFeedback = ch.FreeformFeedback.Ptr()
	}
	if ch.ReasonKey != nil {
		p.SetReasonKey = true
		v := string(*ch.ReasonKey)
		p.ReasonKey = &v
	}
	if ch.EmployerImmigrationSupport != nil {
		p.SetEmployerImmigrationSupport = true
		v := string(*ch.EmployerImmigrationSupport)
		p.EmployerImmigrationSupport = &v
	}
	if ch.WillingToPayCents != nil {
		p.SetWillingToPayCents = true
		p.WillingToPayCents = ch.WillingToPayCents
	}
	return p
}

func toSubscription(s sqlc.Subscription) *entity.Subscription {
	return &entity.Subscription{
		ID:           strfmt.UUID(s.ID),
		UserID:       strfmt.UUID(s.UserID),
		MonthlyPrice: s.MonthlyPrice,
		Status:       entity.SubscriptionStatus(s.Status),
	}
}

func toCancellation(c sqlc.Cancellation) *entity.Cancellation {
	out := &entity.Cancellation{
		ID:                  strfmt.UUID(c.ID),
		UserID:              strfmt.UUID(c.UserID),
		SubscriptionID:      strfmt.UUID(c.SubscriptionID),
		DownsellVariant:     entity.Variant(c.DownsellVariant),
		Status:              entity.CancellationStatus(c.Status),
		AcceptedDownsell:    c.AcceptedDownsell,
		FoundJob:            c.FoundJob,
		FoundViaMigrateMate: c.FoundViaMigratemate,
		VisaType:            c.VisaType,
		FreeformFeedback:    c.FreeformFeedback,
		WillingToPayCents:   c.WillingToPayCents,
		CreatedAt:           c.CreatedAt,
	}
	if c.ReasonKey != nil {
		rk := entity.ReasonKey(*c.ReasonKey)
		out.ReasonKey = &rk
	}
	if c.EmployerImmigrationSupport != nil {
		s := entity.ImmigrationSupport(*c.EmployerImmigrationSupport)
		out.EmployerImmigrationSupport = &s
	}
	return out
}
