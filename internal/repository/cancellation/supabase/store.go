// Package supabase stores subscriptions and cancellations in a hosted Supabase
// project through its PostgREST interface.
package supabase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	supa "github.com/nedpals/supabase-go"

	"cancelflow/internal/entity"
	"cancelflow/internal/usecase"
)

const (
	subscriptionsTable = "subscriptions"
	cancellationsTable = "cancellations"
)

type subscriptionRow struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	MonthlyPrice int64  `json:"monthly_price"`
	Status       string `json:"status"`
}

type cancellationRow struct {
	ID                         string  `json:"id"`
	UserID                     string  `json:"user_id"`
	SubscriptionID             string  `json:"subscription_id"`
	DownsellVariant            string  `json:"downsell_variant"`
	Status                     string  `json:"status"`
	AcceptedDownsell           bool    `json:"accepted_downsell"`
	FoundJob                   *bool   `json:"found_job"`
	FoundViaMigrateMate        *bool   `json:"found_via_migratemate"`
	VisaType                   *string `json:"visa_type"`
	FreeformFeedback           *string `json:"freeform_feedback"`
	ReasonKey                  *string `json:"reason_key"`
	EmployerImmigrationSupport *string `json:"employer_immigration_support"`
	WillingToPayCents          *int64  `json:"willing_to_pay_cents"`
	CreatedAt                  string  `json:"created_at"`
}

type newCancellationRow struct {
	ID              string `json:"id"`
	UserID          string `json:"user_id"`
	SubscriptionID  string `json:"subscription_id"`
	DownsellVariant string `json:"downsell_variant"`
	Status          string `json:"status"`
}

// Store talks to the same tables the Postgres migrations create.
type Store struct {
	client *supa.Client
}

func NewStore(url, serviceKey string) *Store {
	return &Store{client: supa.CreateClient(url, serviceKey)}
}

func (s *Store) GetSubscriptionByID(ctx context.Context, id strfmt.UUID) (*entity.Subscription, error) {
	var rows []subscriptionRow
	if err := s.client.DB.From(subscriptionsTable).Select("*").Eq("id", id.String()).ExecuteWithContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("get subscription id=%s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, usecase.ErrSubscriptionNotFound
	}
	return toSubscription(rows[0]), nil
}

func (s *Store) GetLatestCancellation(ctx context.Context, userID, subscriptionID strfmt.UUID) (*entity.Cancellation, error) {
	var rows []cancellationRow
	err := s.client.DB.From(cancellationsTable).Select("*").
		OrderBy("created_at", "desc").
		Limit(1).
		Eq("user_id", userID.String()).
		Eq("subscription_id", subscriptionID.String()).
		ExecuteWithContext(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("get latest cancellation: %w", err)
	}
	if len(rows) == 0 {
		return nil, usecase.ErrCancellationNotFound
	}
	return toCancellation(rows[0])
}

func (s *Store) CreateCancellation(ctx context.Context, userID, subscriptionID strfmt.UUID, variant entity.Variant) (strfmt.UUID, error) {
	id := uuid.NewString()
	var out []cancellationRow
	err := s.client.DB.From(cancellationsTable).Insert(newCancellationRow{
		ID:              id,
		UserID:          userID.String(),
		SubscriptionID:  subscriptionID.String(),
		DownsellVariant: string(variant),
		Status:          string(entity.CancellationInProgress),
	}).ExecuteWithContext(ctx, &out)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("create cancellation: %w", err)
	}
	return strfmt.UUID(id), nil
}

func (s *Store) GetCancellationByID(ctx context.Context, id strfmt.UUID) (*entity.Cancellation, error) {
	var rows []cancellationRow
	if err := s.client.DB.From(cancellationsTable).Select("*").Eq("id", id.String()).ExecuteWithContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("get cancellation id=%s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, usecase.ErrCancellationNotFound
	}
	return toCancellation(rows[0])
}

func (s *Store) UpdateCancellation(ctx context.Context, id strfmt.UUID, ch entity.CancellationChanges) (*entity.Cancellation, error) {
	if _, err := s.GetCancellationByID(ctx, id); err != nil {
		return nil, err
	}
	payload := updatePayload(ch)
	if len(payload) > 0 {
		var out []cancellationRow
		err := s.client.DB.From(cancellationsTable).Update(payload).Eq("id", id.String()).ExecuteWithContext(ctx, &out)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("update cancellation id=%s: %w", id, err)
		}
	}
	return s.GetCancellationByID(ctx, id)
}

func (s *Store) UpdateSubscriptionStatus(ctx context.Context, id strfmt.UUID, status entity.SubscriptionStatus) error {
	if _, err := s.GetSubscriptionByID(ctx, id); err != nil {
		return err
	}
	var out []subscriptionRow
	err := s.client.DB.From(subscriptionsTable).
		Update(map[string]interface{}{"status": string(status)}).
		Eq("id", id.String()).
		ExecuteWithContext(ctx, &out)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("update subscription status id=%s: %w", id, err)
	}
	return nil
}

// updatePayload keeps only supplied fields; cleared strings become JSON null
func updatePayload(ch entity.CancellationChanges) map[string]interface{} {
	p := map[string]interface{}{}
	if ch.Status != nil {
		p["status"] = string(*ch.Status)
	}
	if ch.AcceptedDownsell != nil {
		p["accepted_downsell"] = *ch.AcceptedDownsell
	}
	if ch.FoundJob != nil {
		p["found_job"] = *ch.FoundJob
	}
	if ch.FoundViaMigrateMate != nil {
		p["found_via_migratemate"] = *ch.FoundViaMigrateMate
	}
	if ch.VisaType != nil {
		p["visa_type"] = ch.VisaType.Ptr()
	}
	if ch.FreeformFeedback != nil {
		p["freeform_feedback"] = ch.FreeformFeedback.Ptr()
	}
	if ch.ReasonKey != nil {
		p["reason_key"] = string(*ch.ReasonKey)
	}
	if ch.EmployerImmigrationSupport != nil {
		p["employer_immigration_support"] = string(*ch.EmployerImmigrationSupport)
	}
	if ch.WillingToPayCents != nil {
		p["willing_to_pay_cents"] = *ch.WillingToPayCents
	}
	return p
}

func toSubscription(r subscriptionRow) *entity.Subscription {
	return &entity.Subscription{
		ID:           strfmt.UUID(r.ID),
		UserID:       strfmt.UUID(r.UserID),
		MonthlyPrice: r.MonthlyPrice,
		Status:       entity.SubscriptionStatus(r.Status),
	}
}

func toCancellation(r cancellationRow) (*entity.Cancellation, error) {
	created, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("cancellation id=%s created_at %q: %w", r.ID, r.CreatedAt, err)
	}
	out := &entity.Cancellation{
		ID:                  strfmt.UUID(r.ID),
		UserID:              strfmt.UUID(r.UserID),
		SubscriptionID:      strfmt.UUID(r.SubscriptionID),
		DownsellVariant:     entity.Variant(r.DownsellVariant),
		Status:              entity.CancellationStatus(r.Status),
		AcceptedDownsell:    r.AcceptedDownsell,
		FoundJob:            r.FoundJob,
		FoundViaMigrateMate: r.FoundViaMigrateMate,
		VisaType:            r.VisaType,
		FreeformFeedback:    r.FreeformFeedback,
		WillingToPayCents:   r.WillingToPayCents,
		CreatedAt:           created,
	}
	if r.ReasonKey != nil {
		rk := entity.ReasonKey(*r.ReasonKey)
		out.ReasonKey = &rk
	}
	if r.EmployerImmigrationSupport != nil {
		s := entity.ImmigrationSupport(*r.EmployerImmigrationSupport)
		out.EmployerImmigrationSupport = &s
	}
	return out, nil
}
