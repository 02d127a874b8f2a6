package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/go-openapi/strfmt"

	"cancelflow/internal/entity"
)

const (
	maxVisaTypeLen      = 80
	maxFeedbackLen      = 1000
	maxWillingToPayUSD  = 500
	maxWillingToPayCent = 50000
)

// Cancellation runs the cancellation lifecycle on top of a Store
type Cancellation struct {
	store Store
	rnd   io.Reader
	rec   Recorder
}

// Option configures a Cancellation service
type Option func(*Cancellation)

// WithRandom replaces the variant randomness source (crypto/rand by default)
func WithRandom(r io.Reader) Option {
	return func(c *Cancellation) {
		c.rnd = r
	}
}

// WithRecorder attaches a lifecycle event recorder
func WithRecorder(r Recorder) Option {
	return func(c *Cancellation) {
		if r != nil {
			c.rec = r
		}
	}
}

// NewCancellation creates the lifecycle service
func NewCancellation(store Store, opts ...Option) *Cancellation {
	c := &Cancellation{
		store: store,
		rnd:   rand.Reader,
		rec:   nopRecorder{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Start resumes the caller's in-progress cancellation for the subscription or creates a new one
func (c *Cancellation) Start(ctx context.Context, userID, subscriptionID strfmt.UUID) (*StartResult, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}

	sub, err := c.store.GetSubscriptionByID(ctx, subscriptionID)
	if err != nil {
		return nil, c.storeErr("get subscription", err)
	}
	if sub.UserID != userID {
		return nil, fmt.Errorf("%w: subscription not owned by user", ErrInvalidState)
	}
	if sub.Status != entity.SubscriptionActive {
		return nil, fmt.Errorf("%w: subscription is %s", ErrInvalidState, sub.Status)
	}

	latest, err := c.store.GetLatestCancellation(ctx, userID, subscriptionID)
	switch {
	case errors.Is(err, ErrCancellationNotFound):
	case err != nil:
		return nil, c.storeErr("get latest cancellation", err)
	case latest.Status == entity.CancellationInProgress:
		c.rec.CancellationStarted(latest.DownsellVariant, true)
		return &StartResult{
			CancellationID: latest.ID,
			Variant:        latest.DownsellVariant,
			PlanPriceCents: sub.MonthlyPrice,
			Resumed:        true,
		}, nil
	}

	variant, err := AssignVariant(c.rnd)
	if err != nil {
		return nil, err
	}
	id, err := c.store.CreateCancellation(ctx, userID, subscriptionID, variant)
	if err != nil {
		return nil, c.storeErr("create cancellation", err)
	}
	c.rec.CancellationStarted(variant, false)
	return &StartResult{
		CancellationID: id,
		Variant:        variant,
		PlanPriceCents: sub.MonthlyPrice,
	}, nil
}

// Patch validates the input and merges the supplied fields into an in-progress cancellation
func (c *Cancellation) Patch(ctx context.Context, userID, id strfmt.UUID, in PatchInput) error {
	if userID == "" {
		return ErrUnauthorized
	}
	changes, err := normalizePatch(in)
	if err != nil {
		return err
	}

	cur, err := c.owned(ctx, userID, id)
	if err != nil {
		return err
	}
	if cur.Completed() {
		return fmt.Errorf("%w: cancellation already completed", ErrInvalidState)
	}

	if _, err := c.store.UpdateCancellation(ctx, id, changes); err != nil {
		return c.storeErr("update cancellation", err)
	}
	return nil
}

// AcceptDownsell marks the offer as accepted; a second call is a no-op
func (c *Cancellation) AcceptDownsell(ctx context.Context, userID, id strfmt.UUID) error {
	if userID == "" {
		return ErrUnauthorized
	}
	cur, err := c.owned(ctx, userID, id)
	if err != nil {
		return err
	}
	if cur.AcceptedDownsell {
		return nil
	}

	accepted := true
	if _, err := c.store.UpdateCancellation(ctx, id, entity.CancellationChanges{AcceptedDownsell: &accepted}); err != nil {
		return c.storeErr("accept downsell", err)
	}
	c.rec.DownsellAccepted(cur.DownsellVariant)
	return nil
}

// Complete moves the subscription to pending_cancellation and the cancellation to completed.
// A completed cancellation is left alone. Without a Transactor the writes are sequential,
// and a failure between them is repaired by calling Complete again.
func (c *Cancellation) Complete(ctx context.Context, userID, id strfmt.UUID) error {
	if userID == "" {
		return ErrUnauthorized
	}
	cur, err := c.owned(ctx, userID, id)
	if err != nil {
		return err
	}
	if cur.Completed() {
		return nil
	}

	complete := func(s Store) error {
		if err := s.UpdateSubscriptionStatus(ctx, cur.SubscriptionID, entity.SubscriptionPendingCancellation); err != nil {
			return c.storeErr("update subscription status", err)
		}
		done := entity.CancellationCompleted
		if _, err := s.UpdateCancellation(ctx, id, entity.CancellationChanges{Status: &done}); err != nil {
			return c.storeErr("complete cancellation", err)
		}
		return nil
	}

	if tx, ok := c.store.(Transactor); ok {
		err = tx.InTx(ctx, complete)
	} else {
		err = complete(c.store)
	}
	if err != nil {
		return err
	}
	c.rec.CancellationCompleted(cur.DownsellVariant)
	return nil
}

// owned loads a cancellation and checks the caller owns it
func (c *Cancellation) owned(ctx context.Context, userID, id strfmt.UUID) (*entity.Cancellation, error) {
	cur, err := c.store.GetCancellationByID(ctx, id)
	if err != nil {
		return nil, c.storeErr("get cancellation", err)
	}
	if !cur.OwnedBy(userID) {
		return nil, fmt.Errorf("%w: cancellation not owned by user", ErrForbidden)
	}
	return cur, nil
}

// storeErr passes known sentinels through and wraps everything else as ErrStorage
func (c *Cancellation) storeErr(op string, err error) error {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrStorage) {
		return err
	}
	c.rec.StorageError(op)
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

// normalizePatch trims, bounds-checks and converts a patch into store changes
func normalizePatch(in PatchInput) (entity.CancellationChanges, error) {
	var ch entity.CancellationChanges

	ch.FoundJob = in.FoundJob
	ch.FoundViaMigrateMate = in.FoundViaMigrateMate

	if in.VisaType != nil {
		v := *in.VisaType
		if v.Valid {
			v.String = strings.TrimSpace(v.String)
			if n := utf8.RuneCountInString(v.String); n < 1 || n > maxVisaTypeLen {
				return ch, fmt.Errorf("%w: visa_type must be 1-%d characters", ErrInvalidPayload, maxVisaTypeLen)
			}
		}
		ch.VisaType = &v
	}

	if in.FreeformFeedback != nil {
		v := *in.FreeformFeedback
		if v.Valid {
			v.String = strings.TrimSpace(v.String)
			if utf8.RuneCountInString(v.String) > maxFeedbackLen {
				return ch, fmt.Errorf("%w: freeform_feedback must be at most %d characters", ErrInvalidPayload, maxFeedbackLen)
			}
		}
		ch.FreeformFeedback = &v
	}

	if in.ReasonKey != nil {
		rk := entity.ReasonKey(*in.ReasonKey)
		if !rk.Valid() {
			return ch, fmt.Errorf("%w: unknown reason_key %q", ErrInvalidPayload, *in.ReasonKey)
		}
		ch.ReasonKey = &rk
	}

	if in.EmployerImmigrationSupport != nil {
		s := entity.ImmigrationSupport(*in.EmployerImmigrationSupport)
		if !s.Valid() {
			return ch, fmt.Errorf("%w: employer_immigration_support must be yes or no", ErrInvalidPayload)
		}
		ch.EmployerImmigrationSupport = &s
	}

	if in.WillingToPayDollars != nil {
		if d := *in.WillingToPayDollars; d < 0 || d > maxWillingToPayUSD {
			return ch, fmt.Errorf("%w: willing_to_pay_dollars must be 0-%d", ErrInvalidPayload, maxWillingToPayUSD)
		}
	}
	if in.WillingToPayCents != nil {
		if v := *in.WillingToPayCents; v < 0 || v > maxWillingToPayCent {
			return ch, fmt.Errorf("%w: willing_to_pay_cents must be 0-%d", ErrInvalidPayload, maxWillingToPayCent)
		}
	}
	switch {
	case in.WillingToPayCents != nil:
		v := *in.WillingToPayCents
		ch.WillingToPayCents = &v
	case in.WillingToPayDollars != nil:
		v := *in.WillingToPayDollars * 100
		ch.WillingToPayCents = &v
	}

	if ch.Empty() {
		return ch, fmt.Errorf("%w: at least one field must be provided", ErrInvalidPayload)
	}
	return ch, nil
}
