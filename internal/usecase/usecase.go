package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-openapi/strfmt"

	"cancelflow/internal/entity"
)

//go:generate go run github.com/golang/mock/mockgen@v1.6.0 -destination=usecase_mock.go -package=usecase cancelflow/internal/usecase Store,Recorder

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not found")
	ErrInvalidState   = errors.New("invalid state")
	ErrInvalidPayload = errors.New("invalid payload")
	ErrStorage        = errors.New("storage failure")

	ErrSubscriptionNotFound = fmt.Errorf("subscription %w", ErrNotFound)
	ErrCancellationNotFound = fmt.Errorf("cancellation %w", ErrNotFound)
)

// Store - persistence port for subscriptions and cancellations.
// Every call touches a single record; there are no multi-record guarantees.
type Store interface {
	// GetSubscriptionByID - ErrSubscriptionNotFound when absent
	GetSubscriptionByID(ctx context.Context, id strfmt.UUID) (*entity.Subscription, error)
	// GetLatestCancellation - most recent by creation time, ErrCancellationNotFound when none
	GetLatestCancellation(ctx context.Context, userID, subscriptionID strfmt.UUID) (*entity.Cancellation, error)
	// CreateCancellation - inserts an in_progress cancellation and returns its id
	CreateCancellation(ctx context.Context, userID, subscriptionID strfmt.UUID, variant entity.Variant) (strfmt.UUID, error)
	// GetCancellationByID - ErrCancellationNotFound when absent
	GetCancellationByID(ctx context.Context, id strfmt.UUID) (*entity.Cancellation, error)
	// UpdateCancellation - merges only the supplied fields, ErrCancellationNotFound when absent
	UpdateCancellation(ctx context.Context, id strfmt.UUID, changes entity.CancellationChanges) (*entity.Cancellation, error)
	// UpdateSubscriptionStatus - ErrSubscriptionNotFound when absent; repeating the same write is harmless
	UpdateSubscriptionStatus(ctx context.Context, id strfmt.UUID, status entity.SubscriptionStatus) error
}

// Transactor is implemented by stores that can run several writes atomically.
type Transactor interface {
	InTx(ctx context.Context, fn func(Store) error) error
}

// Recorder receives lifecycle events, e.g. for metrics.
type Recorder interface {
	CancellationStarted(variant entity.Variant, resumed bool)
	CancellationCompleted(variant entity.Variant)
	DownsellAccepted(variant entity.Variant)
	StorageError(op string)
}

// StartResult - what Start hands back to the client
type StartResult struct {
	// CancellationID - new or resumed cancellation
	CancellationID strfmt.UUID
	// Variant - stored downsell variant
	Variant entity.Variant
	// PlanPriceCents - monthly price of the subscription
	PlanPriceCents int64
	// Resumed - true when an in_progress cancellation was returned as is
	Resumed bool
}

// PatchInput - recognised fields of a partial update; nil means not supplied.
// VisaType and FreeformFeedback with Valid=false are explicit nulls.
type PatchInput struct {
	FoundJob                   *bool
	FoundViaMigrateMate        *bool
	VisaType                   *entity.NullString
	FreeformFeedback           *entity.NullString
	ReasonKey                  *string
	EmployerImmigrationSupport *string
	WillingToPayDollars        *int64
	WillingToPayCents          *int64
}

type nopRecorder struct{}

func (nopRecorder) CancellationStarted(entity.Variant, bool) {}
func (nopRecorder) CancellationCompleted(entity.Variant)     {}
func (nopRecorder) DownsellAccepted(entity.Variant)          {}
func (nopRecorder) StorageError(string)                      {}
