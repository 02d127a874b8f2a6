package entity

import (
	"time"

	"github.com/go-openapi/strfmt"
)

// Variant - downsell experiment arm; B shows the discount offer, A does not
type Variant string

const (
	VariantA Variant = "A"
	VariantB Variant = "B"
)

// Valid reports whether v is A or B
func (v Variant) Valid() bool {
	return v == VariantA || v == VariantB
}

// CancellationStatus - state of a cancellation journey
type CancellationStatus string

const (
	CancellationInProgress CancellationStatus = "in_progress"
	CancellationCompleted  CancellationStatus = "completed"
)

// ReasonKey - main reason a still-looking user gives for leaving
type ReasonKey string

const (
	ReasonTooExpensive    ReasonKey = "too_expensive"
	ReasonNotFindingRoles ReasonKey = "not_finding_roles"
	ReasonHiredElsewhere  ReasonKey = "hired_elsewhere"
	ReasonProductIssues   ReasonKey = "product_issues"
	ReasonTemporaryBreak  ReasonKey = "temporary_break"
	ReasonOther           ReasonKey = "other"
)

// ReasonKeys lists every accepted reason key
var ReasonKeys = []ReasonKey{
	ReasonTooExpensive,
	ReasonNotFindingRoles,
	ReasonHiredElsewhere,
	ReasonProductIssues,
	ReasonTemporaryBreak,
	ReasonOther,
}

// Valid reports whether r is a known reason key
func (r ReasonKey) Valid() bool {
	for _, k := range ReasonKeys {
		if r == k {
			return true
		}
	}
	return false
}

// ImmigrationSupport - whether the new employer helps with the visa
type ImmigrationSupport string

const (
	ImmigrationSupportYes ImmigrationSupport = "yes"
	ImmigrationSupportNo  ImmigrationSupport = "no"
)

// Valid reports whether s is yes or no
func (s ImmigrationSupport) Valid() bool {
	return s == ImmigrationSupportYes || s == ImmigrationSupportNo
}

// Cancellation - one cancellation journey of a user for a subscription
type Cancellation struct {
	// ID - cancellation identifier, generated at creation
	ID strfmt.UUID
	// UserID - owner, immutable
	UserID strfmt.UUID
	// SubscriptionID - subscription being cancelled, immutable
	SubscriptionID strfmt.UUID
	// DownsellVariant - experiment arm fixed at creation
	DownsellVariant Variant
	// Status - in_progress until completed, never goes back
	Status CancellationStatus
	// AcceptedDownsell - flips to true once, never reset
	AcceptedDownsell bool

	FoundJob                   *bool
	FoundViaMigrateMate        *bool
	VisaType                   *string
	FreeformFeedback           *string
	ReasonKey                  *ReasonKey
	EmployerImmigrationSupport *ImmigrationSupport
	// WillingToPayCents - always stored in cents
	WillingToPayCents *int64

	CreatedAt time.Time
}

// OwnedBy reports whether userID owns the cancellation
func (c *Cancellation) OwnedBy(userID strfmt.UUID) bool {
	return c != nil && c.UserID == userID
}

// Completed reports whether the journey reached its terminal state
func (c *Cancellation) Completed() bool {
	return c != nil && c.Status == CancellationCompleted
}

// NullString is a string field of a partial update that may also clear the value.
type NullString struct {
	String string
	Valid  bool
}

// Ptr returns nil for a cleared value.
func (n NullString) Ptr() *string {
	if !n.Valid {
		return nil
	}
	s := n.String
	return &s
}

// CancellationChanges is a partial update of a Cancellation. A nil field is
// left untouched by Apply and by every store.
type CancellationChanges struct {
	Status                     *CancellationStatus
	AcceptedDownsell           *bool
	FoundJob                   *bool
	FoundViaMigrateMate        *bool
	VisaType                   *NullString
	FreeformFeedback           *NullString
	ReasonKey                  *ReasonKey
	EmployerImmigrationSupport *ImmigrationSupport
	WillingToPayCents          *int64
}

// Empty reports whether no field is set
func (ch CancellationChanges) Empty() bool {
	return ch.Status == nil &&
		ch.AcceptedDownsell == nil &&
		ch.FoundJob == nil &&
		ch.FoundViaMigrateMate == nil &&
		ch.VisaType == nil &&
		ch.FreeformFeedback == nil &&
		ch.ReasonKey == nil &&
		ch.EmployerImmigrationSupport == nil &&
		ch.WillingToPayCents == nil
}

// Apply merges the supplied fields into a copy of c
func (c Cancellation) Apply(ch CancellationChanges) Cancellation {
	if ch.Status != nil {
		c.Status = *ch.Status
	}
	if ch.AcceptedDownsell != nil {
		c.AcceptedDownsell = *ch.AcceptedDownsell
	}
	if ch.FoundJob != nil {
		v := *ch.FoundJob
		c.FoundJob = &v
	}
	if ch.FoundViaMigrateMate != nil {
		v := *ch.FoundViaMigrateMate
		c.FoundViaMigrateMate = &v
	}
	if ch.VisaType != nil {
		c.VisaType = ch.VisaType.Ptr()
	}
	if ch.FreeformFeedback != nil {
		c.FreeformFeedback = ch.FreeformFeedback.Ptr()
	}
	if ch.ReasonKey != nil {
		v := *ch.ReasonKey
		c.ReasonKey = &v
	}
	if ch.EmployerImmigrationSupport != nil {
		v := *ch.EmployerImmigrationSupport
		c.EmployerImmigrationSupport = &v
	}
	if ch.WillingToPayCents != nil {
		v := *ch.WillingToPayCents
		c.WillingToPayCents = &v
	}
	return c
}
