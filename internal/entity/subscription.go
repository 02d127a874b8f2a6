package entity

import (
	"github.com/go-openapi/strfmt"
)

// SubscriptionStatus - lifecycle state of a paid subscription
type SubscriptionStatus string

const (
	SubscriptionActive              SubscriptionStatus = "active"
	SubscriptionPendingCancellation SubscriptionStatus = "pending_cancellation"
	SubscriptionCancelled           SubscriptionStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses
func (s SubscriptionStatus) Valid() bool {
	switch s {
	case SubscriptionActive, SubscriptionPendingCancellation, SubscriptionCancelled:
		return true
	}
	return false
}

// Subscription - a user's paid plan
type Subscription struct {
	// ID - subscription identifier in UUID format
	ID strfmt.UUID
	// UserID - owner of the subscription
	UserID strfmt.UUID
	// MonthlyPrice - monthly price in cents
	MonthlyPrice int64
	// Status - current lifecycle state
	Status SubscriptionStatus
}
