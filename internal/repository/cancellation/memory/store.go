package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"cancelflow/internal/entity"
	"cancelflow/internal/usecase"
)

const (
	subPrefix    = "sub:"
	cancelPrefix = "cancel:"
)

// Demo fixture available when the store is seeded
const (
	DemoSubscriptionID = strfmt.UUID("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
	DemoUserID         = strfmt.UUID("550e8400-e29b-41d4-a716-446655440001")
)

// DemoSubscription returns the seeded active subscription
func DemoSubscription() entity.Subscription {
	return entity.Subscription{
		ID:           DemoSubscriptionID,
		UserID:       DemoUserID,
		MonthlyPrice: 2500,
		Status:       entity.SubscriptionActive,
	}
}

type cancellationRecord struct {
	c   entity.Cancellation
	seq uint64
}

// Store is the in-process fallback used when no database is configured.
// Values are copied in and out, callers never share state with the store.
type Store struct {
	cache *cache.Cache
	// mu serialises read-modify-write sequences on top of the cache
	mu  sync.Mutex
	seq uint64
	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		cache: cache.New(cache.NoExpiration, 0),
		now:   time.Now,
	}
}

// Seed stores the given subscriptions, replacing any with the same id
func (s *Store) Seed(subs ...entity.Subscription) {
	for _, sub := range subs {
		s.cache.Set(subPrefix+sub.ID.String(), sub, cache.NoExpiration)
	}
}

func (s *Store) GetSubscriptionByID(_ context.Context, id strfmt.UUID) (*entity.Subscription, error) {
	x, ok := s.cache.Get(subPrefix + id.String())
	if !ok {
		return nil, usecase.ErrSubscriptionNotFound
	}
	sub := x.(entity.Subscription)
	return &sub, nil
}

func (s *Store) GetLatestCancellation(_ context.Context, userID, subscriptionID strfmt.UUID) (*entity.Cancellation, error) {
	var latest *cancellationRecord
	for key, item := range s.cache.Items() {
		if !strings.HasPrefix(key, cancelPrefix) {
			continue
		}
		rec := item.Object.(cancellationRecord)
		if rec.c.UserID != userID || rec.c.SubscriptionID != subscriptionID {
			continue
		}
		if latest == nil || newer(rec, *latest) {
			r := rec
			latest = &r
		}
	}
	if latest == nil {
		return nil, usecase.ErrCancellationNotFound
	}
	c := latest.c
	return &c, nil
}

func newer(a, b cancellationRecord) bool {
	if !a.c.CreatedAt.Equal(b.c.CreatedAt) {
		return a.c.CreatedAt.After(b.c.CreatedAt)
	}
	return a.seq > b.seq
}

func (s *Store) CreateCancellation(_ context.Context, userID, subscriptionID strfmt.UUID, variant entity.Variant) (strfmt.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	id := strfmt.UUID(uuid.NewString())
	s.cache.Set(cancelPrefix+id.String(), cancellationRecord{
		c: entity.Cancellation{
			ID:              id,
			UserID:          userID,
			SubscriptionID:  subscriptionID,
			DownsellVariant: variant,
			Status:          entity.CancellationInProgress,
			CreatedAt:       s.now().UTC(),
		},
		seq: s.seq,
	}, cache.NoExpiration)
	return id, nil
}

func (s *Store) GetCancellationByID(_ context.Context, id strfmt.UUID) (*entity.Cancellation, error) {
	x, ok := s.cache.Get(cancelPrefix + id.String())
	if !ok {
		return nil, usecase.ErrCancellationNotFound
	}
	c := x.(cancellationRecord).c
	return &c, nil
}

func (s *Store) UpdateCancellation(_ context.Context, id strfmt.UUID, ch entity.CancellationChanges) (*entity.Cancellation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := cancelPrefix + id.String()
	x, ok := s.cache.Get(key)
	if !ok {
		return nil, usecase.ErrCancellationNotFound
	}
	rec := x.(cancellationRecord)
	rec.c = rec.c.Apply(ch)
	s.cache.Set(key, rec, cache.NoExpiration)

	c := rec.c
	return &c, nil
}

func (s *Store) UpdateSubscriptionStatus(_ context.Context, id strfmt.UUID, status entity.SubscriptionStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := subPrefix + id.String()
	x, ok := s.cache.Get(key)
	if !ok {
		return usecase.ErrSubscriptionNotFound
	}
	sub := x.(entity.Subscription)
	sub.Status = status
	s.cache.Set(key, sub, cache.NoExpiration)
	return nil
}
