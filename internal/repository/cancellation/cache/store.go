// Package cache wraps a store with a Redis read-through cache for subscriptions.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/redis/go-redis/v9"

	"cancelflow/internal/entity"
	"cancelflow/internal/usecase"
)

const (
	subscriptionKeyPrefix = "cancelflow:subscription:"
	defaultTTL            = 5 * time.Minute
)

type cachedSubscription struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	MonthlyPrice int64  `json:"monthly_price"`
	Status       string `json:"status"`
}

// Store caches subscription reads; cancellations always go to the wrapped store.
// Cache failures are logged and never fail a call.
type Store struct {
	next usecase.Store
	rdb  redis.Cmdable
	ttl  time.Duration
	log  *slog.Logger
}

// Option configures the cache decorator
type Option func(*Store)

func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

func NewStore(next usecase.Store, rdb redis.Cmdable, opts ...Option) *Store {
	s := &Store{
		next: next,
		rdb:  rdb,
		ttl:  defaultTTL,
		log:  slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func subscriptionKey(id strfmt.UUID) string {
	return subscriptionKeyPrefix + id.String()
}

func (s *Store) GetSubscriptionByID(ctx context.Context, id strfmt.UUID) (*entity.Subscription, error) {
	if sub, err := s.cached(ctx, id); err != nil {
		s.log.Warn("subscription cache read failed", slog.String("subscription_id", id.String()), slog.Any("error", err))
	} else if sub != nil {
		return sub, nil
	}

	sub, err := s.next.GetSubscriptionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.put(ctx, sub); err != nil {
		s.log.Warn("subscription cache write failed", slog.String("subscription_id", id.String()), slog.Any("error", err))
	}
	return sub, nil
}

func (s *Store) UpdateSubscriptionStatus(ctx context.Context, id strfmt.UUID, status entity.SubscriptionStatus) error {
	err := s.next.UpdateSubscriptionStatus(ctx, id, status)
	s.invalidate(ctx, id)
	return err
}

func (s *Store) GetLatestCancellation(ctx context.Context, userID, subscriptionID strfmt.UUID) (*entity.Cancellation, error) {
	return s.next.GetLatestCancellation(ctx, userID, subscriptionID)
}

func (s *Store) CreateCancellation(ctx context.Context, userID, subscriptionID strfmt.UUID, variant entity.Variant) (strfmt.UUID, error) {
	return s.next.CreateCancellation(ctx, userID, subscriptionID, variant)
}

func (s *Store) GetCancellationByID(ctx context.Context, id strfmt.UUID) (*entity.Cancellation, error) {
	return s.next.GetCancellationByID(ctx, id)
}

func (s *Store) UpdateCancellation(ctx context.Context, id strfmt.UUID, ch entity.CancellationChanges) (*entity.Cancellation, error) {
	return s.next.UpdateCancellation(ctx, id, ch)
}

// InTx delegates to the wrapped store when it supports transactions and runs fn
// directly otherwise. Subscriptions written inside fn are evicted once it returns.
func (s *Store) InTx(ctx context.Context, fn func(usecase.Store) error) error {
	tx, ok := s.next.(usecase.Transactor)
	if !ok {
		return fn(s)
	}

	var (
		mu      sync.Mutex
		touched []strfmt.UUID
	)
	err := tx.InTx(ctx, func(inner usecase.Store) error {
		return fn(&txStore{Store: inner, touch: func(id strfmt.UUID) {
			mu.Lock()
			touched = append(touched, id)
			mu.Unlock()
		}})
	})
	for _, id := range touched {
		s.invalidate(ctx, id)
	}
	return err
}

// txStore bypasses the cache inside a transaction and remembers subscription writes
type txStore struct {
	usecase.Store
	touch func(strfmt.UUID)
}

func (t *txStore) UpdateSubscriptionStatus(ctx context.Context, id strfmt.UUID, status entity.SubscriptionStatus) error {
	t.touch(id)
	return t.Store.UpdateSubscriptionStatus(ctx, id, status)
}

func (s *Store) cached(ctx context.Context, id strfmt.UUID) (*entity.Subscription, error) {
	data, err := s.rdb.Get(ctx, subscriptionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get: %w", err)
	}
	var c cachedSubscription
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &entity.Subscription{
		ID:           strfmt.UUID(c.ID),
		UserID:       strfmt.UUID(c.UserID),
		MonthlyPrice: c.MonthlyPrice,
		Status:       entity.SubscriptionStatus(c.Status),
	}, nil
}

func (s *Store) put(ctx context.Context, sub *entity.Subscription) error {
	data, err := json.Marshal(cachedSubscription{
		ID:           sub.ID.String(),
		UserID:       sub.UserID.String(),
		MonthlyPrice: sub.MonthlyPrice,
		Status:       string(sub.Status),
	})
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return s.rdb.Set(ctx, subscriptionKey(sub.ID), data, s.ttl).Err()
}

func (s *Store) invalidate(ctx context.Context, id strfmt.UUID) {
	if err := s.rdb.Del(ctx, subscriptionKey(id)).Err(); err != nil {
		s.log.Warn("subscription cache evict failed", slog.String("subscription_id", id.String()), slog.Any("error", err))
	}
}
