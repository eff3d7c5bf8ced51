// Package drafts persists in-progress intake forms between sessions.
// Drafts are keyed per customer so two open intake flows can never leak
// fields into each other; concurrent edits to the same customer's draft
// are last-write-wins.
package drafts

import (
	"context"
	"encoding/json"
	"time"

	"github.com/lats-hub/repairgo/internal/intake"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "intake:draft:"
	defaultTTL = 7 * 24 * time.Hour
)

// Store is a redis-backed draft store with per-customer keys and a TTL so
// abandoned drafts age out on their own.
type Store struct {
	c   *redis.Client
	ttl time.Duration
}

// New connects the store to redis at addr.
func New(addr string) *Store {
	return &Store{
		c: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
		ttl: defaultTTL,
	}
}

// Get returns the draft for a customer; found is false when none exists.
func (s *Store) Get(ctx context.Context, customerID string) (intake.Form, bool, error) {
	var form intake.Form

	data, err := s.c.Get(ctx, keyPrefix+customerID).Bytes()
	if err == redis.Nil {
		return form, false, nil
	}
	if err != nil {
		return form, false, errors.Wrap(err, "draft get")
	}
	if err := json.Unmarshal(data, &form); err != nil {
		return form, false, errors.Wrap(err, "draft decode")
	}
	return form, true, nil
}

// Save stores the draft under the customer's key, refreshing the TTL.
func (s *Store) Save(ctx context.Context, customerID string, form intake.Form) error {
	data, err := json.Marshal(form)
	if err != nil {
		return errors.Wrap(err, "draft encode")
	}
	if err := s.c.Set(ctx, keyPrefix+customerID, data, s.ttl).Err(); err != nil {
		return errors.Wrap(err, "draft set")
	}
	return nil
}

// Clear removes a customer's draft. Called on successful submission and on
// customer change; clearing an absent draft is not an error.
func (s *Store) Clear(ctx context.Context, customerID string) error {
	if err := s.c.Del(ctx, keyPrefix+customerID).Err(); err != nil {
		return errors.Wrap(err, "draft clear")
	}
	return nil
}
