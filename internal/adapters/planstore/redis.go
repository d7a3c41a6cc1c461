package planstore

import (
	"context"
	"delivery-planner/internal/domain"
	"delivery-planner/internal/platform/obs"
	"delivery-planner/internal/ports"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// RedisPlanStore keeps plans as JSON values that expire after TTL.
type RedisPlanStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisPlanStore connects to the server at url (redis://host:port/db).
// A zero ttl keeps plans until they are evicted.
func NewRedisPlanStore(url string, ttl time.Duration) (*RedisPlanStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis plan store: parse url: %w", err)
	}
	return NewRedisPlanStoreFromClient(redis.NewClient(opt), ttl), nil
}

func NewRedisPlanStoreFromClient(rdb *redis.Client, ttl time.Duration) *RedisPlanStore {
	return &RedisPlanStore{rdb: rdb, ttl: ttl}
}

func (s *RedisPlanStore) SavePlan(ctx context.Context, plan *domain.FleetPlan) (err error) {
	defer obs.Time(ctx, "planstore.redis.SavePlan")(&err)

	if plan == nil || plan.ID == "" {
		return errors.New("redis plan store: plan must have an id")
	}

	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("redis plan store: encode plan id=%s: %w", plan.ID, err)
	}

	if err := s.rdb.Set(ctx, s.key(plan.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis plan store: set id=%s: %w", plan.ID, err)
	}
	return nil
}

func (s *RedisPlanStore) GetPlan(ctx context.Context, id string) (_ *domain.FleetPlan, err error) {
	defer obs.Time(ctx, "planstore.redis.GetPlan")(&err)

	data, err := s.rdb.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("redis plan store: id=%s: %w", id, ports.ErrPlanNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("redis plan store: get id=%s: %w", id, err)
	}

	var plan domain.FleetPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("redis plan store: decode id=%s: %w", id, err)
	}
	return &plan, nil
}

// Ping checks the connection; used at startup.
func (s *RedisPlanStore) Ping(ctx context.Context) error {
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis plan store: ping: %w", err)
	}
	return nil
}

func (s *RedisPlanStore) Close() error { return s.rdb.Close() }

func (s *RedisPlanStore) key(id string) string { return "plan:" + id }
