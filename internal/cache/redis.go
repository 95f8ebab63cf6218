package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/DERICHRIS/immantravels/config"
	"github.com/DERICHRIS/immantravels/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client    *redis.Client
	routesTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, routesTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:    redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		routesTTL: routesTTL,
	}
}

func (c *RedisCache) GetAvailability(ctx context.Context, travelDate time.Time) ([]domain.RouteAvailability, error) {
	data, err := c.client.Get(ctx, availabilityKey(travelDate)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var availability []domain.RouteAvailability
	if err := json.Unmarshal(data, &availability); err != nil {
		return nil, err
	}
	return availability, nil
}

func (c *RedisCache) SetAvailability(ctx context.Context, travelDate time.Time, availability []domain.RouteAvailability) error {
	payload, err := json.Marshal(availability)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, availabilityKey(travelDate), payload, c.routesTTL).Err()
}

func (c *RedisCache) InvalidateAvailability(ctx context.Context, travelDate time.Time) error {
	return c.client.Del(ctx, availabilityKey(travelDate)).Err()
}

// AcquireSeatHold takes a short-lived SetNX lock for one seat while the
// booking transaction is in flight.
func (c *RedisCache) AcquireSeatHold(ctx context.Context, routeID int64, travelDate time.Time, seat int, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, seatHoldKey(routeID, travelDate, seat), "held", ttl).Result()
}

func (c *RedisCache) ReleaseSeatHold(ctx context.Context, routeID int64, travelDate time.Time, seat int) error {
	return c.client.Del(ctx, seatHoldKey(routeID, travelDate, seat)).Err()
}

func availabilityKey(travelDate time.Time) string {
	return "cache:availability:" + travelDate.Format("2006-01-02")
}

func seatHoldKey(routeID int64, travelDate time.Time, seat int) string {
	return fmt.Sprintf("hold:route:%d:%s:seat:%d", routeID, travelDate.Format("2006-01-02"), seat)
}
