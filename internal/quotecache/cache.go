package quotecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"

	"hos-delivery/internal/delivery"
)

// Cache stores computed quotes for a short time. Implementations treat
// backend failures as misses.
type Cache interface {
	Get(ctx context.Context, key string) (delivery.Quote, bool)
	Set(ctx context.Context, key string, q delivery.Quote)
}

// Key identifies a quote. Everything that changes the result is part of it:
// destination, tier, whether free shipping applies and the calendar day the
// dates are projected from. Settlements resolve case-insensitively, so the
// city is folded; regions match exactly and keep their case.
func Key(req delivery.Request, freeShipping bool, day time.Time) string {
	return fmt.Sprintf("%s|%s|%s|%t|%s",
		strings.TrimSpace(req.State),
		strings.ToLower(strings.TrimSpace(req.City)),
		strings.ToLower(strings.TrimSpace(req.SpeedOption)),
		freeShipping,
		day.Format("2006-01-02"),
	)
}

// Memory is an in-process LRU with per-entry expiry.
type Memory struct {
	lru *expirable.LRU[string, delivery.Quote]
}

// NewMemory builds a cache holding at most size quotes for ttl each.
func NewMemory(size int, ttl time.Duration) *Memory {
	if size <= 0 {
		size = 1024
	}
	return &Memory{lru: expirable.NewLRU[string, delivery.Quote](size, nil, ttl)}
}

func (m *Memory) Get(_ context.Context, key string) (delivery.Quote, bool) {
	return m.lru.Get(key)
}

func (m *Memory) Set(_ context.Context, key string, q delivery.Quote) {
	m.lru.Add(key, q)
}

// Len reports the number of live entries.
func (m *Memory) Len() int { return m.lru.Len() }

// Redis shares quotes between service instances.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedis wraps an existing client.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl, prefix: "hos:delivery:quote:"}
}

// DialRedis parses a redis URL and pings the server.
func DialRedis(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return client, nil
}

func (r *Redis) Get(ctx context.Context, key string) (delivery.Quote, bool) {
	raw, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("warn: quote cache get %q: %v", key, err)
		}
		return delivery.Quote{}, false
	}
	var q delivery.Quote
	if err := json.Unmarshal(raw, &q); err != nil {
		log.Printf("warn: quote cache decode %q: %v", key, err)
		return delivery.Quote{}, false
	}
	return q, true
}

func (r *Redis) Set(ctx context.Context, key string, q delivery.Quote) {
	raw, err := json.Marshal(q)
	if err != nil {
		log.Printf("warn: quote cache encode %q: %v", key, err)
		return
	}
	if err := r.client.Set(ctx, r.prefix+key, raw, r.ttl).Err(); err != nil {
		log.Printf("warn: quote cache set %q: %v", key, err)
	}
}

// Close releases the redis connection pool.
func (r *Redis) Close() error { return r.client.Close() }

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) (delivery.Quote, bool) { return delivery.Quote{}, false }
func (Nop) Set(context.Context, string, delivery.Quote)        {}
