package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SHOMANS/tourer-backend/internal/config"
)

const (
	popularPackagesKey = "packages:popular:"
	publicCarouselKey  = "carousel:public"
)

// Client is an optional read-through cache for hot public lists.
// A nil *Client is valid and disables caching.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewClient(cfg config.CacheConfig) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb, ttl: cfg.TTL}, nil
}

// GetPopularPackagesRaw returns the cached popular-packages JSON for a limit
func (c *Client) GetPopularPackagesRaw(ctx context.Context, limit int) ([]byte, error) {
	if c == nil {
		return nil, redis.Nil
	}
	return c.rdb.Get(ctx, popularPackagesKey+strconv.Itoa(limit)).Bytes()
}

// SetPopularPackages stores the popular-packages response as raw JSON
func (c *Client) SetPopularPackages(ctx context.Context, limit int, v any) {
	if c == nil {
		return
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, popularPackagesKey+strconv.Itoa(limit), payload, c.ttl)
}

// GetPublicCarouselRaw returns the cached public carousel JSON
func (c *Client) GetPublicCarouselRaw(ctx context.Context) ([]byte, error) {
	if c == nil {
		return nil, redis.Nil
	}
	return c.rdb.Get(ctx, publicCarouselKey).Bytes()
}

// SetPublicCarousel stores the public carousel response as raw JSON
func (c *Client) SetPublicCarousel(ctx context.Context, v any) {
	if c == nil {
		return
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, publicCarouselKey, payload, c.ttl)
}

// InvalidatePackages drops every cached popular-packages page
func (c *Client) InvalidatePackages(ctx context.Context) {
	if c == nil {
		return
	}
	iter := c.rdb.Scan(ctx, 0, popularPackagesKey+"*", 0).Iterator()
	for iter.Next(ctx) {
		c.rdb.Del(ctx, iter.Val())
	}
}

// InvalidateCarousel drops the cached public carousel
func (c *Client) InvalidateCarousel(ctx context.Context) {
	if c == nil {
		return
	}
	c.rdb.Del(ctx, publicCarouselKey)
}

// IsMiss reports whether err is a cache miss
func IsMiss(err error) bool {
	return err == redis.Nil
}

func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
