package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb *redis.Client
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Intake draft storage. Drafts are transient wizard state keyed by draft ID.
func (c *Client) SetDraft(draftID string, draft interface{}, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	return c.rdb.Set(ctx, "draft:"+draftID, jsonData, ttl).Err()
}

func (c *Client) GetDraft(draftID string, dest interface{}) error {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "draft:"+draftID).Result()
	if err != nil {
		if err == redis.Nil {
			return fmt.Errorf("draft not found")
		}
		return fmt.Errorf("failed to get draft: %w", err)
	}

	return json.Unmarshal([]byte(val), dest)
}

func (c *Client) DeleteDraft(draftID string) error {
	ctx := context.Background()
	return c.rdb.Del(ctx, "draft:"+draftID).Err()
}

// Recent-orders mirror. A best-effort per-user list so the order history view
// can render a just-created order without waiting for a full reload. Advisory
// only, never authoritative.
func (c *Client) PrependRecentOrder(userID uint, order interface{}, max int) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}

	key := fmt.Sprintf("recent_orders:%d", userID)
	if err := c.rdb.LPush(ctx, key, jsonData).Err(); err != nil {
		return fmt.Errorf("failed to prepend recent order: %w", err)
	}
	return c.rdb.LTrim(ctx, key, 0, int64(max-1)).Err()
}

func (c *Client) GetRecentOrders(userID uint) ([]string, error) {
	ctx := context.Background()
	key := fmt.Sprintf("recent_orders:%d", userID)
	vals, err := c.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get recent orders: %w", err)
	}
	return vals, nil
}

// Settings warm cache
func (c *Client) SetSettingsCache(settings interface{}, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	return c.rdb.Set(ctx, "site_settings", jsonData, ttl).Err()
}

func (c *Client) GetSettingsCache(dest interface{}) error {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "site_settings").Result()
	if err != nil {
		if err == redis.Nil {
			return fmt.Errorf("settings cache miss")
		}
		return fmt.Errorf("failed to get settings cache: %w", err)
	}

	return json.Unmarshal([]byte(val), dest)
}

func (c *Client) InvalidateSettingsCache() error {
	ctx := context.Background()
	return c.rdb.Del(ctx, "site_settings").Err()
}

// Order events. Each assigned merchant has a channel; a published event tells
// the merchant dashboard to re-fetch its order list, it carries no diff.
func (c *Client) PublishOrderEvent(merchantID uint, event interface{}) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	channel := fmt.Sprintf("order_events:%d", merchantID)
	return c.rdb.Publish(ctx, channel, jsonData).Err()
}

func (c *Client) SubscribeOrderEvents(ctx context.Context, merchantID uint) (<-chan string, func()) {
	channel := fmt.Sprintf("order_events:%d", merchantID)
	sub := c.rdb.Subscribe(ctx, channel)

	out := make(chan string)
	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			select {
			case out <- msg.Payload:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, func() { _ = sub.Close() }
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
