package role

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Kyz7/storefront/internal/models"

	"github.com/redis/go-redis/v9"
)

// Cache keeps an actor's role list in Redis. Entries are keyed by a per-user
// generation counter: writers bump the counter, so a lookup that started
// before a write can only ever fill a key nobody reads again.
type Cache struct {
	client redis.Cmdable
	ttl    time.Duration
	prefix string
}

func NewCache(client redis.Cmdable, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{client: client, ttl: ttl, prefix: "storefront:roles"}
}

func (c *Cache) genKey(userID uint) string {
	return fmt.Sprintf("%s:gen:%d", c.prefix, userID)
}

func (c *Cache) dataKey(userID uint, gen int64) string {
	return fmt.Sprintf("%s:user:%d:%d", c.prefix, userID, gen)
}

func (c *Cache) generation(ctx context.Context, userID uint) (int64, error) {
	gen, err := c.client.Get(ctx, c.genKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *Cache) get(ctx context.Context, userID uint, gen int64) ([]models.Role, bool, error) {
	raw, err := c.client.Get(ctx, c.dataKey(userID, gen)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var roles []models.Role
	if err := json.Unmarshal(raw, &roles); err != nil {
		return nil, false, err
	}
	return roles, true, nil
}

func (c *Cache) set(ctx context.Context, userID uint, gen int64, roles []models.Role) error {
	raw, err := json.Marshal(roles)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.dataKey(userID, gen), raw, c.ttl).Err()
}

// bump invalidates every cached entry of the given users.
func (c *Cache) bump(ctx context.Context, userIDs ...uint) error {
	if len(userIDs) == 0 {
		return nil
	}
	pipe := c.client.TxPipeline()
	for _, id := range userIDs {
		pipe.Incr(ctx, c.genKey(id))
	}
	_, err := pipe.Exec(ctx)
	return err
}
