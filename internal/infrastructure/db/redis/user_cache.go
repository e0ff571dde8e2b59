package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Vince489/Auth/internal/core/domain"
)

const cacheTTL = 15 * time.Minute

// UserCache is a read-through cache for session-identity resolution.
// Key format: user:<id>
//
// User records are immutable after creation, so entries can never go stale;
// the TTL only bounds memory. Every failure degrades to a repository read.
type UserCache struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewUserCache creates a UserCache wrapping the given Redis client.
func NewUserCache(client *redis.Client, log zerolog.Logger) *UserCache {
	return &UserCache{client: client, log: log}
}

// cachedUser carries the full record through Redis. The domain type hides
// PasswordHash from JSON on purpose, so the cache uses its own encoding.
type cachedUser struct {
	ID              string               `json:"id"`
	UserName        string               `json:"user_name"`
	CodeName        string               `json:"code_name"`
	PasswordHash    string               `json:"password_hash"`
	AirdropReceived bool                 `json:"airdrop_received"`
	Transactions    []domain.Transaction `json:"transactions,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

func (c *UserCache) Get(ctx context.Context, id string) (*domain.User, bool) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Str("user_id", id).Msg("user cache read failed")
		}
		return nil, false
	}

	var cu cachedUser
	if err := json.Unmarshal(raw, &cu); err != nil {
		c.log.Warn().Err(err).Str("user_id", id).Msg("user cache entry corrupt")
		return nil, false
	}

	return &domain.User{
		ID:              cu.ID,
		UserName:        cu.UserName,
		CodeName:        cu.CodeName,
		PasswordHash:    cu.PasswordHash,
		AirdropReceived: cu.AirdropReceived,
		Transactions:    cu.Transactions,
		CreatedAt:       cu.CreatedAt,
		UpdatedAt:       cu.UpdatedAt,
	}, true
}

func (c *UserCache) Set(ctx context.Context, user *domain.User) {
	raw, err := json.Marshal(cachedUser{
		ID:              user.ID,
		UserName:        user.UserName,
		CodeName:        user.CodeName,
		PasswordHash:    user.PasswordHash,
		AirdropReceived: user.AirdropReceived,
		Transactions:    user.Transactions,
		CreatedAt:       user.CreatedAt,
		UpdatedAt:       user.UpdatedAt,
	})
	if err != nil {
		c.log.Warn().Err(err).Str("user_id", user.ID).Msg("user cache encode failed")
		return
	}
	if err := c.client.Set(ctx, c.key(user.ID), raw, cacheTTL).Err(); err != nil {
		c.log.Warn().Err(err).Str("user_id", user.ID).Msg("user cache write failed")
	}
}

func (c *UserCache) key(id string) string {
	return fmt.Sprintf("user:%s", id)
}
