// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package channel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/platform/constants"
)

// RedisProfileCache implements [ProfileCache] using Redis.
//
// Entries carry a short TTL so audience statistics lag reality by at most
// [constants.ChannelProfileCacheTTL]. Only the viewer-independent profile is
// ever stored here.
type RedisProfileCache struct {
	client *redis.Client
}

// NewProfileCache creates a new Redis-backed ProfileCache.
func NewProfileCache(client *redis.Client) *RedisProfileCache {
	return &RedisProfileCache{client: client}
}

/*
Get retrieves a cached channel profile by canonical username.

Description: Returns apperr.NotFound on a cache miss. A corrupt entry is
treated as a miss after being evicted.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *ChannelProfile: Cached aggregate
  - error: apperr.NotFound or connectivity errors
*/
func (cache *RedisProfileCache) Get(context context.Context, username string) (*ChannelProfile, error) {
	key := constants.RedisPrefixChannelProfile + username

	payload, err := cache.client.Get(context, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Channel profile cache entry")
		}
		return nil, fmt.Errorf("redis_channel_profile_get_failed: %w", err)
	}

	profile := &ChannelProfile{}
	if err := json.Unmarshal(payload, profile); err != nil {
		// Evict the unreadable entry and report a miss.
		_ = cache.client.Del(context, key).Err()
		return nil, apperr.NotFound("Channel profile cache entry")
	}

	return profile, nil
}

/*
Set stores a channel profile under its canonical username with the cache TTL.

Parameters:
  - context: context.Context
  - profile: *ChannelProfile (IsSubscribed must be zero)

Returns:
  - error: Marshalling or connectivity errors
*/
func (cache *RedisProfileCache) Set(context context.Context, profile *ChannelProfile) error {
	key := constants.RedisPrefixChannelProfile + profile.Username

	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("redis_channel_profile_marshal_failed: %w", err)
	}

	if err := cache.client.Set(context, key, payload, constants.ChannelProfileCacheTTL).Err(); err != nil {
		return fmt.Errorf("redis_channel_profile_set_failed: %w", err)
	}

	return nil
}

/*
Invalidate drops the cached entry for a username. Absent keys are a no-op.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - error: Connectivity errors
*/
func (cache *RedisProfileCache) Invalidate(context context.Context, username string) error {
	key := constants.RedisPrefixChannelProfile + username

	if err := cache.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_channel_profile_invalidate_failed: %w", err)
	}

	return nil
}
