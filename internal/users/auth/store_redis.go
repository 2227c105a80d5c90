// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/taibuivan/weebtsuki/internal/platform/apperr"
	"github.com/taibuivan/weebtsuki/internal/platform/constants"
)

// RedisCodeRepository implements [CodeRepository] on a key prefix.
type RedisCodeRepository struct {
	client   *redis.Client
	prefix   string
	resource string
}

// NewOTPRepository stores verification codes keyed by user ID.
func NewOTPRepository(client *redis.Client) *RedisCodeRepository {
	return &RedisCodeRepository{client: client, prefix: constants.RedisPrefixOTP, resource: "Verification code"}
}

// NewResetTokenRepository stores user IDs keyed by hashed reset token.
func NewResetTokenRepository(client *redis.Client) *RedisCodeRepository {
	return &RedisCodeRepository{client: client, prefix: constants.RedisPrefixResetToken, resource: "Reset token"}
}

/*
Set stores value under the prefixed key with a TTL.

Parameters:
  - context: context.Context
  - key: string
  - value: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisCodeRepository) Set(context context.Context, key, value string, ttl time.Duration) error {
	if err := repository.client.Set(context, repository.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis_code_set_failed: %w", err)
	}
	return nil
}

/*
Get retrieves the value stored under key.

Description: Returns apperr.NotFound if the key is absent or expired.
*/
func (repository *RedisCodeRepository) Get(context context.Context, key string) (string, error) {
	value, err := repository.client.Get(context, repository.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound(repository.resource)
		}
		return "", fmt.Errorf("redis_code_get_failed: %w", err)
	}
	return value, nil
}

// Delete removes key.
func (repository *RedisCodeRepository) Delete(context context.Context, key string) error {
	if err := repository.client.Del(context, repository.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis_code_delete_failed: %w", err)
	}
	return nil
}
