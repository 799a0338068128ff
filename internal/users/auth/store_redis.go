// Copyright (c) 2026 Namira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/namira/internal/platform/apperr"
	"github.com/taibuivan/namira/internal/platform/constants"
)

// # Login Challenge Repository

// RedisChallengeRepository implements ChallengeRepository using Redis.
//
// Challenges are naturally volatile: Redis TTL handles expiry, and a process
// restart simply invalidates pending logins, which is the safe failure mode.
type RedisChallengeRepository struct {
	client *redis.Client
}

// NewChallengeRepository creates a new Redis-backed ChallengeRepository.
func NewChallengeRepository(client *redis.Client) *RedisChallengeRepository {
	return &RedisChallengeRepository{client: client}
}

const (
	challengeFieldUserID   = "userid"
	challengeFieldCodeHash = "codehash"
)

func challengeKey(token string) string {
	return constants.RedisPrefixLoginChallenge + token
}

/*
Set stores a pending login challenge as a Redis hash with a TTL.

Parameters:
  - context: context.Context
  - token: string
  - userID: string
  - codeHash: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisChallengeRepository) Set(context context.Context, token, userID, codeHash string, ttl time.Duration) error {
	key := challengeKey(token)

	// Hash fields and expiry set atomically via pipeline
	pipeline := repository.client.TxPipeline()
	pipeline.HSet(context, key,
		challengeFieldUserID, userID,
		challengeFieldCodeHash, codeHash,
	)
	pipeline.Expire(context, key, ttl)

	if _, err := pipeline.Exec(context); err != nil {
		return fmt.Errorf("redis_challenge_set_failed: %w", err)
	}
	return nil
}

/*
Get retrieves the pending challenge for a token.

Description: Returns apperr.NotFound if the challenge is absent or expired.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - string: UserID
  - string: Stored code hash
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisChallengeRepository) Get(context context.Context, token string) (string, string, error) {
	fields, err := repository.client.HGetAll(context, challengeKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", "", apperr.NotFound("Login challenge is invalid or expired")
		}
		return "", "", fmt.Errorf("redis_challenge_get_failed: %w", err)
	}

	// HGetAll returns an empty map (not redis.Nil) for a missing key
	if len(fields) == 0 {
		return "", "", apperr.NotFound("Login challenge is invalid or expired")
	}

	return fields[challengeFieldUserID], fields[challengeFieldCodeHash], nil
}

/*
Delete removes a challenge after redemption or a failed attempt.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisChallengeRepository) Delete(context context.Context, token string) error {
	if err := repository.client.Del(context, challengeKey(token)).Err(); err != nil {
		return fmt.Errorf("redis_challenge_delete_failed: %w", err)
	}
	return nil
}
