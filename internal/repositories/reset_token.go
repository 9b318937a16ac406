package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/bookcase-labs/library-catalog/internal/logger"
	"github.com/bookcase-labs/library-catalog/internal/models"
)

// ResetTokenRepository stores password-reset token records in Redis.
// One key per user: a fresh Save replaces any prior record in a single
// SET, so two reset secrets can never be valid for the same user at
// once. The key TTL is the token expiry policy.
type ResetTokenRepository struct {
	client *redis.Client
	exp    time.Duration
}

// NewResetTokenRepository creates a new repository instance with the given TTL
func NewResetTokenRepository(client *redis.Client, expiration time.Duration) *ResetTokenRepository {
	return &ResetTokenRepository{
		client: client,
		exp:    expiration,
	}
}

func resetTokenKey(userID uuid.UUID) string {
	return fmt.Sprintf("reset_token:%s", userID)
}

// Save stores the record for the user, replacing any prior token.
func (r *ResetTokenRepository) Save(ctx context.Context, userID uuid.UUID, record *models.ResetTokenRecord) error {
	key := resetTokenKey(userID)

	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, key, payload, r.exp).Err()

	logger.Log.Debugw("reset token saved",
		"key", key,
		"error", err,
	)

	return err
}

// Get returns the stored record for the user, or ErrNotFound when no live
// token exists (never issued, consumed, or expired out of the store).
func (r *ResetTokenRepository) Get(ctx context.Context, userID uuid.UUID) (*models.ResetTokenRecord, error) {
	key := resetTokenKey(userID)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		logger.Log.Debugw("reset token lookup",
			"key", key,
			"error", err,
		)
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var record models.ResetTokenRecord
	if err := json.Unmarshal([]byte(val), &record); err != nil {
		return nil, err
	}

	return &record, nil
}

// Delete removes the record for the user. Deleting an absent record
// returns ErrNotFound so that a consumed token cannot be consumed twice.
func (r *ResetTokenRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	key := resetTokenKey(userID)

	deleted, err := r.client.Del(ctx, key).Result()

	logger.Log.Debugw("reset token deleted",
		"key", key,
		"deleted", deleted,
		"error", err,
	)

	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}
