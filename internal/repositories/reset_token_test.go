package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/bookcase-labs/library-catalog/internal/models"
)

func TestResetTokenRepository(t *testing.T) {
	ctx := context.Background()

	// Start Redis container
	req := testcontainers.ContainerRequest{
		Image:        "redis:7.0-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	assert.NoError(t, err)
	defer redisC.Terminate(ctx)

	host, err := redisC.Host(ctx)
	assert.NoError(t, err)
	port, err := redisC.MappedPort(ctx, "6379")
	assert.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port.Port()),
	})
	defer rdb.Close()

	err = rdb.Ping(ctx).Err()
	assert.NoError(t, err)

	repo := NewResetTokenRepository(rdb, 2*time.Second)

	t.Run("Save and Get round-trip", func(t *testing.T) {
		userID := uuid.New()
		record := &models.ResetTokenRecord{TokenHash: "hash-1", CreatedAt: time.Now().UTC()}

		err := repo.Save(ctx, userID, record)
		assert.NoError(t, err)

		got, err := repo.Get(ctx, userID)
		assert.NoError(t, err)
		assert.Equal(t, "hash-1", got.TokenHash)
	})

	t.Run("Save replaces the prior record", func(t *testing.T) {
		userID := uuid.New()

		err := repo.Save(ctx, userID, &models.ResetTokenRecord{TokenHash: "old", CreatedAt: time.Now().UTC()})
		assert.NoError(t, err)
		err = repo.Save(ctx, userID, &models.ResetTokenRecord{TokenHash: "new", CreatedAt: time.Now().UTC()})
		assert.NoError(t, err)

		got, err := repo.Get(ctx, userID)
		assert.NoError(t, err)
		assert.Equal(t, "new", got.TokenHash)
	})

	t.Run("Get missing record maps to ErrNotFound", func(t *testing.T) {
		_, err := repo.Get(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Delete consumes the record exactly once", func(t *testing.T) {
		userID := uuid.New()

		err := repo.Save(ctx, userID, &models.ResetTokenRecord{TokenHash: "once", CreatedAt: time.Now().UTC()})
		assert.NoError(t, err)

		assert.NoError(t, repo.Delete(ctx, userID))

		_, err = repo.Get(ctx, userID)
		assert.ErrorIs(t, err, ErrNotFound)

		assert.ErrorIs(t, repo.Delete(ctx, userID), ErrNotFound)
	})

	t.Run("Record expires with the TTL", func(t *testing.T) {
		userID := uuid.New()

		err := repo.Save(ctx, userID, &models.ResetTokenRecord{TokenHash: "short-lived", CreatedAt: time.Now().UTC()})
		assert.NoError(t, err)

		time.Sleep(3 * time.Second)

		_, err = repo.Get(ctx, userID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
