package services_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookcase-labs/library-catalog/internal/services"
)

func TestCredentials_HashAndVerify(t *testing.T) {
	creds := services.NewCredentials(bcrypt.DefaultCost)

	hash, err := creds.HashPassword("secret123")
	assert.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, creds.VerifyPassword("secret123", hash))
	assert.False(t, creds.VerifyPassword("wrongpass", hash))
}

func TestCredentials_HashIsSalted(t *testing.T) {
	creds := services.NewCredentials(bcrypt.DefaultCost)

	hash1, err := creds.HashPassword("secret123")
	assert.NoError(t, err)
	hash2, err := creds.HashPassword("secret123")
	assert.NoError(t, err)

	assert.NotEqual(t, hash1, hash2)
	assert.True(t, creds.VerifyPassword("secret123", hash1))
	assert.True(t, creds.VerifyPassword("secret123", hash2))
}

func TestCredentials_LongPassword(t *testing.T) {
	creds := services.NewCredentials(bcrypt.DefaultCost)

	// bcrypt alone rejects inputs over 72 bytes; the full accepted
	// password range has to survive hashing.
	long := strings.Repeat("a", 100)
	hash, err := creds.HashPassword(long)
	assert.NoError(t, err)
	assert.True(t, creds.VerifyPassword(long, hash))

	// Passwords that only diverge past byte 72 must not collide.
	other := long[:72] + strings.Repeat("b", 28)
	assert.False(t, creds.VerifyPassword(other, hash))
}

func TestCredentials_NewResetSecret(t *testing.T) {
	creds := services.NewCredentials(bcrypt.DefaultCost)

	secret, hash, err := creds.NewResetSecret()
	assert.NoError(t, err)
	assert.NotEmpty(t, secret)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, secret, hash)

	assert.True(t, creds.VerifyPassword(secret, hash))

	// Two secrets issued in a row never collide.
	secret2, _, err := creds.NewResetSecret()
	assert.NoError(t, err)
	assert.NotEqual(t, secret, secret2)
}

func TestCredentials_CostFloor(t *testing.T) {
	creds := services.NewCredentials(1)

	hash, err := creds.HashPassword("secret123")
	assert.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, cost, bcrypt.DefaultCost)
}
