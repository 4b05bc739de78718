package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"storefront-admin/internal/config"
)

func TestAccessToken_RoundTrip(t *testing.T) {
	svc := NewService(&config.Config{JWTSecret: "secret"})

	token, err := svc.IssueAccessToken("admin-1", "admin@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
}

func TestAccessToken_Rejects(t *testing.T) {
	svc := NewService(&config.Config{JWTSecret: "secret"})
	other := NewService(&config.Config{JWTSecret: "other"})

	foreign, err := other.IssueAccessToken("admin-1", "", time.Hour)
	require.NoError(t, err)
	_, err = svc.ValidateAccessToken(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := svc.IssueAccessToken("admin-1", "", -time.Minute)
	require.NoError(t, err)
	_, err = svc.ValidateAccessToken(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAPIKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("cron-key"), bcrypt.MinCost)
	require.NoError(t, err)

	svc := NewService(&config.Config{SweepAPIKeyHash: string(hash)})
	assert.NoError(t, svc.VerifyAPIKey("cron-key"))
	assert.ErrorIs(t, svc.VerifyAPIKey("wrong"), ErrInvalidAPIKey)
	assert.ErrorIs(t, svc.VerifyAPIKey(""), ErrInvalidAPIKey)

	disabled := NewService(&config.Config{})
	assert.ErrorIs(t, disabled.VerifyAPIKey("cron-key"), ErrInvalidAPIKey)
}
