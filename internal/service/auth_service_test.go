package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/cinema-seat-booking/internal/logger"
	"github.com/iliyamo/cinema-seat-booking/internal/repository"
	"github.com/iliyamo/cinema-seat-booking/internal/utils"
)

const testSecret = "test-secret"

func newAuth(t *testing.T) (*AuthService, *fakeClock) {
	t.Helper()
	users := repository.NewUserRepo()
	for _, u := range repository.DefaultUsers() {
		require.NoError(t, users.Create(u, "password123", bcrypt.MinCost))
	}
	clock := &fakeClock{t: testNow}
	return NewAuthService(users, repository.NewSessionRepo(), clock, testSecret, time.Hour, logger.NewNop()), clock
}

func TestSignInIssuesSessionToken(t *testing.T) {
	auth, _ := newAuth(t)

	res, err := auth.SignIn(context.Background(), "Alex.Doe@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", res.TokenType)
	assert.Equal(t, "user123", res.User.ID)

	claims, err := utils.ParseAccessToken(testSecret, res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user123", claims.UserID)
	assert.Equal(t, "CUSTOMER", claims.Role)

	userID, err := auth.ValidateSession(claims.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "user123", userID)
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	auth, _ := newAuth(t)

	_, err := auth.SignIn(context.Background(), "alex.doe@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.ErrorIs(t, err, ErrAuthRequired)

	_, err = auth.SignIn(context.Background(), "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.SignIn(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSignOutRevokesSession(t *testing.T) {
	auth, _ := newAuth(t)
	res, err := auth.SignIn(context.Background(), "boxoffice@example.com", "password123")
	require.NoError(t, err)
	claims, err := utils.ParseAccessToken(testSecret, res.AccessToken)
	require.NoError(t, err)

	require.NoError(t, auth.SignOut(context.Background(), claims.SessionID))
	_, err = auth.ValidateSession(claims.SessionID)
	assert.ErrorIs(t, err, ErrAuthRequired)

	assert.ErrorIs(t, auth.SignOut(context.Background(), "unknown"), ErrAuthRequired)
}

func TestSessionExpires(t *testing.T) {
	auth, clock := newAuth(t)
	res, err := auth.SignIn(context.Background(), "alex.doe@example.com", "password123")
	require.NoError(t, err)
	claims, err := utils.ParseAccessToken(testSecret, res.AccessToken)
	require.NoError(t, err)

	clock.Advance(2 * time.Hour)
	_, err = auth.ValidateSession(claims.SessionID)
	assert.ErrorIs(t, err, ErrAuthRequired)
}

func TestCurrentUser(t *testing.T) {
	auth, _ := newAuth(t)

	u, err := auth.CurrentUser(asUser("owner1"))
	require.NoError(t, err)
	assert.Equal(t, "Box Office", u.Name)

	_, err = auth.CurrentUser(context.Background())
	assert.ErrorIs(t, err, ErrAuthRequired)
}
