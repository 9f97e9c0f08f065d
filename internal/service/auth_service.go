package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/cinema-seat-booking/internal/logger"
	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/repository"
	"github.com/iliyamo/cinema-seat-booking/internal/utils"
)

// SignInResult is returned by a successful sign-in.
type SignInResult struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	ExpiresIn   int64      `json:"expires_in"`
	User        model.User `json:"user"`
}

// AuthService signs seeded users in and out.  Each sign-in creates a
// session; the access token carries its ID so sign-out can revoke it.
type AuthService struct {
	users    *repository.UserRepo
	sessions *repository.SessionRepo
	clock    Clock
	secret   string
	ttl      time.Duration
	log      logger.Logger
}

func NewAuthService(users *repository.UserRepo, sessions *repository.SessionRepo, clock Clock, secret string, ttl time.Duration, log logger.Logger) *AuthService {
	return &AuthService{users: users, sessions: sessions, clock: clock, secret: secret, ttl: ttl, log: log}
}

// SignIn checks credentials and issues an access token.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (SignInResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return SignInResult{}, fmt.Errorf("%w: email and password are required", ErrValidation)
	}
	u, err := s.users.GetByEmail(email)
	if err != nil {
		return SignInResult{}, ErrInvalidCredentials
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		s.log.Infof(ctx, "auth: failed sign-in for %s", u.ID)
		return SignInResult{}, ErrInvalidCredentials
	}

	now := s.clock.Now()
	sess := model.Session{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	tok, err := utils.NewAccessToken(s.secret, u.ID, string(u.Role), sess.ID, s.ttl)
	if err != nil {
		return SignInResult{}, fmt.Errorf("sign token: %w", err)
	}
	s.sessions.Store(sess)
	s.log.Infof(ctx, "auth: %s signed in", u.ID)
	return SignInResult{
		AccessToken: tok.Token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.ttl.Seconds()),
		User:        u,
	}, nil
}

// SignOut revokes the session.
func (s *AuthService) SignOut(ctx context.Context, sessionID string) error {
	if err := s.sessions.Revoke(sessionID, s.clock.Now()); err != nil {
		return fmt.Errorf("session: %w", ErrAuthRequired)
	}
	s.log.Debugf(ctx, "auth: session %s revoked", sessionID)
	return nil
}

// ValidateSession returns the user of an active session.
func (s *AuthService) ValidateSession(sessionID string) (string, error) {
	userID, err := s.sessions.Validate(sessionID, s.clock.Now())
	if err != nil {
		return "", fmt.Errorf("session: %w", ErrAuthRequired)
	}
	return userID, nil
}

// CurrentUser returns the signed-in user.
func (s *AuthService) CurrentUser(ctx context.Context) (model.User, error) {
	id := UserIDFromContext(ctx)
	if id == "" {
		return model.User{}, ErrAuthRequired
	}
	u, err := s.users.GetByID(id)
	if err != nil {
		return model.User{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return u, nil
}
