// Copyright (c) 2026 Namira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/namira/internal/platform/apperr"
	"github.com/taibuivan/namira/internal/platform/sec"
)

// # Test Doubles

type fakeUserRepository struct {
	users       map[string]*User // keyed by ID
	lastLoginID string
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (*User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByUsername(_ context.Context, username string) (*User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) Create(_ context.Context, user *User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepository) TouchLastLogin(_ context.Context, userID string) error {
	f.lastLoginID = userID
	return nil
}

type fakeSessionRepository struct {
	sessions map[string]*Session // keyed by token hash
	revoked  []string
}

func (f *fakeSessionRepository) Create(_ context.Context, session *Session) error {
	f.sessions[session.TokenHash] = session
	return nil
}

func (f *fakeSessionRepository) FindByTokenHash(_ context.Context, tokenHash string) (*Session, error) {
	session, ok := f.sessions[tokenHash]
	if !ok || session.IsRevoked {
		return nil, apperr.NotFound("Session")
	}
	return session, nil
}

func (f *fakeSessionRepository) Revoke(_ context.Context, sessionID string) error {
	for _, session := range f.sessions {
		if session.ID == sessionID {
			session.IsRevoked = true
		}
	}
	f.revoked = append(f.revoked, sessionID)
	return nil
}

func (f *fakeSessionRepository) RevokeAll(_ context.Context, userID string) error {
	for _, session := range f.sessions {
		if session.UserID == userID {
			session.IsRevoked = true
		}
	}
	return nil
}

func (f *fakeSessionRepository) DeleteExpired(_ context.Context) error { return nil }

type challengeEntry struct {
	userID   string
	codeHash string
}

type fakeChallengeRepository struct {
	entries map[string]challengeEntry
}

func (f *fakeChallengeRepository) Set(_ context.Context, token, userID, codeHash string, _ time.Duration) error {
	f.entries[token] = challengeEntry{userID: userID, codeHash: codeHash}
	return nil
}

func (f *fakeChallengeRepository) Get(_ context.Context, token string) (string, string, error) {
	entry, ok := f.entries[token]
	if !ok {
		return "", "", apperr.NotFound("Login challenge is invalid or expired")
	}
	return entry.userID, entry.codeHash, nil
}

func (f *fakeChallengeRepository) Delete(_ context.Context, token string) error {
	delete(f.entries, token)
	return nil
}

type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(userID, _, _ string, _ time.Duration) (string, error) {
	return "access-token-" + userID, nil
}

// # Fixtures

func testService(t *testing.T) (*Service, *fakeUserRepository, *fakeSessionRepository, *fakeChallengeRepository) {
	t.Helper()

	passwordHash, err := sec.HashPassword("correct horse battery")
	require.NoError(t, err)

	users := &fakeUserRepository{users: map[string]*User{
		"user-1": {
			ID:           "user-1",
			Username:     "maya",
			Email:        "maya@namira.app",
			PasswordHash: passwordHash,
			Role:         sec.RoleMember,
			IsActive:     true,
		},
	}}
	sessions := &fakeSessionRepository{sessions: map[string]*Session{}}
	challenges := &fakeChallengeRepository{entries: map[string]challengeEntry{}}

	return NewService(users, sessions, challenges, fakeTokenProvider{}), users, sessions, challenges
}

// # Tests

func TestLogin_OpensChallenge(t *testing.T) {
	service, _, sessions, challenges := testService(t)

	challenge, err := service.Login(context.Background(), LoginInput{
		Login:    "maya@namira.app",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	require.NotNil(t, challenge)

	assert.NotEmpty(t, challenge.ChallengeToken)
	assert.Equal(t, int64(LoginChallengeTTL/time.Second), challenge.ExpiresIn)

	// No session until the code is redeemed
	assert.Empty(t, sessions.sessions)

	entry, ok := challenges.entries[challenge.ChallengeToken]
	require.True(t, ok)
	assert.Equal(t, "user-1", entry.userID)
	assert.NotEmpty(t, entry.codeHash)
}

func TestLogin_WrongPassword(t *testing.T) {
	service, _, _, challenges := testService(t)

	_, err := service.Login(context.Background(), LoginInput{
		Login:    "maya",
		Password: "wrong",
	})
	require.Error(t, err)

	appError, ok := err.(*apperr.AppError)
	require.True(t, ok)
	assert.Equal(t, "UNAUTHORIZED", appError.Code)
	assert.Empty(t, challenges.entries)
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	service, users, _, _ := testService(t)
	users.users["user-1"].IsActive = false

	_, err := service.Login(context.Background(), LoginInput{
		Login:    "maya",
		Password: "correct horse battery",
	})
	require.Error(t, err)

	appError, ok := err.(*apperr.AppError)
	require.True(t, ok)
	assert.Equal(t, "FORBIDDEN", appError.Code)
}

func TestVerifyCode_EstablishesSession(t *testing.T) {
	service, users, sessions, challenges := testService(t)

	// Plant a challenge with a known code, the way Login would
	challenges.entries["challenge-token"] = challengeEntry{
		userID:   "user-1",
		codeHash: sec.HashToken("123456"),
	}

	session, err := service.VerifyCode(context.Background(), VerifyInput{
		ChallengeToken: "challenge-token",
		Code:           "123456",
		UserAgent:      "go-test",
		IPAddress:      "127.0.0.1",
	})
	require.NoError(t, err)

	assert.Equal(t, "access-token-user-1", session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.Equal(t, "maya", session.User.Username)
	assert.Equal(t, "user-1", users.lastLoginID)

	// The refresh token is stored hashed, never in the clear
	stored, ok := sessions.sessions[sec.HashToken(session.RefreshToken)]
	require.True(t, ok)
	assert.Equal(t, "user-1", stored.UserID)
	assert.False(t, stored.IsRevoked)

	// The challenge is burned
	assert.Empty(t, challenges.entries)
}

func TestVerifyCode_WrongCodeBurnsChallenge(t *testing.T) {
	service, _, _, challenges := testService(t)

	challenges.entries["challenge-token"] = challengeEntry{
		userID:   "user-1",
		codeHash: sec.HashToken("123456"),
	}

	_, err := service.VerifyCode(context.Background(), VerifyInput{
		ChallengeToken: "challenge-token",
		Code:           "654321",
	})
	require.Error(t, err)

	// Single attempt: the same token cannot be retried with the right code
	assert.Empty(t, challenges.entries)
	_, err = service.VerifyCode(context.Background(), VerifyInput{
		ChallengeToken: "challenge-token",
		Code:           "123456",
	})
	require.Error(t, err)
}

func TestRefreshSession_RotatesToken(t *testing.T) {
	service, _, _, challenges := testService(t)

	challenges.entries["challenge-token"] = challengeEntry{
		userID:   "user-1",
		codeHash: sec.HashToken("123456"),
	}
	first, err := service.VerifyCode(context.Background(), VerifyInput{
		ChallengeToken: "challenge-token",
		Code:           "123456",
	})
	require.NoError(t, err)

	second, err := service.RefreshSession(context.Background(), first.RefreshToken, "go-test", "127.0.0.1")
	require.NoError(t, err)

	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// The old token is revoked and cannot be replayed
	_, err = service.RefreshSession(context.Background(), first.RefreshToken, "go-test", "127.0.0.1")
	require.Error(t, err)
}

func TestLogout_IsIdempotent(t *testing.T) {
	service, _, sessions, challenges := testService(t)

	challenges.entries["challenge-token"] = challengeEntry{
		userID:   "user-1",
		codeHash: sec.HashToken("123456"),
	}
	session, err := service.VerifyCode(context.Background(), VerifyInput{
		ChallengeToken: "challenge-token",
		Code:           "123456",
	})
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), session.RefreshToken))
	assert.Len(t, sessions.revoked, 1)

	// A second logout with the same (now dead) token still succeeds
	require.NoError(t, service.Logout(context.Background(), session.RefreshToken))
	assert.Len(t, sessions.revoked, 1)
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	service, _, _, _ := testService(t)

	_, err := service.Register(context.Background(), RegisterInput{
		Username: "other",
		Email:    "maya@namira.app",
		Password: "long enough password",
	})
	require.Error(t, err)

	appError, ok := err.(*apperr.AppError)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", appError.Code)
}
