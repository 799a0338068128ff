// Copyright (c) 2026 Namira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the core identity and access management system.

It handles user registration, the two-step login flow (password plus a
one-time code held in Redis), and session lifecycle management via JWT and
rotated refresh tokens.

Architecture:

  - Service: Orchestrates business logic (Register, Login, VerifyCode, Refresh).
  - Repository: Abstracted interfaces for Postgres (Users, Sessions) and Redis (Challenges).
  - Security: Bcrypt password hashing and RSA-signed JWTs.
*/
package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/taibuivan/namira/internal/platform/apperr"
	"github.com/taibuivan/namira/internal/platform/sec"
	"github.com/taibuivan/namira/pkg/uuidv7"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - username: The username of the account.
	//   - role: The role of the account.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, challenge,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository      UserRepository
	sessionRepository   SessionRepository
	challengeRepository ChallengeRepository
	tokenProvider       TokenProvider
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	challengeRepo ChallengeRepository,
	tokenProv TokenProvider,
) *Service {
	return &Service{
		userRepository:      userRepo,
		sessionRepository:   sessionRepo,
		challengeRepository: challengeRepo,
		tokenProvider:       tokenProv,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
}

/*
Register validates, hashes, and persists a brand new user account.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - err: Conflict (if identity exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// Verify email uniqueness. Return a client-safe Conflict err.
	_, err := service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Verify username uniqueness. Return a client-safe Conflict err.
	_, err = service.userRepository.FindByUsername(context, input.Username)
	if err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuidv7.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		DisplayName:  input.DisplayName,
		Role:         sec.RoleMember,
		IsActive:     true,
	}

	// Persist the user to the database
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for the first authentication step.
type LoginInput struct {
	Login    string // Can be Username or Email
	Password string
}

// VerifyInput redeems a pending challenge for a session.
type VerifyInput struct {
	ChallengeToken string
	Code           string
	UserAgent      string
	IPAddress      string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

/*
Login verifies credentials and opens a one-time-code challenge.

Description: First step of the two-step flow. On a correct password no
session exists yet: a short-lived challenge token is returned and the
numeric code is stored hashed in Redis, to be redeemed via [Service.VerifyCode].

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginChallenge: Token to present together with the delivered code
  - err: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginChallenge, error) {
	var user *User
	var err error
	// Flexible login: look up by Email or Username
	user, err = service.userRepository.FindByEmail(context, input.Login)
	if err != nil {
		user, err = service.userRepository.FindByUsername(context, input.Login)
	}

	// If (err != nil) the user does not exist. Generic message to prevent enumeration.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// Constant-time password comparison via bcrypt to prevent timing attacks
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if !user.IsActive {
		return nil, apperr.Forbidden("Account is deactivated")
	}

	// Open the challenge: random token keys the Redis entry, numeric code is
	// stored hashed only
	challengeToken, err := sec.GenerateSecureToken(LoginChallengeTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_challenge_token_failed: %w", err)
	}

	code, err := sec.GenerateOneTimeCode(OneTimeCodeDigits)
	if err != nil {
		return nil, fmt.Errorf("auth_service_one_time_code_failed: %w", err)
	}

	err = service.challengeRepository.Set(context, challengeToken, user.ID, sec.HashToken(code), LoginChallengeTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_challenge_store_failed: %w", err)
	}

	// TODO: hand the code to the notification service once the email/SMS
	// worker lands; until then delivery is wired up by the deployment.
	_ = code

	return &LoginChallenge{
		ChallengeToken: challengeToken,
		ExpiresIn:      int64(LoginChallengeTTL / time.Second),
	}, nil
}

/*
VerifyCode redeems a login challenge and issues security tokens.

Description: Second step of the login flow. Validates the one-time code
against the stored hash, burns the challenge either way, and establishes a
new session with rotated tokens.

Parameters:
  - context: context.Context
  - input: VerifyInput

Returns:
  - *LoginSession: Transport-ready session identifiers
  - err: Unauthorized or internal failures
*/
func (service *Service) VerifyCode(context context.Context, input VerifyInput) (*LoginSession, error) {

	userID, codeHash, err := service.challengeRepository.Get(context, input.ChallengeToken)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired login challenge")
	}

	// One attempt per challenge: burn it before comparing so a wrong code
	// cannot be retried against the same token
	_ = service.challengeRepository.Delete(context, input.ChallengeToken)

	if subtle.ConstantTimeCompare([]byte(sec.HashToken(input.Code)), []byte(codeHash)) != 1 {
		return nil, apperr.Unauthorized("Incorrect one-time code")
	}

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, apperr.Unauthorized("User not found or suspended")
	}

	session, err := service.openSession(context, user, input.UserAgent, input.IPAddress)
	if err != nil {
		return nil, err
	}

	// Non-critical side effect; login already succeeded
	_ = service.userRepository.TouchLastLogin(context, user.ID)

	return session, nil
}

/*
Logout permanently revokes the user's active session.

Description: Ensures that a tracked refresh token can never be used again.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - err: Revocation failures
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {

	// Hash the refresh token
	tokenHash := sec.HashToken(refreshToken)

	// Find the session by token hash
	session, err := service.sessionRepository.FindByTokenHash(context, tokenHash)

	// If (err != nil) session is already gone or invalid, we consider logout successful (idempotent operation).
	if err != nil {
		return nil
	}

	// If (err == nil) Revoke the session
	if err := service.sessionRepository.Revoke(context, session.ID); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	return nil
}

// # Session Management

/*
RefreshSession implements the Refresh Token Rotation mechanism.

Description: Verifies the existing refresh token, revokes it to prevent reuse
(replay attack mitigation), and issues a fresh pair of rotated tokens.

Parameters:
  - context: context.Context
  - refreshToken: string
  - userAgent: string
  - ipAddress: string

Returns:
  - *LoginSession: New session credentials
  - err: Unauthorized or storage failures
*/
func (service *Service) RefreshSession(context context.Context, refreshToken, userAgent, ipAddress string) (*LoginSession, error) {

	// Hash the incoming refresh token to look it up
	tokenHash := sec.HashToken(refreshToken)
	session, err := service.sessionRepository.FindByTokenHash(context, tokenHash)

	// If (err != nil) the token is either expired, already revoked, or completely invalid.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	// Rotation: Revoke the old session to prevent replay attacks
	if err := service.sessionRepository.Revoke(context, session.ID); err != nil {
		return nil, fmt.Errorf("auth_service_refresh_revoke_failed: %w", err)
	}

	// Fetch the user associated with this session
	user, err := service.userRepository.FindByID(context, session.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("User not found or suspended")
	}

	return service.openSession(context, user, userAgent, ipAddress)
}

// openSession issues an access token and persists a fresh refresh session.
func (service *Service) openSession(context context.Context, user *User, userAgent, ipAddress string) (*LoginSession, error) {

	// Generate short-lived Access Token
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Username, string(user.Role), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	// Generate long-lived Refresh Token
	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	// Create and persist the tracking session
	expiresAt := time.Now().Add(RefreshTokenTTL)
	session := &Session{
		ID:        uuidv7.New(),
		UserID:    user.ID,
		TokenHash: sec.HashToken(refreshToken),
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: expiresAt,
		IsRevoked: false,
	}

	if err := service.sessionRepository.Create(context, session); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}
