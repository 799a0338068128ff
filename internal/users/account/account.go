// Copyright (c) 2026 Namira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles user profile management and security settings.

It provides functionalities for users to view and update their private identity
data, rotate their password, and manage their active device sessions.

# Architecture

  - Entities: SessionInfo (DTO). The User entity is owned by the auth package.
  - Security: Provides session transparency and revocation mechanisms.
*/
package account

import (
	"context"
	"time"

	"github.com/taibuivan/namira/internal/users/auth"
)

// # Domain Entities

// SessionInfo provides a safety-mapped view of an active user session.
// It omits sensitive token hashes for transport.
type SessionInfo struct {
	ID        string    `json:"id"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	IsCurrent bool      `json:"is_current"` // True if this session belongs to the current request
}

// # Repository Contracts

// AccountRepository defines the persistence contract for user accounts.
type AccountRepository interface {
	/*
		FindByID retrieves a user record by their unique ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	/*
		Update modifies the mutable profile fields of an existing user.

		Parameters:
		  - context: context.Context
		  - user: *auth.User (Hydrated entity with changes)

		Returns:
		  - error: Storage or constraint failures
	*/
	Update(context context.Context, user *auth.User) error

	/*
		UpdatePassword replaces the stored password hash for a user.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - passwordHash: string (bcrypt hash; the plain password is never stored)

		Returns:
		  - error: Execution failures
	*/
	UpdatePassword(context context.Context, userID, passwordHash string) error

	/*
		SoftDelete flags an account as logically deleted.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Execution failures
	*/
	SoftDelete(context context.Context, id string) error
}

// SessionRepository defines the session auditing contract for the account domain.
//
// It is scoped to one user: every method takes the owning userID so a user can
// never observe or revoke another user's sessions.
type SessionRepository interface {
	/*
		FindActiveByUserID lists all live sessions belonging to the user.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - currentTokenHash: string (Hash of the requester's refresh token, marks IsCurrent)

		Returns:
		  - []SessionInfo: Active device sessions, newest first
		  - error: Retrieval failures
	*/
	FindActiveByUserID(context context.Context, userID, currentTokenHash string) ([]SessionInfo, error)

	/*
		Revoke invalidates one session, verifying it belongs to the user.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - sessionID: string

		Returns:
		  - error: Revocation failures
	*/
	Revoke(context context.Context, userID, sessionID string) error

	/*
		RevokeOthers invalidates every session of the user except the current one.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - currentTokenHash: string

		Returns:
		  - error: Revocation failures
	*/
	RevokeOthers(context context.Context, userID, currentTokenHash string) error

	/*
		RevokeAll invalidates every session of the user (global sign-out).

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Revocation failures
	*/
	RevokeAll(context context.Context, userID string) error
}
