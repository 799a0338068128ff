// Copyright (c) 2026 Namira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account provides the HTTP delivery layer for profile and session management.

# Security

All endpoints in this package require an active authentication session provided
by the RequireAuth middleware.
*/
package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/namira/internal/platform/constants"
	"github.com/taibuivan/namira/internal/platform/middleware"
	"github.com/taibuivan/namira/internal/platform/request"
	"github.com/taibuivan/namira/internal/platform/respond"
	"github.com/taibuivan/namira/internal/platform/sec"
	"github.com/taibuivan/namira/internal/platform/validate"
	"github.com/taibuivan/namira/internal/users/auth"
)

// Handler implements the HTTP layer for user account management.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the account domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	// Account Management
	router.Get("/", handler.getMe)
	router.Patch("/", handler.updateMe)
	router.Delete("/", handler.deleteMe)
	router.Put("/password", handler.changePassword)

	// Session Security
	router.Get("/sessions", handler.listSessions)
	router.Delete("/sessions", handler.revokeOtherSessions)
	router.Delete("/sessions/{id}", handler.revokeSession)

	return router
}

// # User Profile Endpoints

/*
GET /api/v1/me.

Description: Retrieves the full private profile of the authenticated user.

Response:
  - 200: User: Fully hydrated user profile
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getMe(writer http.ResponseWriter, httpRequest *http.Request) {
	claims, err := request.RequiredClaims(httpRequest)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	user, err := handler.accountService.GetProfile(httpRequest.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, user)
}

// updateMeRequest defines the expected JSON payload for profile updates.
type updateMeRequest struct {
	DisplayName *string `json:"display_name"`
}

/*
PATCH /api/v1/me.

Description: Applies partial updates to the authenticated user's profile.

Request:
  - body: updateMeRequest (Partial JSON)

Response:
  - 200: User: The updated profile
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, httpRequest *http.Request) {
	claims, err := request.RequiredClaims(httpRequest)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	var input updateMeRequest
	if err := request.DecodeJSON(httpRequest, &input); err != nil {
		respond.Error(writer, httpRequest, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.DisplayName != nil {
		validator.MaxLen(auth.FieldDisplayName, *input.DisplayName, 64)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	user, err := handler.accountService.UpdateProfile(httpRequest.Context(), claims.UserID, UpdateProfileInput{
		DisplayName: input.DisplayName,
	})
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, user)
}

// changePasswordRequest defines the payload for password rotation.
type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

/*
PUT /api/v1/me/password.

Description: Rotates the account password. Every other session is revoked on
success; the requester's session stays alive.

Request:
  - body: changePasswordRequest

Response:
  - 204: No Content: Password rotated
  - 401: ErrUnauthorized: Current password incorrect
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, httpRequest *http.Request) {
	claims, err := request.RequiredClaims(httpRequest)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	var input changePasswordRequest
	if err := request.DecodeJSON(httpRequest, &input); err != nil {
		respond.Error(writer, httpRequest, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required("current_password", input.CurrentPassword).
		Required("new_password", input.NewPassword).
		MinLen("new_password", input.NewPassword, 8)
	if err := validator.Err(); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	err = handler.accountService.ChangePassword(
		httpRequest.Context(),
		claims.UserID,
		input.CurrentPassword,
		input.NewPassword,
		currentTokenHash(httpRequest),
	)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.NoContent(writer)
}

/*
DELETE /api/v1/me.

Description: Soft-deletes the authenticated account and signs out every device.

Response:
  - 204: No Content: Account removed
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) deleteMe(writer http.ResponseWriter, httpRequest *http.Request) {
	claims, err := request.RequiredClaims(httpRequest)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	if err := handler.accountService.DeleteAccount(httpRequest.Context(), claims.UserID); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.NoContent(writer)
}

// # Session Security Endpoints

/*
GET /api/v1/me/sessions.

Description: Enumerates all devices currently authenticated into the user's account.

Response:
  - 200: []SessionInfo: List of active device sessions
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) listSessions(writer http.ResponseWriter, httpRequest *http.Request) {
	claims, err := request.RequiredClaims(httpRequest)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	sessions, err := handler.accountService.ListSessions(httpRequest.Context(), claims.UserID, currentTokenHash(httpRequest))
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, sessions)
}

/*
DELETE /api/v1/me/sessions/{id}.

Description: Forces a sign-out on a specific device identified by its session ID.

Request:
  - id: string (Session UUID)

Response:
  - 204: No Content: Session terminated successfully
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) revokeSession(writer http.ResponseWriter, httpRequest *http.Request) {
	claims, err := request.RequiredClaims(httpRequest)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	sessionID := chi.URLParam(httpRequest, "id")

	if err := handler.accountService.RevokeSession(httpRequest.Context(), claims.UserID, sessionID); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.NoContent(writer)
}

/*
DELETE /api/v1/me/sessions.

Description: Forces a sign-out on all devices except the one making the request.

Response:
  - 204: No Content: All other sessions terminated
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) revokeOtherSessions(writer http.ResponseWriter, httpRequest *http.Request) {
	claims, err := request.RequiredClaims(httpRequest)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	if err := handler.accountService.RevokeOtherSessions(httpRequest.Context(), claims.UserID, currentTokenHash(httpRequest)); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.NoContent(writer)
}

// currentTokenHash identifies the requester's session by its refresh token
// cookie. Empty when the cookie is absent; no other session can match "".
func currentTokenHash(httpRequest *http.Request) string {
	cookie, err := httpRequest.Cookie(constants.RefreshTokenCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	return sec.HashToken(cookie.Value)
}
