// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth provides the HTTP delivery layer for user identity management.

It implements the gateway for the session lifecycle—from account creation
with profile media to token rotation and sign-out.

# Architecture

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: RESTful JSON, plus multipart form data on registration.
  - Security: Handles JWT orchestration and session cookie injection.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/
package auth

import (
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vidora/internal/platform/constants"
	"github.com/taibuivan/vidora/internal/platform/middleware"
	requestutil "github.com/taibuivan/vidora/internal/platform/request"
	"github.com/taibuivan/vidora/internal/platform/respond"
	"github.com/taibuivan/vidora/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages everything related to the session lifecycle entry
// points (Registration, Login, Refresh, Logout, Password change).
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register : Creates a new account (multipart).
//   - POST /login    : Authenticates and returns a JWT pair.
//   - POST /refresh  : Rotates the refresh token.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/logout", handler.logout)
		r.Post("/change-password", handler.changePassword)
	})

	return router
}

// # Request Payloads

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

/*
Register handles the creation of a new user account.

POST /api/v1/auth/register

Description: Accepts a multipart form carrying the profile fields plus the
mandatory avatar file and an optional cover image, stages the files locally,
and delegates to the service which enforces conflicts and uploads the media.

Request:
  - Form fields: username, email, password, full_name
  - Form files: avatar (required), coverImage (optional)

Response:
  - 201: User: Created user profile
  - 400: ErrValidation: Bad input or missing avatar file
  - 409: ErrConflict: Username or Email already exists
  - 502: ErrUploadFailed: Media host rejected the avatar
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	input := RegisterInput{
		Username: request.FormValue(FieldUsername),
		Email:    request.FormValue(FieldEmail),
		Password: request.FormValue(FieldPassword),
		FullName: request.FormValue(FieldFullName),
	}

	// Validate the plain fields before staging any file, so a rejected
	// request never leaves an orphaned temp file behind.
	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, 3).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, 8).
		Required(FieldFullName, input.FullName)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	avatarPath, err := requestutil.FormFilePath(request, constants.UploadFieldAvatar)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	coverPath, err := requestutil.FormFilePath(request, constants.UploadFieldCoverImage)
	if err != nil {
		if avatarPath != "" {
			_ = os.Remove(avatarPath)
		}
		respond.Error(writer, request, err)
		return
	}

	input.AvatarPath = avatarPath
	input.CoverImagePath = coverPath

	user, err := handler.authService.Register(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
Login authenticates a user and establishes a session.

POST /api/v1/auth/login

Description: Verifies credentials, generates a JWT pair, and injects the
secure session cookies into the response. The tokens are also echoed in the
body for non-browser clients.

Request:
  - Body: loginRequest (Login, Password)

Response:
  - 200: Session: Token pair and User profile
  - 401: ErrUnauthorized: Invalid credentials
  - 404: ErrNotFound: Unknown identity
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldLogin, input.Login)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Login:    input.Login,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookies(writer, session)

	respond.OK(writer, map[string]any{
		FieldAccessToken:  session.AccessToken,
		FieldRefreshToken: session.RefreshToken,
		FieldUser:         session.User,
	})
}

/*
Logout terminates the current user session.

POST /api/v1/auth/logout

Description: Clears the stored refresh token of the authenticated user and
expires the security cookies on the client. Idempotent.

Response:
  - 204: No Content: Session terminated
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.Logout(request.Context(), claims.UserID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.clearSessionCookies(writer)
	respond.NoContent(writer)
}

/*
Refresh issues a new token pair using a valid refresh token.

POST /api/v1/auth/refresh

Description: Rotates the session. The incoming token is read from the
refresh cookie first, then from the JSON body for non-browser clients. A
replayed or superseded token terminates with 401.

Request:
  - Cookie: refreshToken, or Body: refreshRequest (RefreshToken)

Response:
  - 200: Session: Fresh token pair
  - 401: ErrTokenReused: Missing, invalid, expired, or already rotated token
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	refreshToken := ""
	if cookie, err := request.Cookie(constants.RefreshTokenCookieName); err == nil {
		refreshToken = cookie.Value
	}

	if refreshToken == "" {
		var input refreshRequest
		if err := requestutil.DecodeJSON(request, &input); err == nil {
			refreshToken = input.RefreshToken
		}
	}

	session, err := handler.authService.Refresh(request.Context(), refreshToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookies(writer, session)

	respond.OK(writer, map[string]any{
		FieldAccessToken:  session.AccessToken,
		FieldRefreshToken: session.RefreshToken,
		FieldTokenType:    "Bearer",
		FieldExpiresIn:    int(handler.authService.tokenProvider.AccessTTL() / time.Second),
	})
}

/*
ChangePassword updates the authenticated user's password.

POST /api/v1/auth/change-password

Description: Verifies the current password before applying a new one.

Request:
  - Body: changePasswordRequest (CurrentPassword, NewPassword)

Response:
  - 200: Success: Password changed
  - 401: ErrUnauthorized: Wrong current password or session invalid
  - 400: ErrValidation: Weak password or validation failure
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldCurrentPassword, input.CurrentPassword).
		Required(FieldNewPassword, input.NewPassword).
		MinLen(FieldNewPassword, input.NewPassword, 8)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.authService.ChangePassword(
		request.Context(),
		claims.UserID,
		input.CurrentPassword,
		input.NewPassword,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Password changed successfully",
	})
}

// # Cookie Helpers

// setSessionCookies attaches both session cookies to the response.
func (handler *Handler) setSessionCookies(writer http.ResponseWriter, session *LoginSession) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.AccessTokenCookieName,
		Value:    session.AccessToken,
		Path:     constants.AccessTokenCookiePath,
		Expires:  time.Now().Add(handler.authService.tokenProvider.AccessTTL()),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    session.RefreshToken,
		Path:     constants.RefreshTokenCookiePath,
		Expires:  session.RefreshTokenExpiresAt,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearSessionCookies expires both session cookies on the client.
func (handler *Handler) clearSessionCookies(writer http.ResponseWriter) {
	for name, path := range map[string]string{
		constants.AccessTokenCookieName:  constants.AccessTokenCookiePath,
		constants.RefreshTokenCookieName: constants.RefreshTokenCookiePath,
	} {
		http.SetCookie(writer, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     path,
			MaxAge:   -1,
			Secure:   true,
			HttpOnly: true,
			SameSite: http.SameSiteStrictMode,
		})
	}
}
