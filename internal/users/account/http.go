// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account provides the HTTP delivery layer for profile management.

It implements the RESTful interface for users to interact with their account
data and profile media.

# Security

All endpoints in this package require an active authentication session
provided by the RequireAuth middleware.
*/
package account

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vidora/internal/platform/constants"
	requestutil "github.com/taibuivan/vidora/internal/platform/request"
	"github.com/taibuivan/vidora/internal/platform/respond"
	"github.com/taibuivan/vidora/internal/platform/validate"
	"github.com/taibuivan/vidora/internal/users/auth"
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

	// Account Management
	router.Get("/me", handler.getMe)
	router.Patch("/me", handler.updateMe)

	// Profile Media
	router.Patch("/me/avatar", handler.updateAvatar)
	router.Patch("/me/cover", handler.updateCoverImage)

	return router
}

// # User Profile Endpoints

/*
GET /api/v1/users/me.

Description: Retrieves the full private profile of the authenticated user.

Response:
  - 200: User: Fully hydrated user profile
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// updateMeRequest defines the expected JSON payload for profile updates.
type updateMeRequest struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
}

/*
PATCH /api/v1/users/me.

Description: Applies partial updates to the authenticated user's profile.
Absent fields are left unchanged.

Request:
  - body: updateMeRequest (Partial JSON)

Response:
  - 200: User: The updated profile
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: ErrUnauthorized: Authentication required
  - 409: ErrConflict: Email belongs to another account
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateMeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Email != nil {
		validator.Required(auth.FieldEmail, *input.Email).Email(auth.FieldEmail, *input.Email)
	}
	if input.FullName != nil {
		validator.Required(auth.FieldFullName, *input.FullName)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateDetails(request.Context(), userID, UpdateDetailsInput{
		FullName: input.FullName,
		Email:    input.Email,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// # Profile Media Endpoints

/*
PATCH /api/v1/users/me/avatar.

Description: Replaces the authenticated user's avatar with the uploaded
image. The superseded asset is removed from the media host afterwards.

Request:
  - Form file: avatar (required)

Response:
  - 200: User: Profile with the new avatar linked
  - 400: ErrMissingAsset: No file in the request
  - 401: ErrUnauthorized: Authentication required
  - 502: ErrUploadFailed: Media host rejected the image
*/
func (handler *Handler) updateAvatar(writer http.ResponseWriter, request *http.Request) {
	handler.swapAsset(writer, request, constants.UploadFieldAvatar, handler.accountService.UpdateAvatar)
}

/*
PATCH /api/v1/users/me/cover.

Description: Replaces the authenticated user's channel cover with the
uploaded image. Same swap semantics as the avatar endpoint.

Request:
  - Form file: coverImage (required)

Response:
  - 200: User: Profile with the new cover linked
  - 400: ErrMissingAsset: No file in the request
  - 401: ErrUnauthorized: Authentication required
  - 502: ErrUploadFailed: Media host rejected the image
*/
func (handler *Handler) updateCoverImage(writer http.ResponseWriter, request *http.Request) {
	handler.swapAsset(writer, request, constants.UploadFieldCoverImage, handler.accountService.UpdateCoverImage)
}

// swapAsset stages the uploaded file and routes it to the given service swap.
func (handler *Handler) swapAsset(
	writer http.ResponseWriter,
	request *http.Request,
	field string,
	swap func(ctx context.Context, userID, localPath string) (*auth.User, error),
) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	localPath, err := requestutil.FormFilePath(request, field)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := swap(request.Context(), userID, localPath)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
