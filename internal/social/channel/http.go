// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package channel

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vidora/internal/platform/middleware"
	requestutil "github.com/taibuivan/vidora/internal/platform/request"
	"github.com/taibuivan/vidora/internal/platform/respond"
)

// Handler implements the HTTP layer for channel discovery and subscriptions.
type Handler struct {
	channelService *Service
}

// NewHandler constructs a new channel [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{channelService: service}
}

// Routes returns a [chi.Router] configured with the channel endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public discovery; an authenticated viewer additionally gets IsSubscribed.
	router.Get("/{username}", handler.getProfile)

	// Protected
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/{username}/subscribe", handler.toggleSubscription)
	})

	return router
}

/*
GET /api/v1/channels/{username}.

Description: Returns the aggregated channel profile. Anonymous viewers see
IsSubscribed as false.

Response:
  - 200: ChannelProfile: Aggregated channel statistics
  - 404: ErrNotFound: Unknown channel
*/
func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	viewerID := ""
	if claims := requestutil.Claims(request); claims != nil {
		viewerID = claims.UserID
	}

	profile, err := handler.channelService.GetProfile(
		request.Context(),
		requestutil.Param(request, "username"),
		viewerID,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

/*
POST /api/v1/channels/{username}/subscribe.

Description: Toggles the authenticated viewer's subscription to the channel.

Response:
  - 200: SubscriptionState: Resulting edge state
  - 400: ErrValidation: Attempted self-subscription
  - 401: ErrUnauthorized: Authentication required
  - 404: ErrNotFound: Unknown channel
*/
func (handler *Handler) toggleSubscription(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	state, err := handler.channelService.ToggleSubscription(
		request.Context(),
		userID,
		requestutil.Param(request, "username"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, state)
}
