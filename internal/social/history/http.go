// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package history

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vidora/internal/platform/middleware"
	requestutil "github.com/taibuivan/vidora/internal/platform/request"
	"github.com/taibuivan/vidora/internal/platform/respond"
	"github.com/taibuivan/vidora/pkg/pagination"
)

// Handler implements the HTTP layer for watch history.
type Handler struct {
	historyService *Service
}

// NewHandler constructs a new history [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{historyService: service}
}

// Routes returns a [chi.Router] configured with the history endpoints.
//
// All history endpoints are private to the authenticated user.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)
	router.Get("/", handler.listHistory)
	router.Post("/{videoID}", handler.recordWatch)

	return router
}

/*
GET /api/v1/history.

Description: Lists the authenticated user's watch history, most recently
watched first, with standard page/limit parameters.

Response:
  - 200: []VideoView with pagination metadata
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) listHistory(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	views, meta, err := handler.historyService.ListHistory(request.Context(), userID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, views, meta)
}

/*
POST /api/v1/history/{videoID}.

Description: Records that the authenticated user watched a video. Repeat
watches refresh the entry's position instead of duplicating it.

Response:
  - 204: No Content: Watch recorded
  - 401: ErrUnauthorized: Authentication required
  - 404: ErrNotFound: Unknown video
*/
func (handler *Handler) recordWatch(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.historyService.RecordWatch(
		request.Context(),
		userID,
		requestutil.Param(request, "videoID"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
