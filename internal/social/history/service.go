// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package history

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/pkg/pagination"
)

// # Service Layer

// Service orchestrates watch-history reads and writes.
type Service struct {
	historyRepository HistoryRepository
	logger            *slog.Logger
}

// NewService constructs a new history [Service].
func NewService(historyRepo HistoryRepository, logger *slog.Logger) *Service {
	return &Service{
		historyRepository: historyRepo,
		logger:            logger,
	}
}

/*
ListHistory returns one page of the user's watch history, newest first.

Parameters:
  - context: context.Context
  - userID: string
  - params: pagination.Params

Returns:
  - []VideoView: Joined history entries
  - pagination.Meta: Page metadata
  - error: Retrieval failures
*/
func (service *Service) ListHistory(context context.Context, userID string, params pagination.Params) ([]VideoView, pagination.Meta, error) {
	views, total, err := service.historyRepository.ListByUser(context, userID, params)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("history_service_list_failed: %w", err)
	}

	return views, pagination.NewMeta(params.Page, params.Limit, total), nil
}

/*
RecordWatch stamps a video into the user's history.

Description: Re-watching moves the entry to the top of the history instead
of duplicating it.

Parameters:
  - context: context.Context
  - userID: string
  - videoID: string

Returns:
  - error: ValidationError, NotFound, or storage failures
*/
func (service *Service) RecordWatch(context context.Context, userID, videoID string) error {
	if videoID == "" {
		return apperr.ValidationError("Video ID is required")
	}

	if err := service.historyRepository.Record(context, userID, videoID); err != nil {
		return err
	}

	service.logger.Debug("watch_recorded",
		slog.String("user_id", userID),
		slog.String("video_id", videoID),
	)

	return nil
}
