// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package history implements per-user watch history tracking.

Recording a watch upserts a (user, video) row so each video occupies exactly
one slot in the history, stamped with the most recent viewing time. Listing
joins the history against the video catalog and projects the channel owner
onto every entry.

# Architecture

  - Entities: VideoView (joined read model), ChannelOwner (projection).
  - Storage: PostgreSQL; paginated via COUNT(*) OVER() window totals.
*/
package history

import (
	"context"
	"time"

	"github.com/taibuivan/vidora/pkg/pagination"
)

// # Domain Entities

// ChannelOwner is the projection of the video's channel embedded in a view.
type ChannelOwner struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
}

// VideoView is one watch-history entry joined with its video and owner.
type VideoView struct {
	VideoID      string       `json:"video_id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	ThumbnailURL string       `json:"thumbnail_url"`
	Duration     int          `json:"duration"`
	ViewCount    int          `json:"view_count"`
	Owner        ChannelOwner `json:"owner"`
	WatchedAt    time.Time    `json:"watched_at"`
}

// # Repository Contracts

// HistoryRepository defines the persistence contract for watch history.
type HistoryRepository interface {
	/*
		ListByUser returns the user's history, most recently watched first.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - params: pagination.Params

		Returns:
		  - []VideoView: One page of joined history entries
		  - int: Total number of history entries for the user
		  - error: Storage failures
	*/
	ListByUser(context context.Context, userID string, params pagination.Params) ([]VideoView, int, error)

	/*
		Record upserts the (user, video) row with the current timestamp.

		Description: A video already in the history moves to the top instead
		of occupying a second slot.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - videoID: string

		Returns:
		  - error: apperr.NotFound for an unknown video, or storage failures
	*/
	Record(context context.Context, userID, videoID string) error
}
