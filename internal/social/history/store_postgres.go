// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package history (Postgres) implements the watch-history storage layer.

# Schema Table Mapping
  - library.watchhistory: (user, video) watch rows.
  - core.video: Joined for title, thumbnail, and counters.
  - users.account: Joined for the channel owner projection.
*/
package history

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/platform/database/schema"
	"github.com/taibuivan/vidora/internal/platform/dberr"
	"github.com/taibuivan/vidora/pkg/pagination"
)

// PostgresHistoryRepository implements [HistoryRepository] using pgx.
type PostgresHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewHistoryRepository creates a new Postgres implementation for watch history.
func NewHistoryRepository(pool *pgxpool.Pool) *PostgresHistoryRepository {
	return &PostgresHistoryRepository{pool: pool}
}

/*
ListByUser pages through the user's history, newest watch first.

Description: A window function delivers the total row count alongside the
page so no second COUNT query is needed.

Parameters:
  - context: context.Context
  - userID: string
  - params: pagination.Params

Returns:
  - []VideoView: Joined history entries
  - int: Total entries for the user
  - error: Query failures
*/
func (repository *PostgresHistoryRepository) ListByUser(context context.Context, userID string, params pagination.Params) ([]VideoView, int, error) {
	query := fmt.Sprintf(`
		SELECT
			v.%s, v.%s, v.%s, COALESCE(v.%s, ''), v.%s, v.%s,
			a.%s, a.%s, a.%s, COALESCE(a.%s, ''),
			h.%s,
			COUNT(*) OVER() AS total_count
		FROM %s h
		JOIN %s v ON v.%s = h.%s
		JOIN %s a ON a.%s = v.%s
		WHERE h.%s = $1 AND v.%s
		ORDER BY h.%s DESC
		LIMIT $2 OFFSET $3`,
		schema.CoreVideo.ID, schema.CoreVideo.Title, schema.CoreVideo.Description,
		schema.CoreVideo.ThumbnailURL, schema.CoreVideo.Duration, schema.CoreVideo.ViewCount,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.FullName,
		schema.UserAccount.AvatarURL,
		schema.LibraryWatchHistory.WatchedAt,
		schema.LibraryWatchHistory.Table,
		schema.CoreVideo.Table, schema.CoreVideo.ID, schema.LibraryWatchHistory.VideoID,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.CoreVideo.OwnerID,
		schema.LibraryWatchHistory.UserID, schema.CoreVideo.IsPublished,
		schema.LibraryWatchHistory.WatchedAt,
	)

	rows, err := repository.pool.Query(context, query, userID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_history_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var views []VideoView
	total := 0
	for rows.Next() {
		var view VideoView
		if err := rows.Scan(
			&view.VideoID,
			&view.Title,
			&view.Description,
			&view.ThumbnailURL,
			&view.Duration,
			&view.ViewCount,
			&view.Owner.UserID,
			&view.Owner.Username,
			&view.Owner.FullName,
			&view.Owner.AvatarURL,
			&view.WatchedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_history_repo_scan_failed: %w", err)
		}
		views = append(views, view)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_history_repo_rows_failed: %w", err)
	}

	return views, total, nil
}

/*
Record upserts the watch row, refreshing the timestamp on conflict.

Parameters:
  - context: context.Context
  - userID: string
  - videoID: string

Returns:
  - error: apperr.NotFound for an unknown video, or execution failures
*/
func (repository *PostgresHistoryRepository) Record(context context.Context, userID, videoID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, NOW())
		ON CONFLICT (%s, %s) DO UPDATE SET %s = NOW()`,
		schema.LibraryWatchHistory.Table,
		schema.LibraryWatchHistory.UserID, schema.LibraryWatchHistory.VideoID,
		schema.LibraryWatchHistory.WatchedAt,
		schema.LibraryWatchHistory.UserID, schema.LibraryWatchHistory.VideoID,
		schema.LibraryWatchHistory.WatchedAt,
	)

	if _, err := repository.pool.Exec(context, query, userID, videoID); err != nil {
		if dberr.IsForeignKeyViolation(err) {
			return apperr.NotFound("Video")
		}
		return fmt.Errorf("postgres_history_repo_record_failed: %w", err)
	}

	return nil
}
