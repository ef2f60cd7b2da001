// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package channel (Postgres) implements the aggregation queries for channels.

# Schema Table Mapping
  - users.account: Channel identity and media.
  - social.subscription: Subscriber/channel edges.
  - core.video: Published content counted per channel.
*/
package channel

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/platform/database/schema"
	"github.com/taibuivan/vidora/internal/platform/dberr"
)

// PostgresChannelRepository implements [ChannelRepository] using pgx.
type PostgresChannelRepository struct {
	pool *pgxpool.Pool
}

// NewChannelRepository creates a new Postgres implementation for channel reads.
func NewChannelRepository(pool *pgxpool.Pool) *PostgresChannelRepository {
	return &PostgresChannelRepository{pool: pool}
}

/*
FindProfileByUsername aggregates the channel statistics in one round trip.

Description: Correlated subqueries keep the query a single index-backed scan
per statistic instead of a wide join that would duplicate the account row.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *ChannelProfile: Aggregated channel view (IsSubscribed untouched)
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresChannelRepository) FindProfileByUsername(context context.Context, username string) (*ChannelProfile, error) {
	query := fmt.Sprintf(`
		SELECT
			a.%s, a.%s, a.%s,
			COALESCE(a.%s, ''), COALESCE(a.%s, ''),
			(SELECT COUNT(*) FROM %s s WHERE s.%s = a.%s),
			(SELECT COUNT(*) FROM %s s WHERE s.%s = a.%s),
			(SELECT COUNT(*) FROM %s v WHERE v.%s = a.%s AND v.%s),
			a.%s
		FROM %s a
		WHERE a.%s = $1 AND a.%s IS NULL`,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.FullName,
		schema.UserAccount.AvatarURL, schema.UserAccount.CoverImageURL,
		schema.SocialSubscription.Table, schema.SocialSubscription.ChannelID, schema.UserAccount.ID,
		schema.SocialSubscription.Table, schema.SocialSubscription.SubscriberID, schema.UserAccount.ID,
		schema.CoreVideo.Table, schema.CoreVideo.OwnerID, schema.UserAccount.ID, schema.CoreVideo.IsPublished,
		schema.UserAccount.CreatedAt,
		schema.UserAccount.Table,
		schema.UserAccount.Username, schema.UserAccount.DeletedAt,
	)

	profile := &ChannelProfile{}
	err := repository.pool.QueryRow(context, query, username).Scan(
		&profile.UserID,
		&profile.Username,
		&profile.FullName,
		&profile.AvatarURL,
		&profile.CoverImageURL,
		&profile.SubscriberCount,
		&profile.SubscribedToCount,
		&profile.VideoCount,
		&profile.JoinedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Channel")
		}
		return nil, fmt.Errorf("postgres_channel_repo_find_profile_failed: %w", err)
	}

	return profile, nil
}

/*
IsSubscribed checks for the existence of a subscription edge.

Parameters:
  - context: context.Context
  - subscriberID: string
  - channelID: string

Returns:
  - bool: Edge existence
  - error: Query failures
*/
func (repository *PostgresChannelRepository) IsSubscribed(context context.Context, subscriberID, channelID string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s WHERE %s = $1 AND %s = $2
		)`,
		schema.SocialSubscription.Table,
		schema.SocialSubscription.SubscriberID, schema.SocialSubscription.ChannelID,
	)

	var exists bool
	if err := repository.pool.QueryRow(context, query, subscriberID, channelID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_channel_repo_is_subscribed_failed: %w", err)
	}

	return exists, nil
}

/*
Subscribe inserts the subscription edge, ignoring duplicates.

Parameters:
  - context: context.Context
  - subscriberID: string
  - channelID: string

Returns:
  - error: Insert failures
*/
func (repository *PostgresChannelRepository) Subscribe(context context.Context, subscriberID, channelID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
		ON CONFLICT (%s, %s) DO NOTHING`,
		schema.SocialSubscription.Table,
		schema.SocialSubscription.SubscriberID, schema.SocialSubscription.ChannelID,
		schema.SocialSubscription.SubscriberID, schema.SocialSubscription.ChannelID,
	)

	if _, err := repository.pool.Exec(context, query, subscriberID, channelID); err != nil {
		if dberr.IsForeignKeyViolation(err) {
			return apperr.NotFound("Channel")
		}
		return fmt.Errorf("postgres_channel_repo_subscribe_failed: %w", err)
	}

	return nil
}

/*
Unsubscribe deletes the subscription edge if it exists.

Parameters:
  - context: context.Context
  - subscriberID: string
  - channelID: string

Returns:
  - bool: True when a row was removed
  - error: Delete failures
*/
func (repository *PostgresChannelRepository) Unsubscribe(context context.Context, subscriberID, channelID string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.SocialSubscription.Table,
		schema.SocialSubscription.SubscriberID, schema.SocialSubscription.ChannelID,
	)

	tag, err := repository.pool.Exec(context, query, subscriberID, channelID)
	if err != nil {
		return false, fmt.Errorf("postgres_channel_repo_unsubscribe_failed: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
