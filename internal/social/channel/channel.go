// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package channel implements the public channel surface of the platform.

Every user account doubles as a channel. This package aggregates the
channel-facing view of an account (identity, media, audience statistics)
and manages the subscription edges between viewers and channels.

# Architecture

  - Entities: ChannelProfile (aggregated read model).
  - Storage: PostgreSQL joins over users.account and social.subscription,
    fronted by a short-lived Redis cache for the viewer-independent part.
  - Security: Subscribing requires authentication; profile reads do not.
*/
package channel

import (
	"context"
	"time"
)

// # Domain Entities

// ChannelProfile is the aggregated public view of a user's channel.
//
// IsSubscribed is viewer-specific and therefore resolved per request; it is
// never part of the cached representation.
type ChannelProfile struct {
	UserID            string    `json:"user_id"`
	Username          string    `json:"username"`
	FullName          string    `json:"full_name"`
	AvatarURL         string    `json:"avatar_url"`
	CoverImageURL     string    `json:"cover_image_url"`
	SubscriberCount   int       `json:"subscriber_count"`
	SubscribedToCount int       `json:"subscribed_to_count"`
	VideoCount        int       `json:"video_count"`
	JoinedAt          time.Time `json:"joined_at"`
	IsSubscribed      bool      `json:"is_subscribed"`
}

// SubscriptionState reports the outcome of a toggle operation.
type SubscriptionState struct {
	ChannelID  string `json:"channel_id"`
	Subscribed bool   `json:"subscribed"`
}

// # Repository Contracts

// ChannelRepository defines the read contract for channel aggregation.
type ChannelRepository interface {
	/*
		FindProfileByUsername aggregates the channel view of an account.

		Description: Counts subscribers, subscriptions, and published videos
		in a single round trip. IsSubscribed is left at its zero value.

		Parameters:
		  - context: context.Context
		  - username: string (canonical form)

		Returns:
		  - *ChannelProfile: Aggregated channel statistics
		  - error: apperr.NotFound or storage failures
	*/
	FindProfileByUsername(context context.Context, username string) (*ChannelProfile, error)

	/*
		IsSubscribed reports whether a subscription edge exists.

		Parameters:
		  - context: context.Context
		  - subscriberID: string
		  - channelID: string

		Returns:
		  - bool: True when the viewer subscribes to the channel
		  - error: Storage failures
	*/
	IsSubscribed(context context.Context, subscriberID, channelID string) (bool, error)

	/*
		Subscribe creates the subscription edge. Idempotent.

		Parameters:
		  - context: context.Context
		  - subscriberID: string
		  - channelID: string

		Returns:
		  - error: Storage failures
	*/
	Subscribe(context context.Context, subscriberID, channelID string) error

	/*
		Unsubscribe removes the subscription edge if present.

		Parameters:
		  - context: context.Context
		  - subscriberID: string
		  - channelID: string

		Returns:
		  - bool: True when an edge was actually removed
		  - error: Storage failures
	*/
	Unsubscribe(context context.Context, subscriberID, channelID string) (bool, error)
}

// ProfileCache defines the short-lived cache for viewer-independent profiles.
type ProfileCache interface {
	// Get returns the cached profile or apperr.NotFound on a miss.
	Get(context context.Context, username string) (*ChannelProfile, error)

	// Set stores the profile under its canonical username.
	Set(context context.Context, profile *ChannelProfile) error

	// Invalidate drops the cached entry for a username. Missing keys are fine.
	Invalidate(context context.Context, username string) error
}
