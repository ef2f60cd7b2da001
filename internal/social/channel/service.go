// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package channel

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/pkg/normalize"
)

// # Service Layer

// Service orchestrates channel profile reads and subscription toggles.
type Service struct {
	channelRepository ChannelRepository
	profileCache      ProfileCache
	logger            *slog.Logger
}

// NewService constructs a new channel [Service].
func NewService(channelRepo ChannelRepository, profileCache ProfileCache, logger *slog.Logger) *Service {
	return &Service{
		channelRepository: channelRepo,
		profileCache:      profileCache,
		logger:            logger,
	}
}

// # Channel Profiles

/*
GetProfile returns the aggregated channel view for a username.

Description: The viewer-independent aggregate is served from the cache when
fresh and recomputed otherwise. When viewerID is non-empty the IsSubscribed
flag is resolved against live data on every call; it never enters the cache.

Parameters:
  - context: context.Context
  - username: string (any casing; canonicalized here)
  - viewerID: string (empty for anonymous requests)

Returns:
  - *ChannelProfile: Channel statistics with the viewer flag resolved
  - error: apperr.NotFound or storage failures
*/
func (service *Service) GetProfile(context context.Context, username, viewerID string) (*ChannelProfile, error) {
	canonical := normalize.Username(username)
	if canonical == "" {
		return nil, apperr.ValidationError("Username is required")
	}

	profile, err := service.profileCache.Get(context, canonical)
	if err != nil {
		// Cache connectivity trouble degrades to a database read.
		if !apperr.IsNotFound(err) {
			service.logger.Warn("channel_profile_cache_read_failed",
				slog.String("username", canonical),
				slog.Any("error", err),
			)
		}

		profile, err = service.channelRepository.FindProfileByUsername(context, canonical)
		if err != nil {
			return nil, err
		}

		if cacheErr := service.profileCache.Set(context, profile); cacheErr != nil {
			service.logger.Warn("channel_profile_cache_write_failed",
				slog.String("username", canonical),
				slog.Any("error", cacheErr),
			)
		}
	}

	if viewerID != "" && viewerID != profile.UserID {
		subscribed, err := service.channelRepository.IsSubscribed(context, viewerID, profile.UserID)
		if err != nil {
			return nil, fmt.Errorf("channel_service_viewer_flag_failed: %w", err)
		}
		profile.IsSubscribed = subscribed
	}

	return profile, nil
}

// # Subscriptions

/*
ToggleSubscription flips the viewer's subscription to a channel.

Description: An existing edge is removed, a missing one is created.
Subscribing to one's own channel is rejected. The cached aggregate of the
target channel is invalidated so its subscriber count refreshes promptly.

Parameters:
  - context: context.Context
  - viewerID: string
  - username: string (target channel)

Returns:
  - *SubscriptionState: Resulting edge state
  - error: ValidationError, NotFound, or storage failures
*/
func (service *Service) ToggleSubscription(context context.Context, viewerID, username string) (*SubscriptionState, error) {
	canonical := normalize.Username(username)

	target, err := service.channelRepository.FindProfileByUsername(context, canonical)
	if err != nil {
		return nil, err
	}

	if target.UserID == viewerID {
		return nil, apperr.ValidationError("You cannot subscribe to your own channel")
	}

	removed, err := service.channelRepository.Unsubscribe(context, viewerID, target.UserID)
	if err != nil {
		return nil, fmt.Errorf("channel_service_toggle_failed: %w", err)
	}

	subscribed := false
	if !removed {
		if err := service.channelRepository.Subscribe(context, viewerID, target.UserID); err != nil {
			return nil, fmt.Errorf("channel_service_toggle_failed: %w", err)
		}
		subscribed = true
	}

	// Drop the stale aggregate; the next read recomputes the counts.
	if err := service.profileCache.Invalidate(context, canonical); err != nil {
		service.logger.Warn("channel_profile_cache_invalidate_failed",
			slog.String("username", canonical),
			slog.Any("error", err),
		)
	}

	service.logger.Info("subscription_toggled",
		slog.String("viewer_id", viewerID),
		slog.String("channel_id", target.UserID),
		slog.Bool("subscribed", subscribed),
	)

	return &SubscriptionState{ChannelID: target.UserID, Subscribed: subscribed}, nil
}
