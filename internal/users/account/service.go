// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/taibuivan/vidora/internal/media"
	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/users/auth"
	"github.com/taibuivan/vidora/pkg/normalize"
)

// # Service Layer

// Service orchestrates business logic for user profiles and their media.
//
// It ensures that profile updates and media swaps follow established
// business constraints, in particular that a superseded media asset is
// removed from the host only after its replacement is fully persisted.
type Service struct {
	accountRepository AccountRepository
	mediaHost         media.Host
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(accountRepo AccountRepository, mediaHost media.Host, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: accountRepo,
		mediaHost:         mediaHost,
		logger:            logger,
	}
}

// # Profile Management

/*
GetProfile retrieves the full private identity of a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: The hydrated user profile
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_profile_failed: %w", err)
	}
	return user, nil
}

// UpdateDetailsInput defines the mutable textual subset of profile fields.
// Nil pointers mean "leave unchanged".
type UpdateDetailsInput struct {
	FullName *string
	Email    *string
}

/*
UpdateDetails applies a partial set of changes to a user's account metadata.

Description: Fetches the existing user state, overrides provided fields, and
synchronizes the change to persistent storage. A provided field may not be
blank; email is canonicalized before the write.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateDetailsInput

Returns:
  - *auth.User: The updated user profile
  - error: ValidationError, Conflict, or storage failures
*/
func (service *Service) UpdateDetails(context context.Context, userID string, input UpdateDetailsInput) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_update_lookup_failed: %w", err)
	}

	// Apply delta updates
	if input.FullName != nil {
		fullName := strings.TrimSpace(*input.FullName)
		if fullName == "" {
			return nil, apperr.ValidationError("Full name may not be blank")
		}
		user.FullName = fullName
	}

	// Apply delta updates
	if input.Email != nil {
		email := normalize.Email(*input.Email)
		if email == "" {
			return nil, apperr.ValidationError("Email may not be blank")
		}
		user.Email = email
	}

	// Persist changes
	if err := service.accountRepository.UpdateDetails(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_profile_updated", slog.String("user_id", userID))

	return user, nil
}

// # Profile Media

/*
UpdateAvatar replaces the user's avatar with a freshly uploaded asset.

Description: Uploads the staged file first, swaps the stored identifier and
URL only after the upload succeeds, and finally removes the superseded asset
from the media host. The cleanup runs only when the stored identifier
actually changed and its failure never fails the request.

Parameters:
  - context: context.Context
  - userID: string
  - localPath: string (Staged upload file; consumed by the adapter)

Returns:
  - *auth.User: The profile with the new avatar linked
  - error: MissingAsset, UploadError, or storage failures
*/
func (service *Service) UpdateAvatar(context context.Context, userID, localPath string) (*auth.User, error) {
	return service.swapAsset(context, userID, localPath, assetSlotAvatar)
}

/*
UpdateCoverImage replaces the user's channel cover with a fresh upload.

Description: Same upload-then-swap-then-cleanup sequence as UpdateAvatar,
applied to the cover image slot.

Parameters:
  - context: context.Context
  - userID: string
  - localPath: string (Staged upload file; consumed by the adapter)

Returns:
  - *auth.User: The profile with the new cover linked
  - error: MissingAsset, UploadError, or storage failures
*/
func (service *Service) UpdateCoverImage(context context.Context, userID, localPath string) (*auth.User, error) {
	return service.swapAsset(context, userID, localPath, assetSlotCover)
}

// # Internal Helpers

// assetSlot selects which media slot of the profile a swap targets.
type assetSlot int

const (
	assetSlotAvatar assetSlot = iota
	assetSlotCover
)

// swapAsset is the single code path for both media slots so the
// upload-before-swap and cleanup-after-persist ordering cannot diverge.
func (service *Service) swapAsset(context context.Context, userID, localPath string, slot assetSlot) (*auth.User, error) {
	if localPath == "" {
		return nil, apperr.MissingAsset("Image file is required")
	}

	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		// The staged file is still service-owned on this abort path.
		service.discardStaged(localPath)
		return nil, fmt.Errorf("account_service_swap_lookup_failed: %w", err)
	}

	uploaded, err := service.mediaHost.Upload(context, localPath, media.KindImage)
	if err != nil {
		return nil, apperr.UploadFailed("Image upload failed", err)
	}

	var previous media.Asset
	switch slot {
	case assetSlotAvatar:
		previous = user.Avatar
		user.Avatar = uploaded
		err = service.accountRepository.UpdateAvatar(context, user)
	case assetSlotCover:
		previous = user.CoverImage
		user.CoverImage = uploaded
		err = service.accountRepository.UpdateCoverImage(context, user)
	}

	if err != nil {
		return nil, fmt.Errorf("account_service_swap_persist_failed: %w", err)
	}

	// Remove the superseded asset only when the stored identifier actually
	// changed. Failures are logged and swallowed: the profile already points
	// at the new asset and a stale object on the host is harmless.
	if !previous.IsZero() && previous.ID != uploaded.ID {
		if err := service.mediaHost.Delete(context, previous.ID, media.KindImage); err != nil {
			service.logger.Warn("stale_asset_cleanup_failed",
				slog.String("user_id", userID),
				slog.String("asset_id", previous.ID),
				slog.Any("error", err),
			)
		}
	}

	service.logger.Info("user_media_updated",
		slog.String("user_id", userID),
		slog.String("asset_id", uploaded.ID),
	)

	return user, nil
}

// discardStaged removes a staged upload file the adapter never consumed.
func (service *Service) discardStaged(localPath string) {
	if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
		service.logger.Warn("staged_upload_cleanup_failed",
			slog.String("path", localPath),
			slog.Any("error", err),
		)
	}
}
