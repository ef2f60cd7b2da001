// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles authenticated user profile management.

It provides functionalities for users to view and update their private
identity data and to replace their profile media (avatar, channel cover)
hosted on the external media service.

# Architecture

  - Domain: This package depends on the auth package for the User entity.
  - Media: Asset swaps route through the media.Host adapter; superseded
    assets are removed from the host on a best-effort basis.
*/
package account

import (
	"context"

	"github.com/taibuivan/vidora/internal/users/auth"
)

// # Repository Contracts

// AccountRepository defines the persistence contract for user accounts.
type AccountRepository interface {
	/*
		FindByID retrieves a user record by their unique ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	/*
		UpdateDetails modifies the textual profile fields of an existing user.

		Description: Writes FullName and Email. An email collision with
		another account surfaces as apperr.Conflict.

		Parameters:
		  - context: context.Context
		  - user: *User (Hydrated entity with changes)

		Returns:
		  - error: apperr.Conflict or storage failures
	*/
	UpdateDetails(context context.Context, user *auth.User) error

	/*
		UpdateAvatar replaces the stored avatar identifier and URL.

		Parameters:
		  - context: context.Context
		  - user: *User (Avatar fields already swapped)

		Returns:
		  - error: Storage failures
	*/
	UpdateAvatar(context context.Context, user *auth.User) error

	/*
		UpdateCoverImage replaces the stored cover image identifier and URL.

		Parameters:
		  - context: context.Context
		  - user: *User (CoverImage fields already swapped)

		Returns:
		  - error: Storage failures
	*/
	UpdateCoverImage(context context.Context, user *auth.User) error
}
