// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/taibuivan/vidora/internal/media"
	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/platform/sec"
	"github.com/taibuivan/vidora/pkg/normalize"
	"github.com/taibuivan/vidora/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for issuing and verifying session tokens.
type TokenProvider interface {
	// IssuePair creates a signed access/refresh token pair for the subject.
	IssuePair(subject sec.TokenSubject) (sec.TokenPair, error)

	// VerifyRefreshToken checks signature and expiry of a refresh token.
	// Rotation equality against the stored digest is NOT its concern.
	VerifyRefreshToken(token string) (*sec.RefreshClaims, error)

	// RefreshTTL reports the refresh token lifetime.
	RefreshTTL() time.Duration

	// AccessTTL reports the access token lifetime.
	AccessTTL() time.Duration
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or token rotation logic must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	mediaHost      media.Host
	tokenProvider  TokenProvider
	logger         *slog.Logger
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(userRepo UserRepository, mediaHost media.Host, tokenProv TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		userRepository: userRepo,
		mediaHost:      mediaHost,
		tokenProvider:  tokenProv,
		logger:         logger,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
//
// AvatarPath and CoverImagePath are locally staged upload files; the media
// host adapter deletes them after its upload attempt, and the service removes
// them itself on any abort before the upload is reached.
type RegisterInput struct {
	Username       string
	Email          string
	Password       string
	FullName       string
	AvatarPath     string
	CoverImagePath string
}

/*
Register validates, hashes, uploads profile media for, and persists a brand
new user account.

Description: Conflict checks run before any remote upload so a duplicate
identity never spends media-host bandwidth. The avatar is mandatory: if its
upload fails the registration aborts and no user record is created. The cover
image is optional and degrades to "none" when its upload fails.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity (password/refresh digests never serialized)
  - err: ValidationError, Conflict, MissingAsset, UploadError, or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	// Any staged file not yet handed to the media host must be released on abort.
	staged := []*string{&input.AvatarPath, &input.CoverImagePath}
	defer service.discardStaged(staged)

	// Blank required fields are rejected before touching storage.
	if isBlank(input.Username) || isBlank(input.Email) || isBlank(input.Password) || isBlank(input.FullName) {
		return nil, apperr.ValidationError("All fields are required")
	}

	username := normalize.Username(input.Username)
	email := normalize.Email(input.Email)

	// Verify email uniqueness. Return a client-safe Conflict err.
	_, err := service.userRepository.FindByEmail(context, email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Verify username uniqueness. Return a client-safe Conflict err.
	_, err = service.userRepository.FindByUsername(context, username)
	if err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}

	// The avatar file is a hard requirement of registration.
	if input.AvatarPath == "" {
		return nil, apperr.MissingAsset("Avatar file is required")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Upload the mandatory avatar first; a failure aborts the registration.
	avatarPath := input.AvatarPath
	input.AvatarPath = "" // consumed by the adapter from here on
	avatar, err := service.mediaHost.Upload(context, avatarPath, media.KindImage)
	if err != nil {
		return nil, apperr.UploadFailed("Avatar upload failed", err)
	}

	// The cover image is optional: an upload failure degrades to "no cover".
	var coverImage media.Asset
	if input.CoverImagePath != "" {
		coverPath := input.CoverImagePath
		input.CoverImagePath = ""
		coverImage, err = service.mediaHost.Upload(context, coverPath, media.KindImage)
		if err != nil {
			service.logger.Warn("register_cover_upload_failed",
				slog.String("username", username),
				slog.Any("error", err),
			)
			coverImage = media.Asset{}
		}
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		FullName:     strings.TrimSpace(input.FullName),
		PasswordHash: hashedPassword,
		Role:         sec.RoleMember,
		Avatar:       avatar,
		CoverImage:   coverImage,
	}

	// Persist the user to the database
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login    string // Can be Username or Email
	Password string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

/*
Login validates user credentials and issues a rotatable token pair.

Description: Verifies identity, performs constant-time password comparison,
issues the access/refresh pair, and persists the refresh-token digest on the
user record. The digest write is not atomic with token issuance; a failure
there surfaces as an internal error and is not retried.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready session identifiers
  - err: NotFound, Unauthorized, or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	if isBlank(input.Login) || isBlank(input.Password) {
		return nil, apperr.ValidationError("Username or email and password are required")
	}

	// Flexible login: look up by Email or canonical Username
	user, err := service.userRepository.FindByEmail(context, normalize.Email(input.Login))
	if err != nil {
		user, err = service.userRepository.FindByUsername(context, normalize.Username(input.Login))
	}

	if err != nil {
		return nil, apperr.NotFound("User")
	}

	// Constant-time comparison in bcrypt prevents timing attacks.
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	return service.establishSession(context, user)
}

/*
Logout clears the user's active refresh token unconditionally.

Description: Idempotent; a user with no active session logs out successfully.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - err: Persistence failures
*/
func (service *Service) Logout(context context.Context, userID string) error {
	if err := service.userRepository.UpdateRefreshTokenHash(context, userID, ""); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}
	return nil
}

// # Session Management

/*
Refresh implements the Refresh Token Rotation mechanism.

Description: Verifies the presented refresh token's signature and expiry, then
compares its digest against the single stored value. A structurally valid
token whose digest no longer matches is treated as expired-or-reused (replay
defense). On success a fresh pair is issued and the stored digest is replaced.

Two concurrent refreshes with the same still-valid token can both pass the
equality check before either writes; this race window is accepted.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - *LoginSession: New session credentials
  - err: Unauthorized, InvalidToken, TokenExpiredOrReused, or storage failures
*/
func (service *Service) Refresh(context context.Context, refreshToken string) (*LoginSession, error) {
	if refreshToken == "" {
		return nil, apperr.Unauthorized("Missing refresh token")
	}

	// Signature + expiry only. Rotation equality comes next.
	claims, err := service.tokenProvider.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, apperr.InvalidToken("Invalid or expired refresh token")
	}

	user, err := service.userRepository.FindByID(context, claims.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("User not found or suspended")
	}

	// Single-use enforcement: the digest must match the one stored value.
	if user.RefreshTokenHash == "" || user.RefreshTokenHash != sec.DigestToken(refreshToken) {
		return nil, apperr.TokenReused("Refresh token has expired or already been used")
	}

	return service.establishSession(context, user)
}

/*
ChangePassword allows an authenticated user to update their credentials.

Parameters:
  - context: context.Context
  - userID: string
  - currentPassword: string
  - newPassword: string

Returns:
  - err: Unauthorized or storage failures
*/
func (service *Service) ChangePassword(context context.Context, userID, currentPassword, newPassword string) error {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return err
	}

	// Verify the current password before allowing change
	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_change_password_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_change_password_update_failed: %w", err)
	}

	return nil
}

// # Internal Helpers

// establishSession issues a token pair and persists the refresh digest.
// Shared by Login and Refresh so rotation always goes through one code path.
func (service *Service) establishSession(context context.Context, user *User) (*LoginSession, error) {
	pair, err := service.tokenProvider.IssuePair(user.TokenSubject())
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	// Best-effort, non-atomic with issuance: a write failure surfaces as an
	// internal error and is not retried.
	if err := service.userRepository.UpdateRefreshTokenHash(context, user.ID, sec.DigestToken(pair.RefreshToken)); err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_session_persist_failed: %w", err))
	}

	return &LoginSession{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		RefreshTokenExpiresAt: time.Now().Add(service.tokenProvider.RefreshTTL()),
		User:                  user,
	}, nil
}

// discardStaged removes any staged upload files still owned by the service.
func (service *Service) discardStaged(paths []*string) {
	for _, path := range paths {
		if path == nil || *path == "" {
			continue
		}
		if err := os.Remove(*path); err != nil && !os.IsNotExist(err) {
			service.logger.Warn("staged_upload_cleanup_failed",
				slog.String("path", *path),
				slog.Any("error", err),
			)
		}
	}
}

// isBlank reports whether a required field is empty after trimming.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
