// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user identity and session management layer.

It defines the core domain entity (User) and the logic for registration,
authentication, refresh-token rotation, and account credential changes.

# Architecture

This layer is the "Truth" of the system. The entity defined here has no
transport dependencies and encapsulates all business rules related to user
identity and the single-active-refresh-token invariant.
*/
package auth

import (
	"time"

	"github.com/taibuivan/vidora/internal/media"
	"github.com/taibuivan/vidora/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Vidora platform.
//
// # Serialization Invariant
//
// PasswordHash and RefreshTokenHash are excluded from every JSON rendering of
// a user. There is deliberately no separate "public user" DTO: the entity
// itself can never leak its secrets.
type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	FullName     string       `json:"full_name"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.UserRole `json:"role"`

	// Avatar is required at registration; CoverImage is optional.
	Avatar     media.Asset `json:"avatar"`
	CoverImage media.Asset `json:"cover_image"`

	// RefreshTokenHash is the digest of the single currently valid refresh
	// token, or "" when no session is active. Omitted for security.
	RefreshTokenHash string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TokenSubject maps the user onto the identity fields embedded in an access token.
func (user *User) TokenSubject() sec.TokenSubject {
	return sec.TokenSubject{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     string(user.Role),
	}
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldFullName        = "full_name"
	FieldLogin           = "login"
	FieldAvatar          = "avatar"
	FieldCoverImage      = "cover_image"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldAccessToken     = "access_token"
	FieldRefreshToken    = "refresh_token"
	FieldTokenType       = "token_type"
	FieldExpiresIn       = "expires_in"
	FieldUser            = "user"
	FieldMessage         = "message"
)
