// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via the [TokenProvider] interface defined by the auth domain.
package sec

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taibuivan/vidora/pkg/uuid"
)

// AuthClaims represents the payload embedded inside a JWT Access Token.
//
// # Why custom claims?
//
// By embedding the UserID and minimal profile fields directly inside the JWT,
// the [middleware.Authenticate] can reconstruct the active user context
// WITHOUT querying the database on every single API request. This provides
// massive read-scalability.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the JWT payload small.
	UserID   string `json:"uid"`
	Username string `json:"unm"`
	Email    string `json:"eml"`
	FullName string `json:"fnm"`
	Role     string `json:"rol"`
}

// RefreshClaims is the minimal payload of a JWT Refresh Token.
//
// # Security
//
// The refresh token deliberately carries only the user identifier. Profile
// data would go stale over its long lifetime and widen the blast radius of a
// leaked token.
type RefreshClaims struct {
	jwt.RegisteredClaims

	UserID string `json:"uid"`
}

// TokenPair bundles a freshly signed access/refresh token duo.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenSubject carries the identity fields embedded into an access token.
type TokenSubject struct {
	UserID   string
	Username string
	Email    string
	FullName string
	Role     string
}

// TokenService signs and verifies JWT tokens using HS256.
//
// Access and refresh tokens use DISTINCT secrets and lifetimes: a leaked
// access secret must never be able to mint refresh tokens.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
}

// NewTokenService creates a new TokenService from the configured secrets.
func NewTokenService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration, issuer string) (*TokenService, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, fmt.Errorf("sec: token secrets must not be empty")
	}

	if accessSecret == refreshSecret {
		return nil, fmt.Errorf("sec: access and refresh secrets must differ")
	}

	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		issuer:        issuer,
	}, nil
}

// RefreshTTL exposes the refresh token lifetime for cookie expiry alignment.
func (service *TokenService) RefreshTTL() time.Duration {
	return service.refreshTTL
}

// AccessTTL exposes the access token lifetime.
func (service *TokenService) AccessTTL() time.Duration {
	return service.accessTTL
}

// IssuePair creates one signed access token and one signed refresh token for
// the given subject. It persists nothing; storing the refresh token against
// the user record is the Session Flow's responsibility.
func (service *TokenService) IssuePair(subject TokenSubject) (TokenPair, error) {
	currentTime := time.Now()

	accessClaims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.UserID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.accessTTL)),
		},
		UserID:   subject.UserID,
		Username: subject.Username,
		Email:    subject.Email,
		FullName: subject.FullName,
		Role:     subject.Role,
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString(service.accessSecret)
	if err != nil {
		return TokenPair{}, fmt.Errorf("sec: failed to sign access token: %w", err)
	}

	refreshClaims := RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			// A unique jti makes every refresh token distinct even when two
			// are minted for the same user within the same second. Rotation
			// compares token digests, so identical payloads would let a
			// consumed token be replayed.
			ID:        uuid.New(),
			Subject:   subject.UserID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.refreshTTL)),
		},
		UserID: subject.UserID,
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(service.refreshSecret)
	if err != nil {
		return TokenPair{}, fmt.Errorf("sec: failed to sign refresh token: %w", err)
	}

	return TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// VerifyToken checks the signature and validity of an access token string.
//
// The name is kept generic because middleware only ever verifies access tokens.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.accessSecret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("sec: invalid access token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid access token claims")
	}

	return claims, nil
}

// VerifyRefreshToken checks signature and expiry of a refresh token string.
//
// It performs NO storage comparison — a token passing this check may still be
// rejected by the Session Flow's rotation equality check.
func (service *TokenService) VerifyRefreshToken(tokenString string) (*RefreshClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &RefreshClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.refreshSecret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("sec: invalid refresh token: %w", err)
	}

	claims, ok := token.Claims.(*RefreshClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid refresh token claims")
	}

	return claims, nil
}
