// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: JWT issuers and cookie configuration.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "vidora-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "vidora.app"

	// ContextKeyUser is the key used to store user claims in the request context.
	ContextKeyUser = "user_claims"

	// AccessTokenCookieName is the name of the cookie that mirrors the access token.
	AccessTokenCookieName = "accessToken"

	// RefreshTokenCookieName is the name of the cookie that stores the refresh token.
	RefreshTokenCookieName = "refreshToken"

	// AccessTokenCookiePath makes the access token cookie visible to the whole API.
	AccessTokenCookiePath = "/"

	// RefreshTokenCookiePath is the scoped path for the refresh token cookie.
	RefreshTokenCookiePath = "/"
)

// # HTTP Headers

const (
	// HeaderXRequestID carries the correlation ID assigned to each request.
	HeaderXRequestID = "X-Request-ID"

	// HeaderOrigin is the CORS origin header sent by browsers.
	HeaderOrigin = "Origin"

	// HeaderXRealIP is set by reverse proxies to the original client address.
	HeaderXRealIP = "X-Real-IP"

	// HeaderXForwardedFor lists the client and proxy chain addresses.
	HeaderXForwardedFor = "X-Forwarded-For"
)

// # File Uploads

const (
	// MaxMultipartMemory caps the in-memory portion of a multipart form parse.
	// Larger file parts spill to disk automatically.
	MaxMultipartMemory = 32 << 20 // 32 MiB

	// UploadFieldAvatar is the multipart field name for avatar images.
	UploadFieldAvatar = "avatar"

	// UploadFieldCoverImage is the multipart field name for channel cover images.
	UploadFieldCoverImage = "coverImage"

	// TempUploadPrefix namespaces staged upload files in the OS temp directory.
	TempUploadPrefix = "vidora-upload-"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldItems   = "items"
	FieldTotal   = "total"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Database Schemas

const (
	SchemaCore    = "core"
	SchemaUsers   = "users"
	SchemaSocial  = "social"
	SchemaLibrary = "library"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixChannelProfile = "social:channel_profile:"
)

// # Cache TTLs

const (
	// ChannelProfileCacheTTL bounds how stale a cached channel profile can be.
	ChannelProfileCacheTTL = 1 * time.Minute
)
