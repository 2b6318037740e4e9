// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, cookie settings, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Upstream: Timeouts and defaults for the metadata provider.
  - Security: Token issuer and session cookie configuration.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "reelflix-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	// It must exceed UpstreamTimeout so proxied responses can still be written.
	DefaultWriteTimeout = 20 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Upstream Metadata Provider

const (
	// UpstreamTimeout bounds a single outbound call to the metadata provider.
	UpstreamTimeout = 10 * time.Second

	// UpstreamLanguage is sent as the language query parameter on every call.
	UpstreamLanguage = "en-US"

	// UpstreamMaxBodyBytes caps how much of an upstream response is decoded.
	UpstreamMaxBodyBytes = 4 << 20
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in session tokens.
	AuthIssuer = "reelflix.app"

	// SessionCookieName is the name of the cookie that carries the session token.
	SessionCookieName = "jwt-reelflix"

	// SessionCookiePath scopes the session cookie to the whole site.
	SessionCookiePath = "/"

	// DefaultSessionTTL is how long an issued session token stays valid.
	DefaultSessionTTL = 30 * 24 * time.Hour

	// MinSessionSecretLength is the minimum byte length of the HMAC signing secret.
	MinSessionSecretLength = 32
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldSuccess     = "success"
	FieldMessage     = "message"
	FieldCode        = "code"
	FieldStatus      = "status"
	FieldEnvironment = "environment"
	FieldChecks      = "checks"
	FieldUser        = "user"
	FieldContent     = "content"
	FieldResults     = "results"
	FieldTrailers    = "trailers"
	FieldSimilar     = "similar"
)

// # Database Schemas

const (
	SchemaUsers = "users"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixRevokedSession = "auth:revoked:"
)
