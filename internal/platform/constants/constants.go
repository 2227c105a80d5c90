// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: JWT issuer and standard header names.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "weebtsuki-api"
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

	// BackgroundTaskTimeout bounds detached work started by a request (view counts, mail).
	BackgroundTaskTimeout = 5 * time.Second

	// SMTPTimeout bounds each network operation of one mail delivery.
	SMTPTimeout = 10 * time.Second

	// CronJobTimeout bounds a single run of a scheduled maintenance job.
	CronJobTimeout = 2 * time.Minute

	// ReadinessCheckTimeout bounds each dependency ping of the /ready endpoint.
	ReadinessCheckTimeout = 2 * time.Second
)

// MaxRequestBodyBytes caps decoded JSON request bodies.
const MaxRequestBodyBytes = 1 << 20

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
	AuthIssuer = "weebtsuki.app"
)

// # HTTP Headers

const (
	HeaderAuthorization = "Authorization"
	HeaderOrigin        = "Origin"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderRetryAfter    = "Retry-After"
)

// # JSON Field Identifiers

const FieldStatus = "status"

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixResetToken   = "auth:reset_token:"
	RedisPrefixOTP          = "auth:otp:"
	RedisPrefixHomeSections = "blog:sections:"
)
