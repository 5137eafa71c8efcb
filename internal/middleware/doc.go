// Package middleware provides HTTP middleware for the job board API.
//
// Global middleware, applied in this order by cmd/server:
//
//   - RequestID: assigns or propagates X-Request-ID
//   - Logger: structured request log via slog
//   - Recovery: turns panics into a 500 {"error": ...} response
//   - CORS: origin allow-list and preflight handling
//   - RateLimit: token bucket per client IP
//   - Compress: gzip when the client accepts it
//
// Auth guards mutating job routes. It answers 403 when no bearer credentials
// are presented, 401 when they are rejected and 500 when they could not be
// checked. Handlers read the caller with GetUserID or GetUser.
package middleware
