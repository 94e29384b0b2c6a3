// Package api implements the iBroadcast session/request engine.
//
// # Client
//
// [Client] composes the three moving parts of every call: the sliding-window
// [Limiter] gate, the [Session] token state, and a pluggable [Transport].
// Every API call follows the same path: rate limit admission, token refresh
// check, form-encoded POST, bounded retry on transient failure.
//
// # Wire Protocol
//
// The service exposes a single HTTPS endpoint. Each call is a POST with an
// application/x-www-form-urlencoded body; a mode parameter selects the server
// operation and authenticated calls carry the bearer token. Responses are JSON.
//
// # Retry Policy
//
// Only transport failures and HTTP 429 are retried, with linear backoff
// (retryDelay × attempt number) up to maxRetries extra attempts. Any other
// non-2xx status is treated as deterministic and surfaced immediately as an
// API error; a 2xx body that fails to parse is surfaced as an invalid
// response. Neither is retried.
//
// # Error Handling
//
// The engine surfaces typed errors from the shared package:
//   - [shared.ErrNotLoggedIn] : token-requiring call on an empty session, no network attempt made
//   - [shared.ErrAuthFailed] : credentials or token refresh rejected by the server
//   - [shared.ErrRateLimited] : local quota exhausted, or repeated 429 past the retry budget
//   - [shared.ErrNetwork] : transport failure after exhausting retries
//   - [shared.ErrAPIRequest] : request rejected for any other reason, not retried
//   - [shared.ErrInvalidResponse] : response body did not match the expected shape
package api
