package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Session and authentication errors
	ErrAuthFailed  = fmt.Errorf("authentication failed")
	ErrNotLoggedIn = fmt.Errorf("not logged in")

	// Request execution errors
	ErrRateLimited     = fmt.Errorf("rate limit exceeded")
	ErrNetwork         = fmt.Errorf("network failure")
	ErrAPIRequest      = fmt.Errorf("API request failed")
	ErrInvalidResponse = fmt.Errorf("invalid response")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
