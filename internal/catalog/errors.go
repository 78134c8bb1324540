package catalog

import "errors"

var (
	// ErrNotConfigured means the storefront credentials are missing or still set
	// to placeholder values. Detected before any network call.
	ErrNotConfigured = errors.New("storefront is not configured")

	// ErrUnauthorized means the platform rejected the credentials.
	ErrUnauthorized = errors.New("storefront request unauthorized")

	// ErrNotFound means a requested product slug does not resolve. Unlike
	// transient platform faults this is meaningful absence, so no sample-data
	// fallback applies.
	ErrNotFound = errors.New("product not found")

	// ErrUpstream covers GraphQL error payloads other than authorization failures.
	ErrUpstream = errors.New("storefront API error")

	// ErrMalformedResponse means the platform answered without the expected data.
	ErrMalformedResponse = errors.New("malformed storefront response")
)
