package domain

import "errors"

// ErrInvalidCoordinate rejects non-finite or out-of-range lat/lng at the
// projection boundary. It is the only error the geometry core lets escape.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// ErrProviderUnavailable marks a directions/geocoder network failure.
// It is always recovered locally via the deterministic fallback and is
// never surfaced to API clients as an error.
var ErrProviderUnavailable = errors.New("provider unavailable")

// ErrEmptyQuery marks a suggestion query below the minimum length.
// Callers treat it as an empty result, not a failure.
var ErrEmptyQuery = errors.New("query below minimum length")
