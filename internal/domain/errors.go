package domain

import "errors"

// Error kinds returned by the discovery and swipe layers. Callers wrap them
// with detail via fmt.Errorf("%w: ...") and match with errors.Is.
var (
	// ErrInvalidFilter: malformed range or unknown categorical value.
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrMissingLocation: distance-based sort or radius without an origin.
	ErrMissingLocation = errors.New("missing location")
	// ErrUnsupportedSort: sort key not valid for the entity type.
	ErrUnsupportedSort = errors.New("unsupported sort")
	// ErrStaleCursor: cursor was issued for a different query; restart at page 1.
	ErrStaleCursor = errors.New("stale cursor")
	// ErrDuplicateSwipe: conflicting second decision for an already-decided pair.
	ErrDuplicateSwipe = errors.New("duplicate swipe")
	// ErrInvalidRequest: malformed ids, self-swipes, out of range pages.
	ErrInvalidRequest = errors.New("invalid request")
)
