package orders

import "errors"

var (
	// ErrInvalidJSON - the request body could not be parsed at all.
	ErrInvalidJSON = errors.New("invalid json")
	// ErrInvalidOrder - items missing, not a list, empty, or carrying a
	// non-positive price.
	ErrInvalidOrder = errors.New("invalid order data")
	// ErrMissingContact - contact resolution finished but produced an empty
	// identifier; the invoice must not be submitted.
	ErrMissingContact = errors.New("contact id is empty after resolution")
)
