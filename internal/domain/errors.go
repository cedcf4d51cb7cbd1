package domain

import "errors"

var (
	// ErrNoMatch is returned when a market-data search yields no pairs.
	ErrNoMatch = errors.New("no pairs found for this token/url")
	// ErrMalformedResponse is returned when a market-data response cannot be decoded
	// or its first pair lacks the fields a summary needs.
	ErrMalformedResponse = errors.New("malformed market-data response")
	// ErrLookupFailed covers transport errors and non-2xx statuses.
	ErrLookupFailed = errors.New("market-data request failed")

	ErrNotFound     = errors.New("record not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrStore        = errors.New("store operation failed")
)
