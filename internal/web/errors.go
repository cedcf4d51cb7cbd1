package web

import (
	"errors"
	"net/http"

	"github.com/vitos/cryptotrackr/internal/domain"
)

const (
	msgLookupFailed = "Failed to parse data"
	msgStoreFailed  = "Error saving to database. Ensure you have run the SQL script."
	msgNotFound     = "Not found"
)

// classify maps a service error to a status code and the one message users see.
// Lookup failures are not told apart; neither are store failures.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, msgNotFound
	case errors.Is(err, domain.ErrNoMatch),
		errors.Is(err, domain.ErrMalformedResponse),
		errors.Is(err, domain.ErrLookupFailed):
		return http.StatusBadGateway, msgLookupFailed
	}
	return http.StatusInternalServerError, msgStoreFailed
}
