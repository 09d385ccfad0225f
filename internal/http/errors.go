package http

import (
	"errors"
	"net/http"

	"librarydesk/internal/catalog"
	"librarydesk/internal/circulation"
	"librarydesk/internal/httpx"
	"librarydesk/internal/reservation"
	"librarydesk/internal/roster"
)

// writeDomainError maps the circulation domain's sentinel errors onto
// HTTP statuses. Anything unrecognized is a server error.
func writeDomainError(r *http.Request, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, roster.ErrNotFound),
		errors.Is(err, circulation.ErrLoanNotFound):
		httpx.JSONError(r, w, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, catalog.ErrDuplicateID),
		errors.Is(err, roster.ErrDuplicateID):
		httpx.JSONError(r, w, http.StatusConflict, "duplicate_id", err.Error(), nil)
	case errors.Is(err, catalog.ErrInUse):
		httpx.JSONError(r, w, http.StatusConflict, "in_use", err.Error(), nil)
	case errors.Is(err, circulation.ErrUnavailable):
		httpx.JSONError(r, w, http.StatusConflict, "unavailable", err.Error(), nil)
	case errors.Is(err, circulation.ErrReserved):
		httpx.JSONError(r, w, http.StatusConflict, "reserved", err.Error(), nil)
	case errors.Is(err, reservation.ErrDuplicate):
		httpx.JSONError(r, w, http.StatusConflict, "duplicate_reservation", err.Error(), nil)
	case errors.Is(err, circulation.ErrBorrowLimit):
		httpx.JSONError(r, w, http.StatusUnprocessableEntity, "borrow_limit_reached", err.Error(), nil)
	case errors.Is(err, circulation.ErrNotEligible):
		httpx.JSONError(r, w, http.StatusUnprocessableEntity, "not_eligible", err.Error(), nil)
	case errors.Is(err, reservation.ErrLimitExceeded):
		httpx.JSONError(r, w, http.StatusUnprocessableEntity, "reservation_limit_reached", err.Error(), nil)
	default:
		httpx.JSONError(r, w, http.StatusInternalServerError, "internal_error", "server error", nil)
	}
}

func writeValidationError(r *http.Request, w http.ResponseWriter, errs []ValidationError) {
	details := make([]httpx.ErrorDetail, 0, len(errs))
	for _, e := range errs {
		details = append(details, httpx.ErrorDetail{Field: e.Field, Message: e.Message})
	}
	httpx.JSONError(r, w, http.StatusUnprocessableEntity, "validation_failed", "request validation failed", details)
}
