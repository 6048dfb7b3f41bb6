package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/daybook/internal/errs"
	"github.com/MKhiriev/daybook/internal/service"
	"github.com/MKhiriev/daybook/internal/store"
	"github.com/MKhiriev/daybook/internal/syncqueue"
)

// errorStatusMap is checked in order; the first match wins.
var errorStatusMap = []struct {
	target error
	status int
}{
	{ErrUnknownNetworkState, http.StatusBadRequest},
	{service.ErrVersionIsNotSpecified, http.StatusBadRequest},

	{errs.ErrValidation, http.StatusBadRequest},
	{errs.ErrNotFound, http.StatusNotFound},
	{errs.ErrAuth, http.StatusUnauthorized},
	{errs.ErrInvalidPassphrase, http.StatusUnauthorized},
	{errs.ErrRateLimited, http.StatusTooManyRequests},
	{errs.ErrAlreadyExists, http.StatusConflict},
	{errs.ErrDecryption, http.StatusUnprocessableEntity},
	{errs.ErrQuotaExceeded, http.StatusInsufficientStorage},

	{syncqueue.ErrQueueClosed, http.StatusServiceUnavailable},
	{store.ErrStoreClosed, http.StatusServiceUnavailable},

	{store.ErrBuildingSQLQuery, http.StatusInternalServerError},
	{store.ErrExecutingQuery, http.StatusInternalServerError},
	{store.ErrBeginningTransaction, http.StatusInternalServerError},
	{store.ErrCommitingTransaction, http.StatusInternalServerError},
	{store.ErrExecutingStatement, http.StatusInternalServerError},
	{store.ErrScanningRow, http.StatusInternalServerError},
}

func statusFromError(err error) int {
	for _, m := range errorStatusMap {
		if errors.Is(err, m.target) {
			return m.status
		}
	}
	return http.StatusInternalServerError
}
