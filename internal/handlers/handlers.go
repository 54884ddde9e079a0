// Package handlers exposes the JSON HTTP surface: CRUD for the registry and
// the three document kinds, the conversion and payment workflows, and the
// PDF / Excel exports.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/SYPclub/facture-flow/internal/httpx"
	"github.com/SYPclub/facture-flow/internal/logging"
	"github.com/SYPclub/facture-flow/internal/services"
)

// decodeJSON reads a request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeServiceError maps a workflow error onto an HTTP status. Unknown
// errors are logged and surface as a bare 500.
func writeServiceError(w http.ResponseWriter, module, funcName string, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
	case errors.Is(err, services.ErrLocked),
		errors.Is(err, services.ErrAlreadyConverted),
		errors.Is(err, services.ErrProformaRejected),
		errors.Is(err, services.ErrInvoiceNotPayable),
		errors.Is(err, services.ErrPaymentExceedsBalance),
		errors.Is(err, services.ErrInvoiceHasPayments),
		errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrInvalidStatus):
		httpx.JSONError(w, http.StatusConflict, err.Error(), nil)
	default:
		logging.LogError(module, funcName, "service call failed", nil, err)
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}
