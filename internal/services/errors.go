package services

import "errors"

// Sentinel errors shared by the document and payment workflows. Handlers map
// them onto HTTP statuses.
var (
	ErrNotFound              = errors.New("record not found")
	ErrLocked                = errors.New("document can no longer be edited")
	ErrAlreadyConverted      = errors.New("proforma already converted to an invoice")
	ErrProformaRejected      = errors.New("rejected proforma cannot be converted")
	ErrInvoiceNotPayable     = errors.New("invoice does not accept payments")
	ErrPaymentExceedsBalance = errors.New("payment exceeds the outstanding balance")
	ErrInvoiceHasPayments    = errors.New("invoice with recorded payments cannot be deleted")
	ErrInsufficientStock     = errors.New("insufficient stock for delivery")
	ErrInvalidStatus         = errors.New("invalid status transition")
)
