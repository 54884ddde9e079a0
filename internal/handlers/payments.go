package handlers

import (
	"net/http"

	"github.com/SYPclub/facture-flow/internal/httpx"
	"github.com/SYPclub/facture-flow/internal/models"
	"github.com/SYPclub/facture-flow/internal/services"
	"github.com/SYPclub/facture-flow/internal/validation"
)

type PaymentHandler struct {
	payments *services.PaymentService
}

func NewPaymentHandler(payments *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// List returns the payments of one invoice, oldest first.
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	ps, err := h.payments.List(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, "handlers", "PaymentHandler.List", err)
		return
	}
	httpx.JSON(w, http.StatusOK, ps)
}

// Create records a payment against the invoice in the path.
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p models.Payment
	if err := decodeJSON(r, &p); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	p.InvoiceID = r.PathValue("id")
	v := make(validation.Violations)
	validation.PositiveFloat("amount", p.Amount, v)
	validation.OneOf("method", string(p.Method), []string{
		string(models.PaymentMethodCash), string(models.PaymentMethodBankTransfer),
		string(models.PaymentMethodCheck), string(models.PaymentMethodCard),
		string(models.PaymentMethodOther),
	}, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if err := h.payments.Add(r.Context(), &p); err != nil {
		writeServiceError(w, "handlers", "PaymentHandler.Create", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

// Delete reverses a payment.
func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.payments.Delete(r.Context(), r.PathValue("paymentId")); err != nil {
		writeServiceError(w, "handlers", "PaymentHandler.Delete", err)
		return
	}
	httpx.JSON(w, http.StatusNoContent, nil)
}

// MarkPaid settles the whole outstanding balance dated today.
func (h *PaymentHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Method models.PaymentMethod `json:"method"`
	}
	// an empty body means the cash default
	_ = decodeJSON(r, &in)

	p, err := h.payments.MarkPaid(r.Context(), r.PathValue("id"), in.Method)
	if err != nil {
		writeServiceError(w, "handlers", "PaymentHandler.MarkPaid", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}
