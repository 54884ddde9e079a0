package handlers

import (
	"net/http"

	"github.com/SYPclub/facture-flow/internal/httpx"
	"github.com/SYPclub/facture-flow/internal/models"
	"github.com/SYPclub/facture-flow/internal/services"
)

type InvoiceHandler struct {
	docs *services.DocumentService
}

func NewInvoiceHandler(docs *services.DocumentService) *InvoiceHandler {
	return &InvoiceHandler{docs: docs}
}

func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	invs, err := h.docs.ListInvoices(r.Context())
	if err != nil {
		writeServiceError(w, "handlers", "InvoiceHandler.List", err)
		return
	}
	httpx.JSON(w, http.StatusOK, invs)
}

func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	inv, err := h.docs.GetInvoice(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, "handlers", "InvoiceHandler.Get", err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var inv models.FinalInvoice
	if err := decodeJSON(r, &inv); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if v := validateDocumentPayload(inv.ClientID, inv.Items); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if err := h.docs.CreateInvoice(r.Context(), &inv); err != nil {
		writeServiceError(w, "handlers", "InvoiceHandler.Create", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, inv)
}

func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	var inv models.FinalInvoice
	if err := decodeJSON(r, &inv); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	inv.ID = r.PathValue("id")
	if v := validateDocumentPayload(inv.ClientID, inv.Items); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if err := h.docs.UpdateInvoice(r.Context(), &inv); err != nil {
		writeServiceError(w, "handlers", "InvoiceHandler.Update", err)
		return
	}
	updated, err := h.docs.GetInvoice(r.Context(), inv.ID)
	if err != nil {
		writeServiceError(w, "handlers", "InvoiceHandler.Update", err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.docs.DeleteInvoice(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, "handlers", "InvoiceHandler.Delete", err)
		return
	}
	httpx.JSON(w, http.StatusNoContent, nil)
}

func (h *InvoiceHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.docs.CancelInvoice(r.Context(), id); err != nil {
		writeServiceError(w, "handlers", "InvoiceHandler.Cancel", err)
		return
	}
	inv, err := h.docs.GetInvoice(r.Context(), id)
	if err != nil {
		writeServiceError(w, "handlers", "InvoiceHandler.Cancel", err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

// Convert creates the delivery note for this invoice.
func (h *InvoiceHandler) Convert(w http.ResponseWriter, r *http.Request) {
	note, err := h.docs.ConvertInvoiceToDelivery(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, "handlers", "InvoiceHandler.Convert", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, note)
}
