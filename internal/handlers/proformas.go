package handlers

import (
	"net/http"

	"github.com/SYPclub/facture-flow/internal/httpx"
	"github.com/SYPclub/facture-flow/internal/models"
	"github.com/SYPclub/facture-flow/internal/services"
	"github.com/SYPclub/facture-flow/internal/validation"
)

type ProformaHandler struct {
	docs *services.DocumentService
}

func NewProformaHandler(docs *services.DocumentService) *ProformaHandler {
	return &ProformaHandler{docs: docs}
}

func (h *ProformaHandler) List(w http.ResponseWriter, r *http.Request) {
	pfs, err := h.docs.ListProformas(r.Context())
	if err != nil {
		writeServiceError(w, "handlers", "ProformaHandler.List", err)
		return
	}
	httpx.JSON(w, http.StatusOK, pfs)
}

func (h *ProformaHandler) Get(w http.ResponseWriter, r *http.Request) {
	pf, err := h.docs.GetProforma(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, "handlers", "ProformaHandler.Get", err)
		return
	}
	httpx.JSON(w, http.StatusOK, pf)
}

func validateDocumentPayload(clientID string, items []models.LineItem) validation.Violations {
	v := make(validation.Violations)
	validation.Required("clientid", clientID, v)
	for _, it := range items {
		validation.MinInt("items.quantity", it.Quantity, 1, v)
		if it.ProductID != "" {
			continue // snapshot completed by the service
		}
		validation.Required("items.product_name", it.ProductName, v)
		validation.NonNegativeFloat("items.unitprice", it.UnitPrice, v)
		validation.RangeFloat("items.discount", it.Discount, 0, 100, v)
		validation.NonNegativeFloat("items.taxrate", it.TaxRate, v)
	}
	return v
}

func (h *ProformaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var pf models.Proforma
	if err := decodeJSON(r, &pf); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if v := validateDocumentPayload(pf.ClientID, pf.Items); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if err := h.docs.CreateProforma(r.Context(), &pf); err != nil {
		writeServiceError(w, "handlers", "ProformaHandler.Create", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, pf)
}

func (h *ProformaHandler) Update(w http.ResponseWriter, r *http.Request) {
	var pf models.Proforma
	if err := decodeJSON(r, &pf); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	pf.ID = r.PathValue("id")
	if v := validateDocumentPayload(pf.ClientID, pf.Items); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if err := h.docs.UpdateProforma(r.Context(), &pf); err != nil {
		writeServiceError(w, "handlers", "ProformaHandler.Update", err)
		return
	}
	updated, err := h.docs.GetProforma(r.Context(), pf.ID)
	if err != nil {
		writeServiceError(w, "handlers", "ProformaHandler.Update", err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *ProformaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.docs.DeleteProforma(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, "handlers", "ProformaHandler.Delete", err)
		return
	}
	httpx.JSON(w, http.StatusNoContent, nil)
}

func (h *ProformaHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Status models.ProformaStatus `json:"status"`
	}
	if err := decodeJSON(r, &in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	id := r.PathValue("id")
	if err := h.docs.SetProformaStatus(r.Context(), id, in.Status); err != nil {
		writeServiceError(w, "handlers", "ProformaHandler.SetStatus", err)
		return
	}
	pf, err := h.docs.GetProforma(r.Context(), id)
	if err != nil {
		writeServiceError(w, "handlers", "ProformaHandler.SetStatus", err)
		return
	}
	httpx.JSON(w, http.StatusOK, pf)
}

// Convert turns the proforma into a final invoice.
func (h *ProformaHandler) Convert(w http.ResponseWriter, r *http.Request) {
	inv, err := h.docs.ConvertProformaToInvoice(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, "handlers", "ProformaHandler.Convert", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, inv)
}
