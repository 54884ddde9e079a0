package handlers

import (
	"net/http"

	"github.com/SYPclub/facture-flow/internal/httpx"
	"github.com/SYPclub/facture-flow/internal/models"
	"github.com/SYPclub/facture-flow/internal/services"
)

type DeliveryHandler struct {
	docs *services.DocumentService
}

func NewDeliveryHandler(docs *services.DocumentService) *DeliveryHandler {
	return &DeliveryHandler{docs: docs}
}

func (h *DeliveryHandler) List(w http.ResponseWriter, r *http.Request) {
	notes, err := h.docs.ListDeliveryNotes(r.Context())
	if err != nil {
		writeServiceError(w, "handlers", "DeliveryHandler.List", err)
		return
	}
	httpx.JSON(w, http.StatusOK, notes)
}

func (h *DeliveryHandler) Get(w http.ResponseWriter, r *http.Request) {
	note, err := h.docs.GetDeliveryNote(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, "handlers", "DeliveryHandler.Get", err)
		return
	}
	httpx.JSON(w, http.StatusOK, note)
}

func (h *DeliveryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var note models.DeliveryNote
	if err := decodeJSON(r, &note); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if v := validateDocumentPayload(note.ClientID, note.Items); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if err := h.docs.CreateDeliveryNote(r.Context(), &note); err != nil {
		writeServiceError(w, "handlers", "DeliveryHandler.Create", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, note)
}

func (h *DeliveryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var note models.DeliveryNote
	if err := decodeJSON(r, &note); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	note.ID = r.PathValue("id")
	if v := validateDocumentPayload(note.ClientID, note.Items); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if err := h.docs.UpdateDeliveryNote(r.Context(), &note); err != nil {
		writeServiceError(w, "handlers", "DeliveryHandler.Update", err)
		return
	}
	updated, err := h.docs.GetDeliveryNote(r.Context(), note.ID)
	if err != nil {
		writeServiceError(w, "handlers", "DeliveryHandler.Update", err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *DeliveryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.docs.DeleteDeliveryNote(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, "handlers", "DeliveryHandler.Delete", err)
		return
	}
	httpx.JSON(w, http.StatusNoContent, nil)
}

// SetStatus moves the note through its lifecycle; reaching delivered moves
// product stock.
func (h *DeliveryHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Status models.DeliveryStatus `json:"status"`
	}
	if err := decodeJSON(r, &in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	id := r.PathValue("id")
	if err := h.docs.SetDeliveryStatus(r.Context(), id, in.Status); err != nil {
		writeServiceError(w, "handlers", "DeliveryHandler.SetStatus", err)
		return
	}
	note, err := h.docs.GetDeliveryNote(r.Context(), id)
	if err != nil {
		writeServiceError(w, "handlers", "DeliveryHandler.SetStatus", err)
		return
	}
	httpx.JSON(w, http.StatusOK, note)
}
