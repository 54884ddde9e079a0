package handlers

import (
	"errors"
	"net/http"

	"github.com/SYPclub/facture-flow/internal/httpx"
	"github.com/SYPclub/facture-flow/internal/models"
	"github.com/SYPclub/facture-flow/internal/template"
)

type TemplateHandler struct {
	store template.Store
}

func NewTemplateHandler(store template.Store) *TemplateHandler {
	return &TemplateHandler{store: store}
}

func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	tpls, err := h.store.List(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, tpls)
}

func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	tpl, err := h.store.Get(r.Context(), r.PathValue("id"))
	if errors.Is(err, template.ErrNotFound) {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, tpl)
}

// Save upserts a template. The layout JSON is validated before anything
// reaches the store.
func (h *TemplateHandler) Save(w http.ResponseWriter, r *http.Request) {
	var tpl models.Template
	if err := decodeJSON(r, &tpl); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if err := h.store.Save(r.Context(), &tpl); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_template", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, tpl)
}
