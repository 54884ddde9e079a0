package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/SYPclub/facture-flow/internal/httpx"
	"github.com/SYPclub/facture-flow/internal/models"
	"github.com/SYPclub/facture-flow/internal/validation"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	db := h.db
	if query != "" {
		like := "%" + query + "%"
		db = db.Where("name LIKE ? OR tax_id LIKE ?", like, like)
	}

	var clients []models.Client
	if err := db.Order("name").Find(&clients).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, clients)
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	var client models.Client
	if err := h.db.First(&client, "id = ?", r.PathValue("id")).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, client)
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var client models.Client
	if err := decodeJSON(r, &client); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	v := make(validation.Violations)
	validation.Required("name", client.Name, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	client.ID = models.NewID()
	client.Debt = 0
	if err := h.db.Create(&client).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, client)
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	var current models.Client
	if err := h.db.First(&current, "id = ?", r.PathValue("id")).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}

	var in models.Client
	if err := decodeJSON(r, &in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	v := make(validation.Violations)
	validation.Required("name", in.Name, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	// id and debt are never set from the payload
	in.ID = current.ID
	in.Debt = current.Debt
	in.CreatedAt = current.CreatedAt
	if err := h.db.Save(&in).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, in)
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	res := h.db.Delete(&models.Client{}, "id = ?", r.PathValue("id"))
	if res.Error != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	if res.RowsAffected == 0 {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusNoContent, nil)
}
