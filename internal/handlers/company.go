package handlers

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/SYPclub/facture-flow/internal/httpx"
	"github.com/SYPclub/facture-flow/internal/models"
	"github.com/SYPclub/facture-flow/internal/validation"
)

type CompanyHandler struct {
	db *gorm.DB
}

func NewCompanyHandler(db *gorm.DB) *CompanyHandler {
	return &CompanyHandler{db: db}
}

// Get returns the business identity printed on documents. Before first
// setup the single row may not exist yet; callers get an empty identity and
// the renderers fall back to placeholders.
func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	var info models.CompanyInfo
	err := h.db.First(&info, "id = ?", 1).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	info.ID = 1
	httpx.JSON(w, http.StatusOK, info)
}

// Update saves the business identity, creating the row on first use.
func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in models.CompanyInfo
	if err := decodeJSON(r, &in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	v := make(validation.Violations)
	validation.Required("businessName", in.BusinessName, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	in.ID = 1
	if err := h.db.Save(&in).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, in)
}
