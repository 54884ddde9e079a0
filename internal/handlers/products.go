package handlers

import (
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/SYPclub/facture-flow/internal/httpx"
	"github.com/SYPclub/facture-flow/internal/models"
	"github.com/SYPclub/facture-flow/internal/validation"
)

type ProductHandler struct {
	db *gorm.DB
}

func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{db: db}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	db := h.db
	if query != "" {
		like := "%" + query + "%"
		db = db.Where("name LIKE ? OR code LIKE ?", like, like)
	}

	var products []models.Product
	if err := db.Order("name").Find(&products).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := h.db.First(&product, "id = ?", r.PathValue("id")).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := decodeJSON(r, &product); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	product.Code = strings.ToUpper(strings.TrimSpace(product.Code))

	v := make(validation.Violations)
	validation.Required("code", product.Code, v)
	validation.Required("name", product.Name, v)
	validation.PositiveFloat("unitprice", product.UnitPrice, v)
	validation.NonNegativeFloat("taxrate", product.TaxRate, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	product.ID = models.NewID()
	if err := h.db.Create(&product).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			httpx.JSONError(w, http.StatusConflict, "code_already_exists", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var current models.Product
	if err := h.db.First(&current, "id = ?", r.PathValue("id")).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}

	var in models.Product
	if err := decodeJSON(r, &in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	in.Code = strings.ToUpper(strings.TrimSpace(in.Code))

	v := make(validation.Violations)
	validation.Required("code", in.Code, v)
	validation.Required("name", in.Name, v)
	validation.PositiveFloat("unitprice", in.UnitPrice, v)
	validation.NonNegativeFloat("taxrate", in.TaxRate, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	in.ID = current.ID
	in.CreatedAt = current.CreatedAt
	if err := h.db.Save(&in).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, in)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	res := h.db.Delete(&models.Product{}, "id = ?", r.PathValue("id"))
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
