package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/SYPclub/facture-flow/internal/httpx"
	"github.com/SYPclub/facture-flow/internal/logging"
	"github.com/SYPclub/facture-flow/internal/models"
	"github.com/SYPclub/facture-flow/internal/pdf"
	"github.com/SYPclub/facture-flow/internal/report"
	"github.com/SYPclub/facture-flow/internal/services"
	"github.com/SYPclub/facture-flow/internal/template"
)

const (
	pdfContentType  = "application/pdf"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportHandler streams PDF and Excel documents. Each export loads the
// business identity fresh so header changes show up without a restart, and
// prefers a stored template for the document type, falling back to the
// built-in layout when none exists or its layout fails to parse.
type ExportHandler struct {
	db    *gorm.DB
	docs  *services.DocumentService
	store template.Store
}

func NewExportHandler(db *gorm.DB, docs *services.DocumentService, store template.Store) *ExportHandler {
	return &ExportHandler{db: db, docs: docs, store: store}
}

// company returns the stored identity or nil, in which case the renderers
// print their fallback placeholders.
func (h *ExportHandler) company(r *http.Request) *models.CompanyInfo {
	var info models.CompanyInfo
	if err := h.db.WithContext(r.Context()).First(&info, "id = ?", 1).Error; err != nil {
		return nil
	}
	return &info
}

// templatedLayout fetches and parses the stored layout for a document type.
// Any problem with the stored template falls back to the built-in renderer;
// only real store failures get logged.
func (h *ExportHandler) templatedLayout(r *http.Request, docType string) *template.Layout {
	tpl, err := h.store.GetForType(r.Context(), docType)
	if err != nil {
		if !errors.Is(err, template.ErrNotFound) {
			logging.LogError("handlers", "ExportHandler.templatedLayout", "template lookup failed", docType, err)
		}
		return nil
	}
	layout, err := template.ParseLayout(tpl.LayoutData)
	if err != nil {
		logging.LogError("handlers", "ExportHandler.templatedLayout", "stored layout is invalid", tpl.ID, err)
		return nil
	}
	return layout
}

func writePDF(w http.ResponseWriter, filename string, payload []byte) {
	httpx.Attachment(w, pdfContentType, filename)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func (h *ExportHandler) ProformaPDF(w http.ResponseWriter, r *http.Request) {
	pf, err := h.docs.GetProforma(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, "handlers", "ExportHandler.ProformaPDF", err)
		return
	}
	company := h.company(r)
	renderer := pdf.NewRenderer(company)

	var payload []byte
	if layout := h.templatedLayout(r, models.DocumentTypeProforma); layout != nil {
		fields := template.ProformaFields(pf, company)
		resolved := fields.ResolveLayout(template.ExpandComposites(layout))
		payload, err = renderer.Templated(models.DocumentTypeProforma, resolved, pf.Items)
	} else {
		payload, err = renderer.Proforma(pf)
	}
	if err != nil {
		logging.LogError("handlers", "ExportHandler.ProformaPDF", "render failed", pf.ID, err)
		httpx.JSONError(w, http.StatusInternalServerError, "export_failed", nil)
		return
	}
	writePDF(w, pdf.ProformaFilename(pf.Number), payload)
}

func (h *ExportHandler) InvoicePDF(w http.ResponseWriter, r *http.Request) {
	inv, err := h.docs.GetInvoice(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, "handlers", "ExportHandler.InvoicePDF", err)
		return
	}
	company := h.company(r)
	renderer := pdf.NewRenderer(company)

	var payload []byte
	if layout := h.templatedLayout(r, models.DocumentTypeInvoice); layout != nil {
		fields := template.InvoiceFields(inv, company)
		resolved := fields.ResolveLayout(template.ExpandComposites(layout))
		payload, err = renderer.Templated(models.DocumentTypeInvoice, resolved, inv.Items)
	} else {
		payload, err = renderer.Invoice(inv)
	}
	if err != nil {
		logging.LogError("handlers", "ExportHandler.InvoicePDF", "render failed", inv.ID, err)
		httpx.JSONError(w, http.StatusInternalServerError, "export_failed", nil)
		return
	}
	writePDF(w, pdf.InvoiceFilename(inv.Number), payload)
}

func (h *ExportHandler) DeliveryNotePDF(w http.ResponseWriter, r *http.Request) {
	note, err := h.docs.GetDeliveryNote(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, "handlers", "ExportHandler.DeliveryNotePDF", err)
		return
	}
	company := h.company(r)
	renderer := pdf.NewRenderer(company)

	var payload []byte
	if layout := h.templatedLayout(r, models.DocumentTypeDelivery); layout != nil {
		fields := template.DeliveryFields(note, company)
		resolved := fields.ResolveLayout(template.ExpandComposites(layout))
		payload, err = renderer.Templated(models.DocumentTypeDelivery, resolved, note.Items)
	} else {
		payload, err = renderer.DeliveryNote(note)
	}
	if err != nil {
		logging.LogError("handlers", "ExportHandler.DeliveryNotePDF", "render failed", note.ID, err)
		httpx.JSONError(w, http.StatusInternalServerError, "export_failed", nil)
		return
	}
	writePDF(w, pdf.DeliveryNoteFilename(note.Number), payload)
}

// reportPeriod reads the month and year query parameters, defaulting to the
// current month.
func reportPeriod(r *http.Request) (time.Month, int, bool) {
	now := time.Now()
	month, year := now.Month(), now.Year()
	if s := r.URL.Query().Get("month"); s != "" {
		m, err := strconv.Atoi(s)
		if err != nil || m < 1 || m > 12 {
			return 0, 0, false
		}
		month = time.Month(m)
	}
	if s := r.URL.Query().Get("year"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil || y < 2000 || y > 2200 {
			return 0, 0, false
		}
		year = y
	}
	return month, year, true
}

func (h *ExportHandler) Etat104PDF(w http.ResponseWriter, r *http.Request) {
	month, year, ok := reportPeriod(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_period", nil)
		return
	}
	rep, err := report.BuildEtat104(r.Context(), h.db, month, year)
	if err != nil {
		logging.LogError("handlers", "ExportHandler.Etat104PDF", "aggregation failed", nil, err)
		httpx.JSONError(w, http.StatusInternalServerError, "export_failed", nil)
		return
	}
	payload, err := pdf.NewRenderer(h.company(r)).Etat104(rep.Clients, month, year)
	if err != nil {
		logging.LogError("handlers", "ExportHandler.Etat104PDF", "render failed", nil, err)
		httpx.JSONError(w, http.StatusInternalServerError, "export_failed", nil)
		return
	}
	writePDF(w, pdf.Etat104Filename(month, year), payload)
}

func (h *ExportHandler) Etat104Excel(w http.ResponseWriter, r *http.Request) {
	month, year, ok := reportPeriod(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_period", nil)
		return
	}
	rep, err := report.BuildEtat104(r.Context(), h.db, month, year)
	if err != nil {
		logging.LogError("handlers", "ExportHandler.Etat104Excel", "aggregation failed", nil, err)
		httpx.JSONError(w, http.StatusInternalServerError, "export_failed", nil)
		return
	}
	payload, err := report.Excel(rep, h.company(r))
	if err != nil {
		logging.LogError("handlers", "ExportHandler.Etat104Excel", "workbook failed", nil, err)
		httpx.JSONError(w, http.StatusInternalServerError, "export_failed", nil)
		return
	}
	httpx.Attachment(w, xlsxContentType, report.ExcelFilename(month, year))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}
