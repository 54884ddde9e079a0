package main

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/SYPclub/facture-flow/internal/handlers"
	"github.com/SYPclub/facture-flow/internal/services"
	"github.com/SYPclub/facture-flow/internal/template"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux *http.ServeMux
	db  *gorm.DB
}

// NewApp creates a new application with all routes configured.
func NewApp(db *gorm.DB) *App {
	app := &App{
		mux: http.NewServeMux(),
		db:  db,
	}
	app.setupRoutes()
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	docs := services.NewDocumentService(a.db)
	payments := services.NewPaymentService(a.db)
	store := template.NewStore(a.db)

	ch := handlers.NewClientHandler(a.db)
	ph := handlers.NewProductHandler(a.db)
	pfh := handlers.NewProformaHandler(docs)
	ih := handlers.NewInvoiceHandler(docs)
	dh := handlers.NewDeliveryHandler(docs)
	pay := handlers.NewPaymentHandler(payments)
	th := handlers.NewTemplateHandler(store)
	coh := handlers.NewCompanyHandler(a.db)
	ex := handlers.NewExportHandler(a.db, docs, store)

	// Clients
	a.mux.HandleFunc("GET /api/clients", ch.List)
	a.mux.HandleFunc("POST /api/clients", ch.Create)
	a.mux.HandleFunc("GET /api/clients/{id}", ch.Get)
	a.mux.HandleFunc("PUT /api/clients/{id}", ch.Update)
	a.mux.HandleFunc("DELETE /api/clients/{id}", ch.Delete)

	// Products
	a.mux.HandleFunc("GET /api/products", ph.List)
	a.mux.HandleFunc("POST /api/products", ph.Create)
	a.mux.HandleFunc("GET /api/products/{id}", ph.Get)
	a.mux.HandleFunc("PUT /api/products/{id}", ph.Update)
	a.mux.HandleFunc("DELETE /api/products/{id}", ph.Delete)

	// Proforma invoices
	a.mux.HandleFunc("GET /api/proformas", pfh.List)
	a.mux.HandleFunc("POST /api/proformas", pfh.Create)
	a.mux.HandleFunc("GET /api/proformas/{id}", pfh.Get)
	a.mux.HandleFunc("PUT /api/proformas/{id}", pfh.Update)
	a.mux.HandleFunc("DELETE /api/proformas/{id}", pfh.Delete)
	a.mux.HandleFunc("POST /api/proformas/{id}/status", pfh.SetStatus)
	a.mux.HandleFunc("POST /api/proformas/{id}/convert", pfh.Convert)
	a.mux.HandleFunc("GET /api/proformas/{id}/pdf", ex.ProformaPDF)

	// Final invoices
	a.mux.HandleFunc("GET /api/invoices", ih.List)
	a.mux.HandleFunc("POST /api/invoices", ih.Create)
	a.mux.HandleFunc("GET /api/invoices/{id}", ih.Get)
	a.mux.HandleFunc("PUT /api/invoices/{id}", ih.Update)
	a.mux.HandleFunc("DELETE /api/invoices/{id}", ih.Delete)
	a.mux.HandleFunc("POST /api/invoices/{id}/cancel", ih.Cancel)
	a.mux.HandleFunc("POST /api/invoices/{id}/convert", ih.Convert)
	a.mux.HandleFunc("GET /api/invoices/{id}/pdf", ex.InvoicePDF)

	// Payments
	a.mux.HandleFunc("GET /api/invoices/{id}/payments", pay.List)
	a.mux.HandleFunc("POST /api/invoices/{id}/payments", pay.Create)
	a.mux.HandleFunc("POST /api/invoices/{id}/mark-paid", pay.MarkPaid)
	a.mux.HandleFunc("DELETE /api/payments/{paymentId}", pay.Delete)

	// Delivery notes
	a.mux.HandleFunc("GET /api/delivery-notes", dh.List)
	a.mux.HandleFunc("POST /api/delivery-notes", dh.Create)
	a.mux.HandleFunc("GET /api/delivery-notes/{id}", dh.Get)
	a.mux.HandleFunc("PUT /api/delivery-notes/{id}", dh.Update)
	a.mux.HandleFunc("DELETE /api/delivery-notes/{id}", dh.Delete)
	a.mux.HandleFunc("POST /api/delivery-notes/{id}/status", dh.SetStatus)
	a.mux.HandleFunc("GET /api/delivery-notes/{id}/pdf", ex.DeliveryNotePDF)

	// Templates
	a.mux.HandleFunc("GET /api/templates", th.List)
	a.mux.HandleFunc("PUT /api/templates", th.Save)
	a.mux.HandleFunc("GET /api/templates/{id}", th.Get)

	// Company identity
	a.mux.HandleFunc("GET /api/company", coh.Get)
	a.mux.HandleFunc("PUT /api/company", coh.Update)

	// Reports
	a.mux.HandleFunc("GET /api/reports/etat104/pdf", ex.Etat104PDF)
	a.mux.HandleFunc("GET /api/reports/etat104/xlsx", ex.Etat104Excel)
}
