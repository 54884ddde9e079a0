package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/SYPclub/facture-flow/internal/models"
	"github.com/SYPclub/facture-flow/internal/money"
)

// DocumentService carries the proforma / invoice / delivery-note lifecycle:
// creation with sequential numbering, guarded updates, the two conversion
// flows and the stock movement on delivery. Every multi-row change runs in
// one transaction.
type DocumentService struct {
	db *gorm.DB
}

func NewDocumentService(db *gorm.DB) *DocumentService {
	return &DocumentService{db: db}
}

// prepareItems assigns ids and positions, completes product snapshots for
// lines that only reference a product, and recomputes line totals.
func prepareItems(tx *gorm.DB, items []models.LineItem) error {
	for i := range items {
		it := &items[i]
		if it.ID == "" {
			it.ID = models.NewID()
		}
		it.Position = i
		if it.ProductID != "" && it.ProductName == "" {
			var p models.Product
			if err := tx.First(&p, "id = ?", it.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("line %d: product %s: %w", i, it.ProductID, ErrNotFound)
				}
				return err
			}
			it.SnapshotProduct(&p)
		}
	}
	return nil
}

func checkClient(tx *gorm.DB, clientID string) error {
	var c models.Client
	if err := tx.Select("id").First(&c, "id = ?", clientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("client %s: %w", clientID, ErrNotFound)
		}
		return err
	}
	return nil
}

func asNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// preloadDocument attaches the client and the ordered line items.
func preloadDocument(db *gorm.DB) *gorm.DB {
	return db.Preload("Client").Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

// replaceItems swaps the stored line set of a document for a fresh one.
func replaceItems(tx *gorm.DB, docID, docType string, items []models.LineItem) error {
	if err := tx.Where("document_id = ? AND document_type = ?", docID, docType).
		Delete(&models.LineItem{}).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].DocumentID = docID
		items[i].DocumentType = docType
	}
	if len(items) == 0 {
		return nil
	}
	return tx.Create(&items).Error
}

// ---- Proformas ----

func (s *DocumentService) CreateProforma(ctx context.Context, pf *models.Proforma) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkClient(tx, pf.ClientID); err != nil {
			return err
		}
		if err := prepareItems(tx, pf.Items); err != nil {
			return err
		}
		if pf.ID == "" {
			pf.ID = models.NewID()
		}
		if pf.IssueDate.IsZero() {
			pf.IssueDate = time.Now()
		}
		if pf.Status == "" {
			pf.Status = models.ProformaStatusDraft
		}
		number, err := nextNumber(tx, &models.Proforma{}, proformaPrefix, pf.IssueDate.Year())
		if err != nil {
			return err
		}
		pf.Number = number
		pf.RecomputeTotals()
		return tx.Create(pf).Error
	})
}

func (s *DocumentService) GetProforma(ctx context.Context, id string) (*models.Proforma, error) {
	var pf models.Proforma
	err := preloadDocument(s.db.WithContext(ctx)).First(&pf, "id = ?", id).Error
	if err != nil {
		return nil, asNotFound(err)
	}
	return &pf, nil
}

func (s *DocumentService) ListProformas(ctx context.Context) ([]models.Proforma, error) {
	var pfs []models.Proforma
	err := preloadDocument(s.db.WithContext(ctx)).
		Order("issue_date DESC, number DESC").Find(&pfs).Error
	return pfs, err
}

// UpdateProforma replaces the mutable fields and the whole item set. Locked
// once the proforma left the draft/sent states.
func (s *DocumentService) UpdateProforma(ctx context.Context, pf *models.Proforma) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Proforma
		if err := tx.First(&current, "id = ?", pf.ID).Error; err != nil {
			return asNotFound(err)
		}
		if !current.CanEdit() {
			return ErrLocked
		}
		if pf.ClientID != current.ClientID {
			if err := checkClient(tx, pf.ClientID); err != nil {
				return err
			}
		}
		if err := prepareItems(tx, pf.Items); err != nil {
			return err
		}
		pf.Number = current.Number
		pf.RecomputeTotals()
		if err := replaceItems(tx, pf.ID, models.DocumentTypeProforma, pf.Items); err != nil {
			return err
		}
		return tx.Model(&current).Select(
			"client_id", "issue_date", "due_date", "notes", "payment_method",
			"stamp_tax", "subtotal", "tax_total", "total",
		).Updates(pf).Error
	})
}

func (s *DocumentService) DeleteProforma(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Proforma{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// SetProformaStatus moves a proforma between the hand-set states. The
// approved state is only reached through conversion.
func (s *DocumentService) SetProformaStatus(ctx context.Context, id string, status models.ProformaStatus) error {
	switch status {
	case models.ProformaStatusDraft, models.ProformaStatusSent, models.ProformaStatusRejected:
	default:
		return ErrInvalidStatus
	}
	res := s.db.WithContext(ctx).Model(&models.Proforma{}).
		Where("id = ? AND status <> ?", id, models.ProformaStatusApproved).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInvalidStatus
	}
	return nil
}

// ConvertProformaToInvoice creates the final invoice from an accepted
// proforma: same client, copied items with fresh ids, copied stamp tax and
// notes, a fresh invoice number. The proforma flips to approved and keeps a
// one-way back-reference from the invoice.
func (s *DocumentService) ConvertProformaToInvoice(ctx context.Context, proformaID string) (*models.FinalInvoice, error) {
	var inv *models.FinalInvoice
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pf models.Proforma
		if err := preloadDocument(tx).First(&pf, "id = ?", proformaID).Error; err != nil {
			return asNotFound(err)
		}
		if pf.Status == models.ProformaStatusRejected {
			return ErrProformaRejected
		}
		var existing int64
		if err := tx.Model(&models.FinalInvoice{}).Unscoped().
			Where("proforma_id = ?", proformaID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyConverted
		}

		now := time.Now()
		number, err := nextNumber(tx, &models.FinalInvoice{}, invoicePrefix, now.Year())
		if err != nil {
			return err
		}
		inv = &models.FinalInvoice{
			ID:            models.NewID(),
			Number:        number,
			ClientID:      pf.ClientID,
			IssueDate:     now,
			DueDate:       pf.DueDate,
			Status:        models.InvoiceStatusUnpaid,
			Notes:         pf.Notes,
			PaymentMethod: pf.PaymentMethod,
			StampTax:      pf.StampTax,
			ProformaID:    pf.ID,
			Items:         copyItems(pf.Items),
		}
		inv.RecomputeTotals()
		if err := tx.Create(inv).Error; err != nil {
			return err
		}
		if err := addClientDebt(tx, inv.ClientID, inv.Total); err != nil {
			return err
		}
		return tx.Model(&pf).Update("status", models.ProformaStatusApproved).Error
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// copyItems duplicates a line set for a new document: fresh ids, owner keys
// cleared so the create wires them to the new parent.
func copyItems(items []models.LineItem) []models.LineItem {
	out := make([]models.LineItem, len(items))
	for i, it := range items {
		it.ID = models.NewID()
		it.DocumentID = ""
		it.DocumentType = ""
		it.CreatedAt = time.Time{}
		it.UpdatedAt = time.Time{}
		out[i] = it
	}
	return out
}

// addClientDebt shifts the client's running unpaid balance.
func addClientDebt(tx *gorm.DB, clientID string, delta float64) error {
	if delta == 0 {
		return nil
	}
	return tx.Model(&models.Client{}).Where("id = ?", clientID).
		Update("debt", gorm.Expr("round(debt + ?, 2)", delta)).Error
}

// ---- Final invoices ----

func (s *DocumentService) CreateInvoice(ctx context.Context, inv *models.FinalInvoice) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkClient(tx, inv.ClientID); err != nil {
			return err
		}
		if err := prepareItems(tx, inv.Items); err != nil {
			return err
		}
		if inv.ID == "" {
			inv.ID = models.NewID()
		}
		if inv.IssueDate.IsZero() {
			inv.IssueDate = time.Now()
		}
		inv.Status = models.InvoiceStatusUnpaid
		inv.AmountPaid = 0
		number, err := nextNumber(tx, &models.FinalInvoice{}, invoicePrefix, inv.IssueDate.Year())
		if err != nil {
			return err
		}
		inv.Number = number
		inv.RecomputeTotals()
		if err := tx.Create(inv).Error; err != nil {
			return err
		}
		return addClientDebt(tx, inv.ClientID, inv.Total)
	})
}

func (s *DocumentService) GetInvoice(ctx context.Context, id string) (*models.FinalInvoice, error) {
	var inv models.FinalInvoice
	err := preloadDocument(s.db.WithContext(ctx)).
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("date ASC") }).
		First(&inv, "id = ?", id).Error
	if err != nil {
		return nil, asNotFound(err)
	}
	return &inv, nil
}

func (s *DocumentService) ListInvoices(ctx context.Context) ([]models.FinalInvoice, error) {
	var invs []models.FinalInvoice
	err := preloadDocument(s.db.WithContext(ctx)).
		Order("issue_date DESC, number DESC").Find(&invs).Error
	return invs, err
}

// UpdateInvoice replaces the mutable fields and the item set while the
// invoice is still payable. The client's debt follows the total delta.
func (s *DocumentService) UpdateInvoice(ctx context.Context, inv *models.FinalInvoice) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.FinalInvoice
		if err := tx.First(&current, "id = ?", inv.ID).Error; err != nil {
			return asNotFound(err)
		}
		if !current.CanEdit() {
			return ErrLocked
		}
		if inv.ClientID != current.ClientID {
			if err := checkClient(tx, inv.ClientID); err != nil {
				return err
			}
		}
		if err := prepareItems(tx, inv.Items); err != nil {
			return err
		}
		inv.Number = current.Number
		inv.RecomputeTotals()
		if err := replaceItems(tx, inv.ID, models.DocumentTypeInvoice, inv.Items); err != nil {
			return err
		}
		if err := tx.Model(&current).Select(
			"client_id", "issue_date", "due_date", "notes", "payment_method",
			"payment_reference", "stamp_tax", "subtotal", "tax_total", "total",
		).Updates(inv).Error; err != nil {
			return err
		}
		if inv.ClientID != current.ClientID {
			// The unpaid balance follows the invoice to its new client.
			if err := addClientDebt(tx, current.ClientID, -current.Outstanding()); err != nil {
				return err
			}
			return addClientDebt(tx, inv.ClientID, money.Round(inv.Total-current.AmountPaid))
		}
		return addClientDebt(tx, current.ClientID, money.Round(inv.Total-current.Total))
	})
}

// CancelInvoice voids an invoice; the still-unpaid part leaves the client's
// debt.
func (s *DocumentService) CancelInvoice(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inv models.FinalInvoice
		if err := tx.First(&inv, "id = ?", id).Error; err != nil {
			return asNotFound(err)
		}
		if inv.Status == models.InvoiceStatusCancelled {
			return nil
		}
		if err := tx.Model(&inv).Update("status", models.InvoiceStatusCancelled).Error; err != nil {
			return err
		}
		return addClientDebt(tx, inv.ClientID, -inv.Outstanding())
	})
}

// DeleteInvoice removes an invoice that never took a payment.
func (s *DocumentService) DeleteInvoice(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inv models.FinalInvoice
		if err := tx.First(&inv, "id = ?", id).Error; err != nil {
			return asNotFound(err)
		}
		if inv.AmountPaid > 0 {
			return ErrInvoiceHasPayments
		}
		if err := tx.Delete(&inv).Error; err != nil {
			return err
		}
		if inv.Status != models.InvoiceStatusCancelled {
			return addClientDebt(tx, inv.ClientID, -inv.Total)
		}
		return nil
	})
}

// ConvertInvoiceToDelivery creates the delivery note for an invoice: copied
// items, pending status, a one-way back-reference to the invoice.
func (s *DocumentService) ConvertInvoiceToDelivery(ctx context.Context, invoiceID string) (*models.DeliveryNote, error) {
	var note *models.DeliveryNote
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inv models.FinalInvoice
		if err := preloadDocument(tx).First(&inv, "id = ?", invoiceID).Error; err != nil {
			return asNotFound(err)
		}
		if inv.Status == models.InvoiceStatusCancelled || inv.Status == models.InvoiceStatusCredited {
			return ErrInvalidStatus
		}

		now := time.Now()
		number, err := nextNumber(tx, &models.DeliveryNote{}, deliveryPrefix, now.Year())
		if err != nil {
			return err
		}
		note = &models.DeliveryNote{
			ID:             models.NewID(),
			Number:         number,
			ClientID:       inv.ClientID,
			IssueDate:      now,
			Status:         models.DeliveryStatusPending,
			Notes:          inv.Notes,
			FinalInvoiceID: inv.ID,
			Items:          copyItems(inv.Items),
		}
		note.RecomputeTotals()
		return tx.Create(note).Error
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

// ---- Delivery notes ----

func (s *DocumentService) CreateDeliveryNote(ctx context.Context, note *models.DeliveryNote) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkClient(tx, note.ClientID); err != nil {
			return err
		}
		if err := prepareItems(tx, note.Items); err != nil {
			return err
		}
		if note.ID == "" {
			note.ID = models.NewID()
		}
		if note.IssueDate.IsZero() {
			note.IssueDate = time.Now()
		}
		note.Status = models.DeliveryStatusPending
		number, err := nextNumber(tx, &models.DeliveryNote{}, deliveryPrefix, note.IssueDate.Year())
		if err != nil {
			return err
		}
		note.Number = number
		note.RecomputeTotals()
		return tx.Create(note).Error
	})
}

func (s *DocumentService) GetDeliveryNote(ctx context.Context, id string) (*models.DeliveryNote, error) {
	var note models.DeliveryNote
	err := preloadDocument(s.db.WithContext(ctx)).First(&note, "id = ?", id).Error
	if err != nil {
		return nil, asNotFound(err)
	}
	return &note, nil
}

func (s *DocumentService) ListDeliveryNotes(ctx context.Context) ([]models.DeliveryNote, error) {
	var notes []models.DeliveryNote
	err := preloadDocument(s.db.WithContext(ctx)).
		Order("issue_date DESC, number DESC").Find(&notes).Error
	return notes, err
}

func (s *DocumentService) UpdateDeliveryNote(ctx context.Context, note *models.DeliveryNote) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.DeliveryNote
		if err := tx.First(&current, "id = ?", note.ID).Error; err != nil {
			return asNotFound(err)
		}
		if !current.CanEdit() {
			return ErrLocked
		}
		if note.ClientID != current.ClientID {
			if err := checkClient(tx, note.ClientID); err != nil {
				return err
			}
		}
		if err := prepareItems(tx, note.Items); err != nil {
			return err
		}
		note.Number = current.Number
		note.RecomputeTotals()
		if err := replaceItems(tx, note.ID, models.DocumentTypeDelivery, note.Items); err != nil {
			return err
		}
		return tx.Model(&current).Select(
			"client_id", "issue_date", "delivery_date", "notes",
			"driver_name", "vehicle_id", "carrier",
			"subtotal", "tax_total", "total",
		).Updates(note).Error
	})
}

func (s *DocumentService) DeleteDeliveryNote(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.DeliveryNote{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetDeliveryStatus moves a note through its lifecycle. Reaching delivered
// decrements product stock line by line; leaving delivered for cancelled puts
// the stock back.
func (s *DocumentService) SetDeliveryStatus(ctx context.Context, id string, status models.DeliveryStatus) error {
	switch status {
	case models.DeliveryStatusPending, models.DeliveryStatusDelivered, models.DeliveryStatusCancelled:
	default:
		return ErrInvalidStatus
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var note models.DeliveryNote
		if err := preloadDocument(tx).First(&note, "id = ?", id).Error; err != nil {
			return asNotFound(err)
		}
		if note.Status == status {
			return nil
		}

		switch {
		case status == models.DeliveryStatusDelivered && note.Status == models.DeliveryStatusPending:
			if err := moveStock(tx, note.Items, -1); err != nil {
				return err
			}
			if note.DeliveryDate.IsZero() {
				if err := tx.Model(&note).Update("delivery_date", time.Now()).Error; err != nil {
					return err
				}
			}
		case status == models.DeliveryStatusCancelled && note.Status == models.DeliveryStatusDelivered:
			if err := moveStock(tx, note.Items, 1); err != nil {
				return err
			}
		case status == models.DeliveryStatusCancelled && note.Status == models.DeliveryStatusPending:
			// nothing to move
		default:
			return ErrInvalidStatus
		}
		return tx.Model(&note).Update("status", status).Error
	})
}

// moveStock applies one delivery's quantities to product stock. direction -1
// takes goods out, +1 puts them back. Lines without a product reference
// (free-text services) move nothing.
func moveStock(tx *gorm.DB, items []models.LineItem, direction int) error {
	for i := range items {
		it := &items[i]
		if it.ProductID == "" {
			continue
		}
		var p models.Product
		if err := tx.First(&p, "id = ?", it.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue // product removed since the note was written
			}
			return err
		}
		qty := it.Quantity * direction
		if p.StockQuantity+qty < 0 {
			return fmt.Errorf("%w: %s has %d, needs %d", ErrInsufficientStock, p.Name, p.StockQuantity, it.Quantity)
		}
		if err := tx.Model(&p).Update("stock_quantity", gorm.Expr("stock_quantity + ?", qty)).Error; err != nil {
			return err
		}
	}
	return nil
}
