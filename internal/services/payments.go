package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/SYPclub/facture-flow/internal/models"
	"github.com/SYPclub/facture-flow/internal/money"
)

// PaymentService records and reverses money received against final
// invoices. Each entry moves the invoice's paid amount, flips its status
// between unpaid, partially_paid and paid, and shifts the client's debt.
type PaymentService struct {
	db *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{db: db}
}

// Add records a payment. The amount must be positive and must not exceed
// the invoice's outstanding balance; the date defaults to today.
func (s *PaymentService) Add(ctx context.Context, p *models.Payment) error {
	if p.Amount <= 0 {
		return ErrPaymentExceedsBalance
	}
	if !models.ValidPaymentMethod(p.Method) {
		return ErrInvalidStatus
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inv models.FinalInvoice
		if err := tx.First(&inv, "id = ?", p.InvoiceID).Error; err != nil {
			return asNotFound(err)
		}
		if inv.Status == models.InvoiceStatusCancelled || inv.Status == models.InvoiceStatusCredited {
			return ErrInvoiceNotPayable
		}
		amount := money.Round(p.Amount)
		if amount > inv.Outstanding() {
			return ErrPaymentExceedsBalance
		}

		if p.ID == "" {
			p.ID = models.NewID()
		}
		if p.Date.IsZero() {
			p.Date = time.Now()
		}
		p.Amount = amount
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		inv.AmountPaid = money.Round(inv.AmountPaid + amount)
		if err := applyPaidState(tx, &inv, p.Date); err != nil {
			return err
		}
		return addClientDebt(tx, inv.ClientID, -amount)
	})
}

// Delete reverses a recorded payment.
func (s *PaymentService) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Payment
		if err := tx.First(&p, "id = ?", id).Error; err != nil {
			return asNotFound(err)
		}
		var inv models.FinalInvoice
		if err := tx.First(&inv, "id = ?", p.InvoiceID).Error; err != nil {
			return asNotFound(err)
		}
		if err := tx.Delete(&p).Error; err != nil {
			return err
		}
		inv.AmountPaid = money.Round(inv.AmountPaid - p.Amount)
		if inv.AmountPaid < 0 {
			inv.AmountPaid = 0
		}
		if err := applyPaidState(tx, &inv, time.Time{}); err != nil {
			return err
		}
		return addClientDebt(tx, inv.ClientID, p.Amount)
	})
}

// MarkPaid settles the whole outstanding balance in one entry dated today.
func (s *PaymentService) MarkPaid(ctx context.Context, invoiceID string, method models.PaymentMethod) (*models.Payment, error) {
	if method == "" {
		method = models.PaymentMethodCash
	}
	var inv models.FinalInvoice
	if err := s.db.WithContext(ctx).First(&inv, "id = ?", invoiceID).Error; err != nil {
		return nil, asNotFound(err)
	}
	if inv.Outstanding() == 0 {
		return nil, ErrInvoiceNotPayable
	}
	p := &models.Payment{
		InvoiceID: invoiceID,
		Amount:    inv.Outstanding(),
		Date:      time.Now(),
		Method:    method,
		Notes:     "Règlement intégral",
	}
	if err := s.Add(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// List returns an invoice's payments, oldest first.
func (s *PaymentService) List(ctx context.Context, invoiceID string) ([]models.Payment, error) {
	var ps []models.Payment
	err := s.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).Order("date ASC").Find(&ps).Error
	return ps, err
}

// applyPaidState persists the paid amount and the status it implies. paidAt
// stamps the paid date on full settlement; a reversal clears it.
func applyPaidState(tx *gorm.DB, inv *models.FinalInvoice, paidAt time.Time) error {
	updates := map[string]interface{}{"amount_paid": inv.AmountPaid}
	switch {
	case inv.Outstanding() == 0:
		updates["status"] = models.InvoiceStatusPaid
		if paidAt.IsZero() {
			paidAt = time.Now()
		}
		updates["paid_date"] = paidAt
	case inv.AmountPaid > 0:
		updates["status"] = models.InvoiceStatusPartiallyPaid
		updates["paid_date"] = nil
	default:
		updates["status"] = models.InvoiceStatusUnpaid
		updates["paid_date"] = nil
	}
	return tx.Model(inv).Updates(updates).Error
}
