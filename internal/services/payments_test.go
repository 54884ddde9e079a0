package services

import (
	"context"
	"errors"
	"testing"

	"github.com/SYPclub/facture-flow/internal/models"
)

func TestPaymentLifecycle(t *testing.T) {
	db := setupServiceTestDB(t)
	docs := NewDocumentService(db)
	pay := NewPaymentService(db)
	ctx := context.Background()
	client := seedClient(t, db)

	inv := &models.FinalInvoice{ClientID: client.ID, Items: []models.LineItem{testLine()}}
	if err := docs.CreateInvoice(ctx, inv); err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	// total 321.30

	p1 := &models.Payment{InvoiceID: inv.ID, Amount: 100, Method: models.PaymentMethodBankTransfer, Reference: "VIR-881"}
	if err := pay.Add(ctx, p1); err != nil {
		t.Fatalf("Add: %v", err)
	}
	got, err := docs.GetInvoice(ctx, inv.ID)
	if err != nil {
		t.Fatalf("GetInvoice: %v", err)
	}
	if got.Status != models.InvoiceStatusPartiallyPaid {
		t.Errorf("status = %q, want partially_paid", got.Status)
	}
	if got.AmountPaid != 100 {
		t.Errorf("amount paid = %v, want 100", got.AmountPaid)
	}
	if got.PaidDate != nil {
		t.Error("paid date must stay empty on a partial payment")
	}

	// a payment above the balance is rejected
	over := &models.Payment{InvoiceID: inv.ID, Amount: 300, Method: models.PaymentMethodCash}
	if err := pay.Add(ctx, over); !errors.Is(err, ErrPaymentExceedsBalance) {
		t.Errorf("Add(over) error = %v, want ErrPaymentExceedsBalance", err)
	}

	p2 := &models.Payment{InvoiceID: inv.ID, Amount: 221.30, Method: models.PaymentMethodCash}
	if err := pay.Add(ctx, p2); err != nil {
		t.Fatalf("Add: %v", err)
	}
	got, err = docs.GetInvoice(ctx, inv.ID)
	if err != nil {
		t.Fatalf("GetInvoice: %v", err)
	}
	if got.Status != models.InvoiceStatusPaid {
		t.Errorf("status = %q, want paid", got.Status)
	}
	if got.PaidDate == nil {
		t.Error("paid date must be stamped on full settlement")
	}
	if got.Outstanding() != 0 {
		t.Errorf("outstanding = %v, want 0", got.Outstanding())
	}

	var clientAfter models.Client
	if err := db.First(&clientAfter, "id = ?", client.ID).Error; err != nil {
		t.Fatalf("reload client: %v", err)
	}
	if clientAfter.Debt != 0 {
		t.Errorf("client debt = %v, want 0 once settled", clientAfter.Debt)
	}

	// deleting the second payment reopens the invoice
	if err := pay.Delete(ctx, p2.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, err = docs.GetInvoice(ctx, inv.ID)
	if err != nil {
		t.Fatalf("GetInvoice: %v", err)
	}
	if got.Status != models.InvoiceStatusPartiallyPaid || got.AmountPaid != 100 {
		t.Errorf("after reversal: status %q, paid %v; want partially_paid / 100", got.Status, got.AmountPaid)
	}
	if got.PaidDate != nil {
		t.Error("paid date must be cleared on reversal")
	}
}

func TestAddPaymentValidation(t *testing.T) {
	db := setupServiceTestDB(t)
	docs := NewDocumentService(db)
	pay := NewPaymentService(db)
	ctx := context.Background()
	client := seedClient(t, db)

	inv := &models.FinalInvoice{ClientID: client.ID, Items: []models.LineItem{testLine()}}
	if err := docs.CreateInvoice(ctx, inv); err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	if err := pay.Add(ctx, &models.Payment{InvoiceID: inv.ID, Amount: 0, Method: models.PaymentMethodCash}); err == nil {
		t.Error("Add accepted a zero amount")
	}
	if err := pay.Add(ctx, &models.Payment{InvoiceID: inv.ID, Amount: 50, Method: "barter"}); err == nil {
		t.Error("Add accepted an unknown method")
	}
	if err := pay.Add(ctx, &models.Payment{InvoiceID: "ghost", Amount: 50, Method: models.PaymentMethodCash}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Add(ghost) error = %v, want ErrNotFound", err)
	}

	if err := docs.CancelInvoice(ctx, inv.ID); err != nil {
		t.Fatalf("CancelInvoice: %v", err)
	}
	if err := pay.Add(ctx, &models.Payment{InvoiceID: inv.ID, Amount: 50, Method: models.PaymentMethodCash}); !errors.Is(err, ErrInvoiceNotPayable) {
		t.Errorf("Add(cancelled) error = %v, want ErrInvoiceNotPayable", err)
	}
}

func TestMarkPaid(t *testing.T) {
	db := setupServiceTestDB(t)
	docs := NewDocumentService(db)
	pay := NewPaymentService(db)
	ctx := context.Background()
	client := seedClient(t, db)

	inv := &models.FinalInvoice{ClientID: client.ID, Items: []models.LineItem{testLine()}}
	if err := docs.CreateInvoice(ctx, inv); err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	p, err := pay.MarkPaid(ctx, inv.ID, "")
	if err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}
	if p.Amount != 321.3 {
		t.Errorf("settlement amount = %v, want 321.3", p.Amount)
	}
	if p.Method != models.PaymentMethodCash {
		t.Errorf("default method = %q, want cash", p.Method)
	}

	got, err := docs.GetInvoice(ctx, inv.ID)
	if err != nil {
		t.Fatalf("GetInvoice: %v", err)
	}
	if got.Status != models.InvoiceStatusPaid || got.PaidDate == nil {
		t.Errorf("after MarkPaid: status %q, paid date %v", got.Status, got.PaidDate)
	}

	if _, err := pay.MarkPaid(ctx, inv.ID, ""); !errors.Is(err, ErrInvoiceNotPayable) {
		t.Errorf("second MarkPaid error = %v, want ErrInvoiceNotPayable", err)
	}
}

func TestListPayments(t *testing.T) {
	db := setupServiceTestDB(t)
	docs := NewDocumentService(db)
	pay := NewPaymentService(db)
	ctx := context.Background()
	client := seedClient(t, db)

	inv := &models.FinalInvoice{ClientID: client.ID, Items: []models.LineItem{testLine()}}
	if err := docs.CreateInvoice(ctx, inv); err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	for _, amount := range []float64{50, 70} {
		if err := pay.Add(ctx, &models.Payment{InvoiceID: inv.ID, Amount: amount, Method: models.PaymentMethodCheck}); err != nil {
			t.Fatalf("Add(%v): %v", amount, err)
		}
	}

	ps, err := pay.List(ctx, inv.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ps) != 2 {
		t.Errorf("List() = %d payments, want 2", len(ps))
	}
}
