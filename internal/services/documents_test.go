package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/SYPclub/facture-flow/internal/models"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedClient(t *testing.T, db *gorm.DB) *models.Client {
	t.Helper()
	c := &models.Client{ID: models.NewID(), Name: "SARL Alpha", TaxID: "111222333"}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return c
}

func seedProduct(t *testing.T, db *gorm.DB, stock int) *models.Product {
	t.Helper()
	p := &models.Product{
		ID: models.NewID(), Code: "CIM-50", Name: "Ciment 50kg",
		UnitPrice: 100, TaxRate: 19, Unit: "sac", StockQuantity: stock,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func testLine() models.LineItem {
	return models.LineItem{
		ProductName: "Ciment 50kg", ProductCode: "CIM-50", Unit: "sac",
		Quantity: 3, UnitPrice: 100, Discount: 10, TaxRate: 19,
	}
}

func TestCreateProforma(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewDocumentService(db)
	ctx := context.Background()
	client := seedClient(t, db)

	pf := &models.Proforma{ClientID: client.ID, Items: []models.LineItem{testLine()}}
	if err := svc.CreateProforma(ctx, pf); err != nil {
		t.Fatalf("CreateProforma: %v", err)
	}
	wantNumber := fmt.Sprintf("PRO-%d-0001", time.Now().Year())
	if pf.Number != wantNumber {
		t.Errorf("number = %q, want %q", pf.Number, wantNumber)
	}
	if pf.Status != models.ProformaStatusDraft {
		t.Errorf("status = %q, want draft", pf.Status)
	}
	if pf.Subtotal != 270 || pf.TaxTotal != 51.3 || pf.Total != 321.3 {
		t.Errorf("totals = %v/%v/%v, want 270/51.3/321.3", pf.Subtotal, pf.TaxTotal, pf.Total)
	}

	second := &models.Proforma{ClientID: client.ID, Items: []models.LineItem{testLine()}}
	if err := svc.CreateProforma(ctx, second); err != nil {
		t.Fatalf("CreateProforma: %v", err)
	}
	if want := fmt.Sprintf("PRO-%d-0002", time.Now().Year()); second.Number != want {
		t.Errorf("second number = %q, want %q", second.Number, want)
	}
}

func TestCreateProformaUnknownClient(t *testing.T) {
	svc := NewDocumentService(setupServiceTestDB(t))
	pf := &models.Proforma{ClientID: "ghost", Items: []models.LineItem{testLine()}}
	if err := svc.CreateProforma(context.Background(), pf); !errors.Is(err, ErrNotFound) {
		t.Errorf("CreateProforma error = %v, want ErrNotFound", err)
	}
}

func TestCreateProformaSnapshotsProduct(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewDocumentService(db)
	client := seedClient(t, db)
	product := seedProduct(t, db, 10)

	pf := &models.Proforma{
		ClientID: client.ID,
		Items:    []models.LineItem{{ProductID: product.ID, Quantity: 2}},
	}
	if err := svc.CreateProforma(context.Background(), pf); err != nil {
		t.Fatalf("CreateProforma: %v", err)
	}
	it := pf.Items[0]
	if it.ProductName != "Ciment 50kg" || it.UnitPrice != 100 || it.TaxRate != 19 {
		t.Errorf("snapshot not taken: %+v", it)
	}
	if it.Total != 238 { // 2*100 = 200 excl, 38 tax
		t.Errorf("total = %v, want 238", it.Total)
	}
}

func TestUpdateProformaLockedAfterApproval(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewDocumentService(db)
	ctx := context.Background()
	client := seedClient(t, db)

	pf := &models.Proforma{ClientID: client.ID, Items: []models.LineItem{testLine()}}
	if err := svc.CreateProforma(ctx, pf); err != nil {
		t.Fatalf("CreateProforma: %v", err)
	}
	if _, err := svc.ConvertProformaToInvoice(ctx, pf.ID); err != nil {
		t.Fatalf("convert: %v", err)
	}

	pf.Notes = "changed"
	if err := svc.UpdateProforma(ctx, pf); !errors.Is(err, ErrLocked) {
		t.Errorf("UpdateProforma error = %v, want ErrLocked", err)
	}
}

func TestUpdateProformaReplacesItems(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewDocumentService(db)
	ctx := context.Background()
	client := seedClient(t, db)

	pf := &models.Proforma{ClientID: client.ID, Items: []models.LineItem{testLine()}}
	if err := svc.CreateProforma(ctx, pf); err != nil {
		t.Fatalf("CreateProforma: %v", err)
	}

	upd := &models.Proforma{
		ID: pf.ID, ClientID: client.ID,
		Items: []models.LineItem{testLine(), testLine()},
	}
	if err := svc.UpdateProforma(ctx, upd); err != nil {
		t.Fatalf("UpdateProforma: %v", err)
	}

	got, err := svc.GetProforma(ctx, pf.ID)
	if err != nil {
		t.Fatalf("GetProforma: %v", err)
	}
	if len(got.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(got.Items))
	}
	if got.Total != 642.6 {
		t.Errorf("total = %v, want 642.6", got.Total)
	}
	if got.Number != pf.Number {
		t.Errorf("number changed on update: %q -> %q", pf.Number, got.Number)
	}
}

func TestConvertProformaToInvoice(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewDocumentService(db)
	ctx := context.Background()
	client := seedClient(t, db)

	pf := &models.Proforma{
		ClientID: client.ID,
		Items:    []models.LineItem{testLine()},
		Notes:    "livraison urgente",
		StampTax: 40, PaymentMethod: models.PaymentMethodCash,
	}
	if err := svc.CreateProforma(ctx, pf); err != nil {
		t.Fatalf("CreateProforma: %v", err)
	}

	inv, err := svc.ConvertProformaToInvoice(ctx, pf.ID)
	if err != nil {
		t.Fatalf("ConvertProformaToInvoice: %v", err)
	}
	if inv.Status != models.InvoiceStatusUnpaid {
		t.Errorf("status = %q, want unpaid", inv.Status)
	}
	if inv.ProformaID != pf.ID {
		t.Errorf("proforma back-reference = %q", inv.ProformaID)
	}
	if inv.StampTax != 40 || inv.Notes != "livraison urgente" {
		t.Errorf("stamp tax / notes not carried: %+v", inv)
	}
	if want := fmt.Sprintf("INV-%d-0001", time.Now().Year()); inv.Number != want {
		t.Errorf("number = %q, want %q", inv.Number, want)
	}
	if len(inv.Items) != 1 || inv.Items[0].ID == pf.Items[0].ID {
		t.Error("items must be copied with fresh ids")
	}
	if inv.Total != pf.Total {
		t.Errorf("total = %v, want %v", inv.Total, pf.Total)
	}

	var pfAfter models.Proforma
	if err := db.First(&pfAfter, "id = ?", pf.ID).Error; err != nil {
		t.Fatalf("reload proforma: %v", err)
	}
	if pfAfter.Status != models.ProformaStatusApproved {
		t.Errorf("proforma status = %q, want approved", pfAfter.Status)
	}

	var clientAfter models.Client
	if err := db.First(&clientAfter, "id = ?", client.ID).Error; err != nil {
		t.Fatalf("reload client: %v", err)
	}
	if clientAfter.Debt != inv.Total {
		t.Errorf("client debt = %v, want %v", clientAfter.Debt, inv.Total)
	}

	if _, err := svc.ConvertProformaToInvoice(ctx, pf.ID); !errors.Is(err, ErrAlreadyConverted) {
		t.Errorf("second conversion error = %v, want ErrAlreadyConverted", err)
	}
}

func TestConvertRejectedProforma(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewDocumentService(db)
	ctx := context.Background()
	client := seedClient(t, db)

	pf := &models.Proforma{ClientID: client.ID, Items: []models.LineItem{testLine()}}
	if err := svc.CreateProforma(ctx, pf); err != nil {
		t.Fatalf("CreateProforma: %v", err)
	}
	if err := svc.SetProformaStatus(ctx, pf.ID, models.ProformaStatusRejected); err != nil {
		t.Fatalf("SetProformaStatus: %v", err)
	}
	if _, err := svc.ConvertProformaToInvoice(ctx, pf.ID); !errors.Is(err, ErrProformaRejected) {
		t.Errorf("convert error = %v, want ErrProformaRejected", err)
	}
}

func TestConvertInvoiceToDelivery(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewDocumentService(db)
	ctx := context.Background()
	client := seedClient(t, db)

	inv := &models.FinalInvoice{ClientID: client.ID, Items: []models.LineItem{testLine()}}
	if err := svc.CreateInvoice(ctx, inv); err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	note, err := svc.ConvertInvoiceToDelivery(ctx, inv.ID)
	if err != nil {
		t.Fatalf("ConvertInvoiceToDelivery: %v", err)
	}
	if note.Status != models.DeliveryStatusPending {
		t.Errorf("status = %q, want pending_delivery", note.Status)
	}
	if note.FinalInvoiceID != inv.ID {
		t.Errorf("invoice back-reference = %q", note.FinalInvoiceID)
	}
	if want := fmt.Sprintf("DN-%d-0001", time.Now().Year()); note.Number != want {
		t.Errorf("number = %q, want %q", note.Number, want)
	}
	if len(note.Items) != 1 || note.Items[0].ID == inv.Items[0].ID {
		t.Error("items must be copied with fresh ids")
	}
}

func TestSetDeliveryStatusMovesStock(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewDocumentService(db)
	ctx := context.Background()
	client := seedClient(t, db)
	product := seedProduct(t, db, 5)

	note := &models.DeliveryNote{
		ClientID: client.ID,
		Items:    []models.LineItem{{ProductID: product.ID, Quantity: 3}},
	}
	if err := svc.CreateDeliveryNote(ctx, note); err != nil {
		t.Fatalf("CreateDeliveryNote: %v", err)
	}

	if err := svc.SetDeliveryStatus(ctx, note.ID, models.DeliveryStatusDelivered); err != nil {
		t.Fatalf("SetDeliveryStatus: %v", err)
	}
	var p models.Product
	if err := db.First(&p, "id = ?", product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if p.StockQuantity != 2 {
		t.Errorf("stock after delivery = %d, want 2", p.StockQuantity)
	}

	// cancelling a delivered note puts the goods back
	if err := svc.SetDeliveryStatus(ctx, note.ID, models.DeliveryStatusCancelled); err != nil {
		t.Fatalf("SetDeliveryStatus(cancelled): %v", err)
	}
	if err := db.First(&p, "id = ?", product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if p.StockQuantity != 5 {
		t.Errorf("stock after cancellation = %d, want 5", p.StockQuantity)
	}
}

func TestSetDeliveryStatusInsufficientStock(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewDocumentService(db)
	ctx := context.Background()
	client := seedClient(t, db)
	product := seedProduct(t, db, 2)

	note := &models.DeliveryNote{
		ClientID: client.ID,
		Items:    []models.LineItem{{ProductID: product.ID, Quantity: 3}},
	}
	if err := svc.CreateDeliveryNote(ctx, note); err != nil {
		t.Fatalf("CreateDeliveryNote: %v", err)
	}
	if err := svc.SetDeliveryStatus(ctx, note.ID, models.DeliveryStatusDelivered); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("SetDeliveryStatus error = %v, want ErrInsufficientStock", err)
	}

	var noteAfter models.DeliveryNote
	if err := db.First(&noteAfter, "id = ?", note.ID).Error; err != nil {
		t.Fatalf("reload note: %v", err)
	}
	if noteAfter.Status != models.DeliveryStatusPending {
		t.Errorf("status = %q, the failed transition must roll back", noteAfter.Status)
	}
}

func TestDeleteInvoiceGuards(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewDocumentService(db)
	pay := NewPaymentService(db)
	ctx := context.Background()
	client := seedClient(t, db)

	inv := &models.FinalInvoice{ClientID: client.ID, Items: []models.LineItem{testLine()}}
	if err := svc.CreateInvoice(ctx, inv); err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	if err := pay.Add(ctx, &models.Payment{InvoiceID: inv.ID, Amount: 100, Method: models.PaymentMethodCash}); err != nil {
		t.Fatalf("Add payment: %v", err)
	}
	if err := svc.DeleteInvoice(ctx, inv.ID); !errors.Is(err, ErrInvoiceHasPayments) {
		t.Errorf("DeleteInvoice error = %v, want ErrInvoiceHasPayments", err)
	}
}

func TestCancelInvoiceClearsDebt(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewDocumentService(db)
	ctx := context.Background()
	client := seedClient(t, db)

	inv := &models.FinalInvoice{ClientID: client.ID, Items: []models.LineItem{testLine()}}
	if err := svc.CreateInvoice(ctx, inv); err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	if err := svc.CancelInvoice(ctx, inv.ID); err != nil {
		t.Fatalf("CancelInvoice: %v", err)
	}

	var clientAfter models.Client
	if err := db.First(&clientAfter, "id = ?", client.ID).Error; err != nil {
		t.Fatalf("reload client: %v", err)
	}
	if clientAfter.Debt != 0 {
		t.Errorf("client debt = %v, want 0 after cancellation", clientAfter.Debt)
	}
}

func TestUpdateInvoiceReassignsClientDebt(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewDocumentService(db)
	ctx := context.Background()
	alpha := seedClient(t, db)
	beta := &models.Client{ID: models.NewID(), Name: "EURL Beta", TaxID: "444555666"}
	if err := db.Create(beta).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}

	inv := &models.FinalInvoice{ClientID: alpha.ID, Items: []models.LineItem{testLine()}}
	if err := svc.CreateInvoice(ctx, inv); err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	update := &models.FinalInvoice{
		ID: inv.ID, ClientID: beta.ID,
		IssueDate: inv.IssueDate, DueDate: inv.DueDate,
		Items: []models.LineItem{testLine()},
	}
	if err := svc.UpdateInvoice(ctx, update); err != nil {
		t.Fatalf("UpdateInvoice: %v", err)
	}

	var alphaAfter, betaAfter models.Client
	if err := db.First(&alphaAfter, "id = ?", alpha.ID).Error; err != nil {
		t.Fatalf("reload client: %v", err)
	}
	if err := db.First(&betaAfter, "id = ?", beta.ID).Error; err != nil {
		t.Fatalf("reload client: %v", err)
	}
	if alphaAfter.Debt != 0 {
		t.Errorf("old client debt = %v, want 0 after reassignment", alphaAfter.Debt)
	}
	if betaAfter.Debt != 321.3 {
		t.Errorf("new client debt = %v, want 321.3", betaAfter.Debt)
	}
}

func TestUpdateInvoiceReassignsOnlyUnpaidBalance(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewDocumentService(db)
	pay := NewPaymentService(db)
	ctx := context.Background()
	alpha := seedClient(t, db)
	beta := &models.Client{ID: models.NewID(), Name: "EURL Beta", TaxID: "444555666"}
	if err := db.Create(beta).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}

	inv := &models.FinalInvoice{ClientID: alpha.ID, Items: []models.LineItem{testLine()}}
	if err := svc.CreateInvoice(ctx, inv); err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	if err := pay.Add(ctx, &models.Payment{InvoiceID: inv.ID, Amount: 100, Method: models.PaymentMethodBankTransfer}); err != nil {
		t.Fatalf("Add payment: %v", err)
	}

	update := &models.FinalInvoice{
		ID: inv.ID, ClientID: beta.ID,
		IssueDate: inv.IssueDate, DueDate: inv.DueDate,
		Items: []models.LineItem{testLine()},
	}
	if err := svc.UpdateInvoice(ctx, update); err != nil {
		t.Fatalf("UpdateInvoice: %v", err)
	}

	var alphaAfter, betaAfter models.Client
	if err := db.First(&alphaAfter, "id = ?", alpha.ID).Error; err != nil {
		t.Fatalf("reload client: %v", err)
	}
	if err := db.First(&betaAfter, "id = ?", beta.ID).Error; err != nil {
		t.Fatalf("reload client: %v", err)
	}
	if alphaAfter.Debt != 0 {
		t.Errorf("old client debt = %v, want 0 after reassignment", alphaAfter.Debt)
	}
	if betaAfter.Debt != 221.3 {
		t.Errorf("new client debt = %v, want 221.3", betaAfter.Debt)
	}
}
