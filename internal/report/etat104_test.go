package report

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/SYPclub/facture-flow/internal/models"
)

func setupReportTestDB(t *testing.T) *gorm.DB {
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

func seedInvoice(t *testing.T, db *gorm.DB, client *models.Client, number string, day int, status models.InvoiceStatus) {
	t.Helper()
	inv := models.FinalInvoice{
		ID:        models.NewID(),
		Number:    number,
		ClientID:  client.ID,
		IssueDate: time.Date(2026, 3, day, 0, 0, 0, 0, time.Local),
		Status:    status,
		Items: []models.LineItem{
			{ID: models.NewID(), DocumentType: "invoice", ProductName: "Ciment", Quantity: 3, UnitPrice: 100, Discount: 10, TaxRate: 19},
		},
	}
	inv.RecomputeTotals()
	if err := db.Create(&inv).Error; err != nil {
		t.Fatalf("seed invoice %s: %v", number, err)
	}
}

func TestBuildEtat104(t *testing.T) {
	db := setupReportTestDB(t)
	c1 := models.Client{ID: models.NewID(), Name: "Alpha", TaxID: "111"}
	c2 := models.Client{ID: models.NewID(), Name: "Beta", TaxID: "222"}
	if err := db.Create(&c1).Error; err != nil {
		t.Fatalf("client: %v", err)
	}
	if err := db.Create(&c2).Error; err != nil {
		t.Fatalf("client: %v", err)
	}

	seedInvoice(t, db, &c1, "INV-2026-0001", 5, models.InvoiceStatusPaid)
	seedInvoice(t, db, &c1, "INV-2026-0002", 20, models.InvoiceStatusUnpaid)
	seedInvoice(t, db, &c2, "INV-2026-0003", 12, models.InvoiceStatusPaid)
	// excluded rows: cancelled, and outside the month
	seedInvoice(t, db, &c2, "INV-2026-0004", 13, models.InvoiceStatusCancelled)
	inv := models.FinalInvoice{
		ID: models.NewID(), Number: "INV-2026-0005", ClientID: c2.ID,
		IssueDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.Local),
		Status:    models.InvoiceStatusPaid,
	}
	if err := db.Create(&inv).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	rep, err := BuildEtat104(context.Background(), db, time.March, 2026)
	if err != nil {
		t.Fatalf("BuildEtat104: %v", err)
	}
	if len(rep.Clients) != 2 {
		t.Fatalf("expected 2 client summaries, got %d", len(rep.Clients))
	}
	// Alpha has two invoices of 270/51.30/321.30 each
	var alpha, beta *models.ClientSummary
	for i := range rep.Clients {
		switch rep.Clients[i].ClientName {
		case "Alpha":
			alpha = &rep.Clients[i]
		case "Beta":
			beta = &rep.Clients[i]
		}
	}
	if alpha == nil || beta == nil {
		t.Fatalf("missing client rows: %+v", rep.Clients)
	}
	if alpha.Subtotal != 540 || alpha.TaxTotal != 102.6 || alpha.Total != 642.6 {
		t.Errorf("Alpha summary = %+v, want 540/102.6/642.6", *alpha)
	}
	if beta.Subtotal != 270 || beta.TaxTotal != 51.3 || beta.Total != 321.3 {
		t.Errorf("Beta summary = %+v, want 270/51.3/321.3", *beta)
	}
	if rep.TotalExcl != 810 || rep.TotalTax != 153.9 || rep.Total != 963.9 {
		t.Errorf("report totals = %v/%v/%v, want 810/153.9/963.9", rep.TotalExcl, rep.TotalTax, rep.Total)
	}
}

func TestEtat104_FranchiseAndDue(t *testing.T) {
	rep := &Etat104{TotalTax: 100}
	if rep.FranchiseTVA() != 30 {
		t.Errorf("FranchiseTVA() = %v, want 30", rep.FranchiseTVA())
	}
	if rep.TVADue() != 70 {
		t.Errorf("TVADue() = %v, want 70", rep.TVADue())
	}
}

func TestExcel(t *testing.T) {
	rep := &Etat104{
		Month: time.March,
		Year:  2026,
		Clients: []models.ClientSummary{
			{ClientName: "Alpha", TaxID: "111", Subtotal: 540, TaxTotal: 102.6, Total: 642.6},
		},
		TotalExcl: 540, TotalTax: 102.6, Total: 642.6,
	}
	out, err := Excel(rep, &models.CompanyInfo{BusinessName: "SARL Test"})
	if err != nil {
		t.Fatalf("Excel: %v", err)
	}
	// xlsx payloads are zip archives
	if !bytes.HasPrefix(out, []byte("PK")) {
		t.Fatal("Excel() did not produce an xlsx payload")
	}
}

func TestExcelFilename(t *testing.T) {
	if got := ExcelFilename(time.March, 2026); got != "Etat104_03_2026.xlsx" {
		t.Errorf("ExcelFilename() = %q", got)
	}
}

func TestBuildEtat104MonthBoundary(t *testing.T) {
	db := setupReportTestDB(t)
	c := models.Client{ID: models.NewID(), Name: "Alpha", TaxID: "111"}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("client: %v", err)
	}

	// Issue dates carry the local wall clock; an invoice written just before
	// midnight on the last day belongs to that month's declaration.
	late := models.FinalInvoice{
		ID: models.NewID(), Number: "INV-2026-0100", ClientID: c.ID,
		IssueDate: time.Date(2026, 3, 31, 23, 30, 0, 0, time.Local),
		Status:    models.InvoiceStatusUnpaid,
		Items: []models.LineItem{
			{ID: models.NewID(), DocumentType: "invoice", ProductName: "Ciment", Quantity: 3, UnitPrice: 100, Discount: 10, TaxRate: 19},
		},
	}
	late.RecomputeTotals()
	if err := db.Create(&late).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	next := models.FinalInvoice{
		ID: models.NewID(), Number: "INV-2026-0101", ClientID: c.ID,
		IssueDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.Local),
		Status:    models.InvoiceStatusUnpaid,
	}
	if err := db.Create(&next).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	rep, err := BuildEtat104(context.Background(), db, time.March, 2026)
	if err != nil {
		t.Fatalf("BuildEtat104: %v", err)
	}
	if len(rep.Clients) != 1 || rep.Clients[0].Total != 321.3 {
		t.Fatalf("march declaration = %+v, want only the late-night invoice (321.30)", rep.Clients)
	}
}
