package printer

import (
	"bytes"
	"testing"
	"time"

	"github.com/lats-hub/repairgo/internal/config"
	"github.com/lats-hub/repairgo/internal/lifecycle"
	"github.com/lats-hub/repairgo/internal/models"
)

func sampleData() ReceiptData {
	created := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	returnDate := created.Add(72 * time.Hour)
	return ReceiptData{
		Shop: config.ShopConfig{
			Name:        "LATS Device Repair",
			Phone:       "+255700000000",
			Address:     "12 Market St",
			TrackingURL: "https://track.latshub.example",
		},
		Device: models.Device{
			ID:                 "6f3d2a9e-0000-0000-0000-000000000001",
			Brand:              "Samsung",
			Model:              "Galaxy S21",
			SerialNumber:       "352099001761481",
			Status:             lifecycle.StatusInRepair,
			ExpectedReturnDate: &returnDate,
			CreatedAt:          created,
		},
		Customer: models.Customer{Name: "Amina Hassan", Phone: "+255712000001"},
		Payments: []models.Payment{
			{Amount: 50000, Type: "deposit", Method: "cash", CreatedAt: created},
		},
	}
}

func TestGenerateReceiptPDF(t *testing.T) {
	pdf, err := GenerateReceiptPDF(sampleData())
	if err != nil {
		t.Fatalf("GenerateReceiptPDF failed: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatal("expected non-empty PDF output")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("output does not start with PDF magic, got %q", pdf[:4])
	}
}

func TestGenerateReceiptPDFWithoutPayments(t *testing.T) {
	data := sampleData()
	data.Payments = nil
	data.Device.ExpectedReturnDate = nil

	pdf, err := GenerateReceiptPDF(data)
	if err != nil {
		t.Fatalf("GenerateReceiptPDF without payments failed: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatal("expected non-empty PDF output")
	}
}
