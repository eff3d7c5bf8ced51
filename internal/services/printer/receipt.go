package printer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/lats-hub/repairgo/internal/config"
	"github.com/lats-hub/repairgo/internal/lifecycle"
	"github.com/lats-hub/repairgo/internal/models"
	"github.com/skip2/go-qrcode"
)

// ReceiptData is everything the intake/handover receipt shows.
type ReceiptData struct {
	Shop     config.ShopConfig
	Device   models.Device
	Customer models.Customer
	Payments []models.Payment
}

// GenerateReceiptPDF renders an A5 receipt with the device summary, the
// payment history and a QR code pointing at the public tracking page.
func GenerateReceiptPDF(data ReceiptData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	// Shop header
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 7, data.Shop.Name, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	if data.Shop.Address != "" {
		pdf.CellFormat(0, 5, data.Shop.Address, "", 1, "C", false, 0, "")
	}
	if data.Shop.Phone != "" {
		pdf.CellFormat(0, 5, data.Shop.Phone, "", 1, "C", false, 0, "")
	}
	pdf.Ln(3)

	// Device block
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, "Repair Receipt", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)

	line := func(label, value string) {
		pdf.CellFormat(35, 5, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 5, value, "", 1, "L", false, 0, "")
	}

	line("Customer", data.Customer.Name)
	line("Phone", data.Customer.Phone)
	line("Device", fmt.Sprintf("%s %s", data.Device.Brand, data.Device.Model))
	line("Serial / IMEI", data.Device.SerialNumber)
	line("Status", string(data.Device.Status))
	line("Progress", fmt.Sprintf("%d%%", lifecycle.ProgressForStatus(data.Device.Status)))
	if data.Device.ExpectedReturnDate != nil {
		line("Expected return", data.Device.ExpectedReturnDate.Format("02 Jan 2006"))
	}
	line("Received", data.Device.CreatedAt.Format("02 Jan 2006 15:04"))
	pdf.Ln(2)

	// Payments table
	if len(data.Payments) > 0 {
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(30, 5, "Date", "B", 0, "L", false, 0, "")
		pdf.CellFormat(28, 5, "Type", "B", 0, "L", false, 0, "")
		pdf.CellFormat(28, 5, "Method", "B", 0, "L", false, 0, "")
		pdf.CellFormat(0, 5, "Amount", "B", 1, "R", false, 0, "")
		pdf.SetFont("Arial", "", 9)

		var total float64
		for _, p := range data.Payments {
			pdf.CellFormat(30, 5, p.CreatedAt.Format("02 Jan 2006"), "", 0, "L", false, 0, "")
			pdf.CellFormat(28, 5, p.Type, "", 0, "L", false, 0, "")
			pdf.CellFormat(28, 5, p.Method, "", 0, "L", false, 0, "")
			pdf.CellFormat(0, 5, fmt.Sprintf("%.2f", p.Amount), "", 1, "R", false, 0, "")
			total += p.Amount
		}
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(86, 5, "Total paid", "T", 0, "L", false, 0, "")
		pdf.CellFormat(0, 5, fmt.Sprintf("%.2f", total), "T", 1, "R", false, 0, "")
		pdf.Ln(2)
	}

	// Tracking QR code
	trackingURL := fmt.Sprintf("%s/%s", data.Shop.TrackingURL, data.Device.ID)
	qrPng, err := qrcode.Encode(trackingURL, qrcode.Medium, 256)
	if err != nil {
		return nil, err
	}

	imgOptions := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	_ = pdf.RegisterImageOptionsReader("tracking_qr", imgOptions, bytes.NewReader(qrPng))

	qrSize := 28.0
	pageW, _ := pdf.GetPageSize()
	pdf.ImageOptions("tracking_qr", (pageW-qrSize)/2, pdf.GetY(), qrSize, qrSize, false, imgOptions, 0, "")
	pdf.SetY(pdf.GetY() + qrSize + 2)

	pdf.SetFont("Arial", "", 7)
	pdf.CellFormat(0, 4, "Scan to track your repair", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 4, fmt.Sprintf("Printed %s", time.Now().Format("02 Jan 2006 15:04")), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
