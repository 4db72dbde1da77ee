package payslip

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// Data holds everything a rendered payslip shows.
type Data struct {
	WorkerName      string
	WorkerType      string
	Specialization  string
	PeriodStart     time.Time
	PeriodEnd       time.Time
	TotalDays       int
	TotalHours      decimal.Decimal
	BaseAmount      decimal.Decimal
	BonusAmount     decimal.Decimal
	DeductionAmount decimal.Decimal
	NetAmount       decimal.Decimal
	Status          string
}

// Render produces a one-page A4 payslip PDF.
func Render(d Data) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Worker: %s", d.WorkerName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Type: %s (%s)", d.WorkerType, d.Specialization))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s", d.PeriodStart.Format("2006-01-02"), d.PeriodEnd.Format("2006-01-02")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Days worked: %d    Hours: %s", d.TotalDays, d.TotalHours.String()))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Base amount: %s", d.BaseAmount.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Bonuses: %s", d.BonusAmount.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Deductions: %s", d.DeductionAmount.StringFixed(2)))
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Net amount: %s", d.NetAmount.StringFixed(2)))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", d.Status))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip: %w", err)
	}
	return buf.Bytes(), nil
}
