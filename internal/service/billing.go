package service

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BillingLine is one priced service line of an invoice under computation.
type BillingLine struct {
	Quantity  int
	UnitPrice decimal.Decimal
}

// BillingTotals holds the computed invoice amounts, rounded to currency
// precision.
type BillingTotals struct {
	Subtotal    decimal.Decimal
	TaxAmount   decimal.Decimal
	TotalAmount decimal.Decimal
}

// LineTotal is Quantity × UnitPrice rounded to 2 places.
func (l BillingLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))).Round(2)
}

// CalculateTotals computes subtotal, tax and total for a set of lines.
// Tax is applied to the rounded subtotal, so
// total = round(subtotal) + round(subtotal × rate).
func CalculateTotals(lines []BillingLine, taxRate decimal.Decimal) BillingTotals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.LineTotal())
	}
	subtotal = subtotal.Round(2)
	tax := subtotal.Mul(taxRate).Round(2)

	return BillingTotals{
		Subtotal:    subtotal,
		TaxAmount:   tax,
		TotalAmount: subtotal.Add(tax),
	}
}

// GenerateInvoiceNumber generates an invoice number: INV-YYYYMMDD-XXXXXX.
// The date prefix keeps numbers distinguishable over time; the unique
// column on invoices guards the random suffix.
func GenerateInvoiceNumber(invoiceDate time.Time) string {
	dateStr := invoiceDate.Format("20060102")
	randomBytes := make([]byte, 3)
	if _, err := rand.Read(randomBytes); err != nil {
		return fmt.Sprintf("INV-%s-%06X", dateStr, time.Now().UnixNano()&0xFFFFFF)
	}
	return fmt.Sprintf("INV-%s-%06X", dateStr, randomBytes)
}
