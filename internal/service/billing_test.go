package service

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestLineTotal(t *testing.T) {
	line := BillingLine{Quantity: 3, UnitPrice: decimal.RequireFromString("19.99")}
	if got := line.LineTotal(); !got.Equal(decimal.RequireFromString("59.97")) {
		t.Errorf("LineTotal = %s, want 59.97", got)
	}
}

func TestCalculateTotals(t *testing.T) {
	taxRate := decimal.RequireFromString("0.10")

	t.Run("MixedLines", func(t *testing.T) {
		lines := []BillingLine{
			{Quantity: 1, UnitPrice: decimal.RequireFromString("50.00")},
			{Quantity: 2, UnitPrice: decimal.RequireFromString("30.00")},
		}
		totals := CalculateTotals(lines, taxRate)
		if !totals.Subtotal.Equal(decimal.RequireFromString("110.00")) {
			t.Errorf("Subtotal = %s, want 110.00", totals.Subtotal)
		}
		if !totals.TaxAmount.Equal(decimal.RequireFromString("11.00")) {
			t.Errorf("TaxAmount = %s, want 11.00", totals.TaxAmount)
		}
		if !totals.TotalAmount.Equal(decimal.RequireFromString("121.00")) {
			t.Errorf("TotalAmount = %s, want 121.00", totals.TotalAmount)
		}
	})

	t.Run("RoundingAtLineLevel", func(t *testing.T) {
		lines := []BillingLine{
			{Quantity: 3, UnitPrice: decimal.RequireFromString("33.335")},
		}
		totals := CalculateTotals(lines, taxRate)
		// 3 × 33.335 = 100.005, rounded to 100.01 at the line
		if !totals.Subtotal.Equal(decimal.RequireFromString("100.01")) {
			t.Errorf("Subtotal = %s, want 100.01", totals.Subtotal)
		}
		if !totals.TotalAmount.Equal(decimal.RequireFromString("110.01")) {
			t.Errorf("TotalAmount = %s, want 110.01", totals.TotalAmount)
		}
	})

	t.Run("NoLines", func(t *testing.T) {
		totals := CalculateTotals(nil, taxRate)
		if !totals.Subtotal.IsZero() || !totals.TaxAmount.IsZero() || !totals.TotalAmount.IsZero() {
			t.Errorf("expected zero totals, got %s/%s/%s",
				totals.Subtotal, totals.TaxAmount, totals.TotalAmount)
		}
	})

	t.Run("ZeroTaxRate", func(t *testing.T) {
		lines := []BillingLine{
			{Quantity: 1, UnitPrice: decimal.RequireFromString("75.50")},
		}
		totals := CalculateTotals(lines, decimal.Zero)
		if !totals.TaxAmount.IsZero() {
			t.Errorf("TaxAmount = %s, want 0", totals.TaxAmount)
		}
		if !totals.TotalAmount.Equal(totals.Subtotal) {
			t.Errorf("TotalAmount = %s, want %s", totals.TotalAmount, totals.Subtotal)
		}
	})
}

func TestGenerateInvoiceNumber(t *testing.T) {
	date := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	number := GenerateInvoiceNumber(date)

	if !strings.HasPrefix(number, "INV-20260315-") {
		t.Errorf("number %q does not carry the date prefix", number)
	}
	parts := strings.Split(number, "-")
	if len(parts) != 3 {
		t.Fatalf("number %q has %d segments, want 3", number, len(parts))
	}
	if len(parts[2]) != 6 {
		t.Errorf("suffix %q has length %d, want 6", parts[2], len(parts[2]))
	}

	other := GenerateInvoiceNumber(date)
	if number == other {
		t.Errorf("two generated numbers collided: %s", number)
	}
}
