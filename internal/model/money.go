package model

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var idrPrinter = message.NewPrinter(language.Indonesian)

// FormatIDR renders an amount as Indonesian rupiah without fraction digits, e.g. "Rp 1.500.000".
func FormatIDR(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	if rounded.IsNegative() {
		return "-" + idrPrinter.Sprintf("Rp %d", rounded.Neg().IntPart())
	}
	return idrPrinter.Sprintf("Rp %d", rounded.IntPart())
}

// ParseAmount parses a non-negative decimal amount entered by a user.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if d.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

var indonesianMonths = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// FormatDateID renders a date the Indonesian long way, e.g. "5 Maret 2024".
// A zero date renders as "-".
func FormatDateID(d Date) string {
	if d.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%d %s %d", d.Day(), indonesianMonths[d.Month()-1], d.Year())
}
