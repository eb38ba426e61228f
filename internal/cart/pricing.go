package cart

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/libreria-backend/pkg/db/models"
)

// TaxRate is the flat sales tax applied to every cart.
var TaxRate = decimal.RequireFromString("0.16")

// Totals is the priced view of a set of lines.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// LineSubtotal is the book's current price times the line quantity. A line
// without a loaded book prices at zero.
func LineSubtotal(line models.CartLine) decimal.Decimal {
	if line.Book == nil {
		return decimal.Zero
	}
	return line.Book.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
}

// Tax rounds half away from zero to cents.
func Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(TaxRate).Round(2)
}

func ComputeTotals(lines []models.CartLine) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(LineSubtotal(line))
	}
	subtotal = subtotal.Round(2)
	tax := Tax(subtotal)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}
