package report

import (
	"github.com/shopspring/decimal"

	"github.com/Veraticus/spend/internal/model"
)

// FormatCurrency renders amount with the currency's symbol and exactly two
// decimal places, e.g. "RM165.21". Unknown currencies format as the default
// currency. Negative amounts keep the sign in front of the symbol.
func FormatCurrency(amount decimal.Decimal, currency model.Currency) string {
	symbol := currency.Info().Symbol
	if amount.IsNegative() {
		return "-" + symbol + amount.Neg().StringFixed(2)
	}
	return symbol + amount.StringFixed(2)
}
