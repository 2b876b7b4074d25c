package model

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var plainAmount = regexp.MustCompile(`^\d+(\.\d+)?$`)

// ParseAmount converts user input into a non-negative amount rounded to
// cents. Both "12.34" and "12,34" are accepted.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	s = strings.ReplaceAll(s, ",", ".")
	if !plainAmount.MatchString(s) {
		return decimal.Zero, fmt.Errorf("%w: %q must be an unsigned number", ErrInvalidAmount, s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d.Round(2), nil
}

func validateAmount(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return fmt.Errorf("%w: %s cannot be negative", ErrInvalidAmount, field)
	}
	return nil
}

func validateName(field, s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyName, field)
	}
	return nil
}
