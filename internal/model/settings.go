package model

import (
	"fmt"
	"regexp"
	"strings"
)

// Currency is a supported currency code. Currencies only affect formatting;
// no conversion is ever performed.
type Currency string

// Supported currencies.
const (
	CurrencyMYR Currency = "MYR"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyJPY Currency = "JPY"
	CurrencySGD Currency = "SGD"
	CurrencyAUD Currency = "AUD"
)

// CurrencyInfo is the display data for a currency.
type CurrencyInfo struct {
	Code   Currency
	Symbol string
	Name   string
}

// Currencies lists every supported currency in display order.
var Currencies = []CurrencyInfo{
	{Code: CurrencyMYR, Symbol: "RM", Name: "Malaysian Ringgit"},
	{Code: CurrencyUSD, Symbol: "$", Name: "US Dollar"},
	{Code: CurrencyEUR, Symbol: "€", Name: "Euro"},
	{Code: CurrencyGBP, Symbol: "£", Name: "British Pound"},
	{Code: CurrencyJPY, Symbol: "¥", Name: "Japanese Yen"},
	{Code: CurrencySGD, Symbol: "S$", Name: "Singapore Dollar"},
	{Code: CurrencyAUD, Symbol: "A$", Name: "Australian Dollar"},
}

// DefaultCurrency is used for new stores and for unknown codes.
const DefaultCurrency = CurrencyMYR

// Info returns the display data for c, falling back to DefaultCurrency.
func (c Currency) Info() CurrencyInfo {
	for _, info := range Currencies {
		if info.Code == c {
			return info
		}
	}
	return Currencies[0]
}

// Valid reports whether c is a supported currency.
func (c Currency) Valid() bool {
	for _, info := range Currencies {
		if info.Code == c {
			return true
		}
	}
	return false
}

// ParseCurrency parses a currency code case-insensitively.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, s)
	}
	return c, nil
}

// Theme is the display theme.
type Theme string

// Themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme parses a theme name case-insensitively.
func ParseTheme(s string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(s)))
	if t != ThemeLight && t != ThemeDark {
		return "", fmt.Errorf("%w: %q (want light or dark)", ErrInvalidTheme, s)
	}
	return t, nil
}

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

var languagePattern = regexp.MustCompile(`^[a-zA-Z]{2,3}(-[a-zA-Z0-9]{2,8})*$`)

// Settings is the singleton preferences record.
type Settings struct {
	Currency Currency `json:"currency"`
	Theme    Theme    `json:"theme"`
	Language string   `json:"language"`
}

// DefaultSettings returns the settings of a fresh store.
func DefaultSettings() Settings {
	return Settings{
		Currency: DefaultCurrency,
		Theme:    ThemeLight,
		Language: "en",
	}
}

// Normalize replaces unsupported fields with their defaults.
func (s Settings) Normalize() Settings {
	defaults := DefaultSettings()
	if !s.Currency.Valid() {
		s.Currency = defaults.Currency
	}
	if !s.Theme.Valid() {
		s.Theme = defaults.Theme
	}
	if !languagePattern.MatchString(s.Language) {
		s.Language = defaults.Language
	}
	return s
}

// SettingsPatch is a partial update. Nil fields keep their current value.
type SettingsPatch struct {
	Currency *Currency
	Theme    *Theme
	Language *string
}

// IsEmpty reports whether the patch changes nothing.
func (p SettingsPatch) IsEmpty() bool {
	return p.Currency == nil && p.Theme == nil && p.Language == nil
}

// Validate checks each supplied field.
func (p SettingsPatch) Validate() error {
	if p.Currency != nil && !p.Currency.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCurrency, *p.Currency)
	}
	if p.Theme != nil && !p.Theme.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, *p.Theme)
	}
	if p.Language != nil && !languagePattern.MatchString(*p.Language) {
		return fmt.Errorf("%w: %q", ErrInvalidLanguage, *p.Language)
	}
	return nil
}

// Apply returns s with the supplied fields replaced.
func (p SettingsPatch) Apply(s Settings) Settings {
	if p.Currency != nil {
		s.Currency = *p.Currency
	}
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.Language != nil {
		s.Language = *p.Language
	}
	return s
}
