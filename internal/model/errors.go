package model

import "errors"

// Validation errors returned by the Validate methods in this package.
var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrEmptyDescription   = errors.New("empty description")
	ErrDescriptionTooLong = errors.New("description too long")
	ErrEmptyName          = errors.New("empty name")
	ErrMissingCategory    = errors.New("missing category")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidColor       = errors.New("invalid color")
	ErrInvalidIcon        = errors.New("invalid icon")
	ErrInvalidPeriod      = errors.New("invalid period")
	ErrInvalidCurrency    = errors.New("invalid currency")
	ErrInvalidTheme       = errors.New("invalid theme")
	ErrInvalidLanguage    = errors.New("invalid language")
)

// MaxDescriptionLength is the longest description accepted for an expense.
const MaxDescriptionLength = 200
