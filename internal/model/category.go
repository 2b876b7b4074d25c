package model

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var colorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Category is a user-defined spending bucket with its own budget ceiling.
type Category struct {
	Budget decimal.Decimal `json:"budget"`
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Color  string          `json:"color"`
	Icon   Icon            `json:"icon"`
}

// NewCategory holds the fields of a category before an id is assigned.
type NewCategory struct {
	Budget decimal.Decimal
	Name   string
	Color  string
	Icon   Icon
}

// Validate checks every field of the new category.
func (n NewCategory) Validate() error {
	if err := validateName("category name", n.Name); err != nil {
		return err
	}
	if err := validateColor(n.Color); err != nil {
		return err
	}
	if err := validateIcon(n.Icon); err != nil {
		return err
	}
	return validateAmount("budget", n.Budget)
}

// WithID returns the stored form of the category.
func (n NewCategory) WithID(id string) Category {
	return Category{
		ID:     id,
		Name:   strings.TrimSpace(n.Name),
		Color:  n.Color,
		Icon:   n.Icon,
		Budget: n.Budget,
	}
}

// CategoryPatch is a partial update. Nil fields keep their current value.
type CategoryPatch struct {
	Budget *decimal.Decimal
	Name   *string
	Color  *string
	Icon   *Icon
}

// IsEmpty reports whether the patch changes nothing.
func (p CategoryPatch) IsEmpty() bool {
	return p.Budget == nil && p.Name == nil && p.Color == nil && p.Icon == nil
}

// Validate checks each supplied field.
func (p CategoryPatch) Validate() error {
	if p.Name != nil {
		if err := validateName("category name", *p.Name); err != nil {
			return err
		}
	}
	if p.Color != nil {
		if err := validateColor(*p.Color); err != nil {
			return err
		}
	}
	if p.Icon != nil {
		if err := validateIcon(*p.Icon); err != nil {
			return err
		}
	}
	if p.Budget != nil {
		return validateAmount("budget", *p.Budget)
	}
	return nil
}

// Apply returns c with the supplied fields replaced.
func (p CategoryPatch) Apply(c Category) Category {
	if p.Name != nil {
		c.Name = strings.TrimSpace(*p.Name)
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	if p.Icon != nil {
		c.Icon = *p.Icon
	}
	if p.Budget != nil {
		c.Budget = *p.Budget
	}
	return c
}

// FindCategory returns the category with the given id.
func FindCategory(categories []Category, id string) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

func validateColor(color string) error {
	if !colorPattern.MatchString(color) {
		return fmt.Errorf("%w: %q is not a #RGB or #RRGGBB hex color", ErrInvalidColor, color)
	}
	return nil
}

// Empty icons are allowed and render as DefaultIcon.
func validateIcon(icon Icon) error {
	if icon != "" && !icon.Known() {
		return fmt.Errorf("%w: %q", ErrInvalidIcon, icon)
	}
	return nil
}
