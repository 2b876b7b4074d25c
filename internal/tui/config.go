// Package tui implements the interactive spending dashboard.
package tui

import (
	"time"

	"github.com/Veraticus/spend/internal/service"
	"github.com/Veraticus/spend/internal/store"
	"github.com/Veraticus/spend/internal/tui/themes"
)

// DefaultRecentLimit is the number of expenses shown in the recent table.
const DefaultRecentLimit = 5

// Source is the ledger the dashboard reads from.
type Source interface {
	service.BudgetRefresher
	Snapshot() store.State
}

// Config holds dashboard configuration.
type Config struct {
	Now         func() time.Time
	Theme       *themes.Theme
	RecentLimit int
	Width       int
	Height      int
}

// Option is a functional option for configuring the dashboard.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Now:         time.Now,
		RecentLimit: DefaultRecentLimit,
		Width:       80,
		Height:      24,
	}
}

// WithClock sets the time source used for the generated stamp and refreshes.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		c.Now = now
	}
}

// WithTheme pins the theme. Without it the theme follows the settings.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = &theme
	}
}

// WithRecentLimit sets how many expenses the recent table shows.
func WithRecentLimit(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.RecentLimit = n
		}
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}
