package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the dashboard until the user quits or ctx is canceled.
func Run(ctx context.Context, source Source, opts ...Option) error {
	m, err := New(ctx, source, opts...)
	if err != nil {
		return err
	}

	// Restore the terminal even if the program dies mid-frame.
	defer func() {
		_, _ = os.Stdout.Write([]byte("\033[?25h")) // Show cursor
		_, _ = os.Stdout.Write([]byte("\033[m"))    // Reset colors
	}()

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}
