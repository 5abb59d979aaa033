package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Options configures the board program.
type Options struct {
	// Search is the initial search term.
	Search         string
	SearchDebounce time.Duration
	HideHelpBar    bool
	Logger         *zap.Logger
}

// Run starts the board and blocks until the user quits or ctx is done.
func Run(ctx context.Context, api API, opts Options) error {
	model := NewModel(ctx, api, opts)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
