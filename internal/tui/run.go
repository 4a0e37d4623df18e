package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/dryrack/internal/rack"
)

// Run starts the interactive screen and blocks until the user quits.
func Run(store *rack.Store, names []string, logger *zap.Logger, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(New(store, names, logger), opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
