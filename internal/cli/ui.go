package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/dryrack/internal/catalog"
	"github.com/mesh-intelligence/dryrack/internal/rack"
	"github.com/mesh-intelligence/dryrack/internal/tui"
)

func newUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive screen",
		Long: `UI opens the full-screen rack manager. Running dryrack with no
subcommand does the same.

Logs go to dryrack.log in the data directory while the screen is open.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runUI(cmd)
		},
	}
}

// runUI opens the store and runs the interactive screen until the user
// quits.
func (a *app) runUI(cmd *cobra.Command) error {
	return a.withStore(func(store *rack.Store) error {
		a.logger.Info("ui started", zap.Int("items", store.Len()))
		if err := tui.Run(store, catalog.Default, a.logger,
			tea.WithAltScreen(),
			tea.WithInput(cmd.InOrStdin()),
			tea.WithOutput(cmd.OutOrStdout()),
		); err != nil {
			return sysError(err)
		}
		a.logger.Info("ui stopped", zap.Int("items", store.Len()))
		return nil
	})
}
