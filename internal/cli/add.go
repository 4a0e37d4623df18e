package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/dryrack/internal/rack"
	"github.com/mesh-intelligence/dryrack/pkg/types"
)

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>...",
		Short: "Hang items on the rack",
		Long: `Add puts one item per argument on the rack with quantity 1.

Names are compared case-insensitively; adding a name that is already on
the rack changes nothing and prints the existing item. Quote names that
contain spaces.

Example:
  dryrack add Socks Jeans
  dryrack add "Wool Sweater"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(store *rack.Store) error {
				var results []types.Item
				for _, name := range args {
					item, _, err := store.AddItem(name)
					if err != nil {
						return sysError(err)
					}
					if item.ID == "" {
						continue // blank name
					}
					results = append(results, item)
				}

				if a.flags.jsonMode {
					if results == nil {
						results = []types.Item{}
					}
					return writeJSON(cmd.OutOrStdout(), results)
				}
				for _, item := range results {
					if err := a.writeItem(cmd.OutOrStdout(), item); err != nil {
						return fmt.Errorf("write output: %w", err)
					}
				}
				return nil
			})
		},
	}
}
