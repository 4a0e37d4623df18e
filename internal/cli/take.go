package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/dryrack/internal/rack"
	"github.com/mesh-intelligence/dryrack/pkg/types"
)

func newTakeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "take <item>",
		Aliases: []string{"rm"},
		Short:   "Take an item off the rack",
		Long: `Take removes an item regardless of its quantity.

Example:
  dryrack take socks`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(store *rack.Store) error {
				item, ok := store.Lookup(args[0])
				if !ok {
					return userError("item %q not found", args[0])
				}
				if _, err := store.RemoveItem(item.ID); err != nil {
					return sysError(err)
				}
				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), item)
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Taken: %s\n", item.Name)
				return err
			})
		},
	}
}

func newTakeAllCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "take-all",
		Short: "Take everything off the rack",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(store *rack.Store) error {
				taken := store.Snapshot()
				if err := store.ClearAll(); err != nil {
					return sysError(err)
				}
				if a.flags.jsonMode {
					if taken == nil {
						taken = []types.Item{}
					}
					return writeJSON(cmd.OutOrStdout(), taken)
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "All taken (%d items)\n", len(taken))
				return err
			})
		},
	}
}
