package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/dryrack/internal/rack"
)

func newIncCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inc <item> [count]",
		Short: "Increase an item's quantity",
		Long: `Inc adds count (default 1) to the quantity of an item.

The item is given by id or by name (case-insensitive).

Example:
  dryrack inc socks
  dryrack inc Jeans 2`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.changeQuantity(cmd, args, +1)
		},
	}
}

func newDecCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dec <item> [count]",
		Short: "Decrease an item's quantity",
		Long: `Dec subtracts count (default 1) from the quantity of an item.

Quantities never go below zero; an item that reaches zero is taken off
the rack.

Example:
  dryrack dec socks
  dryrack dec Towels 3`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.changeQuantity(cmd, args, -1)
		},
	}
}

// parseCount parses the optional count argument. It must be a positive
// integer.
func parseCount(args []string) (int, error) {
	if len(args) < 2 {
		return 1, nil
	}
	n, err := strconv.Atoi(args[1])
	if err != nil || n < 1 {
		return 0, userError("count must be a positive integer, got %q", args[1])
	}
	return n, nil
}

// changeQuantity applies sign*count to the referenced item.
func (a *app) changeQuantity(cmd *cobra.Command, args []string, sign int) error {
	count, err := parseCount(args)
	if err != nil {
		return err
	}

	return a.withStore(func(store *rack.Store) error {
		id, err := resolveRef(store, args[0])
		if err != nil {
			return err
		}

		item, _, err := store.ChangeQuantity(id, sign*count)
		if err != nil {
			return sysError(err)
		}

		if item.Quantity == 0 && !a.flags.jsonMode {
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Taken: %s\n", item.Name)
			return err
		}
		return a.writeItem(cmd.OutOrStdout(), item)
	})
}
