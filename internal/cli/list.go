package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/dryrack/internal/rack"
	"github.com/mesh-intelligence/dryrack/pkg/types"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show what is drying",
		Long: `List prints every item on the rack in the order it was added.

Example:
  dryrack list
  dryrack list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(store *rack.Store) error {
				items := store.Snapshot()
				if a.flags.jsonMode {
					if items == nil {
						items = []types.Item{}
					}
					return writeJSON(cmd.OutOrStdout(), items)
				}
				return printItemTable(cmd.OutOrStdout(), items)
			})
		},
	}
}

// printItemTable prints items in a human-readable table.
func printItemTable(out io.Writer, items []types.Item) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(out, noItemsText)
		return err
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tQTY\tID")
	fmt.Fprintln(w, "----\t---\t--")
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%d\t%s\n", item.Name, item.Quantity, item.ID)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("format table: %w", err)
	}

	for _, line := range strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n") {
		fmt.Fprintln(out, strings.TrimRight(line, " "))
	}
	_, err := fmt.Fprintf(out, "Total: %d item(s)\n", len(items))
	return err
}
