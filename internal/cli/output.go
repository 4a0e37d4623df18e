package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mesh-intelligence/dryrack/pkg/types"
)

// noItemsText is printed by list when the rack is empty.
const noItemsText = "No items drying. Add some clothes above!"

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// writeItem prints one item as "<name>: <quantity>" or as JSON.
func (a *app) writeItem(w io.Writer, item types.Item) error {
	if a.flags.jsonMode {
		return writeJSON(w, item)
	}
	_, err := fmt.Fprintf(w, "%s: %d\n", item.Name, item.Quantity)
	return err
}
