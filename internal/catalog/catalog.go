// Package catalog holds the fixed list of quick-add suggestions.
package catalog

import "github.com/mesh-intelligence/dryrack/pkg/types"

// Default is the built-in list of clothing types offered for quick add.
var Default = []string{
	"T-Shirts",
	"Jeans",
	"Socks",
	"Underwear",
	"Towels",
	"Shirts",
	"Pants",
	"Bedsheets",
}

// Available returns the catalog names that have no matching item,
// comparing names case-insensitively. Catalog order is preserved.
func Available(catalog []string, items []types.Item) []string {
	out := make([]string, 0, len(catalog))
	for _, name := range catalog {
		if types.IndexByName(items, name) < 0 {
			out = append(out, name)
		}
	}
	return out
}
