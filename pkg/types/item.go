package types

import "strings"

// Item is one clothing category hanging on the rack.
//
// Within a collection ID is unique, Name is unique under case-insensitive
// comparison, and Quantity is always positive. An item whose quantity
// reaches zero is removed rather than kept at zero.
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// SameName reports whether two item names are equal under case-insensitive
// comparison.
func SameName(a, b string) bool {
	return strings.EqualFold(a, b)
}

// Valid reports whether the item may appear in a collection on its own:
// it has an ID, a non-blank name, and a positive quantity. Uniqueness is
// a property of the collection and is not checked here.
func (i Item) Valid() bool {
	return i.ID != "" && strings.TrimSpace(i.Name) != "" && i.Quantity > 0
}

// IndexByID returns the position of the item with the given ID, or -1.
func IndexByID(items []Item, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// IndexByName returns the position of the item whose name matches name
// case-insensitively, or -1.
func IndexByName(items []Item, name string) int {
	for i, it := range items {
		if SameName(it.Name, name) {
			return i
		}
	}
	return -1
}
