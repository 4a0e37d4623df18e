package rack

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/dryrack/pkg/types"
)

// ErrMalformed is returned by Decode when the value is not a JSON array of
// item records.
var ErrMalformed = errors.New("malformed item collection")

// Encode serializes items as a JSON array of {id, name, quantity} records.
// An empty or nil collection encodes as [].
func Encode(items []types.Item) ([]byte, error) {
	if items == nil {
		items = []types.Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encoding items: %w", err)
	}
	return data, nil
}

// Decode parses a value written by Encode. A value that is not a JSON array
// of objects returns ErrMalformed. Records that would break the collection
// invariants are dropped, first occurrence wins: missing id or blank name,
// quantity below one, repeated id, repeated name under case-insensitive
// comparison. The second return value counts dropped records.
func Decode(data []byte) ([]types.Item, int, error) {
	var records []types.Item
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if records == nil {
		// JSON null.
		return nil, 0, fmt.Errorf("%w: not an array", ErrMalformed)
	}

	items := make([]types.Item, 0, len(records))
	dropped := 0
	for _, rec := range records {
		rec.Name = strings.TrimSpace(rec.Name)
		if !rec.Valid() ||
			types.IndexByID(items, rec.ID) >= 0 ||
			types.IndexByName(items, rec.Name) >= 0 {
			dropped++
			continue
		}
		items = append(items, rec)
	}
	return items, dropped, nil
}
