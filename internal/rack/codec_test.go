package rack

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/dryrack/pkg/types"
)

func TestEncodeEmpty(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	data, err = Encode([]types.Item{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestEncodeFieldNames(t *testing.T) {
	data, err := Encode([]types.Item{{ID: "1", Name: "Socks", Quantity: 2}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1","name":"Socks","quantity":2}]`, string(data))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	collections := [][]types.Item{
		{},
		{{ID: "a", Name: "Socks", Quantity: 1}},
		{
			{ID: "a", Name: "Jeans", Quantity: 3},
			{ID: "b", Name: "T-Shirts", Quantity: 12},
			{ID: "c", Name: "Grandma's quilt", Quantity: 1},
		},
	}

	for _, want := range collections {
		data, err := Encode(want)
		require.NoError(t, err)

		got, dropped, err := Decode(data)
		require.NoError(t, err)
		assert.Zero(t, dropped)
		if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty value", ""},
		{"not json", "socks,jeans"},
		{"truncated", `[{"id":"1","name":"Socks"`},
		{"object instead of array", `{"id":"1","name":"Socks","quantity":1}`},
		{"null", "null"},
		{"array of strings", `["Socks"]`},
		{"fractional quantity", `[{"id":"1","name":"Socks","quantity":1.5}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode([]byte(tt.data))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestDecodeSanitizes(t *testing.T) {
	data := `[
		{"id":"1","name":"Socks","quantity":2},
		{"id":"2","name":"socks","quantity":1},
		{"id":"1","name":"Jeans","quantity":1},
		{"id":"3","name":"Towels","quantity":0},
		{"id":"4","name":"Pants","quantity":-1},
		{"id":"","name":"Shirts","quantity":1},
		{"id":"5","name":"  ","quantity":1},
		{"id":"6","name":"  Bedsheets ","quantity":4,"color":"blue"}
	]`

	got, dropped, err := Decode([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, 6, dropped)

	want := []types.Item{
		{ID: "1", Name: "Socks", Quantity: 2},
		{ID: "6", Name: "Bedsheets", Quantity: 4},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sanitized items mismatch (-want +got):\n%s", diff)
	}
}
