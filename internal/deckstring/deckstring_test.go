package deckstring

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	in := &Deck{
		Format: FormatStandard,
		Heroes: []int{7},
		Cards: []Card{
			{DbfID: 300, Count: 1},
			{DbfID: 100, Count: 2},
			{DbfID: 90000, Count: 3},
		},
	}

	out, err := Decode(Encode(in))

	require.NoError(t, err)
	assert.Equal(t, FormatStandard, out.Format)
	assert.Equal(t, []int{7}, out.Heroes)
	assert.Equal(t, []Card{
		{DbfID: 100, Count: 2},
		{DbfID: 300, Count: 1},
		{DbfID: 90000, Count: 3},
	}, out.Cards)
}

func TestDecode_IgnoresTrailingSideboard(t *testing.T) {
	code := Encode(&Deck{Format: FormatWild, Heroes: []int{637}, Cards: []Card{{DbfID: 5, Count: 1}}})
	raw, err := base64.StdEncoding.DecodeString(code)
	require.NoError(t, err)
	raw = append(raw, 1, 1, 2, 3)

	out, err := Decode(base64.StdEncoding.EncodeToString(raw))

	require.NoError(t, err)
	assert.Equal(t, []Card{{DbfID: 5, Count: 1}}, out.Cards)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		code string
		want error
	}{
		{name: "not base64", code: "!!!", want: ErrInvalidEncoding},
		{name: "bad reserved byte", code: base64.StdEncoding.EncodeToString([]byte{1, 1, 2}), want: ErrInvalidHeader},
		{name: "bad version", code: base64.StdEncoding.EncodeToString([]byte{0, 9, 2}), want: ErrInvalidHeader},
		{name: "truncated hero list", code: base64.StdEncoding.EncodeToString([]byte{0, 1, 2, 3, 7}), want: ErrTruncated},
		{name: "empty", code: "", want: ErrInvalidHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.code)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
