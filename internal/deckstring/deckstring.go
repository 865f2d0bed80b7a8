// Package deckstring decodes Hearthstone deck codes.
//
// A deck code is base64 over a stream of unsigned varints:
//
//	0x00 version format
//	nHeroes heroDbfID...
//	n1 dbfID...        (one copy each)
//	n2 dbfID...        (two copies each)
//	nN (dbfID count)...
//
// Anything after the card sections (sideboards) is ignored.
package deckstring

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Format is the game format encoded in a deck code.
type Format int

const (
	FormatUnknown  Format = 0
	FormatWild     Format = 1
	FormatStandard Format = 2
	FormatClassic  Format = 3
	FormatTwist    Format = 4
)

const version = 1

var (
	ErrInvalidEncoding = errors.New("deckstring: invalid base64")
	ErrInvalidHeader   = errors.New("deckstring: invalid header")
	ErrTruncated       = errors.New("deckstring: truncated data")
)

// Card is a dbf id with the number of copies in the deck.
type Card struct {
	DbfID int
	Count int
}

// Deck is the decoded content of a deck code.
type Deck struct {
	Format Format
	Heroes []int
	Cards  []Card
}

// Decode parses a deck code. Cards are returned sorted by dbf id.
func Decode(code string) (*Deck, error) {
	code = strings.TrimSpace(code)
	raw, err := base64.StdEncoding.DecodeString(code)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(code, "="))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
		}
	}

	r := bytes.NewReader(raw)

	reserved, err := r.ReadByte()
	if err != nil || reserved != 0 {
		return nil, ErrInvalidHeader
	}

	ver, err := readVarint(r)
	if err != nil {
		return nil, err
	}
	if ver != version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidHeader, ver)
	}

	format, err := readVarint(r)
	if err != nil {
		return nil, err
	}

	deck := &Deck{Format: Format(format)}

	heroes, err := readList(r)
	if err != nil {
		return nil, err
	}
	deck.Heroes = heroes

	for copies := 1; copies <= 2; copies++ {
		ids, err := readList(r)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			deck.Cards = append(deck.Cards, Card{DbfID: id, Count: copies})
		}
	}

	n, err := readVarint(r)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		id, err := readVarint(r)
		if err != nil {
			return nil, err
		}
		count, err := readVarint(r)
		if err != nil {
			return nil, err
		}
		deck.Cards = append(deck.Cards, Card{DbfID: id, Count: count})
	}

	sort.Slice(deck.Cards, func(i, j int) bool {
		return deck.Cards[i].DbfID < deck.Cards[j].DbfID
	})

	return deck, nil
}

// Encode builds a deck code. It is the inverse of Decode and mostly used to
// build fixtures.
func Encode(deck *Deck) string {
	var buf []byte
	buf = append(buf, 0)
	buf = binary.AppendUvarint(buf, version)
	buf = binary.AppendUvarint(buf, uint64(deck.Format))

	buf = appendList(buf, deck.Heroes)

	var singles, doubles []int
	var multi []Card
	for _, c := range deck.Cards {
		switch c.Count {
		case 1:
			singles = append(singles, c.DbfID)
		case 2:
			doubles = append(doubles, c.DbfID)
		default:
			multi = append(multi, c)
		}
	}
	sort.Ints(singles)
	sort.Ints(doubles)

	buf = appendList(buf, singles)
	buf = appendList(buf, doubles)
	buf = binary.AppendUvarint(buf, uint64(len(multi)))
	for _, c := range multi {
		buf = binary.AppendUvarint(buf, uint64(c.DbfID))
		buf = binary.AppendUvarint(buf, uint64(c.Count))
	}

	return base64.StdEncoding.EncodeToString(buf)
}

func readVarint(r *bytes.Reader) (int, error) {
	v, err := binary.ReadUvarint(r)
	if err != nil {
		return 0, ErrTruncated
	}
	return int(v), nil
}

func readList(r *bytes.Reader) ([]int, error) {
	n, err := readVarint(r)
	if err != nil {
		return nil, err
	}
	if n > r.Len() {
		return nil, ErrTruncated
	}
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		v, err := readVarint(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func appendList(buf []byte, values []int) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(values)))
	for _, v := range values {
		buf = binary.AppendUvarint(buf, uint64(v))
	}
	return buf
}
