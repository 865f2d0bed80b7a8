package hsreplay

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformedDeckList is returned when a compact deck list does not follow
// the [[dbfId,count],...] grammar.
var ErrMalformedDeckList = errors.New("hsreplay: malformed deck list")

// Card is one decoded [dbfId,count] token. Count is one or two.
type Card struct {
	DbfID int
	Count int
}

var cardToken = regexp.MustCompile(`\[(\d+),([12])\]`)

// ParseDeckList decodes a compact deck list such as "[[1004,2],[40523,1]]".
// Tokens that are not a bracketed pair of a numeric dbf id and a count of 1
// or 2 are skipped. The list is malformed when it is not one bracketed,
// balanced list or when no token matches.
func ParseDeckList(s string) ([]Card, error) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "[") || !strings.HasSuffix(trimmed, "]") {
		return nil, fmt.Errorf("%w: not a bracketed list %q", ErrMalformedDeckList, s)
	}
	if !balanced(trimmed) {
		return nil, fmt.Errorf("%w: unbalanced brackets in %q", ErrMalformedDeckList, s)
	}

	matches := cardToken.FindAllStringSubmatch(trimmed, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no card tokens in %q", ErrMalformedDeckList, s)
	}

	cards := make([]Card, 0, len(matches))
	for _, m := range matches {
		id, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("%w: card id %q: %v", ErrMalformedDeckList, m[1], err)
		}
		count, _ := strconv.Atoi(m[2])
		cards = append(cards, Card{DbfID: id, Count: count})
	}

	return cards, nil
}

// balanced reports whether brackets nest properly and the outer list closes
// only at the end.
func balanced(s string) bool {
	depth := 0
	for i, r := range s {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
			if depth < 0 || (depth == 0 && i != len(s)-1) {
				return false
			}
		}
	}
	return depth == 0
}
