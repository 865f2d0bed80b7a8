package importers

import (
	"sort"
	"strconv"
	"strings"

	"github.com/mrlokans/advisor/internal/entities"
)

// DeckKey returns the composition signature of a card list: entries sorted
// by card id, each written as ";{id}/{count}". The input is not modified.
func DeckKey(cards []entities.Card) string {
	sorted := make([]entities.Card, len(cards))
	copy(sorted, cards)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CardID != sorted[j].CardID {
			return sorted[i].CardID < sorted[j].CardID
		}
		return sorted[i].Count < sorted[j].Count
	})

	var b strings.Builder
	for _, c := range sorted {
		b.WriteByte(';')
		b.WriteString(strconv.Itoa(c.CardID))
		b.WriteByte('/')
		b.WriteString(strconv.Itoa(c.Count))
	}
	return b.String()
}

// Dedup keeps the first deck of every composition and drops later decks with
// the same DeckKey, preserving order. Nil entries are passed through so the
// gateway can reject them.
func Dedup(decks []*entities.Deck) []*entities.Deck {
	seen := make(map[string]struct{}, len(decks))
	out := make([]*entities.Deck, 0, len(decks))

	for _, d := range decks {
		if d == nil {
			out = append(out, d)
			continue
		}
		key := DeckKey(d.Cards)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, d)
	}

	return out
}
