package entities

import "math"

// Similarity returns the share of other's cards that are also contained in d,
// as a value between 0 and 1 rounded to two decimals.
func (d *Deck) Similarity(other *Deck) float64 {
	if other == nil {
		return 0
	}

	total := other.CardCount()
	if total == 0 {
		if len(d.Cards) == 0 {
			return 1
		}
		return 0
	}

	counts := make(map[int]int, len(d.Cards))
	for _, c := range d.Cards {
		counts[c.CardID] += c.Count
	}

	found := 0
	for _, c := range other.Cards {
		if have, ok := counts[c.CardID]; ok {
			found += min(have, c.Count)
		}
	}

	return math.Round(float64(found)/float64(total)*100) / 100
}
