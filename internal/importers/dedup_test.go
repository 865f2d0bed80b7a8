package importers

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/advisor/internal/entities"
)

func TestDeckKey(t *testing.T) {
	cards := []entities.Card{{CardID: 30, Count: 1}, {CardID: 4, Count: 2}, {CardID: 17, Count: 1}}

	assert.Equal(t, ";4/2;17/1;30/1", DeckKey(cards))
	assert.Equal(t, 30, cards[0].CardID, "input must not be reordered")
	assert.Equal(t, "", DeckKey(nil))

	reordered := []entities.Card{{CardID: 17, Count: 1}, {CardID: 30, Count: 1}, {CardID: 4, Count: 2}}
	assert.Equal(t, DeckKey(cards), DeckKey(reordered))

	assert.NotEqual(t, DeckKey(cards), DeckKey([]entities.Card{{CardID: 4, Count: 1}, {CardID: 17, Count: 1}, {CardID: 30, Count: 1}}))
}

func TestDedup(t *testing.T) {
	a := deck("A", entities.Card{CardID: 1, Count: 2}, entities.Card{CardID: 2, Count: 1})
	b := deck("B", entities.Card{CardID: 3, Count: 2})
	sameAsA := deck("A again", entities.Card{CardID: 2, Count: 1}, entities.Card{CardID: 1, Count: 2})

	t.Run("first occurrence wins", func(t *testing.T) {
		got := Dedup([]*entities.Deck{a, b, sameAsA})
		assert.Equal(t, []*entities.Deck{a, b}, got)
	})

	t.Run("is idempotent", func(t *testing.T) {
		once := Dedup([]*entities.Deck{a, b, sameAsA})
		twice := Dedup(once)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Errorf("Dedup(Dedup(x)) mismatch (-once +twice):\n%s", diff)
		}
	})

	t.Run("same compositions regardless of input order", func(t *testing.T) {
		forward := Dedup([]*entities.Deck{a, b, sameAsA})
		backward := Dedup([]*entities.Deck{sameAsA, b, a})

		keys := func(decks []*entities.Deck) map[string]bool {
			out := map[string]bool{}
			for _, d := range decks {
				out[DeckKey(d.Cards)] = true
			}
			return out
		}
		if diff := cmp.Diff(keys(forward), keys(backward)); diff != "" {
			t.Errorf("composition set mismatch:\n%s", diff)
		}
		assert.Equal(t, "A again", backward[0].Name)
	})

	t.Run("nil entries pass through", func(t *testing.T) {
		got := Dedup([]*entities.Deck{nil, a, nil})
		assert.Len(t, got, 3)
		assert.Nil(t, got[0])
		assert.Nil(t, got[2])
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Dedup(nil))
	})
}
