package importers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/advisor/internal/entities"
)

func TestGateway_Persist(t *testing.T) {
	t.Run("adds every deck and saves once", func(t *testing.T) {
		store := &fakeStore{}
		gateway := NewGateway(store, nil)

		decks := []*entities.Deck{
			deck("Control Warrior - MetaStats", entities.Card{CardID: 1, Count: 2}),
			deck("Taunt Warrior", entities.Card{CardID: 2, Count: 1}),
		}
		imported, err := gateway.Persist(decks, false, true)
		require.NoError(t, err)

		assert.Equal(t, 2, imported)
		assert.Equal(t, []string{"Control", "Taunt"}, store.added)
		assert.Equal(t, 1, store.saves)
	})

	t.Run("keeps names when not shortening", func(t *testing.T) {
		store := &fakeStore{}
		_, err := NewGateway(store, nil).Persist([]*entities.Deck{deck("Taunt Warrior", entities.Card{CardID: 2, Count: 1})}, true, false)
		require.NoError(t, err)
		assert.Equal(t, []string{"Taunt Warrior"}, store.added)
	})

	t.Run("existing decks are skipped and not counted", func(t *testing.T) {
		store := &fakeStore{existing: map[string]bool{"known": true}}
		known := deck("Known", entities.Card{CardID: 1, Count: 1})
		known.ExternalID = "known"

		imported, err := NewGateway(store, nil).Persist([]*entities.Deck{known, deck("New", entities.Card{CardID: 2, Count: 1})}, false, false)
		require.NoError(t, err)
		assert.Equal(t, 1, imported)
		assert.Equal(t, []string{"New"}, store.added)
		assert.Equal(t, 1, store.saves)
	})

	t.Run("nil deck aborts before any write", func(t *testing.T) {
		store := &fakeStore{}
		_, err := NewGateway(store, nil).Persist([]*entities.Deck{deck("A", entities.Card{CardID: 1, Count: 1}), nil}, false, false)

		var persistErr *PersistenceError
		require.ErrorAs(t, err, &persistErr)
		assert.ErrorIs(t, err, ErrNilDeck)
		assert.Empty(t, store.operations)
	})

	t.Run("empty deck is skipped without failing the batch", func(t *testing.T) {
		store := &fakeStore{}
		decks := []*entities.Deck{deck("Empty"), deck("A", entities.Card{CardID: 1, Count: 1})}

		imported, err := NewGateway(store, nil).Persist(decks, false, false)
		require.NoError(t, err)
		assert.Equal(t, 1, imported)
		assert.Equal(t, []string{"A"}, store.added)
		assert.Equal(t, 1, store.saves)
	})

	t.Run("store failure aborts the batch", func(t *testing.T) {
		store := &fakeStore{addErr: errors.New("disk full")}
		_, err := NewGateway(store, nil).Persist([]*entities.Deck{deck("A", entities.Card{CardID: 1, Count: 1})}, false, false)

		var persistErr *PersistenceError
		require.ErrorAs(t, err, &persistErr)
		assert.Equal(t, "A", persistErr.Deck)
		assert.Zero(t, store.saves)
	})

	t.Run("save failure", func(t *testing.T) {
		store := &fakeStore{saveErr: errors.New("locked")}
		imported, err := NewGateway(store, nil).Persist([]*entities.Deck{deck("A", entities.Card{CardID: 1, Count: 1})}, false, false)
		assert.Error(t, err)
		assert.Zero(t, imported)
	})

	t.Run("nothing to persist still saves", func(t *testing.T) {
		store := &fakeStore{}
		imported, err := NewGateway(store, nil).Persist(nil, false, false)
		require.NoError(t, err)
		assert.Zero(t, imported)
		assert.Equal(t, 1, store.saves)
	})
}

func TestGateway_DeletePrevious(t *testing.T) {
	store := &fakeStore{deleted: 4}
	deleted, err := NewGateway(store, nil).DeletePrevious()
	require.NoError(t, err)
	assert.Equal(t, 4, deleted)
	assert.Equal(t, []string{"delete:" + PluginTag}, store.operations)

	failing := &fakeStore{deleteErr: errors.New("locked")}
	_, err = NewGateway(failing, nil).DeletePrevious()
	assert.Error(t, err)
}
