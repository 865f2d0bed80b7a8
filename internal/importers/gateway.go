package importers

import (
	"errors"

	"go.uber.org/zap"

	"github.com/mrlokans/advisor/internal/entities"
)

// Tags attached to every imported deck. PluginTag marks ownership so a later
// bulk delete removes exactly what this pipeline imported.
const (
	ArchetypeTag = "Archetype"
	PluginTag    = "Advisor"
)

// DeckStore persists decks. AddDeck may buffer; nothing is durable before Save.
type DeckStore interface {
	AddDeck(name string, deck *entities.Deck, archive bool, categoryTag, ownerTag string) error
	DeleteAllDecksWithTag(tag string) (int, error)
	Save() error
}

// Gateway writes deduplicated decks to a DeckStore.
type Gateway struct {
	store  DeckStore
	logger *zap.Logger
}

// NewGateway creates a gateway. logger may be nil.
func NewGateway(store DeckStore, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{store: store, logger: logger}
}

// Persist adds every deck to the store and saves once. It returns the number
// of decks that were added; decks without cards and decks the store already
// holds are skipped and not counted. A nil deck, or any store failure, aborts
// the batch before anything is saved.
func (g *Gateway) Persist(decks []*entities.Deck, archive, shortenName bool) (int, error) {
	for _, deck := range decks {
		if deck == nil {
			return 0, &PersistenceError{Err: ErrNilDeck}
		}
	}

	imported := 0
	for _, deck := range decks {
		if len(deck.Cards) == 0 {
			g.logger.Info("skipping deck without cards", zap.String("name", deck.Name), zap.Error(ErrEmptyDeck))
			continue
		}

		name := deck.Name
		if shortenName {
			name = ShortenName(name, deck.Class)
		}

		g.logger.Info("importing deck", zap.String("name", name), zap.String("class", deck.Class))

		err := g.store.AddDeck(name, deck, archive, ArchetypeTag, PluginTag)
		if errors.Is(err, ErrDeckExists) {
			g.logger.Info("deck already imported", zap.String("name", name), zap.String("external_id", deck.ExternalID))
			continue
		}
		if err != nil {
			return 0, &PersistenceError{Deck: name, Err: err}
		}
		imported++
	}

	if err := g.store.Save(); err != nil {
		return 0, &PersistenceError{Err: err}
	}

	return imported, nil
}

// DeletePrevious removes every deck this pipeline imported before.
func (g *Gateway) DeletePrevious() (int, error) {
	g.logger.Info("deleting all archetype decks")
	deleted, err := g.store.DeleteAllDecksWithTag(PluginTag)
	if err != nil {
		return 0, &PersistenceError{Err: err}
	}
	return deleted, nil
}
