// Package decks stores imported archetype decks.
//
// This package implements the DeckStore interface used by the import
// pipeline. AddDeck buffers decks in memory; Save writes the whole buffer in
// one transaction, so a failed import never leaves a partial deck list.
//
// # Interface Implementation
//
//	var _ importers.DeckStore = (*Repository)(nil)
//
// # Usage
//
//	repo := decks.NewRepository(db)
//	err := repo.AddDeck("Big Priest", deck, false, "Archetype", "Advisor")
//	err = repo.Save()
package decks

import (
	"sort"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/mrlokans/advisor/internal/database/tags"
	"github.com/mrlokans/advisor/internal/entities"
	"github.com/mrlokans/advisor/internal/importers"
)

// Match is a stored deck ranked against a card list.
type Match struct {
	Deck       entities.Deck `json:"deck"`
	Similarity float64       `json:"similarity"`
}

type pendingDeck struct {
	deck *entities.Deck
	tags []string
}

// Repository handles all deck database operations.
type Repository struct {
	db   *gorm.DB
	tags *tags.Repository

	mu      sync.Mutex
	pending []pendingDeck
}

// NewRepository creates a new decks repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, tags: tags.NewRepository(db)}
}

// AddDeck buffers a copy of deck under name, tagged with categoryTag and
// ownerTag. A deck whose external id is already stored with ownerTag, or
// already buffered, is rejected with importers.ErrDeckExists.
func (r *Repository) AddDeck(name string, deck *entities.Deck, archive bool, categoryTag, ownerTag string) error {
	if deck == nil {
		return importers.ErrNilDeck
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if deck.ExternalID != "" {
		for _, p := range r.pending {
			if p.deck.ExternalID == deck.ExternalID {
				return importers.ErrDeckExists
			}
		}

		exists, err := r.externalIDTagged(deck.ExternalID, ownerTag)
		if err != nil {
			return err
		}
		if exists {
			return importers.ErrDeckExists
		}
	}

	stored := *deck
	stored.ID = 0
	stored.Name = name
	stored.Archived = archive
	stored.Tags = nil
	stored.Cards = make([]entities.Card, len(deck.Cards))
	for i, c := range deck.Cards {
		stored.Cards[i] = entities.Card{CardID: c.CardID, Count: c.Count}
	}

	var tagNames []string
	for _, t := range []string{categoryTag, ownerTag} {
		if t != "" {
			tagNames = append(tagNames, t)
		}
	}

	r.pending = append(r.pending, pendingDeck{deck: &stored, tags: tagNames})
	return nil
}

// Pending returns the number of buffered decks.
func (r *Repository) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// Save writes every buffered deck in one transaction. The buffer is cleared
// whether or not the transaction commits.
func (r *Repository) Save() error {
	r.mu.Lock()
	pending := r.pending
	r.pending = nil
	r.mu.Unlock()

	if len(pending) == 0 {
		return nil
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		tagCache := make(map[string]entities.Tag)
		for _, p := range pending {
			for _, name := range p.tags {
				tag, ok := tagCache[name]
				if !ok {
					found, err := r.tags.GetOrCreateTag(tx, name)
					if err != nil {
						return err
					}
					tag = *found
					tagCache[name] = tag
				}
				p.deck.Tags = append(p.deck.Tags, tag)
			}

			if err := tx.Create(p.deck).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteAllDecksWithTag removes every deck carrying the tag, with its cards
// and tag links, and returns how many decks were removed.
func (r *Repository) DeleteAllDecksWithTag(tag string) (int, error) {
	deleted := 0
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var deckIDs []uint
		err := tx.Table("deck_tags").
			Joins("JOIN tags ON tags.id = deck_tags.tag_id").
			Where("tags.name = ?", tag).
			Pluck("deck_tags.deck_id", &deckIDs).Error
		if err != nil {
			return err
		}
		if len(deckIDs) == 0 {
			return nil
		}

		if err := tx.Where("deck_id IN ?", deckIDs).Delete(&entities.Card{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM deck_tags WHERE deck_id IN ?", deckIDs).Error; err != nil {
			return err
		}
		result := tx.Where("id IN ?", deckIDs).Delete(&entities.Deck{})
		if result.Error != nil {
			return result.Error
		}
		deleted = int(result.RowsAffected)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// ListDecks returns stored decks with their cards and tags, optionally
// filtered by class (case-insensitive).
func (r *Repository) ListDecks(class string) ([]entities.Deck, error) {
	var decks []entities.Deck
	query := r.db.Preload("Cards").Preload("Tags").Order("class ASC, name ASC, id ASC")
	if class != "" {
		query = query.Where("LOWER(class) = LOWER(?)", strings.TrimSpace(class))
	}
	err := query.Find(&decks).Error
	return decks, err
}

// CountDecks returns the number of stored decks.
func (r *Repository) CountDecks() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Deck{}).Count(&count).Error
	return count, err
}

// FindBestMatches ranks stored decks by how much of cards they contain.
// Ties keep the lower deck id first. limit <= 0 returns every deck.
func (r *Repository) FindBestMatches(cards []entities.Card, limit int) ([]Match, error) {
	decks, err := r.ListDecks("")
	if err != nil {
		return nil, err
	}

	query := &entities.Deck{Cards: cards}
	matches := make([]Match, 0, len(decks))
	for _, d := range decks {
		matches = append(matches, Match{Deck: d, Similarity: d.Similarity(query)})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Similarity != matches[j].Similarity {
			return matches[i].Similarity > matches[j].Similarity
		}
		return matches[i].Deck.ID < matches[j].Deck.ID
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (r *Repository) externalIDTagged(externalID, tag string) (bool, error) {
	var count int64
	query := r.db.Model(&entities.Deck{}).Where("decks.external_id = ?", externalID)
	if tag != "" {
		query = query.
			Joins("JOIN deck_tags ON deck_tags.deck_id = decks.id").
			Joins("JOIN tags ON tags.id = deck_tags.tag_id").
			Where("tags.name = ?", tag)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

var _ importers.DeckStore = (*Repository)(nil)
