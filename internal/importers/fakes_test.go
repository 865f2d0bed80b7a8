package importers

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mrlokans/advisor/internal/deckstring"
	"github.com/mrlokans/advisor/internal/entities"
	"github.com/mrlokans/advisor/internal/hsreplay"
	"github.com/mrlokans/advisor/internal/metastats"
)

type fakeSite struct {
	paths     []string
	pathsErr  error
	listings  map[string][]metastats.Listing
	listErr   map[string]error
	pages     map[string]*metastats.DeckPage
	deckCalls int
	mu        sync.Mutex
}

func (f *fakeSite) ClassPaths(ctx context.Context) ([]string, error) {
	return f.paths, f.pathsErr
}

func (f *fakeSite) ClassListings(ctx context.Context, classPath string) ([]metastats.Listing, error) {
	if err := f.listErr[classPath]; err != nil {
		return nil, err
	}
	return f.listings[classPath], nil
}

func (f *fakeSite) Deck(ctx context.Context, deckPath string) (*metastats.DeckPage, error) {
	f.mu.Lock()
	f.deckCalls++
	f.mu.Unlock()
	page, ok := f.pages[deckPath]
	if !ok {
		return nil, fmt.Errorf("no page at %s", deckPath)
	}
	return page, nil
}

func (f *fakeSite) URL(path string) string {
	return "http://metastats.test" + path
}

type fakeLadder struct {
	archetypes    map[int]hsreplay.Archetype
	archetypesErr error
	decks         map[string]map[string][]hsreplay.DeckSummary
	decksErr      map[string]error
}

func (f *fakeLadder) Archetypes(ctx context.Context) (map[int]hsreplay.Archetype, error) {
	return f.archetypes, f.archetypesErr
}

func (f *fakeLadder) Decks(ctx context.Context, gameType string) (map[string][]hsreplay.DeckSummary, error) {
	if err := f.decksErr[gameType]; err != nil {
		return nil, err
	}
	return f.decks[gameType], nil
}

type fakeStore struct {
	mu        sync.Mutex
	existing  map[string]bool
	addErr    error
	saveErr   error
	deleteErr error
	deleted   int

	added      []string
	saves      int
	deletes    int
	operations []string
}

func (f *fakeStore) AddDeck(name string, deck *entities.Deck, archive bool, categoryTag, ownerTag string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.operations = append(f.operations, "add")
	if f.addErr != nil {
		return f.addErr
	}
	if f.existing[deck.ExternalID] && deck.ExternalID != "" {
		return ErrDeckExists
	}
	f.added = append(f.added, name)
	return nil
}

func (f *fakeStore) DeleteAllDecksWithTag(tag string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.operations = append(f.operations, "delete:"+tag)
	f.deletes++
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	return f.deleted, nil
}

func (f *fakeStore) Save() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.operations = append(f.operations, "save")
	f.saves++
	return f.saveErr
}

var errUnreachable = errors.New("connection refused")

func sitePage(name, hero string, cards ...deckstring.Card) *metastats.DeckPage {
	return &metastats.DeckPage{
		Name:       name,
		HeroCardID: hero,
		Deck:       &deckstring.Deck{Format: deckstring.FormatStandard, Heroes: []int{7}, Cards: cards},
	}
}

func deck(name string, cards ...entities.Card) *entities.Deck {
	return &entities.Deck{Name: name, Class: "Warrior", Cards: cards}
}
