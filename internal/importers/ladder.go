package importers

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mrlokans/advisor/internal/entities"
	"github.com/mrlokans/advisor/internal/hsreplay"
)

// LadderProvider imports the ranked ladder decks of one game type.
type LadderProvider struct {
	client   LadderClient
	gameType string
}

// NewLadderProvider creates a provider for a game type such as RANKED_STANDARD.
func NewLadderProvider(client LadderClient, gameType string) *LadderProvider {
	return &LadderProvider{client: client, gameType: gameType}
}

// Name implements Provider.
func (p *LadderProvider) Name() string {
	return "hsreplay:" + strings.ToLower(p.gameType)
}

// Fetch implements Provider.
func (p *LadderProvider) Fetch(ctx context.Context, run *Run) ([]*entities.Deck, error) {
	data, err := p.client.Decks(ctx, p.gameType)
	if err != nil {
		return nil, err
	}

	classKeys := make([]string, 0, len(data))
	for key := range data {
		classKeys = append(classKeys, key)
	}
	sort.Strings(classKeys)

	var decks []*entities.Deck
	for _, classKey := range classKeys {
		for _, summary := range data[classKey] {
			run.Tracker.IncrementFound(1)

			deck, err := p.buildDeck(run, classKey, summary)
			if err != nil {
				run.skip(&ItemParseError{
					Source: p.Name(),
					Item:   fmt.Sprintf("%s archetype %d", classKey, summary.ArchetypeID),
					Err:    err,
				})
				continue
			}

			decks = append(decks, deck)
			run.Tracker.IncrementImported(1)
		}
	}

	return decks, nil
}

func (p *LadderProvider) buildDeck(run *Run, classKey string, summary hsreplay.DeckSummary) (*entities.Deck, error) {
	archetype := run.Archetype.Resolve(summary.ArchetypeID, classKey)

	class, ok := entities.ClassByID(archetype.ClassID)
	if !ok {
		class, ok = entities.ClassByKey(classKey)
	}
	if !ok {
		return nil, fmt.Errorf("unknown class %q (id %d)", classKey, archetype.ClassID)
	}

	list, err := hsreplay.ParseDeckList(summary.DeckList)
	if err != nil {
		return nil, err
	}

	cards := make([]entities.Card, 0, len(list))
	for _, c := range list {
		cards = append(cards, entities.Card{CardID: c.DbfID, Count: c.Count})
	}

	return &entities.Deck{
		Name:       archetype.Name,
		Class:      class.Name,
		Note:       LadderNote(summary.TotalGames, summary.WinRate),
		URL:        archetype.URL,
		LastEdited: run.now(),
		Cards:      cards,
	}, nil
}

// LadderNote formats the games and win rate summary stored on ladder decks.
func LadderNote(games int, winRate float64) string {
	return fmt.Sprintf("#Games: %d, #Win Rate: %s%%", games, strconv.FormatFloat(winRate, 'f', -1, 64))
}

var _ Provider = (*LadderProvider)(nil)
