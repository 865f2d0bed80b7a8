package importers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mrlokans/advisor/internal/entities"
	"github.com/mrlokans/advisor/internal/metastats"
)

// ClassSiteProvider imports the decks listed on one metastats class page.
type ClassSiteProvider struct {
	client    ClassSiteClient
	classPath string
}

// NewClassSiteProvider creates a provider for a class listing path.
func NewClassSiteProvider(client ClassSiteClient, classPath string) *ClassSiteProvider {
	return &ClassSiteProvider{client: client, classPath: classPath}
}

// Name implements Provider.
func (p *ClassSiteProvider) Name() string {
	return "metastats:" + strings.Trim(p.classPath, "/")
}

// Fetch implements Provider. Every block on the page is counted as found up
// front; blocks that cannot be turned into a deck are taken back.
func (p *ClassSiteProvider) Fetch(ctx context.Context, run *Run) ([]*entities.Deck, error) {
	listings, err := p.client.ClassListings(ctx, p.classPath)
	if err != nil {
		return nil, err
	}

	if len(listings) == 0 {
		run.logger().Info("no decks found", zap.String("source", p.Name()))
		return nil, nil
	}

	run.Tracker.IncrementFound(len(listings))

	decks := make([]*entities.Deck, 0, len(listings))
	for i, listing := range listings {
		if err := ctx.Err(); err != nil {
			// the remaining listings will never be imported
			run.Tracker.DecrementFound(len(listings) - i)
			return nil, err
		}

		deck, err := p.fetchDeck(ctx, run, listing)
		if err != nil {
			run.skip(&ItemParseError{Source: p.Name(), Item: listing.Href, Err: err})
			continue
		}

		decks = append(decks, deck)
		run.Tracker.IncrementImported(1)
	}

	return decks, nil
}

func (p *ClassSiteProvider) fetchDeck(ctx context.Context, run *Run, listing metastats.Listing) (*entities.Deck, error) {
	id, err := listing.DeckID()
	if err != nil {
		return nil, err
	}

	page, err := p.client.Deck(ctx, listing.Href)
	if err != nil {
		return nil, err
	}

	class, err := pageClass(page)
	if err != nil {
		return nil, err
	}

	externalID, err := ExternalID(id)
	if err != nil {
		return nil, err
	}

	cards := make([]entities.Card, 0, len(page.Deck.Cards))
	for _, c := range page.Deck.Cards {
		cards = append(cards, entities.Card{CardID: c.DbfID, Count: c.Count})
	}

	name := page.Name
	if name == "" {
		name = class.DisplayName
	}

	return &entities.Deck{
		Name:       name,
		Class:      class.Name,
		Note:       listing.Stats,
		URL:        p.client.URL(listing.Href),
		ExternalID: externalID,
		LastEdited: run.now(),
		Cards:      cards,
	}, nil
}

func pageClass(page *metastats.DeckPage) (entities.Class, error) {
	if class, ok := entities.ClassByHero(page.HeroCardID); ok {
		return class, nil
	}
	for _, hero := range page.Deck.Heroes {
		if class, ok := entities.ClassByHeroDbfID(hero); ok {
			return class, nil
		}
	}
	return entities.Class{}, errors.New("unknown hero class")
}

// ExternalID left-pads a numeric deck id to 32 digits and formats it as a
// UUID, so a site deck always maps to the same identifier.
func ExternalID(id int) (string, error) {
	if id < 0 {
		return "", fmt.Errorf("negative deck id %d", id)
	}
	padded := fmt.Sprintf("%032d", id)
	u, err := uuid.Parse(padded)
	if err != nil {
		return "", fmt.Errorf("deck id %d: %w", id, err)
	}
	return u.String(), nil
}

var _ Provider = (*ClassSiteProvider)(nil)
