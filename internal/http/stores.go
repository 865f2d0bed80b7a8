package http

import (
	"context"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/advisor/internal/database/decks"
	"github.com/mrlokans/advisor/internal/entities"
	"github.com/mrlokans/advisor/internal/importers"
)

// This file consolidates the store interfaces used by HTTP controllers.
// Each controller depends only on the methods it calls.

// DeckImporter runs imports and bulk deletes. Implemented by services.ImportService.
type DeckImporter interface {
	Import(ctx context.Context, trigger string, opts importers.Options) (*importers.Result, error)
	DeleteDecks() (int, error)
}

// DeckReader provides read access to stored decks. Implemented by decks.Repository.
type DeckReader interface {
	ListDecks(class string) ([]entities.Deck, error)
	FindBestMatches(cards []entities.Card, limit int) ([]decks.Match, error)
}

// RunReader provides read access to import runs. Implemented by runs.Repository.
type RunReader interface {
	Latest() (*entities.ImportRun, error)
}

// TaskQueue enqueues background tasks. Implemented by tasks.Client.
type TaskQueue interface {
	Add(tasks ...backlite.Task) *backlite.TaskAddOp
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// Pinger checks storage connectivity. Implemented by database.Database.
type Pinger interface {
	Ping() error
}
