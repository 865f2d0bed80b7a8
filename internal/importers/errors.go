package importers

import (
	"errors"
	"fmt"
)

var (
	// ErrImportInProgress is returned when a run is started while another
	// run on the same pipeline has not finished.
	ErrImportInProgress = errors.New("an import is already in progress")

	// ErrDeckExists is returned by a DeckStore when the deck was imported
	// before and is still present.
	ErrDeckExists = errors.New("deck already exists")

	ErrNilDeck   = errors.New("deck is nil")
	ErrEmptyDeck = errors.New("deck has no cards")
)

// FetchError reports a source that could not be fetched or parsed at all.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ItemParseError reports a single listing entry that was skipped.
type ItemParseError struct {
	Source string
	Item   string
	Err    error
}

func (e *ItemParseError) Error() string {
	return fmt.Sprintf("%s: skip %s: %v", e.Source, e.Item, e.Err)
}

func (e *ItemParseError) Unwrap() error {
	return e.Err
}

// PersistenceError aborts persisting the whole batch.
type PersistenceError struct {
	Deck string
	Err  error
}

func (e *PersistenceError) Error() string {
	if e.Deck == "" {
		return fmt.Sprintf("persist decks: %v", e.Err)
	}
	return fmt.Sprintf("persist deck %q: %v", e.Deck, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
