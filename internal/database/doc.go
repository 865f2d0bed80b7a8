// Package database provides the data access layer for the deck list.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup, migrations, tag seeding
//	├── decks/           # Deck store used by the import pipeline
//	├── tags/            # Tag lookup
//	└── runs/            # Import run progress tracking
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase("./advisor.db", logger)
//
//	decksRepo := decks.NewRepository(db.DB)
//	runsRepo := runs.NewRepository(db.DB, logger)
//
// # Interface Implementations
//
//   - decks.Repository: implements importers.DeckStore and http.DeckReader
//   - runs.Repository: implements http.RunReader
//
// Each sub-package keeps a compile-time check:
//
//	var _ importers.DeckStore = (*Repository)(nil)
package database
