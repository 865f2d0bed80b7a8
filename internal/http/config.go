package http

import (
	"go.uber.org/zap"

	"github.com/mrlokans/advisor/internal/importers"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Importer DeckImporter
	Decks    DeckReader
	Runs     RunReader
	Database Pinger

	// Task queue (optional). Async imports answer 503 without it.
	Tasks TaskQueue

	// DefaultOptions apply to import requests that leave a flag unset.
	DefaultOptions importers.Options

	Logger *zap.Logger

	// Application info
	Version string
}
