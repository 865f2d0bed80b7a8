package services

import (
	"context"

	"github.com/mrlokans/advisor/internal/entities"
	"github.com/mrlokans/advisor/internal/importers"
)

// Importer runs one archetype import. Implemented by importers.Pipeline.
type Importer interface {
	RunImport(ctx context.Context, opts importers.Options) (*importers.Result, error)
	DeleteDecks() (int, error)
}

// RunRecorder stores import run progress. Implemented by runs.Repository.
type RunRecorder interface {
	Start(trigger string) (*entities.ImportRun, error)
	Observer(id uint) importers.ProgressObserver
	Complete(id uint, result *importers.Result, runErr error) error
	Discard(id uint) error
}

var _ Importer = (*importers.Pipeline)(nil)
