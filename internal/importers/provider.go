package importers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mrlokans/advisor/internal/entities"
	"github.com/mrlokans/advisor/internal/hsreplay"
	"github.com/mrlokans/advisor/internal/metastats"
)

// Provider fetches the decks of one source.
//
// Implementations:
//   - ClassSiteProvider (classsite.go) - metastats class listing page
//   - LadderProvider (ladder.go) - HSReplay ranked ladder deck list
type Provider interface {
	// Name identifies the source in logs and errors.
	Name() string

	// Fetch returns the source's decks. A failure of the source as a whole is
	// returned as an error; single bad entries are skipped.
	Fetch(ctx context.Context, run *Run) ([]*entities.Deck, error)
}

// ClassSiteClient is the part of metastats.Client the providers use.
type ClassSiteClient interface {
	ClassPaths(ctx context.Context) ([]string, error)
	ClassListings(ctx context.Context, classPath string) ([]metastats.Listing, error)
	Deck(ctx context.Context, deckPath string) (*metastats.DeckPage, error)
	URL(path string) string
}

// LadderClient is the part of hsreplay.Client the providers use.
type LadderClient interface {
	Archetypes(ctx context.Context) (map[int]hsreplay.Archetype, error)
	Decks(ctx context.Context, gameType string) (map[string][]hsreplay.DeckSummary, error)
}

// Run carries the state shared by all providers of one import run.
type Run struct {
	Tracker   *Tracker
	Archetype *ArchetypeResolver
	Logger    *zap.Logger
	Now       func() time.Time
}

func (r *Run) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

func (r *Run) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

// skip logs a skipped entry and takes it back from the found counter.
func (r *Run) skip(err *ItemParseError) {
	r.Tracker.DecrementFound(1)
	r.logger().Info("skipping deck", zap.String("source", err.Source), zap.String("item", err.Item), zap.Error(err.Err))
}

// Compile-time interface checks
var (
	_ ClassSiteClient = (*metastats.Client)(nil)
	_ LadderClient    = (*hsreplay.Client)(nil)
)
