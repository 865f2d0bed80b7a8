package importers

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/advisor/internal/entities"
)

var tracer = otel.Tracer("github.com/mrlokans/advisor/internal/importers")

const (
	archetypeSource = "hsreplay:archetypes"
	classSource     = "metastats:index"

	defaultMaxConcurrency = 8
)

// Options control a single import run.
type Options struct {
	Archive        bool
	DeletePrevious bool
	ShortenNames   bool
	Progress       ProgressObserver
}

// Result summarizes an import run.
type Result struct {
	Found    int `json:"found"`
	Parsed   int `json:"parsed"`
	Unique   int `json:"unique"`
	Imported int `json:"imported"`
	Deleted  int `json:"deleted"`

	// Failures holds one FetchError per source that contributed nothing.
	Failures []error `json:"-"`
}

// Degraded reports whether fewer decks were imported than survived dedup.
func (r *Result) Degraded() bool {
	return r.Imported < r.Unique
}

// Err joins the source failures, or returns nil when every source succeeded.
func (r *Result) Err() error {
	return errors.Join(r.Failures...)
}

// FailedSources lists the names of the sources that failed.
func (r *Result) FailedSources() []string {
	var names []string
	for _, err := range r.Failures {
		var fetchErr *FetchError
		if errors.As(err, &fetchErr) {
			names = append(names, fetchErr.Source)
		}
	}
	return names
}

// PipelineConfig holds the collaborators of a Pipeline.
type PipelineConfig struct {
	Site      ClassSiteClient
	Ladder    LadderClient
	GameTypes []string
	Store     DeckStore
	Logger    *zap.Logger

	// MaxConcurrency bounds how many providers fetch at once. Default: 8
	MaxConcurrency int

	// Now stamps imported decks. Default: time.Now
	Now func() time.Time
}

// Pipeline runs archetype imports: fetch every source concurrently, merge,
// deduplicate and persist.
type Pipeline struct {
	site           ClassSiteClient
	ladder         LadderClient
	gameTypes      []string
	gateway        *Gateway
	logger         *zap.Logger
	maxConcurrency int
	now            func() time.Time

	running sync.Mutex
}

// NewPipeline creates a pipeline from its configuration.
func NewPipeline(cfg PipelineConfig) *Pipeline {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	maxConcurrency := cfg.MaxConcurrency
	if maxConcurrency <= 0 {
		maxConcurrency = defaultMaxConcurrency
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Pipeline{
		site:           cfg.Site,
		ladder:         cfg.Ladder,
		gameTypes:      cfg.GameTypes,
		gateway:        NewGateway(cfg.Store, logger),
		logger:         logger,
		maxConcurrency: maxConcurrency,
		now:            now,
	}
}

// DeleteDecks removes every previously imported deck.
func (p *Pipeline) DeleteDecks() (int, error) {
	return p.gateway.DeletePrevious()
}

// RunImport performs one import run. It fails only when the run cannot
// start or the decks cannot be persisted; unreachable sources are reported
// on Result.Failures and a short import is logged but still returned.
func (p *Pipeline) RunImport(ctx context.Context, opts Options) (*Result, error) {
	if !p.running.TryLock() {
		return nil, ErrImportInProgress
	}
	defer p.running.Unlock()

	ctx, span := tracer.Start(ctx, "importers.RunImport")
	defer span.End()

	p.logger.Info("starting archetype deck import",
		zap.Bool("archive", opts.Archive),
		zap.Bool("delete_previous", opts.DeletePrevious),
		zap.Bool("shorten_names", opts.ShortenNames))

	result := &Result{}

	if opts.DeletePrevious {
		deleted, err := p.gateway.DeletePrevious()
		if err != nil {
			return nil, p.finishSpan(span, err)
		}
		result.Deleted = deleted
	}

	run := &Run{
		Tracker: NewTracker(opts.Progress),
		Logger:  p.logger,
		Now:     p.now,
	}

	providers, failures := p.providers(ctx, run)
	result.Failures = append(result.Failures, failures...)

	decks, failures := p.fetchAll(ctx, run, providers)
	result.Failures = append(result.Failures, failures...)

	snapshot := run.Tracker.Snapshot()
	result.Found = snapshot.Found
	result.Parsed = snapshot.Imported

	decks = Dedup(decks)
	result.Unique = len(decks)

	p.logger.Info("saving decks to the deck list", zap.Int("count", len(decks)))

	imported, err := p.gateway.Persist(decks, opts.Archive, opts.ShortenNames)
	if err != nil {
		return nil, p.finishSpan(span, err)
	}
	result.Imported = imported

	span.SetAttributes(
		attribute.Int("decks.found", result.Found),
		attribute.Int("decks.unique", result.Unique),
		attribute.Int("decks.imported", result.Imported),
	)

	if result.Degraded() {
		p.logger.Error("only part of the archetype decks could be imported",
			zap.Int("imported", result.Imported),
			zap.Int("intended", result.Unique))
	} else {
		p.logger.Info("archetype deck import completed", zap.Int("imported", result.Imported))
	}

	return result, nil
}

// providers fetches the archetype directory and the class index, then builds
// one provider per class page and per game type. A failed prerequisite is
// reported and its providers are left out or degraded; the run continues.
func (p *Pipeline) providers(ctx context.Context, run *Run) ([]Provider, []error) {
	var failures []error

	directory, err := p.ladder.Archetypes(ctx)
	if err != nil {
		failures = append(failures, p.fetchFailed(archetypeSource, err))
	}
	run.Archetype = NewArchetypeResolver(directory)

	var providers []Provider

	classPaths, err := p.site.ClassPaths(ctx)
	if err != nil {
		failures = append(failures, p.fetchFailed(classSource, err))
	}
	for _, path := range classPaths {
		providers = append(providers, NewClassSiteProvider(p.site, path))
	}

	for _, gameType := range p.gameTypes {
		providers = append(providers, NewLadderProvider(p.ladder, gameType))
	}

	return providers, failures
}

// fetchAll runs every provider concurrently and concatenates their decks in
// completion order.
func (p *Pipeline) fetchAll(ctx context.Context, run *Run, providers []Provider) ([]*entities.Deck, []error) {
	var (
		mu       sync.Mutex
		decks    []*entities.Deck
		failures []error
	)

	var g errgroup.Group
	g.SetLimit(p.maxConcurrency)

	for _, provider := range providers {
		g.Go(func() error {
			result, err := p.fetchOne(ctx, run, provider)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, err)
				return nil
			}
			decks = append(decks, result...)
			return nil
		})
	}

	_ = g.Wait()

	return decks, failures
}

func (p *Pipeline) fetchOne(ctx context.Context, run *Run, provider Provider) (decks []*entities.Deck, err error) {
	ctx, span := tracer.Start(ctx, "importers.Provider.Fetch",
		trace.WithAttributes(attribute.String("provider", provider.Name())))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("provider panicked", zap.String("source", provider.Name()), zap.Any("panic", r))
			decks, err = nil, p.fetchFailed(provider.Name(), errors.New("provider panicked"))
		}
	}()

	decks, err = provider.Fetch(ctx, run)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "provider failed")
		return nil, p.fetchFailed(provider.Name(), err)
	}

	span.SetAttributes(attribute.Int("decks", len(decks)))
	return decks, nil
}

func (p *Pipeline) fetchFailed(source string, err error) error {
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		fetchErr = &FetchError{Source: source, Err: err}
	}
	p.logger.Error("source failed", zap.String("source", fetchErr.Source), zap.Error(fetchErr.Err))
	return fetchErr
}

func (p *Pipeline) finishSpan(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	p.logger.Error("archetype deck import failed", zap.Error(err))
	return err
}
