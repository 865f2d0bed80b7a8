// Package importers aggregates archetype decks from every configured source
// into one deduplicated collection.
//
// # Architecture
//
// One import run flows through the following steps:
//
//	archetype directory ─┐
//	class deck index ────┼→ providers (concurrent) → merge → Dedup → Gateway → DeckStore
//	game types ──────────┘
//
// Each Provider turns one source into entities.Deck values and reports its
// progress on the run's Tracker. A provider that fails contributes nothing;
// the run continues with the others and the failure is kept on the Result.
//
// # Providers
//
//   - ClassSiteProvider (classsite.go): one metastats class listing page
//   - LadderProvider (ladder.go): one HSReplay ranked ladder game type
//
// # Example Usage
//
//	pipeline := importers.NewPipeline(importers.PipelineConfig{
//		Site:      metastats.NewClient(metastats.Options{}),
//		Ladder:    hsreplay.NewClient(hsreplay.Options{}),
//		GameTypes: []string{hsreplay.GameTypeRankedStandard, hsreplay.GameTypeRankedWild},
//		Store:     decks.NewRepository(db.DB),
//	})
//
//	result, err := pipeline.RunImport(ctx, importers.Options{DeletePrevious: true})
package importers
