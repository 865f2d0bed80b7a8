// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - DeckStore: Buffered deck writes and tag-scoped deletes (internal/importers/gateway.go)
//   - DeckReader: Deck listing and similarity matching (internal/http/stores.go)
//   - RunReader / RunRecorder: Import run history (internal/http/stores.go, internal/services/interfaces.go)
//   - Pinger: Storage health (internal/http/stores.go)
//
// ## External Source Interfaces
//
//   - ClassSiteClient: metastats class listings and deck pages (internal/importers/provider.go)
//   - LadderClient: HSReplay archetype directory and ladder decks (internal/importers/provider.go)
//
// ## Import Interfaces
//
//   - Provider: One source of decks within a run (internal/importers/provider.go)
//   - Importer: A full import run (internal/services/interfaces.go)
//   - DeckImporter: Recorded imports for HTTP, tasks and the scheduler
//
// # Adding a New Deck Source
//
//  1. Implement Provider in internal/importers/
//
//     type TempoStormProvider struct {
//         client TempoStormClient
//     }
//
//     func (p *TempoStormProvider) Name() string
//     func (p *TempoStormProvider) Fetch(ctx context.Context, run *importers.Run) ([]*entities.Deck, error)
//
//     var _ importers.Provider = (*TempoStormProvider)(nil)
//
//  2. Return it from Pipeline.providers so every run fetches it.
//
// # Adding a New Database Domain
//
//  1. Create sub-package: internal/database/<domain>/
//
//  2. Define repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Add compile-time check in checks.go:
//
//     var _ SomeStore = (*Repository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
