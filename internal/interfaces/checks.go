package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/advisor/internal/database"
	"github.com/mrlokans/advisor/internal/database/decks"
	"github.com/mrlokans/advisor/internal/database/runs"
	"github.com/mrlokans/advisor/internal/hsreplay"
	"github.com/mrlokans/advisor/internal/http"
	"github.com/mrlokans/advisor/internal/importers"
	"github.com/mrlokans/advisor/internal/metastats"
	"github.com/mrlokans/advisor/internal/scheduler"
	"github.com/mrlokans/advisor/internal/services"
	"github.com/mrlokans/advisor/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// DeckStore implementations
var _ importers.DeckStore = (*decks.Repository)(nil)

// DeckReader implementations
var _ http.DeckReader = (*decks.Repository)(nil)

// RunReader / RunRecorder implementations
var _ http.RunReader = (*runs.Repository)(nil)
var _ services.RunRecorder = (*runs.Repository)(nil)

// Pinger implementations
var _ http.Pinger = (*database.Database)(nil)

// =============================================================================
// External Services
// =============================================================================

// ClassSiteClient implementations
var _ importers.ClassSiteClient = (*metastats.Client)(nil)

// LadderClient implementations
var _ importers.LadderClient = (*hsreplay.Client)(nil)

// =============================================================================
// Import Pipeline
// =============================================================================

// Provider implementations
var _ importers.Provider = (*importers.ClassSiteProvider)(nil)
var _ importers.Provider = (*importers.LadderProvider)(nil)

// Importer implementations
var _ services.Importer = (*importers.Pipeline)(nil)

// DeckImporter implementations
var _ http.DeckImporter = (*services.ImportService)(nil)
var _ tasks.DeckImporter = (*services.ImportService)(nil)
var _ scheduler.DeckImporter = (*services.ImportService)(nil)

// =============================================================================
// Background Tasks
// =============================================================================

// TaskQueue implementations
var _ http.TaskQueue = (*tasks.Client)(nil)
