package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/advisor/internal/importers"
	"github.com/mrlokans/advisor/internal/services"
	"github.com/mrlokans/advisor/internal/tasks"
)

// ImportRequest overrides the configured import flags. Omitted fields keep
// the defaults.
type ImportRequest struct {
	Archive        *bool `json:"archive"`
	DeletePrevious *bool `json:"delete_previous"`
	ShortenNames   *bool `json:"shorten_names"`
}

func (r ImportRequest) options(defaults importers.Options) importers.Options {
	opts := defaults
	if r.Archive != nil {
		opts.Archive = *r.Archive
	}
	if r.DeletePrevious != nil {
		opts.DeletePrevious = *r.DeletePrevious
	}
	if r.ShortenNames != nil {
		opts.ShortenNames = *r.ShortenNames
	}
	return opts
}

// ImportResponse reports the outcome of a synchronous import.
type ImportResponse struct {
	Found         int      `json:"found"`
	Parsed        int      `json:"parsed"`
	Unique        int      `json:"unique"`
	Imported      int      `json:"imported"`
	Deleted       int      `json:"deleted"`
	Degraded      bool     `json:"degraded"`
	FailedSources []string `json:"failed_sources,omitempty"`
	Errors        []string `json:"errors,omitempty"`
}

func newImportResponse(result *importers.Result) ImportResponse {
	resp := ImportResponse{
		Found:         result.Found,
		Parsed:        result.Parsed,
		Unique:        result.Unique,
		Imported:      result.Imported,
		Deleted:       result.Deleted,
		Degraded:      result.Degraded(),
		FailedSources: result.FailedSources(),
	}
	for _, err := range result.Failures {
		resp.Errors = append(resp.Errors, err.Error())
	}
	return resp
}

// ImportController handles import endpoints.
type ImportController struct {
	importer DeckImporter
	runs     RunReader
	tasks    TaskQueue
	defaults importers.Options
	logger   *zap.Logger
}

func NewImportController(importer DeckImporter, runs RunReader, taskQueue TaskQueue, defaults importers.Options, logger *zap.Logger) *ImportController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportController{
		importer: importer,
		runs:     runs,
		tasks:    taskQueue,
		defaults: defaults,
		logger:   logger,
	}
}

func (ic *ImportController) bind(c *gin.Context) (importers.Options, bool) {
	var req ImportRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "invalid request body: "+err.Error())
			return importers.Options{}, false
		}
	}
	return req.options(ic.defaults), true
}

// Import handles POST /api/import
// Runs an import and waits for it to finish.
func (ic *ImportController) Import(c *gin.Context) {
	opts, ok := ic.bind(c)
	if !ok {
		return
	}

	result, err := ic.importer.Import(c.Request.Context(), services.TriggerAPI, opts)
	if errors.Is(err, importers.ErrImportInProgress) {
		respondError(c, http.StatusConflict, err.Error(), "import_in_progress")
		return
	}
	if err != nil {
		var persistErr *importers.PersistenceError
		if errors.As(err, &persistErr) {
			respondError(c, http.StatusInternalServerError, err.Error(), "persistence_failed")
			return
		}
		respondInternalError(c, ic.logger, err, "import decks")
		return
	}

	c.JSON(http.StatusOK, newImportResponse(result))
}

// ImportAsync handles POST /api/import/async
// Enqueues an import task and returns its id.
func (ic *ImportController) ImportAsync(c *gin.Context) {
	if ic.tasks == nil {
		respondError(c, http.StatusServiceUnavailable, "task queue is disabled", "tasks_disabled")
		return
	}

	opts, ok := ic.bind(c)
	if !ok {
		return
	}

	task := tasks.ImportDecksTask{
		Archive:        opts.Archive,
		DeletePrevious: opts.DeletePrevious,
		ShortenNames:   opts.ShortenNames,
		Trigger:        services.TriggerAPI,
	}

	ids, err := ic.tasks.Add(task).Save()
	if err != nil {
		respondInternalError(c, ic.logger, err, "enqueue import")
		return
	}

	respondAccepted(c, "import enqueued", gin.H{"task_id": ids[0]})
}

// Progress handles GET /api/import/progress
// Returns the most recent import run.
func (ic *ImportController) Progress(c *gin.Context) {
	if ic.runs == nil {
		respondNotFound(c, "import run")
		return
	}

	run, err := ic.runs.Latest()
	if err != nil {
		respondInternalError(c, ic.logger, err, "latest import run")
		return
	}
	if run == nil {
		respondNotFound(c, "import run")
		return
	}

	c.JSON(http.StatusOK, run)
}
