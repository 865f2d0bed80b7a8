package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/advisor/internal/entities"
)

const defaultMatchLimit = 5

// MatchRequest is the body of POST /api/decks/match.
type MatchRequest struct {
	Cards []entities.Card `json:"cards"`
	Limit int             `json:"limit"`
}

// DecksController exposes the stored deck list.
type DecksController struct {
	decks    DeckReader
	importer DeckImporter
	logger   *zap.Logger
}

func NewDecksController(decks DeckReader, importer DeckImporter, logger *zap.Logger) *DecksController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DecksController{decks: decks, importer: importer, logger: logger}
}

// List handles GET /api/decks?class=Mage&limit=20
func (dc *DecksController) List(c *gin.Context) {
	limit, ok := parseLimitQuery(c, "limit", 0)
	if !ok {
		return
	}

	decks, err := dc.decks.ListDecks(c.Query("class"))
	if err != nil {
		respondInternalError(c, dc.logger, err, "list decks")
		return
	}
	if limit > 0 && len(decks) > limit {
		decks = decks[:limit]
	}

	c.JSON(http.StatusOK, gin.H{
		"decks": decks,
		"count": len(decks),
	})
}

// DeleteAll handles DELETE /api/decks
// Removes every deck the importer created.
func (dc *DecksController) DeleteAll(c *gin.Context) {
	deleted, err := dc.importer.DeleteDecks()
	if err != nil {
		respondInternalError(c, dc.logger, err, "delete decks")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// Match handles POST /api/decks/match
// Ranks stored decks by how many of the given cards they contain.
func (dc *DecksController) Match(c *gin.Context) {
	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if len(req.Cards) == 0 {
		respondBadRequest(c, "cards are required")
		return
	}
	for _, card := range req.Cards {
		if card.CardID <= 0 || card.Count <= 0 {
			respondBadRequest(c, "cards need a positive card_id and count")
			return
		}
	}

	limit := req.Limit
	if limit < 0 {
		respondBadRequest(c, "invalid limit")
		return
	}
	if limit == 0 {
		limit = defaultMatchLimit
	}

	matches, err := dc.decks.FindBestMatches(req.Cards, limit)
	if err != nil {
		respondInternalError(c, dc.logger, err, "match decks")
		return
	}

	c.JSON(http.StatusOK, gin.H{"matches": matches})
}
